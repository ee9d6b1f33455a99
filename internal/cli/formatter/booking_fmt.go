package formatter

import (
	"fmt"
	"strings"

	"github.com/aoemotors/leaddesk/internal/domain"
	"github.com/aoemotors/leaddesk/internal/ingest"
	"github.com/aoemotors/leaddesk/internal/outreach"
)

// FormatBookingTable renders the bookings list view.
func FormatBookingTable(bookings []domain.Booking) string {
	if len(bookings) == 0 {
		return Dim("No bookings match the current filter.") + "\n"
	}

	headers := []string{"ID", "NAME", "VEHICLE", "LOCATION", "SCORE", "STATUS", "BOOKED"}
	rows := make([][]string, 0, len(bookings))
	for i := range bookings {
		b := &bookings[i]
		rows = append(rows, []string{
			TruncID(b.ID),
			b.FullName,
			b.Vehicle,
			b.Location,
			ScorePill(b.LeadScore),
			StatusPill(b.ActionStatus),
			BookedStamp(b.BookingTimestamp),
		})
	}

	var sb strings.Builder
	sb.WriteString(RenderTable(headers, rows))
	sb.WriteString(Dim(fmt.Sprintf("%d booking(s)", len(bookings))))
	sb.WriteString("\n")
	return sb.String()
}

// FormatDraft renders an outreach draft for review before sending.
func FormatDraft(d outreach.Draft) string {
	var sb strings.Builder
	sb.WriteString(Header("Draft"))
	sb.WriteString("\n")
	sb.WriteString(Bold("Subject: "))
	sb.WriteString(d.Subject)
	sb.WriteString("\n\n")
	sb.WriteString(d.Body)
	if !strings.HasSuffix(d.Body, "\n") {
		sb.WriteString("\n")
	}
	return sb.String()
}

// FormatImportResult summarizes an import, listing skipped rows by
// spreadsheet row number.
func FormatImportResult(res *ingest.ImportResult) string {
	var sb strings.Builder
	sb.WriteString(fmt.Sprintf("Imported %s booking(s), skipped %d.\n",
		Bold(fmt.Sprintf("%d", res.Inserted)), res.Skipped))
	for _, re := range res.RowErrors {
		sb.WriteString(Dim(fmt.Sprintf("  row %d: %s", re.Row, re.Reason)))
		sb.WriteString("\n")
	}
	return sb.String()
}
