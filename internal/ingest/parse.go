package ingest

import (
	"errors"
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/google/uuid"

	"github.com/aoemotors/leaddesk/internal/domain"
)

// RowError reports why a single data row was skipped. Row is 1-based and
// counts the header, so the first data row is row 2, matching what the
// user sees in a spreadsheet.
type RowError struct {
	Row    int    `json:"row"`
	Reason string `json:"reason"`
}

// ImportResult summarizes a completed import.
type ImportResult struct {
	Inserted  int        `json:"inserted"`
	Skipped   int        `json:"skipped"`
	RowErrors []RowError `json:"row_errors,omitempty"`
}

// ParseResult holds the bookings recovered from a file plus the rows that
// could not be converted. A non-empty RowErrors does not make the parse
// itself a failure.
type ParseResult struct {
	Bookings  []domain.Booking
	RowErrors []RowError
}

// ParseFile reads and parses an upload in one step.
func ParseFile(r io.Reader, filename string) (*ParseResult, error) {
	rows, err := ReadRows(r, filename)
	if err != nil {
		return nil, err
	}
	return Parse(rows)
}

// Parse converts a cell grid into bookings. The first row must be a header;
// every later row becomes a Booking or a RowError. Rows that are entirely
// blank are ignored.
func Parse(rows [][]string) (*ParseResult, error) {
	if len(rows) < 2 {
		return nil, errors.New("ingest: file needs a header row and at least one data row")
	}

	cols, err := mapHeader(rows[0])
	if err != nil {
		return nil, err
	}

	result := &ParseResult{}
	for i, row := range rows[1:] {
		if blankRow(row) {
			continue
		}
		rowNum := i + 2 // 1-based with the header as row 1
		booking, reason := convertRow(cols, row)
		if reason != "" {
			result.RowErrors = append(result.RowErrors, RowError{Row: rowNum, Reason: reason})
			continue
		}
		result.Bookings = append(result.Bookings, booking)
	}
	return result, nil
}

// columnMap holds the index of each known column, -1 when absent.
type columnMap struct {
	id             int
	fullName       int
	email          int
	vehicle        int
	currentVehicle int
	bookingDate    int
	location       int
	timeFrame      int
	leadScore      int
	actionStatus   int
	salesNotes     int
	scoreLabel     int
	numericScore   int
	timestamp      int
}

func mapHeader(header []string) (columnMap, error) {
	cols := columnMap{
		id:             findColumn(header, "request_id", "id", "booking_id"),
		fullName:       findColumn(header, "full_name", "name", "customer_name", "customer"),
		email:          findColumn(header, "email", "email_address"),
		vehicle:        findColumn(header, "vehicle", "model"),
		currentVehicle: findColumn(header, "current_vehicle", "trade_in"),
		bookingDate:    findColumn(header, "booking_date", "date"),
		location:       findColumn(header, "location", "city"),
		timeFrame:      findColumn(header, "time_frame", "timeframe", "purchase_timeframe"),
		leadScore:      findColumn(header, "lead_score", "score"),
		actionStatus:   findColumn(header, "action_status", "status"),
		salesNotes:     findColumn(header, "sales_notes", "notes"),
		scoreLabel:     findColumn(header, "lead_score_label", "score_label"),
		numericScore:   findColumn(header, "numeric_lead_score", "numeric_score"),
		timestamp:      findColumn(header, "booking_timestamp", "timestamp", "created_at"),
	}

	var missing []string
	if cols.fullName == -1 {
		missing = append(missing, "full_name")
	}
	if cols.email == -1 {
		missing = append(missing, "email")
	}
	if cols.vehicle == -1 {
		missing = append(missing, "vehicle")
	}
	if len(missing) > 0 {
		return cols, fmt.Errorf("ingest: required columns missing: %s", strings.Join(missing, ", "))
	}
	return cols, nil
}

// findColumn returns the index of the first header matching any candidate,
// case-insensitively, or -1.
func findColumn(header []string, candidates ...string) int {
	for _, candidate := range candidates {
		for i, name := range header {
			if strings.EqualFold(strings.TrimSpace(name), candidate) {
				return i
			}
		}
	}
	return -1
}

// convertRow builds a Booking from one data row. A non-empty reason means
// the row is skipped.
func convertRow(cols columnMap, row []string) (domain.Booking, string) {
	fullName := cell(row, cols.fullName)
	email := cell(row, cols.email)
	vehicle := cell(row, cols.vehicle)
	switch {
	case fullName == "":
		return domain.Booking{}, "full_name is required"
	case email == "":
		return domain.Booking{}, "email is required"
	case vehicle == "":
		return domain.Booking{}, "vehicle is required"
	}

	b := domain.Booking{
		ID:             cell(row, cols.id),
		FullName:       fullName,
		Email:          email,
		Vehicle:        vehicle,
		CurrentVehicle: cell(row, cols.currentVehicle),
		BookingDate:    cell(row, cols.bookingDate),
		Location:       cell(row, cols.location),
		TimeFrame:      cell(row, cols.timeFrame),
		SalesNotes:     cell(row, cols.salesNotes),
		LeadScore:      domain.LeadNew,
		ActionStatus:   domain.StatusNewLead,
	}
	if b.ID == "" {
		b.ID = uuid.New().String()
	}

	if raw := cell(row, cols.leadScore); raw != "" {
		score, ok := domain.ParseLeadScore(raw)
		if !ok {
			return domain.Booking{}, fmt.Sprintf("invalid lead_score %q", raw)
		}
		b.LeadScore = score
	}
	if raw := cell(row, cols.actionStatus); raw != "" {
		status, ok := domain.ParseActionStatus(raw)
		if !ok {
			return domain.Booking{}, fmt.Sprintf("invalid action_status %q", raw)
		}
		b.ActionStatus = status
	}
	if raw := cell(row, cols.numericScore); raw != "" {
		n, err := strconv.Atoi(raw)
		if err != nil {
			return domain.Booking{}, fmt.Sprintf("invalid numeric_lead_score %q", raw)
		}
		b.NumericLeadScore = n
	}

	b.LeadScoreLabel = cell(row, cols.scoreLabel)
	if b.LeadScoreLabel == "" {
		b.LeadScoreLabel = string(b.LeadScore) + " Lead"
	}

	// An unparseable timestamp leaves the zero time; the booking still
	// imports and is simply excluded from time-windowed counts.
	b.BookingTimestamp = domain.ParseTimestamp(cell(row, cols.timestamp))

	return b, ""
}

func cell(row []string, idx int) string {
	if idx < 0 || idx >= len(row) {
		return ""
	}
	return strings.TrimSpace(row[idx])
}

func blankRow(row []string) bool {
	for _, c := range row {
		if strings.TrimSpace(c) != "" {
			return false
		}
	}
	return true
}
