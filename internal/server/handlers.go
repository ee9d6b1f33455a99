package server

import (
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/xuri/excelize/v2"

	"github.com/aoemotors/leaddesk/internal/domain"
	"github.com/aoemotors/leaddesk/internal/repository"
	"github.com/aoemotors/leaddesk/internal/service"
)

// bookingResponse is the wire shape of one booking. The timestamp renders
// as RFC3339, or the empty string when the booking has none.
type bookingResponse struct {
	ID               string `json:"request_id"`
	FullName         string `json:"full_name"`
	Email            string `json:"email"`
	Vehicle          string `json:"vehicle"`
	CurrentVehicle   string `json:"current_vehicle,omitempty"`
	BookingDate      string `json:"booking_date,omitempty"`
	Location         string `json:"location"`
	TimeFrame        string `json:"time_frame,omitempty"`
	LeadScore        string `json:"lead_score"`
	ActionStatus     string `json:"action_status"`
	SalesNotes       string `json:"sales_notes,omitempty"`
	LeadScoreLabel   string `json:"lead_score_label,omitempty"`
	NumericLeadScore int    `json:"numeric_lead_score"`
	BookingTimestamp string `json:"booking_timestamp,omitempty"`
}

func toBookingResponse(b *domain.Booking) bookingResponse {
	ts := ""
	if b.HasTimestamp() {
		ts = b.BookingTimestamp.Format(time.RFC3339)
	}
	return bookingResponse{
		ID:               b.ID,
		FullName:         b.FullName,
		Email:            b.Email,
		Vehicle:          b.Vehicle,
		CurrentVehicle:   b.CurrentVehicle,
		BookingDate:      b.BookingDate,
		Location:         b.Location,
		TimeFrame:        b.TimeFrame,
		LeadScore:        string(b.LeadScore),
		ActionStatus:     string(b.ActionStatus),
		SalesNotes:       b.SalesNotes,
		LeadScoreLabel:   b.LeadScoreLabel,
		NumericLeadScore: b.NumericLeadScore,
		BookingTimestamp: ts,
	}
}

type draftResponse struct {
	Subject string `json:"subject"`
	Body    string `json:"body"`
}

func (s *Server) listBookings(c *gin.Context) {
	from, err := parseTimeParam(c.Query("from"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": fmt.Sprintf("bad from: %v", err)})
		return
	}
	to, err := parseTimeParam(c.Query("to"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": fmt.Sprintf("bad to: %v", err)})
		return
	}

	bookings, err := s.bookings.ListBookings(c.Request.Context(), service.ListBookingsRequest{
		Location: c.Query("location"),
		From:     from,
		To:       to,
	})
	if err != nil {
		s.renderError(c, err)
		return
	}

	out := make([]bookingResponse, 0, len(bookings))
	for i := range bookings {
		out = append(out, toBookingResponse(&bookings[i]))
	}
	c.JSON(http.StatusOK, gin.H{"bookings": out, "count": len(out)})
}

type updateBookingRequest struct {
	Field string `json:"field" binding:"required"`
	Value string `json:"value"`
}

func (s *Server) updateBooking(c *gin.Context) {
	var req updateBookingRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	id := c.Param("id")
	if err := s.bookings.UpdateField(c.Request.Context(), id, req.Field, req.Value); err != nil {
		s.renderError(c, err)
		return
	}

	booking, err := s.bookings.GetBooking(c.Request.Context(), id)
	if err != nil {
		s.renderError(c, err)
		return
	}
	c.JSON(http.StatusOK, toBookingResponse(booking))
}

type askRequest struct {
	Question string `json:"question"`
	Location string `json:"location"`
}

// askAnalytics always answers 200 for well-formed requests: a question the
// interpreter cannot place gets the fallback message, not an error status.
func (s *Server) askAnalytics(c *gin.Context) {
	var req askRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	resp, err := s.analytics.Ask(c.Request.Context(), service.AskRequest{
		Question:       req.Question,
		ActiveLocation: req.Location,
	})
	if err != nil {
		s.renderError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"answer": resp.Answer})
}

type sendEmailRequest struct {
	Type string `json:"type" binding:"required"`
	Send bool   `json:"send"`
}

func (s *Server) sendBookingEmail(c *gin.Context) {
	var req sendEmailRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	id := c.Param("id")
	if !req.Send {
		draft, err := s.outreach.DraftEmail(c.Request.Context(), id, req.Type)
		if err != nil {
			s.renderError(c, err)
			return
		}
		c.JSON(http.StatusOK, gin.H{
			"draft": draftResponse{Subject: draft.Subject, Body: draft.Body},
			"sent":  false,
		})
		return
	}

	result, err := s.outreach.SendEmail(c.Request.Context(), id, req.Type)
	if err != nil {
		s.renderError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{
		"draft":          draftResponse{Subject: result.Draft.Subject, Body: result.Draft.Body},
		"sent":           true,
		"recipient":      result.Recipient,
		"status_updated": result.StatusUpdated,
	})
}

type testEmailRequest struct {
	To string `json:"to"`
}

func (s *Server) sendTestEmail(c *gin.Context) {
	var req testEmailRequest
	if c.Request.ContentLength > 0 {
		if err := c.ShouldBindJSON(&req); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
			return
		}
	}

	to := req.To
	if to == "" {
		to = s.opts.TestEmailTo
	}
	if err := s.outreach.SendTestEmail(c.Request.Context(), to); err != nil {
		s.renderError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"status": "sent", "to": to})
}

func (s *Server) analyzeNotes(c *gin.Context) {
	analysis, err := s.outreach.AnalyzeNotes(c.Request.Context(), c.Param("id"))
	if err != nil {
		s.renderError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{
		"sentiment": analysis.Sentiment,
		"relevance": analysis.Relevance,
	})
}

func (s *Server) exportBookings(c *gin.Context) {
	rows, err := s.bookings.ExportRows(c.Request.Context(), c.Query("location"))
	if err != nil {
		s.renderError(c, err)
		return
	}

	f := excelize.NewFile()
	defer f.Close()
	sheet := f.GetSheetName(0)
	for i := range rows {
		if err := f.SetSheetRow(sheet, fmt.Sprintf("A%d", i+1), &rows[i]); err != nil {
			s.renderError(c, err)
			return
		}
	}

	c.Header("Content-Disposition", `attachment; filename="bookings.xlsx"`)
	c.Header("Content-Type", "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet")
	if _, err := f.WriteTo(c.Writer); err != nil {
		_ = c.Error(err)
	}
}

func (s *Server) importBookings(c *gin.Context) {
	fileHeader, err := c.FormFile("file")
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": `multipart field "file" is required`})
		return
	}
	file, err := fileHeader.Open()
	if err != nil {
		s.renderError(c, err)
		return
	}
	defer file.Close()

	result, err := s.bookings.ImportFile(c.Request.Context(), file, fileHeader.Filename)
	if err != nil {
		s.renderError(c, err)
		return
	}
	c.JSON(http.StatusOK, result)
}

// renderError maps service errors onto HTTP statuses: unknown ids are 404,
// rejected input 400, everything else 500.
func (s *Server) renderError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, repository.ErrNotFound):
		c.JSON(http.StatusNotFound, gin.H{"error": err.Error()})
	case errors.Is(err, service.ErrInvalidInput):
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
	default:
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
	}
}

// parseTimeParam accepts RFC3339 or a bare date; the empty string means no
// bound.
func parseTimeParam(raw string) (*time.Time, error) {
	if raw == "" {
		return nil, nil
	}
	if t, err := time.Parse(time.RFC3339, raw); err == nil {
		t = t.UTC()
		return &t, nil
	}
	if t, err := time.Parse("2006-01-02", raw); err == nil {
		t = t.UTC()
		return &t, nil
	}
	return nil, fmt.Errorf("want RFC3339 or YYYY-MM-DD, got %q", raw)
}
