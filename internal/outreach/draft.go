package outreach

import (
	"fmt"
	"strings"

	"github.com/aoemotors/leaddesk/internal/domain"
)

// EmailType selects one of the fixed outreach templates. The values are
// what the email log stores.
type EmailType string

const (
	EmailFollowUp EmailType = "followup"
	EmailLost     EmailType = "lost"
	EmailWelcome  EmailType = "welcome"
)

// ParseEmailType resolves user input to an EmailType, case-insensitively.
func ParseEmailType(s string) (EmailType, bool) {
	switch EmailType(strings.ToLower(strings.TrimSpace(s))) {
	case EmailFollowUp:
		return EmailFollowUp, true
	case EmailLost:
		return EmailLost, true
	case EmailWelcome:
		return EmailWelcome, true
	}
	return "", false
}

// Draft is a rendered outreach email, ready to send or show.
type Draft struct {
	Subject string
	Body    string
}

// Compose renders the template for emailType against the booking. An
// unknown type is an error; a vehicle missing from the catalog just
// renders with empty features.
func Compose(emailType EmailType, b *domain.Booking) (Draft, error) {
	switch emailType {
	case EmailFollowUp:
		return composeFollowUp(b), nil
	case EmailLost:
		return composeLost(b), nil
	case EmailWelcome:
		return composeWelcome(b), nil
	default:
		return Draft{}, fmt.Errorf("unknown email type %q", emailType)
	}
}

func composeFollowUp(b *domain.Booking) Draft {
	features := domain.VehicleCatalog[b.Vehicle].Features
	return Draft{
		Subject: fmt.Sprintf("Follow-up on your %s Test Drive", b.Vehicle),
		Body: fmt.Sprintf(
			"Dear %s,\n\nThank you for test driving the %s. Here are some features: %s.\nRegards, AOE Motors",
			b.FullName, b.Vehicle, features),
	}
}

func composeLost(b *domain.Booking) Draft {
	return Draft{
		Subject: fmt.Sprintf("We Miss You, %s!", b.FullName),
		Body: fmt.Sprintf(
			"Dear %s,\nWe noticed you haven't moved forward with %s. Let us know how to help.\nAOE Motors Team",
			b.FullName, b.Vehicle),
	}
}

func composeWelcome(b *domain.Booking) Draft {
	return Draft{
		Subject: fmt.Sprintf("Welcome to the AOE Family, %s!", b.FullName),
		Body: fmt.Sprintf(
			"Dear %s,\nWelcome! We're thrilled you chose the %s. Next steps emailed soon.\nAOE Motors Team",
			b.FullName, b.Vehicle),
	}
}
