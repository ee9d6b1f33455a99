package domain

import "strings"

type LeadScore string

const (
	LeadHot  LeadScore = "Hot"
	LeadWarm LeadScore = "Warm"
	LeadCold LeadScore = "Cold"
	LeadNew  LeadScore = "New"
)

// ValidLeadScores is the canonical set of accepted lead score strings.
// Storage is case-sensitive; input matching is not (see ParseLeadScore).
var ValidLeadScores = map[LeadScore]bool{
	LeadHot: true, LeadWarm: true, LeadCold: true, LeadNew: true,
}

type ActionStatus string

const (
	StatusNewLead       ActionStatus = "New Lead"
	StatusCallScheduled ActionStatus = "Call Scheduled"
	StatusFollowUp      ActionStatus = "Follow Up Required"
	StatusLost          ActionStatus = "Lost"
	StatusConverted     ActionStatus = "Converted"
)

// ValidActionStatuses is the canonical set of accepted pipeline stages.
var ValidActionStatuses = map[ActionStatus]bool{
	StatusNewLead: true, StatusCallScheduled: true, StatusFollowUp: true,
	StatusLost: true, StatusConverted: true,
}

// Locations is the closed set of dealership locations. The sentinel
// AllLocations is a UI filter value, not a storable location.
var Locations = []string{"New York", "Los Angeles", "Chicago", "Houston", "Miami"}

const AllLocations = "All Locations"

// ValidLocation reports whether loc names a real dealership
// (case-sensitive, matching storage).
func ValidLocation(loc string) bool {
	for _, l := range Locations {
		if l == loc {
			return true
		}
	}
	return false
}

// ParseLeadScore resolves user input to a canonical lead score.
// Input is matched case-insensitively; the stored form keeps canonical case.
func ParseLeadScore(s string) (LeadScore, bool) {
	for score := range ValidLeadScores {
		if strings.EqualFold(string(score), strings.TrimSpace(s)) {
			return score, true
		}
	}
	return "", false
}

// ParseActionStatus resolves user input to a canonical action status.
func ParseActionStatus(s string) (ActionStatus, bool) {
	for status := range ValidActionStatuses {
		if strings.EqualFold(string(status), strings.TrimSpace(s)) {
			return status, true
		}
	}
	return "", false
}

// allowedStatuses maps a lead score to the pipeline stages it may occupy.
// Cold leads skip the scheduling stages.
var allowedStatuses = map[LeadScore][]ActionStatus{
	LeadHot:  {StatusNewLead, StatusCallScheduled, StatusFollowUp, StatusLost, StatusConverted},
	LeadWarm: {StatusNewLead, StatusCallScheduled, StatusFollowUp, StatusLost, StatusConverted},
	LeadCold: {StatusNewLead, StatusLost, StatusConverted},
	LeadNew:  {StatusNewLead, StatusCallScheduled, StatusFollowUp, StatusLost, StatusConverted},
}

// AllowedStatuses returns the action statuses a lead with the given score
// may be moved to. Unknown scores get the full set.
func AllowedStatuses(score LeadScore) []ActionStatus {
	if statuses, ok := allowedStatuses[score]; ok {
		return statuses
	}
	return allowedStatuses[LeadNew]
}
