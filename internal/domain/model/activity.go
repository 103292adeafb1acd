package model

import (
	"time"

	"github.com/google/uuid"
)

// ActivityType enumerates the kinds of engagement events a CRM reports.
type ActivityType string

const (
	ActivityEmailOpen       ActivityType = "email_open"
	ActivityEmailClick      ActivityType = "email_click"
	ActivityEmailReply      ActivityType = "email_reply"
	ActivityWebsiteVisit    ActivityType = "website_visit"
	ActivityCRMCall         ActivityType = "crm_call"
	ActivityCRMMeeting      ActivityType = "crm_meeting"
	ActivityCRMNote         ActivityType = "crm_note"
	ActivityCRMEmail        ActivityType = "crm_email"
	ActivityDealStageChange ActivityType = "deal_stage_change"
)

// Activity is an individual engagement event attached to a lead.
type Activity struct {
	ID          string            `json:"id"`
	LeadID      string            `json:"lead_id"`
	Type        ActivityType      `json:"activity_type"`
	Timestamp   time.Time         `json:"timestamp"`
	Description string            `json:"description,omitempty"`
	Metadata    map[string]string `json:"metadata,omitempty"`
}

// NewActivity creates an Activity with a generated id.
func NewActivity(leadID string, typ ActivityType, ts time.Time, description string) Activity {
	return Activity{
		ID:          uuid.NewString(),
		LeadID:      leadID,
		Type:        typ,
		Timestamp:   ts,
		Description: description,
	}
}
