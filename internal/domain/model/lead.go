// Package model contains domain models passed between layers.
package model

import (
	"fmt"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"
)

// EngagementSummary is an immutable snapshot of a lead's engagement
// counts and per-channel last-occurrence timestamps, taken per scoring pass.
type EngagementSummary struct {
	EmailOpens       int        `json:"email_opens"`
	EmailClicks      int        `json:"email_clicks"`
	WebsiteVisits    int        `json:"website_visits"`
	CRMActivities    int        `json:"crm_activities"`
	LastEmailOpen    *time.Time `json:"last_email_open,omitempty"`
	LastWebsiteVisit *time.Time `json:"last_website_visit,omitempty"`
	LastCRMActivity  *time.Time `json:"last_crm_activity,omitempty"`
}

// Lead is a prospective customer record. Leads are produced fresh by the
// CRM adapter each fetch cycle and never mutated in place.
type Lead struct {
	ID        string `json:"id" validate:"required"`
	Email     string `json:"email" validate:"required,email"`
	Name      string `json:"name,omitempty"`
	FirstName string `json:"first_name,omitempty"`
	LastName  string `json:"last_name,omitempty"`
	Company   string `json:"company,omitempty"`
	JobTitle  string `json:"job_title,omitempty"`
	Phone     string `json:"phone,omitempty"`

	// CompanySize is the employee count; 0 means unknown.
	CompanySize int `json:"company_size,omitempty" validate:"omitempty,gt=0"`

	// DealStage is the raw CRM lifecycle stage string; use Stage() for
	// the closed vocabulary.
	DealStage string `json:"deal_stage,omitempty"`

	CreatedAt    time.Time         `json:"created_at"`
	LastActivity *time.Time        `json:"last_activity,omitempty"`
	Engagement   EngagementSummary `json:"engagement"`
}

var leadValidator = validator.New(validator.WithRequiredStructEnabled())

// Validate checks the lead's required identity fields. Optional fields are
// never a validation concern; scorers degrade them to documented defaults.
func (l Lead) Validate() error {
	if err := leadValidator.Struct(l); err != nil {
		return fmt.Errorf("%w: %w", ErrInvalidLead, err)
	}
	return nil
}

// Stage maps the raw deal stage onto the closed stage vocabulary.
func (l Lead) Stage() Stage {
	return StageFromString(l.DealStage)
}

// FullName returns the display name, falling back to first/last name parts.
func (l Lead) FullName() string {
	if l.Name != "" {
		return l.Name
	}
	return strings.TrimSpace(l.FirstName + " " + l.LastName)
}
