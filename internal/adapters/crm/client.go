// Package crm fetches leads and activities from a HubSpot-style CRM.
//
// The client is deliberately forgiving: a transient upstream failure
// yields an empty lead set and a log line, never an error, so a broken
// CRM connection degrades one scoring cycle instead of aborting it.
package crm

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	"github.com/okian/leadscore/internal/domain/model"
	"github.com/okian/leadscore/pkg/logger"
	"github.com/okian/leadscore/pkg/metrics"
)

const defaultRequestTimeout = 10 * time.Second

// Client talks to the CRM contacts API. In demo mode it serves the
// built-in dataset without any network I/O.
type Client struct {
	apiKey  string
	baseURL string
	demo    bool
	httpc   *http.Client
	logger  logger.Logger
	now     func() time.Time
}

// New creates a CRM client with configuration options.
func New(opts ...Option) *Client {
	c := &Client{
		baseURL: "https://api.hubapi.com",
		httpc:   &http.Client{Timeout: defaultRequestTimeout},
		now:     time.Now,
	}
	for _, opt := range opts {
		opt(c)
	}
	if c.logger == nil {
		c.logger = logger.Get().Named("crm")
	}
	return c
}

// FetchLeads returns up to limit leads. On any upstream failure it logs
// the cause and returns an empty slice; callers treat that as a no-op
// cycle rather than an error.
func (c *Client) FetchLeads(ctx context.Context, limit int) []model.Lead {
	if c.demo {
		return demoLeads(c.now().UTC())
	}

	endpoint := fmt.Sprintf("%s/crm/v3/objects/contacts?limit=%d", c.baseURL, limit)
	var payload contactsResponse
	if err := c.getJSON(ctx, endpoint, &payload); err != nil {
		metrics.RecordFetchError()
		c.logger.Error(ctx, "fetching contacts failed", logger.Error(err))
		return []model.Lead{}
	}

	leads := make([]model.Lead, 0, len(payload.Results))
	for _, contact := range payload.Results {
		leads = append(leads, c.parseContact(contact))
	}
	return leads
}

// FetchActivities returns the engagement events recorded for a lead,
// empty on failure.
func (c *Client) FetchActivities(ctx context.Context, leadID string) []model.Activity {
	if c.demo {
		return demoActivities(leadID, c.now().UTC())
	}

	endpoint := fmt.Sprintf("%s/crm/v3/objects/contacts/%s/associations/activities", c.baseURL, url.PathEscape(leadID))
	var payload activitiesResponse
	if err := c.getJSON(ctx, endpoint, &payload); err != nil {
		metrics.RecordFetchError()
		c.logger.Error(ctx, "fetching activities failed",
			logger.String("lead_id", leadID),
			logger.Error(err),
		)
		return []model.Activity{}
	}

	activities := make([]model.Activity, 0, len(payload.Results))
	for _, raw := range payload.Results {
		activities = append(activities, c.parseActivity(leadID, raw))
	}
	return activities
}

func (c *Client) getJSON(ctx context.Context, endpoint string, out any) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint, nil)
	if err != nil {
		return fmt.Errorf("build request: %w", err)
	}
	req.Header.Set("Authorization", "Bearer "+c.apiKey)
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.httpc.Do(req)
	if err != nil {
		return fmt.Errorf("do request: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return fmt.Errorf("unexpected status %d", resp.StatusCode)
	}
	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return fmt.Errorf("decode response: %w", err)
	}
	return nil
}

// contactsResponse mirrors the CRM contacts listing payload.
type contactsResponse struct {
	Results []contactPayload `json:"results"`
}

type contactPayload struct {
	ID         string            `json:"id"`
	Properties map[string]string `json:"properties"`
}

type activitiesResponse struct {
	Results []activityPayload `json:"results"`
}

type activityPayload struct {
	ID         string            `json:"id"`
	Type       string            `json:"type"`
	Timestamp  string            `json:"timestamp"`
	Properties map[string]string `json:"properties"`
}

func (c *Client) parseContact(contact contactPayload) model.Lead {
	props := contact.Properties
	now := c.now().UTC()

	email := props["email"]
	if email == "" {
		email = fmt.Sprintf("contact%s@example.com", contact.ID)
	}

	name := strings.TrimSpace(props["firstname"] + " " + props["lastname"])
	lastActivity := parseTimeOr(props["lastmodifieddate"], now)

	return model.Lead{
		ID:           contact.ID,
		Email:        email,
		FirstName:    props["firstname"],
		LastName:     props["lastname"],
		Name:         name,
		Company:      props["company"],
		JobTitle:     props["jobtitle"],
		Phone:        props["phone"],
		CompanySize:  ParseCompanySize(props["numberofemployees"]),
		DealStage:    props["lifecyclestage"],
		CreatedAt:    parseTimeOr(props["createdate"], now),
		LastActivity: &lastActivity,
	}
}

func (c *Client) parseActivity(leadID string, raw activityPayload) model.Activity {
	typ := model.ActivityCRMNote
	switch strings.ToUpper(raw.Type) {
	case "CALL":
		typ = model.ActivityCRMCall
	case "MEETING":
		typ = model.ActivityCRMMeeting
	case "NOTE":
		typ = model.ActivityCRMNote
	case "EMAIL":
		typ = model.ActivityCRMEmail
	}

	return model.Activity{
		ID:          raw.ID,
		LeadID:      leadID,
		Type:        typ,
		Timestamp:   parseTimeOr(raw.Timestamp, c.now().UTC()),
		Description: raw.Properties["hs_note_body"],
		Metadata:    raw.Properties,
	}
}

// ParseCompanySize parses an employee-count property. CRMs report either
// a plain integer or a range like "11-50"; ranges resolve to their upper
// bound. Unparseable input yields 0 (unknown).
func ParseCompanySize(raw string) int {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return 0
	}
	if _, upper, ok := strings.Cut(raw, "-"); ok {
		raw = strings.TrimSpace(upper)
	}
	size, err := strconv.Atoi(raw)
	if err != nil || size < 0 {
		return 0
	}
	return size
}

func parseTimeOr(raw string, fallback time.Time) time.Time {
	if raw == "" {
		return fallback
	}
	t, err := time.Parse(time.RFC3339, raw)
	if err != nil {
		return fallback
	}
	return t.UTC()
}
