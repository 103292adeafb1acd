package crm_test

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/okian/leadscore/internal/adapters/crm"
	"github.com/okian/leadscore/internal/domain/model"
	"github.com/okian/leadscore/pkg/logger"
	. "github.com/smartystreets/goconvey/convey"
)

func TestMain(m *testing.M) {
	if err := logger.Init(); err != nil {
		panic(err)
	}
	m.Run()
}

func TestParseCompanySize(t *testing.T) {
	Convey("Given raw employee-count properties", t, func() {
		cases := []struct {
			raw  string
			want int
		}{
			{"", 0},
			{"250", 250},
			{" 42 ", 42},
			{"11-50", 50},
			{"201 - 1000", 1000},
			{"lots", 0},
			{"-3", 0},
		}
		for _, tc := range cases {
			So(crm.ParseCompanySize(tc.raw), ShouldEqual, tc.want)
		}
	})
}

func TestFetchLeads_DemoMode(t *testing.T) {
	Convey("Given a client in demo mode", t, func() {
		now := time.Date(2025, 5, 12, 12, 0, 0, 0, time.UTC)
		client := crm.New(
			crm.WithDemoMode(true),
			crm.WithNow(func() time.Time { return now }),
		)

		Convey("When leads are fetched", func() {
			leads := client.FetchLeads(context.Background(), 100)

			Convey("Then the full demo dataset is returned without network I/O", func() {
				So(leads, ShouldHaveLength, 5)
				So(leads[0].ID, ShouldEqual, "demo-1")
				So(leads[0].Name, ShouldEqual, "Sarah Johnson")
				So(leads[0].Company, ShouldEqual, "TechCorp Industries")
				So(leads[0].CompanySize, ShouldEqual, 250)
				So(leads[0].DealStage, ShouldEqual, "opportunity")
				So(leads[0].Engagement.EmailOpens, ShouldEqual, 15)
				So(leads[0].Engagement.LastEmailOpen, ShouldNotBeNil)
			})

			Convey("Then every demo lead passes validation", func() {
				for _, lead := range leads {
					So(lead.Validate(), ShouldBeNil)
				}
			})

			Convey("Then the dataset spans the engagement spectrum", func() {
				So(leads[2].Engagement.EmailOpens, ShouldEqual, 22)
				So(leads[3].Engagement.EmailClicks, ShouldEqual, 0)
				So(leads[3].Engagement.LastCRMActivity, ShouldBeNil)
			})
		})
	})
}

func TestFetchLeads_Upstream(t *testing.T) {
	Convey("Given a CRM serving two contacts", t, func() {
		var gotAuth, gotLimit string
		srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			gotAuth = r.Header.Get("Authorization")
			gotLimit = r.URL.Query().Get("limit")
			w.Header().Set("Content-Type", "application/json")
			_, _ = w.Write([]byte(`{
				"results": [
					{
						"id": "101",
						"properties": {
							"email": "ana@corp.example",
							"firstname": "Ana",
							"lastname": "Silva",
							"company": "Corp",
							"jobtitle": "CFO",
							"numberofemployees": "11-50",
							"lifecyclestage": "qualified",
							"createdate": "2025-04-01T09:00:00Z",
							"lastmodifieddate": "2025-05-10T09:00:00Z"
						}
					},
					{
						"id": "102",
						"properties": {}
					}
				]
			}`))
		}))
		defer srv.Close()

		client := crm.New(
			crm.WithAPIKey("test-key"),
			crm.WithBaseURL(srv.URL),
		)

		Convey("When leads are fetched", func() {
			leads := client.FetchLeads(context.Background(), 2)

			Convey("Then the request carries the token and limit", func() {
				So(gotAuth, ShouldEqual, "Bearer test-key")
				So(gotLimit, ShouldEqual, "2")
			})

			Convey("Then properties map onto the lead fields", func() {
				So(leads, ShouldHaveLength, 2)
				So(leads[0].ID, ShouldEqual, "101")
				So(leads[0].Email, ShouldEqual, "ana@corp.example")
				So(leads[0].Name, ShouldEqual, "Ana Silva")
				So(leads[0].CompanySize, ShouldEqual, 50)
				So(leads[0].DealStage, ShouldEqual, "qualified")
				So(leads[0].CreatedAt, ShouldEqual, time.Date(2025, 4, 1, 9, 0, 0, 0, time.UTC))
				So(leads[0].LastActivity, ShouldNotBeNil)
				So(*leads[0].LastActivity, ShouldEqual, time.Date(2025, 5, 10, 9, 0, 0, 0, time.UTC))
			})

			Convey("Then a contact without an email gets a placeholder address", func() {
				So(leads[1].Email, ShouldEqual, "contact102@example.com")
				So(leads[1].Validate(), ShouldBeNil)
			})
		})
	})

	Convey("Given a CRM that errors", t, func() {
		srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			w.WriteHeader(http.StatusBadGateway)
		}))
		defer srv.Close()

		client := crm.New(crm.WithBaseURL(srv.URL))

		Convey("Then fetching yields an empty slice rather than an error", func() {
			So(client.FetchLeads(context.Background(), 10), ShouldBeEmpty)
		})
	})

	Convey("Given an unreachable CRM", t, func() {
		client := crm.New(crm.WithBaseURL("http://127.0.0.1:1"))

		Convey("Then fetching yields an empty slice", func() {
			So(client.FetchLeads(context.Background(), 10), ShouldBeEmpty)
		})
	})
}

func TestFetchActivities(t *testing.T) {
	Convey("Given a client in demo mode", t, func() {
		client := crm.New(crm.WithDemoMode(true))

		Convey("Then the canned activity trail is attributed to the lead", func() {
			activities := client.FetchActivities(context.Background(), "demo-1")
			So(activities, ShouldHaveLength, 3)
			for _, a := range activities {
				So(a.LeadID, ShouldEqual, "demo-1")
				So(a.ID, ShouldNotBeEmpty)
			}
			So(activities[0].Type, ShouldEqual, model.ActivityCRMCall)
		})
	})

	Convey("Given a CRM serving engagement events", t, func() {
		srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			w.Header().Set("Content-Type", "application/json")
			_, _ = w.Write([]byte(`{
				"results": [
					{
						"id": "evt-1",
						"type": "MEETING",
						"timestamp": "2025-05-11T15:00:00Z",
						"properties": {"hs_note_body": "Quarterly review"}
					},
					{
						"id": "evt-2",
						"type": "FAX",
						"timestamp": "not-a-time",
						"properties": {}
					}
				]
			}`))
		}))
		defer srv.Close()

		client := crm.New(crm.WithBaseURL(srv.URL))

		Convey("Then known event types map onto the activity vocabulary", func() {
			activities := client.FetchActivities(context.Background(), "lead-7")
			So(activities, ShouldHaveLength, 2)
			So(activities[0].Type, ShouldEqual, model.ActivityCRMMeeting)
			So(activities[0].Description, ShouldEqual, "Quarterly review")
			So(activities[0].Timestamp, ShouldEqual, time.Date(2025, 5, 11, 15, 0, 0, 0, time.UTC))

			Convey("And unknown types fall back to a note with a clock fallback", func() {
				So(activities[1].Type, ShouldEqual, model.ActivityCRMNote)
				So(activities[1].Timestamp, ShouldHappenWithin, time.Minute, time.Now())
			})
		})
	})
}
