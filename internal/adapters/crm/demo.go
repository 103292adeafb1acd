package crm

import (
	"time"

	"github.com/okian/leadscore/internal/domain/model"
)

func timePtr(t time.Time) *time.Time { return &t }

// demoLeads is the built-in dataset served in demo mode. The five leads
// cover the whole scoring range: a hot opportunity, a fading qualified
// lead, a very hot enterprise deal, a dormant subscriber, and a warm
// mid-market opportunity.
func demoLeads(now time.Time) []model.Lead {
	return []model.Lead{
		{
			ID:           "demo-1",
			Email:        "sarah.johnson@techcorp.com",
			FirstName:    "Sarah",
			LastName:     "Johnson",
			Name:         "Sarah Johnson",
			Company:      "TechCorp Industries",
			JobTitle:     "VP of Engineering",
			Phone:        "+1-555-0101",
			CompanySize:  250,
			DealStage:    "opportunity",
			CreatedAt:    now.AddDate(0, 0, -30),
			LastActivity: timePtr(now.Add(-2 * time.Hour)),
			Engagement: model.EngagementSummary{
				EmailOpens:       15,
				EmailClicks:      8,
				WebsiteVisits:    12,
				CRMActivities:    6,
				LastEmailOpen:    timePtr(now.Add(-2 * time.Hour)),
				LastWebsiteVisit: timePtr(now.Add(-4 * time.Hour)),
				LastCRMActivity:  timePtr(now.AddDate(0, 0, -1)),
			},
		},
		{
			ID:           "demo-2",
			Email:        "michael.chen@startupco.io",
			FirstName:    "Michael",
			LastName:     "Chen",
			Name:         "Michael Chen",
			Company:      "StartupCo",
			JobTitle:     "CTO",
			Phone:        "+1-555-0102",
			CompanySize:  25,
			DealStage:    "qualified",
			CreatedAt:    now.AddDate(0, 0, -15),
			LastActivity: timePtr(now.AddDate(0, 0, -7)),
			Engagement: model.EngagementSummary{
				EmailOpens:       3,
				EmailClicks:      1,
				WebsiteVisits:    2,
				CRMActivities:    1,
				LastEmailOpen:    timePtr(now.AddDate(0, 0, -7)),
				LastWebsiteVisit: timePtr(now.AddDate(0, 0, -10)),
				LastCRMActivity:  timePtr(now.AddDate(0, 0, -14)),
			},
		},
		{
			ID:           "demo-3",
			Email:        "jennifer.martinez@enterprise.com",
			FirstName:    "Jennifer",
			LastName:     "Martinez",
			Name:         "Jennifer Martinez",
			Company:      "Enterprise Solutions Inc",
			JobTitle:     "Director of Sales",
			Phone:        "+1-555-0103",
			CompanySize:  5000,
			DealStage:    "opportunity",
			CreatedAt:    now.AddDate(0, 0, -45),
			LastActivity: timePtr(now.Add(-1 * time.Hour)),
			Engagement: model.EngagementSummary{
				EmailOpens:       22,
				EmailClicks:      12,
				WebsiteVisits:    18,
				CRMActivities:    10,
				LastEmailOpen:    timePtr(now.Add(-1 * time.Hour)),
				LastWebsiteVisit: timePtr(now.Add(-3 * time.Hour)),
				LastCRMActivity:  timePtr(now.Add(-6 * time.Hour)),
			},
		},
		{
			ID:           "demo-4",
			Email:        "david.kim@smallbiz.net",
			FirstName:    "David",
			LastName:     "Kim",
			Name:         "David Kim",
			Company:      "Small Business LLC",
			JobTitle:     "Owner",
			Phone:        "+1-555-0104",
			CompanySize:  5,
			DealStage:    "subscriber",
			CreatedAt:    now.AddDate(0, 0, -60),
			LastActivity: timePtr(now.AddDate(0, 0, -30)),
			Engagement: model.EngagementSummary{
				EmailOpens:       1,
				EmailClicks:      0,
				WebsiteVisits:    1,
				CRMActivities:    0,
				LastEmailOpen:    timePtr(now.AddDate(0, 0, -30)),
				LastWebsiteVisit: timePtr(now.AddDate(0, 0, -45)),
			},
		},
		{
			ID:           "demo-5",
			Email:        "amanda.williams@growthco.com",
			FirstName:    "Amanda",
			LastName:     "Williams",
			Name:         "Amanda Williams",
			Company:      "GrowthCo",
			JobTitle:     "Head of Marketing",
			Phone:        "+1-555-0105",
			CompanySize:  150,
			DealStage:    "opportunity",
			CreatedAt:    now.AddDate(0, 0, -20),
			LastActivity: timePtr(now.Add(-12 * time.Hour)),
			Engagement: model.EngagementSummary{
				EmailOpens:       10,
				EmailClicks:      6,
				WebsiteVisits:    8,
				CRMActivities:    4,
				LastEmailOpen:    timePtr(now.Add(-12 * time.Hour)),
				LastWebsiteVisit: timePtr(now.Add(-18 * time.Hour)),
				LastCRMActivity:  timePtr(now.AddDate(0, 0, -2)),
			},
		},
	}
}

// demoActivities is the canned activity trail served in demo mode.
func demoActivities(leadID string, now time.Time) []model.Activity {
	return []model.Activity{
		model.NewActivity(leadID, model.ActivityCRMCall, now.AddDate(0, 0, -1), "Discovery call - discussed pain points"),
		model.NewActivity(leadID, model.ActivityCRMEmail, now.AddDate(0, 0, -2), "Sent pricing information"),
		model.NewActivity(leadID, model.ActivityCRMMeeting, now.AddDate(0, 0, -7), "Product demo"),
	}
}
