package notify

import (
	"strconv"
	"time"

	"github.com/okian/leadscore/internal/domain/model"
)

// slackMessage is the incoming-webhook payload shape.
type slackMessage struct {
	Channel     string       `json:"channel"`
	Username    string       `json:"username"`
	IconEmoji   string       `json:"icon_emoji"`
	Text        string       `json:"text,omitempty"`
	Attachments []attachment `json:"attachments"`
}

type attachment struct {
	Color      string            `json:"color"`
	Title      string            `json:"title,omitempty"`
	Fields     []attachmentField `json:"fields"`
	Footer     string            `json:"footer"`
	FooterIcon string            `json:"footer_icon,omitempty"`
	Timestamp  int64             `json:"ts"`
}

type attachmentField struct {
	Title string `json:"title"`
	Value string `json:"value"`
	Short bool   `json:"short"`
}

func hotLeadMessage(channel string, score model.LeadScore, now time.Time) slackMessage {
	return slackMessage{
		Channel:   channel,
		Username:  "LeadScore Bot",
		IconEmoji: ":fire:",
		Attachments: []attachment{{
			Color: "#ff0000",
			Title: "\U0001F525 Hot Lead Alert - Score: " + formatScore(score.Score),
			Fields: []attachmentField{
				{Title: "Name", Value: orNA(score.Name()), Short: true},
				{Title: "Company", Value: orNA(score.Company()), Short: true},
				{Title: "Email", Value: score.Email(), Short: true},
				{Title: "Job Title", Value: orNA(score.Lead.JobTitle), Short: true},
				{Title: "Deal Stage", Value: orNA(score.Lead.DealStage), Short: true},
				{Title: "Score", Value: formatScore(score.Score) + "/100", Short: true},
			},
			Footer:     "LeadScore",
			FooterIcon: "https://platform.slack-edge.com/img/default_application_icon.png",
			Timestamp:  now.Unix(),
		}},
	}
}

func summaryMessage(channel string, total, hot, warm int, now time.Time) slackMessage {
	return slackMessage{
		Channel:   channel,
		Username:  "LeadScore Bot",
		IconEmoji: ":chart_with_upwards_trend:",
		Text:      "Lead scores updated: " + strconv.Itoa(total) + " total leads",
		Attachments: []attachment{{
			Color: "#36a64f",
			Fields: []attachmentField{
				{Title: "Hot Leads", Value: strconv.Itoa(hot), Short: true},
				{Title: "Warm Leads", Value: strconv.Itoa(warm), Short: true},
				{Title: "Cold Leads", Value: strconv.Itoa(total - hot - warm), Short: true},
			},
			Footer:    "LeadScore",
			Timestamp: now.Unix(),
		}},
	}
}

func formatScore(score float64) string {
	return strconv.FormatFloat(score, 'f', -1, 64)
}

func orNA(v string) string {
	if v == "" {
		return "N/A"
	}
	return v
}
