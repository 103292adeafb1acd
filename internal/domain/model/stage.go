package model

import "strings"

// Stage is the closed deal-stage vocabulary. Raw CRM stage strings are
// mapped case-insensitively; anything unrecognized (including absent)
// falls back to StageLead.
type Stage int

const (
	StageLead Stage = iota // zero value doubles as the fallback
	StageSubscriber
	StageMarketingQualified
	StageQualified
	StageOpportunity
	StageCustomer
)

// StageFromString parses a raw CRM lifecycle stage. Unknown or empty
// input returns StageLead.
func StageFromString(s string) Stage {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "subscriber":
		return StageSubscriber
	case "lead":
		return StageLead
	case "marketing_qualified":
		return StageMarketingQualified
	case "qualified":
		return StageQualified
	case "opportunity":
		return StageOpportunity
	case "customer":
		return StageCustomer
	default:
		return StageLead
	}
}

func (s Stage) String() string {
	switch s {
	case StageSubscriber:
		return "subscriber"
	case StageLead:
		return "lead"
	case StageMarketingQualified:
		return "marketing_qualified"
	case StageQualified:
		return "qualified"
	case StageOpportunity:
		return "opportunity"
	case StageCustomer:
		return "customer"
	default:
		return "lead"
	}
}
