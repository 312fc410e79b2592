package analyses

import "time"

// Analysis modes. Every record carries exactly one.
const (
	ModeRoast = "roast"
	ModeATS   = "ats"
)

// Record is the persisted outcome of one roast or ATS request. Records are
// immutable once created; there is no update or delete path.
type Record struct {
	ID               string         `json:"id"`
	CreatedAt        time.Time      `json:"createdAt"`
	Mode             string         `json:"mode"`
	Language         string         `json:"language,omitempty"`
	ResumeTextLength int            `json:"resumeTextLength"`
	Result           map[string]any `json:"result"`
	ATSScore         *int           `json:"atsScore,omitempty"`
}
