// internal/model/campaign.go
package model

import "time"

// Campaign statuses. Transitions are monotonic:
// draft -> scheduled -> sending -> sent, and draft/scheduled -> cancelled.
const (
    StatusDraft     = "draft"
    StatusScheduled = "scheduled"
    StatusSending   = "sending"
    StatusSent      = "sent"
    StatusCancelled = "cancelled"
)

type Campaign struct {
    ID             int        `db:"id" json:"id"`
    Subject        string     `db:"subject" json:"subject"`
    PreviewText    string     `db:"preview_text" json:"preview_text"`
    PlainContent   string     `db:"plain_content" json:"plain_content"`
    HTMLContent    string     `db:"html_content" json:"html_content"`
    Status         string     `db:"status" json:"status"`
    ScheduledAt    *time.Time `db:"scheduled_at" json:"scheduled_at,omitempty"`
    SentAt         *time.Time `db:"sent_at" json:"sent_at,omitempty"`
    RecipientCount int        `db:"recipient_count" json:"recipient_count"`
    OpenCount      int        `db:"open_count" json:"open_count"`
    ClickCount     int        `db:"click_count" json:"click_count"`
    CreatedBy      string     `db:"created_by" json:"created_by"`
    CreatedAt      time.Time  `db:"created_at" json:"created_at"`
    UpdatedAt      *time.Time `db:"updated_at" json:"updated_at,omitempty"`
}
