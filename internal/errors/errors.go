// internal/errors/errors.go
package appErrors

import "fmt"

// ErrCampaignNotFound is a sentinel error
type ErrCampaignNotFound struct {
    CampaignID int
}

func (e *ErrCampaignNotFound) Error() string {
    return fmt.Sprintf("campaign with ID %d not found", e.CampaignID)
}

// Helper constructor
func NewCampaignNotFound(id int) error {
    return &ErrCampaignNotFound{CampaignID: id}
}

// ErrGenerationFailed means the generation call errored or returned a payload
// that does not match the four-field schema. Fatal to the invocation: no
// draft is created or mutated.
type ErrGenerationFailed struct {
    Reason string
}

func (e *ErrGenerationFailed) Error() string {
    return fmt.Sprintf("content generation failed: %s", e.Reason)
}

func NewGenerationFailed(format string, args ...any) error {
    return &ErrGenerationFailed{Reason: fmt.Sprintf(format, args...)}
}

// ErrCampaignSendRejected means a send was refused before any delivery
// attempt: no active recipients, or the campaign's status disallows sending.
// No state is mutated.
type ErrCampaignSendRejected struct {
    CampaignID int
    Reason     string
}

func (e *ErrCampaignSendRejected) Error() string {
    return fmt.Sprintf("campaign %d cannot be sent: %s", e.CampaignID, e.Reason)
}

func NewCampaignSendRejected(id int, format string, args ...any) error {
    return &ErrCampaignSendRejected{CampaignID: id, Reason: fmt.Sprintf(format, args...)}
}
