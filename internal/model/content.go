// internal/model/content.go
package model

// GeneratedContent is the four-field result of a newsletter generation.
// All fields are guaranteed non-empty by the generator.
type GeneratedContent struct {
    Subject      string `json:"subject"`
    PreviewText  string `json:"preview_text"`
    HTMLContent  string `json:"html_content"`
    PlainContent string `json:"plain_content"`
}

// DispatchResult aggregates the outcome of sending every batch of a campaign.
// Sent+Failed always equals the total recipient count.
type DispatchResult struct {
    Success bool     `json:"success"`
    Sent    int      `json:"sent"`
    Failed  int      `json:"failed"`
    Errors  []string `json:"errors"`
}
