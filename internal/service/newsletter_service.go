// internal/service/newsletter_service.go
package service

import (
    "context"
    "log"
    "net/mail"
    "time"

    appErrors "github.com/Gopoint-hub/truck-savers-web-sub000/internal/errors"
    "github.com/Gopoint-hub/truck-savers-web-sub000/internal/model"
    "github.com/Gopoint-hub/truck-savers-web-sub000/internal/repository"
)

type NewsletterService struct {
    CampaignRepo   repository.CampaignRepositoryInterface
    SubscriberRepo repository.SubscriberRepositoryInterface
    Composer       *PromptComposer
    Generator      *ContentGenerator
    Resolver       *PlaceholderResolver
    Renderer       *TemplateRenderer
    Dispatcher     *Dispatcher
}

// Generate runs the full content pipeline: compose -> generate -> resolve
// placeholders -> wrap in the brand shell. The returned HTML is token-free.
// Nothing is persisted; a failed generation leaves existing drafts untouched.
func (s *NewsletterService) Generate(ctx context.Context, prompt, previousContent, editInstructions string) (*model.GeneratedContent, error) {
    req := s.Composer.Compose(prompt, previousContent, editInstructions)

    content, err := s.Generator.Generate(ctx, req)
    if err != nil {
        return nil, err
    }

    resolved := s.Resolver.Resolve(ctx, content.HTMLContent)
    content.HTMLContent = s.Renderer.Render(resolved)
    return content, nil
}

// SaveDraft persists generated content as a draft campaign. Content that
// still carries placeholder tokens is rejected.
func (s *NewsletterService) SaveDraft(content *model.GeneratedContent, createdBy string) (*model.Campaign, error) {
    if content.Subject == "" || content.PreviewText == "" || content.HTMLContent == "" || content.PlainContent == "" {
        return nil, appErrors.NewGenerationFailed("draft is missing one or more required fields")
    }
    if HasPlaceholderTokens(content.HTMLContent) {
        return nil, appErrors.NewGenerationFailed("draft still contains unresolved image placeholders")
    }

    c := &model.Campaign{
        Subject:      content.Subject,
        PreviewText:  content.PreviewText,
        PlainContent: content.PlainContent,
        HTMLContent:  content.HTMLContent,
        Status:       model.StatusDraft,
        CreatedBy:    createdBy,
    }
    if err := s.CampaignRepo.Create(c); err != nil {
        return nil, err
    }
    return c, nil
}

// Send dispatches a campaign to every active subscriber. The transition to
// "sending" is a compare-and-set, so concurrent sends for the same campaign
// dispatch at most once. Partial delivery failure still ends in "sent".
func (s *NewsletterService) Send(ctx context.Context, campaignID int) (*model.DispatchResult, error) {
    campaign, err := s.CampaignRepo.GetByID(campaignID)
    if err != nil {
        return nil, err
    }

    switch campaign.Status {
    case model.StatusDraft, model.StatusScheduled:
        // sendable
    case model.StatusSent:
        return nil, appErrors.NewCampaignSendRejected(campaignID, "already sent")
    default:
        return nil, appErrors.NewCampaignSendRejected(campaignID, "status is %q", campaign.Status)
    }

    emails, err := s.SubscriberRepo.ListActiveEmails()
    if err != nil {
        return nil, err
    }
    recipients := validAddresses(emails)
    if len(recipients) == 0 {
        return nil, appErrors.NewCampaignSendRejected(campaignID, "no active subscribers with a valid address")
    }

    ok, err := s.CampaignRepo.TransitionStatus(campaignID, []string{model.StatusDraft, model.StatusScheduled}, model.StatusSending)
    if err != nil {
        return nil, err
    }
    if !ok {
        return nil, appErrors.NewCampaignSendRejected(campaignID, "another send is already in progress")
    }

    log.Printf("📨 dispatching campaign %d to %d recipients\n", campaignID, len(recipients))
    result := s.Dispatcher.Dispatch(ctx, campaign, recipients)

    if err := s.CampaignRepo.MarkSent(campaignID, time.Now(), result.Sent); err != nil {
        return result, err
    }
    return result, nil
}

// Schedule moves a draft to scheduled for the worker to release later.
func (s *NewsletterService) Schedule(campaignID int, at time.Time) error {
    ok, err := s.CampaignRepo.Schedule(campaignID, at)
    if err != nil {
        return err
    }
    if !ok {
        return appErrors.NewCampaignSendRejected(campaignID, "only drafts can be scheduled")
    }
    return nil
}

// Cancel stops a draft or scheduled campaign.
func (s *NewsletterService) Cancel(campaignID int) error {
    ok, err := s.CampaignRepo.TransitionStatus(campaignID, []string{model.StatusDraft, model.StatusScheduled}, model.StatusCancelled)
    if err != nil {
        return err
    }
    if !ok {
        return appErrors.NewCampaignSendRejected(campaignID, "only draft or scheduled campaigns can be cancelled")
    }
    return nil
}

// ListCampaigns fetches campaigns with pagination
func (s *NewsletterService) ListCampaigns(page, pageSize int, status string) ([]model.Campaign, map[string]int, error) {
    if page < 1 {
        page = 1
    }
    if pageSize < 1 {
        pageSize = 20
    }
    if pageSize > 100 {
        pageSize = 100
    }
    offset := (page - 1) * pageSize

    ptrs, total, err := s.CampaignRepo.ListCampaigns(offset, pageSize, status)
    if err != nil {
        return nil, nil, err
    }

    campaigns := make([]model.Campaign, len(ptrs))
    for i, c := range ptrs {
        campaigns[i] = *c
    }

    totalPages := (total + pageSize - 1) / pageSize
    pagination := map[string]int{
        "page":        page,
        "page_size":   pageSize,
        "total_count": total,
        "total_pages": totalPages,
    }

    return campaigns, pagination, nil
}

// GetCampaignDetails fetches a campaign by ID
func (s *NewsletterService) GetCampaignDetails(id int) (*model.Campaign, error) {
    return s.CampaignRepo.GetByID(id)
}

func validAddresses(emails []string) []string {
    valid := []string{}
    for _, e := range emails {
        if _, err := mail.ParseAddress(e); err != nil {
            continue
        }
        valid = append(valid, e)
    }
    return valid
}
