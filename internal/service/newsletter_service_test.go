package service_test

import (
    "context"
    "errors"
    "strings"
    "testing"
    "time"

    appErrors "github.com/Gopoint-hub/truck-savers-web-sub000/internal/errors"
    "github.com/Gopoint-hub/truck-savers-web-sub000/internal/model"
    "github.com/Gopoint-hub/truck-savers-web-sub000/internal/service"
)

// MockCampaignRepo keeps a single campaign in memory and records writes.
type MockCampaignRepo struct {
    Campaign    *model.Campaign
    Created     []*model.Campaign
    MarkedSent  bool
    SentCount   int
    Transitions []string
}

func (m *MockCampaignRepo) Create(c *model.Campaign) error {
    c.ID = len(m.Created) + 1
    m.Created = append(m.Created, c)
    return nil
}

func (m *MockCampaignRepo) GetByID(id int) (*model.Campaign, error) {
    if m.Campaign == nil {
        return nil, appErrors.NewCampaignNotFound(id)
    }
    return m.Campaign, nil
}

func (m *MockCampaignRepo) ListCampaigns(offset, limit int, status string) ([]*model.Campaign, int, error) {
    if m.Campaign == nil {
        return []*model.Campaign{}, 0, nil
    }
    return []*model.Campaign{m.Campaign}, 1, nil
}

func (m *MockCampaignRepo) TransitionStatus(campaignID int, expected []string, next string) (bool, error) {
    for _, s := range expected {
        if m.Campaign != nil && m.Campaign.Status == s {
            m.Campaign.Status = next
            m.Transitions = append(m.Transitions, next)
            return true, nil
        }
    }
    return false, nil
}

func (m *MockCampaignRepo) Schedule(campaignID int, at time.Time) (bool, error) {
    if m.Campaign == nil || m.Campaign.Status != model.StatusDraft {
        return false, nil
    }
    m.Campaign.Status = model.StatusScheduled
    m.Campaign.ScheduledAt = &at
    return true, nil
}

func (m *MockCampaignRepo) MarkSent(campaignID int, sentAt time.Time, recipientCount int) error {
    m.MarkedSent = true
    m.SentCount = recipientCount
    m.Campaign.Status = model.StatusSent
    m.Campaign.SentAt = &sentAt
    m.Campaign.RecipientCount = recipientCount
    return nil
}

func (m *MockCampaignRepo) ListDueScheduled(now time.Time) ([]*model.Campaign, error) {
    return nil, nil
}

type MockSubscriberRepo struct {
    Emails []string
}

func (m *MockSubscriberRepo) ListActiveEmails() ([]string, error) {
    return m.Emails, nil
}

func newService(repo *MockCampaignRepo, subs *MockSubscriberRepo, sender *MockSender) *service.NewsletterService {
    return &service.NewsletterService{
        CampaignRepo:   repo,
        SubscriberRepo: subs,
        Composer:       &service.PromptComposer{Brand: testBrand()},
        Generator:      &service.ContentGenerator{Client: &MockChatClient{Content: validPayload}, MaxAttempts: 1},
        Resolver:       &service.PlaceholderResolver{Client: &MockImageClient{}, Brand: testBrand(), MaxAttempts: 1},
        Renderer:       &service.TemplateRenderer{Brand: testBrand()},
        Dispatcher: &service.Dispatcher{
            Sender:      sender,
            Pacer:       service.NewTokenBucketPacer(0),
            From:        "Truck Savers <boletin@trucksavers.test>",
            BatchSize:   50,
            MaxAttempts: 1,
        },
    }
}

func TestGeneratePipelineProducesBrandedTokenFreeContent(t *testing.T) {
    svc := newService(&MockCampaignRepo{}, &MockSubscriberRepo{}, &MockSender{})

    content, err := svc.Generate(context.Background(), "Promociona la inspección gratuita", "", "")
    if err != nil {
        t.Fatalf("unexpected error: %v", err)
    }

    if strings.Contains(content.HTMLContent, "[GENERATE_IMAGE") {
        t.Error("generated HTML must be token-free")
    }
    if !strings.Contains(content.HTMLContent, "Truck Savers") {
        t.Error("generated HTML must carry the brand name")
    }
    if content.Subject == "" || content.PreviewText == "" || content.PlainContent == "" {
        t.Errorf("all fields must be filled, got %+v", content)
    }
}

func TestSaveDraftRejectsUnresolvedTokens(t *testing.T) {
    repo := &MockCampaignRepo{}
    svc := newService(repo, &MockSubscriberRepo{}, &MockSender{})

    _, err := svc.SaveDraft(&model.GeneratedContent{
        Subject:      "s",
        PreviewText:  "p",
        HTMLContent:  "<p>[GENERATE_IMAGE: algo]</p>",
        PlainContent: "t",
    }, "admin")

    var genErr *appErrors.ErrGenerationFailed
    if !errors.As(err, &genErr) {
        t.Fatalf("expected ErrGenerationFailed, got %v", err)
    }
    if len(repo.Created) != 0 {
        t.Error("no draft may be created from content with tokens")
    }
}

func TestSaveDraftPersistsCleanContent(t *testing.T) {
    repo := &MockCampaignRepo{}
    svc := newService(repo, &MockSubscriberRepo{}, &MockSender{})

    campaign, err := svc.SaveDraft(&model.GeneratedContent{
        Subject:      "Inspección gratuita",
        PreviewText:  "Tu camión merece un chequeo",
        HTMLContent:  "<p>limpio</p>",
        PlainContent: "limpio",
    }, "admin")
    if err != nil {
        t.Fatalf("unexpected error: %v", err)
    }
    if campaign.Status != model.StatusDraft {
        t.Errorf("expected draft status, got %q", campaign.Status)
    }
    if campaign.CreatedBy != "admin" {
        t.Errorf("expected created_by to persist, got %q", campaign.CreatedBy)
    }
}

func TestSendHappyPathMarksSent(t *testing.T) {
    repo := &MockCampaignRepo{Campaign: &model.Campaign{ID: 1, Subject: "Ofertas", Status: model.StatusDraft}}
    subs := &MockSubscriberRepo{Emails: addresses(120)}
    sender := &MockSender{}
    svc := newService(repo, subs, sender)

    result, err := svc.Send(context.Background(), 1)
    if err != nil {
        t.Fatalf("unexpected error: %v", err)
    }

    if !result.Success || result.Sent != 120 || result.Failed != 0 {
        t.Errorf("unexpected result: %+v", result)
    }
    if len(sender.Batches) != 3 {
        t.Errorf("expected 3 batches, got %d", len(sender.Batches))
    }
    if !repo.MarkedSent || repo.SentCount != 120 {
        t.Errorf("campaign must be marked sent with recipient_count=120, got %d", repo.SentCount)
    }
    if repo.Campaign.Status != model.StatusSent {
        t.Errorf("expected status sent, got %q", repo.Campaign.Status)
    }
}

func TestSendPartialFailureStillMarksSent(t *testing.T) {
    repo := &MockCampaignRepo{Campaign: &model.Campaign{ID: 1, Status: model.StatusDraft}}
    subs := &MockSubscriberRepo{Emails: addresses(120)}
    sender := &MockSender{Fail: func(call int) bool { return call == 3 }}
    svc := newService(repo, subs, sender)

    result, err := svc.Send(context.Background(), 1)
    if err != nil {
        t.Fatalf("unexpected error: %v", err)
    }

    if result.Success {
        t.Error("success must be false after a failed batch")
    }
    if result.Sent != 100 || result.Failed != 20 {
        t.Errorf("expected sent=100 failed=20, got %+v", result)
    }
    if repo.Campaign.Status != model.StatusSent {
        t.Errorf("partial failure must still end in sent, got %q", repo.Campaign.Status)
    }
    if repo.SentCount != 100 {
        t.Errorf("recipient_count must equal the aggregate sent count, got %d", repo.SentCount)
    }
}

func TestSendRejectsAlreadySentCampaign(t *testing.T) {
    sentAt := time.Date(2026, 8, 1, 10, 0, 0, 0, time.UTC)
    repo := &MockCampaignRepo{Campaign: &model.Campaign{
        ID: 1, Status: model.StatusSent, SentAt: &sentAt, RecipientCount: 80,
    }}
    sender := &MockSender{}
    svc := newService(repo, &MockSubscriberRepo{Emails: addresses(5)}, sender)

    _, err := svc.Send(context.Background(), 1)

    var rejected *appErrors.ErrCampaignSendRejected
    if !errors.As(err, &rejected) {
        t.Fatalf("expected ErrCampaignSendRejected, got %v", err)
    }
    if len(sender.Batches) != 0 {
        t.Error("no delivery may be attempted for an already-sent campaign")
    }
    if !repo.Campaign.SentAt.Equal(sentAt) {
        t.Error("sent_at must not change")
    }
    if repo.Campaign.RecipientCount != 80 {
        t.Error("recipient_count must not change")
    }
}

func TestSendRejectsWhenNoActiveSubscribers(t *testing.T) {
    repo := &MockCampaignRepo{Campaign: &model.Campaign{ID: 1, Status: model.StatusDraft}}
    sender := &MockSender{}
    svc := newService(repo, &MockSubscriberRepo{Emails: []string{}}, sender)

    _, err := svc.Send(context.Background(), 1)

    var rejected *appErrors.ErrCampaignSendRejected
    if !errors.As(err, &rejected) {
        t.Fatalf("expected ErrCampaignSendRejected, got %v", err)
    }
    if repo.Campaign.Status != model.StatusDraft {
        t.Errorf("campaign must remain unchanged, got status %q", repo.Campaign.Status)
    }
    if len(repo.Transitions) != 0 {
        t.Error("no status transition may happen before recipient validation")
    }
}

func TestSendSkipsInvalidAddresses(t *testing.T) {
    repo := &MockCampaignRepo{Campaign: &model.Campaign{ID: 1, Status: model.StatusDraft}}
    subs := &MockSubscriberRepo{Emails: []string{"valido@example.com", "sin-arroba", "otro@example.com"}}
    sender := &MockSender{}
    svc := newService(repo, subs, sender)

    result, err := svc.Send(context.Background(), 1)
    if err != nil {
        t.Fatalf("unexpected error: %v", err)
    }
    if result.Sent != 2 {
        t.Errorf("expected 2 valid recipients, got %d", result.Sent)
    }
}

func TestCancelScheduledCampaign(t *testing.T) {
    repo := &MockCampaignRepo{Campaign: &model.Campaign{ID: 1, Status: model.StatusScheduled}}
    svc := newService(repo, &MockSubscriberRepo{}, &MockSender{})

    if err := svc.Cancel(1); err != nil {
        t.Fatalf("unexpected error: %v", err)
    }
    if repo.Campaign.Status != model.StatusCancelled {
        t.Errorf("expected cancelled, got %q", repo.Campaign.Status)
    }
}

func TestCancelRejectsSentCampaign(t *testing.T) {
    repo := &MockCampaignRepo{Campaign: &model.Campaign{ID: 1, Status: model.StatusSent}}
    svc := newService(repo, &MockSubscriberRepo{}, &MockSender{})

    err := svc.Cancel(1)

    var rejected *appErrors.ErrCampaignSendRejected
    if !errors.As(err, &rejected) {
        t.Fatalf("expected ErrCampaignSendRejected, got %v", err)
    }
}
