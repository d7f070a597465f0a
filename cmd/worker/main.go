// cmd/worker/main.go
//
// Polls the campaign table for scheduled campaigns whose time has come and
// releases them through the regular send path. The compare-and-set status
// transition inside Send makes a concurrent server-side send harmless.
package main

import (
    "context"
    "errors"
    "fmt"
    "log"
    "time"

    "github.com/joho/godotenv"
    "github.com/sashabaranov/go-openai"

    "github.com/Gopoint-hub/truck-savers-web-sub000/internal/config"
    "github.com/Gopoint-hub/truck-savers-web-sub000/internal/db"
    "github.com/Gopoint-hub/truck-savers-web-sub000/internal/delivery"
    appErrors "github.com/Gopoint-hub/truck-savers-web-sub000/internal/errors"
    "github.com/Gopoint-hub/truck-savers-web-sub000/internal/repository"
    "github.com/Gopoint-hub/truck-savers-web-sub000/internal/service"
)

const pollInterval = time.Minute

func main() {
    if err := godotenv.Load(); err != nil {
        log.Println("⚠️ No .env file found, relying on OS environment variables")
    }

    brand := config.LoadBrand()
    pipeline := config.LoadPipeline()

    db.Init()

    campaignRepo := &repository.CampaignRepository{DB: db.DB}
    subscriberRepo := &repository.SubscriberRepository{DB: db.DB}
    openaiClient := openai.NewClient(pipeline.OpenAIKey)

    svc := &service.NewsletterService{
        CampaignRepo:   campaignRepo,
        SubscriberRepo: subscriberRepo,
        Composer:       &service.PromptComposer{Brand: brand},
        Generator: &service.ContentGenerator{
            Client:      openaiClient,
            Timeout:     pipeline.GenerationTimeout,
            MaxAttempts: pipeline.MaxAttempts,
        },
        Resolver: &service.PlaceholderResolver{
            Client:      openaiClient,
            Brand:       brand,
            Timeout:     pipeline.ImageTimeout,
            MaxAttempts: pipeline.MaxAttempts,
        },
        Renderer: &service.TemplateRenderer{Brand: brand},
        Dispatcher: &service.Dispatcher{
            Sender:      delivery.NewResendSender(pipeline.ResendKey),
            Pacer:       service.NewTokenBucketPacer(pipeline.BatchInterval),
            From:        fmt.Sprintf("%s <%s>", pipeline.SenderName, pipeline.SenderEmail),
            BatchSize:   pipeline.BatchSize,
            Timeout:     pipeline.DeliveryTimeout,
            MaxAttempts: pipeline.MaxAttempts,
        },
    }

    log.Println("Worker running, releasing scheduled campaigns...")
    for {
        releaseDue(campaignRepo, svc)
        time.Sleep(pollInterval)
    }
}

func releaseDue(repo *repository.CampaignRepository, svc *service.NewsletterService) {
    due, err := repo.ListDueScheduled(time.Now())
    if err != nil {
        log.Println("⚠️ failed to list scheduled campaigns:", err)
        return
    }

    for _, campaign := range due {
        log.Printf("📤 releasing scheduled campaign %d (%s)\n", campaign.ID, campaign.Subject)

        result, err := svc.Send(context.Background(), campaign.ID)
        if err != nil {
            var rejected *appErrors.ErrCampaignSendRejected
            if errors.As(err, &rejected) {
                // Someone else got to it first, or the list emptied out.
                log.Println("campaign skipped:", err)
                continue
            }
            log.Println("⚠️ failed to send scheduled campaign:", err)
            continue
        }

        log.Printf("✅ campaign %d dispatched: %d sent, %d failed\n", campaign.ID, result.Sent, result.Failed)
    }
}
