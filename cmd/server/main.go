// cmd/server/main.go
package main

import (
    "fmt"
    "log"
    "net/http"

    "github.com/go-chi/chi/v5"
    "github.com/joho/godotenv"
    "github.com/sashabaranov/go-openai"

    "github.com/Gopoint-hub/truck-savers-web-sub000/internal/config"
    "github.com/Gopoint-hub/truck-savers-web-sub000/internal/controller"
    "github.com/Gopoint-hub/truck-savers-web-sub000/internal/db"
    "github.com/Gopoint-hub/truck-savers-web-sub000/internal/delivery"
    "github.com/Gopoint-hub/truck-savers-web-sub000/internal/handler"
    "github.com/Gopoint-hub/truck-savers-web-sub000/internal/repository"
    "github.com/Gopoint-hub/truck-savers-web-sub000/internal/service"
)

func main() {
    // Load .env
    if err := godotenv.Load(); err != nil {
        log.Println("⚠️ No .env file found, relying on OS environment variables")
    }

    brand := config.LoadBrand()
    pipeline := config.LoadPipeline()

    // Init DB
    db.Init()

    campaignRepo := &repository.CampaignRepository{DB: db.DB}
    subscriberRepo := &repository.SubscriberRepository{DB: db.DB}

    openaiClient := openai.NewClient(pipeline.OpenAIKey)

    newsletterService := &service.NewsletterService{
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

    newsletterController := &controller.NewsletterController{
        NewsletterService: newsletterService,
    }

    campaignHandler := &handler.CampaignHandler{
        Repo:    campaignRepo,
        Service: newsletterService,
    }

    r := chi.NewRouter()

    // Newsletter routes
    r.Post("/newsletter/generate", newsletterController.GenerateNewsletter)
    r.Post("/newsletter/campaigns", newsletterController.CreateDraft)
    r.Get("/newsletter/campaigns", newsletterController.ListCampaigns)
    r.Post("/newsletter/campaigns/{id}/send", newsletterController.SendCampaign)
    r.Post("/newsletter/campaigns/{id}/schedule", newsletterController.ScheduleCampaign)
    r.Post("/newsletter/campaigns/{id}/cancel", newsletterController.CancelCampaign)
    r.Get("/newsletter/campaigns/{id}", campaignHandler.GetCampaignWithStats)

    log.Println("🚀 Server running on :8080")
    log.Fatal(http.ListenAndServe(":8080", r))
}
