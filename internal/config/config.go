// internal/config/config.go
package config

import (
    "os"
    "strconv"
    "time"
)

// Brand holds the fixed brand parameters injected into every prompt and
// every rendered shell. Passed by value so tests can substitute fixtures.
type Brand struct {
    DisplayName    string
    Tagline        string
    PrimaryColor   string
    SecondaryColor string
    LogoURL        string
    Phone          string
    WhatsAppNumber string
    WebsiteURL     string
}

// Pipeline holds the tunables of the newsletter pipeline.
type Pipeline struct {
    BatchSize         int
    BatchInterval     time.Duration
    GenerationTimeout time.Duration
    ImageTimeout      time.Duration
    DeliveryTimeout   time.Duration
    MaxAttempts       int
    SenderName        string
    SenderEmail       string
    OpenAIKey         string
    ResendKey         string
}

func LoadBrand() Brand {
    return Brand{
        DisplayName:    envOr("BRAND_NAME", "Truck Savers"),
        Tagline:        envOr("BRAND_TAGLINE", "Expertos en reparación de camiones"),
        PrimaryColor:   envOr("BRAND_PRIMARY_COLOR", "#D32F2F"),
        SecondaryColor: envOr("BRAND_SECONDARY_COLOR", "#1A1A1A"),
        LogoURL:        envOr("BRAND_LOGO_URL", "https://trucksavers.com/logo.png"),
        Phone:          envOr("BRAND_PHONE", "+1-800-555-0199"),
        WhatsAppNumber: envOr("BRAND_WHATSAPP", "18005550199"),
        WebsiteURL:     envOr("BRAND_WEBSITE", "https://trucksavers.com"),
    }
}

func LoadPipeline() Pipeline {
    return Pipeline{
        BatchSize:         envIntOr("SEND_BATCH_SIZE", 50),
        BatchInterval:     envDurationOr("SEND_BATCH_INTERVAL", 100*time.Millisecond),
        GenerationTimeout: envDurationOr("GENERATION_TIMEOUT", 60*time.Second),
        ImageTimeout:      envDurationOr("IMAGE_TIMEOUT", 90*time.Second),
        DeliveryTimeout:   envDurationOr("DELIVERY_TIMEOUT", 30*time.Second),
        MaxAttempts:       envIntOr("EXTERNAL_MAX_ATTEMPTS", 3),
        SenderName:        envOr("SENDER_NAME", "Truck Savers"),
        SenderEmail:       envOr("SENDER_EMAIL", "boletin@trucksavers.com"),
        OpenAIKey:         os.Getenv("OPENAI_API_KEY"),
        ResendKey:         os.Getenv("RESEND_API_KEY"),
    }
}

func envOr(key, fallback string) string {
    if v := os.Getenv(key); v != "" {
        return v
    }
    return fallback
}

func envIntOr(key string, fallback int) int {
    if v := os.Getenv(key); v != "" {
        if n, err := strconv.Atoi(v); err == nil && n > 0 {
            return n
        }
    }
    return fallback
}

func envDurationOr(key string, fallback time.Duration) time.Duration {
    if v := os.Getenv(key); v != "" {
        if d, err := time.ParseDuration(v); err == nil && d >= 0 {
            return d
        }
    }
    return fallback
}
