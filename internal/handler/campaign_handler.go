// internal/handler/campaign_handler.go
package handler

import (
    "encoding/json"
    "net/http"
    "strconv"

    "github.com/go-chi/chi/v5"

    "github.com/Gopoint-hub/truck-savers-web-sub000/internal/repository"
    "github.com/Gopoint-hub/truck-savers-web-sub000/internal/service"
)

type CampaignHandler struct {
    Repo    repository.CampaignRepositoryInterface
    Service *service.NewsletterService
}

// GetCampaignWithStats returns a campaign together with its delivery stats.
func (h *CampaignHandler) GetCampaignWithStats(w http.ResponseWriter, r *http.Request) {
    idStr := chi.URLParam(r, "id")
    id, err := strconv.Atoi(idStr)
    if err != nil {
        http.Error(w, "invalid campaign id", http.StatusBadRequest)
        return
    }

    campaign, err := h.Repo.GetByID(id)
    if err != nil {
        http.Error(w, err.Error(), http.StatusNotFound)
        return
    }

    stats := map[string]interface{}{
        "recipients": campaign.RecipientCount,
        "opens":      campaign.OpenCount,
        "clicks":     campaign.ClickCount,
    }
    if campaign.RecipientCount > 0 {
        stats["open_rate"] = float64(campaign.OpenCount) / float64(campaign.RecipientCount)
        stats["click_rate"] = float64(campaign.ClickCount) / float64(campaign.RecipientCount)
    }

    json.NewEncoder(w).Encode(map[string]interface{}{
        "campaign": campaign,
        "stats":    stats,
    })
}
