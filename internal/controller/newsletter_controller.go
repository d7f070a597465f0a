// internal/controller/newsletter_controller.go
package controller

import (
    "encoding/json"
    "errors"
    "net/http"
    "strconv"
    "time"

    "github.com/go-chi/chi/v5"

    appErrors "github.com/Gopoint-hub/truck-savers-web-sub000/internal/errors"
    "github.com/Gopoint-hub/truck-savers-web-sub000/internal/model"
    "github.com/Gopoint-hub/truck-savers-web-sub000/internal/service"
)

type NewsletterController struct {
    NewsletterService *service.NewsletterService
}

func (c *NewsletterController) GenerateNewsletter(w http.ResponseWriter, r *http.Request) {
    var body struct {
        Prompt           string `json:"prompt"`
        PreviousContent  string `json:"previous_content"`
        EditInstructions string `json:"edit_instructions"`
    }
    if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
        http.Error(w, "invalid body", http.StatusBadRequest)
        return
    }
    if len(body.Prompt) < 10 {
        http.Error(w, "prompt is too short", http.StatusBadRequest)
        return
    }

    content, err := c.NewsletterService.Generate(r.Context(), body.Prompt, body.PreviousContent, body.EditInstructions)
    if err != nil {
        http.Error(w, err.Error(), statusFor(err))
        return
    }

    json.NewEncoder(w).Encode(content)
}

func (c *NewsletterController) CreateDraft(w http.ResponseWriter, r *http.Request) {
    var body struct {
        Subject      string `json:"subject"`
        PreviewText  string `json:"preview_text"`
        HTMLContent  string `json:"html_content"`
        PlainContent string `json:"plain_content"`
        CreatedBy    string `json:"created_by"`
    }
    if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
        http.Error(w, "invalid body", http.StatusBadRequest)
        return
    }

    content := &model.GeneratedContent{
        Subject:      body.Subject,
        PreviewText:  body.PreviewText,
        HTMLContent:  body.HTMLContent,
        PlainContent: body.PlainContent,
    }
    campaign, err := c.NewsletterService.SaveDraft(content, body.CreatedBy)
    if err != nil {
        http.Error(w, err.Error(), statusFor(err))
        return
    }

    w.WriteHeader(http.StatusCreated)
    json.NewEncoder(w).Encode(campaign)
}

func (c *NewsletterController) SendCampaign(w http.ResponseWriter, r *http.Request) {
    idStr := chi.URLParam(r, "id")
    id, _ := strconv.Atoi(idStr)

    result, err := c.NewsletterService.Send(r.Context(), id)
    if err != nil {
        http.Error(w, err.Error(), statusFor(err))
        return
    }

    json.NewEncoder(w).Encode(map[string]interface{}{
        "campaign_id": id,
        "success":     result.Success,
        "sent":        result.Sent,
        "failed":      result.Failed,
        "errors":      result.Errors,
    })
}

func (c *NewsletterController) ScheduleCampaign(w http.ResponseWriter, r *http.Request) {
    idStr := chi.URLParam(r, "id")
    id, _ := strconv.Atoi(idStr)

    var body struct {
        ScheduledAt string `json:"scheduled_at"`
    }
    if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
        http.Error(w, "invalid body", http.StatusBadRequest)
        return
    }
    at, err := time.Parse(time.RFC3339, body.ScheduledAt)
    if err != nil {
        http.Error(w, "scheduled_at must be RFC3339", http.StatusBadRequest)
        return
    }

    if err := c.NewsletterService.Schedule(id, at); err != nil {
        http.Error(w, err.Error(), statusFor(err))
        return
    }

    json.NewEncoder(w).Encode(map[string]interface{}{
        "campaign_id":  id,
        "status":       model.StatusScheduled,
        "scheduled_at": at,
    })
}

func (c *NewsletterController) CancelCampaign(w http.ResponseWriter, r *http.Request) {
    idStr := chi.URLParam(r, "id")
    id, _ := strconv.Atoi(idStr)

    if err := c.NewsletterService.Cancel(id); err != nil {
        http.Error(w, err.Error(), statusFor(err))
        return
    }

    json.NewEncoder(w).Encode(map[string]interface{}{
        "campaign_id": id,
        "status":      model.StatusCancelled,
    })
}

func (c *NewsletterController) ListCampaigns(w http.ResponseWriter, r *http.Request) {
    page, _ := strconv.Atoi(r.URL.Query().Get("page"))
    pageSize, _ := strconv.Atoi(r.URL.Query().Get("page_size"))
    status := r.URL.Query().Get("status")

    if page < 1 {
        page = 1
    }
    if pageSize < 1 {
        pageSize = 20
    }

    campaigns, pagination, err := c.NewsletterService.ListCampaigns(page, pageSize, status)
    if err != nil {
        http.Error(w, err.Error(), http.StatusInternalServerError)
        return
    }

    json.NewEncoder(w).Encode(map[string]interface{}{
        "data":       campaigns,
        "pagination": pagination,
    })
}

func statusFor(err error) int {
    var notFound *appErrors.ErrCampaignNotFound
    if errors.As(err, &notFound) {
        return http.StatusNotFound
    }
    var rejected *appErrors.ErrCampaignSendRejected
    if errors.As(err, &rejected) {
        return http.StatusConflict
    }
    var generation *appErrors.ErrGenerationFailed
    if errors.As(err, &generation) {
        return http.StatusBadGateway
    }
    return http.StatusInternalServerError
}
