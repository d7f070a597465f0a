// internal/service/content_generator.go
package service

import (
    "context"
    "encoding/json"
    "strings"
    "time"

    "github.com/sashabaranov/go-openai"

    appErrors "github.com/Gopoint-hub/truck-savers-web-sub000/internal/errors"
    "github.com/Gopoint-hub/truck-savers-web-sub000/internal/model"
)

// ChatClient is the slice of the OpenAI client the generator needs.
type ChatClient interface {
    CreateChatCompletion(ctx context.Context, req openai.ChatCompletionRequest) (openai.ChatCompletionResponse, error)
}

// ContentGenerator produces the four-field newsletter payload through a
// structured (JSON object) chat completion.
type ContentGenerator struct {
    Client      ChatClient
    Model       string
    Timeout     time.Duration
    MaxAttempts int
}

type generatedPayload struct {
    Subject      string `json:"subject"`
    PreviewText  string `json:"previewText"`
    HTMLContent  string `json:"htmlContent"`
    PlainContent string `json:"plainContent"`
}

func (g *ContentGenerator) Generate(ctx context.Context, req GenerationRequest) (*model.GeneratedContent, error) {
    chatModel := g.Model
    if chatModel == "" {
        chatModel = openai.GPT4oMini
    }

    var resp openai.ChatCompletionResponse
    err := retryTransient(ctx, g.MaxAttempts, func() error {
        callCtx := ctx
        if g.Timeout > 0 {
            var cancel context.CancelFunc
            callCtx, cancel = context.WithTimeout(ctx, g.Timeout)
            defer cancel()
        }

        var callErr error
        resp, callErr = g.Client.CreateChatCompletion(callCtx, openai.ChatCompletionRequest{
            Model: chatModel,
            Messages: []openai.ChatCompletionMessage{
                {Role: openai.ChatMessageRoleSystem, Content: req.System},
                {Role: openai.ChatMessageRoleUser, Content: req.User},
            },
            ResponseFormat: &openai.ChatCompletionResponseFormat{
                Type: openai.ChatCompletionResponseFormatTypeJSONObject,
            },
        })
        return callErr
    })
    if err != nil {
        return nil, appErrors.NewGenerationFailed("generation call failed: %v", err)
    }

    if len(resp.Choices) == 0 {
        return nil, appErrors.NewGenerationFailed("generation returned no choices")
    }

    raw := stripCodeFence(resp.Choices[0].Message.Content)

    var payload generatedPayload
    if err := json.Unmarshal([]byte(raw), &payload); err != nil {
        return nil, appErrors.NewGenerationFailed("invalid JSON payload: %v", err)
    }

    content := &model.GeneratedContent{
        Subject:      strings.TrimSpace(payload.Subject),
        PreviewText:  strings.TrimSpace(payload.PreviewText),
        HTMLContent:  strings.TrimSpace(payload.HTMLContent),
        PlainContent: strings.TrimSpace(payload.PlainContent),
    }
    if content.Subject == "" || content.PreviewText == "" || content.HTMLContent == "" || content.PlainContent == "" {
        return nil, appErrors.NewGenerationFailed("payload is missing one or more required fields")
    }

    return content, nil
}

// stripCodeFence removes a ```json ... ``` wrapper some models emit even in
// JSON mode.
func stripCodeFence(s string) string {
    s = strings.TrimSpace(s)
    if !strings.HasPrefix(s, "```") {
        return s
    }
    s = strings.TrimPrefix(s, "```json")
    s = strings.TrimPrefix(s, "```")
    s = strings.TrimSuffix(strings.TrimSpace(s), "```")
    return strings.TrimSpace(s)
}
