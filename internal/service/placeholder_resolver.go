// internal/service/placeholder_resolver.go
package service

import (
    "context"
    "fmt"
    "log"
    "regexp"
    "strings"
    "time"

    "github.com/sashabaranov/go-openai"

    "github.com/Gopoint-hub/truck-savers-web-sub000/internal/config"
)

// tokenPattern matches the in-content marker [GENERATE_IMAGE: <description>].
var tokenPattern = regexp.MustCompile(`\[GENERATE_IMAGE:\s*([^\]]+)\]`)

// HasPlaceholderTokens reports whether html still contains unresolved
// placeholder tokens. Drafts with tokens must never be persisted.
func HasPlaceholderTokens(html string) bool {
    return tokenPattern.MatchString(html)
}

// ImageClient is the slice of the OpenAI client the resolver needs.
type ImageClient interface {
    CreateImage(ctx context.Context, req openai.ImageRequest) (openai.ImageResponse, error)
}

// PlaceholderResolver replaces every placeholder token in generated HTML
// with a hosted image, or with a visible fallback block when a single image
// generation fails. After Resolve, zero tokens remain.
type PlaceholderResolver struct {
    Client      ImageClient
    Brand       config.Brand
    Timeout     time.Duration
    MaxAttempts int
}

// Resolve runs both phases: malformed-tag repair, then token resolution.
// Duplicate descriptions are resolved as independent calls.
func (r *PlaceholderResolver) Resolve(ctx context.Context, html string) string {
    rest := repairImageTags(html)

    var b strings.Builder
    for {
        loc := tokenPattern.FindStringSubmatchIndex(rest)
        if loc == nil {
            b.WriteString(rest)
            break
        }

        desc := strings.TrimSpace(rest[loc[2]:loc[3]])
        b.WriteString(rest[:loc[0]])

        url, err := r.generateImage(ctx, desc)
        if err != nil {
            log.Printf("⚠️ image generation failed for %q: %v\n", desc, err)
            b.WriteString(fallbackBlock(desc))
        } else {
            b.WriteString(imageTag(url, desc))
        }

        rest = rest[loc[1]:]
    }
    return b.String()
}

// repairImageTags collapses any <img> tag that carries a placeholder token
// (a common generation artifact, e.g. <img src="[GENERATE_IMAGE: a lion]"/>)
// to the bare token. The scan is bounded by the tag close, so both quoting
// styles are handled without per-style patterns.
func repairImageTags(html string) string {
    var b strings.Builder
    rest := html
    for {
        i := strings.Index(rest, "<img")
        if i < 0 {
            b.WriteString(rest)
            break
        }
        j := strings.Index(rest[i:], ">")
        if j < 0 {
            b.WriteString(rest)
            break
        }

        tag := rest[i : i+j+1]
        b.WriteString(rest[:i])
        if token := tokenPattern.FindString(tag); token != "" {
            b.WriteString(token)
        } else {
            b.WriteString(tag)
        }
        rest = rest[i+j+1:]
    }
    return b.String()
}

func (r *PlaceholderResolver) generateImage(ctx context.Context, desc string) (string, error) {
    prompt := fmt.Sprintf(
        "%s. Estilo: fotografía profesional de marketing para %s, un taller de reparación de camiones. "+
            "Paleta de colores %s y %s, tono confiable y directo, sin texto sobre la imagen.",
        desc, r.Brand.DisplayName, r.Brand.PrimaryColor, r.Brand.SecondaryColor,
    )

    var resp openai.ImageResponse
    err := retryTransient(ctx, r.MaxAttempts, func() error {
        callCtx := ctx
        if r.Timeout > 0 {
            var cancel context.CancelFunc
            callCtx, cancel = context.WithTimeout(ctx, r.Timeout)
            defer cancel()
        }

        var callErr error
        resp, callErr = r.Client.CreateImage(callCtx, openai.ImageRequest{
            Prompt:         prompt,
            Model:          openai.CreateImageModelDallE3,
            N:              1,
            Size:           openai.CreateImageSize1024x1024,
            ResponseFormat: openai.CreateImageResponseFormatURL,
        })
        return callErr
    })
    if err != nil {
        return "", err
    }
    if len(resp.Data) == 0 || resp.Data[0].URL == "" {
        return "", fmt.Errorf("image response contained no URL")
    }
    return resp.Data[0].URL, nil
}

func imageTag(url, desc string) string {
    alt := strings.ReplaceAll(desc, `"`, "'")
    return fmt.Sprintf(
        `<img src="%s" alt="%s" style="display:block;margin:16px auto;max-width:100%%;height:auto;border-radius:8px;"/>`,
        url, alt,
    )
}

func fallbackBlock(desc string) string {
    return fmt.Sprintf(
        `<div style="padding:16px;margin:16px 0;background:#f4f4f4;border:1px dashed #999;text-align:center;color:#555;">Imagen no disponible: %s</div>`,
        desc,
    )
}
