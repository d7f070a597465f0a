// internal/service/prompt_composer.go
package service

import (
    "fmt"
    "regexp"
    "strings"

    "github.com/Gopoint-hub/truck-savers-web-sub000/internal/config"
)

// GenerationRequest is the composed input for one structured generation call.
type GenerationRequest struct {
    System string
    User   string
}

// VideoRef is a video link found in the prompt, with its identifier and
// thumbnail derived deterministically (no network call).
type VideoRef struct {
    ID           string
    URL          string
    ThumbnailURL string
}

var youtubePattern = regexp.MustCompile(
    `https?://(?:www\.)?(?:youtube\.com/watch\?v=|youtube\.com/shorts/|youtu\.be/)([A-Za-z0-9_-]{11})`,
)

// PromptComposer turns a user prompt into a generation request. Pure string
// transformation; brand parameters are injected, never read from a global.
type PromptComposer struct {
    Brand config.Brand
}

func (p *PromptComposer) Compose(prompt, previousContent, editInstructions string) GenerationRequest {
    var user strings.Builder

    if previousContent != "" && editInstructions != "" {
        user.WriteString("Revisa el siguiente boletín existente en lugar de crear uno nuevo.\n\n")
        user.WriteString("Contenido actual:\n")
        user.WriteString(previousContent)
        user.WriteString("\n\nInstrucciones de edición:\n")
        user.WriteString(editInstructions)
        user.WriteString("\n\nPetición original:\n")
        user.WriteString(prompt)
    } else {
        user.WriteString("Crea un boletín sobre lo siguiente:\n")
        user.WriteString(prompt)
    }

    if refs := extractVideoRefs(prompt); len(refs) > 0 {
        user.WriteString("\n\nVideos mencionados (usa la miniatura como imagen clickeable que enlaza al video):\n")
        for _, ref := range refs {
            user.WriteString(fmt.Sprintf("- video %s: %s (miniatura: %s)\n", ref.ID, ref.URL, ref.ThumbnailURL))
        }
    }

    return GenerationRequest{
        System: p.systemPrompt(),
        User:   user.String(),
    }
}

func (p *PromptComposer) systemPrompt() string {
    b := p.Brand
    return fmt.Sprintf(`Eres el redactor de boletines de %s (%s).
Escribe correos de marketing claros y cercanos para clientes de reparación de camiones.

Responde únicamente con un objeto JSON con exactamente estos campos:
  "subject": asunto corto para la bandeja de entrada
  "previewText": texto de vista previa corto
  "htmlContent": cuerpo del correo en HTML (sin <html> ni <body>, solo el contenido interno)
  "plainContent": versión en texto plano del mismo contenido

Colores de marca: %s (primario) y %s (secundario). Sitio web: %s.
Cuando el boletín necesite una imagen, inserta un marcador con la forma
[GENERATE_IMAGE: descripción de la imagen] donde deba aparecer.
No inventes URLs de imágenes.`,
        b.DisplayName, b.Tagline, b.PrimaryColor, b.SecondaryColor, b.WebsiteURL)
}

// extractVideoRefs finds every YouTube link in the prompt and derives a
// stable video id plus its canonical thumbnail URL.
func extractVideoRefs(prompt string) []VideoRef {
    matches := youtubePattern.FindAllStringSubmatch(prompt, -1)
    if len(matches) == 0 {
        return nil
    }

    refs := []VideoRef{}
    seen := map[string]bool{}
    for _, m := range matches {
        id := m[1]
        if seen[id] {
            continue
        }
        seen[id] = true
        refs = append(refs, VideoRef{
            ID:           id,
            URL:          "https://www.youtube.com/watch?v=" + id,
            ThumbnailURL: fmt.Sprintf("https://img.youtube.com/vi/%s/hqdefault.jpg", id),
        })
    }
    return refs
}
