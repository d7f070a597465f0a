// internal/service/template_renderer.go
package service

import (
    "fmt"
    "strings"

    "github.com/Gopoint-hub/truck-savers-web-sub000/internal/config"
)

// shellMarker identifies content that already carries the brand shell, so
// rendering is idempotent and never nests a second header/footer.
const shellMarker = "<!-- truck-savers-shell -->"

// unsubscribePlaceholder is resolved per-recipient by the delivery provider.
const unsubscribePlaceholder = "{{{RESEND_UNSUBSCRIBE_URL}}}"

// TemplateRenderer wraps resolved newsletter content in the fixed brand
// shell. Pure function of its inputs.
type TemplateRenderer struct {
    Brand config.Brand
}

func (t *TemplateRenderer) Render(inner string) string {
    if strings.Contains(inner, shellMarker) {
        return inner
    }

    b := t.Brand
    return fmt.Sprintf(`%s<!DOCTYPE html>
<html>
<body style="margin:0;padding:0;background:#f0f0f0;font-family:Arial,Helvetica,sans-serif;">
  <table role="presentation" width="100%%" cellpadding="0" cellspacing="0">
    <tr><td align="center" style="padding:24px 12px;">
      <table role="presentation" width="600" cellpadding="0" cellspacing="0" style="background:#ffffff;border-radius:8px;overflow:hidden;">
        <tr><td align="center" style="background:%s;padding:20px;">
          <img src="%s" alt="%s" width="180" style="display:block;"/>
        </td></tr>
        <tr><td style="padding:24px;color:#333333;font-size:15px;line-height:1.6;">
%s
        </td></tr>
        <tr><td style="background:%s;padding:24px;color:#ffffff;font-size:13px;" align="center">
          <p style="margin:0 0 4px;font-weight:bold;">%s</p>
          <p style="margin:0 0 12px;">%s</p>
          <p style="margin:0 0 12px;">
            <a href="tel:%s" style="color:#ffffff;">Llámanos: %s</a> ·
            <a href="https://wa.me/%s" style="color:#ffffff;">WhatsApp</a> ·
            <a href="%s" style="color:#ffffff;">%s</a>
          </p>
          <p style="margin:0;"><a href="%s" style="color:#cccccc;">Cancelar suscripción</a></p>
        </td></tr>
      </table>
    </td></tr>
  </table>
</body>
</html>`,
        shellMarker,
        b.PrimaryColor, b.LogoURL, b.DisplayName,
        inner,
        b.SecondaryColor, b.DisplayName, b.Tagline,
        b.Phone, b.Phone, b.WhatsAppNumber,
        b.WebsiteURL, b.WebsiteURL,
        unsubscribePlaceholder,
    )
}
