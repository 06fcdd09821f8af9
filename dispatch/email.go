package dispatch

import (
	"context"
	"fmt"
	"html/template"
	"strings"

	"github.com/resend/resend-go/v2"

	"github.com/mustafamoossawi/brief-server/cliparse"
	"github.com/mustafamoossawi/brief-server/models"
	"github.com/mustafamoossawi/brief-server/render"
)

// EmailChannel sends the brief through Resend: the PDF plus up to five
// moodboard images as attachments, with a short HTML summary in the body.
// The designer always receives a copy; the client is CC'd when the brief
// carries their address.
type EmailChannel struct {
	client        *resend.Client
	from          string
	designerEmail string
}

func NewEmailChannel(cfg cliparse.Config) *EmailChannel {
	return &EmailChannel{
		client:        resend.NewClient(cfg.ResendAPIKey),
		from:          cfg.EmailFrom,
		designerEmail: cfg.DesignerEmail,
	}
}

func (c *EmailChannel) Name() string { return models.ChannelEmail }

func (c *EmailChannel) Deliver(ctx context.Context, doc *render.Document, record *models.BriefRecord) error {
	body, err := emailBody(record)
	if err != nil {
		return err
	}

	attachments := []*resend.Attachment{{
		Filename: doc.Filename,
		Content:  doc.Bytes,
	}}
	for i, img := range record.Moodboard {
		attachments = append(attachments, &resend.Attachment{
			Filename: fmt.Sprintf("moodboard_%d.%s", i+1, img.FileExt()),
			Content:  img.Data,
		})
	}

	params := &resend.SendEmailRequest{
		From:        c.from,
		To:          c.recipients(record),
		Subject:     fmt.Sprintf("New project: %s - %s", orUntitled(record.ProjectName), orUntitled(record.ClientName)),
		Html:        body,
		Attachments: attachments,
	}

	sent, err := c.client.Emails.SendWithContext(ctx, params)
	if err != nil {
		return fmt.Errorf("email send failed: %w", err)
	}
	if sent != nil && sent.Id == "" {
		return fmt.Errorf("email provider accepted the request but returned no message id")
	}
	return nil
}

// recipients always lists the designer and adds the client when the record
// has their address.
func (c *EmailChannel) recipients(record *models.BriefRecord) []string {
	to := []string{c.designerEmail}
	if addr := strings.TrimSpace(record.Email); addr != "" {
		to = append(to, addr)
	}
	return to
}

func orUntitled(s string) string {
	if strings.TrimSpace(s) == "" {
		return "Untitled"
	}
	return s
}

func emailBody(record *models.BriefRecord) (string, error) {
	var sb strings.Builder
	if err := emailTemplate.Execute(&sb, record); err != nil {
		return "", fmt.Errorf("email template failed: %w", err)
	}
	return sb.String(), nil
}

var emailTemplate = template.Must(template.New("email").Parse(`
<div style="font-family: Arial, sans-serif; max-width: 600px; margin: 0 auto; background: #ffffff;">
  <div style="background: #000000; padding: 24px; border-bottom: 4px solid #d4ff00;">
    <h1 style="color: #d4ff00; margin: 0; font-size: 22px; letter-spacing: 2px;">NEW PROJECT BRIEF</h1>
  </div>
  <div style="padding: 24px;">
    <table style="width: 100%; border-collapse: collapse;">
      <tr>
        <td style="padding: 8px 0; color: #666; width: 140px;">Client</td>
        <td style="padding: 8px 0; font-weight: bold;">{{.ClientName}}</td>
      </tr>
      <tr>
        <td style="padding: 8px 0; color: #666;">Project</td>
        <td style="padding: 8px 0; font-weight: bold;">{{.ProjectName}}</td>
      </tr>
      {{if .CompanyName}}
      <tr>
        <td style="padding: 8px 0; color: #666;">Company</td>
        <td style="padding: 8px 0; font-weight: bold;">{{.CompanyName}}</td>
      </tr>
      {{end}}
      {{if .Email}}
      <tr>
        <td style="padding: 8px 0; color: #666;">Email</td>
        <td style="padding: 8px 0; font-weight: bold;">{{.Email}}</td>
      </tr>
      {{end}}
      <tr>
        <td style="padding: 8px 0; color: #666;">Budget (USD)</td>
        <td style="padding: 8px 0; font-weight: bold;">{{.Budget}}</td>
      </tr>
    </table>
    <hr style="border: none; border-top: 1px solid #eee; margin: 20px 0;">
    <p style="color: #666; font-size: 14px;">The full brief is attached as a PDF.</p>
  </div>
  <div style="background: #f9f9f9; padding: 16px 24px; text-align: center; color: #999; font-size: 12px;">
    Sent automatically by the portfolio brief form.
  </div>
</div>
`))
