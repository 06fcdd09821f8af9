package dispatch

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"mime/multipart"
	"net/http"
	"net/textproto"
	"strings"
	"time"

	"github.com/mustafamoossawi/brief-server/cliparse"
	"github.com/mustafamoossawi/brief-server/models"
	"github.com/mustafamoossawi/brief-server/render"
)

// TelegramChannel pushes the brief to the designer's chat through the Bot
// API. The primary path uploads the PDF with sendDocument; when that is
// rejected it falls back to a plain sendMessage summary so the designer
// still gets notified.
type TelegramChannel struct {
	httpClient *http.Client
	apiBase    string
	token      string
	chatID     string
}

func NewTelegramChannel(cfg cliparse.Config) *TelegramChannel {
	return &TelegramChannel{
		httpClient: &http.Client{Timeout: 30 * time.Second},
		apiBase:    strings.TrimRight(cfg.TelegramAPIBase, "/"),
		token:      cfg.TelegramBotToken,
		chatID:     cfg.TelegramChatID,
	}
}

func (c *TelegramChannel) Name() string { return models.ChannelChat }

func (c *TelegramChannel) Deliver(ctx context.Context, doc *render.Document, record *models.BriefRecord) error {
	docErr := c.sendDocument(ctx, doc, record)
	if docErr == nil {
		return nil
	}
	if msgErr := c.sendMessage(ctx, record); msgErr != nil {
		return fmt.Errorf("document upload failed (%v) and text fallback failed: %w", docErr, msgErr)
	}
	return nil
}

func (c *TelegramChannel) sendDocument(ctx context.Context, doc *render.Document, record *models.BriefRecord) error {
	caption := fmt.Sprintf("New project!\n\n%s\nClient: %s\nCompany: %s\nBudget: %s$",
		orUntitled(record.ProjectName), orUntitled(record.ClientName),
		orUntitled(record.CompanyName), record.Budget)

	var body bytes.Buffer
	w := multipart.NewWriter(&body)
	if err := w.WriteField("chat_id", c.chatID); err != nil {
		return err
	}
	if err := w.WriteField("caption", caption); err != nil {
		return err
	}
	header := textproto.MIMEHeader{}
	header.Set("Content-Disposition", fmt.Sprintf(`form-data; name="document"; filename="%s"`, doc.Filename))
	header.Set("Content-Type", doc.ContentType)
	part, err := w.CreatePart(header)
	if err != nil {
		return err
	}
	if _, err := part.Write(doc.Bytes); err != nil {
		return err
	}
	if err := w.Close(); err != nil {
		return err
	}

	return c.post(ctx, "sendDocument", w.FormDataContentType(), &body)
}

func (c *TelegramChannel) sendMessage(ctx context.Context, record *models.BriefRecord) error {
	text := fmt.Sprintf("*New project!*\n\n*%s*\nClient: %s\nCompany: %s\nBudget: %s$\nDeadline: %s\n\n%s",
		orUntitled(record.ProjectName), orUntitled(record.ClientName),
		orUntitled(record.CompanyName), record.Budget,
		orUntitled(record.Deadline), orUntitled(record.ProjectDescription))

	payload, err := json.Marshal(map[string]string{
		"chat_id":    c.chatID,
		"text":       text,
		"parse_mode": "Markdown",
	})
	if err != nil {
		return err
	}

	return c.post(ctx, "sendMessage", "application/json", bytes.NewReader(payload))
}

func (c *TelegramChannel) post(ctx context.Context, method, contentType string, body io.Reader) error {
	url := fmt.Sprintf("%s/bot%s/%s", c.apiBase, c.token, method)
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, url, body)
	if err != nil {
		return err
	}
	req.Header.Set("Content-Type", contentType)

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("telegram %s request failed: %w", method, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		detail, _ := io.ReadAll(io.LimitReader(resp.Body, 1<<10))
		return fmt.Errorf("telegram %s returned %d: %s", method, resp.StatusCode, strings.TrimSpace(string(detail)))
	}
	return nil
}
