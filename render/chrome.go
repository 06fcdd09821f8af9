package render

import (
	"context"
	"errors"
	"fmt"
	"io"
	"time"

	"github.com/go-rod/rod"
	"github.com/go-rod/rod/lib/launcher"
	"github.com/go-rod/rod/lib/proto"

	"github.com/mustafamoossawi/brief-server/models"
)

// chromeRenderTimeout bounds the whole launch-navigate-print cycle.
const chromeRenderTimeout = 30 * time.Second

// ChromeRenderer prints the brief through a headless Chrome instance.
// Launch failures surface as ErrBackendUnavailable so callers can tell a
// missing browser apart from a rendering bug.
type ChromeRenderer struct{}

func NewChromeRenderer() *ChromeRenderer {
	return &ChromeRenderer{}
}

func (r *ChromeRenderer) Render(ctx context.Context, record *models.BriefRecord) (*Document, error) {
	ctx, cancel := context.WithTimeout(ctx, chromeRenderTimeout)
	defer cancel()

	html, err := briefHTML(record)
	if err != nil {
		return nil, err
	}

	l := launcher.New().Headless(true)
	controlURL, err := l.Launch()
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrBackendUnavailable, err)
	}
	defer l.Cleanup()

	browser := rod.New().ControlURL(controlURL).Context(ctx)
	if err := browser.Connect(); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrBackendUnavailable, err)
	}
	defer browser.Close()

	page, err := browser.Page(proto.TargetCreateTarget{URL: "about:blank"})
	if err != nil {
		return nil, timeoutOr(ctx, fmt.Errorf("opening page: %w", err))
	}
	defer page.Close()

	if err := page.SetDocumentContent(html); err != nil {
		return nil, timeoutOr(ctx, fmt.Errorf("loading brief markup: %w", err))
	}

	printBackground := true
	stream, err := page.PDF(&proto.PagePrintToPDF{PrintBackground: printBackground})
	if err != nil {
		return nil, timeoutOr(ctx, fmt.Errorf("printing to PDF: %w", err))
	}
	pdfBytes, err := io.ReadAll(stream)
	if err != nil {
		return nil, timeoutOr(ctx, fmt.Errorf("reading PDF stream: %w", err))
	}

	return &Document{
		Bytes:       pdfBytes,
		Filename:    Filename(record),
		ContentType: "application/pdf",
	}, nil
}

// timeoutOr maps a deadline expiry onto ErrRenderTimeout and passes every
// other failure through unchanged.
func timeoutOr(ctx context.Context, err error) error {
	if errors.Is(ctx.Err(), context.DeadlineExceeded) {
		return fmt.Errorf("%w after %s", ErrRenderTimeout, chromeRenderTimeout)
	}
	return err
}
