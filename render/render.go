package render

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"

	"github.com/pdfcpu/pdfcpu/pkg/api"
	"github.com/pdfcpu/pdfcpu/pkg/pdfcpu/model"

	"github.com/mustafamoossawi/brief-server/cliparse"
	"github.com/mustafamoossawi/brief-server/models"
)

// Renderer errors
var (
	// ErrBackendUnavailable means the rendering environment could not be
	// initialized at all (e.g. no Chrome executable). Fatal to the attempt
	// and surfaced to the user.
	ErrBackendUnavailable = errors.New("render backend unavailable")

	// ErrRenderTimeout means content took too long to become ready.
	ErrRenderTimeout = errors.New("render timed out")
)

// sizeWarnBytes is the soft ceiling above which the output is logged as
// oversized. The email provider may reject large attachments; the flow
// continues regardless.
const sizeWarnBytes = 3 << 20

// Document is one finished render product. It lives only for the duration of
// a single dispatch cycle and is never persisted.
type Document struct {
	Bytes       []byte
	Filename    string
	ContentType string
}

// Renderer turns a fully populated BriefRecord into a finished document.
// Backends are interchangeable from the caller's perspective; rendering may
// take tens of seconds when a browser process has to start.
type Renderer interface {
	Render(ctx context.Context, record *models.BriefRecord) (*Document, error)
}

// New builds the configured backend wrapped with the structural check.
func New(cfg cliparse.Config) (Renderer, error) {
	var backend Renderer
	switch cfg.PDFBackend {
	case cliparse.BackendFPDF:
		backend = NewFPDFRenderer()
	case cliparse.BackendChrome:
		backend = NewChromeRenderer()
	default:
		return nil, fmt.Errorf("unknown PDF backend %q", cfg.PDFBackend)
	}
	return &checkedRenderer{inner: backend}, nil
}

// checkedRenderer validates backend output before handing it on: the bytes
// must parse as a PDF with at least one page, and oversized output logs a
// warning.
type checkedRenderer struct {
	inner Renderer
}

func (c *checkedRenderer) Render(ctx context.Context, record *models.BriefRecord) (*Document, error) {
	doc, err := c.inner.Render(ctx, record)
	if err != nil {
		return nil, err
	}

	conf := model.NewDefaultConfiguration()
	conf.ValidationMode = model.ValidationRelaxed
	pages, err := api.PageCount(bytes.NewReader(doc.Bytes), conf)
	if err != nil {
		return nil, fmt.Errorf("rendered document failed structural check: %w", err)
	}
	if pages < 1 {
		return nil, fmt.Errorf("rendered document has no pages")
	}

	if len(doc.Bytes) > sizeWarnBytes {
		slog.Warn("rendered document is large; the email channel may reject it",
			"bytes", len(doc.Bytes),
			"filename", doc.Filename,
		)
	}
	return doc, nil
}

// Filename derives the document filename from the project name.
func Filename(record *models.BriefRecord) string {
	name := strings.TrimSpace(record.ProjectName)
	if name == "" {
		name = "Project"
	}
	// Strip characters that break filenames or multipart headers.
	replacer := strings.NewReplacer(" ", "_", "/", "-", "\\", "-", "\"", "", ":", "-")
	return "Brief_" + replacer.Replace(name) + ".pdf"
}

// orDash substitutes the empty-field placeholder.
func orDash(s string) string {
	if strings.TrimSpace(s) == "" {
		return "-"
	}
	return s
}
