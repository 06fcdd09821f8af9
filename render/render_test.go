package render

import (
	"bytes"
	"context"
	"image"
	"image/color"
	"image/png"
	"strings"
	"testing"
	"time"

	"github.com/pdfcpu/pdfcpu/pkg/api"
	"github.com/pdfcpu/pdfcpu/pkg/pdfcpu/model"

	"github.com/mustafamoossawi/brief-server/cliparse"
	"github.com/mustafamoossawi/brief-server/models"
)

func fullRecord() *models.BriefRecord {
	record := models.NewBriefRecord(time.Now())
	record.ClientName = "Layla Hassan"
	record.CompanyName = "Hassan Trading Co"
	record.Phone = "+971 50 123 4567"
	record.Email = "layla@example.com"
	record.ProjectName = "Coastal Rebrand"
	record.ProjectDescription = "Full identity refresh for a family trading business moving into retail."
	record.ProjectType = "Retail"
	record.FavoriteColors = "Teal, sand, off-white"
	record.LogoType = models.LogoTypeDouble
	record.Applications["businessCard"] = true
	record.Applications["socialMedia"] = true
	record.OtherApplication = "Delivery van wrap"
	record.PaperSizes = models.PaperSizes{A4: true, A5: true}
	record.StartDate = "2026-09-15"
	record.Deadline = "2026-11-01"
	record.Budget = "150-200"
	record.Notes = "Client prefers weeknight calls."
	return record
}

func tinyPNG(t *testing.T) models.MoodboardImage {
	t.Helper()
	img := image.NewRGBA(image.Rect(0, 0, 2, 2))
	img.Set(0, 0, color.RGBA{R: 212, G: 255, B: 0, A: 255})
	var buf bytes.Buffer
	if err := png.Encode(&buf, img); err != nil {
		t.Fatalf("encoding test image: %v", err)
	}
	return models.MoodboardImage{ContentType: "image/png", Data: buf.Bytes()}
}

func pageCount(t *testing.T, pdfBytes []byte) int {
	t.Helper()
	conf := model.NewDefaultConfiguration()
	conf.ValidationMode = model.ValidationRelaxed
	n, err := api.PageCount(bytes.NewReader(pdfBytes), conf)
	if err != nil {
		t.Fatalf("counting pages: %v", err)
	}
	return n
}

func TestFPDFRenderFullRecord(t *testing.T) {
	record := fullRecord()
	record.Moodboard = append(record.Moodboard, tinyPNG(t))

	doc, err := NewFPDFRenderer().Render(context.Background(), record)
	if err != nil {
		t.Fatalf("Render failed: %v", err)
	}
	if !bytes.HasPrefix(doc.Bytes, []byte("%PDF")) {
		t.Errorf("document does not start with a PDF header")
	}
	if doc.ContentType != "application/pdf" {
		t.Errorf("got content type %q, want application/pdf", doc.ContentType)
	}
	if doc.Filename != "Brief_Coastal_Rebrand.pdf" {
		t.Errorf("got filename %q, want Brief_Coastal_Rebrand.pdf", doc.Filename)
	}
	if n := pageCount(t, doc.Bytes); n < 1 {
		t.Errorf("got %d pages, want at least 1", n)
	}
}

func TestFPDFRenderEmptyRecord(t *testing.T) {
	doc, err := NewFPDFRenderer().Render(context.Background(), models.NewBriefRecord(time.Now()))
	if err != nil {
		t.Fatalf("Render of a default record failed: %v", err)
	}
	if n := pageCount(t, doc.Bytes); n < 1 {
		t.Errorf("got %d pages, want at least 1", n)
	}
}

func TestFPDFRenderSkipsUnsupportedImage(t *testing.T) {
	record := fullRecord()
	record.Moodboard = append(record.Moodboard,
		models.MoodboardImage{ContentType: "image/webp", Data: []byte("RIFF....WEBP")},
		tinyPNG(t),
	)

	doc, err := NewFPDFRenderer().Render(context.Background(), record)
	if err != nil {
		t.Fatalf("Render failed: %v", err)
	}
	if n := pageCount(t, doc.Bytes); n < 1 {
		t.Errorf("got %d pages, want at least 1", n)
	}
}

func TestCheckedRendererAcceptsValidOutput(t *testing.T) {
	cfg := cliparse.Config{PDFBackend: cliparse.BackendFPDF}
	renderer, err := New(cfg)
	if err != nil {
		t.Fatalf("New failed: %v", err)
	}
	doc, err := renderer.Render(context.Background(), fullRecord())
	if err != nil {
		t.Fatalf("checked render failed: %v", err)
	}
	if len(doc.Bytes) == 0 {
		t.Error("checked render produced an empty document")
	}
}

func TestNewRejectsUnknownBackend(t *testing.T) {
	if _, err := New(cliparse.Config{PDFBackend: "latex"}); err == nil {
		t.Error("expected an error for an unknown backend")
	}
}

func TestFilename(t *testing.T) {
	tests := []struct {
		name    string
		project string
		want    string
	}{
		{"simple", "Coastal Rebrand", "Brief_Coastal_Rebrand.pdf"},
		{"empty", "", "Brief_Project.pdf"},
		{"whitespace only", "   ", "Brief_Project.pdf"},
		{"slash and colon", "Q4/launch: v2", "Brief_Q4-launch-_v2.pdf"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			record := models.NewBriefRecord(time.Now())
			record.ProjectName = tt.project
			if got := Filename(record); got != tt.want {
				t.Errorf("Filename(%q) = %q, want %q", tt.project, got, tt.want)
			}
		})
	}
}

func TestBriefHTMLContainsFields(t *testing.T) {
	record := fullRecord()
	record.Moodboard = append(record.Moodboard, tinyPNG(t))

	html, err := briefHTML(record)
	if err != nil {
		t.Fatalf("briefHTML failed: %v", err)
	}
	for _, want := range []string{"Layla Hassan", "Coastal Rebrand", "150-200", "data:image/png;base64,"} {
		if !strings.Contains(html, want) {
			t.Errorf("rendered markup is missing %q", want)
		}
	}
}
