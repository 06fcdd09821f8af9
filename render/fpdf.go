package render

import (
	"bytes"
	"context"
	"fmt"
	"log/slog"
	"strings"

	"github.com/go-pdf/fpdf"

	"github.com/mustafamoossawi/brief-server/models"
)

// FPDFRenderer is the in-process backend: declarative page primitives, no
// external execution environment, so it can never be "unavailable".
type FPDFRenderer struct{}

func NewFPDFRenderer() *FPDFRenderer {
	return &FPDFRenderer{}
}

func (r *FPDFRenderer) Render(ctx context.Context, record *models.BriefRecord) (*Document, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	pdf := fpdf.New("P", "mm", "A4", "")
	pdf.SetTitle("Project Brief", true)
	pdf.SetAutoPageBreak(true, 18)
	pdf.AddPage()

	// Header band
	pdf.SetFillColor(17, 17, 17)
	pdf.Rect(0, 0, 210, 28, "F")
	pdf.SetTextColor(212, 255, 0)
	pdf.SetFont("Helvetica", "B", 20)
	pdf.SetXY(12, 8)
	pdf.CellFormat(0, 12, "PROJECT BRIEF", "", 1, "L", false, 0, "")
	pdf.SetTextColor(255, 255, 255)
	pdf.SetFont("Helvetica", "", 9)
	pdf.SetX(12)
	pdf.CellFormat(0, 5, "Submitted "+orDash(record.Date), "", 1, "L", false, 0, "")
	pdf.SetY(36)
	pdf.SetTextColor(0, 0, 0)

	clientStatus := "New client"
	if record.ClientStatus == models.ClientStatusCurrent {
		clientStatus = "Returning client"
	}

	section(pdf, "Client")
	field(pdf, "Client name", record.ClientName)
	field(pdf, "Company", record.CompanyName)
	field(pdf, "Status", clientStatus)
	field(pdf, "Phone", record.Phone)
	field(pdf, "Email", record.Email)

	section(pdf, "Project")
	field(pdf, "Project name", record.ProjectName)
	field(pdf, "Field / industry", record.ProjectType)
	field(pdf, "Favorite colors", record.FavoriteColors)
	longField(pdf, "Description", record.ProjectDescription)

	section(pdf, "Style")
	field(pdf, "Logo type", record.LogoType)

	section(pdf, "Scope")
	apps := strings.Join(record.SelectedApplications(), ", ")
	longField(pdf, "Applications", apps)
	field(pdf, "Other", record.OtherApplication)
	field(pdf, "Paper sizes", paperSizes(record.PaperSizes))

	section(pdf, "Schedule & Budget")
	field(pdf, "Start date", record.StartDate)
	field(pdf, "Deadline", record.Deadline)
	field(pdf, "Budget (USD)", record.Budget)
	longField(pdf, "Notes", record.Notes)

	if len(record.Moodboard) > 0 {
		section(pdf, "Moodboard")
		r.placeImages(pdf, record.Moodboard)
	}

	if err := pdf.Error(); err != nil {
		return nil, fmt.Errorf("pdf assembly failed: %w", err)
	}

	var buf bytes.Buffer
	if err := pdf.Output(&buf); err != nil {
		return nil, fmt.Errorf("pdf output failed: %w", err)
	}

	return &Document{
		Bytes:       buf.Bytes(),
		Filename:    Filename(record),
		ContentType: "application/pdf",
	}, nil
}

// placeImages embeds up to the moodboard limit of images, skipping any the
// engine cannot decode instead of failing the whole document.
func (r *FPDFRenderer) placeImages(pdf *fpdf.Fpdf, images []models.MoodboardImage) {
	for i, img := range images {
		imgType, ok := fpdfImageType(img.ContentType)
		if !ok {
			slog.Warn("skipping moodboard image with unsupported type", "contentType", img.ContentType, "index", i)
			continue
		}

		name := fmt.Sprintf("moodboard-%d", i)
		opts := fpdf.ImageOptions{ImageType: imgType}
		pdf.RegisterImageOptionsReader(name, opts, bytes.NewReader(img.Data))
		if pdf.Err() {
			slog.Warn("skipping undecodable moodboard image", "index", i, "error", pdf.Error())
			pdf.ClearError()
			continue
		}

		if pdf.GetY() > 190 {
			pdf.AddPage()
		}
		pdf.ImageOptions(name, 14, pdf.GetY()+2, 90, 0, true, opts, 0, "")
		pdf.Ln(4)
	}
}

func fpdfImageType(contentType string) (string, bool) {
	switch contentType {
	case "image/png":
		return "PNG", true
	case "image/jpeg", "image/jpg":
		return "JPG", true
	case "image/gif":
		return "GIF", true
	default:
		return "", false
	}
}

func section(pdf *fpdf.Fpdf, title string) {
	pdf.Ln(4)
	pdf.SetFont("Helvetica", "B", 12)
	pdf.SetDrawColor(212, 255, 0)
	pdf.SetLineWidth(1)
	y := pdf.GetY()
	pdf.Line(12, y+1, 12, y+6)
	pdf.SetX(15)
	pdf.CellFormat(0, 7, title, "", 1, "L", false, 0, "")
	pdf.Ln(1)
}

func field(pdf *fpdf.Fpdf, label, value string) {
	pdf.SetFont("Helvetica", "", 9)
	pdf.SetTextColor(130, 130, 130)
	pdf.SetX(15)
	pdf.CellFormat(40, 6, label, "", 0, "L", false, 0, "")
	pdf.SetFont("Helvetica", "B", 10)
	pdf.SetTextColor(0, 0, 0)
	pdf.CellFormat(0, 6, orDash(value), "", 1, "L", false, 0, "")
}

func longField(pdf *fpdf.Fpdf, label, value string) {
	pdf.SetFont("Helvetica", "", 9)
	pdf.SetTextColor(130, 130, 130)
	pdf.SetX(15)
	pdf.CellFormat(0, 6, label, "", 1, "L", false, 0, "")
	pdf.SetFont("Helvetica", "", 10)
	pdf.SetTextColor(0, 0, 0)
	pdf.SetX(15)
	pdf.MultiCell(178, 5, orDash(value), "", "L", false)
	pdf.Ln(1)
}

func paperSizes(p models.PaperSizes) string {
	var sizes []string
	if p.DL {
		sizes = append(sizes, "DL")
	}
	if p.A5 {
		sizes = append(sizes, "A5")
	}
	if p.A4 {
		sizes = append(sizes, "A4")
	}
	if p.A3 {
		sizes = append(sizes, "A3")
	}
	return strings.Join(sizes, ", ")
}
