package render

import (
	"encoding/base64"
	"fmt"
	"html/template"
	"strings"

	"github.com/mustafamoossawi/brief-server/models"
)

// briefHTML renders the printable markup the Chrome backend captures. The
// layout mirrors the email summary: dark header, bordered field cards, a
// moodboard grid of inline images.
func briefHTML(record *models.BriefRecord) (string, error) {
	type imageData struct{ Src template.URL }
	data := struct {
		Record    *models.BriefRecord
		Dash      func(string) string
		Apps      string
		Paper     string
		Moodboard []imageData
	}{
		Record: record,
		Dash:   orDash,
		Apps:   strings.Join(record.SelectedApplications(), ", "),
		Paper:  paperSizes(record.PaperSizes),
	}
	for _, img := range record.Moodboard {
		src := fmt.Sprintf("data:%s;base64,%s", img.ContentType, base64.StdEncoding.EncodeToString(img.Data))
		data.Moodboard = append(data.Moodboard, imageData{Src: template.URL(src)})
	}

	var sb strings.Builder
	if err := briefTemplate.Execute(&sb, data); err != nil {
		return "", fmt.Errorf("brief template failed: %w", err)
	}
	return sb.String(), nil
}

var briefTemplate = template.Must(template.New("brief").Parse(`<!DOCTYPE html>
<html>
<head>
<meta charset="utf-8">
<style>
  body { font-family: Helvetica, Arial, sans-serif; margin: 0; color: #111; }
  .header { background: #111; color: #fff; padding: 24px 32px; border-bottom: 4px solid #d4ff00; }
  .header h1 { margin: 0; font-size: 26px; letter-spacing: 2px; color: #d4ff00; }
  .header p { margin: 6px 0 0; font-size: 12px; opacity: .85; }
  .content { padding: 24px 32px; }
  h2 { font-size: 15px; border-left: 4px solid #d4ff00; padding-left: 10px; margin: 24px 0 10px; }
  table { width: 100%; border-collapse: collapse; }
  td { padding: 6px 10px; font-size: 12px; border: 1px solid #e5e7eb; background: #f9fafb; }
  td.label { width: 160px; color: #6b7280; }
  td.value { font-weight: bold; }
  .moodboard img { max-width: 45%; margin: 4px; border: 1px solid #e5e7eb; }
</style>
</head>
<body>
  <div class="header">
    <h1>PROJECT BRIEF</h1>
    <p>Submitted {{call .Dash .Record.Date}}</p>
  </div>
  <div class="content">
    <h2>Client</h2>
    <table>
      <tr><td class="label">Client name</td><td class="value">{{call .Dash .Record.ClientName}}</td></tr>
      <tr><td class="label">Company</td><td class="value">{{call .Dash .Record.CompanyName}}</td></tr>
      <tr><td class="label">Client status</td><td class="value">{{.Record.ClientStatus}}</td></tr>
      <tr><td class="label">Phone</td><td class="value">{{call .Dash .Record.Phone}}</td></tr>
      <tr><td class="label">Email</td><td class="value">{{call .Dash .Record.Email}}</td></tr>
    </table>
    <h2>Project</h2>
    <table>
      <tr><td class="label">Project name</td><td class="value">{{call .Dash .Record.ProjectName}}</td></tr>
      <tr><td class="label">Field / industry</td><td class="value">{{call .Dash .Record.ProjectType}}</td></tr>
      <tr><td class="label">Favorite colors</td><td class="value">{{call .Dash .Record.FavoriteColors}}</td></tr>
      <tr><td class="label">Description</td><td class="value">{{call .Dash .Record.ProjectDescription}}</td></tr>
    </table>
    <h2>Style</h2>
    <table>
      <tr><td class="label">Logo type</td><td class="value">{{.Record.LogoType}}</td></tr>
    </table>
    <h2>Scope</h2>
    <table>
      <tr><td class="label">Applications</td><td class="value">{{call .Dash .Apps}}</td></tr>
      <tr><td class="label">Other</td><td class="value">{{call .Dash .Record.OtherApplication}}</td></tr>
      <tr><td class="label">Paper sizes</td><td class="value">{{call .Dash .Paper}}</td></tr>
    </table>
    <h2>Schedule &amp; Budget</h2>
    <table>
      <tr><td class="label">Start date</td><td class="value">{{call .Dash .Record.StartDate}}</td></tr>
      <tr><td class="label">Deadline</td><td class="value">{{call .Dash .Record.Deadline}}</td></tr>
      <tr><td class="label">Budget (USD)</td><td class="value">{{.Record.Budget}}</td></tr>
      <tr><td class="label">Notes</td><td class="value">{{call .Dash .Record.Notes}}</td></tr>
    </table>
    {{if .Moodboard}}
    <h2>Moodboard</h2>
    <div class="moodboard">
      {{range .Moodboard}}<img src="{{.Src}}">{{end}}
    </div>
    {{end}}
  </div>
</body>
</html>`))
