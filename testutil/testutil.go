package testutil

import (
	"bytes"
	"context"
	"database/sql"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	_ "modernc.org/sqlite"

	"github.com/mustafamoossawi/brief-server/cliparse"
	"github.com/mustafamoossawi/brief-server/db"
	"github.com/mustafamoossawi/brief-server/models"
	"github.com/mustafamoossawi/brief-server/render"
)

// TinyPNGDataURI is a valid 1x1 PNG, small enough to inline in any test.
const TinyPNGDataURI = "data:image/png;base64,iVBORw0KGgoAAAANSUhEUgAAAAEAAAABCAIAAACQd1PeAAAADElEQVR4nGO48p8BAAR+AdRUoZymAAAAAElFTkSuQmCC"

// SetupTestDB opens a fresh in-memory database with the full schema.
func SetupTestDB(t *testing.T) *sql.DB {
	t.Helper()

	conn, err := sql.Open("sqlite", "file::memory:?cache=shared&mode=memory")
	if err != nil {
		t.Fatalf("Failed to open test database: %v", err)
	}
	// A single shared connection keeps the in-memory database alive and
	// serializes access across test goroutines.
	conn.SetMaxOpenConns(1)
	t.Cleanup(func() { conn.Close() })

	if _, err := conn.Exec(`DROP TABLE IF EXISTS submission; DROP TABLE IF EXISTS draft;`); err != nil {
		t.Fatalf("Failed to clean database: %v", err)
	}
	if err := db.CreateSchema(conn); err != nil {
		t.Fatalf("Failed to create schema: %v", err)
	}

	return conn
}

// GetTestConfig returns a standard test configuration
func GetTestConfig() cliparse.Config {
	return cliparse.Config{
		Port:              3319,
		DatabasePath:      ":memory:",
		DraftKeySalt:      "test-draft-salt",
		PDFBackend:        cliparse.BackendFPDF,
		ResendAPIKey:      "re_test_key",
		EmailFrom:         "Portfolio Briefs <onboarding@resend.dev>",
		DesignerEmail:     "designer@example.com",
		TelegramAPIBase:   "https://api.telegram.org",
		MoodboardMaxBytes: 5 << 20,
	}
}

// FilledBrief returns a record with every step's fields populated, the way a
// client who finished the form would leave it.
func FilledBrief() *models.BriefRecord {
	record := models.NewBriefRecord(time.Now())
	record.ClientStatus = models.ClientStatusNew
	record.ClientName = "Layla Hassan"
	record.CompanyName = "Hassan Trading Co"
	record.Phone = "+971 50 123 4567"
	record.Email = "layla@example.com"
	record.ProjectName = "Coastal Rebrand"
	record.ProjectDescription = "Identity refresh for a family trading business."
	record.ProjectType = "Retail"
	record.FavoriteColors = "Teal, sand"
	record.LogoType = models.LogoTypeDouble
	record.Applications["businessCard"] = true
	record.Applications["socialMedia"] = true
	record.PaperSizes = models.PaperSizes{A4: true}
	record.StartDate = "2026-09-15"
	record.Deadline = "2026-11-01"
	record.Budget = "150-200"
	record.Notes = "Prefers weeknight calls."
	return record
}

// FakeRenderer returns a canned document or error without touching a
// rendering backend.
type FakeRenderer struct {
	Doc   *render.Document
	Err   error
	Calls int
}

func (f *FakeRenderer) Render(ctx context.Context, record *models.BriefRecord) (*render.Document, error) {
	f.Calls++
	if f.Err != nil {
		return nil, f.Err
	}
	if f.Doc != nil {
		return f.Doc, nil
	}
	return &render.Document{
		Bytes:       []byte("%PDF-1.4 fake"),
		Filename:    render.Filename(record),
		ContentType: "application/pdf",
	}, nil
}

// FakeChannel records deliveries for assertion.
type FakeChannel struct {
	ChannelName string
	Err         error
	Deliveries  int
	LastDoc     *render.Document
	LastRecord  *models.BriefRecord
}

func (f *FakeChannel) Name() string { return f.ChannelName }

func (f *FakeChannel) Deliver(ctx context.Context, doc *render.Document, record *models.BriefRecord) error {
	f.Deliveries++
	f.LastDoc = doc
	f.LastRecord = record
	return f.Err
}

// MakeRequest creates an HTTP test request
func MakeRequest(method, path string, body interface{}, headers map[string]string) *http.Request {
	var req *http.Request
	if body != nil {
		jsonBody, _ := json.Marshal(body)
		req = httptest.NewRequest(method, path, bytes.NewReader(jsonBody))
		req.Header.Set("Content-Type", "application/json")
	} else {
		req = httptest.NewRequest(method, path, nil)
	}

	for k, v := range headers {
		req.Header.Set(k, v)
	}

	return req
}

// AssertStatus checks that the response has the expected status code
func AssertStatus(t *testing.T, w *httptest.ResponseRecorder, expected int) {
	t.Helper()
	if w.Code != expected {
		t.Errorf("Expected status %d, got %d. Body: %s", expected, w.Code, w.Body.String())
	}
}

// AssertJSON decodes the response body into the provided struct
func AssertJSON(t *testing.T, w *httptest.ResponseRecorder, v interface{}) {
	t.Helper()
	if err := json.NewDecoder(w.Body).Decode(v); err != nil {
		t.Fatalf("Failed to decode JSON response: %v", err)
	}
}
