package models

import (
	"encoding/base64"
	"errors"
	"fmt"
	"strings"
	"time"
)

// Client status constants
const (
	ClientStatusNew     = "new"
	ClientStatusCurrent = "current"
)

// Logo archetype constants
const (
	LogoTypeText       = "text"
	LogoTypeSymbolic   = "symbolic"
	LogoTypeInnovative = "innovative"
	LogoTypeDouble     = "double"
	LogoTypeArabic     = "arabic"
)

// BudgetBrackets are the accepted budget ranges (USD).
var BudgetBrackets = []string{"20-50", "50-100", "100-150", "150-200", "200-500"}

// ApplicationCatalog is the fixed set of brand application keys clients can
// select, with the labels used in rendered documents.
var ApplicationCatalog = []ApplicationOption{
	{Key: "businessCard", Label: "Business Cards"},
	{Key: "letterHead", Label: "Letterhead"},
	{Key: "envelope", Label: "Envelope"},
	{Key: "folder", Label: "Folder"},
	{Key: "socialMedia", Label: "Social Media Kit"},
	{Key: "profilePic", Label: "Profile Pictures"},
	{Key: "packaging", Label: "Packaging"},
	{Key: "bag", Label: "Shopping Bag"},
	{Key: "signage", Label: "Signage / Billboard"},
	{Key: "uniform", Label: "Uniforms / T-shirts"},
	{Key: "stamp", Label: "Stamp / Seal"},
	{Key: "sticker", Label: "Stickers"},
	{Key: "website", Label: "Website UI"},
	{Key: "vehicle", Label: "Vehicle Wrap"},
	{Key: "menu", Label: "Menu"},
}

type ApplicationOption struct {
	Key   string `json:"key"`
	Label string `json:"label"`
}

// MoodboardLimit caps how many reference images a brief may carry.
const MoodboardLimit = 5

// Moodboard errors
var (
	ErrMoodboardFull = errors.New("moodboard already holds the maximum number of images")
	ErrImageTooLarge = errors.New("moodboard image exceeds the size ceiling")
	ErrBadImage      = errors.New("moodboard image is not a decodable data URI")
	ErrNoSuchImage   = errors.New("moodboard index out of range")
)

// MoodboardImage is one inline reference image. It travels over the wire (and
// through the draft store) as a base64 data URI but is held in memory as raw
// bytes so attachment payloads are encoded exactly once, by the delivery layer.
type MoodboardImage struct {
	ContentType string
	Data        []byte
}

func (m MoodboardImage) MarshalJSON() ([]byte, error) {
	uri := fmt.Sprintf("data:%s;base64,%s", m.ContentType, base64.StdEncoding.EncodeToString(m.Data))
	return []byte(`"` + uri + `"`), nil
}

func (m *MoodboardImage) UnmarshalJSON(data []byte) error {
	if len(data) < 2 || data[0] != '"' || data[len(data)-1] != '"' {
		return ErrBadImage
	}
	img, err := DecodeDataURI(string(data[1 : len(data)-1]))
	if err != nil {
		return err
	}
	*m = img
	return nil
}

// DecodeDataURI parses a "data:<type>;base64,<payload>" string into raw bytes.
func DecodeDataURI(uri string) (MoodboardImage, error) {
	if !strings.HasPrefix(uri, "data:") {
		return MoodboardImage{}, ErrBadImage
	}
	meta, payload, ok := strings.Cut(uri[len("data:"):], ",")
	if !ok || !strings.HasSuffix(meta, ";base64") {
		return MoodboardImage{}, ErrBadImage
	}
	contentType := strings.TrimSuffix(meta, ";base64")
	if contentType == "" {
		contentType = "application/octet-stream"
	}
	raw, err := base64.StdEncoding.DecodeString(payload)
	if err != nil {
		return MoodboardImage{}, ErrBadImage
	}
	return MoodboardImage{ContentType: contentType, Data: raw}, nil
}

// FileExt maps the image content type to a filename extension for attachments.
func (m MoodboardImage) FileExt() string {
	if _, sub, ok := strings.Cut(m.ContentType, "/"); ok && sub != "" {
		return sub
	}
	return "bin"
}

type PaperSizes struct {
	DL bool `json:"dl"`
	A5 bool `json:"a5"`
	A4 bool `json:"a4"`
	A3 bool `json:"a3"`
}

// BriefRecord is the aggregate one submission pipeline run operates on.
// Field names on the wire match the original front-end form payload.
type BriefRecord struct {
	ClientStatus string `json:"clientStatus"`
	Date         string `json:"date"`
	ClientName   string `json:"clientName"`
	CompanyName  string `json:"companyName"`
	Phone        string `json:"phone"`
	Email        string `json:"email"`

	ProjectName        string `json:"projectName"`
	ProjectDescription string `json:"projectDescription"`
	ProjectType        string `json:"projectType"`
	FavoriteColors     string `json:"favoriteColors"`

	LogoType  string           `json:"logoType"`
	Moodboard []MoodboardImage `json:"moodboard"`

	Applications     map[string]bool `json:"applications"`
	OtherApplication string          `json:"otherApplication"`
	PaperSizes       PaperSizes      `json:"paperSizes"`

	StartDate string `json:"startDate"`
	Deadline  string `json:"deadline"`
	Budget    string `json:"budget"`
	Notes     string `json:"notes"`
}

// NewBriefRecord returns a record with the form's default values.
func NewBriefRecord(now time.Time) *BriefRecord {
	apps := make(map[string]bool, len(ApplicationCatalog))
	for _, opt := range ApplicationCatalog {
		apps[opt.Key] = false
	}
	return &BriefRecord{
		ClientStatus: ClientStatusNew,
		Date:         now.Format("2006-01-02"),
		LogoType:     LogoTypeText,
		Moodboard:    []MoodboardImage{},
		Applications: apps,
		Budget:       "100-150",
	}
}

// MissingRequired reports which required fields are still empty. Required
// fields never block navigation; they only gate the readiness indicator shown
// before final submission.
func (r *BriefRecord) MissingRequired() []string {
	var missing []string
	if strings.TrimSpace(r.ClientName) == "" {
		missing = append(missing, "clientName")
	}
	if strings.TrimSpace(r.Email) == "" {
		missing = append(missing, "email")
	}
	return missing
}

// AddMoodboardImage appends an image, enforcing cardinality and the byte
// ceiling. On rejection the existing images are left untouched.
func (r *BriefRecord) AddMoodboardImage(img MoodboardImage, maxBytes int64) error {
	if len(r.Moodboard) >= MoodboardLimit {
		return ErrMoodboardFull
	}
	if int64(len(img.Data)) > maxBytes {
		return ErrImageTooLarge
	}
	r.Moodboard = append(r.Moodboard, img)
	return nil
}

// RemoveMoodboardImage deletes the image at index, preserving order.
func (r *BriefRecord) RemoveMoodboardImage(index int) error {
	if index < 0 || index >= len(r.Moodboard) {
		return fmt.Errorf("%w: %d", ErrNoSuchImage, index)
	}
	r.Moodboard = append(r.Moodboard[:index], r.Moodboard[index+1:]...)
	return nil
}

// SelectedApplications returns catalog labels for the selected keys, in
// catalog order.
func (r *BriefRecord) SelectedApplications() []string {
	var labels []string
	for _, opt := range ApplicationCatalog {
		if r.Applications[opt.Key] {
			labels = append(labels, opt.Label)
		}
	}
	return labels
}

// BriefPatch is a partial update to a BriefRecord. Nil fields are left alone;
// the applications map is merged key by key.
type BriefPatch struct {
	ClientStatus       *string         `json:"clientStatus"`
	Date               *string         `json:"date"`
	ClientName         *string         `json:"clientName"`
	CompanyName        *string         `json:"companyName"`
	Phone              *string         `json:"phone"`
	Email              *string         `json:"email"`
	ProjectName        *string         `json:"projectName"`
	ProjectDescription *string         `json:"projectDescription"`
	ProjectType        *string         `json:"projectType"`
	FavoriteColors     *string         `json:"favoriteColors"`
	LogoType           *string         `json:"logoType"`
	Applications       map[string]bool `json:"applications"`
	OtherApplication   *string         `json:"otherApplication"`
	PaperSizes         *PaperSizes     `json:"paperSizes"`
	StartDate          *string         `json:"startDate"`
	Deadline           *string         `json:"deadline"`
	Budget             *string         `json:"budget"`
	Notes              *string         `json:"notes"`
}

// ValidBudget reports whether the value is one of the accepted brackets.
func ValidBudget(v string) bool {
	for _, b := range BudgetBrackets {
		if v == b {
			return true
		}
	}
	return false
}

// ValidClientStatus reports whether the value is a known client status.
func ValidClientStatus(v string) bool {
	return v == ClientStatusNew || v == ClientStatusCurrent
}

// ValidLogoType reports whether the value is a known logo style.
func ValidLogoType(v string) bool {
	switch v {
	case LogoTypeText, LogoTypeSymbolic, LogoTypeInnovative, LogoTypeDouble, LogoTypeArabic:
		return true
	}
	return false
}

// Apply merges the patch into the record. Enum fields come from fixed
// choices in the form, so values outside the vocabulary are ignored rather
// than rejected.
func (r *BriefRecord) Apply(p BriefPatch) {
	setString := func(dst *string, src *string) {
		if src != nil {
			*dst = *src
		}
	}
	setEnum := func(dst *string, src *string, valid func(string) bool) {
		if src != nil && valid(*src) {
			*dst = *src
		}
	}
	setEnum(&r.ClientStatus, p.ClientStatus, ValidClientStatus)
	setString(&r.Date, p.Date)
	setString(&r.ClientName, p.ClientName)
	setString(&r.CompanyName, p.CompanyName)
	setString(&r.Phone, p.Phone)
	setString(&r.Email, p.Email)
	setString(&r.ProjectName, p.ProjectName)
	setString(&r.ProjectDescription, p.ProjectDescription)
	setString(&r.ProjectType, p.ProjectType)
	setString(&r.FavoriteColors, p.FavoriteColors)
	setEnum(&r.LogoType, p.LogoType, ValidLogoType)
	setString(&r.OtherApplication, p.OtherApplication)
	setString(&r.StartDate, p.StartDate)
	setString(&r.Deadline, p.Deadline)
	setEnum(&r.Budget, p.Budget, ValidBudget)
	setString(&r.Notes, p.Notes)
	if p.PaperSizes != nil {
		r.PaperSizes = *p.PaperSizes
	}
	if p.Applications != nil {
		if r.Applications == nil {
			r.Applications = make(map[string]bool, len(p.Applications))
		}
		for k, v := range p.Applications {
			r.Applications[k] = v
		}
	}
}

// Delivery channel names
const (
	ChannelEmail = "email"
	ChannelChat  = "chat"
)

// DeliveryOutcome is one channel's result for a single dispatch cycle.
type DeliveryOutcome struct {
	Channel     string `json:"channel"`
	OK          bool   `json:"ok"`
	ErrorDetail string `json:"error_detail,omitempty"`
}

// Request types

type StartBriefRequest struct {
	DraftKey string `json:"draft_key"`
}

type RestoreRequest struct {
	Action string `json:"action"` // "restore" or "discard"
}

type AddMoodboardRequest struct {
	Image string `json:"image"` // base64 data URI
}

type SubmitRequest struct {
	Confirmed bool `json:"confirmed"`
}

// Response types

type StartBriefResponse struct {
	BriefID          string        `json:"brief_id"`
	DraftKey         string        `json:"draft_key,omitempty"` // set when the server generated one
	RestoreAvailable bool          `json:"restore_available"`
	DraftSummary     *DraftSummary `json:"draft_summary,omitempty"`
}

// DraftSummary is the preview shown in the restore prompt.
type DraftSummary struct {
	ClientName  string `json:"clientName"`
	CompanyName string `json:"companyName"`
	ProjectName string `json:"projectName"`
	SavedStep   int    `json:"saved_step"`
}

type BriefStateResponse struct {
	BriefID         string       `json:"brief_id"`
	Record          *BriefRecord `json:"record"`
	Step            int          `json:"step"`
	IsSubmitting    bool         `json:"is_submitting"`
	IsSuccess       bool         `json:"is_success"`
	LastError       string       `json:"last_error,omitempty"`
	MissingRequired []string     `json:"missing_required,omitempty"`
}

type SubmitResponse struct {
	Success bool   `json:"success"`
	Message string `json:"message"`
}

type RenderPDFResponse struct {
	Success   bool   `json:"success"`
	Filename  string `json:"filename"`
	PDFBase64 string `json:"pdf_base64"`
}

// Error response

type ErrorResponse struct {
	Error   string `json:"error"`
	Details string `json:"details,omitempty"`
}
