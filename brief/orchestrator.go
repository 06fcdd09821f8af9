package brief

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"log/slog"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/mustafamoossawi/brief-server/auth"
	"github.com/mustafamoossawi/brief-server/cliparse"
	"github.com/mustafamoossawi/brief-server/db"
	"github.com/mustafamoossawi/brief-server/dispatch"
	"github.com/mustafamoossawi/brief-server/draft"
	"github.com/mustafamoossawi/brief-server/models"
	"github.com/mustafamoossawi/brief-server/render"
	"github.com/mustafamoossawi/brief-server/steps"
)

// Orchestrator errors. Handlers map these onto HTTP statuses.
var (
	ErrNotFound           = errors.New("unknown brief")
	ErrBusy               = errors.New("a submission is already in flight")
	ErrAlreadySubmitted   = errors.New("this brief was already submitted")
	ErrWrongStep          = errors.New("the brief is not on the review step")
	ErrNotConfirmed       = errors.New("submission requires explicit confirmation")
	ErrEmailNotConfigured = errors.New("email delivery is not configured")
	ErrNoDraft            = errors.New("no saved draft to restore")
	ErrBadRestoreAction   = errors.New("restore action must be \"restore\" or \"discard\"")
)

// sessionState tracks where a brief is in its lifecycle. Error is not a
// state: a failed submission returns the session to idle and parks the
// message in lastError so the client can retry.
type sessionState int

const (
	stateIdle sessionState = iota
	stateSubmitting
	stateSuccess
)

// session is one client's in-progress brief. All fields behind mu.
type session struct {
	mu sync.Mutex

	id       string
	draftKey string

	record *models.BriefRecord
	seq    *steps.Sequencer

	state     sessionState
	lastError string

	// Draft found at start time, held until the client restores or
	// discards it.
	pendingRecord *models.BriefRecord
	pendingStep   int
}

// Orchestrator owns every active brief session and drives the submit
// pipeline: render, fan out, log, clear the draft.
type Orchestrator struct {
	mu       sync.RWMutex
	sessions map[string]*session

	store      *draft.Store
	renderer   render.Renderer
	dispatcher *dispatch.Dispatcher
	conn       *sql.DB
	cfg        cliparse.Config
}

func NewOrchestrator(store *draft.Store, renderer render.Renderer, dispatcher *dispatch.Dispatcher, conn *sql.DB, cfg cliparse.Config) *Orchestrator {
	return &Orchestrator{
		sessions:   make(map[string]*session),
		store:      store,
		renderer:   renderer,
		dispatcher: dispatcher,
		conn:       conn,
		cfg:        cfg,
	}
}

// Start opens a new brief session. When the client presents a draft key and
// a restorable draft exists under it, the response advertises the draft and
// the session holds it until the client decides with Restore.
func (o *Orchestrator) Start(clientKey string) (*models.StartBriefResponse, error) {
	resp := &models.StartBriefResponse{}

	if clientKey == "" {
		generated, err := auth.GenerateClientKey()
		if err != nil {
			return nil, fmt.Errorf("generating draft key: %w", err)
		}
		clientKey = generated
		resp.DraftKey = generated
	}

	id, err := auth.GenerateID(16)
	if err != nil {
		return nil, fmt.Errorf("generating brief id: %w", err)
	}

	s := &session{
		id:       id,
		draftKey: auth.DraftKey(clientKey, o.cfg.DraftKeySalt),
		record:   models.NewBriefRecord(time.Now()),
		seq:      steps.NewSequencer(),
	}

	if saved, step, found := o.store.Load(s.draftKey); found && draft.Restorable(saved) {
		s.pendingRecord = saved
		s.pendingStep = step
		resp.RestoreAvailable = true
		resp.DraftSummary = &models.DraftSummary{
			ClientName:  saved.ClientName,
			CompanyName: saved.CompanyName,
			ProjectName: saved.ProjectName,
			SavedStep:   step,
		}
	}

	o.mu.Lock()
	o.sessions[id] = s
	o.mu.Unlock()

	resp.BriefID = id
	slog.Info("brief started", "brief_id", id, "restore_available", resp.RestoreAvailable)
	return resp, nil
}

func (o *Orchestrator) get(id string) (*session, error) {
	o.mu.RLock()
	s, ok := o.sessions[id]
	o.mu.RUnlock()
	if !ok {
		return nil, ErrNotFound
	}
	return s, nil
}

// State reports the current form contents and lifecycle position.
func (o *Orchestrator) State(id string) (*models.BriefStateResponse, error) {
	s, err := o.get(id)
	if err != nil {
		return nil, err
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.stateLocked(), nil
}

// mutableLocked rejects edits while a submission is in flight or after one
// succeeded. Submit reads the record without holding the lock during render,
// and a success must stay terminal until an explicit Reset. Caller holds
// s.mu.
func (s *session) mutableLocked() error {
	switch s.state {
	case stateSubmitting:
		return ErrBusy
	case stateSuccess:
		return ErrAlreadySubmitted
	}
	return nil
}

func (s *session) stateLocked() *models.BriefStateResponse {
	return &models.BriefStateResponse{
		BriefID:         s.id,
		Record:          s.record,
		Step:            int(s.seq.Current()),
		IsSubmitting:    s.state == stateSubmitting,
		IsSuccess:       s.state == stateSuccess,
		LastError:       s.lastError,
		MissingRequired: s.record.MissingRequired(),
	}
}

// Update merges a partial edit into the record and schedules a draft save.
// Validation stays soft: missing required fields are reported in the state,
// never rejected here.
func (o *Orchestrator) Update(id string, patch models.BriefPatch) (*models.BriefStateResponse, error) {
	s, err := o.get(id)
	if err != nil {
		return nil, err
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	if err := s.mutableLocked(); err != nil {
		return nil, err
	}
	s.record.Apply(patch)
	o.store.Save(s.draftKey, s.record, int(s.seq.Current()))
	return s.stateLocked(), nil
}

// Restore resolves a pending draft. "restore" swaps the saved record and
// step into the live session, "discard" deletes the draft and keeps the
// fresh record.
func (o *Orchestrator) Restore(id, action string) (*models.BriefStateResponse, error) {
	s, err := o.get(id)
	if err != nil {
		return nil, err
	}
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.pendingRecord == nil {
		return nil, ErrNoDraft
	}
	switch action {
	case "restore":
		s.record = s.pendingRecord
		s.seq.Resume(s.pendingStep)
		slog.Info("draft restored", "brief_id", s.id, "step", s.pendingStep)
	case "discard":
		o.store.Clear(s.draftKey)
		slog.Info("draft discarded", "brief_id", s.id)
	default:
		return nil, ErrBadRestoreAction
	}
	s.pendingRecord = nil
	s.pendingStep = 0
	return s.stateLocked(), nil
}

// AddMoodboard decodes a data URI image into the record, enforcing the
// per-image size ceiling and the five image cap.
func (o *Orchestrator) AddMoodboard(id, dataURI string) (*models.BriefStateResponse, error) {
	s, err := o.get(id)
	if err != nil {
		return nil, err
	}
	img, err := models.DecodeDataURI(dataURI)
	if err != nil {
		return nil, err
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	if err := s.mutableLocked(); err != nil {
		return nil, err
	}
	if err := s.record.AddMoodboardImage(img, o.cfg.MoodboardMaxBytes); err != nil {
		return nil, err
	}
	o.store.Save(s.draftKey, s.record, int(s.seq.Current()))
	return s.stateLocked(), nil
}

func (o *Orchestrator) RemoveMoodboard(id string, index int) (*models.BriefStateResponse, error) {
	s, err := o.get(id)
	if err != nil {
		return nil, err
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	if err := s.mutableLocked(); err != nil {
		return nil, err
	}
	if err := s.record.RemoveMoodboardImage(index); err != nil {
		return nil, err
	}
	o.store.Save(s.draftKey, s.record, int(s.seq.Current()))
	return s.stateLocked(), nil
}

// Next advances the sequencer one step, saturating at the review step.
func (o *Orchestrator) Next(id string) (*models.BriefStateResponse, error) {
	return o.move(id, func(seq *steps.Sequencer) { seq.Next() })
}

// Back moves the sequencer one step toward the start, saturating at step
// one.
func (o *Orchestrator) Back(id string) (*models.BriefStateResponse, error) {
	return o.move(id, func(seq *steps.Sequencer) { seq.Back() })
}

func (o *Orchestrator) move(id string, step func(*steps.Sequencer)) (*models.BriefStateResponse, error) {
	s, err := o.get(id)
	if err != nil {
		return nil, err
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	if err := s.mutableLocked(); err != nil {
		return nil, err
	}
	step(s.seq)
	o.store.Save(s.draftKey, s.record, int(s.seq.Current()))
	return s.stateLocked(), nil
}

// RenderPDF produces the document for a local download without submitting.
// Only allowed from the review step, where the client sees what the
// document will contain.
func (o *Orchestrator) RenderPDF(ctx context.Context, id string) (*render.Document, error) {
	s, err := o.get(id)
	if err != nil {
		return nil, err
	}
	s.mu.Lock()
	if s.seq.Current() != steps.Review {
		s.mu.Unlock()
		return nil, ErrWrongStep
	}
	record := s.record
	s.mu.Unlock()

	return o.renderer.Render(ctx, record)
}

// Submit runs the full pipeline: render the PDF, fan it out over every
// channel, log the attempt, and on success clear the draft. Guards run in
// order and the configuration check comes before any rendering or network
// work so a misconfigured server fails fast.
func (o *Orchestrator) Submit(ctx context.Context, id string, confirmed bool) (*models.SubmitResponse, error) {
	s, err := o.get(id)
	if err != nil {
		return nil, err
	}

	s.mu.Lock()
	switch {
	case s.state == stateSuccess:
		s.mu.Unlock()
		return nil, ErrAlreadySubmitted
	case s.state == stateSubmitting:
		s.mu.Unlock()
		return nil, ErrBusy
	case s.seq.Current() != steps.Review:
		s.mu.Unlock()
		return nil, ErrWrongStep
	case !confirmed:
		s.mu.Unlock()
		return nil, ErrNotConfirmed
	case !o.cfg.EmailConfigured():
		s.lastError = ErrEmailNotConfigured.Error()
		s.mu.Unlock()
		return nil, ErrEmailNotConfigured
	}
	s.state = stateSubmitting
	s.lastError = ""
	record := s.record
	s.mu.Unlock()

	doc, err := o.renderer.Render(ctx, record)
	if err != nil {
		o.finishSubmit(s, false, fmt.Sprintf("rendering failed: %v", err))
		o.logSubmission(s, record, false, nil, err.Error(), 0)
		return nil, fmt.Errorf("rendering brief: %w", err)
	}

	outcomes := o.dispatcher.Dispatch(ctx, doc, record)
	ok, detail := dispatch.Overall(outcomes)

	var chatOK *bool
	if chat := dispatch.ChatOutcome(outcomes); chat != nil {
		chatOK = &chat.OK
	}
	o.logSubmission(s, record, ok, chatOK, detail, len(doc.Bytes))

	if !ok {
		o.finishSubmit(s, false, detail)
		return nil, fmt.Errorf("delivering brief: %s", detail)
	}

	o.store.Clear(s.draftKey)
	o.finishSubmit(s, true, "")
	slog.Info("brief submitted", "brief_id", s.id, "project", record.ProjectName, "pdf_bytes", len(doc.Bytes))
	return &models.SubmitResponse{Success: true, Message: "Brief sent successfully."}, nil
}

func (o *Orchestrator) finishSubmit(s *session, ok bool, detail string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if ok {
		s.state = stateSuccess
		s.lastError = ""
		return
	}
	s.state = stateIdle
	s.lastError = detail
}

// logSubmission records the attempt for the designer's records. A logging
// failure is reported but never fails the submission itself.
func (o *Orchestrator) logSubmission(s *session, record *models.BriefRecord, emailOK bool, chatOK *bool, detail string, pdfBytes int) {
	err := db.LogSubmission(o.conn, uuid.NewString(), s.id, record.ProjectName, record.ClientName, emailOK, chatOK, detail, pdfBytes)
	if err != nil {
		slog.Error("failed to log submission", "brief_id", s.id, "error", err)
	}
}

// Reset returns the session to a blank record on step one and drops the
// stored draft. Used for the "start another brief" flow after a success.
func (o *Orchestrator) Reset(id string) (*models.BriefStateResponse, error) {
	s, err := o.get(id)
	if err != nil {
		return nil, err
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.state == stateSubmitting {
		return nil, ErrBusy
	}
	s.record = models.NewBriefRecord(time.Now())
	s.seq.Reset()
	s.state = stateIdle
	s.lastError = ""
	s.pendingRecord = nil
	s.pendingStep = 0
	o.store.Clear(s.draftKey)
	slog.Info("brief reset", "brief_id", s.id)
	return s.stateLocked(), nil
}
