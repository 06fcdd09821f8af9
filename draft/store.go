package draft

import (
	"database/sql"
	"encoding/json"
	"log/slog"
	"sync"
	"time"

	"github.com/mustafamoossawi/brief-server/models"
)

// DefaultDebounce is the quiet period between the last Save call and the
// actual database write.
const DefaultDebounce = 2 * time.Second

// Store persists in-progress BriefRecords, debounced so fast typing does not
// turn into a write storm. Persistence failures are logged and swallowed:
// the in-memory form keeps working regardless.
type Store struct {
	db    *sql.DB
	delay time.Duration

	mu      sync.Mutex
	pending map[string]*pendingWrite
	writes  int // total flushed writes, for tests
}

type pendingWrite struct {
	timer  *time.Timer
	record string // JSON snapshot taken at Save time
	step   int
}

func NewStore(db *sql.DB, delay time.Duration) *Store {
	if delay <= 0 {
		delay = DefaultDebounce
	}
	return &Store{
		db:      db,
		delay:   delay,
		pending: make(map[string]*pendingWrite),
	}
}

// Save schedules a write of the record and step under key after the debounce
// window. A newer Save for the same key supersedes any pending one
// (last-write-wins coalescing). The record is snapshotted immediately so
// later mutations do not leak into the scheduled write.
func (s *Store) Save(key string, record *models.BriefRecord, step int) {
	data, err := json.Marshal(record)
	if err != nil {
		slog.Error("failed to serialize draft", "key", key, "error", err)
		return
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	if p, ok := s.pending[key]; ok {
		p.timer.Stop()
	}
	p := &pendingWrite{record: string(data), step: step}
	p.timer = time.AfterFunc(s.delay, func() { s.flush(key) })
	s.pending[key] = p
}

// Flush writes any pending draft for key immediately. Used at shutdown so
// the debounce window cannot eat the last keystrokes.
func (s *Store) Flush(key string) {
	s.mu.Lock()
	if p, ok := s.pending[key]; ok {
		p.timer.Stop()
	}
	s.mu.Unlock()
	s.flush(key)
}

// FlushAll flushes every pending draft.
func (s *Store) FlushAll() {
	s.mu.Lock()
	keys := make([]string, 0, len(s.pending))
	for key, p := range s.pending {
		p.timer.Stop()
		keys = append(keys, key)
	}
	s.mu.Unlock()
	for _, key := range keys {
		s.flush(key)
	}
}

func (s *Store) flush(key string) {
	s.mu.Lock()
	p, ok := s.pending[key]
	if !ok {
		s.mu.Unlock()
		return
	}
	delete(s.pending, key)
	s.writes++
	s.mu.Unlock()

	_, err := s.db.Exec(`
		INSERT INTO draft (key, record, step, updated_at) VALUES (?, ?, ?, ?)
		ON CONFLICT(key) DO UPDATE SET record = excluded.record, step = excluded.step, updated_at = excluded.updated_at
	`, key, p.record, p.step, time.Now())
	if err != nil {
		slog.Error("failed to persist draft", "key", key, "error", err)
		return
	}
	slog.Debug("draft saved", "key", key, "step", p.step)
}

// Load reads the draft stored under key. A missing row, a read error, or a
// record that no longer parses all report absence; corrupt data is never
// fatal.
func (s *Store) Load(key string) (*models.BriefRecord, int, bool) {
	var raw string
	var step int
	err := s.db.QueryRow(`SELECT record, step FROM draft WHERE key = ?`, key).Scan(&raw, &step)
	if err == sql.ErrNoRows {
		return nil, 0, false
	}
	if err != nil {
		slog.Error("failed to load draft", "key", key, "error", err)
		return nil, 0, false
	}

	var record models.BriefRecord
	if err := json.Unmarshal([]byte(raw), &record); err != nil {
		slog.Warn("discarding unparseable draft", "key", key, "error", err)
		return nil, 0, false
	}
	return &record, step, true
}

// Clear removes the persisted draft and cancels any pending write for key.
func (s *Store) Clear(key string) {
	s.mu.Lock()
	if p, ok := s.pending[key]; ok {
		p.timer.Stop()
		delete(s.pending, key)
	}
	s.mu.Unlock()

	if _, err := s.db.Exec(`DELETE FROM draft WHERE key = ?`, key); err != nil {
		slog.Error("failed to clear draft", "key", key, "error", err)
	}
}

// Restorable reports whether a loaded draft is worth prompting the user
// about. Drafts with none of the identifying fields filled in are treated
// as empty.
func Restorable(record *models.BriefRecord) bool {
	if record == nil {
		return false
	}
	return record.ClientName != "" || record.ProjectName != "" || record.CompanyName != ""
}
