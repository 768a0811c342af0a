package state

import (
	"database/sql"
	"encoding/json"
	"time"

	_ "modernc.org/sqlite"

	"github.com/caseops/casectl/internal/utils"
)

// Store persists small client-side state: the auth session, the layout
// preference and the raw-view toggle. Storage being unavailable is never
// fatal to the console, so reads fall back to zero values and write errors
// are swallowed (debug-logged). All methods are safe on a nil *Store.
type Store struct {
	db *sql.DB
}

const (
	keySession = "session"
	keyLayout  = "layout"
	keyShowRaw = "show_raw"
)

func Open(path string) (*Store, error) {
	dsn := "file:" + path + "?_pragma=busy_timeout(5000)&_pragma=journal_mode(WAL)"
	db, err := sql.Open("sqlite", dsn)
	if err != nil {
		return nil, err
	}
	if err := db.Ping(); err != nil {
		return nil, err
	}
	if _, err := db.Exec(`
CREATE TABLE IF NOT EXISTS client_state (
  key   TEXT PRIMARY KEY,
  value TEXT NOT NULL
);
	`); err != nil {
		return nil, err
	}
	return &Store{db: db}, nil
}

func (s *Store) Close() error {
	if s == nil || s.db == nil {
		return nil
	}
	return s.db.Close()
}

func (s *Store) get(key string) string {
	if s == nil || s.db == nil {
		return ""
	}
	var value string
	err := s.db.QueryRow("SELECT value FROM client_state WHERE key = ?", key).Scan(&value)
	if err != nil {
		if err != sql.ErrNoRows {
			utils.Log.Debug("state read failed: ", err)
		}
		return ""
	}
	return value
}

func (s *Store) set(key, value string) {
	if s == nil || s.db == nil {
		return
	}
	_, err := s.db.Exec(`INSERT INTO client_state(key, value) VALUES(?, ?)
ON CONFLICT(key) DO UPDATE SET value = excluded.value`, key, value)
	if err != nil {
		utils.Log.Debug("state write failed: ", err)
	}
}

func (s *Store) delete(key string) {
	if s == nil || s.db == nil {
		return
	}
	if _, err := s.db.Exec("DELETE FROM client_state WHERE key = ?", key); err != nil {
		utils.Log.Debug("state delete failed: ", err)
	}
}

// Session is the persisted login: token, user profile and expiry under one
// storage key.
type Session struct {
	Token     string          `json:"token"`
	User      json.RawMessage `json:"user"`
	ExpiresAt time.Time       `json:"expires_at"`
}

func (s *Store) SaveSession(sess *Session) {
	b, err := json.Marshal(sess)
	if err != nil {
		utils.Log.Debug("session encode failed: ", err)
		return
	}
	s.set(keySession, string(b))
}

// LoadSession returns the stored session, or nil when absent, unreadable or
// expired.
func (s *Store) LoadSession() *Session {
	raw := s.get(keySession)
	if raw == "" {
		return nil
	}
	var sess Session
	if err := json.Unmarshal([]byte(raw), &sess); err != nil {
		utils.Log.Debug("session decode failed: ", err)
		return nil
	}
	if !sess.ExpiresAt.IsZero() && time.Now().After(sess.ExpiresAt) {
		return nil
	}
	return &sess
}

func (s *Store) ClearSession() {
	s.delete(keySession)
}

// Layout is the UI layout preference ("table", "cards", ...).
func (s *Store) Layout() string {
	return s.get(keyLayout)
}

func (s *Store) SetLayout(layout string) {
	s.set(keyLayout, layout)
}

// ShowRaw is the raw-view-visibility toggle.
func (s *Store) ShowRaw() bool {
	return s.get(keyShowRaw) == "1"
}

func (s *Store) SetShowRaw(show bool) {
	if show {
		s.set(keyShowRaw, "1")
	} else {
		s.set(keyShowRaw, "0")
	}
}
