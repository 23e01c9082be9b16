/*
Package session holds the client-side chat session state: current input, last
answer, last sources, last suggestion, and the logged-in user id.

The state survives restarts through a flat string-keyed JSON file, mirroring
the fixed key names the web client keeps in browser-local storage. Writes to
the durable file follow a conditional rule: answer, sources and suggestion are
only persisted when non-empty, so a cleared render state never wipes the last
good values on disk. In-memory state always reflects the latest value.
*/
package session

import (
	"encoding/json"
	"errors"
	"io/fs"
	"os"
	"path/filepath"
	"sync"
)

// Fixed storage key names, shared with the web client's local storage.
const (
	KeyLastInput      = "lastInput"
	KeyLastResponse   = "lastResponse"
	KeyLastSources    = "lastSources"
	KeyLastSuggestion = "lastSuggestion"
	KeyUserID         = "userID"
)

// Store is the durable session state plus its in-memory mirror. All methods
// are safe for concurrent use.
type Store struct {
	path string

	mu        sync.Mutex
	persisted map[string]string

	input      string
	answer     string
	sources    []string
	suggestion string
	userID     string
}

// NewStore returns a Store backed by the JSON file at path. Call Load to
// rehydrate previously persisted state.
func NewStore(path string) *Store {
	return &Store{
		path:      path,
		persisted: make(map[string]string),
	}
}

// DefaultPath returns the session file location under the user config dir.
func DefaultPath() (string, error) {
	dir, err := os.UserConfigDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(dir, "ragwall", "session.json"), nil
}

// Load rehydrates the in-memory state from the durable file. Each key is
// restored independently; a missing file simply leaves the zero state.
func (s *Store) Load() error {
	s.mu.Lock()
	defer s.mu.Unlock()

	data, err := os.ReadFile(s.path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil
		}
		return err
	}

	persisted := make(map[string]string)
	if err := json.Unmarshal(data, &persisted); err != nil {
		return err
	}
	s.persisted = persisted

	if v, ok := persisted[KeyLastInput]; ok {
		s.input = v
	}
	if v, ok := persisted[KeyLastResponse]; ok {
		s.answer = v
	}
	if v, ok := persisted[KeyLastSources]; ok {
		var sources []string
		if json.Unmarshal([]byte(v), &sources) == nil {
			s.sources = sources
		}
	}
	if v, ok := persisted[KeyLastSuggestion]; ok {
		s.suggestion = v
	}
	if v, ok := persisted[KeyUserID]; ok {
		s.userID = v
	}

	return nil
}

// flush writes the persisted map to disk. Caller holds the lock.
func (s *Store) flush() error {
	data, err := json.MarshalIndent(s.persisted, "", "  ")
	if err != nil {
		return err
	}

	if err := os.MkdirAll(filepath.Dir(s.path), 0o700); err != nil {
		return err
	}

	return os.WriteFile(s.path, data, 0o600)
}

// Input returns the current input text.
func (s *Store) Input() string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.input
}

// Answer returns the last answer.
func (s *Store) Answer() string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.answer
}

// Sources returns the last source list.
func (s *Store) Sources() []string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return append([]string(nil), s.sources...)
}

// Suggestion returns the last suggestion.
func (s *Store) Suggestion() string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.suggestion
}

// UserID returns the stored user id, or "" when signed out.
func (s *Store) UserID() string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.userID
}

// SetInput updates the current input. Input persists unconditionally; the
// conditional rule applies only to the answer-side values.
func (s *Store) SetInput(v string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.input = v
	s.persisted[KeyLastInput] = v
	return s.flush()
}

// SetAnswer updates the last answer. The in-memory value always changes; the
// durable value only when v is non-empty.
func (s *Store) SetAnswer(v string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.answer = v
	if v == "" {
		return nil
	}
	s.persisted[KeyLastResponse] = v
	return s.flush()
}

// SetSources updates the last source list. The durable value only changes
// when the list is non-empty; it is serialized as a JSON array.
func (s *Store) SetSources(v []string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.sources = append([]string(nil), v...)
	if len(v) == 0 {
		return nil
	}

	data, err := json.Marshal(v)
	if err != nil {
		return err
	}
	s.persisted[KeyLastSources] = string(data)
	return s.flush()
}

// SetSuggestion updates the last suggestion, durably only when non-empty.
func (s *Store) SetSuggestion(v string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.suggestion = v
	if v == "" {
		return nil
	}
	s.persisted[KeyLastSuggestion] = v
	return s.flush()
}

// SetUserID stores the session identity after login.
func (s *Store) SetUserID(v string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.userID = v
	s.persisted[KeyUserID] = v
	return s.flush()
}

// NewChat clears the conversation state (input, answer, sources, suggestion)
// in memory and on disk, while preserving the user id. The id is re-written
// after the clear so a full wipe of the conversation keys can never take the
// identity with it.
func (s *Store) NewChat() error {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.input = ""
	s.answer = ""
	s.sources = nil
	s.suggestion = ""

	userID := s.persisted[KeyUserID]
	s.persisted = make(map[string]string)
	if userID != "" {
		s.persisted[KeyUserID] = userID
	}

	return s.flush()
}

// SignOut clears all state, durable and in-memory, returning the client to
// the unauthenticated starting point.
func (s *Store) SignOut() error {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.input = ""
	s.answer = ""
	s.sources = nil
	s.suggestion = ""
	s.userID = ""
	s.persisted = make(map[string]string)

	return s.flush()
}
