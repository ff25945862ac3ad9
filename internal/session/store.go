package session

import (
	"encoding/json"

	"github.com/andray-nkhatel/meeting-room-frontend/internal/models"
	"github.com/andray-nkhatel/meeting-room-frontend/internal/storage"
)

// Storage keys, kept in one place so the writer (Save) and readers (Load,
// the transport) can never drift.
const (
	tokenKey   = "token"
	profileKey = "user"
)

// absenceMarkers are literal values treated as missing profile data. The
// browser app this gateway replaced would occasionally persist the string
// "undefined" into storage.
var absenceMarkers = map[string]bool{
	"":          true,
	"null":      true,
	"undefined": true,
}

// Store persists one browser session's bearer token and cached user profile
// in durable key-value storage. It is the single source of truth that
// survives across page reloads; validity of the token itself is enforced
// upstream.
type Store struct {
	kv storage.KeyValue
}

// NewStore wraps a key-value namespace as a session store.
func NewStore(kv storage.KeyValue) *Store {
	return &Store{kv: kv}
}

// Save persists the token and profile under the two fixed keys.
func (s *Store) Save(token string, profile *models.UserProfile) error {
	data, err := json.Marshal(profile)
	if err != nil {
		return err
	}
	if err := s.kv.Set(tokenKey, token); err != nil {
		return err
	}
	return s.kv.Set(profileKey, string(data))
}

// Load returns the cached profile, or nil when the stored value is absent,
// malformed, or a literal absence marker. Corrupt entries are erased so the
// next read starts clean.
func (s *Store) Load() *models.UserProfile {
	raw, ok := s.kv.Get(profileKey)
	if !ok {
		return nil
	}
	if absenceMarkers[raw] {
		s.kv.Delete(profileKey)
		return nil
	}

	var profile models.UserProfile
	if err := json.Unmarshal([]byte(raw), &profile); err != nil {
		s.kv.Delete(profileKey)
		return nil
	}
	return &profile
}

// Clear removes both keys. Idempotent.
func (s *Store) Clear() {
	s.kv.Delete(tokenKey)
	s.kv.Delete(profileKey)
}

// HasToken reports whether a non-empty token is stored. It says nothing
// about the token still being accepted upstream.
func (s *Store) HasToken() bool {
	token, ok := s.kv.Get(tokenKey)
	return ok && token != ""
}

// Token returns the stored bearer token, if any.
func (s *Store) Token() (string, bool) {
	token, ok := s.kv.Get(tokenKey)
	if !ok || token == "" {
		return "", false
	}
	return token, true
}
