package session

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sync"
	"time"

	"github.com/goccy/go-json"
	"github.com/golang-jwt/jwt/v5"

	"github.com/HarshalRajendraPatil/wcommerce-client/internal/domain"
)

// Fixed storage keys; the backend and any sibling clients read the same ones.
const (
	KeyToken = "token"
	KeyUser  = "user"
)

var ErrNoSession = errors.New("no session stored")

// Store persists the session under fixed keys in a single JSON file and keeps
// the current session in memory. Safe for concurrent use.
type Store struct {
	path string

	mu      sync.RWMutex
	current *domain.Session
}

func NewStore(path string) *Store {
	return &Store{path: path}
}

// stored is the on-disk shape: fixed keys, not the Session struct directly,
// so the file stays readable by non-Go tooling that expects "token"/"user".
type stored struct {
	Token string       `json:"token"`
	User  *domain.User `json:"user"`
}

// Load restores the session from disk. Called once on boot.
// Returns ErrNoSession when nothing is stored.
func (s *Store) Load() (*domain.Session, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	raw, err := os.ReadFile(s.path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, ErrNoSession
		}
		return nil, fmt.Errorf("failed to read session file: %w", err)
	}

	var st stored
	if err := json.Unmarshal(raw, &st); err != nil {
		return nil, fmt.Errorf("failed to decode session file: %w", err)
	}
	if st.Token == "" || st.User == nil {
		return nil, ErrNoSession
	}

	s.current = &domain.Session{Token: st.Token, User: *st.User}
	return s.current, nil
}

// Save persists the session and makes it current.
func (s *Store) Save(sess *domain.Session) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if err := os.MkdirAll(filepath.Dir(s.path), 0o700); err != nil {
		return fmt.Errorf("failed to create session dir: %w", err)
	}

	raw, err := json.Marshal(stored{Token: sess.Token, User: &sess.User})
	if err != nil {
		return fmt.Errorf("failed to encode session: %w", err)
	}
	if err := os.WriteFile(s.path, raw, 0o600); err != nil {
		return fmt.Errorf("failed to write session file: %w", err)
	}

	s.current = sess
	return nil
}

// Clear destroys the session in memory and on disk. Called on logout and on
// any 401 outside the login/register endpoints.
func (s *Store) Clear() error {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.current = nil
	if err := os.Remove(s.path); err != nil && !os.IsNotExist(err) {
		return fmt.Errorf("failed to remove session file: %w", err)
	}
	return nil
}

// Token returns the bearer token of the current session, or "".
func (s *Store) Token() string {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if s.current == nil {
		return ""
	}
	return s.current.Token
}

// Current returns a copy of the current session, or nil.
func (s *Store) Current() *domain.Session {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if s.current == nil {
		return nil
	}
	cp := *s.current
	return &cp
}

// --- Token claims ---

// Claims are the fields the client reads out of the access token.
type Claims struct {
	UserID    string
	Email     string
	Role      string
	ExpiresAt time.Time
}

// ParseClaims decodes the token WITHOUT verifying the signature. The client
// holds no signing secret; the server rejects tampered tokens on every
// request anyway. We only read claims to know who is logged in and when the
// token runs out.
func ParseClaims(tokenString string) (*Claims, error) {
	parser := jwt.NewParser()
	token, _, err := parser.ParseUnverified(tokenString, jwt.MapClaims{})
	if err != nil {
		return nil, fmt.Errorf("malformed token: %w", err)
	}

	mapClaims, ok := token.Claims.(jwt.MapClaims)
	if !ok {
		return nil, errors.New("unexpected claims type")
	}

	claims := &Claims{}
	claims.UserID, _ = mapClaims["sub"].(string)
	claims.Email, _ = mapClaims["email"].(string)
	claims.Role, _ = mapClaims["role"].(string)
	if exp, err := mapClaims.GetExpirationTime(); err == nil && exp != nil {
		claims.ExpiresAt = exp.Time
	}

	return claims, nil
}

// Expired reports whether the current session's token is past its exp claim.
// A missing or unparsable token counts as expired.
func (s *Store) Expired(now time.Time) bool {
	token := s.Token()
	if token == "" {
		return true
	}
	claims, err := ParseClaims(token)
	if err != nil {
		return true
	}
	if claims.ExpiresAt.IsZero() {
		return false // no exp claim, let the server decide
	}
	return now.After(claims.ExpiresAt)
}
