package store

import (
	"sync"
	"time"

	"github.com/dgrijalva/jwt-go"
	"github.com/sirupsen/logrus"

	"comanda/internal/models"
)

// KV is the slice of the local store the session needs: the remembered
// sign-in email and the session token placeholder. Failures are swallowed
// by the implementation, so the interface has nothing to return but values.
type KV interface {
	Get(key string) (string, bool)
	Put(key, value string)
	Delete(key string)
}

// Local-store keys, kept byte-compatible with what the browser client used.
const (
	KeyRememberedEmail = "comanda.rememberedEmail"
	KeySessionToken    = "comanda.sessionToken"
)

const demoTenantName = "Demo Restaurant"

// Session is the authentication gate: a boolean flag plus the tenant list.
// There is no credential verification; sign-in always succeeds and seeds a
// demo tenant the first time. The jwt it mints is a placeholder the gate
// middleware parses, not a security boundary.
type Session struct {
	mu     sync.RWMutex
	bus    *Bus
	kv     KV
	secret []byte
	ttl    time.Duration
	state  models.Session
}

// NewSession creates a signed-out session store. kv may be nil, in which
// case nothing is remembered across restarts.
func NewSession(bus *Bus, kv KV, secret string, ttl time.Duration) *Session {
	return &Session{bus: bus, kv: kv, secret: []byte(secret), ttl: ttl}
}

// SignIn flips the authenticated flag, seeds a demo tenant if the list is
// empty, selects it, and mints the placeholder token. When remember is set
// the email is persisted for the next sign-in form.
func (s *Session) SignIn(email string, remember bool) models.Session {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.state.IsAuthenticated = true
	if len(s.state.Tenants) == 0 {
		s.state.Tenants = []models.Tenant{{ID: newID(), Name: demoTenantName}}
	}
	if s.state.CurrentTenantID == "" {
		s.state.CurrentTenantID = s.state.Tenants[0].ID
	}

	token, err := s.mintToken(email)
	if err != nil {
		logrus.WithError(err).Warn("session: token mint failed")
	}
	s.state.Token = token

	if s.kv != nil {
		s.kv.Put(KeySessionToken, token)
		if remember {
			s.kv.Put(KeyRememberedEmail, email)
		} else {
			s.kv.Delete(KeyRememberedEmail)
		}
	}

	s.bus.Publish(Event{Store: StoreSession, Action: ActionSignedIn})
	return s.state.Clone()
}

// SignOut resets the session to its initial empty state and drops the
// stored token. The remembered email survives sign-out.
func (s *Session) SignOut() {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.state = models.Session{}
	if s.kv != nil {
		s.kv.Delete(KeySessionToken)
	}
	s.bus.Publish(Event{Store: StoreSession, Action: ActionSignedOut})
}

// Current returns a copy of the session state.
func (s *Session) Current() models.Session {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.state.Clone()
}

// Authenticated reports the gate flag.
func (s *Session) Authenticated() bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.state.IsAuthenticated
}

// SelectTenant switches the current tenant. Unknown ids are ignored.
func (s *Session) SelectTenant(id string) {
	s.mu.Lock()
	defer s.mu.Unlock()

	for _, t := range s.state.Tenants {
		if t.ID == id {
			s.state.CurrentTenantID = id
			s.bus.Publish(Event{Store: StoreSession, Action: ActionUpdated, ID: id})
			return
		}
	}
}

// RememberedEmail returns the persisted sign-in email, if any.
func (s *Session) RememberedEmail() string {
	if s.kv == nil {
		return ""
	}
	email, _ := s.kv.Get(KeyRememberedEmail)
	return email
}

// ValidToken reports whether the token parses against the session secret.
func (s *Session) ValidToken(token string) bool {
	parsed, err := jwt.Parse(token, func(t *jwt.Token) (interface{}, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, jwt.ErrSignatureInvalid
		}
		return s.secret, nil
	})
	return err == nil && parsed.Valid
}

func (s *Session) mintToken(email string) (string, error) {
	claims := jwt.MapClaims{
		"email": email,
		"iat":   time.Now().Unix(),
	}
	if s.ttl > 0 {
		claims["exp"] = time.Now().Add(s.ttl).Unix()
	}
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString(s.secret)
}
