package sgk

import (
	"context"
	"sync"
	"time"

	"github.com/ardacaliskaan/RaporServisi/internal/logger"
)

// TokenValidity is the advertised lifetime of a Vizite token. The cache
// treats tokens as expired earlier (safety margin) so a token never runs
// out mid-call.
const (
	TokenValidity     = 30 * time.Minute
	TokenSafetyMargin = 5 * time.Minute
)

type session struct {
	mu         sync.Mutex
	token      string
	acquiredAt time.Time
}

// SessionManager caches one upstream token per credential set. Refreshes
// are serialized per credential set; tokens are held in memory only.
type SessionManager struct {
	client Client
	log    logger.Logger

	mu       sync.Mutex
	sessions map[string]*session

	now func() time.Time
}

func NewSessionManager(client Client) *SessionManager {
	return &SessionManager{
		client:   client,
		log:      logger.New("sessionManager"),
		sessions: make(map[string]*session),
		now:      time.Now,
	}
}

// AcquireToken returns a cached token while it is inside the safety
// window, otherwise performs a fresh login. A non-success result code or
// an empty token yields an *AuthError.
func (m *SessionManager) AcquireToken(ctx context.Context, creds Credentials) (string, error) {
	log := m.log.Function("AcquireToken")

	m.mu.Lock()
	s, ok := m.sessions[creds.Key()]
	if !ok {
		s = &session{}
		m.sessions[creds.Key()] = s
	}
	m.mu.Unlock()

	s.mu.Lock()
	defer s.mu.Unlock()

	if s.token != "" && m.now().Sub(s.acquiredAt) < TokenValidity-TokenSafetyMargin {
		return s.token, nil
	}

	result, err := m.client.Login(ctx, creds)
	if err != nil {
		return "", log.Err("upstream login transport failure", err, "companyCode", creds.CompanyCode)
	}

	if !IsSuccess(result.Code) || result.Token == "" {
		authErr := &AuthError{Code: result.Code, Message: result.Message}
		log.Er("upstream login rejected", authErr, "companyCode", creds.CompanyCode, "code", result.Code)
		return "", authErr
	}

	s.token = result.Token
	s.acquiredAt = m.now()
	log.Info("acquired upstream token", "companyCode", creds.CompanyCode)

	return s.token, nil
}

// Invalidate drops the cached token for one credential set, forcing the
// next AcquireToken to log in again.
func (m *SessionManager) Invalidate(creds Credentials) {
	m.mu.Lock()
	defer m.mu.Unlock()
	delete(m.sessions, creds.Key())
}
