package sessions

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"sync"
	"time"

	"pet-profiles/internal/platform/logger"
	"pet-profiles/internal/ports/auth"

	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"
)

var (
	ErrInvalidCredentials = errors.New("invalid mobile number or password")
	ErrSessionInvalid     = errors.New("session invalid")
	ErrSessionRevoked     = errors.New("session revoked")
)

const DefaultTTL = 12 * time.Hour

type Service struct {
	creds  CredentialStore
	repo   Repository
	tokens TokenCodec
	ttl    time.Duration
	log    logger.Logger
	now    func() time.Time
}

func NewService(creds CredentialStore, repo Repository, tokens TokenCodec, ttl time.Duration, log logger.Logger) *Service {
	if ttl <= 0 {
		ttl = DefaultTTL
	}
	if log == nil {
		log = logger.Nop()
	}
	return &Service{
		creds:  creds,
		repo:   repo,
		tokens: tokens,
		ttl:    ttl,
		log:    log,
		now:    time.Now,
	}
}

type LoginResult struct {
	Token   string
	Session Session
}

// Login verifica mobile + password contra el hash bcrypt y abre una sesión.
// Usuario inexistente y password incorrecta devuelven el mismo error.
func (s *Service) Login(ctx context.Context, mobileNumber, password string) (LoginResult, error) {
	mobileNumber = strings.TrimSpace(mobileNumber)
	if mobileNumber == "" || password == "" {
		return LoginResult{}, ErrInvalidCredentials
	}

	cred, err := s.creds.FindByMobile(ctx, mobileNumber)
	if err != nil {
		if !errors.Is(err, ErrNotFound) {
			return LoginResult{}, fmt.Errorf("sessions: credential lookup: %w", err)
		}
		// Igualar costo con el caso "usuario existe" para no filtrar quién está registrado.
		_ = bcrypt.CompareHashAndPassword(dummyHash(), []byte(password))
		return LoginResult{}, ErrInvalidCredentials
	}

	if err := bcrypt.CompareHashAndPassword([]byte(cred.PasswordHash), []byte(password)); err != nil {
		return LoginResult{}, ErrInvalidCredentials
	}

	now := s.now()
	sess := Session{
		ID:        uuid.NewString(),
		UserID:    cred.ID,
		Role:      cred.Role,
		Username:  mobileNumber,
		CreatedAt: now,
		ExpiresAt: now.Add(s.ttl),
	}
	if err := s.repo.Create(ctx, sess); err != nil {
		return LoginResult{}, fmt.Errorf("sessions: create: %w", err)
	}

	token, err := s.tokens.Issue(claimsOf(sess))
	if err != nil {
		return LoginResult{}, fmt.Errorf("sessions: issue token: %w", err)
	}

	s.log.Info("sessions: login", map[string]any{"user_id": sess.UserID, "session_id": sess.ID, "role": sess.Role})
	return LoginResult{Token: token, Session: sess}, nil
}

// Verify implementa auth.AuthVerifier: firma + vencimiento del token y además
// la fila del ledger (no revocada, no vencida, mismo usuario).
func (s *Service) Verify(ctx context.Context, token string) (auth.Claims, error) {
	token = strings.TrimSpace(token)
	if token == "" {
		return auth.Claims{}, ErrSessionInvalid
	}

	claims, err := s.tokens.Parse(token)
	if err != nil {
		return auth.Claims{}, fmt.Errorf("%w: %v", ErrSessionInvalid, err)
	}

	sess, err := s.repo.GetByID(ctx, claims.SessionID)
	if err != nil {
		return auth.Claims{}, fmt.Errorf("%w: %v", ErrSessionInvalid, err)
	}
	if sess.RevokedAt != nil {
		return auth.Claims{}, ErrSessionRevoked
	}
	if !sess.Active(s.now()) || sess.UserID != claims.UserID {
		return auth.Claims{}, ErrSessionInvalid
	}

	// El rol sale del ledger, no del token.
	return claimsOf(sess), nil
}

// Logout revoca la sesión. Idempotente.
func (s *Service) Logout(ctx context.Context, c auth.Claims) error {
	if strings.TrimSpace(c.SessionID) == "" {
		return ErrSessionInvalid
	}
	if err := s.repo.Revoke(ctx, c.SessionID, s.now()); err != nil && !errors.Is(err, ErrNotFound) {
		return err
	}
	s.log.Info("sessions: logout", map[string]any{"user_id": c.UserID, "session_id": c.SessionID})
	return nil
}

func (s *Service) TTL() time.Duration {
	return s.ttl
}

// HomeViewFor: admin => vista admin; cualquier otro rol => gestor de perfiles.
func HomeViewFor(role string) HomeView {
	if role == auth.RoleAdmin {
		return HomeAdmin
	}
	return HomeProfileManager
}

// HashPassword se usa para sembrar usuarios de desarrollo.
func HashPassword(password string) (string, error) {
	b, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return "", err
	}
	return string(b), nil
}

func claimsOf(s Session) auth.Claims {
	return auth.Claims{
		UserID:    s.UserID,
		Role:      s.Role,
		Username:  s.Username,
		SessionID: s.ID,
		ExpiresAt: s.ExpiresAt,
	}
}

var (
	dummyOnce sync.Once
	dummy     []byte
)

func dummyHash() []byte {
	dummyOnce.Do(func() {
		dummy, _ = bcrypt.GenerateFromPassword([]byte("not-a-real-password"), bcrypt.DefaultCost)
	})
	return dummy
}
