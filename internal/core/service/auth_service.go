package service

import (
	"context"
	"errors"
	"sync"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/rs/zerolog"

	"github.com/seon98/Trip-Backend/internal/api/metrics"
	"github.com/seon98/Trip-Backend/internal/core/domain"
	"github.com/seon98/Trip-Backend/internal/core/ports"
)

// PasswordHasher hashes and verifies credentials.
type PasswordHasher interface {
	Hash(password string) (string, error)
	Verify(password, digest string) bool
}

// TokenIssuer issues and verifies session tokens.
type TokenIssuer interface {
	Issue(subject string) (string, time.Time, error)
	Verify(token string) (string, error)
}

// emailValidator checks addresses arriving from forms and the CLI, which do
// not pass through the echo validator.
var emailValidator = validator.New()

// decoyPassword seeds the digest checked when a login names no account.
const decoyPassword = "decoy-password-for-unknown-accounts"

// AuthService implements registration, login and token-based authentication.
type AuthService struct {
	repo   ports.UserRepository
	hasher PasswordHasher
	tokens TokenIssuer
	log    zerolog.Logger

	decoyOnce   sync.Once
	decoyDigest string
}

func NewAuthService(repo ports.UserRepository, hasher PasswordHasher, tokens TokenIssuer, log zerolog.Logger) *AuthService {
	return &AuthService{repo: repo, hasher: hasher, tokens: tokens, log: log}
}

// Register creates a regular user account.
func (s *AuthService) Register(ctx context.Context, email, password string) (*domain.User, error) {
	return s.createUser(ctx, email, password, domain.RoleUser)
}

// RegisterAdmin provisions an administrator account. It is reachable only
// from the create-admin command, never from HTTP.
func (s *AuthService) RegisterAdmin(ctx context.Context, email, password string) (*domain.User, error) {
	return s.createUser(ctx, email, password, domain.RoleAdmin)
}

func (s *AuthService) createUser(ctx context.Context, email, password, role string) (*domain.User, error) {
	email = domain.NormalizeEmail(email)
	if email == "" || password == "" {
		return nil, domain.ErrInvalidInput
	}
	if err := emailValidator.Var(email, "email"); err != nil {
		return nil, domain.ErrInvalidInput
	}

	hash, err := s.hasher.Hash(password)
	if err != nil {
		return nil, err
	}

	user := &domain.User{
		Email:        email,
		PasswordHash: hash,
		Role:         role,
		CreatedAt:    time.Now().UTC(),
	}
	created, err := s.repo.Create(ctx, user)
	if err != nil {
		return nil, err
	}

	s.log.Info().Int64("user_id", created.ID).Str("role", role).Msg("user registered")
	return created, nil
}

// Login checks credentials and issues a session token. Unknown emails and
// wrong passwords both return domain.ErrInvalidCredentials.
func (s *AuthService) Login(ctx context.Context, email, password string) (*ports.IssuedToken, *domain.User, error) {
	email = domain.NormalizeEmail(email)
	if email == "" || password == "" {
		metrics.LoginAttemptsTotal.WithLabelValues("rejected").Inc()
		return nil, nil, domain.ErrInvalidCredentials
	}

	user, err := s.repo.FindByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, domain.ErrUserNotFound) {
			// Same hashing cost as a wrong password, so timing does not
			// reveal which emails are registered.
			s.hasher.Verify(password, s.decoy())
			metrics.LoginAttemptsTotal.WithLabelValues("rejected").Inc()
			return nil, nil, domain.ErrInvalidCredentials
		}
		return nil, nil, err
	}

	if !s.hasher.Verify(password, user.PasswordHash) {
		metrics.LoginAttemptsTotal.WithLabelValues("rejected").Inc()
		return nil, nil, domain.ErrInvalidCredentials
	}

	token, exp, err := s.tokens.Issue(user.Email)
	if err != nil {
		return nil, nil, err
	}

	metrics.LoginAttemptsTotal.WithLabelValues("success").Inc()
	s.log.Debug().Int64("user_id", user.ID).Msg("login succeeded")
	return &ports.IssuedToken{AccessToken: token, ExpiresAt: exp}, user, nil
}

// decoy returns a digest made with the configured hasher parameters.
func (s *AuthService) decoy() string {
	s.decoyOnce.Do(func() {
		digest, err := s.hasher.Hash(decoyPassword)
		if err != nil {
			s.log.Warn().Err(err).Msg("could not build decoy digest")
			return
		}
		s.decoyDigest = digest
	})
	return s.decoyDigest
}

// Resolve maps a verified token subject to the stored user.
func (s *AuthService) Resolve(ctx context.Context, subject string) (*domain.User, error) {
	return s.repo.FindByEmail(ctx, subject)
}

// Authenticate verifies rawToken and resolves its subject. Bad signatures,
// expired tokens and subjects without a user all return
// domain.ErrTokenRejected; store failures are returned unchanged.
func (s *AuthService) Authenticate(ctx context.Context, rawToken string) (*domain.User, error) {
	subject, err := s.tokens.Verify(rawToken)
	if err != nil {
		return nil, domain.ErrTokenRejected
	}

	user, err := s.Resolve(ctx, subject)
	if err != nil {
		if errors.Is(err, domain.ErrUserNotFound) {
			return nil, domain.ErrTokenRejected
		}
		return nil, err
	}
	return user, nil
}

// ListUsers returns a page of accounts for the admin API.
func (s *AuthService) ListUsers(ctx context.Context, page ports.Page) ([]*domain.User, error) {
	return s.repo.List(ctx, normalizePage(page))
}
