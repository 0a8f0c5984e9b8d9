package profile

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"golang.org/x/crypto/bcrypt"

	"storefront/internal/domain"
)

// ErrInvalidCredentials is returned when username/password do not match.
var ErrInvalidCredentials = errors.New("invalid credentials")

const passwordMin = 8

// Service handles account signup, sign-in and profile edits.
type Service struct {
	repo   repository
	tokens *tokenManager
}

type repository interface {
	Create(ctx context.Context, p domain.Profile) (*domain.Profile, error)
	GetByID(ctx context.Context, id int64) (*domain.Profile, error)
	GetByUsername(ctx context.Context, username string) (*domain.Profile, error)
	Update(ctx context.Context, id int64, fullName, email, phone string) error
	UpdatePassword(ctx context.Context, id int64, passwordHash string) error
	UpdateAvatar(ctx context.Context, id int64, src, alt string) error
}

func New(repo repository, jwtSecret string, tokenTTL time.Duration) *Service {
	return &Service{repo: repo, tokens: newTokenManager(jwtSecret, tokenTTL)}
}

// SignUpInput carries the registration payload.
type SignUpInput struct {
	Username string `json:"username"`
	Password string `json:"password"`
	FullName string `json:"name"`
}

// SignUp registers an account and signs it in, returning the profile
// and a bearer token.
func (s *Service) SignUp(ctx context.Context, in SignUpInput) (*domain.Profile, string, error) {
	username := strings.TrimSpace(strings.ToLower(in.Username))
	if username == "" {
		return nil, "", fmt.Errorf("username required: %w", domain.ErrValidation)
	}
	password := strings.TrimSpace(in.Password)
	if len(password) < passwordMin {
		return nil, "", fmt.Errorf("password must be at least %d characters: %w", passwordMin, domain.ErrValidation)
	}
	hashed, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return nil, "", err
	}

	created, err := s.repo.Create(ctx, domain.Profile{
		Username:     username,
		PasswordHash: string(hashed),
		FullName:     strings.TrimSpace(in.FullName),
	})
	if err != nil {
		return nil, "", err
	}
	token, err := s.tokens.Issue(created.ID, created.Username)
	if err != nil {
		return nil, "", err
	}
	return created, token, nil
}

// SignIn validates credentials and returns the profile plus a bearer
// token.
func (s *Service) SignIn(ctx context.Context, username, password string) (*domain.Profile, string, error) {
	username = strings.TrimSpace(strings.ToLower(username))
	p, err := s.repo.GetByUsername(ctx, username)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return nil, "", ErrInvalidCredentials
		}
		return nil, "", err
	}
	if err := bcrypt.CompareHashAndPassword([]byte(p.PasswordHash), []byte(strings.TrimSpace(password))); err != nil {
		return nil, "", ErrInvalidCredentials
	}
	token, err := s.tokens.Issue(p.ID, p.Username)
	if err != nil {
		return nil, "", err
	}
	return p, token, nil
}

// VerifyToken resolves a bearer token to the profile it identifies.
func (s *Service) VerifyToken(ctx context.Context, token string) (*domain.Profile, error) {
	id, err := s.tokens.Verify(token)
	if err != nil {
		return nil, err
	}
	return s.repo.GetByID(ctx, id)
}

func (s *Service) Get(ctx context.Context, id int64) (*domain.Profile, error) {
	return s.repo.GetByID(ctx, id)
}

// UpdateInput carries editable profile fields.
type UpdateInput struct {
	FullName string `json:"fullName"`
	Email    string `json:"email"`
	Phone    string `json:"phone"`
}

// Update edits the profile's contact fields and returns the fresh
// profile.
func (s *Service) Update(ctx context.Context, id int64, in UpdateInput) (*domain.Profile, error) {
	if strings.TrimSpace(in.Email) != "" && !strings.Contains(in.Email, "@") {
		return nil, fmt.Errorf("malformed email %q: %w", in.Email, domain.ErrValidation)
	}
	if err := s.repo.Update(ctx, id, strings.TrimSpace(in.FullName), strings.TrimSpace(in.Email), strings.TrimSpace(in.Phone)); err != nil {
		return nil, err
	}
	return s.repo.GetByID(ctx, id)
}

// ChangePassword re-checks the current password before storing the new
// hash.
func (s *Service) ChangePassword(ctx context.Context, id int64, current, next string) error {
	p, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return err
	}
	if err := bcrypt.CompareHashAndPassword([]byte(p.PasswordHash), []byte(strings.TrimSpace(current))); err != nil {
		return ErrInvalidCredentials
	}
	next = strings.TrimSpace(next)
	if len(next) < passwordMin {
		return fmt.Errorf("password must be at least %d characters: %w", passwordMin, domain.ErrValidation)
	}
	hashed, err := bcrypt.GenerateFromPassword([]byte(next), bcrypt.DefaultCost)
	if err != nil {
		return err
	}
	return s.repo.UpdatePassword(ctx, id, string(hashed))
}

// SetAvatar records the uploaded avatar location on the profile.
func (s *Service) SetAvatar(ctx context.Context, id int64, src, alt string) (*domain.Profile, error) {
	if strings.TrimSpace(src) == "" {
		return nil, fmt.Errorf("avatar source required: %w", domain.ErrValidation)
	}
	if err := s.repo.UpdateAvatar(ctx, id, src, alt); err != nil {
		return nil, err
	}
	return s.repo.GetByID(ctx, id)
}
