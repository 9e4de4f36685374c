package service

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"
	"golang.org/x/crypto/bcrypt"

	"tracker/internal/auth"
	"tracker/internal/logger"
	"tracker/internal/model"
	"tracker/internal/repository"
)

type RegisterInput struct {
	CompanyName string
	Name        string
	Email       string
	Password    string
}

type NewUserInput struct {
	Name     string
	Email    string
	Password string
	Role     string
}

// Session is the result of a successful register or login.
type Session struct {
	Token     string
	ExpiresAt time.Time
	User      *model.User
}

type AuthService struct {
	users    UserStore
	registry CompanyRegistrar
	tokens   *auth.TokenManager
	revoked  auth.RevocationStore
}

func NewAuthService(users UserStore, registry CompanyRegistrar, tokens *auth.TokenManager, revoked auth.RevocationStore) *AuthService {
	return &AuthService{users: users, registry: registry, tokens: tokens, revoked: revoked}
}

// Register creates a company and makes the caller its first admin.
func (s *AuthService) Register(ctx context.Context, in RegisterInput) (*Session, error) {
	email := strings.ToLower(strings.TrimSpace(in.Email))
	if err := s.ensureEmailFree(ctx, email); err != nil {
		return nil, err
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(in.Password), bcrypt.DefaultCost)
	if err != nil {
		return nil, err
	}

	company := &model.Company{ID: uuid.New(), Name: strings.TrimSpace(in.CompanyName)}
	admin := &model.User{
		ID:             uuid.New(),
		Email:          email,
		Name:           strings.TrimSpace(in.Name),
		HashedPassword: string(hash),
		Role:           model.RoleAdmin,
		IsActive:       true,
	}
	if err := s.registry.RegisterCompany(ctx, company, admin); err != nil {
		return nil, err
	}

	logger.Info("company registered", zap.String("company_id", company.ID.String()), zap.String("admin_id", admin.ID.String()))
	return s.issue(admin)
}

func (s *AuthService) Login(ctx context.Context, email, password string) (*Session, error) {
	user, err := s.users.FindByEmail(ctx, strings.ToLower(strings.TrimSpace(email)))
	if err != nil {
		return nil, err
	}
	if user == nil || !user.IsActive {
		return nil, ErrInvalidCredentials
	}
	if err := bcrypt.CompareHashAndPassword([]byte(user.HashedPassword), []byte(password)); err != nil {
		return nil, ErrInvalidCredentials
	}
	return s.issue(user)
}

// Logout revokes token until its natural expiry.
func (s *AuthService) Logout(ctx context.Context, token string) error {
	claims, err := s.tokens.ParseToken(token)
	if err != nil {
		return err
	}
	return s.revoked.Revoke(ctx, token, claims.ExpiresAt.Time)
}

// CurrentUser loads the authenticated user; deactivated accounts are refused.
func (s *AuthService) CurrentUser(ctx context.Context, id uuid.UUID) (*model.User, error) {
	user, err := s.users.GetByID(ctx, id)
	if errors.Is(err, repository.ErrUserNotFound) {
		return nil, ErrForbidden
	}
	if err != nil {
		return nil, err
	}
	if !user.IsActive {
		return nil, ErrForbidden
	}
	return user, nil
}

// CreateUser adds a member to the admin's company.
func (s *AuthService) CreateUser(ctx context.Context, actor *model.User, in NewUserInput) (*model.User, error) {
	if !actor.IsAdmin() {
		return nil, ErrForbidden
	}
	role := in.Role
	if role == "" {
		role = model.RoleEmployee
	}
	if role != model.RoleAdmin && role != model.RoleEmployee {
		return nil, ErrInvalidRole
	}

	email := strings.ToLower(strings.TrimSpace(in.Email))
	if err := s.ensureEmailFree(ctx, email); err != nil {
		return nil, err
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(in.Password), bcrypt.DefaultCost)
	if err != nil {
		return nil, err
	}

	user := &model.User{
		ID:             uuid.New(),
		CompanyID:      actor.CompanyID,
		Email:          email,
		Name:           strings.TrimSpace(in.Name),
		HashedPassword: string(hash),
		Role:           role,
		IsActive:       true,
	}
	if err := s.users.Create(ctx, user); err != nil {
		return nil, err
	}
	return user, nil
}

func (s *AuthService) ListUsers(ctx context.Context, actor *model.User) ([]model.User, error) {
	if !actor.IsAdmin() {
		return nil, ErrForbidden
	}
	return s.users.ListByCompany(ctx, actor.CompanyID)
}

func (s *AuthService) ensureEmailFree(ctx context.Context, email string) error {
	existing, err := s.users.FindByEmail(ctx, email)
	if err != nil {
		return err
	}
	if existing != nil {
		return ErrEmailTaken
	}
	return nil
}

func (s *AuthService) issue(user *model.User) (*Session, error) {
	token, expiresAt, err := s.tokens.GenerateToken(user.ID.String())
	if err != nil {
		return nil, err
	}
	return &Session{Token: token, ExpiresAt: expiresAt, User: user}, nil
}
