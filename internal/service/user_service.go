package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"quizbank-service/internal/config"
	"quizbank-service/internal/event"
	"quizbank-service/internal/models"
	"quizbank-service/internal/repository"

	"github.com/golang-jwt/jwt/v5"
	"golang.org/x/crypto/bcrypt"
)

type Claims struct {
	jwt.RegisteredClaims
	UserID string `json:"userId"`
	Email  string `json:"email"`
	IsPaid bool   `json:"isPaid"`
}

// AuthResult is what login and registration hand back: either a session
// token for an entitled user, or a checkout URL the client must follow.
type AuthResult struct {
	Token       string
	RedirectURL string
	User        *models.User
}

type UserService struct {
	Users       *repository.UserRepository
	Entitlement *EntitlementService
	Publisher   *event.EventPublisher
	Auth        config.AuthConfig
}

func NewUserService(users *repository.UserRepository, entitlement *EntitlementService, publisher *event.EventPublisher, auth config.AuthConfig) *UserService {
	return &UserService{Users: users, Entitlement: entitlement, Publisher: publisher, Auth: auth}
}

// Register creates the local user, then runs the synchronous entitlement
// check. A duplicate email is reported as a conflict and creates nothing.
func (s *UserService) Register(ctx context.Context, name, email, password string) (*AuthResult, error) {
	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return nil, fmt.Errorf("failed to hash password: %w", err)
	}

	user := &models.User{
		Name:     name,
		Email:    email,
		Password: string(hash),
	}
	if err := s.Users.Create(ctx, user); err != nil {
		if errors.Is(err, repository.ErrDuplicate) {
			return nil, ErrEmailTaken
		}
		return nil, fmt.Errorf("failed to create user: %w", err)
	}

	s.Publisher.Publish(event.TypeUserRegistered, map[string]any{"email": email})

	return s.finishAuth(ctx, user)
}

// Login verifies credentials, then re-checks entitlement against the
// provider. The cached isPaid flag never decides the outcome here.
func (s *UserService) Login(ctx context.Context, email, password string) (*AuthResult, error) {
	user, err := s.Users.FindByEmail(ctx, email)
	if errors.Is(err, repository.ErrNotFound) {
		return nil, ErrInvalidCredentials
	}
	if err != nil {
		return nil, fmt.Errorf("failed to look up user: %w", err)
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.Password), []byte(password)); err != nil {
		return nil, ErrInvalidCredentials
	}

	return s.finishAuth(ctx, user)
}

func (s *UserService) finishAuth(ctx context.Context, user *models.User) (*AuthResult, error) {
	outcome, err := s.Entitlement.Resolve(ctx, user.Email)
	if err != nil {
		return nil, err
	}

	if !outcome.Subscribed {
		return &AuthResult{RedirectURL: outcome.CheckoutURL, User: user}, nil
	}

	user.IsPaid = true
	token, err := s.generateToken(user)
	if err != nil {
		return nil, err
	}
	return &AuthResult{Token: token, User: user}, nil
}

func (s *UserService) generateToken(user *models.User) (string, error) {
	claims := Claims{
		RegisteredClaims: jwt.RegisteredClaims{
			Issuer:    "quizbank-service",
			IssuedAt:  jwt.NewNumericDate(time.Now()),
			ExpiresAt: jwt.NewNumericDate(time.Now().Add(s.Auth.TokenTTL)),
		},
		UserID: user.ID,
		Email:  user.Email,
		IsPaid: user.IsPaid,
	}
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	signed, err := token.SignedString([]byte(s.Auth.JWTSecret))
	if err != nil {
		return "", fmt.Errorf("error generate token string: %w", err)
	}
	return signed, nil
}
