package service

import (
	"context"
	"fmt"
	"slices"

	"quizbank-service/internal/event"
	"quizbank-service/internal/models"
	"quizbank-service/internal/repository"

	"go.mongodb.org/mongo-driver/bson"
)

type CodeService struct {
	Codes     *repository.CodeRepository
	Users     *repository.UserRepository
	Publisher *event.EventPublisher
}

func NewCodeService(codes *repository.CodeRepository, users *repository.UserRepository, publisher *event.EventPublisher) *CodeService {
	return &CodeService{Codes: codes, Users: users, Publisher: publisher}
}

// ListVisible applies the entitlement filter, then the caller's hidden-code
// overrides. No email means the unauthenticated free view; an email that
// matches no user propagates ErrNotFound rather than degrading silently.
func (s *CodeService) ListVisible(ctx context.Context, email string) ([]models.CodeListing, error) {
	if email == "" {
		return s.Codes.FindListings(ctx, bson.M{"isPaid": false})
	}

	user, err := s.Users.FindByEmail(ctx, email)
	if err != nil {
		return nil, err
	}

	filter := bson.M{"isPaid": false}
	if user.IsPaid {
		filter = bson.M{}
	}
	listings, err := s.Codes.FindListings(ctx, filter)
	if err != nil {
		return nil, err
	}
	return dropHidden(listings, user.HiddenCodes), nil
}

// dropHidden removes the caller's hidden codes from a listing. The override
// applies regardless of entitlement.
func dropHidden(listings []models.CodeListing, hidden []string) []models.CodeListing {
	if len(hidden) == 0 {
		return listings
	}
	visible := make([]models.CodeListing, 0, len(listings))
	for _, l := range listings {
		if !slices.Contains(hidden, l.Code) {
			visible = append(visible, l)
		}
	}
	return visible
}

func (s *CodeService) CreateCode(ctx context.Context, code *models.AccessCode) error {
	if code.Code == "" {
		return fmt.Errorf("%w: code is required", ErrValidation)
	}
	if err := s.Codes.Create(ctx, code); err != nil {
		return err
	}
	s.Publisher.Publish(event.TypeCodeCreated, map[string]any{"code": code.Code, "isPaid": code.IsPaid})
	return nil
}

func (s *CodeService) HideCode(ctx context.Context, email, code string) error {
	return s.Users.HideCode(ctx, email, code)
}

func (s *CodeService) UnhideCode(ctx context.Context, email, code string) error {
	return s.Users.UnhideCode(ctx, email, code)
}
