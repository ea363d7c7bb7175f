package service

import (
	"context"
	"errors"
	"fmt"
	"log"
	"time"

	"quizbank-service/internal/config"
	"quizbank-service/internal/provider"
	"quizbank-service/internal/repository"

	"github.com/redis/go-redis/v9"
)

// SubscriptionAPI is the slice of the provider API the checkout path needs.
type SubscriptionAPI interface {
	FindCustomerByEmail(ctx context.Context, email string) (*provider.Customer, error)
	CreateCustomer(ctx context.Context, email string) (*provider.Customer, error)
	HasActiveSubscription(ctx context.Context, customerID string) (bool, error)
	CreateCheckoutSession(ctx context.Context, customerID, priceID, successURL, cancelURL string) (*provider.CheckoutSession, error)
}

// Outcome is the result of a synchronous entitlement check: either the
// caller is subscribed, or they must follow the checkout URL.
type Outcome struct {
	Subscribed  bool
	CheckoutURL string
}

// EntitlementService is the synchronous fallback to webhook reconciliation.
// It always re-verifies against the provider and never trusts the cached
// isPaid flag.
type EntitlementService struct {
	Provider SubscriptionAPI
	Users    EntitlementStore
	Locker   *redis.Client
	Checkout config.ProviderConfig
}

func NewEntitlementService(p SubscriptionAPI, users EntitlementStore, locker *redis.Client, cfg config.ProviderConfig) *EntitlementService {
	return &EntitlementService{Provider: p, Users: users, Locker: locker, Checkout: cfg}
}

// Resolve runs the list-or-create customer step, checks for an active
// subscription and either confirms the entitlement (writing it back to the
// local cache) or opens a checkout session.
func (s *EntitlementService) Resolve(ctx context.Context, email string) (*Outcome, error) {
	unlock := s.lockEmail(ctx, email)
	customer, err := s.ensureCustomer(ctx, email)
	unlock()
	if err != nil {
		return nil, err
	}

	active, err := s.Provider.HasActiveSubscription(ctx, customer.ID)
	if err != nil {
		return nil, fmt.Errorf("subscription check for %s: %w", email, err)
	}

	if active {
		if err := s.Users.SetPaid(ctx, email, true); err != nil && !errors.Is(err, repository.ErrNotFound) {
			return nil, fmt.Errorf("entitlement confirmation for %s: %w", email, err)
		}
		return &Outcome{Subscribed: true}, nil
	}

	session, err := s.Provider.CreateCheckoutSession(ctx, customer.ID,
		s.Checkout.PriceID, s.Checkout.SuccessURL, s.Checkout.CancelURL)
	if err != nil {
		return nil, fmt.Errorf("checkout session for %s: %w", email, err)
	}
	return &Outcome{CheckoutURL: session.URL}, nil
}

func (s *EntitlementService) ensureCustomer(ctx context.Context, email string) (*provider.Customer, error) {
	customer, err := s.Provider.FindCustomerByEmail(ctx, email)
	if err != nil {
		return nil, fmt.Errorf("customer lookup for %s: %w", email, err)
	}
	if customer != nil {
		return customer, nil
	}
	customer, err = s.Provider.CreateCustomer(ctx, email)
	if err != nil {
		return nil, fmt.Errorf("customer creation for %s: %w", email, err)
	}
	return customer, nil
}

// lockEmail serializes list-or-create per email when Redis is configured.
// Without it (or when the lock cannot be taken in time) the call proceeds
// anyway: a duplicate provider customer is a tolerated outcome, a blocked
// login is not.
func (s *EntitlementService) lockEmail(ctx context.Context, email string) func() {
	if s.Locker == nil {
		return func() {}
	}

	key := "checkout:lock:" + email
	for attempt := 0; attempt < 3; attempt++ {
		ok, err := s.Locker.SetNX(ctx, key, "1", s.Checkout.LockTTL).Result()
		if err != nil {
			log.Printf("Checkout lock unavailable for %s: %v", email, err)
			return func() {}
		}
		if ok {
			return func() { s.Locker.Del(context.Background(), key) }
		}
		select {
		case <-ctx.Done():
			return func() {}
		case <-time.After(100 * time.Millisecond):
		}
	}
	log.Printf("Checkout lock contention for %s, proceeding without lock", email)
	return func() {}
}
