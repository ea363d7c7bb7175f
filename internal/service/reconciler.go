package service

import (
	"context"
	"errors"
	"fmt"
	"log"

	"quizbank-service/internal/event"
	"quizbank-service/internal/provider"
	"quizbank-service/internal/repository"
)

// CustomerResolver is the slice of the provider API the reconciler needs.
type CustomerResolver interface {
	GetCustomer(ctx context.Context, id string) (*provider.Customer, error)
}

// EntitlementStore is the slice of the user store the reconciler writes to.
type EntitlementStore interface {
	SetPaid(ctx context.Context, email string, paid bool) error
}

// Reconciler translates verified provider events into local entitlement
// writes. Every transition is a pure overwrite, so replayed or reordered
// deliveries converge on the last applied event's state.
type Reconciler struct {
	Provider  CustomerResolver
	Users     EntitlementStore
	Publisher *event.EventPublisher
}

func NewReconciler(p CustomerResolver, users EntitlementStore, publisher *event.EventPublisher) *Reconciler {
	return &Reconciler{Provider: p, Users: users, Publisher: publisher}
}

// Apply processes one verified event. Unknown kinds and unknown users are
// acknowledged without mutation. Provider or store failures propagate so the
// webhook endpoint can answer non-2xx and lean on provider redelivery; the
// local flag keeps its last known value in the meantime.
func (r *Reconciler) Apply(ctx context.Context, e *provider.Event) error {
	var paid bool
	switch e.Kind() {
	case provider.KindPaymentSucceeded:
		paid = true
	case provider.KindPaymentFailed, provider.KindSubscriptionCanceled:
		paid = false
	default:
		log.Printf("Ignoring provider event %s of type %s", e.ID, e.Type)
		return nil
	}

	customerID := e.CustomerID()
	if customerID == "" {
		log.Printf("Provider event %s carries no customer reference, ignoring", e.ID)
		return nil
	}

	customer, err := r.Provider.GetCustomer(ctx, customerID)
	if err != nil {
		return fmt.Errorf("customer lookup for event %s: %w", e.ID, err)
	}

	err = r.Users.SetPaid(ctx, customer.Email, paid)
	if errors.Is(err, repository.ErrNotFound) {
		log.Printf("Provider event %s for %s matches no local user, ignoring", e.ID, customer.Email)
		return nil
	}
	if err != nil {
		return fmt.Errorf("entitlement write for %s: %w", customer.Email, err)
	}

	if r.Publisher != nil {
		r.Publisher.Publish(event.TypeEntitlementUpdated, map[string]any{
			"email":  customer.Email,
			"isPaid": paid,
			"event":  e.Type,
		})
	}
	return nil
}
