package provider

import (
	"crypto/hmac"
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"errors"
	"fmt"
	"strconv"
	"strings"
	"time"
)

// ErrSignature covers every way an event can fail verification. Handlers
// must treat it as a client error and mutate nothing.
var ErrSignature = errors.New("webhook signature verification failed")

type EventKind int

const (
	KindOther EventKind = iota
	KindPaymentSucceeded
	KindPaymentFailed
	KindSubscriptionCanceled
)

// Event is a verified provider notification. The inner object only exposes
// the customer reference; everything else about the event stays opaque.
type Event struct {
	ID   string `json:"id"`
	Type string `json:"type"`
	Data struct {
		Object struct {
			Customer string `json:"customer"`
		} `json:"object"`
	} `json:"data"`
}

func (e *Event) Kind() EventKind {
	switch e.Type {
	case "invoice.payment_succeeded":
		return KindPaymentSucceeded
	case "invoice.payment_failed":
		return KindPaymentFailed
	case "customer.subscription.deleted":
		return KindSubscriptionCanceled
	default:
		return KindOther
	}
}

func (e *Event) CustomerID() string {
	return e.Data.Object.Customer
}

// ConstructEvent verifies the signature header against the raw payload and
// the shared secret before parsing anything. Header format is the provider's
// "t=<unix>,v1=<hex hmac>" scheme: the signed message is "<t>.<payload>".
func ConstructEvent(payload []byte, sigHeader, secret string, tolerance time.Duration) (*Event, error) {
	timestamp, signatures, err := parseSignatureHeader(sigHeader)
	if err != nil {
		return nil, err
	}

	if tolerance > 0 {
		age := time.Since(time.Unix(timestamp, 0))
		if age > tolerance || age < -tolerance {
			return nil, fmt.Errorf("%w: timestamp outside tolerance", ErrSignature)
		}
	}

	expected := computeSignature(timestamp, payload, secret)
	valid := false
	for _, sig := range signatures {
		decoded, err := hex.DecodeString(sig)
		if err != nil {
			continue
		}
		if hmac.Equal(decoded, expected) {
			valid = true
			break
		}
	}
	if !valid {
		return nil, fmt.Errorf("%w: no matching v1 signature", ErrSignature)
	}

	var event Event
	if err := json.Unmarshal(payload, &event); err != nil {
		return nil, fmt.Errorf("%w: malformed payload: %s", ErrSignature, err)
	}
	return &event, nil
}

func parseSignatureHeader(header string) (int64, []string, error) {
	if header == "" {
		return 0, nil, fmt.Errorf("%w: missing signature header", ErrSignature)
	}

	var timestamp int64 = -1
	var signatures []string
	for _, part := range strings.Split(header, ",") {
		kv := strings.SplitN(strings.TrimSpace(part), "=", 2)
		if len(kv) != 2 {
			continue
		}
		switch kv[0] {
		case "t":
			ts, err := strconv.ParseInt(kv[1], 10, 64)
			if err != nil {
				return 0, nil, fmt.Errorf("%w: bad timestamp", ErrSignature)
			}
			timestamp = ts
		case "v1":
			signatures = append(signatures, kv[1])
		}
	}
	if timestamp < 0 || len(signatures) == 0 {
		return 0, nil, fmt.Errorf("%w: malformed signature header", ErrSignature)
	}
	return timestamp, signatures, nil
}

func computeSignature(timestamp int64, payload []byte, secret string) []byte {
	mac := hmac.New(sha256.New, []byte(secret))
	fmt.Fprintf(mac, "%d.", timestamp)
	mac.Write(payload)
	return mac.Sum(nil)
}

// SignPayload produces a valid signature header for a payload. Used by tests
// and local tooling to emulate provider deliveries.
func SignPayload(payload []byte, secret string, at time.Time) string {
	sig := computeSignature(at.Unix(), payload, secret)
	return fmt.Sprintf("t=%d,v1=%s", at.Unix(), hex.EncodeToString(sig))
}
