package provider

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"
)

func newTestClient(handler http.HandlerFunc) (*Client, *httptest.Server) {
	server := httptest.NewServer(handler)
	client := NewClient(server.URL, "sk_test", 5*time.Second)
	return client, server
}

func TestFindCustomerByEmail(t *testing.T) {
	client, server := newTestClient(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/v1/customers" {
			t.Errorf("Unexpected path %s", r.URL.Path)
		}
		if got := r.Header.Get("Authorization"); got != "Bearer sk_test" {
			t.Errorf("Missing bearer auth, got %q", got)
		}
		if r.URL.Query().Get("email") == "known@example.com" {
			w.Write([]byte(`{"data":[{"id":"cus_1","email":"known@example.com"}]}`))
			return
		}
		w.Write([]byte(`{"data":[]}`))
	})
	defer server.Close()

	customer, err := client.FindCustomerByEmail(context.Background(), "known@example.com")
	if err != nil {
		t.Fatalf("Unexpected error: %v", err)
	}
	if customer == nil || customer.ID != "cus_1" {
		t.Errorf("Expected cus_1, got %+v", customer)
	}

	customer, err = client.FindCustomerByEmail(context.Background(), "new@example.com")
	if err != nil {
		t.Fatalf("Unexpected error: %v", err)
	}
	if customer != nil {
		t.Errorf("Expected no customer, got %+v", customer)
	}
}

func TestCreateCustomer(t *testing.T) {
	client, server := newTestClient(func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodPost || r.URL.Path != "/v1/customers" {
			t.Errorf("Unexpected request %s %s", r.Method, r.URL.Path)
		}
		if err := r.ParseForm(); err != nil {
			t.Fatalf("Bad form: %v", err)
		}
		if r.PostForm.Get("email") != "new@example.com" {
			t.Errorf("Expected email form field, got %q", r.PostForm.Get("email"))
		}
		w.Write([]byte(`{"id":"cus_new","email":"new@example.com"}`))
	})
	defer server.Close()

	customer, err := client.CreateCustomer(context.Background(), "new@example.com")
	if err != nil {
		t.Fatalf("Unexpected error: %v", err)
	}
	if customer.ID != "cus_new" {
		t.Errorf("Expected cus_new, got %s", customer.ID)
	}
}

func TestHasActiveSubscription(t *testing.T) {
	client, server := newTestClient(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Query().Get("status") != "active" {
			t.Errorf("Expected status=active query, got %q", r.URL.Query().Get("status"))
		}
		if r.URL.Query().Get("customer") == "cus_paid" {
			w.Write([]byte(`{"data":[{"id":"sub_1","status":"active","customer":"cus_paid"}]}`))
			return
		}
		w.Write([]byte(`{"data":[]}`))
	})
	defer server.Close()

	active, err := client.HasActiveSubscription(context.Background(), "cus_paid")
	if err != nil {
		t.Fatalf("Unexpected error: %v", err)
	}
	if !active {
		t.Error("Expected active subscription for cus_paid")
	}

	active, err = client.HasActiveSubscription(context.Background(), "cus_free")
	if err != nil {
		t.Fatalf("Unexpected error: %v", err)
	}
	if active {
		t.Error("Expected no active subscription for cus_free")
	}
}

func TestCreateCheckoutSession(t *testing.T) {
	client, server := newTestClient(func(w http.ResponseWriter, r *http.Request) {
		if err := r.ParseForm(); err != nil {
			t.Fatalf("Bad form: %v", err)
		}
		if r.PostForm.Get("mode") != "subscription" {
			t.Errorf("Expected mode=subscription, got %q", r.PostForm.Get("mode"))
		}
		if r.PostForm.Get("line_items[0][price]") != "price_123" {
			t.Errorf("Expected price_123, got %q", r.PostForm.Get("line_items[0][price]"))
		}
		w.Write([]byte(`{"id":"cs_1","url":"https://checkout.example.com/cs_1"}`))
	})
	defer server.Close()

	session, err := client.CreateCheckoutSession(context.Background(), "cus_1", "price_123", "http://ok", "http://cancel")
	if err != nil {
		t.Fatalf("Unexpected error: %v", err)
	}
	if session.URL != "https://checkout.example.com/cs_1" {
		t.Errorf("Unexpected session url %s", session.URL)
	}
}

func TestProviderErrorStatus(t *testing.T) {
	client, server := newTestClient(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusInternalServerError)
		w.Write([]byte(`{"error":{"message":"boom"}}`))
	})
	defer server.Close()

	if _, err := client.FindCustomerByEmail(context.Background(), "any@example.com"); err == nil {
		t.Error("Expected error on provider 500")
	}
}
