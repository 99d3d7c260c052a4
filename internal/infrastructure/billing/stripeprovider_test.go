package billing

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/stripe/stripe-go/v79"
	"github.com/stripe/stripe-go/v79/client"

	"github.com/creatorhub/creatorhub/internal/domain/billing"
	"github.com/creatorhub/creatorhub/internal/shared/logger"
)

func newTestProvider(t *testing.T, handler http.HandlerFunc) *StripeProvider {
	t.Helper()
	srv := httptest.NewServer(handler)
	t.Cleanup(srv.Close)

	backend := stripe.GetBackendWithConfig(stripe.APIBackend, &stripe.BackendConfig{
		URL:               stripe.String(srv.URL),
		MaxNetworkRetries: stripe.Int64(0),
		LeveledLogger:     &stripe.LeveledLogger{Level: stripe.LevelNull},
	})
	api := client.New("sk_test_123", &stripe.Backends{API: backend, Connect: backend, Uploads: backend})
	return newStripeProvider(api, time.Second, logger.NewNop())
}

func writeJSON(w http.ResponseWriter, status int, body string) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_, _ = w.Write([]byte(body))
}

func TestStripeProvider_GetCustomer(t *testing.T) {
	p := newTestProvider(t, func(w http.ResponseWriter, r *http.Request) {
		switch r.URL.Path {
		case "/v1/customers/cus_1":
			writeJSON(w, http.StatusOK, `{"id":"cus_1","object":"customer","email":"a@example.com"}`)
		case "/v1/customers/cus_gone":
			writeJSON(w, http.StatusOK, `{"id":"cus_gone","object":"customer","deleted":true}`)
		default:
			writeJSON(w, http.StatusNotFound, `{"error":{"type":"invalid_request_error","code":"resource_missing","message":"No such customer"}}`)
		}
	})
	ctx := context.Background()

	c, err := p.GetCustomer(ctx, "cus_1")
	require.NoError(t, err)
	assert.Equal(t, "a@example.com", c.Email)

	c, err = p.GetCustomer(ctx, "cus_gone")
	require.NoError(t, err)
	assert.Nil(t, c)

	c, err = p.GetCustomer(ctx, "cus_missing")
	require.NoError(t, err)
	assert.Nil(t, c)
}

func TestStripeProvider_FindCustomerByEmail(t *testing.T) {
	p := newTestProvider(t, func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Query().Get("email") == "known@example.com" {
			writeJSON(w, http.StatusOK, `{"object":"list","has_more":false,"data":[{"id":"cus_9","object":"customer","email":"known@example.com"}]}`)
			return
		}
		writeJSON(w, http.StatusOK, `{"object":"list","has_more":false,"data":[]}`)
	})

	c, err := p.FindCustomerByEmail(context.Background(), "known@example.com")
	require.NoError(t, err)
	require.NotNil(t, c)
	assert.Equal(t, "cus_9", c.ID)

	c, err = p.FindCustomerByEmail(context.Background(), "nobody@example.com")
	require.NoError(t, err)
	assert.Nil(t, c)
}

func TestStripeProvider_ListActiveSubscriptions(t *testing.T) {
	p := newTestProvider(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/v1/subscriptions", r.URL.Path)
		assert.Equal(t, "active", r.URL.Query().Get("status"))
		writeJSON(w, http.StatusOK, `{"object":"list","has_more":false,"data":[
			{"id":"sub_1","object":"subscription","status":"active","customer":"cus_1","current_period_end":1790000000,
			 "items":{"object":"list","data":[{"id":"si_1","object":"subscription_item","price":{"id":"price_pro","object":"price"}}]}}
		]}`)
	})

	subs, err := p.ListActiveSubscriptions(context.Background(), "cus_1")
	require.NoError(t, err)
	require.Len(t, subs, 1)
	assert.Equal(t, []string{"price_pro"}, subs[0].PriceIDs)
	assert.Equal(t, "cus_1", subs[0].CustomerID)
	assert.Equal(t, time.Unix(1790000000, 0).UTC(), subs[0].CurrentPeriodEnd)
}

func TestStripeProvider_ErrorClassification(t *testing.T) {
	tests := []struct {
		name        string
		status      int
		body        string
		unavailable bool
	}{
		{"server error", http.StatusInternalServerError, `{"error":{"type":"api_error","message":"boom"}}`, true},
		{"rate limited", http.StatusTooManyRequests, `{"error":{"type":"invalid_request_error","code":"rate_limit","message":"slow down"}}`, true},
		{"missing resource", http.StatusBadRequest, `{"error":{"type":"invalid_request_error","code":"resource_missing","param":"customer","message":"No such customer"}}`, false},
		{"bad api key", http.StatusUnauthorized, `{"error":{"type":"invalid_request_error","message":"Invalid API Key provided"}}`, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			p := newTestProvider(t, func(w http.ResponseWriter, r *http.Request) {
				writeJSON(w, tt.status, tt.body)
			})
			ctx := context.Background()

			_, err := p.ListActiveSubscriptions(ctx, "cus_gone")
			require.Error(t, err)
			assert.Equal(t, tt.unavailable, errors.Is(err, billing.ErrProviderUnavailable))

			_, err = p.FindCustomerByEmail(ctx, "a@example.com")
			require.Error(t, err)
			assert.Equal(t, tt.unavailable, errors.Is(err, billing.ErrProviderUnavailable))
		})
	}
}

func TestStripeProvider_UnreachableIsUnavailable(t *testing.T) {
	srv := httptest.NewServer(http.NotFoundHandler())
	url := srv.URL
	srv.Close()

	backend := stripe.GetBackendWithConfig(stripe.APIBackend, &stripe.BackendConfig{
		URL:               stripe.String(url),
		MaxNetworkRetries: stripe.Int64(0),
		LeveledLogger:     &stripe.LeveledLogger{Level: stripe.LevelNull},
	})
	api := client.New("sk_test_123", &stripe.Backends{API: backend, Connect: backend, Uploads: backend})
	p := newStripeProvider(api, time.Second, logger.NewNop())

	_, err := p.GetCustomer(context.Background(), "cus_1")
	assert.ErrorIs(t, err, billing.ErrProviderUnavailable)
}
