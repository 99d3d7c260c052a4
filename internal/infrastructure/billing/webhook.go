package billing

import (
	"encoding/json"
	"errors"
	"fmt"

	"github.com/stripe/stripe-go/v79/webhook"

	"github.com/creatorhub/creatorhub/internal/domain/billing"
)

// ErrInvalidSignature is returned for payloads that fail verification.
var ErrInvalidSignature = errors.New("invalid webhook signature")

// WebhookVerifier checks Stripe-Signature headers and decodes the event.
type WebhookVerifier struct {
	secret string
}

func NewWebhookVerifier(secret string) *WebhookVerifier {
	return &WebhookVerifier{secret: secret}
}

// customer-bearing objects; customer may be expanded or a bare id
type eventObject struct {
	Customer          json.RawMessage `json:"customer"`
	ClientReferenceID string          `json:"client_reference_id"`
}

func (v *WebhookVerifier) Parse(payload []byte, signature string) (billing.Event, error) {
	if v.secret == "" {
		return billing.Event{}, fmt.Errorf("%w: webhook secret not configured", ErrInvalidSignature)
	}
	ev, err := webhook.ConstructEventWithOptions(payload, signature, v.secret, webhook.ConstructEventOptions{
		IgnoreAPIVersionMismatch: true,
	})
	if err != nil {
		return billing.Event{}, fmt.Errorf("%w: %v", ErrInvalidSignature, err)
	}

	out := billing.Event{ID: ev.ID, Type: string(ev.Type)}
	if ev.Data == nil || len(ev.Data.Raw) == 0 {
		return out, nil
	}

	var obj eventObject
	if err := json.Unmarshal(ev.Data.Raw, &obj); err != nil {
		return billing.Event{}, fmt.Errorf("decode event object: %w", err)
	}
	out.CustomerID = customerID(obj.Customer)
	out.ClientReferenceID = obj.ClientReferenceID
	return out, nil
}

func customerID(raw json.RawMessage) string {
	if len(raw) == 0 {
		return ""
	}
	var id string
	if err := json.Unmarshal(raw, &id); err == nil {
		return id
	}
	var expanded struct {
		ID string `json:"id"`
	}
	if err := json.Unmarshal(raw, &expanded); err == nil {
		return expanded.ID
	}
	return ""
}
