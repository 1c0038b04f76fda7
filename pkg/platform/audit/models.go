package audit

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/google/uuid"
)

// EventCategory classifies events by their primary purpose.
// This enables different retention policies, storage backends, and routing.
type EventCategory string

const (
	// CategoryCompliance covers events with legal/regulatory significance:
	// credential lifecycle changes and investor settlements.
	CategoryCompliance EventCategory = "compliance"

	// CategoryOperations covers configuration and bookkeeping events.
	CategoryOperations EventCategory = "operations"
)

// Action names a committed ledger event.
type Action string

const (
	// Credential registry
	ActionNetworkInitialized   Action = "network_initialized"
	ActionNetworkStatusChanged Action = "network_status_changed"
	ActionIssuerRegistered     Action = "issuer_registered"
	ActionIssuerStatusChanged  Action = "issuer_status_changed"
	ActionCredentialIssued     Action = "credential_issued"
	ActionCredentialRevoked    Action = "credential_revoked"
	ActionCredentialRefreshed  Action = "credential_refreshed"

	// Settlement
	ActionPropertyInitialized   Action = "property_initialized"
	ActionPropertyStatusChanged Action = "property_status_changed"
	ActionVaultInitialized      Action = "investment_vault_initialized"
	ActionInvestmentCompleted   Action = "investment_completed"
	ActionMilestoneReached      Action = "milestone_reached"
)

var actionCategories = map[Action]EventCategory{
	ActionCredentialIssued:    CategoryCompliance,
	ActionCredentialRevoked:   CategoryCompliance,
	ActionCredentialRefreshed: CategoryCompliance,
	ActionInvestmentCompleted: CategoryCompliance,
	ActionMilestoneReached:    CategoryCompliance,

	ActionNetworkInitialized:    CategoryOperations,
	ActionNetworkStatusChanged:  CategoryOperations,
	ActionIssuerRegistered:      CategoryOperations,
	ActionIssuerStatusChanged:   CategoryOperations,
	ActionPropertyInitialized:   CategoryOperations,
	ActionPropertyStatusChanged: CategoryOperations,
	ActionVaultInitialized:      CategoryOperations,
}

// Category returns the EventCategory for this action.
// Unknown actions default to CategoryOperations.
func (a Action) Category() EventCategory {
	if cat, ok := actionCategories[a]; ok {
		return cat
	}
	return CategoryOperations
}

// Event is emitted from inside a ledger instruction and becomes visible only if
// the instruction commits. Keep it transport-agnostic so sinks can fan out.
type Event struct {
	ID        uuid.UUID       `json:"id"`
	Action    Action          `json:"action"`
	Category  EventCategory   `json:"category"`
	Subject   string          `json:"subject"`
	Actor     string          `json:"actor,omitempty"`
	Timestamp time.Time       `json:"timestamp"`
	RequestID string          `json:"request_id,omitempty"`
	Payload   json.RawMessage `json:"payload,omitempty"`
}

// NewEvent builds an event with a JSON-encoded payload.
func NewEvent(action Action, subject, actor string, payload any) (Event, error) {
	e := Event{
		ID:       uuid.New(),
		Action:   action,
		Category: action.Category(),
		Subject:  subject,
		Actor:    actor,
	}
	if payload != nil {
		raw, err := json.Marshal(payload)
		if err != nil {
			return Event{}, fmt.Errorf("marshal %s payload: %w", action, err)
		}
		e.Payload = raw
	}
	return e, nil
}

// DecodePayload unmarshals the event payload into out.
func (e Event) DecodePayload(out any) error {
	if len(e.Payload) == 0 {
		return fmt.Errorf("event %s has no payload", e.Action)
	}
	return json.Unmarshal(e.Payload, out)
}

// Sink receives events after the instruction that produced them committed.
type Sink interface {
	Append(ctx context.Context, event Event) error
}

// Publisher delivers a batch of committed events to an external broker.
type Publisher interface {
	Publish(ctx context.Context, events []Event) error
}
