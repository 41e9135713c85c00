package services

import (
	"context"
	"sync"

	"github.com/Helioguilhermediassilva/NarrativeVerse/pkg/dialogue"
)

// MockNarrativeProvider is a mock implementation of NarrativeProvider for testing
type MockNarrativeProvider struct {
	RequestTurnFunc  func(ctx context.Context, entityID, convContext string) (*dialogue.Turn, []dialogue.ResponseOption, error)
	ReportChoiceFunc func(ctx context.Context, entityID, convContext string, chosen dialogue.ResponseOption) error

	// Track calls for testing
	RequestTurnCalls  []TurnCall
	ReportChoiceCalls []ChoiceCall

	mu sync.Mutex // protects all fields above
}

type TurnCall struct {
	EntityID string
	Context  string
}

type ChoiceCall struct {
	EntityID string
	Context  string
	Chosen   dialogue.ResponseOption
}

var _ NarrativeProvider = (*MockNarrativeProvider)(nil)

// NewMockNarrativeProvider creates a new mock narrative provider
func NewMockNarrativeProvider() *MockNarrativeProvider {
	return &MockNarrativeProvider{
		RequestTurnCalls:  make([]TurnCall, 0),
		ReportChoiceCalls: make([]ChoiceCall, 0),
	}
}

// RequestTurn mocks turn generation. The default response is a single turn
// with one conversation-ending option.
func (m *MockNarrativeProvider) RequestTurn(ctx context.Context, entityID, convContext string) (*dialogue.Turn, []dialogue.ResponseOption, error) {
	m.mu.Lock()
	m.RequestTurnCalls = append(m.RequestTurnCalls, TurnCall{EntityID: entityID, Context: convContext})
	fn := m.RequestTurnFunc
	m.mu.Unlock()

	if fn != nil {
		return fn(ctx, entityID, convContext)
	}

	return &dialogue.Turn{
			Speaker: "Mock NPC",
			Body:    "Mock dialogue for " + convContext,
		}, []dialogue.ResponseOption{
			{Label: "Goodbye.", EndsConversation: true},
		}, nil
}

// ReportChoice mocks choice reporting
func (m *MockNarrativeProvider) ReportChoice(ctx context.Context, entityID, convContext string, chosen dialogue.ResponseOption) error {
	m.mu.Lock()
	m.ReportChoiceCalls = append(m.ReportChoiceCalls, ChoiceCall{EntityID: entityID, Context: convContext, Chosen: chosen})
	fn := m.ReportChoiceFunc
	m.mu.Unlock()

	if fn != nil {
		return fn(ctx, entityID, convContext, chosen)
	}
	return nil
}

// TurnRequestCount returns the number of RequestTurn calls recorded
func (m *MockNarrativeProvider) TurnRequestCount() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return len(m.RequestTurnCalls)
}

// SetUnavailable sets up the mock to fail turn requests with ErrUnavailable
func (m *MockNarrativeProvider) SetUnavailable() {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.RequestTurnFunc = func(ctx context.Context, entityID, convContext string) (*dialogue.Turn, []dialogue.ResponseOption, error) {
		return nil, nil, ErrUnavailable
	}
}

// Reset clears all call tracking
func (m *MockNarrativeProvider) Reset() {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.RequestTurnCalls = make([]TurnCall, 0)
	m.ReportChoiceCalls = make([]ChoiceCall, 0)
}
