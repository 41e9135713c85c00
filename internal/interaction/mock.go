package interaction

import (
	"sync"

	"github.com/Helioguilhermediassilva/NarrativeVerse/pkg/dialogue"
)

// MockRenderer is a mock implementation of Renderer for testing. It records
// every render call and exposes the last-seen state.
type MockRenderer struct {
	mu sync.Mutex

	PanelVisible  bool
	PromptVisible bool
	PromptText    string

	LastTurn       *dialogue.Turn
	LastGeneration uint64
	LastLabels     []string

	ShowPanelCalls     int
	HidePanelCalls     int
	RenderTurnCalls    int
	RenderOptionsCalls int
	ShowPromptCalls    int
	HidePromptCalls    int
}

var _ Renderer = (*MockRenderer)(nil)

// NewMockRenderer creates a new mock renderer
func NewMockRenderer() *MockRenderer {
	return &MockRenderer{}
}

func (m *MockRenderer) ShowPanel() {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.PanelVisible = true
	m.ShowPanelCalls++
}

func (m *MockRenderer) HidePanel() {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.PanelVisible = false
	m.HidePanelCalls++
}

func (m *MockRenderer) RenderTurn(turn dialogue.Turn) {
	m.mu.Lock()
	defer m.mu.Unlock()
	t := turn
	m.LastTurn = &t
	m.RenderTurnCalls++
}

func (m *MockRenderer) RenderOptions(generation uint64, labels []string) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.LastGeneration = generation
	m.LastLabels = append([]string(nil), labels...)
	m.RenderOptionsCalls++
}

func (m *MockRenderer) ShowPrompt(text string) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.PromptVisible = true
	m.PromptText = text
	m.ShowPromptCalls++
}

func (m *MockRenderer) HidePrompt() {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.PromptVisible = false
	m.HidePromptCalls++
}

// MockEffectSink is a mock implementation of EffectSink for testing
type MockEffectSink struct {
	mu sync.Mutex

	GrantedItems    []string
	QuestUpdates    []string
	TriggeredEvents []string
}

var _ EffectSink = (*MockEffectSink)(nil)

// NewMockEffectSink creates a new mock effect sink
func NewMockEffectSink() *MockEffectSink {
	return &MockEffectSink{}
}

func (m *MockEffectSink) GrantItem(itemID string) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.GrantedItems = append(m.GrantedItems, itemID)
}

func (m *MockEffectSink) UpdateQuest(questID string) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.QuestUpdates = append(m.QuestUpdates, questID)
}

func (m *MockEffectSink) TriggerEvent(eventID string) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.TriggeredEvents = append(m.TriggeredEvents, eventID)
}
