// Package interaction implements the in-world dialogue interaction
// controller: proximity-triggered interaction zones and the dialogue
// sessions they own. Content generation, rendering and side-effect
// execution are delegated to collaborators.
//
// All state transitions are driven by host events (actor enter/exit,
// trigger input, option selection) delivered serially on one goroutine.
// The controller never spawns goroutines of its own.
package interaction

import "github.com/Helioguilhermediassilva/NarrativeVerse/pkg/dialogue"

// ZoneState is the interaction state of a zone.
type ZoneState int

const (
	// ZoneIdle means no eligible actor is in range.
	ZoneIdle ZoneState = iota
	// ZoneAvailable means an actor is in range and no session is open.
	ZoneAvailable
	// ZoneEngaged means a dialogue session is open.
	ZoneEngaged
)

func (s ZoneState) String() string {
	switch s {
	case ZoneIdle:
		return "idle"
	case ZoneAvailable:
		return "available"
	case ZoneEngaged:
		return "engaged"
	default:
		return "unknown"
	}
}

// Renderer is the UI collaborator. The session pushes declarative render
// data; the renderer owns widget identity and layout. RenderOptions
// replaces the prior option set wholesale; the generation must be passed
// back on selection so stale callbacks can be rejected.
type Renderer interface {
	ShowPanel()
	HidePanel()
	RenderTurn(turn dialogue.Turn)
	RenderOptions(generation uint64, labels []string)
	ShowPrompt(text string)
	HidePrompt()
}

// EffectSink receives the side effects of applied responses. Each call is
// a one-way notification; the session neither awaits nor inspects results.
type EffectSink interface {
	GrantItem(itemID string)
	UpdateQuest(questID string)
	TriggerEvent(eventID string)
}
