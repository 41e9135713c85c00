package interaction

import (
	"context"
	"log/slog"

	"github.com/google/uuid"

	"github.com/Helioguilhermediassilva/NarrativeVerse/internal/services"
	"github.com/Helioguilhermediassilva/NarrativeVerse/pkg/dialogue"
)

// Fallback turn shown when the provider cannot supply content. The session
// still opens, visibly stuck, and is closed via the actor-exit path.
const (
	fallbackSpeaker = "???"
	fallbackBody    = "The words drift away unanswered. The storyteller is silent; step away and return later."
)

// Session owns the lifecycle of one ongoing conversation with one NPC.
// It is created by a Zone on trigger and destroyed when the conversation
// ends or the actor leaves, whichever comes first.
type Session struct {
	id       uuid.UUID
	entityID string

	provider services.NarrativeProvider
	renderer Renderer
	effects  EffectSink
	logger   *slog.Logger

	// onChosen reports every applied option to the owning zone so the
	// conversation context advances even if the session closes right after.
	onChosen func(dialogue.ResponseOption)
	// onEnded signals natural completion (player chose an ending option).
	onEnded func()

	open          bool
	generation    uint64
	convContext   string // context of the active turn
	activeTurn    *dialogue.Turn
	activeOptions []dialogue.ResponseOption
}

func newSession(entityID string, provider services.NarrativeProvider, renderer Renderer, effects EffectSink,
	onChosen func(dialogue.ResponseOption), onEnded func(), logger *slog.Logger) *Session {
	id := uuid.New()
	return &Session{
		id:       id,
		entityID: entityID,
		provider: provider,
		renderer: renderer,
		effects:  effects,
		onChosen: onChosen,
		onEnded:  onEnded,
		logger:   logger.With("session_id", id.String()),
	}
}

// ID returns the session identity used in diagnostics.
func (s *Session) ID() uuid.UUID { return s.id }

// Open reports whether the session is live.
func (s *Session) Open() bool { return s.open }

// Generation returns the current option-set generation. Selections carrying
// an older generation are discarded.
func (s *Session) Generation() uint64 { return s.generation }

// Turn returns the active turn, or nil when the session is closed.
func (s *Session) Turn() *dialogue.Turn { return s.activeTurn }

// Options returns the active response options.
func (s *Session) Options() []dialogue.ResponseOption { return s.activeOptions }

// Start opens the session and requests the first turn for the given
// conversation context. Provider failure degrades to the fallback turn
// with no options rather than failing the open.
func (s *Session) Start(ctx context.Context, convContext string) {
	if s.open {
		s.logger.Warn("Start called on an already-open session")
		return
	}
	s.open = true
	if s.renderer != nil {
		s.renderer.ShowPanel()
	}
	s.requestTurn(ctx, convContext)
}

// ApplyResponse applies the player's selected option. The generation pins
// the selection to the option set it was rendered for; stale or
// out-of-range selections are logged and ignored with no state change.
func (s *Session) ApplyResponse(ctx context.Context, generation uint64, index int) {
	if !s.open {
		s.logger.Debug("Selection on closed session discarded", "index", index)
		return
	}
	if generation != s.generation {
		s.logger.Debug("Stale selection discarded",
			"selection_generation", generation,
			"current_generation", s.generation)
		return
	}
	if index < 0 || index >= len(s.activeOptions) {
		s.logger.Warn("Selection index out of range",
			"index", index,
			"options", len(s.activeOptions))
		return
	}

	chosen := s.activeOptions[index]

	// 1. Advance the owning zone's conversation context first, so it
	// survives even if the session closes below.
	if s.onChosen != nil {
		s.onChosen(chosen)
	}

	// 2. Side effects are fire-and-forget; collaborator failures never
	// roll back the conversation.
	s.forwardSideEffects(chosen.SideEffects)
	if s.provider != nil {
		if err := s.provider.ReportChoice(ctx, s.entityID, s.convContext, chosen); err != nil {
			s.logger.Debug("Choice report failed", "error", err)
		}
	}

	// 3. End or continue.
	if chosen.EndsConversation {
		ended := s.onEnded
		s.Close()
		if ended != nil {
			ended()
		}
		return
	}

	// Continuation replaces the turn in place; the panel stays visible.
	s.requestTurn(ctx, chosen.NextContext)
}

// Close shuts the session down. Closing an already-closed session is a
// no-op. The generation advances so any in-flight selection or provider
// response for this session is discarded.
func (s *Session) Close() {
	if !s.open {
		return
	}
	s.open = false
	s.generation++
	s.activeTurn = nil
	s.activeOptions = nil
	if s.renderer != nil {
		s.renderer.HidePanel()
	}
	s.logger.Debug("Session closed")
}

// requestTurn fetches a turn from the provider and installs it atomically:
// turn and options are replaced together, under a fresh generation.
func (s *Session) requestTurn(ctx context.Context, convContext string) {
	generation := s.generation

	turn, options, err := s.fetch(ctx, convContext)

	// The provider call is the only potentially-suspending operation; the
	// actor may have left while it was pending. A closed session or an
	// advanced generation means this response is stale.
	if !s.open || generation != s.generation {
		s.logger.Debug("Discarding stale provider response", "context", convContext)
		return
	}

	if err != nil {
		s.logger.Warn("Provider unavailable, rendering fallback turn",
			"context", convContext,
			"error", err)
		turn = &dialogue.Turn{Speaker: fallbackSpeaker, Body: fallbackBody}
		options = nil
	}

	s.generation++
	s.convContext = convContext
	s.activeTurn = turn
	s.activeOptions = options
	s.render()
}

func (s *Session) fetch(ctx context.Context, convContext string) (*dialogue.Turn, []dialogue.ResponseOption, error) {
	if s.provider == nil {
		return nil, nil, services.ErrUnavailable
	}
	turn, options, err := s.provider.RequestTurn(ctx, s.entityID, convContext)
	if err != nil {
		return nil, nil, err
	}
	if turn == nil {
		return nil, nil, services.ErrUnavailable
	}
	if err := dialogue.ValidateOptions(options); err != nil {
		return nil, nil, err
	}
	return turn, options, nil
}

func (s *Session) render() {
	if s.renderer == nil {
		return
	}
	s.renderer.RenderTurn(*s.activeTurn)

	labels := make([]string, len(s.activeOptions))
	for i, o := range s.activeOptions {
		labels[i] = o.Label
	}
	s.renderer.RenderOptions(s.generation, labels)
}

func (s *Session) forwardSideEffects(effects dialogue.SideEffects) {
	if s.effects == nil {
		if !effects.Empty() {
			s.logger.Debug("No effect sink configured, dropping side effects")
		}
		return
	}
	for _, item := range effects.GrantedItems {
		s.effects.GrantItem(item)
	}
	if effects.QuestUpdate != "" {
		s.effects.UpdateQuest(effects.QuestUpdate)
	}
	if effects.TriggerEvent != "" {
		s.effects.TriggerEvent(effects.TriggerEvent)
	}
}
