package interaction

import (
	"context"
	"log/slog"

	applog "github.com/Helioguilhermediassilva/NarrativeVerse/internal/logger"
	"github.com/Helioguilhermediassilva/NarrativeVerse/internal/services"
	"github.com/Helioguilhermediassilva/NarrativeVerse/pkg/dialogue"
)

// DefaultInitialContext is the conversation context used when none is
// configured.
const DefaultInitialContext = "greeting"

// DefaultPromptText is the interaction affordance shown above the entity.
const DefaultPromptText = "Press Enter to talk"

// ZoneConfig is the read-only configuration of an interaction zone.
type ZoneConfig struct {
	// EntityID identifies the conversational entity; it keys profile and
	// content lookups in the narrative provider.
	EntityID string

	// InitialContext is the first conversation context requested,
	// typically "greeting".
	InitialContext string

	// Repeatable allows the zone to trigger more than once. A
	// non-repeatable zone permanently disables after its first trigger.
	Repeatable bool

	// AutoTrigger starts the conversation on actor entry, without ever
	// surfacing the prompt.
	AutoTrigger bool

	// PromptText overrides the interact affordance text.
	PromptText string

	// ActorFilter restricts which actors the zone recognizes. A nil
	// filter accepts every actor.
	ActorFilter func(actorID string) bool
}

// Zone tracks actor proximity to one conversational entity and owns the
// dialogue session it triggers. At most one session is live at a time.
type Zone struct {
	cfg ZoneConfig

	provider services.NarrativeProvider
	renderer Renderer
	effects  EffectSink
	logger   *slog.Logger

	state            ZoneState
	currentContext   string
	hasTriggeredOnce bool
	actorPresent     bool
	session          *Session
}

// NewZone creates an idle interaction zone.
func NewZone(cfg ZoneConfig, provider services.NarrativeProvider, renderer Renderer, effects EffectSink, logger *slog.Logger) *Zone {
	if cfg.InitialContext == "" {
		cfg.InitialContext = DefaultInitialContext
	}
	if cfg.PromptText == "" {
		cfg.PromptText = DefaultPromptText
	}
	return &Zone{
		cfg:            cfg,
		provider:       provider,
		renderer:       renderer,
		effects:        effects,
		logger:         applog.WithEntity(logger, cfg.EntityID),
		state:          ZoneIdle,
		currentContext: cfg.InitialContext,
	}
}

// State returns the zone's interaction state.
func (z *Zone) State() ZoneState { return z.state }

// CurrentContext returns the conversation context the next trigger will use.
func (z *Zone) CurrentContext() string { return z.currentContext }

// HasTriggeredOnce reports whether the zone has ever triggered a dialogue.
// The flag is monotonic.
func (z *Zone) HasTriggeredOnce() bool { return z.hasTriggeredOnce }

// Session returns the live dialogue session, or nil outside Engaged.
func (z *Zone) Session() *Session { return z.session }

// OnActorEnter handles an actor entering the trigger range. Unrecognized
// actors are ignored. Auto-trigger zones start the conversation
// immediately; others surface the interact prompt.
func (z *Zone) OnActorEnter(ctx context.Context, actorID string) {
	if z.cfg.ActorFilter != nil && !z.cfg.ActorFilter(actorID) {
		z.logger.Debug("Ignoring unrecognized actor", "actor_id", actorID)
		return
	}
	if z.actorPresent {
		return
	}

	z.actorPresent = true
	z.state = ZoneAvailable
	z.logger.Debug("Actor entered zone", "actor_id", actorID)

	if z.cfg.AutoTrigger {
		z.TriggerDialogue(ctx)
		return
	}
	if z.canTrigger() && z.renderer != nil {
		z.renderer.ShowPrompt(z.cfg.PromptText)
	}
}

// canTrigger reports whether a future TriggerDialogue call could pass the
// repeatability guard. Used only to avoid surfacing a dead prompt.
func (z *Zone) canTrigger() bool {
	return z.cfg.Repeatable || !z.hasTriggeredOnce
}

// OnActorExit handles the actor leaving the trigger range. Any open
// session is closed unconditionally, regardless of conversation progress.
// The call is idempotent.
func (z *Zone) OnActorExit() {
	if !z.actorPresent && z.state == ZoneIdle {
		return
	}

	z.actorPresent = false
	z.state = ZoneIdle
	if z.session != nil {
		z.session.Close()
		z.session = nil
	}
	if z.renderer != nil {
		z.renderer.HidePrompt()
	}
	z.logger.Debug("Actor exited zone")
}

// OnTriggerInput handles the explicit interact action.
func (z *Zone) OnTriggerInput(ctx context.Context) {
	if z.state != ZoneAvailable {
		return
	}
	z.TriggerDialogue(ctx)
}

// TriggerDialogue starts a conversation if the zone's policy allows it.
// A non-repeatable zone that has already triggered stays inert: no state
// change, no provider request. The hasTriggeredOnce flag is set during the
// call that passes the guard, never retroactively.
func (z *Zone) TriggerDialogue(ctx context.Context) {
	if !z.actorPresent {
		return
	}
	if z.session != nil && z.session.Open() {
		return
	}
	if !z.cfg.Repeatable && z.hasTriggeredOnce {
		z.logger.Debug("Non-repeatable zone already triggered, ignoring")
		return
	}
	z.hasTriggeredOnce = true

	if z.provider == nil {
		// No provider wired: bookkeeping above still applies, but there
		// is nothing to converse with.
		z.logger.Warn("No narrative provider configured, trigger is a no-op")
		return
	}

	if z.renderer != nil {
		z.renderer.HidePrompt()
	}

	z.session = newSession(z.cfg.EntityID, z.provider, z.renderer, z.effects,
		z.applyChosenContext, z.sessionEnded, z.logger)
	z.state = ZoneEngaged
	z.logger.Info("Dialogue triggered", "context", z.currentContext)
	z.session.Start(ctx, z.currentContext)
}

// ApplyResponse routes a player selection to the live session. Selections
// arriving outside Engaged are discarded.
func (z *Zone) ApplyResponse(ctx context.Context, generation uint64, index int) {
	if z.session == nil {
		z.logger.Debug("Selection with no live session discarded", "index", index)
		return
	}
	z.session.ApplyResponse(ctx, generation, index)
}

// applyChosenContext advances the conversation context from an applied
// response. It runs for every applied option, before the session decides
// whether to close, so the context survives session teardown.
func (z *Zone) applyChosenContext(chosen dialogue.ResponseOption) {
	if chosen.EndsConversation || chosen.NextContext == "" {
		return
	}
	z.currentContext = chosen.NextContext
	z.logger.Debug("Conversation context advanced", "context", z.currentContext)
}

// sessionEnded handles natural completion: the player chose an ending
// option while still in range.
func (z *Zone) sessionEnded() {
	z.session = nil
	if !z.actorPresent {
		z.state = ZoneIdle
		return
	}
	z.state = ZoneAvailable
	if !z.cfg.AutoTrigger && z.canTrigger() && z.renderer != nil {
		z.renderer.ShowPrompt(z.cfg.PromptText)
	}
}
