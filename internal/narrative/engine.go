// Package narrative implements a local, template-driven narrative provider.
// It adapts NPC dialogue to personality profiles and the player's standing
// with each NPC, without calling out to a hosted generation service.
package narrative

import (
	"context"
	"fmt"
	"log/slog"
	"math/rand"
	"strings"
	"time"

	"github.com/Helioguilhermediassilva/NarrativeVerse/internal/services"
	"github.com/Helioguilhermediassilva/NarrativeVerse/internal/storage"
	"github.com/Helioguilhermediassilva/NarrativeVerse/pkg/dialogue"
	"github.com/Helioguilhermediassilva/NarrativeVerse/pkg/npc"
)

// Engine generates dialogue turns and response options from NPC profiles,
// prompt templates and relationship state. It implements
// services.NarrativeProvider.
type Engine struct {
	store  storage.Storage
	filter *ContentFilter
	logger *slog.Logger
	rng    *rand.Rand
}

var _ services.NarrativeProvider = (*Engine)(nil)

// NewEngine creates a local narrative engine. Generated dialogue is passed
// through a content filter when the rating requires it.
func NewEngine(store storage.Storage, rating string, logger *slog.Logger) *Engine {
	e := &Engine{
		store:  store,
		logger: logger,
		rng:    rand.New(rand.NewSource(time.Now().UnixNano())),
	}
	if ShouldFilterContent(rating) {
		e.filter = NewContentFilter()
	}
	return e
}

// RequestTurn builds the next dialogue turn for an entity and context.
// A missing profile is reported as services.ErrUnavailable so the session
// degrades to its fallback turn.
func (e *Engine) RequestTurn(ctx context.Context, entityID, convContext string) (*dialogue.Turn, []dialogue.ResponseOption, error) {
	profile, err := e.store.GetProfile(ctx, entityID)
	if err != nil {
		return nil, nil, fmt.Errorf("%w: %v", services.ErrUnavailable, err)
	}
	if profile == nil {
		return nil, nil, fmt.Errorf("%w: no profile for entity %q", services.ErrUnavailable, entityID)
	}

	rel, err := e.store.LoadRelationship(ctx, entityID)
	if err != nil {
		e.logger.Warn("Failed to load relationship, using neutral standing", "entity_id", entityID, "error", err)
	}
	if rel == nil {
		rel = npc.NewRelationship()
	}

	style := e.interactionStyle(profile, convContext)
	mood := e.determineMood(profile)
	body := e.fillTemplate(selectTemplate(convContext, style), profile, mood)
	if e.filter != nil {
		body = e.filter.Apply(body)
	}

	turn := &dialogue.Turn{
		Speaker:  profile.Name,
		Body:     body,
		Portrait: profile.Portrait,
	}
	options := e.buildOptions(profile, rel, entityID, convContext)

	e.logger.Debug("Generated dialogue turn",
		"entity_id", entityID,
		"context", convContext,
		"style", style,
		"mood", mood,
		"options", len(options))

	return turn, options, nil
}

// ReportChoice records the player's selection against the relationship
// state, so later turns can adapt tone.
func (e *Engine) ReportChoice(ctx context.Context, entityID, convContext string, chosen dialogue.ResponseOption) error {
	rel, err := e.store.LoadRelationship(ctx, entityID)
	if err != nil {
		return fmt.Errorf("failed to load relationship: %w", err)
	}
	if rel == nil {
		rel = npc.NewRelationship()
	}

	sentiment := rel.Record(chosen.Label, convContext)
	if err := e.store.SaveRelationship(ctx, entityID, rel); err != nil {
		return fmt.Errorf("failed to save relationship: %w", err)
	}

	e.logger.Debug("Recorded player choice",
		"entity_id", entityID,
		"context", convContext,
		"sentiment", sentiment,
		"affinity", rel.Affinity,
		"trust", rel.Trust)
	return nil
}

// interactionStyle picks a template style from the profile and context.
func (e *Engine) interactionStyle(profile *npc.Profile, convContext string) string {
	switch convContext {
	case "greeting":
		parts := strings.Fields(profile.Alignment)
		if len(parts) > 1 && parts[1] == "Good" {
			return "friendly"
		}
		return "cautious"
	case "quest_offer":
		switch profile.Class {
		case "Techno-Mage Scientist", "Sentient Alien Pet":
			return "mysterious"
		default:
			return "casual"
		}
	case "response_to_player_choice":
		return "approval"
	}
	return "friendly"
}

// determineMood selects the NPC's current mood, biased by the dominant
// personality trait.
func (e *Engine) determineMood(profile *npc.Profile) string {
	switch profile.DominantTrait() {
	case "optimism", "enthusiasm", "curiosity":
		if e.rng.Float64() < 0.7 {
			return "happy"
		}
	case "wisdom", "empathy", "compassion":
		if e.rng.Float64() < 0.6 {
			return "curious"
		}
	case "determination", "courage":
		// varied, no bias
	default:
		if e.rng.Float64() < 0.4 {
			return "curious"
		}
	}
	return allMoods[e.rng.Intn(len(allMoods))]
}

func selectTemplate(convContext, style string) string {
	if styles, ok := dialogueTemplates[convContext]; ok {
		if tmpl, ok := styles[style]; ok {
			return tmpl
		}
	}
	return fallbackTemplate
}

// fillTemplate resolves placeholders against the profile and prefixes the
// mood's speech pattern.
func (e *Engine) fillTemplate(tmpl string, profile *npc.Profile, mood string) string {
	replacer := strings.NewReplacer(
		"{npc_name}", profile.Name,
		"{npc_title}", profile.Class,
		"{custom_intro}", fmt.Sprintf("I am %s and %s", profile.Alignment, introSnippet(profile)),
		"{hesitation}", hesitations[e.rng.Intn(len(hesitations))],
		"{quest_description}", "There is a task only an outsider can finish.",
		"{approval_response}", "This shows your character.",
		"{disappointment_response}", "This wasn't what I expected.",
		"{surprise_response}", "You continue to surprise me.",
		"{neutral_response}", "Let's see where this leads us.",
	)
	body := replacer.Replace(tmpl)

	if mod, ok := moodModifiers[mood]; ok {
		body = "[" + mod.speechPattern + "] " + body
	}
	return body
}

// introSnippet pulls a line from the backstory for first meetings.
func introSnippet(profile *npc.Profile) string {
	if profile.Backstory == "" {
		return "I have a story to tell."
	}
	sentences := strings.Split(profile.Backstory, ".")
	if len(sentences) > 2 {
		return strings.TrimSpace(sentences[1]) + "."
	}
	return strings.TrimSpace(sentences[0]) + "."
}

// buildOptions derives the player's response options for a context. Labels
// adapt to the relationship tone; contexts chain per the option's
// NextContext, and closing options end the conversation.
func (e *Engine) buildOptions(profile *npc.Profile, rel *npc.Relationship, entityID, convContext string) []dialogue.ResponseOption {
	var opts []dialogue.ResponseOption

	switch convContext {
	case "greeting":
		ask := "Is there something you need help with?"
		if rel.Affinity > 60 {
			ask = fmt.Sprintf("Good to see you, %s. Anything I can help with?", nickname(rel.Affinity))
		}
		opts = append(opts,
			dialogue.ResponseOption{Label: ask, NextContext: "quest_offer"},
			dialogue.ResponseOption{Label: "Tell me about yourself.", NextContext: "response_to_player_choice"},
			dialogue.ResponseOption{Label: "Farewell.", EndsConversation: true},
		)

	case "quest_offer":
		opts = append(opts,
			dialogue.ResponseOption{
				Label:       "I'll help you.",
				NextContext: "response_to_player_choice",
				SideEffects: dialogue.SideEffects{
					QuestUpdate:  "quest_" + entityID + "_accepted",
					TriggerEvent: "quest_accepted:" + entityID,
				},
			},
			dialogue.ResponseOption{Label: suggestionLabel(profile, rel), NextContext: "quest_offer"},
			dialogue.ResponseOption{Label: "I refuse. Goodbye.", EndsConversation: true},
		)

	case "response_to_player_choice":
		if rel.Trust > 70 {
			opts = append(opts, dialogue.ResponseOption{
				Label:       "What's your honest opinion?",
				NextContext: "response_to_player_choice",
			})
		} else {
			opts = append(opts, dialogue.ResponseOption{
				Label:       "Considering the facts, what next?",
				NextContext: "response_to_player_choice",
			})
		}
		opts = append(opts,
			dialogue.ResponseOption{Label: "Let's talk about something else.", NextContext: "greeting"},
			dialogue.ResponseOption{Label: "That's all for now.", EndsConversation: true},
		)

	default:
		opts = append(opts,
			dialogue.ResponseOption{Label: "Let's start over.", NextContext: "greeting"},
			dialogue.ResponseOption{Label: "Farewell.", EndsConversation: true},
		)
	}

	if len(opts) > dialogue.MaxOptions {
		opts = opts[:dialogue.MaxOptions]
	}
	return opts
}

// nickname returns what the NPC calls the player at a given affinity.
func nickname(affinity int) string {
	switch {
	case affinity > 90:
		return "my dear friend"
	case affinity > 70:
		return "friend"
	default:
		return "traveler"
	}
}

// suggestionLabel phrases the "tell me more" option in the NPC's voice.
func suggestionLabel(profile *npc.Profile, rel *npc.Relationship) string {
	if rel.Tone() == "cautious" {
		return "Why should I trust you with this?"
	}
	switch {
	case strings.Contains(profile.Class, "Explorer"):
		return "What route would you take?"
	case strings.Contains(profile.Class, "Scientist"):
		return "What do the patterns say?"
	case strings.Contains(profile.Class, "Guardian"):
		return "What needs protecting?"
	default:
		return "Tell me more first."
	}
}

// Perspective returns the NPC's worldview line, used for flavor text in
// the console's profile panel.
func Perspective(profile *npc.Profile) string {
	for fragment, perspective := range classPerspectives {
		if strings.Contains(profile.Class, fragment) {
			return perspective
		}
	}
	return defaultPerspective
}
