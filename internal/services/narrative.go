package services

import (
	"context"
	"errors"

	"github.com/Helioguilhermediassilva/NarrativeVerse/pkg/dialogue"
)

// ErrUnavailable is returned when a narrative provider cannot supply a turn.
// Callers degrade to a fallback turn rather than failing the session.
var ErrUnavailable = errors.New("narrative provider unavailable")

// NarrativeProvider supplies dialogue turns and response options for a
// conversational entity. Implementations may be local (template engine) or
// remote (hosted narrative API); the interaction controller treats both
// as opaque.
type NarrativeProvider interface {
	// RequestTurn produces the next dialogue turn and its response options
	// for the given entity and conversation context (e.g. "greeting").
	RequestTurn(ctx context.Context, entityID, convContext string) (*dialogue.Turn, []dialogue.ResponseOption, error)

	// ReportChoice informs the provider of the player's selected response,
	// so it can adapt future content. Errors are advisory; callers treat
	// the report as fire-and-forget.
	ReportChoice(ctx context.Context, entityID, convContext string, chosen dialogue.ResponseOption) error
}
