package dialogue

import "fmt"

// MaxOptions is the upper bound on response options presented for a single turn.
const MaxOptions = 3

// Turn is one rendered block of NPC dialogue, produced by a narrative
// provider for an (entity, context) pair. A turn is never mutated; it is
// superseded by the next turn.
type Turn struct {
	Speaker  string `json:"speaker"`            // display name of the NPC
	Body     string `json:"body"`               // dialogue text to present
	Portrait string `json:"portrait,omitempty"` // asset reference, empty if none
}

// SideEffects are the external consequences of a selected response.
// Each is forwarded to its collaborator as a one-way notification.
type SideEffects struct {
	GrantedItems []string `json:"granted_items,omitempty"`
	QuestUpdate  string   `json:"quest_update,omitempty"`
	TriggerEvent string   `json:"trigger_event,omitempty"`
}

// Empty reports whether the option carries no side effects at all.
func (se SideEffects) Empty() bool {
	return len(se.GrantedItems) == 0 && se.QuestUpdate == "" && se.TriggerEvent == ""
}

// ResponseOption is a single selectable player response. Options are
// produced as a set alongside each Turn and discarded wholesale when the
// turn is replaced or the session closes.
type ResponseOption struct {
	Label            string      `json:"label"`
	NextContext      string      `json:"next_context,omitempty"`
	EndsConversation bool        `json:"ends_conversation,omitempty"`
	SideEffects      SideEffects `json:"side_effects,omitempty"`
}

// Validate checks the continuation invariant: an option that does not end
// the conversation must name the context to continue into.
func (o ResponseOption) Validate() error {
	if o.Label == "" {
		return fmt.Errorf("response option label cannot be empty")
	}
	if !o.EndsConversation && o.NextContext == "" {
		return fmt.Errorf("response option %q does not end the conversation and has no next context", o.Label)
	}
	return nil
}

// ValidateOptions validates a full option set as delivered by a provider.
func ValidateOptions(opts []ResponseOption) error {
	if len(opts) > MaxOptions {
		return fmt.Errorf("too many response options: %d (max %d)", len(opts), MaxOptions)
	}
	for i, o := range opts {
		if err := o.Validate(); err != nil {
			return fmt.Errorf("option %d: %w", i, err)
		}
	}
	return nil
}
