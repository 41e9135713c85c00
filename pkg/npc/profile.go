package npc

import "fmt"

// Profile describes a conversational NPC. Profiles are static resources,
// JSON-serialized and loaded from the data directory by storage.
type Profile struct {
	ID        string `json:"id"`   // stable identifier, key into content data
	Name      string `json:"name"` // display name
	Class     string `json:"class,omitempty"`
	Alignment string `json:"alignment,omitempty"` // e.g. "Chaotic Good"
	Backstory string `json:"backstory,omitempty"`

	// PersonalityTraits maps trait name to strength (0-10). The dominant
	// trait biases mood selection in the local narrative engine.
	PersonalityTraits map[string]int `json:"personality_traits,omitempty"`

	// InteractionStyle holds situation-keyed canned responses, e.g.
	// "under_stress", "first_meeting", "teaching_moments".
	InteractionStyle map[string]string `json:"interaction_style,omitempty"`

	Portrait string `json:"portrait,omitempty"` // asset reference for the dialogue panel
}

func (p *Profile) Validate() error {
	if p.ID == "" {
		return fmt.Errorf("profile id cannot be empty")
	}
	if p.Name == "" {
		return fmt.Errorf("profile %q: name cannot be empty", p.ID)
	}
	for trait, strength := range p.PersonalityTraits {
		if trait == "" {
			return fmt.Errorf("profile %q: personality trait with empty name", p.ID)
		}
		if strength < 0 || strength > 10 {
			return fmt.Errorf("profile %q: trait %q strength %d out of range [0,10]", p.ID, trait, strength)
		}
	}
	return nil
}

// DominantTrait returns the strongest personality trait, or "" if none.
// Ties break lexicographically so the result is stable across runs.
func (p *Profile) DominantTrait() string {
	best := ""
	bestStrength := -1
	for trait, strength := range p.PersonalityTraits {
		if strength > bestStrength || (strength == bestStrength && trait < best) {
			best = trait
			bestStrength = strength
		}
	}
	return best
}
