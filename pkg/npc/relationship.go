package npc

import (
	"strings"
	"time"
)

const (
	// InitialStanding is the neutral starting point for affinity and trust.
	InitialStanding = 50

	// MaxSentiment bounds the impact any single player action can have.
	MaxSentiment = 10
)

// keyword tables for action sentiment scoring
var (
	positiveKeywords = []string{"help", "save", "protect", "agree", "gift", "compliment"}
	negativeKeywords = []string{"attack", "steal", "lie", "threaten", "insult", "refuse"}
)

// Interaction is one recorded player action toward an NPC.
type Interaction struct {
	Action    string    `json:"action"`
	Context   string    `json:"context"`
	Sentiment int       `json:"sentiment"`
	Timestamp time.Time `json:"timestamp"`
}

// Relationship tracks the standing between the player and one NPC.
// Affinity moves with each action's sentiment; trust follows at half speed.
// Both are clamped to [0, 100].
type Relationship struct {
	Affinity     int           `json:"affinity"`
	Trust        int           `json:"trust"`
	Interactions []Interaction `json:"interactions,omitempty"`
}

// NewRelationship returns a relationship at neutral standing.
func NewRelationship() *Relationship {
	return &Relationship{
		Affinity: InitialStanding,
		Trust:    InitialStanding,
	}
}

// Record scores the player action, adjusts affinity and trust, and appends
// the interaction to the log. It returns the sentiment score applied.
func (r *Relationship) Record(action, context string) int {
	sentiment := ScoreAction(action)

	r.Affinity = clamp(r.Affinity+sentiment, 0, 100)
	r.Trust = clamp(r.Trust+sentiment/2, 0, 100)

	r.Interactions = append(r.Interactions, Interaction{
		Action:    action,
		Context:   context,
		Sentiment: sentiment,
		Timestamp: time.Now().UTC(),
	})
	return sentiment
}

// Tone maps current affinity to a provider interaction tone.
func (r *Relationship) Tone() string {
	switch {
	case r.Affinity > 70:
		return "friendly"
	case r.Affinity > 30:
		return "neutral"
	default:
		return "cautious"
	}
}

// ScoreAction rates a player action description in [-MaxSentiment, MaxSentiment].
// Each positive keyword hit adds 2, each negative hit subtracts 2.
func ScoreAction(action string) int {
	score := 0
	lower := strings.ToLower(action)
	for _, w := range positiveKeywords {
		if strings.Contains(lower, w) {
			score += 2
		}
	}
	for _, w := range negativeKeywords {
		if strings.Contains(lower, w) {
			score -= 2
		}
	}
	return clamp(score, -MaxSentiment, MaxSentiment)
}

func clamp(v, lo, hi int) int {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}
