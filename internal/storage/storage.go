package storage

import (
	"context"

	"github.com/Helioguilhermediassilva/NarrativeVerse/pkg/npc"
)

// Storage provides NPC profiles (static resources) and player-NPC
// relationship state (mutable, persisted across sessions).
type Storage interface {
	// Ping tests the storage connection
	Ping(ctx context.Context) error

	// Close closes the storage connection
	Close() error

	// GetProfile loads an NPC profile by ID.
	// Returns nil if the profile doesn't exist.
	GetProfile(ctx context.Context, id string) (*npc.Profile, error)

	// ListProfiles returns the IDs of all available NPC profiles.
	ListProfiles(ctx context.Context) ([]string, error)

	// LoadRelationship retrieves the relationship state for an NPC.
	// Returns nil if no relationship has been recorded yet.
	LoadRelationship(ctx context.Context, npcID string) (*npc.Relationship, error)

	// SaveRelationship persists the relationship state for an NPC.
	SaveRelationship(ctx context.Context, npcID string, rel *npc.Relationship) error
}
