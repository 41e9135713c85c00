package main

import (
	"context"

	"github.com/Helioguilhermediassilva/NarrativeVerse/internal/interaction"
	"github.com/Helioguilhermediassilva/NarrativeVerse/pkg/npc"
)

// proximityRadius is how close (in lane cells) the player must stand to an
// NPC for its interaction zone to arm.
const proximityRadius = 2

// placement is one NPC standing on the demo lane.
type placement struct {
	profile *npc.Profile
	pos     int
	zone    *interaction.Zone
	inRange bool
}

// world is a one-dimensional walk-up-and-talk playground. Moving the
// player across a proximity boundary feeds enter/exit events to the
// affected zone.
type world struct {
	width     int
	playerPos int
	actorID   string
	npcs      []*placement
}

func newWorld(width int, actorID string) *world {
	return &world{
		width:     width,
		playerPos: 0,
		actorID:   actorID,
	}
}

func (w *world) place(profile *npc.Profile, pos int, zone *interaction.Zone) {
	w.npcs = append(w.npcs, &placement{profile: profile, pos: pos, zone: zone})
}

// movePlayer shifts the player along the lane and revalidates every
// zone's proximity.
func (w *world) movePlayer(ctx context.Context, delta int) {
	next := w.playerPos + delta
	if next < 0 || next >= w.width {
		return
	}
	w.playerPos = next

	for _, p := range w.npcs {
		inRange := abs(w.playerPos-p.pos) <= proximityRadius
		if inRange == p.inRange {
			continue
		}
		p.inRange = inRange
		if inRange {
			p.zone.OnActorEnter(ctx, w.actorID)
		} else {
			p.zone.OnActorExit()
		}
	}
}

// active returns the NPC currently in range, or nil. Placements never
// overlap within one radius, so at most one can be in range.
func (w *world) active() *placement {
	for _, p := range w.npcs {
		if p.inRange {
			return p
		}
	}
	return nil
}

func abs(v int) int {
	if v < 0 {
		return -v
	}
	return v
}
