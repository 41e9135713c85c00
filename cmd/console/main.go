package main

import (
	"context"
	"fmt"
	"log"
	"os"
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/Helioguilhermediassilva/NarrativeVerse/internal/config"
	"github.com/Helioguilhermediassilva/NarrativeVerse/internal/interaction"
	"github.com/Helioguilhermediassilva/NarrativeVerse/internal/logger"
	"github.com/Helioguilhermediassilva/NarrativeVerse/internal/narrative"
	"github.com/Helioguilhermediassilva/NarrativeVerse/internal/services"
	"github.com/Helioguilhermediassilva/NarrativeVerse/internal/storage"
)

const laneWidth = 40

// zonePolicy holds per-NPC trigger configuration for the demo world.
var zonePolicy = map[string]struct {
	repeatable  bool
	autoTrigger bool
}{
	"lyra_novastella": {repeatable: true},
	"elian_thaumatec": {repeatable: false},
	"blip":            {repeatable: true, autoTrigger: true},
}

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatal(err)
	}
	logg := logger.Setup(cfg)

	store := storage.NewRedisStorage(cfg.RedisURL, cfg.DataDir, logg)
	pingCtx, cancel := context.WithTimeout(context.Background(), 3*time.Second)
	defer cancel()
	if err := store.Ping(pingCtx); err != nil {
		logg.Warn("Redis unavailable, relationships will not persist", "error", err)
	}

	var provider services.NarrativeProvider
	switch cfg.Provider {
	case config.ProviderRemote:
		provider = services.NewRemoteProvider(cfg.NarrativeAPIURL, cfg.NarrativeAPIKey, logg)
		logg.Info("Using remote narrative provider", "url", cfg.NarrativeAPIURL)
	default:
		provider = narrative.NewEngine(store, cfg.ContentRating, logg)
		logg.Info("Using local narrative engine", "rating", cfg.ContentRating)
	}

	panel := &panelState{}
	w := newWorld(laneWidth, "player")

	ctx := context.Background()
	ids, err := store.ListProfiles(ctx)
	if err != nil || len(ids) == 0 {
		fmt.Fprintf(os.Stderr, "No NPC profiles found under %s/npcs\n", cfg.DataDir)
		os.Exit(1)
	}

	// Spread NPCs along the lane, far enough apart that their zones
	// never overlap.
	pos := 6
	for _, id := range ids {
		profile, err := store.GetProfile(ctx, id)
		if err != nil || profile == nil {
			logg.Warn("Skipping unreadable profile", "id", id, "error", err)
			continue
		}

		policy := zonePolicy[id]
		zone := interaction.NewZone(interaction.ZoneConfig{
			EntityID:    id,
			Repeatable:  policy.repeatable,
			AutoTrigger: policy.autoTrigger,
			PromptText:  "Press Enter to talk to " + profile.Name,
		}, provider, panel, panel, logg)

		w.place(profile, pos, zone)
		pos += 2*proximityRadius + 4
		if pos >= laneWidth {
			break
		}
	}

	p := tea.NewProgram(NewConsoleUI(w, panel), tea.WithAltScreen())
	if _, err := p.Run(); err != nil {
		fmt.Fprintf(os.Stderr, "Error running UI: %v\n", err)
		os.Exit(1)
	}
}
