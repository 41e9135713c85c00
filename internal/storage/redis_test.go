package storage

import (
	"context"
	"encoding/json"
	"log/slog"
	"os"
	"path/filepath"
	"testing"

	"github.com/alicebob/miniredis/v2"

	"github.com/Helioguilhermediassilva/NarrativeVerse/pkg/npc"
)

func setupRedisStorage(t *testing.T, dataDir string) (*RedisStorage, *miniredis.Miniredis) {
	t.Helper()

	mr, err := miniredis.Run()
	if err != nil {
		t.Fatalf("Failed to start miniredis: %v", err)
	}

	logger := slog.New(slog.NewTextHandler(os.Stdout, &slog.HandlerOptions{Level: slog.LevelError}))
	return NewRedisStorage(mr.Addr(), dataDir, logger), mr
}

func TestRedisStorage_Relationships(t *testing.T) {
	s, mr := setupRedisStorage(t, t.TempDir())
	defer mr.Close()
	defer func() {
		if err := s.Close(); err != nil {
			t.Errorf("Failed to close storage: %v", err)
		}
	}()

	ctx := context.Background()

	if err := s.Ping(ctx); err != nil {
		t.Fatalf("Ping failed: %v", err)
	}

	// No relationship recorded yet
	rel, err := s.LoadRelationship(ctx, "lyra_novastella")
	if err != nil {
		t.Fatalf("LoadRelationship failed: %v", err)
	}
	if rel != nil {
		t.Fatal("expected nil relationship before first save")
	}

	// Save and reload
	rel = npc.NewRelationship()
	rel.Record("helping repair the star drive", "engine_bay")
	if err := s.SaveRelationship(ctx, "lyra_novastella", rel); err != nil {
		t.Fatalf("SaveRelationship failed: %v", err)
	}

	loaded, err := s.LoadRelationship(ctx, "lyra_novastella")
	if err != nil {
		t.Fatalf("LoadRelationship after save failed: %v", err)
	}
	if loaded == nil {
		t.Fatal("expected relationship after save")
	}
	if loaded.Affinity != rel.Affinity {
		t.Errorf("expected affinity %d, got %d", rel.Affinity, loaded.Affinity)
	}
	if len(loaded.Interactions) != 1 {
		t.Errorf("expected 1 interaction, got %d", len(loaded.Interactions))
	}
}

func TestRedisStorage_Profiles(t *testing.T) {
	dataDir := t.TempDir()
	npcDir := filepath.Join(dataDir, "npcs")
	if err := os.MkdirAll(npcDir, 0o755); err != nil {
		t.Fatal(err)
	}

	profile := &npc.Profile{
		ID:        "blip",
		Name:      "Blip",
		Class:     "Sentient Alien Pet",
		Alignment: "Chaotic Good",
	}
	data, err := json.Marshal(profile)
	if err != nil {
		t.Fatal(err)
	}
	if err := os.WriteFile(filepath.Join(npcDir, "blip.json"), data, 0o644); err != nil {
		t.Fatal(err)
	}

	s, mr := setupRedisStorage(t, dataDir)
	defer mr.Close()
	defer s.Close() //nolint:errcheck

	ctx := context.Background()

	loaded, err := s.GetProfile(ctx, "blip")
	if err != nil {
		t.Fatalf("GetProfile failed: %v", err)
	}
	if loaded == nil {
		t.Fatal("expected profile")
	}
	if loaded.Name != "Blip" {
		t.Errorf("expected name 'Blip', got %q", loaded.Name)
	}

	missing, err := s.GetProfile(ctx, "nobody")
	if err != nil {
		t.Fatalf("GetProfile for missing id failed: %v", err)
	}
	if missing != nil {
		t.Error("expected nil for missing profile")
	}

	ids, err := s.ListProfiles(ctx)
	if err != nil {
		t.Fatalf("ListProfiles failed: %v", err)
	}
	if len(ids) != 1 || ids[0] != "blip" {
		t.Errorf("expected [blip], got %v", ids)
	}
}
