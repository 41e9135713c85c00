package storage

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/Helioguilhermediassilva/NarrativeVerse/pkg/npc"
)

// RedisStorage implements Storage using Redis for relationship state and
// the filesystem for static resources (NPC profiles).
type RedisStorage struct {
	client  *redis.Client
	logger  *slog.Logger
	dataDir string
}

var _ Storage = (*RedisStorage)(nil)

// NewRedisStorage creates a new Redis storage instance. Profiles are read
// from JSON files under dataDir.
func NewRedisStorage(redisURL string, dataDir string, logger *slog.Logger) *RedisStorage {
	rdb := redis.NewClient(&redis.Options{
		Addr: redisURL,
	})

	if dataDir == "" {
		dataDir = "./data"
	}

	return &RedisStorage{
		client:  rdb,
		logger:  logger,
		dataDir: dataDir,
	}
}

func (r *RedisStorage) Ping(ctx context.Context) error {
	if err := r.client.Ping(ctx).Err(); err != nil {
		return fmt.Errorf("redis ping failed: %w", err)
	}
	return nil
}

func (r *RedisStorage) Close() error {
	if err := r.client.Close(); err != nil {
		r.logger.Error("Failed to close Redis connection", "error", err)
		return err
	}
	r.logger.Info("Redis connection closed")
	return nil
}

// WaitForConnection waits for Redis to become available (used during startup)
func (r *RedisStorage) WaitForConnection(ctx context.Context) error {
	maxRetries := 30
	retryDelay := 2 * time.Second

	for i := 0; i < maxRetries; i++ {
		if err := r.Ping(ctx); err != nil {
			r.logger.Debug("Redis not ready yet", "error", err, "attempt", i+1)

			select {
			case <-ctx.Done():
				return fmt.Errorf("context cancelled while waiting for redis: %w", ctx.Err())
			case <-time.After(retryDelay):
				continue
			}
		}

		r.logger.Info("Redis connection established")
		return nil
	}

	return fmt.Errorf("redis did not become available after %d attempts", maxRetries)
}

// Profile operations (filesystem-backed)

func (r *RedisStorage) GetProfile(ctx context.Context, id string) (*npc.Profile, error) {
	path := filepath.Join(r.dataDir, "npcs", id+".json")
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, nil
		}
		r.logger.Error("Failed to read profile file", "id", id, "path", path, "error", err)
		return nil, fmt.Errorf("failed to read profile %s: %w", id, err)
	}

	var p npc.Profile
	if err := json.Unmarshal(data, &p); err != nil {
		return nil, fmt.Errorf("failed to unmarshal profile %s: %w", id, err)
	}
	return &p, nil
}

func (r *RedisStorage) ListProfiles(ctx context.Context) ([]string, error) {
	dir := filepath.Join(r.dataDir, "npcs")
	entries, err := os.ReadDir(dir)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to read profiles dir: %w", err)
	}

	ids := make([]string, 0, len(entries))
	for _, e := range entries {
		if e.IsDir() || !strings.HasSuffix(e.Name(), ".json") {
			continue
		}
		ids = append(ids, strings.TrimSuffix(e.Name(), ".json"))
	}
	return ids, nil
}

// Relationship operations (Redis-backed)

func relationshipKey(npcID string) string {
	return "relationship:" + npcID
}

func (r *RedisStorage) LoadRelationship(ctx context.Context, npcID string) (*npc.Relationship, error) {
	cmd := r.client.Get(ctx, relationshipKey(npcID))
	if err := cmd.Err(); err != nil {
		if err == redis.Nil {
			return nil, nil
		}
		r.logger.Error("Failed to load relationship", "npc_id", npcID, "error", err)
		return nil, fmt.Errorf("failed to load relationship: %w", err)
	}

	var rel npc.Relationship
	if err := json.Unmarshal([]byte(cmd.Val()), &rel); err != nil {
		return nil, fmt.Errorf("failed to unmarshal relationship for %s: %w", npcID, err)
	}
	return &rel, nil
}

func (r *RedisStorage) SaveRelationship(ctx context.Context, npcID string, rel *npc.Relationship) error {
	data, err := json.Marshal(rel)
	if err != nil {
		return fmt.Errorf("failed to marshal relationship: %w", err)
	}

	if err := r.client.Set(ctx, relationshipKey(npcID), string(data), 0).Err(); err != nil {
		r.logger.Error("Failed to save relationship", "npc_id", npcID, "error", err)
		return fmt.Errorf("failed to save relationship: %w", err)
	}
	return nil
}
