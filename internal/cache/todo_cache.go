package cache

import (
	"context"
	"encoding/json"
	"strconv"
	"time"

	dom "todonotes/internal/domain"

	"github.com/redis/go-redis/v9"
)

const (
	keyListAll     = "todo:list:all"
	keyListDone    = "todo:list:done"
	keyListPending = "todo:list:pending"
	keyStats       = "todo:stats"
	keyNotesPrefix = "todo:notes:"
)

// TodoCache caches todo lists (per completed filter), per-todo note lists,
// and the stats aggregate in Redis.
type TodoCache struct {
	rdb *redis.Client
	ttl time.Duration
}

// NewTodoCache returns a new TodoCache.
func NewTodoCache(rdb *redis.Client, ttl time.Duration) *TodoCache {
	return &TodoCache{rdb: rdb, ttl: ttl}
}

// ListKey maps the completed filter to its cache key suffix.
func ListKey(completed *bool) string {
	switch {
	case completed == nil:
		return keyListAll
	case *completed:
		return keyListDone
	default:
		return keyListPending
	}
}

// GetList returns the cached todo list for the filter, or nil if miss.
func (c *TodoCache) GetList(ctx context.Context, completed *bool) ([]dom.Todo, error) {
	b, err := c.rdb.Get(ctx, ListKey(completed)).Bytes()
	if err == redis.Nil {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	var list []dom.Todo
	if err := json.Unmarshal(b, &list); err != nil {
		return nil, err
	}
	return list, nil
}

// SetList stores the todo list for the filter.
func (c *TodoCache) SetList(ctx context.Context, completed *bool, list []dom.Todo) error {
	b, err := json.Marshal(list)
	if err != nil {
		return err
	}
	return c.rdb.Set(ctx, ListKey(completed), b, c.ttl).Err()
}

// GetNotes returns the cached note list for a todo, or nil if miss.
func (c *TodoCache) GetNotes(ctx context.Context, todoID int64) ([]dom.Note, error) {
	b, err := c.rdb.Get(ctx, notesKey(todoID)).Bytes()
	if err == redis.Nil {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	var list []dom.Note
	if err := json.Unmarshal(b, &list); err != nil {
		return nil, err
	}
	return list, nil
}

// SetNotes stores the note list for a todo.
func (c *TodoCache) SetNotes(ctx context.Context, todoID int64, list []dom.Note) error {
	b, err := json.Marshal(list)
	if err != nil {
		return err
	}
	return c.rdb.Set(ctx, notesKey(todoID), b, c.ttl).Err()
}

// GetStats returns the cached stats or nil if miss.
func (c *TodoCache) GetStats(ctx context.Context) (*dom.Stats, error) {
	b, err := c.rdb.Get(ctx, keyStats).Bytes()
	if err == redis.Nil {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	var s dom.Stats
	if err := json.Unmarshal(b, &s); err != nil {
		return nil, err
	}
	return &s, nil
}

// SetStats stores the stats aggregate.
func (c *TodoCache) SetStats(ctx context.Context, s dom.Stats) error {
	b, err := json.Marshal(s)
	if err != nil {
		return err
	}
	return c.rdb.Set(ctx, keyStats, b, c.ttl).Err()
}

// InvalidateAll removes list, stats, and all note keys (cache invalidation on write).
func (c *TodoCache) InvalidateAll(ctx context.Context) error {
	if err := c.rdb.Del(ctx, keyListAll, keyListDone, keyListPending, keyStats).Err(); err != nil {
		return err
	}
	iter := c.rdb.Scan(ctx, 0, keyNotesPrefix+"*", 100).Iterator()
	for iter.Next(ctx) {
		if err := c.rdb.Del(ctx, iter.Val()).Err(); err != nil {
			return err
		}
	}
	return iter.Err()
}

func notesKey(todoID int64) string {
	return keyNotesPrefix + strconv.FormatInt(todoID, 10)
}
