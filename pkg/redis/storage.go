package redis

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"sort"
	"strconv"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/notifykit/notifykit/pkg/notify"
)

const defaultKeyPrefix = "notifications"

// appendScript assigns the next id and stores the record in one atomic
// step, so a crash can never leave an id consumed without its record.
var appendScript = redis.NewScript(`
local id = redis.call('INCR', KEYS[1])
redis.call('HSET', KEYS[2], id, ARGV[1])
return id
`)

// setReadScript flips is_read on each existing record and reports how many
// of the requested ids matched. Running as a script makes the read-modify-
// write atomic per user.
var setReadScript = redis.NewScript(`
local count = 0
local read = ARGV[#ARGV] == '1'
for i = 1, #ARGV - 1 do
	local v = redis.call('HGET', KEYS[1], ARGV[i])
	if v then
		local rec = cjson.decode(v)
		rec.is_read = read
		redis.call('HSET', KEYS[1], ARGV[i], cjson.encode(rec))
		count = count + 1
	end
end
return count
`)

// record is the stored hash value. The record id lives in the hash field
// name, not the payload, because it is only known after INCR assigns it.
type record struct {
	Name        string    `json:"name"`
	Description string    `json:"description"`
	URL         string    `json:"url"`
	Level       int       `json:"level"`
	IsRead      bool      `json:"is_read"`
	CreatedAt   time.Time `json:"created_at"`
}

// Storage is the Redis implementation of notify.Storage.
type Storage struct {
	client redis.UniversalClient
	prefix string
}

// NewStorage creates a notification storage on top of a connected client.
// An empty prefix falls back to "notifications".
func NewStorage(client redis.UniversalClient, prefix string) *Storage {
	if prefix == "" {
		prefix = defaultKeyPrefix
	}
	return &Storage{client: client, prefix: prefix}
}

func (s *Storage) seqKey(userID string) string {
	return fmt.Sprintf("%s:%s:seq", s.prefix, userID)
}

func (s *Storage) itemsKey(userID string) string {
	return fmt.Sprintf("%s:%s:items", s.prefix, userID)
}

func (s *Storage) Append(ctx context.Context, userID string, e notify.Entry) (notify.UserNotification, error) {
	payload, err := json.Marshal(record{
		Name:        e.Name,
		Description: e.Description,
		URL:         e.URL,
		Level:       int(e.Level),
		CreatedAt:   e.CreatedAt,
	})
	if err != nil {
		return notify.UserNotification{}, errors.Join(notify.ErrStorageFailure, err)
	}

	id, err := appendScript.Run(ctx, s.client,
		[]string{s.seqKey(userID), s.itemsKey(userID)},
		string(payload),
	).Int64()
	if err != nil {
		return notify.UserNotification{}, errors.Join(notify.ErrStorageFailure, err)
	}

	return notify.UserNotification{
		ID:          uint64(id),
		UserID:      userID,
		Name:        e.Name,
		Description: e.Description,
		URL:         e.URL,
		Level:       e.Level,
		CreatedAt:   e.CreatedAt,
	}, nil
}

func (s *Storage) List(ctx context.Context, userID string, opts notify.ListOptions) ([]notify.UserNotification, error) {
	if opts.Limit != nil && *opts.Limit <= 0 {
		return []notify.UserNotification{}, nil
	}

	all, err := s.snapshot(ctx, userID)
	if err != nil {
		return nil, err
	}

	filtered := all[:0]
	for _, n := range all {
		if opts.IsRead != nil && n.IsRead != *opts.IsRead {
			continue
		}
		filtered = append(filtered, n)
	}

	if opts.StartIndex >= len(filtered) {
		return []notify.UserNotification{}, nil
	}
	filtered = filtered[opts.StartIndex:]

	if opts.Limit != nil && *opts.Limit < len(filtered) {
		filtered = filtered[:*opts.Limit]
	}
	return filtered, nil
}

func (s *Storage) SetRead(ctx context.Context, userID string, ids []uint64, read bool) (int, error) {
	if len(ids) == 0 {
		return 0, nil
	}

	args := make([]any, 0, len(ids)+1)
	seen := make(map[uint64]struct{}, len(ids))
	for _, id := range ids {
		if _, ok := seen[id]; ok {
			continue
		}
		seen[id] = struct{}{}
		args = append(args, strconv.FormatUint(id, 10))
	}
	readArg := "0"
	if read {
		readArg = "1"
	}
	args = append(args, readArg)

	count, err := setReadScript.Run(ctx, s.client, []string{s.itemsKey(userID)}, args...).Int64()
	if err != nil {
		return 0, errors.Join(notify.ErrStorageFailure, err)
	}
	return int(count), nil
}

func (s *Storage) Summary(ctx context.Context, userID string) (notify.Summary, error) {
	all, err := s.snapshot(ctx, userID)
	if err != nil {
		return notify.Summary{}, err
	}

	var sum notify.Summary
	for _, n := range all {
		if n.IsRead {
			continue
		}
		sum.UnreadCount++
		if sum.MaxUnreadLevel == nil || n.Level > *sum.MaxUnreadLevel {
			lvl := n.Level
			sum.MaxUnreadLevel = &lvl
		}
	}
	return sum, nil
}

// snapshot reads the user's full collection in one HGETALL and returns it
// ordered by creation time ascending, ties broken by id.
func (s *Storage) snapshot(ctx context.Context, userID string) ([]notify.UserNotification, error) {
	fields, err := s.client.HGetAll(ctx, s.itemsKey(userID)).Result()
	if err != nil {
		return nil, errors.Join(notify.ErrStorageFailure, err)
	}

	out := make([]notify.UserNotification, 0, len(fields))
	for field, raw := range fields {
		id, err := strconv.ParseUint(field, 10, 64)
		if err != nil {
			return nil, errors.Join(notify.ErrStorageFailure, fmt.Errorf("malformed record id %q for user %s", field, userID))
		}
		var rec record
		if err := json.Unmarshal([]byte(raw), &rec); err != nil {
			return nil, errors.Join(notify.ErrStorageFailure, fmt.Errorf("malformed record %d for user %s: %w", id, userID, err))
		}
		out = append(out, notify.UserNotification{
			ID:          id,
			UserID:      userID,
			Name:        rec.Name,
			Description: rec.Description,
			URL:         rec.URL,
			Level:       notify.Level(rec.Level),
			IsRead:      rec.IsRead,
			CreatedAt:   rec.CreatedAt,
		})
	}

	sort.Slice(out, func(i, j int) bool {
		if !out[i].CreatedAt.Equal(out[j].CreatedAt) {
			return out[i].CreatedAt.Before(out[j].CreatedAt)
		}
		return out[i].ID < out[j].ID
	})
	return out, nil
}
