package notify

import (
	"context"
	"sort"
	"sync"
)

// MemoryStorage is an in-memory implementation of the Storage interface.
// Suitable for development and testing; production deployments should use
// one of the database-backed implementations.
//
// Each user owns an independent bucket with its own lock and sequence
// counter, so operations on different users never contend while operations
// on the same user are fully serialized.
type MemoryStorage struct {
	mu      sync.RWMutex
	buckets map[string]*userBucket
}

type userBucket struct {
	mu      sync.Mutex
	seq     uint64
	records []UserNotification
}

// NewMemoryStorage creates an empty in-memory notification storage.
func NewMemoryStorage() *MemoryStorage {
	return &MemoryStorage{
		buckets: make(map[string]*userBucket),
	}
}

func (s *MemoryStorage) bucket(userID string, create bool) *userBucket {
	s.mu.RLock()
	b, ok := s.buckets[userID]
	s.mu.RUnlock()
	if ok || !create {
		return b
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	if b, ok = s.buckets[userID]; ok {
		return b
	}
	b = &userBucket{}
	s.buckets[userID] = b
	return b
}

func (s *MemoryStorage) Append(ctx context.Context, userID string, e Entry) (UserNotification, error) {
	b := s.bucket(userID, true)

	b.mu.Lock()
	defer b.mu.Unlock()

	b.seq++
	n := UserNotification{
		ID:          b.seq,
		UserID:      userID,
		Name:        e.Name,
		Description: e.Description,
		URL:         e.URL,
		Level:       e.Level,
		CreatedAt:   e.CreatedAt,
	}
	b.records = append(b.records, n)
	return n, nil
}

func (s *MemoryStorage) List(ctx context.Context, userID string, opts ListOptions) ([]UserNotification, error) {
	if opts.Limit != nil && *opts.Limit <= 0 {
		return []UserNotification{}, nil
	}

	b := s.bucket(userID, false)
	if b == nil {
		return []UserNotification{}, nil
	}

	b.mu.Lock()
	filtered := make([]UserNotification, 0, len(b.records))
	for _, n := range b.records {
		if opts.IsRead != nil && n.IsRead != *opts.IsRead {
			continue
		}
		filtered = append(filtered, n)
	}
	b.mu.Unlock()

	sort.SliceStable(filtered, func(i, j int) bool {
		if !filtered[i].CreatedAt.Equal(filtered[j].CreatedAt) {
			return filtered[i].CreatedAt.Before(filtered[j].CreatedAt)
		}
		return filtered[i].ID < filtered[j].ID
	})

	if opts.StartIndex >= len(filtered) {
		return []UserNotification{}, nil
	}
	filtered = filtered[opts.StartIndex:]

	if opts.Limit != nil && *opts.Limit < len(filtered) {
		filtered = filtered[:*opts.Limit]
	}
	return filtered, nil
}

func (s *MemoryStorage) SetRead(ctx context.Context, userID string, ids []uint64, read bool) (int, error) {
	b := s.bucket(userID, false)
	if b == nil {
		return 0, nil
	}

	idSet := make(map[uint64]struct{}, len(ids))
	for _, id := range ids {
		idSet[id] = struct{}{}
	}

	b.mu.Lock()
	defer b.mu.Unlock()

	count := 0
	for i := range b.records {
		if _, ok := idSet[b.records[i].ID]; !ok {
			continue
		}
		b.records[i].IsRead = read
		count++
	}
	return count, nil
}

func (s *MemoryStorage) Summary(ctx context.Context, userID string) (Summary, error) {
	b := s.bucket(userID, false)
	if b == nil {
		return Summary{}, nil
	}

	b.mu.Lock()
	defer b.mu.Unlock()

	var sum Summary
	for _, n := range b.records {
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
