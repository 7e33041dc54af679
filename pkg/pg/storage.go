package pg

import (
	"context"
	"errors"
	"fmt"
	"strconv"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/notifykit/notifykit/pkg/notify"
)

// Storage is the PostgreSQL implementation of notify.Storage.
type Storage struct {
	pool *pgxpool.Pool
}

// NewStorage creates a notification storage on top of an established pool.
func NewStorage(pool *pgxpool.Pool) *Storage {
	return &Storage{pool: pool}
}

// Append inserts the next record for the user. A per-user advisory
// transaction lock serializes concurrent appends for the same user, which
// keeps ids monotonic without blocking inserts for other users.
func (s *Storage) Append(ctx context.Context, userID string, e notify.Entry) (notify.UserNotification, error) {
	n := notify.UserNotification{
		UserID:      userID,
		Name:        e.Name,
		Description: e.Description,
		URL:         e.URL,
		Level:       e.Level,
		CreatedAt:   e.CreatedAt,
	}

	err := pgx.BeginFunc(ctx, s.pool, func(tx pgx.Tx) error {
		if _, err := tx.Exec(ctx, `SELECT pg_advisory_xact_lock(hashtext($1))`, userID); err != nil {
			return err
		}

		var id int64
		err := tx.QueryRow(ctx, `
			INSERT INTO user_notifications (user_id, id, name, description, url, level, is_read, created_at)
			VALUES (
				$1,
				COALESCE((SELECT MAX(id) FROM user_notifications WHERE user_id = $1), 0) + 1,
				$2, $3, $4, $5, FALSE, $6
			)
			RETURNING id`,
			userID, e.Name, e.Description, e.URL, int16(e.Level), e.CreatedAt,
		).Scan(&id)
		if err != nil {
			return err
		}
		n.ID = uint64(id)
		return nil
	})
	if err != nil {
		return notify.UserNotification{}, errors.Join(notify.ErrStorageFailure, err)
	}
	return n, nil
}

func (s *Storage) List(ctx context.Context, userID string, opts notify.ListOptions) ([]notify.UserNotification, error) {
	if opts.Limit != nil && *opts.Limit <= 0 {
		return []notify.UserNotification{}, nil
	}

	query := `
		SELECT id, name, description, url, level, is_read, created_at
		FROM user_notifications
		WHERE user_id = $1`
	args := []any{userID}

	if opts.IsRead != nil {
		args = append(args, *opts.IsRead)
		query += ` AND is_read = $` + strconv.Itoa(len(args))
	}
	query += ` ORDER BY created_at ASC, id ASC`
	if opts.StartIndex > 0 {
		args = append(args, opts.StartIndex)
		query += ` OFFSET $` + strconv.Itoa(len(args))
	}
	if opts.Limit != nil {
		args = append(args, *opts.Limit)
		query += ` LIMIT $` + strconv.Itoa(len(args))
	}

	rows, err := s.pool.Query(ctx, query, args...)
	if err != nil {
		return nil, errors.Join(notify.ErrStorageFailure, err)
	}
	defer rows.Close()

	out := []notify.UserNotification{}
	for rows.Next() {
		var (
			n     notify.UserNotification
			id    int64
			level int16
		)
		if err := rows.Scan(&id, &n.Name, &n.Description, &n.URL, &level, &n.IsRead, &n.CreatedAt); err != nil {
			return nil, errors.Join(notify.ErrStorageFailure, err)
		}
		n.ID = uint64(id)
		n.UserID = userID
		n.Level = notify.Level(level)
		out = append(out, n)
	}
	if err := rows.Err(); err != nil {
		return nil, errors.Join(notify.ErrStorageFailure, err)
	}
	return out, nil
}

// SetRead updates the read state of the given record ids. The returned
// count is the number of ids that matched an existing record, so repeating
// the call reports the same count.
func (s *Storage) SetRead(ctx context.Context, userID string, ids []uint64, read bool) (int, error) {
	if len(ids) == 0 {
		return 0, nil
	}

	idArgs := make([]int64, len(ids))
	for i, id := range ids {
		idArgs[i] = int64(id)
	}

	tag, err := s.pool.Exec(ctx, `
		UPDATE user_notifications
		SET is_read = $3
		WHERE user_id = $1 AND id = ANY($2)`,
		userID, idArgs, read,
	)
	if err != nil {
		return 0, errors.Join(notify.ErrStorageFailure, err)
	}
	return int(tag.RowsAffected()), nil
}

func (s *Storage) Summary(ctx context.Context, userID string) (notify.Summary, error) {
	var (
		count    int
		maxLevel *int16
	)
	err := s.pool.QueryRow(ctx, `
		SELECT COUNT(*), MAX(level)
		FROM user_notifications
		WHERE user_id = $1 AND NOT is_read`,
		userID,
	).Scan(&count, &maxLevel)
	if err != nil {
		return notify.Summary{}, errors.Join(notify.ErrStorageFailure, fmt.Errorf("summary for user %s: %w", userID, err))
	}

	sum := notify.Summary{UnreadCount: count}
	if maxLevel != nil {
		lvl := notify.Level(*maxLevel)
		sum.MaxUnreadLevel = &lvl
	}
	return sum, nil
}
