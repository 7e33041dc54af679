// Package pg provides the PostgreSQL-backed notification storage: a pgx
// connection pool with retry, embedded goose schema migrations, and a
// notify.Storage implementation on top.
//
// Per-user id monotonicity is enforced with a per-user advisory transaction
// lock, so concurrent dispatches targeting the same user never race on the
// next id while different users insert in parallel.
//
//	pool, err := pg.Connect(ctx, cfg)
//	if err != nil { ... }
//	if err := pg.Migrate(ctx, pool, cfg, log); err != nil { ... }
//	storage := pg.NewStorage(pool)
package pg
