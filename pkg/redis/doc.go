// Package redis provides the Redis-backed notification storage: a client
// connection helper with retry plus a notify.Storage implementation.
//
// Each user's records live in a hash keyed by record id with a companion
// INCR counter for monotonic id assignment. Read-state updates run as a Lua
// script so they are atomic per user, and list/summary reads take a single
// HGETALL snapshot.
package redis
