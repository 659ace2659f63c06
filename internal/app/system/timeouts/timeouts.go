// Package timeouts holds the timeout values handlers use when deriving
// contexts for database work.
//
// Values start at sensible defaults and can be overridden once at startup
// via Configure. Pick the smallest bucket that fits the operation:
//
//   - Ping: connectivity checks
//   - Short: single-document reads
//   - Medium: list queries and simple writes
//   - Long: multi-collection writes and cascading deletes
//   - Backup: full-database dump and restore
package timeouts

import (
	"sync"
	"time"
)

const (
	DefaultPing   = 2 * time.Second
	DefaultShort  = 5 * time.Second
	DefaultMedium = 10 * time.Second
	DefaultLong   = 30 * time.Second
	DefaultBackup = 2 * time.Minute
)

var mu sync.RWMutex

var (
	ping   = DefaultPing
	short  = DefaultShort
	medium = DefaultMedium
	long   = DefaultLong
	backup = DefaultBackup
)

// Ping returns the timeout for connectivity checks.
func Ping() time.Duration {
	mu.RLock()
	defer mu.RUnlock()
	return ping
}

// Short returns the timeout for single-document reads, such as token
// lookups and get-by-id queries.
func Short() time.Duration {
	mu.RLock()
	defer mu.RUnlock()
	return short
}

// Medium returns the timeout for list queries and simple writes.
func Medium() time.Duration {
	mu.RLock()
	defer mu.RUnlock()
	return medium
}

// Long returns the timeout for writes that touch several collections,
// such as realm deletion with its cascades.
func Long() time.Duration {
	mu.RLock()
	defer mu.RUnlock()
	return long
}

// Backup returns the timeout for full-database dump and restore.
func Backup() time.Duration {
	mu.RLock()
	defer mu.RUnlock()
	return backup
}

// Config holds timeout overrides. Zero values keep the current setting.
type Config struct {
	Ping   time.Duration
	Short  time.Duration
	Medium time.Duration
	Long   time.Duration
	Backup time.Duration
}

// Configure applies overrides. Call once during startup, before handlers
// begin serving.
func Configure(cfg Config) {
	mu.Lock()
	defer mu.Unlock()
	if cfg.Ping > 0 {
		ping = cfg.Ping
	}
	if cfg.Short > 0 {
		short = cfg.Short
	}
	if cfg.Medium > 0 {
		medium = cfg.Medium
	}
	if cfg.Long > 0 {
		long = cfg.Long
	}
	if cfg.Backup > 0 {
		backup = cfg.Backup
	}
}

// Reset restores the defaults. Intended for tests.
func Reset() {
	mu.Lock()
	defer mu.Unlock()
	ping = DefaultPing
	short = DefaultShort
	medium = DefaultMedium
	long = DefaultLong
	backup = DefaultBackup
}
