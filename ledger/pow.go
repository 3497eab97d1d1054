package ledger

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"
)

// Mining stops early in two ways, distinguished by sentinel errors so
// callers can branch on the outcome.
var (
	// ErrMineCancelled reports that the context was cancelled before a
	// satisfying nonce was found.
	ErrMineCancelled = errors.New("mining cancelled")

	// ErrMineExhausted reports that the configured attempts bound was
	// spent before a satisfying nonce was found.
	ErrMineExhausted = errors.New("mining attempts exhausted")
)

// MineResult describes a completed nonce search.
type MineResult struct {
	Nonce    uint64        // the satisfying nonce
	Hash     string        // the hash it produces
	Attempts uint64        // nonce increments performed
	Elapsed  time.Duration // wall clock time spent searching
}

// MineOption tunes a single nonce search.
type MineOption func(mineConfig) mineConfig

type mineConfig struct {
	maxAttempts uint64
}

// WithMaxAttempts bounds the search to n nonce increments. Zero, the
// default, means unbounded.
func WithMaxAttempts(n uint64) MineOption {
	return func(cfg mineConfig) mineConfig {
		cfg.maxAttempts = n
		return cfg
	}
}

// Mine searches for a nonce that gives the block a hash with at least
// difficulty leading zero hex characters. The block's hash is refreshed
// before the search, then nonce and hash advance in place on every
// attempt. When Mine returns a nil error the block satisfies the target
// and its hash matches a recomputation over its fields.
//
// Expected work grows with 16^difficulty and the search occupies the
// calling goroutine throughout. Cancel ctx or pass WithMaxAttempts to
// bound it: on cancellation the returned error wraps ErrMineCancelled,
// on a spent bound it wraps ErrMineExhausted, and in both cases the
// block is left hashed consistently at the last attempted nonce.
func (b *Block) Mine(ctx context.Context, difficulty int, opts ...MineOption) (MineResult, error) {
	if err := checkDifficulty(difficulty); err != nil {
		return MineResult{}, err
	}
	var cfg mineConfig
	for _, opt := range opts {
		cfg = opt(cfg)
	}

	// Never trust the stored hash: a stale value could satisfy the
	// prefix check without matching the block's content.
	hash, err := b.ComputeHash()
	if err != nil {
		return MineResult{}, err
	}
	b.Hash = hash

	target := strings.Repeat("0", difficulty)
	start := time.Now()
	var attempts uint64

	for !strings.HasPrefix(b.Hash, target) {
		select {
		case <-ctx.Done():
			return MineResult{}, fmt.Errorf("%w for block %d after %d attempts: %v", ErrMineCancelled, b.Index, attempts, ctx.Err())
		default:
		}
		if cfg.maxAttempts > 0 && attempts >= cfg.maxAttempts {
			return MineResult{}, fmt.Errorf("%w for block %d: %d attempts at difficulty %d", ErrMineExhausted, b.Index, attempts, difficulty)
		}

		b.Nonce++
		hash, err := b.ComputeHash()
		if err != nil {
			return MineResult{}, err
		}
		b.Hash = hash
		attempts++
	}

	return MineResult{
		Nonce:    b.Nonce,
		Hash:     b.Hash,
		Attempts: attempts,
		Elapsed:  time.Since(start),
	}, nil
}
