package ledger

import (
	"context"
	"encoding/json"
	"fmt"
	"sync"
)

// DefaultDifficulty is the proof-of-work target a new chain starts with.
const DefaultDifficulty = 2

// Genesis block fields. The genesis block is hashed once at construction
// and never mined, so it is exempt from the difficulty target.
const (
	genesisTimestamp      = "01/01/2017"
	genesisNote      Note = "genesis"
)

// Blockchain owns an append-only sequence of hash-linked blocks together
// with the chain-wide difficulty, fixed for its lifetime. Appends are
// serialized; reads stay available while a candidate block is being mined.
type Blockchain struct {
	appendMu sync.Mutex // serializes Append end to end: read head, mine, push

	mu     sync.RWMutex
	blocks []Block // blocks[0] is always the genesis block

	difficulty int
}

// Option tunes a new chain.
type Option func(chainConfig) chainConfig

type chainConfig struct {
	difficulty int
}

// WithDifficulty sets how many leading zero hex characters mined hashes
// must carry. The default is DefaultDifficulty.
func WithDifficulty(d int) Option {
	return func(cfg chainConfig) chainConfig {
		cfg.difficulty = d
		return cfg
	}
}

// NewBlockchain creates a chain holding only the genesis block. The
// difficulty is validated here so that a misconfigured chain fails at
// construction instead of hanging its first append.
func NewBlockchain(opts ...Option) (*Blockchain, error) {
	cfg := chainConfig{difficulty: DefaultDifficulty}
	for _, opt := range opts {
		cfg = opt(cfg)
	}
	if err := checkDifficulty(cfg.difficulty); err != nil {
		return nil, err
	}

	genesis, err := NewBlock(0, genesisTimestamp, genesisNote)
	if err != nil {
		return nil, fmt.Errorf("building genesis block: %w", err)
	}

	return &Blockchain{
		blocks:     []Block{*genesis},
		difficulty: cfg.difficulty,
	}, nil
}

// Latest returns the last block in the sequence. A chain built by
// NewBlockchain is never empty, so there is no error path.
func (bc *Blockchain) Latest() Block {
	bc.mu.RLock()
	defer bc.mu.RUnlock()
	return bc.blocks[len(bc.blocks)-1]
}

// Append links candidate to the current chain head, mines it until its
// hash satisfies the chain's difficulty and then stores a copy. The call
// blocks until the search succeeds, ctx is cancelled, or an attempts
// bound passed through opts is spent; on error the chain is unchanged.
//
// Concurrent appends are serialized, each candidate mining against the
// head its own turn observed. Readers are not blocked while mining runs.
// Append stores any block once mined: it does not validate index
// continuity or uniqueness, which remain the caller's concern.
func (bc *Blockchain) Append(ctx context.Context, candidate *Block, opts ...MineOption) (MineResult, error) {
	bc.appendMu.Lock()
	defer bc.appendMu.Unlock()

	candidate.PrevHash = bc.Latest().Hash

	res, err := candidate.Mine(ctx, bc.difficulty, opts...)
	if err != nil {
		return MineResult{}, err
	}

	bc.mu.Lock()
	bc.blocks = append(bc.blocks, *candidate)
	bc.mu.Unlock()

	return res, nil
}

// Reason identifies which chain invariant a block violated.
type Reason string

const (
	// ReasonHashMismatch means the block's recorded hash does not match
	// a recomputation over its current fields: the content was altered
	// after the hash was set.
	ReasonHashMismatch Reason = "hash mismatch"

	// ReasonLinkMismatch means the block's previous-hash field does not
	// match its predecessor's recorded hash: the link was rewritten or
	// the sequence reordered.
	ReasonLinkMismatch Reason = "link mismatch"
)

// ValidationError pinpoints the first integrity violation found in a
// chain: which block broke which invariant.
type ValidationError struct {
	Index  int
	Reason Reason
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("block %d invalid: %s", e.Index, e.Reason)
}

// Verify checks, for every block after the genesis, that the recorded
// hash matches a recomputation over the block's current fields and that
// the previous-hash field matches the predecessor's recorded hash. It
// returns nil for an intact chain or a *ValidationError identifying the
// first offending block.
//
// The genesis block anchors the chain and is not checked itself. Verify
// establishes internal consistency only: it does not re-check the
// proof-of-work target, so a chain fully re-mined after tampering still
// verifies. Layer MeetsDifficulty on top where that matters.
func (bc *Blockchain) Verify() error {
	bc.mu.RLock()
	defer bc.mu.RUnlock()

	for i := 1; i < len(bc.blocks); i++ {
		current := &bc.blocks[i]
		previous := &bc.blocks[i-1]

		recomputed, err := current.ComputeHash()
		if err != nil || current.Hash != recomputed {
			// A payload that no longer serializes cannot be checked
			// against its hash; treat it as altered content.
			return &ValidationError{Index: i, Reason: ReasonHashMismatch}
		}
		if current.PrevHash != previous.Hash {
			return &ValidationError{Index: i, Reason: ReasonLinkMismatch}
		}
	}
	return nil
}

// IsValid reports whether the entire chain verifies clean.
func (bc *Blockchain) IsValid() bool {
	return bc.Verify() == nil
}

// Difficulty returns the chain's proof-of-work target.
func (bc *Blockchain) Difficulty() int {
	return bc.difficulty
}

// Len returns the number of blocks in the chain, genesis included.
func (bc *Blockchain) Len() int {
	bc.mu.RLock()
	defer bc.mu.RUnlock()
	return len(bc.blocks)
}

// GetByIndex returns a pointer to the block at position index in the
// sequence. The pointer aliases the chain's own storage, so mutating the
// block through it is in-place tampering, visible to Verify. It stays
// valid only until the next append, which may relocate the stored blocks
// and leave the handle pointing at an abandoned copy. Returns an error
// if index is out of range.
func (bc *Blockchain) GetByIndex(index int) (*Block, error) {
	bc.mu.RLock()
	defer bc.mu.RUnlock()

	if index < 0 || index >= len(bc.blocks) {
		return nil, fmt.Errorf("index %d out of range [0, %d)", index, len(bc.blocks))
	}

	return &bc.blocks[index], nil
}

// Blocks returns a copy of the block sequence for iteration and display.
func (bc *Blockchain) Blocks() []Block {
	bc.mu.RLock()
	defer bc.mu.RUnlock()

	out := make([]Block, len(bc.blocks))
	copy(out, bc.blocks)
	return out
}

// Dump renders the chain as an indented JSON document carrying the
// difficulty and the full block sequence. Indentation reflows the
// payload bytes, so the output is meant for inspection, not for
// loading back in or re-hashing.
func (bc *Blockchain) Dump() ([]byte, error) {
	bc.mu.RLock()
	defer bc.mu.RUnlock()

	return json.MarshalIndent(struct {
		Difficulty int     `json:"difficulty"`
		Chain      []Block `json:"chain"`
	}{bc.difficulty, bc.blocks}, "", "  ")
}
