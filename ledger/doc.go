// Package ledger implements a minimal append-only ledger: a sequence of
// hash-linked, content-addressed blocks secured by proof-of-work and
// verifiable for tamper evidence.
//
// # Core Components
//
// Blockchain: An append-only sequence of blocks with cryptographic hash
// chaining. Appending mines the candidate block until its hash satisfies
// the chain's difficulty target.
//
// Block: A single ledger entry holding its position, a caller-supplied
// timestamp, an opaque payload and the hash link to its predecessor.
//
// Payload: The canonical-serialization capability application data must
// provide. Only the canonical form takes part in hashing, so equal values
// must serialize to byte-identical output across runs.
//
// # Security Properties
//
// The chain provides:
//   - Tamper evidence: any in-place mutation of a recorded block breaks
//     hash recomputation or the link to its successor
//   - Verifiability: Verify walks the entire sequence and reports the
//     first violated invariant together with its block index
//   - Costly appends: every appended block carries a proof-of-work over
//     its exact content
//
// Verify establishes internal consistency only. It does not re-check the
// proof-of-work target and Append does not enforce index continuity;
// callers hardening the ledger can layer both checks on top using
// MeetsDifficulty and their own index discipline.
//
// # Usage
//
// Create a blockchain, append blocks as application records arrive, and
// call Verify (or IsValid) at any time to ensure the history is intact.
// Mining occupies the appending goroutine until a satisfying nonce is
// found; pass a cancellable context or an attempts bound to limit it.
package ledger
