package ledger

import "encoding/json"

// Payload is the application data recorded in a block. The ledger never
// inspects payloads: only the canonical serialization takes part in
// hashing, so implementations must be deterministic and equal values must
// produce byte-identical output on every call.
//
// Struct types marshaled with encoding/json satisfy this naturally, since
// field order is fixed by the type and map keys are sorted.
type Payload interface {
	// CanonicalJSON returns the stable JSON form of the payload used for
	// hashing and display.
	CanonicalJSON() ([]byte, error)
}

// Note is a free-form string payload. The genesis block carries one.
type Note string

// CanonicalJSON returns the JSON string encoding of the note.
func (n Note) CanonicalJSON() ([]byte, error) {
	return json.Marshal(string(n))
}
