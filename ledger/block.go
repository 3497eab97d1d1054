package ledger

import (
	"encoding/json"
	"fmt"
)

// genesisPrevHash is the sentinel predecessor hash carried by blocks that
// have no predecessor: the genesis block, and candidates not yet appended
// to a chain.
const genesisPrevHash = "0"

// Block is a single entry of the ledger. Index, Timestamp and Data are
// fixed at construction, PrevHash is stamped by the chain at append time,
// and Nonce and Hash change only while mining. Once appended a block must
// be treated as immutable; any later mutation is exactly what chain
// verification detects.
type Block struct {
	Index     int
	Timestamp string
	Data      Payload
	PrevHash  string
	Hash      string
	Nonce     uint64
}

// NewBlock builds a block with nonce zero and the sentinel previous hash,
// and computes its content hash immediately. Index and timestamp are
// accepted as opaque values; the only failure mode is a payload that is
// missing or does not serialize.
func NewBlock(index int, timestamp string, data Payload) (*Block, error) {
	b := &Block{
		Index:     index,
		Timestamp: timestamp,
		Data:      data,
		PrevHash:  genesisPrevHash,
	}
	hash, err := b.ComputeHash()
	if err != nil {
		return nil, fmt.Errorf("hashing new block %d: %w", index, err)
	}
	b.Hash = hash
	return b, nil
}

// payloadJSON returns the block's payload in canonical form, guarding
// against a block built without one.
func (b *Block) payloadJSON() ([]byte, error) {
	if b.Data == nil {
		return nil, fmt.Errorf("block %d carries no payload", b.Index)
	}
	payload, err := b.Data.CanonicalJSON()
	if err != nil {
		return nil, fmt.Errorf("serializing payload of block %d: %w", b.Index, err)
	}
	return payload, nil
}

// ComputeHash returns the hex-encoded SHA-256 digest over the block's
// index, previous hash, timestamp, canonical payload form and nonce, in
// that order. It is a pure function of those fields, which is the
// contract both mining and verification rely on.
func (b *Block) ComputeHash() (string, error) {
	payload, err := b.payloadJSON()
	if err != nil {
		return "", err
	}
	material := fmt.Sprintf("%d%s%s%s%d", b.Index, b.PrevHash, b.Timestamp, payload, b.Nonce)
	return sha256Hex([]byte(material)), nil
}

// MarshalJSON renders the block with its payload in canonical form, the
// exact bytes that took part in hashing.
func (b Block) MarshalJSON() ([]byte, error) {
	payload, err := b.payloadJSON()
	if err != nil {
		return nil, err
	}
	return json.Marshal(struct {
		Index     int             `json:"index"`
		Timestamp string          `json:"timestamp"`
		Data      json.RawMessage `json:"data"`
		PrevHash  string          `json:"previous_hash"`
		Hash      string          `json:"hash"`
		Nonce     uint64          `json:"nonce"`
	}{b.Index, b.Timestamp, payload, b.PrevHash, b.Hash, b.Nonce})
}
