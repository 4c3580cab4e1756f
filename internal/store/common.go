package store

import "encoding/binary"

// Prefix constants for the governance store. Proposal ids are encoded
// big-endian so iteration over the proposal prefix follows id order.
const (
	prefixProposal byte = iota + 1
	prefixTally
	prefixVote
	prefixNextID
)

// makeIDKey creates a key for per-proposal records.
// The key format is: [prefix(1 byte)][proposal id(4 bytes, big-endian)]
func makeIDKey(prefix byte, id uint32) []byte {
	key := make([]byte, 5)
	key[0] = prefix
	binary.BigEndian.PutUint32(key[1:], id)
	return key
}

// makeVoteKey creates a key for the vote ledger.
// The key format is: [prefix(1 byte)][proposal id(4 bytes)][voter(32 bytes)]
func makeVoteKey(id uint32, voter [32]byte) []byte {
	key := make([]byte, 5+len(voter))
	key[0] = prefixVote
	binary.BigEndian.PutUint32(key[1:], id)
	copy(key[5:], voter[:])
	return key
}
