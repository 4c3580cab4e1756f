package dao

import (
	"encoding/hex"
	"fmt"
	"strings"

	"github.com/holiman/uint256"
)

// AccountID identifies an account on the reference token ledger and in the
// treasury. 32 bytes, rendered as hex.
type AccountID [32]byte

func (a AccountID) String() string {
	return hex.EncodeToString(a[:])
}

// ParseAccountID parses a 32-byte hex account identifier, with or without a
// leading "0x".
func ParseAccountID(s string) (AccountID, error) {
	s = strings.TrimPrefix(s, "0x")
	raw, err := hex.DecodeString(s)
	if err != nil {
		return AccountID{}, fmt.Errorf("decode account id: %w", err)
	}
	if len(raw) != len(AccountID{}) {
		return AccountID{}, fmt.Errorf("account id must be %d bytes, got %d", len(AccountID{}), len(raw))
	}
	var a AccountID
	copy(a[:], raw)
	return a, nil
}

// ProposalID is assigned sequentially starting at 0. The counter never goes
// backwards and ids are never reused.
type ProposalID uint32

// VoteKind is the direction of a single cast vote.
type VoteKind uint8

const (
	VoteAgainst VoteKind = iota
	VoteFor
)

func (v VoteKind) String() string {
	switch v {
	case VoteAgainst:
		return "against"
	case VoteFor:
		return "for"
	default:
		return fmt.Sprintf("vote(%d)", uint8(v))
	}
}

// Proposal is a request to transfer Amount from the treasury to To, open for
// voting between VoteStart and VoteEnd (unix seconds). Executed flips to true
// exactly once and never reverts.
type Proposal struct {
	To        AccountID
	Amount    *uint256.Int
	VoteStart uint64
	VoteEnd   uint64
	Executed  bool
}

// ProposalTally accumulates cast voting weight for one proposal. Each voter
// contributes their percentage share of total token supply at the moment
// they vote. Additions saturate rather than wrap.
type ProposalTally struct {
	For     uint64
	Against uint64
}

// ProposalRecord pairs a proposal with its assigned id, for enumeration.
type ProposalRecord struct {
	ID       ProposalID
	Proposal Proposal
}
