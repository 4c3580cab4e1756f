package dao

import (
	"context"
	"time"

	"github.com/holiman/uint256"
)

// TokenLedger is the reference fungible-token ledger the governor consults
// to weigh votes. It is a trusted read-only oracle; both queries are
// synchronous blocking sub-calls.
type TokenLedger interface {
	TotalSupply(ctx context.Context) (*uint256.Int, error)
	BalanceOf(ctx context.Context, account AccountID) (*uint256.Int, error)
}

// Treasury holds the funds proposals spend from. Transfer is the atomic
// value-transfer primitive: it either moves the full amount or fails
// without effect.
type Treasury interface {
	Balance() (*uint256.Int, error)
	Transfer(to AccountID, amount *uint256.Int) error
}

// Clock supplies the single "now" each operation is evaluated against.
type Clock interface {
	Now() uint64
}

// WallClock is the production Clock, in unix seconds.
type WallClock struct{}

func (WallClock) Now() uint64 {
	return uint64(time.Now().Unix())
}

// State is the durable governance state: proposals, vote tallies, the vote
// ledger and the proposal-id counter. Each mutator commits all of its
// writes atomically; a returned error means nothing was written.
type State interface {
	// NextProposalID returns the next unassigned proposal id.
	NextProposalID() (ProposalID, error)
	// Proposal returns the proposal stored under id; ok is false when the
	// id was never assigned.
	Proposal(id ProposalID) (p Proposal, ok bool, err error)
	// Proposals returns all stored proposals in id order.
	Proposals() ([]ProposalRecord, error)
	// Tally returns the aggregated vote weights for id. A proposal nobody
	// has voted on yet has a zero tally.
	Tally(id ProposalID) (ProposalTally, error)
	// HasVoted reports whether voter already cast a vote on id.
	HasVoted(id ProposalID, voter AccountID) (bool, error)

	// AppendProposal stores p under the next unassigned id and advances
	// the counter, in one commit. Returns the assigned id.
	AppendProposal(p Proposal) (ProposalID, error)
	// RecordVote marks (id, voter) as voted and replaces the proposal's
	// tally, in one commit.
	RecordVote(id ProposalID, voter AccountID, tally ProposalTally) error
	// PutProposal overwrites the proposal stored under id.
	PutProposal(id ProposalID, p Proposal) error
}
