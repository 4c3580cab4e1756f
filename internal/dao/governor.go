// Package dao implements the proposal lifecycle and vote-tallying engine:
// token holders open spending proposals, cast one weighted vote each, and a
// proposal pays out of the treasury once the cast weight reaches quorum
// with a majority in favor.
package dao

import (
	"context"
	"fmt"
	"math"
	"sync"

	"github.com/holiman/uint256"
	"github.com/rs/zerolog"

	"github.com/yaymalaga/Investment-dao/internal/safemath"
	"github.com/yaymalaga/Investment-dao/pkg/log"
)

// Voting durations are given in minutes; timestamps are unix seconds.
const secondsPerMinute = 60

var hundred = uint256.NewInt(100)

// Governor runs the proposal lifecycle: Propose opens a spending proposal,
// Vote accumulates token-weighted votes on it, Execute pays it out once
// quorum is reached with a majority in favor.
//
// Calls are serialized; one operation runs to completion before the next
// begins. Each operation reads the current state, validates its
// preconditions, then commits all of its writes atomically, so an error
// return never leaves partial state behind.
type Governor struct {
	mu       sync.RWMutex
	state    State
	ledger   TokenLedger
	treasury Treasury
	clock    Clock
	quorum   uint8
	logger   zerolog.Logger
}

// New builds a Governor over the given state and collaborators. quorum is
// the minimum summed cast weight, as a percentage of total token supply,
// required before a proposal may execute. A nil clock defaults to the wall
// clock.
func New(state State, ledger TokenLedger, treasury Treasury, clock Clock, quorum uint8) (*Governor, error) {
	if quorum > 100 {
		return nil, ErrInvalidQuorum
	}
	if clock == nil {
		clock = WallClock{}
	}
	return &Governor{
		state:    state,
		ledger:   ledger,
		treasury: treasury,
		clock:    clock,
		quorum:   quorum,
		logger:   log.Governor,
	}, nil
}

// Propose opens a proposal to transfer amount to the destination account,
// with a voting window of duration minutes starting now. The treasury must
// hold strictly more than amount at proposal time. Returns the assigned id.
func (g *Governor) Propose(to AccountID, amount *uint256.Int, duration uint64) (ProposalID, error) {
	g.mu.Lock()
	defer g.mu.Unlock()

	if amount == nil || amount.IsZero() {
		return 0, ErrAmountShouldNotBeZero
	}
	balance, err := g.treasury.Balance()
	if err != nil {
		return 0, fmt.Errorf("query treasury balance: %w", err)
	}
	if amount.Cmp(balance) >= 0 {
		return 0, ErrInsufficientBalance
	}
	if duration == 0 {
		return 0, ErrDuration
	}

	now := g.clock.Now()
	window, ok := safemath.Mul64(duration, secondsPerMinute)
	if !ok {
		return 0, ErrDuration
	}
	voteEnd, ok := safemath.Add64(now, window)
	if !ok {
		return 0, ErrDuration
	}

	proposal := Proposal{
		To:        to,
		Amount:    new(uint256.Int).Set(amount),
		VoteStart: now,
		VoteEnd:   voteEnd,
		Executed:  false,
	}
	id, err := g.state.AppendProposal(proposal)
	if err != nil {
		return 0, fmt.Errorf("append proposal: %w", err)
	}

	g.logger.Info().
		Uint32("id", uint32(id)).
		Str("to", to.String()).
		Str("amount", amount.Dec()).
		Uint64("vote_end", voteEnd).
		Msg("proposal created")
	return id, nil
}

// Vote casts voter's one vote on a proposal. The voter's weight is their
// token balance's percentage share of total supply, read from the ledger at
// this moment; it is not snapshotted at proposal creation, so balance
// changes between votes change influence.
func (g *Governor) Vote(ctx context.Context, voter AccountID, id ProposalID, kind VoteKind) error {
	g.mu.Lock()
	defer g.mu.Unlock()

	if kind != VoteFor && kind != VoteAgainst {
		return ErrInvalidVoteKind
	}

	proposal, ok, err := g.state.Proposal(id)
	if err != nil {
		return fmt.Errorf("get proposal: %w", err)
	}
	if !ok {
		return ErrProposalNotFound
	}
	if proposal.Executed {
		return ErrProposalAlreadyExecuted
	}
	if g.clock.Now() > proposal.VoteEnd {
		return ErrVotePeriodEnded
	}
	voted, err := g.state.HasVoted(id, voter)
	if err != nil {
		return fmt.Errorf("check vote ledger: %w", err)
	}
	if voted {
		return ErrAlreadyVoted
	}

	weight, err := g.voterWeight(ctx, voter)
	if err != nil {
		return err
	}

	tally, err := g.state.Tally(id)
	if err != nil {
		return fmt.Errorf("get tally: %w", err)
	}
	switch kind {
	case VoteFor:
		tally.For = safemath.SaturatingAdd64(tally.For, weight)
	case VoteAgainst:
		tally.Against = safemath.SaturatingAdd64(tally.Against, weight)
	}

	if err := g.state.RecordVote(id, voter, tally); err != nil {
		return fmt.Errorf("record vote: %w", err)
	}

	g.logger.Info().
		Uint32("id", uint32(id)).
		Str("voter", voter.String()).
		Stringer("vote", kind).
		Uint64("weight", weight).
		Msg("vote cast")
	return nil
}

// Execute pays out an accepted proposal. It requires quorum and a for
// majority (a tie counts as accepted) and a treasury balance strictly above
// the proposal amount, but deliberately not a closed voting window: a
// proposal may execute the moment its conditions hold. Funds move exactly
// once; afterwards the proposal is permanently executed.
func (g *Governor) Execute(id ProposalID) error {
	g.mu.Lock()
	defer g.mu.Unlock()

	proposal, ok, err := g.state.Proposal(id)
	if err != nil {
		return fmt.Errorf("get proposal: %w", err)
	}
	if !ok {
		return ErrProposalNotFound
	}
	if proposal.Executed {
		return ErrProposalAlreadyExecuted
	}

	tally, err := g.state.Tally(id)
	if err != nil {
		return fmt.Errorf("get tally: %w", err)
	}
	if safemath.SaturatingAdd64(tally.For, tally.Against) < uint64(g.quorum) {
		return ErrQuorumNotReached
	}
	if tally.For < tally.Against {
		return ErrProposalNotAccepted
	}

	balance, err := g.treasury.Balance()
	if err != nil {
		return fmt.Errorf("query treasury balance: %w", err)
	}
	if balance.Cmp(proposal.Amount) <= 0 {
		return ErrInsufficientBalance
	}

	// The executed flag flips only after the transfer primitive reports
	// success; a failed transfer leaves the proposal open.
	if err := g.treasury.Transfer(proposal.To, proposal.Amount); err != nil {
		return fmt.Errorf("transfer funds: %w", err)
	}

	proposal.Executed = true
	if err := g.state.PutProposal(id, proposal); err != nil {
		return fmt.Errorf("mark executed: %w", err)
	}

	g.logger.Info().
		Uint32("id", uint32(id)).
		Str("to", proposal.To.String()).
		Str("amount", proposal.Amount.Dec()).
		Uint64("for", tally.For).
		Uint64("against", tally.Against).
		Msg("proposal executed")
	return nil
}

// voterWeight computes floor(balance * 100 / supply). Results beyond the
// accumulator range saturate; they can only arise from a ledger whose
// balances exceed its reported supply.
func (g *Governor) voterWeight(ctx context.Context, voter AccountID) (uint64, error) {
	supply, err := g.ledger.TotalSupply(ctx)
	if err != nil {
		return 0, fmt.Errorf("query total supply: %w", err)
	}
	if supply == nil || supply.IsZero() {
		return 0, ErrZeroTotalSupply
	}
	balance, err := g.ledger.BalanceOf(ctx, voter)
	if err != nil {
		return 0, fmt.Errorf("query balance of %s: %w", voter, err)
	}
	share, overflow := new(uint256.Int).MulDivOverflow(balance, hundred, supply)
	if overflow || !share.IsUint64() {
		return math.MaxUint64, nil
	}
	return share.Uint64(), nil
}

// GetProposal returns the proposal stored under id.
func (g *Governor) GetProposal(id ProposalID) (Proposal, error) {
	g.mu.RLock()
	defer g.mu.RUnlock()

	proposal, ok, err := g.state.Proposal(id)
	if err != nil {
		return Proposal{}, fmt.Errorf("get proposal: %w", err)
	}
	if !ok {
		return Proposal{}, ErrProposalNotFound
	}
	return proposal, nil
}

// Tally returns the aggregated vote weights for an existing proposal; a
// proposal nobody has voted on has a zero tally.
func (g *Governor) Tally(id ProposalID) (ProposalTally, error) {
	g.mu.RLock()
	defer g.mu.RUnlock()

	_, ok, err := g.state.Proposal(id)
	if err != nil {
		return ProposalTally{}, fmt.Errorf("get proposal: %w", err)
	}
	if !ok {
		return ProposalTally{}, ErrProposalNotFound
	}
	tally, err := g.state.Tally(id)
	if err != nil {
		return ProposalTally{}, fmt.Errorf("get tally: %w", err)
	}
	return tally, nil
}

// Proposals returns all proposals in id order.
func (g *Governor) Proposals() ([]ProposalRecord, error) {
	g.mu.RLock()
	defer g.mu.RUnlock()
	return g.state.Proposals()
}

// NextProposalID returns the id the next successful Propose will assign.
func (g *Governor) NextProposalID() (ProposalID, error) {
	g.mu.RLock()
	defer g.mu.RUnlock()
	return g.state.NextProposalID()
}

// Now returns the governor's current time in unix seconds.
func (g *Governor) Now() uint64 {
	return g.clock.Now()
}

// Quorum returns the configured quorum percentage.
func (g *Governor) Quorum() uint8 {
	return g.quorum
}

// TotalSupply delegates to the token ledger.
func (g *Governor) TotalSupply(ctx context.Context) (*uint256.Int, error) {
	return g.ledger.TotalSupply(ctx)
}

// BalanceOf delegates to the token ledger.
func (g *Governor) BalanceOf(ctx context.Context, account AccountID) (*uint256.Int, error) {
	return g.ledger.BalanceOf(ctx, account)
}
