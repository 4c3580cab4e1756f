package dao

import "errors"

var (
	// ErrAmountShouldNotBeZero is returned by Propose when the requested
	// transfer amount is zero.
	ErrAmountShouldNotBeZero = errors.New("proposal amount should not be zero")

	// ErrDuration is returned by Propose when the voting duration is zero
	// or does not fit the representable time range.
	ErrDuration = errors.New("invalid voting duration")

	// ErrProposalNotFound is returned when the proposal id was never
	// assigned.
	ErrProposalNotFound = errors.New("proposal not found")

	// ErrProposalAlreadyExecuted is returned by Vote and Execute once a
	// proposal's funds have moved.
	ErrProposalAlreadyExecuted = errors.New("proposal already executed")

	// ErrVotePeriodEnded is returned by Vote after the proposal's voting
	// window has closed.
	ErrVotePeriodEnded = errors.New("vote period ended")

	// ErrAlreadyVoted is returned by Vote when the caller has already cast
	// a vote on this proposal.
	ErrAlreadyVoted = errors.New("already voted")

	// ErrQuorumNotReached is returned by Execute while the summed cast
	// weight is below the configured quorum.
	ErrQuorumNotReached = errors.New("quorum not reached")

	// ErrProposalNotAccepted is returned by Execute when the against
	// weight strictly exceeds the for weight.
	ErrProposalNotAccepted = errors.New("proposal not accepted")

	// ErrInsufficientBalance is returned by Propose and Execute when the
	// treasury cannot cover the proposal amount.
	ErrInsufficientBalance = errors.New("insufficient balance")

	// ErrZeroTotalSupply is returned by Vote when the token ledger reports
	// a total supply of zero, which would make the weight computation a
	// division by zero.
	ErrZeroTotalSupply = errors.New("token ledger reports zero total supply")

	// ErrInvalidVoteKind is returned by Vote for a vote direction outside
	// the known set.
	ErrInvalidVoteKind = errors.New("invalid vote kind")

	// ErrInvalidQuorum is returned by New for a quorum above 100 percent.
	ErrInvalidQuorum = errors.New("quorum must be between 0 and 100")
)
