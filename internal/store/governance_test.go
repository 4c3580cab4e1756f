package store

import (
	"testing"

	"github.com/holiman/uint256"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/yaymalaga/Investment-dao/internal/dao"
	"github.com/yaymalaga/Investment-dao/pkg/db/pebble"
)

func newTestGovernance(t *testing.T) *Governance {
	t.Helper()
	kv, err := pebble.NewMemKVStore()
	require.NoError(t, err)
	t.Cleanup(func() {
		require.NoError(t, kv.Close())
	})
	return NewGovernance(kv)
}

func testAccount(b byte) dao.AccountID {
	var a dao.AccountID
	for i := range a {
		a[i] = b
	}
	return a
}

func testProposal(amount uint64) dao.Proposal {
	return dao.Proposal{
		To:        testAccount(0x02),
		Amount:    uint256.NewInt(amount),
		VoteStart: 1000,
		VoteEnd:   1060,
	}
}

func TestNextProposalIDEmpty(t *testing.T) {
	gov := newTestGovernance(t)

	id, err := gov.NextProposalID()
	require.NoError(t, err)
	assert.Equal(t, dao.ProposalID(0), id)
}

func TestAppendProposal(t *testing.T) {
	gov := newTestGovernance(t)

	id, err := gov.AppendProposal(testProposal(100))
	require.NoError(t, err)
	assert.Equal(t, dao.ProposalID(0), id)

	id, err = gov.AppendProposal(testProposal(200))
	require.NoError(t, err)
	assert.Equal(t, dao.ProposalID(1), id)

	next, err := gov.NextProposalID()
	require.NoError(t, err)
	assert.Equal(t, dao.ProposalID(2), next)
}

func TestProposalRoundTrip(t *testing.T) {
	gov := newTestGovernance(t)

	want := dao.Proposal{
		To:        testAccount(0x07),
		Amount:    uint256.MustFromDecimal("340282366920938463463374607431768211456"), // 2^128
		VoteStart: 123456789,
		VoteEnd:   123456789 + 120,
		Executed:  false,
	}
	id, err := gov.AppendProposal(want)
	require.NoError(t, err)

	got, ok, err := gov.Proposal(id)
	require.NoError(t, err)
	require.True(t, ok)
	assert.Equal(t, want, got)

	// Absent ids report ok=false without error.
	_, ok, err = gov.Proposal(42)
	require.NoError(t, err)
	assert.False(t, ok)
}

func TestPutProposalOverwrites(t *testing.T) {
	gov := newTestGovernance(t)

	p := testProposal(100)
	id, err := gov.AppendProposal(p)
	require.NoError(t, err)

	p.Executed = true
	require.NoError(t, gov.PutProposal(id, p))

	got, ok, err := gov.Proposal(id)
	require.NoError(t, err)
	require.True(t, ok)
	assert.True(t, got.Executed)
}

func TestTallyDefaultsToZero(t *testing.T) {
	gov := newTestGovernance(t)

	tally, err := gov.Tally(0)
	require.NoError(t, err)
	assert.Equal(t, dao.ProposalTally{}, tally)
}

func TestRecordVote(t *testing.T) {
	gov := newTestGovernance(t)
	voter := testAccount(0x03)

	voted, err := gov.HasVoted(0, voter)
	require.NoError(t, err)
	assert.False(t, voted)

	want := dao.ProposalTally{For: 60, Against: 25}
	require.NoError(t, gov.RecordVote(0, voter, want))

	voted, err = gov.HasVoted(0, voter)
	require.NoError(t, err)
	assert.True(t, voted)

	tally, err := gov.Tally(0)
	require.NoError(t, err)
	assert.Equal(t, want, tally)

	// Vote ledger entries are scoped per proposal.
	voted, err = gov.HasVoted(1, voter)
	require.NoError(t, err)
	assert.False(t, voted)
}

func TestProposalsOrdered(t *testing.T) {
	gov := newTestGovernance(t)

	amounts := []uint64{100, 200, 300}
	for _, amount := range amounts {
		_, err := gov.AppendProposal(testProposal(amount))
		require.NoError(t, err)
	}

	records, err := gov.Proposals()
	require.NoError(t, err)
	require.Len(t, records, len(amounts))
	for i, record := range records {
		assert.Equal(t, dao.ProposalID(i), record.ID)
		assert.Equal(t, uint256.NewInt(amounts[i]), record.Proposal.Amount)
	}
}
