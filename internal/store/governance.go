package store

import (
	"encoding/binary"
	"fmt"
	"log"

	"github.com/yaymalaga/Investment-dao/internal/dao"
	"github.com/yaymalaga/Investment-dao/pkg/db"
)

// Governance keeps the proposal store, the vote tallies, the vote ledger
// and the proposal-id counter in one KVStore. Multi-record mutations go
// through a batch so each operation commits all of its writes or none.
type Governance struct {
	db.KVStore
}

// NewGovernance creates a governance state store using KVStore
func NewGovernance(kv db.KVStore) *Governance {
	return &Governance{KVStore: kv}
}

var _ dao.State = (*Governance)(nil)

// NextProposalID returns the next unassigned proposal id, starting at 0 for
// an empty store.
func (g *Governance) NextProposalID() (dao.ProposalID, error) {
	key := []byte{prefixNextID}
	ok, err := g.Has(key)
	if err != nil {
		return 0, fmt.Errorf("check counter: %w", err)
	}
	if !ok {
		return 0, nil
	}
	raw, err := g.Get(key)
	if err != nil {
		return 0, fmt.Errorf("get counter: %w", err)
	}
	return decodeCounter(raw)
}

// Proposal retrieves the proposal stored under id; ok is false when absent.
func (g *Governance) Proposal(id dao.ProposalID) (dao.Proposal, bool, error) {
	key := makeIDKey(prefixProposal, uint32(id))
	ok, err := g.Has(key)
	if err != nil {
		return dao.Proposal{}, false, fmt.Errorf("check proposal: %w", err)
	}
	if !ok {
		return dao.Proposal{}, false, nil
	}
	raw, err := g.Get(key)
	if err != nil {
		return dao.Proposal{}, false, fmt.Errorf("get proposal: %w", err)
	}
	p, err := decodeProposal(raw)
	if err != nil {
		return dao.Proposal{}, false, fmt.Errorf("decode proposal: %w", err)
	}
	return p, true, nil
}

// Proposals returns all stored proposals in id order.
func (g *Governance) Proposals() ([]dao.ProposalRecord, error) {
	start := []byte{prefixProposal}
	end := []byte{prefixProposal + 1}

	iter, err := g.NewIterator(start, end)
	if err != nil {
		return nil, fmt.Errorf("create iterator: %w", err)
	}
	defer func() {
		if err := iter.Close(); err != nil {
			log.Printf("error closing iterator: %v", err)
		}
	}()

	var records []dao.ProposalRecord
	for iter.Next() {
		if !iter.Valid() {
			break
		}
		value, err := iter.Value()
		if err != nil {
			return nil, fmt.Errorf("get iterator value: %w", err)
		}
		p, err := decodeProposal(value)
		if err != nil {
			return nil, fmt.Errorf("decode proposal: %w", err)
		}
		key := iter.Key()
		records = append(records, dao.ProposalRecord{
			ID:       dao.ProposalID(binary.BigEndian.Uint32(key[1:])),
			Proposal: p,
		})
	}
	return records, nil
}

// Tally retrieves the vote tally for id. Tallies are lazily created on the
// first vote, so an absent record decodes as the zero tally.
func (g *Governance) Tally(id dao.ProposalID) (dao.ProposalTally, error) {
	key := makeIDKey(prefixTally, uint32(id))
	ok, err := g.Has(key)
	if err != nil {
		return dao.ProposalTally{}, fmt.Errorf("check tally: %w", err)
	}
	if !ok {
		return dao.ProposalTally{}, nil
	}
	raw, err := g.Get(key)
	if err != nil {
		return dao.ProposalTally{}, fmt.Errorf("get tally: %w", err)
	}
	return decodeTally(raw)
}

// HasVoted reports whether (id, voter) is already in the vote ledger.
func (g *Governance) HasVoted(id dao.ProposalID, voter dao.AccountID) (bool, error) {
	ok, err := g.Has(makeVoteKey(uint32(id), voter))
	if err != nil {
		return false, fmt.Errorf("check vote ledger: %w", err)
	}
	return ok, nil
}

// AppendProposal stores p under the current counter value and advances the
// counter, atomically. Returns the assigned id.
func (g *Governance) AppendProposal(p dao.Proposal) (dao.ProposalID, error) {
	id, err := g.NextProposalID()
	if err != nil {
		return 0, err
	}

	batch := g.NewBatch()
	defer func() {
		if err := batch.Close(); err != nil {
			log.Printf("error closing batch: %v", err)
		}
	}()

	if err := batch.Put(makeIDKey(prefixProposal, uint32(id)), encodeProposal(p)); err != nil {
		return 0, fmt.Errorf("put proposal: %w", err)
	}
	if err := batch.Put([]byte{prefixNextID}, encodeCounter(id+1)); err != nil {
		return 0, fmt.Errorf("put counter: %w", err)
	}
	if err := batch.Commit(); err != nil {
		return 0, fmt.Errorf("commit proposal: %w", err)
	}
	return id, nil
}

// RecordVote writes the (id, voter) vote-ledger entry and the updated tally
// in one commit. The ledger entry is a presence-only record.
func (g *Governance) RecordVote(id dao.ProposalID, voter dao.AccountID, tally dao.ProposalTally) error {
	batch := g.NewBatch()
	defer func() {
		if err := batch.Close(); err != nil {
			log.Printf("error closing batch: %v", err)
		}
	}()

	if err := batch.Put(makeVoteKey(uint32(id), voter), []byte{}); err != nil {
		return fmt.Errorf("put vote record: %w", err)
	}
	if err := batch.Put(makeIDKey(prefixTally, uint32(id)), encodeTally(tally)); err != nil {
		return fmt.Errorf("put tally: %w", err)
	}
	if err := batch.Commit(); err != nil {
		return fmt.Errorf("commit vote: %w", err)
	}
	return nil
}

// PutProposal overwrites the proposal stored under id.
func (g *Governance) PutProposal(id dao.ProposalID, p dao.Proposal) error {
	if err := g.Put(makeIDKey(prefixProposal, uint32(id)), encodeProposal(p)); err != nil {
		return fmt.Errorf("put proposal: %w", err)
	}
	return nil
}
