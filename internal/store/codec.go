package store

import (
	"encoding/binary"
	"fmt"

	"github.com/holiman/uint256"

	"github.com/yaymalaga/Investment-dao/internal/dao"
)

// Records are fixed-width binary values.
//
//	proposal: to(32) | amount(32, big-endian) | voteStart(8) | voteEnd(8) | executed(1)
//	tally:    for(8) | against(8)
//	counter:  next id(4)
const (
	proposalRecordSize = 32 + 32 + 8 + 8 + 1
	tallyRecordSize    = 8 + 8
	counterRecordSize  = 4
)

func encodeProposal(p dao.Proposal) []byte {
	buf := make([]byte, proposalRecordSize)
	copy(buf[:32], p.To[:])
	amount := p.Amount.Bytes32()
	copy(buf[32:64], amount[:])
	binary.BigEndian.PutUint64(buf[64:72], p.VoteStart)
	binary.BigEndian.PutUint64(buf[72:80], p.VoteEnd)
	if p.Executed {
		buf[80] = 1
	}
	return buf
}

func decodeProposal(buf []byte) (dao.Proposal, error) {
	if len(buf) != proposalRecordSize {
		return dao.Proposal{}, fmt.Errorf("proposal record is %d bytes, want %d", len(buf), proposalRecordSize)
	}
	var p dao.Proposal
	copy(p.To[:], buf[:32])
	p.Amount = new(uint256.Int).SetBytes(buf[32:64])
	p.VoteStart = binary.BigEndian.Uint64(buf[64:72])
	p.VoteEnd = binary.BigEndian.Uint64(buf[72:80])
	p.Executed = buf[80] == 1
	return p, nil
}

func encodeTally(t dao.ProposalTally) []byte {
	buf := make([]byte, tallyRecordSize)
	binary.BigEndian.PutUint64(buf[:8], t.For)
	binary.BigEndian.PutUint64(buf[8:], t.Against)
	return buf
}

func decodeTally(buf []byte) (dao.ProposalTally, error) {
	if len(buf) != tallyRecordSize {
		return dao.ProposalTally{}, fmt.Errorf("tally record is %d bytes, want %d", len(buf), tallyRecordSize)
	}
	return dao.ProposalTally{
		For:     binary.BigEndian.Uint64(buf[:8]),
		Against: binary.BigEndian.Uint64(buf[8:]),
	}, nil
}

func encodeCounter(id dao.ProposalID) []byte {
	buf := make([]byte, counterRecordSize)
	binary.BigEndian.PutUint32(buf, uint32(id))
	return buf
}

func decodeCounter(buf []byte) (dao.ProposalID, error) {
	if len(buf) != counterRecordSize {
		return 0, fmt.Errorf("counter record is %d bytes, want %d", len(buf), counterRecordSize)
	}
	return dao.ProposalID(binary.BigEndian.Uint32(buf)), nil
}
