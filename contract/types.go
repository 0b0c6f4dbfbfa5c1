package contract

import (
	"math/big"
)

// Contract method names used by the client.
const (
	MethodCurrentPhase    = "currentPhase"
	MethodCandidatesCount = "candidatesCount"
	MethodCandidates      = "candidates"
	MethodAddCandidate    = "addCandidate"
)

type Phase uint8

const (
	PhaseInit         Phase = 0
	PhaseRegistration Phase = 1
	PhaseVoting       Phase = 2
	PhaseEnded        Phase = 3
)

const PhaseUnknownLabel = "Unknown"

var phaseNames = [...]string{"Init", "Registration", "Voting", "Ended"}

func (p Phase) String() string {
	if int(p) >= len(phaseNames) {
		return PhaseUnknownLabel
	}
	return phaseNames[p]
}

// PhaseLabel maps the index read from currentPhase to its label.
// Nil, negative and out of range indices map to PhaseUnknownLabel.
func PhaseLabel(idx *big.Int) string {
	if idx == nil || idx.Sign() < 0 || !idx.IsUint64() || idx.Uint64() >= uint64(len(phaseNames)) {
		return PhaseUnknownLabel
	}
	return Phase(idx.Uint64()).String()
}

type Candidate struct {
	Id        *big.Int `json:"id"`
	Name      string   `json:"name"`
	VoteCount *big.Int `json:"voteCount"`
}
