package view

import (
	"math/big"

	"github.com/calehh/evote/contract"
)

const (
	InitialPhase = "Loading..."

	PromptEnterName   = "Enter a candidate name!"
	NoticeAdded       = "Candidate added successfully!"
	NoticeAddFailed   = "Failed to add candidate"
	NoticeListFailed  = "Failed to load candidates"
	truncatedHeadSize = 6
	truncatedTailSize = 4
)

type NoticeLevel string

const (
	NoticePrompt  NoticeLevel = "prompt"
	NoticeSuccess NoticeLevel = "success"
	NoticeError   NoticeLevel = "error"
)

type Notice struct {
	Level NoticeLevel `json:"level"`
	Text  string      `json:"text"`
}

// Candidate is the display form of contract.Candidate.
type Candidate struct {
	Id    string `json:"id"`
	Name  string `json:"name"`
	Votes string `json:"votes"`
}

// State is an immutable snapshot of the page. Transitions return a new value.
type State struct {
	Draft      string      `json:"draft"`
	Candidates []Candidate `json:"candidates"`
	Phase      string      `json:"phase"`
	Account    string      `json:"account"`
	Notice     *Notice     `json:"notice,omitempty"`
	Revision   uint64      `json:"revision"`
}

func InitialState() State {
	return State{
		Candidates: []Candidate{},
		Phase:      InitialPhase,
	}
}

// AccountLabel is the account shortened for display.
func (s State) AccountLabel() string {
	return TruncateAddress(s.Account)
}

// TruncateAddress keeps the first 6 and last 4 characters of addr.
func TruncateAddress(addr string) string {
	if len(addr) <= truncatedHeadSize+truncatedTailSize {
		return addr
	}
	return addr[:truncatedHeadSize] + "..." + addr[len(addr)-truncatedTailSize:]
}

func ToCandidates(list []contract.Candidate) []Candidate {
	res := make([]Candidate, 0, len(list))
	for _, c := range list {
		res = append(res, Candidate{
			Id:    intString(c.Id),
			Name:  c.Name,
			Votes: intString(c.VoteCount),
		})
	}
	return res
}

func intString(v *big.Int) string {
	if v == nil {
		return "0"
	}
	return v.String()
}

// Transition is a pure state transition.
type Transition func(State) State

// EditDraft replaces the draft and clears any notice left by an earlier action.
func EditDraft(text string) Transition {
	return func(s State) State {
		s.Draft = text
		s.Notice = nil
		return s
	}
}

func PhaseLoaded(phase string) Transition {
	return func(s State) State {
		s.Phase = phase
		return s
	}
}

func AccountLoaded(account string) Transition {
	return func(s State) State {
		s.Account = account
		return s
	}
}

func PromptEmptyName(s State) State {
	s.Notice = &Notice{Level: NoticePrompt, Text: PromptEnterName}
	return s
}

func CandidateAdded(s State) State {
	s.Draft = ""
	s.Notice = &Notice{Level: NoticeSuccess, Text: NoticeAdded}
	return s
}

func CandidateAddFailed(s State) State {
	s.Notice = &Notice{Level: NoticeError, Text: NoticeAddFailed}
	return s
}

// CandidatesLoaded replaces the list wholesale and clears a stale notice.
func CandidatesLoaded(list []Candidate) Transition {
	return func(s State) State {
		s.Candidates = list
		s.Notice = nil
		return s
	}
}

func CandidatesLoadFailed(s State) State {
	s.Notice = &Notice{Level: NoticeError, Text: NoticeListFailed}
	return s
}

func DismissNotice(s State) State {
	s.Notice = nil
	return s
}
