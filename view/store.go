package view

import (
	"context"
	"strings"
	"sync"

	"cosmossdk.io/log"

	"github.com/calehh/evote/client"
)

// Observer is called with the new snapshot after every transition.
type Observer func(State)

// Store owns the page state and drives the contract client.
type Store struct {
	logger log.Logger
	cli    client.Client

	mtx       sync.Mutex
	state     State
	observers []Observer
}

func NewStore(cli client.Client, logger log.Logger) *Store {
	return &Store{
		logger: logger.With("module", "view"),
		cli:    cli,
		state:  InitialState(),
	}
}

func (s *Store) Subscribe(o Observer) {
	s.mtx.Lock()
	defer s.mtx.Unlock()
	s.observers = append(s.observers, o)
}

func (s *Store) State() State {
	s.mtx.Lock()
	defer s.mtx.Unlock()
	return s.state
}

func (s *Store) dispatch(t Transition) State {
	s.mtx.Lock()
	next := t(s.state)
	next.Revision = s.state.Revision + 1
	s.state = next
	observers := make([]Observer, len(s.observers))
	copy(observers, s.observers)
	s.mtx.Unlock()

	for _, o := range observers {
		o(next)
	}
	return next
}

// Mount loads phase and account concurrently; either may finish first or fail alone.
func (s *Store) Mount(ctx context.Context) {
	var wg sync.WaitGroup
	wg.Add(2)
	go func() {
		defer wg.Done()
		s.dispatch(PhaseLoaded(s.cli.Phase(ctx)))
	}()
	go func() {
		defer wg.Done()
		account, err := s.cli.Account()
		if err != nil {
			s.logger.Error("error fetching wallet", "err", err)
			return
		}
		s.dispatch(AccountLoaded(account))
	}()
	wg.Wait()
}

func (s *Store) EditDraft(text string) State {
	return s.dispatch(EditDraft(text))
}

// AddCandidate submits the current draft. The draft survives a failure.
func (s *Store) AddCandidate(ctx context.Context) State {
	draft := s.State().Draft
	if strings.TrimSpace(draft) == "" {
		return s.dispatch(PromptEmptyName)
	}
	if err := s.cli.AddCandidate(ctx, draft); err != nil {
		s.logger.Error("add candidate failed", "name", draft, "err", err)
		return s.dispatch(CandidateAddFailed)
	}
	return s.dispatch(CandidateAdded)
}

// ShowCandidates refreshes the list. On failure the previous list stays.
func (s *Store) ShowCandidates(ctx context.Context) State {
	list, err := s.cli.ListCandidates(ctx)
	if err != nil {
		s.logger.Error("show candidates failed", "err", err)
		return s.dispatch(CandidatesLoadFailed)
	}
	return s.dispatch(CandidatesLoaded(ToCandidates(list)))
}

func (s *Store) DismissNotice() State {
	return s.dispatch(DismissNotice)
}
