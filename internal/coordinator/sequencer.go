package coordinator

import (
	"sync"

	"github.com/phppp-lsp/phppp/internal/symbol"
)

// uriState sequences edits for a single URI (§4.9, §5 "Backpressure"): edits
// for the same URI are serialized, and an edit that arrives while another is
// being indexed replaces the queued-next text rather than starting a second
// worker — multiple intermediate edits collapse into one re-index of the
// latest text. The calling goroutine always blocks until a generation at
// least as new as the one it submitted has been applied, which is what
// gives callers the "next query sees the new state" guarantee (§5) without
// needing a global lock across URIs.
type uriState struct {
	mu         sync.Mutex
	cond       *sync.Cond
	busy       bool
	generation uint64
	pendingGen uint64
	pendingText []byte
}

func newURIState() *uriState {
	st := &uriState{}
	st.cond = sync.NewCond(&st.mu)
	return st
}

// sequencers owns one uriState per URI, created lazily.
type sequencers struct {
	mu    sync.Mutex
	byURI map[symbol.URI]*uriState
}

func newSequencers() *sequencers {
	return &sequencers{byURI: make(map[symbol.URI]*uriState)}
}

func (s *sequencers) get(uri symbol.URI) *uriState {
	s.mu.Lock()
	defer s.mu.Unlock()
	st, ok := s.byURI[uri]
	if !ok {
		st = newURIState()
		s.byURI[uri] = st
	}
	return st
}

// drop removes the sequencer for uri, e.g. on didClose — a fresh uriState
// will be created if the URI is reopened.
func (s *sequencers) drop(uri symbol.URI) {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.byURI, uri)
}

// run submits text for indexing under this uriState and blocks until a
// generation covering this submission (or a newer one) has been applied by
// calling work. Only one goroutine at a time ever executes work for a given
// uriState; others wait on cond.
func (st *uriState) run(text []byte, work func(text []byte)) {
	st.mu.Lock()
	st.pendingText = text
	st.pendingGen++
	myGen := st.pendingGen

	if st.busy {
		for st.generation < myGen {
			st.cond.Wait()
		}
		st.mu.Unlock()
		return
	}

	st.busy = true
	st.mu.Unlock()

	for {
		st.mu.Lock()
		current := st.pendingText
		gen := st.pendingGen
		st.mu.Unlock()

		work(current)

		st.mu.Lock()
		st.generation = gen
		st.cond.Broadcast()
		if st.pendingGen == gen {
			st.busy = false
			st.mu.Unlock()
			return
		}
		st.mu.Unlock()
	}
}
