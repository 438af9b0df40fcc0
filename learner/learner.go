// Package learner drives the active-learning loop of spec.md §4.K: it
// repeatedly closes and makes consistent an observation table (package
// table), poses the resulting hypothesis to a Teacher (package teacher),
// and folds counterexamples back in until the teacher reports equivalence.
//
// Candidate tables are explored best-first through a container/heap
// min-priority-queue keyed by membership-query count, the same
// lazy-decrease-key idiom dijkstra/dijkstra.go uses for its vertex
// frontier: closing and consistency repairs race as independent branches,
// and whichever accumulates the fewest queries is expanded next.
package learner

import (
	"container/heap"
	"errors"
	"math"

	"github.com/katalvlaran/dtalearn/automaton"
	"github.com/katalvlaran/dtalearn/clock"
	"github.com/katalvlaran/dtalearn/table"
	"github.com/katalvlaran/dtalearn/teacher"
)

// ErrExhausted indicates Learn ran MaxRounds candidate expansions, or ran
// out of candidate tables, without the teacher reporting equivalence.
var ErrExhausted = errors.New("learner: exhausted MaxRounds without converging")

// ErrBadMaxRounds indicates WithMaxRounds was called with a non-positive
// bound.
var ErrBadMaxRounds = errors.New("learner: MaxRounds must be positive")

// Options configures Learn.
type Options struct {
	// MaxRounds caps the number of candidate-table expansions Learn will
	// perform before giving up with ErrExhausted. Default: no cap.
	MaxRounds int
}

// Option is a functional option for Learn, mirroring dijkstra.Option.
type Option func(*Options)

// WithMaxRounds bounds the number of candidate-table expansions.
func WithMaxRounds(n int) Option {
	return func(o *Options) {
		if n <= 0 {
			panic(ErrBadMaxRounds.Error())
		}
		o.MaxRounds = n
	}
}

// DefaultOptions returns the default Learn configuration: no round cap.
func DefaultOptions() Options {
	return Options{MaxRounds: math.MaxInt64}
}

// Stats reports the work Learn performed to reach its result.
type Stats struct {
	Rounds             int // candidate-table expansions performed
	MembershipQueries  int // membership queries issued against the winning table
	EquivalenceQueries int // equivalence queries issued to the teacher
}

// Learn infers a DTA over clocks/alphabet equivalent to teach's hidden
// target, per spec.md §4.K. It returns the learned hypothesis, query
// statistics, and an error (ErrExhausted if MaxRounds is reached first or
// the queue of candidate tables empties).
func Learn(clocks []clock.Clock, alphabet *clock.Alphabet, teach teacher.Teacher, opts ...Option) (*automaton.DTA, Stats, error) {
	cfg := DefaultOptions()
	for _, opt := range opts {
		opt(&cfg)
	}

	policies := table.InitialPolicies(clocks, alphabet)
	pq := make(tablePQ, 0, len(policies))
	heap.Init(&pq)
	for _, p := range policies {
		seed, err := table.NewWithPolicy(clocks, alphabet, teach, p)
		if err != nil {
			return nil, Stats{}, err
		}
		heap.Push(&pq, &tableItem{tb: seed})
	}

	var stats Stats
	for pq.Len() > 0 {
		if stats.Rounds >= cfg.MaxRounds {
			break
		}
		stats.Rounds++

		item := heap.Pop(&pq).(*tableItem)
		tb := item.tb
		stats.MembershipQueries = tb.GuessCount()

		closed, cmismatch, err := tb.Closed()
		if err != nil {
			return nil, stats, err
		}
		consistent, xmismatch, err := tb.Consistent()
		if err != nil {
			return nil, stats, err
		}

		if !closed {
			nexts, err := tb.GuessClosing(cmismatch.RRow)
			if err != nil {
				return nil, stats, err
			}
			for _, next := range nexts {
				heap.Push(&pq, &tableItem{tb: next})
			}
		}
		if !consistent {
			nexts, err := tb.GuessConsistency(xmismatch.Suffix)
			if err != nil {
				return nil, stats, err
			}
			for _, next := range nexts {
				heap.Push(&pq, &tableItem{tb: next})
			}
		}
		if !closed || !consistent || !tb.EvidenceClosed() {
			continue
		}

		hyp, err := tb.Hypothesis()
		if err != nil {
			return nil, stats, err
		}
		stats.EquivalenceQueries++
		ce, equiv, err := teach.Equivalence(hyp)
		if err != nil {
			return nil, stats, err
		}
		if equiv {
			return hyp, stats, nil
		}

		nexts, err := tb.AddCounterExample(ce)
		if err != nil {
			return nil, stats, err
		}
		for _, next := range nexts {
			heap.Push(&pq, &tableItem{tb: next})
		}
	}

	return nil, stats, ErrExhausted
}

// tableItem is one candidate observation table in the learner's frontier.
type tableItem struct {
	tb *table.ObservationTable
}

// tablePQ is a min-heap of *tableItem ordered by ascending membership-query
// count, the same lazy-decrease-key priority queue shape as dijkstra's
// nodePQ: cheaper candidates are always expanded before costlier ones.
type tablePQ []*tableItem

func (pq tablePQ) Len() int { return len(pq) }

func (pq tablePQ) Less(i, j int) bool { return pq[i].tb.GuessCount() < pq[j].tb.GuessCount() }

func (pq tablePQ) Swap(i, j int) { pq[i], pq[j] = pq[j], pq[i] }

func (pq *tablePQ) Push(x interface{}) { *pq = append(*pq, x.(*tableItem)) }

func (pq *tablePQ) Pop() interface{} {
	old := *pq
	n := len(old)
	item := old[n-1]
	*pq = old[:n-1]
	return item
}
