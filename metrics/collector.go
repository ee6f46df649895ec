package metrics

import (
	"sync/atomic"
	"time"
)

// SearchMetric summarises a single move search.
type SearchMetric struct {
	Strategy     string
	Duration     time.Duration
	Iterations   int // playouts, nested calls or best-first iterations, depending on the strategy
	Rollouts     int // random or policy playouts run to a terminal state
	Evaluations  int // static evaluator calls
	Rounds       int // halving rounds (SHOT/SHUSS)
	TableSize    int // nodes, policy weights or transposition entries at the end of the search
	ShortCircuit bool
}

type MoveMetric struct {
	Step   int
	Player int
	Move   int
	SearchMetric
}

type GameMetric struct {
	ID             string
	StartingPlayer int
	Result         int // Score difference, positive favors player 0
	Winner         int // -1 on a draw
	StartTime      time.Time
	EndTime        time.Time
	Duration       time.Duration
	TotalMoves     int
	Passes         int
}

type Collector interface {
	Start(strategy string)
	AddIteration()
	AddRollout()
	AddEvaluation()
	AddRound()
	SetTableSize(size int)
	SetShortCircuit()
	Complete() SearchMetric
}

type collector struct {
	strategy     string
	startTime    time.Time
	iterations   atomic.Int64
	rollouts     atomic.Int64
	evaluations  atomic.Int64
	rounds       atomic.Int32
	tableSize    atomic.Int64
	shortCircuit atomic.Bool
}

func NewCollector() Collector {
	return &collector{}
}

func (m *collector) Start(strategy string) {
	m.strategy = strategy
	m.startTime = time.Now()
	m.iterations.Store(0)
	m.rollouts.Store(0)
	m.evaluations.Store(0)
	m.rounds.Store(0)
	m.tableSize.Store(0)
	m.shortCircuit.Store(false)
}

func (m *collector) AddIteration() {
	m.iterations.Add(1)
}

func (m *collector) AddRollout() {
	m.rollouts.Add(1)
}

func (m *collector) AddEvaluation() {
	m.evaluations.Add(1)
}

func (m *collector) AddRound() {
	m.rounds.Add(1)
}

func (m *collector) SetTableSize(size int) {
	m.tableSize.Store(int64(size))
}

func (m *collector) SetShortCircuit() {
	m.shortCircuit.Store(true)
}

func (m *collector) Complete() SearchMetric {
	return SearchMetric{
		Strategy:     m.strategy,
		Duration:     time.Since(m.startTime),
		Iterations:   int(m.iterations.Load()),
		Rollouts:     int(m.rollouts.Load()),
		Evaluations:  int(m.evaluations.Load()),
		Rounds:       int(m.rounds.Load()),
		TableSize:    int(m.tableSize.Load()),
		ShortCircuit: m.shortCircuit.Load(),
	}
}

type dummyCollector struct{}

func NewDummyCollector() Collector {
	return &dummyCollector{}
}

func (m *dummyCollector) Start(strategy string)  {}
func (m *dummyCollector) AddIteration()          {}
func (m *dummyCollector) AddRollout()            {}
func (m *dummyCollector) AddEvaluation()         {}
func (m *dummyCollector) AddRound()              {}
func (m *dummyCollector) SetTableSize(size int)  {}
func (m *dummyCollector) SetShortCircuit()       {}
func (m *dummyCollector) Complete() SearchMetric { return SearchMetric{} }
