package searcher

import (
	"errors"
	"time"

	"github.com/rs/zerolog/log"

	"kalah/game"
	"kalah/metrics"
)

// ErrNoProgress is returned when the time budget runs out before the root position was expanded.
var ErrNoProgress = errors.New("time budget exhausted before the root was expanded")

// entry holds the current value estimate of every move of a state, in move order
type entry struct {
	moves  []game.Move
	values []float64
}

// best returns the index of the best move for player: player 0 maximizes, player 1 minimizes.
// Ties keep the earliest move.
func (e *entry) best(player int) int {
	best := 0
	for i := 1; i < len(e.values); i++ {
		if (player == 0 && e.values[i] > e.values[best]) || (player == 1 && e.values[i] < e.values[best]) {
			best = i
		}
	}
	return best
}

// BestFirst is an Unbounded Best-First Minimax search. Each iteration extends only the
// current principal line by one ply, so the table grows along the most promising moves.
// Values are evaluations from player 0's perspective.
type BestFirst struct {
	options  Options
	evaluate game.Evaluate
	table    map[game.StateKey]*entry
}

func NewBestFirst(options ...Option) *BestFirst {
	o := newOptions(options)
	return &BestFirst{options: o, evaluate: countingEvaluate(o)}
}

func (b *BestFirst) FindNextMove(state game.State) (game.Move, metrics.SearchMetric) {
	collector := b.options.Metrics
	collector.Start(string(UBFM))
	if move, ok := forcedMove(state); ok {
		collector.SetShortCircuit()
		return move, collector.Complete()
	}

	move, value, err := b.Run(state)
	if errors.Is(err, ErrNoProgress) {
		log.Warn().Err(err).Dur("budget", b.options.Duration).Msg("grounding root for a best-effort move")
		value = b.iterate(state.Clone())
		root := b.table[state.Key()]
		move = root.moves[root.best(state.Player())]
	}
	collector.SetTableSize(len(b.table))
	metric := collector.Complete()

	log.Debug().
		Int("move", int(move)).
		Float64("value", value).
		Int("entries", len(b.table)).
		Msg("best-first search completed")

	b.table = nil
	return move, metric
}

// Run iterates from state until the time budget elapses and returns the root's best move and value.
func (b *BestFirst) Run(state game.State) (game.Move, float64, error) {
	b.table = map[game.StateKey]*entry{}
	deadline := time.Now().Add(b.options.Duration)
	for time.Now().Before(deadline) {
		b.iterate(state.Clone())
		b.options.Metrics.AddIteration()
	}

	root, ok := b.table[state.Key()]
	if !ok {
		return game.NoMove, 0, ErrNoProgress
	}
	i := root.best(state.Player())
	return root.moves[i], root.values[i], nil
}

// iterate grounds state if it is new, otherwise deepens its best move by one iteration.
// It returns the state's best value. state may be modified.
func (b *BestFirst) iterate(state game.State) float64 {
	if state.IsTerminal() {
		return b.evaluate(state, 0)
	}

	key := state.Key()
	player := state.Player()
	e, seen := b.table[key]
	if !seen {
		moves := state.LegalMoves(player)
		e = &entry{moves: moves, values: make([]float64, len(moves))}
		for i, move := range moves {
			child := state.Clone()
			child.Apply(move, player)
			e.values[i] = b.evaluate(child, 0)
		}
		b.table[key] = e
	} else {
		i := e.best(player)
		state.Apply(e.moves[i], player)
		e.values[i] = b.iterate(state)
	}
	return e.values[e.best(player)]
}
