package searcher

import (
	"math"

	"github.com/rs/zerolog/log"
	"golang.org/x/exp/rand"

	"kalah/game"
	"kalah/metrics"
)

// Nested is a Nested Monte Carlo Search: each level scores every move with a search one level lower.
// Values are from player 0's perspective; player 0 maximizes and player 1 minimizes.
type Nested struct {
	options Options
	rnd     *rand.Rand
}

func NewNested(options ...Option) *Nested {
	o := newOptions(options)
	return &Nested{options: o, rnd: newRand(o.Seed)}
}

func (n *Nested) FindNextMove(state game.State) (game.Move, metrics.SearchMetric) {
	collector := n.options.Metrics
	collector.Start(string(NMCS))
	if move, ok := forcedMove(state); ok {
		collector.SetShortCircuit()
		return move, collector.Complete()
	}

	move, value := n.Search(state, n.options.Level, 1, nil)
	metric := collector.Complete()

	log.Debug().
		Int("move", int(move)).
		Float64("value", value).
		Int("level", n.options.Level).
		Msg("nested search completed")

	return move, metric
}

// Search returns the best move of state and its value. depth counts plies from the root
// starting at 1; bound is the best value of the calling level, nil at the top.
func (n *Nested) Search(state game.State, level int, depth int, bound *float64) (game.Move, float64) {
	if state.IsTerminal() {
		return game.NoMove, n.terminalValue(state, depth)
	}

	player := state.Player()
	best := game.NoMove
	bestValue := math.Inf(-1)
	if player == 1 {
		bestValue = math.Inf(1)
	}

	moves := append([]game.Move(nil), state.LegalMoves(player)...)
	n.rnd.Shuffle(len(moves), func(i, j int) {
		moves[i], moves[j] = moves[j], moves[i]
	})

	for _, move := range moves {
		child := state.Clone()
		child.Apply(move, player)

		var value float64
		if level == 0 {
			value = n.terminalValue(child, depth+1)
		} else {
			var childBound *float64
			if n.options.PruneOnDepth {
				b := bestValue
				childBound = &b
			}
			_, value = n.Search(child, level-1, depth+1, childBound)
		}

		// Moves no better than the calling level's bound are not counted as scanned
		pruned := n.options.PruneOnDepth && n.options.Discounting && bound != nil &&
			((player == 0 && value <= *bound) || (player == 1 && value >= *bound))
		if !pruned {
			n.options.Metrics.AddIteration()
		}

		if (player == 0 && value > bestValue) || (player == 1 && value < bestValue) {
			bestValue = value
			best = move
			if n.options.CutOnWin && ((player == 0 && value == 1) || (player == 1 && value == -1)) {
				break
			}
		}
	}
	return best, bestValue
}

// terminalValue is the sign of the score difference, divided by depth when discounting
func (n *Nested) terminalValue(state game.State, depth int) float64 {
	value := game.Sign(state.Result(), 0)
	if n.options.Discounting {
		return value / float64(depth)
	}
	return value
}
