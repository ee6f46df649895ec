package searcher

import (
	"math"

	"github.com/rs/zerolog/log"

	"kalah/game"
	"kalah/metrics"
)

// AlphaBeta is a fixed-depth minimax search with alpha-beta pruning over the static evaluator.
type AlphaBeta struct {
	options  Options
	evaluate game.Evaluate
	nodes    int
}

func NewAlphaBeta(options ...Option) *AlphaBeta {
	o := newOptions(options)
	return &AlphaBeta{options: o, evaluate: countingEvaluate(o)}
}

func (a *AlphaBeta) FindNextMove(state game.State) (game.Move, metrics.SearchMetric) {
	collector := a.options.Metrics
	collector.Start(string(Minimax))
	if move, ok := forcedMove(state); ok {
		collector.SetShortCircuit()
		return move, collector.Complete()
	}

	a.nodes = 0
	score, move := a.Search(state, a.options.Depth, math.Inf(-1), math.Inf(1), state.Player())
	collector.SetTableSize(a.nodes)
	metric := collector.Complete()

	log.Debug().
		Int("move", int(move)).
		Float64("score", score).
		Int("depth", a.options.Depth).
		Int("nodes", a.nodes).
		Msg("alpha-beta search completed")

	return move, metric
}

// Search returns the score of state for player at the given depth and the first move reaching it.
// The move is NoMove at the depth limit or at a terminal state.
func (a *AlphaBeta) Search(state game.State, depth int, alpha, beta float64, player int) (float64, game.Move) {
	a.nodes++
	a.options.Metrics.AddIteration()
	if depth == 0 || state.IsTerminal() {
		return a.evaluate(state, player), game.NoMove
	}

	current := state.Player()
	best := game.NoMove
	if current == player {
		maxScore := math.Inf(-1)
		for _, move := range state.LegalMoves(current) {
			child := state.Clone()
			child.Apply(move, current)
			score, _ := a.Search(child, depth-1, alpha, beta, player)
			if score > maxScore {
				maxScore = score
				best = move
			}
			alpha = max(alpha, score)
			if beta <= alpha {
				break
			}
		}
		return maxScore, best
	}

	minScore := math.Inf(1)
	for _, move := range state.LegalMoves(current) {
		child := state.Clone()
		child.Apply(move, current)
		score, _ := a.Search(child, depth-1, alpha, beta, player)
		if score < minScore {
			minScore = score
			best = move
		}
		beta = min(beta, score)
		if beta <= alpha {
			break
		}
	}
	return minScore, best
}
