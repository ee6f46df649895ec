package searcher

import (
	"cmp"
	"math"

	"github.com/rs/zerolog/log"
	"golang.org/x/exp/slices"

	"kalah/game"
	"kalah/metrics"
)

// Halving spreads a playout budget over every root move and discards the worse half
// of the candidates after each round (sequential halving).
// SHOT ranks candidates by mean value, SHUSS adds the root's all-moves-as-first mean.
type Halving struct {
	kind  Kind
	shuss bool
	tree  *tree
}

func NewSHOT(options ...Option) *Halving {
	return &Halving{kind: SHOT, tree: newTree(selectUCT, newOptions(options))}
}

func NewSHUSS(options ...Option) *Halving {
	h := &Halving{kind: SHUSS, shuss: true, tree: newTree(selectUCT, newOptions(options))}
	h.tree.withAMAF = true
	return h
}

type candidate struct {
	node  *node
	score float64
}

func (h *Halving) FindNextMove(state game.State) (game.Move, metrics.SearchMetric) {
	collector := h.tree.options.Metrics
	collector.Start(string(h.kind))
	if move, ok := forcedMove(state); ok {
		collector.SetShortCircuit()
		return move, collector.Complete()
	}

	root := newNode(nil, game.NoMove, state.Clone())
	move := h.run(root)
	collector.SetTableSize(h.tree.size)
	metric := collector.Complete()

	log.Debug().
		Str("strategy", string(h.kind)).
		Int("move", int(move)).
		Int("rounds", metric.Rounds).
		Msg("halving search completed")

	return move, metric
}

// run creates one child per root move and halves the candidates until one survives
func (h *Halving) run(root *node) game.Move {
	moves := root.state.LegalMoves(root.player)
	candidates := make([]candidate, 0, len(moves))
	for _, move := range moves {
		next := root.state.Clone()
		next.Apply(move, root.player)
		candidates = append(candidates, candidate{node: newNode(root, move, next)})
	}
	h.tree.size = 1 + len(candidates)

	k := len(candidates)
	if k == 1 {
		return candidates[0].node.move
	}

	budget := h.tree.options.Iterations
	denominator := int(math.Log2(float64(k + 1)))
	for k > 1 {
		playouts := budget / (k * denominator)
		for _, c := range candidates {
			for i := 0; i < playouts; i++ {
				h.tree.simulate(c.node)
				h.tree.options.Metrics.AddIteration()
			}
		}

		for i := range candidates {
			candidates[i].score = h.score(root, candidates[i].node)
		}
		slices.SortStableFunc(candidates, func(a, b candidate) int {
			return cmp.Compare(b.score, a.score)
		})

		k /= 2
		candidates = candidates[:max(1, k)]
		h.tree.options.Metrics.AddRound()
	}
	return candidates[0].node.move
}

func (h *Halving) score(root *node, child *node) float64 {
	q := child.meanFor(root.player)
	if !h.shuss {
		return q
	}
	visits, value := root.amafFor(child.move, root.player)
	return q + h.tree.options.ShussC*(value/(float64(visits)+epsilon))
}
