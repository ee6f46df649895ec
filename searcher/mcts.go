package searcher

import (
	"math"

	"github.com/rs/zerolog/log"
	"golang.org/x/exp/rand"

	"kalah/game"
	"kalah/metrics"
)

type selection int

const (
	selectUCT selection = iota
	selectRAVE
	selectGRAVE
	selectPUCT
)

// tree holds the selection, expansion, rollout and backup steps shared by MCTS and the halving drivers
type tree struct {
	selection selection
	options   Options
	evaluate  game.Evaluate
	rnd       *rand.Rand
	withAMAF  bool
	size      int
}

func newTree(selection selection, o Options) *tree {
	return &tree{
		selection: selection,
		options:   o,
		evaluate:  countingEvaluate(o),
		rnd:       newRand(o.Seed),
		withAMAF:  selection == selectRAVE || selection == selectGRAVE,
	}
}

// simulate runs one selection, expansion, rollout and backup from root
func (t *tree) simulate(root *node) {
	leaf := t.selectThenExpand(root)
	result, played := rollout(leaf.state, t.rnd)
	t.options.Metrics.AddRollout()
	backup(leaf, result, played, t.withAMAF)
}

// selectThenExpand descends through fully expanded nodes and adds one child at the first node with an untried move
func (t *tree) selectThenExpand(n *node) *node {
	for !n.isTerminal() {
		if !n.isFullyExpanded() {
			return t.expand(n)
		}
		n = t.bestChild(n)
	}
	return n
}

func (t *tree) expand(n *node) *node {
	child := n.addChild()
	if t.selection == selectPUCT {
		child.prior = n.priorOf(child.move, t.evaluate)
	}
	t.size++
	return child
}

// bestChild returns the first child maximizing the selection score
func (t *tree) bestChild(n *node) *node {
	u := newUCT(t.options.Exploration, n.visits)
	stats := n
	if t.selection == selectGRAVE {
		stats = n.raveAncestor(t.options.GraveThreshold)
	}

	var best *node
	bestScore := math.Inf(-1)
	for _, child := range n.children {
		q := child.meanFor(n.player)
		var score float64
		switch t.selection {
		case selectPUCT:
			score = puct(q, child.visits, child.prior, n.visits, t.options.PUCTWeight)
		case selectRAVE, selectGRAVE:
			raveVisits, raveValue := stats.amafFor(child.move, n.player)
			score = raveBlend(q, child.visits, raveValue, raveVisits, t.options.RaveBeta) + u.exploration(child.visits)
		default:
			score = q + u.exploration(child.visits)
		}
		if best == nil || score > bestScore {
			best = child
			bestScore = score
		}
	}
	return best
}

// MCTS is a Monte Carlo tree search with a UCT, RAVE, GRAVE or PUCT selection policy.
type MCTS struct {
	kind Kind
	tree *tree
}

func newMCTS(kind Kind, selection selection, options []Option) *MCTS {
	return &MCTS{kind: kind, tree: newTree(selection, newOptions(options))}
}

func NewUCT(options ...Option) *MCTS {
	return newMCTS(UCT, selectUCT, options)
}

// NewRAVE blends child means with all-moves-as-first statistics of the selecting node.
func NewRAVE(options ...Option) *MCTS {
	return newMCTS(RAVE, selectRAVE, options)
}

// NewGRAVE reads all-moves-as-first statistics from the closest ancestor visited more than the threshold.
func NewGRAVE(options ...Option) *MCTS {
	return newMCTS(GRAVE, selectGRAVE, options)
}

// NewPUCT biases exploration by evaluator priors.
func NewPUCT(options ...Option) *MCTS {
	return newMCTS(PUCT, selectPUCT, options)
}

func (m *MCTS) FindNextMove(state game.State) (game.Move, metrics.SearchMetric) {
	collector := m.tree.options.Metrics
	collector.Start(string(m.kind))
	if move, ok := forcedMove(state); ok {
		collector.SetShortCircuit()
		return move, collector.Complete()
	}

	m.tree.size = 1
	root := newNode(nil, game.NoMove, state.Clone())
	for i := 0; i < m.tree.options.Iterations; i++ {
		m.tree.simulate(root)
		collector.AddIteration()
	}

	best := m.tree.bestChild(root)
	collector.SetTableSize(m.tree.size)
	metric := collector.Complete()

	log.Debug().
		Str("strategy", string(m.kind)).
		Int("move", int(best.move)).
		Int("visits", best.visits).
		Int("iterations", m.tree.options.Iterations).
		Msg("mcts search completed")

	return best.move, metric
}
