package searcher

import (
	"golang.org/x/exp/rand"

	"kalah/game"
)

// amaf holds all-moves-as-first statistics of a move below a node
type amaf struct {
	visits int
	value  float64
}

// node owns its children; parent is only followed upwards during backup.
type node struct {
	state    game.State
	parent   *node
	move     game.Move // move that led from parent to this node
	player   int       // side to move at this node
	children []*node
	untried  []game.Move
	visits   int
	value    float64
	amaf     map[game.Move]*amaf
	prior    float64
	priors   map[game.Move]float64 // PUCT priors of this node's moves, scored on first expansion
}

func newNode(parent *node, move game.Move, state game.State) *node {
	return &node{
		state:   state,
		parent:  parent,
		move:    move,
		player:  state.Player(),
		untried: state.LegalMoves(state.Player()),
		prior:   1,
	}
}

// meanFor returns the node's mean value from player's perspective
func (n *node) meanFor(player int) float64 {
	q := mean(n.value, n.visits)
	if n.player != player {
		return -q
	}
	return q
}

func (n *node) isTerminal() bool {
	return n.state.IsTerminal()
}

func (n *node) isFullyExpanded() bool {
	return len(n.untried) == 0
}

// addChild consumes the last untried move, refreshing the list from the live state once exhausted
func (n *node) addChild() *node {
	if len(n.untried) == 0 {
		n.untried = n.state.LegalMoves(n.player)
	}
	last := len(n.untried) - 1
	move := n.untried[last]
	n.untried = n.untried[:last]

	next := n.state.Clone()
	next.Apply(move, n.player)
	child := newNode(n, move, next)
	n.children = append(n.children, child)
	return child
}

// amafStats returns the all-moves-as-first statistics of move, zero when never played
func (n *node) amafStats(move game.Move) (visits int, value float64) {
	if stats, ok := n.amaf[move]; ok {
		return stats.visits, stats.value
	}
	return 0, 0
}

// amafFor returns the all-moves-as-first statistics of move with the value from player's perspective
func (n *node) amafFor(move game.Move, player int) (visits int, value float64) {
	visits, value = n.amafStats(move)
	if n.player != player {
		return visits, -value
	}
	return visits, value
}

// raveAncestor climbs to the first node with more than threshold visits, or returns n
func (n *node) raveAncestor(threshold int) *node {
	for ancestor := n; ancestor != nil; ancestor = ancestor.parent {
		if ancestor.visits > threshold {
			return ancestor
		}
	}
	return n
}

// priorOf scores every legal move of n once with the evaluator and returns move's share.
// Falls back to a uniform prior when the scores do not sum to a positive total.
func (n *node) priorOf(move game.Move, evaluate game.Evaluate) float64 {
	if n.priors == nil {
		moves := n.state.LegalMoves(n.player)
		scores := make([]float64, len(moves))
		total := 0.0
		for i, m := range moves {
			next := n.state.Clone()
			next.Apply(m, n.player)
			scores[i] = evaluate(next, n.player)
			total += scores[i]
		}
		n.priors = make(map[game.Move]float64, len(moves))
		for i, m := range moves {
			if total > 0 {
				n.priors[m] = min(max(scores[i]/total, 0), 1)
			} else {
				n.priors[m] = 1 / float64(len(moves))
			}
		}
	}
	return n.priors[move]
}

// reward is a rollout outcome for player
type reward struct {
	value  float64
	player int
}

func (r reward) flip() reward {
	return reward{value: -r.value, player: game.Opponent(r.player)}
}

// towards returns the outcome from player's perspective
func (r reward) towards(player int) float64 {
	if r.player == player {
		return r.value
	}
	return -r.value
}

// update adds r to the node and returns the parent with the reward it should receive:
// the same when the parent has the same side to move (extra turn), negated otherwise.
// With withAMAF every move of the rollout is credited from this node's side to move.
func (n *node) update(r reward, rollout []game.Move, withAMAF bool) (*node, reward) {
	n.visits++
	n.value += r.value

	if withAMAF {
		if n.amaf == nil {
			n.amaf = map[game.Move]*amaf{}
		}
		credit := r.towards(n.player)
		for _, move := range rollout {
			stats, ok := n.amaf[move]
			if !ok {
				stats = &amaf{}
				n.amaf[move] = stats
			}
			stats.visits++
			stats.value += credit
		}
	}

	if n.parent != nil && n.parent.player != n.player {
		r = r.flip()
	}
	return n.parent, r
}

// rollout plays uniformly random moves on a copy of state until the game ends
func rollout(state game.State, rnd *rand.Rand) (result int, played []game.Move) {
	state = state.Clone()
	for !state.IsTerminal() {
		player := state.Player()
		moves := state.LegalMoves(player)
		move := moves[rnd.Intn(len(moves))]
		played = append(played, move)
		state.Apply(move, player)
	}
	return state.Result(), played
}

// backup propagates the outcome of a rollout from leaf to the root. Every node accumulates
// rewards from the perspective of its own side to move.
func backup(leaf *node, result int, played []game.Move, withAMAF bool) {
	r := reward{value: game.Sign(result, leaf.player), player: leaf.player}

	n := leaf
	for n != nil {
		n, r = n.update(r, played, withAMAF)
	}
}
