package searcher

import (
	"math"

	"github.com/rs/zerolog/log"
	"golang.org/x/exp/maps"
	"golang.org/x/exp/rand"
	"gonum.org/v1/gonum/floats"

	"kalah/game"
	"kalah/metrics"
)

type policyKey struct {
	state game.StateKey
	move  game.Move
}

// policy maps (state, move) pairs to softmax weights; missing pairs weigh 0
type policy map[policyKey]float64

// step is a move and the state it was played from
type step struct {
	move  game.Move
	state game.State
}

// PolicyAdaptation is a Nested Rollout Policy Adaptation search. Rollouts sample moves from a
// softmax over learned weights and each level adapts its policy towards its best sequence.
// Scores are from the perspective of the side to move at the root.
type PolicyAdaptation struct {
	options Options
	rnd     *rand.Rand
	player  int
}

func NewPolicyAdaptation(options ...Option) *PolicyAdaptation {
	o := newOptions(options)
	return &PolicyAdaptation{options: o, rnd: newRand(o.Seed)}
}

func (p *PolicyAdaptation) FindNextMove(state game.State) (game.Move, metrics.SearchMetric) {
	collector := p.options.Metrics
	collector.Start(string(NRPA))
	if move, ok := forcedMove(state); ok {
		collector.SetShortCircuit()
		return move, collector.Complete()
	}

	p.player = state.Player()
	pol := policy{}
	sequence, score := p.search(p.options.Level, pol, state)
	collector.SetTableSize(len(pol))
	metric := collector.Complete()

	move := game.NoMove
	if len(sequence) > 0 {
		move = sequence[0].move
	}
	log.Debug().
		Int("move", int(move)).
		Float64("score", score).
		Int("level", p.options.Level).
		Int("weights", len(pol)).
		Msg("policy adaptation search completed")

	return move, metric
}

// search returns the best sequence found from root at level and its score. Each iteration
// recurses on a copy of pol, so only the adaptation towards the best sequence reaches pol.
func (p *PolicyAdaptation) search(level int, pol policy, root game.State) ([]step, float64) {
	if level == 0 {
		return p.rollout(root, pol)
	}

	var best []step
	bestScore := math.Inf(-1)
	for i := 0; i < p.options.Iterations; i++ {
		sequence, score := p.search(level-1, maps.Clone(pol), root)
		if score > bestScore {
			bestScore = score
			best = sequence
		}
		p.adapt(pol, best)
		p.options.Metrics.AddIteration()
	}
	return best, bestScore
}

// rollout samples moves from the softmax of pol until the game ends
func (p *PolicyAdaptation) rollout(root game.State, pol policy) ([]step, float64) {
	state := root.Clone()
	var sequence []step
	for !state.IsTerminal() {
		player := state.Player()
		moves := state.LegalMoves(player)
		probs := pol.probabilities(state, moves)
		move := moves[sample(probs, p.rnd)]
		sequence = append(sequence, step{move: move, state: state.Clone()})
		state.Apply(move, player)
	}
	p.options.Metrics.AddRollout()
	return sequence, game.Sign(state.Result(), p.player)
}

// adapt shifts the weights of every state of sequence towards the move played there:
// the played move gains 1 and every legal move loses its current probability.
func (p *PolicyAdaptation) adapt(pol policy, sequence []step) {
	for _, s := range sequence {
		moves := s.state.LegalMoves(s.state.Player())
		probs := pol.probabilities(s.state, moves)
		key := s.state.Key()
		pol[policyKey{state: key, move: s.move}] += 1
		for i, move := range moves {
			pol[policyKey{state: key, move: move}] -= probs[i]
		}
	}
}

func (pol policy) probabilities(state game.State, moves []game.Move) []float64 {
	key := state.Key()
	weights := make([]float64, len(moves))
	for i, move := range moves {
		weights[i] = pol[policyKey{state: key, move: move}]
	}
	return Softmax(weights)
}

// Softmax turns weights into probabilities, subtracting the maximum weight before
// exponentiating. A degenerate distribution falls back to uniform.
func Softmax(weights []float64) []float64 {
	if len(weights) == 0 {
		return nil
	}
	probs := make([]float64, len(weights))
	top := floats.Max(weights)
	for i, w := range weights {
		probs[i] = math.Exp(w - top)
	}
	total := floats.Sum(probs)
	if total <= 0 || math.IsNaN(total) || math.IsInf(total, 0) {
		log.Trace().Int("moves", len(weights)).Msg("degenerate softmax, using uniform probabilities")
		for i := range probs {
			probs[i] = 1 / float64(len(probs))
		}
		return probs
	}
	floats.Scale(1/total, probs)
	return probs
}

// sample draws an index from probs, returning the last index on rounding shortfall
func sample(probs []float64, rnd *rand.Rand) int {
	r := rnd.Float64()
	cumulative := 0.0
	for i, prob := range probs {
		cumulative += prob
		if r < cumulative {
			return i
		}
	}
	return len(probs) - 1
}
