package searcher

import (
	"errors"
	"fmt"
	"time"

	"golang.org/x/exp/rand"

	"kalah/game"
	"kalah/metrics"
)

// Searcher picks a move for the side to move in state. The state is not modified.
type Searcher interface {
	FindNextMove(state game.State) (game.Move, metrics.SearchMetric)
}

type Kind string

const (
	UCT     Kind = "uct"
	RAVE    Kind = "rave"
	GRAVE   Kind = "grave"
	PUCT    Kind = "puct"
	SHOT    Kind = "shot"
	SHUSS   Kind = "shuss"
	Minimax Kind = "minimax"
	NMCS    Kind = "nmcs"
	NRPA    Kind = "nrpa"
	UBFM    Kind = "ubfm"
)

var Kinds = []Kind{UCT, RAVE, GRAVE, PUCT, SHOT, SHUSS, Minimax, NMCS, NRPA, UBFM}

var ErrUnknownKind = errors.New("unknown search strategy")

// New returns the searcher of the given kind.
func New(kind Kind, options ...Option) (Searcher, error) {
	switch kind {
	case UCT:
		return NewUCT(options...), nil
	case RAVE:
		return NewRAVE(options...), nil
	case GRAVE:
		return NewGRAVE(options...), nil
	case PUCT:
		return NewPUCT(options...), nil
	case SHOT:
		return NewSHOT(options...), nil
	case SHUSS:
		return NewSHUSS(options...), nil
	case Minimax:
		return NewAlphaBeta(options...), nil
	case NMCS:
		return NewNested(options...), nil
	case NRPA:
		return NewPolicyAdaptation(options...), nil
	case UBFM:
		return NewBestFirst(options...), nil
	default:
		return nil, fmt.Errorf("%w: %q", ErrUnknownKind, kind)
	}
}

func newRand(seed uint64) *rand.Rand {
	if seed == 0 {
		seed = uint64(time.Now().UnixNano())
	}
	return rand.New(rand.NewSource(seed))
}

// forcedMove returns the move to play without searching: the only legal move,
// or the first one when the game is already over.
func forcedMove(state game.State) (game.Move, bool) {
	moves := state.LegalMoves(state.Player())
	if len(moves) == 1 || state.IsTerminal() {
		return moves[0], true
	}
	return game.NoMove, false
}

// countingEvaluate wraps the evaluator so that every call is reported to the collector
func countingEvaluate(o Options) game.Evaluate {
	return func(state game.State, player int) float64 {
		o.Metrics.AddEvaluation()
		return o.Evaluate(state, player)
	}
}
