package game

// Weights of the Kalah heuristic terms.
type Weights struct {
	Store     float64 // store difference
	ExtraTurn float64 // moves that end in the own store
	Capture   float64 // moves that end in an own empty pit facing stones
}

var DefaultWeights = Weights{Store: 1.0, ExtraTurn: 0.7, Capture: 0.2}

// EvaluateKalah returns an evaluator weighing the store difference, the extra turn
// potential and the capture potential of player against its opponent.
func EvaluateKalah(weights Weights) Evaluate {
	return func(s State, player int) float64 {
		k, ok := s.(*Kalah)
		if !ok {
			panic("unexpected state type")
		}
		opponent := Opponent(player)

		storeDiff := float64(k.Store(player) - k.Store(opponent))
		extraDiff := float64(k.countExtraTurns(player) - k.countExtraTurns(opponent))
		captureDiff := float64(k.countCaptures(player) - k.countCaptures(opponent))

		return weights.Store*storeDiff + weights.ExtraTurn*extraDiff + weights.Capture*captureDiff
	}
}

// countExtraTurns counts player's moves whose last stone lands in player's store
func (k *Kalah) countExtraTurns(player int) int {
	count := 0
	for _, move := range k.LegalMoves(player) {
		if move == NoMove {
			continue
		}
		next := k.Copy()
		if next.Apply(move, player) == player {
			count++
		}
	}
	return count
}

// countCaptures counts player's moves that capture; the landing pit of a capture is left empty
func (k *Kalah) countCaptures(player int) int {
	count := 0
	for _, move := range k.LegalMoves(player) {
		if move == NoMove {
			continue
		}
		next := k.Copy()
		next.Apply(move, player)
		pit := next.LastPit()
		if pit != next.store(player) && next.IsOnSide(pit, player) && next.Board[pit] == 0 {
			count++
		}
	}
	return count
}
