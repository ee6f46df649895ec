package game

// Move identifies a pit to sow from.
type Move int

// NoMove is returned by LegalMoves when a side cannot move. Applying it is a pass.
const NoMove Move = -1

// StateKey is an exact, comparable identity of a state (position and side to move).
type StateKey string

// State is mutable: Apply changes the receiver, so searchers Clone before exploring.
type State interface {
	// Player returns the side to move, 0 or 1
	Player() int
	// LegalMoves is never empty: a side without moves gets []Move{NoMove}
	LegalMoves(player int) []Move
	// Apply plays move for player and returns the next side to move, which may equal player (extra turn)
	Apply(move Move, player int) int
	IsTerminal() bool
	// Result is the score difference, positive favors player 0 and negative favors player 1
	Result() int
	Clone() State
	Key() StateKey
}

// Evaluate scores a state from player's perspective, higher is better for player.
type Evaluate func(state State, player int) float64

// Opponent returns the other side.
func Opponent(player int) int {
	return 1 - player
}

// Sign maps a score difference to a reward in {-1, 0, 1} for player.
func Sign(result int, player int) float64 {
	reward := 0.0
	if result > 0 {
		reward = 1
	} else if result < 0 {
		reward = -1
	}
	if player == 1 {
		return -reward
	}
	return reward
}
