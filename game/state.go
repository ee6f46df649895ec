package game

import (
	"fmt"
	"strings"
)

const (
	PitsPerSide   = 6
	StonesPerPit  = 4
	BoardSize     = 2*PitsPerSide + 2
	Store0        = PitsPerSide
	Store1        = BoardSize - 1
	noPit         = -1
	keyPlayerMark = 'a'
)

// Kalah is the dynamic state of a game of Kalah.
//
// Board layout: pits 0-5 belong to player 0 and 6 is player 0's store,
// pits 7-12 belong to player 1 and 13 is player 1's store.
type Kalah struct {
	Board         [BoardSize]int
	CurrentPlayer int
	lastPit       int
}

// NewKalah returns the starting position with player 0 to move.
func NewKalah() *Kalah {
	k := &Kalah{lastPit: noPit}
	for i := 0; i < PitsPerSide; i++ {
		k.Board[i] = StonesPerPit
		k.Board[Store0+1+i] = StonesPerPit
	}
	return k
}

// NewKalahFrom returns a position with the given board and side to move.
func NewKalahFrom(board [BoardSize]int, player int) *Kalah {
	return &Kalah{Board: board, CurrentPlayer: player, lastPit: noPit}
}

func (k *Kalah) Player() int {
	return k.CurrentPlayer
}

// LegalMoves returns the non-empty pits on player's side, or NoMove if there are none.
func (k *Kalah) LegalMoves(player int) []Move {
	start := player * (PitsPerSide + 1)
	moves := make([]Move, 0, PitsPerSide)
	for i := start; i < start+PitsPerSide; i++ {
		if k.Board[i] > 0 {
			moves = append(moves, Move(i))
		}
	}
	if len(moves) == 0 {
		return []Move{NoMove}
	}
	return moves
}

// Apply sows the stones of the pit for player, capturing and granting extra turns as per the rules.
func (k *Kalah) Apply(move Move, player int) int {
	if move == NoMove {
		k.CurrentPlayer = Opponent(player)
		return k.CurrentPlayer
	}

	index := int(move)
	stones := k.Board[index]
	k.Board[index] = 0

	skip := Store1
	if player == 1 {
		skip = Store0
	}
	for stones > 0 {
		index = (index + 1) % BoardSize
		if index == skip {
			continue
		}
		k.Board[index]++
		stones--
	}

	// Last stone in an own empty pit captures it together with the opposite pit
	opposite := 2*PitsPerSide - index
	if k.IsOnSide(index, player) && index != k.store(player) &&
		k.Board[index] == 1 && k.Board[opposite] > 0 {
		k.Board[k.store(player)] += k.Board[index] + k.Board[opposite]
		k.Board[index] = 0
		k.Board[opposite] = 0
	}

	k.lastPit = index
	if index != k.store(player) {
		k.CurrentPlayer = Opponent(player)
	} else {
		k.CurrentPlayer = player
	}
	return k.CurrentPlayer
}

// IsTerminal reports whether either side has run out of stones.
func (k *Kalah) IsTerminal() bool {
	return k.sideStones(0) == 0 || k.sideStones(1) == 0
}

// Result returns player 0's stones (pits and store) minus player 1's.
func (k *Kalah) Result() int {
	return k.sideStones(0) + k.Board[Store0] - k.sideStones(1) - k.Board[Store1]
}

func (k *Kalah) Clone() State {
	return k.Copy()
}

// Copy is Clone without the interface conversion.
func (k *Kalah) Copy() *Kalah {
	c := *k
	return &c
}

func (k *Kalah) Key() StateKey {
	var b [BoardSize + 1]byte
	for i, stones := range k.Board {
		b[i] = byte(stones)
	}
	b[BoardSize] = byte(keyPlayerMark + k.CurrentPlayer)
	return StateKey(b[:])
}

// LastPit returns the pit the last sown stone landed in, or -1 before any move.
func (k *Kalah) LastPit() int {
	return k.lastPit
}

// Store returns the stones in player's store.
func (k *Kalah) Store(player int) int {
	return k.Board[k.store(player)]
}

// IsOnSide reports whether pit (store included) is on player's side of the board.
func (k *Kalah) IsOnSide(pit int, player int) bool {
	if player == 0 {
		return pit >= 0 && pit <= Store0
	}
	return pit > Store0 && pit <= Store1
}

func (k *Kalah) store(player int) int {
	if player == 0 {
		return Store0
	}
	return Store1
}

func (k *Kalah) sideStones(player int) int {
	start := player * (PitsPerSide + 1)
	sum := 0
	for i := start; i < start+PitsPerSide; i++ {
		sum += k.Board[i]
	}
	return sum
}

// String renders the board with player 1's pits on top, right to left.
func (k *Kalah) String() string {
	var sb strings.Builder
	sb.WriteString("    ")
	for i := Store1 - 1; i > Store0; i-- {
		fmt.Fprintf(&sb, "%2d ", k.Board[i])
	}
	fmt.Fprintf(&sb, "\n%2d %s%2d\n    ", k.Board[Store1], strings.Repeat(" ", 3*PitsPerSide), k.Board[Store0])
	for i := 0; i < Store0; i++ {
		fmt.Fprintf(&sb, "%2d ", k.Board[i])
	}
	fmt.Fprintf(&sb, "\nplayer %d to move", k.CurrentPlayer)
	return sb.String()
}
