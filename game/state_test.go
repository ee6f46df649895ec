package game

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestKalahApply(t *testing.T) {
	t.Run("sowing into the own store grants an extra turn", func(t *testing.T) {
		k := NewKalah()

		next := k.Apply(2, 0)

		require.Equal(t, 0, next, "Player should keep the move")
		require.Equal(t, [BoardSize]int{4, 4, 0, 5, 5, 5, 1, 4, 4, 4, 4, 4, 4, 0}, k.Board)
		require.Equal(t, Store0, k.LastPit())
	})

	t.Run("sowing elsewhere passes the turn", func(t *testing.T) {
		k := NewKalah()

		next := k.Apply(0, 0)

		require.Equal(t, 1, next, "Turn should pass to the opponent")
		require.Equal(t, 1, k.Player())
		require.Equal(t, 4, k.LastPit())
	})

	t.Run("last stone in an own empty pit captures the opposite pit", func(t *testing.T) {
		k := NewKalahFrom([BoardSize]int{0, 1, 0, 0, 0, 2, 0, 1, 1, 1, 3, 1, 1, 0}, 0)

		k.Apply(1, 0)

		require.Equal(t, 0, k.Board[1])
		require.Equal(t, 0, k.Board[2], "Capturing pit should be emptied")
		require.Equal(t, 0, k.Board[10], "Opposite pit should be emptied")
		require.Equal(t, 4, k.Store(0), "Captured stones should go to the store")
		require.Equal(t, 1, k.Player())
	})

	t.Run("sowing skips the opponent's store", func(t *testing.T) {
		k := NewKalahFrom([BoardSize]int{0, 0, 0, 0, 0, 9, 0, 1, 0, 0, 0, 0, 0, 0}, 0)

		k.Apply(5, 0)

		require.Equal(t, 0, k.Board[Store1], "Opponent's store should not receive stones")
		require.Equal(t, 1, k.Board[0])
		require.Equal(t, 2, k.Board[7])
		require.Equal(t, 0, k.Board[1], "Landing pit should be captured")
		require.Equal(t, 0, k.Board[11], "Opposite pit should be captured")
		require.Equal(t, 3, k.Store(0))
		require.Equal(t, -2, k.Result())
	})

	t.Run("no move passes without touching the board", func(t *testing.T) {
		k := NewKalah()
		before := k.Board

		next := k.Apply(NoMove, 0)

		require.Equal(t, 1, next)
		require.Equal(t, before, k.Board)
	})
}

func TestKalahLegalMoves(t *testing.T) {
	t.Run("non-empty pits of the side", func(t *testing.T) {
		k := NewKalahFrom([BoardSize]int{1, 0, 2, 0, 0, 3, 0, 0, 5, 0, 0, 0, 1, 0}, 0)

		require.Equal(t, []Move{0, 2, 5}, k.LegalMoves(0))
		require.Equal(t, []Move{8, 12}, k.LegalMoves(1))
	})

	t.Run("sentinel when the side cannot move", func(t *testing.T) {
		k := NewKalahFrom([BoardSize]int{0, 0, 0, 0, 0, 0, 10, 0, 5, 0, 0, 0, 1, 4}, 0)

		require.Equal(t, []Move{NoMove}, k.LegalMoves(0))
		require.True(t, k.IsTerminal())
		require.Equal(t, 10-10, k.Result())
	})
}

func TestKalahCloneAndKey(t *testing.T) {
	k := NewKalah()
	c := k.Clone()

	require.Equal(t, k.Key(), c.Key(), "Clones should share a key")

	c.Apply(0, 0)

	require.Equal(t, [BoardSize]int{4, 4, 4, 4, 4, 4, 0, 4, 4, 4, 4, 4, 4, 0}, k.Board, "Original should not change")
	require.NotEqual(t, k.Key(), c.Key())

	same := NewKalahFrom(k.Board, 1)
	require.NotEqual(t, k.Key(), same.Key(), "Key should include the side to move")
}

func TestEvaluateKalah(t *testing.T) {
	evaluate := EvaluateKalah(DefaultWeights)

	t.Run("symmetric start is even", func(t *testing.T) {
		require.InDelta(t, 0.0, evaluate(NewKalah(), 0), 1e-9)
	})

	t.Run("weighs store and extra turn differences", func(t *testing.T) {
		k := NewKalah()
		k.Apply(2, 0)

		require.InDelta(t, 1-0.7, evaluate(k, 0), 1e-9)
		require.InDelta(t, -(1 - 0.7), evaluate(k, 1), 1e-9, "Evaluation should be zero-sum")
	})

	t.Run("counts capturing moves", func(t *testing.T) {
		k := NewKalahFrom([BoardSize]int{0, 1, 0, 0, 0, 2, 0, 1, 1, 1, 3, 1, 1, 0}, 0)

		require.Equal(t, 1, k.countCaptures(0))
	})

	t.Run("panics on a foreign state", func(t *testing.T) {
		require.Panics(t, func() {
			evaluate(nil, 0)
		})
	})
}
