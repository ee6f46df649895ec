package searcher

import (
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"kalah/game"
)

func TestEntryBest(t *testing.T) {
	e := &entry{moves: []game.Move{0, 1, 2, 3}, values: []float64{1, 3, -2, 3}}

	t.Run("player 0 maximizes and keeps the earliest tie", func(t *testing.T) {
		require.Equal(t, 1, e.best(0))
	})

	t.Run("player 1 minimizes", func(t *testing.T) {
		require.Equal(t, 2, e.best(1))
	})
}

func TestBestFirstIterate(t *testing.T) {
	t.Run("each iteration grounds one new state or reaches a terminal state", func(t *testing.T) {
		evaluations := 0
		b := NewBestFirst(WithEvaluationFn(func(state game.State, player int) float64 {
			evaluations++
			return game.EvaluateKalah(game.DefaultWeights)(state, player)
		}))
		b.table = map[game.StateKey]*entry{}
		root := game.NewKalah()

		for i := 0; i < 200; i++ {
			size := len(b.table)
			evaluations = 0

			b.iterate(root.Clone())

			grown := len(b.table) - size
			require.Contains(t, []int{0, 1}, grown)
			if grown == 1 {
				require.LessOrEqual(t, evaluations, game.PitsPerSide, "Only the children of the new state are evaluated")
				require.Greater(t, evaluations, 0)
			} else {
				require.Equal(t, 1, evaluations, "Only the terminal state is evaluated")
			}
		}
	})

	t.Run("first iteration evaluates every root child", func(t *testing.T) {
		b := NewBestFirst(WithMetrics())
		b.table = map[game.StateKey]*entry{}
		root := game.NewKalah()

		b.iterate(root.Clone())

		e := b.table[root.Key()]
		require.Len(t, b.table, 1)
		require.Equal(t, root.LegalMoves(0), e.moves)
		evaluate := game.EvaluateKalah(game.DefaultWeights)
		for i, move := range e.moves {
			child := root.Copy()
			child.Apply(move, 0)
			require.Equal(t, evaluate(child, 0), e.values[i], "Values should be player 0's evaluation")
		}
		require.Equal(t, 6, b.options.Metrics.Complete().Evaluations)
	})

	t.Run("second iteration deepens only the best move", func(t *testing.T) {
		b := NewBestFirst()
		b.table = map[game.StateKey]*entry{}
		root := game.NewKalah()

		b.iterate(root.Clone())
		e := b.table[root.Key()]
		best := e.best(0)
		others := append([]float64(nil), e.values...)

		b.iterate(root.Clone())

		require.Len(t, b.table, 2)
		child := root.Copy()
		child.Apply(e.moves[best], 0)
		grounded := b.table[child.Key()]
		require.NotNil(t, grounded, "Best child should be grounded")
		require.Equal(t, grounded.values[grounded.best(child.Player())], e.values[best])
		for i := range others {
			if i != best {
				require.Equal(t, others[i], e.values[i], "Other branches should be untouched")
			}
		}
	})

	t.Run("terminal state returns its evaluation", func(t *testing.T) {
		b := NewBestFirst()
		b.table = map[game.StateKey]*entry{}
		terminal := game.NewKalahFrom([game.BoardSize]int{0, 0, 0, 0, 0, 0, 30, 1, 0, 0, 0, 0, 0, 17}, 1)

		require.Equal(t, 13.0, b.iterate(terminal))
		require.Empty(t, b.table)
	})
}

func TestBestFirstRun(t *testing.T) {
	t.Run("returns the root's best move within the budget", func(t *testing.T) {
		b := NewBestFirst(WithDuration(20 * time.Millisecond))

		move, value, err := b.Run(decisive())

		require.NoError(t, err)
		require.Equal(t, game.Move(5), move)
		require.Equal(t, 7.0, value)
	})

	t.Run("no progress when the budget is already spent", func(t *testing.T) {
		b := NewBestFirst()
		b.options.Duration = 0

		move, _, err := b.Run(game.NewKalah())

		require.ErrorIs(t, err, ErrNoProgress)
		require.Equal(t, game.NoMove, move)
	})
}

func TestBestFirstFindNextMove(t *testing.T) {
	t.Run("finds the winning move", func(t *testing.T) {
		b := NewBestFirst(WithDuration(20*time.Millisecond), WithMetrics())

		move, metric := b.FindNextMove(decisive())

		require.Equal(t, game.Move(5), move)
		require.Equal(t, string(UBFM), metric.Strategy)
		require.Greater(t, metric.Iterations, 0)
		require.Greater(t, metric.TableSize, 0)
		require.Nil(t, b.table, "Table should not outlive the search")
	})

	t.Run("grounds the root when the budget is already spent", func(t *testing.T) {
		b := NewBestFirst(WithMetrics())
		b.options.Duration = 0

		move, metric := b.FindNextMove(decisive())

		require.Equal(t, game.Move(5), move)
		require.Equal(t, 1, metric.TableSize)
		require.Equal(t, 2, metric.Evaluations)
	})

	t.Run("plays for player 1", func(t *testing.T) {
		state := game.NewKalahFrom([game.BoardSize]int{5, 0, 0, 0, 0, 0, 0, 0, 0, 0, 0, 1, 1, 0}, 1)

		move, _ := NewBestFirst(WithDuration(20 * time.Millisecond)).FindNextMove(state)

		require.Equal(t, game.Move(12), move)
	})
}
