package searcher

import (
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"kalah/game"
)

// fast keeps every strategy's budget small enough for unit tests
func fast(seed uint64) []Option {
	return []Option{
		WithIterations(200),
		WithDuration(20 * time.Millisecond),
		WithShussC(0.01),
		WithSeed(seed),
		WithMetrics(),
	}
}

func TestNew(t *testing.T) {
	t.Run("every kind has a searcher", func(t *testing.T) {
		for _, kind := range Kinds {
			s, err := New(kind)
			require.NoError(t, err, string(kind))
			require.NotNil(t, s, string(kind))
		}
	})

	t.Run("unknown kind", func(t *testing.T) {
		s, err := New("expectimax")
		require.ErrorIs(t, err, ErrUnknownKind)
		require.Nil(t, s)
	})
}

func TestFindNextMove(t *testing.T) {
	t.Run("single legal move short circuits", func(t *testing.T) {
		state := game.NewKalahFrom([game.BoardSize]int{0, 0, 3, 0, 0, 0, 0, 1, 1, 0, 0, 0, 0, 0}, 0)

		for _, kind := range Kinds {
			s, err := New(kind, fast(1)...)
			require.NoError(t, err)

			move, metric := s.FindNextMove(state)

			require.Equal(t, game.Move(2), move, string(kind))
			require.True(t, metric.ShortCircuit, string(kind))
			require.Zero(t, metric.Evaluations, string(kind))
			require.Zero(t, metric.Rollouts, string(kind))
			require.Zero(t, metric.Iterations, string(kind))
			require.Equal(t, string(kind), metric.Strategy)
		}
	})

	t.Run("side without stones passes", func(t *testing.T) {
		state := game.NewKalahFrom([game.BoardSize]int{0, 0, 0, 0, 0, 0, 20, 1, 0, 0, 0, 0, 0, 27}, 0)

		for _, kind := range Kinds {
			s, err := New(kind, fast(1)...)
			require.NoError(t, err)

			move, metric := s.FindNextMove(state)

			require.Equal(t, game.NoMove, move, string(kind))
			require.True(t, metric.ShortCircuit, string(kind))
		}
	})

	t.Run("every strategy finds the winning move", func(t *testing.T) {
		for _, kind := range Kinds {
			if kind == NRPA {
				// rollout sampling can miss the line for a given seed, see TestPolicyAdaptationFindNextMove
				continue
			}
			s, err := New(kind, fast(3)...)
			require.NoError(t, err)
			state := decisive()

			move, metric := s.FindNextMove(state)

			require.Equal(t, game.Move(5), move, string(kind))
			require.Equal(t, decisive(), state, "%s should not modify the state", kind)
			require.False(t, metric.ShortCircuit, string(kind))
		}
	})

	t.Run("every strategy returns a legal move", func(t *testing.T) {
		positions := []*game.Kalah{
			game.NewKalah(),
			game.NewKalahFrom([game.BoardSize]int{4, 4, 4, 4, 4, 4, 0, 4, 4, 0, 4, 4, 4, 0}, 1),
			game.NewKalahFrom([game.BoardSize]int{0, 2, 0, 1, 0, 3, 10, 1, 0, 2, 0, 0, 1, 8}, 0),
		}
		for _, kind := range Kinds {
			for _, state := range positions {
				s, err := New(kind, fast(5)...)
				require.NoError(t, err)

				move, _ := s.FindNextMove(state)

				require.Contains(t, state.LegalMoves(state.Player()), move, string(kind))
			}
		}
	})
}
