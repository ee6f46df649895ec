package engine

import (
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog/log"
	"golang.org/x/exp/slices"

	"kalah/game"
	"kalah/metrics"
	"kalah/searcher"
)

// Engine plays a game between two searchers in process; Agents[p] moves for player p.
type Engine struct {
	ID       uuid.UUID
	State    game.State
	Agents   []searcher.Searcher
	MaxTurns int
}

func LocalEngine(agents []searcher.Searcher, state game.State) *Engine {
	if len(agents) != 2 {
		panic("need exactly two agents")
	}

	return &Engine{
		ID:       uuid.New(),
		State:    state.Clone(),
		Agents:   agents,
		MaxTurns: MaxTurns,
	}
}

// Run executes the game loop until the game ends or MaxTurns moves were played.
func (e *Engine) Run() (metrics.GameMetric, []metrics.MoveMetric) {
	gameMetric := metrics.GameMetric{
		ID:             e.ID.String(),
		StartingPlayer: e.State.Player(),
		StartTime:      time.Now(),
	}
	log.Info().Str("game", gameMetric.ID).Msgf("player %d is starting", gameMetric.StartingPlayer)

	var moveMetrics []metrics.MoveMetric
	turn := 1
	for !e.State.IsTerminal() && turn <= e.MaxTurns {
		player := e.State.Player()
		move, searchMetric := e.Agents[player].FindNextMove(e.State)

		legal := e.State.LegalMoves(player)
		if !slices.Contains(legal, move) {
			log.Warn().
				Str("game", gameMetric.ID).
				Int("player", player).
				Int("move", int(move)).
				Msg("searcher returned an illegal move, playing the first legal move")
			move = legal[0]
		}
		if move == game.NoMove {
			gameMetric.Passes++
		}

		moveMetrics = append(moveMetrics, metrics.MoveMetric{
			Step:         turn,
			Player:       player,
			Move:         int(move),
			SearchMetric: searchMetric,
		})
		next := e.State.Apply(move, player)
		log.Debug().
			Int("turn", turn).
			Int("player", player).
			Int("move", int(move)).
			Int("next", next).
			Dur("duration", searchMetric.Duration).
			Msg("move played")
		turn++
	}

	gameMetric.EndTime = time.Now()
	gameMetric.Duration = gameMetric.EndTime.Sub(gameMetric.StartTime)
	gameMetric.TotalMoves = len(moveMetrics)
	gameMetric.Result = e.State.Result()
	gameMetric.Winner = -1

	if e.State.IsTerminal() {
		gameMetric.Winner = winner(gameMetric.Result)
		log.Info().
			Str("game", gameMetric.ID).
			Int("result", gameMetric.Result).
			Int("winner", gameMetric.Winner).
			Int("moves", gameMetric.TotalMoves).
			Msg("game over")
	} else {
		log.Info().Str("game", gameMetric.ID).Msgf("stopped after %d turns without a result", e.MaxTurns)
	}

	return gameMetric, moveMetrics
}

// winner maps a score difference to the winning player, -1 on a draw
func winner(result int) int {
	switch {
	case result > 0:
		return 0
	case result < 0:
		return 1
	default:
		return -1
	}
}
