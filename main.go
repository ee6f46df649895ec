package main

import (
	"flag"
	"os"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"

	"kalah/config"
	"kalah/engine"
	"kalah/game"
)

func main() {
	cfgPath := flag.String("config", "", "Path to a YAML config file; KALAH_* environment variables override it")
	flag.Parse()

	log.Logger = log.Output(zerolog.ConsoleWriter{Out: os.Stderr})

	cfg, err := config.Setup(*cfgPath)
	if err != nil {
		log.Fatal().Err(err).Msg("failed to load config")
	}
	level, err := cfg.Level()
	if err != nil {
		log.Fatal().Err(err).Msg("failed to set log level")
	}
	zerolog.SetGlobalLevel(level)

	agents, err := cfg.Agents()
	if err != nil {
		log.Fatal().Err(err).Msg("failed to create agents")
	}

	log.Info().
		Str("player0", cfg.Player0.Strategy).
		Str("player1", cfg.Player1.Strategy).
		Msg("starting game")

	e := engine.LocalEngine(agents, game.NewKalah())
	e.MaxTurns = cfg.MaxTurns
	gameMetric, moveMetrics := e.Run()

	for _, m := range moveMetrics {
		log.Debug().
			Int("step", m.Step).
			Int("player", m.Player).
			Int("move", m.Move).
			Str("strategy", m.Strategy).
			Int("iterations", m.Iterations).
			Int("evaluations", m.Evaluations).
			Dur("duration", m.Duration).
			Msg("move metric")
	}
	log.Info().Msgf("final position\n%v", e.State)
	log.Info().
		Int("result", gameMetric.Result).
		Int("winner", gameMetric.Winner).
		Int("moves", gameMetric.TotalMoves).
		Dur("duration", gameMetric.Duration).
		Msg("game finished")
}
