package engine

import "kalah/metrics"

// MaxTurns bounds a game when no limit is configured
const MaxTurns = 1000

type Runner interface {
	// Run plays a game until it ends or the turn limit is reached
	Run() (gameMetric metrics.GameMetric, moveMetrics []metrics.MoveMetric)
}
