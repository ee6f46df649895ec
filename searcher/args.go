package searcher

import (
	"time"

	"kalah/game"
	"kalah/metrics"
)

// Default hyperparameters
const (
	DefaultExploration    = 1.4
	DefaultRaveBeta       = 300.0
	DefaultPUCTWeight     = 1.0
	DefaultShussC         = 128.0
	DefaultGraveThreshold = 30
	DefaultIterations     = 1000
	DefaultLevel          = 1
	DefaultDepth          = 2
	DefaultDuration       = time.Second
)

// epsilon keeps means and exploration terms finite for unvisited statistics
const epsilon = 1e-4

// Options holds every hyperparameter of every strategy; each strategy reads the ones it needs.
type Options struct {
	Exploration    float64       // UCT exploration constant c
	RaveBeta       float64       // RAVE/GRAVE beta constant
	PUCTWeight     float64       // PUCT prior weight c_puct
	ShussC         float64       // SHUSS AMAF blend constant
	GraveThreshold int           // GRAVE ancestor visit threshold
	Iterations     int           // MCTS playouts, halving budget, NRPA iterations per level
	Level          int           // NMCS/NRPA nesting level
	Depth          int           // alpha-beta depth bound
	Duration       time.Duration // UBFM wall-clock budget
	Discounting    bool          // NMCS: divide terminal values by depth
	PruneOnDepth   bool          // NMCS: pass the best value down as a bound
	CutOnWin       bool          // NMCS: stop scanning moves after a win
	Seed           uint64        // zero seeds from the clock
	Evaluate       game.Evaluate
	Metrics        metrics.Collector
}

type Option func(o *Options)

func DefaultOptions() Options {
	return Options{
		Exploration:    DefaultExploration,
		RaveBeta:       DefaultRaveBeta,
		PUCTWeight:     DefaultPUCTWeight,
		ShussC:         DefaultShussC,
		GraveThreshold: DefaultGraveThreshold,
		Iterations:     DefaultIterations,
		Level:          DefaultLevel,
		Depth:          DefaultDepth,
		Duration:       DefaultDuration,
		Discounting:    true,
		PruneOnDepth:   true,
		CutOnWin:       true,
		Evaluate:       game.EvaluateKalah(game.DefaultWeights),
		Metrics:        metrics.NewDummyCollector(),
	}
}

func newOptions(options []Option) Options {
	o := DefaultOptions()
	for _, option := range options {
		option(&o)
	}
	return o
}

func WithExploration(c float64) Option {
	return func(o *Options) {
		if c > 0 {
			o.Exploration = c
		}
	}
}

func WithRaveBeta(beta float64) Option {
	return func(o *Options) {
		if beta > 0 {
			o.RaveBeta = beta
		}
	}
}

func WithPUCTWeight(c float64) Option {
	return func(o *Options) {
		if c > 0 {
			o.PUCTWeight = c
		}
	}
}

func WithShussC(c float64) Option {
	return func(o *Options) {
		if c > 0 {
			o.ShussC = c
		}
	}
}

func WithGraveThreshold(visits int) Option {
	return func(o *Options) {
		if visits > 0 {
			o.GraveThreshold = visits
		}
	}
}

func WithIterations(iterations int) Option {
	return func(o *Options) {
		if iterations > 0 {
			o.Iterations = iterations
		}
	}
}

func WithLevel(level int) Option {
	return func(o *Options) {
		if level >= 0 {
			o.Level = level
		}
	}
}

func WithDepth(depth int) Option {
	return func(o *Options) {
		if depth > 0 {
			o.Depth = depth
		}
	}
}

func WithDuration(duration time.Duration) Option {
	return func(o *Options) {
		if duration > 0 {
			o.Duration = duration
		}
	}
}

// WithNesting sets the NMCS switches.
func WithNesting(discounting, pruneOnDepth, cutOnWin bool) Option {
	return func(o *Options) {
		o.Discounting = discounting
		o.PruneOnDepth = pruneOnDepth
		o.CutOnWin = cutOnWin
	}
}

func WithSeed(seed uint64) Option {
	return func(o *Options) {
		o.Seed = seed
	}
}

func WithEvaluationFn(evaluate game.Evaluate) Option {
	return func(o *Options) {
		if evaluate != nil {
			o.Evaluate = evaluate
		}
	}
}

func WithMetrics() Option {
	return func(o *Options) {
		o.Metrics = metrics.NewCollector()
	}
}
