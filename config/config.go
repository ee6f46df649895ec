package config

import (
	"fmt"
	"strings"
	"time"

	"github.com/rs/zerolog"
	"github.com/spf13/viper"
	"golang.org/x/exp/slices"

	"kalah/engine"
	"kalah/searcher"
)

const envPrefix = "KALAH"

type AgentConfig struct {
	Strategy       string  `mapstructure:"STRATEGY"`
	Iterations     int     `mapstructure:"ITERATIONS"`
	Duration       string  `mapstructure:"DURATION"`
	Depth          int     `mapstructure:"DEPTH"`
	Level          int     `mapstructure:"LEVEL"`
	Exploration    float64 `mapstructure:"EXPLORATION"`
	RaveBeta       float64 `mapstructure:"RAVE_BETA"`
	PUCTWeight     float64 `mapstructure:"PUCT_WEIGHT"`
	ShussC         float64 `mapstructure:"SHUSS_C"`
	GraveThreshold int     `mapstructure:"GRAVE_THRESHOLD"`
	Discounting    bool    `mapstructure:"DISCOUNTING"`
	PruneOnDepth   bool    `mapstructure:"PRUNE_ON_DEPTH"`
	CutOnWin       bool    `mapstructure:"CUT_ON_WIN"`
	Seed           uint64  `mapstructure:"SEED"`
	Metrics        bool    `mapstructure:"METRICS"`
}

type Config struct {
	LogLevel string      `mapstructure:"LOG_LEVEL"`
	MaxTurns int         `mapstructure:"MAX_TURNS"`
	Player0  AgentConfig `mapstructure:"PLAYER0"`
	Player1  AgentConfig `mapstructure:"PLAYER1"`
}

// Setup reads the configuration file at cfgPath, if any, and applies KALAH_* environment overrides,
// e.g. KALAH_PLAYER1_STRATEGY=nrpa.
func Setup(cfgPath string) (*Config, error) {
	v := viper.New()
	setDefaults(v)
	v.SetEnvPrefix(envPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	if cfgPath != "" {
		v.SetConfigFile(cfgPath)
		err := v.ReadInConfig()
		if err != nil {
			return nil, fmt.Errorf("failed to read config: %w", err)
		}
	}

	var cfg Config
	err := v.Unmarshal(&cfg)
	if err != nil {
		return nil, fmt.Errorf("failed to decode config: %w", err)
	}

	err = cfg.validate()
	if err != nil {
		return nil, err
	}
	return &cfg, nil
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("log_level", zerolog.LevelInfoValue)
	v.SetDefault("max_turns", engine.MaxTurns)

	defaults := searcher.DefaultOptions()
	for _, player := range []string{"player0", "player1"} {
		v.SetDefault(player+".strategy", string(searcher.UCT))
		v.SetDefault(player+".iterations", defaults.Iterations)
		v.SetDefault(player+".duration", defaults.Duration.String())
		v.SetDefault(player+".depth", defaults.Depth)
		v.SetDefault(player+".level", defaults.Level)
		v.SetDefault(player+".exploration", defaults.Exploration)
		v.SetDefault(player+".rave_beta", defaults.RaveBeta)
		v.SetDefault(player+".puct_weight", defaults.PUCTWeight)
		v.SetDefault(player+".shuss_c", defaults.ShussC)
		v.SetDefault(player+".grave_threshold", defaults.GraveThreshold)
		v.SetDefault(player+".discounting", defaults.Discounting)
		v.SetDefault(player+".prune_on_depth", defaults.PruneOnDepth)
		v.SetDefault(player+".cut_on_win", defaults.CutOnWin)
		v.SetDefault(player+".seed", defaults.Seed)
		v.SetDefault(player+".metrics", false)
	}
}

func (c *Config) validate() error {
	_, err := c.Level()
	if err != nil {
		return err
	}
	if c.MaxTurns <= 0 {
		return fmt.Errorf("max turns must be positive, got %d", c.MaxTurns)
	}
	for i, agent := range []AgentConfig{c.Player0, c.Player1} {
		if !slices.Contains(searcher.Kinds, searcher.Kind(agent.Strategy)) {
			return fmt.Errorf("player %d: %w: %q", i, searcher.ErrUnknownKind, agent.Strategy)
		}
		_, err = time.ParseDuration(agent.Duration)
		if err != nil {
			return fmt.Errorf("player %d: invalid duration: %w", i, err)
		}
	}
	return nil
}

// Level parses the configured log level.
func (c *Config) Level() (zerolog.Level, error) {
	level, err := zerolog.ParseLevel(c.LogLevel)
	if err != nil {
		return zerolog.NoLevel, fmt.Errorf("invalid log level: %w", err)
	}
	return level, nil
}

// Agents returns the searchers of player 0 and player 1.
func (c *Config) Agents() ([]searcher.Searcher, error) {
	agents := make([]searcher.Searcher, 0, 2)
	for i, agent := range []AgentConfig{c.Player0, c.Player1} {
		s, err := agent.Searcher()
		if err != nil {
			return nil, fmt.Errorf("player %d: %w", i, err)
		}
		agents = append(agents, s)
	}
	return agents, nil
}

func (a AgentConfig) Searcher() (searcher.Searcher, error) {
	return searcher.New(searcher.Kind(a.Strategy), a.Options()...)
}

// Options converts the agent configuration to searcher options. Non-positive values keep the defaults.
func (a AgentConfig) Options() []searcher.Option {
	options := []searcher.Option{
		searcher.WithIterations(a.Iterations),
		searcher.WithDepth(a.Depth),
		searcher.WithLevel(a.Level),
		searcher.WithExploration(a.Exploration),
		searcher.WithRaveBeta(a.RaveBeta),
		searcher.WithPUCTWeight(a.PUCTWeight),
		searcher.WithShussC(a.ShussC),
		searcher.WithGraveThreshold(a.GraveThreshold),
		searcher.WithNesting(a.Discounting, a.PruneOnDepth, a.CutOnWin),
		searcher.WithSeed(a.Seed),
	}
	duration, err := time.ParseDuration(a.Duration)
	if err == nil {
		options = append(options, searcher.WithDuration(duration))
	}
	if a.Metrics {
		options = append(options, searcher.WithMetrics())
	}
	return options
}
