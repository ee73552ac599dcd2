// Package config loads process configuration from flags, the environment
// (LINEA_ prefix) and an optional yaml config file, in that order of
// precedence.
package config

import (
	"flag"

	"github.com/spf13/viper"
)

// Config wraps the viper instance holding all settings.
type Config struct {
	v *viper.Viper
}

// The setting keys.
const (
	DebugKey         = "debug"
	SeedKey          = "seed"
	PliesKey         = "plies"
	MaxCandidatesKey = "max-candidates"
	PlayersKey       = "players"
	BotsKey          = "bots"
	DealSizeKey      = "deal-size"
	CopiesKey        = "copies"
	ResultsDBKey     = "results-db"
)

// New returns a Config with the defaults set.
func New() *Config {
	v := viper.New()
	v.SetDefault(DebugKey, false)
	v.SetDefault(SeedKey, int64(0))
	v.SetDefault(PliesKey, 2)
	v.SetDefault(MaxCandidatesKey, 20)
	v.SetDefault(PlayersKey, 2)
	v.SetDefault(BotsKey, 1)
	v.SetDefault(DealSizeKey, 6)
	v.SetDefault(CopiesKey, 3)
	v.SetDefault(ResultsDBKey, "")
	v.SetEnvPrefix("linea")
	v.AutomaticEnv()
	return &Config{v: v}
}

// Load parses the given command-line arguments and an optional config file
// named linea.yaml in the working directory.
func (c *Config) Load(args []string) error {
	fs := flag.NewFlagSet("linea", flag.ContinueOnError)
	debug := fs.Bool(DebugKey, c.v.GetBool(DebugKey), "debug logging on")
	seed := fs.Int64(SeedKey, c.v.GetInt64(SeedKey), "rng seed; 0 picks a random one")
	plies := fs.Int(PliesKey, c.v.GetInt(PliesKey), "search depth in plies")
	maxCand := fs.Int(MaxCandidatesKey, c.v.GetInt(MaxCandidatesKey), "candidate cap per search node")
	players := fs.Int(PlayersKey, c.v.GetInt(PlayersKey), "number of players")
	bots := fs.Int(BotsKey, c.v.GetInt(BotsKey), "number of automated players")
	dealSize := fs.Int(DealSizeKey, c.v.GetInt(DealSizeKey), "hand size")
	copies := fs.Int(CopiesKey, c.v.GetInt(CopiesKey), "copies of each tile in the bag")
	resultsDB := fs.String(ResultsDBKey, c.v.GetString(ResultsDBKey), "sqlite file for self-play results; empty disables")
	if err := fs.Parse(args); err != nil {
		return err
	}

	c.v.SetConfigName("linea")
	c.v.SetConfigType("yaml")
	c.v.AddConfigPath(".")
	if err := c.v.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			return err
		}
	}

	// Flags beat file and environment.
	fs.Visit(func(f *flag.Flag) {
		switch f.Name {
		case DebugKey:
			c.v.Set(DebugKey, *debug)
		case SeedKey:
			c.v.Set(SeedKey, *seed)
		case PliesKey:
			c.v.Set(PliesKey, *plies)
		case MaxCandidatesKey:
			c.v.Set(MaxCandidatesKey, *maxCand)
		case PlayersKey:
			c.v.Set(PlayersKey, *players)
		case BotsKey:
			c.v.Set(BotsKey, *bots)
		case DealSizeKey:
			c.v.Set(DealSizeKey, *dealSize)
		case CopiesKey:
			c.v.Set(CopiesKey, *copies)
		case ResultsDBKey:
			c.v.Set(ResultsDBKey, *resultsDB)
		}
	})
	return nil
}

func (c *Config) GetBool(key string) bool     { return c.v.GetBool(key) }
func (c *Config) GetInt(key string) int       { return c.v.GetInt(key) }
func (c *Config) GetInt64(key string) int64   { return c.v.GetInt64(key) }
func (c *Config) GetString(key string) string { return c.v.GetString(key) }

// AllSettings returns the effective settings, for logging at startup.
func (c *Config) AllSettings() map[string]any {
	return c.v.AllSettings()
}
