package client

import (
	"golang.org/x/time/rate"

	envconfig "github.com/tomz197/spacegame/internal/config"
	"github.com/tomz197/spacegame/internal/loop/config"
)

// Input limiting defaults
const (
	DefaultKeyRate  = 20 // Accepted keys per second
	DefaultKeyBurst = 5
)

// OptionsFromEnv returns Options filled from the environment: the game
// settings (SPACEGAME_*), SPACEGAME_SEED, INPUT_RATE and INPUT_BURST.
// Terminal size, logger, observer and username are left for the caller.
func OptionsFromEnv() (Options, error) {
	settings, err := config.FromEnv()
	if err != nil {
		return Options{}, err
	}
	seed, err := envconfig.GetEnvInt64("SPACEGAME_SEED", 0)
	if err != nil {
		return Options{}, err
	}
	keyRate, err := envconfig.GetEnvFloat("INPUT_RATE", DefaultKeyRate)
	if err != nil {
		return Options{}, err
	}
	keyBurst, err := envconfig.GetEnvInt("INPUT_BURST", DefaultKeyBurst)
	if err != nil {
		return Options{}, err
	}

	return Options{
		Settings: settings,
		Seed:     seed,
		KeyRate:  rate.Limit(keyRate),
		KeyBurst: keyBurst,
	}, nil
}
