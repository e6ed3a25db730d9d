package client

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/time/rate"

	"github.com/tomz197/spacegame/internal/loop/config"
)

func TestOptionsFromEnv(t *testing.T) {
	t.Setenv("SPACEGAME_SEED", "42")
	t.Setenv("INPUT_RATE", "2.5")
	t.Setenv("SPACEGAME_LEVEL_CAP", "3")

	opts, err := OptionsFromEnv()
	require.NoError(t, err)
	assert.Equal(t, int64(42), opts.Seed)
	assert.Equal(t, rate.Limit(2.5), opts.KeyRate)
	assert.Equal(t, DefaultKeyBurst, opts.KeyBurst)
	assert.Equal(t, 3, opts.Settings.LevelCap)
}

func TestOptionsFromEnvErrors(t *testing.T) {
	t.Setenv("INPUT_BURST", "many")
	_, err := OptionsFromEnv()
	assert.Error(t, err)

	t.Setenv("INPUT_BURST", "")
	t.Setenv("SPACEGAME_GRID_WIDTH", "0")
	_, err = OptionsFromEnv()
	assert.ErrorIs(t, err, config.ErrInvalidSettings)
}
