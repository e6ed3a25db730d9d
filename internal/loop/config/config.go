// Package config centralizes all tunable game parameters.
package config

import (
	"errors"
	"fmt"

	envconfig "github.com/tomz197/spacegame/internal/config"
)

// Grid
const (
	GridWidth  = 25
	GridHeight = 18
)

// Hazards
const (
	BlackHoleChance  = 0.07
	PulsarChance     = 0.03
	HazardStep       = 0.01 // Added to both chances per cleared level
	MaxHazardDensity = 0.9  // BlackHoleChance+PulsarChance ceiling
)

// Hull
const (
	PlayerHull = 100
	AlienHull  = 50
	AlienHeal  = 10 // Restored when an alien runs over an asteroid
)

// Damage
const (
	MeleeDamage   = 30
	PulsarDamage  = 10 // Per active pulsar cell around the player
	LaserDamage   = 20
	BlasterDamage = 30
)

// Scoring
const (
	PointsPerLevel = 10
	LevelCap       = 10
	BumpPenalty    = 1 // Deducted for moving into a black hole
)

// Spawning
const (
	BaseAliens      = 2  // Aliens on the first level; one more per cleared level
	AsteroidDivisor = 10 // One asteroid per this many vacant cells
)

// Schedule (turn modulo period == phase)
const (
	PulsarPeriod   = 20
	PulsarOnPhase  = 0
	PulsarOffPhase = 5
	AsteroidPeriod = 10
	AsteroidPhase  = 5
)

// Volley
const (
	VolleyLifetime = 5 // Turns a volley may stay alive before it is cleared
)

// ErrInvalidSettings wraps every validation failure.
var ErrInvalidSettings = errors.New("invalid settings")

// Settings holds every tunable the engine reads.
type Settings struct {
	Width  int
	Height int

	BlackHoleChance  float64
	PulsarChance     float64
	HazardStep       float64
	MaxHazardDensity float64

	PlayerHull int
	AlienHull  int
	AlienHeal  int

	MeleeDamage   int
	PulsarDamage  int
	LaserDamage   int
	BlasterDamage int

	PointsPerLevel int
	LevelCap       int
	BumpPenalty    int

	BaseAliens      int
	AsteroidDivisor int

	PulsarPeriod   int
	PulsarOnPhase  int
	PulsarOffPhase int
	AsteroidPeriod int
	AsteroidPhase  int

	VolleyLifetime int
	// AutoFire launches a new volley on its own once the previous one has
	// dissipated.
	AutoFire bool
}

// Default returns the reference settings.
func Default() Settings {
	return Settings{
		Width:            GridWidth,
		Height:           GridHeight,
		BlackHoleChance:  BlackHoleChance,
		PulsarChance:     PulsarChance,
		HazardStep:       HazardStep,
		MaxHazardDensity: MaxHazardDensity,
		PlayerHull:       PlayerHull,
		AlienHull:        AlienHull,
		AlienHeal:        AlienHeal,
		MeleeDamage:      MeleeDamage,
		PulsarDamage:     PulsarDamage,
		LaserDamage:      LaserDamage,
		BlasterDamage:    BlasterDamage,
		PointsPerLevel:   PointsPerLevel,
		LevelCap:         LevelCap,
		BumpPenalty:      BumpPenalty,
		BaseAliens:       BaseAliens,
		AsteroidDivisor:  AsteroidDivisor,
		PulsarPeriod:     PulsarPeriod,
		PulsarOnPhase:    PulsarOnPhase,
		PulsarOffPhase:   PulsarOffPhase,
		AsteroidPeriod:   AsteroidPeriod,
		AsteroidPhase:    AsteroidPhase,
		VolleyLifetime:   VolleyLifetime,
	}
}

// FromEnv returns Default overlaid with SPACEGAME_* environment variables.
func FromEnv() (Settings, error) {
	s := Default()

	ints := []struct {
		key string
		dst *int
	}{
		{"SPACEGAME_GRID_WIDTH", &s.Width},
		{"SPACEGAME_GRID_HEIGHT", &s.Height},
		{"SPACEGAME_PLAYER_HULL", &s.PlayerHull},
		{"SPACEGAME_ALIEN_HULL", &s.AlienHull},
		{"SPACEGAME_ALIEN_HEAL", &s.AlienHeal},
		{"SPACEGAME_MELEE_DAMAGE", &s.MeleeDamage},
		{"SPACEGAME_PULSAR_DAMAGE", &s.PulsarDamage},
		{"SPACEGAME_LASER_DAMAGE", &s.LaserDamage},
		{"SPACEGAME_BLASTER_DAMAGE", &s.BlasterDamage},
		{"SPACEGAME_POINTS_PER_LEVEL", &s.PointsPerLevel},
		{"SPACEGAME_LEVEL_CAP", &s.LevelCap},
		{"SPACEGAME_BUMP_PENALTY", &s.BumpPenalty},
		{"SPACEGAME_BASE_ALIENS", &s.BaseAliens},
		{"SPACEGAME_ASTEROID_DIVISOR", &s.AsteroidDivisor},
		{"SPACEGAME_VOLLEY_LIFETIME", &s.VolleyLifetime},
	}
	for _, f := range ints {
		v, err := envconfig.GetEnvInt(f.key, *f.dst)
		if err != nil {
			return s, err
		}
		*f.dst = v
	}

	floats := []struct {
		key string
		dst *float64
	}{
		{"SPACEGAME_BLACK_HOLE_CHANCE", &s.BlackHoleChance},
		{"SPACEGAME_PULSAR_CHANCE", &s.PulsarChance},
		{"SPACEGAME_HAZARD_STEP", &s.HazardStep},
		{"SPACEGAME_MAX_HAZARD_DENSITY", &s.MaxHazardDensity},
	}
	for _, f := range floats {
		v, err := envconfig.GetEnvFloat(f.key, *f.dst)
		if err != nil {
			return s, err
		}
		*f.dst = v
	}

	autoFire, err := envconfig.GetEnvBool("SPACEGAME_AUTO_FIRE", s.AutoFire)
	if err != nil {
		return s, err
	}
	s.AutoFire = autoFire

	return s, s.Validate()
}

// Validate reports the first setting that cannot produce a playable game.
func (s Settings) Validate() error {
	switch {
	case s.Width < 1 || s.Height < 1:
		return invalid("grid %dx%d must be at least 1x1", s.Width, s.Height)
	case s.BlackHoleChance < 0 || s.BlackHoleChance >= 1:
		return invalid("black hole chance %.2f outside [0,1)", s.BlackHoleChance)
	case s.PulsarChance < 0 || s.PulsarChance >= 1:
		return invalid("pulsar chance %.2f outside [0,1)", s.PulsarChance)
	case s.HazardStep < 0:
		return invalid("hazard step %.2f is negative", s.HazardStep)
	case s.MaxHazardDensity <= 0 || s.MaxHazardDensity >= 1:
		return invalid("max hazard density %.2f outside (0,1)", s.MaxHazardDensity)
	case s.BlackHoleChance+s.PulsarChance > s.MaxHazardDensity:
		return invalid("hazard density %.2f above %.2f", s.BlackHoleChance+s.PulsarChance, s.MaxHazardDensity)
	case s.PlayerHull < 1 || s.AlienHull < 1:
		return invalid("hulls must be positive (player %d, alien %d)", s.PlayerHull, s.AlienHull)
	case s.AlienHeal < 0 || s.MeleeDamage < 0 || s.PulsarDamage < 0 || s.LaserDamage < 0 || s.BlasterDamage < 0:
		return invalid("damage and heal amounts must not be negative")
	case s.PointsPerLevel < 1 || s.LevelCap < 1:
		return invalid("points per level %d and level cap %d must be positive", s.PointsPerLevel, s.LevelCap)
	case s.BumpPenalty < 0:
		return invalid("bump penalty %d is negative", s.BumpPenalty)
	case s.BaseAliens < 0:
		return invalid("base aliens %d is negative", s.BaseAliens)
	case s.AsteroidDivisor < 1:
		return invalid("asteroid divisor %d must be positive", s.AsteroidDivisor)
	case s.PulsarPeriod < 1 || s.AsteroidPeriod < 1:
		return invalid("periods must be positive (pulsar %d, asteroid %d)", s.PulsarPeriod, s.AsteroidPeriod)
	case !inPeriod(s.PulsarOnPhase, s.PulsarPeriod) || !inPeriod(s.PulsarOffPhase, s.PulsarPeriod):
		return invalid("pulsar phases %d/%d outside period %d", s.PulsarOnPhase, s.PulsarOffPhase, s.PulsarPeriod)
	case !inPeriod(s.AsteroidPhase, s.AsteroidPeriod):
		return invalid("asteroid phase %d outside period %d", s.AsteroidPhase, s.AsteroidPeriod)
	case s.VolleyLifetime < 1:
		return invalid("volley lifetime %d must be positive", s.VolleyLifetime)
	}
	return nil
}

// Aliens returns how many aliens a level starts with after cleared levels.
func (s Settings) Aliens(cleared int) int {
	return cleared + s.BaseAliens
}

// Chances returns the hazard chances in effect after cleared levels.
func (s Settings) Chances(cleared int) (blackHole, pulsar float64) {
	step := s.HazardStep * float64(cleared)
	return s.BlackHoleChance + step, s.PulsarChance + step
}

func inPeriod(phase, period int) bool {
	return phase >= 0 && phase < period
}

func invalid(format string, args ...any) error {
	return fmt.Errorf("%w: "+format, append([]any{ErrInvalidSettings}, args...)...)
}
