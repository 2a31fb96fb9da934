package parameter

import (
	"errors"
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/BurntSushi/toml"
)

// ErrInvalidConfig wraps every validation failure from Load
var ErrInvalidConfig = errors.New("invalid config")

// Config is the runtime-tunable subset of the constants in this package
type Config struct {
	Engine  EngineConfig  `toml:"engine"`
	Physics PhysicsConfig `toml:"physics"`
	Scene   SceneConfig   `toml:"scene"`
	Input   InputConfig   `toml:"input"`
}

type EngineConfig struct {
	TickInterval  time.Duration `toml:"tick_interval"`
	FetchBackoff  time.Duration `toml:"fetch_backoff"`
	FrameInterval time.Duration `toml:"frame_interval"`
}

type PhysicsConfig struct {
	G float32 `toml:"gravitational_constant"`
}

type SceneConfig struct {
	Seed     int64   `toml:"seed"`
	GridSize int     `toml:"grid_size"`
	CubeMass float32 `toml:"cube_mass"`
}

type InputConfig struct {
	ControllerForce float32       `toml:"controller_force"`
	KeyHoldTimeout  time.Duration `toml:"key_hold_timeout"`
}

// Default returns the compiled-in configuration
func Default() Config {
	return Config{
		Engine: EngineConfig{
			TickInterval:  TickInterval,
			FetchBackoff:  FetchBackoff,
			FrameInterval: FrameInterval,
		},
		Physics: PhysicsConfig{G: GravitationalConstant},
		Scene: SceneConfig{
			Seed:     1,
			GridSize: 5,
			CubeMass: 9000000,
		},
		Input: InputConfig{
			ControllerForce: ControllerForce,
			KeyHoldTimeout:  KeyHoldTimeout,
		},
	}
}

// Load overlays the TOML file at path onto Default
// An empty path returns Default unchanged; unknown keys are rejected
func Load(path string) (Config, error) {
	cfg := Default()
	if path == "" {
		return cfg, nil
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return cfg, fmt.Errorf("failed to read config %s: %w", path, err)
	}
	if err := Decode(string(data), &cfg); err != nil {
		return cfg, fmt.Errorf("failed to load config %s: %w", path, err)
	}
	return cfg, nil
}

// Decode overlays TOML text onto cfg and validates the result
func Decode(data string, cfg *Config) error {
	md, err := toml.Decode(data, cfg)
	if err != nil {
		return err
	}
	if undecoded := md.Undecoded(); len(undecoded) > 0 {
		keys := make([]string, len(undecoded))
		for i, k := range undecoded {
			keys[i] = k.String()
		}
		return fmt.Errorf("%w: unknown keys %s", ErrInvalidConfig, strings.Join(keys, ", "))
	}
	return cfg.Validate()
}

// Validate rejects values the scheduler or physics cannot run with
func (c Config) Validate() error {
	switch {
	case c.Engine.TickInterval <= 0:
		return fmt.Errorf("%w: engine.tick_interval must be positive", ErrInvalidConfig)
	case c.Engine.FetchBackoff <= 0:
		return fmt.Errorf("%w: engine.fetch_backoff must be positive", ErrInvalidConfig)
	case c.Engine.FrameInterval <= 0:
		return fmt.Errorf("%w: engine.frame_interval must be positive", ErrInvalidConfig)
	case c.Physics.G < 0:
		return fmt.Errorf("%w: physics.gravitational_constant must not be negative", ErrInvalidConfig)
	case c.Scene.GridSize < 0:
		return fmt.Errorf("%w: scene.grid_size must not be negative", ErrInvalidConfig)
	}
	return nil
}
