package simulation

import (
	_ "embed"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"sync"

	"github.com/BurntSushi/toml"
	"github.com/lao-tseu-is-alive/go-steering-vehicles/pkg/steering"
	"github.com/santhosh-tekuri/jsonschema/v5"
)

// ErrInvalidConfig is returned when a configuration does not match the schema.
var ErrInvalidConfig = errors.New("invalid configuration")

//go:embed config.schema.json
var configSchema string

var compileSchema = sync.OnceValues(func() (*jsonschema.Schema, error) {
	return jsonschema.CompileString("config.schema.json", configSchema)
})

type Config struct {
	// World Dimensions, only used to place the vehicles at start
	WorldWidth  float64 `json:"worldWidth" toml:"worldWidth"`
	WorldHeight float64 `json:"worldHeight" toml:"worldHeight"`

	// Population
	Population int `json:"population" toml:"population"`
	// Seed of the placement generator, 0 lets the binary pick one
	Seed uint64 `json:"seed" toml:"seed"`

	// Vehicle kinematics
	MaxSpeed           float64 `json:"maxSpeed" toml:"maxSpeed"`
	MaxForce           float64 `json:"maxForce" toml:"maxForce"`
	Mass               float64 `json:"mass" toml:"mass"`
	VehicleRadius      float64 `json:"vehicleRadius" toml:"vehicleRadius"` // separation distance is twice this
	ConnectionRadius   float64 `json:"connectionRadius" toml:"connectionRadius"`
	DecelerationRadius float64 `json:"decelerationRadius" toml:"decelerationRadius"`

	// Behaviour weights
	SeparationWeight float64 `json:"separationWeight" toml:"separationWeight"`
	SeekWeight       float64 `json:"seekWeight" toml:"seekWeight"`
	ArriveWeight     float64 `json:"arriveWeight" toml:"arriveWeight"`

	// Visualization
	ShowConnections bool `json:"showConnections" toml:"showConnections"`
	ShowBodies      bool `json:"showBodies" toml:"showBodies"`
}

func DefaultConfig() *Config {
	w := steering.DefaultWeights()
	return &Config{
		WorldWidth:         1000,
		WorldHeight:        800,
		Population:         100,
		MaxSpeed:           steering.DefaultMaxSpeed,
		MaxForce:           steering.DefaultMaxForce,
		Mass:               steering.DefaultMass,
		VehicleRadius:      steering.DefaultRadius,
		ConnectionRadius:   steering.DefaultConnectionRadius,
		DecelerationRadius: steering.DefaultDecelerationRadius,
		SeparationWeight:   w.Separation,
		SeekWeight:         w.Seek,
		ArriveWeight:       w.Arrive,
		ShowConnections:    true,
		ShowBodies:         true,
	}
}

// LoadConfig reads a JSON or TOML (by extension) configuration file on top of
// DefaultConfig and validates the result against the embedded schema.
func LoadConfig(configFile string) (*Config, error) {
	b, err := os.ReadFile(configFile)
	if err != nil {
		return nil, fmt.Errorf("failed to read config file: %w", err)
	}

	cfg := DefaultConfig()
	switch strings.ToLower(filepath.Ext(configFile)) {
	case ".toml":
		md, err := toml.Decode(string(b), cfg)
		if err != nil {
			return nil, fmt.Errorf("failed to decode config toml: %w", err)
		}
		if undecoded := md.Undecoded(); len(undecoded) > 0 {
			return nil, fmt.Errorf("%w: unknown keys %v", ErrInvalidConfig, undecoded)
		}
	default:
		// validate the raw document first so unknown keys are reported
		var doc interface{}
		if err := json.Unmarshal(b, &doc); err != nil {
			return nil, fmt.Errorf("failed to decode config json: %w", err)
		}
		if err := validateDocument(doc); err != nil {
			return nil, err
		}
		if err := json.Unmarshal(b, cfg); err != nil {
			return nil, fmt.Errorf("failed to unmarshal config: %w", err)
		}
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// Validate checks the configuration against the schema and the steering constraints.
func (c *Config) Validate() error {
	b, err := json.Marshal(c)
	if err != nil {
		return fmt.Errorf("failed to marshal config: %w", err)
	}
	var doc interface{}
	if err := json.Unmarshal(b, &doc); err != nil {
		return fmt.Errorf("failed to decode config json: %w", err)
	}
	if err := validateDocument(doc); err != nil {
		return err
	}
	if err := c.VehicleParams().Validate(); err != nil {
		return fmt.Errorf("%w: %w", ErrInvalidConfig, err)
	}
	return nil
}

func validateDocument(doc interface{}) error {
	sch, err := compileSchema()
	if err != nil {
		return fmt.Errorf("failed to compile schema: %w", err)
	}
	if err := sch.Validate(doc); err != nil {
		return fmt.Errorf("%w: config validation failed: %w", ErrInvalidConfig, err)
	}
	return nil
}

// VehicleParams returns the constants shared by every vehicle.
func (c *Config) VehicleParams() steering.Params {
	return steering.Params{
		MaxSpeed:           c.MaxSpeed,
		MaxForce:           c.MaxForce,
		Mass:               c.Mass,
		Radius:             c.VehicleRadius,
		ConnectionRadius:   c.ConnectionRadius,
		DecelerationRadius: c.DecelerationRadius,
		Weights: steering.Weights{
			Separation: c.SeparationWeight,
			Seek:       c.SeekWeight,
			Arrive:     c.ArriveWeight,
		},
	}
}

// PoolConfig returns the population description of the world.
func (c *Config) PoolConfig() steering.PoolConfig {
	return steering.PoolConfig{
		Size:   c.Population,
		Width:  c.WorldWidth,
		Height: c.WorldHeight,
		Params: c.VehicleParams(),
	}
}
