package game

import (
	"fmt"
	"io"
	"math/rand"
	"time"

	"github.com/sirupsen/logrus"
	"gopkg.in/yaml.v2"
)

type GameConfig struct {
	Rows  int  `yaml:"rows"`
	Cols  int  `yaml:"cols"`
	Mines int  `yaml:"mines"`
	Mode  Mode `yaml:"mode"`

	// Seed for mine placement; zero picks one from the current time
	Seed int64 `yaml:"seed"`
}

func NewGameConfig() GameConfig {
	return GameConfig{
		Rows:  16,
		Cols:  30,
		Mines: 99,
		Mode:  SafeCell,
	}
}

type Preset struct {
	Rows, Cols int
	Mines      int
}

var Presets = map[string]Preset{
	"beginner":     {Rows: 9, Cols: 9, Mines: 10},
	"intermediate": {Rows: 16, Cols: 16, Mines: 40},
	"expert":       {Rows: 16, Cols: 30, Mines: 99},
}

// ApplyPreset overwrites the board dimensions and mine count with a named preset
func (config *GameConfig) ApplyPreset(name string) error {
	preset, ok := Presets[name]
	if !ok {
		return fmt.Errorf("unknown preset %q", name)
	}
	config.Rows, config.Cols, config.Mines = preset.Rows, preset.Cols, preset.Mines
	return nil
}

func (config GameConfig) Validate() error {
	return validateDimensions(config.Rows, config.Cols, config.Mines)
}

// LoadGameConfig reads a YAML config on top of base. Keys missing from the
// document keep base's values; unknown keys are rejected.
func LoadGameConfig(in io.Reader, base GameConfig) (GameConfig, error) {
	data, err := io.ReadAll(in)
	if err != nil {
		return base, err
	}
	config := base
	if err := yaml.UnmarshalStrict(data, &config); err != nil {
		return base, err
	}
	return config, nil
}

// NewBoard creates a board from the config, seeding its own random source
func (config GameConfig) NewBoard(logger logrus.FieldLogger) (*Board, error) {
	seed := config.Seed
	if seed == 0 {
		seed = time.Now().UnixNano()
	}
	return NewBoard(BoardConfig{
		Rows:   config.Rows,
		Cols:   config.Cols,
		Mines:  config.Mines,
		Mode:   config.Mode,
		Rand:   rand.New(rand.NewSource(seed)),
		Logger: logger,
	})
}

func (mode Mode) MarshalYAML() (interface{}, error) {
	return mode.String(), nil
}

func (mode *Mode) UnmarshalYAML(unmarshal func(interface{}) error) error {
	var name string
	if err := unmarshal(&name); err != nil {
		return err
	}
	parsed, err := ParseMode(name)
	if err != nil {
		return err
	}
	*mode = parsed
	return nil
}
