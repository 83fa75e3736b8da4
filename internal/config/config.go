// Package config holds the game's tunables, read from a JSON file with
// defaults for anything the file leaves out.
package config

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
)

// ActorTiles names the atlas tiles used for the movable actors.
type ActorTiles struct {
	Player       int         `json:"player"`
	MaskedPlayer map[int]int `json:"masked_player,omitempty"` // mask color -> tile
	Masks        map[int]int `json:"masks"`                   // mask color -> tile
	Treasure     int         `json:"treasure"`
}

// Config is the content of config.json.
type Config struct {
	AssetsDir  string     `json:"assets_dir"`
	AtlasFile  string     `json:"atlas_file"`
	Levels     []string   `json:"levels"`
	TickRate   int        `json:"tick_rate"` // ticks per second
	Speed      int        `json:"speed"`     // pixels per tick
	ClearColor [3]int     `json:"clear_color"`
	Actors     ActorTiles `json:"actors"`

	ListenAddr  string `json:"listen_addr"`
	HostKeyPath string `json:"host_key_path"`
	Scale       int    `json:"scale"` // canvas pixels per terminal column
}

// NewDefault returns the configuration used when no file is present.
// The actor tiles match the atlas written by cmd/levelgen.
func NewDefault() *Config {
	return &Config{
		AssetsDir:  "assets",
		AtlasFile:  "atlas.bmp",
		Levels:     []string{"level0", "level1"},
		TickRate:   30,
		Speed:      2,
		ClearColor: [3]int{0, 0, 0},
		Actors: ActorTiles{
			Player:       8,
			MaskedPlayer: map[int]int{0: 9, 1: 10, 2: 11, 3: 12},
			Masks:        map[int]int{0: 13, 1: 14, 2: 15, 3: 16},
			Treasure:     17,
		},
		ListenAddr:  ":2222",
		HostKeyPath: "host_key",
		Scale:       4,
	}
}

// Load reads a config file. A missing file yields the defaults; a file that
// exists but cannot be parsed is an error.
func Load(filename string) (*Config, error) {
	file, err := os.Open(filename)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return NewDefault(), nil
		}
		return nil, fmt.Errorf("open config: %w", err)
	}
	defer file.Close()

	cfg := NewDefault()
	decoder := json.NewDecoder(file)
	decoder.DisallowUnknownFields()
	if err := decoder.Decode(cfg); err != nil {
		return nil, fmt.Errorf("parse config %s: %w", filename, err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("config %s: %w", filename, err)
	}
	return cfg, nil
}

// Save writes cfg as indented JSON.
func Save(cfg *Config, filename string) error {
	file, err := os.Create(filename)
	if err != nil {
		return err
	}
	defer file.Close()

	encoder := json.NewEncoder(file)
	encoder.SetIndent("", "  ")
	return encoder.Encode(cfg)
}

// Validate checks the values the game loop depends on.
func (c *Config) Validate() error {
	switch {
	case len(c.Levels) == 0:
		return errors.New("no levels configured")
	case c.TickRate <= 0:
		return fmt.Errorf("tick_rate must be positive, got %d", c.TickRate)
	case c.Speed <= 0 || 16%c.Speed != 0:
		return fmt.Errorf("speed must divide the 16px tile size, got %d", c.Speed)
	case c.Scale < 1:
		return fmt.Errorf("scale must be at least 1, got %d", c.Scale)
	case c.AtlasFile == "":
		return errors.New("atlas_file is empty")
	}
	for _, ch := range c.ClearColor {
		if ch < 0 || ch > 255 {
			return fmt.Errorf("clear_color channel %d out of range", ch)
		}
	}
	return nil
}
