// Package config loads the TOML case files that describe an optimizer
// run (component C8), grounded on original_source/u_loader.py's
// ULoader and the case schema it reads.
package config

import (
	"errors"
	"fmt"
	"os"

	"github.com/pelletier/go-toml/v2"
)

// ErrInvalidDoor is returned when a `doors` entry is not a 2 or
// 3-element tuple of [room_i, room_j, door_length?].
var ErrInvalidDoor = errors.New("config: door entry must be [room_i, room_j] or [room_i, room_j, door_length]")

// Optimizer holds the `[optimizer]` table: the Metropolis-Hastings
// parameters shared by every case.
type Optimizer struct {
	RandomSeed  int64   `toml:"random_seed"`
	SampleSize  int     `toml:"sample_size"`
	Iterations  int     `toml:"iterations"`
	Temperature float64 `toml:"temperature"`
	Sigma       float64 `toml:"sigma"`
}

// Case holds one `[[cases]]` entry: the floor plan to load and the
// doors to optimize (plus one pinned front door).
type Case struct {
	FileName  string      `toml:"file_name"`
	ObjPath   string      `toml:"obj_path"`
	Doors     [][]float64 `toml:"doors"`
	FrontDoor [2]float64  `toml:"front_door"`
}

// Config is the top-level document: one optimizer configuration shared
// across every independently runnable case.
type Config struct {
	Optimizer Optimizer `toml:"optimizer"`
	Cases     []Case    `toml:"cases"`
}

// Door is a resolved `doors` entry: the two room ids to connect and the
// door's length, defaulted from defaultLength when the case omits it.
type Door struct {
	RoomA, RoomB int
	Length       float64
}

// defaultLength matches original_source DoorComponent.__init__'s
// d_len default, repeated here since config is the boundary where a
// case's omitted door_length first needs a concrete value.
const defaultLength = 0.07

// ResolveDoors resolves the case's raw `doors` tuples into Door values.
func (c Case) ResolveDoors() ([]Door, error) {
	doors := make([]Door, 0, len(c.Doors))
	for _, raw := range c.Doors {
		if len(raw) != 2 && len(raw) != 3 {
			return nil, fmt.Errorf("%w: got %d elements", ErrInvalidDoor, len(raw))
		}
		length := defaultLength
		if len(raw) == 3 {
			length = raw[2]
		}
		doors = append(doors, Door{
			RoomA:  int(raw[0]),
			RoomB:  int(raw[1]),
			Length: length,
		})
	}
	return doors, nil
}

// FrontDoorEdge returns the case's pinned front-door edge id.
func (c Case) FrontDoorEdge() int { return int(c.FrontDoor[0]) }

// FrontDoorRatio returns the case's pinned front-door ratio.
func (c Case) FrontDoorRatio() float64 { return c.FrontDoor[1] }

// Load reads and parses a TOML config file from disk.
func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}

	var cfg Config
	if err := toml.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("config: parsing %s: %w", path, err)
	}

	return &cfg, nil
}
