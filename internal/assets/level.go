package assets

import (
	"fmt"

	"go.uber.org/zap"

	"github.com/Faultbox/poptex/pkg/formats"
	"github.com/Faultbox/poptex/pkg/landscape"
)

// LevelOptions controls how a level's cell grid is built. Shores is a
// preview option: the game never raises shores before texture synthesis, so
// textures rendered with it differ from the game's own.
type LevelOptions struct {
	LandType string // overrides the header's landscape type when set
	Sunlight bool   // recompute brightness from neighbour heights
	Shores   bool   // raise land-adjacent water to height 1
}

// Level is a loaded level with everything needed to render it.
type Level struct {
	Num     int
	Type    string
	Heights *landscape.Heightmap
	Grid    *landscape.Grid
	Tables  *landscape.Tables
}

// LevelPaths returns the level file names for level num.
func (m *Manager) LevelPaths(num int) formats.LevelPaths {
	return formats.NewLevelPaths(m.levelDir, num)
}

// LoadLevel reads level num, resolves its landscape type and returns the
// level with its grid and tables.
func (m *Manager) LoadLevel(num int, opts LevelOptions) (*Level, error) {
	paths := m.LevelPaths(num)

	key := opts.LandType
	if key == "" {
		var err error
		key, err = formats.ParseLandscapeTypeFile(paths.Header)
		if err != nil {
			return nil, fmt.Errorf("level %d: %w", num, err)
		}
	}

	tables, err := m.Tables(key)
	if err != nil {
		return nil, fmt.Errorf("level %d: %w", num, err)
	}

	heights, err := formats.ParseHeightsFile(paths.Data, m.levelSize)
	if err != nil {
		return nil, fmt.Errorf("level %d: %w", num, err)
	}
	if opts.Shores {
		heights = heights.MakeShores()
	}

	var grid *landscape.Grid
	if opts.Sunlight {
		grid, err = landscape.NewSunlitGrid(heights)
	} else {
		grid, err = landscape.NewGrid(heights)
	}
	if err != nil {
		return nil, fmt.Errorf("level %d: %w", num, err)
	}

	m.log.Info("level loaded",
		zap.Int("level", num),
		zap.String("type", key),
		zap.Int("size", heights.Size),
		zap.Bool("sunlight", opts.Sunlight),
		zap.Bool("shores", opts.Shores))

	return &Level{
		Num:     num,
		Type:    key,
		Heights: heights,
		Grid:    grid,
		Tables:  tables,
	}, nil
}
