package formats

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"github.com/Faultbox/poptex/pkg/landscape"
)

// Table format errors.
var (
	ErrInvalidDispSize    = errors.New("invalid displacement table size")
	ErrInvalidPaletteSize = errors.New("invalid palette size")
)

// TablePaths holds the five lookup table files of a landscape type.
type TablePaths struct {
	Palette string
	Disp    string
	Bigf0   string
	Cliff0  string
	Fade0   string
}

// NewTablePaths returns the table file names for landscape type key under dir.
func NewTablePaths(dir, key string) TablePaths {
	return TablePaths{
		Palette: filepath.Join(dir, fmt.Sprintf("pal0-%s.dat", key)),
		Disp:    filepath.Join(dir, fmt.Sprintf("disp0-%s.dat", key)),
		Bigf0:   filepath.Join(dir, fmt.Sprintf("bigf0-%s.dat", key)),
		Cliff0:  filepath.Join(dir, fmt.Sprintf("cliff0-%s.dat", key)),
		Fade0:   filepath.Join(dir, fmt.Sprintf("fade0-%s.dat", key)),
	}
}

// ParseDisplacement converts a raw displacement table into signed values and
// mirrors each row horizontally: column j swaps with 255-j for j < 127.
func ParseDisplacement(data []byte) ([]int8, error) {
	if len(data) != landscape.DispSize {
		return nil, fmt.Errorf("%w: expected %d bytes, got %d", ErrInvalidDispSize, landscape.DispSize, len(data))
	}

	disp := make([]int8, len(data))
	for k, b := range data {
		disp[k] = int8(b)
	}

	const w = landscape.DispWidth
	for row := 0; row < w; row++ {
		p := row * w
		for j := 0; j < w/2-1; j++ {
			disp[p+j], disp[p+w-1-j] = disp[p+w-1-j], disp[p+j]
		}
	}
	return disp, nil
}

// ParsePalette checks a raw palette of RGBA quads.
func ParsePalette(data []byte) ([]byte, error) {
	if len(data) == 0 || len(data)%4 != 0 {
		return nil, fmt.Errorf("%w: %d bytes", ErrInvalidPaletteSize, len(data))
	}
	return data, nil
}

// LoadTables reads and parses all five table files.
func LoadTables(paths TablePaths) (*landscape.Tables, error) {
	read := func(name, path string) ([]byte, error) {
		data, err := os.ReadFile(path)
		if err != nil {
			return nil, fmt.Errorf("reading %s: %w", name, err)
		}
		return data, nil
	}

	palData, err := read("palette", paths.Palette)
	if err != nil {
		return nil, err
	}
	palette, err := ParsePalette(palData)
	if err != nil {
		return nil, err
	}

	dispData, err := read("disp0", paths.Disp)
	if err != nil {
		return nil, err
	}
	disp, err := ParseDisplacement(dispData)
	if err != nil {
		return nil, err
	}

	bigf0, err := read("bigf0", paths.Bigf0)
	if err != nil {
		return nil, err
	}
	cliff0, err := read("cliff0", paths.Cliff0)
	if err != nil {
		return nil, err
	}
	fade0, err := read("fade0", paths.Fade0)
	if err != nil {
		return nil, err
	}

	return landscape.NewTables(disp, bigf0, cliff0, fade0, palette)
}
