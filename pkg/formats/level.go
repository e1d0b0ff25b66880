package formats

import (
	"encoding/binary"
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"github.com/Faultbox/poptex/pkg/landscape"
)

// Level format errors.
var (
	ErrTruncatedHeader    = errors.New("truncated level header")
	ErrInvalidLandType    = errors.New("invalid landscape type")
	ErrTruncatedLevelData = errors.New("truncated level data")
)

// landTypeOffset is the header byte holding the landscape type.
const landTypeOffset = 96

// LevelPaths holds the level data and header file names for a level number.
type LevelPaths struct {
	Data   string
	Header string
}

// NewLevelPaths returns levl2NNN.dat and levl2NNN.hdr under dir.
func NewLevelPaths(dir string, num int) LevelPaths {
	return LevelPaths{
		Data:   filepath.Join(dir, fmt.Sprintf("levl2%03d.dat", num)),
		Header: filepath.Join(dir, fmt.Sprintf("levl2%03d.hdr", num)),
	}
}

// ParseLandscapeType decodes the landscape type key from a level header:
// 0-9 map to '0'-'9' and 10-35 to 'a'-'z'.
func ParseLandscapeType(hdr []byte) (string, error) {
	if len(hdr) <= landTypeOffset {
		return "", fmt.Errorf("%w: %d bytes", ErrTruncatedHeader, len(hdr))
	}

	v := hdr[landTypeOffset]
	switch {
	case v <= 9:
		return string(rune('0' + v)), nil
	case v < 36:
		return string(rune('a' + v - 10)), nil
	default:
		return "", fmt.Errorf("%w: %d", ErrInvalidLandType, v)
	}
}

// ValidateLandscapeType checks a landscape type key given by the user.
func ValidateLandscapeType(key string) error {
	if len(key) != 1 {
		return fmt.Errorf("%w: %q", ErrInvalidLandType, key)
	}
	if c := key[0]; (c < '0' || c > '9') && (c < 'a' || c > 'z') {
		return fmt.Errorf("%w: %q", ErrInvalidLandType, key)
	}
	return nil
}

// ParseLandscapeTypeFile reads a level header from disk.
func ParseLandscapeTypeFile(path string) (string, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return "", fmt.Errorf("reading level header: %w", err)
	}
	return ParseLandscapeType(data)
}

// ParseHeights decodes the size x size height grid at the start of a level
// data file. Heights are stored little-endian and column-major; they are
// transposed into rows and each column is flipped vertically. The two middle
// rows are left in place, as the game does.
func ParseHeights(data []byte, size int) (*landscape.Heightmap, error) {
	if size <= 0 {
		return nil, fmt.Errorf("invalid level size %d", size)
	}
	count := size * size
	if len(data) < count*2 {
		return nil, fmt.Errorf("%w: need %d bytes, got %d", ErrTruncatedLevelData, count*2, len(data))
	}

	hm := landscape.NewHeightmap(size)
	for k := 0; k < count; k++ {
		v := binary.LittleEndian.Uint16(data[k*2:])
		hm.Set(k%size, k/size, v)
	}

	for col := 0; col < size; col++ {
		for row := 0; row < size/2-1; row++ {
			opp := size - 1 - row
			a, b := hm.At(row, col), hm.At(opp, col)
			hm.Set(row, col, b)
			hm.Set(opp, col, a)
		}
	}

	return hm, nil
}

// ParseHeightsFile reads a level data file from disk.
func ParseHeightsFile(path string, size int) (*landscape.Heightmap, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading level data: %w", err)
	}
	return ParseHeights(data, size)
}
