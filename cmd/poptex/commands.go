package main

import (
	"flag"
	"fmt"
	"image"
	"image/color"
	"io"
	"os"
	"path/filepath"
	"strconv"
	"time"

	"go.uber.org/zap"

	"github.com/Faultbox/poptex/internal/assets"
	"github.com/Faultbox/poptex/internal/config"
	"github.com/Faultbox/poptex/internal/export"
	"github.com/Faultbox/poptex/internal/logger"
	"github.com/Faultbox/poptex/pkg/landscape"
)

// gridColor marks cell boundaries drawn by -grid.
var gridColor = color.RGBA{R: 0xff, G: 0x20, B: 0x20, A: 0xff}

// infoOut receives the info command's report.
var infoOut io.Writer = os.Stdout

// parseArgs parses a command's flags and checks its positional arguments.
func parseArgs(fs *flag.FlagSet, args []string, usage string, want int) error {
	fs.SetOutput(io.Discard)
	if err := fs.Parse(args); err != nil {
		return fmt.Errorf("%w\nUsage: poptex %s", err, usage)
	}
	if fs.NArg() < want {
		return fmt.Errorf("missing arguments\nUsage: poptex %s", usage)
	}
	return nil
}

func parseLevelNum(s string) (int, error) {
	num, err := strconv.Atoi(s)
	if err != nil || num < 0 || num > 255 {
		return 0, fmt.Errorf("invalid level number %q", s)
	}
	return num, nil
}

// loadLevel loads level num with the configured render options.
func (a *app) loadLevel(s string) (*assets.Level, error) {
	num, err := parseLevelNum(s)
	if err != nil {
		return nil, err
	}
	return a.assets.LoadLevel(num, assets.LevelOptions{
		LandType: a.cfg.Data.LandType,
		Sunlight: a.cfg.Render.Sunlight,
		Shores:   a.cfg.Render.Shores,
	})
}

func (a *app) write(name string, img image.Image) error {
	path, err := a.out.Write(name, img)
	if err != nil {
		return err
	}
	b := img.Bounds()
	logger.Info("image written",
		zap.String("name", name),
		zap.String("path", path),
		zap.Int("width", b.Dx()),
		zap.Int("height", b.Dy()))
	return nil
}

func (a *app) cmdAtlas(kind string, args []string) error {
	fs := flag.NewFlagSet(kind, flag.ContinueOnError)
	move := fs.String("move", "", "Move texture centre by x;y texels")
	grid := fs.Bool("grid", false, "Draw cell boundaries")
	if err := parseArgs(fs, args, kind+" [-move x;y] [-grid] <level>", 1); err != nil {
		return err
	}

	var dx, dy int
	if *move != "" {
		var err error
		if dx, dy, err = export.ParseMove(*move); err != nil {
			return err
		}
	}

	level, err := a.loadLevel(fs.Arg(0))
	if err != nil {
		return err
	}

	tileWidth := landscape.LandTile
	if kind == "globe" {
		tileWidth = landscape.GlobeTile
	}

	start := time.Now()
	tex, err := landscape.RenderAtlas(level.Grid, level.Tables, tileWidth, a.cfg.Render.Workers)
	if err != nil {
		return err
	}
	logger.Debug("atlas rendered",
		zap.String("kind", kind),
		zap.Int("size", tex.Width),
		zap.Duration("elapsed", time.Since(start)))

	tex = export.Shift(tex, dx, dy)
	var img image.Image = export.Colorize(tex, level.Tables.TextureColors())
	if *grid {
		img = export.GridOverlay(img, tileWidth, gridColor)
	}
	return a.write(fmt.Sprintf("%s-%03d", kind, level.Num), img)
}

func (a *app) cmdMinimap(args []string) error {
	fs := flag.NewFlagSet("minimap", flag.ContinueOnError)
	scale := fs.Int("scale", a.cfg.Output.MinimapScale, "Pixels per cell")
	landOnly := fs.Bool("land", false, "Only draw cells carrying the land flag")
	grid := fs.Bool("grid", false, "Draw cell boundaries")
	if err := parseArgs(fs, args, "minimap [-scale n] [-land] [-grid] <level>", 1); err != nil {
		return err
	}

	level, err := a.loadLevel(fs.Arg(0))
	if err != nil {
		return err
	}

	tex, err := landscape.TextureMinimap(level.Grid, !*landOnly, level.Tables.Bigf0)
	if err != nil {
		return err
	}
	img := export.Scale(export.Colorize(tex, level.Tables.TextureColors()), *scale)
	if *grid && *scale > 1 {
		img = export.GridOverlay(img, *scale, gridColor)
	}
	return a.write(fmt.Sprintf("minimap-%03d", level.Num), img)
}

func (a *app) cmdWater(args []string) error {
	fs := flag.NewFlagSet("water", flag.ContinueOnError)
	if err := parseArgs(fs, args, "water <level> <offset>", 2); err != nil {
		return err
	}

	offset, err := strconv.Atoi(fs.Arg(1))
	if err != nil {
		return fmt.Errorf("invalid offset %q", fs.Arg(1))
	}
	level, err := a.loadLevel(fs.Arg(0))
	if err != nil {
		return err
	}

	tex, err := landscape.TextureWater(offset, level.Tables)
	if err != nil {
		return err
	}
	return a.write(fmt.Sprintf("water-%03d-%d", level.Num, offset), export.Colorize(tex, level.Tables.TextureColors()))
}

func (a *app) cmdDisp(args []string) error {
	fs := flag.NewFlagSet("disp", flag.ContinueOnError)
	mode := fs.String("mode", "color", "raw, color, quarter or blocks")
	if err := parseArgs(fs, args, "disp [-mode m] <level>", 1); err != nil {
		return err
	}

	level, err := a.loadLevel(fs.Arg(0))
	if err != nil {
		return err
	}

	var img image.Image
	switch *mode {
	case "color":
		img, err = landscape.DispColor(level.Tables)
	case "raw", "quarter", "blocks":
		var tex *landscape.Image
		switch *mode {
		case "raw":
			tex, err = landscape.TextureDisp(level.Tables)
		case "quarter":
			tex, err = landscape.TextureDispQuarter(level.Tables)
		default:
			tex, err = landscape.TextureDispBlocks(level.Tables)
		}
		if err == nil {
			img = export.Colorize(tex, grayPalette())
		}
	default:
		return fmt.Errorf("unknown disp mode %q", *mode)
	}
	if err != nil {
		return err
	}
	return a.write(fmt.Sprintf("disp-%s-%03d", *mode, level.Num), img)
}

func (a *app) cmdBigf0(args []string) error {
	fs := flag.NewFlagSet("bigf0", flag.ContinueOnError)
	if err := parseArgs(fs, args, "bigf0 <level> <height>", 2); err != nil {
		return err
	}

	height, err := strconv.Atoi(fs.Arg(1))
	if err != nil {
		return fmt.Errorf("invalid height %q", fs.Arg(1))
	}
	level, err := a.loadLevel(fs.Arg(0))
	if err != nil {
		return err
	}

	tex, err := landscape.TextureBigf0(height, level.Tables)
	if err != nil {
		return err
	}
	return a.write(fmt.Sprintf("bigf0-%03d-%d", level.Num, height), export.Colorize(tex, level.Tables.TextureColors()))
}

func (a *app) cmdPalette(args []string) error {
	fs := flag.NewFlagSet("palette", flag.ContinueOnError)
	opts := export.DefaultSwatchOptions()
	fs.IntVar(&opts.Colors, "colors", opts.Colors, "Number of palette entries to draw")
	fs.BoolVar(&opts.Labels, "labels", false, "Print entry indices")
	if err := parseArgs(fs, args, "palette [-colors n] [-labels] <level>", 1); err != nil {
		return err
	}
	if opts.Colors <= 0 || opts.Colors > landscape.PaletteColors {
		return fmt.Errorf("invalid colour count %d", opts.Colors)
	}

	level, err := a.loadLevel(fs.Arg(0))
	if err != nil {
		return err
	}
	return a.write(fmt.Sprintf("palette-%s", level.Type), export.DrawPalette(level.Tables.Colors(), opts))
}

func (a *app) cmdInfo(args []string) error {
	fs := flag.NewFlagSet("info", flag.ContinueOnError)
	if err := parseArgs(fs, args, "info <level>", 1); err != nil {
		return err
	}

	level, err := a.loadLevel(fs.Arg(0))
	if err != nil {
		return err
	}

	var land, coast int
	minH, maxH := uint16(0xffff), uint16(0)
	for _, h := range level.Heights.Heights {
		minH = min(minH, h)
		maxH = max(maxH, h)
	}
	size := level.Grid.LandSize()
	for i := 0; i < size; i++ {
		for j := 0; j < size; j++ {
			c := level.Grid.Cell(i, j)
			if c.Height > 0 {
				land++
			}
			if c.LandAdjacent {
				coast++
			}
		}
	}
	paths := a.assets.LevelPaths(level.Num)

	fmt.Fprintf(infoOut, "Level:     %d\n", level.Num)
	fmt.Fprintf(infoOut, "Data:      %s\n", paths.Data)
	fmt.Fprintf(infoOut, "Type:      %s\n", level.Type)
	fmt.Fprintf(infoOut, "Size:      %dx%d\n", size, size)
	fmt.Fprintf(infoOut, "Heights:   %d..%d\n", minH, maxH)
	fmt.Fprintf(infoOut, "Land:      %d cells (%.1f%%)\n", land, 100*float64(land)/float64(size*size))
	fmt.Fprintf(infoOut, "Coast:     %d cells\n", coast)
	fmt.Fprintf(infoOut, "Tables:    %.2f MB\n", float64(level.Tables.Size())/(1024*1024))
	return nil
}

// grayPalette maps each raw byte to its own grey level.
// cmdConfig handles "config init [path]", writing the loaded settings as
// YAML. Without a path the file goes to the user config directory.
func (a *app) cmdConfig(args []string) error {
	fs := flag.NewFlagSet("config", flag.ContinueOnError)
	if err := parseArgs(fs, args, "config init [path]", 1); err != nil {
		return err
	}
	if fs.Arg(0) != "init" {
		return fmt.Errorf("unknown config action %q\nUsage: poptex config init [path]", fs.Arg(0))
	}

	path := fs.Arg(1)
	var err error
	if path == "" {
		path = filepath.Join(config.ConfigDir(), "config.yaml")
		err = a.cfg.Save()
	} else {
		err = a.cfg.SaveTo(path)
	}
	if err != nil {
		return fmt.Errorf("writing config: %w", err)
	}
	logger.Info("config written", zap.String("path", path))
	return nil
}

func grayPalette() color.Palette {
	pal := make(color.Palette, 256)
	for i := range pal {
		pal[i] = color.Gray{Y: uint8(i)}
	}
	return pal
}
