// poptex renders Populous: The Beginning landscape textures to image files.
package main

import (
	"fmt"
	"os"

	"go.uber.org/zap"

	"github.com/Faultbox/poptex/internal/assets"
	"github.com/Faultbox/poptex/internal/config"
	"github.com/Faultbox/poptex/internal/export"
	"github.com/Faultbox/poptex/internal/logger"
)

func main() {
	config.ParseFlags()
	args := config.Args()
	if len(args) < 1 {
		printUsage()
		os.Exit(1)
	}

	command := args[0]
	if command == "help" || command == "-h" || command == "--help" {
		printUsage()
		return
	}

	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
	if err := logger.Init(cfg.Logging.Level, cfg.Logging.LogFile); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
	defer logger.Sync()

	a, err := newApp(cfg)
	if err != nil {
		logger.Fatal("startup failed", zap.Error(err))
	}
	defer a.close()

	if err := a.run(command, args[1:]); err != nil {
		logger.Error("command failed", zap.String("command", command), zap.Error(err))
		logger.Sync()
		a.close()
		os.Exit(1)
	}
}

func printUsage() {
	fmt.Fprintln(os.Stderr, `poptex - Populous: The Beginning landscape texture tool

Usage:
  poptex [global options] <command> [options] <level> [args]

Commands:
  land [-move x;y] [-grid] <level>
                                   Full land texture (32 texels per cell)
  globe [-move x;y] [-grid] <level>
                                   Globe texture (8 texels per cell)
  minimap [-scale n] [-land] [-grid] <level>
                                   Minimap, one texel per cell, scaled up
  water <level> <offset>           Water texture scrolled by offset
  disp [-mode m] <level>           Displacement map (raw, color, quarter, blocks)
  bigf0 <level> <height>           bigf0 slice for one height level
  palette [-labels] <level>        Palette swatch
  info <level>                     Show level information
  config init [path]               Write the effective settings as YAML
                                   (default: user config directory)

Global options:
  -config <file>    Config file (default: ./poptex.yaml, then user config dir)
  -base <dir>       Game install directory holding data/ and levels/
  -landtype <key>   Override the level's landscape type (0-9, a-z)
  -format bmp|png   Output format (default bmp)
  -out <dir>        Write files into dir instead of stdout
  -workers <n>      Render workers (0 = all CPUs)
  -debug            Enable debug logging

Examples:
  poptex -base /opt/pop3 land 1 > land.bmp
  poptex -base /opt/pop3 -format png -out textures globe -move 64;0 5
  poptex -base /opt/pop3 water 1 16 > water.bmp`)
}

// app holds the state shared by all commands.
type app struct {
	cfg    *config.Config
	assets *assets.Manager
	out    *export.Output
	closed bool
}

func newApp(cfg *config.Config) (*app, error) {
	format, err := export.ParseFormat(cfg.Output.Format)
	if err != nil {
		return nil, err
	}
	mgr, err := assets.NewManager(cfg.Data, cfg.Cache)
	if err != nil {
		return nil, err
	}
	return &app{
		cfg:    cfg,
		assets: mgr,
		out:    export.NewOutput(cfg.Output.Dir, format),
	}, nil
}

func (a *app) close() {
	if a.closed {
		return
	}
	a.closed = true
	a.assets.Close()
}

func (a *app) run(command string, args []string) error {
	switch command {
	case "land":
		return a.cmdAtlas("land", args)
	case "globe":
		return a.cmdAtlas("globe", args)
	case "minimap":
		return a.cmdMinimap(args)
	case "water":
		return a.cmdWater(args)
	case "disp":
		return a.cmdDisp(args)
	case "bigf0":
		return a.cmdBigf0(args)
	case "palette":
		return a.cmdPalette(args)
	case "info":
		return a.cmdInfo(args)
	case "config":
		return a.cmdConfig(args)
	default:
		printUsage()
		return fmt.Errorf("unknown command: %s", command)
	}
}
