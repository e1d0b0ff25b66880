package config

import "flag"

var (
	flagConfig   = flag.String("config", "", "Path to config file")
	flagDebug    = flag.Bool("debug", false, "Enable debug logging")
	flagBase     = flag.String("base", "", "Game install directory")
	flagLandType = flag.String("landtype", "", "Override landscape type (0-9, a-z)")
	flagFormat   = flag.String("format", "", "Output format (bmp, png)")
	flagOut      = flag.String("out", "", "Output directory (default: stdout)")
	flagWorkers  = flag.Int("workers", -1, "Render workers (0 = GOMAXPROCS)")
)

// ParseFlags parses command-line flags. Call this early in main().
func ParseFlags() {
	flag.Parse()
}

// Args returns the arguments left after the global flags: the command and
// its own arguments.
func Args() []string {
	return flag.Args()
}

// ConfigPath returns the explicit config path if provided via --config flag.
func ConfigPath() string {
	return *flagConfig
}

// applyFlags applies CLI flag overrides to the config.
func applyFlags(cfg *Config) {
	if *flagDebug {
		cfg.Logging.Level = "debug"
	}
	if *flagBase != "" {
		cfg.Data.BasePath = *flagBase
	}
	if *flagLandType != "" {
		cfg.Data.LandType = *flagLandType
	}
	if *flagFormat != "" {
		cfg.Output.Format = *flagFormat
	}
	if *flagOut != "" {
		cfg.Output.Dir = *flagOut
	}
	if *flagWorkers >= 0 {
		cfg.Render.Workers = *flagWorkers
	}
}
