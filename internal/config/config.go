// Package config handles poptex configuration loading and management.
package config

// Config holds all tool settings.
type Config struct {
	Data    DataConfig    `yaml:"data"`
	Render  RenderConfig  `yaml:"render"`
	Output  OutputConfig  `yaml:"output"`
	Cache   CacheConfig   `yaml:"cache"`
	Logging LoggingConfig `yaml:"logging"`
}

// DataConfig locates the game data.
type DataConfig struct {
	BasePath  string `yaml:"base_path"`  // Game install directory (holds data/ and levels/)
	LandType  string `yaml:"land_type"`  // Overrides the level header's landscape type
	LevelSize int    `yaml:"level_size"` // Cells per side
}

// RenderConfig holds texture synthesis settings.
type RenderConfig struct {
	Workers  int  `yaml:"workers"` // 0 means GOMAXPROCS
	Sunlight bool `yaml:"sunlight"`
	Shores   bool `yaml:"shores"`
}

// OutputConfig holds image output settings.
type OutputConfig struct {
	Format       string `yaml:"format"` // bmp or png
	Dir          string `yaml:"dir"`    // empty writes to stdout
	MinimapScale int    `yaml:"minimap_scale"`
}

// CacheConfig holds the lookup table cache budget.
type CacheConfig struct {
	MaxCostMB int64 `yaml:"max_cost_mb"`
}

// LoggingConfig holds logging settings.
type LoggingConfig struct {
	Level   string `yaml:"level"`
	LogFile string `yaml:"log_file"`
}

// Default returns a Config with sensible default values.
func Default() *Config {
	return &Config{
		Data: DataConfig{
			BasePath:  ".",
			LevelSize: 128,
		},
		Render: RenderConfig{
			Workers: 0,
		},
		Output: OutputConfig{
			Format:       "bmp",
			MinimapScale: 8,
		},
		Cache: CacheConfig{
			MaxCostMB: 64,
		},
		Logging: LoggingConfig{
			Level:   "info",
			LogFile: "",
		},
	}
}

// MaxCostBytes returns the cache budget in bytes.
func (c CacheConfig) MaxCostBytes() int64 {
	return c.MaxCostMB << 20
}
