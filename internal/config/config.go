// Package config handles viewer configuration loading and management.
package config

// Config holds all viewer settings.
type Config struct {
	Graphics GraphicsConfig `yaml:"graphics"`
	Morph    MorphConfig    `yaml:"morph"`
	Render   RenderConfig   `yaml:"render"`
	Assets   AssetsConfig   `yaml:"assets"`
	Logging  LoggingConfig  `yaml:"logging"`
}

// GraphicsConfig holds display settings.
type GraphicsConfig struct {
	Width      int  `yaml:"width"`
	Height     int  `yaml:"height"`
	Fullscreen bool `yaml:"fullscreen"`
	VSync      bool `yaml:"vsync"`
}

// MorphConfig holds point cloud building and transition settings.
type MorphConfig struct {
	ParticleCount int     `yaml:"particle_count"` // buffer length in sampling mode
	UseSampling   bool    `yaml:"use_sampling"`   // false = raw vertex mode
	Normalize     bool    `yaml:"normalize"`      // rescale each state to target_size
	TargetSize    float32 `yaml:"target_size"`    // longest axis after normalization
	Duration      float64 `yaml:"duration"`       // transition length in seconds
	Easing        string  `yaml:"easing"`         // linear, quad, cubic, sine
	AutoCycle     bool    `yaml:"auto_cycle"`     // advance states on a timer
	CyclePeriod   float64 `yaml:"cycle_period"`   // seconds between auto advances
	Seed          int64   `yaml:"seed"`           // sampling RNG seed, 0 = time-based
}

// RenderConfig holds point rendering settings.
type RenderConfig struct {
	PointSize float32    `yaml:"point_size"`
	ColorA    [3]float32 `yaml:"color_a"` // near color
	ColorB    [3]float32 `yaml:"color_b"` // far color
}

// AssetsConfig holds model sources, one per morph state.
type AssetsConfig struct {
	Sources []SourceConfig `yaml:"sources"`
	Watch   bool           `yaml:"watch"` // rebuild when source files change
}

// SourceConfig is one model file plus its mesh selection rule.
// Select is one of: "all", "first", "index:N", "name:X". Empty means "all".
type SourceConfig struct {
	Path   string `yaml:"path"`
	Select string `yaml:"select"`
}

// LoggingConfig holds logging settings.
type LoggingConfig struct {
	Level   string `yaml:"level"`
	LogFile string `yaml:"log_file"`
}

// Default returns a Config with sensible default values.
func Default() *Config {
	return &Config{
		Graphics: GraphicsConfig{
			Width:      1280,
			Height:     720,
			Fullscreen: false,
			VSync:      true,
		},
		Morph: MorphConfig{
			ParticleCount: 10000,
			UseSampling:   true,
			Normalize:     true,
			TargetSize:    4.0,
			Duration:      2.0,
			Easing:        "cubic",
			AutoCycle:     false,
			CyclePeriod:   4.0,
			Seed:          0,
		},
		Render: RenderConfig{
			PointSize: 2.0,
			ColorA:    [3]float32{1.0, 0.4, 0.1},
			ColorB:    [3]float32{0.1, 0.4, 1.0},
		},
		Assets: AssetsConfig{
			Sources: nil,
			Watch:   false,
		},
		Logging: LoggingConfig{
			Level:   "info",
			LogFile: "",
		},
	}
}
