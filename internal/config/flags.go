package config

import (
	"flag"
	"strings"
)

var (
	flagConfig     = flag.String("config", "", "Path to config file")
	flagDebug      = flag.Bool("debug", false, "Enable debug logging")
	flagModels     = flag.String("models", "", "Comma-separated model files, one per state")
	flagParticles  = flag.Int("particles", 0, "Particle count in sampling mode")
	flagVertexMode = flag.Bool("vertex-mode", false, "Use raw vertices instead of surface sampling")
	flagCycle      = flag.Bool("cycle", false, "Auto-cycle through states")
	flagWindowed   = flag.Bool("windowed", false, "Run in windowed mode")
	flagFullscreen = flag.Bool("fullscreen", false, "Run in fullscreen mode")
	flagWidth      = flag.Int("width", 0, "Window width")
	flagHeight     = flag.Int("height", 0, "Window height")
)

// ParseFlags parses command-line flags. Call this early in main().
func ParseFlags() {
	flag.Parse()
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
	if *flagModels != "" {
		cfg.Assets.Sources = nil
		for _, path := range strings.Split(*flagModels, ",") {
			path = strings.TrimSpace(path)
			if path == "" {
				continue
			}
			cfg.Assets.Sources = append(cfg.Assets.Sources, SourceConfig{Path: path})
		}
	}
	if *flagParticles > 0 {
		cfg.Morph.ParticleCount = *flagParticles
	}
	if *flagVertexMode {
		cfg.Morph.UseSampling = false
	}
	if *flagCycle {
		cfg.Morph.AutoCycle = true
	}
	if *flagWindowed {
		cfg.Graphics.Fullscreen = false
	}
	if *flagFullscreen {
		cfg.Graphics.Fullscreen = true
	}
	if *flagWidth > 0 {
		cfg.Graphics.Width = *flagWidth
	}
	if *flagHeight > 0 {
		cfg.Graphics.Height = *flagHeight
	}
}
