package config

import "flag"

var (
	flagConfig     = flag.String("config", "", "Path to config file")
	flagDebug      = flag.Bool("debug", false, "Enable debug logging")
	flagSkin       = flag.String("skin", "", "Path to the skin PNG")
	flagVariant    = flag.String("variant", "", "Arm variant: default, slim or auto")
	flagAnim       = flag.String("anim", "", "Animation to play on start")
	flagSpeed      = flag.Float64("speed", 0, "Playback speed multiplier")
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
	if *flagSkin != "" {
		cfg.Skin.Path = *flagSkin
	}
	if *flagVariant != "" {
		cfg.Skin.Variant = *flagVariant
	}
	if *flagAnim != "" {
		cfg.Animation.Name = *flagAnim
	}
	if *flagSpeed > 0 {
		cfg.Animation.Speed = float32(*flagSpeed)
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
