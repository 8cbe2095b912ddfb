// Package config handles viewer configuration loading and management.
package config

// Config holds all viewer settings.
type Config struct {
	Graphics  GraphicsConfig  `yaml:"graphics"`
	Skin      SkinConfig      `yaml:"skin"`
	Animation AnimationConfig `yaml:"animation"`
	Camera    CameraConfig    `yaml:"camera"`
	Logging   LoggingConfig   `yaml:"logging"`
}

// GraphicsConfig holds display and rendering settings.
type GraphicsConfig struct {
	Width      int  `yaml:"width"`
	Height     int  `yaml:"height"`
	Fullscreen bool `yaml:"fullscreen"`
	VSync      bool `yaml:"vsync"`
	FPSLimit   int  `yaml:"fps_limit"`
}

// SkinConfig holds the skin texture settings.
type SkinConfig struct {
	Path    string `yaml:"path"`
	Variant string `yaml:"variant"` // "default", "slim" or "auto"
	Watch   bool   `yaml:"watch"`   // reload the skin when the file changes
	Back    string `yaml:"back"`    // "none", "cape" or "elytra"
}

// AnimationConfig holds playback settings.
type AnimationConfig struct {
	Name   string  `yaml:"name"`
	Speed  float32 `yaml:"speed"`
	Paused bool    `yaml:"paused"`
}

// CameraConfig holds orbit camera settings.
type CameraConfig struct {
	Distance float32 `yaml:"distance"`
	Yaw      float32 `yaml:"yaw"`   // degrees
	Pitch    float32 `yaml:"pitch"` // degrees
	FOV      float32 `yaml:"fov"`   // degrees
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
			Width:      1024,
			Height:     768,
			Fullscreen: false,
			VSync:      true,
			FPSLimit:   0,
		},
		Skin: SkinConfig{
			Path:    "skin.png",
			Variant: "auto",
			Watch:   true,
			Back:    "none",
		},
		Animation: AnimationConfig{
			Name:  "idle",
			Speed: 1,
		},
		Camera: CameraConfig{
			Distance: 70,
			Yaw:      30,
			Pitch:    15,
			FOV:      45,
		},
		Logging: LoggingConfig{
			Level:   "info",
			LogFile: "",
		},
	}
}
