package config

import "flag"

var (
	flagConfig     = flag.String("config", "", "Path to config file")
	flagDebug      = flag.Bool("debug", false, "Enable debug logging")
	flagModel      = flag.String("model", "", "OBJ file to open")
	flagTexture    = flag.String("texture", "", "Texture for the custom_texture render mode")
	flagMode       = flag.String("mode", "", "Initial render mode")
	flagCharset    = flag.String("charset", "", "Text encoding of OBJ and MTL files, e.g. windows-1252")
	flagWindowed   = flag.Bool("windowed", false, "Run in windowed mode")
	flagFullscreen = flag.Bool("fullscreen", false, "Run in fullscreen mode")
	flagWidth      = flag.Int("width", 0, "Window width")
	flagHeight     = flag.Int("height", 0, "Window height")
	flagSave       = flag.Bool("save-config", false, "Write the effective config to the user config file")
)

// ParseFlags parses command-line flags. Call this early in main().
func ParseFlags() {
	flag.Parse()
}

// ConfigPath returns the explicit config path if provided via --config flag.
func ConfigPath() string {
	return *flagConfig
}

// SaveRequested reports whether --save-config was given.
func SaveRequested() bool {
	return *flagSave
}

// applyFlags applies CLI flag overrides to the config. Positional arguments
// are read as "model.obj [texture]".
func applyFlags(cfg *Config, args []string) {
	if len(args) > 0 {
		cfg.Viewer.Model = args[0]
	}
	if len(args) > 1 {
		cfg.Viewer.CustomTexture = args[1]
	}

	if *flagDebug {
		cfg.Logging.Level = "debug"
	}
	if *flagModel != "" {
		cfg.Viewer.Model = *flagModel
	}
	if *flagTexture != "" {
		cfg.Viewer.CustomTexture = *flagTexture
	}
	if *flagMode != "" {
		cfg.Viewer.RenderMode = *flagMode
	}
	if *flagCharset != "" {
		cfg.Viewer.Charset = *flagCharset
	}
	if *flagWindowed {
		cfg.Window.Fullscreen = false
	}
	if *flagFullscreen {
		cfg.Window.Fullscreen = true
	}
	if *flagWidth > 0 {
		cfg.Window.Width = *flagWidth
	}
	if *flagHeight > 0 {
		cfg.Window.Height = *flagHeight
	}
}
