// Package main is the entry point for the OBJ viewer.
package main

import (
	"fmt"
	"os"

	"go.uber.org/zap"

	"github.com/Faultbox/objview/internal/config"
	"github.com/Faultbox/objview/internal/engine/model"
	"github.com/Faultbox/objview/internal/engine/texture"
	"github.com/Faultbox/objview/internal/logger"
	"github.com/Faultbox/objview/internal/viewer"
	"github.com/Faultbox/objview/pkg/math"
)

func main() {
	config.ParseFlags()

	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Config error: %v\n", err)
		os.Exit(1)
	}

	if err := logger.Init(cfg.Logging.Level, cfg.Logging.LogFile); err != nil {
		fmt.Fprintf(os.Stderr, "Logger error: %v\n", err)
		os.Exit(1)
	}
	defer logger.Sync()

	if config.SaveRequested() {
		if err := cfg.Save(); err != nil {
			logger.Error("failed to save config", zap.Error(err))
			logger.Sync()
			os.Exit(1)
		}
		logger.Info("config saved", zap.String("path", config.UserConfigFile()))
		if cfg.Viewer.Model == "" {
			return
		}
	}

	if cfg.Viewer.Model == "" {
		fmt.Fprintln(os.Stderr, "Usage: objview [flags] <model.obj> [texture]")
		os.Exit(1)
	}

	logger.Info("=== OBJ Viewer ===")
	logger.Sugar.Debugf("Config: %+v", cfg)

	state, keys, err := setup(cfg)
	if err != nil {
		logger.Error("failed to open model", zap.String("path", cfg.Viewer.Model), zap.Error(err))
		logger.Sync()
		os.Exit(1)
	}

	report(state, keys)
}

// setup loads the configured model and builds the viewer state for it.
func setup(cfg *config.Config) (*viewer.State, *viewer.Keymap, error) {
	mode, err := viewer.ParseRenderMode(cfg.Viewer.RenderMode)
	if err != nil {
		return nil, nil, err
	}

	keys := viewer.DefaultKeymap()
	if err := keys.Override(cfg.Keys); err != nil {
		return nil, nil, fmt.Errorf("keys: %w", err)
	}

	textures := texture.NewFileLoader(texture.Options{FlipVertical: cfg.Viewer.FlipTextures})
	m, err := model.Load(cfg.Viewer.Model, model.LoadOptions{Textures: textures, Charset: cfg.Viewer.Charset})
	if err != nil {
		return nil, nil, err
	}

	var custom *texture.Texture
	if cfg.Viewer.CustomTexture != "" {
		custom, err = textures.Load(cfg.Viewer.CustomTexture)
		if err != nil {
			return nil, nil, fmt.Errorf("custom texture: %w", err)
		}
	}
	if mode == viewer.ModeCustomTexture && custom == nil {
		logger.Warn("custom_texture mode without a texture, falling back to shaded")
		mode = viewer.ModeShaded
	}

	l := cfg.Light
	state := viewer.New(m, viewer.Options{
		Mode:          mode,
		Light:         viewer.NewLight(vec3(l.Position), vec3(l.Color), vec3(l.ViewPosition), l.Step),
		ScaleStep:     cfg.Viewer.ScaleStep,
		MoveStep:      cfg.Viewer.MoveStep,
		CustomTexture: custom,
	})
	return state, keys, nil
}

func report(s *viewer.State, keys *viewer.Keymap) {
	m := s.Model
	stats := m.Stats()
	b := m.BoundingBox()

	logger.Info("viewer ready",
		zap.String("model", m.Name),
		zap.Stringer("mode", s.Mode),
		zap.Int("meshes", stats.Meshes),
		zap.Int("triangles", stats.Triangles),
		zap.Float32("scale", 1/max(b.Size().MaxComponent(), 1e-6)),
		zap.Float32("camera_distance", s.Camera.Distance))

	for i, mesh := range m.Meshes() {
		logger.Debug("mesh",
			zap.Int("index", i),
			zap.String("name", mesh.Name),
			zap.String("material", mesh.MaterialName),
			zap.Int("vertices", len(mesh.Vertices)),
			zap.Int("triangles", mesh.TriangleCount()))
	}

	for _, b := range keys.Bindings() {
		a, _ := keys.Lookup(b)
		logger.Debug("key", zap.Stringer("binding", b), zap.Stringer("action", a))
	}
}

func vec3(a [3]float32) math.Vec3 {
	return math.Vec3{X: a[0], Y: a[1], Z: a[2]}
}
