// Command skinview renders an animated player model from a skin PNG.
package main

import (
	"os"
	"strings"
	"time"

	"github.com/fsnotify/fsnotify"
	"github.com/go-gl/gl/v4.1-core/gl"
	"github.com/google/uuid"
	"github.com/tanema/gween"
	"github.com/tanema/gween/ease"
	"github.com/veandco/go-sdl2/sdl"
	"go.uber.org/zap"

	"github.com/Faultbox/skinview/internal/config"
	"github.com/Faultbox/skinview/internal/engine/camera"
	"github.com/Faultbox/skinview/internal/engine/scene"
	"github.com/Faultbox/skinview/internal/engine/window"
	"github.com/Faultbox/skinview/internal/logger"
	"github.com/Faultbox/skinview/internal/viewer"
	"github.com/Faultbox/skinview/pkg/anim"
	"github.com/Faultbox/skinview/pkg/keyframe"
	"github.com/Faultbox/skinview/pkg/math"
	"github.com/Faultbox/skinview/pkg/rig"
	"github.com/Faultbox/skinview/pkg/skin"
)

const degToRad = 3.14159265 / 180

func main() {
	config.ParseFlags()

	cfg, err := config.Load()
	if err != nil {
		os.Stderr.WriteString("config: " + err.Error() + "\n")
		os.Exit(1)
	}

	if err := logger.Init(cfg.Logging.Level, cfg.Logging.LogFile); err != nil {
		os.Stderr.WriteString("logger: " + err.Error() + "\n")
		os.Exit(1)
	}
	defer logger.Sync()

	if err := run(cfg); err != nil {
		logger.Fatal("viewer failed", zap.Error(err))
	}
}

func run(cfg *config.Config) error {
	win, err := window.New(window.Config{
		Title:      "SkinView",
		Width:      cfg.Graphics.Width,
		Height:     cfg.Graphics.Height,
		Fullscreen: cfg.Graphics.Fullscreen,
		VSync:      cfg.Graphics.VSync,
	})
	if err != nil {
		return err
	}
	defer win.Close()

	if err := gl.Init(); err != nil {
		return err
	}
	gl.Enable(gl.DEPTH_TEST)
	gl.Enable(gl.BLEND)
	gl.BlendFunc(gl.SRC_ALPHA, gl.ONE_MINUS_SRC_ALPHA)

	s, variant, err := loadSkin(cfg.Skin.Path, cfg.Skin.Variant)
	if err != nil {
		return err
	}
	logger.Info("skin loaded",
		zap.String("path", cfg.Skin.Path),
		zap.String("variant", string(variant)))

	player := rig.NewPlayer(variant)
	player.SetBackEquipment(rig.BackEquipment(cfg.Skin.Back))

	stage := viewer.NewStage()
	id := stage.Add(player)
	if a := animByName(cfg.Animation.Name); a != nil {
		a.SetSpeed(cfg.Animation.Speed)
		stage.SetAnimation(id, a)
	}
	stage.SetAllPaused(cfg.Animation.Paused)

	renderer, err := scene.NewPlayerRenderer()
	if err != nil {
		return err
	}
	defer renderer.Destroy()
	renderer.SetSkin(s)
	renderer.Rebuild(player)

	cam := camera.NewOrbitCamera()
	cam.Distance = cfg.Camera.Distance
	cam.Yaw = cfg.Camera.Yaw * degToRad
	cam.Pitch = cfg.Camera.Pitch * degToRad

	// Short dolly-in on startup
	intro := gween.New(cam.Distance*2.5, cam.Distance, 1.2, ease.OutCubic)

	var watcher *fsnotify.Watcher
	if cfg.Skin.Watch {
		watcher, err = fsnotify.NewWatcher()
		if err != nil {
			logger.Warn("skin watching disabled", zap.Error(err))
		} else {
			defer watcher.Close()
			if err := watcher.Add(cfg.Skin.Path); err != nil {
				logger.Warn("cannot watch skin file", zap.Error(err))
			}
		}
	}

	var dragging bool
	last := time.Now()

	for {
		now := time.Now()
		dt := float32(now.Sub(last).Seconds())
		last = now

		for event := sdl.PollEvent(); event != nil; event = sdl.PollEvent() {
			switch e := event.(type) {
			case *sdl.QuitEvent:
				return nil
			case *sdl.KeyboardEvent:
				if e.Type != sdl.KEYDOWN {
					break
				}
				if done := handleKey(e.Keysym.Sym, cfg, stage, id, player, renderer, cam); done {
					return nil
				}
			case *sdl.MouseButtonEvent:
				if e.Button == sdl.BUTTON_LEFT {
					dragging = e.Type == sdl.MOUSEBUTTONDOWN
				}
			case *sdl.MouseMotionEvent:
				if dragging {
					cam.HandleDrag(float32(e.XRel), float32(e.YRel))
				}
			case *sdl.MouseWheelEvent:
				cam.HandleZoom(float32(e.Y))
			}
		}

		if watcher != nil {
			drainWatcher(watcher, cfg, renderer, player)
		}

		if d, done := intro.Update(dt); !done {
			cam.Distance = d
		}

		stage.Update(dt)

		width, height := win.GetSize()
		gl.Viewport(0, 0, int32(width), int32(height))
		gl.ClearColor(0.12, 0.12, 0.14, 1)
		gl.Clear(gl.COLOR_BUFFER_BIT | gl.DEPTH_BUFFER_BIT)

		proj := math.Perspective(cfg.Camera.FOV*degToRad, float32(width)/float32(height), 0.1, 1000)
		renderer.Render(proj.Mul(cam.ViewMatrix()))

		win.SwapBuffers()
	}
}

// loadSkin reads the skin and resolves the "auto" variant from the
// texture's alpha probes.
func loadSkin(path, variantName string) (*skin.Skin, skin.Variant, error) {
	s, err := skin.Load(path)
	if err != nil {
		return nil, "", err
	}
	if variantName == "auto" || variantName == "" {
		return s, s.DetectVariant(), nil
	}
	v, err := skin.ParseVariant(variantName)
	if err != nil {
		return nil, "", err
	}
	return s, v, nil
}

// animByName maps a config name to a built-in animation. Names ending
// in .json load as keyframe animations instead.
func animByName(name string) anim.Animation {
	if strings.HasSuffix(name, ".json") {
		data, err := os.ReadFile(name)
		if err != nil {
			logger.Warn("cannot read keyframe animation", zap.Error(err))
			return anim.NewIdle()
		}
		a, err := keyframe.FromJSON(data)
		if err != nil {
			logger.Warn("cannot parse keyframe animation", zap.Error(err))
			return anim.NewIdle()
		}
		return a
	}

	switch name {
	case "idle":
		return anim.NewIdle()
	case "walk":
		return anim.NewWalk()
	case "run":
		return anim.NewRun()
	case "fly":
		return anim.NewFly()
	case "crouch":
		return anim.NewCrouch()
	case "wave":
		return anim.NewWave(anim.SideRight)
	case "bend":
		return anim.NewBend()
	case "hit":
		return anim.NewHit()
	case "none":
		return nil
	default:
		logger.Warn("unknown animation, using idle", zap.String("name", name))
		return anim.NewIdle()
	}
}

var animCycle = []string{"idle", "walk", "run", "fly", "crouch", "wave", "bend", "hit"}

// handleKey processes a key press. Returns true when the viewer should
// quit.
func handleKey(key sdl.Keycode, cfg *config.Config, stage *viewer.Stage,
	id uuid.UUID, player *rig.Player, renderer *scene.PlayerRenderer,
	cam *camera.OrbitCamera) bool {
	switch key {
	case sdl.K_ESCAPE, sdl.K_q:
		return true

	case sdl.K_s:
		saveSettings(cfg, stage, player, cam)

	case sdl.K_SPACE:
		stage.SetAllPaused(!stage.AllPaused())

	case sdl.K_TAB:
		variant := skin.VariantSlim
		if player.ModelVariant() == skin.VariantSlim {
			variant = skin.VariantDefault
		}
		player.SetModelVariant(variant)
		renderer.Rebuild(player)
		logger.Info("model variant switched", zap.String("variant", string(variant)))

	case sdl.K_o:
		playerOuterVisible = !playerOuterVisible
		player.SetLayerVisibility(rig.LayerOuter, playerOuterVisible)

	case sdl.K_n:
		player.SetBackEquipment(rig.BackNone)
	case sdl.K_c:
		player.SetBackEquipment(rig.BackCape)
	case sdl.K_e:
		player.SetBackEquipment(rig.BackElytra)

	case sdl.K_EQUALS, sdl.K_PLUS:
		if a := stage.Animation(id); a != nil {
			a.SetSpeed(a.Speed() * 1.25)
		}
	case sdl.K_MINUS:
		if a := stage.Animation(id); a != nil {
			a.SetSpeed(a.Speed() * 0.8)
		}

	default:
		if key >= sdl.K_1 && key <= sdl.K_8 {
			name := animCycle[key-sdl.K_1]
			a := animByName(name)
			if a != nil {
				a.SetSpeed(cfg.Animation.Speed)
			}
			stage.SetAnimation(id, a)
			logger.Info("animation switched", zap.String("name", name))
		}
	}
	return false
}

var playerOuterVisible = true

// saveSettings persists the current viewer state back to the user's
// config file so the next launch starts where this one left off.
func saveSettings(cfg *config.Config, stage *viewer.Stage,
	player *rig.Player, cam *camera.OrbitCamera) {
	cfg.Camera.Distance = cam.Distance
	cfg.Camera.Yaw = cam.Yaw / degToRad
	cfg.Camera.Pitch = cam.Pitch / degToRad
	cfg.Skin.Variant = string(player.ModelVariant())
	cfg.Animation.Paused = stage.AllPaused()

	if err := cfg.Save(); err != nil {
		logger.Warn("cannot save settings", zap.Error(err))
		return
	}
	logger.Info("settings saved")
}

// drainWatcher handles pending skin file events without blocking the
// frame. Editors often replace the file, so re-add the watch after
// remove/rename events.
func drainWatcher(w *fsnotify.Watcher, cfg *config.Config,
	renderer *scene.PlayerRenderer, player *rig.Player) {
	reload := false
	for {
		select {
		case ev, ok := <-w.Events:
			if !ok {
				return
			}
			if ev.Op&(fsnotify.Write|fsnotify.Create) != 0 {
				reload = true
			}
			if ev.Op&(fsnotify.Remove|fsnotify.Rename) != 0 {
				if err := w.Add(cfg.Skin.Path); err != nil {
					logger.Warn("cannot re-watch skin file", zap.Error(err))
				}
				reload = true
			}
		case err, ok := <-w.Errors:
			if !ok {
				return
			}
			logger.Warn("skin watcher error", zap.Error(err))
		default:
			if reload {
				s, variant, err := loadSkin(cfg.Skin.Path, cfg.Skin.Variant)
				if err != nil {
					logger.Warn("skin reload failed", zap.Error(err))
					return
				}
				renderer.SetSkin(s)
				if variant != player.ModelVariant() {
					player.SetModelVariant(variant)
					renderer.Rebuild(player)
				}
				logger.Info("skin reloaded", zap.String("path", cfg.Skin.Path))
			}
			return
		}
	}
}
