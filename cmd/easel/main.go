// easel - terminal scene renderer
// Draws OBJ and glTF scenes in the terminal with flat shading and painter's
// ordering, or renders a single frame to a PNG.
//
// Controls:
//
//	W/S          - Move forward/back
//	A/D          - Strafe left/right
//	Space        - Move up
//	C            - Move down
//	Mouse drag   - Look around
//	Arrow keys   - Look around
//	+/-          - Narrow/widen field of view
//	T            - Toggle textures
//	X            - Toggle wireframe
//	P            - Pause animation
//	R            - Reset camera
//	?            - Toggle HUD overlay
//	Esc          - Quit
package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"os/signal"
	"path/filepath"
	"strings"
	"syscall"
	"time"

	uv "github.com/charmbracelet/ultraviolet"
	"go.uber.org/zap"

	"github.com/taigrr/easel/internal/config"
	"github.com/taigrr/easel/internal/control"
	"github.com/taigrr/easel/internal/logger"
	"github.com/taigrr/easel/pkg/math3d"
	"github.com/taigrr/easel/pkg/render"
	"github.com/taigrr/easel/pkg/scene"
)

var (
	texturePath = flag.String("texture", "", "Texture for a single model (image path or \"checker\")")
	pngPath     = flag.String("png", "", "Render one frame to this PNG file and exit")
	advance     = flag.Float64("at", 0, "Seconds of animation to run before a -png snapshot")
	saveConfig  = flag.Bool("save-config", false, "Write the effective config to the user config directory and exit")
)

func main() {
	flag.Usage = func() {
		fmt.Fprintf(os.Stderr, "easel - terminal scene renderer\n\n")
		fmt.Fprintf(os.Stderr, "Usage: easel [options] <scene.yaml|model.obj|model.glb>\n\n")
		fmt.Fprintf(os.Stderr, "Options:\n")
		flag.PrintDefaults()
		fmt.Fprintf(os.Stderr, "\nControls:\n")
		fmt.Fprintf(os.Stderr, "  W/S/A/D     - Move and strafe\n")
		fmt.Fprintf(os.Stderr, "  Space/C     - Move up/down\n")
		fmt.Fprintf(os.Stderr, "  Mouse drag  - Look around\n")
		fmt.Fprintf(os.Stderr, "  Arrows      - Look around\n")
		fmt.Fprintf(os.Stderr, "  +/-         - Field of view\n")
		fmt.Fprintf(os.Stderr, "  T           - Toggle textures\n")
		fmt.Fprintf(os.Stderr, "  X           - Toggle wireframe\n")
		fmt.Fprintf(os.Stderr, "  P           - Pause animation\n")
		fmt.Fprintf(os.Stderr, "  R           - Reset camera\n")
		fmt.Fprintf(os.Stderr, "  ?           - Toggle HUD overlay\n")
		fmt.Fprintf(os.Stderr, "  Esc         - Quit\n")
	}
	config.ParseFlags()

	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}

	if *saveConfig {
		if err := cfg.Save(); err != nil {
			fmt.Fprintf(os.Stderr, "Error: save config: %v\n", err)
			os.Exit(1)
		}
		fmt.Printf("wrote %s\n", filepath.Join(config.ConfigDir(), "config.yaml"))
		return
	}

	source := cfg.Scene.Path
	if flag.NArg() > 0 {
		source = flag.Arg(0)
	}
	if source == "" {
		flag.Usage()
		os.Exit(1)
	}

	// The viewer owns the terminal, so it only logs to a file.
	headless := *pngPath != ""
	if err := logger.Init(cfg.Logging.Level, cfg.Logging.LogFile, headless); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
	defer logger.Sync()
	logger.Sugar.Debugf("Config: %+v", cfg)

	if headless {
		err = snapshot(cfg, source, *pngPath)
	} else {
		err = run(cfg, source)
	}
	if err != nil {
		logger.Error("exiting", zap.Error(err))
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		logger.Sync()
		os.Exit(1)
	}
}

// loadScene loads a scene file, or wraps a single model in a scene.
func loadScene(cfg *config.Config, source string) (*scene.Scene, string, error) {
	log := logger.Named("scene")
	var (
		s   *scene.Scene
		err error
	)
	switch strings.ToLower(filepath.Ext(source)) {
	case ".yaml", ".yml":
		s, err = scene.LoadFile(source, log)
	default:
		s, err = scene.FromModel(source, *texturePath, log)
		if err == nil {
			s.Entities[0].Spin = math3d.V3(0, 0.5, 0)
		}
	}
	if err != nil {
		return nil, "", fmt.Errorf("load %s: %w", source, err)
	}

	if cfg.Camera.FOV > 0 && cfg.Camera.FOV != config.Default().Camera.FOV {
		s.Camera.FOV = cfg.Camera.FOV
	}
	if p := cfg.Camera.Position; p != ([3]float64{}) {
		s.Camera.Position = math3d.V3(p[0], p[1], p[2])
	}
	if r := cfg.Camera.Rotation; r != ([3]float64{}) {
		s.Camera.SetRotation(r[0], r[1], r[2])
	}
	return s, filepath.Base(source), nil
}

// renderOptions builds render options for a width×height target.
func renderOptions(cfg *config.Config, s *scene.Scene, width, height int) render.Options {
	opts := render.DefaultOptions(width, height)
	opts.Capacity = cfg.Render.BufferCapacity
	opts.AmbientFloor = cfg.Render.AmbientFloor
	opts.NearEpsilon = cfg.Render.NearEpsilon
	opts.Sun = s.Sun
	if sun := cfg.Render.Sun; sun != ([3]float64{}) && sun != config.Default().Render.Sun {
		opts.Sun = math3d.V3(sun[0], sun[1], sun[2])
	}
	opts.Logger = logger.Log
	return opts
}

func background(cfg *config.Config) render.Color {
	bg := cfg.Display.Background
	return render.RGB(uint8(bg[0]), uint8(bg[1]), uint8(bg[2]))
}

// rasterizerFor returns the fill or outline rasterizer for fb.
func rasterizerFor(fb *render.Framebuffer, wireframe bool) render.Rasterizer {
	if wireframe {
		w := render.NewWireframe(fb)
		w.Color = render.RGB(0, 255, 128)
		return w
	}
	return fb
}

// snapshot renders one frame of source into a PNG.
func snapshot(cfg *config.Config, source, out string) error {
	s, name, err := loadScene(cfg, source)
	if err != nil {
		return err
	}

	// Step the animation in frame-sized increments so driving objects
	// follow the same arcs as in the viewer.
	step := 1 / float64(max(cfg.Display.FPS, 1))
	for t := 0.0; t < *advance; t += step {
		s.Update(min(step, *advance-t))
	}

	width, height := cfg.Display.Width, cfg.Display.Height
	fb := render.NewFramebuffer(width, height)
	fb.Clear(background(cfg))
	ctx := render.NewContext(s.Camera, renderOptions(cfg, s, width, height))
	stats := s.Render(ctx, rasterizerFor(fb, cfg.Render.Wireframe))

	if err := fb.SavePNG(out); err != nil {
		return err
	}
	logger.Info("snapshot written",
		zap.String("scene", name),
		zap.String("path", out),
		zap.Int("width", width),
		zap.Int("height", height),
		zap.Int("submitted", stats.Submitted),
		zap.Int("culled", stats.Culled),
		zap.Int("dropped", stats.Dropped),
	)
	return nil
}

// ViewState holds view toggles (UI state, not library code).
type ViewState struct {
	TextureEnabled bool
	Wireframe      bool
	Paused         bool
	ShowHUD        bool
}

func run(cfg *config.Config, source string) error {
	s, name, err := loadScene(cfg, source)
	if err != nil {
		return err
	}
	home := *s.Camera

	term := uv.DefaultTerminal()

	width, height, err := term.GetSize()
	if err != nil {
		return fmt.Errorf("get terminal size: %w", err)
	}

	if err := term.Start(); err != nil {
		return fmt.Errorf("start terminal: %w", err)
	}

	term.EnterAltScreen()
	term.HideCursor()
	term.Resize(width, height)

	// Enable mouse mode
	fmt.Fprint(os.Stdout, "\x1b[?1003h") // Enable any-event mouse tracking
	fmt.Fprint(os.Stdout, "\x1b[?1006h") // Enable SGR extended mouse mode

	fbWidth, fbHeight := render.FramebufferSize(width, height)
	fb := render.NewFramebuffer(fbWidth, fbHeight)
	ctx := render.NewContext(s.Camera, renderOptions(cfg, s, fbWidth, fbHeight))

	fps := max(cfg.Display.FPS, 1)
	ctl := control.New(s.Camera, control.Settings{
		FPS:       fps,
		MoveSpeed: cfg.Camera.MoveSpeed,
		LookRate:  cfg.Camera.LookRate,
		Frequency: cfg.Camera.Smoothing,
		Damping:   cfg.Camera.Damping,
	})

	view := &ViewState{
		TextureEnabled: true,
		Wireframe:      cfg.Render.Wireframe,
		ShowHUD:        cfg.Display.ShowHUD,
	}
	hud := NewHUD(name, s.TriangleCount())
	log := logger.Named("viewer")
	log.Info("viewer started",
		zap.String("scene", name),
		zap.Int("cols", width),
		zap.Int("rows", height),
		zap.Int("triangles", s.TriangleCount()),
	)

	runCtx, cancel := context.WithCancel(context.Background())
	defer cancel()

	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, os.Interrupt, syscall.SIGTERM)
	go func() {
		<-sigChan
		cancel()
	}()

	// Events are handed to the frame loop so all scene and camera state is
	// touched from one goroutine.
	events := make(chan any, 64)
	go func() {
		for ev := range term.Events() {
			select {
			case events <- ev:
			case <-runCtx.Done():
				return
			}
		}
	}()

	var mouseDown bool
	var lastMouseX, lastMouseY int

	handle := func(ev any) {
		switch ev := ev.(type) {
		case uv.WindowSizeEvent:
			width, height = ev.Width, ev.Height
			term.Erase()
			term.Resize(width, height)
			fbWidth, fbHeight = render.FramebufferSize(width, height)
			fb.Resize(fbWidth, fbHeight)
			ctx.Resize(fbWidth, fbHeight)
			log.Debug("resized", zap.Int("cols", width), zap.Int("rows", height))

		case uv.KeyPressEvent:
			switch {
			case ev.MatchString("escape"), ev.MatchString("ctrl+c"):
				cancel()
			case ev.MatchString("w"):
				ctl.Press(control.Forward)
			case ev.MatchString("s"):
				ctl.Press(control.Back)
			case ev.MatchString("a"):
				ctl.Press(control.Left)
			case ev.MatchString("d"):
				ctl.Press(control.Right)
			case ev.MatchString("space"):
				ctl.Press(control.Up)
			case ev.MatchString("c", "shift+space"):
				ctl.Press(control.Down)
			case ev.MatchString("left"):
				ctl.Look(-4, 0)
			case ev.MatchString("right"):
				ctl.Look(4, 0)
			case ev.MatchString("up"):
				ctl.Look(0, -4)
			case ev.MatchString("down"):
				ctl.Look(0, 4)
			case ev.MatchString("+", "="):
				s.Camera.SetFOV(max(20, s.Camera.FOV-5))
			case ev.MatchString("-", "_"):
				s.Camera.SetFOV(min(150, s.Camera.FOV+5))
			case ev.MatchString("t"):
				view.TextureEnabled = !view.TextureEnabled
				s.SetTextures(view.TextureEnabled)
			case ev.MatchString("x"):
				view.Wireframe = !view.Wireframe
			case ev.MatchString("p"):
				view.Paused = !view.Paused
			case ev.MatchString("r"):
				*s.Camera = home
				ctl.Reset()
			case ev.MatchString("?"), ev.MatchString("shift+/"):
				view.ShowHUD = !view.ShowHUD
			}

		case uv.KeyReleaseEvent:
			switch {
			case ev.MatchString("w"):
				ctl.Release(control.Forward)
			case ev.MatchString("s"):
				ctl.Release(control.Back)
			case ev.MatchString("a"):
				ctl.Release(control.Left)
			case ev.MatchString("d"):
				ctl.Release(control.Right)
			case ev.MatchString("space"):
				ctl.Release(control.Up)
			case ev.MatchString("c"):
				ctl.Release(control.Down)
			}

		case uv.MouseClickEvent:
			mouseDown = true
			lastMouseX, lastMouseY = ev.X, ev.Y

		case uv.MouseReleaseEvent:
			mouseDown = false

		case uv.MouseMotionEvent:
			if mouseDown {
				ctl.Look(float64(ev.X-lastMouseX), float64(ev.Y-lastMouseY))
				lastMouseX, lastMouseY = ev.X, ev.Y
			}

		case uv.MouseWheelEvent:
			switch ev.Button {
			case uv.MouseWheelUp:
				s.Camera.MoveForward(0.5)
			case uv.MouseWheelDown:
				s.Camera.MoveForward(-0.5)
			}
		}
	}

	targetDuration := time.Second / time.Duration(fps)
	lastFrame := time.Now()
	bg := background(cfg)

	cleanup := func() {
		fmt.Fprint(os.Stdout, "\x1b[?1003l")
		fmt.Fprint(os.Stdout, "\x1b[?1006l")
		term.ExitAltScreen()
		term.ShowCursor()
		term.Shutdown(context.Background())
	}

	for {
		// Drain pending input without blocking the frame.
	drain:
		for {
			select {
			case ev := <-events:
				handle(ev)
			default:
				break drain
			}
		}

		select {
		case <-runCtx.Done():
			cleanup()
			log.Info("viewer stopped", zap.Uint64("frames", ctx.Stats().Frame))
			return nil
		default:
		}

		now := time.Now()
		dt := now.Sub(lastFrame).Seconds()
		lastFrame = now

		if dt > 0.1 {
			dt = 0.1
		}

		ctl.Update(dt)
		if !view.Paused {
			s.Update(dt)
		}

		fb.Clear(bg)
		stats := s.Render(ctx, rasterizerFor(fb, view.Wireframe))

		fb.Draw(term, term.Bounds())
		if err := term.Display(); err != nil {
			cleanup()
			return fmt.Errorf("display: %w", err)
		}

		hud.UpdateFPS()
		hud.Render(os.Stdout, width, height, view, stats)

		elapsed := time.Since(now)
		if elapsed < targetDuration {
			time.Sleep(targetDuration - elapsed)
		}
	}
}
