// Package game implements the main loop and wires the vending machine to
// the window, renderer and speaker.
package game

import (
	"fmt"
	"time"

	"github.com/veandco/go-sdl2/sdl"
	"go.uber.org/zap"

	"github.com/Faultbox/emoji-vend/internal/assets"
	"github.com/Faultbox/emoji-vend/internal/config"
	"github.com/Faultbox/emoji-vend/internal/engine/audio"
	"github.com/Faultbox/emoji-vend/internal/engine/camera"
	"github.com/Faultbox/emoji-vend/internal/engine/input"
	"github.com/Faultbox/emoji-vend/internal/engine/renderer"
	"github.com/Faultbox/emoji-vend/internal/engine/window"
	"github.com/Faultbox/emoji-vend/internal/game/states"
	"github.com/Faultbox/emoji-vend/internal/logger"
	"github.com/Faultbox/emoji-vend/internal/scene"
	"github.com/Faultbox/emoji-vend/internal/vending"
)

// maxFrame caps a single tick so a stalled frame does not skip the animation.
const maxFrame = 100 * time.Millisecond

// Game is the main game instance.
type Game struct {
	config  *config.Config
	running bool
	log     *zap.Logger

	window   *window.Window
	renderer *renderer.Renderer
	input    *input.Input
	audio    *audio.Manager
	assets   *assets.Manager
	camera   *camera.OrbitCamera

	host    *Host
	machine *vending.Machine
	states  *states.Manager
}

// New creates the window, renderer and machine, and queues asset loading.
func New(cfg *config.Config) (*Game, error) {
	g := &Game{
		config: cfg,
		log:    logger.Named("game"),
	}
	g.log.Info("initializing game",
		zap.String("title", cfg.Window.Title),
		zap.Int("width", cfg.Window.Width),
		zap.Int("height", cfg.Window.Height),
	)

	var err error
	g.window, err = window.New(window.Config{
		Title:      cfg.Window.Title,
		Width:      cfg.Window.Width,
		Height:     cfg.Window.Height,
		Fullscreen: cfg.Window.Fullscreen,
		VSync:      cfg.Window.VSync,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to create window: %w", err)
	}

	// Renderer AFTER window, since the OpenGL context must exist
	drawW, drawH := g.window.DrawableSize()
	g.renderer, err = renderer.New(renderer.Config{Width: drawW, Height: drawH})
	if err != nil {
		g.window.Close()
		return nil, fmt.Errorf("failed to create renderer: %w", err)
	}

	winW, winH := g.window.GetSize()
	g.input = input.New(winW, winH)
	g.camera = camera.NewOrbitCamera()
	g.assets = assets.NewManager(cfg.Assets.Roots...)

	g.audio = audio.New()
	g.audio.SetVolume(cfg.Audio.Volume)
	g.audio.SetMuted(cfg.Audio.Muted)
	if err := g.audio.Init(); err != nil {
		// Cues fail individually and are logged by the machine.
		g.log.Warn("audio unavailable", zap.Error(err))
	}

	g.host = NewHost(g.window, cfg.Window.Title)
	g.machine = vending.New(g.host, cuePlayer{audio: g.audio}, vending.Options{
		FirstSegment:    cfg.Machine.FirstSegment,
		CompletionDelay: cfg.Machine.CompletionDelay,
		Logger:          logger.Named("vending"),
	})

	g.states = states.NewManager()
	g.states.Change(states.NewLoadingState(states.LoadingStateConfig{
		Assets:    g.assets,
		ScenePath: cfg.Assets.Scene,
		Cues:      cfg.Assets.Cues,
		Clips:     g.audio,
		Next:      g.enterMachine,
	}, g.states))

	g.log.Info("game initialized successfully")
	return g, nil
}

// enterMachine finishes loading and builds the interactive state.
func (g *Game) enterMachine(c *scene.Composer) states.State {
	g.machine.Loaded()
	winW, winH := g.window.GetSize()
	return states.NewMachineState(states.MachineStateConfig{
		Machine:  g.machine,
		Composer: c,
		Camera:   g.camera,
		Drawer:   g.renderer,
		Popup:    g.host,
		Width:    winW,
		Height:   winH,
	})
}

// Run starts the main loop: input, update, render, present.
func (g *Game) Run() error {
	g.running = true

	lastTime := time.Now()
	frameCount := 0
	fpsTimer := time.Now()

	g.log.Info("starting game loop")

	for g.running {
		now := time.Now()
		dt := min(now.Sub(lastTime), maxFrame)
		lastTime = now

		// 1. Process input
		if g.input.Update() {
			g.running = false
			break
		}
		for _, event := range g.input.Events() {
			if err := g.handleEvent(event); err != nil {
				return fmt.Errorf("input error: %w", err)
			}
		}

		// 2. Update
		if err := g.states.Update(dt); err != nil {
			return fmt.Errorf("update error: %w", err)
		}

		// 3. Render
		g.renderer.Begin()
		if err := g.states.Render(); err != nil {
			return fmt.Errorf("render error: %w", err)
		}

		// 4. Present
		g.window.SwapBuffers()

		frameCount++
		if time.Since(fpsTimer) >= time.Second {
			g.log.Debug("fps", zap.Int("count", frameCount), zap.Duration("dt", dt))
			frameCount = 0
			fpsTimer = time.Now()
		}
	}

	return nil
}

func (g *Game) handleEvent(event input.Event) error {
	switch event.Type {
	case input.EventWindowResize:
		g.renderer.Resize(g.window.DrawableSize())
	case input.EventKeyDown:
		if event.Key == sdl.SCANCODE_ESCAPE {
			g.running = false
			return nil
		}
	}
	return g.states.HandleInput(event)
}

// Close cleans up game resources.
func (g *Game) Close() {
	g.log.Info("closing game")

	if g.states != nil {
		if err := g.states.Close(); err != nil {
			g.log.Warn("closing state", zap.Error(err))
		}
	}
	if g.machine != nil {
		g.machine.Close()
	}
	if g.audio != nil {
		g.audio.Close()
	}
	if g.assets != nil {
		g.assets.Close()
	}
	if g.renderer != nil {
		g.renderer.Close()
	}
	if g.window != nil {
		g.window.Close()
	}
}
