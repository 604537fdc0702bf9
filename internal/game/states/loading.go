package states

import (
	"errors"
	"fmt"
	"time"

	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"github.com/Faultbox/emoji-vend/internal/assets"
	"github.com/Faultbox/emoji-vend/internal/engine/input"
	"github.com/Faultbox/emoji-vend/internal/logger"
	"github.com/Faultbox/emoji-vend/internal/scene"
	"github.com/Faultbox/emoji-vend/internal/vending"
)

// ClipLoader registers named sound clips. *audio.Manager implements it.
type ClipLoader interface {
	LoadClip(name string, wavData []byte) error
	SynthClip(name string, freq float64, d time.Duration) error
}

// tone is the synthesized stand-in for a cue whose file is missing.
type tone struct {
	freq float64
	dur  time.Duration
}

var fallbackTones = map[vending.Cue]tone{
	vending.CueEmoji:  {880, 120 * time.Millisecond},
	vending.CueCheck:  {660, 180 * time.Millisecond},
	vending.CueCancel: {330, 200 * time.Millisecond},
}

// LoadingStateConfig contains configuration for the loading state.
type LoadingStateConfig struct {
	Assets    *assets.Manager
	ScenePath string            // empty loads the built-in scene
	Cues      map[string]string // cue name to clip path
	Clips     ClipLoader

	// Next builds the state entered once loading succeeds.
	Next func(*scene.Composer) State
}

// loadResult carries the outcome of the background load.
type loadResult struct {
	composer *scene.Composer
	err      error
}

// LoadingState loads the scene and cue clips off the main thread.
type LoadingState struct {
	config  LoadingStateConfig
	manager *Manager
	log     *zap.Logger

	done chan loadResult

	StatusMsg  string
	IsComplete bool
	startTime  time.Time
}

// NewLoadingState creates a new loading state.
func NewLoadingState(cfg LoadingStateConfig, manager *Manager) *LoadingState {
	return &LoadingState{
		config:    cfg,
		manager:   manager,
		log:       logger.Named("loading"),
		StatusMsg: "Loading...",
	}
}

// Enter starts loading in the background.
func (s *LoadingState) Enter() error {
	s.startTime = time.Now()
	s.IsComplete = false
	s.done = make(chan loadResult, 1)

	s.log.Info("entering LoadingState",
		zap.String("scene", s.config.ScenePath),
		zap.Int("cues", len(s.config.Cues)))

	go func() {
		c, err := s.load()
		s.done <- loadResult{composer: c, err: err}
	}()
	return nil
}

// Exit is called when leaving this state.
func (s *LoadingState) Exit() error {
	return nil
}

// Update switches to the next state once loading has finished.
func (s *LoadingState) Update(dt time.Duration) error {
	if s.IsComplete {
		return nil
	}

	select {
	case res := <-s.done:
		if res.err != nil {
			s.StatusMsg = fmt.Sprintf("Loading failed: %v", res.err)
			return res.err
		}
		s.IsComplete = true
		s.StatusMsg = "Ready"
		s.log.Info("loading complete", zap.Duration("took", time.Since(s.startTime)))
		s.manager.Change(s.config.Next(res.composer))
	default:
	}
	return nil
}

// Render is called every frame to draw the state.
func (s *LoadingState) Render() error {
	return nil
}

// HandleInput ignores input while loading.
func (s *LoadingState) HandleInput(event input.Event) error {
	return nil
}

// load reads the scene and every cue clip.
func (s *LoadingState) load() (*scene.Composer, error) {
	var g errgroup.Group

	for name, path := range s.config.Cues {
		g.Go(func() error {
			return s.loadCue(name, path)
		})
	}

	sc, err := s.config.Assets.LoadScene(s.config.ScenePath)
	if err != nil {
		_ = g.Wait()
		return nil, fmt.Errorf("loading scene: %w", err)
	}
	composer, err := scene.NewComposer(sc)
	if err != nil {
		_ = g.Wait()
		return nil, fmt.Errorf("binding scene: %w", err)
	}

	if err := g.Wait(); err != nil {
		return nil, err
	}
	return composer, nil
}

// loadCue registers one cue clip, synthesizing a tone when the file is
// missing or unreadable as WAV.
func (s *LoadingState) loadCue(name, path string) error {
	data, err := s.config.Assets.Load(path)
	if err == nil {
		if err = s.config.Clips.LoadClip(name, data); err == nil {
			return nil
		}
	}
	if !errors.Is(err, assets.ErrNotFound) {
		s.log.Warn("cue clip unusable, synthesizing", zap.String("cue", name), zap.Error(err))
	} else {
		s.log.Debug("cue clip missing, synthesizing", zap.String("cue", name), zap.String("path", path))
	}

	t, ok := fallbackTones[vending.Cue(name)]
	if !ok {
		t = tone{freq: 440, dur: 150 * time.Millisecond}
	}
	if err := s.config.Clips.SynthClip(name, t.freq, t.dur); err != nil {
		return fmt.Errorf("cue %s: %w", name, err)
	}
	return nil
}
