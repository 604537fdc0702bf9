package states

import (
	"errors"
	"os"
	"path/filepath"
	"sync"
	"testing"
	"time"

	"github.com/veandco/go-sdl2/sdl"

	"github.com/Faultbox/emoji-vend/internal/assets"
	"github.com/Faultbox/emoji-vend/internal/engine/camera"
	"github.com/Faultbox/emoji-vend/internal/engine/input"
	"github.com/Faultbox/emoji-vend/internal/scene"
	"github.com/Faultbox/emoji-vend/internal/vending"
	"github.com/Faultbox/emoji-vend/pkg/math"
)

type recordState struct {
	name  string
	calls *[]string
	err   error
}

func (s *recordState) Enter() error {
	*s.calls = append(*s.calls, s.name+".enter")
	return s.err
}

func (s *recordState) Exit() error {
	*s.calls = append(*s.calls, s.name+".exit")
	return nil
}

func (s *recordState) Update(dt time.Duration) error {
	*s.calls = append(*s.calls, s.name+".update")
	return nil
}

func (s *recordState) Render() error { return nil }

func (s *recordState) HandleInput(event input.Event) error {
	*s.calls = append(*s.calls, s.name+".input")
	return nil
}

func TestManagerTransitions(t *testing.T) {
	var calls []string
	a := &recordState{name: "a", calls: &calls}
	b := &recordState{name: "b", calls: &calls}

	m := NewManager()
	m.Change(a)
	if m.Current() != nil {
		t.Fatal("Change applied before Update")
	}
	_ = m.Update(time.Millisecond)
	_ = m.HandleInput(input.Event{})
	m.Change(b)
	_ = m.Update(time.Millisecond)
	_ = m.Close()

	want := []string{"a.enter", "a.update", "a.input", "a.exit", "b.enter", "b.update", "b.exit"}
	if len(calls) != len(want) {
		t.Fatalf("calls = %v, want %v", calls, want)
	}
	for i := range want {
		if calls[i] != want[i] {
			t.Errorf("call %d = %s, want %s", i, calls[i], want[i])
		}
	}
	if m.Current() != nil {
		t.Error("Current not cleared by Close")
	}
}

func TestManagerEnterError(t *testing.T) {
	var calls []string
	boom := errors.New("boom")
	m := NewManager()
	m.Change(&recordState{name: "a", calls: &calls, err: boom})
	if err := m.Update(0); !errors.Is(err, boom) {
		t.Errorf("Update = %v, want boom", err)
	}
}

type fakeClips struct {
	mu     sync.Mutex
	loaded map[string]int
	synth  map[string]float64
}

func newFakeClips() *fakeClips {
	return &fakeClips{loaded: map[string]int{}, synth: map[string]float64{}}
}

func (f *fakeClips) LoadClip(name string, data []byte) error {
	if string(data) != "RIFF" {
		return errors.New("not a wav")
	}
	f.mu.Lock()
	defer f.mu.Unlock()
	f.loaded[name] = len(data)
	return nil
}

func (f *fakeClips) SynthClip(name string, freq float64, d time.Duration) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.synth[name] = freq
	return nil
}

func waitFor(t *testing.T, m *Manager, done func() bool) {
	t.Helper()
	deadline := time.Now().Add(5 * time.Second)
	for !done() {
		if time.Now().After(deadline) {
			t.Fatal("timed out")
		}
		if err := m.Update(10 * time.Millisecond); err != nil {
			t.Fatalf("Update: %v", err)
		}
		time.Sleep(time.Millisecond)
	}
}

func TestLoadingStateLoadsAndSwitches(t *testing.T) {
	dir := t.TempDir()
	if err := os.WriteFile(filepath.Join(dir, "check.wav"), []byte("RIFF"), 0644); err != nil {
		t.Fatal(err)
	}
	if err := os.WriteFile(filepath.Join(dir, "cancel.wav"), []byte("junk"), 0644); err != nil {
		t.Fatal(err)
	}

	clips := newFakeClips()
	var calls []string
	next := &recordState{name: "next", calls: &calls}
	var got *scene.Composer

	m := NewManager()
	m.Change(NewLoadingState(LoadingStateConfig{
		Assets: assets.NewManager(dir),
		Cues: map[string]string{
			"emoji":  "missing.wav",
			"check":  "check.wav",
			"cancel": "cancel.wav",
		},
		Clips: clips,
		Next: func(c *scene.Composer) State {
			got = c
			return next
		},
	}, m))

	waitFor(t, m, func() bool { return m.Current() == next })

	if got == nil {
		t.Error("Next called without a composer")
	}
	if clips.loaded["check"] != 4 {
		t.Errorf("check clip not loaded from file: %v", clips.loaded)
	}
	if clips.synth["emoji"] != 880 || clips.synth["cancel"] != 330 {
		t.Errorf("fallback tones = %v", clips.synth)
	}
}

func TestLoadingStateBadScene(t *testing.T) {
	dir := t.TempDir()
	if err := os.WriteFile(filepath.Join(dir, "bad.yaml"), []byte("nodes: ["), 0644); err != nil {
		t.Fatal(err)
	}

	next := func(*scene.Composer) State {
		t.Fatal("Next called")
		return nil
	}
	m := NewManager()
	m.Change(NewLoadingState(LoadingStateConfig{
		Assets:    assets.NewManager(dir),
		ScenePath: "bad.yaml",
		Clips:     newFakeClips(),
		Next:      next,
	}, m))

	deadline := time.Now().Add(5 * time.Second)
	for {
		if err := m.Update(0); err != nil {
			return
		}
		if time.Now().After(deadline) {
			t.Fatal("bad scene never reported")
		}
		time.Sleep(time.Millisecond)
	}
}

type fakeDrawer struct {
	items []scene.DrawItem
}

func (d *fakeDrawer) Aspect() float32 { return 16.0 / 9.0 }

func (d *fakeDrawer) Draw(viewProj math.Mat4, items []scene.DrawItem) { d.items = items }

type fakePopup struct{ open bool }

func (p *fakePopup) PopupOpen() bool { return p.open }

func (p *fakePopup) ClosePopup() { p.open = false }

type machineFixture struct {
	state   *MachineState
	machine *vending.Machine
	popup   *fakePopup
	drawer  *fakeDrawer
	scene   *assets.Scene
	camera  *camera.OrbitCamera
}

const viewW, viewH = 1280, 720

func newMachineFixture(t *testing.T) *machineFixture {
	t.Helper()
	sc, err := assets.NewManager().LoadScene("")
	if err != nil {
		t.Fatalf("LoadScene: %v", err)
	}
	composer, err := scene.NewComposer(sc)
	if err != nil {
		t.Fatalf("NewComposer: %v", err)
	}
	f := &machineFixture{
		machine: vending.New(nil, nil, vending.Options{}),
		popup:   &fakePopup{},
		drawer:  &fakeDrawer{},
		scene:   sc,
		camera:  camera.NewOrbitCamera(),
	}
	t.Cleanup(f.machine.Close)
	f.state = NewMachineState(MachineStateConfig{
		Machine:  f.machine,
		Composer: composer,
		Camera:   f.camera,
		Drawer:   f.drawer,
		Popup:    f.popup,
		Width:    viewW,
		Height:   viewH,
	})
	return f
}

// pixelOf returns the window pixel over the named node's center.
func (f *machineFixture) pixelOf(t *testing.T, node string) (int, int) {
	t.Helper()
	n, ok := f.scene.Node(node)
	if !ok {
		t.Fatalf("node %s missing", node)
	}
	ndc := f.camera.ViewProjection(f.drawer.Aspect()).TransformPoint(n.Pos().Add(f.scene.RootOffset()))
	return int((ndc.X + 1) / 2 * viewW), int((1 - ndc.Y) / 2 * viewH)
}

func (f *machineFixture) move(t *testing.T, node string) {
	t.Helper()
	x, y := f.pixelOf(t, node)
	_ = f.state.HandleInput(input.Event{Type: input.EventMouseMove, MouseX: x, MouseY: y})
}

func (f *machineFixture) click(t *testing.T, node string) {
	t.Helper()
	x, y := f.pixelOf(t, node)
	_ = f.state.HandleInput(input.Event{Type: input.EventMouseDown, MouseX: x, MouseY: y, Button: sdl.BUTTON_LEFT})
}

func TestMachineStateHoverAndClick(t *testing.T) {
	f := newMachineFixture(t)

	f.move(t, "button_sad_smiley")
	if got := f.machine.Hovered(); got != vending.Button(vending.ItemSadSmiley) {
		t.Fatalf("Hovered = %q, want sad_smiley", got)
	}

	f.click(t, "button_sad_smiley")
	if got := f.machine.Selected(); got != vending.ItemSadSmiley {
		t.Fatalf("Selected = %q, want sad_smiley", got)
	}

	_ = f.state.HandleInput(input.Event{Type: input.EventMouseLeave})
	if got := f.machine.Hovered(); got != vending.ButtonNone {
		t.Errorf("Hovered after leave = %q", got)
	}

	f.click(t, "button_ok")
	if f.machine.State() != vending.StateConfirming {
		t.Errorf("State = %v, want confirming", f.machine.State())
	}
}

func TestMachineStatePopupCloseResets(t *testing.T) {
	f := newMachineFixture(t)

	f.click(t, "button_smiley")
	f.click(t, "button_ok")
	for i := 0; i < 400 && !f.machine.AnimationCompleted(); i++ {
		_ = f.state.Update(10 * time.Millisecond)
	}
	if !f.machine.AnimationCompleted() {
		t.Fatal("dispense never completed")
	}
	f.popup.open = true

	// The click closing the popup must not reach the buttons.
	f.click(t, "button_cancel")
	if f.popup.open {
		t.Error("popup still open")
	}
	if f.machine.Selected() != vending.ItemNone {
		t.Errorf("Selected = %q after popup closed", f.machine.Selected())
	}
	if !f.machine.ResetPending() {
		t.Error("reset not requested")
	}

	_ = f.state.Update(10 * time.Millisecond)
	item, _ := vending.Lookup(vending.ItemSmiley)
	if p, _ := f.machine.ItemPosition(vending.ItemSmiley); p != item.Shelf {
		t.Errorf("smiley at %+v after reset, want shelf", p)
	}
}

func TestMachineStateEnterClosesPopup(t *testing.T) {
	f := newMachineFixture(t)
	f.popup.open = true

	_ = f.state.HandleInput(input.Event{Type: input.EventKeyDown, Key: sdl.SCANCODE_RETURN})
	if f.popup.open || !f.machine.ResetPending() {
		t.Errorf("popup open = %v, reset pending = %v", f.popup.open, f.machine.ResetPending())
	}
}

func TestMachineStateRender(t *testing.T) {
	f := newMachineFixture(t)
	if err := f.state.Render(); err != nil {
		t.Fatalf("Render: %v", err)
	}
	if len(f.drawer.items) != len(f.scene.Nodes) {
		t.Errorf("drew %d items, want %d", len(f.drawer.items), len(f.scene.Nodes))
	}
}

func TestMachineStateCameraInput(t *testing.T) {
	f := newMachineFixture(t)
	dist := f.camera.Distance
	yaw := f.camera.RotationY

	_ = f.state.HandleInput(input.Event{Type: input.EventWheel, Wheel: 1})
	_ = f.state.HandleInput(input.Event{Type: input.EventKeyDown, Key: sdl.SCANCODE_RIGHT})

	if f.camera.Distance >= dist {
		t.Errorf("wheel up did not zoom in: %v", f.camera.Distance)
	}
	if f.camera.RotationY <= yaw {
		t.Errorf("right arrow did not turn: %v", f.camera.RotationY)
	}
}
