package orrery

import (
	"testing"

	"github.com/go-gl/mathgl/mgl64"
)

// testScene is a camera at (0,0,10) looking at the origin over an 800x600
// viewport, with unit spheres placed along the X axis.
type testScene struct {
	world *World
	cam   *Camera
	in    *Injector
}

func newTestScene() *testScene {
	return &testScene{
		world: NewWorld(),
		cam:   NewCamera(testViewport),
		in:    NewInjector(),
	}
}

func (s *testScene) add(name string, x float64, cfg InteractableConfig) *Object {
	o := NewObject(name, ColliderSphere{Radius: 1})
	o.Position = mgl64.Vec3{x, 0, 0}
	o.SetInteractable(MustInteractable(cfg))
	s.world.Add(o)
	return o
}

func (s *testScene) screenOf(o *Object) Vec2 {
	return s.cam.WorldToScreen(o.Position)
}

func (s *testScene) focus(mode TraceMode) *FocusResolver {
	cfg := DefaultFocusConfig()
	cfg.TraceMode = mode
	return NewFocusResolver(s.world, s.cam, s.in, cfg)
}

func tapConfig() InteractableConfig {
	cfg := DefaultInteractableConfig()
	cfg.HighlightFade = 0
	return cfg
}

func TestFocusCenterProbe(t *testing.T) {
	s := newTestScene()
	door := s.add("door", 0, tapConfig())
	f := s.focus(TraceScreenCenter)

	f.Update()
	if f.Current() != door || !f.HasFocus() {
		t.Fatalf("Current = %v, want door", f.Current())
	}
	if !door.Interactable().Focused() || !door.Highlighted {
		t.Error("door should be focused and highlighted")
	}
}

func TestFocusFiresOncePerTransition(t *testing.T) {
	s := newTestScene()
	a := s.add("a", 0, tapConfig())
	b := s.add("b", 4, tapConfig())
	f := s.focus(TracePointer)

	var changes []FocusChange
	f.OnFocusChanged(func(c FocusChange) { changes = append(changes, c) })

	pa, pb := s.screenOf(a), s.screenOf(b)
	for i := 0; i < 3; i++ {
		s.in.InjectHover(pa.X, pa.Y)
	}
	for i := 0; i < 2; i++ {
		s.in.InjectHover(pb.X, pb.Y)
	}
	s.in.InjectHover(10, 10)
	s.in.InjectHover(10, 10)

	for i := 0; i < 7; i++ {
		s.in.Advance()
		f.Update()
	}

	want := []FocusChange{{New: a}, {New: b, Old: a}, {New: nil, Old: b}}
	if len(changes) != len(want) {
		t.Fatalf("got %d changes, want %d: %v", len(changes), len(want), changes)
	}
	for i := range want {
		if changes[i] != want[i] {
			t.Errorf("change %d = %+v, want %+v", i, changes[i], want[i])
		}
	}
}

func TestFocusEndBeforeBegin(t *testing.T) {
	s := newTestScene()
	a := s.add("a", 0, tapConfig())
	b := s.add("b", 4, tapConfig())
	f := s.focus(TracePointer)

	var order []string
	a.Interactable().OnFocusChanged(func(on bool) {
		if on {
			order = append(order, "begin a")
		} else {
			order = append(order, "end a")
		}
	})
	b.Interactable().OnFocusChanged(func(on bool) {
		if on {
			order = append(order, "begin b")
		} else {
			order = append(order, "end b")
		}
	})

	f.SetFocus(a)
	f.SetFocus(a) // idempotent
	f.SetFocus(b)
	f.ClearFocus()

	want := []string{"begin a", "end a", "begin b", "end b"}
	if len(order) != len(want) {
		t.Fatalf("order = %v, want %v", order, want)
	}
	for i := range want {
		if order[i] != want[i] {
			t.Errorf("order[%d] = %q, want %q", i, order[i], want[i])
		}
	}
}

func TestFocusCapabilityGate(t *testing.T) {
	s := newTestScene()
	plain := NewObject("statue", ColliderSphere{Radius: 1})
	s.world.Add(plain)
	f := s.focus(TraceScreenCenter)

	f.Update()
	if f.HasFocus() {
		t.Errorf("object without capability focused: %v", f.Current())
	}
}

func TestFocusDisabledObject(t *testing.T) {
	s := newTestScene()
	door := s.add("door", 0, tapConfig())
	f := s.focus(TraceScreenCenter)

	f.Update()
	if f.Current() != door {
		t.Fatal("door should be focused")
	}
	door.Interactable().SetEnabled(false)
	f.Update()
	if f.HasFocus() {
		t.Error("disabled object kept focus")
	}
	if door.Interactable().Focused() {
		t.Error("end focus was not called on the disabled object")
	}
}

func TestFocusInertWithoutSource(t *testing.T) {
	s := newTestScene()
	s.add("door", 0, tapConfig())
	f := NewFocusResolver(s.world, s.cam, nil, DefaultFocusConfig())
	f.Update() // must not panic
	if f.HasFocus() {
		t.Error("resolver without a source should be inert")
	}
	f = NewFocusResolver(s.world, nil, s.in, DefaultFocusConfig())
	f.Update()
	if f.HasFocus() {
		t.Error("resolver without a camera should be inert")
	}
}

func TestFocusPointerWithoutCursor(t *testing.T) {
	s := newTestScene()
	s.add("door", 0, tapConfig())
	f := s.focus(TracePointer)
	f.Update()
	if f.HasFocus() {
		t.Error("no cursor should fire no probe")
	}
}

func TestFocusTouchFallsBackToCenter(t *testing.T) {
	s := newTestScene()
	center := s.add("center", 0, tapConfig())
	side := s.add("side", 4, tapConfig())
	f := s.focus(TraceTouch)

	f.Update()
	if f.Current() != center {
		t.Fatalf("not touching: Current = %v, want center", f.Current())
	}
	p := s.screenOf(side)
	s.in.InjectPress(p.X, p.Y)
	s.in.Advance()
	f.Update()
	if f.Current() != side {
		t.Errorf("touching: Current = %v, want side", f.Current())
	}
}

func TestFocusPrompt(t *testing.T) {
	s := newTestScene()
	cfg := tapConfig()
	cfg.Prompt = "Open"
	s.add("door", 0, cfg)
	ui := NewUIState(nil)
	f := s.focus(TraceScreenCenter)
	f.SetPresenter(ui)

	f.Update()
	if !ui.PromptVisible || ui.Prompt != "Open" {
		t.Errorf("prompt = %q visible=%v", ui.Prompt, ui.PromptVisible)
	}
	f.ClearFocus()
	if ui.PromptVisible {
		t.Error("prompt still visible after focus cleared")
	}
}

func TestFocusDropsDisposedObject(t *testing.T) {
	s := newTestScene()
	door := s.add("door", 0, tapConfig())
	f := s.focus(TraceScreenCenter)
	f.Update()

	var changes []FocusChange
	f.OnFocusChanged(func(c FocusChange) { changes = append(changes, c) })
	door.Dispose()
	f.Update()
	if f.HasFocus() {
		t.Error("disposed object still focused")
	}
	if len(changes) != 1 || changes[0].Old != door || changes[0].New != nil {
		t.Errorf("changes = %+v", changes)
	}
}

func TestFocusInteract(t *testing.T) {
	s := newTestScene()
	cfg := tapConfig()
	cfg.ObserveText = "A heavy oak door."
	door := s.add("door", 0, cfg)
	ui := NewUIState(nil)
	interactor := &Interactor{UI: ui}
	f := s.focus(TraceScreenCenter)

	if f.Interact(interactor) {
		t.Error("Interact with no focus should report false")
	}
	f.Update()
	var got *Object
	f.OnInteracted(func(o *Object) { got = o })
	if !f.Interact(interactor) {
		t.Fatal("Interact = false")
	}
	if got != door {
		t.Error("OnInteracted not fired with door")
	}
	if ui.Hint != "A heavy oak door." {
		t.Errorf("hint = %q", ui.Hint)
	}
}

func TestFocusUseItemOnFocus(t *testing.T) {
	s := newTestScene()
	key := Item{ID: "key"}
	cfg := tapConfig()
	cfg.Type = TypeUseItem
	cfg.RequiredItem = &key
	lock := s.add("lock", 0, cfg)
	bag := NewBag(0)
	bag.Add(key, 1)
	interactor := &Interactor{Inventory: bag}
	f := s.focus(TraceScreenCenter)
	f.Update()

	if f.UseItemOnFocus(Item{ID: "spoon"}, interactor) {
		t.Error("wrong item accepted")
	}
	if !f.UseItemOnFocus(key, interactor) {
		t.Fatal("key rejected")
	}
	if bag.Has("key", 1) {
		t.Error("key not consumed")
	}
	if lock.Interactable().Enabled() {
		t.Error("lock should disable itself after use")
	}
}

func TestFocusEventStore(t *testing.T) {
	s := newTestScene()
	door := s.add("door", 0, tapConfig())
	door.EntityID = 42
	store := &recordingStore{}
	f := s.focus(TraceScreenCenter)
	f.SetEventStore(store)

	f.Update()
	f.Update()
	if store.count(EventFocusChanged) != 1 {
		t.Fatalf("focus events = %d, want 1", store.count(EventFocusChanged))
	}
	e, _ := store.last(EventFocusChanged)
	if e.EntityID != 42 || e.PrevEntityID != 0 {
		t.Errorf("event = %+v", e)
	}
}
