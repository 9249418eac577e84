package luahook

import (
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/phanxgames/orrery"
)

func customObject(t *testing.T, name string) (*orrery.Object, *orrery.Interactable) {
	t.Helper()
	cfg := orrery.DefaultInteractableConfig()
	cfg.Type = orrery.TypeCustom
	it, err := orrery.NewInteractable(cfg)
	if err != nil {
		t.Fatal(err)
	}
	o := orrery.NewObject(name, orrery.ColliderSphere{Radius: 1})
	o.SetInteractable(it)
	return o, it
}

func newInteractor() (*orrery.Interactor, *orrery.UIState, *orrery.Bag) {
	ui := orrery.NewUIState(nil)
	bag := orrery.NewBag(0)
	return &orrery.Interactor{Name: "player", UI: ui, Inventory: bag, Navigator: ui}, ui, bag
}

func TestHandlerRunsOnExecute(t *testing.T) {
	h := New(Options{})
	defer h.Close()
	err := h.LoadString(`
		On("music_box", function(ctx)
		  if HasItem("key") then
		    TakeItem("key")
		    Hint("The box plays a waltz.")
		    Rotate(90)
		  else
		    Hint("It is wound shut.")
		  end
		end)
	`)
	if err != nil {
		t.Fatal(err)
	}

	o, it := customObject(t, "music_box")
	h.Bind(o)
	who, ui, bag := newInteractor()

	it.Execute(who)
	if ui.Hint != "It is wound shut." {
		t.Errorf("hint = %q", ui.Hint)
	}

	bag.Add(orrery.Item{ID: "key", Name: "Key"}, 1)
	it.Execute(who)
	if ui.Hint != "The box plays a waltz." || bag.Has("key", 1) {
		t.Errorf("hint = %q has key = %v", ui.Hint, bag.Has("key", 1))
	}
	if it.CurrentRotationAngle() != 90 {
		t.Errorf("angle = %v", it.CurrentRotationAngle())
	}
	if h.Err() != nil {
		t.Errorf("err = %v", h.Err())
	}
}

func TestContextTable(t *testing.T) {
	h := New(Options{})
	defer h.Close()
	_ = h.LoadString(`
		On("lever", function(ctx)
		  Hint(ctx.object .. ":" .. ctx.interactor)
		  GiveItem("gear", 2)
		  Navigate("cellar", 0)
		end)
	`)
	o, _ := customObject(t, "lever")
	who, ui, bag := newInteractor()
	if err := h.Dispatch(orrery.CustomInteraction{Object: o, Interactor: who}); err != nil {
		t.Fatal(err)
	}
	if ui.Hint != "lever:player" || bag.Quantity("gear") != 2 || ui.Level != "cellar" {
		t.Errorf("hint=%q gear=%d level=%q", ui.Hint, bag.Quantity("gear"), ui.Level)
	}
}

func TestSetEnabled(t *testing.T) {
	h := New(Options{})
	defer h.Close()
	_ = h.LoadString(`On("door", function() SetEnabled(false) end)`)
	o, it := customObject(t, "door")
	h.Bind(o)
	who, _, _ := newInteractor()
	it.Execute(who)
	if it.Enabled() {
		t.Error("handler should disable the object")
	}
}

func TestDispatchErrors(t *testing.T) {
	h := New(Options{})
	defer h.Close()
	o, _ := customObject(t, "unknown")
	if err := h.Dispatch(orrery.CustomInteraction{Object: o}); !errors.Is(err, ErrNoHandler) {
		t.Errorf("err = %v", err)
	}

	_ = h.LoadString(`On("broken", function() error("boom") end)`)
	b, it := customObject(t, "broken")
	h.Bind(b)
	who, _, _ := newInteractor()
	it.Execute(who)
	if h.Err() == nil || !strings.Contains(h.Err().Error(), "boom") {
		t.Errorf("err = %v", h.Err())
	}
}

func TestAPIOutsideHandler(t *testing.T) {
	h := New(Options{})
	defer h.Close()
	if err := h.LoadString(`Hint("too early")`); err == nil {
		t.Error("API call at load time should fail")
	}
}

func TestSandbox(t *testing.T) {
	h := New(Options{})
	defer h.Close()
	for _, src := range []string{
		`dofile("x.lua")`,
		`loadstring("return 1")()`,
		`os.exit(1)`,
		`io.write("x")`,
		`math.randomseed(1)`,
	} {
		if err := h.LoadString(src); err == nil {
			t.Errorf("%s should be rejected", src)
		}
	}
	if err := h.LoadString(`local s = string.format("%d", math.floor(2.5)); table.insert({}, s)`); err != nil {
		t.Errorf("safe libs should load: %v", err)
	}
}

func TestTimeout(t *testing.T) {
	h := New(Options{Timeout: 20 * time.Millisecond})
	defer h.Close()
	_ = h.LoadString(`On("spin", function() while true do end end)`)
	o, _ := customObject(t, "spin")
	if err := h.Dispatch(orrery.CustomInteraction{Object: o}); err == nil {
		t.Error("runaway handler should be stopped")
	}
}

func TestBindWorld(t *testing.T) {
	h := New(Options{})
	defer h.Close()
	_ = h.LoadString(`On("a", function() end) On("plain", function() end)`)

	w := orrery.NewWorld()
	a, _ := customObject(t, "a")
	b, _ := customObject(t, "b")
	plain := orrery.NewObject("plain", orrery.ColliderSphere{Radius: 1})
	plain.SetInteractable(orrery.MustInteractable(orrery.DefaultInteractableConfig()))
	for _, o := range []*orrery.Object{a, b, plain} {
		w.Add(o)
	}
	if n := h.BindWorld(w); n != 1 {
		t.Errorf("bound %d, want 1", n)
	}
}

func TestLoadFile(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "room.lua")
	if err := os.WriteFile(path, []byte(`On("chest", function() GiveItem("coin") end)`), 0o644); err != nil {
		t.Fatal(err)
	}
	h := New(Options{})
	defer h.Close()
	if err := h.LoadFile(path); err != nil {
		t.Fatal(err)
	}
	if !h.HasHandler("chest") {
		t.Error("handler not registered")
	}
	if err := h.LoadFile(filepath.Join(dir, "missing.lua")); err == nil {
		t.Error("missing file should fail")
	}
}
