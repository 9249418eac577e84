// Package luahook runs sandboxed Lua handlers for Custom-typed interactions.
//
// Scripts register a handler per object name with On:
//
//	On("music_box", function(ctx)
//	  if HasItem("key") then
//	    Hint("The box plays a waltz.")
//	    Rotate(90)
//	  else
//	    Hint("It is wound shut.")
//	  end
//	end)
//
// Bind a Host to objects (or a whole World) and every Custom execution of a
// bound object calls its handler with the object's name and the interactor.
package luahook

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/phanxgames/orrery"
	lua "github.com/yuin/gopher-lua"
)

// ErrNoHandler is returned by Dispatch when no script registered a handler
// for the object.
var ErrNoHandler = errors.New("luahook: no handler")

// Options configures a Host.
type Options struct {
	// Timeout bounds a single handler call. Zero means no limit.
	Timeout time.Duration
}

// Host owns a sandboxed Lua VM and the handlers scripts registered in it.
// A Host is not safe for concurrent use.
type Host struct {
	L        *lua.LState
	opts     Options
	handlers map[string]*lua.LFunction

	// call is the interaction being dispatched; API functions act on it.
	call    *orrery.CustomInteraction
	lastErr error
}

// New creates a Host with only the base, table, string and math libraries
// and without file loading or raw table access.
func New(opts Options) *Host {
	L := lua.NewState(lua.Options{SkipOpenLibs: true})
	openSafeLibs(L)
	sandbox(L)
	h := &Host{L: L, opts: opts, handlers: make(map[string]*lua.LFunction)}
	h.registerAPI()
	return h
}

// Close releases the VM.
func (h *Host) Close() {
	h.L.Close()
}

// LoadString executes a script chunk, collecting its On registrations.
func (h *Host) LoadString(src string) error {
	if err := h.L.DoString(src); err != nil {
		return fmt.Errorf("luahook: load: %w", err)
	}
	return nil
}

// LoadFile executes a script file.
func (h *Host) LoadFile(path string) error {
	if err := h.L.DoFile(path); err != nil {
		return fmt.Errorf("luahook: load %s: %w", path, err)
	}
	return nil
}

// HasHandler reports whether a handler is registered for name.
func (h *Host) HasHandler(name string) bool {
	_, ok := h.handlers[name]
	return ok
}

// Err returns the error of the most recent failed handler call, or nil.
func (h *Host) Err() error { return h.lastErr }

// Bind routes o's Custom executions to the handler registered for o.Name.
// Objects without an Interactable are ignored and yield the zero handle.
func (h *Host) Bind(o *orrery.Object) orrery.CallbackHandle {
	it := o.Interactable()
	if it == nil {
		return orrery.CallbackHandle{}
	}
	return it.OnCustomInteract(func(ci orrery.CustomInteraction) {
		if err := h.Dispatch(ci); err != nil {
			orrery.Logger().Warn("lua handler failed", "component", "luahook", "object", ci.Object.String(), "err", err)
		}
	})
}

// BindWorld binds every Custom-typed object in w that has a handler and
// returns how many were bound.
func (h *Host) BindWorld(w *orrery.World) int {
	n := 0
	for _, o := range w.Objects() {
		it := o.Interactable()
		if it == nil || it.Type() != orrery.TypeCustom || !h.HasHandler(o.Name) {
			continue
		}
		h.Bind(o)
		n++
	}
	return n
}

// Dispatch runs the handler for ci.Object synchronously.
func (h *Host) Dispatch(ci orrery.CustomInteraction) error {
	name := ""
	if ci.Object != nil {
		name = ci.Object.Name
	}
	fn, ok := h.handlers[name]
	if !ok {
		return fmt.Errorf("%w for %q", ErrNoHandler, name)
	}

	if h.opts.Timeout > 0 {
		ctx, cancel := context.WithTimeout(context.Background(), h.opts.Timeout)
		defer cancel()
		h.L.SetContext(ctx)
		defer h.L.RemoveContext()
	}

	h.call = &ci
	defer func() { h.call = nil }()

	err := h.L.CallByParam(lua.P{Fn: fn, NRet: 0, Protect: true}, h.contextTable(ci))
	if err != nil {
		h.lastErr = fmt.Errorf("luahook: %s: %w", name, err)
		return h.lastErr
	}
	h.lastErr = nil
	return nil
}

func (h *Host) contextTable(ci orrery.CustomInteraction) *lua.LTable {
	t := h.L.NewTable()
	if ci.Object != nil {
		t.RawSetString("object", lua.LString(ci.Object.Name))
		if it := ci.Object.Interactable(); it != nil {
			t.RawSetString("angle", lua.LNumber(it.CurrentRotationAngle()))
		}
	}
	if ci.Interactor != nil {
		t.RawSetString("interactor", lua.LString(ci.Interactor.Name))
	}
	return t
}

// openSafeLibs opens only the safe subset of Lua standard libraries.
func openSafeLibs(L *lua.LState) {
	lua.OpenBase(L)
	lua.OpenTable(L)
	lua.OpenString(L)
	lua.OpenMath(L)
}

// sandbox removes globals that reach outside the VM or bypass metatables.
func sandbox(L *lua.LState) {
	for _, name := range []string{
		"dofile", "loadfile", "load", "loadstring",
		"rawset", "rawget", "rawequal",
		"collectgarbage",
	} {
		L.SetGlobal(name, lua.LNil)
	}
	if tbl, ok := L.GetGlobal("math").(*lua.LTable); ok {
		tbl.RawSetString("randomseed", lua.LNil)
	}
}
