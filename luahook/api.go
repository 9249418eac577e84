package luahook

import (
	"github.com/phanxgames/orrery"
	lua "github.com/yuin/gopher-lua"
)

func (h *Host) registerAPI() {
	L := h.L
	L.SetGlobal("On", L.NewFunction(h.luaOn))

	set := func(name string, fn lua.LGFunction) { L.SetGlobal(name, L.NewFunction(fn)) }
	set("Hint", h.luaHint)
	set("Say", h.luaSay)
	set("HasItem", h.luaHasItem)
	set("GiveItem", h.luaGiveItem)
	set("TakeItem", h.luaTakeItem)
	set("Navigate", h.luaNavigate)
	set("PlaySound", h.luaPlaySound)
	set("SetEnabled", h.luaSetEnabled)
	set("Rotate", h.luaRotate)
}

// On(name, fn) registers fn as the handler for the object called name. A
// later registration replaces an earlier one.
func (h *Host) luaOn(L *lua.LState) int {
	name := L.CheckString(1)
	fn := L.CheckFunction(2)
	h.handlers[name] = fn
	return 0
}

// interactor returns the current call's interactor, raising a Lua error
// outside a handler.
func (h *Host) interactor(L *lua.LState) *orrery.Interactor {
	if h.call == nil {
		L.RaiseError("only callable from an interaction handler")
		return nil
	}
	if h.call.Interactor == nil {
		return &orrery.Interactor{}
	}
	return h.call.Interactor
}

func (h *Host) luaHint(L *lua.LState) int {
	text := L.CheckString(1)
	seconds := float64(L.OptNumber(2, lua.LNumber(orrery.DefaultHintDuration)))
	if ui := h.interactor(L).UI; ui != nil {
		ui.ShowHint(text, seconds)
	}
	return 0
}

func (h *Host) luaSay(L *lua.LState) int {
	id := L.CheckString(1)
	d := h.interactor(L).Dialogue
	if d == nil {
		L.Push(lua.LFalse)
		return 1
	}
	L.Push(lua.LBool(d.PlayDialogue(id) == nil))
	return 1
}

func (h *Host) luaHasItem(L *lua.LState) int {
	id := L.CheckString(1)
	qty := L.OptInt(2, 1)
	inv := h.interactor(L).Inventory
	L.Push(lua.LBool(inv != nil && inv.Has(id, qty)))
	return 1
}

func (h *Host) luaGiveItem(L *lua.LState) int {
	id := L.CheckString(1)
	qty := L.OptInt(2, 1)
	inv := h.interactor(L).Inventory
	ok := inv != nil && inv.Add(orrery.Item{ID: id, Name: id, Stackable: true}, qty)
	L.Push(lua.LBool(ok))
	return 1
}

func (h *Host) luaTakeItem(L *lua.LState) int {
	id := L.CheckString(1)
	qty := L.OptInt(2, 1)
	inv := h.interactor(L).Inventory
	L.Push(lua.LBool(inv != nil && inv.Remove(id, qty)))
	return 1
}

func (h *Host) luaNavigate(L *lua.LState) int {
	level := L.CheckString(1)
	seconds := float64(L.OptNumber(2, 1))
	if nav := h.interactor(L).Navigator; nav != nil {
		nav.Navigate(level, seconds)
	}
	return 0
}

func (h *Host) luaPlaySound(L *lua.LState) int {
	path := L.CheckString(1)
	if a := h.interactor(L).Audio; a != nil {
		a.PlaySound(path)
	}
	return 0
}

// SetEnabled(flag) toggles the interacting object's capability.
func (h *Host) luaSetEnabled(L *lua.LState) int {
	h.interactor(L)
	if it := h.call.Object.Interactable(); it != nil {
		it.SetEnabled(L.ToBool(1))
	}
	return 0
}

// Rotate(deg) adds deg to the interacting object's rotation and returns the
// new angle.
func (h *Host) luaRotate(L *lua.LState) int {
	delta := float64(L.CheckNumber(1))
	h.interactor(L)
	it := h.call.Object.Interactable()
	if it == nil {
		L.Push(lua.LNumber(0))
		return 1
	}
	it.SetRotationAngle(it.CurrentRotationAngle() + delta)
	L.Push(lua.LNumber(it.CurrentRotationAngle()))
	return 1
}
