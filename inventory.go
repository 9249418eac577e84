package orrery

import "fmt"

// ItemKind classifies inventory items.
type ItemKind uint8

const (
	ItemKey ItemKind = iota
	ItemTool
	ItemConsumable
	ItemCollectible
	ItemDocument
)

// Item describes an inventory item. Items are compared by ID.
type Item struct {
	ID          string   `json:"id"`
	Name        string   `json:"name"`
	Description string   `json:"description,omitempty"`
	Kind        ItemKind `json:"kind"`
	Stackable   bool     `json:"stackable"`
	MaxStack    int      `json:"maxStack,omitempty"`
	PickupSound string   `json:"pickupSound,omitempty"`
}

// Valid reports whether the item has an identity.
func (it Item) Valid() bool { return it.ID != "" }

// Inventory is the collaborator Pickup, UseItem and puzzle rewards call into.
type Inventory interface {
	Add(item Item, qty int) bool
	Has(itemID string, qty int) bool
	Remove(itemID string, qty int) bool
}

// Slot is one occupied inventory position.
type Slot struct {
	Item     Item
	Quantity int
}

// Bag is a slot-based Inventory with capacity and auto-stacking.
type Bag struct {
	Capacity  int
	AutoStack bool

	slots []Slot

	onAdded   callbackList[Slot]
	onRemoved callbackList[Slot]
	onFull    callbackList[Item]
	onChanged callbackList[[]Slot]
}

// NewBag creates an auto-stacking bag holding up to capacity slots.
// capacity <= 0 means unlimited.
func NewBag(capacity int) *Bag {
	return &Bag{Capacity: capacity, AutoStack: true}
}

// Add stores qty of item. It fails when the bag is full, when a
// non-stackable item is already held, or on invalid input. Stacks are capped
// at the item's MaxStack.
func (b *Bag) Add(item Item, qty int) bool {
	log := logFor("inventory")
	if !item.Valid() || qty <= 0 {
		log.Warn("add rejected: invalid item or quantity", "item", item.ID, "qty", qty)
		return false
	}
	i := b.find(item.ID)
	if i < 0 && b.Full() {
		log.Warn("inventory full", "item", item.ID)
		b.onFull.emit(item)
		return false
	}
	if i >= 0 {
		if !b.AutoStack || !item.Stackable {
			log.Warn("item is not stackable", "item", item.ID)
			return false
		}
		b.slots[i].Quantity = capStack(item, b.slots[i].Quantity+qty)
	} else {
		q := qty
		if item.Stackable {
			q = capStack(item, q)
		}
		b.slots = append(b.slots, Slot{Item: item, Quantity: q})
	}
	log.Info("item added", "item", item.ID, "qty", qty)
	b.onAdded.emit(Slot{Item: item, Quantity: qty})
	b.onChanged.emit(b.slots)
	return true
}

func capStack(item Item, q int) int {
	if item.MaxStack > 0 && q > item.MaxStack {
		return item.MaxStack
	}
	return q
}

// Has reports whether at least qty of the item is held.
func (b *Bag) Has(itemID string, qty int) bool {
	if qty <= 0 {
		return false
	}
	return b.Quantity(itemID) >= qty
}

// Remove takes qty of the item, dropping the slot when it empties.
func (b *Bag) Remove(itemID string, qty int) bool {
	log := logFor("inventory")
	if qty <= 0 {
		log.Warn("remove rejected: invalid quantity", "item", itemID, "qty", qty)
		return false
	}
	i := b.find(itemID)
	if i < 0 {
		log.Warn("remove rejected: item not found", "item", itemID)
		return false
	}
	if b.slots[i].Quantity < qty {
		log.Warn("remove rejected: not enough", "item", itemID, "has", b.slots[i].Quantity, "need", qty)
		return false
	}
	item := b.slots[i].Item
	b.slots[i].Quantity -= qty
	if b.slots[i].Quantity == 0 {
		b.slots = append(b.slots[:i], b.slots[i+1:]...)
	}
	log.Info("item removed", "item", itemID, "qty", qty)
	b.onRemoved.emit(Slot{Item: item, Quantity: qty})
	b.onChanged.emit(b.slots)
	return true
}

// Quantity returns how many of the item are held.
func (b *Bag) Quantity(itemID string) int {
	if i := b.find(itemID); i >= 0 {
		return b.slots[i].Quantity
	}
	return 0
}

// Items returns the occupied slots. The returned slice MUST NOT be mutated.
func (b *Bag) Items() []Slot { return b.slots }

// Len returns the number of occupied slots.
func (b *Bag) Len() int { return len(b.slots) }

// Full reports whether every slot is occupied.
func (b *Bag) Full() bool {
	return b.Capacity > 0 && len(b.slots) >= b.Capacity
}

// Clear empties the bag.
func (b *Bag) Clear() {
	b.slots = nil
	b.onChanged.emit(b.slots)
}

// Swap exchanges two slots. Out-of-range indices are rejected and leave the
// bag unchanged.
func (b *Bag) Swap(i, j int) error {
	if i < 0 || j < 0 || i >= len(b.slots) || j >= len(b.slots) {
		logFor("inventory").Warn("swap rejected", "a", i, "b", j, "len", len(b.slots))
		return fmt.Errorf("swap %d, %d: %w", i, j, ErrInvalidIndex)
	}
	b.slots[i], b.slots[j] = b.slots[j], b.slots[i]
	b.onChanged.emit(b.slots)
	return nil
}

// OnItemAdded registers a callback fired with the item and added quantity.
func (b *Bag) OnItemAdded(fn func(Slot)) CallbackHandle { return b.onAdded.add(fn) }

// OnItemRemoved registers a callback fired with the item and removed quantity.
func (b *Bag) OnItemRemoved(fn func(Slot)) CallbackHandle { return b.onRemoved.add(fn) }

// OnFull registers a callback fired when an add is rejected for capacity.
func (b *Bag) OnFull(fn func(Item)) CallbackHandle { return b.onFull.add(fn) }

// OnChanged registers a callback fired with the slot list after any change.
func (b *Bag) OnChanged(fn func([]Slot)) CallbackHandle { return b.onChanged.add(fn) }

func (b *Bag) find(id string) int {
	for i := range b.slots {
		if b.slots[i].Item.ID == id {
			return i
		}
	}
	return -1
}

// RewardGranter hands puzzle rewards to an inventory.
type RewardGranter interface {
	Grant(item Item, qty int) bool
}

// InventoryReward grants rewards by adding them to Inventory.
type InventoryReward struct {
	Inventory Inventory
}

// Grant adds the reward. A nil inventory is reported and ignored.
func (r InventoryReward) Grant(item Item, qty int) bool {
	if r.Inventory == nil {
		logFor("puzzle").Warn("reward without inventory", "item", item.ID)
		return false
	}
	return r.Inventory.Add(item, qty)
}
