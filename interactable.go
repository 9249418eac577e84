package orrery

import (
	"fmt"
	"log/slog"

	"github.com/go-gl/mathgl/mgl64"
)

// PuzzleTrigger is anything a TriggerPuzzle interaction can activate.
type PuzzleTrigger interface {
	Activate() error
}

// InteractableConfig is the per-object interaction configuration. Start from
// DefaultInteractableConfig; zero values are not all meaningful defaults.
type InteractableConfig struct {
	Mode   InteractionMode `json:"mode"`
	Type   InteractionType `json:"type"`
	Prompt string          `json:"prompt,omitempty"`

	// Swipe (ModeSwipe)
	SwipeDirection      SwipeDirection `json:"swipeDirection"`
	SwipeAngleTolerance float64        `json:"swipeAngleTolerance"` // degrees, [0, 90]
	MinSwipeDistance    float64        `json:"minSwipeDistance"`    // pixels, >= 10

	// Rotate (ModeRotate)
	RotationSensitivity float64    `json:"rotationSensitivity"` // degrees per pixel, [0.1, 10]
	RotationAxis        mgl64.Vec3 `json:"rotationAxis"`        // local space
	ClampRotation       bool       `json:"clampRotation"`
	MinRotationAngle    float64    `json:"minRotationAngle"`
	MaxRotationAngle    float64    `json:"maxRotationAngle"`
	// TargetRotationAngle fires OnTargetRotationReached once; -1 disables it.
	TargetRotationAngle float64 `json:"targetRotationAngle"`
	AngleTolerance      float64 `json:"angleTolerance"`

	// LongPress (ModeLongPress)
	LongPressDuration float64 `json:"longPressDuration"` // seconds, >= 0.1

	// Observe. A dialogue id wins over a trigger, which wins over plain text.
	ObserveText       string `json:"observeText,omitempty"`
	ObserveDialogueID string `json:"observeDialogueId,omitempty"`
	ObserveTrigger    string `json:"observeTrigger,omitempty"`

	// Pickup
	PickupItem         *Item  `json:"pickupItem,omitempty"`
	PickupQuantity     int    `json:"pickupQuantity"`
	DestroyAfterPickup bool   `json:"destroyAfterPickup"`
	PickupSound        string `json:"pickupSound,omitempty"`

	// Navigate
	TargetLevel        string  `json:"targetLevel,omitempty"`
	TransitionDuration float64 `json:"transitionDuration"`

	// UseItem
	RequiredItem   *Item  `json:"requiredItem,omitempty"`
	ConsumeItem    bool   `json:"consumeItem"`
	OnItemUsedText string `json:"onItemUsedText,omitempty"`

	// TriggerPuzzle
	TargetPuzzle PuzzleTrigger `json:"-"`

	// SwipeTrigger
	OnSwipeText string `json:"onSwipeText,omitempty"`

	// Highlight
	EnableHighlight    bool    `json:"enableHighlight"`
	HighlightColor     Color   `json:"highlightColor"`
	HighlightIntensity float64 `json:"highlightIntensity"` // [0, 10]
	HighlightFade      float64 `json:"highlightFade"`      // seconds
}

// DefaultInteractableConfig returns a tap-to-observe configuration with the
// documented defaults for every mode.
func DefaultInteractableConfig() InteractableConfig {
	return InteractableConfig{
		Mode:                ModeTap,
		Type:                TypeObserve,
		Prompt:              "Interact",
		SwipeDirection:      SwipeAny,
		SwipeAngleTolerance: 30,
		MinSwipeDistance:    50,
		RotationSensitivity: 1,
		RotationAxis:        mgl64.Vec3{0, 0, 1},
		MinRotationAngle:    0,
		MaxRotationAngle:    360,
		TargetRotationAngle: -1,
		AngleTolerance:      5,
		LongPressDuration:   1,
		PickupQuantity:      1,
		DestroyAfterPickup:  true,
		TransitionDuration:  1,
		ConsumeItem:         true,
		EnableHighlight:     true,
		HighlightColor:      ColorYellow,
		HighlightIntensity:  3,
		HighlightFade:       0.15,
	}
}

// Validate checks the documented ranges.
func (c InteractableConfig) Validate() error {
	switch {
	case c.Mode > ModeLongPress:
		return fmt.Errorf("%w: unknown interaction mode %d", ErrInvalidConfig, c.Mode)
	case c.Type > TypeCustom:
		return fmt.Errorf("%w: unknown interaction type %d", ErrInvalidConfig, c.Type)
	case c.SwipeDirection > SwipeRight:
		return fmt.Errorf("%w: unknown swipe direction %d", ErrInvalidConfig, c.SwipeDirection)
	case c.SwipeAngleTolerance < 0 || c.SwipeAngleTolerance > 90:
		return fmt.Errorf("%w: swipe angle tolerance %g outside [0, 90]", ErrInvalidConfig, c.SwipeAngleTolerance)
	case c.MinSwipeDistance < 10:
		return fmt.Errorf("%w: min swipe distance %g below 10", ErrInvalidConfig, c.MinSwipeDistance)
	case c.RotationSensitivity < 0.1 || c.RotationSensitivity > 10:
		return fmt.Errorf("%w: rotation sensitivity %g outside [0.1, 10]", ErrInvalidConfig, c.RotationSensitivity)
	case c.RotationAxis.Len() == 0:
		return fmt.Errorf("%w: rotation axis is zero", ErrInvalidConfig)
	case c.ClampRotation && c.MinRotationAngle > c.MaxRotationAngle:
		return fmt.Errorf("%w: min rotation %g exceeds max %g", ErrInvalidConfig, c.MinRotationAngle, c.MaxRotationAngle)
	case c.TargetRotationAngle >= 0 && c.AngleTolerance < 0.1:
		return fmt.Errorf("%w: angle tolerance %g below 0.1", ErrInvalidConfig, c.AngleTolerance)
	case c.LongPressDuration < 0.1:
		return fmt.Errorf("%w: long press duration %g below 0.1", ErrInvalidConfig, c.LongPressDuration)
	case c.HighlightIntensity < 0 || c.HighlightIntensity > 10:
		return fmt.Errorf("%w: highlight intensity %g outside [0, 10]", ErrInvalidConfig, c.HighlightIntensity)
	case c.PickupQuantity < 0:
		return fmt.Errorf("%w: negative pickup quantity", ErrInvalidConfig)
	}
	return nil
}

// CustomInteraction is delivered to OnCustomInteract subscribers.
type CustomInteraction struct {
	Object     *Object
	Interactor *Interactor
}

// Interactable is the interaction capability attached to an Object. It holds
// the configuration plus the rotation, long-press and highlight sub-states the
// gesture classifier and focus resolver drive.
type Interactable struct {
	cfg     InteractableConfig
	enabled bool
	focused bool
	owner   *Object

	rot   rotationState
	press longPressState
	glow  highlightState

	onCustom        callbackList[CustomInteraction]
	onRotation      callbackList[float64]
	onTargetReached callbackList[float64]
	onExecuted      callbackList[*Interactor]
	onFocusChanged  callbackList[bool]
}

// NewInteractable validates cfg and returns an enabled Interactable.
func NewInteractable(cfg InteractableConfig) (*Interactable, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	if cfg.PickupQuantity == 0 {
		cfg.PickupQuantity = 1
	}
	return &Interactable{cfg: cfg, enabled: true}, nil
}

// MustInteractable is like NewInteractable but panics on an invalid config.
func MustInteractable(cfg InteractableConfig) *Interactable {
	it, err := NewInteractable(cfg)
	if err != nil {
		panic(err)
	}
	return it
}

// attach binds the capability to o and snapshots its orientation as the
// rotation baseline.
func (it *Interactable) attach(o *Object) {
	it.owner = o
	it.rot.initial = o.Orientation
	if it.rot.initial == (mgl64.Quat{}) {
		it.rot.initial = mgl64.QuatIdent()
	}
}

// Owner returns the object this capability is attached to, or nil.
func (it *Interactable) Owner() *Object { return it.owner }

// Config returns a copy of the configuration.
func (it *Interactable) Config() InteractableConfig { return it.cfg }

// Mode returns the gesture that triggers this object.
func (it *Interactable) Mode() InteractionMode { return it.cfg.Mode }

// Type returns the behavior executed when this object is triggered.
func (it *Interactable) Type() InteractionType { return it.cfg.Type }

// Prompt returns the interaction prompt text.
func (it *Interactable) Prompt() string { return it.cfg.Prompt }

// Enabled reports the runtime interactable flag.
func (it *Interactable) Enabled() bool { return it.enabled }

// SetEnabled toggles the runtime interactable flag. Disabling cancels any
// in-progress long press and rotation.
func (it *Interactable) SetEnabled(enabled bool) {
	it.enabled = enabled
	if !enabled {
		it.CancelLongPress()
		it.rot.rotating = false
	}
}

// CanInteract reports whether execution and gesture handling are currently
// allowed.
func (it *Interactable) CanInteract() bool {
	return it.enabled && (it.owner == nil || !it.owner.disposed)
}

// Focused reports whether the object currently holds focus.
func (it *Interactable) Focused() bool { return it.focused }

// OnCustomInteract registers a callback for Custom-typed executions.
func (it *Interactable) OnCustomInteract(fn func(CustomInteraction)) CallbackHandle {
	return it.onCustom.add(fn)
}

// OnExecuted registers a callback fired after every executed interaction.
func (it *Interactable) OnExecuted(fn func(*Interactor)) CallbackHandle {
	return it.onExecuted.add(fn)
}

// OnFocusChanged registers a callback fired with true on begin focus and
// false on end focus.
func (it *Interactable) OnFocusChanged(fn func(bool)) CallbackHandle {
	return it.onFocusChanged.add(fn)
}

// Execute runs the configured interaction type. No-op when the flag is off;
// a nil interactor is reported and skipped.
func (it *Interactable) Execute(interactor *Interactor) {
	if !it.CanInteract() {
		return
	}
	if interactor == nil {
		logFor("interactable").Warn("execute without interactor",
			"object", it.owner.String(), "type", it.cfg.Type.String())
		return
	}
	log := logFor("interactable").With("object", it.owner.String(), "type", it.cfg.Type.String())

	switch it.cfg.Type {
	case TypeObserve:
		it.observe(interactor, log)
	case TypePickup:
		if !it.pickup(interactor, log) {
			return
		}
	case TypeNavigate:
		if it.cfg.TargetLevel == "" {
			log.Warn("navigate interaction without target level")
			return
		}
		if interactor.Navigator == nil {
			log.Warn("navigate interaction without navigator")
			return
		}
		log.Info("navigating", "level", it.cfg.TargetLevel)
		interactor.Navigator.Navigate(it.cfg.TargetLevel, it.cfg.TransitionDuration)
	case TypeUseItem:
		if !it.useItem(interactor, log) {
			return
		}
	case TypeTriggerPuzzle:
		if it.cfg.TargetPuzzle == nil {
			log.Warn("trigger puzzle interaction without target puzzle")
			return
		}
		if err := it.cfg.TargetPuzzle.Activate(); err != nil {
			log.Warn("puzzle activation rejected", "err", err)
			return
		}
	case TypeRotateObject:
		// Rotation is applied continuously by the gesture classifier.
	case TypeSwipeTrigger:
		if it.cfg.OnSwipeText != "" {
			showHint(interactor.UI, it.cfg.OnSwipeText)
		}
	case TypeCustom:
		it.onCustom.emit(CustomInteraction{Object: it.owner, Interactor: interactor})
	}
	log.Debug("interaction executed")
	it.onExecuted.emit(interactor)
}

func (it *Interactable) observe(interactor *Interactor, log *slog.Logger) {
	if d := interactor.Dialogue; d != nil {
		if it.cfg.ObserveDialogueID != "" {
			if err := d.PlayDialogue(it.cfg.ObserveDialogueID); err != nil {
				log.Warn("observe dialogue failed", "id", it.cfg.ObserveDialogueID, "err", err)
			}
			return
		}
		if it.cfg.ObserveTrigger != "" {
			if err := d.PlayDialogueByTrigger(it.cfg.ObserveTrigger); err != nil {
				log.Warn("observe trigger failed", "trigger", it.cfg.ObserveTrigger, "err", err)
			}
			return
		}
	}
	if it.cfg.ObserveText != "" {
		showHint(interactor.UI, it.cfg.ObserveText)
	}
}

func (it *Interactable) pickup(interactor *Interactor, log *slog.Logger) bool {
	if it.cfg.PickupItem == nil {
		log.Warn("pickup interaction without item")
		return false
	}
	if interactor.Inventory == nil {
		log.Warn("pickup interaction without inventory")
		return false
	}
	if !interactor.Inventory.Add(*it.cfg.PickupItem, it.cfg.PickupQuantity) {
		log.Info("pickup rejected by inventory", "item", it.cfg.PickupItem.ID)
		return false
	}
	if it.cfg.PickupSound != "" && interactor.Audio != nil {
		interactor.Audio.PlaySound(it.cfg.PickupSound)
	}
	if it.cfg.DestroyAfterPickup && it.owner != nil {
		it.owner.Dispose()
	}
	return true
}

func (it *Interactable) useItem(interactor *Interactor, log *slog.Logger) bool {
	if it.cfg.RequiredItem == nil {
		log.Warn("use item interaction without required item")
		return false
	}
	if interactor.Inventory == nil {
		log.Warn("use item interaction without inventory")
		return false
	}
	id := it.cfg.RequiredItem.ID
	if !interactor.Inventory.Has(id, 1) {
		log.Info("required item missing", "item", id)
		return false
	}
	if it.cfg.ConsumeItem && !interactor.Inventory.Remove(id, 1) {
		log.Warn("could not consume required item", "item", id)
		return false
	}
	if it.cfg.OnItemUsedText != "" {
		showHint(interactor.UI, it.cfg.OnItemUsedText)
	}
	it.SetEnabled(false)
	return true
}

// UseItem executes a UseItem interaction only when item matches the required
// item. Returns whether the item was accepted.
func (it *Interactable) UseItem(item Item, interactor *Interactor) bool {
	if it.cfg.Type != TypeUseItem || it.cfg.RequiredItem == nil || it.cfg.RequiredItem.ID != item.ID {
		return false
	}
	if !it.CanInteract() || interactor == nil {
		return false
	}
	log := logFor("interactable").With("object", it.owner.String(), "item", item.ID)
	if !it.useItem(interactor, log) {
		return false
	}
	it.onExecuted.emit(interactor)
	return true
}

// HandleSwipe validates a swipe vector (Y-up frame) against the required
// direction and minimum distance and executes the interaction when it
// passes.
func (it *Interactable) HandleSwipe(v Vec2, interactor *Interactor) bool {
	if !it.CanInteract() {
		return false
	}
	if !SwipeMatches(v, it.cfg.SwipeDirection, it.cfg.SwipeAngleTolerance, it.cfg.MinSwipeDistance) {
		return false
	}
	it.Execute(interactor)
	return true
}

// SwipeMatches reports whether v (Y-up frame) is at least minDistance long
// and, unless dir is SwipeAny, within tolerance degrees of dir.
func SwipeMatches(v Vec2, dir SwipeDirection, tolerance, minDistance float64) bool {
	if v.Len() < minDistance {
		return false
	}
	if dir == SwipeAny {
		return true
	}
	return AngleDifference(VectorAngle(v), dir.Angle()) <= tolerance
}

// update advances time-driven visual state.
func (it *Interactable) update(dt float64) {
	it.glow.update(it, dt)
}

func showHint(p Presenter, text string) {
	if p == nil {
		logFor("interactable").Info("hint", "text", text)
		return
	}
	p.ShowHint(text, DefaultHintDuration)
}
