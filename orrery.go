package orrery

import "math"

// Vec2 is a 2D vector used for screen positions, gesture vectors and offsets.
// Screen coordinates have their origin at the top-left with Y increasing downward.
type Vec2 struct {
	X, Y float64
}

// Add returns v + o.
func (v Vec2) Add(o Vec2) Vec2 { return Vec2{v.X + o.X, v.Y + o.Y} }

// Sub returns v - o.
func (v Vec2) Sub(o Vec2) Vec2 { return Vec2{v.X - o.X, v.Y - o.Y} }

// Len returns the length of v.
func (v Vec2) Len() float64 { return math.Hypot(v.X, v.Y) }

// Rect is an axis-aligned rectangle. The coordinate system has its origin at
// the top-left, with Y increasing downward.
type Rect struct {
	X, Y, Width, Height float64
}

// Contains reports whether the point (x, y) lies inside the rectangle.
// Points on the edge are considered inside.
func (r Rect) Contains(x, y float64) bool {
	return x >= r.X && x <= r.X+r.Width &&
		y >= r.Y && y <= r.Y+r.Height
}

// Center returns the centre point of the rectangle.
func (r Rect) Center() Vec2 {
	return Vec2{r.X + r.Width/2, r.Y + r.Height/2}
}

// Color represents an RGBA color with components in [0, 1].
type Color struct {
	R, G, B, A float64
}

// ColorYellow is the default highlight color.
var ColorYellow = Color{1, 1, 0, 1}

// LayerMask selects which collision layers a probe considers. An object is
// hit only when its Layer shares at least one bit with the mask.
type LayerMask uint32

const (
	LayerDefault     LayerMask = 1 << iota // general world geometry
	LayerInteraction                       // objects meant to be probed for interaction
	LayerUI                                // world-space UI panels

	LayerAll LayerMask = math.MaxUint32
)

// InteractionMode selects which gesture triggers an object's behavior.
type InteractionMode uint8

const (
	ModeTap       InteractionMode = iota // single tap / click
	ModeSwipe                            // swipe in a configured direction
	ModeRotate                           // touch and drag horizontally to rotate
	ModeLongPress                        // hold for a configured duration
)

var modeNames = [...]string{"tap", "swipe", "rotate", "long_press"}

func (m InteractionMode) String() string {
	if int(m) < len(modeNames) {
		return modeNames[m]
	}
	return "unknown"
}

// InteractionType selects what executes when an object is triggered.
type InteractionType uint8

const (
	TypeObserve       InteractionType = iota // show text or play dialogue
	TypePickup                               // add an item to the inventory
	TypeNavigate                             // request a scene transition
	TypeUseItem                              // require and consume an item
	TypeTriggerPuzzle                        // activate a linked puzzle
	TypeRotateObject                         // continuous rotation, no effect on execute
	TypeSwipeTrigger                         // show text after a valid swipe
	TypeCustom                               // emit a custom interact notification
)

var typeNames = [...]string{
	"observe", "pickup", "navigate", "use_item",
	"trigger_puzzle", "rotate_object", "swipe_trigger", "custom",
}

func (t InteractionType) String() string {
	if int(t) < len(typeNames) {
		return typeNames[t]
	}
	return "unknown"
}

// SwipeDirection is the direction a swipe must travel to be accepted.
type SwipeDirection uint8

const (
	SwipeAny SwipeDirection = iota
	SwipeUp
	SwipeDown
	SwipeLeft
	SwipeRight
)

// Angle returns the direction's angle in degrees measured counter-clockwise
// from the positive X axis in a Y-up frame. SwipeAny returns -1.
func (d SwipeDirection) Angle() float64 {
	switch d {
	case SwipeRight:
		return 0
	case SwipeUp:
		return 90
	case SwipeLeft:
		return 180
	case SwipeDown:
		return 270
	default:
		return -1
	}
}

// TraceMode selects where the focus probe originates on screen.
type TraceMode uint8

const (
	TraceScreenCenter TraceMode = iota // fixed point at the viewport centre
	TracePointer                       // current mouse cursor position
	TraceTouch                         // active touch; viewport centre when not touching
)

// EventType identifies a kind of interaction event forwarded to an EventStore.
type EventType uint8

const (
	EventFocusChanged   EventType = iota // focus moved to a different object (or none)
	EventTouchBegan                      // a touch started and captured a target
	EventTap                             // a valid tap executed its interaction
	EventSwipe                           // a swipe was recognized (valid or not)
	EventRotateBegin                     // a rotate gesture crossed the movement threshold
	EventRotate                          // a rotate gesture moved the target
	EventRotateEnd                       // the touch ended while rotating
	EventLongPress                       // a long press completed
	EventTouchEnded                      // a touch ended, captured state was reset
	EventInteracted                      // an object's interaction executed
)
