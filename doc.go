// Package orrery is the interaction core of a point-and-click adventure:
// deciding what the player is looking at, turning touches into gestures,
// running per-object interactions, revealing dialogue over time and tracking
// puzzle progress.
//
// Orrery draws nothing. Front ends feed it pointer input and read back what
// should be shown; an [Ebitengine] source lives in orrery/ebitenio and
// donburi integration in orrery/ecs.
//
// # Quick start
//
// [Controller] owns one of each component and runs them in a fixed order
// once per tick:
//
//	world := orrery.NewWorld()
//	cam := orrery.NewCamera(orrery.Rect{Width: 640, Height: 480})
//	ctrl, err := orrery.NewController(orrery.DefaultConfig(), world, cam, source, table)
//	if err != nil {
//		return err
//	}
//	// each frame:
//	ctrl.Update(1.0 / 60)
//
// # Objects and interactables
//
// An [Object] is something a probe can strike. Attaching an [Interactable]
// makes it an interaction target; objects without one still block probes but
// are never focused.
//
//	cfg := orrery.DefaultInteractableConfig()
//	cfg.Type = orrery.TypeNavigate
//	cfg.TargetLevel = "hallway"
//
//	door := orrery.NewObject("door", orrery.BoxFromSize(1, 2, 0.2))
//	door.SetInteractable(orrery.MustInteractable(cfg))
//	world.Add(door)
//
// # Focus and gestures
//
// The [FocusResolver] probes once per tick from the screen centre, the
// cursor or the active touch and keeps at most one object focused. The
// [GestureClassifier] captures the object under a touch when it begins and
// classifies the touch as a tap, swipe, rotate or long press according to
// that object's [InteractionMode].
//
// Swipe vectors and angles use a Y-up frame: right is 0 degrees, up is 90.
//
// # Dialogue and puzzles
//
// [DialoguePlayer] reveals text at a fixed rate, waits out each entry's
// duration and then offers choices, chains to the next entry or completes.
// [Puzzle] is the Inactive, Active, Solving, Completed and Failed lifecycle;
// [RotationPuzzle] completes once an angle is held near its target.
//
// # Testing
//
// [Injector] is a [PointerSource] fed from a queue of synthetic events and
// [LoadTestScript] drives it from JSON, so whole interactions run headless.
//
// [Ebitengine]: https://ebitengine.org
package orrery
