package orrery

// Updater is anything advanced once per tick by a Controller.
type Updater interface {
	Update(dt float64)
}

// Controller owns one of each interaction component and wires their
// collaborators together. Front ends call Update once per tick and read
// UIState to draw.
type Controller struct {
	cfg Config

	World      *World
	Camera     *Camera
	Source     PointerSource
	Focus      *FocusResolver
	Gestures   *GestureClassifier
	Dialogue   *DialoguePlayer
	Timers     *Timers
	UI         *UIState
	Inventory  *Bag
	Interactor *Interactor

	puzzles []*Puzzle
	extra   []Updater
}

// NewController validates cfg and builds a controller probing world through
// camera. source and dialogue may be nil; the focus resolver and gesture
// classifier stay inert until a source is set.
func NewController(cfg Config, world *World, camera *Camera, source PointerSource, dialogue DialogueSource) (*Controller, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	if world == nil {
		world = NewWorld()
	}
	world.SetDebugMode(cfg.Debug)

	timers := NewTimers()
	ui := NewUIState(timers)
	bag := NewBag(0)

	player := NewDialoguePlayer(dialogue, cfg.DialogueConfig())
	player.SetTimers(timers)
	player.SetPresenter(ui)

	c := &Controller{
		cfg:       cfg,
		World:     world,
		Camera:    camera,
		Source:    source,
		Dialogue:  player,
		Timers:    timers,
		UI:        ui,
		Inventory: bag,
		Interactor: &Interactor{
			Name:      "player",
			Inventory: bag,
			Dialogue:  player,
			UI:        ui,
			Navigator: ui,
		},
	}
	c.Focus = NewFocusResolver(world, camera, source, cfg.FocusConfig())
	c.Focus.SetPresenter(ui)
	c.Gestures = NewGestureClassifier(world, camera, source, cfg.GestureConfig())
	c.Gestures.SetInteractor(c.Interactor)

	logFor("controller").Info("controller initialized",
		"trace", cfg.TraceMode.String(), "gestures", cfg.EnableGestures, "language", cfg.Language)
	return c, nil
}

// Config returns the validated configuration.
func (c *Controller) Config() Config { return c.cfg }

// SetSource replaces the pointer source for both probe consumers.
func (c *Controller) SetSource(s PointerSource) {
	c.Source = s
	c.Focus.SetSource(s)
	c.Gestures.SetSource(s)
}

// SetCamera replaces the camera for both probe consumers.
func (c *Controller) SetCamera(cam *Camera) {
	c.Camera = cam
	c.Focus.SetCamera(cam)
	c.Gestures.SetCamera(cam)
}

// SetAudio sets the audio collaborator for interactions and dialogue voice.
func (c *Controller) SetAudio(a AudioPlayer) {
	c.Interactor.Audio = a
	c.Dialogue.SetAudio(a)
}

// SetEventStore forwards focus and gesture events to store. May be nil.
func (c *Controller) SetEventStore(store EventStore) {
	c.Focus.SetEventStore(store)
	c.Gestures.SetEventStore(store)
}

// NewPuzzle creates a puzzle timed by the world clock that grants rewards
// into the controller's inventory, and adds it to the tick.
func (c *Controller) NewPuzzle(cfg PuzzleConfig, opts ...PuzzleOption) *Puzzle {
	p := NewPuzzle(cfg, c.puzzleOptions(opts)...)
	c.AddPuzzle(p)
	return p
}

// NewRotationPuzzle is NewPuzzle for the rotation variant.
func (c *Controller) NewRotationPuzzle(pcfg PuzzleConfig, rcfg RotationPuzzleConfig, opts ...PuzzleOption) *RotationPuzzle {
	rp := NewRotationPuzzle(pcfg, rcfg, c.puzzleOptions(opts)...)
	c.AddPuzzle(rp.Puzzle)
	return rp
}

func (c *Controller) puzzleOptions(opts []PuzzleOption) []PuzzleOption {
	base := []PuzzleOption{
		WithClock(c.World),
		WithRewards(InventoryReward{Inventory: c.Inventory}),
		WithPresenter(c.UI),
	}
	return append(base, opts...)
}

// AddPuzzle adds p to the tick. Adding twice is a no-op.
func (c *Controller) AddPuzzle(p *Puzzle) {
	for _, q := range c.puzzles {
		if q == p {
			return
		}
	}
	c.puzzles = append(c.puzzles, p)
}

// Puzzles returns the ticked puzzles. The returned slice MUST NOT be mutated.
func (c *Controller) Puzzles() []*Puzzle { return c.puzzles }

// AddUpdater appends u to the end of the tick.
func (c *Controller) AddUpdater(u Updater) {
	c.extra = append(c.extra, u)
}

// Interact executes the focused object's interaction.
func (c *Controller) Interact() bool {
	return c.Focus.Interact(c.Interactor)
}

// UseItem offers an inventory item to the focused object.
func (c *Controller) UseItem(itemID string) bool {
	for _, s := range c.Inventory.Items() {
		if s.Item.ID == itemID {
			return c.Focus.UseItemOnFocus(s.Item, c.Interactor)
		}
	}
	logFor("controller").Warn("item not in inventory", "item", itemID)
	return false
}

// Update advances one tick. The source is sampled and due timers fire first,
// then world, camera, focus, gestures, dialogue, puzzles and UI run in that
// order.
func (c *Controller) Update(dt float64) {
	if fa, ok := c.Source.(FrameAdvancer); ok {
		fa.Advance()
	}
	c.Timers.Update(dt)
	c.World.Update(dt)
	if c.Camera != nil {
		c.Camera.Update(dt)
	}
	c.Focus.Update()
	c.Gestures.Update(dt)
	c.Dialogue.Update(dt)
	for _, p := range c.puzzles {
		p.Update(dt)
	}
	c.UI.Update(dt)
	for _, u := range c.extra {
		u.Update(dt)
	}
}
