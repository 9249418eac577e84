package orrery

// AudioPlayer plays sound cues by path.
type AudioPlayer interface {
	PlaySound(path string)
	// PlayVoice starts a dialogue voice line, replacing any current one.
	PlayVoice(path string)
	StopVoice()
}

// Navigator performs scene transitions requested by Navigate interactions.
type Navigator interface {
	Navigate(level string, transition float64)
}

// Interactor is the party performing an interaction. Collaborators are passed
// explicitly rather than looked up by type; any may be nil, in which case the
// behaviors that need it are reported and skipped.
type Interactor struct {
	Name      string
	Inventory Inventory
	Dialogue  *DialoguePlayer
	UI        Presenter
	Audio     AudioPlayer
	Navigator Navigator
}

// NavigatorFunc adapts a function to the Navigator interface.
type NavigatorFunc func(level string, transition float64)

// Navigate calls f(level, transition).
func (f NavigatorFunc) Navigate(level string, transition float64) { f(level, transition) }
