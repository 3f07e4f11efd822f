// Package states implements the game state machine: the state contract,
// the transition table and the manager that drives screen changes.
package states

import (
	"github.com/hajimehoshi/ebiten/v2"
	"go.uber.org/zap"

	"github.com/ToRaNek/TowerDefense/internal/config"
	"github.com/ToRaNek/TowerDefense/internal/engine/camera"
	"github.com/ToRaNek/TowerDefense/internal/logger"
)

// StateType identifies a registered game state. The empty string means
// "no state".
type StateType string

const (
	StateMainMenu    StateType = "main_menu"
	StateGameplay    StateType = "gameplay"
	StatePause       StateType = "pause"
	StateGameOver    StateType = "game_over"
	StateVictory     StateType = "victory"
	StateSettings    StateType = "settings"
	StateLevelSelect StateType = "level_select"
	StateLoading     StateType = "loading"
)

// Data carries transition payloads, shared cross-state values and event
// payloads as a generic string-keyed mapping.
type Data map[string]any

// Event types delivered to the active state through HandleEvent.
const (
	EventKeyDown    = "key_down"
	EventMouseDown  = "mouse_down"
	EventMouseMove  = "mouse_move"
	EventMouseWheel = "mouse_wheel"
)

// State is the contract every game screen implements.
type State interface {
	// Enter is called when this state becomes active. prev is the state
	// that was active before, if any; data is the transition payload.
	Enter(prev State, data Data)

	// Exit is called when leaving this state. next is the state being
	// entered, if any.
	Exit(next State)

	// Update is called every frame with the elapsed time in seconds.
	Update(dt float64)

	// Render draws the state.
	Render(screen *ebiten.Image)

	// HandleEvent processes an input event.
	HandleEvent(event string, data Data)

	// Active reports whether the state is between Enter and Exit.
	Active() bool
}

// Context exposes the services screens need from the game shell.
type Context interface {
	Camera() *camera.Camera
	Config() *config.Config
	Quit()
}

// BaseState carries the bookkeeping shared by all screens: the active
// flag and private scratch data. Screens embed it and implement Update
// and Render themselves.
type BaseState struct {
	name   string
	log    *zap.Logger
	active bool
	data   Data
}

// NewBaseState creates the embedded base for a named screen.
func NewBaseState(name string) BaseState {
	return BaseState{
		name: name,
		log:  logger.Named("GameState." + name),
		data: Data{},
	}
}

// Enter marks the state active. Overriding screens should call it first.
func (b *BaseState) Enter(prev State, data Data) {
	b.active = true
	b.log.Info("state entered")
}

// Exit marks the state inactive. Overriding screens should call it first.
func (b *BaseState) Exit(next State) {
	b.active = false
	b.log.Info("state exited")
}

// HandleEvent is a no-op; screens override it when they care.
func (b *BaseState) HandleEvent(event string, data Data) {}

// Active reports whether the state is between Enter and Exit.
func (b *BaseState) Active() bool {
	return b.active
}

// Name returns the screen name.
func (b *BaseState) Name() string {
	return b.name
}

// StateData reads a private scratch value.
func (b *BaseState) StateData(key string) (any, bool) {
	v, ok := b.data[key]
	return v, ok
}

// SetStateData stores a private scratch value.
func (b *BaseState) SetStateData(key string, value any) {
	b.data[key] = value
}
