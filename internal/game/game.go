// Package game implements the main game loop: the ebiten shell that owns
// the camera, the state manager and input dispatch.
package game

import (
	"fmt"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/ebitenutil"
	"github.com/hajimehoshi/ebiten/v2/inpututil"
	"go.uber.org/zap"

	"github.com/ToRaNek/TowerDefense/internal/config"
	"github.com/ToRaNek/TowerDefense/internal/engine/camera"
	"github.com/ToRaNek/TowerDefense/internal/game/states"
	"github.com/ToRaNek/TowerDefense/internal/logger"
)

// maxDt caps the per-tick delta so a stalled process does not produce one
// giant simulation step.
const maxDt = 1.0 / 30.0

// Game is the main game instance. It implements ebiten.Game and the
// context the screens draw their services from.
type Game struct {
	log *zap.Logger

	cfg     *config.Config
	cam     *camera.Camera
	manager *states.Manager

	quit bool
}

// New creates a game instance: camera, state machine and the four screens
// wired into the transition table.
func New(cfg *config.Config) *Game {
	g := &Game{
		log: logger.Named("Game"),
		cfg: cfg,
	}

	g.cam = camera.New(
		float64(cfg.Graphics.Width),
		float64(cfg.Graphics.Height),
		camera.Config{
			MinZoom:          cfg.Camera.MinZoom,
			MaxZoom:          cfg.Camera.MaxZoom,
			TransitionSpeed:  cfg.Camera.TransitionSpeed,
			ZoomSpeed:        cfg.Camera.ZoomSpeed,
			RotationSpeed:    cfg.Camera.RotationSpeed,
			EdgeScroll:       cfg.Camera.EdgeScroll,
			EdgeScrollMargin: cfg.Camera.EdgeScrollMargin,
			EdgeScrollSpeed:  cfg.Camera.EdgeScrollSpeed,
			GridWidth:        cfg.Grid.Width,
			GridHeight:       cfg.Grid.Height,
			TileSize:         cfg.Grid.TileSize,
		},
	)

	m := states.NewManager()
	m.Register(states.StateMainMenu, states.NewMainMenuState(m, g))
	m.Register(states.StateGameplay, states.NewGameplayState(m, g))
	m.Register(states.StatePause, states.NewPauseState(m, g))
	m.Register(states.StateGameOver, states.NewGameOverState(m, g))

	for _, t := range []states.Transition{
		{From: states.StateMainMenu, To: states.StateGameplay},
		{From: states.StateGameplay, To: states.StatePause},
		{From: states.StatePause, To: states.StateGameplay},
		{From: states.StateGameplay, To: states.StateGameOver},
		{From: states.StateGameOver, To: states.StateMainMenu},
		{From: states.StatePause, To: states.StateMainMenu},
	} {
		m.RegisterTransition(t)
	}

	for _, issue := range m.Validate() {
		g.log.Warn("state machine issue", zap.String("issue", issue))
	}

	m.RequestChange(states.StateMainMenu, nil)
	g.manager = m

	g.log.Info("game initialized",
		zap.Int("width", cfg.Graphics.Width),
		zap.Int("height", cfg.Graphics.Height),
	)
	return g
}

// Camera returns the shared 2D camera.
func (g *Game) Camera() *camera.Camera {
	return g.cam
}

// Config returns the loaded configuration.
func (g *Game) Config() *config.Config {
	return g.cfg
}

// Quit asks the shell to stop after the current tick.
func (g *Game) Quit() {
	g.quit = true
}

// Update runs one simulation tick.
func (g *Game) Update() error {
	if g.quit {
		return ebiten.Termination
	}

	dt := 1.0 / float64(ebiten.TPS())
	if dt <= 0 || dt > maxDt {
		dt = maxDt
	}

	g.dispatchInput()
	g.manager.Update(dt)
	g.cam.Update(dt)
	return nil
}

// dispatchInput converts raw device input into the event stream the
// active screen consumes.
func (g *Game) dispatchInput() {
	if inpututil.IsKeyJustPressed(ebiten.KeyEscape) {
		g.manager.HandleEvent(states.EventKeyDown, states.Data{"key": "escape"})
	}

	mx, my := ebiten.CursorPosition()
	x, y := float64(mx), float64(my)
	wx, wy := g.cam.ScreenToWorld(x, y)
	g.manager.HandleEvent(states.EventMouseMove, states.Data{
		"x": x, "y": y, "world_x": wx, "world_y": wy,
	})

	if inpututil.IsMouseButtonJustPressed(ebiten.MouseButtonLeft) {
		g.manager.HandleEvent(states.EventMouseDown, states.Data{
			"x": x, "y": y, "world_x": wx, "world_y": wy, "button": "left",
		})
	}

	if _, dy := ebiten.Wheel(); dy != 0 {
		g.manager.HandleEvent(states.EventMouseWheel, states.Data{
			"x": x, "y": y, "dy": dy,
		})
	}
}

// Draw renders the active screen.
func (g *Game) Draw(screen *ebiten.Image) {
	g.manager.Render(screen)

	if g.cfg.Graphics.ShowFPS {
		ebitenutil.DebugPrint(screen,
			fmt.Sprintf("FPS: %.1f TPS: %.1f", ebiten.ActualFPS(), ebiten.ActualTPS()))
	}
}

// Layout reports the fixed logical screen size.
func (g *Game) Layout(outsideWidth, outsideHeight int) (int, int) {
	return g.cfg.Graphics.Width, g.cfg.Graphics.Height
}

// Close tears down the state machine.
func (g *Game) Close() {
	g.log.Info("closing game")
	g.manager.Cleanup()
}
