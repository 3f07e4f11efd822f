package states

import (
	"fmt"
	"math"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/vector"
	"go.uber.org/zap"

	"github.com/ToRaNek/TowerDefense/internal/engine/camera"
	"github.com/ToRaNek/TowerDefense/internal/game/ui"
	gmath "github.com/ToRaNek/TowerDefense/pkg/math"
)

const (
	towerCost = 50
	waveBonus = 25
	finalWave = 10
)

// GameplayState runs the tower defense match: build phase, waves, camera
// control and the in-world HUD.
type GameplayState struct {
	BaseState

	manager *Manager
	ctx     Context

	money int
	lives int
	wave  int

	preparing  bool
	phaseTimer float64 // Counts down the current phase
	breachGap  float64 // Seconds between breach attempts this wave
	breachIn   float64

	towers map[[2]int]bool

	cursorX float64
	cursorY float64

	world *ebiten.Image
}

// NewGameplayState creates the match screen.
func NewGameplayState(m *Manager, ctx Context) *GameplayState {
	return &GameplayState{
		BaseState: NewBaseState("Gameplay"),
		manager:   m,
		ctx:       ctx,
	}
}

// Enter starts a fresh match, unless the transition payload carries
// resume=true (coming back from the pause screen).
func (s *GameplayState) Enter(prev State, data Data) {
	s.BaseState.Enter(prev, data)

	if resume, _ := data["resume"].(bool); resume {
		return
	}

	cfg := s.ctx.Config()
	s.money = cfg.Gameplay.StartingMoney
	s.lives = cfg.Gameplay.StartingLives
	s.wave = 0
	s.preparing = true
	s.phaseTimer = cfg.Gameplay.PreparationTime
	s.towers = make(map[[2]int]bool)

	cam := s.ctx.Camera()
	cam.Reset()
	cam.SetBounds(s.gridBounds(), true)
	cam.FitToGrid(1.1)
}

// Update advances the wave cycle and the camera edge scroll.
func (s *GameplayState) Update(dt float64) {
	s.ctx.Camera().HandleEdgeScroll(s.cursorX, s.cursorY, dt)

	s.phaseTimer -= dt
	if s.preparing {
		if s.phaseTimer <= 0 {
			s.startWave()
		}
		return
	}

	// Wave in progress: enemies the towers cannot hold back breach the
	// base at a fixed cadence.
	s.breachIn -= dt
	if s.breachIn <= 0 {
		s.breachIn = s.breachGap
		if len(s.towers) < s.wave*2 {
			s.onBaseBreach()
		}
	}

	if s.lives <= 0 {
		s.manager.SetShared("last_wave", s.wave)
		s.manager.RequestChange(StateGameOver, Data{"wave": s.wave, "victory": false})
		return
	}

	if s.phaseTimer <= 0 {
		s.endWave()
	}
}

func (s *GameplayState) startWave() {
	cfg := s.ctx.Config()
	s.wave++
	s.preparing = false
	s.phaseTimer = 15.0
	s.breachGap = 3.0 / math.Pow(cfg.Gameplay.WaveScaling, float64(s.wave-1))
	s.breachIn = s.breachGap

	// Snap attention to the base at the start of each wave.
	s.ctx.Camera().SmoothTransitionTo(s.basePosition(), 0, 0.6)

	s.BaseState.log.Info("wave started",
		zap.Int("wave", s.wave),
		zap.Float64("breach_gap", s.breachGap),
	)
}

func (s *GameplayState) endWave() {
	s.money += waveBonus * s.wave
	s.BaseState.log.Info("wave cleared", zap.Int("wave", s.wave), zap.Int("money", s.money))

	if s.wave >= finalWave {
		s.manager.SetShared("last_wave", s.wave)
		s.manager.RequestChange(StateGameOver, Data{"wave": s.wave, "victory": true})
		return
	}

	s.preparing = true
	s.phaseTimer = s.ctx.Config().Gameplay.PreparationTime
	s.ctx.Camera().FitToGrid(1.1)
}

func (s *GameplayState) onBaseBreach() {
	s.lives--
	s.ctx.Camera().Shake(8, 0.4, 40)
	s.BaseState.log.Warn("base breached", zap.Int("lives", s.lives))
}

// HandleEvent processes keyboard, mouse and wheel input.
func (s *GameplayState) HandleEvent(event string, data Data) {
	switch event {
	case EventKeyDown:
		if key, _ := data["key"].(string); key == "escape" {
			s.manager.RequestChange(StatePause, nil)
		}
	case EventMouseMove:
		s.cursorX, _ = data["x"].(float64)
		s.cursorY, _ = data["y"].(float64)
	case EventMouseDown:
		x, _ := data["x"].(float64)
		y, _ := data["y"].(float64)
		s.placeTower(x, y)
	case EventMouseWheel:
		dy, _ := data["dy"].(float64)
		cam := s.ctx.Camera()
		if dy > 0 {
			cam.ZoomIn(1.1)
		} else if dy < 0 {
			cam.ZoomOut(1.1)
		}
	}
}

// placeTower converts a screen click to a grid tile and builds there when
// the tile is free and the money suffices.
func (s *GameplayState) placeTower(sx, sy float64) {
	cfg := s.ctx.Config()
	wx, wy := s.ctx.Camera().ScreenToWorld(sx, sy)

	col := int(math.Floor(wx / cfg.Grid.TileSize))
	row := int(math.Floor(wy / cfg.Grid.TileSize))
	if col < 0 || col >= cfg.Grid.Width || row < 0 || row >= cfg.Grid.Height {
		return
	}

	tile := [2]int{col, row}
	if s.towers[tile] || s.money < towerCost {
		return
	}

	s.towers[tile] = true
	s.money -= towerCost
	s.BaseState.log.Info("tower placed",
		zap.Int("col", col),
		zap.Int("row", row),
		zap.Int("money", s.money),
	)
}

// Render draws the playfield through the camera, then the HUD on top in
// screen space.
func (s *GameplayState) Render(screen *ebiten.Image) {
	screen.Fill(ui.ColorIron)

	s.drawWorld()
	op := &ebiten.DrawImageOptions{GeoM: s.ctx.Camera().ViewMatrix()}
	screen.DrawImage(s.world, op)

	s.drawHUD(screen)
}

func (s *GameplayState) drawWorld() {
	cfg := s.ctx.Config()
	tile := cfg.Grid.TileSize
	w := float64(cfg.Grid.Width) * tile
	h := float64(cfg.Grid.Height) * tile

	if s.world == nil {
		s.world = ebiten.NewImage(int(w), int(h))
	}
	s.world.Fill(ui.ColorDarkSteel)

	for col := 0; col <= cfg.Grid.Width; col++ {
		x := float32(float64(col) * tile)
		vector.StrokeLine(s.world, x, 0, x, float32(h), 1, ui.ColorBronzeDark, false)
	}
	for row := 0; row <= cfg.Grid.Height; row++ {
		y := float32(float64(row) * tile)
		vector.StrokeLine(s.world, 0, y, float32(w), y, 1, ui.ColorBronzeDark, false)
	}

	for t := range s.towers {
		x := float32(float64(t[0])*tile) + 4
		y := float32(float64(t[1])*tile) + 4
		vector.DrawFilledRect(s.world, x, y, float32(tile)-8, float32(tile)-8, ui.ColorBrass, false)
	}

	base := s.basePosition()
	vector.DrawFilledCircle(s.world,
		float32(base.X), float32(base.Y), float32(tile)*0.6, ui.ColorVerdigris, false)
}

func (s *GameplayState) drawHUD(screen *ebiten.Image) {
	phase := "wave"
	if s.preparing {
		phase = "next wave in"
	}
	lines := []string{
		fmt.Sprintf("Money: %d", s.money),
		fmt.Sprintf("Lives: %d", s.lives),
		fmt.Sprintf("Wave: %d/%d", s.wave, finalWave),
		fmt.Sprintf("%s %.1fs", phase, math.Max(s.phaseTimer, 0)),
	}
	for i, line := range lines {
		l := ui.NewLabel(12, float64(24+i*18), line, ui.ColorSteamWhite)
		l.Draw(screen)
	}
}

// basePosition is the defended point at the right edge of the grid, half
// a row up from center.
func (s *GameplayState) basePosition() gmath.Vec2 {
	cfg := s.ctx.Config()
	return gmath.Vec2{
		X: (float64(cfg.Grid.Width) - 0.5) * cfg.Grid.TileSize,
		Y: float64(cfg.Grid.Height) / 2 * cfg.Grid.TileSize,
	}
}

func (s *GameplayState) gridBounds() camera.Bounds {
	cfg := s.ctx.Config()
	return camera.NewBounds(0, 0,
		float64(cfg.Grid.Width)*cfg.Grid.TileSize,
		float64(cfg.Grid.Height)*cfg.Grid.TileSize,
	)
}
