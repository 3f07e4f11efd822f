package states

import (
	"fmt"

	"github.com/hajimehoshi/ebiten/v2"

	"github.com/ToRaNek/TowerDefense/internal/game/ui"
)

// GameOverState shows the end-of-match screen, for both defeat and a
// cleared final wave.
type GameOverState struct {
	BaseState

	manager *Manager
	ctx     Context

	victory bool
	wave    int

	buttons []*ui.Button
}

// NewGameOverState creates the end-of-match screen.
func NewGameOverState(m *Manager, ctx Context) *GameOverState {
	s := &GameOverState{
		BaseState: NewBaseState("GameOver"),
		manager:   m,
		ctx:       ctx,
	}

	w := float64(ctx.Config().Graphics.Width)
	h := float64(ctx.Config().Graphics.Height)
	bw, bh := 220.0, 48.0

	s.buttons = []*ui.Button{
		ui.NewButton(w/2-bw/2, h*0.6, bw, bh, "Main Menu", func() {
			s.manager.RequestChange(StateMainMenu, nil)
		}),
	}
	return s
}

// Enter reads the match outcome from the transition payload.
func (s *GameOverState) Enter(prev State, data Data) {
	s.BaseState.Enter(prev, data)
	s.victory, _ = data["victory"].(bool)
	s.wave, _ = data["wave"].(int)
}

// Update is a no-op; the screen only reacts to input.
func (s *GameOverState) Update(dt float64) {}

// HandleEvent routes mouse input to the buttons.
func (s *GameOverState) HandleEvent(event string, data Data) {
	x, _ := data["x"].(float64)
	y, _ := data["y"].(float64)

	switch event {
	case EventMouseMove:
		for _, b := range s.buttons {
			b.OnMouseMove(x, y)
		}
	case EventMouseDown:
		for _, b := range s.buttons {
			if b.OnMouseDown(x, y) {
				b.OnMouseUp(x, y)
				break
			}
		}
	}
}

// Render draws the outcome banner and the exit button.
func (s *GameOverState) Render(screen *ebiten.Image) {
	screen.Fill(ui.ColorDarkSteel)

	w := float64(s.ctx.Config().Graphics.Width)
	h := float64(s.ctx.Config().Graphics.Height)

	banner := "Defeat"
	clr := ui.ColorRust
	if s.victory {
		banner = "Victory!"
		clr = ui.ColorVerdigris
	}

	title := &ui.Label{
		X:     w / 2,
		Y:     h * 0.35,
		Text:  banner,
		Color: clr,
		Align: ui.AlignCenter,
		Scale: 4,
	}
	title.Draw(screen)

	sub := &ui.Label{
		X:     w / 2,
		Y:     h*0.35 + 36,
		Text:  fmt.Sprintf("You held out until wave %d", s.wave),
		Color: ui.ColorSteamWhite,
		Align: ui.AlignCenter,
	}
	sub.Draw(screen)

	for _, b := range s.buttons {
		b.Draw(screen)
	}
}
