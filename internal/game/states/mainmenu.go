package states

import (
	"github.com/hajimehoshi/ebiten/v2"

	"github.com/ToRaNek/TowerDefense/internal/game/ui"
)

// MainMenuState is the title screen.
type MainMenuState struct {
	BaseState

	manager *Manager
	ctx     Context

	buttons []*ui.Button
}

// NewMainMenuState creates the title screen.
func NewMainMenuState(m *Manager, ctx Context) *MainMenuState {
	s := &MainMenuState{
		BaseState: NewBaseState("MainMenu"),
		manager:   m,
		ctx:       ctx,
	}

	w := float64(ctx.Config().Graphics.Width)
	h := float64(ctx.Config().Graphics.Height)
	bw, bh := 220.0, 48.0
	bx := w/2 - bw/2

	s.buttons = []*ui.Button{
		ui.NewButton(bx, h*0.45, bw, bh, "Play", func() {
			s.manager.RequestChange(StateGameplay, nil)
		}),
		ui.NewButton(bx, h*0.45+bh+16, bw, bh, "Quit", func() {
			s.ctx.Quit()
		}),
	}
	return s
}

// Enter resets the camera so the menu is not affected by a previous run.
func (s *MainMenuState) Enter(prev State, data Data) {
	s.BaseState.Enter(prev, data)
	s.ctx.Camera().Reset()
}

// Update is a no-op; the menu only reacts to input.
func (s *MainMenuState) Update(dt float64) {}

// HandleEvent routes mouse input to the buttons.
func (s *MainMenuState) HandleEvent(event string, data Data) {
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

// Render draws the title and the menu buttons.
func (s *MainMenuState) Render(screen *ebiten.Image) {
	screen.Fill(ui.ColorDarkSteel)

	w := float64(s.ctx.Config().Graphics.Width)
	h := float64(s.ctx.Config().Graphics.Height)

	title := &ui.Label{
		X:     w / 2,
		Y:     h * 0.25,
		Text:  s.ctx.Config().Graphics.Title,
		Color: ui.ColorTextGold,
		Align: ui.AlignCenter,
		Scale: 4,
	}
	title.Draw(screen)

	sub := &ui.Label{
		X:     w / 2,
		Y:     h*0.25 + 32,
		Text:  "A steampunk tower defense",
		Color: ui.ColorSteamWhite,
		Align: ui.AlignCenter,
	}
	sub.Draw(screen)

	for _, b := range s.buttons {
		b.Draw(screen)
	}
}
