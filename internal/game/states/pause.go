package states

import (
	"image/color"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/vector"

	"github.com/ToRaNek/TowerDefense/internal/game/ui"
)

// PauseState dims the frozen match behind a small resume menu.
type PauseState struct {
	BaseState

	manager *Manager
	ctx     Context

	buttons []*ui.Button
}

// NewPauseState creates the pause overlay.
func NewPauseState(m *Manager, ctx Context) *PauseState {
	s := &PauseState{
		BaseState: NewBaseState("Pause"),
		manager:   m,
		ctx:       ctx,
	}

	w := float64(ctx.Config().Graphics.Width)
	h := float64(ctx.Config().Graphics.Height)
	bw, bh := 220.0, 48.0
	bx := w/2 - bw/2

	s.buttons = []*ui.Button{
		ui.NewButton(bx, h*0.45, bw, bh, "Resume", func() {
			s.resume()
		}),
		ui.NewButton(bx, h*0.45+bh+16, bw, bh, "Main Menu", func() {
			s.manager.RequestChange(StateMainMenu, nil)
		}),
	}
	return s
}

func (s *PauseState) resume() {
	s.manager.RequestChange(StateGameplay, Data{"resume": true})
}

// Update is a no-op; the match behind the overlay is frozen.
func (s *PauseState) Update(dt float64) {}

// HandleEvent resumes on escape and routes mouse input to the buttons.
func (s *PauseState) HandleEvent(event string, data Data) {
	x, _ := data["x"].(float64)
	y, _ := data["y"].(float64)

	switch event {
	case EventKeyDown:
		if key, _ := data["key"].(string); key == "escape" {
			s.resume()
		}
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

// Render draws the frozen match, a dark veil, and the menu.
func (s *PauseState) Render(screen *ebiten.Image) {
	if prev, ok := s.manager.states[StateGameplay]; ok {
		prev.Render(screen)
	}

	w := float64(s.ctx.Config().Graphics.Width)
	h := float64(s.ctx.Config().Graphics.Height)
	vector.DrawFilledRect(screen, 0, 0, float32(w), float32(h),
		color.RGBA{0, 0, 0, 160}, false)

	title := &ui.Label{
		X:     w / 2,
		Y:     h * 0.3,
		Text:  "Paused",
		Color: ui.ColorTextGold,
		Align: ui.AlignCenter,
		Scale: 3,
	}
	title.Draw(screen)

	for _, b := range s.buttons {
		b.Draw(screen)
	}
}
