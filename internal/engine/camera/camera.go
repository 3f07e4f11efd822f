// Package camera provides the 2D game camera: smooth position/zoom/rotation
// animation, screen shake, bounds clamping, coordinate conversion and
// edge scrolling.
package camera

import (
	"math"

	"github.com/hajimehoshi/ebiten/v2"
	"go.uber.org/zap"

	"github.com/ToRaNek/TowerDefense/internal/logger"
	gmath "github.com/ToRaNek/TowerDefense/pkg/math"
)

// Mode selects the camera's steering behavior.
type Mode int

const (
	// ModeFree leaves the camera under direct player/UI control.
	ModeFree Mode = iota
	// ModeFollow tracks a Followable target.
	ModeFollow
	// ModeFixed pins the position; animation toward the target stops.
	ModeFixed
	// ModeCinematic is used for scripted transitions.
	ModeCinematic
)

func (m Mode) String() string {
	switch m {
	case ModeFree:
		return "free"
	case ModeFollow:
		return "follow"
	case ModeFixed:
		return "fixed"
	case ModeCinematic:
		return "cinematic"
	default:
		return "unknown"
	}
}

// Followable is anything the camera can track in follow mode.
type Followable interface {
	Position() gmath.Vec2
}

// Config holds camera tuning. Zero values are replaced by DefaultConfig
// equivalents where that would otherwise break the camera (zoom range).
type Config struct {
	MinZoom         float64
	MaxZoom         float64
	TransitionSpeed float64 // Position approach rate, 1/s
	ZoomSpeed       float64 // Zoom approach rate, 1/s
	RotationSpeed   float64 // Degrees per second

	EdgeScroll       bool
	EdgeScrollMargin float64 // Pixels from the viewport edge
	EdgeScrollSpeed  float64 // Pixels per second

	GridWidth  int
	GridHeight int
	TileSize   float64
}

// DefaultConfig returns the standard camera tuning.
func DefaultConfig() Config {
	return Config{
		MinZoom:          0.5,
		MaxZoom:          3.0,
		TransitionSpeed:  3.0,
		ZoomSpeed:        2.0,
		RotationSpeed:    180.0,
		EdgeScroll:       true,
		EdgeScrollMargin: 50,
		EdgeScrollSpeed:  200,
		GridWidth:        24,
		GridHeight:       16,
		TileSize:         32,
	}
}

// oneShot is a timed transition override. While active it replaces the
// steady-state approach rates; when it expires the baseline rates resume
// untouched.
type oneShot struct {
	active    bool
	remaining float64
	speed     float64
	zoomSpeed float64
	hasZoom   bool
}

const defaultHistorySize = 10

// Camera is a 2D camera centered on a world position.
type Camera struct {
	log *zap.Logger

	viewportW float64
	viewportH float64

	pos    gmath.Vec2
	target gmath.Vec2

	zoom       float64
	targetZoom float64
	minZoom    float64
	maxZoom    float64

	rotation       float64 // Degrees
	targetRotation float64

	mode         Mode
	follow       Followable
	followOffset gmath.Vec2

	bounds        Bounds
	boundsEnabled bool

	shakeIntensity float64
	shakeTimer     float64 // Counts down to 0
	shakeFrequency float64

	transitionSpeed float64
	zoomSpeed       float64
	rotationSpeed   float64
	transition      oneShot

	history    []gmath.Vec2
	maxHistory int

	gridWidth  int
	gridHeight int
	tileSize   float64

	edgeScrollEnabled bool
	edgeScrollMargin  float64
	edgeScrollSpeed   float64
}

// New creates a camera for the given viewport size.
func New(viewportW, viewportH float64, cfg Config) *Camera {
	if cfg.MaxZoom <= 0 {
		def := DefaultConfig()
		cfg.MinZoom = def.MinZoom
		cfg.MaxZoom = def.MaxZoom
	}
	if cfg.TransitionSpeed <= 0 {
		cfg.TransitionSpeed = DefaultConfig().TransitionSpeed
	}
	if cfg.ZoomSpeed <= 0 {
		cfg.ZoomSpeed = DefaultConfig().ZoomSpeed
	}
	if cfg.RotationSpeed <= 0 {
		cfg.RotationSpeed = DefaultConfig().RotationSpeed
	}

	c := &Camera{
		log:               logger.Named("Camera2D"),
		viewportW:         viewportW,
		viewportH:         viewportH,
		zoom:              1.0,
		targetZoom:        1.0,
		minZoom:           cfg.MinZoom,
		maxZoom:           cfg.MaxZoom,
		mode:              ModeFree,
		transitionSpeed:   cfg.TransitionSpeed,
		zoomSpeed:         cfg.ZoomSpeed,
		rotationSpeed:     cfg.RotationSpeed,
		maxHistory:        defaultHistorySize,
		gridWidth:         cfg.GridWidth,
		gridHeight:        cfg.GridHeight,
		tileSize:          cfg.TileSize,
		edgeScrollEnabled: cfg.EdgeScroll,
		edgeScrollMargin:  cfg.EdgeScrollMargin,
		edgeScrollSpeed:   cfg.EdgeScrollSpeed,
	}

	c.log.Debug("camera created",
		zap.Float64("viewport_w", viewportW),
		zap.Float64("viewport_h", viewportH),
	)
	return c
}

// Update advances the camera one tick. Steps run in a fixed order:
// follow target, position animation, zoom animation, rotation animation,
// shake countdown, bounds clamp, history sample.
func (c *Camera) Update(dt float64) {
	if c.mode == ModeFollow && c.follow != nil {
		c.target = c.follow.Position().Add(c.followOffset)
	}

	c.animatePosition(dt)
	c.animateZoom(dt)
	c.animateRotation(dt)
	c.updateShake(dt)
	c.expireTransition(dt)

	if c.boundsEnabled {
		c.pos = c.bounds.Clamp(c.pos)
	}

	c.history = append(c.history, c.pos)
	if len(c.history) > c.maxHistory {
		c.history = c.history[1:]
	}
}

// animatePosition moves the position toward the target with an
// exponential-decay approach. It never overshoots and only asymptotically
// reaches the target, which is fine for a camera.
func (c *Camera) animatePosition(dt float64) {
	if c.mode == ModeFixed {
		return
	}
	speed := c.transitionSpeed
	if c.transition.active {
		speed = c.transition.speed
	}
	delta := c.target.Sub(c.pos)
	c.pos = c.pos.Add(delta.Scale(speed * dt))
}

func (c *Camera) animateZoom(dt float64) {
	speed := c.zoomSpeed
	if c.transition.active && c.transition.hasZoom {
		speed = c.transition.zoomSpeed
	}
	c.zoom += (c.targetZoom - c.zoom) * speed * dt
	c.zoom = gmath.Clamp(c.zoom, c.minZoom, c.maxZoom)
}

// animateRotation steps toward the target angle at a fixed rate along the
// shorter arc, snapping when within one step.
func (c *Camera) animateRotation(dt float64) {
	diff := gmath.NormalizeDegrees(c.targetRotation - c.rotation)
	step := c.rotationSpeed * dt
	if math.Abs(diff) <= step {
		c.rotation = c.targetRotation
		return
	}
	c.rotation += math.Copysign(step, diff)
}

func (c *Camera) updateShake(dt float64) {
	if c.shakeTimer <= 0 {
		return
	}
	c.shakeTimer -= dt
	if c.shakeTimer <= 0 {
		c.shakeTimer = 0
		c.shakeIntensity = 0
	}
}

func (c *Camera) expireTransition(dt float64) {
	if !c.transition.active {
		return
	}
	c.transition.remaining -= dt
	if c.transition.remaining <= 0 {
		c.transition = oneShot{}
	}
}

// ShakeOffset returns the current shake displacement, derived purely from
// the countdown timer and intensity. It is never folded into the persisted
// position or history.
func (c *Camera) ShakeOffset() gmath.Vec2 {
	if c.shakeIntensity <= 0 || c.shakeTimer <= 0 {
		return gmath.Vec2{}
	}
	return gmath.Vec2{
		X: math.Sin(c.shakeTimer*c.shakeFrequency) * c.shakeIntensity,
		Y: math.Cos(c.shakeTimer*c.shakeFrequency*0.9) * c.shakeIntensity,
	}
}

// RenderPosition returns the position the render transform should use:
// the persisted position plus the shake offset.
func (c *Camera) RenderPosition() gmath.Vec2 {
	return c.pos.Add(c.ShakeOffset())
}

// ViewMatrix returns the world-to-screen transform for the current camera
// state, shake included. States apply it to their draw calls.
func (c *Camera) ViewMatrix() ebiten.GeoM {
	fp := c.RenderPosition()

	var g ebiten.GeoM
	g.Translate(-fp.X, -fp.Y)
	g.Rotate(gmath.Radians(c.rotation))
	g.Scale(c.zoom, c.zoom)
	g.Translate(c.viewportW/2, c.viewportH/2)
	return g
}

// ScreenToWorld converts screen coordinates to world coordinates.
// Exact inverse of WorldToScreen for the same camera state.
func (c *Camera) ScreenToWorld(sx, sy float64) (float64, float64) {
	wx := (sx-c.viewportW/2)/c.zoom + c.pos.X
	wy := (sy-c.viewportH/2)/c.zoom + c.pos.Y
	return wx, wy
}

// WorldToScreen converts world coordinates to screen coordinates.
func (c *Camera) WorldToScreen(wx, wy float64) (float64, float64) {
	sx := (wx-c.pos.X)*c.zoom + c.viewportW/2
	sy := (wy-c.pos.Y)*c.zoom + c.viewportH/2
	return sx, sy
}

// ViewportBounds returns the visible world rectangle as
// (left, bottom, right, top).
func (c *Camera) ViewportBounds() (left, bottom, right, top float64) {
	halfW := (c.viewportW / 2) / c.zoom
	halfH := (c.viewportH / 2) / c.zoom
	return c.pos.X - halfW, c.pos.Y - halfH, c.pos.X + halfW, c.pos.Y + halfH
}

// IsPointVisible reports whether a world point lies inside the viewport
// expanded by margin on all sides.
func (c *Camera) IsPointVisible(x, y, margin float64) bool {
	left, bottom, right, top := c.ViewportBounds()
	return x >= left-margin && x <= right+margin &&
		y >= bottom-margin && y <= top+margin
}

// SetPosition sets the camera target position. With immediate the current
// position jumps as well instead of animating.
func (c *Camera) SetPosition(pos gmath.Vec2, immediate bool) {
	if immediate {
		c.pos = pos
	}
	c.target = pos
}

// Position returns the current (animated) position.
func (c *Camera) Position() gmath.Vec2 {
	return c.pos
}

// TargetPosition returns the position the camera is animating toward.
func (c *Camera) TargetPosition() gmath.Vec2 {
	return c.target
}

// Move shifts the target position by a delta.
func (c *Camera) Move(delta gmath.Vec2) {
	c.SetPosition(c.target.Add(delta), false)
}

// SetZoom sets the zoom target, clamped into [MinZoom, MaxZoom]. With
// immediate the current zoom jumps as well.
func (c *Camera) SetZoom(zoom float64, immediate bool) {
	zoom = gmath.Clamp(zoom, c.minZoom, c.maxZoom)
	if immediate {
		c.zoom = zoom
	}
	c.targetZoom = zoom
}

// Zoom returns the current zoom factor.
func (c *Camera) Zoom() float64 {
	return c.zoom
}

// ZoomIn multiplies the zoom target by factor.
func (c *Camera) ZoomIn(factor float64) {
	c.SetZoom(c.targetZoom*factor, false)
}

// ZoomOut divides the zoom target by factor.
func (c *Camera) ZoomOut(factor float64) {
	c.SetZoom(c.targetZoom/factor, false)
}

// SetRotation sets the rotation target in degrees.
func (c *Camera) SetRotation(deg float64, immediate bool) {
	if immediate {
		c.rotation = deg
	}
	c.targetRotation = deg
}

// Rotation returns the current rotation in degrees.
func (c *Camera) Rotation() float64 {
	return c.rotation
}

// Rotate shifts the rotation target by a delta in degrees.
func (c *Camera) Rotate(delta float64) {
	c.SetRotation(c.targetRotation+delta, false)
}

// SetMode switches the steering mode. The follow target is kept so a
// transient mode flip (e.g. a cinematic interlude) can resume following;
// use StopFollowing to drop the target reference.
func (c *Camera) SetMode(mode Mode) {
	old := c.mode
	c.mode = mode
	c.log.Debug("camera mode changed",
		zap.String("from", old.String()),
		zap.String("to", mode.String()),
	)
}

// Mode returns the current steering mode.
func (c *Camera) Mode() Mode {
	return c.mode
}

// Follow switches to follow mode tracking target with the given offset.
func (c *Camera) Follow(target Followable, offset gmath.Vec2) {
	c.mode = ModeFollow
	c.follow = target
	c.followOffset = offset
}

// StopFollowing leaves follow mode and clears the target reference.
func (c *Camera) StopFollowing() {
	c.mode = ModeFree
	c.follow = nil
}

// FollowTarget returns the current follow target, if any.
func (c *Camera) FollowTarget() Followable {
	return c.follow
}

// SetBounds installs a clamp region for the camera position.
func (c *Camera) SetBounds(b Bounds, enable bool) {
	c.bounds = b
	c.boundsEnabled = enable
}

// Shake starts a screen shake, overwriting any shake in progress.
// A frequency <= 0 falls back to 60.
func (c *Camera) Shake(intensity, duration, frequency float64) {
	if frequency <= 0 {
		frequency = 60
	}
	c.shakeIntensity = intensity
	c.shakeTimer = duration
	c.shakeFrequency = frequency

	c.log.Debug("camera shake",
		zap.Float64("intensity", intensity),
		zap.Float64("duration", duration),
	)
}

// SmoothTransitionTo animates to a position (and optionally zoom, when
// zoom > 0) over the given duration. The timed rate is a one-shot
// override; the steady-state rates resume once it expires. A duration
// <= 0 applies the change immediately.
func (c *Camera) SmoothTransitionTo(target gmath.Vec2, zoom, duration float64) {
	if duration <= 0 {
		c.SetPosition(target, true)
		if zoom > 0 {
			c.SetZoom(zoom, true)
		}
		return
	}

	c.transition = oneShot{
		active:    true,
		remaining: duration,
		speed:     1 / duration,
		zoomSpeed: 1 / duration,
		hasZoom:   zoom > 0,
	}
	c.SetPosition(target, false)
	if zoom > 0 {
		c.SetZoom(zoom, false)
	}
}

// Resize updates the viewport dimensions.
func (c *Camera) Resize(w, h float64) {
	c.viewportW = w
	c.viewportH = h
	c.log.Debug("camera resized", zap.Float64("w", w), zap.Float64("h", h))
}

// ViewportSize returns the viewport dimensions in pixels.
func (c *Camera) ViewportSize() (w, h float64) {
	return c.viewportW, c.viewportH
}

// CenterOnGrid jumps the camera to the center of the playfield.
func (c *Camera) CenterOnGrid() {
	center := gmath.Vec2{
		X: float64(c.gridWidth) * c.tileSize / 2,
		Y: float64(c.gridHeight) * c.tileSize / 2,
	}
	c.SetPosition(center, true)
}

// FitToGrid sets the zoom so the whole playfield fits the viewport with
// the given margin factor (1.1 = 10% slack), then recenters on the grid.
func (c *Camera) FitToGrid(margin float64) {
	if margin <= 0 {
		margin = 1.1
	}
	gridW := float64(c.gridWidth) * c.tileSize
	gridH := float64(c.gridHeight) * c.tileSize

	zoomX := c.viewportW / (gridW * margin)
	zoomY := c.viewportH / (gridH * margin)
	zoom := gmath.Clamp(math.Min(zoomX, zoomY), c.minZoom, c.maxZoom)

	c.SetZoom(zoom, true)
	c.CenterOnGrid()
}

// HandleEdgeScroll pans the camera while the cursor sits near a viewport
// edge. Inactive in follow mode.
func (c *Camera) HandleEdgeScroll(mouseX, mouseY, dt float64) {
	if !c.edgeScrollEnabled || c.mode == ModeFollow {
		return
	}

	var scroll gmath.Vec2
	if mouseX < c.edgeScrollMargin {
		scroll.X = -c.edgeScrollSpeed * dt
	} else if mouseX > c.viewportW-c.edgeScrollMargin {
		scroll.X = c.edgeScrollSpeed * dt
	}
	if mouseY < c.edgeScrollMargin {
		scroll.Y = -c.edgeScrollSpeed * dt
	} else if mouseY > c.viewportH-c.edgeScrollMargin {
		scroll.Y = c.edgeScrollSpeed * dt
	}

	if scroll.X != 0 || scroll.Y != 0 {
		c.Move(scroll)
	}
}

// SetEdgeScroll enables or disables edge scrolling.
func (c *Camera) SetEdgeScroll(enabled bool) {
	c.edgeScrollEnabled = enabled
}

// History returns a copy of the recent position samples, oldest first.
func (c *Camera) History() []gmath.Vec2 {
	out := make([]gmath.Vec2, len(c.history))
	copy(out, c.history)
	return out
}

// Stats is a snapshot of camera state for debug overlays.
type Stats struct {
	Position       gmath.Vec2
	TargetPosition gmath.Vec2
	Zoom           float64
	TargetZoom     float64
	Rotation       float64
	Mode           Mode
	Following      bool
	BoundsEnabled  bool
	ShakeActive    bool
}

// Stats returns a snapshot of the camera state.
func (c *Camera) Stats() Stats {
	return Stats{
		Position:       c.pos,
		TargetPosition: c.target,
		Zoom:           c.zoom,
		TargetZoom:     c.targetZoom,
		Rotation:       c.rotation,
		Mode:           c.mode,
		Following:      c.follow != nil,
		BoundsEnabled:  c.boundsEnabled,
		ShakeActive:    c.shakeTimer > 0,
	}
}

// Reset returns the camera to its initial pose. Tuning, bounds and grid
// configuration are kept.
func (c *Camera) Reset() {
	c.SetPosition(gmath.Vec2{}, true)
	c.SetZoom(1.0, true)
	c.SetRotation(0, true)
	c.mode = ModeFree
	c.follow = nil
	c.shakeIntensity = 0
	c.shakeTimer = 0
	c.transition = oneShot{}
	c.history = c.history[:0]
}
