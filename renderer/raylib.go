package renderer

import (
	rl "github.com/gen2brain/raylib-go/raylib"
)

// RaylibSurface draws through raylib. The window must already be open.
type RaylibSurface struct {
	inTexture bool
	fan       []Point
	fanRL     []rl.Vector2
}

type raylibTarget struct {
	tex rl.RenderTexture2D
}

func (t *raylibTarget) Size() (int, int) {
	return int(t.tex.Texture.Width), int(t.tex.Texture.Height)
}

// NewRaylibSurface creates a surface bound to the current raylib window.
func NewRaylibSurface() *RaylibSurface {
	return &RaylibSurface{}
}

func (s *RaylibSurface) Width() int  { return rl.GetScreenWidth() }
func (s *RaylibSurface) Height() int { return rl.GetScreenHeight() }

// NewTarget allocates a render texture. Drawing into it uses raylib's default
// alpha blending.
func (s *RaylibSurface) NewTarget(w, h int) Target {
	tex := rl.LoadRenderTexture(int32(w), int32(h))
	rl.SetTextureFilter(tex.Texture, rl.FilterBilinear)
	return &raylibTarget{tex: tex}
}

func (s *RaylibSurface) UnloadTarget(t Target) {
	if rt, ok := t.(*raylibTarget); ok {
		rl.UnloadRenderTexture(rt.tex)
	}
}

func (s *RaylibSurface) BeginFrame() {
	rl.BeginDrawing()
}

func (s *RaylibSurface) SetTarget(t Target) {
	if s.inTexture {
		rl.EndTextureMode()
		s.inTexture = false
	}
	if rt, ok := t.(*raylibTarget); ok {
		rl.BeginTextureMode(rt.tex)
		s.inTexture = true
	}
}

func (s *RaylibSurface) Clear(c Color) {
	rl.ClearBackground(toRL(c))
}

func (s *RaylibSurface) FillRect(x, y, w, h float32, c Color) {
	rl.DrawRectangleV(rl.Vector2{X: x, Y: y}, rl.Vector2{X: w, Y: h}, toRL(c))
}

func (s *RaylibSurface) FillCircle(x, y, r float32, c Color) {
	rl.DrawCircleV(rl.Vector2{X: x, Y: y}, r, toRL(c))
}

// FillEllipse draws a triangle fan so the centre keeps sub-pixel precision.
func (s *RaylibSurface) FillEllipse(x, y, rx, ry float32, c Color) {
	s.fan = ellipseFan(s.fan[:0], x, y, rx, ry)
	s.fanRL = s.fanRL[:0]
	for _, p := range s.fan {
		s.fanRL = append(s.fanRL, rl.Vector2{X: p.X, Y: p.Y})
	}
	rl.DrawTriangleFan(s.fanRL, toRL(c))
}

func (s *RaylibSurface) FillTriangle(x1, y1, x2, y2, x3, y3 float32, c Color) {
	v1 := rl.Vector2{X: x1, Y: y1}
	v2 := rl.Vector2{X: x2, Y: y2}
	v3 := rl.Vector2{X: x3, Y: y3}
	// DrawTriangle requires counter-clockwise winding on screen (y down)
	if (x2-x1)*(y3-y1)-(y2-y1)*(x3-x1) > 0 {
		v2, v3 = v3, v2
	}
	rl.DrawTriangle(v1, v2, v3, toRL(c))
}

func (s *RaylibSurface) Blit(t Target, alpha float32) {
	rt, ok := t.(*raylibTarget)
	if !ok {
		return
	}
	w := float32(rt.tex.Texture.Width)
	h := float32(rt.tex.Texture.Height)
	// Render textures are stored upside down
	src := rl.Rectangle{X: 0, Y: 0, Width: w, Height: -h}
	rl.DrawTextureRec(rt.tex.Texture, src, rl.Vector2{}, rl.Fade(rl.White, alpha))
}

func (s *RaylibSurface) Present() {
	if s.inTexture {
		rl.EndTextureMode()
		s.inTexture = false
	}
	rl.EndDrawing()
}

func toRL(c Color) rl.Color {
	return rl.NewColor(c.R, c.G, c.B, c.A)
}
