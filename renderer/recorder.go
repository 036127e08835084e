package renderer

import "fmt"

// OpKind identifies a recorded draw operation.
type OpKind uint8

const (
	OpBeginFrame OpKind = iota
	OpSetTarget
	OpClear
	OpRect
	OpCircle
	OpEllipse
	OpTriangle
	OpBlit
	OpPresent
)

var opNames = [...]string{"begin", "target", "clear", "rect", "circle", "ellipse", "triangle", "blit", "present"}

func (k OpKind) String() string {
	if int(k) < len(opNames) {
		return opNames[k]
	}
	return fmt.Sprintf("op(%d)", k)
}

// Op is one recorded draw call.
type Op struct {
	Kind   OpKind
	Target Target // current target when the op was issued (nil = main)
	X, Y   float32
	Color  Color
	Alpha  float32 // OpBlit only
}

// Recorder is a Surface that draws nothing and records the ops of the
// current frame. It backs headless runs and tests.
type Recorder struct {
	width, height int
	current       Target
	ops           []Op
	frames        int
	nextID        int
	live          int // targets created and not yet unloaded
}

type recordedTarget struct {
	id   int
	w, h int
}

func (t *recordedTarget) Size() (int, int) { return t.w, t.h }

// NewRecorder creates a recorder with the given main surface size.
func NewRecorder(width, height int) *Recorder {
	return &Recorder{width: width, height: height}
}

func (r *Recorder) Width() int  { return r.width }
func (r *Recorder) Height() int { return r.height }

func (r *Recorder) NewTarget(w, h int) Target {
	r.nextID++
	r.live++
	return &recordedTarget{id: r.nextID, w: w, h: h}
}

func (r *Recorder) UnloadTarget(t Target) {
	if t != nil {
		r.live--
	}
}

// BeginFrame discards the previous frame's ops.
func (r *Recorder) BeginFrame() {
	r.ops = r.ops[:0]
	r.current = nil
	r.record(Op{Kind: OpBeginFrame})
}

func (r *Recorder) SetTarget(t Target) {
	r.current = t
	r.record(Op{Kind: OpSetTarget})
}

func (r *Recorder) Clear(c Color) {
	r.record(Op{Kind: OpClear, Color: c})
}

func (r *Recorder) FillRect(x, y, w, h float32, c Color) {
	r.record(Op{Kind: OpRect, X: x, Y: y, Color: c})
}

func (r *Recorder) FillCircle(x, y, rad float32, c Color) {
	r.record(Op{Kind: OpCircle, X: x, Y: y, Color: c})
}

func (r *Recorder) FillEllipse(x, y, rx, ry float32, c Color) {
	r.record(Op{Kind: OpEllipse, X: x, Y: y, Color: c})
}

func (r *Recorder) FillTriangle(x1, y1, x2, y2, x3, y3 float32, c Color) {
	r.record(Op{Kind: OpTriangle, X: x1, Y: y1, Color: c})
}

func (r *Recorder) Blit(t Target, alpha float32) {
	r.record(Op{Kind: OpBlit, Alpha: alpha})
}

func (r *Recorder) Present() {
	r.record(Op{Kind: OpPresent})
	r.frames++
}

func (r *Recorder) record(op Op) {
	op.Target = r.current
	r.ops = append(r.ops, op)
}

// Ops returns the ops recorded since the last BeginFrame.
func (r *Recorder) Ops() []Op {
	return r.ops
}

// Frames returns the number of presented frames.
func (r *Recorder) Frames() int {
	return r.frames
}

// LiveTargets returns how many targets are allocated and not unloaded.
func (r *Recorder) LiveTargets() int {
	return r.live
}
