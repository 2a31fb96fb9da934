package main

import (
	"fmt"
	"math"
	"sort"
	"strings"
	"sync"

	"github.com/gdamore/tcell/v2"
	"github.com/go-gl/mathgl/mgl32"

	"github.com/lixenwraith/kristall/component"
	"github.com/lixenwraith/kristall/engine"
	"github.com/lixenwraith/kristall/status"
)

// drawable is the renderer-side state behind one transform sink
type drawable struct {
	name  string
	model mgl32.Mat4
	seen  bool
}

// terminalRenderer projects published model matrices onto the terminal grid
// Sinks are called from the translate goroutine, Draw from the main loop
type terminalRenderer struct {
	screen tcell.Screen
	reg    *status.Registry

	mu     sync.Mutex
	items  []*drawable
	camera engine.Handle[component.Camera]
}

func newTerminalRenderer(screen tcell.Screen, reg *status.Registry) *terminalRenderer {
	return &terminalRenderer{screen: screen, reg: reg}
}

// Sink allocates a drawable slot, usable as a prefab.SinkFactory
func (r *terminalRenderer) Sink(name string) component.TransformSink {
	d := &drawable{name: name}
	r.mu.Lock()
	r.items = append(r.items, d)
	r.mu.Unlock()

	return component.TransformSinkFunc(func(model mgl32.Mat4) {
		r.mu.Lock()
		d.model = model
		d.seen = true
		r.mu.Unlock()
	})
}

func (r *terminalRenderer) SetCamera(h engine.Handle[component.Camera]) {
	r.mu.Lock()
	r.camera = h
	r.mu.Unlock()
}

type point struct {
	x, y  int
	depth float32
	name  string
}

// project maps a world position to a terminal cell
// Depth is the NDC z in [-1, 1], false when outside the view volume
func project(vp mgl32.Mat4, pos mgl32.Vec3, width, height int) (int, int, float32, bool) {
	clip := vp.Mul4x1(pos.Vec4(1))
	if clip[3] <= 0 {
		return 0, 0, 0, false
	}
	ndc := clip.Vec3().Mul(1 / clip[3])
	if ndc[0] < -1 || ndc[0] > 1 || ndc[1] < -1 || ndc[1] > 1 || ndc[2] < -1 || ndc[2] > 1 {
		return 0, 0, 0, false
	}
	x := int(math.Round(float64((ndc[0] + 1) / 2 * float32(width-1))))
	y := int(math.Round(float64((1 - ndc[1]) / 2 * float32(height-1))))
	return x, y, ndc[2], true
}

// Draw renders one frame: drawables far to near, then the status line
func (r *terminalRenderer) Draw() {
	r.screen.Clear()
	width, height := r.screen.Size()

	r.mu.Lock()
	camera := r.camera
	models := make([]drawable, 0, len(r.items))
	for _, d := range r.items {
		if d.seen {
			models = append(models, *d)
		}
	}
	r.mu.Unlock()

	if camera.Valid() {
		if cam, err := camera.Snapshot(); err == nil {
			if vp, err := cam.ViewProjection(); err == nil {
				r.drawModels(vp, models, width, height)
			}
		}
	}

	r.drawStatus(width)
	r.screen.Show()
}

func (r *terminalRenderer) drawModels(vp mgl32.Mat4, models []drawable, width, height int) {
	points := make([]point, 0, len(models))
	for _, d := range models {
		x, y, depth, ok := project(vp, d.model.Col(3).Vec3(), width, height)
		if ok {
			points = append(points, point{x: x, y: y, depth: depth, name: d.name})
		}
	}
	sort.Slice(points, func(i, j int) bool { return points[i].depth > points[j].depth })

	for _, p := range points {
		// Map depth to brightness, near objects brighter
		intensity := int32(255 - (p.depth+1)/2*200)
		style := tcell.StyleDefault.Foreground(tcell.NewRGBColor(intensity, intensity, intensity))
		r.screen.SetContent(p.x, p.y, '■', nil, style)
	}
}

func (r *terminalRenderer) drawStatus(width int) {
	snap := r.reg.Snapshot()
	var parts []string
	for key, v := range snap {
		if name, ok := strings.CutSuffix(strings.TrimPrefix(key, "system."), ".ticks"); ok && strings.HasPrefix(key, "system.") {
			parts = append(parts, fmt.Sprintf("%s:%d", name, v))
		}
	}
	sort.Strings(parts)
	line := fmt.Sprintf(" kristall | ticks %s | events %d | q/Esc quit ", strings.Join(parts, " "), snap["input.dispatched"])

	style := tcell.StyleDefault.Reverse(true)
	for i, ch := range []rune(line) {
		if i >= width {
			break
		}
		r.screen.SetContent(i, 0, ch, nil, style)
	}
}
