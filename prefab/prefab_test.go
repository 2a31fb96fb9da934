package prefab

import (
	"testing"

	"github.com/go-gl/mathgl/mgl32"

	"github.com/lixenwraith/kristall/component"
	"github.com/lixenwraith/kristall/engine"
	"github.com/lixenwraith/kristall/parameter"
)

func TestCubeMass(t *testing.T) {
	heavy := Instantiate(Cube{Position: mgl32.Vec3{1, 2, 3}, Mass: 9}).Build()
	if heavy.Name() != CubeName {
		t.Errorf("Expected name %s, got %s", CubeName, heavy.Name())
	}
	if !engine.Has[component.RigidBody](heavy) {
		t.Error("Expected RigidBody on massive cube")
	}
	if !engine.Has[component.GraphicsModel](heavy) {
		t.Error("Expected GraphicsModel on cube")
	}

	light := Instantiate(Cube{}).Build()
	if engine.Has[component.RigidBody](light) {
		t.Error("Expected no RigidBody on massless cube")
	}
}

func TestCubeSpin(t *testing.T) {
	spinning := Instantiate(Cube{Mass: 1, Spin: true}).Build()
	rb, _ := engine.MustGet[component.RigidBody](spinning).Snapshot()
	a := parameter.DefaultAngularAcceleration
	if rb.AngularAcceleration != (mgl32.Vec3{a, a, a}) {
		t.Errorf("Expected angular acceleration %v on every axis, got %v", a, rb.AngularAcceleration)
	}

	still := Instantiate(Cube{Mass: 1}).Build()
	rb, _ = engine.MustGet[component.RigidBody](still).Snapshot()
	if rb.AngularAcceleration != (mgl32.Vec3{}) {
		t.Errorf("Expected no angular acceleration, got %v", rb.AngularAcceleration)
	}
}

func TestCubeSink(t *testing.T) {
	var names []string
	sinks := SinkFactory(func(name string) component.TransformSink {
		names = append(names, name)
		return component.TransformSinkFunc(func(mgl32.Mat4) {})
	})

	e := Instantiate(Cube{Sinks: sinks}).Build()
	tr, _ := engine.MustGet[component.Transform](e).Snapshot()
	if tr.Sink == nil {
		t.Error("Expected sink from factory")
	}
	if len(names) != 1 || names[0] != CubeName {
		t.Errorf("Expected factory called once for cube, got %v", names)
	}
}

func TestPlayer(t *testing.T) {
	player := Instantiate(Player{}).Build()
	if player.Name() != PlayerName || player.ChildCount() != 2 {
		t.Fatalf("Expected player with 2 children, got %s", player)
	}

	target, ok := PlayerBody(player)
	if !ok {
		t.Fatal("Expected controlled player body")
	}
	tr, _ := target.Snapshot()
	if tr.Position != (mgl32.Vec3{0, 3, 0}) {
		t.Errorf("Expected upper cube at (0,3,0), got %v", tr.Position)
	}
}

func TestCar(t *testing.T) {
	car := Instantiate(Car{}).Build()
	if car.Name() != CarName || !engine.Has[component.RigidBody](car) {
		t.Errorf("Expected car with RigidBody, got %s", car)
	}
}

func TestRandomTileDeterministic(t *testing.T) {
	tile := RandomTile{Seed: 42, GridSize: 2, CubeMass: 100}

	positions := func() []mgl32.Vec3 {
		var out []mgl32.Vec3
		for e := range Instantiate(tile).Build().QueryEntityByName(CubeName, false).All() {
			if h, ok := engine.Get[component.RigidBody](e); ok {
				h.Peek(func(rb *component.RigidBody) { out = append(out, rb.LastAbsolutePosition) })
			}
		}
		return out
	}

	a, b := positions(), positions()
	// 2³ lattice plus the player's upper cube
	if len(a) != 9 {
		t.Fatalf("Expected 9 massive cubes, got %d", len(a))
	}
	for i := range a {
		if a[i] != b[i] {
			t.Errorf("Expected same seed to give same layout, cube %d: %v vs %v", i, a[i], b[i])
		}
	}
}

func TestRandomTileCamera(t *testing.T) {
	tile := RandomTile{
		Seed:     1,
		GridSize: 1,
		Camera: func(target engine.Handle[component.Transform]) component.Camera {
			return component.NewThirdPersonCamera(target, nil)
		},
	}
	root := Instantiate(tile).Build()

	cams := root.QueryEntityByName(CameraName, false).Collect()
	if len(cams) != 1 {
		t.Fatalf("Expected one camera, got %d", len(cams))
	}
	cam, _ := engine.MustGet[component.Camera](cams[0]).Snapshot()
	if _, err := cam.ViewProjection(); err != nil {
		t.Errorf("Expected camera to resolve its target, got %v", err)
	}
}
