package prefab

import (
	"log"
	"math/rand/v2"

	"github.com/go-gl/mathgl/mgl32"

	"github.com/lixenwraith/kristall/component"
	"github.com/lixenwraith/kristall/engine"
	"github.com/lixenwraith/kristall/parameter"
)

// CameraName is the entity name of the scene camera
const CameraName = "camera"

// RandomTile is the demo scene: a player, a followed camera and a GridSize³ lattice
// of heavy cubes with seeded vertical jitter
type RandomTile struct {
	Seed     uint64
	GridSize int
	CubeMass float32
	Force    float32
	Sinks    SinkFactory

	// Camera is attached when set; it receives the player's Transform as target
	Camera func(target engine.Handle[component.Transform]) component.Camera
}

// NewRandomTile configures a tile from the scene section of cfg
func NewRandomTile(cfg parameter.Config, sinks SinkFactory) RandomTile {
	return RandomTile{
		Seed:     uint64(cfg.Scene.Seed),
		GridSize: cfg.Scene.GridSize,
		CubeMass: cfg.Scene.CubeMass,
		Force:    cfg.Input.ControllerForce,
		Sinks:    sinks,
	}
}

func (r RandomTile) Apply(b *engine.EntityBuilder) *engine.EntityBuilder {
	rng := rand.New(rand.NewPCG(r.Seed, r.Seed))

	player := Instantiate(Player{Force: r.Force, Sinks: r.Sinks}).Build()
	b.WithChildEntity(player)

	if r.Camera != nil {
		if target, ok := PlayerBody(player); ok {
			b.WithChild(engine.WithComponent(engine.NewEntityBuilder().WithName(CameraName), r.Camera(target)))
		} else {
			log.Printf("WARN: player has no controlled Transform, camera not attached")
		}
	}

	n := r.GridSize
	for i := 0; i < n; i++ {
		for j := 0; j < n; j++ {
			for k := 0; k < n; k++ {
				pos := mgl32.Vec3{
					4 + float32(i)*5,
					float32(rng.IntN(256))/100 + float32(k)*10,
					4 + float32(j)*10,
				}
				b.WithChild(Instantiate(Cube{Position: pos, Mass: r.CubeMass, Sinks: r.Sinks}))
			}
		}
	}
	log.Printf("Scene: %d cubes, seed %d", n*n*n, r.Seed)
	return b.WithName("tile")
}
