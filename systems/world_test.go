package systems

import (
	"math/rand"
	"testing"

	"github.com/pthm-cable/terrarium/components"
	"github.com/pthm-cable/terrarium/config"
)

// Tile and kind ids from config/defaults.yaml.
const (
	tileGrass TileType = 0
	tileDirt  TileType = 1
	tileSand  TileType = 2
	tileWater TileType = 3
	tileRock  TileType = 4
	tileWall  TileType = 6

	plantTuft = 0
	plantBush = 1
	plantReed = 3
	plantPine = 4

	animalRabbit = 0
	animalDeer   = 1
	animalFish   = 2
)

// testWorld is a World over an all-grass 20x12 level.
type testWorld struct {
	level   *Level
	catalog *Catalog
	plants  *Population[*Plant]
	animals *Population[*Animal]
	rng     *rand.Rand
}

func newTestWorld(t *testing.T) *testWorld {
	t.Helper()
	cfg, err := config.Load("")
	if err != nil {
		t.Fatalf("config.Load: %v", err)
	}
	cfg.Level.Generate = false

	cat, err := NewCatalog(cfg)
	if err != nil {
		t.Fatalf("NewCatalog: %v", err)
	}
	return &testWorld{
		level:   NewLevelFromConfig(cfg, 1),
		catalog: cat,
		plants:  NewPopulation[*Plant](8),
		animals: NewPopulation[*Animal](8),
		rng:     rand.New(rand.NewSource(42)),
	}
}

func (w *testWorld) Level() *Level      { return w.level }
func (w *testWorld) Catalog() *Catalog  { return w.catalog }
func (w *testWorld) Plants() []*Plant   { return w.plants.Items() }
func (w *testWorld) Animals() []*Animal { return w.animals.Items() }
func (w *testWorld) Rand() *rand.Rand   { return w.rng }

func (w *testWorld) addPlant(typeID int, x, y float32) *Plant {
	p := NewPlant(w.catalog, typeID, components.Position{X: x, Y: y})
	w.plants.Add(p)
	return p
}

func (w *testWorld) addAnimal(typeID int, x, y, heading float32) *Animal {
	a := NewAnimal(w.catalog, typeID, components.Position{X: x, Y: y}, heading)
	w.animals.Add(a)
	return a
}
