package systems

import (
	"math/rand"
	"testing"

	"github.com/decker502/fireworks/pkg/components"
	"github.com/decker502/fireworks/pkg/config"
	"github.com/decker502/fireworks/pkg/ecs"
)

// loadProfile 加载内置预设
func loadProfile(t *testing.T, id string) *config.Profile {
	t.Helper()
	set, err := config.LoadBuiltinProfiles()
	if err != nil {
		t.Fatalf("LoadBuiltinProfiles() error = %v", err)
	}
	p, err := set.Get(id)
	if err != nil {
		t.Fatalf("Get(%q) error = %v", id, err)
	}
	return p
}

// newSpark 创建一个位于 (x,y) 的火花实体
func newSpark(em *ecs.EntityManager, x, y float64, spark components.SparkComponent) ecs.EntityID {
	id := em.CreateEntity()
	ecs.AddComponent(em, id, &components.PositionComponent{X: x, Y: y})
	s := spark
	ecs.AddComponent(em, id, &s)
	return id
}

func newRand() *rand.Rand {
	return rand.New(rand.NewSource(42))
}
