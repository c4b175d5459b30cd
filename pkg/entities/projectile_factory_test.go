package entities

import (
	"math"
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

// TestNewRisingProjectile 测试竖直上升发射体的创建
func TestNewRisingProjectile(t *testing.T) {
	tests := []struct {
		name     string
		profile  string
		x, y     float64
		trigger  config.Trigger
		explodeY float64
	}{
		{name: "apex 触发", profile: "night", x: 300, y: 768, trigger: config.TriggerApex},
		{name: "waves 预设", profile: "waves", x: 10, y: 600, trigger: config.TriggerApex},
		{name: "altitude 触发", profile: "waterline", x: 500, y: 1000, trigger: config.TriggerAltitude, explodeY: 300},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			em := ecs.NewEntityManager()
			rng := rand.New(rand.NewSource(1))
			p := loadProfile(t, tt.profile)

			id, err := NewRisingProjectile(em, rng, p, tt.x, tt.y)
			if err != nil {
				t.Fatalf("NewRisingProjectile() error = %v", err)
			}

			pos, ok := ecs.GetComponent[*components.PositionComponent](em, id)
			if !ok {
				t.Fatal("projectile should have PositionComponent")
			}
			if pos.X != tt.x || pos.Y != tt.y {
				t.Errorf("position = (%.1f, %.1f), want (%.1f, %.1f)", pos.X, pos.Y, tt.x, tt.y)
			}

			proj, ok := ecs.GetComponent[*components.ProjectileComponent](em, id)
			if !ok {
				t.Fatal("projectile should have ProjectileComponent")
			}
			if proj.State != components.ProjectileRising {
				t.Errorf("State = %v, want rising", proj.State)
			}
			if proj.Trigger != tt.trigger {
				t.Errorf("Trigger = %v, want %v", proj.Trigger, tt.trigger)
			}
			if proj.SpeedY < p.Projectile.SpeedMin || proj.SpeedY >= p.Projectile.SpeedMax {
				t.Errorf("SpeedY = %v, want [%v, %v)", proj.SpeedY, p.Projectile.SpeedMin, p.Projectile.SpeedMax)
			}
			if proj.Gravity != p.Projectile.Gravity {
				t.Errorf("Gravity = %v, want %v", proj.Gravity, p.Projectile.Gravity)
			}
			if math.Abs(proj.ExplodeY-tt.explodeY) > 1e-9 {
				t.Errorf("ExplodeY = %v, want %v", proj.ExplodeY, tt.explodeY)
			}
			if proj.Color.A != 255 {
				t.Errorf("Color alpha = %d, want opaque", proj.Color.A)
			}
			if len(proj.Sparks) != 0 || proj.SparksSpawned != 0 {
				t.Error("a new projectile must not own sparks")
			}
		})
	}
}

func TestNewRisingProjectileRejectsTargetProfile(t *testing.T) {
	em := ecs.NewEntityManager()
	rng := rand.New(rand.NewSource(1))

	if _, err := NewRisingProjectile(em, rng, loadProfile(t, "targeted"), 0, 0); err == nil {
		t.Error("expected error for a targeted profile")
	}
	if _, err := NewRisingProjectile(nil, rng, loadProfile(t, "night"), 0, 0); err == nil {
		t.Error("expected error for nil entity manager")
	}
	if em.EntityCount() != 0 {
		t.Errorf("failed creation must not leave entities, got %d", em.EntityCount())
	}
}

// TestNewTargetedProjectile 测试目标追踪发射体的创建
func TestNewTargetedProjectile(t *testing.T) {
	em := ecs.NewEntityManager()
	rng := rand.New(rand.NewSource(7))
	p := loadProfile(t, "targeted")

	id, err := NewTargetedProjectile(em, rng, p, 400, 600, 400, 200)
	if err != nil {
		t.Fatalf("NewTargetedProjectile() error = %v", err)
	}

	proj, ok := ecs.GetComponent[*components.ProjectileComponent](em, id)
	if !ok {
		t.Fatal("projectile should have ProjectileComponent")
	}
	if proj.DistanceToTarget != 400 {
		t.Errorf("DistanceToTarget = %v, want 400", proj.DistanceToTarget)
	}
	if math.Abs(proj.Angle-(-math.Pi/2)) > 1e-9 {
		t.Errorf("Angle = %v, want -π/2 (straight up)", proj.Angle)
	}
	if proj.Speed != 2 || proj.Acceleration != 1.05 {
		t.Errorf("Speed/Acceleration = %v/%v, want 2/1.05", proj.Speed, proj.Acceleration)
	}
	if proj.TargetRadius != 1 {
		t.Errorf("TargetRadius = %v, want 1", proj.TargetRadius)
	}

	trail, ok := ecs.GetComponent[*components.TrailComponent](em, id)
	if !ok {
		t.Fatal("targeted projectile should have a trail")
	}
	if len(trail.Points) != 5 {
		t.Errorf("trail length = %d, want 5", len(trail.Points))
	}
	for i, pt := range trail.Points {
		if pt.X != 400 || pt.Y != 600 {
			t.Errorf("trail[%d] = %+v, want launch point", i, pt)
		}
	}

	if _, err := NewTargetedProjectile(em, rng, loadProfile(t, "night"), 0, 0, 1, 1); err == nil {
		t.Error("expected error for a vertical profile")
	}
}
