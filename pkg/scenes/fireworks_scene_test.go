package scenes

import (
	"errors"
	"math"
	"math/rand"
	"testing"

	"github.com/decker502/fireworks/pkg/components"
	"github.com/decker502/fireworks/pkg/config"
	"github.com/decker502/fireworks/pkg/ecs"
	"github.com/decker502/fireworks/pkg/render"
)

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

func newScene(t *testing.T, p *config.Profile, width, height float64, sound *countingSound) *FireworksScene {
	t.Helper()
	opts := Options{Rand: rand.New(rand.NewSource(99)), Width: width, Height: height}
	if sound != nil {
		opts.Sound = sound
	}
	s, err := NewFireworksScene(p, opts)
	if err != nil {
		t.Fatalf("NewFireworksScene() error = %v", err)
	}
	return s
}

type countingSound struct{ plays int }

func (c *countingSound) PlayExplosion() bool {
	c.plays++
	return true
}

// TestTargetedBurstWithReflection 从 (400,600) 发射到 (400,200)，水面 y=500：
// 到达目标时在 (400,200) 生成 50-100 个火花，每个火花的倒影都在 y=800，直到全部消失。
func TestTargetedBurstWithReflection(t *testing.T) {
	p := loadProfile(t, "targeted")
	p.Launch.Probability = 0
	p.Water = config.WaterConfig{Enabled: true, Level: 0.5}

	sound := &countingSound{}
	s := newScene(t, p, 800, 1000, sound)
	if y, ok := s.WaterY(); !ok || y != 500 {
		t.Fatalf("WaterY = %v (%v), want 500", y, ok)
	}

	if _, err := s.Launch(render.Point{X: 400, Y: 600}, render.Point{X: 400, Y: 200}); err != nil {
		t.Fatalf("Launch() error = %v", err)
	}

	surface := render.NewRecorder(800, 1000)
	spawned := 0
	for tick := 0; spawned == 0; tick++ {
		if tick > 200 {
			t.Fatal("projectile never reached its target")
		}
		surface.Reset()
		s.Tick(surface)
		spawned = s.SparkCount()
	}

	if spawned < 50 || spawned >= 100 {
		t.Fatalf("spawned %d sparks, want [50, 100)", spawned)
	}
	if sound.plays != 1 {
		t.Errorf("explosion sound played %d times, want 1", sound.plays)
	}

	em := s.EntityManager()
	for _, id := range ecs.GetEntitiesWith1[*components.SparkComponent](em) {
		pos, _ := ecs.GetComponent[*components.PositionComponent](em, id)
		if pos.X != 400 || pos.Y != 200 {
			t.Fatalf("spark at (%v, %v), want (400, 200)", pos.X, pos.Y)
		}
	}

	glows := surface.Filter(render.OpRadialGradient)
	if len(glows) != 2*spawned {
		t.Fatalf("drawn %d glows, want %d (sparks + reflections)", len(glows), 2*spawned)
	}
	for i := 0; i < spawned; i++ {
		body, mirror := glows[i], glows[i+spawned]
		if body.X != 400 || body.Y != 200 {
			t.Fatalf("spark drawn at (%v, %v), want (400, 200)", body.X, body.Y)
		}
		if mirror.X != 400 || mirror.Y != 800 {
			t.Fatalf("reflection drawn at (%v, %v), want (400, 800)", mirror.X, mirror.Y)
		}
	}

	// 之后每一帧：倒影始终满足 y' = 2*500 - y，透明度为本体的一半
	for tick := 0; s.SparkCount() > 0; tick++ {
		if tick > 500 {
			t.Fatal("sparks never decayed")
		}
		surface.Reset()
		s.Tick(surface)

		glows := surface.Filter(render.OpRadialGradient)
		n := s.SparkCount()
		if len(glows) != 2*n {
			t.Fatalf("tick %d: drawn %d glows for %d sparks", tick, len(glows), n)
		}
		for i := 0; i < n; i++ {
			body, mirror := glows[i], glows[i+n]
			if body.X != mirror.X || math.Abs(mirror.Y-(1000-body.Y)) > 1e-9 {
				t.Fatalf("tick %d: reflection (%v, %v) does not mirror (%v, %v)", tick, mirror.X, mirror.Y, body.X, body.Y)
			}
			if math.Abs(mirror.Alpha-body.Alpha*0.5) > 1e-9 {
				t.Fatalf("tick %d: reflection alpha %v, want half of %v", tick, mirror.Alpha, body.Alpha)
			}
			if body.Alpha <= 0 {
				t.Fatalf("tick %d: drew a spark with alpha %v", tick, body.Alpha)
			}
		}
	}

	// 火花消失后，发射体在同一帧被清理
	if s.ProjectileCount() != 0 {
		t.Errorf("ProjectileCount = %d after all sparks decayed, want 0", s.ProjectileCount())
	}
	stats := s.Stats()
	if stats.Expired != spawned || stats.Exploded != 1 || stats.Launched != 1 {
		t.Errorf("stats = %+v, want expired=%d exploded=1 launched=1", stats, spawned)
	}
	if stats.Removed != spawned+1 {
		t.Errorf("removed %d entities, want %d", stats.Removed, spawned+1)
	}
}

// TestClickLaunchesOnNextTick 点击 (120,80) 后，下一帧场景中出现对应的发射体
func TestClickLaunchesOnNextTick(t *testing.T) {
	tests := []struct {
		profile    string
		wantStartX float64
		wantTarget bool
	}{
		{profile: "targeted", wantStartX: 400, wantTarget: true},
		{profile: "night", wantStartX: 120},
		{profile: "waterline", wantStartX: 120},
	}

	for _, tt := range tests {
		t.Run(tt.profile, func(t *testing.T) {
			p := loadProfile(t, tt.profile)
			p.Launch.Probability = 0
			s := newScene(t, p, 800, 600, nil)

			s.Click(120, 80)
			if s.ProjectileCount() != 0 {
				t.Fatal("click must not add a projectile before the next tick")
			}

			s.Tick(render.NewRecorder(800, 600))
			if s.ProjectileCount() != 1 {
				t.Fatalf("ProjectileCount = %d, want 1", s.ProjectileCount())
			}

			em := s.EntityManager()
			id := ecs.GetEntitiesWith1[*components.ProjectileComponent](em)[0]
			proj, _ := ecs.GetComponent[*components.ProjectileComponent](em, id)
			if proj.StartX != tt.wantStartX || proj.StartY != 600 {
				t.Errorf("launched from (%v, %v), want (%v, 600)", proj.StartX, proj.StartY, tt.wantStartX)
			}
			if tt.wantTarget && (proj.TargetX != 120 || proj.TargetY != 80) {
				t.Errorf("target = (%v, %v), want (120, 80)", proj.TargetX, proj.TargetY)
			}
		})
	}
}

// TestSceneInvariants 长时间运行：火花透明度单调递减、计数不为负、爆炸状态不回退
func TestSceneInvariants(t *testing.T) {
	for _, id := range []string{"targeted", "waterline", "waves", "night"} {
		t.Run(id, func(t *testing.T) {
			p := loadProfile(t, id)
			p.Launch.Probability = math.Max(p.Launch.Probability, 0.2)
			s := newScene(t, p, 640, 480, nil)
			surface := render.NewRecorder(640, 480)
			em := s.EntityManager()

			alpha := map[ecs.EntityID]float64{}
			exploded := map[ecs.EntityID]int{}

			for tick := 0; tick < 600; tick++ {
				surface.Reset()
				s.Tick(surface)

				if s.ProjectileCount() < 0 || s.SparkCount() < 0 {
					t.Fatal("negative entity count")
				}

				for _, sid := range ecs.GetEntitiesWith1[*components.SparkComponent](em) {
					spark, _ := ecs.GetComponent[*components.SparkComponent](em, sid)
					if prev, ok := alpha[sid]; ok && spark.Alpha > prev {
						t.Fatalf("spark %d alpha increased %v → %v", sid, prev, spark.Alpha)
					}
					if spark.Expired {
						t.Fatalf("expired spark %d survived the cull", sid)
					}
					alpha[sid] = spark.Alpha
				}

				for _, pid := range ecs.GetEntitiesWith1[*components.ProjectileComponent](em) {
					proj, _ := ecs.GetComponent[*components.ProjectileComponent](em, pid)
					if proj.State == components.ProjectileExploded {
						if n, ok := exploded[pid]; ok && n != proj.SparksSpawned {
							t.Fatalf("projectile %d spawned count changed %d → %d", pid, n, proj.SparksSpawned)
						}
						exploded[pid] = proj.SparksSpawned
					} else if _, ok := exploded[pid]; ok {
						t.Fatalf("projectile %d went back to rising", pid)
					}
				}
			}

			if s.Stats().Launched == 0 {
				t.Error("nothing was launched in 600 ticks")
			}
		})
	}
}

func TestSceneResizeAndClear(t *testing.T) {
	p := loadProfile(t, "night")
	p.Launch.Probability = 1
	s := newScene(t, p, 1000, 1000, nil)

	if y, _ := s.WaterY(); math.Abs(y-700) > 1e-9 {
		t.Errorf("WaterY = %v, want 700", y)
	}
	s.Resize(500, 2000)
	if y, _ := s.WaterY(); math.Abs(y-1400) > 1e-9 {
		t.Errorf("WaterY after resize = %v, want 1400", y)
	}
	if w, h := s.Size(); w != 500 || h != 2000 {
		t.Errorf("Size = %vx%v, want 500x2000", w, h)
	}
	s.Resize(0, 0) // 忽略无效尺寸
	if w, _ := s.Size(); w != 500 {
		t.Error("invalid resize must be ignored")
	}

	for i := 0; i < 300; i++ {
		s.Update(FrameDelta)
	}
	if s.ProjectileCount() == 0 {
		t.Fatal("expected projectiles after 300 ticks")
	}

	s.Clear()
	if s.ProjectileCount() != 0 || s.SparkCount() != 0 {
		t.Errorf("after Clear: %d projectiles, %d sparks", s.ProjectileCount(), s.SparkCount())
	}
	if _, ok := s.WaterY(); !ok {
		t.Error("Clear must keep the water")
	}
}

func TestSceneSoundFollowsProfile(t *testing.T) {
	p := loadProfile(t, "waves") // sound off
	p.Launch.Probability = 0
	sound := &countingSound{}
	s := newScene(t, p, 800, 600, sound)

	if _, err := s.Launch(render.Point{X: 100, Y: 600}, render.Point{}); err != nil {
		t.Fatalf("Launch() error = %v", err)
	}
	for i := 0; i < 400 && s.Stats().Exploded == 0; i++ {
		s.Update(FrameDelta)
	}
	if s.Stats().Exploded != 1 {
		t.Fatal("projectile did not explode")
	}
	if sound.plays != 0 {
		t.Errorf("sound played %d times for a silent profile", sound.plays)
	}
}

func TestNewFactory(t *testing.T) {
	set, err := config.LoadBuiltinProfiles()
	if err != nil {
		t.Fatal(err)
	}
	factory := NewFactory(set, Options{Rand: rand.New(rand.NewSource(1))})

	scene, err := factory("waves")
	if err != nil {
		t.Fatalf("factory(waves) error = %v", err)
	}
	if fs, ok := scene.(*FireworksScene); !ok || fs.Profile().ID != "waves" {
		t.Errorf("factory returned %T", scene)
	}

	if _, err := factory("nope"); !errors.Is(err, config.ErrUnknownProfile) {
		t.Errorf("factory(nope) error = %v, want ErrUnknownProfile", err)
	}
}

func TestNewFireworksSceneValidates(t *testing.T) {
	if _, err := NewFireworksScene(nil, Options{}); err == nil {
		t.Error("expected error for nil profile")
	}

	p := loadProfile(t, "night")
	p.Burst.Friction = 0
	if _, err := NewFireworksScene(p, Options{}); !errors.Is(err, config.ErrInvalidProfile) {
		t.Errorf("error = %v, want ErrInvalidProfile", err)
	}
}
