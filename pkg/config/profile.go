package config

import (
	"errors"
	"fmt"
	"os"

	"gopkg.in/yaml.v3"

	"github.com/decker502/fireworks/pkg/embedded"
)

var (
	// ErrUnknownProfile 请求的预设不存在
	ErrUnknownProfile = errors.New("unknown profile")
	// ErrInvalidProfile 预设数值不合法
	ErrInvalidProfile = errors.New("invalid profile")
)

// Trigger 爆炸触发条件
type Trigger string

const (
	// TriggerApex 上升速度降到 0 时爆炸（到达顶点）
	TriggerApex Trigger = "apex"
	// TriggerAltitude 高度超过画布高度的某个比例时爆炸
	TriggerAltitude Trigger = "altitude"
	// TriggerTarget 飞行距离达到目标距离时在目标点爆炸
	TriggerTarget Trigger = "target"
)

// Cutoff 火花的过期判定方式
type Cutoff string

const (
	// CutoffZero alpha <= 0 时过期
	CutoffZero Cutoff = "zero"
	// CutoffDecay alpha <= decay 时过期（提前一帧移除，避免绘制接近透明的火花）
	CutoffDecay Cutoff = "decay"
)

// ColorMode 火花颜色来源
type ColorMode string

const (
	// ColorProjectile 火花继承发射体颜色
	ColorProjectile ColorMode = "projectile"
	// ColorHue 每个火花随机色相
	ColorHue ColorMode = "hue"
)

// VelocityMode 火花初速度的随机方式
type VelocityMode string

const (
	// VelocityBox vx, vy 分别在 [-speedMax, speedMax) 内均匀随机
	VelocityBox VelocityMode = "box"
	// VelocityPolar 随机角度 + [speedMin, speedMax) 的速度
	VelocityPolar VelocityMode = "polar"
)

// BackgroundMode 每帧开始时的背景处理方式
type BackgroundMode string

const (
	// BackgroundClear 完全清屏并填充天空颜色
	BackgroundClear BackgroundMode = "clear"
	// BackgroundFade 用半透明的 destination-out 叠加层淡出上一帧，形成拖尾
	BackgroundFade BackgroundMode = "fade"
)

// LaunchOrigin 自动发射的起点
type LaunchOrigin string

const (
	// OriginRandom 画布底部随机 X
	OriginRandom LaunchOrigin = "random"
	// OriginCenter 画布底部中央
	OriginCenter LaunchOrigin = "center"
)

// ProfileSet 内置预设集合
//
// 配置文件位置: pkg/embedded/data/profiles.yaml
type ProfileSet struct {
	// Default 未指定 --profile 时使用的预设ID
	Default string `yaml:"default"`

	// Palette 发射体颜色表（十六进制）
	Palette []string `yaml:"palette"`

	Profiles []Profile `yaml:"profiles"`
}

// Profile 一组完整的场景常量
type Profile struct {
	ID   string `yaml:"id"`
	Name string `yaml:"name"`

	Background BackgroundConfig `yaml:"background"`

	// Additive 使用叠加混合（canvas 的 "lighter"）绘制烟花
	Additive bool `yaml:"additive"`

	// Sound 爆炸时播放音效
	Sound bool `yaml:"sound"`

	Launch     LaunchConfig     `yaml:"launch"`
	Projectile ProjectileConfig `yaml:"projectile"`
	Burst      BurstConfig      `yaml:"burst"`
	Water      WaterConfig      `yaml:"water"`
	Moon       MoonConfig       `yaml:"moon"`
	Clouds     CloudConfig      `yaml:"clouds"`

	// Palette 由 ProfileSet 填充
	Palette []string `yaml:"palette"`
}

// BackgroundConfig 背景配置
type BackgroundConfig struct {
	Mode      BackgroundMode `yaml:"mode"`
	FadeAlpha float64        `yaml:"fadeAlpha"`
	Color     string         `yaml:"color"`
}

// LaunchConfig 发射配置
type LaunchConfig struct {
	Origin LaunchOrigin `yaml:"origin"`

	// Probability 每帧自动发射的概率（1 表示每帧都尝试）
	Probability float64 `yaml:"probability"`

	// MaxActive 自动发射的上限（0 = 不限制），点击发射不受限制
	MaxActive int `yaml:"maxActive"`

	// ClickSetsTarget 点击坐标作为目标点（否则作为发射 X 坐标）
	ClickSetsTarget bool `yaml:"clickSetsTarget"`
}

// ProjectileConfig 发射体配置
type ProjectileConfig struct {
	Trigger Trigger `yaml:"trigger"`

	// Altitude TriggerAltitude 的高度比例（y < height*Altitude 时爆炸）
	Altitude float64 `yaml:"altitude"`

	// Speed/Acceleration 用于 TriggerTarget：初速度和每帧速度乘数
	Speed        float64 `yaml:"speed"`
	Acceleration float64 `yaml:"acceleration"`

	// SpeedMin/SpeedMax 竖直上升初速度范围
	SpeedMin float64 `yaml:"speedMin"`
	SpeedMax float64 `yaml:"speedMax"`
	Gravity  float64 `yaml:"gravity"`

	SizeMin float64 `yaml:"sizeMin"`
	SizeMax float64 `yaml:"sizeMax"`

	// TrailLength 轨迹历史点数量（0 = 无轨迹）
	TrailLength int `yaml:"trailLength"`
}

// BurstConfig 爆炸火花配置
type BurstConfig struct {
	// Count 固定火花数量；Jitter > 0 时实际数量为 Count + rand(Jitter)
	Count  int `yaml:"count"`
	Jitter int `yaml:"jitter"`

	ColorMode    ColorMode    `yaml:"colorMode"`
	VelocityMode VelocityMode `yaml:"velocityMode"`

	SpeedMin float64 `yaml:"speedMin"`
	SpeedMax float64 `yaml:"speedMax"`
	SizeMin  float64 `yaml:"sizeMin"`
	SizeMax  float64 `yaml:"sizeMax"`

	Gravity  float64 `yaml:"gravity"`
	Drift    float64 `yaml:"drift"`
	Friction float64 `yaml:"friction"`

	DecayMin float64 `yaml:"decayMin"`
	DecayMax float64 `yaml:"decayMax"`
	Cutoff   Cutoff  `yaml:"cutoff"`

	TrailLength int  `yaml:"trailLength"`
	Glow        bool `yaml:"glow"`
}

// WaterConfig 水面配置
type WaterConfig struct {
	Enabled bool `yaml:"enabled"`

	// Level 水面 Y 坐标占画布高度的比例
	Level float64 `yaml:"level"`

	Waves      bool    `yaml:"waves"`
	WaveHeight float64 `yaml:"waveHeight"`
	WaveLength float64 `yaml:"waveLength"`
	WaveSpeed  float64 `yaml:"waveSpeed"`

	// Refraction 在月亮下方绘制波光柱
	Refraction bool `yaml:"refraction"`
}

// MoonConfig 月亮配置（坐标为画布比例）
type MoonConfig struct {
	Enabled bool    `yaml:"enabled"`
	X       float64 `yaml:"x"`
	Y       float64 `yaml:"y"`
	Radius  float64 `yaml:"radius"`
}

// CloudConfig 云朵配置
type CloudConfig struct {
	Count    int     `yaml:"count"`
	WidthMin float64 `yaml:"widthMin"`
	WidthMax float64 `yaml:"widthMax"`
	SpeedMin float64 `yaml:"speedMin"`
	SpeedMax float64 `yaml:"speedMax"`

	// Bob 云朵上下浮动的最大幅度（像素）
	Bob float64 `yaml:"bob"`
}

// ParseProfiles 解析 YAML 格式的预设集合并验证
func ParseProfiles(data []byte) (*ProfileSet, error) {
	var set ProfileSet
	if err := yaml.Unmarshal(data, &set); err != nil {
		return nil, fmt.Errorf("failed to parse profiles: %w", err)
	}

	for i := range set.Profiles {
		if len(set.Profiles[i].Palette) == 0 {
			set.Profiles[i].Palette = set.Palette
		}
	}

	if err := set.Validate(); err != nil {
		return nil, err
	}

	return &set, nil
}

// LoadProfiles 从磁盘加载预设文件
func LoadProfiles(path string) (*ProfileSet, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read profiles %s: %w", path, err)
	}
	return ParseProfiles(data)
}

// LoadBuiltinProfiles 加载编译进二进制的预设
func LoadBuiltinProfiles() (*ProfileSet, error) {
	data, err := embedded.ReadFile(embedded.ProfilesPath)
	if err != nil {
		return nil, fmt.Errorf("failed to read builtin profiles: %w", err)
	}
	return ParseProfiles(data)
}

// Get 按 ID 返回预设副本；id 为空时返回默认预设
func (s *ProfileSet) Get(id string) (*Profile, error) {
	if id == "" {
		id = s.Default
	}
	for i := range s.Profiles {
		if s.Profiles[i].ID == id {
			p := s.Profiles[i]
			return &p, nil
		}
	}
	return nil, fmt.Errorf("%w: %q", ErrUnknownProfile, id)
}

// IDs 按文件顺序返回所有预设ID
func (s *ProfileSet) IDs() []string {
	ids := make([]string, 0, len(s.Profiles))
	for _, p := range s.Profiles {
		ids = append(ids, p.ID)
	}
	return ids
}

// Validate 验证预设集合
func (s *ProfileSet) Validate() error {
	if len(s.Profiles) == 0 {
		return fmt.Errorf("%w: no profiles defined", ErrInvalidProfile)
	}

	seen := make(map[string]bool, len(s.Profiles))
	for i := range s.Profiles {
		p := &s.Profiles[i]
		if seen[p.ID] {
			return fmt.Errorf("%w: duplicate id %q", ErrInvalidProfile, p.ID)
		}
		seen[p.ID] = true

		if err := p.Validate(); err != nil {
			return err
		}
	}

	if s.Default != "" && !seen[s.Default] {
		return fmt.Errorf("%w: default %q is not defined", ErrInvalidProfile, s.Default)
	}

	return nil
}

// Validate 验证单个预设
func (p *Profile) Validate() error {
	fail := func(format string, args ...any) error {
		return fmt.Errorf("%w: %s: %s", ErrInvalidProfile, p.ID, fmt.Sprintf(format, args...))
	}

	if p.ID == "" {
		return fmt.Errorf("%w: profile without id", ErrInvalidProfile)
	}

	switch p.Background.Mode {
	case BackgroundClear:
	case BackgroundFade:
		if p.Background.FadeAlpha <= 0 || p.Background.FadeAlpha > 1 {
			return fail("fadeAlpha must be in (0, 1], got %v", p.Background.FadeAlpha)
		}
	default:
		return fail("unknown background mode %q", p.Background.Mode)
	}

	switch p.Launch.Origin {
	case OriginRandom, OriginCenter:
	default:
		return fail("unknown launch origin %q", p.Launch.Origin)
	}
	if p.Launch.Probability < 0 || p.Launch.Probability > 1 {
		return fail("launch probability must be in [0, 1], got %v", p.Launch.Probability)
	}
	if p.Launch.MaxActive < 0 {
		return fail("maxActive must not be negative")
	}

	switch p.Projectile.Trigger {
	case TriggerApex:
		if p.Projectile.Gravity <= 0 {
			return fail("apex trigger needs a positive gravity")
		}
	case TriggerAltitude:
		if p.Projectile.Altitude <= 0 || p.Projectile.Altitude >= 1 {
			return fail("altitude must be in (0, 1), got %v", p.Projectile.Altitude)
		}
	case TriggerTarget:
		if p.Projectile.Speed <= 0 || p.Projectile.Acceleration < 1 {
			return fail("target trigger needs speed > 0 and acceleration >= 1")
		}
	default:
		return fail("unknown trigger %q", p.Projectile.Trigger)
	}
	if p.Projectile.Trigger != TriggerTarget && (p.Projectile.SpeedMin <= 0 || p.Projectile.SpeedMax < p.Projectile.SpeedMin) {
		return fail("invalid projectile speed range [%v, %v]", p.Projectile.SpeedMin, p.Projectile.SpeedMax)
	}

	b := p.Burst
	if b.Count <= 0 || b.Jitter < 0 {
		return fail("burst count must be positive and jitter non-negative")
	}
	switch b.ColorMode {
	case ColorProjectile, ColorHue:
	default:
		return fail("unknown color mode %q", b.ColorMode)
	}
	switch b.VelocityMode {
	case VelocityBox, VelocityPolar:
	default:
		return fail("unknown velocity mode %q", b.VelocityMode)
	}
	switch b.Cutoff {
	case CutoffZero, CutoffDecay:
	default:
		return fail("unknown cutoff %q", b.Cutoff)
	}
	if b.DecayMin <= 0 || b.DecayMax < b.DecayMin {
		return fail("decay range must be positive, got [%v, %v]", b.DecayMin, b.DecayMax)
	}
	if b.Friction <= 0 || b.Friction > 1 {
		return fail("friction must be in (0, 1], got %v", b.Friction)
	}

	if p.Water.Enabled {
		if p.Water.Level <= 0 || p.Water.Level >= 1 {
			return fail("water level must be in (0, 1), got %v", p.Water.Level)
		}
		if p.Water.Waves && p.Water.WaveLength <= 0 {
			return fail("waveLength must be positive")
		}
	}
	if p.Water.Refraction && !p.Moon.Enabled {
		return fail("refraction needs a moon")
	}

	if p.Clouds.Count < 0 || p.Clouds.WidthMax < p.Clouds.WidthMin {
		return fail("invalid cloud settings")
	}

	if len(p.Palette) == 0 && b.ColorMode == ColorProjectile {
		return fail("projectile color mode needs a palette")
	}

	return nil
}
