// Package particle 提供火花和发射体共用的随机取值工具。
//
// 所有函数都显式接收 *rand.Rand，场景可以用固定种子复现同一段烟花。
package particle

import (
	"math"
	"math/rand"
)

// RandomInRange returns a random float64 in the range [min, max).
// min >= max 时直接返回 min。
func RandomInRange(rng *rand.Rand, min, max float64) float64 {
	if min >= max {
		return min
	}
	return min + rng.Float64()*(max-min)
}

// RandomIntJitter 返回 base + rand(jitter)，jitter <= 0 时返回 base
func RandomIntJitter(rng *rand.Rand, base, jitter int) int {
	if jitter <= 0 {
		return base
	}
	return base + rng.Intn(jitter)
}

// RandomAngle returns a random angle in radians in [0, 2π).
func RandomAngle(rng *rand.Rand) float64 {
	return rng.Float64() * 2 * math.Pi
}

// BoxVelocity vx, vy 分别在 [-max, max) 内均匀随机
func BoxVelocity(rng *rand.Rand, max float64) (vx, vy float64) {
	vx = rng.Float64()*2*max - max
	vy = rng.Float64()*2*max - max
	return vx, vy
}

// PolarVelocity 随机方向，速度大小在 [min, max) 内
func PolarVelocity(rng *rand.Rand, min, max float64) (vx, vy float64) {
	angle := RandomAngle(rng)
	speed := RandomInRange(rng, min, max)
	return math.Cos(angle) * speed, math.Sin(angle) * speed
}

// Pick 从切片中随机取一个元素，切片为空时返回零值
func Pick[T any](rng *rand.Rand, items []T) T {
	var zero T
	if len(items) == 0 {
		return zero
	}
	return items[rng.Intn(len(items))]
}
