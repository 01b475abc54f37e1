package domain

import (
	"math"
	"math/rand/v2"
)

// GBMSimulator 几何布朗运动路径模拟器
// 在任意严格递增的时间网格上生成价格矩阵（行=时间步，列=路径），
// 种子固定时输出完全可复现
type GBMSimulator struct {
	Spot  float64 // 初始价格
	Drift float64 // 漂移（风险中性测度下取无风险利率）
	Sigma float64 // 波动率
	Seed  uint64
}

// Simulate 生成 len(t) × paths 的价格矩阵
func (g *GBMSimulator) Simulate(t []float64, paths int) ([][]float64, error) {
	if len(t) < 2 {
		return nil, newShapeError("time grid must contain at least 2 points, got %d", len(t))
	}
	for j := 1; j < len(t); j++ {
		if t[j] <= t[j-1] {
			return nil, newShapeError("time grid must be strictly increasing at index %d", j)
		}
	}
	if paths <= 0 {
		return nil, newShapeError("number of paths must be positive, got %d", paths)
	}
	if g.Spot <= 0 {
		return nil, newShapeError("spot must be positive, got %v", g.Spot)
	}
	if g.Sigma < 0 {
		return nil, newShapeError("volatility must be non-negative, got %v", g.Sigma)
	}

	rng := rand.New(rand.NewPCG(g.Seed, 0))

	X := make([][]float64, len(t))
	X[0] = make([]float64, paths)
	for n := range X[0] {
		X[0][n] = g.Spot
	}
	for j := 1; j < len(t); j++ {
		dt := t[j] - t[j-1]
		driftTerm := (g.Drift - 0.5*g.Sigma*g.Sigma) * dt
		volTerm := g.Sigma * math.Sqrt(dt)

		X[j] = make([]float64, paths)
		for n := 0; n < paths; n++ {
			z := rng.NormFloat64()
			X[j][n] = X[j-1][n] * math.Exp(driftTerm+volTerm*z)
		}
	}
	return X, nil
}
