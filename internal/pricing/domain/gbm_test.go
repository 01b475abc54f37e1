package domain

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// 输出矩阵形状与首行初始化
func TestGBMSimulateShape(t *testing.T) {
	sim := &GBMSimulator{Spot: 100, Drift: 0.05, Sigma: 0.2, Seed: 1}
	grid := []float64{0, 0.25, 0.5, 0.75, 1}

	X, err := sim.Simulate(grid, 50)
	require.NoError(t, err)
	require.Len(t, X, len(grid))
	for _, row := range X {
		assert.Len(t, row, 50)
	}
	for _, s := range X[0] {
		assert.Equal(t, 100.0, s)
	}
	// GBM 价格恒为正
	for _, row := range X {
		for _, s := range row {
			assert.Greater(t, s, 0.0)
		}
	}
}

// 固定种子下路径完全可复现
func TestGBMSimulateDeterministic(t *testing.T) {
	grid := []float64{0, 0.5, 1}
	first, err := (&GBMSimulator{Spot: 50, Drift: 0.03, Sigma: 0.25, Seed: 99}).Simulate(grid, 20)
	require.NoError(t, err)
	second, err := (&GBMSimulator{Spot: 50, Drift: 0.03, Sigma: 0.25, Seed: 99}).Simulate(grid, 20)
	require.NoError(t, err)
	assert.Equal(t, first, second)

	// 不同种子给出不同路径
	third, err := (&GBMSimulator{Spot: 50, Drift: 0.03, Sigma: 0.25, Seed: 100}).Simulate(grid, 20)
	require.NoError(t, err)
	assert.NotEqual(t, first, third)
}

// 非法输入返回形状错误
func TestGBMSimulateInvalidInputs(t *testing.T) {
	var shapeErr *ShapeError

	_, err := (&GBMSimulator{Spot: 100, Sigma: 0.2}).Simulate([]float64{0}, 10)
	assert.ErrorAs(t, err, &shapeErr)

	_, err = (&GBMSimulator{Spot: 100, Sigma: 0.2}).Simulate([]float64{0, 1, 0.5}, 10)
	assert.ErrorAs(t, err, &shapeErr)

	_, err = (&GBMSimulator{Spot: 100, Sigma: 0.2}).Simulate([]float64{0, 1}, 0)
	assert.ErrorAs(t, err, &shapeErr)

	_, err = (&GBMSimulator{Spot: -1, Sigma: 0.2}).Simulate([]float64{0, 1}, 10)
	assert.ErrorAs(t, err, &shapeErr)

	_, err = (&GBMSimulator{Spot: 100, Sigma: -0.2}).Simulate([]float64{0, 1}, 10)
	assert.ErrorAs(t, err, &shapeErr)
}

// 零波动率退化为确定性增长
func TestGBMSimulateZeroVolatility(t *testing.T) {
	sim := &GBMSimulator{Spot: 100, Drift: 0.05, Sigma: 0, Seed: 1}
	X, err := sim.Simulate([]float64{0, 1}, 5)
	require.NoError(t, err)
	for _, s := range X[1] {
		assert.InDelta(t, 100*1.0512710963760241, s, 1e-9) // 100·e^0.05
	}
}
