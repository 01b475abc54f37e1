package domain

import (
	"fmt"
	"math"

	"gonum.org/v1/gonum/stat"
)

// NoExercise 表示路径从未行权的停时哨兵值
const NoExercise = -1

// LSMResult Longstaff-Schwartz 反向归纳的完整输出
// StoppingRule 与 Cashflow 的行 0..M-1 对应决策日 t₁..t_M
type LSMResult struct {
	// 期权现值：各路径折现现金流的均值
	Price float64
	// 蒙特卡洛标准误
	StdError float64
	// 停止规则矩阵 M×N，每列至多一个 true
	StoppingRule [][]bool
	// 现金流矩阵 M×N，仅在停止处非零
	Cashflow [][]float64
	// 每条路径的行权行下标，未行权为 NoExercise
	StoppingTimes []int
	// 每条路径折现到 t₀ 的现金流
	PathwiseValues []float64
}

// LongstaffSchwartz 美式期权的最小二乘蒙特卡洛反向归纳
//
// t 为估值日起的时间网格 t₀<t₁<…<t_M；X 为 (M+1)×N 价格矩阵；
// payoffFn 给出各决策日的即时行权收益；basis 为延续价值回归策略。
// 自到期日反向扫描：每个内部决策日仅用价内路径做截面回归，
// 回归目标为下一决策日现金流折现一步；即时收益严格大于
// 预测延续价值时行权，相等视为继续持有。
func LongstaffSchwartz(t []float64, X [][]float64, strike, rate float64, payoffFn PayoffFunc, optionType OptionType, basis BasisStrategy) (*LSMResult, error) {
	if err := validateInputs(t, X, strike, rate); err != nil {
		return nil, err
	}

	M := len(t) - 1
	N := len(X[0])

	// 单步折现因子 discount[j] = exp(-r·(t_{j+1}-t_j))
	discount := make([]float64, M)
	for j := 0; j < M; j++ {
		discount[j] = math.Exp(-rate * (t[j+1] - t[j]))
	}

	payoff, err := payoffFn(X, strike, optionType)
	if err != nil {
		return nil, err
	}
	if len(payoff) != M+1 {
		return nil, newShapeError("payoff matrix has %d rows, expected %d", len(payoff), M+1)
	}

	stopping := make([][]bool, M)
	cashflow := make([][]float64, M)
	for j := 0; j < M; j++ {
		stopping[j] = make([]bool, N)
		cashflow[j] = make([]float64, N)
	}

	// 到期日：价内必须行权
	for n := 0; n < N; n++ {
		stopping[M-1][n] = payoff[M][n] > 0
		cashflow[M-1][n] = payoff[M][n]
	}

	// 内部决策日反向扫描，j 按价格矩阵行号计
	idx := make([]int, 0, N)
	for j := M - 1; j >= 1; j-- {
		idx = idx[:0]
		for n := 0; n < N; n++ {
			if payoff[j][n] > 0 {
				idx = append(idx, n)
			}
		}

		// 无价内路径则该日无人行权
		if len(idx) > 0 {
			xs := make([]float64, len(idx))
			ys := make([]float64, len(idx))
			for i, n := range idx {
				xs[i] = X[j][n]
				// 回归目标：最近一次敲定的现金流行折现一步
				ys[i] = cashflow[j][n] * discount[j]
			}

			coeffs, err := basis.Fit(xs, ys)
			if err != nil {
				return nil, fmt.Errorf("continuation fit at t=%g: %w", t[j], err)
			}
			continuation := basis.Predict(xs, coeffs)

			for i, n := range idx {
				// 严格大于才行权，打平视为继续持有
				stopping[j-1][n] = payoff[j][n] > continuation[i]
			}
		}

		for n := 0; n < N; n++ {
			if stopping[j-1][n] {
				cashflow[j-1][n] = payoff[j][n]
			}
		}
	}

	// 坍缩到每条路径最早的行权日，清除其后的重复标记
	stoppingTimes := make([]int, N)
	for n := 0; n < N; n++ {
		stoppingTimes[n] = NoExercise
		for j := 0; j < M; j++ {
			if !stopping[j][n] {
				continue
			}
			if stoppingTimes[n] == NoExercise {
				stoppingTimes[n] = j
			} else {
				stopping[j][n] = false
				cashflow[j][n] = 0
			}
		}
	}

	// 从 t₁ 起的累积折现
	cumDiscount := make([]float64, M)
	acc := 1.0
	for j := 0; j < M; j++ {
		acc *= discount[j]
		cumDiscount[j] = acc
	}

	pathwise := make([]float64, N)
	for n := 0; n < N; n++ {
		if j := stoppingTimes[n]; j != NoExercise {
			pathwise[n] = cashflow[j][n] * cumDiscount[j]
		}
	}

	result := &LSMResult{
		Price:          stat.Mean(pathwise, nil),
		StoppingRule:   stopping,
		Cashflow:       cashflow,
		StoppingTimes:  stoppingTimes,
		PathwiseValues: pathwise,
	}
	if N > 1 {
		result.StdError = stat.StdDev(pathwise, nil) / math.Sqrt(float64(N))
	}
	return result, nil
}

// validateInputs 前置条件检查，违反即快速失败
func validateInputs(t []float64, X [][]float64, strike, rate float64) error {
	if len(t) < 2 {
		return newShapeError("time grid must contain at least 2 points, got %d", len(t))
	}
	for j := 1; j < len(t); j++ {
		if !(t[j] > t[j-1]) {
			return newShapeError("time grid must be strictly increasing at index %d", j)
		}
	}
	if len(X) != len(t) {
		return newShapeError("price matrix has %d rows, expected %d", len(X), len(t))
	}
	n := len(X[0])
	if n < 1 {
		return newShapeError("price matrix must contain at least one path")
	}
	for j, row := range X {
		if len(row) != n {
			return newShapeError("price matrix row %d has %d columns, expected %d", j, len(row), n)
		}
	}
	if math.IsNaN(strike) || math.IsInf(strike, 0) {
		return newShapeError("strike must be finite, got %v", strike)
	}
	if math.IsNaN(rate) || math.IsInf(rate, 0) {
		return newShapeError("rate must be finite, got %v", rate)
	}
	return nil
}
