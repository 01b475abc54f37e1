package domain

import (
	"fmt"

	"gonum.org/v1/gonum/mat"
)

// BasisStrategy 延续价值回归策略
// Fit 在单一决策日的价内路径截面上做最小二乘拟合，返回基函数系数；
// Predict 用拟合出的系数给出同一截面的延续价值估计。
// 样本数少于基函数个数时 Fit 返回 *DegenerateRegressionError。
type BasisStrategy interface {
	Name() string
	Fit(xs, ys []float64) ([]float64, error)
	Predict(xs []float64, coeffs []float64) []float64
}

// NewBasis 按名称创建回归基
func NewBasis(name string, degree int) (BasisStrategy, error) {
	if degree <= 0 {
		degree = 2
	}
	switch name {
	case "poly", "":
		return &PolynomialBasis{Degree: degree}, nil
	case "laguerre":
		return &LaguerreBasis{Degree: degree}, nil
	default:
		return nil, fmt.Errorf("unknown regression basis: %s", name)
	}
}

// PolynomialBasis 普通多项式基 1, x, x², …
type PolynomialBasis struct {
	Degree int
}

func (b *PolynomialBasis) Name() string { return "poly" }

// Fit 最小二乘拟合多项式系数（升幂排列）
func (b *PolynomialBasis) Fit(xs, ys []float64) ([]float64, error) {
	m := b.Degree + 1
	if len(xs) < m {
		return nil, &DegenerateRegressionError{Samples: len(xs), Required: m}
	}

	// Vandermonde 设计矩阵
	design := mat.NewDense(len(xs), m, nil)
	for i, x := range xs {
		v := 1.0
		for d := 0; d < m; d++ {
			design.Set(i, d, v)
			v *= x
		}
	}
	return leastSquares(design, ys)
}

// Predict 用 Horner 法求多项式值
func (b *PolynomialBasis) Predict(xs []float64, coeffs []float64) []float64 {
	out := make([]float64, len(xs))
	for i, x := range xs {
		v := 0.0
		for d := len(coeffs) - 1; d >= 0; d-- {
			v = v*x + coeffs[d]
		}
		out[i] = v
	}
	return out
}

// LaguerreBasis Laguerre 多项式基 L₀, L₁, …, L_deg
type LaguerreBasis struct {
	Degree int
}

func (b *LaguerreBasis) Name() string { return "laguerre" }

// Fit 最小二乘拟合 Laguerre 基系数
func (b *LaguerreBasis) Fit(xs, ys []float64) ([]float64, error) {
	m := b.Degree + 1
	if len(xs) < m {
		return nil, &DegenerateRegressionError{Samples: len(xs), Required: m}
	}

	design := mat.NewDense(len(xs), m, nil)
	for i, x := range xs {
		for d, l := range laguerreValues(x, b.Degree) {
			design.Set(i, d, l)
		}
	}
	return leastSquares(design, ys)
}

// Predict 求 Laguerre 基函数的线性组合
func (b *LaguerreBasis) Predict(xs []float64, coeffs []float64) []float64 {
	out := make([]float64, len(xs))
	for i, x := range xs {
		v := 0.0
		for d, l := range laguerreValues(x, len(coeffs)-1) {
			v += coeffs[d] * l
		}
		out[i] = v
	}
	return out
}

// laguerreValues 按三项递推计算 L₀(x)…L_deg(x)
// (k+1)·L_{k+1} = (2k+1−x)·L_k − k·L_{k−1}
func laguerreValues(x float64, degree int) []float64 {
	vals := make([]float64, degree+1)
	vals[0] = 1
	if degree >= 1 {
		vals[1] = 1 - x
	}
	for k := 1; k < degree; k++ {
		vals[k+1] = ((float64(2*k+1)-x)*vals[k] - float64(k)*vals[k-1]) / float64(k+1)
	}
	return vals
}

// leastSquares 求超定方程组的最小二乘解
func leastSquares(design *mat.Dense, ys []float64) ([]float64, error) {
	var beta mat.VecDense
	if err := beta.SolveVec(design, mat.NewVecDense(len(ys), ys)); err != nil {
		// 病态矩阵仍给出可用解，奇异矩阵则失败
		if _, ok := err.(mat.Condition); !ok {
			return nil, fmt.Errorf("least squares solve: %w", err)
		}
	}

	coeffs := make([]float64, beta.Len())
	copy(coeffs, beta.RawVector().Data)
	return coeffs, nil
}
