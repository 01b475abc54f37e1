package domain

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// 多项式基应精确还原二次函数
func TestPolynomialBasisRecoversQuadratic(t *testing.T) {
	basis := &PolynomialBasis{Degree: 2}
	xs := []float64{1, 2, 3, 4, 5}
	ys := make([]float64, len(xs))
	for i, x := range xs {
		ys[i] = 2 + 3*x - 0.5*x*x
	}

	coeffs, err := basis.Fit(xs, ys)
	require.NoError(t, err)
	require.Len(t, coeffs, 3)
	assert.InDelta(t, 2, coeffs[0], 1e-9)
	assert.InDelta(t, 3, coeffs[1], 1e-9)
	assert.InDelta(t, -0.5, coeffs[2], 1e-9)

	preds := basis.Predict([]float64{1.5, 6}, coeffs)
	assert.InDelta(t, 2+3*1.5-0.5*1.5*1.5, preds[0], 1e-9)
	assert.InDelta(t, 2+3*6-0.5*36, preds[1], 1e-9)
}

// 样本数不足时返回退化回归错误
func TestBasisFitDegenerate(t *testing.T) {
	poly := &PolynomialBasis{Degree: 3}
	_, err := poly.Fit([]float64{1, 2}, []float64{1, 2})
	var degenerateErr *DegenerateRegressionError
	require.ErrorAs(t, err, &degenerateErr)
	assert.Equal(t, 2, degenerateErr.Samples)
	assert.Equal(t, 4, degenerateErr.Required)

	laguerre := &LaguerreBasis{Degree: 2}
	_, err = laguerre.Fit([]float64{1}, []float64{1})
	assert.ErrorAs(t, err, &degenerateErr)
}

// Laguerre 多项式递推值
func TestLaguerreValues(t *testing.T) {
	x := 0.5
	vals := laguerreValues(x, 3)
	require.Len(t, vals, 4)
	assert.InDelta(t, 1, vals[0], 1e-12)
	assert.InDelta(t, 1-x, vals[1], 1e-12)
	assert.InDelta(t, 1-2*x+x*x/2, vals[2], 1e-12)
	assert.InDelta(t, 1-3*x+1.5*x*x-x*x*x/6, vals[3], 1e-12)
}

// Laguerre 基拟合后预测值应逼近训练目标
func TestLaguerreBasisFitPredict(t *testing.T) {
	basis := &LaguerreBasis{Degree: 2}
	xs := []float64{0.5, 1, 1.5, 2, 2.5, 3}
	ys := make([]float64, len(xs))
	for i, x := range xs {
		// 目标本身是 Laguerre 基的线性组合，拟合应无残差
		l := laguerreValues(x, 2)
		ys[i] = 1.5*l[0] - 0.7*l[1] + 0.2*l[2]
	}

	coeffs, err := basis.Fit(xs, ys)
	require.NoError(t, err)
	preds := basis.Predict(xs, coeffs)
	for i := range xs {
		assert.InDelta(t, ys[i], preds[i], 1e-9)
	}
}

// 按名称创建回归基
func TestNewBasis(t *testing.T) {
	b, err := NewBasis("poly", 3)
	require.NoError(t, err)
	assert.Equal(t, "poly", b.Name())

	b, err = NewBasis("laguerre", 2)
	require.NoError(t, err)
	assert.Equal(t, "laguerre", b.Name())

	// 空名称与非正阶数取默认
	b, err = NewBasis("", 0)
	require.NoError(t, err)
	assert.Equal(t, "poly", b.Name())
	assert.Equal(t, 2, b.(*PolynomialBasis).Degree)

	_, err = NewBasis("chebyshev", 2)
	assert.Error(t, err)
}
