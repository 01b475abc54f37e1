package domain

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// 欧式二叉树收敛到 Black-Scholes 解析解
func TestBinomialEuropeanConvergesToBlackScholes(t *testing.T) {
	input := BinomialInput{S: 100, K: 100, T: 1, R: 0.05, V: 0.2, Steps: 1000}

	call, err := CalculateBinomial(OptionTypeCall, StyleEuropean, input)
	require.NoError(t, err)
	assert.InDelta(t, 10.450583572185565, call.Price, 0.01)

	put, err := CalculateBinomial(OptionTypePut, StyleEuropean, input)
	require.NoError(t, err)
	assert.InDelta(t, 5.573526022256971, put.Price, 0.01)
}

// 美式看跌价值不低于欧式，且不低于内在价值
func TestBinomialAmericanPutPremium(t *testing.T) {
	input := BinomialInput{S: 36, K: 40, T: 1, R: 0.06, V: 0.2, Steps: 500}

	european, err := CalculateBinomial(OptionTypePut, StyleEuropean, input)
	require.NoError(t, err)
	american, err := CalculateBinomial(OptionTypePut, StyleAmerican, input)
	require.NoError(t, err)

	assert.Greater(t, american.Price, european.Price)
	assert.GreaterOrEqual(t, american.Price, 4.0) // 内在价值 K-S
	// 经典基准：约 4.48
	assert.InDelta(t, 4.486, american.Price, 0.02)
}

// 无分红美式看涨不应提前行权，价格等于欧式
func TestBinomialAmericanCallEqualsEuropean(t *testing.T) {
	input := BinomialInput{S: 100, K: 95, T: 0.5, R: 0.04, V: 0.3, Steps: 400}

	european, err := CalculateBinomial(OptionTypeCall, StyleEuropean, input)
	require.NoError(t, err)
	american, err := CalculateBinomial(OptionTypeCall, StyleAmerican, input)
	require.NoError(t, err)

	assert.InDelta(t, european.Price, american.Price, 1e-9)
}

// Delta 符号：看涨为正，看跌为负
func TestBinomialDeltaSign(t *testing.T) {
	input := BinomialInput{S: 100, K: 100, T: 1, R: 0.05, V: 0.2, Steps: 200}

	call, err := CalculateBinomial(OptionTypeCall, StyleEuropean, input)
	require.NoError(t, err)
	assert.Greater(t, call.Delta, 0.0)

	put, err := CalculateBinomial(OptionTypePut, StyleEuropean, input)
	require.NoError(t, err)
	assert.Less(t, put.Delta, 0.0)
}

// 非法输入
func TestBinomialInvalidInputs(t *testing.T) {
	var shapeErr *ShapeError

	_, err := CalculateBinomial(OptionType("STRADDLE"), StyleAmerican, BinomialInput{S: 100, K: 100, T: 1, R: 0.05, V: 0.2, Steps: 10})
	assert.ErrorIs(t, err, ErrInvalidOptionType)

	_, err = CalculateBinomial(OptionTypeCall, StyleAmerican, BinomialInput{S: 100, K: 100, T: 1, R: 0.05, V: 0.2, Steps: 0})
	assert.ErrorAs(t, err, &shapeErr)

	_, err = CalculateBinomial(OptionTypeCall, StyleAmerican, BinomialInput{S: -100, K: 100, T: 1, R: 0.05, V: 0.2, Steps: 10})
	assert.ErrorAs(t, err, &shapeErr)
}
