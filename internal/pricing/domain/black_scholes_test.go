package domain

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// 标准参数下的解析参考值
func TestBlackScholesReferenceValues(t *testing.T) {
	input := BlackScholesInput{S: 100, K: 100, T: 1, R: 0.05, V: 0.2}

	call, err := CalculateBlackScholes(OptionTypeCall, input)
	require.NoError(t, err)
	assert.InDelta(t, 10.450583572185565, call.Price.InexactFloat64(), 1e-9)
	assert.InDelta(t, 0.6368306511756191, call.Delta.InexactFloat64(), 1e-9)

	put, err := CalculateBlackScholes(OptionTypePut, input)
	require.NoError(t, err)
	assert.InDelta(t, 5.573526022256971, put.Price.InexactFloat64(), 1e-9)
	assert.InDelta(t, call.Delta.InexactFloat64()-1, put.Delta.InexactFloat64(), 1e-9)

	// Gamma 和 Vega 与期权方向无关
	assert.InDelta(t, call.Gamma.InexactFloat64(), put.Gamma.InexactFloat64(), 1e-9)
	assert.InDelta(t, call.Vega.InexactFloat64(), put.Vega.InexactFloat64(), 1e-9)
}

// 看涨看跌平价：C - P = S - K·e^(-rT)
func TestBlackScholesPutCallParity(t *testing.T) {
	input := BlackScholesInput{S: 42, K: 40, T: 0.5, R: 0.1, V: 0.2}

	call, err := CalculateBlackScholes(OptionTypeCall, input)
	require.NoError(t, err)
	put, err := CalculateBlackScholes(OptionTypePut, input)
	require.NoError(t, err)

	lhs := call.Price.InexactFloat64() - put.Price.InexactFloat64()
	rhs := input.S - input.K*math.Exp(-input.R*input.T)
	assert.InDelta(t, rhs, lhs, 1e-9)
}

// 非法输入
func TestBlackScholesInvalidInputs(t *testing.T) {
	_, err := CalculateBlackScholes(OptionType("BUTTERFLY"), BlackScholesInput{S: 100, K: 100, T: 1, R: 0.05, V: 0.2})
	assert.ErrorIs(t, err, ErrInvalidOptionType)

	var shapeErr *ShapeError
	_, err = CalculateBlackScholes(OptionTypeCall, BlackScholesInput{S: 100, K: 100, T: 0, R: 0.05, V: 0.2})
	assert.ErrorAs(t, err, &shapeErr)
}
