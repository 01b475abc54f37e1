package application

import (
	"context"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/wyfcoding/optionpricing/internal/pricing/domain"
)

// GetGreeks 返回 Black-Scholes 希腊字母
func TestGetGreeks(t *testing.T) {
	svc := NewPricingQueryService(&fakeRepository{})

	greeks, err := svc.GetGreeks(context.Background(), GreeksQuery{
		Symbol:          "AAPL-C-100",
		OptionType:      "CALL",
		StrikePrice:     100,
		ExpiryDate:      expiryInOneYear(),
		UnderlyingPrice: 100,
		Volatility:      0.2,
		RiskFreeRate:    0.05,
	})
	require.NoError(t, err)

	assert.InDelta(t, 0.6368, greeks.Delta.InexactFloat64(), 0.01)
	assert.Greater(t, greeks.Gamma.InexactFloat64(), 0.0)
	assert.Greater(t, greeks.Vega.InexactFloat64(), 0.0)
}

// 已到期合约希腊字母全零
func TestGetGreeksExpiredContract(t *testing.T) {
	svc := NewPricingQueryService(&fakeRepository{})

	greeks, err := svc.GetGreeks(context.Background(), GreeksQuery{
		Symbol:          "AAPL-C-100",
		OptionType:      "CALL",
		StrikePrice:     100,
		ExpiryDate:      time.Now().Add(-time.Hour).UnixMilli(),
		UnderlyingPrice: 100,
		Volatility:      0.2,
	})
	require.NoError(t, err)
	assert.True(t, greeks.Delta.IsZero())
	assert.True(t, greeks.Gamma.IsZero())
}

// 查询委托给仓储，limit 越界时取默认值
func TestGetResultQueries(t *testing.T) {
	repo := &fakeRepository{}
	svc := NewPricingQueryService(repo)
	ctx := context.Background()

	for i := 0; i < 3; i++ {
		require.NoError(t, repo.Save(ctx, &domain.PricingResult{
			Symbol:      "SPY-P-40",
			OptionPrice: decimal.NewFromInt(int64(i + 1)),
		}))
	}

	latest, err := svc.GetLatestResult(ctx, "SPY-P-40")
	require.NoError(t, err)
	require.NotNil(t, latest)
	assert.Equal(t, int64(3), latest.OptionPrice.IntPart())

	history, err := svc.GetResultHistory(ctx, "SPY-P-40", -1)
	require.NoError(t, err)
	assert.Len(t, history, 3)

	missing, err := svc.GetLatestResult(ctx, "UNKNOWN")
	require.NoError(t, err)
	assert.Nil(t, missing)
}
