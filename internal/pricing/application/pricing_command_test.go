package application

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/wyfcoding/optionpricing/internal/pricing/domain"
)

// fakeRepository 内存仓储
type fakeRepository struct {
	saved []*domain.PricingResult
}

func (r *fakeRepository) WithTx(ctx context.Context, fn func(ctx context.Context) error) error {
	return fn(ctx)
}

func (r *fakeRepository) Save(ctx context.Context, result *domain.PricingResult) error {
	r.saved = append(r.saved, result)
	return nil
}

func (r *fakeRepository) GetLatest(ctx context.Context, symbol string) (*domain.PricingResult, error) {
	for i := len(r.saved) - 1; i >= 0; i-- {
		if r.saved[i].Symbol == symbol {
			return r.saved[i], nil
		}
	}
	return nil, nil
}

func (r *fakeRepository) GetHistory(ctx context.Context, symbol string, limit int) ([]*domain.PricingResult, error) {
	var out []*domain.PricingResult
	for i := len(r.saved) - 1; i >= 0 && len(out) < limit; i-- {
		if r.saved[i].Symbol == symbol {
			out = append(out, r.saved[i])
		}
	}
	return out, nil
}

// fakePublisher 记录发布的事件
type fakePublisher struct {
	priced    []domain.OptionPricedEvent
	greeks    []domain.GreeksCalculatedEvent
	errors    []domain.PricingErrorEvent
	completed []domain.BatchPricingCompletedEvent
}

func (p *fakePublisher) PublishOptionPriced(event domain.OptionPricedEvent) error {
	p.priced = append(p.priced, event)
	return nil
}

func (p *fakePublisher) PublishGreeksCalculated(event domain.GreeksCalculatedEvent) error {
	p.greeks = append(p.greeks, event)
	return nil
}

func (p *fakePublisher) PublishPricingError(event domain.PricingErrorEvent) error {
	p.errors = append(p.errors, event)
	return nil
}

func (p *fakePublisher) PublishBatchPricingCompleted(event domain.BatchPricingCompletedEvent) error {
	p.completed = append(p.completed, event)
	return nil
}

func newTestService() (*PricingCommandService, *fakeRepository, *fakePublisher) {
	repo := &fakeRepository{}
	publisher := &fakePublisher{}
	svc := NewPricingCommandService(repo, publisher, nil, PricingDefaults{
		Paths: 2000, Steps: 25, Degree: 3, Basis: "poly", Seed: 5,
	})
	return svc, repo, publisher
}

func expiryInOneYear() int64 {
	return time.Now().Add(365 * 24 * time.Hour).UnixMilli()
}

// Black-Scholes 定价：保存结果并发布事件
func TestPriceOptionBlackScholes(t *testing.T) {
	svc, repo, publisher := newTestService()

	result, err := svc.PriceOption(context.Background(), PriceOptionCommand{
		Symbol:          "AAPL-C-100",
		OptionType:      "CALL",
		StrikePrice:     100,
		ExpiryDate:      expiryInOneYear(),
		UnderlyingPrice: 100,
		Volatility:      0.2,
		RiskFreeRate:    0.05,
	})
	require.NoError(t, err)

	assert.Equal(t, domain.ModelBlackScholes, result.PricingModel)
	assert.InDelta(t, 10.45, result.OptionPrice.InexactFloat64(), 0.05)
	assert.False(t, result.Delta.IsZero())

	require.Len(t, repo.saved, 1)
	require.Len(t, publisher.priced, 1)
	assert.Equal(t, "AAPL-C-100", publisher.priced[0].Symbol)
	assert.Equal(t, domain.ModelBlackScholes, publisher.priced[0].PricingModel)

	// 希腊字母计算完成事件随定价事件一起发布
	require.Len(t, publisher.greeks, 1)
	assert.Equal(t, "AAPL-C-100", publisher.greeks[0].Symbol)
	assert.InDelta(t, result.Delta.InexactFloat64(), publisher.greeks[0].Delta, 1e-12)
	assert.Greater(t, publisher.greeks[0].Vega, 0.0)
}

// Longstaff-Schwartz 定价：使用服务默认模拟参数
func TestPriceOptionLongstaffSchwartz(t *testing.T) {
	svc, repo, publisher := newTestService()

	result, err := svc.PriceOption(context.Background(), PriceOptionCommand{
		Symbol:          "SPY-P-40",
		OptionType:      "PUT",
		StrikePrice:     40,
		ExpiryDate:      expiryInOneYear(),
		UnderlyingPrice: 36,
		Volatility:      0.2,
		RiskFreeRate:    0.06,
		PricingModel:    domain.ModelLongstaffSchwartz,
	})
	require.NoError(t, err)

	assert.Equal(t, domain.ModelLongstaffSchwartz, result.PricingModel)
	assert.Greater(t, result.OptionPrice.InexactFloat64(), 0.0)
	assert.Greater(t, result.StandardError.InexactFloat64(), 0.0)
	assert.Equal(t, 2000, result.NumPaths)
	assert.Equal(t, 25, result.NumSteps)

	require.Len(t, repo.saved, 1)
	require.Len(t, publisher.priced, 1)
	assert.Equal(t, 2000, publisher.priced[0].NumPaths)
	// 蒙特卡洛分支不产出希腊字母，不发布对应事件
	assert.Empty(t, publisher.greeks)
}

// 二叉树定价
func TestPriceOptionBinomialTree(t *testing.T) {
	svc, _, _ := newTestService()

	result, err := svc.PriceOption(context.Background(), PriceOptionCommand{
		Symbol:          "SPY-P-40",
		OptionType:      "PUT",
		StrikePrice:     40,
		ExpiryDate:      expiryInOneYear(),
		UnderlyingPrice: 36,
		Volatility:      0.2,
		RiskFreeRate:    0.06,
		PricingModel:    domain.ModelBinomialTree,
		NumSteps:        500,
	})
	require.NoError(t, err)

	assert.Equal(t, domain.ModelBinomialTree, result.PricingModel)
	assert.InDelta(t, 4.486, result.OptionPrice.InexactFloat64(), 0.05)
	assert.Less(t, result.Delta.InexactFloat64(), 0.0)
}

// 非法命令：缺符号、未知类型、已到期、未知模型
func TestPriceOptionValidation(t *testing.T) {
	svc, repo, publisher := newTestService()
	ctx := context.Background()

	_, err := svc.PriceOption(ctx, PriceOptionCommand{OptionType: "CALL", StrikePrice: 100, ExpiryDate: expiryInOneYear(), UnderlyingPrice: 100, Volatility: 0.2})
	assert.Error(t, err)

	_, err = svc.PriceOption(ctx, PriceOptionCommand{Symbol: "X", OptionType: "SWAP", StrikePrice: 100, ExpiryDate: expiryInOneYear(), UnderlyingPrice: 100, Volatility: 0.2})
	assert.ErrorIs(t, err, domain.ErrInvalidOptionType)

	_, err = svc.PriceOption(ctx, PriceOptionCommand{Symbol: "X", OptionType: "CALL", StrikePrice: 100, ExpiryDate: time.Now().Add(-time.Hour).UnixMilli(), UnderlyingPrice: 100, Volatility: 0.2})
	assert.ErrorIs(t, err, ErrOptionExpired)

	_, err = svc.PriceOption(ctx, PriceOptionCommand{Symbol: "X", OptionType: "CALL", StrikePrice: 100, ExpiryDate: expiryInOneYear(), UnderlyingPrice: 100, Volatility: 0.2, PricingModel: "TrinomialTree"})
	assert.Error(t, err)

	assert.Empty(t, repo.saved)
	assert.Len(t, publisher.errors, 1) // 仅未知模型会走到计算阶段并发布错误事件
}

// 定价失败时发布错误事件并带错误码
func TestPriceOptionPublishesErrorEvent(t *testing.T) {
	svc, repo, publisher := newTestService()

	// 负波动率触发形状错误
	_, err := svc.PriceOption(context.Background(), PriceOptionCommand{
		Symbol:          "BAD",
		OptionType:      "PUT",
		StrikePrice:     40,
		ExpiryDate:      expiryInOneYear(),
		UnderlyingPrice: 36,
		Volatility:      -0.2,
		RiskFreeRate:    0.06,
	})
	require.Error(t, err)

	assert.Empty(t, repo.saved)
	require.Len(t, publisher.errors, 1)
	assert.Equal(t, "INVALID_INPUT", publisher.errors[0].ErrorCode)
}

// 批量定价：逐合约容错，发布批量完成事件
func TestBatchPriceOptions(t *testing.T) {
	svc, repo, publisher := newTestService()

	good := PriceOptionCommand{
		Symbol: "OK", OptionType: "CALL", StrikePrice: 100,
		ExpiryDate: expiryInOneYear(), UnderlyingPrice: 100, Volatility: 0.2, RiskFreeRate: 0.05,
	}
	bad := PriceOptionCommand{
		Symbol: "BAD", OptionType: "CALL", StrikePrice: 100,
		ExpiryDate: time.Now().Add(-time.Hour).UnixMilli(), UnderlyingPrice: 100, Volatility: 0.2,
	}

	result, err := svc.BatchPriceOptions(context.Background(), BatchPriceOptionsCommand{
		Contracts: []PriceOptionCommand{good, bad, good},
	})
	require.NoError(t, err)

	assert.NotEmpty(t, result.BatchID)
	assert.Equal(t, 2, result.SuccessCount)
	assert.Equal(t, 1, result.FailureCount)
	assert.Len(t, result.Results, 2)
	assert.Len(t, repo.saved, 2)

	require.Len(t, publisher.completed, 1)
	event := publisher.completed[0]
	assert.Equal(t, 3, event.TotalContracts)
	assert.ElementsMatch(t, []string{"OK", "BAD"}, event.Symbols)
}
