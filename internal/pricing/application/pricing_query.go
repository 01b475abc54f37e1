package application

import (
	"context"
	"time"

	"github.com/wyfcoding/optionpricing/internal/pricing/domain"
)

// PricingQueryService 处理所有定价相关的查询操作
type PricingQueryService struct {
	repo domain.PricingRepository
}

// NewPricingQueryService 构造函数
func NewPricingQueryService(repo domain.PricingRepository) *PricingQueryService {
	return &PricingQueryService{repo: repo}
}

// GetGreeks 计算希腊字母
func (q *PricingQueryService) GetGreeks(ctx context.Context, query GreeksQuery) (*domain.Greeks, error) {
	if ctx.Err() != nil {
		return nil, ctx.Err()
	}
	optionType := domain.OptionType(query.OptionType)
	if !optionType.Valid() {
		return nil, domain.ErrInvalidOptionType
	}

	timeToExpiry := float64(query.ExpiryDate-time.Now().UnixMilli()) / 1000 / 24 / 3600 / 365
	if timeToExpiry <= 0 {
		return &domain.Greeks{}, nil
	}

	result, err := domain.CalculateBlackScholes(optionType, domain.BlackScholesInput{
		S: query.UnderlyingPrice,
		K: query.StrikePrice,
		T: timeToExpiry,
		R: query.RiskFreeRate,
		V: query.Volatility,
	})
	if err != nil {
		return nil, err
	}

	return &domain.Greeks{
		Delta: result.Delta,
		Gamma: result.Gamma,
		Theta: result.Theta,
		Vega:  result.Vega,
		Rho:   result.Rho,
	}, nil
}

// GetLatestResult 获取最新定价结果
func (q *PricingQueryService) GetLatestResult(ctx context.Context, symbol string) (*domain.PricingResult, error) {
	return q.repo.GetLatest(ctx, symbol)
}

// GetResultHistory 获取定价历史
func (q *PricingQueryService) GetResultHistory(ctx context.Context, symbol string, limit int) ([]*domain.PricingResult, error) {
	if limit <= 0 || limit > 500 {
		limit = 100
	}
	return q.repo.GetHistory(ctx, symbol, limit)
}
