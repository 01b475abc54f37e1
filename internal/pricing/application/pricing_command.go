package application

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/wyfcoding/optionpricing/internal/pricing/domain"
	"github.com/wyfcoding/optionpricing/pkg/logger"
	"github.com/wyfcoding/optionpricing/pkg/metrics"
)

// ErrOptionExpired 合约已到期，无法定价
var ErrOptionExpired = errors.New("option already expired")

// PricingCommandService 处理定价相关的命令操作
type PricingCommandService struct {
	repo      domain.PricingRepository
	publisher domain.EventPublisher
	metrics   *metrics.Metrics
	defaults  PricingDefaults
}

// NewPricingCommandService 创建新的 PricingCommandService 实例
func NewPricingCommandService(repo domain.PricingRepository, publisher domain.EventPublisher, m *metrics.Metrics, defaults PricingDefaults) *PricingCommandService {
	return &PricingCommandService{
		repo:      repo,
		publisher: publisher,
		metrics:   m,
		defaults:  defaults,
	}
}

// PriceOption 期权定价
// 按命令指定的模型计算价格，保存结果并发布领域事件
func (c *PricingCommandService) PriceOption(ctx context.Context, cmd PriceOptionCommand) (*domain.PricingResult, error) {
	if cmd.Symbol == "" {
		return nil, errors.New("symbol is required")
	}
	if cmd.PricingModel == "" {
		cmd.PricingModel = domain.ModelBlackScholes
	}
	optionType := domain.OptionType(cmd.OptionType)
	if !optionType.Valid() {
		return nil, domain.ErrInvalidOptionType
	}

	timeToExpiry := float64(cmd.ExpiryDate-time.Now().UnixMilli()) / 1000 / 24 / 3600 / 365
	if timeToExpiry <= 0 {
		return nil, ErrOptionExpired
	}

	start := time.Now()
	result, err := c.calculate(cmd, optionType, timeToExpiry)
	if c.metrics != nil {
		c.metrics.PricingsTotal.WithLabelValues(cmd.PricingModel).Inc()
		c.metrics.PricingDuration.WithLabelValues(cmd.PricingModel).Observe(time.Since(start).Seconds())
	}
	if err != nil {
		if c.metrics != nil {
			c.metrics.PricingErrorsTotal.WithLabelValues(cmd.PricingModel).Inc()
		}
		c.publishError(ctx, cmd, optionType, err)
		return nil, err
	}

	if saveErr := c.repo.WithTx(ctx, func(txCtx context.Context) error {
		return c.repo.Save(txCtx, result)
	}); saveErr != nil {
		return nil, saveErr
	}

	if c.publisher != nil {
		event := domain.OptionPricedEvent{
			Symbol:          cmd.Symbol,
			OptionType:      optionType,
			StrikePrice:     cmd.StrikePrice,
			ExpiryDate:      cmd.ExpiryDate,
			OptionPrice:     result.OptionPrice.InexactFloat64(),
			StandardError:   result.StandardError.InexactFloat64(),
			UnderlyingPrice: cmd.UnderlyingPrice,
			Volatility:      cmd.Volatility,
			RiskFreeRate:    cmd.RiskFreeRate,
			PricingModel:    result.PricingModel,
			NumPaths:        result.NumPaths,
			NumSteps:        result.NumSteps,
			CalculatedAt:    result.CalculatedAt,
			OccurredOn:      time.Now(),
		}
		if pubErr := c.publisher.PublishOptionPriced(event); pubErr != nil {
			logger.Warn(ctx, "publish option priced event failed", "symbol", cmd.Symbol, "error", pubErr)
		}

		// 仅 Black-Scholes 分支产出完整希腊字母
		if result.PricingModel == domain.ModelBlackScholes {
			greeksEvent := domain.GreeksCalculatedEvent{
				Symbol:          cmd.Symbol,
				OptionType:      optionType,
				StrikePrice:     cmd.StrikePrice,
				ExpiryDate:      cmd.ExpiryDate,
				UnderlyingPrice: cmd.UnderlyingPrice,
				Delta:           result.Delta.InexactFloat64(),
				Gamma:           result.Gamma.InexactFloat64(),
				Theta:           result.Theta.InexactFloat64(),
				Vega:            result.Vega.InexactFloat64(),
				Rho:             result.Rho.InexactFloat64(),
				CalculatedAt:    result.CalculatedAt,
				OccurredOn:      time.Now(),
			}
			if pubErr := c.publisher.PublishGreeksCalculated(greeksEvent); pubErr != nil {
				logger.Warn(ctx, "publish greeks calculated event failed", "symbol", cmd.Symbol, "error", pubErr)
			}
		}
	}

	return result, nil
}

// calculate 按模型分派具体定价计算
func (c *PricingCommandService) calculate(cmd PriceOptionCommand, optionType domain.OptionType, timeToExpiry float64) (*domain.PricingResult, error) {
	result := &domain.PricingResult{
		Symbol:          cmd.Symbol,
		UnderlyingPrice: decimal.NewFromFloat(cmd.UnderlyingPrice),
		PricingModel:    cmd.PricingModel,
		CalculatedAt:    time.Now().Unix(),
	}

	switch cmd.PricingModel {
	case domain.ModelLongstaffSchwartz:
		params := domain.AmericanOptionParams{
			S0:     cmd.UnderlyingPrice,
			K:      cmd.StrikePrice,
			T:      timeToExpiry,
			R:      cmd.RiskFreeRate,
			Sigma:  cmd.Volatility,
			Type:   optionType,
			Paths:  cmd.NumPaths,
			Steps:  cmd.NumSteps,
			Degree: cmd.Degree,
			Basis:  cmd.Basis,
			Seed:   cmd.Seed,
		}
		if params.Paths <= 0 {
			params.Paths = c.defaults.Paths
		}
		if params.Steps <= 0 {
			params.Steps = c.defaults.Steps
		}
		if params.Degree <= 0 {
			params.Degree = c.defaults.Degree
		}
		if params.Basis == "" {
			params.Basis = c.defaults.Basis
		}
		if params.Seed == 0 {
			params.Seed = c.defaults.Seed
		}

		lsm, err := domain.NewLSMPricer().Price(params)
		if err != nil {
			return nil, err
		}
		if c.metrics != nil {
			c.metrics.SimulatedPaths.Observe(float64(params.Paths))
		}
		result.OptionPrice = decimal.NewFromFloat(lsm.Price)
		result.StandardError = decimal.NewFromFloat(lsm.StdError)
		result.NumPaths = params.Paths
		result.NumSteps = params.Steps

	case domain.ModelBinomialTree:
		steps := cmd.NumSteps
		if steps <= 0 {
			steps = c.defaults.Steps
		}
		tree, err := domain.CalculateBinomial(optionType, domain.StyleAmerican, domain.BinomialInput{
			S:     cmd.UnderlyingPrice,
			K:     cmd.StrikePrice,
			T:     timeToExpiry,
			R:     cmd.RiskFreeRate,
			V:     cmd.Volatility,
			Steps: steps,
		})
		if err != nil {
			return nil, err
		}
		result.OptionPrice = decimal.NewFromFloat(tree.Price)
		result.Delta = decimal.NewFromFloat(tree.Delta)
		result.NumSteps = steps

	case domain.ModelBlackScholes:
		bs, err := domain.CalculateBlackScholes(optionType, domain.BlackScholesInput{
			S: cmd.UnderlyingPrice,
			K: cmd.StrikePrice,
			T: timeToExpiry,
			R: cmd.RiskFreeRate,
			V: cmd.Volatility,
		})
		if err != nil {
			return nil, err
		}
		result.OptionPrice = bs.Price
		result.Delta = bs.Delta
		result.Gamma = bs.Gamma
		result.Theta = bs.Theta
		result.Vega = bs.Vega
		result.Rho = bs.Rho

	default:
		return nil, errors.New("unknown pricing model: " + cmd.PricingModel)
	}

	return result, nil
}

// BatchPriceOptions 批量定价
func (c *PricingCommandService) BatchPriceOptions(ctx context.Context, cmd BatchPriceOptionsCommand) (*BatchPricingResult, error) {
	if cmd.BatchID == "" {
		cmd.BatchID = uuid.NewString()
	}

	results := make([]*domain.PricingResult, 0, len(cmd.Contracts))
	successCount := 0
	failureCount := 0

	for _, contract := range cmd.Contracts {
		result, err := c.PriceOption(ctx, contract)
		if err != nil {
			logger.Warn(ctx, "batch pricing contract failed", "batch_id", cmd.BatchID, "symbol", contract.Symbol, "error", err)
			failureCount++
			continue
		}
		results = append(results, result)
		successCount++
	}

	if c.publisher != nil {
		event := domain.BatchPricingCompletedEvent{
			BatchID:        cmd.BatchID,
			Symbols:        extractSymbols(cmd.Contracts),
			TotalContracts: len(cmd.Contracts),
			SuccessCount:   successCount,
			FailureCount:   failureCount,
			CompletedAt:    time.Now().Unix(),
			OccurredOn:     time.Now(),
		}
		if err := c.publisher.PublishBatchPricingCompleted(event); err != nil {
			logger.Warn(ctx, "publish batch pricing event failed", "batch_id", cmd.BatchID, "error", err)
		}
	}

	return &BatchPricingResult{
		BatchID:      cmd.BatchID,
		Results:      results,
		SuccessCount: successCount,
		FailureCount: failureCount,
	}, nil
}

func (c *PricingCommandService) publishError(ctx context.Context, cmd PriceOptionCommand, optionType domain.OptionType, cause error) {
	if c.publisher == nil {
		return
	}

	errorCode := "PRICING_FAILED"
	var shapeErr *domain.ShapeError
	var degenerateErr *domain.DegenerateRegressionError
	switch {
	case errors.As(cause, &shapeErr):
		errorCode = "INVALID_INPUT"
	case errors.As(cause, &degenerateErr):
		errorCode = "DEGENERATE_REGRESSION"
	}

	event := domain.PricingErrorEvent{
		Symbol:      cmd.Symbol,
		OptionType:  optionType,
		StrikePrice: cmd.StrikePrice,
		ExpiryDate:  cmd.ExpiryDate,
		Error:       cause.Error(),
		ErrorCode:   errorCode,
		OccurredAt:  time.Now().Unix(),
		OccurredOn:  time.Now(),
	}
	if err := c.publisher.PublishPricingError(event); err != nil {
		logger.Warn(ctx, "publish pricing error event failed", "symbol", cmd.Symbol, "error", err)
	}
}

// 辅助函数：提取合约符号
func extractSymbols(contracts []PriceOptionCommand) []string {
	symbols := make([]string, 0, len(contracts))
	seen := make(map[string]bool)

	for _, contract := range contracts {
		if !seen[contract.Symbol] {
			symbols = append(symbols, contract.Symbol)
			seen[contract.Symbol] = true
		}
	}

	return symbols
}
