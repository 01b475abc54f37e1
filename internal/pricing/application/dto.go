package application

import (
	"github.com/wyfcoding/optionpricing/internal/pricing/domain"
)

// PriceOptionCommand 单个期权定价命令
type PriceOptionCommand struct {
	Symbol          string  `json:"symbol" binding:"required"`
	OptionType      string  `json:"option_type" binding:"required"`
	StrikePrice     float64 `json:"strike_price" binding:"required,gt=0"`
	ExpiryDate      int64   `json:"expiry_date" binding:"required"` // 毫秒时间戳
	UnderlyingPrice float64 `json:"underlying_price" binding:"required,gt=0"`
	Volatility      float64 `json:"volatility" binding:"required,gt=0"`
	RiskFreeRate    float64 `json:"risk_free_rate"`
	PricingModel    string  `json:"pricing_model"`
	// 蒙特卡洛参数，零值使用服务默认
	NumPaths int    `json:"num_paths"`
	NumSteps int    `json:"num_steps"`
	Degree   int    `json:"degree"`
	Basis    string `json:"basis"`
	Seed     uint64 `json:"seed"`
}

// BatchPriceOptionsCommand 批量定价命令
type BatchPriceOptionsCommand struct {
	BatchID   string               `json:"batch_id"`
	Contracts []PriceOptionCommand `json:"contracts" binding:"required,dive"`
}

// BatchPricingResult 批量定价结果
type BatchPricingResult struct {
	BatchID      string                  `json:"batch_id"`
	Results      []*domain.PricingResult `json:"results"`
	SuccessCount int                     `json:"success_count"`
	FailureCount int                     `json:"failure_count"`
}

// GreeksQuery 希腊字母查询
type GreeksQuery struct {
	Symbol          string  `json:"symbol" binding:"required"`
	OptionType      string  `json:"option_type" binding:"required"`
	StrikePrice     float64 `json:"strike_price" binding:"required,gt=0"`
	ExpiryDate      int64   `json:"expiry_date" binding:"required"`
	UnderlyingPrice float64 `json:"underlying_price" binding:"required,gt=0"`
	Volatility      float64 `json:"volatility" binding:"required,gt=0"`
	RiskFreeRate    float64 `json:"risk_free_rate"`
}

// PricingDefaults 蒙特卡洛模拟的服务级默认参数
type PricingDefaults struct {
	Paths  int
	Steps  int
	Degree int
	Basis  string
	Seed   uint64
}
