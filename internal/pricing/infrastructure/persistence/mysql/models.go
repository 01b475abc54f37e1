package mysql

import (
	"time"

	"github.com/shopspring/decimal"
	"github.com/wyfcoding/optionpricing/internal/pricing/domain"
)

// PricingResultModel 定价结果数据库模型
type PricingResultModel struct {
	ID              uint      `gorm:"primaryKey;autoIncrement"`
	CreatedAt       time.Time `gorm:"column:created_at"`
	UpdatedAt       time.Time `gorm:"column:updated_at"`
	Symbol          string    `gorm:"column:symbol;type:varchar(32);index;not null"`
	OptionPrice     string    `gorm:"column:option_price;type:decimal(32,18);not null"`
	StandardError   string    `gorm:"column:standard_error;type:decimal(32,18)"`
	UnderlyingPrice string    `gorm:"column:underlying_price;type:decimal(32,18);not null"`
	Delta           string    `gorm:"column:delta;type:decimal(32,18)"`
	Gamma           string    `gorm:"column:gamma;type:decimal(32,18)"`
	Theta           string    `gorm:"column:theta;type:decimal(32,18)"`
	Vega            string    `gorm:"column:vega;type:decimal(32,18)"`
	Rho             string    `gorm:"column:rho;type:decimal(32,18)"`
	PricingModel    string    `gorm:"column:pricing_model;type:varchar(32)"`
	NumPaths        int       `gorm:"column:num_paths;type:int"`
	NumSteps        int       `gorm:"column:num_steps;type:int"`
	CalculatedAt    int64     `gorm:"column:calculated_at;type:bigint;not null;index"`
}

func (PricingResultModel) TableName() string { return "pricing_results" }

// mapping helpers

func toPricingResultModel(res *domain.PricingResult) *PricingResultModel {
	if res == nil {
		return nil
	}
	return &PricingResultModel{
		ID:              res.ID,
		CreatedAt:       res.CreatedAt,
		UpdatedAt:       res.UpdatedAt,
		Symbol:          res.Symbol,
		OptionPrice:     res.OptionPrice.String(),
		StandardError:   res.StandardError.String(),
		UnderlyingPrice: res.UnderlyingPrice.String(),
		Delta:           res.Delta.String(),
		Gamma:           res.Gamma.String(),
		Theta:           res.Theta.String(),
		Vega:            res.Vega.String(),
		Rho:             res.Rho.String(),
		PricingModel:    res.PricingModel,
		NumPaths:        res.NumPaths,
		NumSteps:        res.NumSteps,
		CalculatedAt:    res.CalculatedAt,
	}
}

func toPricingResult(m *PricingResultModel) *domain.PricingResult {
	if m == nil {
		return nil
	}
	opPrice, _ := decimal.NewFromString(m.OptionPrice)
	stdErr, _ := decimal.NewFromString(m.StandardError)
	ulPrice, _ := decimal.NewFromString(m.UnderlyingPrice)
	delta, _ := decimal.NewFromString(m.Delta)
	gamma, _ := decimal.NewFromString(m.Gamma)
	theta, _ := decimal.NewFromString(m.Theta)
	vega, _ := decimal.NewFromString(m.Vega)
	rho, _ := decimal.NewFromString(m.Rho)

	return &domain.PricingResult{
		ID:              m.ID,
		CreatedAt:       m.CreatedAt,
		UpdatedAt:       m.UpdatedAt,
		Symbol:          m.Symbol,
		OptionPrice:     opPrice,
		StandardError:   stdErr,
		UnderlyingPrice: ulPrice,
		Delta:           delta,
		Gamma:           gamma,
		Theta:           theta,
		Vega:            vega,
		Rho:             rho,
		PricingModel:    m.PricingModel,
		NumPaths:        m.NumPaths,
		NumSteps:        m.NumSteps,
		CalculatedAt:    m.CalculatedAt,
	}
}
