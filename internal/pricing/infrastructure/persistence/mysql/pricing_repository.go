package mysql

import (
	"context"
	"errors"

	"github.com/wyfcoding/optionpricing/internal/pricing/domain"
	"github.com/wyfcoding/optionpricing/pkg/contextx"
	pkgdb "github.com/wyfcoding/optionpricing/pkg/db"
	"gorm.io/gorm"
)

type pricingRepository struct {
	db *pkgdb.DB
}

// NewPricingRepository 创建并返回一个新的 pricingRepository 实例。
func NewPricingRepository(db *pkgdb.DB) domain.PricingRepository {
	return &pricingRepository{db: db}
}

// WithTx 在事务中执行 fn，嵌套仓储调用通过 context 复用同一事务
func (r *pricingRepository) WithTx(ctx context.Context, fn func(ctx context.Context) error) error {
	return r.db.WithTx(ctx, func(tx *gorm.DB) error {
		return fn(contextx.WithTx(ctx, tx))
	})
}

// Save 保存定价结果
func (r *pricingRepository) Save(ctx context.Context, res *domain.PricingResult) error {
	model := toPricingResultModel(res)
	if model == nil {
		return nil
	}
	db := r.getDB(ctx).WithContext(ctx)
	if err := db.Create(model).Error; err != nil {
		return err
	}
	res.ID = model.ID
	res.CreatedAt = model.CreatedAt
	res.UpdatedAt = model.UpdatedAt
	return nil
}

// GetLatest 获取某合约最近一次定价结果，无记录返回 nil
func (r *pricingRepository) GetLatest(ctx context.Context, symbol string) (*domain.PricingResult, error) {
	var m PricingResultModel
	if err := r.getDB(ctx).WithContext(ctx).
		Where("symbol = ?", symbol).
		Order("calculated_at desc").
		First(&m).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return toPricingResult(&m), nil
}

// GetHistory 按时间倒序获取定价历史
func (r *pricingRepository) GetHistory(ctx context.Context, symbol string, limit int) ([]*domain.PricingResult, error) {
	var models []PricingResultModel
	if err := r.getDB(ctx).WithContext(ctx).
		Where("symbol = ?", symbol).
		Order("calculated_at desc").
		Limit(limit).
		Find(&models).Error; err != nil {
		return nil, err
	}
	res := make([]*domain.PricingResult, len(models))
	for i := range models {
		res[i] = toPricingResult(&models[i])
	}
	return res, nil
}

func (r *pricingRepository) getDB(ctx context.Context) *gorm.DB {
	if tx, ok := contextx.GetTx(ctx).(*gorm.DB); ok {
		return tx
	}
	return r.db.DB
}
