package domain

import "context"

// PricingRepository 定价历史仓储接口
type PricingRepository interface {
	// WithTx 在单个数据库事务中执行 fn，事务句柄随 context 传递
	WithTx(ctx context.Context, fn func(ctx context.Context) error) error
	Save(ctx context.Context, result *PricingResult) error
	GetLatest(ctx context.Context, symbol string) (*PricingResult, error)
	GetHistory(ctx context.Context, symbol string, limit int) ([]*PricingResult, error)
}
