package domain

import (
	"time"
)

// AmericanOptionParams 美式期权合约与模拟参数
type AmericanOptionParams struct {
	S0     float64
	K      float64
	T      float64
	R      float64
	Sigma  float64
	Type   OptionType
	Paths  int
	Steps  int
	Degree int
	Basis  string
	Seed   uint64 // 0 表示按当前时间取种子
}

// LSMPricer 封装路径模拟、收益计算与反向归纳的美式期权定价入口
type LSMPricer struct {
	payoff PayoffFunc
}

func NewLSMPricer() *LSMPricer {
	return &LSMPricer{payoff: EuropeanPayoff}
}

// Price 计算美式期权的当前公允价值
func (p *LSMPricer) Price(params AmericanOptionParams) (*LSMResult, error) {
	if !params.Type.Valid() {
		return nil, ErrInvalidOptionType
	}
	if params.T <= 0 {
		return nil, newShapeError("maturity must be positive, got %v", params.T)
	}
	if params.Steps < 1 {
		return nil, newShapeError("number of steps must be positive, got %d", params.Steps)
	}
	if params.Paths < 1 {
		return nil, newShapeError("number of paths must be positive, got %d", params.Paths)
	}

	basis, err := NewBasis(params.Basis, params.Degree)
	if err != nil {
		return nil, err
	}

	seed := params.Seed
	if seed == 0 {
		seed = uint64(time.Now().UnixNano())
	}

	// 等距时间网格 t₀=0 … t_M=T
	t := make([]float64, params.Steps+1)
	dt := params.T / float64(params.Steps)
	for j := 1; j <= params.Steps; j++ {
		t[j] = float64(j) * dt
	}

	sim := &GBMSimulator{
		Spot:  params.S0,
		Drift: params.R,
		Sigma: params.Sigma,
		Seed:  seed,
	}
	X, err := sim.Simulate(t, params.Paths)
	if err != nil {
		return nil, err
	}

	return LongstaffSchwartz(t, X, params.K, params.R, p.payoff, params.Type, basis)
}
