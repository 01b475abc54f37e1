package domain

import (
	"math"
)

// BinomialInput 二叉树模型输入
type BinomialInput struct {
	S     float64 // 标的资产价格
	K     float64 // 执行价格
	T     float64 // 到期时间 (年)
	R     float64 // 无风险利率
	V     float64 // 波动率
	Steps int     // 树的层数
}

// BinomialResult 二叉树模型输出
type BinomialResult struct {
	Price float64
	Delta float64
}

// CalculateBinomial Cox-Ross-Rubinstein 二叉树定价
// 美式期权在每个节点比较即时行权收益与持有价值，作为蒙特卡洛结果的基准
func CalculateBinomial(optionType OptionType, style ExerciseStyle, input BinomialInput) (*BinomialResult, error) {
	if !optionType.Valid() {
		return nil, ErrInvalidOptionType
	}
	if input.Steps < 1 {
		return nil, newShapeError("binomial tree needs at least 1 step, got %d", input.Steps)
	}
	if input.S <= 0 || input.K <= 0 || input.T <= 0 || input.V <= 0 {
		return nil, newShapeError("binomial inputs must be positive: S=%v K=%v T=%v V=%v", input.S, input.K, input.T, input.V)
	}

	dt := input.T / float64(input.Steps)
	up := math.Exp(input.V * math.Sqrt(dt))
	down := 1 / up
	disc := math.Exp(-input.R * dt)
	// 风险中性上行概率
	p := (math.Exp(input.R*dt) - down) / (up - down)
	if p <= 0 || p >= 1 {
		return nil, newShapeError("risk-neutral probability %v outside (0,1), reduce dt or volatility mismatch", p)
	}

	intrinsic := func(s float64) float64 {
		var v float64
		if optionType == OptionTypePut {
			v = input.K - s
		} else {
			v = s - input.K
		}
		return math.Max(v, 0)
	}

	// 到期层节点价值
	values := make([]float64, input.Steps+1)
	for i := 0; i <= input.Steps; i++ {
		s := input.S * math.Pow(up, float64(i)) * math.Pow(down, float64(input.Steps-i))
		values[i] = intrinsic(s)
	}

	// 反向归纳折叠到根节点，保留第一层用于 Delta
	var vUp, vDown float64
	for step := input.Steps - 1; step >= 0; step-- {
		for i := 0; i <= step; i++ {
			hold := disc * (p*values[i+1] + (1-p)*values[i])
			if style == StyleAmerican {
				s := input.S * math.Pow(up, float64(i)) * math.Pow(down, float64(step-i))
				hold = math.Max(hold, intrinsic(s))
			}
			values[i] = hold
		}
		if step == 1 {
			vDown, vUp = values[0], values[1]
		}
	}

	result := &BinomialResult{Price: values[0]}
	if input.Steps >= 2 {
		result.Delta = (vUp - vDown) / (input.S*up - input.S*down)
	}
	return result, nil
}
