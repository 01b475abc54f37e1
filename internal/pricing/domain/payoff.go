package domain

// PayoffFunc 行权收益函数
// 输入价格矩阵（行=时间步，列=路径）、行权价与期权类型，
// 返回同形状的即时行权收益矩阵，价外为 0
type PayoffFunc func(X [][]float64, strike float64, optionType OptionType) ([][]float64, error)

// EuropeanPayoff 标准看涨/看跌收益
func EuropeanPayoff(X [][]float64, strike float64, optionType OptionType) ([][]float64, error) {
	if !optionType.Valid() {
		return nil, ErrInvalidOptionType
	}

	payoff := make([][]float64, len(X))
	for j, row := range X {
		payoff[j] = make([]float64, len(row))
		for n, s := range row {
			var v float64
			if optionType == OptionTypePut {
				v = strike - s
			} else {
				v = s - strike
			}
			if v > 0 {
				payoff[j][n] = v
			}
		}
	}
	return payoff, nil
}
