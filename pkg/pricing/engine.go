package pricing

import "errors"

// ErrArithmeticOverflow rejects a single computation whose intermediate or
// final value does not fit in int64. The operation fails loudly; silent
// wrapping would corrupt settlement amounts.
var ErrArithmeticOverflow = errors.New("arithmetic overflow in price computation")

// ComputeUnitPrice evaluates alpha*culturalValue + beta*accessCount +
// gamma*marketValue with checked arithmetic. A computed price of zero is
// clamped to 1: access is never free, one smallest currency unit is the
// deliberate floor.
func ComputeUnitPrice(culturalValue, accessCount, marketValue int64, w Weights) (int64, error) {
	cultural, err := mulInt64(w.Alpha, culturalValue)
	if err != nil {
		return 0, err
	}
	usage, err := mulInt64(w.Beta, accessCount)
	if err != nil {
		return 0, err
	}
	market, err := mulInt64(w.Gamma, marketValue)
	if err != nil {
		return 0, err
	}

	sum, err := addInt64(cultural, usage)
	if err != nil {
		return 0, err
	}
	price, err := addInt64(sum, market)
	if err != nil {
		return 0, err
	}

	if price == 0 {
		price = 1
	}
	return price, nil
}

// TotalCost is the checked unitPrice*amount used by settlement.
func TotalCost(unitPrice, amount int64) (int64, error) {
	return mulInt64(unitPrice, amount)
}

// mulInt64 multiplies two non-negative int64 values, failing on overflow.
func mulInt64(a, b int64) (int64, error) {
	if a == 0 || b == 0 {
		return 0, nil
	}
	product := a * b
	if product/b != a {
		return 0, ErrArithmeticOverflow
	}
	return product, nil
}

// addInt64 adds two non-negative int64 values, failing on overflow.
func addInt64(a, b int64) (int64, error) {
	sum := a + b
	if sum < a {
		return 0, ErrArithmeticOverflow
	}
	return sum, nil
}
