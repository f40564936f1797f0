package bindings

import (
	"fmt"
	"math/big"
	"strings"
)

var (
	wei = new(big.Int).Exp(big.NewInt(10), big.NewInt(18), nil)
)

// Ether converts a whole ether amount to wei
func Ether(n int64) *big.Int {
	return new(big.Int).Mul(big.NewInt(n), wei)
}

// ParseEther parses a decimal ether amount ("0.1", "2", "1e-3") into wei.
// Amounts with more than 18 decimals are rejected.
func ParseEther(s string) (*big.Int, error) {
	r, ok := new(big.Rat).SetString(strings.TrimSpace(s))
	if !ok {
		return nil, fmt.Errorf("invalid ether amount %q", s)
	}
	if r.Sign() < 0 {
		return nil, fmt.Errorf("negative ether amount %q", s)
	}
	r.Mul(r, new(big.Rat).SetInt(wei))
	if !r.IsInt() {
		return nil, fmt.Errorf("ether amount %q has more than 18 decimals", s)
	}
	return new(big.Int).Set(r.Num()), nil
}

// priceScale matches the on-chain converter, which lifts every answer by 1e10
// whatever decimals the feed reports.
var priceScale = big.NewInt(10_000_000_000)

// FeedPrice returns the feed answer the way PriceConverter.getPrice does
func FeedPrice(answer *big.Int) *big.Int {
	return new(big.Int).Mul(answer, priceScale)
}

// ConversionRate returns the USD value of ethAmount wei, rounded down like getConversionRate
func ConversionRate(ethAmount, answer *big.Int) *big.Int {
	usd := new(big.Int).Mul(FeedPrice(answer), ethAmount)
	return usd.Quo(usd, wei)
}

// MinimumContribution returns the smallest wei amount whose conversion rate is
// at least minUSD, or nil for a non-positive answer.
func MinimumContribution(minUSD, answer *big.Int) *big.Int {
	price := FeedPrice(answer)
	if price.Sign() <= 0 {
		return nil
	}
	num := new(big.Int).Mul(minUSD, wei)
	q, r := new(big.Int).QuoRem(num, price, new(big.Int))
	if r.Sign() != 0 {
		q.Add(q, big.NewInt(1))
	}
	return q
}
