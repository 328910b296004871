package domain

import (
	"math/big"

	"github.com/shopspring/decimal"
)

// WeiToDecimal converts an amount in the chain's smallest unit to its display unit
func WeiToDecimal(wei *big.Int) decimal.Decimal {
	if wei == nil {
		return decimal.Zero
	}
	return decimal.NewFromBigInt(wei, -NATIVE_TOKEN_DECIMALS)
}

// WeiString renders a wei amount for numeric(78,0) columns
func WeiString(wei *big.Int) string {
	if wei == nil {
		return "0"
	}
	return wei.String()
}

// WeiFromString parses a numeric(78,0) column back into wei
func WeiFromString(s string) *big.Int {
	v, ok := new(big.Int).SetString(s, 10)
	if !ok {
		return big.NewInt(0)
	}
	return v
}
