// Package currencyutils provides the dollar amount parsing and formatting shared
// by the models and the command line.
package currencyutils

import (
	"fmt"
	"regexp"
	"strings"

	"github.com/shopspring/decimal"
)

var symbols = regexp.MustCompile(`[$\s]|USD`)

// ParseAmount parses a user-entered amount such as "12.5", "$1,234.56" or
// "1'234.56". An empty string is zero.
func ParseAmount(amountStr string) (decimal.Decimal, error) {
	standardized := StandardizeAmount(amountStr)
	if standardized == "" {
		return decimal.Zero, nil
	}

	amount, err := decimal.NewFromString(standardized)
	if err != nil {
		return decimal.Zero, fmt.Errorf("failed to parse amount '%s': %w", amountStr, err)
	}
	return amount, nil
}

// StandardizeAmount strips the dollar sign, the currency code, whitespace and
// thousands separators so that decimal.NewFromString can read the result.
func StandardizeAmount(amountStr string) string {
	amountStr = symbols.ReplaceAllString(strings.ToUpper(amountStr), "")
	return strings.NewReplacer(",", "", "'", "").Replace(amountStr)
}

// FormatMoney renders an amount as dollars with two decimals: "$12.50", "-$3.00".
func FormatMoney(amount decimal.Decimal) string {
	if amount.IsNegative() {
		return "-$" + amount.Neg().StringFixed(2)
	}
	return "$" + amount.StringFixed(2)
}

// Percent returns part as a percentage of whole rounded to one decimal.
// A zero whole yields zero.
func Percent(part, whole decimal.Decimal) decimal.Decimal {
	if whole.IsZero() {
		return decimal.Zero
	}
	return part.Div(whole).Mul(decimal.NewFromInt(100)).Round(1)
}
