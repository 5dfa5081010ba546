package parser

import (
	"regexp"
	"strings"

	"github.com/shopspring/decimal"

	"fjacquet/spendlens/internal/logging"
)

var (
	numericAmount = regexp.MustCompile(`\b(\d+(?:\.\d{1,2})?)\b`)
	amountCleaner = strings.NewReplacer(",", "", "$", "")
)

// extractAmount returns the first decimal number in text after thousands
// separators and dollar signs are removed. When there is none the whole text
// is read as English number words. Zero means not found.
func extractAmount(logger logging.Logger, text string) decimal.Decimal {
	if text == "" {
		logger.Warn("Empty text provided for amount extraction")
		return decimal.Zero
	}

	cleaned := strings.ToLower(amountCleaner.Replace(text))

	if m := numericAmount.FindStringSubmatch(cleaned); m != nil {
		amount, err := decimal.NewFromString(m[1])
		if err == nil {
			logger.Info("Parsed numeric amount", logging.Field{Key: logging.FieldAmount, Value: amount.StringFixed(2)})
			return amount
		}
		logger.WithError(err).Error("Failed to parse numeric amount", logging.Field{Key: logging.FieldText, Value: text})
		return decimal.Zero
	}

	amount, ok := wordsToNumber(cleaned)
	if !ok {
		logger.Debug("No amount found", logging.Field{Key: logging.FieldText, Value: text})
		return decimal.Zero
	}
	logger.Info("Parsed written amount", logging.Field{Key: logging.FieldAmount, Value: amount.StringFixed(2)})
	return amount
}
