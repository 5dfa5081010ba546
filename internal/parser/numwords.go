package parser

import (
	"strings"
	"unicode"

	"github.com/shopspring/decimal"
)

var (
	unitWords = map[string]int64{
		"zero": 0, "one": 1, "two": 2, "three": 3, "four": 4, "five": 5,
		"six": 6, "seven": 7, "eight": 8, "nine": 9, "ten": 10,
		"eleven": 11, "twelve": 12, "thirteen": 13, "fourteen": 14, "fifteen": 15,
		"sixteen": 16, "seventeen": 17, "eighteen": 18, "nineteen": 19,
	}
	tensWords = map[string]int64{
		"twenty": 20, "thirty": 30, "forty": 40, "fifty": 50,
		"sixty": 60, "seventy": 70, "eighty": 80, "ninety": 90,
	}
	scaleWords = map[string]int64{
		"thousand": 1_000,
		"million":  1_000_000,
		"billion":  1_000_000_000,
	}
)

const (
	hundredWord = "hundred"
	pointWord   = "point"
)

// wordsToNumber reads the English number words found in text and ignores
// every other word, so "spent twenty five dollars" is 25. Digits after
// "point" must be single unit words ("three point one four"). It reports
// false when text holds no number word at all.
func wordsToNumber(text string) (decimal.Decimal, bool) {
	var whole, fraction []string
	seenPoint := false

	for _, word := range splitWords(text) {
		switch {
		case word == pointWord:
			seenPoint = true
		case !isNumberWord(word):
			continue
		case seenPoint:
			fraction = append(fraction, word)
		default:
			whole = append(whole, word)
		}
	}

	if len(whole) == 0 && len(fraction) == 0 {
		return decimal.Zero, false
	}

	result := decimal.NewFromInt(integerValue(whole))

	if len(fraction) > 0 {
		var digits strings.Builder
		for _, word := range fraction {
			v, ok := unitWords[word]
			if !ok || v > 9 {
				break
			}
			digits.WriteByte(byte('0' + v))
		}
		if digits.Len() > 0 {
			frac, err := decimal.NewFromString("0." + digits.String())
			if err == nil {
				result = result.Add(frac)
			}
		}
	}

	return result, true
}

// integerValue accumulates unit, tens, hundred and scale words in order.
func integerValue(words []string) int64 {
	var total, current int64
	for _, word := range words {
		if v, ok := unitWords[word]; ok {
			current += v
			continue
		}
		if v, ok := tensWords[word]; ok {
			current += v
			continue
		}
		if word == hundredWord {
			if current == 0 {
				current = 1
			}
			current *= 100
			continue
		}
		if scale, ok := scaleWords[word]; ok {
			if current == 0 {
				current = 1
			}
			total += current * scale
			current = 0
		}
	}
	return total + current
}

func isNumberWord(word string) bool {
	if _, ok := unitWords[word]; ok {
		return true
	}
	if _, ok := tensWords[word]; ok {
		return true
	}
	if _, ok := scaleWords[word]; ok {
		return true
	}
	return word == hundredWord
}

// splitWords lowercases text and splits it on anything that is not a letter,
// which also separates hyphenated forms like "twenty-five".
func splitWords(text string) []string {
	return strings.FieldsFunc(strings.ToLower(text), func(r rune) bool {
		return !unicode.IsLetter(r)
	})
}
