// internal/exchange/parser.go
package exchange

import (
	"errors"
	"regexp"
	"strconv"
	"strings"
	"unicode"

	"usdt-exchange-bot/internal/types"
)

// ErrBadAmount - текст не распознан как сумма в рублях или USDT
var ErrBadAmount = errors.New("unrecognized amount format")

var (
	// суффикс тикера: "150USDT", "150 usdt"
	assetSuffixRe = regexp.MustCompile(`(?i)usdt$`)

	// сумма в рублях; допускаем: ₽, р, руб, руб., рублей
	fiatAmountRe = regexp.MustCompile(`(?i)^([\d.,]+)(?:₽|р\.?|руб\.?|рублей)?$`)
)

// ParseAmount разбирает текстовую сумму пользователя.
// "150 USDT" -> 150 в USDT; "100000", "100000 руб", "100,5₽" -> сумма в рублях
func ParseAmount(text string) (types.ParsedAmount, error) {
	clean := stripSpaces(text)
	if clean == "" {
		return types.ParsedAmount{}, ErrBadAmount
	}

	if assetSuffixRe.MatchString(clean) {
		// сумма введена в USDT
		num := assetSuffixRe.ReplaceAllString(clean, "")
		value, err := parseDecimal(num)
		if err != nil {
			return types.ParsedAmount{}, ErrBadAmount
		}
		return types.ParsedAmount{Value: value, Unit: types.UnitAsset}, nil
	}

	// считаем, что сумма в рублях
	m := fiatAmountRe.FindStringSubmatch(clean)
	if m == nil {
		return types.ParsedAmount{}, ErrBadAmount
	}

	value, err := parseDecimal(m[1])
	if err != nil {
		return types.ParsedAmount{}, ErrBadAmount
	}
	return types.ParsedAmount{Value: value, Unit: types.UnitFiat}, nil
}

// parseDecimal парсит число, принимая запятую как десятичный разделитель
func parseDecimal(num string) (float64, error) {
	value, err := strconv.ParseFloat(strings.ReplaceAll(num, ",", "."), 64)
	if err != nil {
		return 0, err
	}
	if value <= 0 {
		return 0, ErrBadAmount
	}
	return value, nil
}

// stripSpaces убирает все пробельные символы внутри строки
func stripSpaces(s string) string {
	return strings.Map(func(r rune) rune {
		if unicode.IsSpace(r) {
			return -1
		}
		return r
	}, s)
}
