// Package format holds the input normalizers shared by the area resolver and
// the ticket issuer: phone and name formatting plus best-effort coercion of
// the free-text cells coming out of the configuration sheet.
package format

import (
	"fmt"
	"regexp"
	"strconv"
	"strings"
	"unicode"

	"golang.org/x/text/runes"
	"golang.org/x/text/transform"
	"golang.org/x/text/unicode/norm"

	"github.com/ArielAmzalak/SenhasGF4/internal/models"
)

// localAreaCode is printed on every formatted phone number.
const localAreaCode = "92"

var (
	nonDigits = regexp.MustCompile(`\D`)

	// foldChain strips diacritics so "Área" and "area" compare equal.
	foldChain = transform.Chain(norm.NFKD, runes.Remove(runes.In(unicode.Mn)), norm.NFC)

	truthyTokens = map[string]struct{}{
		"sim": {}, "s": {}, "true": {}, "1": {}, "y": {}, "yes": {},
		"ativo": {}, "ativa": {}, "on": {}, "ok": {},
	}
)

// Fold lowercases, trims and removes accents for case/accent-insensitive
// comparison of header names and flag values.
func Fold(s string) string {
	folded, _, err := transform.String(foldChain, s)
	if err != nil {
		folded = s
	}
	return strings.ToLower(strings.TrimSpace(folded))
}

// Phone normalizes a raw phone to the local "(92) 98123-1234" shape. The
// input must contain exactly 11 digits after stripping formatting; a leading
// country code 55 is dropped when present on longer inputs.
func Phone(raw string) (string, error) {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return "", fmt.Errorf("%w: phone is required", models.ErrValidation)
	}
	digits := nonDigits.ReplaceAllString(raw, "")
	if digits == "" {
		return "", fmt.Errorf("%w: phone must contain digits", models.ErrValidation)
	}
	if strings.HasPrefix(digits, "55") && len(digits) > 11 {
		digits = digits[2:]
	}
	if len(digits) != 11 {
		return "", fmt.Errorf("%w: phone must contain 11 digits including area code", models.ErrValidation)
	}
	local := digits[len(digits)-9:]
	return fmt.Sprintf("(%s) %s-%s", localAreaCode, local[:5], local[5:]), nil
}

// Name trims and uppercases an attendee name. Emptiness is checked at the
// call site so the resolver can reuse this for optional fields.
func Name(raw string) string {
	return strings.ToUpper(strings.TrimSpace(raw))
}

// Truthy reports whether a free-text cell means "enabled". Unknown values
// are false; the caller decides the default for an absent cell.
func Truthy(raw string) bool {
	_, ok := truthyTokens[Fold(raw)]
	return ok
}

// PositiveInt coerces heterogeneous cell content ("50", "50 senhas", "50.0")
// to a positive integer. Returns 0 when no positive number can be read, so
// absence of a quota reads as "no limit" rather than an error.
func PositiveInt(raw string) int {
	digits := nonDigits.ReplaceAllString(strings.TrimSpace(raw), "")
	if digits == "" {
		return 0
	}
	n, err := strconv.Atoi(digits)
	if err != nil || n <= 0 {
		return 0
	}
	return n
}
