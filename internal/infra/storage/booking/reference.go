package booking

import (
	"context"
	"fmt"
	"strings"
	"unicode"

	"github.com/google/uuid"
)

const (
	referencePrefixLen   = 3
	referenceDigitsLen   = 4
	maxReferenceAttempts = 5
)

// BaseReference код бронирования из имени и телефона клиента: "ADA-4567"
// Первые три буквы имени в верхнем регистре (дополняются X) и последние четыре цифры телефона (дополняются 0)
func BaseReference(customerName, customerPhone string) string {
	var prefix []rune
	for _, r := range customerName {
		if unicode.IsLetter(r) {
			prefix = append(prefix, unicode.ToUpper(r))
			if len(prefix) == referencePrefixLen {
				break
			}
		}
	}
	for len(prefix) < referencePrefixLen {
		prefix = append(prefix, 'X')
	}

	var digits []rune
	for _, r := range customerPhone {
		if r >= '0' && r <= '9' {
			digits = append(digits, r)
		}
	}
	if len(digits) > referenceDigitsLen {
		digits = digits[len(digits)-referenceDigitsLen:]
	}
	suffix := strings.Repeat("0", referenceDigitsLen-len(digits)) + string(digits)

	return string(prefix) + "-" + suffix
}

// GenerateReference подбирает свободный код бронирования
// Перебирает BASE, BASE-2 ... BASE-5, затем BASE-<случайный суффикс>.
// Уникальность дополнительно гарантирует ограничение bookings_reference_key
func (r *Repository) GenerateReference(ctx context.Context, customerName, customerPhone string) (string, error) {
	return generateReference(ctx, r.ReferenceExists, customerName, customerPhone, randomSuffix)
}

func generateReference(
	ctx context.Context,
	exists func(ctx context.Context, reference string) (bool, error),
	customerName, customerPhone string,
	fallback func() string,
) (string, error) {
	base := BaseReference(customerName, customerPhone)

	candidates := make([]string, 0, maxReferenceAttempts+1)
	candidates = append(candidates, base)
	for i := 2; i <= maxReferenceAttempts; i++ {
		candidates = append(candidates, fmt.Sprintf("%s-%d", base, i))
	}
	candidates = append(candidates, base+"-"+fallback())

	for _, candidate := range candidates {
		taken, err := exists(ctx, candidate)
		if err != nil {
			return "", err
		}
		if !taken {
			return candidate, nil
		}
	}

	return "", fmt.Errorf("%w: base %s", ErrReferenceExhausted, base)
}

func randomSuffix() string {
	return strings.ToUpper(strings.ReplaceAll(uuid.NewString(), "-", "")[:6])
}
