package coupon

import "errors"

var (
	// ErrCacheRead возвращается при ошибке чтения из Redis
	ErrCacheRead = errors.New("coupon.cache: failed to read")

	// ErrCacheWrite возвращается при ошибке записи в Redis
	ErrCacheWrite = errors.New("coupon.cache: failed to write")

	// ErrDecode возвращается, если закэшированное значение не удалось разобрать
	ErrDecode = errors.New("coupon.cache: failed to decode")
)
