package cache

import "errors"

var (
	// ErrCacheMiss возвращается, когда значения нет в кэше
	ErrCacheMiss = errors.New("cache: miss")

	// ErrCacheUnavailable возвращается при ошибке обращения к Redis
	ErrCacheUnavailable = errors.New("cache: redis unavailable")

	// ErrEncode возвращается при ошибке сериализации значения
	ErrEncode = errors.New("cache: failed to encode value")

	// ErrDecode возвращается при ошибке десериализации значения
	ErrDecode = errors.New("cache: failed to decode value")
)
