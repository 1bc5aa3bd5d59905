package errx

import (
	"errors"

	"github.com/redis/go-redis/v9"
)

// WrapRedis maps Redis errors to AppError with an appropriate kind.
func WrapRedis(err error) error {
	if err == nil {
		return nil
	}

	if errors.Is(err, redis.Nil) {
		return New(err, KindNotFound, RedisNotFoundMessage)
	}

	return New(err, KindUnavailable, RedisErrorMessage)
}
