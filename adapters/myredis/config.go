package myredis

import (
	"fmt"
	"time"

	"github.com/go-redis/redis/v8"
)

// NewRedisUniversalClient creates a universal client from a redis:// URL.
func NewRedisUniversalClient(redisAddr string, options ...ConfigOption) (redis.UniversalClient, error) {
	redisOptions, err := redis.ParseURL(redisAddr)
	if err != nil {
		return nil, fmt.Errorf("cant parse redis url: %w", err)
	}
	for _, opt := range options {
		opt(redisOptions)
	}
	return redis.NewUniversalClient(universalOptions(redisOptions)), nil
}

// ConfigOption configures the client.
type ConfigOption func(*redis.Options)

// WithTimeout bounds dial, read and write of every redis call.
func WithTimeout(d time.Duration) ConfigOption {
	return func(o *redis.Options) {
		o.DialTimeout = d
		o.ReadTimeout = d
		o.WriteTimeout = d
	}
}

func universalOptions(options *redis.Options) *redis.UniversalOptions {
	return &redis.UniversalOptions{
		Addrs:        []string{options.Addr},
		DB:           options.DB,
		Username:     options.Username,
		Password:     options.Password,
		TLSConfig:    options.TLSConfig,
		DialTimeout:  options.DialTimeout,
		ReadTimeout:  options.ReadTimeout,
		WriteTimeout: options.WriteTimeout,
		MaxRetries:   options.MaxRetries,
		PoolSize:     options.PoolSize,
		MinIdleConns: options.MinIdleConns,
	}
}
