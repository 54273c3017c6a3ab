package redis

import (
	"context"
	"fmt"
	"time"

	"github.com/pkg/errors"
	"github.com/redis/go-redis/v9"
	"github.com/spf13/viper"
)

// NewClientFromConfig connects to the redis named by the redis.* settings
// and pings it once.
func NewClientFromConfig() (*redis.Client, time.Duration, error) {
	rdb := redis.NewClient(&redis.Options{
		Addr:     fmt.Sprintf("%s:%d", viper.GetString("redis.host"), viper.GetInt("redis.port")),
		Password: viper.GetString("redis.password"),
		DB:       viper.GetInt("redis.db"),
		PoolSize: viper.GetInt("redis.poolsize"),
	})

	timeout := time.Duration(viper.GetInt64("redis.max_oper_time")) * time.Second

	ctx, cancel := context.WithTimeout(context.Background(), timeout)
	defer cancel()
	if err := rdb.Ping(ctx).Err(); err != nil {
		_ = rdb.Close()
		return nil, 0, errors.Wrap(err, "redis:NewClientFromConfig: ping")
	}
	return rdb, timeout, nil
}
