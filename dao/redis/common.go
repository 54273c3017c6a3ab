package redis

import "github.com/redis/go-redis/v9"

// keys
// Key + KeyName + Type + (PF) prefix
const (
	KeySessionStringPF = "supasocial:session:" // param: session id + store key
)

var Nil = redis.Nil
