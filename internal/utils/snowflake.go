package utils

import (
	"time"

	"github.com/bwmarrin/snowflake"
	"github.com/pkg/errors"
)

var node *snowflake.Node

func InitSnowflake(startTime string, machineID int64) error {
	st, err := time.Parse("2006-01-02", startTime)
	if err != nil {
		return errors.Wrap(err, "utils:InitSnowflake: parse start time")
	}

	snowflake.Epoch = st.UnixNano() / 1000000
	node, err = snowflake.NewNode(machineID)
	return errors.Wrap(err, "utils:InitSnowflake: NewNode")
}

func GenSnowflakeID() int64 {
	return node.Generate().Int64()
}

// GenRequestID is used for X-Request-ID.
func GenRequestID() string {
	return node.Generate().Base58()
}
