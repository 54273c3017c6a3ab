package redis

import (
	"context"
	"testing"
	"time"

	"github.com/go-redis/redismock/v9"
	"github.com/pkg/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSessionStore(t *testing.T) {
	db, mock := redismock.NewClientMock()
	store := NewSessionStore(db, time.Second)
	ctx := context.Background()

	mock.ExpectSet(KeySessionStringPF+"session:abc", []byte(`{"access_token":"t"}`), time.Hour).SetVal("OK")
	require.NoError(t, store.Set(ctx, "session:abc", []byte(`{"access_token":"t"}`), time.Hour))

	mock.ExpectGet(KeySessionStringPF + "session:abc").SetVal(`{"access_token":"t"}`)
	val, err := store.Get(ctx, "session:abc")
	require.NoError(t, err)
	assert.Equal(t, `{"access_token":"t"}`, string(val))

	mock.ExpectGet(KeySessionStringPF + "session:none").RedisNil()
	val, err = store.Get(ctx, "session:none")
	require.NoError(t, err)
	assert.Nil(t, val)

	mock.ExpectGet(KeySessionStringPF + "session:broken").SetErr(errors.New("conn refused"))
	_, err = store.Get(ctx, "session:broken")
	assert.Error(t, err)

	mock.ExpectDel(KeySessionStringPF + "session:abc").SetVal(1)
	require.NoError(t, store.Del(ctx, "session:abc"))

	assert.NoError(t, mock.ExpectationsWereMet())
}
