package platform

import (
	"context"
	"testing"

	"github.com/spf13/viper"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"supasocial/dao/localcache"
	"supasocial/dao/supabase"
)

func setDrivers(t *testing.T, database, storage, store string) {
	t.Helper()
	viper.Reset()
	t.Cleanup(viper.Reset)
	viper.Set("backend.url", "https://abc.supabase.co")
	viper.Set("backend.key", "anon")
	viper.Set("server.site_url", "http://localhost:5173")
	viper.Set("storage.bucket", "post-images")
	viper.Set("session.size", 16)
	viper.Set("session.ttl", 60)
	viper.Set("inmemory.seed", true)
	viper.Set("backend.database", database)
	viper.Set("storage.driver", storage)
	viper.Set("session.store", store)
}

func TestNewMemory(t *testing.T) {
	setDrivers(t, "memory", "memory", "memory")

	p, err := New(context.Background())
	require.NoError(t, err)
	defer p.Close()

	require.NotNil(t, p.Memory)
	assert.Same(t, p.Memory, p.Client.Database)
	assert.Same(t, p.Memory, p.Client.Storage)
	assert.Same(t, p.Memory, p.Client.Auth)
	assert.Equal(t, "http://localhost:5173/objects/a.png", p.Client.Storage.PublicURL("a.png"))

	communities, err := p.Client.Database.ListCommunities(context.Background())
	require.NoError(t, err)
	assert.Len(t, communities, len(sampleCommunities))
}

func TestNewRest(t *testing.T) {
	setDrivers(t, "rest", "supabase", "memory")

	p, err := New(context.Background())
	require.NoError(t, err)
	defer p.Close()

	assert.Nil(t, p.Memory)
	assert.IsType(t, &supabase.Database{}, p.Client.Database)
	assert.IsType(t, &supabase.Storage{}, p.Client.Storage)
	assert.IsType(t, &supabase.Auth{}, p.Client.Auth)
	assert.Equal(t,
		"https://abc.supabase.co/storage/v1/object/public/post-images/a.png",
		p.Client.Storage.PublicURL("a.png"))
}

func TestNewMixed(t *testing.T) {
	setDrivers(t, "rest", "memory", "memory")

	p, err := New(context.Background())
	require.NoError(t, err)

	require.NotNil(t, p.Memory)
	assert.Same(t, p.Memory, p.Client.Storage)
	assert.IsType(t, &supabase.Auth{}, p.Client.Auth)
}

func TestNewUnknownDriver(t *testing.T) {
	for _, tt := range []struct {
		name                     string
		database, storage, store string
	}{
		{"database", "mongo", "memory", "memory"},
		{"storage", "memory", "ftp", "memory"},
		{"session store", "rest", "memory", "file"},
	} {
		t.Run(tt.name, func(t *testing.T) {
			setDrivers(t, tt.database, tt.storage, tt.store)
			_, err := New(context.Background())
			assert.Error(t, err)
		})
	}
}

var _ supabase.SessionStore = (*localcache.SessionStore)(nil)
