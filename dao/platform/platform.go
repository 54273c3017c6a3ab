// Package platform builds the backend client handle from the settings.
package platform

import (
	"context"
	"fmt"
	"time"

	"github.com/pkg/errors"
	"github.com/spf13/viper"

	"supasocial/dao/backend"
	"supasocial/dao/inmemory"
	"supasocial/dao/localcache"
	"supasocial/dao/postgres"
	"supasocial/dao/qiniu"
	"supasocial/dao/redis"
	"supasocial/dao/s3"
	"supasocial/dao/supabase"
	"supasocial/logger"
)

// MemoryObjectsPath is where blobs of the memory storage driver are served.
const MemoryObjectsPath = "/objects"

// Platform is the handle plus what has to be closed on shutdown.
type Platform struct {
	Client *backend.Client

	// Memory is set when any driver keeps its data in process memory.
	Memory *inmemory.Platform

	closers []func() error
}

// New wires every collaborator according to backend.*, storage.* and
// session.* settings.
func New(ctx context.Context) (*Platform, error) {
	p := &Platform{Client: &backend.Client{}}

	rest := supabase.NewClient(supabase.Config{
		URL:       viper.GetString("backend.url"),
		Key:       viper.GetString("backend.key"),
		JWTSecret: viper.GetString("backend.jwt_secret"),
		Bucket:    viper.GetString("storage.bucket"),
		SiteURL:   viper.GetString("server.site_url"),
		Debug:     viper.GetBool("server.develop_mode"),
	})

	if err := p.initDatabase(rest); err != nil {
		return nil, err
	}
	if err := p.initStorage(ctx, rest); err != nil {
		p.Close()
		return nil, err
	}
	if err := p.initAuth(rest); err != nil {
		p.Close()
		return nil, err
	}
	return p, nil
}

func (p *Platform) memory() *inmemory.Platform {
	if p.Memory == nil {
		p.Memory = inmemory.New(viper.GetString("server.site_url") + MemoryObjectsPath)
		if viper.GetBool("inmemory.seed") {
			for _, c := range sampleCommunities {
				p.Memory.SeedCommunity(c[0], c[1])
			}
		}
	}
	return p.Memory
}

var sampleCommunities = [][2]string{
	{"General", "Anything goes."},
	{"Pets", "Cats, dogs and the rest."},
	{"Photography", "Share your best shots."},
}

func (p *Platform) initDatabase(rest *supabase.Client) error {
	switch driver := viper.GetString("backend.database"); driver {
	case "rest":
		p.Client.Database = supabase.NewDatabase(rest)
	case "postgres":
		db, err := postgres.Open(viper.GetString("postgres.dsn"), viper.GetBool("postgres.debug"))
		if err != nil {
			return err
		}
		if viper.GetBool("postgres.auto_migrate") {
			if err := db.Migrate(); err != nil {
				return err
			}
		}
		p.closers = append(p.closers, db.Close)
		p.Client.Database = db
	case "memory":
		p.Client.Database = p.memory()
	default:
		return errors.Errorf("platform: unknown backend.database %q", driver)
	}
	logger.Infof("Initializing %s database driver successfully", viper.GetString("backend.database"))
	return nil
}

func (p *Platform) initStorage(ctx context.Context, rest *supabase.Client) error {
	switch driver := viper.GetString("storage.driver"); driver {
	case "supabase":
		p.Client.Storage = supabase.NewStorage(rest)
	case "s3":
		st, err := s3.New(ctx, s3.Config{
			Region:          viper.GetString("s3.region"),
			Endpoint:        viper.GetString("s3.endpoint"),
			AccessKeyID:     viper.GetString("s3.access_key_id"),
			SecretAccessKey: viper.GetString("s3.secret_access_key"),
			Bucket:          viper.GetString("storage.bucket"),
			PublicBaseURL:   viper.GetString("s3.public_base_url"),
		})
		if err != nil {
			return err
		}
		p.Client.Storage = st
	case "qiniu":
		p.Client.Storage = qiniu.New(qiniu.Config{
			AccessKey: viper.GetString("qiniu.access_key"),
			SecretKey: viper.GetString("qiniu.secret_key"),
			Bucket:    viper.GetString("storage.bucket"),
			BaseURL:   viper.GetString("qiniu.base_url"),
			UseHTTPS:  viper.GetBool("qiniu.use_https"),
		})
	case "memory":
		p.Client.Storage = p.memory()
	default:
		return errors.Errorf("platform: unknown storage.driver %q", driver)
	}
	logger.Infof("Initializing %s storage driver successfully", viper.GetString("storage.driver"))
	return nil
}

// initAuth follows the database driver: the memory database signs in a
// development user, everything else goes through the platform's auth.
func (p *Platform) initAuth(rest *supabase.Client) error {
	if viper.GetString("backend.database") == "memory" {
		p.Client.Auth = p.memory()
		return nil
	}

	ttl := time.Duration(viper.GetInt64("session.ttl")) * time.Second
	var store supabase.SessionStore
	switch s := viper.GetString("session.store"); s {
	case "memory":
		store = localcache.NewSessionStore(viper.GetInt("session.size"))
	case "redis":
		rdb, timeout, err := redis.NewClientFromConfig()
		if err != nil {
			return err
		}
		p.closers = append(p.closers, rdb.Close)
		store = redis.NewSessionStore(rdb, timeout)
	default:
		return errors.Errorf("platform: unknown session.store %q", s)
	}
	p.Client.Auth = supabase.NewAuth(rest, store, ttl)
	logger.Infof("Initializing %s session store successfully", viper.GetString("session.store"))
	return nil
}

// Close releases connections in reverse order of creation.
func (p *Platform) Close() {
	for i := len(p.closers) - 1; i >= 0; i-- {
		if err := p.closers[i](); err != nil {
			logger.Warnf("platform:Close: %v", err)
		}
	}
	p.closers = nil
}

func (p *Platform) String() string {
	return fmt.Sprintf("database=%s storage=%s session=%s",
		viper.GetString("backend.database"), viper.GetString("storage.driver"), viper.GetString("session.store"))
}
