// Package postgres reads and writes the platform's tables over a direct
// database connection instead of the REST surface.
package postgres

import (
	"github.com/pkg/errors"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"supasocial/models"
)

type Database struct {
	db *gorm.DB
}

// Open connects with the simple protocol so that the platform's transaction
// pooler can be used.
func Open(dsn string, debug bool) (*Database, error) {
	cfg := &gorm.Config{SkipDefaultTransaction: true}
	if debug {
		cfg.Logger = logger.Default.LogMode(logger.Info)
	}
	db, err := gorm.Open(postgres.New(postgres.Config{
		DSN:                  dsn,
		PreferSimpleProtocol: true,
	}), cfg)
	if err != nil {
		return nil, errors.Wrap(err, "postgres:Open")
	}
	return &Database{db: db}, nil
}

func New(db *gorm.DB) *Database {
	return &Database{db: db}
}

func (d *Database) Close() error {
	sqlDB, err := d.db.DB()
	if err != nil {
		return errors.Wrap(err, "postgres:Close")
	}
	return sqlDB.Close()
}

const createGetPostDetails = `
CREATE OR REPLACE FUNCTION get_post_details(post_id bigint)
RETURNS TABLE (
	id bigint, title text, content text, image_url text, avatar_url text,
	author_name text, author_uid text, community_id bigint,
	created_at timestamptz, community_name text
)
LANGUAGE sql STABLE AS $$
	SELECT p.id, p.title, p.content, p.image_url, p.avatar_url,
		p.author_name, p.author_uid, p.community_id, p.created_at, c.name
	FROM posts p
	LEFT JOIN communities c ON c.id = p.community_id
	WHERE p.id = get_post_details.post_id
$$;`

// Migrate creates the tables and the get_post_details procedure for a fresh
// database. Platform projects normally have them already.
func (d *Database) Migrate() error {
	if err := d.db.AutoMigrate(&models.Community{}, &models.Post{}, &models.Vote{}, &models.Comment{}); err != nil {
		return errors.Wrap(err, "postgres:Migrate: tables")
	}
	createIndexIfNotExists(d.db, "idx_votes_post_user", "votes", "post_id, user_id")
	createIndexIfNotExists(d.db, "idx_comments_post", "comments", "post_id")
	return errors.Wrap(d.db.Exec(createGetPostDetails).Error, "postgres:Migrate: get_post_details")
}

func createIndexIfNotExists(db *gorm.DB, indexName, tableName, columns string) {
	db.Exec("CREATE INDEX IF NOT EXISTS " + indexName + " ON " + tableName + " (" + columns + ")")
}
