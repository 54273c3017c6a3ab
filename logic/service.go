package logic

import (
	"time"

	"supasocial/dao/backend"
	"supasocial/query"
)

// Service runs the application's reads and writes against the platform
// through the query cache.
type Service struct {
	client  *backend.Client
	queries *query.Client
	now     func() time.Time
}

func New(client *backend.Client, queries *query.Client) *Service {
	return &Service{client: client, queries: queries, now: time.Now}
}

func (s *Service) Queries() *query.Client { return s.queries }
