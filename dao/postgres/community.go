package postgres

import (
	"context"

	"github.com/pkg/errors"

	supasocial "supasocial/errors"
	"supasocial/models"
)

func (d *Database) ListCommunities(ctx context.Context) ([]*models.Community, error) {
	var list []*models.Community
	res := d.db.WithContext(ctx).Order("id").Find(&list)
	if res.Error != nil {
		return nil, errors.Wrap(res.Error, "postgres:ListCommunities: select communities")
	}
	return list, nil
}

func (d *Database) GetCommunity(ctx context.Context, id int64) (*models.Community, error) {
	var list []*models.Community
	res := d.db.WithContext(ctx).Where("id = ?", id).Limit(1).Find(&list)
	if res.Error != nil {
		return nil, errors.Wrap(res.Error, "postgres:GetCommunity: select community")
	}
	if len(list) == 0 {
		return nil, supasocial.ErrNoSuchCommunity
	}
	return list[0], nil
}
