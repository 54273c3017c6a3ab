package utils

import (
	"context"

	"github.com/pkg/errors"
	"golang.org/x/sync/singleflight"
)

// SfDoWithContext joins the in-flight call for key, or starts it. The caller
// stops waiting when ctx ends but the shared call keeps running for the
// other waiters, and its result still lands wherever fn puts it.
func SfDoWithContext(ctx context.Context, sfGrp *singleflight.Group, key string, fn func() (any, error)) (v any, shared bool, err error) {
	ch := sfGrp.DoChan(key, fn)

	select {
	case res := <-ch:
		if res.Err != nil {
			return nil, res.Shared, errors.Wrap(res.Err, "utils:SfDoWithContext: fn")
		}
		return res.Val, res.Shared, nil
	case <-ctx.Done():
		return nil, false, errors.Wrap(ctx.Err(), "utils:SfDoWithContext: wait")
	}
}
