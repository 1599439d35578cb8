package service

import (
	"context"

	"github.com/MKhiriev/edu-offline/internal/adapter"
	"github.com/MKhiriev/edu-offline/models"
)

// Connectivity is the view of the connectivity monitor used by the services.
type Connectivity interface {
	Online() bool
	Subscribe(fn func(online bool)) (unsubscribe func())
}

// readPath describes one online-first read.
type readPath[T any] struct {
	fetch func(ctx context.Context) (T, error)
	local func(ctx context.Context) (T, error)
	// mirror is called with every value fetched from the network. Optional.
	mirror func(ctx context.Context, v T)
}

// networkFirst fetches from the network while online. When offline, or when
// the request failed for network reasons, the local copy is returned with
// Offline set. A fetch answered by the interception layer's cache is
// returned with Offline and Stale set and is not mirrored. Other remote
// errors are returned as is.
func networkFirst[T any](ctx context.Context, conn Connectivity, p readPath[T]) (models.ReadResult[T], error) {
	if conn.Online() {
		fetchCtx, info := adapter.WithResponseInfo(ctx)
		v, err := p.fetch(fetchCtx)
		if err == nil {
			if info.FromCache() {
				return models.ReadResult[T]{Value: v, Offline: true, Stale: true}, nil
			}
			if p.mirror != nil {
				p.mirror(ctx, v)
			}
			return models.ReadResult[T]{Value: v}, nil
		}
		if !isNetworkFailure(err) {
			return models.ReadResult[T]{}, mapAdapterError(err)
		}
	}

	v, err := p.local(ctx)
	if err != nil {
		return models.ReadResult[T]{}, mapStoreError(err)
	}
	return models.ReadResult[T]{Value: v, Offline: true}, nil
}
