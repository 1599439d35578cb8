package adapter

import (
	"context"
	"strings"
	"sync/atomic"

	"github.com/go-resty/resty/v2"
)

// cacheFallbackHeader is set by the interception layer on a cached response
// it served because the network request failed.
const cacheFallbackHeader = "X-Offline-Cache"

// ResponseInfo collects what the adapter learned about the responses of the
// calls made with one context.
type ResponseInfo struct {
	fromCache atomic.Bool
}

// FromCache reports whether any response was a cached copy served in place of
// a failed network request.
func (i *ResponseInfo) FromCache() bool {
	return i.fromCache.Load()
}

type responseInfoKey struct{}

// WithResponseInfo returns a context whose calls report into the returned
// ResponseInfo.
func WithResponseInfo(ctx context.Context) (context.Context, *ResponseInfo) {
	info := &ResponseInfo{}
	return context.WithValue(ctx, responseInfoKey{}, info), info
}

// noteResponse records a cache fallback on the ResponseInfo of the request
// context, if any, and reports whether resp was one.
func noteResponse(resp *resty.Response) bool {
	if !strings.EqualFold(resp.Header().Get(cacheFallbackHeader), "true") {
		return false
	}
	if info, ok := resp.Request.Context().Value(responseInfoKey{}).(*ResponseInfo); ok {
		info.fromCache.Store(true)
	}
	return true
}
