package adapter

import (
	"fmt"
	"net/http"
	"strings"

	"github.com/go-resty/resty/v2"
)

// offlineHeader is set by the interception layer on synthesized responses.
const offlineHeader = "X-Offline"

// statusErrors maps remote status codes to sentinels. A gateway timeout
// means the origin was not reached and counts as network unavailable.
var statusErrors = map[int]error{
	http.StatusBadRequest:          ErrBadRequest,
	http.StatusUnauthorized:        ErrUnauthorized,
	http.StatusForbidden:           ErrForbidden,
	http.StatusNotFound:            ErrNotFound,
	http.StatusConflict:            ErrConflict,
	http.StatusInternalServerError: ErrInternalServerError,
	http.StatusBadGateway:          ErrBadGateway,
	http.StatusServiceUnavailable:  ErrServiceUnavailable,
	http.StatusGatewayTimeout:      ErrNetworkUnavailable,
}

func mapHTTPError(resp *resty.Response) error {
	if strings.EqualFold(resp.Header().Get(offlineHeader), "true") {
		return fmt.Errorf("%w: offline response for %s", ErrNetworkUnavailable, resp.Request.URL)
	}

	code := resp.StatusCode()
	if code >= http.StatusOK && code < http.StatusMultipleChoices {
		return nil
	}

	body := strings.TrimSpace(string(resp.Body()))
	if sentinel, ok := statusErrors[code]; ok {
		return fmt.Errorf("%w: %s", sentinel, body)
	}
	if body == "" {
		body = http.StatusText(code)
	}
	return fmt.Errorf("http %d: %s", code, body)
}

// mapTransportError wraps a failed round trip so callers can match
// ErrNetworkUnavailable.
func mapTransportError(op string, err error) error {
	return fmt.Errorf("%s request: %w: %w", op, ErrNetworkUnavailable, err)
}
