package interceptor

import (
	"context"
	"fmt"
)

// Message types accepted by [Interceptor.HandleMessage].
const (
	MessageCacheURLs   = "CACHE_URLS"
	MessageSkipWaiting = "SKIP_WAITING"
)

// Message is a command sent by the host application.
type Message struct {
	Type  string   `json:"type"`
	URLs  []string `json:"urls,omitempty"`
	Token string   `json:"token,omitempty"`
}

// MessageResult reports what a message did.
type MessageResult struct {
	Type   string `json:"type"`
	State  string `json:"state"`
	Cached int    `json:"cached,omitempty"`
	Failed int    `json:"failed,omitempty"`
}

// HandleMessage executes one host command.
//
// CACHE_URLS fetches every URL with the supplied bearer token into the API
// namespace; a failing URL is skipped. SKIP_WAITING promotes a waiting layer
// to active, or activates it as soon as an install in progress finishes.
func (i *Interceptor) HandleMessage(ctx context.Context, msg Message) (MessageResult, error) {
	switch msg.Type {
	case MessageCacheURLs:
		cached := i.precache(ctx, i.APINamespace(), msg.URLs, msg.Token)
		i.logger.Info().
			Str("func", "Interceptor.HandleMessage").
			Int("requested", len(msg.URLs)).
			Int("cached", cached).
			Msg("urls cached on request")
		return MessageResult{
			Type:   msg.Type,
			State:  i.State().String(),
			Cached: cached,
			Failed: len(msg.URLs) - cached,
		}, nil

	case MessageSkipWaiting:
		if err := i.Activate(ctx); err != nil {
			return MessageResult{}, err
		}
		return MessageResult{Type: msg.Type, State: i.State().String()}, nil

	default:
		return MessageResult{}, fmt.Errorf("%w: %q", ErrUnknownMessage, msg.Type)
	}
}
