package core

import (
	"context"

	"github.com/huangsam/soccerboard/internal/contract"
	"github.com/huangsam/soccerboard/internal/feed"
)

// Context keys for run options
type contextKey string

const (
	suppressHeaderKey contextKey = "suppressHeader"
	matchSourceKey    contextKey = "matchSource"
)

// WithSuppressHeader marks the context so no run header is printed.
// The MCP server and the dashboard use this to keep their streams clean.
func WithSuppressHeader(ctx context.Context) context.Context {
	return context.WithValue(ctx, suppressHeaderKey, true)
}

// shouldSuppressHeader returns whether headers should be suppressed from context
func shouldSuppressHeader(ctx context.Context) bool {
	val := ctx.Value(suppressHeaderKey)
	if val == nil {
		return false // default: show headers
	}
	suppress, ok := val.(bool)
	return ok && suppress
}

// WithMatchSource overrides the feed source used by the loaders.
func WithMatchSource(ctx context.Context, src contract.MatchSource) context.Context {
	return context.WithValue(ctx, matchSourceKey, src)
}

// matchSourceFrom returns the source stored in ctx, or an HTTP/file source built from cfg.
func matchSourceFrom(ctx context.Context, cfg *contract.Config) contract.MatchSource {
	if src, ok := ctx.Value(matchSourceKey).(contract.MatchSource); ok && src != nil {
		return src
	}
	return feed.NewSource(cfg.HTTPTimeout)
}
