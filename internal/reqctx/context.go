package reqctx

import (
	"context"

	"github.com/sirupsen/logrus"
)

type ctxKey string

const (
	keyRID       ctxKey = "rid"
	keyAuctionID ctxKey = "auction_id"
)

// WithRID stores the request correlation id.
func WithRID(ctx context.Context, rid string) context.Context {
	return context.WithValue(ctx, keyRID, rid)
}

// RID returns correlation id if present.
func RID(ctx context.Context) string {
	v, _ := ctx.Value(keyRID).(string)
	return v
}

func WithAuctionID(ctx context.Context, id string) context.Context {
	return context.WithValue(ctx, keyAuctionID, id)
}

func AuctionID(ctx context.Context) string {
	v, _ := ctx.Value(keyAuctionID).(string)
	return v
}

// Log returns a logrus entry carrying the correlation fields found on ctx.
func Log(ctx context.Context) *logrus.Entry {
	fields := logrus.Fields{}
	if rid := RID(ctx); rid != "" {
		fields["rid"] = rid
	}
	if id := AuctionID(ctx); id != "" {
		fields["auction"] = id
	}
	return logrus.WithFields(fields)
}
