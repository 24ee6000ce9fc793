package cache

import (
	"context"
	"fmt"
	"time"
)

const (
	UserKeyPrefix     = "user:%d"
	StatusKeyPrefix   = "status:%d"
	CatalogTokenKey   = "catalog:token"
	ReviewFeedKey     = "reviews:feed"
	TokenBlacklistKey = "blacklist:%s"
)

const (
	UserTTL       = 5 * time.Minute
	StatusTTL     = 2 * time.Minute
	ReviewFeedTTL = 30 * time.Second
)

func UserKey(userID uint) string {
	return fmt.Sprintf(UserKeyPrefix, userID)
}

func StatusKey(userID uint) string {
	return fmt.Sprintf(StatusKeyPrefix, userID)
}

func BlacklistKey(jti string) string {
	return fmt.Sprintf(TokenBlacklistKey, jti)
}

func Invalidate(ctx context.Context, key string) {
	if client != nil {
		client.Del(ctx, key)
	}
}

func InvalidateUser(ctx context.Context, userID uint) {
	Invalidate(ctx, UserKey(userID))
}

func InvalidateStatus(ctx context.Context, userID uint) {
	Invalidate(ctx, StatusKey(userID))
}

func InvalidateReviewFeed(ctx context.Context) {
	Invalidate(ctx, ReviewFeedKey)
}
