package cache

import (
	"context"
	"fmt"
	"log/slog"
)

// SafeInvalidatePattern invalidates a cache pattern, logging instead of
// propagating errors. Write paths call this after a successful mutation;
// a stale cache entry expires on its own TTL either way.
func SafeInvalidatePattern(ctx context.Context, helper *CacheHelper, pattern string) {
	if err := helper.InvalidatePattern(ctx, pattern); err != nil {
		slog.ErrorContext(ctx, "Failed to invalidate cache pattern",
			"error", err,
			"pattern", pattern)
	}
}

// SafeDelete deletes cache keys, logging instead of propagating errors.
func SafeDelete(ctx context.Context, helper *CacheHelper, keys ...string) {
	if err := helper.Delete(ctx, keys...); err != nil {
		slog.ErrorContext(ctx, "Failed to delete cache keys",
			"error", err,
			"keys", keys)
	}
}

// SafeLogSetError records a failed cache populate.
func SafeLogSetError(ctx context.Context, key string, err error) {
	slog.WarnContext(ctx, "Failed to populate cache",
		"error", err,
		"key", key)
}

// InvalidateQuestionCaches drops every question-derived cache entry.
// Invalidation is coarse: any question write clears all question lists
// and the admin stats aggregates.
func InvalidateQuestionCaches(ctx context.Context, cm *CacheManager, questionID uint) {
	SafeDelete(ctx, cm.Question, fmt.Sprintf("id:%d", questionID))
	SafeInvalidatePattern(ctx, cm.Question, "list:*")
	SafeInvalidatePattern(ctx, cm.Stats, "*")
}

// InvalidateRoadmapCaches drops roadmap and role list caches.
func InvalidateRoadmapCaches(ctx context.Context, cm *CacheManager, roadmapID uint) {
	SafeDelete(ctx, cm.Roadmap, fmt.Sprintf("id:%d", roadmapID))
	SafeInvalidatePattern(ctx, cm.Roadmap, "role:*")
	SafeDelete(ctx, cm.Roadmap, "roles")
	SafeInvalidatePattern(ctx, cm.Stats, "*")
}

// InvalidateInterviewCaches drops a single interview's cached reads.
func InvalidateInterviewCaches(ctx context.Context, cm *CacheManager, interviewID string) {
	SafeDelete(ctx, cm.Interview, "id:"+interviewID)
}
