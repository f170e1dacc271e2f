package middleware

import (
	"context"
	"net/http"
	"time"

	"marinaclub/internal/domain"
	"marinaclub/internal/modules/activity"

	"github.com/gin-gonic/gin"
)

type activityRecorder interface {
	Log(ctx context.Context, entry *domain.ActivityLog)
}

// ActivityLogger persists the audit entry a handler staged via
// activity.Record once the handler completed successfully. Failed requests
// leave no entry, and the write itself is fire-and-forget: audit problems
// never surface to the client.
func ActivityLogger(recorder activityRecorder) gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Next()

		if c.Writer.Status() >= http.StatusBadRequest {
			return
		}

		entry, ok := activity.FromContext(c)
		if !ok {
			return
		}

		// detach from the request context; the response is already written
		ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		recorder.Log(ctx, entry)
	}
}
