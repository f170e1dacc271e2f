package activity

import (
	"encoding/json"

	"marinaclub/internal/domain"

	"github.com/gin-gonic/gin"
)

const (
	ctxAction   = "audit_action"
	ctxEntity   = "audit_entity"
	ctxEntityID = "audit_entity_id"
	ctxBefore   = "audit_before"
	ctxAfter    = "audit_after"
)

// Record stages an audit entry on the request context. The activity
// middleware persists it after the handler returns, so handlers never talk
// to the log store directly and a failed write cannot roll back the
// operation it describes.
func Record(c *gin.Context, action domain.ActivityAction, entity string, entityID int64, before, after any) {
	c.Set(ctxAction, string(action))
	c.Set(ctxEntity, entity)
	c.Set(ctxEntityID, entityID)
	if before != nil {
		if raw, err := json.Marshal(before); err == nil {
			c.Set(ctxBefore, json.RawMessage(raw))
		}
	}
	if after != nil {
		if raw, err := json.Marshal(after); err == nil {
			c.Set(ctxAfter, json.RawMessage(raw))
		}
	}
}

// FromContext rebuilds the staged entry, if any.
func FromContext(c *gin.Context) (*domain.ActivityLog, bool) {
	action := c.GetString(ctxAction)
	if action == "" {
		return nil, false
	}

	entry := &domain.ActivityLog{
		UserID:   c.GetInt64("user_id"),
		Action:   domain.ActivityAction(action),
		Entity:   c.GetString(ctxEntity),
		EntityID: c.GetInt64(ctxEntityID),
		IP:       c.ClientIP(),
	}
	if v, ok := c.Get(ctxBefore); ok {
		if raw, ok := v.(json.RawMessage); ok {
			entry.Before = raw
		}
	}
	if v, ok := c.Get(ctxAfter); ok {
		if raw, ok := v.(json.RawMessage); ok {
			entry.After = raw
		}
	}
	return entry, true
}
