package domain

import (
	"encoding/json"
	"time"
)

type ActivityAction string

const (
	ActivityCreate ActivityAction = "create"
	ActivityUpdate ActivityAction = "update"
	ActivityDelete ActivityAction = "delete"
	ActivityLogin  ActivityAction = "login"
)

// ActivityLog is an audit record. Before/After hold JSON snapshots of the
// touched entity for diff display.
type ActivityLog struct {
	ID        int64           `json:"id"`
	UserID    int64           `json:"user_id"`
	Action    ActivityAction  `json:"action"`
	Entity    string          `json:"entity"`
	EntityID  int64           `json:"entity_id,omitempty"`
	Before    json.RawMessage `json:"before,omitempty" gorm:"type:json"`
	After     json.RawMessage `json:"after,omitempty" gorm:"type:json"`
	IP        string          `json:"ip,omitempty"`
	CreatedAt time.Time       `json:"created_at"`
}
