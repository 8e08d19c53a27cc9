package models

import (
	"database/sql/driver"
	"encoding/json"
	"time"
)

// JSON free-form payload column
type JSON map[string]interface{}

// Value implements driver.Valuer
func (j JSON) Value() (driver.Value, error) {
	if j == nil {
		return nil, nil
	}
	return json.Marshal(j)
}

// Scan implements sql.Scanner
func (j *JSON) Scan(value interface{}) error {
	if value == nil {
		*j = make(JSON)
		return nil
	}
	bytes, ok := value.([]byte)
	if !ok {
		if s, ok := value.(string); ok {
			bytes = []byte(s)
		} else {
			return nil
		}
	}
	return json.Unmarshal(bytes, j)
}

// Notification in-app notification row written by the worker.
// Delivery (push/email) is out of scope; this is the record of intent.
type Notification struct {
	ID        uint       `gorm:"primarykey" json:"id"`           // primary key
	UserID    uint       `gorm:"index;not null" json:"user_id"`  // recipient account
	Type      string     `gorm:"index;not null" json:"type"`     // notification type
	Title     string     `gorm:"not null" json:"title"`          // short title
	Body      string     `gorm:"type:text" json:"body"`          // body text
	Payload   JSON       `gorm:"type:text" json:"payload"`       // structured payload
	ReadAt    *time.Time `gorm:"index" json:"read_at"`           // read marker
	CreatedAt time.Time  `gorm:"index" json:"created_at"`        // creation time
}

// TableName sets the table name
func (Notification) TableName() string {
	return "notifications"
}
