// This Source Code Form is subject to the terms of the Mozilla Public
// License, v. 2.0. If a copy of the MPL was not distributed with this
// file, You can obtain one at https://mozilla.org/MPL/2.0/.

package database

import (
	"database/sql/driver"
	"encoding/json"
	"fmt"
	"time"
)

// StringList stores a string slice as a JSON text column. Order is
// preserved for display; filtering treats it as a set.
type StringList []string

// Value implements driver.Valuer
func (l StringList) Value() (driver.Value, error) {
	if len(l) == 0 {
		return "[]", nil
	}
	b, err := json.Marshal(l)
	if err != nil {
		return nil, fmt.Errorf("failed to encode string list: %w", err)
	}
	return string(b), nil
}

// Scan implements sql.Scanner
func (l *StringList) Scan(value interface{}) error {
	if value == nil {
		*l = nil
		return nil
	}
	var data []byte
	switch v := value.(type) {
	case []byte:
		data = v
	case string:
		data = []byte(v)
	default:
		return fmt.Errorf("unsupported string list column type %T", value)
	}
	if len(data) == 0 {
		*l = nil
		return nil
	}
	return json.Unmarshal(data, l)
}

// LoreProject is the identity root. Every session and plan belongs to
// exactly one project; deleting a project cascades to its children.
type LoreProject struct {
	ID        string    `gorm:"primaryKey" json:"id"`
	Name      string    `gorm:"uniqueIndex;not null" json:"name"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// TableName specifies the table name for LoreProject
func (LoreProject) TableName() string {
	return "lore_projects"
}

// LoreSession is a dated work-log entry
type LoreSession struct {
	ID        string     `gorm:"primaryKey" json:"id"`
	ProjectID string     `gorm:"index;not null" json:"project_id"`
	Date      string     `gorm:"index;not null" json:"date"` // ISO calendar day (UTC)
	Title     string     `gorm:"not null" json:"title"`
	Status    string     `gorm:"index" json:"status"`
	Topics    StringList `gorm:"type:text" json:"topics"`
	Content   string     `gorm:"type:text" json:"content"`
	CreatedAt time.Time  `json:"created_at"`
	UpdatedAt time.Time  `json:"updated_at"`

	// Foreign key relationship
	Project LoreProject `gorm:"foreignKey:ProjectID;constraint:OnDelete:CASCADE" json:"-"`
}

// TableName specifies the table name for LoreSession
func (LoreSession) TableName() string {
	return "lore_sessions"
}

// LorePlan is a longer-lived, status-tracked work item. Rows whose ID
// carries the reserved pattern prefix are learned patterns; the store layer
// splits them out and reads Type as the pattern category.
type LorePlan struct {
	ID        string     `gorm:"primaryKey" json:"id"`
	ProjectID string     `gorm:"index;not null" json:"project_id"`
	Title     string     `gorm:"not null" json:"title"`
	Status    string     `gorm:"index;not null" json:"status"`
	Author    string     `gorm:"index" json:"author"`
	Priority  string     `json:"priority"`
	Type      string     `gorm:"index" json:"type"`
	Topics    StringList `gorm:"type:text" json:"topics"`
	Content   string     `gorm:"type:text" json:"content"`
	CreatedAt time.Time  `json:"created_at"`
	UpdatedAt time.Time  `json:"updated_at"`

	// Foreign key relationship
	Project LoreProject `gorm:"foreignKey:ProjectID;constraint:OnDelete:CASCADE" json:"-"`
}

// TableName specifies the table name for LorePlan
func (LorePlan) TableName() string {
	return "lore_plans"
}
