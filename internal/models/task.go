package models

import (
	"time"

	"gorm.io/gorm"
)

type Task struct {
	ID          string    `gorm:"primaryKey;type:varchar(36)" bson:"_id" json:"_id"`
	Name        string    `gorm:"column:task_name;type:varchar(255);not null" bson:"taskName" json:"taskName"`
	Assignees   []string  `gorm:"column:task_assignees;type:text;serializer:json;not null" bson:"taskAssignees" json:"taskAssignees"`
	ProjectID   string    `gorm:"column:project_id;type:varchar(36);not null;index:idx_tasks_project_id" bson:"projectId" json:"projectId"`
	Tags        []string  `gorm:"column:task_tags;type:text;serializer:json" bson:"taskTags" json:"taskTags"`
	Deadline    time.Time `gorm:"not null" bson:"deadline" json:"deadline"`
	Image       string    `bson:"image,omitempty" json:"image,omitempty"`
	Description string    `gorm:"not null" bson:"description" json:"description"`
	CreatedAt   time.Time `bson:"createdAt" json:"createdAt"`
	UpdatedAt   time.Time `bson:"updatedAt" json:"updatedAt"`
}

func (t *Task) BeforeCreate(tx *gorm.DB) error {
	if t.ID == "" {
		t.ID = NewID()
	}
	return nil
}
