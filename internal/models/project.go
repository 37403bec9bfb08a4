package models

import (
	"time"

	"gorm.io/gorm"
)

type Priority string

const (
	PriorityLow    Priority = "low"
	PriorityMedium Priority = "medium"
	PriorityHigh   Priority = "high"
)

type Project struct {
	ID          string    `gorm:"primaryKey;type:varchar(36)" bson:"_id" json:"_id"`
	Name        string    `gorm:"column:project_name;type:varchar(255);not null" bson:"projectName" json:"projectName"`
	Manager     string    `gorm:"column:project_manager;type:varchar(255);not null" bson:"projectManager" json:"projectManager"`
	Tags        []string  `gorm:"column:project_tags;type:text;serializer:json" bson:"projectTags" json:"projectTags"`
	Deadline    time.Time `gorm:"not null" bson:"deadline" json:"deadline"`
	Priority    Priority  `gorm:"type:varchar(10)" bson:"priority,omitempty" json:"priority,omitempty"`
	Image       string    `bson:"image,omitempty" json:"image,omitempty"`
	Description string    `bson:"description" json:"description"`
	CreatedAt   time.Time `bson:"createdAt" json:"createdAt"`
	UpdatedAt   time.Time `bson:"updatedAt" json:"updatedAt"`
}

func (p *Project) BeforeCreate(tx *gorm.DB) error {
	if p.ID == "" {
		p.ID = NewID()
	}
	return nil
}
