package models

import "time"

const (
	InteractionLike = "like"
	InteractionSave = "save"
	InteractionView = "view"
)

const (
	SubjectProject = "project"
	SubjectPost    = "post"
)

// Interaction is a presence edge between an owner and a project or post.
type Interaction struct {
	ID          uint      `json:"id" gorm:"primaryKey"`
	Kind        string    `json:"kind" gorm:"uniqueIndex:idx_interaction_edge"`
	SubjectType string    `json:"subject_type" gorm:"uniqueIndex:idx_interaction_edge"`
	SubjectID   uint      `json:"subject_id" gorm:"uniqueIndex:idx_interaction_edge"`
	OwnerID     uint      `json:"owner_id" gorm:"uniqueIndex:idx_interaction_edge"`
	CreatedAt   time.Time `json:"created_at"`
}
