package models

import (
	"gorm.io/datatypes"
)

const (
	PostTypeProject    = "project"
	PostTypeExperience = "experience"
	PostTypeEducation  = "education"
	PostTypeMerit      = "merit"
	PostTypeStandalone = "post"
)

// Post is either a thin pointer to another owned entity through DataID, or,
// with type "post", a self-contained record owning its Content media.
type Post struct {
	BaseModel

	Type     string                      `json:"type" gorm:"index"`
	DataID   *uint                       `json:"data_id"`
	Content  datatypes.JSONSlice[string] `json:"content"`
	Caption  string                      `json:"caption"`
	Language string                      `json:"language"`

	OwnerID uint `json:"owner_id" gorm:"index"`

	Metric ContentMetric `json:"metric" gorm:"-"`
}

func (v Post) OwnedBy() uint { return v.OwnerID }

// IsStandalone reports whether the post owns its content instead of pointing
// at another entity.
func (v Post) IsStandalone() bool {
	return v.Type == PostTypeStandalone
}
