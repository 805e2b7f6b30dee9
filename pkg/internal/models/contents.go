package models

import (
	"time"

	"gorm.io/datatypes"
)

type ContentStatus = int8

// Ascending order matters: profiles list ongoing entries first.
const (
	ContentStatusOngoing = ContentStatus(iota)
	ContentStatusComplete
)

type GalleryImage struct {
	Image       string `json:"image"`
	Description string `json:"description"`
}

type Project struct {
	BaseModel

	Name        string                            `json:"name"`
	Summary     string                            `json:"summary"`
	Description string                            `json:"description"`
	Status      ContentStatus                     `json:"status"`
	StartDate   *time.Time                        `json:"start_date"`
	EndDate     *time.Time                        `json:"end_date"`
	Thumbnail   *string                           `json:"thumbnail"`
	Gallery     datatypes.JSONSlice[GalleryImage] `json:"gallery"`
	Resources   datatypes.JSONSlice[string]       `json:"resources"`
	Skills      []Skill                           `json:"skills" gorm:"many2many:project_skills"`

	OwnerID uint `json:"owner_id" gorm:"index"`

	Metric ContentMetric `json:"metric" gorm:"-"`
}

type Experience struct {
	BaseModel

	Title     string        `json:"title"`
	Company   string        `json:"company"`
	Summary   string        `json:"summary"`
	Status    ContentStatus `json:"status"`
	StartDate *time.Time    `json:"start_date"`
	EndDate   *time.Time    `json:"end_date"`
	Skills    []Skill       `json:"skills" gorm:"many2many:experience_skills"`

	OwnerID uint `json:"owner_id" gorm:"index"`
}

type Education struct {
	BaseModel

	School    string     `json:"school"`
	Degree    string     `json:"degree"`
	Field     string     `json:"field"`
	StartDate *time.Time `json:"start_date"`
	EndDate   *time.Time `json:"end_date"`

	OwnerID uint `json:"owner_id" gorm:"index"`
}

type Merit struct {
	BaseModel

	Title       string     `json:"title"`
	Issuer      string     `json:"issuer"`
	Description string     `json:"description"`
	IssueDate   *time.Time `json:"issue_date"`

	OwnerID uint `json:"owner_id" gorm:"index"`
}

type ContentMetric struct {
	TotalLikes int64 `json:"total_likes"`
	TotalSaves int64 `json:"total_saves"`
	TotalViews int64 `json:"total_views"`
}

func (v Project) OwnedBy() uint    { return v.OwnerID }
func (v Experience) OwnedBy() uint { return v.OwnerID }
func (v Education) OwnedBy() uint  { return v.OwnerID }
func (v Merit) OwnedBy() uint      { return v.OwnerID }
