package models

import "time"

type Skill struct {
	BaseModel

	Alias     string  `json:"alias" gorm:"uniqueIndex;not null" validate:"lowercase"`
	Name      string  `json:"name"`
	IconImage *string `json:"icon_image"`
}

// IsCanonical reports whether the skill carries an icon. Canonical skills are
// never garbage collected.
func (v Skill) IsCanonical() bool {
	return v.IconImage != nil && len(*v.IconImage) > 0
}

type OwnerSkill struct {
	OwnerID   uint      `json:"owner_id" gorm:"primaryKey"`
	SkillID   uint      `json:"skill_id" gorm:"primaryKey;index"`
	CreatedAt time.Time `json:"created_at"`
}

type ProjectSkill struct {
	ProjectID uint      `json:"project_id" gorm:"primaryKey"`
	SkillID   uint      `json:"skill_id" gorm:"primaryKey;index"`
	CreatedAt time.Time `json:"created_at"`
}

type ExperienceSkill struct {
	ExperienceID uint      `json:"experience_id" gorm:"primaryKey"`
	SkillID      uint      `json:"skill_id" gorm:"primaryKey;index"`
	CreatedAt    time.Time `json:"created_at"`
}
