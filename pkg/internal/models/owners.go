package models

// Owner is the content root of a user. AccountID is the identity issued by the
// authentication provider and doubles as the owner's external id in media keys.
type Owner struct {
	BaseModel

	AccountID   string `json:"account_id" gorm:"uniqueIndex;not null"`
	Name        string `json:"name"`
	Description string `json:"description"`
	Avatar      string `json:"avatar"`

	Skills      []Skill      `json:"skills" gorm:"many2many:owner_skills"`
	Projects    []Project    `json:"projects" gorm:"constraint:OnDelete:CASCADE"`
	Experiences []Experience `json:"experiences" gorm:"constraint:OnDelete:CASCADE"`
	Educations  []Education  `json:"educations" gorm:"constraint:OnDelete:CASCADE"`
	Merits      []Merit      `json:"merits" gorm:"constraint:OnDelete:CASCADE"`
	Galleries   []Gallery    `json:"galleries" gorm:"constraint:OnDelete:CASCADE"`
	Posts       []Post       `json:"posts" gorm:"constraint:OnDelete:CASCADE"`
}

// Account is the caller identity resolved from the session token.
type Account struct {
	ID   string `json:"id"`
	Name string `json:"name"`
}
