package models

type Gallery struct {
	BaseModel

	Name   string  `json:"name"`
	Photos []Photo `json:"photos" gorm:"constraint:OnDelete:CASCADE"`

	OwnerID uint `json:"owner_id" gorm:"index"`
}

type Photo struct {
	BaseModel

	Image     string `json:"image"`
	GalleryID uint   `json:"gallery_id" gorm:"index"`
}

func (v Gallery) OwnedBy() uint { return v.OwnerID }
