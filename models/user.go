package models

// User is an account that can sign in and own events. IsSystem marks
// administrators who can see and manage every event.
type User struct {
	BaseModel
	Name         string `gorm:"type:varchar(100);not null" json:"name"`
	Email        string `gorm:"type:varchar(150);uniqueIndex;not null" json:"email"`
	PasswordHash string `gorm:"type:varchar(255);not null" json:"-"`
	IsSystem     bool   `gorm:"default:false;index" json:"isSystem"`
	IsActive     bool   `gorm:"default:true;index" json:"isActive"`

	Events []Event `gorm:"foreignKey:CreatorUserID" json:"-"`
}
