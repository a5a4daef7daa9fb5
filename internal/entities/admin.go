package entities

// Admin is the single administrator account allowed to log in.
type Admin struct {
	ID       uint   `gorm:"primaryKey" json:"id"`
	Username string `gorm:"uniqueIndex;size:100;not null" json:"username"`
	Password string `gorm:"size:255;not null" json:"-"` // bcrypt hash
}

func (Admin) TableName() string {
	return "admin"
}
