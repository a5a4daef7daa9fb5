package entities

type Student struct {
	ID         uint   `gorm:"primaryKey" json:"id"`
	Name       string `gorm:"size:256;not null" json:"name"`
	Department string `gorm:"size:256;not null" json:"department"`
	Year       int    `gorm:"not null" json:"year"`
}

func (Student) TableName() string {
	return "students"
}
