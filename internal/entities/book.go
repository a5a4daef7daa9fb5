package entities

type BookStatus string

const (
	BookStatusAvailable BookStatus = "Available"
	BookStatusIssued    BookStatus = "Issued"
)

type Book struct {
	ID       uint   `gorm:"primaryKey" json:"id"`
	Name     string `gorm:"size:512" json:"name"`
	Author   string `gorm:"size:256" json:"author"`
	Category string `gorm:"size:128" json:"category"`
}

func (Book) TableName() string {
	return "books"
}

// BookWithStatus is a read-side projection of a book joined against its open
// loan, if any. Status is never persisted.
type BookWithStatus struct {
	Book
	Status BookStatus `json:"status"`
}

func (b BookWithStatus) IsIssued() bool {
	return b.Status == BookStatusIssued
}
