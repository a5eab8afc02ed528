package directory

import "time"

// Contact is an entry of the external-contacts directory. Contacts double as
// API users when they register a password.
type Contact struct {
	ID           uint64 `gorm:"primaryKey"`
	FullName     string
	Email        string `gorm:"uniqueIndex"`
	Company      string
	Password     string `gorm:"-"` // input only, not stored in db
	PasswordHash string
	IsActive     bool `gorm:"default:true"`
	CreatedAt    time.Time
	UpdatedAt    time.Time
}

func (Contact) TableName() string { return "contacts" }

// SafeContact is a contact without sensitive information
type SafeContact struct {
	ID       uint64 `json:"id"`
	FullName string `json:"fullName"`
	Email    string `json:"email"`
	Company  string `json:"company"`
	IsActive bool   `json:"isActive"`
}

// ToSafeContact converts a Contact to a SafeContact
func (c *Contact) ToSafeContact() SafeContact {
	return SafeContact{
		ID:       c.ID,
		FullName: c.FullName,
		Email:    c.Email,
		Company:  c.Company,
		IsActive: c.IsActive,
	}
}
