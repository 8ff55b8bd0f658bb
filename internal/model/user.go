package model

import "time"

// Roles a platform account can hold.
const (
	RoleAdmin   = "admin"
	RoleCompany = "company"
	RoleStudent = "student"
	RoleTeacher = "teacher"
)

// User represents any platform account: student, company, teacher or admin.
// Role-specific columns stay empty for the other roles.
type User struct {
	ID           uint   `json:"id" gorm:"primaryKey"`
	Name         string `json:"name" gorm:"size:255;not null"`
	Email        string `json:"email" gorm:"uniqueIndex;size:255;not null"`
	PasswordHash string `json:"-" gorm:"size:255;not null"` // Never expose in JSON
	Role         string `json:"role" gorm:"size:50;not null"`
	Phone        string `json:"phone,omitempty" gorm:"size:50"`

	// Company fields.
	CompanyName string `json:"company_name,omitempty" gorm:"size:255"`
	NIT         string `json:"nit,omitempty" gorm:"size:50"`

	// Student fields.
	StudentID string `json:"student_id,omitempty" gorm:"size:50"`
	Career    string `json:"career,omitempty" gorm:"size:255"`

	// Teacher fields.
	Department string `json:"department,omitempty" gorm:"size:255"`

	DateJoined time.Time `json:"date_joined" gorm:"autoCreateTime"`
}
