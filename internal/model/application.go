package model

import (
	"database/sql/driver"
	"encoding/json"
	"fmt"
	"time"
)

// Application statuses. A company reviews pending applications first, then an
// admin gives the final approval for company-accepted ones.
const (
	ApplicationStatusPending         = "pending"
	ApplicationStatusCompanyAccepted = "company_accepted"
	ApplicationStatusCompanyRejected = "company_rejected"
	ApplicationStatusApproved        = "approved"
	ApplicationStatusRejected        = "rejected"
)

// ProfileSnapshot is the student's profile captured at application time. It is
// stored as a JSON column and never re-synced from the live user record, so
// later profile edits do not change historical applications.
type ProfileSnapshot struct {
	Name      string `json:"name"`
	Email     string `json:"email"`
	Phone     string `json:"phone"`
	StudentID string `json:"student_id"`
	Career    string `json:"career"`
}

// Value implements driver.Valuer for the JSON column.
func (p ProfileSnapshot) Value() (driver.Value, error) {
	return json.Marshal(p)
}

// Scan implements sql.Scanner for the JSON column.
func (p *ProfileSnapshot) Scan(value interface{}) error {
	switch v := value.(type) {
	case nil:
		return nil
	case []byte:
		return json.Unmarshal(v, p)
	case string:
		return json.Unmarshal([]byte(v), p)
	default:
		return fmt.Errorf("unsupported profile snapshot column type %T", value)
	}
}

// Application is a student's submission against one offer.
//
// OfferTitle, StudentName and CompanyName are point-in-time denormalizations,
// not caches: they keep their value even if the referenced rows are later
// edited or deleted. No foreign-key constraints are declared so deleting an
// offer or user never cascades into applications.
type Application struct {
	ID uint `json:"id" gorm:"primaryKey"`

	OfferID     uint   `json:"offer_id" gorm:"index"`
	OfferTitle  string `json:"offer_title" gorm:"size:255"`
	StudentID   uint   `json:"student_id" gorm:"index"`
	StudentName string `json:"student_name" gorm:"size:255"`
	CompanyID   uint   `json:"company_id" gorm:"index"`
	CompanyName string `json:"company_name" gorm:"size:255"`

	Status    string    `json:"status" gorm:"size:50;default:'pending'"`
	AppliedAt time.Time `json:"applied_at" gorm:"autoCreateTime"`

	CompanyReviewedAt *time.Time `json:"company_reviewed_at,omitempty"`
	AdminReviewedAt   *time.Time `json:"admin_reviewed_at,omitempty"`

	AssignedTeacherID   *uint      `json:"assigned_teacher_id,omitempty"`
	AssignedTeacherName string     `json:"assigned_teacher_name,omitempty" gorm:"size:255"`
	StartDate           *time.Time `json:"start_date,omitempty"`

	ProfileSnapshot ProfileSnapshot `json:"profile_snapshot" gorm:"type:json"`
}
