package model

import "time"

// Offer statuses, controlled by admin review.
const (
	OfferStatusPending  = "pending"
	OfferStatusApproved = "approved"
	OfferStatusRejected = "rejected"
)

// Offer categories used by the university.
const (
	OfferTypePractice   = "Práctica"
	OfferTypeInternship = "Pasantía"
	OfferTypeProject    = "Proyecto"
)

// Offer is an internship or job posting published by a company. New offers
// start in pending status until an admin approves or rejects them.
type Offer struct {
	ID           uint      `json:"id" gorm:"primaryKey"`
	Title        string    `json:"title" gorm:"size:255;not null"`
	Description  string    `json:"description" gorm:"type:text"`
	Requirements string    `json:"requirements" gorm:"type:text"`
	Deadline     time.Time `json:"deadline"`
	Type         string    `json:"type" gorm:"size:50"`
	Career       string    `json:"career" gorm:"size:255"`

	// CompanyName is denormalized from the owning account at creation time.
	CompanyID   uint   `json:"company_id" gorm:"index"`
	CompanyName string `json:"company_name" gorm:"size:255"`

	Status    string    `json:"status" gorm:"size:50;default:'pending'"`
	CreatedAt time.Time `json:"created_at"`

	// ApplicantsCount is maintained incrementally as applications come in,
	// never recomputed from the applications table.
	ApplicantsCount int `json:"applicants_count"`
}
