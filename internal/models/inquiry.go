package models

import (
	"fmt"
	"strings"
	"time"
)

// InquiryStatus tracks how an owner has handled an inquiry.
type InquiryStatus string

const (
	InquiryStatusPending   InquiryStatus = "PENDING"
	InquiryStatusResponded InquiryStatus = "RESPONDED"
	InquiryStatusClosed    InquiryStatus = "CLOSED"
)

// ParseInquiryStatus validates an owner-supplied status.
func ParseInquiryStatus(s string) (InquiryStatus, error) {
	st := InquiryStatus(strings.ToUpper(strings.TrimSpace(s)))
	switch st {
	case InquiryStatusPending, InquiryStatusResponded, InquiryStatusClosed:
		return st, nil
	}
	return "", fmt.Errorf("unknown inquiry status %q", s)
}

// Inquiry is a message from a user to a listing's owner.
type Inquiry struct {
	ID         uint             `gorm:"primaryKey" json:"id"`
	Message    string           `gorm:"type:text;not null" json:"message"`
	PropertyID uint             `gorm:"not null;index" json:"propertyId"`
	Property   *PropertySummary `gorm:"foreignKey:PropertyID" json:"property,omitempty"`
	UserID     uint             `gorm:"not null;index" json:"userId"`
	User       *UserSummary     `gorm:"foreignKey:UserID" json:"user,omitempty"`
	Status     InquiryStatus    `gorm:"type:varchar(20);not null;default:'PENDING';index" json:"status"`
	CreatedAt  time.Time        `json:"createdAt"`
	UpdatedAt  time.Time        `json:"updatedAt"`
}
