package entity

import (
	"gorm.io/gorm"
)

// ReviewVote records one customer's helpful vote; at most one per review.
type ReviewVote struct {
	gorm.Model
	ReviewID uint `gorm:"uniqueIndex:idx_review_voter" json:"reviewId"`

	CustomerID uint `gorm:"uniqueIndex:idx_review_voter" json:"customerId"`
	Customer   User `gorm:"foreignKey:CustomerID" json:"-"`
}
