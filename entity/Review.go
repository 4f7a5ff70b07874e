package entity

import (
	"time"

	"gorm.io/gorm"
)

type ModerationStatus string

const (
	ModerationPending  ModerationStatus = "pending"
	ModerationApproved ModerationStatus = "approved"
	ModerationRejected ModerationStatus = "rejected"
	ModerationFlagged  ModerationStatus = "flagged"
)

type Ratings struct {
	Food     int `json:"food"`
	Delivery int `json:"delivery"`
	Overall  int `json:"overall"`
}

// AutoModeration is the scorer verdict recorded with the review.
type AutoModeration struct {
	Score          int      `json:"score"`
	DetectedIssues []string `gorm:"serializer:json" json:"detectedIssues"`
	IsAutoApproved bool     `json:"isAutoApproved"`
}

type RestaurantResponse struct {
	Text          string     `json:"text,omitempty"`
	RespondedAt   *time.Time `json:"respondedAt,omitempty"`
	RespondedByID uint       `json:"respondedById,omitempty"`
}

type Review struct {
	gorm.Model
	Ratings Ratings `gorm:"embedded;embeddedPrefix:rating_" json:"ratings"`
	Comment string  `json:"comment"`
	Images  []Image `gorm:"serializer:json" json:"images"`

	ModerationStatus ModerationStatus `gorm:"index;default:pending" json:"moderationStatus"`
	ModerationFlags  []string         `gorm:"serializer:json" json:"moderationFlags"`
	AutoModeration   AutoModeration   `gorm:"embedded;embeddedPrefix:automod_" json:"autoModeration"`

	RestaurantResponse RestaurantResponse `gorm:"embedded;embeddedPrefix:response_" json:"restaurantResponse"`

	HelpfulCount int          `json:"helpfulCount"`
	Votes        []ReviewVote `json:"-"`

	IsVerifiedPurchase bool       `gorm:"default:true" json:"isVerifiedPurchase"`
	IsEdited           bool       `json:"isEdited"`
	EditedAt           *time.Time `json:"editedAt,omitempty"`

	CustomerID uint `gorm:"uniqueIndex:idx_customer_order" json:"customerId"`
	Customer   User `gorm:"foreignKey:CustomerID" json:"-"`

	RestaurantID uint       `gorm:"index" json:"restaurantId"`
	Restaurant   Restaurant `json:"-"`

	OrderID uint  `gorm:"uniqueIndex:idx_customer_order" json:"orderId"`
	Order   Order `json:"-"`
}
