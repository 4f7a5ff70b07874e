package repository

import (
	"github.com/pkg/errors"
	"gorm.io/gorm"

	"github.com/my-lord1/food-delivery-backend/entity"
)

type ReviewRepository struct {
	DB *gorm.DB
}

func NewReviewRepository(db *gorm.DB) *ReviewRepository {
	return &ReviewRepository{DB: db}
}

func (r *ReviewRepository) Create(tx *gorm.DB, rev *entity.Review) error {
	return errors.Wrap(tx.Create(rev).Error, "create review")
}

func (r *ReviewRepository) Save(tx *gorm.DB, rev *entity.Review) error {
	return errors.Wrap(tx.Save(rev).Error, "save review")
}

func (r *ReviewRepository) Delete(tx *gorm.DB, rev *entity.Review) error {
	return errors.Wrap(tx.Delete(rev).Error, "delete review")
}

func (r *ReviewRepository) ByID(id uint) (*entity.Review, error) {
	var rev entity.Review
	if err := r.DB.First(&rev, id).Error; err != nil {
		return nil, err
	}
	return &rev, nil
}

func (r *ReviewRepository) ByOrder(orderID uint) (*entity.Review, error) {
	var rev entity.Review
	if err := r.DB.Where("order_id = ?", orderID).First(&rev).Error; err != nil {
		return nil, err
	}
	return &rev, nil
}

// ListApproved returns publicly visible reviews for a restaurant.
// sort: recent | rating_high | rating_low | helpful
func (r *ReviewRepository) ListApproved(restaurantID uint, sort string, page, limit int) ([]entity.Review, int64, error) {
	q := r.DB.Model(&entity.Review{}).
		Where("restaurant_id = ? AND moderation_status = ?", restaurantID, entity.ModerationApproved)

	var total int64
	if err := q.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	order := "created_at DESC"
	switch sort {
	case "rating_high":
		order = "rating_overall DESC"
	case "rating_low":
		order = "rating_overall ASC"
	case "helpful":
		order = "helpful_count DESC"
	}

	var reviews []entity.Review
	err := q.Order(order).Limit(limit).Offset((page - 1) * limit).Find(&reviews).Error
	return reviews, total, err
}

// ListForRestaurant returns reviews in every moderation state, for the owner
// dashboard.
func (r *ReviewRepository) ListForRestaurant(restaurantID uint, page, limit int) ([]entity.Review, int64, error) {
	q := r.DB.Model(&entity.Review{}).Where("restaurant_id = ?", restaurantID)

	var total int64
	if err := q.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	var reviews []entity.Review
	err := q.Order("created_at DESC").Limit(limit).Offset((page - 1) * limit).Find(&reviews).Error
	return reviews, total, err
}

func (r *ReviewRepository) CountByStatus(restaurantID uint, status entity.ModerationStatus) (int64, error) {
	var n int64
	err := r.DB.Model(&entity.Review{}).
		Where("restaurant_id = ? AND moderation_status = ?", restaurantID, status).
		Count(&n).Error
	return n, err
}

type RatingBucket struct {
	Rating int   `json:"rating"`
	Count  int64 `json:"count"`
}

func (r *ReviewRepository) RatingDistribution(restaurantID uint) ([]RatingBucket, error) {
	var buckets []RatingBucket
	err := r.DB.Model(&entity.Review{}).
		Where("restaurant_id = ? AND moderation_status = ?", restaurantID, entity.ModerationApproved).
		Select("rating_overall AS rating, COUNT(*) AS count").
		Group("rating_overall").
		Scan(&buckets).Error
	return buckets, err
}

// ApprovedAverage computes the mean overall rating and count across approved
// reviews. Returns 0, 0 when the restaurant has none.
func (r *ReviewRepository) ApprovedAverage(tx *gorm.DB, restaurantID uint) (float64, int64, error) {
	var agg struct {
		Avg   float64
		Count int64
	}
	err := tx.Model(&entity.Review{}).
		Where("restaurant_id = ? AND moderation_status = ?", restaurantID, entity.ModerationApproved).
		Select("COALESCE(AVG(rating_overall), 0) AS avg, COUNT(*) AS count").
		Scan(&agg).Error
	return agg.Avg, agg.Count, err
}

func (r *ReviewRepository) FindVote(reviewID, customerID uint) (*entity.ReviewVote, error) {
	var v entity.ReviewVote
	err := r.DB.Where("review_id = ? AND customer_id = ?", reviewID, customerID).First(&v).Error
	if err != nil {
		return nil, err
	}
	return &v, nil
}

func (r *ReviewRepository) AddVote(tx *gorm.DB, reviewID, customerID uint) error {
	return tx.Create(&entity.ReviewVote{ReviewID: reviewID, CustomerID: customerID}).Error
}

func (r *ReviewRepository) RemoveVote(tx *gorm.DB, vote *entity.ReviewVote) error {
	return tx.Unscoped().Delete(vote).Error
}

func (r *ReviewRepository) SetHelpfulCount(tx *gorm.DB, reviewID uint, count int) error {
	return tx.Model(&entity.Review{}).Where("id = ?", reviewID).
		Update("helpful_count", count).Error
}
