package services

import (
	"math"
	"time"

	"github.com/pkg/errors"
	"gorm.io/gorm"

	"github.com/my-lord1/food-delivery-backend/entity"
	"github.com/my-lord1/food-delivery-backend/pkg/apperr"
	"github.com/my-lord1/food-delivery-backend/pkg/imagestore"
	"github.com/my-lord1/food-delivery-backend/repository"
)

const maxCommentLength = 500

type ReviewService struct {
	DB        *gorm.DB
	Repo      *repository.ReviewRepository
	OrderRepo *repository.OrderRepository
	RestRepo  *repository.RestaurantRepository
	Notifier  *NotificationService
	Images    imagestore.Store
}

func NewReviewService(
	db *gorm.DB,
	repo *repository.ReviewRepository,
	orderRepo *repository.OrderRepository,
	restRepo *repository.RestaurantRepository,
	notifier *NotificationService,
	images imagestore.Store,
) *ReviewService {
	return &ReviewService{
		DB: db, Repo: repo, OrderRepo: orderRepo, RestRepo: restRepo,
		Notifier: notifier, Images: images,
	}
}

type CreateReviewReq struct {
	OrderID uint           `json:"orderId" binding:"required"`
	Ratings entity.Ratings `json:"ratings" binding:"required"`
	Comment string         `json:"comment" binding:"required"`
	Images  []entity.Image `json:"images"`
}

func validateRatings(r entity.Ratings) error {
	for _, v := range []int{r.Food, r.Delivery, r.Overall} {
		if v < 1 || v > 5 {
			return apperr.Validationf("ratings must be between 1 and 5")
		}
	}
	return nil
}

// Create accepts a review only against the caller's own delivered,
// not-yet-reviewed order. The comment is scored before the review is stored.
func (s *ReviewService) Create(customerID uint, req *CreateReviewReq) (*entity.Review, error) {
	if err := validateRatings(req.Ratings); err != nil {
		return nil, err
	}
	if len(req.Comment) == 0 || len(req.Comment) > maxCommentLength {
		return nil, apperr.Validationf("comment must be 1-%d characters", maxCommentLength)
	}

	o, err := s.OrderRepo.ByID(req.OrderID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperr.NotFoundf("order %d", req.OrderID)
		}
		return nil, err
	}
	if o.CustomerID != customerID {
		return nil, apperr.Forbiddenf("order %d", req.OrderID)
	}
	if o.Status != entity.OrderDelivered {
		return nil, apperr.Validationf("can only review delivered orders")
	}
	if o.IsReviewed {
		return nil, apperr.Validationf("order %d is already reviewed", req.OrderID)
	}

	rev := &entity.Review{
		CustomerID:   customerID,
		RestaurantID: o.RestaurantID,
		OrderID:      o.ID,
		Ratings:      req.Ratings,
		Comment:      req.Comment,
		Images:       req.Images,
	}
	applyModeration(rev)

	err = s.DB.Transaction(func(tx *gorm.DB) error {
		if err := s.Repo.Create(tx, rev); err != nil {
			return err
		}
		if err := s.OrderRepo.SetReviewed(tx, o.ID, true); err != nil {
			return err
		}
		return s.recomputeRating(tx, o.RestaurantID)
	})
	if err != nil {
		return nil, err
	}
	return rev, nil
}

// applyModeration runs the scorer and stamps its verdict onto the review.
// The moderation status is always a pure function of the comment text.
func applyModeration(rev *entity.Review) {
	mod := ModerateComment(rev.Comment)
	rev.ModerationStatus = mod.Status
	rev.ModerationFlags = mod.Flags
	rev.AutoModeration = entity.AutoModeration{
		Score:          mod.Score,
		DetectedIssues: mod.DetectedIssues,
		IsAutoApproved: mod.AutoApproved,
	}
}

type UpdateReviewReq struct {
	Ratings *entity.Ratings `json:"ratings"`
	Comment *string         `json:"comment"`
}

// Update edits the caller's review. The edit is rescored and any restaurant
// response is cleared: it was written against the old text.
func (s *ReviewService) Update(customerID, reviewID uint, req *UpdateReviewReq) (*entity.Review, error) {
	rev, err := s.owned(customerID, reviewID)
	if err != nil {
		return nil, err
	}

	if req.Ratings != nil {
		if err := validateRatings(*req.Ratings); err != nil {
			return nil, err
		}
		rev.Ratings = *req.Ratings
	}
	if req.Comment != nil {
		if len(*req.Comment) == 0 || len(*req.Comment) > maxCommentLength {
			return nil, apperr.Validationf("comment must be 1-%d characters", maxCommentLength)
		}
		rev.Comment = *req.Comment
	}

	now := time.Now()
	rev.IsEdited = true
	rev.EditedAt = &now
	rev.RestaurantResponse = entity.RestaurantResponse{}
	applyModeration(rev)

	err = s.DB.Transaction(func(tx *gorm.DB) error {
		if err := s.Repo.Save(tx, rev); err != nil {
			return err
		}
		return s.recomputeRating(tx, rev.RestaurantID)
	})
	if err != nil {
		return nil, err
	}
	return rev, nil
}

func (s *ReviewService) Delete(customerID, reviewID uint) error {
	rev, err := s.owned(customerID, reviewID)
	if err != nil {
		return err
	}

	for _, img := range rev.Images {
		if img.PublicID != "" {
			// best-effort; a stranded file must not block the delete
			s.Images.Delete(img.PublicID)
		}
	}

	return s.DB.Transaction(func(tx *gorm.DB) error {
		if err := s.Repo.Delete(tx, rev); err != nil {
			return err
		}
		return s.recomputeRating(tx, rev.RestaurantID)
	})
}

func (s *ReviewService) owned(customerID, reviewID uint) (*entity.Review, error) {
	rev, err := s.Repo.ByID(reviewID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperr.NotFoundf("review %d", reviewID)
		}
		return nil, err
	}
	if rev.CustomerID != customerID {
		return nil, apperr.Forbiddenf("review %d", reviewID)
	}
	return rev, nil
}

// Respond attaches the owner's reply to an approved review and notifies the
// reviewer.
func (s *ReviewService) Respond(ownerID, reviewID uint, text string) (*entity.Review, error) {
	rev, err := s.Repo.ByID(reviewID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperr.NotFoundf("review %d", reviewID)
		}
		return nil, err
	}

	owned, err := s.RestRepo.IsOwnedBy(rev.RestaurantID, ownerID)
	if err != nil {
		return nil, err
	}
	if !owned {
		return nil, apperr.Forbiddenf("review %d", reviewID)
	}
	if rev.ModerationStatus != entity.ModerationApproved {
		return nil, apperr.Validationf("cannot respond to unapproved reviews")
	}

	now := time.Now()
	rev.RestaurantResponse = entity.RestaurantResponse{
		Text:          text,
		RespondedAt:   &now,
		RespondedByID: ownerID,
	}
	if err := s.Repo.Save(s.DB, rev); err != nil {
		return nil, err
	}

	if rest, err := s.RestRepo.ByID(rev.RestaurantID); err == nil {
		s.Notifier.Notify(rev.CustomerID, TmplRestaurantResponse(rest.Name), nil, &rev.RestaurantID)
	}
	return rev, nil
}

type HelpfulResult struct {
	HelpfulCount    int  `json:"helpfulCount"`
	IsMarkedHelpful bool `json:"isMarkedHelpful"`
}

// ToggleHelpful flips the caller's helpful vote: first call adds it, the next
// removes it, and so on.
func (s *ReviewService) ToggleHelpful(customerID, reviewID uint) (*HelpfulResult, error) {
	rev, err := s.Repo.ByID(reviewID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperr.NotFoundf("review %d", reviewID)
		}
		return nil, err
	}

	vote, err := s.Repo.FindVote(reviewID, customerID)
	if err != nil && !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, err
	}

	res := &HelpfulResult{}
	err = s.DB.Transaction(func(tx *gorm.DB) error {
		if vote != nil {
			if err := s.Repo.RemoveVote(tx, vote); err != nil {
				return err
			}
			res.HelpfulCount = rev.HelpfulCount - 1
			if res.HelpfulCount < 0 {
				res.HelpfulCount = 0
			}
			res.IsMarkedHelpful = false
		} else {
			if err := s.Repo.AddVote(tx, reviewID, customerID); err != nil {
				return err
			}
			res.HelpfulCount = rev.HelpfulCount + 1
			res.IsMarkedHelpful = true
		}
		return s.Repo.SetHelpfulCount(tx, reviewID, res.HelpfulCount)
	})
	if err != nil {
		return nil, err
	}
	return res, nil
}

type ReviewPage struct {
	Reviews            []entity.Review           `json:"reviews"`
	Total              int64                     `json:"total"`
	RatingDistribution []repository.RatingBucket `json:"ratingDistribution,omitempty"`
}

func (s *ReviewService) ListApproved(restaurantID uint, sort string, page, limit int) (*ReviewPage, error) {
	reviews, total, err := s.Repo.ListApproved(restaurantID, sort, page, limit)
	if err != nil {
		return nil, err
	}
	dist, err := s.Repo.RatingDistribution(restaurantID)
	if err != nil {
		return nil, err
	}
	return &ReviewPage{Reviews: reviews, Total: total, RatingDistribution: dist}, nil
}

type OwnerReviewStats struct {
	TotalReviews   int64   `json:"totalReviews"`
	PendingReviews int64   `json:"pendingReviews"`
	AverageRating  float64 `json:"averageRating"`
}

// OwnerDashboard lists a restaurant's reviews across every moderation state.
func (s *ReviewService) OwnerDashboard(ownerID, restaurantID uint, page, limit int) (*ReviewPage, *OwnerReviewStats, error) {
	owned, err := s.RestRepo.IsOwnedBy(restaurantID, ownerID)
	if err != nil {
		return nil, nil, err
	}
	if !owned {
		return nil, nil, apperr.Forbiddenf("restaurant %d", restaurantID)
	}

	reviews, total, err := s.Repo.ListForRestaurant(restaurantID, page, limit)
	if err != nil {
		return nil, nil, err
	}
	pending, err := s.Repo.CountByStatus(restaurantID, entity.ModerationPending)
	if err != nil {
		return nil, nil, err
	}
	rest, err := s.RestRepo.ByID(restaurantID)
	if err != nil {
		return nil, nil, err
	}

	stats := &OwnerReviewStats{
		TotalReviews:   total,
		PendingReviews: pending,
		AverageRating:  rest.AverageRating,
	}
	return &ReviewPage{Reviews: reviews, Total: total}, stats, nil
}

func (s *ReviewService) ByID(reviewID uint) (*entity.Review, error) {
	rev, err := s.Repo.ByID(reviewID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperr.NotFoundf("review %d", reviewID)
		}
		return nil, err
	}
	return rev, nil
}

func (s *ReviewService) ByOrder(orderID uint) (*entity.Review, error) {
	rev, err := s.Repo.ByOrder(orderID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperr.NotFoundf("review for order %d", orderID)
		}
		return nil, err
	}
	return rev, nil
}

// recomputeRating refreshes the restaurant's derived aggregate: mean overall
// rating over approved reviews, rounded to one decimal, zero when empty.
func (s *ReviewService) recomputeRating(tx *gorm.DB, restaurantID uint) error {
	avg, count, err := s.Repo.ApprovedAverage(tx, restaurantID)
	if err != nil {
		return err
	}
	rounded := math.Round(avg*10) / 10
	return s.RestRepo.UpdateRating(tx, restaurantID, rounded, count)
}
