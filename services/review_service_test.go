package services

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"

	"github.com/my-lord1/food-delivery-backend/entity"
	"github.com/my-lord1/food-delivery-backend/pkg/apperr"
	"github.com/my-lord1/food-delivery-backend/pkg/imagestore"
	"github.com/my-lord1/food-delivery-backend/repository"
)

type fakeImageStore struct {
	deleted []string
}

func (f *fakeImageStore) Upload(data []byte, ext string) (*imagestore.Stored, error) {
	return &imagestore.Stored{URL: "/uploads/img" + ext, PublicID: "img" + ext}, nil
}

func (f *fakeImageStore) Delete(publicID string) error {
	f.deleted = append(f.deleted, publicID)
	return nil
}

type reviewEnv struct {
	db      *gorm.DB
	reviews *ReviewService
	images  *fakeImageStore
}

func newReviewEnv(t *testing.T) *reviewEnv {
	t.Helper()
	db := openTestDB(t)
	images := &fakeImageStore{}
	notifier := NewNotificationService(repository.NewNotificationRepository(db), nil)
	svc := NewReviewService(
		db,
		repository.NewReviewRepository(db),
		repository.NewOrderRepository(db),
		repository.NewRestaurantRepository(db),
		notifier,
		images,
	)
	return &reviewEnv{db: db, reviews: svc, images: images}
}

func deliveredOrder(t *testing.T, db *gorm.DB, customerID, restaurantID uint) *entity.Order {
	t.Helper()
	o := &entity.Order{
		OrderNumber:  GenerateOrderNumber(),
		CustomerID:   customerID,
		RestaurantID: restaurantID,
		Status:       entity.OrderDelivered,
	}
	require.NoError(t, db.Create(o).Error)
	return o
}

func ratings(n int) entity.Ratings {
	return entity.Ratings{Food: n, Delivery: n, Overall: n}
}

func TestReviewCreateApproved(t *testing.T) {
	env := newReviewEnv(t)
	owner := createUser(t, env.db, "owner@example.com")
	customer := createUser(t, env.db, "customer@example.com")
	rest := createRestaurant(t, env.db, owner.ID, 0, 0)
	o := deliveredOrder(t, env.db, customer.ID, rest.ID)

	rev, err := env.reviews.Create(customer.ID, &CreateReviewReq{
		OrderID: o.ID,
		Ratings: ratings(5),
		Comment: "Lovely food, generous portions, quick delivery",
	})
	require.NoError(t, err)

	assert.Equal(t, entity.ModerationApproved, rev.ModerationStatus)
	assert.True(t, rev.AutoModeration.IsAutoApproved)
	assert.Equal(t, 100, rev.AutoModeration.Score)

	var stored entity.Order
	require.NoError(t, env.db.First(&stored, o.ID).Error)
	assert.True(t, stored.IsReviewed)

	var updatedRest entity.Restaurant
	require.NoError(t, env.db.First(&updatedRest, rest.ID).Error)
	assert.Equal(t, 5.0, updatedRest.AverageRating)
	assert.EqualValues(t, 1, updatedRest.TotalReviews)
}

func TestReviewCreateRequiresDeliveredOrder(t *testing.T) {
	env := newReviewEnv(t)
	owner := createUser(t, env.db, "owner@example.com")
	customer := createUser(t, env.db, "customer@example.com")
	rest := createRestaurant(t, env.db, owner.ID, 0, 0)

	o := &entity.Order{CustomerID: customer.ID, RestaurantID: rest.ID, Status: entity.OrderPlaced}
	require.NoError(t, env.db.Create(o).Error)

	_, err := env.reviews.Create(customer.ID, &CreateReviewReq{
		OrderID: o.ID, Ratings: ratings(4), Comment: "Looks promising so far",
	})
	assert.ErrorIs(t, err, apperr.ErrValidation)
}

func TestReviewCreateOncePerOrder(t *testing.T) {
	env := newReviewEnv(t)
	owner := createUser(t, env.db, "owner@example.com")
	customer := createUser(t, env.db, "customer@example.com")
	rest := createRestaurant(t, env.db, owner.ID, 0, 0)
	o := deliveredOrder(t, env.db, customer.ID, rest.ID)

	req := &CreateReviewReq{OrderID: o.ID, Ratings: ratings(4), Comment: "Really enjoyed the meal tonight"}
	_, err := env.reviews.Create(customer.ID, req)
	require.NoError(t, err)

	_, err = env.reviews.Create(customer.ID, req)
	assert.ErrorIs(t, err, apperr.ErrValidation)
}

func TestReviewCreateForeignOrderForbidden(t *testing.T) {
	env := newReviewEnv(t)
	owner := createUser(t, env.db, "owner@example.com")
	customer := createUser(t, env.db, "customer@example.com")
	stranger := createUser(t, env.db, "stranger@example.com")
	rest := createRestaurant(t, env.db, owner.ID, 0, 0)
	o := deliveredOrder(t, env.db, customer.ID, rest.ID)

	_, err := env.reviews.Create(stranger.ID, &CreateReviewReq{
		OrderID: o.ID, Ratings: ratings(4), Comment: "Not my order but trying anyway",
	})
	assert.ErrorIs(t, err, apperr.ErrForbidden)
}

func TestReviewRatingBadRange(t *testing.T) {
	env := newReviewEnv(t)
	owner := createUser(t, env.db, "owner@example.com")
	customer := createUser(t, env.db, "customer@example.com")
	rest := createRestaurant(t, env.db, owner.ID, 0, 0)
	o := deliveredOrder(t, env.db, customer.ID, rest.ID)

	_, err := env.reviews.Create(customer.ID, &CreateReviewReq{
		OrderID: o.ID,
		Ratings: entity.Ratings{Food: 6, Delivery: 4, Overall: 4},
		Comment: "Rating out of range should fail",
	})
	assert.ErrorIs(t, err, apperr.ErrValidation)
}

func TestReviewAggregateUsesApprovedOnly(t *testing.T) {
	env := newReviewEnv(t)
	owner := createUser(t, env.db, "owner@example.com")
	rest := createRestaurant(t, env.db, owner.ID, 0, 0)

	c1 := createUser(t, env.db, "one@example.com")
	c2 := createUser(t, env.db, "two@example.com")
	c3 := createUser(t, env.db, "three@example.com")
	o1 := deliveredOrder(t, env.db, c1.ID, rest.ID)
	o2 := deliveredOrder(t, env.db, c2.ID, rest.ID)
	o3 := deliveredOrder(t, env.db, c3.ID, rest.ID)

	_, err := env.reviews.Create(c1.ID, &CreateReviewReq{
		OrderID: o1.ID, Ratings: ratings(4), Comment: "Solid flavours and quick delivery",
	})
	require.NoError(t, err)
	_, err = env.reviews.Create(c2.ID, &CreateReviewReq{
		OrderID: o2.ID, Ratings: ratings(5), Comment: "Fantastic meal, would order again",
	})
	require.NoError(t, err)

	// flagged review must not move the aggregate
	flagged, err := env.reviews.Create(c3.ID, &CreateReviewReq{
		OrderID: o3.ID, Ratings: ratings(1), Comment: "WORST FAKE FOOD CALL 9876543210 TOTAL SCAM",
	})
	require.NoError(t, err)
	require.Equal(t, entity.ModerationFlagged, flagged.ModerationStatus)

	var updatedRest entity.Restaurant
	require.NoError(t, env.db.First(&updatedRest, rest.ID).Error)
	assert.Equal(t, 4.5, updatedRest.AverageRating)
	assert.EqualValues(t, 2, updatedRest.TotalReviews)
}

func TestReviewUpdateRescoresAndClearsResponse(t *testing.T) {
	env := newReviewEnv(t)
	owner := createUser(t, env.db, "owner@example.com")
	customer := createUser(t, env.db, "customer@example.com")
	rest := createRestaurant(t, env.db, owner.ID, 0, 0)
	o := deliveredOrder(t, env.db, customer.ID, rest.ID)

	rev, err := env.reviews.Create(customer.ID, &CreateReviewReq{
		OrderID: o.ID, Ratings: ratings(5), Comment: "Great food and friendly staff",
	})
	require.NoError(t, err)

	_, err = env.reviews.Respond(owner.ID, rev.ID, "Thank you, see you soon!")
	require.NoError(t, err)

	comment := "buy now at https://deals.example.org today"
	newRatings := ratings(2)
	updated, err := env.reviews.Update(customer.ID, rev.ID, &UpdateReviewReq{
		Ratings: &newRatings,
		Comment: &comment,
	})
	require.NoError(t, err)

	assert.True(t, updated.IsEdited)
	assert.NotNil(t, updated.EditedAt)
	assert.Equal(t, entity.ModerationPending, updated.ModerationStatus)
	assert.Empty(t, updated.RestaurantResponse.Text)
	assert.Nil(t, updated.RestaurantResponse.RespondedAt)

	// pending review no longer counts toward the aggregate
	var updatedRest entity.Restaurant
	require.NoError(t, env.db.First(&updatedRest, rest.ID).Error)
	assert.Equal(t, 0.0, updatedRest.AverageRating)
	assert.EqualValues(t, 0, updatedRest.TotalReviews)
}

func TestReviewDeleteRecomputesAndRemovesImages(t *testing.T) {
	env := newReviewEnv(t)
	owner := createUser(t, env.db, "owner@example.com")
	customer := createUser(t, env.db, "customer@example.com")
	rest := createRestaurant(t, env.db, owner.ID, 0, 0)
	o := deliveredOrder(t, env.db, customer.ID, rest.ID)

	rev, err := env.reviews.Create(customer.ID, &CreateReviewReq{
		OrderID: o.ID,
		Ratings: ratings(5),
		Comment: "Great food and friendly staff",
		Images:  []entity.Image{{URL: "/uploads/img.jpg", PublicID: "img.jpg"}},
	})
	require.NoError(t, err)

	require.NoError(t, env.reviews.Delete(customer.ID, rev.ID))
	assert.Equal(t, []string{"img.jpg"}, env.images.deleted)

	var updatedRest entity.Restaurant
	require.NoError(t, env.db.First(&updatedRest, rest.ID).Error)
	assert.Equal(t, 0.0, updatedRest.AverageRating)
	assert.EqualValues(t, 0, updatedRest.TotalReviews)
}

func TestReviewToggleHelpful(t *testing.T) {
	env := newReviewEnv(t)
	owner := createUser(t, env.db, "owner@example.com")
	customer := createUser(t, env.db, "customer@example.com")
	voter := createUser(t, env.db, "voter@example.com")
	rest := createRestaurant(t, env.db, owner.ID, 0, 0)
	o := deliveredOrder(t, env.db, customer.ID, rest.ID)

	rev, err := env.reviews.Create(customer.ID, &CreateReviewReq{
		OrderID: o.ID, Ratings: ratings(5), Comment: "Great food and friendly staff",
	})
	require.NoError(t, err)

	res, err := env.reviews.ToggleHelpful(voter.ID, rev.ID)
	require.NoError(t, err)
	assert.True(t, res.IsMarkedHelpful)
	assert.Equal(t, 1, res.HelpfulCount)

	res, err = env.reviews.ToggleHelpful(voter.ID, rev.ID)
	require.NoError(t, err)
	assert.False(t, res.IsMarkedHelpful)
	assert.Equal(t, 0, res.HelpfulCount)

	res, err = env.reviews.ToggleHelpful(voter.ID, rev.ID)
	require.NoError(t, err)
	assert.True(t, res.IsMarkedHelpful)
	assert.Equal(t, 1, res.HelpfulCount)
}

func TestReviewRespondRules(t *testing.T) {
	env := newReviewEnv(t)
	owner := createUser(t, env.db, "owner@example.com")
	customer := createUser(t, env.db, "customer@example.com")
	stranger := createUser(t, env.db, "stranger@example.com")
	rest := createRestaurant(t, env.db, owner.ID, 0, 0)
	o := deliveredOrder(t, env.db, customer.ID, rest.ID)

	rev, err := env.reviews.Create(customer.ID, &CreateReviewReq{
		OrderID: o.ID, Ratings: ratings(5), Comment: "Great food and friendly staff",
	})
	require.NoError(t, err)

	_, err = env.reviews.Respond(stranger.ID, rev.ID, "not mine")
	assert.ErrorIs(t, err, apperr.ErrForbidden)

	responded, err := env.reviews.Respond(owner.ID, rev.ID, "Thank you!")
	require.NoError(t, err)
	assert.Equal(t, "Thank you!", responded.RestaurantResponse.Text)
	assert.Equal(t, owner.ID, responded.RestaurantResponse.RespondedByID)

	// the reviewer is told about the reply
	var n int64
	require.NoError(t, env.db.Model(&entity.Notification{}).
		Where("recipient_id = ? AND type = ?", customer.ID, "restaurant_response").
		Count(&n).Error)
	assert.EqualValues(t, 1, n)
}

func TestReviewRespondRequiresApproved(t *testing.T) {
	env := newReviewEnv(t)
	owner := createUser(t, env.db, "owner@example.com")
	customer := createUser(t, env.db, "customer@example.com")
	rest := createRestaurant(t, env.db, owner.ID, 0, 0)
	o := deliveredOrder(t, env.db, customer.ID, rest.ID)

	rev, err := env.reviews.Create(customer.ID, &CreateReviewReq{
		OrderID: o.ID, Ratings: ratings(2), Comment: "buy now at https://deals.example.org today",
	})
	require.NoError(t, err)
	require.Equal(t, entity.ModerationPending, rev.ModerationStatus)

	_, err = env.reviews.Respond(owner.ID, rev.ID, "please reconsider")
	assert.ErrorIs(t, err, apperr.ErrValidation)
}
