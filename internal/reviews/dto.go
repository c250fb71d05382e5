package reviews

import (
	"github.com/google/uuid"

	"github.com/mercato-app/mercato-backend/pkg/db/models"
)

// CreateReviewDTO carries the validated payload for a new review.
type CreateReviewDTO struct {
	OrderID uuid.UUID
	Rating  int
	Comment string
}

// ToModel converts the DTO into a persistable review for the given user.
func (d CreateReviewDTO) ToModel(userID uuid.UUID) *models.Review {
	return &models.Review{
		ID:      uuid.New(),
		OrderID: d.OrderID,
		UserID:  userID,
		Rating:  d.Rating,
		Comment: d.Comment,
	}
}
