package services

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"toiletBack/internal/models"
)

func TestValidateReviewCollectsAllErrors(t *testing.T) {
	_, err := validateReview(models.ReviewRequest{
		Cleanliness: ip(0),
		Smell:       ip(6),
	})
	var v *models.ValidationError
	require.True(t, errors.As(err, &v))
	assert.Contains(t, v.Fields, "rating")
	assert.Contains(t, v.Fields, "cleanliness")
	assert.Contains(t, v.Fields, "smell")
	assert.NotContains(t, v.Fields, "stock")
}

func TestValidateReviewRatingRange(t *testing.T) {
	_, err := validateReview(models.ReviewRequest{Rating: ip(6)})
	var v *models.ValidationError
	require.True(t, errors.As(err, &v))
	assert.Contains(t, v.Fields, "rating")

	review, err := validateReview(models.ReviewRequest{Rating: ip(5), Stock: ip(3)})
	require.NoError(t, err)
	assert.Equal(t, 5, review.Rating)
	require.NotNil(t, review.Stock)
	assert.Equal(t, 3, *review.Stock)
}

func TestValidateReviewBlankTextBecomesNull(t *testing.T) {
	review, err := validateReview(models.ReviewRequest{Rating: ip(4), Text: sp("   ")})
	require.NoError(t, err)
	assert.Nil(t, review.Text)

	review, err = validateReview(models.ReviewRequest{Rating: ip(4), Text: sp("spotless")})
	require.NoError(t, err)
	require.NotNil(t, review.Text)
	assert.Equal(t, "spotless", *review.Text)
}
