package services

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"toiletBack/internal/models"
)

func TestSessionToiletIDsDeduplicates(t *testing.T) {
	sessions := []models.UsageSession{
		{ID: 1, ToiletID: 4},
		{ID: 2, ToiletID: 9},
		{ID: 3, ToiletID: 4},
		{ID: 4, ToiletID: 2},
	}
	assert.Equal(t, []int{4, 9, 2}, sessionToiletIDs(sessions))
	assert.Nil(t, sessionToiletIDs(nil))
}
