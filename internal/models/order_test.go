package models_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"salsa-storefront/internal/models"
)

func TestOrderStatusTransitions(t *testing.T) {
	cases := []struct {
		from models.OrderStatus
		to   models.OrderStatus
		ok   bool
	}{
		{models.StatusPending, models.StatusConfirmed, true},
		{models.StatusPending, models.StatusCancelled, true},
		{models.StatusPending, models.StatusReady, false},
		{models.StatusConfirmed, models.StatusPreparing, true},
		{models.StatusPreparing, models.StatusReady, true},
		{models.StatusReady, models.StatusCompleted, true},
		{models.StatusCompleted, models.StatusPending, false},
		{models.StatusCompleted, models.StatusCancelled, false},
		{models.StatusCancelled, models.StatusPending, true},
		{models.StatusCancelled, models.StatusConfirmed, false},
	}

	for _, tc := range cases {
		assert.Equalf(t, tc.ok, tc.from.CanTransitionTo(tc.to), "%s -> %s", tc.from, tc.to)
	}
}

func TestCompletedIsTerminal(t *testing.T) {
	assert.Empty(t, models.StatusCompleted.NextStatuses())
}

func TestOrderStatusValid(t *testing.T) {
	for _, s := range []models.OrderStatus{
		models.StatusPending, models.StatusConfirmed, models.StatusPreparing,
		models.StatusReady, models.StatusCompleted, models.StatusCancelled,
	} {
		assert.True(t, s.Valid(), string(s))
	}
	assert.False(t, models.OrderStatus("shipped").Valid())
}

func TestSalsaSizeValid(t *testing.T) {
	for _, s := range []models.SalsaSize{
		models.Size4oz, models.Size8oz, models.Size12oz, models.Size1gal,
	} {
		assert.True(t, s.Valid(), string(s))
	}
	assert.False(t, models.SalsaSize("2oz").Valid())
}

func TestValidEvent(t *testing.T) {
	event := models.Event{
		ID:        "1",
		Title:     "Farmers Market",
		Location:  "Main Plaza",
		Address:   "100 Main St",
		Date:      "2025-12-01",
		StartTime: "9:00 AM",
		EndTime:   "1:00 PM",
	}
	assert.True(t, models.ValidEvent(event))

	missingDate := event
	missingDate.Date = ""
	assert.False(t, models.ValidEvent(missingDate))

	missingTitle := event
	missingTitle.Title = ""
	assert.False(t, models.ValidEvent(missingTitle))
}
