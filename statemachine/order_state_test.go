package statemachine

import (
	"testing"

	"food-marketplace-api/apperr"
	"food-marketplace-api/models"

	"github.com/stretchr/testify/assert"
)

func TestCanTransition(t *testing.T) {
	tests := []struct {
		name    string
		from    models.OrderStatus
		to      models.OrderStatus
		actor   Actor
		wantErr bool
	}{
		{"restaurant starts processing", models.StatusPending, models.StatusProcessing, ActorRestaurant, false},
		{"restaurant skips processing", models.StatusPending, models.StatusDelivered, ActorRestaurant, false},
		{"restaurant cancels while processing", models.StatusProcessing, models.StatusCancelled, ActorRestaurant, false},
		{"restaurant reopens delivered order", models.StatusDelivered, models.StatusPending, ActorRestaurant, false},
		{"admin anything", models.StatusCancelled, models.StatusDelivered, ActorAdmin, false},
		{"customer cancels pending", models.StatusPending, models.StatusCancelled, ActorCustomer, false},
		{"customer cannot cancel processing", models.StatusProcessing, models.StatusCancelled, ActorCustomer, true},
		{"customer cannot deliver", models.StatusPending, models.StatusDelivered, ActorCustomer, true},
		{"unknown status", models.OrderStatus("PLACED"), models.StatusDelivered, ActorRestaurant, true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := CanTransition(tt.from, tt.to, tt.actor)
			if tt.wantErr {
				assert.ErrorIs(t, err, apperr.ErrConflict)
			} else {
				assert.NoError(t, err)
			}
		})
	}
}

func TestValidTransitionsFrom(t *testing.T) {
	assert.Equal(t, []models.OrderStatus{models.StatusCancelled}, ValidTransitionsFrom(models.StatusPending, ActorCustomer))
	assert.Empty(t, ValidTransitionsFrom(models.StatusDelivered, ActorCustomer))
	assert.ElementsMatch(t, models.OrderStatuses, ValidTransitionsFrom(models.StatusDelivered, ActorRestaurant))
}

func TestCanTransition_ErrorListsOptions(t *testing.T) {
	err := CanTransition(models.StatusProcessing, models.StatusCancelled, ActorCustomer)
	assert.Contains(t, err.Error(), "Valid transitions from processing are: none")
}

func TestParseOrderStatus(t *testing.T) {
	tests := []struct {
		in   string
		want models.OrderStatus
		ok   bool
	}{
		{"Pending", models.StatusPending, true},
		{"pending", models.StatusPending, true},
		{"processing", models.StatusProcessing, true},
		{"Processing", models.StatusProcessing, true},
		{" delivered ", models.StatusDelivered, true},
		{"CANCELLED", models.StatusCancelled, true},
		{"canceled", "", false},
		{"", "", false},
	}
	for _, tt := range tests {
		got, ok := models.ParseOrderStatus(tt.in)
		assert.Equal(t, tt.ok, ok, tt.in)
		assert.Equal(t, tt.want, got, tt.in)
	}
}
