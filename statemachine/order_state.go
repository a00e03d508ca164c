package statemachine

import (
	"fmt"
	"strings"

	"food-marketplace-api/apperr"
	"food-marketplace-api/models"
)

// Actor is the capacity in which a caller changes an order.
type Actor string

const (
	ActorCustomer   Actor = "customer"
	ActorRestaurant Actor = "restaurant"
	ActorAdmin      Actor = "admin"
)

// Transition defines a valid state change and who can perform it
type Transition struct {
	From  models.OrderStatus `json:"from"`
	To    models.OrderStatus `json:"to"`
	Actor Actor              `json:"actor"`
}

// validTransitions is the authoritative state machine definition.
//
// The restaurant and admins may move an order between any whitelisted
// statuses, skipping steps and leaving delivered/cancelled included. The
// customer may only cancel an order the restaurant has not picked up yet.
var validTransitions = func() []Transition {
	ts := []Transition{
		{From: models.StatusPending, To: models.StatusCancelled, Actor: ActorCustomer},
	}
	for _, actor := range []Actor{ActorRestaurant, ActorAdmin} {
		for _, from := range models.OrderStatuses {
			for _, to := range models.OrderStatuses {
				ts = append(ts, Transition{From: from, To: to, Actor: actor})
			}
		}
	}
	return ts
}()

// nominal is the happy path documented to clients; it does not restrict anything.
var nominal = []Transition{
	{From: models.StatusPending, To: models.StatusProcessing, Actor: ActorRestaurant},
	{From: models.StatusProcessing, To: models.StatusDelivered, Actor: ActorRestaurant},
	{From: models.StatusPending, To: models.StatusCancelled, Actor: ActorRestaurant},
	{From: models.StatusProcessing, To: models.StatusCancelled, Actor: ActorRestaurant},
	{From: models.StatusPending, To: models.StatusCancelled, Actor: ActorCustomer},
}

// transitionKey is used to look up valid transitions quickly
type transitionKey struct {
	From  models.OrderStatus
	To    models.OrderStatus
	Actor Actor
}

var transitionMap = func() map[transitionKey]bool {
	m := make(map[transitionKey]bool)
	for _, t := range validTransitions {
		m[transitionKey{t.From, t.To, t.Actor}] = true
	}
	return m
}()

// ValidTransitionsFrom returns all valid next states from a given state for actor
func ValidTransitionsFrom(status models.OrderStatus, actor Actor) []models.OrderStatus {
	var nexts []models.OrderStatus
	seen := map[models.OrderStatus]bool{}
	for _, t := range validTransitions {
		if t.From == status && t.Actor == actor && !seen[t.To] {
			nexts = append(nexts, t.To)
			seen[t.To] = true
		}
	}
	return nexts
}

// CanTransition checks if a given actor can move from one state to another
func CanTransition(from, to models.OrderStatus, actor Actor) error {
	if transitionMap[transitionKey{From: from, To: to, Actor: actor}] {
		return nil
	}
	return apperr.Conflict("invalid transition: %s → %s is not allowed for actor '%s'. Valid transitions from %s are: %s",
		from, to, actor, from, describeValidFrom(from, actor))
}

func describeValidFrom(status models.OrderStatus, actor Actor) string {
	nexts := ValidTransitionsFrom(status, actor)
	if len(nexts) == 0 {
		return "none"
	}
	s := make([]string, len(nexts))
	for i, n := range nexts {
		s[i] = string(n)
	}
	return strings.Join(s, ", ")
}

// NominalTransitions returns the documented happy-path lifecycle
func NominalTransitions() []Transition {
	return nominal
}

// String renders a transition for logs.
func (t Transition) String() string {
	return fmt.Sprintf("%s -> %s (%s)", t.From, t.To, t.Actor)
}
