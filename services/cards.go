package services

import (
	"context"
	"fmt"
	"strings"
	"time"

	"food-marketplace-api/apperr"
	"food-marketplace-api/authz"
	"food-marketplace-api/models"
	"food-marketplace-api/repository"
	"food-marketplace-api/vault"
)

// CardService keeps at most one payment card per user. The number is sealed
// before it reaches the database and is never returned.
type CardService struct {
	cards  *repository.CardRepository
	sealer *vault.Sealer
	now    func() time.Time
}

func NewCardService(store *repository.Store, sealer *vault.Sealer) *CardService {
	return &CardService{
		cards:  repository.NewCardRepository(store),
		sealer: sealer,
		now:    time.Now,
	}
}

type CardInput struct {
	HolderName string
	Number     string
	ExpMonth   int
	ExpYear    int
}

// Save replaces the caller's card.
func (s *CardService) Save(ctx context.Context, caller authz.Caller, in CardInput) (*models.Card, error) {
	if err := caller.Require(models.RoleCustomer, models.RoleRestaurantOwner, models.RoleAdmin); err != nil {
		return nil, err
	}
	holder := strings.TrimSpace(in.HolderName)
	if holder == "" {
		return nil, apperr.InvalidArgument("card holder name is required")
	}
	number := strings.NewReplacer(" ", "", "-", "").Replace(in.Number)
	if !validCardNumber(number) {
		return nil, apperr.InvalidArgument("card number is invalid")
	}
	if in.ExpMonth < 1 || in.ExpMonth > 12 {
		return nil, apperr.InvalidArgument("expiry month must be between 1 and 12")
	}
	now := s.now().UTC()
	// A card is valid through the last day of its expiry month.
	if in.ExpYear < now.Year() || (in.ExpYear == now.Year() && in.ExpMonth < int(now.Month())) {
		return nil, apperr.InvalidArgument("card has expired")
	}

	sealed, err := s.sealer.Seal([]byte(number), cardAD(caller.UserID))
	if err != nil {
		return nil, err
	}
	card := &models.Card{
		UserID:     caller.UserID,
		HolderName: holder,
		Brand:      cardBrand(number),
		Last4:      number[len(number)-4:],
		ExpMonth:   in.ExpMonth,
		ExpYear:    in.ExpYear,
		Sealed:     sealed,
	}
	if err := s.cards.Replace(ctx, card); err != nil {
		return nil, err
	}
	return card, nil
}

func (s *CardService) Get(ctx context.Context, caller authz.Caller) (*models.Card, error) {
	if err := caller.Require(models.RoleCustomer, models.RoleRestaurantOwner, models.RoleAdmin); err != nil {
		return nil, err
	}
	return s.cards.GetByUser(ctx, caller.UserID)
}

func (s *CardService) Delete(ctx context.Context, caller authz.Caller) error {
	if _, err := s.Get(ctx, caller); err != nil {
		return err
	}
	return s.cards.DeleteByUser(ctx, caller.UserID)
}

// cardAD binds a sealed number to its owner so rows cannot be swapped.
func cardAD(userID uint) []byte {
	return []byte(fmt.Sprintf("user:%d", userID))
}

// validCardNumber checks length and the Luhn checksum.
func validCardNumber(number string) bool {
	if len(number) < 12 || len(number) > 19 {
		return false
	}
	sum := 0
	double := false
	for i := len(number) - 1; i >= 0; i-- {
		c := number[i]
		if c < '0' || c > '9' {
			return false
		}
		d := int(c - '0')
		if double {
			d *= 2
			if d > 9 {
				d -= 9
			}
		}
		sum += d
		double = !double
	}
	return sum%10 == 0
}

func cardBrand(number string) string {
	switch {
	case strings.HasPrefix(number, "4"):
		return "visa"
	case hasPrefixRange(number, 51, 55, 2) || hasPrefixRange(number, 2221, 2720, 4):
		return "mastercard"
	case strings.HasPrefix(number, "34") || strings.HasPrefix(number, "37"):
		return "amex"
	case strings.HasPrefix(number, "6011") || strings.HasPrefix(number, "65"):
		return "discover"
	default:
		return "unknown"
	}
}

func hasPrefixRange(number string, lo, hi, digits int) bool {
	if len(number) < digits {
		return false
	}
	p := 0
	for _, c := range number[:digits] {
		p = p*10 + int(c-'0')
	}
	return p >= lo && p <= hi
}
