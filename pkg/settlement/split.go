// Package settlement computes how one haircut credit is divided between salon and platform.
package settlement

import (
	"errors"
	"fmt"

	"github.com/shopspring/decimal"
)

// CurrencyPrecision is the number of decimal places of the smallest currency unit
const CurrencyPrecision int32 = 2

var ErrInvalidPlan = errors.New("settlement: invalid plan input")

var hundred = decimal.NewFromInt(100)

// Split is the result of dividing one credit's value
type Split struct {
	PricePerHaircut  decimal.Decimal
	AmountToSalon    decimal.Decimal
	AmountToPlatform decimal.Decimal
}

// ComputeSplit divides planPrice by the monthly quota and pays commissionRatePercent of it
// to the salon.
//
// Rounding: every intermediate value stays exact. The per haircut price and the salon
// amount are each rounded once, half-to-even, to the currency precision. The platform
// amount is the difference of the two rounded values, so salon + platform always equals
// the rounded per haircut price.
func ComputeSplit(planPrice decimal.Decimal, creditsPerMonth int, commissionRatePercent decimal.Decimal) (Split, error) {
	if creditsPerMonth <= 0 {
		return Split{}, fmt.Errorf("%w: credits per month must be positive, got %d", ErrInvalidPlan, creditsPerMonth)
	}
	if planPrice.IsNegative() {
		return Split{}, fmt.Errorf("%w: negative price %s", ErrInvalidPlan, planPrice)
	}
	if commissionRatePercent.IsNegative() || commissionRatePercent.GreaterThan(hundred) {
		return Split{}, fmt.Errorf("%w: commission rate %s outside 0..100", ErrInvalidPlan, commissionRatePercent)
	}

	credits := decimal.NewFromInt(int64(creditsPerMonth))

	// price * rate / (credits * 100) keeps a single division for the salon share
	exactSalon := planPrice.Mul(commissionRatePercent).Div(credits.Mul(hundred))

	pricePerHaircut := planPrice.Div(credits).RoundBank(CurrencyPrecision)
	amountToSalon := exactSalon.RoundBank(CurrencyPrecision)
	if amountToSalon.GreaterThan(pricePerHaircut) {
		amountToSalon = pricePerHaircut
	}

	return Split{
		PricePerHaircut:  pricePerHaircut,
		AmountToSalon:    amountToSalon,
		AmountToPlatform: pricePerHaircut.Sub(amountToSalon),
	}, nil
}
