package services

import (
	"github.com/shopspring/decimal"

	"eventadmissions/internal/domain"
)

// Entry fee multipliers per session-count tier. Food is never discounted.
var (
	factorAllSessions = decimal.NewFromFloat(0.70) // every session of the event selected
	factorFourOrMore  = decimal.NewFromFloat(0.80) // 4+ sessions, but not all
	factorTwoOrThree  = decimal.NewFromFloat(0.90)
	factorSingle      = decimal.NewFromInt(1)
	factorMemberEntry = decimal.Zero // members never pay entry
)

// discountFactor returns the entry fee multiplier for the number of distinct
// sessions selected out of the event's total.
func discountFactor(selectedCount, totalSessions int) decimal.Decimal {
	switch {
	case selectedCount > 0 && selectedCount == totalSessions:
		return factorAllSessions
	case selectedCount >= 4:
		return factorFourOrMore
	case selectedCount >= 2:
		return factorTwoOrThree
	default:
		return factorSingle
	}
}

// computeCost splits the selections into entry and food subtotals and applies
// the session-count discount to the entry subtotal only. Member registrations
// get free entry regardless of tier. All arithmetic is exact; nothing is
// rounded here.
func computeCost(sessions []resolvedSession, totalSessions int, member bool) domain.CostBreakdown {
	entrySubtotal := decimal.Zero
	foodCost := decimal.Zero
	selectedCount := 0

	for _, sel := range sessions {
		hasLine := false
		for _, line := range sel.Lines {
			if line.Quantity <= 0 {
				continue
			}
			hasLine = true
			amount := line.Type.Price.Mul(decimal.NewFromInt(int64(line.Quantity)))
			switch line.Product.Kind {
			case domain.ProductKindEntry:
				entrySubtotal = entrySubtotal.Add(amount)
			case domain.ProductKindFood:
				if !sel.OptOutOfFood {
					foodCost = foodCost.Add(amount)
				}
			}
		}
		if hasLine {
			selectedCount++
		}
	}

	factor := discountFactor(selectedCount, totalSessions)
	if member {
		factor = factorMemberEntry
	}
	entryCost := entrySubtotal.Mul(factor)

	return domain.CostBreakdown{
		EntrySubtotal:   entrySubtotal,
		EntryCost:       entryCost,
		FoodCost:        foodCost,
		TotalCost:       entryCost.Add(foodCost),
		DiscountApplied: factor.LessThan(decimal.NewFromInt(1)),
		DiscountFactor:  factor,
	}
}
