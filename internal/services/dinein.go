package services

import (
	"fmt"

	"eventadmissions/internal/domain"
)

// resolvedLine is a product selection resolved against the catalog.
type resolvedLine struct {
	Product  *domain.Product
	Type     *domain.ProductType
	Quantity int
}

// resolvedSession is one session's selections after catalog resolution.
type resolvedSession struct {
	Session      *domain.Session
	OptOutOfFood bool
	Lines        []resolvedLine
}

// validateDineIn checks one session's food selections against the registrant's
// headcounts. Sessions opted out of food must carry no food lines at all.
// Otherwise, dine-in food quantities grouped by person size must equal the
// matching headcount exactly for every size that appears in the selection with
// a non-zero headcount. Sizes with zero headcount are exempt even when dine-in
// lines exist for them; packet and plain food quantities are unconstrained.
func validateDineIn(sel resolvedSession, headcounts domain.Headcounts) error {
	if sel.OptOutOfFood {
		for _, line := range sel.Lines {
			if line.Product.Kind == domain.ProductKindFood && line.Quantity > 0 {
				return fmt.Errorf("session %s opted out of food but has food selections: %w", sel.Session.ID, domain.ErrInvalidSelection)
			}
		}
		return nil
	}

	dineInBySize := make(map[domain.ProductSize]int)
	for _, line := range sel.Lines {
		if line.Product.Kind != domain.ProductKindFood || line.Type.Subtype != domain.SubtypeDineIn {
			continue
		}
		dineInBySize[line.Type.Size] += line.Quantity
	}

	for size, selected := range dineInBySize {
		required := headcounts.ForSize(size)
		if required == 0 {
			continue
		}
		if selected != required {
			return &domain.DineInMismatchError{
				SessionID: sel.Session.ID,
				Category:  size,
				Required:  required,
				Selected:  selected,
			}
		}
	}
	return nil
}
