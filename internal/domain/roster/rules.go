package roster

import (
	"errors"
	"fmt"

	"github.com/gridrivals/fantasy-motorsport/internal/domain/constructor"
	"github.com/gridrivals/fantasy-motorsport/internal/domain/rider"
)

var (
	ErrInvalidRosterSize   = errors.New("invalid roster size")
	ErrExceededBudget      = errors.New("budget cap exceeded")
	ErrDuplicateRider      = errors.New("duplicate rider in roster")
	ErrUnknownRider        = errors.New("unknown rider")
	ErrUnknownConstructor  = errors.New("unknown constructor")
	ErrConstructorRequired = errors.New("constructor is required")
	ErrConstructorDisabled = errors.New("constructors are not enabled")
)

// Rules stores roster validation parameters and the engine capabilities.
// Historical variants of the engine (with/without constructors, with/without
// a sprint split) are all configurations of this one struct.
type Rules struct {
	RosterSize      int
	BudgetCap       int64
	HasConstructors bool
	HasSprintPoints bool
}

func DefaultRules() Rules {
	return Rules{
		RosterSize:      4,
		BudgetCap:       1000,
		HasConstructors: true,
		HasSprintPoints: true,
	}
}

// Validate checks a candidate roster against the rules and current prices.
// The cost check covers the riders plus the constructor when one is picked.
func Validate(r Roster, riders []rider.Rider, constructors []constructor.Constructor, rules Rules) error {
	if len(r.RiderIDs) != rules.RosterSize {
		return fmt.Errorf("%w: expected %d, got %d", ErrInvalidRosterSize, rules.RosterSize, len(r.RiderIDs))
	}
	if r.ConstructorID != "" && !rules.HasConstructors {
		return fmt.Errorf("%w: constructor=%s", ErrConstructorDisabled, r.ConstructorID)
	}
	if r.ConstructorID == "" && rules.HasConstructors {
		return ErrConstructorRequired
	}

	riderByID := make(map[string]rider.Rider, len(riders))
	for _, item := range riders {
		riderByID[item.ID] = item
	}

	seen := make(map[string]struct{}, len(r.RiderIDs))
	var totalCost int64
	for _, riderID := range r.RiderIDs {
		if _, exists := seen[riderID]; exists {
			return fmt.Errorf("%w: %s", ErrDuplicateRider, riderID)
		}
		seen[riderID] = struct{}{}

		item, ok := riderByID[riderID]
		if !ok {
			return fmt.Errorf("%w: %s", ErrUnknownRider, riderID)
		}
		totalCost += item.Price
	}

	if r.ConstructorID != "" {
		found := false
		for _, item := range constructors {
			if item.ID == r.ConstructorID {
				totalCost += item.Price
				found = true
				break
			}
		}
		if !found {
			return fmt.Errorf("%w: %s", ErrUnknownConstructor, r.ConstructorID)
		}
	}

	if totalCost > rules.BudgetCap {
		return fmt.Errorf("%w: cap=%d used=%d", ErrExceededBudget, rules.BudgetCap, totalCost)
	}

	return nil
}

// Cost sums the roster's current market price. Unknown ids contribute zero.
func Cost(r Roster, riders []rider.Rider, constructors []constructor.Constructor) int64 {
	var total int64
	for _, riderID := range r.RiderIDs {
		for _, item := range riders {
			if item.ID == riderID {
				total += item.Price
				break
			}
		}
	}
	if r.ConstructorID != "" {
		for _, item := range constructors {
			if item.ID == r.ConstructorID {
				total += item.Price
				break
			}
		}
	}

	return total
}
