package roster

import (
	"errors"
	"testing"

	"github.com/gridrivals/fantasy-motorsport/internal/domain/constructor"
	"github.com/gridrivals/fantasy-motorsport/internal/domain/rider"
)

func TestValidate(t *testing.T) {
	riders := []rider.Rider{
		{ID: "r1", Name: "Rider One", Price: 200},
		{ID: "r2", Name: "Rider Two", Price: 200},
		{ID: "r3", Name: "Rider Three", Price: 200},
		{ID: "r4", Name: "Rider Four", Price: 200},
		{ID: "r5", Name: "Rider Five", Price: 900},
	}
	constructors := []constructor.Constructor{
		{ID: "c1", Name: "Alpha Racing", Price: 150},
	}
	rules := Rules{RosterSize: 4, BudgetCap: 1000, HasConstructors: true}

	valid := Roster{RiderIDs: []string{"r1", "r2", "r3", "r4"}, ConstructorID: "c1"}

	tests := []struct {
		name      string
		mutate    func(*Roster, *Rules)
		targetErr error
	}{
		{
			name:   "valid roster",
			mutate: func(_ *Roster, _ *Rules) {},
		},
		{
			name: "wrong size",
			mutate: func(r *Roster, _ *Rules) {
				r.RiderIDs = r.RiderIDs[:3]
			},
			targetErr: ErrInvalidRosterSize,
		},
		{
			name: "budget exceeded",
			mutate: func(r *Roster, _ *Rules) {
				r.RiderIDs[3] = "r5"
			},
			targetErr: ErrExceededBudget,
		},
		{
			name: "duplicate rider",
			mutate: func(r *Roster, _ *Rules) {
				r.RiderIDs[1] = "r1"
			},
			targetErr: ErrDuplicateRider,
		},
		{
			name: "unknown rider",
			mutate: func(r *Roster, _ *Rules) {
				r.RiderIDs[0] = "ghost"
			},
			targetErr: ErrUnknownRider,
		},
		{
			name: "unknown constructor",
			mutate: func(r *Roster, _ *Rules) {
				r.ConstructorID = "ghost"
			},
			targetErr: ErrUnknownConstructor,
		},
		{
			name: "missing constructor when required",
			mutate: func(r *Roster, _ *Rules) {
				r.ConstructorID = ""
			},
			targetErr: ErrConstructorRequired,
		},
		{
			name: "constructor picked in rider-only variant",
			mutate: func(_ *Roster, cfg *Rules) {
				cfg.HasConstructors = false
			},
			targetErr: ErrConstructorDisabled,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			r := Roster{
				RiderIDs:      append([]string(nil), valid.RiderIDs...),
				ConstructorID: valid.ConstructorID,
			}
			cfg := rules
			tt.mutate(&r, &cfg)

			err := Validate(r, riders, constructors, cfg)
			if tt.targetErr == nil {
				if err != nil {
					t.Fatalf("expected no error, got %v", err)
				}
				return
			}
			if !errors.Is(err, tt.targetErr) {
				t.Fatalf("expected %v, got %v", tt.targetErr, err)
			}
		})
	}
}

func TestCost(t *testing.T) {
	riders := []rider.Rider{
		{ID: "r1", Price: 100},
		{ID: "r2", Price: 250},
	}
	constructors := []constructor.Constructor{{ID: "c1", Price: 150}}

	got := Cost(Roster{RiderIDs: []string{"r1", "r2", "ghost"}, ConstructorID: "c1"}, riders, constructors)
	if got != 500 {
		t.Fatalf("expected cost 500, got %d", got)
	}
}
