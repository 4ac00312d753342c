package entity

import (
	"testing"

	"github.com/shopspring/decimal"
)

func TestPrescriptionTransitions(t *testing.T) {
	cases := []struct {
		name    string
		from    PrescriptionStatus
		to      PrescriptionStatus
		allowed bool
	}{
		{"active to fulfilled", PrescriptionStatusActive, PrescriptionStatusFulfilled, true},
		{"active to expired", PrescriptionStatusActive, PrescriptionStatusExpired, true},
		{"fulfilled back to active", PrescriptionStatusFulfilled, PrescriptionStatusActive, false},
		{"fulfilled to expired", PrescriptionStatusFulfilled, PrescriptionStatusExpired, false},
		{"expired back to active", PrescriptionStatusExpired, PrescriptionStatusActive, false},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			pres := &Prescription{Status: tc.from}
			err := pres.TransitionTo(tc.to)
			if tc.allowed && err != nil {
				t.Fatalf("expected transition %s -> %s to succeed, got %v", tc.from, tc.to, err)
			}
			if !tc.allowed {
				if err != ErrInvalidPrescriptionTransition {
					t.Fatalf("expected ErrInvalidPrescriptionTransition, got %v", err)
				}
				if pres.Status != tc.from {
					t.Fatalf("status mutated on rejected transition, got %s", pres.Status)
				}
			}
		})
	}
}

func TestPrescriptionTotal(t *testing.T) {
	pres := &Prescription{
		Medicines: PrescribedMedicines{
			{Name: "Paracetamol", Price: decimal.NewFromFloat(12.0)},
			{Name: "Ibuprofen", Price: decimal.NewFromFloat(22.5)},
			{Name: "Vitamin C"}, // no price, counts as zero
		},
	}

	want := decimal.NewFromFloat(34.5)
	if got := pres.Total(); !got.Equal(want) {
		t.Fatalf("Total() = %s, want %s", got, want)
	}
}

func TestPrescriptionTotalEmpty(t *testing.T) {
	pres := &Prescription{}
	if got := pres.Total(); !got.Equal(decimal.Zero) {
		t.Fatalf("Total() on empty prescription = %s, want 0", got)
	}
}
