package entity

import "testing"

func TestAppointmentTransitions(t *testing.T) {
	cases := []struct {
		name    string
		from    AppointmentStatus
		to      AppointmentStatus
		allowed bool
	}{
		{"pending to confirmed", AppointmentStatusPending, AppointmentStatusConfirmed, true},
		{"pending to cancelled", AppointmentStatusPending, AppointmentStatusCancelled, true},
		{"pending to completed skips confirmed", AppointmentStatusPending, AppointmentStatusCompleted, false},
		{"confirmed to completed", AppointmentStatusConfirmed, AppointmentStatusCompleted, true},
		{"confirmed to cancelled", AppointmentStatusConfirmed, AppointmentStatusCancelled, true},
		{"confirmed back to pending", AppointmentStatusConfirmed, AppointmentStatusPending, false},
		{"completed is terminal", AppointmentStatusCompleted, AppointmentStatusCancelled, false},
		{"cancelled is terminal", AppointmentStatusCancelled, AppointmentStatusPending, false},
		{"cancelled cannot be confirmed", AppointmentStatusCancelled, AppointmentStatusConfirmed, false},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			app := &Appointment{Status: tc.from}
			err := app.TransitionTo(tc.to)
			if tc.allowed {
				if err != nil {
					t.Fatalf("expected transition %s -> %s to succeed, got %v", tc.from, tc.to, err)
				}
				if app.Status != tc.to {
					t.Fatalf("status not updated, got %s", app.Status)
				}
			} else {
				if err != ErrInvalidAppointmentTransition {
					t.Fatalf("expected ErrInvalidAppointmentTransition, got %v", err)
				}
				if app.Status != tc.from {
					t.Fatalf("status mutated on rejected transition, got %s", app.Status)
				}
			}
		})
	}
}

func TestAppointmentIsTerminal(t *testing.T) {
	if (&Appointment{Status: AppointmentStatusPending}).IsTerminal() {
		t.Error("pending should not be terminal")
	}
	if (&Appointment{Status: AppointmentStatusConfirmed}).IsTerminal() {
		t.Error("confirmed should not be terminal")
	}
	if !(&Appointment{Status: AppointmentStatusCompleted}).IsTerminal() {
		t.Error("completed should be terminal")
	}
	if !(&Appointment{Status: AppointmentStatusCancelled}).IsTerminal() {
		t.Error("cancelled should be terminal")
	}
}

func TestValidAppointmentStatus(t *testing.T) {
	for _, s := range []string{"pending", "confirmed", "completed", "cancelled"} {
		if !ValidAppointmentStatus(s) {
			t.Errorf("%s should be valid", s)
		}
	}
	if ValidAppointmentStatus("archived") {
		t.Error("archived should not be valid")
	}
}
