package service

import (
	"errors"
	"testing"
	"time"

	"github.com/rl1809/desk-suite/internal/core/domain"
)

func seededHealth(t *testing.T) *Health {
	t.Helper()
	h := NewHealth()
	if err := h.Seed(time.Date(2026, 5, 10, 12, 0, 0, 0, time.UTC)); err != nil {
		t.Fatalf("Seed() error = %v", err)
	}
	return h
}

func TestHealth_Patients(t *testing.T) {
	h := seededHealth(t)

	patients := h.Patients()
	if len(patients) != 3 {
		t.Fatalf("expected 3 patients, got %d", len(patients))
	}
	if patients[0].String() != "Patient Alice Johnson (ID: 1) - Age: 28, Gender: Female" {
		t.Errorf("unexpected patient line %q", patients[0].String())
	}
}

func TestHealth_PrescriptionsFor(t *testing.T) {
	h := seededHealth(t)

	list, err := h.PrescriptionsFor(1)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(list) != 2 {
		t.Fatalf("expected 2 prescriptions, got %d", len(list))
	}
	if list[0].MedicationName != "Paracetamol" || list[1].MedicationName != "Amoxicillin" {
		t.Errorf("unexpected prescriptions %v", list)
	}
	if got := list[0].String(); got != "Prescription ID: 101, Medication: Paracetamol, Date: 2026-05-08" {
		t.Errorf("unexpected prescription line %q", got)
	}
}

func TestHealth_NoPrescriptions(t *testing.T) {
	h := seededHealth(t)

	if _, err := h.PrescriptionsFor(42); !errors.Is(err, ErrNoPrescriptions) {
		t.Errorf("expected ErrNoPrescriptions, got: %v", err)
	}
}

func TestHealth_AddPrescriptionRebuildsMap(t *testing.T) {
	h := seededHealth(t)
	h.AddPatient(domain.Patient{ID: 4, Name: "Kwame Boateng", Age: 51, Gender: "Male"})

	if _, err := h.PrescriptionsFor(4); !errors.Is(err, ErrNoPrescriptions) {
		t.Fatalf("expected ErrNoPrescriptions before adding, got: %v", err)
	}

	err := h.AddPrescription(domain.Prescription{ID: 106, PatientID: 4, MedicationName: "Insulin", DateIssued: time.Now()})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	list, err := h.PrescriptionsFor(4)
	if err != nil || len(list) != 1 {
		t.Fatalf("expected 1 prescription, got %v (err %v)", list, err)
	}
}

func TestHealth_AddPrescriptionUnknownPatient(t *testing.T) {
	h := seededHealth(t)

	err := h.AddPrescription(domain.Prescription{ID: 107, PatientID: 99, MedicationName: "Aspirin"})
	if !errors.Is(err, ErrPatientNotFound) {
		t.Errorf("expected ErrPatientNotFound, got: %v", err)
	}
}

func TestHealth_PrescriptionsForReturnsCopy(t *testing.T) {
	h := seededHealth(t)

	list, _ := h.PrescriptionsFor(3)
	list[0].MedicationName = "changed"

	again, _ := h.PrescriptionsFor(3)
	if again[0].MedicationName != "Cough Syrup" {
		t.Errorf("expected index to be unaffected, got %q", again[0].MedicationName)
	}
}

func TestHealth_SeedIndexesEveryPrescription(t *testing.T) {
	h := seededHealth(t)

	want := map[int]int{1: 2, 2: 1, 3: 2}
	for id, n := range want {
		list, err := h.PrescriptionsFor(id)
		if err != nil {
			t.Fatalf("patient %d: unexpected error: %v", id, err)
		}
		if len(list) != n {
			t.Errorf("patient %d: expected %d prescriptions, got %d", id, n, len(list))
		}
	}
}
