package service

import (
	"fmt"
	"sync"
	"time"

	"github.com/rl1809/desk-suite/internal/core/domain"
	"github.com/rl1809/desk-suite/internal/core/store"
)

type Health struct {
	patients      *store.List[domain.Patient]
	prescriptions *store.List[domain.Prescription]

	mu        sync.RWMutex
	byPatient map[int][]domain.Prescription
}

func NewHealth() *Health {
	return &Health{
		patients:      store.NewList[domain.Patient](),
		prescriptions: store.NewList[domain.Prescription](),
		byPatient:     make(map[int][]domain.Prescription),
	}
}

// Seed loads the sample patients and prescriptions relative to now.
func (h *Health) Seed(now time.Time) error {
	h.AddPatient(domain.Patient{ID: 1, Name: "Alice Johnson", Age: 28, Gender: "Female"})
	h.AddPatient(domain.Patient{ID: 2, Name: "John Mensah", Age: 35, Gender: "Male"})
	h.AddPatient(domain.Patient{ID: 3, Name: "Fatima Issah", Age: 42, Gender: "Female"})

	for _, p := range []domain.Prescription{
		{ID: 101, PatientID: 1, MedicationName: "Paracetamol", DateIssued: now.AddDate(0, 0, -2)},
		{ID: 102, PatientID: 1, MedicationName: "Amoxicillin", DateIssued: now.AddDate(0, 0, -1)},
		{ID: 103, PatientID: 2, MedicationName: "Ibuprofen", DateIssued: now},
		{ID: 104, PatientID: 3, MedicationName: "Cough Syrup", DateIssued: now.AddDate(0, 0, -3)},
		{ID: 105, PatientID: 3, MedicationName: "Vitamin C", DateIssued: now.AddDate(0, 0, -4)},
	} {
		if err := h.AddPrescription(p); err != nil {
			return err
		}
	}
	return nil
}

// BuildPrescriptionMap regroups every prescription by patient id.
func (h *Health) BuildPrescriptionMap() {
	grouped := make(map[int][]domain.Prescription)
	for _, p := range h.prescriptions.All() {
		grouped[p.PatientID] = append(grouped[p.PatientID], p)
	}

	h.mu.Lock()
	h.byPatient = grouped
	h.mu.Unlock()
}

func (h *Health) AddPatient(p domain.Patient) {
	h.patients.Add(p)
}

func (h *Health) AddPrescription(p domain.Prescription) error {
	if _, ok := h.Patient(p.PatientID); !ok {
		return fmt.Errorf("%w: id %d", ErrPatientNotFound, p.PatientID)
	}
	h.prescriptions.Add(p)
	h.BuildPrescriptionMap()
	return nil
}

func (h *Health) Patients() []domain.Patient {
	return h.patients.All()
}

func (h *Health) Patient(id int) (domain.Patient, bool) {
	return h.patients.Find(func(p domain.Patient) bool { return p.ID == id })
}

func (h *Health) PrescriptionsFor(patientID int) ([]domain.Prescription, error) {
	h.mu.RLock()
	defer h.mu.RUnlock()

	list, ok := h.byPatient[patientID]
	if !ok {
		return nil, fmt.Errorf("%w for patient id %d", ErrNoPrescriptions, patientID)
	}
	out := make([]domain.Prescription, len(list))
	copy(out, list)
	return out, nil
}
