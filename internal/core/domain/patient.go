package domain

import (
	"fmt"
	"time"
)

type Patient struct {
	ID     int
	Name   string
	Age    int
	Gender string
}

func (p Patient) String() string {
	return fmt.Sprintf("Patient %s (ID: %d) - Age: %d, Gender: %s", p.Name, p.ID, p.Age, p.Gender)
}

type Prescription struct {
	ID             int
	PatientID      int
	MedicationName string
	DateIssued     time.Time
}

func (p Prescription) String() string {
	return fmt.Sprintf("Prescription ID: %d, Medication: %s, Date: %s",
		p.ID, p.MedicationName, p.DateIssued.Format(time.DateOnly))
}
