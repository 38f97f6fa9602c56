package console

import (
	"context"

	"github.com/rl1809/desk-suite/internal/core/service"
)

type HealthConsole struct {
	health *service.Health
	p      *Prompter
}

func NewHealthConsole(health *service.Health, p *Prompter) *HealthConsole {
	return &HealthConsole{health: health, p: p}
}

func (c *HealthConsole) Run(ctx context.Context) error {
	return runMenu(ctx, c.p, "Thank you for using the Healthcare Management System!", c.step)
}

func (c *HealthConsole) step(context.Context) (bool, error) {
	choice, ok, err := c.p.Menu("Healthcare Management System",
		"View All Patients", "View Patient Prescriptions", "Exit")
	if err != nil {
		return false, err
	}
	if !ok {
		c.p.Println("Invalid input. Please enter a number.")
		return false, nil
	}

	switch choice {
	case 1:
		c.p.Println("All Patients:")
		for _, patient := range c.health.Patients() {
			c.p.Println(patient)
		}
	case 2:
		id, ok, err := c.p.AskInt("\nEnter Patient ID: ")
		if err != nil {
			return false, err
		}
		if !ok {
			c.p.Println("Invalid Patient ID entered.")
			return false, nil
		}
		c.printPrescriptions(id)
	case 3:
		return true, nil
	default:
		c.p.Println("Invalid option!")
	}
	return false, nil
}

func (c *HealthConsole) printPrescriptions(patientID int) {
	prescriptions, err := c.health.PrescriptionsFor(patientID)
	if err != nil {
		c.p.Printf("No prescriptions found for Patient ID %d.\n", patientID)
		return
	}
	c.p.Printf("\nPrescriptions for Patient ID %d:\n", patientID)
	for _, rx := range prescriptions {
		c.p.Println(rx)
	}
}
