package console

import (
	"context"
	"errors"

	"github.com/rl1809/desk-suite/internal/core/domain"
	"github.com/rl1809/desk-suite/internal/core/service"
)

type RentalConsole struct {
	rental *service.Rental
	p      *Prompter
}

func NewRentalConsole(rental *service.Rental, p *Prompter) *RentalConsole {
	return &RentalConsole{rental: rental, p: p}
}

func (c *RentalConsole) Run(ctx context.Context) error {
	return runMenu(ctx, c.p, "Thank you for using the Vehicle Rental System!", c.step)
}

func (c *RentalConsole) step(context.Context) (bool, error) {
	choice, ok, err := c.p.Menu("Vehicle Rental System",
		"View Available Vehicles", "Rent a Car", "Rent a Motorcycle", "Exit")
	if err != nil {
		return false, err
	}
	if !ok {
		c.p.Println("Invalid input. Please enter a number.")
		return false, nil
	}

	switch choice {
	case 1:
		c.printVehicles()
	case 2:
		return false, c.rent(domain.VehicleKindCar)
	case 3:
		return false, c.rent(domain.VehicleKindMotorcycle)
	case 4:
		return true, nil
	default:
		c.p.Println("Invalid option!")
	}
	return false, nil
}

func (c *RentalConsole) printVehicles() {
	c.p.Println("\nAvailable Vehicles:")
	for i, v := range c.rental.Vehicles() {
		c.p.Printf("%d. %s: %s (%d)\n", i+1, v.Kind(), v.Model(), v.Year())
	}
}

func (c *RentalConsole) rent(kind domain.VehicleKind) error {
	c.printVehicles()
	number, ok, err := c.p.AskInt("\nSelect vehicle number: ")
	if err != nil {
		return err
	}
	if !ok {
		c.p.Println("Invalid vehicle number.")
		return nil
	}
	if _, err := c.rental.Select(number, kind); err != nil {
		c.printRentError(err, kind)
		return nil
	}

	days, ok, err := c.p.AskInt("Enter number of days: ")
	if err != nil {
		return err
	}
	if !ok {
		c.p.Println("Invalid number of days.")
		return nil
	}
	quote, err := c.rental.Rent(number, kind, days)
	if err != nil {
		c.printRentError(err, kind)
		return nil
	}
	c.p.Printf("%s: %s (%d) rented for %d day(s). Total: %s\n",
		quote.Vehicle.Kind(), quote.Vehicle.Model(), quote.Vehicle.Year(), quote.Days,
		domain.FormatCents(quote.TotalCents))
	return nil
}

func (c *RentalConsole) printRentError(err error, kind domain.VehicleKind) {
	switch {
	case errors.Is(err, service.ErrInvalidSelection):
		c.p.Println("Invalid vehicle number.")
	case errors.Is(err, service.ErrWrongKind):
		c.p.Printf("Selected vehicle is not a %s.\n", kind)
	case errors.Is(err, service.ErrInvalidDays):
		c.p.Println("Invalid number of days.")
	default:
		c.p.Printf("Error: %v\n", err)
	}
}
