package service

import (
	"fmt"
	"math"

	"github.com/rl1809/desk-suite/internal/core/domain"
)

type Quote struct {
	Vehicle    domain.Vehicle
	Days       int
	TotalCents int64
}

type Rental struct {
	fleet []domain.Vehicle
}

func NewRental(fleet ...domain.Vehicle) *Rental {
	return &Rental{fleet: fleet}
}

// DefaultFleet is the vehicle list the rental desk starts with.
func DefaultFleet() []domain.Vehicle {
	return []domain.Vehicle{
		domain.NewCar("Toyota Corolla", 2020),
		domain.NewCar("Honda Civic", 2021),
		domain.NewMotorcycle("Yamaha MT-07", 2022),
		domain.NewMotorcycle("Kawasaki Ninja", 2021),
	}
}

func (r *Rental) Vehicles() []domain.Vehicle {
	out := make([]domain.Vehicle, len(r.fleet))
	copy(out, r.fleet)
	return out
}

// Select resolves a 1-based vehicle number and checks that it is of the given kind.
func (r *Rental) Select(number int, kind domain.VehicleKind) (domain.Vehicle, error) {
	if number < 1 || number > len(r.fleet) {
		return nil, fmt.Errorf("%w: %d", ErrInvalidSelection, number)
	}
	v := r.fleet[number-1]
	if v.Kind() != kind {
		return nil, fmt.Errorf("%w: want %s, got %s", ErrWrongKind, kind, v.Kind())
	}
	return v, nil
}

func (r *Rental) Rent(number int, kind domain.VehicleKind, days int) (Quote, error) {
	v, err := r.Select(number, kind)
	if err != nil {
		return Quote{}, err
	}
	if days <= 0 || int64(days) > math.MaxInt64/v.DailyRateCents() {
		return Quote{}, fmt.Errorf("%w: %d", ErrInvalidDays, days)
	}
	return Quote{Vehicle: v, Days: days, TotalCents: domain.RentalPrice(v, days)}, nil
}
