package domain

type VehicleKind string

const (
	VehicleKindCar        VehicleKind = "Car"
	VehicleKindMotorcycle VehicleKind = "Motorcycle"
)

type Vehicle interface {
	Kind() VehicleKind
	Model() string
	Year() int
	DailyRateCents() int64
}

type Car struct {
	model string
	year  int
}

func NewCar(model string, year int) Car { return Car{model: model, year: year} }

func (c Car) Kind() VehicleKind     { return VehicleKindCar }
func (c Car) Model() string         { return c.model }
func (c Car) Year() int             { return c.year }
func (c Car) DailyRateCents() int64 { return 100_00 }

type Motorcycle struct {
	model string
	year  int
}

func NewMotorcycle(model string, year int) Motorcycle { return Motorcycle{model: model, year: year} }

func (m Motorcycle) Kind() VehicleKind     { return VehicleKindMotorcycle }
func (m Motorcycle) Model() string         { return m.model }
func (m Motorcycle) Year() int             { return m.year }
func (m Motorcycle) DailyRateCents() int64 { return 50_00 }

// RentalPrice is the total charge for renting v for the given number of days.
func RentalPrice(v Vehicle, days int) int64 {
	return int64(days) * v.DailyRateCents()
}
