package console

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/rl1809/desk-suite/internal/core/domain"
	"github.com/rl1809/desk-suite/internal/core/service"
	"github.com/rl1809/desk-suite/internal/core/store"
)

type WarehouseConsole struct {
	warehouse *service.Warehouse
	p         *Prompter
	now       func() time.Time
}

func NewWarehouseConsole(warehouse *service.Warehouse, p *Prompter) *WarehouseConsole {
	return &WarehouseConsole{warehouse: warehouse, p: p, now: time.Now}
}

func (c *WarehouseConsole) Run(ctx context.Context) error {
	return runMenu(ctx, c.p, "Thank you for using the Warehouse Inventory System!", c.step)
}

func (c *WarehouseConsole) step(ctx context.Context) (bool, error) {
	choice, ok, err := c.p.Menu("Warehouse Inventory System",
		"View All Inventory", "Add New Item", "Update Quantity", "Remove Item", "Exit")
	if err != nil {
		return false, err
	}
	if !ok {
		c.p.Println("Invalid input. Please enter a number.")
		return false, nil
	}

	switch choice {
	case 1:
		c.printInventory()
	case 2:
		return false, c.addItem(ctx)
	case 3:
		return false, c.increaseStock(ctx)
	case 4:
		return false, c.removeItem(ctx)
	case 5:
		return true, nil
	default:
		c.p.Println("Invalid option!")
	}
	return false, nil
}

func (c *WarehouseConsole) printInventory() {
	c.p.Println("\n---- Grocery Inventory ----")
	c.printCategory(domain.CategoryGroceries)
	c.p.Println("\n---- Electronic Inventory ----")
	c.printCategory(domain.CategoryElectronics)
}

func (c *WarehouseConsole) printCategory(category domain.Category) {
	items, err := c.warehouse.Items(category)
	if err != nil {
		c.p.Printf("Error: %v\n", err)
		return
	}
	for _, item := range items {
		c.p.Println(item)
	}
}

// askCategory reads the item type. ok is false for non-numeric input, which
// returns to the menu without a message.
func (c *WarehouseConsole) askCategory() (domain.Category, bool, error) {
	c.p.Println("\nSelect item type:")
	c.p.Println("1. Electronic Item")
	c.p.Println("2. Grocery Item")
	n, ok, err := c.p.AskInt("")
	if err != nil || !ok {
		return "", false, err
	}
	switch n {
	case 1:
		return domain.CategoryElectronics, true, nil
	case 2:
		return domain.CategoryGroceries, true, nil
	}
	c.p.Println("Invalid item type.")
	return "", false, nil
}

func (c *WarehouseConsole) addItem(ctx context.Context) error {
	category, ok, err := c.askCategory()
	if err != nil || !ok {
		return err
	}

	id, ok, err := c.p.AskInt("Enter ID: ")
	if err != nil {
		return err
	}
	if !ok {
		c.p.Println("Error: ID must be a number.")
		return nil
	}
	name, err := c.p.Ask("Enter Name: ")
	if err != nil {
		return err
	}
	quantity, ok, err := c.p.AskInt("Enter Quantity: ")
	if err != nil {
		return err
	}
	if !ok {
		c.p.Println("Error: quantity must be a number.")
		return nil
	}

	var addErr error
	switch category {
	case domain.CategoryElectronics:
		brand, err := c.p.Ask("Enter Brand: ")
		if err != nil {
			return err
		}
		warranty, ok, err := c.p.AskInt("Enter Warranty (months): ")
		if err != nil {
			return err
		}
		if !ok {
			c.p.Println("Error: warranty must be a number.")
			return nil
		}
		item := domain.NewElectronicItem(id, strings.TrimSpace(name), quantity, strings.TrimSpace(brand), warranty)
		addErr = c.warehouse.AddElectronic(ctx, item)
	case domain.CategoryGroceries:
		raw, err := c.p.Ask("Enter Expiry Date (yyyy-MM-dd): ")
		if err != nil {
			return err
		}
		expiry := c.now()
		if raw = strings.TrimSpace(raw); raw != "" {
			expiry, err = time.ParseInLocation(time.DateOnly, raw, time.Local)
			if err != nil {
				c.p.Printf("Error: invalid expiry date %q.\n", raw)
				return nil
			}
		}
		addErr = c.warehouse.AddGrocery(ctx, domain.NewGroceryItem(id, strings.TrimSpace(name), quantity, expiry))
	}

	if addErr != nil {
		c.p.Printf("Error: %s\n", describeStoreError(addErr, id))
		return nil
	}
	c.p.Println("Item added successfully!")
	return nil
}

func (c *WarehouseConsole) increaseStock(ctx context.Context) error {
	category, ok, err := c.askCategory()
	if err != nil || !ok {
		return err
	}
	id, ok, err := c.p.AskInt("Enter Item ID: ")
	if err != nil || !ok {
		return err
	}
	delta, ok, err := c.p.AskInt("Enter Quantity to Add: ")
	if err != nil || !ok {
		return err
	}

	level, err := c.warehouse.IncreaseStock(ctx, category, id, delta)
	if err != nil {
		c.p.Printf("Error increasing stock: %s\n", describeStoreError(err, id))
		return nil
	}
	c.p.Printf("Updated quantity of %s: %d\n", level.Name, level.Quantity)
	return nil
}

func (c *WarehouseConsole) removeItem(ctx context.Context) error {
	category, ok, err := c.askCategory()
	if err != nil || !ok {
		return err
	}
	id, ok, err := c.p.AskInt("Enter Item ID to remove: ")
	if err != nil || !ok {
		return err
	}

	if err := c.warehouse.Remove(ctx, category, id); err != nil {
		c.p.Printf("Error removing item: %s\n", describeStoreError(err, id))
		return nil
	}
	c.p.Printf("Removed item with ID %d\n", id)
	return nil
}

func describeStoreError(err error, id int) string {
	switch {
	case errors.Is(err, store.ErrDuplicateKey):
		return fmt.Sprintf("Item with ID %d already exists.", id)
	case errors.Is(err, store.ErrNotFound):
		return fmt.Sprintf("Item with ID %d not found.", id)
	case errors.Is(err, store.ErrInvalidQuantity):
		return "Quantity cannot be negative."
	}
	return err.Error()
}
