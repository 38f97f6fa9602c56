package console

import (
	"context"
	"errors"
	"strings"

	"github.com/rl1809/desk-suite/internal/core/domain"
	"github.com/rl1809/desk-suite/internal/core/service"
)

type GradingConsole struct {
	grading       *service.Grading
	p             *Prompter
	defaultInput  string
	defaultOutput string
	students      []domain.Student
}

// NewGradingConsole uses defaultInput and defaultOutput when the user enters
// an empty path.
func NewGradingConsole(grading *service.Grading, p *Prompter, defaultInput, defaultOutput string) *GradingConsole {
	return &GradingConsole{
		grading:       grading,
		p:             p,
		defaultInput:  defaultInput,
		defaultOutput: defaultOutput,
	}
}

func (c *GradingConsole) Run(ctx context.Context) error {
	return runMenu(ctx, c.p, "Thank you for using the Student Grading System!", c.step)
}

func (c *GradingConsole) step(context.Context) (bool, error) {
	choice, ok, err := c.p.Menu("Student Grading System",
		"Load Student Data from File", "View All Students", "Save Results to File", "Exit")
	if err != nil {
		return false, err
	}
	if !ok {
		c.p.Println("Invalid input. Please enter a number.")
		return false, nil
	}

	switch choice {
	case 1:
		return false, c.load()
	case 2:
		c.printStudents()
	case 3:
		return false, c.save()
	case 4:
		return true, nil
	default:
		c.p.Println("Invalid option!")
	}
	return false, nil
}

func (c *GradingConsole) load() error {
	path, err := c.p.Ask("Enter input file path: ")
	if err != nil {
		return err
	}
	if path = strings.TrimSpace(path); path == "" {
		path = c.defaultInput
	}

	res, err := c.grading.ReadFile(path)
	for _, skip := range res.Skipped {
		c.p.Printf("Skipping invalid line: %q - Reason: %v\n", skip.Text, skip.Reason)
	}
	c.students = res.Students
	switch {
	case errors.Is(err, service.ErrInputNotFound):
		c.p.Printf("File %q not found.\n", path)
	case err != nil:
		c.p.Printf("File read error: %v\n", err)
	case len(c.students) > 0:
		c.p.Printf("Loaded %d student records.\n", len(c.students))
	}
	return nil
}

func (c *GradingConsole) printStudents() {
	if len(c.students) == 0 {
		c.p.Println("No student data loaded. Please load data first.")
		return
	}
	c.p.Println("\nStudent Records:")
	c.p.Println("ID\tName\t\tMark\tGrade")
	c.p.Println("----------------------------------------")
	for _, s := range c.students {
		c.p.Printf("%d\t%-15s\t%d\t%s\n", s.ID, s.Name, s.Mark, s.Grade)
	}
}

func (c *GradingConsole) save() error {
	if len(c.students) == 0 {
		c.p.Println("No student data to save. Please load data first.")
		return nil
	}
	path, err := c.p.Ask("Enter output file path: ")
	if err != nil {
		return err
	}
	if path = strings.TrimSpace(path); path == "" {
		path = c.defaultOutput
	}

	if err := c.grading.WriteFile(path, c.students); err != nil {
		c.p.Printf("File write error: %v\n", err)
		return nil
	}
	c.p.Printf("Output written to %s\n", path)
	return nil
}
