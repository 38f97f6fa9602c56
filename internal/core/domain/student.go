package domain

import "fmt"

type Student struct {
	ID    int
	Name  string
	Mark  int
	Grade string
}

// String is the line format used when writing graded results to disk.
func (s Student) String() string {
	return fmt.Sprintf("%d,%s,%d,%s", s.ID, s.Name, s.Mark, s.Grade)
}
