package service

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"io/fs"
	"os"
	"strconv"
	"strings"

	"go.uber.org/zap"

	"github.com/rl1809/desk-suite/internal/core/domain"
)

// Grade maps a mark in 0..100 to its letter band.
func Grade(mark int) string {
	switch {
	case mark >= 80:
		return "A"
	case mark >= 70:
		return "B"
	case mark >= 60:
		return "C"
	case mark >= 50:
		return "D"
	default:
		return "F"
	}
}

// LineError describes one input line that was skipped.
type LineError struct {
	Line   int
	Text   string
	Reason error
}

func (e LineError) Error() string {
	return fmt.Sprintf("line %d %q: %v", e.Line, e.Text, e.Reason)
}

func (e LineError) Unwrap() error { return e.Reason }

type LoadResult struct {
	Students []domain.Student
	Skipped  []LineError
}

type Grading struct {
	logger *zap.Logger
}

func NewGrading(logger *zap.Logger) *Grading {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Grading{logger: logger}
}

func (g *Grading) ReadFile(path string) (LoadResult, error) {
	f, err := os.Open(path)
	if errors.Is(err, fs.ErrNotExist) {
		return LoadResult{}, fmt.Errorf("%w: %s", ErrInputNotFound, path)
	}
	if err != nil {
		return LoadResult{}, fmt.Errorf("open input: %w", err)
	}
	defer f.Close()

	return g.Parse(f)
}

// Parse reads "id,name,mark" lines. Malformed lines are skipped and reported
// in the result; only a read failure aborts the load.
func (g *Grading) Parse(r io.Reader) (LoadResult, error) {
	var res LoadResult
	scanner := bufio.NewScanner(r)
	n := 0
	for scanner.Scan() {
		n++
		line := scanner.Text()
		student, err := parseStudent(line)
		if err != nil {
			skip := LineError{Line: n, Text: line, Reason: err}
			res.Skipped = append(res.Skipped, skip)
			g.logger.Debug("skipping grading line", zap.Int("line", n), zap.Error(err))
			continue
		}
		res.Students = append(res.Students, student)
	}
	if err := scanner.Err(); err != nil {
		return res, fmt.Errorf("read input: %w", err)
	}
	return res, nil
}

func parseStudent(line string) (domain.Student, error) {
	parts := strings.Split(line, ",")
	if len(parts) != 3 {
		return domain.Student{}, ErrFieldCount
	}

	id, err := strconv.Atoi(strings.TrimSpace(parts[0]))
	if err != nil {
		return domain.Student{}, fmt.Errorf("invalid id: %w", err)
	}
	mark, err := strconv.Atoi(strings.TrimSpace(parts[2]))
	if err != nil {
		return domain.Student{}, fmt.Errorf("invalid mark: %w", err)
	}
	if mark < 0 || mark > 100 {
		return domain.Student{}, fmt.Errorf("%w: got %d", ErrMarkOutOfRange, mark)
	}

	return domain.Student{
		ID:    id,
		Name:  strings.TrimSpace(parts[1]),
		Mark:  mark,
		Grade: Grade(mark),
	}, nil
}

func (g *Grading) WriteFile(path string, students []domain.Student) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("create output: %w", err)
	}
	if err := g.Write(f, students); err != nil {
		f.Close()
		return err
	}
	return f.Close()
}

func (g *Grading) Write(w io.Writer, students []domain.Student) error {
	bw := bufio.NewWriter(w)
	for _, s := range students {
		if _, err := fmt.Fprintln(bw, s.String()); err != nil {
			return fmt.Errorf("write output: %w", err)
		}
	}
	if err := bw.Flush(); err != nil {
		return fmt.Errorf("write output: %w", err)
	}
	return nil
}
