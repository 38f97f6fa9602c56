// Package console drives the interactive menu loops over line-based input.
package console

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"strconv"
	"strings"
)

// Prompter reads one line per answer. Every read returns io.EOF once the
// input is exhausted so menu loops can stop cleanly.
type Prompter struct {
	in  *bufio.Scanner
	out io.Writer
}

func NewPrompter(in io.Reader, out io.Writer) *Prompter {
	return &Prompter{in: bufio.NewScanner(in), out: out}
}

func (p *Prompter) Println(a ...any) {
	fmt.Fprintln(p.out, a...)
}

func (p *Prompter) Printf(format string, a ...any) {
	fmt.Fprintf(p.out, format, a...)
}

// Ask writes the prompt and returns the next input line without its newline.
func (p *Prompter) Ask(prompt string) (string, error) {
	fmt.Fprint(p.out, prompt)
	if !p.in.Scan() {
		if err := p.in.Err(); err != nil {
			return "", err
		}
		return "", io.EOF
	}
	return p.in.Text(), nil
}

// AskInt is Ask followed by an integer parse. ok is false when the line is
// not an integer; err is only set for read failures.
func (p *Prompter) AskInt(prompt string) (n int, ok bool, err error) {
	line, err := p.Ask(prompt)
	if err != nil {
		return 0, false, err
	}
	n, convErr := strconv.Atoi(strings.TrimSpace(line))
	return n, convErr == nil, nil
}

// Menu prints a titled, numbered option list and reads the selection.
func (p *Prompter) Menu(title string, options ...string) (int, bool, error) {
	p.Printf("\n===== %s =====\n", title)
	for i, opt := range options {
		p.Printf("%d. %s\n", i+1, opt)
	}
	return p.AskInt(fmt.Sprintf("\nSelect an option (1-%d): ", len(options)))
}

func (p *Prompter) Pause() error {
	_, err := p.Ask("\nPress Enter to continue...")
	return err
}

// runMenu repeats step until it asks to exit, the context ends, or input runs
// out. It pauses between iterations and prints farewell on the way out.
func runMenu(ctx context.Context, p *Prompter, farewell string, step func(context.Context) (exit bool, err error)) error {
	for ctx.Err() == nil {
		exit, err := step(ctx)
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			return err
		}
		if exit {
			break
		}
		if err := p.Pause(); err != nil {
			if errors.Is(err, io.EOF) {
				break
			}
			return err
		}
	}
	p.Println(farewell)
	return nil
}
