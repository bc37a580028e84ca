package files

import (
	"bufio"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strconv"
	"strings"
)

// PromptFunc asks the user to pick one of the listed schedule names and
// returns its index. It exists so tests can select without a terminal.
type PromptFunc func(names []string) (int, error)

// Selector resolves the input schedule: either an explicitly named file or
// one picked interactively from the raw-data directory.
type Selector struct {
	disc   *Discovery
	prompt PromptFunc

	in  io.Reader
	out io.Writer
}

// NewSelector creates a selector that prompts on stdin/stdout.
func NewSelector(rawDir string) *Selector {
	s := &Selector{
		disc: NewDiscovery(rawDir),
		in:   os.Stdin,
		out:  os.Stdout,
	}
	s.prompt = s.stdinPrompt
	return s
}

// WithPrompt replaces the interactive prompt.
func (s *Selector) WithPrompt(p PromptFunc) *Selector {
	s.prompt = p
	return s
}

// Select returns the path of the schedule to convert. A non-empty explicit
// name is resolved against the raw-data directory unless it already names an
// existing file; otherwise the user picks from the discovered schedules.
func (s *Selector) Select(explicit string) (string, error) {
	if explicit != "" {
		path := explicit
		if _, err := os.Stat(path); err != nil {
			path = filepath.Join(s.disc.baseDir, explicit)
			if _, err := os.Stat(path); err != nil {
				return "", fmt.Errorf("schedule %s not found: %w", explicit, err)
			}
		}
		return path, nil
	}

	schedules, err := s.disc.FindSchedules()
	if err != nil {
		return "", err
	}
	if len(schedules) == 0 {
		return "", fmt.Errorf("no .xlsx schedules found in %s", s.disc.baseDir)
	}

	names := make([]string, len(schedules))
	for i, f := range schedules {
		names[i] = f.Name
	}

	choice, err := s.prompt(names)
	if err != nil {
		return "", err
	}
	if choice < 0 || choice >= len(schedules) {
		return "", fmt.Errorf("schedule selection %d out of range", choice+1)
	}

	return schedules[choice].Path, nil
}

// stdinPrompt lists the schedules and reads a 1-based selection, retrying
// until the input is a valid number.
func (s *Selector) stdinPrompt(names []string) (int, error) {
	fmt.Fprintln(s.out, "Select a file to convert to ICS:")
	for i, name := range names {
		fmt.Fprintf(s.out, "%d. %s\n", i+1, name)
	}

	scanner := bufio.NewScanner(s.in)
	for {
		fmt.Fprint(s.out, "Enter the number of the file: ")
		if !scanner.Scan() {
			if err := scanner.Err(); err != nil {
				return 0, err
			}
			return 0, fmt.Errorf("no selection made")
		}
		choice, err := strconv.Atoi(strings.TrimSpace(scanner.Text()))
		if err != nil {
			fmt.Fprintln(s.out, "Please enter a valid number.")
			continue
		}
		if choice < 1 || choice > len(names) {
			fmt.Fprintln(s.out, "Invalid number. Try again.")
			continue
		}
		return choice - 1, nil
	}
}
