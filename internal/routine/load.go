package routine

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"slices"
	"sort"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/oshokin/tickstack/internal/phrase"
)

var (
	// ErrNotFound is returned when no routine matches a name.
	ErrNotFound = errors.New("routine not found")
	// errIncludeCycle is returned when blocks include each other.
	errIncludeCycle = errors.New("block include cycle")
)

// LoadFile reads a single routine from disk.
func LoadFile(path string) (*Routine, error) {
	if strings.TrimSpace(path) == "" {
		return nil, errors.New("routine path is required")
	}

	data, err := os.ReadFile(filepath.Clean(path))
	if err != nil {
		return nil, fmt.Errorf("read routine %s: %w", path, err)
	}

	r, err := Parse(data)
	if err != nil {
		return nil, fmt.Errorf("parse routine %s: %w", path, err)
	}

	r.Source = path

	return r, nil
}

// LoadDir loads every .yaml and .yml routine in dir, sorted by slug.
// A missing directory yields no routines.
func LoadDir(dir string) ([]*Routine, error) {
	if strings.TrimSpace(dir) == "" {
		return []*Routine{}, nil
	}

	entries, err := os.ReadDir(dir)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return []*Routine{}, nil
		}

		return nil, fmt.Errorf("read routines dir %s: %w", dir, err)
	}

	routines := make([]*Routine, 0, len(entries))

	for _, entry := range entries {
		if entry.IsDir() {
			continue
		}

		ext := strings.ToLower(filepath.Ext(entry.Name()))
		if ext != ".yaml" && ext != ".yml" {
			continue
		}

		r, err := LoadFile(filepath.Join(dir, entry.Name()))
		if err != nil {
			return nil, err
		}

		routines = append(routines, r)
	}

	sort.Slice(routines, func(i, j int) bool {
		return routines[i].Slug < routines[j].Slug
	})

	return routines, nil
}

// LoadAll returns the built-in routines followed by the routines in dir.
// A routine in dir replaces the built-in routine with the same slug.
func LoadAll(dir string) ([]*Routine, error) {
	builtins, err := LoadBuiltin()
	if err != nil {
		return nil, err
	}

	user, err := LoadDir(dir)
	if err != nil {
		return nil, err
	}

	index := make(map[string]int, len(builtins))
	for i, r := range builtins {
		index[r.Slug] = i
	}

	routines := builtins
	for _, r := range user {
		if i, ok := index[r.Slug]; ok {
			routines[i] = r
			continue
		}

		index[r.Slug] = len(routines)
		routines = append(routines, r)
	}

	return routines, nil
}

// Find returns the routine whose slug or title matches name.
func Find(routines []*Routine, name string) (*Routine, error) {
	name = strings.TrimSpace(name)
	slug := Slugify(name)

	for _, r := range routines {
		if r.Slug == slug || strings.EqualFold(r.Title, name) {
			return r, nil
		}
	}

	return nil, fmt.Errorf("%w: %q", ErrNotFound, name)
}

// Parse decodes and validates a routine document.
func Parse(data []byte) (*Routine, error) {
	var r Routine
	if err := yaml.Unmarshal(data, &r); err != nil {
		return nil, err
	}

	r.Title = strings.TrimSpace(r.Title)
	if r.Title == "" {
		return nil, errors.New("routine title is required")
	}

	r.Slug = Slugify(r.Title)
	if r.Slug == "" {
		return nil, fmt.Errorf("routine title %q has no letters or digits", r.Title)
	}

	r.Description = strings.TrimSpace(r.Description)

	if len(r.Steps) == 0 {
		return nil, errors.New("routine steps are required")
	}

	for name, steps := range r.Blocks {
		if strings.TrimSpace(name) == "" {
			return nil, errors.New("block name is required")
		}

		if len(steps) == 0 {
			return nil, fmt.Errorf("block %q has no steps", name)
		}

		for i := range steps {
			if err := normalizeStep(&steps[i]); err != nil {
				return nil, fmt.Errorf("block %q step %d: %w", name, i+1, err)
			}
		}
	}

	for i := range r.Steps {
		if err := normalizeStep(&r.Steps[i]); err != nil {
			return nil, fmt.Errorf("routine step %d: %w", i+1, err)
		}
	}

	steps, err := Expand(&r)
	if err != nil {
		return nil, err
	}

	r.Warnings = placeholderWarnings(steps)

	return &r, nil
}

// Expand inlines every include step.
func Expand(r *Routine) ([]StepSpec, error) {
	return expand(r, r.Steps, nil)
}

func expand(r *Routine, steps []StepSpec, stack []string) ([]StepSpec, error) {
	out := make([]StepSpec, 0, len(steps))

	for _, step := range steps {
		if step.Type != StepInclude {
			out = append(out, step)
			continue
		}

		if slices.Contains(stack, step.Block) {
			return nil, fmt.Errorf("%w: %s", errIncludeCycle, strings.Join(append(stack, step.Block), " -> "))
		}

		block, ok := r.Blocks[step.Block]
		if !ok {
			return nil, fmt.Errorf("unknown block %q", step.Block)
		}

		inlined, err := expand(r, block, append(slices.Clone(stack), step.Block))
		if err != nil {
			return nil, err
		}

		out = append(out, inlined...)
	}

	return out, nil
}

func normalizeStep(step *StepSpec) error {
	step.Type = StepType(strings.ToLower(strings.TrimSpace(string(step.Type))))
	step.Say = strings.TrimSpace(step.Say)
	step.End = strings.TrimSpace(step.End)
	step.Block = strings.TrimSpace(step.Block)

	switch step.Type {
	case StepCountdown:
		if step.Seconds <= 0 {
			return errors.New("countdown seconds must be greater than 0")
		}

		if step.Say == "" {
			return errors.New("countdown phrase is required")
		}

	case StepStopwatch:
		if step.Seconds != 0 {
			return errors.New("stopwatch takes no seconds")
		}

		if step.Say == "" {
			return errors.New("stopwatch phrase is required")
		}

	case StepPhrase:
		if step.Say == "" {
			return errors.New("phrase text is required")
		}

		if step.Seconds != 0 || step.End != "" {
			return errors.New("phrase takes only a text")
		}

	case StepInclude:
		if step.Block == "" {
			return errors.New("include block is required")
		}

		if step.Say != "" || step.End != "" || step.Seconds != 0 {
			return errors.New("include takes only a block")
		}

	default:
		return fmt.Errorf("unknown step type %q", step.Type)
	}

	return nil
}

// placeholderWarnings reports placeholders that render as "undefined".
func placeholderWarnings(steps []StepSpec) []string {
	var warnings []string

	for i, step := range steps {
		for _, text := range []string{step.Say, step.End} {
			for _, key := range phrase.Placeholders(text) {
				if key == phrase.RemainsKey && step.Type == StepCountdown {
					continue
				}

				warnings = append(warnings, fmt.Sprintf("step %d: placeholder {{%s}} has no value", i+1, key))
			}
		}
	}

	return warnings
}
