package routine

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/oshokin/tickstack/internal/timeline"
)

const sampleRoutine = `title: "Evening Core"
description: "  Planks and a cooldown.  "
blocks:
  plank:
    - type: countdown
      seconds: 30
      say: "Plank for {{remains}} seconds"
    - type: countdown
      seconds: 15
      say: "Rest for {{remains}} seconds"
steps:
  - type: phrase
    say: "Starting evening core"
  - type: include
    block: plank
  - type: include
    block: plank
  - type: stopwatch
    say: "Hollow hold"
    end: "Nice hold"
  - type: countdown
    seconds: 60
    say: "Cool down"
    end: "All done"
`

func writeRoutine(t *testing.T, dir, name, contents string) string {
	t.Helper()

	path := filepath.Join(dir, name)
	require.NoError(t, os.WriteFile(path, []byte(contents), 0o600))

	return path
}

// TestSlugify checks identifiers derived from titles.
func TestSlugify(t *testing.T) {
	t.Parallel()

	cases := map[string]string{
		"Monday Workout":            "monday-workout",
		"Pre-run lower back warmup": "pre-run-lower-back-warmup",
		"  Child's pose!  ":         "child-s-pose",
		"***":                       "",
	}
	for title, want := range cases {
		require.Equal(t, want, Slugify(title), title)
	}
}

// TestParse_ExpandsBlocks checks normalization and block expansion.
func TestParse_ExpandsBlocks(t *testing.T) {
	t.Parallel()

	r, err := Parse([]byte(sampleRoutine))
	require.NoError(t, err)
	require.Equal(t, "Evening Core", r.Title)
	require.Equal(t, "evening-core", r.Slug)
	require.Equal(t, "Planks and a cooldown.", r.Description)
	require.Empty(t, r.Warnings)

	steps, err := Expand(r)
	require.NoError(t, err)
	require.Len(t, steps, 7)
	require.Equal(t, StepCountdown, steps[1].Type)
	require.Equal(t, StepCountdown, steps[3].Type)
	require.Equal(t, (30+15+30+15+60)*time.Second, r.TotalDuration())
}

// TestParse_Rejects covers invalid routine documents.
func TestParse_Rejects(t *testing.T) {
	t.Parallel()

	cases := map[string]string{
		"missing title":      "steps:\n  - type: phrase\n    say: Hi\n",
		"no steps":           "title: Empty\n",
		"zero seconds":       "title: X\nsteps:\n  - type: countdown\n    say: Go\n",
		"countdown no text":  "title: X\nsteps:\n  - type: countdown\n    seconds: 5\n",
		"stopwatch seconds":  "title: X\nsteps:\n  - type: stopwatch\n    seconds: 5\n    say: Go\n",
		"phrase with end":    "title: X\nsteps:\n  - type: phrase\n    say: Hi\n    end: Bye\n",
		"unknown type":       "title: X\nsteps:\n  - type: sprint\n    say: Go\n",
		"unknown block":      "title: X\nsteps:\n  - type: include\n    block: nope\n",
		"include with text":  "title: X\nblocks:\n  a:\n    - type: phrase\n      say: Hi\nsteps:\n  - type: include\n    block: a\n    say: Hi\n",
		"bad yaml":           "title: [\n",
		"title without word": "title: '!!!'\nsteps:\n  - type: phrase\n    say: Hi\n",
	}
	for name, doc := range cases {
		_, err := Parse([]byte(doc))
		require.Error(t, err, name)
	}
}

// TestParse_RejectsIncludeCycle detects blocks including each other.
func TestParse_RejectsIncludeCycle(t *testing.T) {
	t.Parallel()

	doc := `title: Loop
blocks:
  a:
    - type: include
      block: b
  b:
    - type: phrase
      say: Hi
    - type: include
      block: a
steps:
  - type: include
    block: a
`

	_, err := Parse([]byte(doc))
	require.ErrorIs(t, err, errIncludeCycle)
	require.ErrorContains(t, err, "a -> b -> a")
}

// TestParse_WarnsAboutPlaceholders flags placeholders that never get a value.
func TestParse_WarnsAboutPlaceholders(t *testing.T) {
	t.Parallel()

	doc := `title: Odd
steps:
  - type: stopwatch
    say: "Hold for {{remains}} seconds"
  - type: countdown
    seconds: 5
    say: "Set {{set}} for {{remains}} seconds"
`

	r, err := Parse([]byte(doc))
	require.NoError(t, err)
	require.Equal(t, []string{
		"step 1: placeholder {{remains}} has no value",
		"step 2: placeholder {{set}} has no value",
	}, r.Warnings)
}

// TestLoadBuiltin checks the embedded routines.
func TestLoadBuiltin(t *testing.T) {
	t.Parallel()

	routines, err := LoadBuiltin()
	require.NoError(t, err)

	titles := make([]string, 0, len(routines))
	for _, r := range routines {
		require.Equal(t, SourceBuiltin, r.Source)
		require.Empty(t, r.Warnings, r.Title)
		titles = append(titles, r.Title)
	}

	require.Equal(t, []string{
		"Pre-run lower back warmup",
		"Long Stretching Routine",
		"Short Stretching Routine",
		"Monday Workout",
		"Tuesday Workout",
		"Wednesday Workout",
		"Thursday Workout",
		"Friday Workout",
		"Saturday Workout",
	}, titles)

	monday, err := Find(routines, "monday-workout")
	require.NoError(t, err)
	require.Equal(t, 330*time.Second, monday.TotalDuration())

	steps, err := Expand(monday)
	require.NoError(t, err)
	require.Len(t, steps, 15)
}

// TestFind matches by slug or title.
func TestFind(t *testing.T) {
	t.Parallel()

	routines, err := LoadBuiltin()
	require.NoError(t, err)

	r, err := Find(routines, "Short Stretching Routine")
	require.NoError(t, err)
	require.Equal(t, "short-stretching-routine", r.Slug)

	r, err = Find(routines, "  friday workout ")
	require.NoError(t, err)
	require.Equal(t, "Friday Workout", r.Title)

	_, err = Find(routines, "sunday")
	require.ErrorIs(t, err, ErrNotFound)
}

// TestLoadDir reads YAML files and skips everything else.
func TestLoadDir(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	writeRoutine(t, dir, "core.yaml", sampleRoutine)
	writeRoutine(t, dir, "notes.txt", "not a routine")
	writeRoutine(t, dir, "a.yml", "title: Alpha\nsteps:\n  - type: phrase\n    say: Hi\n")
	require.NoError(t, os.Mkdir(filepath.Join(dir, "nested.yaml"), 0o700))

	routines, err := LoadDir(dir)
	require.NoError(t, err)
	require.Len(t, routines, 2)
	require.Equal(t, "alpha", routines[0].Slug)
	require.Equal(t, "evening-core", routines[1].Slug)
	require.Equal(t, filepath.Join(dir, "core.yaml"), routines[1].Source)

	routines, err = LoadDir(filepath.Join(dir, "missing"))
	require.NoError(t, err)
	require.Empty(t, routines)

	routines, err = LoadDir("")
	require.NoError(t, err)
	require.Empty(t, routines)

	writeRoutine(t, dir, "broken.yaml", "title: Broken\n")
	_, err = LoadDir(dir)
	require.ErrorContains(t, err, "broken.yaml")
}

// TestLoadAll lets user routines replace built-in ones by slug.
func TestLoadAll(t *testing.T) {
	t.Parallel()

	builtins, err := LoadBuiltin()
	require.NoError(t, err)

	dir := t.TempDir()
	writeRoutine(t, dir, "monday.yaml", "title: Monday workout\nsteps:\n  - type: phrase\n    say: Rest day instead\n")
	writeRoutine(t, dir, "core.yaml", sampleRoutine)

	routines, err := LoadAll(dir)
	require.NoError(t, err)
	require.Len(t, routines, len(builtins)+1)

	monday, err := Find(routines, "monday-workout")
	require.NoError(t, err)
	require.Equal(t, filepath.Join(dir, "monday.yaml"), monday.Source)
	require.Equal(t, "Monday workout", routines[3].Title)
	require.Equal(t, "Evening Core", routines[len(routines)-1].Title)
}

// TestBuild turns a routine into a timeline.
func TestBuild(t *testing.T) {
	t.Parallel()

	r, err := Parse([]byte(sampleRoutine))
	require.NoError(t, err)

	tl, err := Build(r, timeline.WithRunID("run"))
	require.NoError(t, err)
	require.Equal(t, "Evening Core", tl.Title())
	require.Equal(t, r.TotalDuration(), tl.TotalDuration())

	// The stopwatch end phrase becomes its own step.
	steps := tl.Steps()
	require.Len(t, steps, 8)
	require.IsType(t, &timeline.Phrase{}, steps[0])
	require.IsType(t, &timeline.Countdown{}, steps[1])
	require.IsType(t, &timeline.Stopwatch{}, steps[5])
	require.Equal(t, "Nice hold", steps[6].(*timeline.Phrase).Text())
	require.Equal(t, "All done", steps[7].(*timeline.Countdown).EndPhrase())
	require.Equal(t, "run", tl.Status().RunID)
}

// TestBuild_AllBuiltins checks every embedded routine builds.
func TestBuild_AllBuiltins(t *testing.T) {
	t.Parallel()

	routines, err := LoadBuiltin()
	require.NoError(t, err)

	for _, r := range routines {
		tl, err := Build(r)
		require.NoError(t, err, r.Title)
		require.Equal(t, r.TotalDuration(), tl.TotalDuration(), r.Title)
	}
}
