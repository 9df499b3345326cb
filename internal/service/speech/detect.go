package speech

import (
	"fmt"
	"os/exec"
	"runtime"

	"github.com/oshokin/tickstack/internal/config"
)

// powershellScript reads the phrase from stdin so quoting never matters.
const powershellScript = "Add-Type -AssemblyName System.Speech; " +
	"$synth = New-Object System.Speech.Synthesis.SpeechSynthesizer; " +
	"$synth.Speak([Console]::In.ReadToEnd())"

// candidate is a synthesizer known to work on some platform.
type candidate struct {
	name  string
	args  []string
	stdin bool
}

//nolint:gochecknoglobals // Read-only table of known synthesizers.
var candidates = map[string][]candidate{
	"linux": {
		{name: "espeak-ng"},
		{name: "espeak"},
		{name: "spd-say", args: []string{"-w"}},
	},
	"darwin": {
		{name: "say"},
	},
	"windows": {
		{name: "powershell.exe", args: []string{"-NoProfile", "-NonInteractive", "-Command", powershellScript}, stdin: true},
	},
}

// Detect returns the speaker configured in settings or the first synthesizer
// found on this platform. It returns Silent with ErrUnavailable when there is none.
func Detect(settings config.Speech) (Speaker, error) {
	return detect(settings, runtime.GOOS, exec.LookPath)
}

func detect(settings config.Speech, goos string, lookPath func(string) (string, error)) (Speaker, error) {
	if settings.Disabled {
		return Silent{}, nil
	}

	if settings.Command != "" {
		path, err := lookPath(settings.Command)
		if err != nil {
			return Silent{}, fmt.Errorf("%w: %s: %w", ErrUnavailable, settings.Command, err)
		}

		return &CommandSpeaker{Path: path, Args: settings.Args, Stdin: settings.Stdin}, nil
	}

	for _, c := range candidates[goos] {
		path, err := lookPath(c.name)
		if err != nil {
			continue
		}

		return &CommandSpeaker{Path: path, Args: c.args, Stdin: c.stdin}, nil
	}

	return Silent{}, fmt.Errorf("%w on %s", ErrUnavailable, goos)
}
