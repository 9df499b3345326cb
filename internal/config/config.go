package config

import (
	"errors"
	"fmt"
	"net"
	"os"
	"path/filepath"
	"time"

	"gopkg.in/yaml.v3"
)

// Config holds the settings shared by the tickstack commands.
type Config struct {
	// ControlAddress is the gRPC address of the local control endpoint.
	ControlAddress string `yaml:"control_addr"`
	// RoutinesDir is an optional directory with user routine YAML files.
	RoutinesDir string `yaml:"routines_dir,omitempty"`
	// FrameInterval is the period of the clock frame signal.
	FrameInterval time.Duration `yaml:"frame_interval"`
	// DisableWakeLock skips the screen-wake inhibitor during runs.
	DisableWakeLock bool `yaml:"disable_wake_lock"`
	// Timeout is the duration for control RPC calls.
	Timeout time.Duration `yaml:"timeout"`
	// LogLevel is the minimum level for log output.
	LogLevel string `yaml:"log_level,omitempty"`
	// LogFile receives logs while the terminal UI owns the screen.
	LogFile string `yaml:"log_file,omitempty"`
	// JournalFile stores the log of finished runs.
	JournalFile string `yaml:"journal_file"`
	// JournalLimit is how many finished runs the journal keeps.
	JournalLimit int `yaml:"journal_limit"`
	// Speech configures the text-to-speech backend.
	Speech Speech `yaml:"speech"`
}

// Speech configures how phrases are synthesized.
type Speech struct {
	// Disabled turns speech off; phrases are still shown.
	Disabled bool `yaml:"disabled"`
	// Command overrides the detected synthesizer executable.
	Command string `yaml:"command,omitempty"`
	// Args are passed to Command before the phrase.
	Args []string `yaml:"args,omitempty"`
	// Stdin feeds the phrase on standard input instead of as the last argument.
	Stdin bool `yaml:"stdin,omitempty"`
	// Timeout bounds a single utterance so a stuck synthesizer cannot stall a run.
	Timeout time.Duration `yaml:"timeout"`
}

const (
	// DefaultConfigFilename is the default filename for tickstack settings.
	DefaultConfigFilename = "tickstack.yaml"

	// DefaultControlAddress is where the control endpoint listens by default.
	DefaultControlAddress = "127.0.0.1:47600"

	// DefaultFrameInterval is the default clock frame period.
	DefaultFrameInterval = 50 * time.Millisecond

	// DefaultJournalFilename is the default file for the run journal.
	DefaultJournalFilename = "tickstack-journal.json"

	// DefaultJournalLimit is the default number of journal records kept.
	DefaultJournalLimit = 100

	// DefaultTimeout is the default duration for control RPC calls.
	DefaultTimeout = 5 * time.Second

	// DefaultSpeechTimeout is the default upper bound for one utterance.
	DefaultSpeechTimeout = 30 * time.Second

	// DefaultFilePermissions is the default file permission for config files.
	DefaultFilePermissions = 0o600

	// minFrameInterval keeps the clock from spinning.
	minFrameInterval = 5 * time.Millisecond
)

var (
	// errConfigIsNotSet is returned when a nil configuration is provided.
	errConfigIsNotSet = errors.New("configuration is not set")
	// errFrameIntervalTooShort is returned for frame intervals below minFrameInterval.
	errFrameIntervalTooShort = errors.New("frame interval is too short")
)

// Default returns the settings used when no file exists.
func Default() *Config {
	return &Config{
		ControlAddress: DefaultControlAddress,
		FrameInterval:  DefaultFrameInterval,
		Timeout:        DefaultTimeout,
		LogLevel:       "info",
		JournalFile:    DefaultJournalFilename,
		JournalLimit:   DefaultJournalLimit,
		Speech: Speech{
			Timeout: DefaultSpeechTimeout,
		},
	}
}

// Load reads configuration from the provided path and validates it.
// An empty path means DefaultConfigFilename, which may be absent.
func Load(path string) (*Config, error) {
	optional := path == ""
	if optional {
		path = DefaultConfigFilename
	}

	contents, err := os.ReadFile(filepath.Clean(path))
	if err != nil {
		if optional && errors.Is(err, os.ErrNotExist) {
			return Default(), nil
		}

		return nil, fmt.Errorf("read settings: %w", err)
	}

	cfg := Default()
	if err := yaml.Unmarshal(contents, cfg); err != nil {
		return nil, fmt.Errorf("unmarshal settings: %w", err)
	}

	if err := Validate(cfg); err != nil {
		return nil, err
	}

	return cfg, nil
}

// Save writes settings to the provided path.
func Save(path string, cfg *Config) error {
	if cfg == nil {
		return errConfigIsNotSet
	}

	if path == "" {
		path = DefaultConfigFilename
	}

	if err := Validate(cfg); err != nil {
		return err
	}

	data, err := yaml.Marshal(cfg)
	if err != nil {
		return fmt.Errorf("marshal settings: %w", err)
	}

	if err := os.WriteFile(filepath.Clean(path), data, DefaultFilePermissions); err != nil {
		return fmt.Errorf("write settings: %w", err)
	}

	return nil
}

// Validate checks the settings and fills defaults for unset values.
func Validate(settings *Config) error {
	if settings == nil {
		return errConfigIsNotSet
	}

	if settings.ControlAddress == "" {
		settings.ControlAddress = DefaultControlAddress
	}

	if _, err := net.ResolveTCPAddr("tcp", settings.ControlAddress); err != nil {
		return fmt.Errorf("invalid control address: %w", err)
	}

	if settings.FrameInterval <= 0 {
		settings.FrameInterval = DefaultFrameInterval
	}

	if settings.FrameInterval < minFrameInterval {
		return fmt.Errorf("%w: %s", errFrameIntervalTooShort, settings.FrameInterval)
	}

	if settings.Timeout <= 0 {
		settings.Timeout = DefaultTimeout
	}

	if settings.JournalFile == "" {
		settings.JournalFile = DefaultJournalFilename
	}

	if settings.JournalLimit <= 0 {
		settings.JournalLimit = DefaultJournalLimit
	}

	if settings.Speech.Timeout <= 0 {
		settings.Speech.Timeout = DefaultSpeechTimeout
	}

	return nil
}
