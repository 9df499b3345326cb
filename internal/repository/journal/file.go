package journal

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sync"
	"time"

	"google.golang.org/protobuf/encoding/protojson"
	"google.golang.org/protobuf/types/known/structpb"

	"github.com/oshokin/tickstack/internal/config"
	"github.com/oshokin/tickstack/internal/domain/workout"
)

// Repository defines persistence operations for run records.
type Repository interface {
	Load(ctx context.Context) ([]*workout.Record, error)
	Append(ctx context.Context, record *workout.Record) error
}

// Field names of a record document.
const (
	fieldRunID      = "run_id"
	fieldTitle      = "title"
	fieldStartedAt  = "started_at"
	fieldFinishedAt = "finished_at"
	fieldCompleted  = "completed"
	fieldStepsDone  = "steps_done"
	fieldStepCount  = "step_count"
	fieldSkips      = "skips"
	fieldStepIndex  = "step_index"
	fieldAt         = "at"
	fieldHostname   = "hostname"
	fieldUsername   = "username"
)

// FileRepository persists records to a JSON file on disk.
// JSON is produced and consumed via protojson over structpb values.
type FileRepository struct {
	// path is the filesystem location of the journal file.
	path string
	// limit is the maximum number of records kept, oldest dropped first.
	limit int
	// mu protects concurrent access to the journal file.
	mu sync.Mutex
}

// ErrNotFound is returned when the journal file does not exist yet.
var ErrNotFound = errors.New("journal not found")

// NewFileRepository creates a repository that reads/writes JSON at the provided path.
func NewFileRepository(path string, limit int) *FileRepository {
	if limit <= 0 {
		limit = config.DefaultJournalLimit
	}

	return &FileRepository{
		path:  filepath.Clean(path),
		limit: limit,
	}
}

// Load reads every record from disk, oldest first.
func (r *FileRepository) Load(_ context.Context) ([]*workout.Record, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	return r.load()
}

// Append adds a record and trims the journal to its limit.
func (r *FileRepository) Append(_ context.Context, record *workout.Record) error {
	if record == nil {
		return nil
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	records, err := r.load()
	if err != nil && !errors.Is(err, ErrNotFound) {
		return err
	}

	records = append(records, record.Clone())
	if extra := len(records) - r.limit; extra > 0 {
		records = records[extra:]
	}

	list, err := toList(records)
	if err != nil {
		return err
	}

	marshalOptions := protojson.MarshalOptions{
		Multiline: true,
	}

	data, err := marshalOptions.Marshal(list)
	if err != nil {
		return fmt.Errorf("encode journal: %w", err)
	}

	if err = os.WriteFile(r.path, data, config.DefaultFilePermissions); err != nil {
		return fmt.Errorf("write journal file: %w", err)
	}

	return nil
}

func (r *FileRepository) load() ([]*workout.Record, error) {
	contents, err := os.ReadFile(r.path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return nil, ErrNotFound
		}

		return nil, fmt.Errorf("read journal file: %w", err)
	}

	var list structpb.ListValue
	if err = protojson.Unmarshal(contents, &list); err != nil {
		return nil, fmt.Errorf("decode journal file: %w", err)
	}

	records := make([]*workout.Record, 0, len(list.GetValues()))

	for _, value := range list.GetValues() {
		record, err := fromProto(value.GetStructValue())
		if err != nil {
			return nil, err
		}

		records = append(records, record)
	}

	return records, nil
}

// toList converts records into a protobuf list value.
func toList(records []*workout.Record) (*structpb.ListValue, error) {
	items := make([]any, 0, len(records))

	for _, record := range records {
		skips := make([]any, 0, len(record.Skips))

		for _, skip := range record.Skips {
			item := map[string]any{
				fieldStepIndex: skip.StepIndex,
				fieldAt:        formatTime(skip.At),
			}

			if skip.Actor != nil {
				item[fieldHostname] = skip.Actor.Hostname
				item[fieldUsername] = skip.Actor.Username
			}

			skips = append(skips, item)
		}

		items = append(items, map[string]any{
			fieldRunID:      record.RunID,
			fieldTitle:      record.Title,
			fieldStartedAt:  formatTime(record.StartedAt),
			fieldFinishedAt: formatTime(record.FinishedAt),
			fieldCompleted:  record.Completed,
			fieldStepsDone:  record.StepsDone,
			fieldStepCount:  record.StepCount,
			fieldSkips:      skips,
		})
	}

	list, err := structpb.NewList(items)
	if err != nil {
		return nil, fmt.Errorf("encode journal: %w", err)
	}

	return list, nil
}

// fromProto converts a record document into the domain Record model.
func fromProto(doc *structpb.Struct) (*workout.Record, error) {
	fields := doc.GetFields()

	startedAt, err := parseTime(fields[fieldStartedAt].GetStringValue())
	if err != nil {
		return nil, err
	}

	finishedAt, err := parseTime(fields[fieldFinishedAt].GetStringValue())
	if err != nil {
		return nil, err
	}

	record := &workout.Record{
		RunID:      fields[fieldRunID].GetStringValue(),
		Title:      fields[fieldTitle].GetStringValue(),
		StartedAt:  startedAt,
		FinishedAt: finishedAt,
		Completed:  fields[fieldCompleted].GetBoolValue(),
		StepsDone:  int(fields[fieldStepsDone].GetNumberValue()),
		StepCount:  int(fields[fieldStepCount].GetNumberValue()),
	}

	for _, value := range fields[fieldSkips].GetListValue().GetValues() {
		skipFields := value.GetStructValue().GetFields()

		at, err := parseTime(skipFields[fieldAt].GetStringValue())
		if err != nil {
			return nil, err
		}

		skip := workout.Skip{
			StepIndex: int(skipFields[fieldStepIndex].GetNumberValue()),
			At:        at,
		}

		hostname := skipFields[fieldHostname].GetStringValue()
		username := skipFields[fieldUsername].GetStringValue()

		if hostname != "" || username != "" {
			skip.Actor = &workout.Actor{Hostname: hostname, Username: username}
		}

		record.Skips = append(record.Skips, skip)
	}

	return record, nil
}

func formatTime(t time.Time) string {
	if t.IsZero() {
		return ""
	}

	return t.UTC().Format(time.RFC3339Nano)
}

func parseTime(raw string) (time.Time, error) {
	if raw == "" {
		return time.Time{}, nil
	}

	t, err := time.Parse(time.RFC3339Nano, raw)
	if err != nil {
		return time.Time{}, fmt.Errorf("decode timestamp %q: %w", raw, err)
	}

	return t, nil
}
