package control

import (
	"errors"
	"fmt"
	"math"
	"time"

	"google.golang.org/protobuf/types/known/structpb"

	"github.com/oshokin/tickstack/internal/domain/workout"
)

// Field names of the status document.
const (
	fieldRunID         = "run_id"
	fieldTitle         = "title"
	fieldRunning       = "running"
	fieldStepIndex     = "step_index"
	fieldStepCount     = "step_count"
	fieldTotalSeconds  = "total_seconds"
	fieldStartedAt     = "started_at"
	fieldState         = "state"
	fieldKind          = "kind"
	fieldText          = "text"
	fieldRemaining     = "remaining_seconds"
	fieldProgressRatio = "progress_ratio"
	fieldElapsed       = "elapsed_seconds"
	fieldHostname      = "hostname"
	fieldUsername      = "username"
)

// State kinds in the status document.
const (
	kindCountdown = "countdown"
	kindStopwatch = "stopwatch"
	kindSpeech    = "speech"
)

// errUnknownStateKind is returned for status documents with an unexpected state.
var errUnknownStateKind = errors.New("unknown state kind")

// ActorToProto converts an actor to the Next request document.
func ActorToProto(actor *workout.Actor) *structpb.Struct {
	if actor == nil {
		return new(structpb.Struct)
	}

	return &structpb.Struct{Fields: map[string]*structpb.Value{
		fieldHostname: structpb.NewStringValue(actor.Hostname),
		fieldUsername: structpb.NewStringValue(actor.Username),
	}}
}

// ActorFromProto converts a Next request document to an actor.
// It returns nil when the document names nobody.
func ActorFromProto(doc *structpb.Struct) *workout.Actor {
	fields := doc.GetFields()

	actor := &workout.Actor{
		Hostname: fields[fieldHostname].GetStringValue(),
		Username: fields[fieldUsername].GetStringValue(),
	}

	if actor.Hostname == "" && actor.Username == "" {
		return nil
	}

	return actor
}

// StatusToProto converts a status snapshot to its wire document.
func StatusToProto(status *workout.Status) (*structpb.Struct, error) {
	if status == nil {
		return new(structpb.Struct), nil
	}

	fields := map[string]any{
		fieldRunID:        status.RunID,
		fieldTitle:        status.Title,
		fieldRunning:      status.Running,
		fieldStepIndex:    status.StepIndex,
		fieldStepCount:    status.StepCount,
		fieldTotalSeconds: status.TotalDuration.Seconds(),
	}

	if !status.StartedAt.IsZero() {
		fields[fieldStartedAt] = status.StartedAt.UTC().Format(time.RFC3339Nano)
	}

	if state := stateToMap(status.State); state != nil {
		fields[fieldState] = state
	}

	doc, err := structpb.NewStruct(fields)
	if err != nil {
		return nil, fmt.Errorf("encode status: %w", err)
	}

	return doc, nil
}

// StatusFromProto converts a wire document back to a status snapshot.
func StatusFromProto(doc *structpb.Struct) (*workout.Status, error) {
	fields := doc.GetFields()

	status := &workout.Status{
		RunID:         fields[fieldRunID].GetStringValue(),
		Title:         fields[fieldTitle].GetStringValue(),
		Running:       fields[fieldRunning].GetBoolValue(),
		StepIndex:     int(fields[fieldStepIndex].GetNumberValue()),
		StepCount:     int(fields[fieldStepCount].GetNumberValue()),
		TotalDuration: seconds(fields[fieldTotalSeconds].GetNumberValue()),
	}

	if raw := fields[fieldStartedAt].GetStringValue(); raw != "" {
		startedAt, err := time.Parse(time.RFC3339Nano, raw)
		if err != nil {
			return nil, fmt.Errorf("decode started_at: %w", err)
		}

		status.StartedAt = startedAt
	}

	if state := fields[fieldState].GetStructValue(); state != nil {
		decoded, err := stateFromProto(state)
		if err != nil {
			return nil, err
		}

		status.State = decoded
	}

	return status, nil
}

func stateToMap(state workout.State) map[string]any {
	switch s := state.(type) {
	case workout.Countdown:
		return map[string]any{
			fieldKind:          kindCountdown,
			fieldText:          s.DisplayText,
			fieldRemaining:     s.Remaining.Seconds(),
			fieldProgressRatio: s.ProgressRatio,
		}
	case workout.Stopwatch:
		return map[string]any{
			fieldKind:    kindStopwatch,
			fieldText:    s.DisplayText,
			fieldElapsed: s.Elapsed.Seconds(),
		}
	case workout.Speech:
		return map[string]any{
			fieldKind: kindSpeech,
			fieldText: s.DisplayText,
		}
	default:
		return nil
	}
}

func stateFromProto(doc *structpb.Struct) (workout.State, error) {
	fields := doc.GetFields()
	text := fields[fieldText].GetStringValue()

	switch kind := fields[fieldKind].GetStringValue(); kind {
	case kindCountdown:
		return workout.Countdown{
			Remaining:     seconds(fields[fieldRemaining].GetNumberValue()),
			ProgressRatio: fields[fieldProgressRatio].GetNumberValue(),
			DisplayText:   text,
		}, nil
	case kindStopwatch:
		return workout.Stopwatch{
			Elapsed:     seconds(fields[fieldElapsed].GetNumberValue()),
			DisplayText: text,
		}, nil
	case kindSpeech:
		return workout.Speech{DisplayText: text}, nil
	default:
		return nil, fmt.Errorf("%w: %q", errUnknownStateKind, kind)
	}
}

// seconds converts a float number of seconds to a duration rounded to the millisecond.
func seconds(value float64) time.Duration {
	return time.Duration(math.Round(value*1000)) * time.Millisecond
}
