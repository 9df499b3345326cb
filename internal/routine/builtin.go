package routine

import (
	"embed"
	"fmt"
	"io/fs"
)

//go:embed builtin/*.yaml
var builtinFS embed.FS

// LoadBuiltin returns the routines bundled with tickstack in file name order.
func LoadBuiltin() ([]*Routine, error) {
	entries, err := fs.ReadDir(builtinFS, "builtin")
	if err != nil {
		return nil, fmt.Errorf("read builtin routines: %w", err)
	}

	routines := make([]*Routine, 0, len(entries))

	for _, entry := range entries {
		if entry.IsDir() {
			continue
		}

		data, err := builtinFS.ReadFile("builtin/" + entry.Name())
		if err != nil {
			return nil, fmt.Errorf("read builtin routine %s: %w", entry.Name(), err)
		}

		r, err := Parse(data)
		if err != nil {
			return nil, fmt.Errorf("parse builtin routine %s: %w", entry.Name(), err)
		}

		r.Source = SourceBuiltin
		routines = append(routines, r)
	}

	return routines, nil
}
