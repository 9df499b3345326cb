//nolint:revive,nolintlint // Package name "common" is intentional for shared helpers.
package common

import (
	"fmt"
	"os"
	"os/user"

	"github.com/oshokin/tickstack/internal/domain/workout"
)

// DetectActor gathers host and user information so the runner can log who skipped a step.
func DetectActor() (*workout.Actor, error) {
	hostname, err := os.Hostname()
	if err != nil {
		return nil, fmt.Errorf("hostname: %w", err)
	}

	currentUser, err := user.Current()
	if err != nil {
		return nil, fmt.Errorf("current user: %w", err)
	}

	return &workout.Actor{
		Hostname: hostname,
		Username: currentUser.Username,
	}, nil
}
