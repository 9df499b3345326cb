package workout

import "fmt"

// Actor identifies who asked a running routine to move on.
type Actor struct {
	// Hostname is the machine name where the request came from.
	Hostname string
	// Username is the system user who sent the request.
	Username string
}

// Clone returns a deep copy of the actor.
func (a *Actor) Clone() *Actor {
	if a == nil {
		return nil
	}

	cloned := *a

	return &cloned
}

// String renders the actor as username@hostname.
func (a *Actor) String() string {
	if a == nil {
		return "<unknown>"
	}

	return fmt.Sprintf("%s@%s", a.Username, a.Hostname)
}
