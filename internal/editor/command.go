package editor

import "fmt"

// Outcome is the result a confirmed command surfaces to the event loop.
type Outcome int

const (
	OutcomeNone Outcome = iota
	OutcomeQuit
)

// execCommand interprets a confirmed command-line string. It is
// stateless; the caller applies mode transitions based on the result.
func execCommand(cmd string) (Outcome, error) {
	switch cmd {
	case "q":
		return OutcomeQuit, nil
	default:
		return OutcomeNone, fmt.Errorf("Unknown command: %s", cmd)
	}
}
