package notifier

import (
	"github.com/pklbhq/courtside/internal/rotation"
	"github.com/pklbhq/courtside/internal/session"
)

// Notifier defines a high-level interface for announcing business events to
// the group. This decouples the rest of the application from the specific
// notification provider (e.g., Slack). PlayerNames maps player ids to display
// names so the provider never has to reach back into storage.
type Notifier interface {
	// SendSlateNotification announces a freshly applied rotation: who plays
	// on which court, who waits, and which locked courts were left alone.
	SendSlateNotification(slate *rotation.Slate, skippedLocked []int, playerNames map[string]string, dryRun bool) error
	// SendResultNotification announces a recorded game result.
	SendResultNotification(game *session.GameRecord, playerNames map[string]string, dryRun bool) error
	// SendDuplicateWarning tells the operator channel a submission was held
	// back as a possible duplicate and needs explicit confirmation.
	SendDuplicateWarning(duplicateOf string, dryRun bool) error
}
