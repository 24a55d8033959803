package recorder

import "github.com/pklbhq/courtside/internal/rotation"

// RecorderClient talks to the remote relational backend that owns the real
// transactional work: game insertion, duplicate detection within its recent
// window, and rating computation all run in its stored procedures. The
// rotation engine never calls this; only the host handlers do, and they treat
// every operation as a black box.
type RecorderClient interface {
	RecordGame(submission *GameSubmission) (*RecordOutcome, error)

	// Court lifecycle RPCs.
	InitCourts(sessionID string, courtCount int) error
	PersistAssignment(sessionID string, assignment rotation.CourtAssignment) error
	StartCourt(sessionID string, courtIndex int) error
	SetPlayerOut(sessionID, playerID string, out bool) error
}
