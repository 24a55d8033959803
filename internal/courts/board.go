package courts

import (
	"github.com/charmbracelet/log"

	"github.com/pklbhq/courtside/internal/rotation"
)

// Board holds the mutable court states an operator edits between games. It is
// a plain in-memory value the host threads through successive calls; none of
// its operations can fail. Every mutation reports whether anything changed,
// so an ignored action (a write against a locked court, an out-of-range
// index) stays observable to the caller instead of being silently swallowed.
//
// The one invariant the board enforces structurally is single seating: a
// player id occupies at most one slot across all courts. Every mutation path
// funnels through evictOpen before seating anyone.
type Board struct {
	courts []CourtState
}

// NewBoard creates a board with courtCount empty, unlocked courts.
func NewBoard(courtCount int) *Board {
	if courtCount < 0 {
		courtCount = 0
	}
	return &Board{courts: make([]CourtState, courtCount)}
}

// FromStates rebuilds a board from persisted court states.
func FromStates(states []CourtState) *Board {
	return &Board{courts: append([]CourtState(nil), states...)}
}

// States returns a copy of the current court states for rendering or
// persistence. Mutating the copy does not affect the board.
func (b *Board) States() []CourtState {
	return append([]CourtState(nil), b.courts...)
}

// Len returns the number of courts on the board.
func (b *Board) Len() int {
	return len(b.courts)
}

// HasOpenEntries reports whether any open court has at least one filled slot.
// The host gates destructive full replaces behind operator confirmation when
// this is true.
func (b *Board) HasOpenEntries() bool {
	for _, court := range b.courts {
		if !court.Locked && !court.IsEmpty() {
			return true
		}
	}
	return false
}

// Resize discards the current layout for a new court count. Destructive from
// the operator's point of view; callers confirm first when HasOpenEntries.
func (b *Board) Resize(courtCount int) {
	if courtCount < 0 {
		courtCount = 0
	}
	b.courts = make([]CourtState, courtCount)
}

// Assign seats a player in one slot. If the player already occupies a slot on
// any open court they are evicted from it first, so an id can never be seated
// twice. The call is a no-op when the target court is locked, the slot is out
// of range, or the player is pinned to a locked court and cannot be evicted.
func (b *Board) Assign(courtIndex int, team Team, slotIndex int, playerID string) bool {
	slot := b.slot(courtIndex, team, slotIndex)
	if slot == nil || playerID == "" {
		return false
	}
	if b.courts[courtIndex].Locked {
		log.Debug("Ignoring assign to locked court", "court", courtIndex)
		return false
	}
	if b.seatedOnLockedCourt(playerID) {
		log.Debug("Ignoring assign, player seated on a locked court", "player", playerID)
		return false
	}
	if *slot == playerID {
		return false
	}
	b.evictOpen(playerID)
	*slot = playerID
	return true
}

// Clear empties one slot. No-op when the court is locked, the slot is out of
// range, or the slot is already empty.
func (b *Board) Clear(courtIndex int, team Team, slotIndex int) bool {
	slot := b.slot(courtIndex, team, slotIndex)
	if slot == nil || b.courts[courtIndex].Locked || *slot == "" {
		return false
	}
	*slot = ""
	return true
}

// ToggleLock flips a court between open and locked. Locking does not require
// the court to be full.
func (b *Board) ToggleLock(courtIndex int) bool {
	if courtIndex < 0 || courtIndex >= len(b.courts) {
		return false
	}
	b.courts[courtIndex].Locked = !b.courts[courtIndex].Locked
	return true
}

// ApplyAssignments writes an algorithmic slate onto the board. Only open
// courts are overwritten; the returned indices are the locked courts whose
// assignments were skipped, which the host must surface to the operator as a
// visible exception. Assignments pointing outside the board are dropped.
// Incoming players seated elsewhere are evicted from open courts first; a
// player pinned to a locked court leaves their incoming slot empty rather
// than appearing twice. Open courts the slate does not cover are emptied:
// a replace leaves no stale seating behind, so an unseated player cannot be
// both waiting and on a court.
func (b *Board) ApplyAssignments(assignments []rotation.CourtAssignment) (skippedLocked []int) {
	covered := make(map[int]bool, len(assignments))
	for _, assignment := range assignments {
		if assignment.CourtIndex < 0 || assignment.CourtIndex >= len(b.courts) {
			log.Warn("Dropping assignment for court outside the board", "court", assignment.CourtIndex)
			continue
		}
		covered[assignment.CourtIndex] = true
		if b.courts[assignment.CourtIndex].Locked {
			skippedLocked = append(skippedLocked, assignment.CourtIndex)
			continue
		}

		var next CourtState
		for i := 0; i < SlotsPerTeam && i < len(assignment.TeamA); i++ {
			next.TeamA[i] = b.placeable(assignment.TeamA[i])
		}
		for i := 0; i < SlotsPerTeam && i < len(assignment.TeamB); i++ {
			next.TeamB[i] = b.placeable(assignment.TeamB[i])
		}
		for _, id := range next.Players() {
			b.evictOpen(id)
		}
		b.courts[assignment.CourtIndex] = next
	}
	for i := range b.courts {
		if !covered[i] && !b.courts[i].Locked {
			b.courts[i] = CourtState{}
		}
	}
	return skippedLocked
}

// Assignments returns the board as court assignments, including partially
// filled courts, in board order. Reshuffle passes partial courts through
// unchanged, so this is safe to feed straight into it.
func (b *Board) Assignments() []rotation.CourtAssignment {
	out := make([]rotation.CourtAssignment, 0, len(b.courts))
	for i, court := range b.courts {
		assignment := rotation.CourtAssignment{CourtIndex: i}
		for _, id := range court.TeamA {
			if id != "" {
				assignment.TeamA = append(assignment.TeamA, id)
			}
		}
		for _, id := range court.TeamB {
			if id != "" {
				assignment.TeamB = append(assignment.TeamB, id)
			}
		}
		out = append(out, assignment)
	}
	return out
}

// slot returns a pointer into the board for a valid (court, team, slot)
// triple, or nil when any index is out of range.
func (b *Board) slot(courtIndex int, team Team, slotIndex int) *string {
	if courtIndex < 0 || courtIndex >= len(b.courts) {
		return nil
	}
	if slotIndex < 0 || slotIndex >= SlotsPerTeam {
		return nil
	}
	switch team {
	case TeamA:
		return &b.courts[courtIndex].TeamA[slotIndex]
	case TeamB:
		return &b.courts[courtIndex].TeamB[slotIndex]
	}
	return nil
}

// evictOpen clears the player from any slot on an open court. Locked courts
// are never touched.
func (b *Board) evictOpen(playerID string) {
	for i := range b.courts {
		if b.courts[i].Locked {
			continue
		}
		for s := range b.courts[i].TeamA {
			if b.courts[i].TeamA[s] == playerID {
				b.courts[i].TeamA[s] = ""
			}
		}
		for s := range b.courts[i].TeamB {
			if b.courts[i].TeamB[s] == playerID {
				b.courts[i].TeamB[s] = ""
			}
		}
	}
}

func (b *Board) seatedOnLockedCourt(playerID string) bool {
	for _, court := range b.courts {
		if !court.Locked {
			continue
		}
		for _, id := range court.Players() {
			if id == playerID {
				return true
			}
		}
	}
	return false
}

// placeable returns the id unless it is pinned to a locked court, in which
// case the slot stays empty.
func (b *Board) placeable(playerID string) string {
	if b.seatedOnLockedCourt(playerID) {
		log.Warn("Player is locked on another court, leaving slot empty", "player", playerID)
		return ""
	}
	return playerID
}
