package roster

import (
	"time"

	"github.com/gridrivals/fantasy-motorsport/internal/domain/snapshot"
)

// ResolveAt determines the roster a participant had in force at the given
// cutoff: the snapshot with the latest CreatedAt strictly before the cutoff.
// With no qualifying snapshot the result is an empty roster.
//
// Two snapshots can share a CreatedAt when a participant saves twice inside
// the clock resolution; the one with the greater ID wins. That tie-break is a
// documented convention of this implementation, chosen for determinism.
func ResolveAt(participantID string, cutoff time.Time, snapshots []snapshot.TeamSnapshot) Roster {
	var best *snapshot.TeamSnapshot
	for i := range snapshots {
		s := &snapshots[i]
		if s.ParticipantID != participantID {
			continue
		}
		if !s.CreatedAt.Before(cutoff) {
			continue
		}
		if best == nil || s.CreatedAt.After(best.CreatedAt) ||
			(s.CreatedAt.Equal(best.CreatedAt) && s.ID > best.ID) {
			best = s
		}
	}
	if best == nil {
		return Roster{}
	}

	return fromSnapshot(*best)
}

// ResolveLatest determines the participant's current roster: the latest
// snapshot overall, unconstrained by any race cutoff. Used for "my team"
// views and market-validity checks.
func ResolveLatest(participantID string, snapshots []snapshot.TeamSnapshot) Roster {
	var best *snapshot.TeamSnapshot
	for i := range snapshots {
		s := &snapshots[i]
		if s.ParticipantID != participantID {
			continue
		}
		if best == nil || s.CreatedAt.After(best.CreatedAt) ||
			(s.CreatedAt.Equal(best.CreatedAt) && s.ID > best.ID) {
			best = s
		}
	}
	if best == nil {
		return Roster{}
	}

	return fromSnapshot(*best)
}

func fromSnapshot(s snapshot.TeamSnapshot) Roster {
	return Roster{
		RiderIDs:      append([]string(nil), s.RiderIDs...),
		ConstructorID: s.ConstructorID,
	}
}
