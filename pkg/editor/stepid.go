package editor

import (
	"fmt"

	"github.com/google/uuid"
)

// stepIDs hands out identifiers unique for the lifetime of a draft. A
// wall-clock id would collide for steps added within the same tick, so ids
// combine a draft-scoped monotonic counter with uuid entropy, and the
// assigned set is checked on every insert so uniqueness holds structurally.
type stepIDs struct {
	next     int
	assigned map[string]struct{}
}

func newStepIDs() *stepIDs {
	return &stepIDs{assigned: make(map[string]struct{})}
}

func (s *stepIDs) generate() string {
	for {
		s.next++
		id := fmt.Sprintf("step_%d_%s", s.next, uuid.NewString()[:8])

		if _, taken := s.assigned[id]; taken {
			continue
		}

		s.assigned[id] = struct{}{}

		return id
	}
}

// claim records an id that arrived from outside, e.g. steps of a workflow
// loaded for editing.
func (s *stepIDs) claim(id string) {
	s.assigned[id] = struct{}{}
}
