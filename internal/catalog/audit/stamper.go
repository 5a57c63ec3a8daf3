// Package audit stamps mutation provenance on entity payloads. One stamper
// serves every collection; the per-model lifecycle hooks this replaces all
// did the same two assignments.
package audit

// Op is the mutation kind being stamped.
type Op int

const (
	OpCreate Op = iota
	OpUpdate
)

// Stamp sets created_by/updated_by on the payload. The actor is threaded in
// explicitly by the caller, never read from ambient state; a nil actor
// (anonymous or system action) leaves the stamps null.
//
// On create both stamps take the actor. On update updated_by is always
// overwritten, even when the actor is nil, and created_by is never touched.
func Stamp(payload map[string]interface{}, actorID *uint, op Op) {
	switch op {
	case OpCreate:
		if actorID != nil {
			payload["created_by"] = *actorID
			payload["updated_by"] = *actorID
		}
	case OpUpdate:
		delete(payload, "created_by")
		if actorID != nil {
			payload["updated_by"] = *actorID
		} else {
			payload["updated_by"] = nil
		}
	}
}
