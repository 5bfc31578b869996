package domain

// RegistrationStatus is the lifecycle state of a registration/submission.
type RegistrationStatus string

const (
	StatusPending   RegistrationStatus = "PENDING"
	StatusSubmitted RegistrationStatus = "SUBMITTED"
	StatusApproved  RegistrationStatus = "APPROVED"
	StatusRejected  RegistrationStatus = "REJECTED"
)

// transitions maps each state to the states reachable from it.
// REJECTED -> SUBMITTED models revise-and-resubmit; APPROVED is absorbing.
var transitions = map[RegistrationStatus][]RegistrationStatus{
	StatusPending:   {StatusSubmitted},
	StatusSubmitted: {StatusApproved, StatusRejected},
	StatusRejected:  {StatusSubmitted},
	StatusApproved:  {},
}

// CanTransition reports whether moving from one status to another is allowed.
func CanTransition(from, to RegistrationStatus) bool {
	for _, next := range transitions[from] {
		if next == to {
			return true
		}
	}
	return false
}

// IsFinal reports whether a status accepts no further review.
func (s RegistrationStatus) IsFinal() bool {
	return s == StatusApproved
}

// ResourceKind identifies the kind of a tenant-scoped resource.
type ResourceKind string

const (
	KindClub     ResourceKind = "club"
	KindEvent    ResourceKind = "event"
	KindTraining ResourceKind = "training"
	KindClause   ResourceKind = "iso_clause"
	KindStudent  ResourceKind = "student"
	KindDocument ResourceKind = "document"
)

// Registrable reports whether the kind participates in the registration workflow.
func (k ResourceKind) Registrable() bool {
	switch k {
	case KindClub, KindEvent, KindTraining, KindClause:
		return true
	}
	return false
}

// ParseResourceKind resolves a path segment to a resource kind.
func ParseResourceKind(s string) (ResourceKind, bool) {
	switch s {
	case "clubs", "club":
		return KindClub, true
	case "events", "event":
		return KindEvent, true
	case "trainings", "training":
		return KindTraining, true
	case "clauses", "iso_clause", "clause":
		return KindClause, true
	case "students", "student":
		return KindStudent, true
	case "documents", "document":
		return KindDocument, true
	}
	return "", false
}
