package domain

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestCanTransition(t *testing.T) {
	t.Parallel()

	allowed := []struct{ from, to RegistrationStatus }{
		{StatusPending, StatusSubmitted},
		{StatusSubmitted, StatusApproved},
		{StatusSubmitted, StatusRejected},
		{StatusRejected, StatusSubmitted},
	}
	for _, tc := range allowed {
		assert.True(t, CanTransition(tc.from, tc.to), "%s -> %s must be allowed", tc.from, tc.to)
	}

	denied := []struct{ from, to RegistrationStatus }{
		{StatusPending, StatusApproved},
		{StatusPending, StatusRejected},
		{StatusApproved, StatusSubmitted},
		{StatusApproved, StatusRejected},
		{StatusRejected, StatusApproved},
		{StatusSubmitted, StatusPending},
		{StatusApproved, StatusPending},
	}
	for _, tc := range denied {
		assert.False(t, CanTransition(tc.from, tc.to), "%s -> %s must be denied", tc.from, tc.to)
	}
}

func TestIsFinal(t *testing.T) {
	t.Parallel()

	assert.True(t, StatusApproved.IsFinal())
	assert.False(t, StatusPending.IsFinal())
	assert.False(t, StatusSubmitted.IsFinal())
	// rejected registrations can be resubmitted
	assert.False(t, StatusRejected.IsFinal())
}

func TestRegistrable(t *testing.T) {
	t.Parallel()

	assert.True(t, KindClub.Registrable())
	assert.True(t, KindEvent.Registrable())
	assert.True(t, KindTraining.Registrable())
	assert.True(t, KindClause.Registrable())

	assert.False(t, KindStudent.Registrable())
	assert.False(t, KindDocument.Registrable())
}

func TestParseResourceKind(t *testing.T) {
	t.Parallel()

	cases := map[string]ResourceKind{
		"club":       KindClub,
		"clubs":      KindClub,
		"event":      KindEvent,
		"events":     KindEvent,
		"training":   KindTraining,
		"trainings":  KindTraining,
		"clause":     KindClause,
		"clauses":    KindClause,
		"iso_clause": KindClause,
		"student":    KindStudent,
		"students":   KindStudent,
	}
	for in, want := range cases {
		got, ok := ParseResourceKind(in)
		assert.True(t, ok, "segment %q must parse", in)
		assert.Equal(t, want, got)
	}

	_, ok := ParseResourceKind("cafeterias")
	assert.False(t, ok)
}
