package presence

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestAssignAndLookup(t *testing.T) {
	orig := pickName
	pickName = func() string { return "Impa" }
	defer func() { pickName = orig }()

	r := NewRegistry()
	name := r.Assign("c1")
	assert.Equal(t, "Impa", name)
	assert.Equal(t, "Impa", r.Lookup("c1"))
}

func TestAssignDrawsFromRoster(t *testing.T) {
	r := NewRegistry()
	name := r.Assign("c1")
	assert.Contains(t, roster, name)
}

func TestLookupUnregistered(t *testing.T) {
	r := NewRegistry()
	assert.Equal(t, Unknown, r.Lookup("nobody"))
}

func TestRemoveIsIdempotent(t *testing.T) {
	r := NewRegistry()
	r.Assign("c1")
	r.Remove("c1")
	r.Remove("c1")
	assert.Equal(t, Unknown, r.Lookup("c1"))
	assert.Equal(t, 0, r.Len())
}

func TestDuplicateNamesAllowed(t *testing.T) {
	orig := pickName
	pickName = func() string { return "Link" }
	defer func() { pickName = orig }()

	r := NewRegistry()
	assert.Equal(t, r.Assign("c1"), r.Assign("c2"))
}
