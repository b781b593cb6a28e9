package common

import (
	"testing"

	"github.com/cockroachdb/errors"
	"github.com/stretchr/testify/assert"
)

func TestIsCode(t *testing.T) {
	err := NewError(NoSuchObjectError, "table '%s' does not exist", "orders")
	assert.True(t, IsCode(err, NoSuchObjectError))
	assert.False(t, IsCode(err, DuplicateObjectError))
	assert.Contains(t, err.Error(), "NoSuchObjectError")
	assert.Contains(t, err.Error(), "orders")

	wrapped := errors.Wrapf(err, "loading plan")
	assert.True(t, IsCode(wrapped, NoSuchObjectError))

	assert.False(t, IsCode(errors.New("plain"), NoSuchObjectError))
	assert.False(t, IsCode(nil, NoSuchObjectError))
}

func TestHash(t *testing.T) {
	// FNV-1a reference values.
	assert.Equal(t, uint64(14695981039346656037), Hash(nil))
	assert.Equal(t, uint64(0xaf63dc4c8601ec8c), Hash([]byte("a")))
	assert.Equal(t, Hash([]byte("SeqScan orders")), HashString("SeqScan orders"))
	assert.NotEqual(t, HashString("SeqScan a"), HashString("SeqScan b"))
}

func TestAssert(t *testing.T) {
	assert.NotPanics(t, func() { Assert(true, "unreachable") })
	assert.PanicsWithValue(t, "bad slot 3", func() { Assert(false, "bad slot %d", 3) })
}
