package logging

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestMockLogger_SharesEntriesWithDerivedLoggers(t *testing.T) {
	m := NewMockLogger()
	m.Info("plain")
	m.WithField(FieldTestID, 4).Warn("derived", F(FieldReason, "x"))
	m.WithError(errors.New("bad")).Error("failed")

	entries := m.Entries()
	assert.Len(t, entries, 3)
	assert.True(t, m.HasEntry("WARN", "derived"))
	assert.Equal(t, []Field{{Key: FieldTestID, Value: 4}, {Key: FieldReason, Value: "x"}}, entries[1].Fields)
	assert.EqualError(t, entries[2].Error, "bad")
	assert.Len(t, m.EntriesByLevel("ERROR"), 1)

	m.Clear()
	assert.Empty(t, m.Entries())
}

func TestMockLogger_ZeroValueUsable(t *testing.T) {
	var m MockLogger
	m.Debug("ok")
	m.Fatalf("code %d", 2)
	assert.True(t, m.HasEntry("FATAL", "code 2"))
}
