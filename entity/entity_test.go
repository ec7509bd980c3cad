package entity

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestOrderedKeepsFirstSeenOrder(t *testing.T) {
	o := NewOrdered[Perm]()
	o.Set("bob", PermUpload)
	o.Set("alice", PermFull)
	o.Set("bob", PermPreview)
	assert.Equal(t, []string{"bob", "alice"}, o.Keys())
	assert.Equal(t, 2, o.Len())
	v, ok := o.Get("bob")
	assert.True(t, ok)
	assert.Equal(t, PermPreview, v)
	_, ok = o.Get("carol")
	assert.False(t, ok)

	seen := make([]string, 0, 2)
	o.Range(func(k string, v Perm) bool {
		seen = append(seen, k)
		return false
	})
	assert.Equal(t, []string{"bob"}, seen)
}

func TestPerm(t *testing.T) {
	for _, p := range []Perm{"1", "2", "3", "4", "5"} {
		assert.True(t, p.Valid())
		assert.NotEqual(t, "unknown", p.Describe())
	}
	assert.False(t, Perm("6").Valid())
	assert.False(t, Perm("").Valid())
	assert.Equal(t, "preview", PermPreview.Describe())
}

func TestOperationType(t *testing.T) {
	assert.True(t, OpVirusInfected.Valid())
	assert.True(t, OperationType("SESSION_START").Valid())
	assert.False(t, OperationType("session_start").Valid())
	assert.False(t, OperationType("LOGIN").Valid())
}

func TestHistoryNext(t *testing.T) {
	yes, no := true, false
	cursor := int64(5)
	h := &History{HasMore: &yes, Cursor: &cursor, Reset: &yes}
	next, ok := h.Next()
	assert.True(t, ok)
	assert.Equal(t, int64(5), next)
	assert.False(t, h.Discontinuous())

	h = &History{HasMore: &no, Cursor: &cursor, Reset: &no}
	_, ok = h.Next()
	assert.False(t, ok)
	assert.True(t, h.Discontinuous())

	h = &History{}
	_, ok = h.Next()
	assert.False(t, ok)
	assert.False(t, h.Discontinuous())
}

func TestItemSize(t *testing.T) {
	it := &Item{IsDir: true}
	assert.Equal(t, int64(0), it.Size())
	sz := int64(42)
	it = &Item{ContentLength: &sz}
	assert.Equal(t, int64(42), it.Size())
}
