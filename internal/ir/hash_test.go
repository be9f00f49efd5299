package ir

import (
	"crypto/sha256"
	"encoding/hex"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func mustFrame(t *testing.T, seq int64, op Op, data []int, hl ...int) Frame {
	t.Helper()
	f, err := NewFrame(seq, op, data, hl...)
	require.NoError(t, err)
	return f
}

func TestFrameDigestDeterminism(t *testing.T) {
	a := mustFrame(t, 1, OpCompare, []int{5, 3}, 0, 1)
	b := mustFrame(t, 1, OpCompare, []int{5, 3}, 1, 0)

	da, err := FrameDigest(a)
	require.NoError(t, err)
	db, err := FrameDigest(b)
	require.NoError(t, err)

	assert.Equal(t, da, db, "highlight order must not affect the digest")
	assert.Len(t, da, 64, "SHA-256 hex is 64 chars")
}

func TestFrameDigestChangesWithContent(t *testing.T) {
	base := mustFrame(t, 1, OpCompare, []int{5, 3}, 0, 1)
	variants := []Frame{
		mustFrame(t, 2, OpCompare, []int{5, 3}, 0, 1),
		mustFrame(t, 1, OpWrite, []int{5, 3}, 0, 1),
		mustFrame(t, 1, OpCompare, []int{3, 5}, 0, 1),
		mustFrame(t, 1, OpCompare, []int{5, 3}, 0),
	}

	d0, err := FrameDigest(base)
	require.NoError(t, err)
	for i, v := range variants {
		d, err := FrameDigest(v)
		require.NoError(t, err)
		assert.NotEqual(t, d0, d, "variant %d should change the digest", i)
	}
}

func TestHashWithDomainNullSeparator(t *testing.T) {
	h := sha256.New()
	h.Write([]byte("d"))
	h.Write([]byte{0x00})
	h.Write([]byte("x"))
	expected := hex.EncodeToString(h.Sum(nil))

	assert.Equal(t, expected, hashWithDomain("d", []byte("x")))
	assert.NotEqual(t, hashWithDomain("dx", nil), hashWithDomain("d", []byte("x")))
}

func TestTraceDigest_OrderSensitive(t *testing.T) {
	f1 := mustFrame(t, 1, OpCompare, []int{2, 1}, 0, 1)
	f2 := mustFrame(t, 2, OpSettle, []int{1, 2})

	forward := NewTraceDigest()
	require.NoError(t, forward.Add(f1))
	require.NoError(t, forward.Add(f2))

	backward := NewTraceDigest()
	require.NoError(t, backward.Add(f2))
	require.NoError(t, backward.Add(f1))

	assert.NotEqual(t, forward.Sum(), backward.Sum())
	assert.Equal(t, 2, forward.Frames())
}

func TestTraceDigest_Reproducible(t *testing.T) {
	sum := func() string {
		d := NewTraceDigest()
		require.NoError(t, d.Add(mustFrame(t, 1, OpWrite, []int{1, 4}, 0)))
		require.NoError(t, d.Add(mustFrame(t, 2, OpWrite, []int{1, 4}, 1)))
		return d.Sum()
	}
	assert.Equal(t, sum(), sum())
}

func TestTraceDigest_Empty(t *testing.T) {
	assert.Equal(t, NewTraceDigest().Sum(), NewTraceDigest().Sum())
	assert.Equal(t, 0, NewTraceDigest().Frames())
}

func TestDomainConstants(t *testing.T) {
	assert.Equal(t, "sortviz/frame/v1", DomainFrame)
	assert.Equal(t, "sortviz/trace/v1", DomainTrace)
}
