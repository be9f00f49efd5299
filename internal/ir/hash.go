package ir

import (
	"crypto/sha256"
	"encoding/hex"
	"fmt"
)

// Domain prefixes for content-addressed digests.
// Version suffix enables future algorithm migration.
const (
	DomainFrame = "sortviz/frame/v1"
	DomainTrace = "sortviz/trace/v1"
)

// hashWithDomain computes SHA-256 hash with domain separation.
// Format: SHA256(domain + 0x00 + data)
// The null byte (0x00) separator prevents domain/data boundary ambiguity.
func hashWithDomain(domain string, data []byte) string {
	h := sha256.New()
	h.Write([]byte(domain))
	h.Write([]byte{0x00})
	h.Write(data)
	return hex.EncodeToString(h.Sum(nil))
}

// FrameDigest computes the content-addressed digest of a single frame.
// Two frames share a digest iff seq, op, snapshot and highlights are equal.
func FrameDigest(f Frame) (string, error) {
	canonical, err := MarshalCanonical(f.CanonicalMap())
	if err != nil {
		return "", fmt.Errorf("FrameDigest: failed to marshal: %w", err)
	}
	return hashWithDomain(DomainFrame, canonical), nil
}

// TraceDigest accumulates a chained digest over a frame sequence.
//
// Each step hashes the previous digest together with the next frame digest,
// so the final value depends on every frame and on their order. The same
// algorithm over the same input always yields the same digest; this is
// what replay verification compares.
//
// The zero value is not usable; create one with NewTraceDigest.
type TraceDigest struct {
	sum    string
	frames int
}

// NewTraceDigest creates a digest for an empty trace.
func NewTraceDigest() *TraceDigest {
	return &TraceDigest{sum: hashWithDomain(DomainTrace, nil)}
}

// Add folds the next frame into the digest.
func (d *TraceDigest) Add(f Frame) error {
	fd, err := FrameDigest(f)
	if err != nil {
		return err
	}
	d.sum = hashWithDomain(DomainTrace, []byte(d.sum+fd))
	d.frames++
	return nil
}

// Sum returns the hex digest over all frames added so far.
func (d *TraceDigest) Sum() string {
	return d.sum
}

// Frames returns how many frames have been folded in.
func (d *TraceDigest) Frames() int {
	return d.frames
}
