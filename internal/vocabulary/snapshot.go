// Package vocabulary models the reference vocabulary of already validated
// roots as immutable, versioned snapshots.
//
// A validation round reads exactly one snapshot. New roots enter the
// vocabulary only through Promote, which a reviewer calls between rounds
// with an explicit approval list.
package vocabulary

import (
	"encoding/hex"
	"errors"
	"fmt"
	"slices"
	"strings"
	"time"

	"github.com/zeebo/blake3"
)

// ErrFingerprintMismatch is returned when a stored record does not hash to
// the fingerprint it carries.
var ErrFingerprintMismatch = errors.New("vocabulary fingerprint mismatch")

// Snapshot is a frozen set of reference roots.
type Snapshot struct {
	version     int
	roots       []string
	set         map[string]struct{}
	fingerprint string
	createdAt   time.Time
}

// Record is the serialisable form of a Snapshot.
type Record struct {
	Version     int       `json:"version"`
	Roots       []string  `json:"roots"`
	Fingerprint string    `json:"fingerprint"`
	CreatedAt   time.Time `json:"created_at"`
}

// NewSnapshot freezes roots under version. Duplicates and empty strings are
// dropped and the remaining roots are kept sorted.
func NewSnapshot(version int, roots []string, createdAt time.Time) Snapshot {
	set := make(map[string]struct{}, len(roots))
	sorted := make([]string, 0, len(roots))
	for _, r := range roots {
		r = strings.TrimSpace(r)
		if r == "" {
			continue
		}
		if _, ok := set[r]; ok {
			continue
		}
		set[r] = struct{}{}
		sorted = append(sorted, r)
	}
	slices.Sort(sorted)

	return Snapshot{
		version:     version,
		roots:       sorted,
		set:         set,
		fingerprint: Fingerprint(sorted),
		createdAt:   createdAt.UTC(),
	}
}

// Empty is the version-0 snapshot with no roots.
func Empty() Snapshot {
	return NewSnapshot(0, nil, time.Time{})
}

// FromRecord restores a snapshot and verifies its fingerprint.
func FromRecord(rec Record) (Snapshot, error) {
	s := NewSnapshot(rec.Version, rec.Roots, rec.CreatedAt)
	if rec.Fingerprint != "" && rec.Fingerprint != s.fingerprint {
		return Snapshot{}, fmt.Errorf("%w: version %d has %s, roots hash to %s",
			ErrFingerprintMismatch, rec.Version, rec.Fingerprint, s.fingerprint)
	}
	return s, nil
}

// Record converts the snapshot to its serialisable form.
func (s Snapshot) Record() Record {
	return Record{
		Version:     s.version,
		Roots:       s.Roots(),
		Fingerprint: s.Fingerprint(),
		CreatedAt:   s.createdAt,
	}
}

// Version is the monotonically increasing snapshot number.
func (s Snapshot) Version() int { return s.version }

// CreatedAt is when the snapshot was produced.
func (s Snapshot) CreatedAt() time.Time { return s.createdAt }

// Len is the number of roots.
func (s Snapshot) Len() int { return len(s.roots) }

// Roots returns a sorted copy of the roots.
func (s Snapshot) Roots() []string {
	return slices.Clone(s.roots)
}

// Contains reports whether root is part of the snapshot.
func (s Snapshot) Contains(root string) bool {
	_, ok := s.set[root]
	return ok
}

// Fingerprint identifies the root set independently of version.
func (s Snapshot) Fingerprint() string {
	if s.fingerprint == "" {
		return Fingerprint(nil)
	}
	return s.fingerprint
}

// Fingerprint hashes a sorted root list with BLAKE3.
func Fingerprint(sortedRoots []string) string {
	sum := blake3.Sum256([]byte(strings.Join(sortedRoots, "\n")))
	return hex.EncodeToString(sum[:])
}
