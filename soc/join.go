package soc

import (
	"github.com/Simula-UiB/crhs/crhs"
	"github.com/Simula-UiB/crhs/gf2"
)

// Join replaces h1 and h2 with one equation gluing them along the level
// they both carry sharedLabel on (spec.md §4.4). The two originals are
// dropped and a fresh handle for the result is returned.
func (s *SOC) Join(h1, h2 Handle, sharedLabel gf2.Vector) (Handle, error) {
	eq1, eq2 := s.equations[h1], s.equations[h2]
	joined, err := crhs.Join(eq1, eq2, sharedLabel)
	if err != nil {
		return -1, err
	}
	s.Drop(h1)
	s.Drop(h2)
	if joined.IsTrivial() {
		return -1, nil
	}
	return s.Insert(joined), nil
}
