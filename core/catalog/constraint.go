package catalog

import (
	"math"
	"strconv"
	"strings"

	"cloud-adapter/internal/errors"
)

// constraint is a parsed CPU or memory requirement: an exact value, a
// lower bound ("8+"), or for memory a ratio to the vCPU count ("4x").
type constraint struct {
	value   float64
	atLeast bool
	ratio   bool
}

const epsilon = 1e-6

func parseCPUs(s string) (*constraint, error) {
	c, err := parseConstraint(s, false)
	if err != nil {
		return nil, errors.Wrapf(errors.TypeInput, err, "invalid cpus %q", s)
	}
	return c, nil
}

func parseMemory(s string) (*constraint, error) {
	c, err := parseConstraint(s, true)
	if err != nil {
		return nil, errors.Wrapf(errors.TypeInput, err, "invalid memory %q", s)
	}
	return c, nil
}

func parseConstraint(s string, allowRatio bool) (*constraint, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return nil, nil
	}
	c := &constraint{}
	switch {
	case strings.HasSuffix(s, "+"):
		c.atLeast = true
		s = strings.TrimSuffix(s, "+")
	case allowRatio && strings.HasSuffix(s, "x"):
		c.ratio = true
		s = strings.TrimSuffix(s, "x")
	}
	v, err := strconv.ParseFloat(s, 64)
	if err != nil {
		return nil, err
	}
	if v <= 0 || math.IsInf(v, 0) || math.IsNaN(v) {
		return nil, errors.Input("must be a positive number")
	}
	c.value = v
	return c, nil
}

// matchCPUs reports whether an offering with vcpus satisfies c
func (c *constraint) matchCPUs(vcpus float64) bool {
	if c == nil {
		return true
	}
	if c.atLeast {
		return vcpus >= c.value-epsilon
	}
	return math.Abs(vcpus-c.value) < epsilon
}

// matchMemory reports whether an offering satisfies c
func (c *constraint) matchMemory(memoryGiB, vcpus float64) bool {
	if c == nil {
		return true
	}
	switch {
	case c.ratio:
		return memoryGiB >= vcpus*c.value-epsilon
	case c.atLeast:
		return memoryGiB >= c.value-epsilon
	default:
		return math.Abs(memoryGiB-c.value) < epsilon
	}
}
