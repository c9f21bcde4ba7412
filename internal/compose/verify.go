package compose

import (
	"fmt"

	"github.com/arch-to-diagram/composer/internal/result"
)

// Verify checks the structural invariants of a composed document. Violations
// here are internal defects, not caller errors: composition is supposed to be
// total over valid input, so a non-empty return means a composer bug.
func Verify(d *Document) []result.Error {
	var errs []result.Error

	if d == nil {
		return []result.Error{{Type: "compose_error", Severity: "error", Message: "document is nil"}}
	}
	if d.NodeCount() == 0 {
		return []result.Error{{Type: "compose_error", Severity: "error", Message: "document has zero nodes"}}
	}

	seen := make(map[string]bool)
	numbered := make(map[int]string)
	maxSeq := 0
	for _, c := range d.Clusters {
		if len(c.Nodes) == 0 {
			errs = append(errs, result.Error{
				Type: "compose_error", Severity: "error", Field: c.ID,
				Message: "empty cluster rendered: " + c.ID,
			})
		}
		for _, n := range c.Nodes {
			if seen[n.ID] {
				errs = append(errs, result.Error{
					Type: "compose_error", Severity: "error", Field: n.ID,
					Message: "duplicate node id: " + n.ID,
				})
			}
			seen[n.ID] = true
			if n.Seq == 0 {
				continue
			}
			if prev, dup := numbered[n.Seq]; dup {
				errs = append(errs, result.Error{
					Type: "compose_error", Severity: "error", Field: n.ID,
					Message: fmt.Sprintf("workflow number %d assigned to both %s and %s", n.Seq, prev, n.ID),
				})
			}
			numbered[n.Seq] = n.ID
			if n.Seq > maxSeq {
				maxSeq = n.Seq
			}
		}
	}
	for i := 1; i <= maxSeq; i++ {
		if _, ok := numbered[i]; !ok {
			errs = append(errs, result.Error{
				Type: "compose_error", Severity: "error",
				Message: fmt.Sprintf("workflow numbering skips %d", i),
			})
		}
	}

	inbound := make(map[string]int)
	for i, e := range d.Edges {
		if !seen[e.Source] || !seen[e.Target] {
			errs = append(errs, result.Error{
				Type: "compose_error", Severity: "error",
				Message: fmt.Sprintf("edge %d references unknown node (%s -> %s)", i, e.Source, e.Target),
			})
			continue
		}
		inbound[e.Target]++
	}

	// Orphan detection: every node outside the edge and legend lanes needs at
	// least one inbound edge.
	for _, c := range d.Clusters {
		if c.ID == ClusterEdge || c.ID == ClusterLegend {
			continue
		}
		for _, n := range c.Nodes {
			if inbound[n.ID] == 0 {
				errs = append(errs, result.Error{
					Type: "compose_error", Severity: "error", Field: n.ID,
					Message: "orphan node without inbound edge: " + n.ID,
				})
			}
		}
	}

	return errs
}
