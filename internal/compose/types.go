// Package compose builds the layered cluster graph for an architecture
// request: trust-zone swim lanes, deterministic node placement, edge synthesis
// and the numbered workflow overlay.
package compose

import "fmt"

// TrustZone classifies a cluster for the swim-lane narrative.
type TrustZone string

const (
	ZoneUntrusted   TrustZone = "untrusted"
	ZoneSemiTrusted TrustZone = "semi-trusted"
	ZoneTrusted     TrustZone = "trusted"
	ZoneData        TrustZone = "data"
	ZoneDR          TrustZone = "disaster-recovery"
)

// EdgeStyle classifies how an edge is drawn.
type EdgeStyle string

const (
	StylePrimary     EdgeStyle = "primary"     // solid traffic path
	StyleGovernance  EdgeStyle = "governance"  // dashed
	StyleMonitoring  EdgeStyle = "monitoring"  // dotted
	StyleReplication EdgeStyle = "replication" // dashed, DR paths
)

// Fixed cluster identifiers. Clusters render in this vertical order regardless
// of which are populated, so the trust-zone narrative is preserved.
const (
	ClusterEdge        = "edge"
	ClusterIdentity    = "identity"
	ClusterGovernance  = "governance"
	ClusterHub         = "hub"
	ClusterCompute     = "compute"
	ClusterIntegration = "integration"
	ClusterData        = "data"
	ClusterAnalytics   = "analytics"
	ClusterDR          = "dr"
	ClusterMonitoring  = "monitoring"
	ClusterLegend      = "legend"
)

// clusterOrder is the fixed render order; it also fixes node numbering.
var clusterOrder = []string{
	ClusterEdge,
	ClusterIdentity,
	ClusterGovernance,
	ClusterHub,
	ClusterCompute,
	ClusterIntegration,
	ClusterData,
	ClusterAnalytics,
	ClusterDR,
	ClusterMonitoring,
	ClusterLegend,
}

// Node is one instantiated service occurrence inside a cluster.
type Node struct {
	ID          string   `json:"id"`
	Seq         int      `json:"seq"` // workflow number; 0 for legend entries
	Title       string   `json:"title"`
	Kind        string   `json:"kind"`
	Annotations []string `json:"annotations,omitempty"` // 0-3 descriptive lines
}

// Label renders the numbered display label used by all renderers.
func (n *Node) Label() string {
	if n.Seq == 0 {
		return n.Title
	}
	return fmt.Sprintf("%d. %s", n.Seq, n.Title)
}

// Edge is a directed relationship between two nodes.
type Edge struct {
	Source string    `json:"source"`
	Target string    `json:"target"`
	Style  EdgeStyle `json:"style"`
	Label  string    `json:"label,omitempty"`
}

// Cluster is a named visual container with a trust classification and an
// ordered list of member nodes.
type Cluster struct {
	ID    string    `json:"id"`
	Name  string    `json:"name"`
	Zone  TrustZone `json:"zone"`
	Nodes []*Node   `json:"nodes"`
}

// Document is the abstract diagram description consumed by the renderers.
type Document struct {
	Title        string     `json:"title"`
	TemplateName string     `json:"template_name"`
	Clusters     []*Cluster `json:"clusters"` // render order, empty omitted
	Edges        []Edge     `json:"edges"`
}

// NodeByID returns the node with the given id, or nil.
func (d *Document) NodeByID(id string) *Node {
	for _, c := range d.Clusters {
		for _, n := range c.Nodes {
			if n.ID == id {
				return n
			}
		}
	}
	return nil
}

// ClusterByID returns the cluster with the given id, or nil.
func (d *Document) ClusterByID(id string) *Cluster {
	for _, c := range d.Clusters {
		if c.ID == id {
			return c
		}
	}
	return nil
}

// NodeCount returns the total number of nodes across all clusters.
func (d *Document) NodeCount() int {
	n := 0
	for _, c := range d.Clusters {
		n += len(c.Nodes)
	}
	return n
}

// EdgesWithTarget returns edges whose target is the given node id.
func (d *Document) EdgesWithTarget(id string) []Edge {
	var out []Edge
	for _, e := range d.Edges {
		if e.Target == id {
			out = append(out, e)
		}
	}
	return out
}

// EdgesWithSource returns edges whose source is the given node id.
func (d *Document) EdgesWithSource(id string) []Edge {
	var out []Edge
	for _, e := range d.Edges {
		if e.Source == id {
			out = append(out, e)
		}
	}
	return out
}
