package compose

// Builder accumulates clusters, nodes and edges during composition. The
// sequence counter is shared across the whole diagram and assigned in call
// order, which equals cluster-render order because the composition steps run
// in render order. No global state: one builder per request.
type Builder struct {
	doc      *Document
	clusters map[string]*Cluster
	nodes    map[string]*Node
	edges    map[Edge]bool
	seq      int
}

// NewBuilder returns an empty builder for one diagram document.
func NewBuilder(title, templateName string) *Builder {
	return &Builder{
		doc: &Document{
			Title:        title,
			TemplateName: templateName,
		},
		clusters: make(map[string]*Cluster),
		nodes:    make(map[string]*Node),
		edges:    make(map[Edge]bool),
		seq:      0,
	}
}

// Cluster returns the cluster with the given id, creating it on first use.
func (b *Builder) Cluster(id, name string, zone TrustZone) *Cluster {
	if c, ok := b.clusters[id]; ok {
		return c
	}
	c := &Cluster{ID: id, Name: name, Zone: zone}
	b.clusters[id] = c
	return c
}

// Node adds a numbered node to a cluster and returns it. The workflow number
// is the next value of the shared counter. Duplicate ids return the existing
// node unchanged so composition steps stay idempotent per id.
func (b *Builder) Node(clusterID, nodeID, title, kind string, annotations ...string) *Node {
	if n, ok := b.nodes[nodeID]; ok {
		return n
	}
	c, ok := b.clusters[clusterID]
	if !ok {
		return nil
	}
	if len(annotations) > 3 {
		annotations = annotations[:3]
	}
	b.seq++
	n := &Node{
		ID:          nodeID,
		Seq:         b.seq,
		Title:       title,
		Kind:        kind,
		Annotations: annotations,
	}
	c.Nodes = append(c.Nodes, n)
	b.nodes[nodeID] = n
	return n
}

// StaticNode adds an unnumbered node (legend entries).
func (b *Builder) StaticNode(clusterID, nodeID, title, kind string) *Node {
	if n, ok := b.nodes[nodeID]; ok {
		return n
	}
	c, ok := b.clusters[clusterID]
	if !ok {
		return nil
	}
	n := &Node{ID: nodeID, Title: title, Kind: kind}
	c.Nodes = append(c.Nodes, n)
	b.nodes[nodeID] = n
	return n
}

// HasNode reports whether a node with the given id was added.
func (b *Builder) HasNode(id string) bool {
	_, ok := b.nodes[id]
	return ok
}

// FirstNode returns the first node of a cluster, or nil if the cluster is
// absent or empty.
func (b *Builder) FirstNode(clusterID string) *Node {
	c, ok := b.clusters[clusterID]
	if !ok || len(c.Nodes) == 0 {
		return nil
	}
	return c.Nodes[0]
}

// Edge records a directed edge. Edges referencing unknown nodes are dropped,
// which keeps conditional composition steps free of existence bookkeeping.
// Exact repeats collapse to one edge.
func (b *Builder) Edge(source, target string, style EdgeStyle, label string) {
	if source == "" || target == "" {
		return
	}
	if _, ok := b.nodes[source]; !ok {
		return
	}
	if _, ok := b.nodes[target]; !ok {
		return
	}
	e := Edge{Source: source, Target: target, Style: style, Label: label}
	if b.edges[e] {
		return
	}
	b.edges[e] = true
	b.doc.Edges = append(b.doc.Edges, e)
}

// Document finalizes the builder: clusters are emitted in the fixed render
// order with empty clusters omitted entirely.
func (b *Builder) Document() *Document {
	b.doc.Clusters = b.doc.Clusters[:0]
	for _, id := range clusterOrder {
		c, ok := b.clusters[id]
		if !ok || len(c.Nodes) == 0 {
			continue
		}
		b.doc.Clusters = append(b.doc.Clusters, c)
	}
	return b.doc
}
