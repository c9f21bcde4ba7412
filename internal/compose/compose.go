package compose

import (
	"strings"

	"github.com/arch-to-diagram/composer/internal/catalog"
	"github.com/arch-to-diagram/composer/internal/request"
	"github.com/arch-to-diagram/composer/internal/template"
)

// relationalDBs are the database keys that get a standby replica in the
// disaster-recovery cluster.
var relationalDBs = map[string]bool{
	"sql_database": true,
	"sql_managed":  true,
	"mysql":        true,
	"postgresql":   true,
	"mariadb":      true,
}

// Spoke address blocks are fixed and non-overlapping.
var spokes = []struct {
	ID   string
	Name string
	CIDR string
	Env  string
}{
	{"spoke_production", "Production Spoke", "10.1.0.0/16", "env: production"},
	{"spoke_development", "Development Spoke", "10.2.0.0/16", "env: development"},
	{"spoke_uat", "UAT Spoke", "10.3.0.0/16", "env: uat"},
}

// Compose builds the diagram document for a validated request and a resolved
// template. The step order is a correctness requirement: it fixes both node
// numbering and cluster stacking. Compose returns an error only for template
// invariant violations; any combination of valid selections must render.
func Compose(req *request.ArchitectureRequest, tmpl template.Template) (*Document, error) {
	if err := template.Check(tmpl); err != nil {
		return nil, err
	}

	title := "Cloud Architecture"
	if req.BusinessObjective != "" {
		title = req.BusinessObjective
	}
	b := NewBuilder(title, tmpl.DisplayName)

	composeEdge(b, req)
	composeIdentity(b, req)
	composeGovernance(b, tmpl)
	composeHub(b, req, tmpl)
	composeCompute(b, req, tmpl)
	composeIntegration(b, req)
	composeData(b, req, tmpl)
	composeAnalytics(b, req)
	composeDR(b, req, tmpl)
	composeMonitoring(b, req, tmpl)
	composeWorkflow(b, req)
	composeLegend(b)

	return b.Document(), nil
}

// composeEdge instantiates the untrusted internet-facing lane. A diagram must
// never have zero internet-facing nodes, so an empty selection gets a default
// edge node.
func composeEdge(b *Builder, req *request.ArchitectureRequest) {
	b.Cluster(ClusterEdge, "Internet Edge", ZoneUntrusted)
	for _, key := range req.NetworkServices {
		d, ok := catalog.Lookup(key)
		if !ok || d.NodeKind != "edge" {
			continue
		}
		b.Node(ClusterEdge, "edge_"+d.Key, d.DisplayName, d.NodeKind, annotationsFor(d)...)
	}
	if b.FirstNode(ClusterEdge) == nil {
		b.Node(ClusterEdge, "edge_front_door", "Front Door", "edge", "Global entry point")
	}
}

// composeIdentity instantiates the semi-trusted identity lane. Identity
// provider and secret store are always present; further selected security
// services join them. SIEM-class services render in monitoring instead.
func composeIdentity(b *Builder, req *request.ArchitectureRequest) {
	b.Cluster(ClusterIdentity, "Identity & Security", ZoneSemiTrusted)
	b.Node(ClusterIdentity, "identity_active_directory", "Entra ID", "identity", "Tenant identity provider")
	b.Node(ClusterIdentity, "identity_key_vault", "Key Vault", "vault", "Secrets, keys, certificates")
	for _, key := range req.SecurityServices {
		if key == "active_directory" || key == "key_vault" || key == "sentinel" {
			continue
		}
		d, ok := catalog.Lookup(key)
		if !ok || d.NodeKind == "" {
			continue
		}
		b.Node(ClusterIdentity, "identity_"+d.Key, d.DisplayName, d.NodeKind, annotationsFor(d)...)
	}
}

// composeGovernance builds the management-group tree and subscription list
// from the template, with governance edges from each parent to each child.
func composeGovernance(b *Builder, tmpl template.Template) {
	b.Cluster(ClusterGovernance, "Governance", ZoneSemiTrusted)

	rootID := mgNodeID(tmpl.ManagementGroups[0])
	for i, name := range tmpl.ManagementGroups {
		id := mgNodeID(name)
		b.Node(ClusterGovernance, id, name, "management")
		if i > 0 {
			b.Edge(rootID, id, StyleGovernance, "management hierarchy")
		}
	}

	parent := landingZonesMG(b, tmpl)
	for _, name := range tmpl.Subscriptions {
		id := subNodeID(name)
		b.Node(ClusterGovernance, id, name+" Subscription", "subscription")
		b.Edge(parent, id, StyleGovernance, "subscription placement")
	}
}

// composeHub instantiates the trusted network hub: exactly one hub network,
// three fixed spokes, and any selected network service not already covered by
// the edge lane. With no network selection at all, firewall and VPN gateway
// default in so the hub is never bare.
func composeHub(b *Builder, req *request.ArchitectureRequest, tmpl template.Template) {
	b.Cluster(ClusterHub, "Network Hub", ZoneTrusted)
	b.Node(ClusterHub, "hub_vnet", "Hub Virtual Network", "network", "10.0.0.0/16", "Central connectivity")
	for _, s := range spokes {
		b.Node(ClusterHub, s.ID, s.Name, "network", s.CIDR, s.Env)
		b.Edge("hub_vnet", s.ID, StylePrimary, "VNet peering")
	}

	keys := req.NetworkServices
	if len(keys) == 0 {
		keys = []string{"firewall", "vpn_gateway"}
	}
	for _, key := range keys {
		d, ok := catalog.Lookup(key)
		if !ok || d.NodeKind == "" || d.NodeKind == "edge" {
			continue
		}
		id := "net_" + d.Key
		b.Node(ClusterHub, id, d.DisplayName, d.NodeKind, annotationsFor(d)...)
		b.Edge("hub_vnet", id, StylePrimary, "routed traffic")
	}

	b.Edge(platformMG(b, tmpl), "hub_vnet", StyleGovernance, "platform management")
}

// composeCompute instantiates the workload compute lane, one node per selected
// service with its tier/scaling annotation.
func composeCompute(b *Builder, req *request.ArchitectureRequest, tmpl template.Template) {
	if len(req.ComputeServices) == 0 {
		return
	}
	b.Cluster(ClusterCompute, "Compute Workloads", ZoneTrusted)
	for _, key := range req.ComputeServices {
		d, ok := catalog.Lookup(key)
		if !ok || d.NodeKind == "" {
			continue
		}
		id := "compute_" + d.Key
		b.Node(ClusterCompute, id, d.DisplayName, d.NodeKind, annotationsFor(d)...)
		b.Edge("spoke_production", id, StylePrimary, "workload traffic")
		b.Edge(landingZonesMG(b, tmpl), id, StyleGovernance, "policy assignment")
	}
}

// composeIntegration instantiates messaging and API-gateway services with
// both production-traffic and cross-hub edges.
func composeIntegration(b *Builder, req *request.ArchitectureRequest) {
	if len(req.IntegrationServices) == 0 {
		return
	}
	b.Cluster(ClusterIntegration, "Integration", ZoneTrusted)
	for _, key := range req.IntegrationServices {
		d, ok := catalog.Lookup(key)
		if !ok || d.NodeKind == "" {
			continue
		}
		id := "int_" + d.Key
		b.Node(ClusterIntegration, id, d.DisplayName, d.NodeKind, annotationsFor(d)...)
		b.Edge("spoke_production", id, StylePrimary, "integration traffic")
		b.Edge("hub_vnet", id, StylePrimary, "cross-hub routing")
	}
}

// composeData instantiates storage and database services. Every data node gets
// both a data-access edge and a governance edge; orphan data nodes are
// considered defects.
func composeData(b *Builder, req *request.ArchitectureRequest, tmpl template.Template) {
	if len(req.StorageServices) == 0 && len(req.DatabaseServices) == 0 {
		return
	}
	b.Cluster(ClusterData, "Data Layer", ZoneData)
	for _, key := range append(append([]string{}, req.StorageServices...), req.DatabaseServices...) {
		d, ok := catalog.Lookup(key)
		if !ok || d.NodeKind == "" {
			continue
		}
		id := "data_" + d.Key
		b.Node(ClusterData, id, d.DisplayName, d.NodeKind, annotationsFor(d)...)
		b.Edge("spoke_production", id, StylePrimary, "data access")
		b.Edge(landingZonesMG(b, tmpl), id, StyleGovernance, "policy assignment")
	}
}

// composeAnalytics instantiates analytics and AI services. When a storage node
// exists, the first one feeds each analytics node with an ingestion edge.
func composeAnalytics(b *Builder, req *request.ArchitectureRequest) {
	keys := append(append([]string{}, req.AnalyticsServices...), req.AIServices...)
	if len(keys) == 0 {
		return
	}
	b.Cluster(ClusterAnalytics, "Analytics & AI", ZoneData)

	var firstStorage string
	for _, key := range req.StorageServices {
		if b.HasNode("data_" + key) {
			firstStorage = "data_" + key
			break
		}
	}

	for _, key := range keys {
		d, ok := catalog.Lookup(key)
		if !ok || d.NodeKind == "" {
			continue
		}
		id := "ana_" + d.Key
		b.Node(ClusterAnalytics, id, d.DisplayName, d.NodeKind, annotationsFor(d)...)
		b.Edge("spoke_production", id, StylePrimary, "analytics traffic")
		if firstStorage != "" {
			b.Edge(firstStorage, id, StylePrimary, "data ingestion")
		}
	}
}

// composeDR instantiates the standby region for the enterprise template only:
// standby network, standby storage, and a database replica when a relational
// database was selected. All inbound edges are replication paths from the
// corresponding production nodes.
func composeDR(b *Builder, req *request.ArchitectureRequest, tmpl template.Template) {
	if tmpl.Kind != template.KindEnterprise {
		return
	}
	b.Cluster(ClusterDR, "Disaster Recovery", ZoneDR)

	b.Node(ClusterDR, "dr_vnet", "Standby Virtual Network", "network", "10.100.0.0/16", "Secondary region")
	b.Edge("hub_vnet", "dr_vnet", StyleReplication, "region failover")

	b.Node(ClusterDR, "dr_storage", "Standby Storage", "storage", "RA-GRS secondary")
	storageSource := "spoke_production"
	for _, key := range req.StorageServices {
		if b.HasNode("data_" + key) {
			storageSource = "data_" + key
			break
		}
	}
	b.Edge(storageSource, "dr_storage", StyleReplication, "geo-replication")

	for _, key := range req.DatabaseServices {
		if relationalDBs[key] && b.HasNode("data_"+key) {
			d, _ := catalog.Lookup(key)
			b.Node(ClusterDR, "dr_"+key, "Standby "+d.DisplayName, d.NodeKind, "Read replica")
			b.Edge("data_"+key, "dr_"+key, StyleReplication, "async replication")
			break
		}
	}
}

// composeMonitoring instantiates the always-present observability lane and
// wires a telemetry edge into every cluster built so far.
func composeMonitoring(b *Builder, req *request.ArchitectureRequest, tmpl template.Template) {
	b.Cluster(ClusterMonitoring, "Monitoring & Observability", ZoneTrusted)
	b.Node(ClusterMonitoring, "mon_monitor", "Azure Monitor", "monitor", "Metrics and alerts")
	b.Node(ClusterMonitoring, "mon_log_analytics", "Log Analytics Workspace", "monitor", "Central log store")
	b.Node(ClusterMonitoring, "mon_cost", "Cost Management", "monitor", "Budgets and spend alerts")
	if req.Has("sentinel") {
		b.Node(ClusterMonitoring, "mon_sentinel", "Microsoft Sentinel", "siem", "Security analytics")
		b.Edge("mon_log_analytics", "mon_sentinel", StyleMonitoring, "SIEM ingestion")
	}

	// Inbound edges for the monitoring nodes themselves.
	b.Edge("hub_vnet", "mon_monitor", StyleMonitoring, "diagnostic stream")
	b.Edge("mon_monitor", "mon_log_analytics", StyleMonitoring, "log routing")
	b.Edge(mgNodeID(tmpl.ManagementGroups[0]), "mon_cost", StyleGovernance, "spend governance")

	// Every cluster instantiated so far receives an inbound telemetry edge.
	for _, id := range []string{
		ClusterEdge, ClusterIdentity, ClusterGovernance, ClusterHub,
		ClusterCompute, ClusterIntegration, ClusterData, ClusterAnalytics, ClusterDR,
	} {
		if n := b.FirstNode(id); n != nil {
			b.Edge("mon_monitor", n.ID, StyleMonitoring, "diagnostics")
		}
	}
}

// composeWorkflow synthesizes the numbered authentication flow, identity
// validation, identity governance, and the web-traffic path to a gateway.
func composeWorkflow(b *Builder, req *request.ArchitectureRequest) {
	edge := b.FirstNode(ClusterEdge)
	identity := b.clusters[ClusterIdentity]
	if edge != nil && identity != nil {
		if len(identity.Nodes) > 0 {
			b.Edge(edge.ID, identity.Nodes[0].ID, StylePrimary, "authentication request")
		}
		if len(identity.Nodes) > 1 {
			b.Edge(edge.ID, identity.Nodes[1].ID, StylePrimary, "credential lookup")
		}
	}
	b.Edge("identity_active_directory", "hub_vnet", StylePrimary, "identity validation")
	if identity != nil {
		platform := ""
		if b.HasNode("mg_platform") {
			platform = "mg_platform"
		} else if c := b.clusters[ClusterGovernance]; c != nil && len(c.Nodes) > 0 {
			platform = c.Nodes[0].ID
		}
		for _, n := range identity.Nodes {
			b.Edge(platform, n.ID, StyleGovernance, "identity governance")
		}
	}
	if edge != nil {
		for _, key := range []string{"application_gateway", "load_balancer"} {
			if b.HasNode("net_" + key) {
				b.Edge(edge.ID, "net_"+key, StylePrimary, "web traffic")
				break
			}
		}
	}
}

// composeLegend emits the static reference content. Always last; entries carry
// no workflow numbers.
func composeLegend(b *Builder) {
	b.Cluster(ClusterLegend, "Legend", ZoneTrusted)
	items := []struct{ id, text string }{
		{"legend_zone_untrusted", "Red lane: untrusted (internet-facing)"},
		{"legend_zone_semi", "Orange lane: semi-trusted (identity/security)"},
		{"legend_zone_trusted", "Green lane: trusted (network/compute)"},
		{"legend_zone_data", "Blue lane: data"},
		{"legend_zone_dr", "Grey lane: disaster recovery"},
		{"legend_edge_primary", "Solid edge: primary traffic"},
		{"legend_edge_governance", "Dashed edge: governance"},
		{"legend_edge_monitoring", "Dotted edge: monitoring"},
		{"legend_edge_replication", "Dashed edge: replication"},
		{"legend_ha", "Standby resources replicate from production"},
	}
	for _, it := range items {
		b.StaticNode(ClusterLegend, it.id, it.text, "legend")
	}
}

// platformMG returns the node id of the Platform management group, or the
// root management group when the template has none.
func platformMG(b *Builder, tmpl template.Template) string {
	if b.HasNode("mg_platform") {
		return "mg_platform"
	}
	return mgNodeID(tmpl.ManagementGroups[0])
}

// landingZonesMG returns the node id of the Landing Zones management group,
// falling back to the root.
func landingZonesMG(b *Builder, tmpl template.Template) string {
	if b.HasNode("mg_landing_zones") {
		return "mg_landing_zones"
	}
	return mgNodeID(tmpl.ManagementGroups[0])
}

func mgNodeID(name string) string {
	return "mg_" + slug(name)
}

func subNodeID(name string) string {
	return "sub_" + slug(name)
}

// slug lowercases a display name and folds separators to underscores, so
// "Landing Zones" becomes "landing_zones". Drops the redundant trailing
// "management_group" from the root group name.
func slug(name string) string {
	s := strings.ToLower(name)
	s = strings.ReplaceAll(s, "-", " ")
	s = strings.Join(strings.Fields(s), "_")
	s = strings.TrimSuffix(s, "_management_group")
	return s
}
