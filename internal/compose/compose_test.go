package compose

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/arch-to-diagram/composer/internal/request"
	"github.com/arch-to-diagram/composer/internal/template"
)

func composeFor(t *testing.T, req *request.ArchitectureRequest) *Document {
	t.Helper()
	doc, err := Compose(req, template.Select(req.OrgStructure))
	require.NoError(t, err)
	return doc
}

// TestCompose_EmptyRequest verifies the fully-empty request still yields a
// complete, non-degenerate diagram: edge node, two identity nodes, hub, three
// spokes, default firewall and VPN gateway, monitoring and a legend.
func TestCompose_EmptyRequest(t *testing.T) {
	doc := composeFor(t, &request.ArchitectureRequest{})

	require.NotZero(t, doc.NodeCount())

	edge := doc.ClusterByID(ClusterEdge)
	require.NotNil(t, edge)
	assert.Len(t, edge.Nodes, 1, "default edge node expected")

	identity := doc.ClusterByID(ClusterIdentity)
	require.NotNil(t, identity)
	assert.GreaterOrEqual(t, len(identity.Nodes), 2, "identity provider and secret store are always present")

	hub := doc.ClusterByID(ClusterHub)
	require.NotNil(t, hub)
	assert.NotNil(t, doc.NodeByID("hub_vnet"))
	assert.NotNil(t, doc.NodeByID("spoke_production"))
	assert.NotNil(t, doc.NodeByID("spoke_development"))
	assert.NotNil(t, doc.NodeByID("spoke_uat"))
	assert.NotNil(t, doc.NodeByID("net_firewall"), "firewall defaults in with no network selection")
	assert.NotNil(t, doc.NodeByID("net_vpn_gateway"), "VPN gateway defaults in with no network selection")

	require.NotNil(t, doc.ClusterByID(ClusterMonitoring))
	require.NotNil(t, doc.ClusterByID(ClusterLegend))

	assert.Nil(t, doc.ClusterByID(ClusterCompute), "empty optional cluster must be omitted")
	assert.Nil(t, doc.ClusterByID(ClusterData))
	assert.Nil(t, doc.ClusterByID(ClusterDR), "startup template has no DR cluster")

	assert.Empty(t, Verify(doc))
}

// TestCompose_NumberingContiguous verifies the workflow counter starts at 1
// and is strictly increasing with no duplicates or gaps.
func TestCompose_NumberingContiguous(t *testing.T) {
	doc := composeFor(t, &request.ArchitectureRequest{
		OrgStructure:     "Enterprise Retail Co",
		ComputeServices:  []string{"aks", "functions"},
		StorageServices:  []string{"blob_storage"},
		DatabaseServices: []string{"sql_database"},
	})

	seen := make(map[int]string)
	max := 0
	for _, c := range doc.Clusters {
		for _, n := range c.Nodes {
			if n.Seq == 0 {
				assert.Equal(t, ClusterLegend, c.ID, "only legend entries are unnumbered")
				continue
			}
			_, dup := seen[n.Seq]
			assert.False(t, dup, "duplicate workflow number %d", n.Seq)
			seen[n.Seq] = n.ID
			if n.Seq > max {
				max = n.Seq
			}
		}
	}
	require.NotZero(t, max)
	for i := 1; i <= max; i++ {
		assert.Contains(t, seen, i, "workflow numbering must not skip %d", i)
	}
}

// TestCompose_Deterministic verifies identical input yields identical
// numbering and edge sets.
func TestCompose_Deterministic(t *testing.T) {
	req := func() *request.ArchitectureRequest {
		return &request.ArchitectureRequest{
			OrgStructure:        "Enterprise Retail Co",
			ComputeServices:     []string{"aks", "app_service"},
			NetworkServices:     []string{"front_door", "firewall", "application_gateway"},
			StorageServices:     []string{"blob_storage", "data_lake"},
			DatabaseServices:    []string{"sql_database", "cosmos_db"},
			SecurityServices:    []string{"sentinel", "defender"},
			AnalyticsServices:   []string{"synapse"},
			IntegrationServices: []string{"service_bus", "api_management"},
		}
	}

	a := composeFor(t, req())
	b := composeFor(t, req())

	aj, err := json.Marshal(a)
	require.NoError(t, err)
	bj, err := json.Marshal(b)
	require.NoError(t, err)
	assert.Equal(t, string(aj), string(bj))
}

// TestCompose_EnterpriseScenario walks the end-to-end example: enterprise
// org with one AKS and one SQL selection.
func TestCompose_EnterpriseScenario(t *testing.T) {
	req := &request.ArchitectureRequest{
		OrgStructure:     "Enterprise Retail Co",
		ComputeServices:  []string{"aks"},
		DatabaseServices: []string{"sql_database"},
	}
	tmpl := template.Select(req.OrgStructure)
	require.Equal(t, "Enterprise Scale Landing Zone", tmpl.DisplayName)

	doc, err := Compose(req, tmpl)
	require.NoError(t, err)
	assert.Empty(t, Verify(doc))

	compute := doc.ClusterByID(ClusterCompute)
	require.NotNil(t, compute)
	require.Len(t, compute.Nodes, 1)
	assert.Contains(t, compute.Nodes[0].Annotations, "Auto-scale: 3-10 nodes")

	data := doc.ClusterByID(ClusterData)
	require.NotNil(t, data)
	require.Len(t, data.Nodes, 1)
	assert.Equal(t, "SQL Database", data.Nodes[0].Title)

	dr := doc.ClusterByID(ClusterDR)
	require.NotNil(t, dr, "enterprise template always has a DR cluster")
	standby := doc.NodeByID("dr_sql_database")
	require.NotNil(t, standby, "relational database selection yields a standby replica")
	assert.Equal(t, "Standby SQL Database", standby.Title)

	// Governance edges from the Landing Zones management group to both
	// workload nodes.
	var computeGov, dataGov bool
	for _, e := range doc.EdgesWithSource("mg_landing_zones") {
		if e.Target == "compute_aks" && e.Style == StyleGovernance {
			computeGov = true
		}
		if e.Target == "data_sql_database" && e.Style == StyleGovernance {
			dataGov = true
		}
	}
	assert.True(t, computeGov, "compute node needs a governance edge from Landing Zones")
	assert.True(t, dataGov, "data node needs a governance edge from Landing Zones")
}

// TestCompose_DRClusterOnlyForEnterprise checks the disaster-recovery lane is
// exclusive to the enterprise template.
func TestCompose_DRClusterOnlyForEnterprise(t *testing.T) {
	cases := []struct {
		org    string
		wantDR bool
	}{
		{"Enterprise Retail Co", true},
		{"Small bakery chain", false},
		{"a medium-size logistics SME", false},
		{"", false},
	}
	for _, tc := range cases {
		doc := composeFor(t, &request.ArchitectureRequest{OrgStructure: tc.org})
		if tc.wantDR {
			assert.NotNil(t, doc.ClusterByID(ClusterDR), "org %q", tc.org)
		} else {
			assert.Nil(t, doc.ClusterByID(ClusterDR), "org %q", tc.org)
		}
	}
}

// TestCompose_UnknownKeysSkipped verifies catalog misses and icon-less
// services are silently skipped, not errored.
func TestCompose_UnknownKeysSkipped(t *testing.T) {
	doc := composeFor(t, &request.ArchitectureRequest{
		ComputeServices:  []string{"aks", "no_such_service", "service_fabric"},
		DatabaseServices: []string{"totally-made-up"},
	})
	compute := doc.ClusterByID(ClusterCompute)
	require.NotNil(t, compute)
	assert.Len(t, compute.Nodes, 1, "only the known renderable service is instantiated")
	assert.Nil(t, doc.ClusterByID(ClusterData), "cluster with only unknown keys is omitted")
	assert.Empty(t, Verify(doc))
}

// TestCompose_DuplicateSelectionsCollapse verifies repeated keys in one list
// produce a single node.
func TestCompose_DuplicateSelectionsCollapse(t *testing.T) {
	doc := composeFor(t, &request.ArchitectureRequest{
		ComputeServices: []string{"aks", "aks", "aks"},
	})
	compute := doc.ClusterByID(ClusterCompute)
	require.NotNil(t, compute)
	assert.Len(t, compute.Nodes, 1)
	assert.Empty(t, Verify(doc))
}

// TestCompose_NoOrphanNodes exercises a broad selection and asserts every
// node outside the edge and legend lanes has an inbound edge.
func TestCompose_NoOrphanNodes(t *testing.T) {
	doc := composeFor(t, &request.ArchitectureRequest{
		OrgStructure:        "Enterprise",
		ComputeServices:     []string{"aks", "functions", "app_service", "virtual_machines"},
		NetworkServices:     []string{"front_door", "cdn", "firewall", "vpn_gateway", "expressroute", "application_gateway"},
		StorageServices:     []string{"blob_storage", "data_lake", "file_storage"},
		DatabaseServices:    []string{"sql_database", "cosmos_db", "postgresql", "redis_cache"},
		SecurityServices:    []string{"sentinel", "defender", "bastion", "waf"},
		AnalyticsServices:   []string{"synapse", "databricks", "stream_analytics"},
		AIServices:          []string{"machine_learning", "openai_service"},
		IntegrationServices: []string{"service_bus", "event_hubs", "api_management", "logic_apps"},
	})
	assert.Empty(t, Verify(doc))

	inbound := make(map[string]int)
	for _, e := range doc.Edges {
		inbound[e.Target]++
	}
	for _, c := range doc.Clusters {
		if c.ID == ClusterEdge || c.ID == ClusterLegend {
			continue
		}
		for _, n := range c.Nodes {
			assert.Positive(t, inbound[n.ID], "orphan node %s", n.ID)
		}
	}
}

// TestCompose_SIEMSelectionAddsSecurityAnalytics checks sentinel renders in
// the monitoring lane, not the identity lane.
func TestCompose_SIEMSelectionAddsSecurityAnalytics(t *testing.T) {
	doc := composeFor(t, &request.ArchitectureRequest{
		SecurityServices: []string{"sentinel"},
	})
	assert.NotNil(t, doc.NodeByID("mon_sentinel"))
	assert.Nil(t, doc.NodeByID("identity_sentinel"))
}

// TestCompose_DataEdges verifies every data node carries both a data-access
// edge and a governance edge.
func TestCompose_DataEdges(t *testing.T) {
	doc := composeFor(t, &request.ArchitectureRequest{
		StorageServices:  []string{"blob_storage"},
		DatabaseServices: []string{"cosmos_db"},
	})
	for _, id := range []string{"data_blob_storage", "data_cosmos_db"} {
		var access, gov bool
		for _, e := range doc.EdgesWithTarget(id) {
			if e.Style == StylePrimary {
				access = true
			}
			if e.Style == StyleGovernance {
				gov = true
			}
		}
		assert.True(t, access, "%s needs a data-access edge", id)
		assert.True(t, gov, "%s needs a governance edge", id)
	}
}

// TestCompose_AnalyticsIngestion checks the first storage node feeds
// analytics nodes when storage is selected.
func TestCompose_AnalyticsIngestion(t *testing.T) {
	doc := composeFor(t, &request.ArchitectureRequest{
		StorageServices:   []string{"data_lake", "blob_storage"},
		AnalyticsServices: []string{"synapse"},
	})
	var found bool
	for _, e := range doc.EdgesWithTarget("ana_synapse") {
		if e.Source == "data_data_lake" && e.Label == "data ingestion" {
			found = true
		}
	}
	assert.True(t, found, "ingestion edge from the first storage node expected")
}

// TestCompose_WorkflowOverlay verifies the authentication flow and the
// web-traffic path to the application gateway.
func TestCompose_WorkflowOverlay(t *testing.T) {
	doc := composeFor(t, &request.ArchitectureRequest{
		NetworkServices: []string{"front_door", "application_gateway"},
	})

	edgeSources := doc.EdgesWithSource("edge_front_door")
	var authCount, webTraffic int
	for _, e := range edgeSources {
		switch e.Target {
		case "identity_active_directory", "identity_key_vault":
			authCount++
		case "net_application_gateway":
			webTraffic++
		}
	}
	assert.Equal(t, 2, authCount, "edge connects to the first two identity nodes")
	assert.Equal(t, 1, webTraffic)

	var identityValidation bool
	for _, e := range doc.EdgesWithTarget("hub_vnet") {
		if e.Source == "identity_active_directory" {
			identityValidation = true
		}
	}
	assert.True(t, identityValidation)
}

// TestCompose_InvalidTemplate verifies the only error path: a template
// missing required fields.
func TestCompose_InvalidTemplate(t *testing.T) {
	_, err := Compose(&request.ArchitectureRequest{}, template.Template{})
	require.Error(t, err)
}
