package export

import (
	"bytes"
	"net"
	"strings"

	"github.com/hashicorp/hcl/v2/hclwrite"
	"github.com/zclconf/go-cty/cty"

	"github.com/arch-to-diagram/composer/internal/compose"
)

// kindResource maps node kinds to azurerm resource types. Unmapped kinds
// (legend, management groups, subscriptions) are not exported.
var kindResource = map[string]string{
	"network":      "azurerm_virtual_network",
	"firewall":     "azurerm_firewall",
	"gateway":      "azurerm_virtual_network_gateway",
	"loadbalancer": "azurerm_lb",
	"edge":         "azurerm_cdn_frontdoor_profile",
	"container":    "azurerm_kubernetes_cluster",
	"appservice":   "azurerm_linux_web_app",
	"function":     "azurerm_linux_function_app",
	"vm":           "azurerm_linux_virtual_machine",
	"storage":      "azurerm_storage_account",
	"database":     "azurerm_mssql_server",
	"cache":        "azurerm_redis_cache",
	"vault":        "azurerm_key_vault",
	"monitor":      "azurerm_log_analytics_workspace",
	"siem":         "azurerm_sentinel_log_analytics_workspace_onboarding",
	"security":     "azurerm_security_center_subscription_pricing",
	"messaging":    "azurerm_servicebus_namespace",
	"workflow":     "azurerm_logic_app_workflow",
	"apigateway":   "azurerm_api_management",
	"analytics":    "azurerm_synapse_workspace",
	"identity":     "", // tenant-level, not a deployable resource
	"devops":       "azurerm_container_registry",
	"backup":       "azurerm_recovery_services_vault",
	"governance":   "azurerm_policy_definition",
}

// Files generates the Terraform skeleton for the document: versions.tf,
// variables.tf and main.tf keyed by filename.
func Files(d *compose.Document) map[string][]byte {
	out := map[string][]byte{
		"versions.tf":  versionsTF(),
		"variables.tf": variablesTF(),
	}

	var main bytes.Buffer
	first := true
	for _, c := range d.Clusters {
		for _, n := range c.Nodes {
			block := resourceFor(c, n)
			if block == nil {
				continue
			}
			if !first {
				main.WriteString("\n")
			}
			first = false
			main.Write(BlockToBytes(block))
		}
	}
	if main.Len() > 0 {
		out["main.tf"] = main.Bytes()
	}
	return out
}

// resourceFor builds a skeleton resource block for one node, or nil when the
// node kind has no deployable counterpart.
func resourceFor(c *compose.Cluster, n *compose.Node) *hclwrite.Block {
	resType, ok := kindResource[n.Kind]
	if !ok || resType == "" {
		return nil
	}
	block := ResourceBlock(resType, SanitizeName(n.ID))
	body := block.Body()
	SetAttributeStr(body, "name", SanitizeName(n.ID))
	body.SetAttributeTraversal("location", varTraversal("location"))
	body.SetAttributeTraversal("resource_group_name", varTraversal("resource_group"))

	if resType == "azurerm_virtual_network" {
		if cidr := cidrAnnotation(n); cidr != "" {
			body.SetAttributeValue("address_space", cty.ListVal([]cty.Value{cty.StringVal(cidr)}))
		}
	}

	SetAttributeMap(body, "tags", map[string]string{
		"zone":    string(c.Zone),
		"cluster": c.ID,
	})
	return block
}

// cidrAnnotation returns the first annotation that parses as a CIDR block.
func cidrAnnotation(n *compose.Node) string {
	for _, a := range n.Annotations {
		if _, _, err := net.ParseCIDR(strings.TrimSpace(a)); err == nil {
			return strings.TrimSpace(a)
		}
	}
	return ""
}

// versionsTF returns the terraform block and azurerm provider.
func versionsTF() []byte {
	f := hclwrite.NewEmptyFile()
	body := f.Body()

	tfBlock := body.AppendNewBlock("terraform", nil)
	tfBody := tfBlock.Body()
	tfBody.SetAttributeValue("required_version", cty.StringVal(">= 1.0"))
	reqProv := tfBody.AppendNewBlock("required_providers", nil)
	reqProv.Body().SetAttributeValue("azurerm", cty.ObjectVal(map[string]cty.Value{
		"source":  cty.StringVal("hashicorp/azurerm"),
		"version": cty.StringVal("~> 3.0"),
	}))

	body.AppendNewline()
	provBlock := body.AppendNewBlock("provider", []string{"azurerm"})
	provBlock.Body().AppendNewBlock("features", nil)

	return f.Bytes()
}

// variablesTF returns location and resource-group variables.
func variablesTF() []byte {
	f := hclwrite.NewEmptyFile()
	body := f.Body()

	locBlock := body.AppendNewBlock("variable", []string{"location"})
	locBlock.Body().SetAttributeValue("description", cty.StringVal("Azure region"))
	locBlock.Body().SetAttributeTraversal("type", bareTraversal("string"))
	locBlock.Body().SetAttributeValue("default", cty.StringVal("eastus2"))

	body.AppendNewline()
	rgBlock := body.AppendNewBlock("variable", []string{"resource_group"})
	rgBlock.Body().SetAttributeValue("description", cty.StringVal("Target resource group"))
	rgBlock.Body().SetAttributeTraversal("type", bareTraversal("string"))
	rgBlock.Body().SetAttributeValue("default", cty.StringVal("rg-landing-zone"))

	return f.Bytes()
}
