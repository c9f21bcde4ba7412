package export

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/arch-to-diagram/composer/internal/compose"
	"github.com/arch-to-diagram/composer/internal/request"
	"github.com/arch-to-diagram/composer/internal/template"
)

func exportDocument(t *testing.T) *compose.Document {
	t.Helper()
	req := &request.ArchitectureRequest{
		OrgStructure:     "Enterprise Retail Co",
		ComputeServices:  []string{"aks"},
		DatabaseServices: []string{"sql_database"},
	}
	doc, err := compose.Compose(req, template.Select(req.OrgStructure))
	require.NoError(t, err)
	return doc
}

func TestFiles(t *testing.T) {
	files := Files(exportDocument(t))

	require.Contains(t, files, "versions.tf")
	require.Contains(t, files, "variables.tf")
	require.Contains(t, files, "main.tf")

	versions := string(files["versions.tf"])
	assert.Contains(t, versions, `"hashicorp/azurerm"`)
	assert.Contains(t, versions, `"~> 3.0"`)
	assert.Contains(t, versions, `provider "azurerm"`)
	assert.Contains(t, versions, "features {")

	variables := string(files["variables.tf"])
	assert.Contains(t, variables, `variable "location"`)
	assert.Contains(t, variables, `variable "resource_group"`)
	assert.Contains(t, variables, "= string\n", "type constraints are bare keywords")
	assert.NotContains(t, variables, `"string"`, "quoted type strings are the deprecated form")

	main := string(files["main.tf"])
	assert.Contains(t, main, `resource "azurerm_virtual_network" "hub_vnet"`)
	assert.Contains(t, main, `resource "azurerm_kubernetes_cluster" "compute_aks"`)
	assert.Contains(t, main, `resource "azurerm_mssql_server" "data_sql_database"`)
	assert.Contains(t, main, "var.location")
	assert.Contains(t, main, "var.resource_group")
	assert.Contains(t, main, `address_space`)
	assert.Contains(t, main, `"10.0.0.0/16"`)
}

func TestFiles_SkipsNonDeployableKinds(t *testing.T) {
	main := string(Files(exportDocument(t))["main.tf"])

	assert.NotContains(t, main, "mg_root", "management groups are not deployable resources")
	assert.NotContains(t, main, "identity_active_directory", "tenant-level identity is not exported")
	assert.NotContains(t, main, "legend_", "legend entries are not exported")
}

func TestFiles_EmptyDocument(t *testing.T) {
	files := Files(&compose.Document{})
	assert.Contains(t, files, "versions.tf")
	assert.Contains(t, files, "variables.tf")
	assert.NotContains(t, files, "main.tf")
}

func TestSanitizeName(t *testing.T) {
	assert.Equal(t, "hub_vnet", SanitizeName("hub_vnet"))
	assert.Equal(t, "a_b", SanitizeName("a-b"))
}
