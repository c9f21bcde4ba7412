package compose

import "github.com/arch-to-diagram/composer/internal/catalog"

// annotationTable holds the fixed per-service descriptive lines (tier,
// redundancy class, scaling or billing model). The exact text is cosmetic;
// only the table lookup is load-bearing.
var annotationTable = map[string][]string{
	// compute
	"virtual_machines":    {"Standard_D4s_v5", "Availability set"},
	"vm_scale_sets":       {"Auto-scale: 2-20 instances"},
	"aks":                 {"Auto-scale: 3-10 nodes", "Standard tier"},
	"container_instances": {"Per-second billing"},
	"container_apps":      {"Consumption plan", "KEDA scaling"},
	"app_service":         {"Premium v3 plan", "Zone redundant"},
	"functions":           {"Consumption plan"},
	"batch":               {"Low-priority pool"},

	// storage
	"blob_storage":  {"GRS redundancy", "Hot tier"},
	"file_storage":  {"ZRS redundancy"},
	"queue_storage": {"LRS redundancy"},
	"table_storage": {"LRS redundancy"},
	"managed_disks": {"Premium SSD"},
	"data_lake":     {"Hierarchical namespace", "GRS redundancy"},

	// database
	"sql_database": {"Geo-replicated", "99.99% SLA"},
	"cosmos_db":    {"Multi-region write", "Session consistency"},
	"mysql":        {"Flexible server", "Zone-redundant HA"},
	"postgresql":   {"Flexible server", "Zone-redundant HA"},
	"mariadb":      {"General purpose tier"},
	"redis_cache":  {"Premium tier", "Zone redundant"},
	"sql_managed":  {"Business critical tier"},

	// analytics / ai
	"synapse":            {"Dedicated SQL pool"},
	"databricks":         {"Premium workspace"},
	"data_factory":       {"Managed VNet runtime"},
	"stream_analytics":   {"6 streaming units"},
	"power_bi":           {"A1 capacity"},
	"machine_learning":   {"Compute cluster: 0-4 nodes"},
	"cognitive_services": {"S0 tier"},
	"openai_service":     {"Provisioned throughput"},

	// integration
	"service_bus":    {"Premium namespace"},
	"event_hubs":     {"Standard tier", "4 partitions"},
	"event_grid":     {"System topics"},
	"logic_apps":     {"Consumption plan"},
	"api_management": {"Developer tier"},
}

// genericAnnotations are the per-category fallbacks for services without a
// dedicated table row.
var genericAnnotations = map[catalog.Category][]string{
	catalog.CategoryCompute:     {"Managed service"},
	catalog.CategoryStorage:     {"LRS redundancy"},
	catalog.CategoryDatabase:    {"Managed database"},
	catalog.CategoryAnalytics:   {"Managed service"},
	catalog.CategoryAI:          {"Managed service"},
	catalog.CategoryIntegration: {"Managed service"},
	catalog.CategoryNetwork:     {"Standard tier"},
}

// annotationsFor returns the descriptive lines for a service, falling back to
// the category generic and finally "Managed service".
func annotationsFor(d catalog.ServiceDescriptor) []string {
	if a, ok := annotationTable[d.Key]; ok {
		return a
	}
	if a, ok := genericAnnotations[d.Category]; ok {
		return a
	}
	return []string{"Managed service"}
}
