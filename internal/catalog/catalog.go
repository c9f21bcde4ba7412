// Package catalog is the static registry of renderable cloud services.
// New services only ever add rows; nothing mutates the table at runtime.
package catalog

import "sort"

// Category classifies a service for selection and cluster placement.
type Category string

const (
	CategoryCompute     Category = "compute"
	CategoryNetwork     Category = "network"
	CategoryStorage     Category = "storage"
	CategoryDatabase    Category = "database"
	CategorySecurity    Category = "security"
	CategoryMonitoring  Category = "monitoring"
	CategoryAI          Category = "ai"
	CategoryAnalytics   Category = "analytics"
	CategoryIntegration Category = "integration"
	CategoryDevOps      Category = "devops"
	CategoryGovernance  Category = "governance"
	CategoryBackup      Category = "backup"
)

// ServiceDescriptor is one row of the catalog. NodeKind identifies the visual
// representation used by the renderers; an empty NodeKind means the service
// has no dedicated icon and is skipped during composition.
type ServiceDescriptor struct {
	Key         string
	DisplayName string
	Category    Category
	NodeKind    string
}

var services = map[string]ServiceDescriptor{
	// network / edge
	"front_door":          {Key: "front_door", DisplayName: "Front Door", Category: CategoryNetwork, NodeKind: "edge"},
	"cdn":                 {Key: "cdn", DisplayName: "CDN Profile", Category: CategoryNetwork, NodeKind: "edge"},
	"traffic_manager":     {Key: "traffic_manager", DisplayName: "Traffic Manager", Category: CategoryNetwork, NodeKind: "edge"},
	"virtual_network":     {Key: "virtual_network", DisplayName: "Virtual Network", Category: CategoryNetwork, NodeKind: "network"},
	"firewall":            {Key: "firewall", DisplayName: "Azure Firewall", Category: CategoryNetwork, NodeKind: "firewall"},
	"vpn_gateway":         {Key: "vpn_gateway", DisplayName: "VPN Gateway", Category: CategoryNetwork, NodeKind: "gateway"},
	"expressroute":        {Key: "expressroute", DisplayName: "ExpressRoute Circuit", Category: CategoryNetwork, NodeKind: "gateway"},
	"application_gateway": {Key: "application_gateway", DisplayName: "Application Gateway", Category: CategoryNetwork, NodeKind: "loadbalancer"},
	"load_balancer":       {Key: "load_balancer", DisplayName: "Load Balancer", Category: CategoryNetwork, NodeKind: "loadbalancer"},
	"ddos_protection":     {Key: "ddos_protection", DisplayName: "DDoS Protection", Category: CategoryNetwork, NodeKind: "security"},
	"private_link":        {Key: "private_link", DisplayName: "Private Link", Category: CategoryNetwork, NodeKind: "network"},
	"dns":                 {Key: "dns", DisplayName: "Azure DNS", Category: CategoryNetwork, NodeKind: "network"},

	// compute
	"virtual_machines":    {Key: "virtual_machines", DisplayName: "Virtual Machines", Category: CategoryCompute, NodeKind: "vm"},
	"vm_scale_sets":       {Key: "vm_scale_sets", DisplayName: "VM Scale Sets", Category: CategoryCompute, NodeKind: "vm"},
	"aks":                 {Key: "aks", DisplayName: "Azure Kubernetes Service", Category: CategoryCompute, NodeKind: "container"},
	"container_instances": {Key: "container_instances", DisplayName: "Container Instances", Category: CategoryCompute, NodeKind: "container"},
	"container_apps":      {Key: "container_apps", DisplayName: "Container Apps", Category: CategoryCompute, NodeKind: "container"},
	"app_service":         {Key: "app_service", DisplayName: "App Service", Category: CategoryCompute, NodeKind: "appservice"},
	"functions":           {Key: "functions", DisplayName: "Azure Functions", Category: CategoryCompute, NodeKind: "function"},
	"batch":               {Key: "batch", DisplayName: "Azure Batch", Category: CategoryCompute, NodeKind: "vm"},
	"service_fabric":      {Key: "service_fabric", DisplayName: "Service Fabric", Category: CategoryCompute, NodeKind: ""},

	// storage
	"blob_storage":  {Key: "blob_storage", DisplayName: "Blob Storage", Category: CategoryStorage, NodeKind: "storage"},
	"file_storage":  {Key: "file_storage", DisplayName: "Azure Files", Category: CategoryStorage, NodeKind: "storage"},
	"queue_storage": {Key: "queue_storage", DisplayName: "Queue Storage", Category: CategoryStorage, NodeKind: "storage"},
	"table_storage": {Key: "table_storage", DisplayName: "Table Storage", Category: CategoryStorage, NodeKind: "storage"},
	"managed_disks": {Key: "managed_disks", DisplayName: "Managed Disks", Category: CategoryStorage, NodeKind: "storage"},
	"data_lake":     {Key: "data_lake", DisplayName: "Data Lake Storage", Category: CategoryStorage, NodeKind: "storage"},

	// database
	"sql_database":  {Key: "sql_database", DisplayName: "SQL Database", Category: CategoryDatabase, NodeKind: "database"},
	"cosmos_db":     {Key: "cosmos_db", DisplayName: "Cosmos DB", Category: CategoryDatabase, NodeKind: "database"},
	"mysql":         {Key: "mysql", DisplayName: "Database for MySQL", Category: CategoryDatabase, NodeKind: "database"},
	"postgresql":    {Key: "postgresql", DisplayName: "Database for PostgreSQL", Category: CategoryDatabase, NodeKind: "database"},
	"mariadb":       {Key: "mariadb", DisplayName: "Database for MariaDB", Category: CategoryDatabase, NodeKind: "database"},
	"redis_cache":   {Key: "redis_cache", DisplayName: "Cache for Redis", Category: CategoryDatabase, NodeKind: "cache"},
	"sql_managed":   {Key: "sql_managed", DisplayName: "SQL Managed Instance", Category: CategoryDatabase, NodeKind: "database"},
	"database_edge": {Key: "database_edge", DisplayName: "SQL Edge", Category: CategoryDatabase, NodeKind: ""},

	// security / identity
	"active_directory": {Key: "active_directory", DisplayName: "Entra ID", Category: CategorySecurity, NodeKind: "identity"},
	"key_vault":        {Key: "key_vault", DisplayName: "Key Vault", Category: CategorySecurity, NodeKind: "vault"},
	"sentinel":         {Key: "sentinel", DisplayName: "Microsoft Sentinel", Category: CategorySecurity, NodeKind: "siem"},
	"defender":         {Key: "defender", DisplayName: "Defender for Cloud", Category: CategorySecurity, NodeKind: "security"},
	"bastion":          {Key: "bastion", DisplayName: "Azure Bastion", Category: CategorySecurity, NodeKind: "security"},
	"waf":              {Key: "waf", DisplayName: "Web Application Firewall", Category: CategorySecurity, NodeKind: "security"},

	// monitoring
	"monitor":              {Key: "monitor", DisplayName: "Azure Monitor", Category: CategoryMonitoring, NodeKind: "monitor"},
	"log_analytics":        {Key: "log_analytics", DisplayName: "Log Analytics Workspace", Category: CategoryMonitoring, NodeKind: "monitor"},
	"application_insights": {Key: "application_insights", DisplayName: "Application Insights", Category: CategoryMonitoring, NodeKind: "monitor"},
	"cost_management":      {Key: "cost_management", DisplayName: "Cost Management", Category: CategoryMonitoring, NodeKind: "monitor"},

	// analytics
	"synapse":          {Key: "synapse", DisplayName: "Synapse Analytics", Category: CategoryAnalytics, NodeKind: "analytics"},
	"databricks":       {Key: "databricks", DisplayName: "Azure Databricks", Category: CategoryAnalytics, NodeKind: "analytics"},
	"data_factory":     {Key: "data_factory", DisplayName: "Data Factory", Category: CategoryAnalytics, NodeKind: "analytics"},
	"stream_analytics": {Key: "stream_analytics", DisplayName: "Stream Analytics", Category: CategoryAnalytics, NodeKind: "analytics"},
	"power_bi":         {Key: "power_bi", DisplayName: "Power BI Embedded", Category: CategoryAnalytics, NodeKind: "analytics"},
	"purview":          {Key: "purview", DisplayName: "Microsoft Purview", Category: CategoryAnalytics, NodeKind: ""},

	// ai
	"machine_learning":   {Key: "machine_learning", DisplayName: "Machine Learning", Category: CategoryAI, NodeKind: "analytics"},
	"cognitive_services": {Key: "cognitive_services", DisplayName: "Cognitive Services", Category: CategoryAI, NodeKind: "analytics"},
	"openai_service":     {Key: "openai_service", DisplayName: "Azure OpenAI", Category: CategoryAI, NodeKind: "analytics"},
	"bot_service":        {Key: "bot_service", DisplayName: "Bot Service", Category: CategoryAI, NodeKind: ""},

	// integration
	"service_bus":    {Key: "service_bus", DisplayName: "Service Bus", Category: CategoryIntegration, NodeKind: "messaging"},
	"event_hubs":     {Key: "event_hubs", DisplayName: "Event Hubs", Category: CategoryIntegration, NodeKind: "messaging"},
	"event_grid":     {Key: "event_grid", DisplayName: "Event Grid", Category: CategoryIntegration, NodeKind: "messaging"},
	"logic_apps":     {Key: "logic_apps", DisplayName: "Logic Apps", Category: CategoryIntegration, NodeKind: "workflow"},
	"api_management": {Key: "api_management", DisplayName: "API Management", Category: CategoryIntegration, NodeKind: "apigateway"},

	// devops
	"devops":             {Key: "devops", DisplayName: "Azure DevOps", Category: CategoryDevOps, NodeKind: "devops"},
	"pipelines":          {Key: "pipelines", DisplayName: "Azure Pipelines", Category: CategoryDevOps, NodeKind: "devops"},
	"container_registry": {Key: "container_registry", DisplayName: "Container Registry", Category: CategoryDevOps, NodeKind: "devops"},

	// governance
	"policy":     {Key: "policy", DisplayName: "Azure Policy", Category: CategoryGovernance, NodeKind: "governance"},
	"blueprints": {Key: "blueprints", DisplayName: "Azure Blueprints", Category: CategoryGovernance, NodeKind: "governance"},

	// backup / DR
	"backup":        {Key: "backup", DisplayName: "Azure Backup", Category: CategoryBackup, NodeKind: "backup"},
	"site_recovery": {Key: "site_recovery", DisplayName: "Site Recovery", Category: CategoryBackup, NodeKind: "backup"},
}

// Lookup returns the descriptor for the given service key. Keys come from
// free-form caller input, so a miss means "skip this service", not an error.
func Lookup(key string) (ServiceDescriptor, bool) {
	d, ok := services[key]
	return d, ok
}

// Renderable reports whether the key resolves to a descriptor with a node kind.
func Renderable(key string) bool {
	d, ok := services[key]
	return ok && d.NodeKind != ""
}

// Keys returns all registered service keys in sorted order.
func Keys() []string {
	out := make([]string, 0, len(services))
	for k := range services {
		out = append(out, k)
	}
	sort.Strings(out)
	return out
}
