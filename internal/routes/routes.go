package routes

const (
	// Health
	Health = "/health"

	// Properties
	Properties           = "/api/v1/properties"
	PropertyByID         = "/api/v1/properties/{id}"
	PropertyAssignTenant = "/api/v1/properties/{id}/assign-tenant"

	// Tenants
	Tenants              = "/api/v1/tenants"
	TenantByID           = "/api/v1/tenants/{id}"
	TenantAssignProperty = "/api/v1/tenants/{id}/assign-property"

	// Rent entries
	RentEntries           = "/api/v1/rent-entries"
	RentEntriesRegenerate = "/api/v1/rent-entries/regenerate"
	RentEntriesStatistics = "/api/v1/rent-entries/statistics"
	RentEntryByID         = "/api/v1/rent-entries/{id}"
	RentEntryMarkPaid     = "/api/v1/rent-entries/{id}/mark-paid"
)
