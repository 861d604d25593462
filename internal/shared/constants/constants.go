package constants

const (
	// Environment constants
	EnvDevelopment = "development"
	EnvTest        = "test"
	EnvProduction  = "production"

	// Default pagination
	DefaultPage     = 1
	DefaultPageSize = 20
	MaxPageSize     = 100

	// MaxExportRows caps a single spreadsheet export.
	MaxExportRows = 10000

	// HTTP Headers
	HeaderContentType   = "Content-Type"
	HeaderAuthorization = "Authorization"
	HeaderXRequestID    = "X-Request-ID"
	HeaderDeprecation   = "Deprecation"

	// Content Types
	ContentTypeJSON = "application/json"
	ContentTypeXLSX = "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet"

	// Context keys
	ContextKeyUserID    = "user_id"
	ContextKeyUserRole  = "user_role"
	ContextKeyRequestID = "request_id"
	ContextKeyClientID  = "client_id"

	// Database table names
	TableServices             = "services"
	TableSparePartOrders      = "spare_part_orders"
	TableRemovedParts         = "removed_parts"
	TableNotifications        = "notifications"
	TableOutboundMessages     = "outbound_messages"
	TableServiceStatusHistory = "service_status_history"
	TableClients              = "clients"
	TableAppliances           = "appliances"
	TableUsers                = "users"

	// Error messages
	ErrMsgInternalServerError = "Internal server error occurred"
	ErrMsgResourceNotFound    = "Resource not found"
	ErrMsgUnauthorized        = "Unauthorized access"
	ErrMsgForbidden           = "Access forbidden"
	ErrMsgValidationFailed    = "Validation failed"
)
