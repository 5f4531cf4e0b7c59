package log

// Common field names for structured logging
const (
	FieldComponent  = "component"
	FieldRequestID  = "request_id"
	FieldMethod     = "method"
	FieldPath       = "path"
	FieldStatusCode = "status_code"
	FieldDuration   = "duration_ms"
	FieldError      = "error"
	FieldUserID     = "user_id"
	FieldBillID     = "bill_id"
	FieldSubID      = "subscription_id"
	FieldReminderID = "reminder_id"
	FieldCategoryID = "category_id"
	FieldAmount     = "amount"
	FieldMonths     = "months"
)

// Components defines standard component names
const (
	ComponentApp        = "app"
	ComponentHTTP       = "http"
	ComponentStore      = "store"
	ComponentStats      = "stats"
	ComponentSMS        = "sms"
	ComponentAMQP       = "amqp"
	ComponentDispatcher = "dispatcher"
)
