package logging

// Standardized field names for structured logging.
const (
	FieldFile       = "file_path"
	FieldBackend    = "backend"
	FieldCategory   = "category"
	FieldAmount     = "amount"
	FieldDate       = "date"
	FieldText       = "text"
	FieldConfidence = "confidence"
	FieldOperation  = "operation"
	FieldProvider   = "provider"
	FieldModel      = "model"
	FieldCount      = "count"
	FieldTotal      = "total"
	FieldQuery      = "query"
	FieldDuration   = "duration_ms"
	FieldOutputFile = "output_file"
)
