package logging

// Field names shared by every component so log output can be filtered
// consistently.
const (
	FieldFile       = "file_path"
	FieldComponent  = "component"
	FieldTestID     = "test_id"
	FieldUserID     = "user_id"
	FieldOrdinal    = "ordinal"
	FieldReason     = "reason"
	FieldOperation  = "operation"
	FieldStatus     = "status"
	FieldDuration   = "duration_ms"
	FieldCount      = "count"
	FieldAccepted   = "accepted"
	FieldRejected   = "rejected"
	FieldPages      = "pages"
	FieldEmptyPages = "empty_pages"
	FieldFormat     = "format"
	FieldDriver     = "driver"
	FieldAddr       = "addr"
)
