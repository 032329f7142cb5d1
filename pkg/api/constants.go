package api

// Role constants define the message roles recorded in a conversation log.
// All deciders must normalize their native roles to these values.
const (
	RoleUser      = "user"
	RoleAssistant = "assistant"
	RoleSystem    = "system"
	RoleTool      = "tool"
)

// Parameter type constants for tool schemas. Providers map these onto
// their native JSON-Schema vocabularies.
const (
	ParamTypeString  = "string"
	ParamTypeNumber  = "number"
	ParamTypeInteger = "integer"
	ParamTypeBoolean = "boolean"
)
