package authz

// Operation identifies one permission-checked operation on a resource.
// Every operation the core exposes maps to exactly one of these; unknown
// operations are denied (fail-closed).
type Operation string

const (
	// Project operations
	OpReadProject      Operation = "project:read"
	OpWriteProject     Operation = "project:write"
	OpDeleteProject    Operation = "project:delete"
	OpAddTeamMember    Operation = "project:add_member"
	OpRemoveTeamMember Operation = "project:remove_member"

	// Task operations. WriteTaskLimited covers only the assignee's progress
	// fields (status, actualHours, comments note); WriteTaskFull covers
	// every field including reassignment.
	OpReadTask         Operation = "task:read"
	OpWriteTaskFull    Operation = "task:write_full"
	OpWriteTaskLimited Operation = "task:write_limited"
	OpDeleteTask       Operation = "task:delete"

	// Comment operations
	OpReadComment   Operation = "comment:read"
	OpCreateComment Operation = "comment:create"
	OpDeleteComment Operation = "comment:delete"
)

var validOperations = map[Operation]bool{
	OpReadProject:      true,
	OpWriteProject:     true,
	OpDeleteProject:    true,
	OpAddTeamMember:    true,
	OpRemoveTeamMember: true,
	OpReadTask:         true,
	OpWriteTaskFull:    true,
	OpWriteTaskLimited: true,
	OpDeleteTask:       true,
	OpReadComment:      true,
	OpCreateComment:    true,
	OpDeleteComment:    true,
}

// ValidOperation reports whether op is a known operation.
func ValidOperation(op Operation) bool {
	return validOperations[op]
}
