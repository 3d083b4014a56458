// Package policy is the single source of truth for role-based access control.
// Every route gate and every read-scope decision goes through this table;
// handlers never compare role strings themselves.
package policy

// Role is the closed set of user roles. Anything outside these three values is
// treated as unknown and denied everything.
type Role string

const (
	RoleAdmin    Role = "admin"
	RoleManager  Role = "manager"
	RoleEmployee Role = "employee"
)

// Valid reports whether r is one of the three known roles.
func (r Role) Valid() bool {
	switch r {
	case RoleAdmin, RoleManager, RoleEmployee:
		return true
	}
	return false
}

// Operation enumerates the todo operations subject to the permission table.
type Operation string

const (
	OpRead   Operation = "read"
	OpCreate Operation = "create"
	OpUpdate Operation = "update"
	OpToggle Operation = "toggle"
	OpDelete Operation = "delete"
)

// Scope is the subset of todo rows a role may read.
type Scope int

const (
	// ScopeNone means no rows are visible (unknown role).
	ScopeNone Scope = iota
	// ScopeOwn limits reads to todos owned by the caller.
	ScopeOwn
	// ScopeAll makes every todo visible.
	ScopeAll
)

// Allows implements the role × operation permission table:
//
//	            read  create  update  toggle  delete
//	admin        yes    yes     yes     yes     yes
//	manager      yes    no      yes     yes     yes
//	employee     yes    no      no      no      no
//
// Unknown roles and unknown operations are denied.
func Allows(r Role, op Operation) bool {
	switch r {
	case RoleAdmin:
		switch op {
		case OpRead, OpCreate, OpUpdate, OpToggle, OpDelete:
			return true
		}
	case RoleManager:
		switch op {
		case OpRead, OpUpdate, OpToggle, OpDelete:
			return true
		}
	case RoleEmployee:
		return op == OpRead
	}
	return false
}

// ReadScope returns the visibility scope for list/read operations.
// Ownership never widens write rights; it only narrows what employees can see.
func ReadScope(r Role) Scope {
	switch r {
	case RoleAdmin, RoleManager:
		return ScopeAll
	case RoleEmployee:
		return ScopeOwn
	}
	return ScopeNone
}
