package entity

import "time"

// Roles válidos para User. super_admin cruza departamentos; los demás quedan
// limitados a su propio departamento.
const (
	RoleSuperAdmin      = "super_admin"
	RoleDepartmentAdmin = "department_admin"
	RoleUser            = "user"
)

// User representa un usuario del sistema (pertenece a un Department).
type User struct {
	ID           string
	DepartmentID string
	Email        string
	PasswordHash string // bcrypt hash, nunca plano en dominio después de persistir
	Name         string
	Role         string // super_admin, department_admin, user
	Status       string // active, inactive, suspended
	CreatedAt    time.Time
	UpdatedAt    time.Time
}

// Actor es el contexto de autorización de una petición ya autenticada:
// quién ejecuta la operación y con qué alcance.
type Actor struct {
	ID           string
	Name         string
	DepartmentID string
	Role         string
}

// IsElevated indica si el actor tiene alcance elevado (admin de su departamento o superadmin).
func (a Actor) IsElevated() bool {
	return a.Role == RoleSuperAdmin || a.Role == RoleDepartmentAdmin
}

// CanAccessDepartment verifica el alcance por departamento: superadmin accede a todo,
// el resto solo a su propio departamento.
func (a Actor) CanAccessDepartment(departmentID string) bool {
	if a.Role == RoleSuperAdmin {
		return true
	}
	return a.DepartmentID == departmentID
}
