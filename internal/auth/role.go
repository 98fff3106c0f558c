package auth

// Role é o valor do claim "role" no token.
type Role string

const (
	RoleStaff  Role = "Funcionario"
	RoleClient Role = "Cliente"
)

func RoleFor(isStaff bool) Role {
	if isStaff {
		return RoleStaff
	}
	return RoleClient
}

func (r Role) Valid() bool {
	return r == RoleStaff || r == RoleClient
}
