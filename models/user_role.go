package models

type UserRole string

const (
	UserRoleAdmin     UserRole = "admin"
	UserRoleRecruiter UserRole = "recruiter"
)

func (r UserRole) IsValid() bool {
	return r == UserRoleAdmin || r == UserRoleRecruiter
}

func (r UserRole) IsAdmin() bool {
	return r == UserRoleAdmin
}

func (r UserRole) ToHuman() string {
	switch r {
	case UserRoleAdmin:
		return "Administrador"
	case UserRoleRecruiter:
		return "Reclutador"
	}
	return string(r)
}
