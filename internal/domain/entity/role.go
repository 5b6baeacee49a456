package entity

import "strings"

// Role mirrors the identity service's roles table. Role IDs travel in the
// access token, so the IDs below must match the seeded rows.
type Role struct {
	ID          int    `gorm:"primaryKey;autoIncrement" json:"id"`
	RoleName    string `gorm:"type:varchar(50);uniqueIndex;not null" json:"role_name"`
	Description string `gorm:"type:text" json:"description,omitempty"`
}

func (Role) TableName() string {
	return "roles"
}

const (
	RoleIDAdmin   = 1
	RoleIDDoctor  = 2
	RoleIDPatient = 3
)

const (
	RoleAdmin   = "admin"
	RoleDoctor  = "doctor"
	RolePatient = "patient"
)

var roleNames = map[int]string{
	RoleIDAdmin:   RoleAdmin,
	RoleIDDoctor:  RoleDoctor,
	RoleIDPatient: RolePatient,
}

// RoleName returns the name seeded for id, or "" for an unknown role.
func RoleName(id int) string {
	return roleNames[id]
}

// DescribeRoles joins the names of ids for messages, e.g. "admin or doctor".
func DescribeRoles(ids ...int) string {
	names := make([]string, 0, len(ids))
	for _, id := range ids {
		if name := RoleName(id); name != "" {
			names = append(names, name)
		}
	}
	return strings.Join(names, " or ")
}
