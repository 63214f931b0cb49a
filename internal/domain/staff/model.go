package staff

import (
	"strings"
	"time"

	"github.com/hms/hms/internal/platform/store"
)

const (
	RoleDoctor = "doctor"
	RoleNurse  = "nurse"
	RoleAdmin  = "admin"
)

var validRoles = map[string]bool{
	RoleDoctor: true,
	RoleNurse:  true,
	RoleAdmin:  true,
}

func ValidRole(role string) bool { return validRoles[strings.ToLower(role)] }

// Staff is one hospital staff member.
type Staff struct {
	store.Meta
	Name           string `json:"name"`
	Role           string `json:"role"`
	Contact        string `json:"contact"`
	Specialization string `json:"specialization"`
}

func NewStaff(name, role, contact, specialization string, now time.Time) *Staff {
	return &Staff{
		Meta:           store.NewMeta(now),
		Name:           name,
		Role:           strings.ToLower(role),
		Contact:        contact,
		Specialization: specialization,
	}
}

func (s *Staff) IsDoctor() bool { return strings.EqualFold(s.Role, RoleDoctor) }
