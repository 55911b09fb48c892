package common

import (
	"hms/src/types"
	"net/http"

	"github.com/gin-gonic/gin"
)

type Resource string

const (
	ResourcePatients        Resource = "patients"
	ResourceDoctors         Resource = "doctors"
	ResourceDoctorSchedules Resource = "doctor-schedules"
	ResourceDoctorLeaves    Resource = "doctor-leaves"
	ResourceAppointments    Resource = "appointments"
	ResourceLabTests        Resource = "lab-tests"
	ResourceWards           Resource = "wards"
	ResourceBeds            Resource = "beds"
	ResourceBedTransfers    Resource = "bed-transfers"
)

// writeRoles is the single write-permission table. Reads only require
// authentication; every mutating route goes through RequireWrite.
var writeRoles = map[Resource][]types.Role{
	ResourcePatients:        {types.ROLE_ADMIN, types.ROLE_RECEPTIONIST, types.ROLE_DOCTOR},
	ResourceDoctors:         {types.ROLE_ADMIN},
	ResourceDoctorSchedules: {types.ROLE_ADMIN, types.ROLE_DOCTOR},
	ResourceDoctorLeaves:    {types.ROLE_ADMIN, types.ROLE_DOCTOR},
	ResourceAppointments:    {types.ROLE_ADMIN, types.ROLE_RECEPTIONIST},
	ResourceLabTests:        {types.ROLE_ADMIN, types.ROLE_RECEPTIONIST, types.ROLE_DOCTOR},
	ResourceWards:           {types.ROLE_ADMIN, types.ROLE_RECEPTIONIST},
	ResourceBeds:            {types.ROLE_ADMIN, types.ROLE_RECEPTIONIST},
	ResourceBedTransfers:    {types.ROLE_ADMIN, types.ROLE_RECEPTIONIST},
}

func CanWrite(role types.Role, superuser bool, resource Resource) bool {
	if superuser {
		return true
	}
	for _, allowed := range writeRoles[resource] {
		if role == allowed {
			return true
		}
	}
	return false
}

// IsAppointmentActor reports whether the caller may run status actions on
// an appointment: admin, superuser, or the assigned doctor.
func IsAppointmentActor(role types.Role, superuser bool, userID uint, doctorID uint) bool {
	if superuser || role == types.ROLE_ADMIN {
		return true
	}
	return role == types.ROLE_DOCTOR && doctorID == userID
}

func RequireWrite(resource Resource) gin.HandlerFunc {
	return func(ctx *gin.Context) {
		role := types.Role(ctx.GetString("role"))
		superuser := ctx.GetBool("superuser")
		if !CanWrite(role, superuser, resource) {
			ctx.AbortWithStatusJSON(http.StatusForbidden, gin.H{"detail": "Insufficient role permissions"})
			return
		}
	}
}
