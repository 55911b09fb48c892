package common

import (
	"hms/src/types"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestCanWrite(t *testing.T) {
	cases := []struct {
		role     types.Role
		resource Resource
		allowed  bool
	}{
		{types.ROLE_ADMIN, ResourcePatients, true},
		{types.ROLE_RECEPTIONIST, ResourcePatients, true},
		{types.ROLE_DOCTOR, ResourcePatients, true},
		{types.ROLE_ADMIN, ResourceDoctors, true},
		{types.ROLE_RECEPTIONIST, ResourceDoctors, false},
		{types.ROLE_DOCTOR, ResourceDoctors, false},
		{types.ROLE_ADMIN, ResourceDoctorSchedules, true},
		{types.ROLE_DOCTOR, ResourceDoctorSchedules, true},
		{types.ROLE_RECEPTIONIST, ResourceDoctorSchedules, false},
		{types.ROLE_ADMIN, ResourceDoctorLeaves, true},
		{types.ROLE_DOCTOR, ResourceDoctorLeaves, true},
		{types.ROLE_RECEPTIONIST, ResourceDoctorLeaves, false},
		{types.ROLE_ADMIN, ResourceAppointments, true},
		{types.ROLE_RECEPTIONIST, ResourceAppointments, true},
		{types.ROLE_DOCTOR, ResourceAppointments, false},
		{types.ROLE_ADMIN, ResourceLabTests, true},
		{types.ROLE_RECEPTIONIST, ResourceLabTests, true},
		{types.ROLE_DOCTOR, ResourceLabTests, true},
		{types.ROLE_ADMIN, ResourceWards, true},
		{types.ROLE_RECEPTIONIST, ResourceBeds, true},
		{types.ROLE_DOCTOR, ResourceBeds, false},
		{types.ROLE_RECEPTIONIST, ResourceBedTransfers, true},
		{types.ROLE_DOCTOR, ResourceBedTransfers, false},
	}
	for _, c := range cases {
		assert.Equal(t, c.allowed, CanWrite(c.role, false, c.resource), "role %s on %s", c.role, c.resource)
	}
}

func TestCanWriteSuperuserOverride(t *testing.T) {
	for _, resource := range []Resource{ResourcePatients, ResourceDoctors, ResourceAppointments, ResourceBedTransfers} {
		assert.True(t, CanWrite(types.ROLE_RECEPTIONIST, true, resource))
	}
}

func TestCanWriteUnknownRole(t *testing.T) {
	assert.False(t, CanWrite(types.Role("janitor"), false, ResourcePatients))
	assert.False(t, CanWrite("", false, ResourceWards))
}

func TestIsAppointmentActor(t *testing.T) {
	assert.True(t, IsAppointmentActor(types.ROLE_ADMIN, false, 3, 9))
	assert.True(t, IsAppointmentActor(types.ROLE_RECEPTIONIST, true, 3, 9))
	assert.True(t, IsAppointmentActor(types.ROLE_DOCTOR, false, 9, 9))
	assert.False(t, IsAppointmentActor(types.ROLE_DOCTOR, false, 3, 9))
	assert.False(t, IsAppointmentActor(types.ROLE_RECEPTIONIST, false, 9, 9))
}
