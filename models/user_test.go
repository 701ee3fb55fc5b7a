package models

import (
	"testing"

	"facultypay/workload"

	"github.com/stretchr/testify/assert"
)

func TestUser_FacultyPermissions(t *testing.T) {
	f := &Faculty{ID: 3, Email: "Asha.Patil@college.edu"}
	owner := &User{Role: RoleFaculty, Email: "asha.patil@college.edu"}
	other := &User{Role: RoleFaculty, Email: "someone@college.edu"}
	admin := &User{Role: RoleAdmin, Email: "asha.patil@college.edu"}

	assert.True(t, owner.OwnsFaculty(f))
	assert.True(t, owner.CanViewFaculty(f))
	assert.True(t, owner.CanManageWorkloadFor(f))

	assert.False(t, other.CanViewFaculty(f))
	assert.False(t, other.CanManageWorkloadFor(f))

	assert.True(t, admin.CanViewFaculty(f))
	assert.False(t, admin.CanManageWorkloadFor(f))
	assert.False(t, owner.OwnsFaculty(nil))
}

func TestWorkloadEntry_Reprice(t *testing.T) {
	e := &WorkloadEntry{
		ActivityType: workload.ActivityLab,
		StartTime:    "13:00",
		EndTime:      "15:15",
		DailyPay:     1,
	}
	e.Reprice(workload.DefaultRates())

	assert.Equal(t, 2.25, e.DurationHours)
	assert.Equal(t, int64(400), e.HourlyRate)
	assert.Equal(t, int64(900), e.DailyPay)
	assert.Equal(t, e.DailyPay, e.Calc().DailyPay)
}
