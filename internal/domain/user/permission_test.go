package user

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestHasPermission(t *testing.T) {
	assert.True(t, HasPermission(RoleAdmin, PermissionSalaryManage))
	assert.True(t, HasPermission(RoleManager, PermissionLeaveApprove))
	assert.False(t, HasPermission(RoleManager, PermissionSalaryView))
	assert.False(t, HasPermission(Role("mechanic"), PermissionEmployeeView))
}

func TestCreateUserRequest_Validate(t *testing.T) {
	req := CreateUserRequest{Email: " Floor@Garage.Test ", Password: "password123", Role: "manager"}
	assert.NoError(t, req.Validate())
	assert.Equal(t, "floor@garage.test", req.Email)

	bad := CreateUserRequest{Email: "nope", Password: "short", Role: "owner"}
	err := bad.Validate()
	if assert.Error(t, err) {
		assert.Contains(t, err.Error(), "email")
		assert.Contains(t, err.Error(), "password")
		assert.Contains(t, err.Error(), "role")
	}
}
