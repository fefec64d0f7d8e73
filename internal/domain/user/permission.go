package user

type Permission string

const (
	PermissionEmployeeView   Permission = "employee.view"
	PermissionEmployeeManage Permission = "employee.manage"

	PermissionAttendanceView Permission = "attendance.view"

	PermissionLeaveView    Permission = "leave.view"
	PermissionLeaveCreate  Permission = "leave.create"
	PermissionLeaveApprove Permission = "leave.approve"

	PermissionSalaryView   Permission = "salary.view"
	PermissionSalaryManage Permission = "salary.manage"

	PermissionKioskView  Permission = "kiosk.view"
	PermissionUserManage Permission = "user.manage"
)

// RolePermissions maps roles to their permissions
var RolePermissions = map[Role][]Permission{
	RoleAdmin: {
		PermissionEmployeeView,
		PermissionEmployeeManage,
		PermissionAttendanceView,
		PermissionLeaveView,
		PermissionLeaveCreate,
		PermissionLeaveApprove,
		PermissionSalaryView,
		PermissionSalaryManage,
		PermissionKioskView,
		PermissionUserManage,
	},
	RoleManager: {
		PermissionEmployeeView,
		PermissionAttendanceView,
		PermissionLeaveView,
		PermissionLeaveCreate,
		PermissionLeaveApprove,
		PermissionKioskView,
	},
}

// HasPermission checks if a role has a specific permission
func HasPermission(role Role, permission Permission) bool {
	for _, p := range RolePermissions[role] {
		if p == permission {
			return true
		}
	}
	return false
}
