package constants

const (
	ViewData          = "view_data"
	ManageInvestments = "manage_investments"
	ManageStandards   = "manage_standards"
	GenerateRecords   = "generate_records"
	EditRecords       = "edit_records"
	ClearRecords      = "clear_records"
	ManageMembers     = "manage_members"
	AssignMember      = "assign_member"
	ViewReports       = "view_reports"
)

// PermissionRoles maps each permission to the roles allowed to perform it.
var PermissionRoles = map[string][]string{
	ViewData:          {Viewer, Manager, Admin, Superadmin},
	ManageInvestments: {Manager, Admin, Superadmin},
	ManageStandards:   {Manager, Admin, Superadmin},
	GenerateRecords:   {Manager, Admin, Superadmin},
	EditRecords:       {Manager, Admin, Superadmin},
	ClearRecords:      {Admin, Superadmin},
	ManageMembers:     {Admin, Superadmin},
	AssignMember:      {Admin, Superadmin},
	ViewReports:       {Viewer, Manager, Admin, Superadmin},
}

// AllowedRole returns true if role is in the list of allowed roles for the permission.
func AllowedRole(permission, role string) bool {
	roles, ok := PermissionRoles[permission]
	if !ok {
		return false
	}
	for _, r := range roles {
		if r == role {
			return true
		}
	}
	return false
}
