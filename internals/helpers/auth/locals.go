// file: internals/helpers/auth/locals.go
package helper

// Kunci Locals hasil hidrasi middleware JWT.
// Controller tidak boleh membaca klaim token langsung — selalu lewat resolver di package ini.
const (
	LocUserID         = "user_id"
	LocOrgID          = "org_id"
	LocActiveSchoolID = "active_school_id"
	LocSchoolRoles    = "school_roles"
	LocRolesGlobal    = "roles_global"
	LocIsOwner        = "is_owner"
)
