// Package permissions is the permission gate: pure decisions over the
// closed role set, with no I/O. Handlers consult it before touching
// repositories or the check lifecycle.
package permissions

import "github.com/eventops/staffing-backend/internal/models"

// CanSubmitCheck reports whether the role may record credentialing and
// attendance actions.
func CanSubmitCheck(role models.Role) bool {
	switch role {
	case models.RoleAdmin, models.RoleControl:
		return true
	case models.RoleCompany:
		return false
	}
	return false
}

// CanReadChecks mirrors CanSubmitCheck: the check log is an operational
// surface for control and admin.
func CanReadChecks(role models.Role) bool {
	return CanSubmitCheck(role)
}

// CanAdminister reports whether the role may manage companies, users and
// invites.
func CanAdminister(role models.Role) bool {
	switch role {
	case models.RoleAdmin:
		return true
	case models.RoleCompany, models.RoleControl:
		return false
	}
	return false
}

// CanManageStaff reports whether the role may create or edit staff records.
func CanManageStaff(role models.Role) bool {
	switch role {
	case models.RoleAdmin, models.RoleCompany:
		return true
	case models.RoleControl:
		return false
	}
	return false
}

// CanReadAllEvents reports whether the role sees every event regardless of
// company ownership.
func CanReadAllEvents(role models.Role) bool {
	switch role {
	case models.RoleAdmin, models.RoleControl:
		return true
	case models.RoleCompany:
		return false
	}
	return false
}

// CanReadEvent decides event visibility: admin and control see everything,
// company users only events owned by their own company.
func CanReadEvent(user *models.User, eventCompanyID models.NullInt64) bool {
	if CanReadAllEvents(user.Role) {
		return true
	}
	return user.CompanyID.Valid && eventCompanyID.Valid &&
		user.CompanyID.Int64 == eventCompanyID.Int64
}

// OwnsCompanyResource reports whether the user belongs to the given company.
// Admin does not get a bypass here: flows that want one must check the role
// explicitly.
func OwnsCompanyResource(user *models.User, companyID int64) bool {
	return user.CompanyID.Valid && user.CompanyID.Int64 == companyID
}
