package models

import "fmt"

// Role is the closed set of access levels. Every user holds exactly one.
type Role string

const (
	// RoleAdmin manages the whole platform: companies, users, invites.
	RoleAdmin Role = "admin"
	// RoleCompany manages its own company's staff and events.
	RoleCompany Role = "company"
	// RoleControl operates the event gate: submits and reads checks.
	RoleControl Role = "control"
)

// ParseRole converts a raw string into a Role.
func ParseRole(s string) (Role, error) {
	switch Role(s) {
	case RoleAdmin, RoleCompany, RoleControl:
		return Role(s), nil
	}
	return "", fmt.Errorf("invalid role: %q", s)
}

// Valid reports whether the role belongs to the closed set.
func (r Role) Valid() bool {
	_, err := ParseRole(string(r))
	return err == nil
}

// Status is the shared lifecycle state of projects and events.
type Status string

const (
	StatusOpen    Status = "open"
	StatusClose   Status = "close"
	StatusPending Status = "pending"
)

// ParseStatus converts a raw string into a Status.
func ParseStatus(s string) (Status, error) {
	switch Status(s) {
	case StatusOpen, StatusClose, StatusPending:
		return Status(s), nil
	}
	return "", fmt.Errorf("invalid status: %q", s)
}

// CompanyRole is the part a company plays in an event.
type CompanyRole string

const (
	CompanyRoleProduction CompanyRole = "production"
	CompanyRoleService    CompanyRole = "service"
)

// ParseCompanyRole converts a raw string into a CompanyRole.
func ParseCompanyRole(s string) (CompanyRole, error) {
	switch CompanyRole(s) {
	case CompanyRoleProduction, CompanyRoleService:
		return CompanyRole(s), nil
	}
	return "", fmt.Errorf("invalid company role: %q", s)
}
