package domain

import "time"

// UserRole enumerates coarse roles used for display and triage.
type UserRole string

const (
	RoleCitizen          UserRole = "CITIZEN"
	RoleDepartmentWorker UserRole = "DEPARTMENT_WORKER"
	RoleMunicipalManager UserRole = "MUNICIPAL_MANAGER"
	RoleAdmin            UserRole = "ADMIN"
)

// User is the domain model for reporters and municipal staff. Accounts are
// created by the external identity provider or seed data; this service only
// reads them.
type User struct {
	ID         string
	Email      string
	Name       string
	Role       UserRole
	Department *string
	CreatedAt  time.Time
	UpdatedAt  time.Time
}

// UserProfile is the projection embedded in issue and update responses.
type UserProfile struct {
	ID         string
	Name       string
	Email      string
	Role       UserRole
	Department *string
}

// Profile returns the embeddable projection of the user.
func (u *User) Profile() *UserProfile {
	if u == nil {
		return nil
	}
	return &UserProfile{
		ID:         u.ID,
		Name:       u.Name,
		Email:      u.Email,
		Role:       u.Role,
		Department: u.Department,
	}
}
