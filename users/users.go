package users

import (
	"encoding/json"
	"fmt"
)

// ID is a user identifier. The backend has served both string and numeric
// ids over time, so decoding tolerates either.
type ID string

func (id *ID) UnmarshalJSON(data []byte) error {
	if len(data) > 0 && data[0] == '"' {
		var s string
		if err := json.Unmarshal(data, &s); err != nil {
			return err
		}
		*id = ID(s)
		return nil
	}
	var n json.Number
	if err := json.Unmarshal(data, &n); err != nil {
		return fmt.Errorf("user id must be a string or number: %w", err)
	}
	*id = ID(n.String())
	return nil
}

func (id ID) String() string {
	return string(id)
}

// RoleType represents a user role within a business account
type RoleType string

const (
	RoleBusinessOwner RoleType = "business_owner" // Full access to the business account
	RoleAdmin         RoleType = "admin"          // Full access, granted by the owner
	RoleStaff         RoleType = "staff"          // Access limited to granted permissions
	RoleAccountant    RoleType = "accountant"     // Read access to financial data
)

// StatusType represents the account status of a user
type StatusType string

const (
	StatusActive    StatusType = "active"
	StatusInvited   StatusType = "invited"
	StatusSuspended StatusType = "suspended"
)

// Profile holds the user's personal details
type Profile struct {
	FirstName string `json:"firstName,omitempty"`
	LastName  string `json:"lastName,omitempty"`
	Phone     string `json:"phone,omitempty"`
}

// User is the authenticated identity returned by the backend. It is replaced
// wholesale on login/register and patched on profile update.
type User struct {
	ID          ID         `json:"id,omitempty"`          // Unique identifier for the user
	Email       string     `json:"email,omitempty"`       // User's email address
	Role        RoleType   `json:"role,omitempty"`        // Role within the business
	Permissions []string   `json:"permissions,omitempty"` // Granted permission keys, e.g. "invoices:write"
	Profile     Profile    `json:"profile,omitempty"`     // Personal details
	Status      StatusType `json:"status,omitempty"`      // Account status
}

// FullName returns the user's display name built from the profile
func (u *User) FullName() string {
	switch {
	case u.Profile.FirstName == "" && u.Profile.LastName == "":
		return u.Email
	case u.Profile.LastName == "":
		return u.Profile.FirstName
	default:
		return u.Profile.FirstName + " " + u.Profile.LastName
	}
}

// IsElevated returns true for roles that bypass permission checks
func (u *User) IsElevated() bool {
	return u.Role == RoleBusinessOwner || u.Role == RoleAdmin
}

// HasPermission checks if the user holds a specific permission key
func (u *User) HasPermission(key string) bool {
	for _, p := range u.Permissions {
		if p == key {
			return true
		}
	}
	return false
}

// HasPermissions checks if the user's permission set is a superset of required
func (u *User) HasPermissions(required []string) bool {
	for _, key := range required {
		if !u.HasPermission(key) {
			return false
		}
	}
	return true
}

// Merge shallow-merges a partial update into the user, field by field.
// Zero-valued fields in the partial leave the current value untouched.
func (u *User) Merge(partial User) {
	if partial.ID != "" {
		u.ID = partial.ID
	}
	if partial.Email != "" {
		u.Email = partial.Email
	}
	if partial.Role != "" {
		u.Role = partial.Role
	}
	if partial.Permissions != nil {
		u.Permissions = partial.Permissions
	}
	if partial.Status != "" {
		u.Status = partial.Status
	}
	if partial.Profile.FirstName != "" {
		u.Profile.FirstName = partial.Profile.FirstName
	}
	if partial.Profile.LastName != "" {
		u.Profile.LastName = partial.Profile.LastName
	}
	if partial.Profile.Phone != "" {
		u.Profile.Phone = partial.Profile.Phone
	}
}
