package models

import "github.com/golang-jwt/jwt/v5"

// Role is a staff role. Public visitors carry no role at all.
type Role string

const (
	// RoleDOS is the Director of Studies: reviews uploads, manages the
	// folder hierarchy and the trash.
	RoleDOS Role = "dos"

	// RoleTeacher uploads documents and manages their own uploads.
	RoleTeacher Role = "teacher"
)

// Actor identifies the authenticated staff member performing an operation.
// Every lifecycle operation takes an explicit actor; services never read
// ambient session state.
type Actor struct {
	ID   string `json:"id"`
	Name string `json:"name"`
	Role Role   `json:"role"`
}

// CanReview reports whether the actor may approve/reject documents,
// purge trash and apply folder templates.
func (a Actor) CanReview() bool {
	return a.Role == RoleDOS
}

// StaffClaims represents the JWT claims the identity provider issues for
// portal staff. The role claim carries "dos" or "teacher".
type StaffClaims struct {
	jwt.RegisteredClaims        // sub, iss, aud, exp, iat, etc.
	Email                string `json:"email"`
	Name                 string `json:"name"`
	Role                 Role   `json:"role"`
}

// Actor converts verified claims into the actor threaded through services.
func (c *StaffClaims) Actor() Actor {
	name := c.Name
	if name == "" {
		name = c.Email
	}
	return Actor{ID: c.Subject, Name: name, Role: c.Role}
}
