package models

// Profile is the authenticated user's own record as the backend reports it.
type Profile struct {
	ID          string `json:"id"`
	DisplayName string `json:"full_name"`
	Email       string `json:"email"`
	Role        Role   `json:"role"`
}

// RegisterRequest is the POST /auth/register payload. New accounts are
// always patients; provider accounts are provisioned by the clinic.
type RegisterRequest struct {
	FullName string `json:"full_name" binding:"required"`
	Email    string `json:"email" binding:"required"`
	Password string `json:"password" binding:"required"`
	Phone    string `json:"phone"`
}

// ChangePasswordRequest is the PUT /users/me/change-password payload.
type ChangePasswordRequest struct {
	OldPassword string `json:"old_password" binding:"required"`
	NewPassword string `json:"new_password" binding:"required"`
}
