package handlers

import "net/http"

// Messages shown on forms. They never carry internal error detail.
const (
	MsgInvalidCredentials   = "Invalid credentials"
	MsgCredentialsRequired  = "Username and password are required"
	MsgUserExists           = "User already exists"
	MsgPasswordTooLong      = "Password must be at most 72 bytes"
	MsgPasswordsRequired    = "Both passwords are required"
	MsgOldPasswordIncorrect = "Old password incorrect"
	MsgPasswordUpdated      = "Password updated successfully"
	MsgResetFieldsRequired  = "Username and new password are required"
	MsgUserNotFound         = "User not found"
	MsgPasswordReset        = "Password reset successfully. You can now log in."
	MsgGeneric              = "An error occurred"
	MsgLoginFailed          = "An error occurred. Please try again."
)

// ErrMessageInternal is the body of every 500 response. Do not expose internal details to clients.
const ErrMessageInternal = "Something went wrong!"

// InternalError writes a plain 500 response.
func InternalError(w http.ResponseWriter) {
	http.Error(w, ErrMessageInternal, http.StatusInternalServerError)
}

// BadForm writes a plain 400 response for an unparsable form body.
func BadForm(w http.ResponseWriter) {
	http.Error(w, "bad form", http.StatusBadRequest)
}
