package inbound

type RegisterRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
	FullName string `json:"full_name"`
}

type RegisterResponse struct{}

func (RegisterResponse) Code() string {
	return "REGISTERED"
}

func (RegisterResponse) Message() string {
	return "Registration successful. You can now sign in."
}

type LoginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

type LoginResponse struct {
	AccessToken string `json:"access_token"`
	TokenType   string `json:"token_type"`
	ExpiresIn   int64  `json:"expires_in"`
}

func (LoginResponse) Code() string {
	return "LOGIN_SUCCESS"
}

func (LoginResponse) Message() string {
	return "Login successful"
}

type ProfileResponse struct {
	ID       int64  `json:"id,string"`
	Email    string `json:"email"`
	FullName string `json:"full_name"`
	Role     string `json:"role"`
	Status   string `json:"status"`
}

type PasswordForgotRequest struct {
	Email string `json:"email"`
}

type PasswordForgotResponse struct{}

func (PasswordForgotResponse) Code() string {
	return "OTP_SENT"
}

func (PasswordForgotResponse) Message() string {
	return "An OTP has been sent to your email address"
}

type PasswordResetRequest struct {
	Email       string `json:"email"`
	Otp         string `json:"otp"`
	NewPassword string `json:"new_password"`
}

type PasswordResetResponse struct{}

func (PasswordResetResponse) Code() string {
	return "PASSWORD_RESET_SUCCESS"
}

func (PasswordResetResponse) Message() string {
	return "Your password has been reset successfully"
}
