package entity

type UserStatus int16

const (
	// UserStatusUnknown is mean status is not known / not set.
	UserStatusUnknown UserStatus = 0

	// UserStatusActive mean user is allowed to use the app.
	UserStatusActive UserStatus = 1

	// UserStatusInactive mean user is not currently active (e.g., deactivated, closed).
	UserStatusInactive UserStatus = 2

	// UserStatusBanned mean user is blocked from using the app (policy/abuse/etc).
	UserStatusBanned UserStatus = 3
)

func (us UserStatus) String() string {
	switch us {
	case UserStatusActive:
		return "active"
	case UserStatusInactive:
		return "inactive"
	case UserStatusBanned:
		return "banned"
	default:
		return "unknown"
	}
}

// OtpType classifies what a one-time code authorizes.
type OtpType string

const (
	// OtpTypeResetPassword authorizes a password reset.
	OtpTypeResetPassword OtpType = "reset_password"
)

func (t OtpType) String() string {
	return string(t)
}

// RoleUser is the default role assigned at registration.
const RoleUser = "user"
