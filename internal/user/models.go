package user

import "log/slog"

// User is a persisted account. Password holds the bcrypt hash and is never serialized.
type User struct {
	ID       int
	Email    string
	Password string
	IsActive bool
}

// Response is the only outward shape of a user
type Response struct {
	ID    int    `json:"id"`
	Email string `json:"email"`
}

func (u User) Serialize() Response {
	return Response{
		ID:    u.ID,
		Email: u.Email,
	}
}

// LogValue keeps the password hash out of structured logs
func (u User) LogValue() slog.Value {
	return slog.GroupValue(
		slog.Int("id", u.ID),
		slog.String("email", u.Email),
		slog.Bool("is_active", u.IsActive),
	)
}

type CreateRequest struct {
	Email    string `json:"email" validate:"required,max=120"`
	Password string `json:"password" validate:"required,max=72"`
	IsActive *bool  `json:"is_active"`
}

type ActiveRequest struct {
	IsActive *bool `json:"is_active" validate:"required"`
}
