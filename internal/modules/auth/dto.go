package auth

type RegisterRequest struct {
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required,min=6"`
	Name     string `json:"name" binding:"required"`
}

type LoginRequest struct {
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required"`
}

// UserPublic is the only user projection handlers ever return.
// Password and refresh-token state never leave the service layer.
type UserPublic struct {
	ID    int64  `json:"id"`
	Email string `json:"email"`
	Name  string `json:"name"`
}

// TokenPair carries freshly issued credentials from the service to the
// handler, which turns them into cookies.
type TokenPair struct {
	AccessToken  string
	RefreshToken string
}
