package validators

type RegisterRequest struct {
	Name     string `json:"name" validate:"required,min=3,max=15"`
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required,min=8,password"`
	Phone    string `json:"phone" validate:"required,len=10,numeric"`
	Address  string `json:"address" validate:"required,min=5,max=100"`
}

type LoginRequest struct {
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required,min=8"`
}
