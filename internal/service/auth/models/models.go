package models

// LoginRequest запрос на вход в админку
type LoginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

// LoginResponse ответ с выданным токеном сессии
type LoginResponse struct {
	Token     string       `json:"token"`
	ExpiresIn int          `json:"expiresIn"` // Секунды до истечения
	User      UserResponse `json:"user"`
}

// UserResponse данные сотрудника в ответах
type UserResponse struct {
	ID        int64  `json:"id"`
	CompanyID int64  `json:"companyId"`
	Email     string `json:"email"`
	Name      string `json:"name"`
	Role      string `json:"role"`
}

// Session данные аутентифицированной сессии из токена
type Session struct {
	UserID    int64
	CompanyID int64
	Role      string
	JTI       string
}
