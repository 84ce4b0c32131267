package model

type Role string

const (
	RoleStudent    Role = "student"
	RoleInstructor Role = "instructor"
	RoleAdmin      Role = "admin"
)

// Actor аутентифицированный пользователь, полученный от identity provider.
// Ядро не проверяет права само - это делает вызывающий слой.
type Actor struct {
	ID   int64 `json:"id"`
	Role Role  `json:"role"`
}
