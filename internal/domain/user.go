package domain

const (
	RoleAdmin    = "ADMIN"
	RoleUser     = "USER"
	RoleActuator = "ACTUATOR"
)

type User struct {
	Username string `db:"username"`
	Hash     string `db:"password_hash"`
	Role     string `db:"role"`
}
