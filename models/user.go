package models

type User struct {
	Username     string `db:"username"`
	PasswordHash string `db:"password"`
	Email        string `db:"email"`
	FirstName    string `db:"first_name"`
	LastName     string `db:"last_name"`
}
