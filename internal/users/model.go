package users

// DB上のユーザ行。password_hash を含むため読み出し形とは別物。
type User struct {
	ID           uint64
	Username     string
	PasswordHash string
	Email        string
	Admin        bool
	Disabled     bool
}
