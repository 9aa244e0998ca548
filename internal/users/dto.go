package users

import "storekeeper-backend/internal/platform/rest"

// 読み出し形。password_hash は絶対に出さない。
type UserResponse struct {
	ID       uint64 `json:"id"`
	Username string `json:"username"`
	Email    string `json:"email"`
	Admin    bool   `json:"admin"`
	Disabled bool   `json:"disabled"`
}

func (u UserResponse) ResourceID() uint64 { return u.ID }

type CreateUserRequest struct {
	Username string `json:"username"`
	Password string `json:"password"`
	Email    string `json:"email"`
	Admin    bool   `json:"admin"`
	Disabled bool   `json:"disabled"`
}

func (r CreateUserRequest) Validate() *rest.Error {
	return rest.Rules{
		"username": {rest.Required(r.Username), rest.MaxLen(r.Username, 30)},
		"password": {rest.Required(r.Password)},
		"email":    {rest.Required(r.Email), rest.Email(r.Email), rest.MaxLen(r.Email, 50)},
	}.Validate()
}

// 部分更新。nil のフィールドは触らない。
type UpdateUserRequest struct {
	Username *string `json:"username"`
	Password *string `json:"password"`
	Email    *string `json:"email"`
	Admin    *bool   `json:"admin"`
	Disabled *bool   `json:"disabled"`
}

func (r UpdateUserRequest) Validate() *rest.Error {
	return rest.Rules{
		"username": {rest.IfSet(r.Username, rest.Required), rest.IfSet(r.Username, func(v string) rest.Check { return rest.MaxLen(v, 30) })},
		"password": {rest.IfSet(r.Password, rest.Required)},
		"email":    {rest.IfSet(r.Email, rest.Email), rest.IfSet(r.Email, func(v string) rest.Check { return rest.MaxLen(v, 50) })},
	}.Validate()
}

func ToResponse(u *User) *UserResponse {
	return &UserResponse{
		ID:       u.ID,
		Username: u.Username,
		Email:    u.Email,
		Admin:    u.Admin,
		Disabled: u.Disabled,
	}
}
