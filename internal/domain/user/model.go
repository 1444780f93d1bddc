package user

import "time"

type User struct {
	ID        int
	Login     string
	Password  string // bcrypt-хэш
	Name      string
	CreatedAt time.Time
}

type BaseRequest struct {
	Login    string `json:"login" minLength:"3" maxLength:"32"`
	Password string `json:"password" minLength:"8" maxLength:"72"`
}

// Profile - то, что пользователь видит на странице профиля.
type Profile struct {
	ID        int       `json:"id"`
	Login     string    `json:"login"`
	Name      string    `json:"name"`
	CreatedAt time.Time `json:"created_at"`
}

type SaveNameRequest struct {
	Name string `json:"name" maxLength:"64" doc:"Отображаемое имя"`
}
