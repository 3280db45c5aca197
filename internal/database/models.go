package database

import (
	"database/sql"
	"strings"
	"time"
)

const (
	DefaultAvatar = "\U0001F464"
	DefaultStatus = "Available"
)

type User struct {
	Id           int
	Username     string
	FirstName    string
	LastName     string
	PasswordHash string
	CreatedAt    time.Time
}

// FullName returns the user's first and last name joined, falling back
// to the username when neither is set.
func (u User) FullName() string {
	name := strings.TrimSpace(u.FirstName + " " + u.LastName)
	if name == "" {
		return u.Username
	}
	return name
}

type Profile struct {
	Id        int
	AccountId int
	Avatar    string
	Status    string
	IsOnline  bool
	LastSeen  time.Time
}

type Room struct {
	Id          int
	Name        string
	Description string
	IsGroup     bool
	CreatedBy   int
	CreatedAt   time.Time
}

type Message struct {
	Id        int
	AccountId sql.NullInt64
	Username  string
	Content   string
	RoomId    sql.NullInt64
	IsRead    bool
	CreatedAt time.Time
}

// UserWithProfile is the directory listing row: an account joined with
// its profile, which may be absent.
type UserWithProfile struct {
	User
	Avatar   sql.NullString
	IsOnline sql.NullBool
}

type CreateAccountParams struct {
	Username     string
	FirstName    string
	LastName     string
	PasswordHash string
}

type CreateRoomParams struct {
	Name        string
	Description string
	IsGroup     bool
	CreatedBy   int
}

type CreateMessageParams struct {
	AccountId sql.NullInt64
	Username  string
	Content   string
	RoomId    sql.NullInt64
}
