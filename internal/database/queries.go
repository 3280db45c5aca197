package database

import (
	"time"
)

func (db *PgNishaRepository) CreateAccount(params CreateAccountParams) (User, error) {
	res := db.conn.QueryRow(
		"INSERT INTO accounts (username, first_name, last_name, password_hash, created_at) "+
			"VALUES ($1, $2, $3, $4, $5) RETURNING id, username, first_name, last_name, created_at",
		params.Username,
		params.FirstName,
		params.LastName,
		params.PasswordHash,
		time.Now().UTC(),
	)

	var u User
	err := res.Scan(
		&u.Id,
		&u.Username,
		&u.FirstName,
		&u.LastName,
		&u.CreatedAt,
	)

	return u, err
}

func (db *PgNishaRepository) GetAccountById(accountId int) (User, error) {
	row := db.conn.QueryRow(
		"SELECT id, username, first_name, last_name, password_hash, created_at FROM accounts "+
			"WHERE id = $1 LIMIT 1",
		accountId,
	)

	var user User
	err := row.Scan(
		&user.Id,
		&user.Username,
		&user.FirstName,
		&user.LastName,
		&user.PasswordHash,
		&user.CreatedAt,
	)

	return user, err
}

func (db *PgNishaRepository) GetAccountByUsername(username string) (User, error) {
	row := db.conn.QueryRow(
		"SELECT id, username, first_name, last_name, password_hash, created_at FROM accounts "+
			"WHERE username = $1 LIMIT 1",
		username,
	)

	var user User
	err := row.Scan(
		&user.Id,
		&user.Username,
		&user.FirstName,
		&user.LastName,
		&user.PasswordHash,
		&user.CreatedAt,
	)

	return user, err
}

// ListAccountsExcept returns every account other than accountId joined
// with its profile when one exists. Pass a zero accountId to list all
// accounts.
func (db *PgNishaRepository) ListAccountsExcept(accountId int) ([]UserWithProfile, error) {
	rows, err := db.conn.Query(
		"SELECT a.id, a.username, a.first_name, a.last_name, p.avatar, p.is_online "+
			"FROM accounts a LEFT JOIN profiles p ON p.account_id = a.id "+
			"WHERE a.id <> $1 ORDER BY a.id",
		accountId,
	)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var users []UserWithProfile
	for rows.Next() {
		var u UserWithProfile
		if err = rows.Scan(&u.Id, &u.Username, &u.FirstName, &u.LastName, &u.Avatar, &u.IsOnline); err != nil {
			break
		}

		users = append(users, u)
	}

	return users, err
}

func (db *PgNishaRepository) CreateProfile(accountId int) (Profile, error) {
	res := db.conn.QueryRow(
		"INSERT INTO profiles (account_id, avatar, status, is_online, last_seen) "+
			"VALUES ($1, $2, $3, FALSE, $4) RETURNING id, account_id, avatar, status, is_online, last_seen",
		accountId,
		DefaultAvatar,
		DefaultStatus,
		time.Now().UTC(),
	)

	var p Profile
	err := res.Scan(
		&p.Id,
		&p.AccountId,
		&p.Avatar,
		&p.Status,
		&p.IsOnline,
		&p.LastSeen,
	)

	return p, err
}

// GetOrCreateProfile returns the account's profile, creating one with
// defaults if the account has none yet.
func (db *PgNishaRepository) GetOrCreateProfile(accountId int) (Profile, error) {
	row := db.conn.QueryRow(
		"SELECT id, account_id, avatar, status, is_online, last_seen FROM profiles "+
			"WHERE account_id = $1 LIMIT 1",
		accountId,
	)

	var p Profile
	err := row.Scan(
		&p.Id,
		&p.AccountId,
		&p.Avatar,
		&p.Status,
		&p.IsOnline,
		&p.LastSeen,
	)
	if err == nil {
		return p, nil
	}

	return db.CreateProfile(accountId)
}

func (db *PgNishaRepository) UpdatePresence(accountId int, online bool) error {
	_, err := db.conn.Exec(
		"UPDATE profiles SET is_online = $2, last_seen = $3 WHERE account_id = $1",
		accountId,
		online,
		time.Now().UTC(),
	)

	return err
}

// CreateRoom inserts the room and adds the creator as its first member
// in a single transaction.
func (db *PgNishaRepository) CreateRoom(params CreateRoomParams) (Room, error) {
	tx, err := db.conn.Begin()
	if err != nil {
		return Room{}, err
	}
	defer func() {
		if err != nil {
			tx.Rollback()
		}
	}()

	res := tx.QueryRow(
		"INSERT INTO rooms (name, description, is_group, created_by, created_at) "+
			"VALUES ($1, $2, $3, $4, $5) RETURNING id, name, description, is_group, created_by, created_at",
		params.Name,
		params.Description,
		params.IsGroup,
		params.CreatedBy,
		time.Now().UTC(),
	)

	var room Room
	err = res.Scan(
		&room.Id,
		&room.Name,
		&room.Description,
		&room.IsGroup,
		&room.CreatedBy,
		&room.CreatedAt,
	)
	if err != nil {
		return Room{}, err
	}

	_, err = tx.Exec(
		"INSERT INTO room_members (room_id, account_id) VALUES ($1, $2) ON CONFLICT DO NOTHING",
		room.Id,
		params.CreatedBy,
	)
	if err != nil {
		return Room{}, err
	}

	if err = tx.Commit(); err != nil {
		return Room{}, err
	}

	return room, err
}

func (db *PgNishaRepository) GetRoomById(roomId int) (Room, error) {
	row := db.conn.QueryRow(
		"SELECT id, name, description, is_group, created_by, created_at FROM rooms "+
			"WHERE id = $1 LIMIT 1",
		roomId,
	)

	var room Room
	err := row.Scan(
		&room.Id,
		&room.Name,
		&room.Description,
		&room.IsGroup,
		&room.CreatedBy,
		&room.CreatedAt,
	)

	return room, err
}

// AddRoomMember is idempotent: joining a room twice leaves membership
// unchanged.
func (db *PgNishaRepository) AddRoomMember(roomId, accountId int) error {
	_, err := db.conn.Exec(
		"INSERT INTO room_members (room_id, account_id) VALUES ($1, $2) ON CONFLICT DO NOTHING",
		roomId,
		accountId,
	)

	return err
}

// ListRoomMembers returns the room's members joined with their profiles
// when one exists, in the same shape as the account directory.
func (db *PgNishaRepository) ListRoomMembers(roomId int) ([]UserWithProfile, error) {
	rows, err := db.conn.Query(
		"SELECT a.id, a.username, a.first_name, a.last_name, p.avatar, p.is_online "+
			"FROM room_members m JOIN accounts a ON m.account_id = a.id "+
			"LEFT JOIN profiles p ON p.account_id = a.id "+
			"WHERE m.room_id = $1 ORDER BY a.id",
		roomId,
	)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var members = make([]UserWithProfile, 0)
	for rows.Next() {
		var member UserWithProfile
		if err = rows.Scan(&member.Id, &member.Username, &member.FirstName, &member.LastName, &member.Avatar, &member.IsOnline); err != nil {
			break
		}

		members = append(members, member)
	}

	return members, err
}

func (db *PgNishaRepository) ListRoomsForAccount(accountId int) ([]Room, error) {
	rows, err := db.conn.Query(
		"SELECT r.id, r.name, r.description, r.is_group, r.created_by, r.created_at "+
			"FROM room_members m JOIN rooms r ON r.id = m.room_id "+
			"WHERE m.account_id = $1 ORDER BY r.created_at DESC",
		accountId,
	)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var rooms []Room
	for rows.Next() {
		var room Room
		if err = rows.Scan(&room.Id, &room.Name, &room.Description, &room.IsGroup, &room.CreatedBy, &room.CreatedAt); err != nil {
			break
		}

		rooms = append(rooms, room)
	}

	return rooms, err
}

func (db *PgNishaRepository) CreateMessage(params CreateMessageParams) (Message, error) {
	res := db.conn.QueryRow(
		"INSERT INTO messages (account_id, username, content, room_id, is_read, created_at) "+
			"VALUES ($1, $2, $3, $4, FALSE, $5) RETURNING id, account_id, username, content, room_id, is_read, created_at",
		params.AccountId,
		params.Username,
		params.Content,
		params.RoomId,
		time.Now().UTC(),
	)

	var msg Message
	err := res.Scan(
		&msg.Id,
		&msg.AccountId,
		&msg.Username,
		&msg.Content,
		&msg.RoomId,
		&msg.IsRead,
		&msg.CreatedAt,
	)

	return msg, err
}

func (db *PgNishaRepository) scanMessages(query string, args ...any) ([]Message, error) {
	rows, err := db.conn.Query(query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var messages = make([]Message, 0)
	for rows.Next() {
		var msg Message
		if err = rows.Scan(&msg.Id, &msg.AccountId, &msg.Username, &msg.Content, &msg.RoomId, &msg.IsRead, &msg.CreatedAt); err != nil {
			break
		}

		messages = append(messages, msg)
	}

	return messages, err
}

// ListLegacyMessages returns messages from the original room-less feed
// in chronological order.
func (db *PgNishaRepository) ListLegacyMessages() ([]Message, error) {
	return db.scanMessages(
		"SELECT id, account_id, username, content, room_id, is_read, created_at FROM messages " +
			"WHERE room_id IS NULL ORDER BY created_at",
	)
}

func (db *PgNishaRepository) ListRoomMessages(roomId int) ([]Message, error) {
	return db.scanMessages(
		"SELECT id, account_id, username, content, room_id, is_read, created_at FROM messages "+
			"WHERE room_id = $1 ORDER BY created_at",
		roomId,
	)
}

func (db *PgNishaRepository) ListAllMessages() ([]Message, error) {
	return db.scanMessages(
		"SELECT id, account_id, username, content, room_id, is_read, created_at FROM messages " +
			"ORDER BY created_at",
	)
}
