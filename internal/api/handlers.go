package api

import (
	"database/sql"
	"errors"
	"net/http"
	"strconv"
	"strings"

	"github.com/nisha-chat/nisha/internal/database"
	"github.com/nisha-chat/nisha/internal/stats"
	"github.com/nisha-chat/nisha/internal/types"
)

const anonymousUsername = "Anonymous"

// result is the standard chat endpoint payload. Validation and
// authorization failures are carried here with a 200 status rather
// than an HTTP error code.
type result struct {
	Success bool   `json:"success"`
	Message string `json:"message,omitempty"`
	Error   string `json:"error,omitempty"`
	RoomId  int    `json:"room_id,omitempty"`
}

func okResult(msg string) result {
	return result{Success: true, Message: msg}
}

func failResult(err string) result {
	return result{Success: false, Error: err}
}

type signupResult struct {
	Success  bool                `json:"success"`
	Redirect string              `json:"redirect,omitempty"`
	Errors   map[string][]string `json:"errors,omitempty"`
}

type messagesResponse struct {
	Messages []types.Message `json:"messages"`
}

type usersResponse struct {
	Users []types.User `json:"users"`
}

func (s *NishaApp) healthCheck(w http.ResponseWriter, _ *http.Request) {
	if err := s.db.Ping(); err != nil {
		s.log.Println("health check:", err)
		errResp := NewInternalServerError(err)
		s.writeJson(w, errResp.StatusCode, errResp)
		return
	}

	w.WriteHeader(http.StatusOK)
	w.Write([]byte("OK"))
}

func (s *NishaApp) sendMessage(w http.ResponseWriter, r *http.Request) {
	userId, ok := UserId(r.Context())
	if !ok {
		s.writeJson(w, http.StatusOK, failResult("Authentication required"))
		return
	}

	if err := r.ParseForm(); err != nil {
		s.writeJson(w, http.StatusOK, failResult(err.Error()))
		return
	}

	content := strings.TrimSpace(r.PostFormValue("message"))
	if content == "" {
		s.writeJson(w, http.StatusOK, failResult("Empty message"))
		return
	}

	account, err := s.db.GetAccountById(userId)
	if err != nil {
		s.log.Println("get account:", err)
		s.writeJson(w, http.StatusOK, failResult(err.Error()))
		return
	}

	// An unknown or malformed room id degrades to the room-less legacy
	// feed rather than failing the send.
	var roomId sql.NullInt64
	if idStr := r.PostFormValue("chat_room_id"); idStr != "" {
		if id, err := strconv.Atoi(idStr); err == nil {
			room, err := s.db.GetRoomById(id)
			if err == nil {
				roomId = sql.NullInt64{Int64: int64(room.Id), Valid: true}
			} else if !errors.Is(err, sql.ErrNoRows) {
				s.log.Println("get room:", err)
				s.writeJson(w, http.StatusOK, failResult(err.Error()))
				return
			}
		}
	}

	params := database.CreateMessageParams{
		AccountId: sql.NullInt64{Int64: int64(account.Id), Valid: true},
		Username:  account.Username,
		Content:   content,
		RoomId:    roomId,
	}

	if _, err := s.db.CreateMessage(params); err != nil {
		s.log.Println("create message:", err)
		s.writeJson(w, http.StatusOK, failResult(err.Error()))
		return
	}

	s.stats.Incr(stats.MessagesSent)
	s.writeJson(w, http.StatusOK, okResult("Message sent"))
}

func (s *NishaApp) getMessages(w http.ResponseWriter, _ *http.Request) {
	dbMessages, err := s.db.ListLegacyMessages()
	if err != nil {
		s.log.Println("list legacy messages:", err)
		s.writeJson(w, http.StatusOK, failResult(err.Error()))
		return
	}

	messages := make([]types.Message, 0, len(dbMessages))
	for _, msg := range dbMessages {
		messages = append(messages, types.Message{
			Username:  msg.Username,
			Content:   msg.Content,
			Timestamp: msg.CreatedAt,
		})
	}

	s.writeJson(w, http.StatusOK, messagesResponse{Messages: messages})
}

func (s *NishaApp) getRoomMessages(w http.ResponseWriter, r *http.Request) {
	roomId, err := strconv.Atoi(r.PathValue("id"))
	if err != nil {
		errResp := NewNotFoundError()
		s.writeJson(w, errResp.StatusCode, errResp)
		return
	}

	room, err := s.db.GetRoomById(roomId)
	if err != nil {
		var errResp *ApiError
		if errors.Is(err, sql.ErrNoRows) {
			errResp = NewNotFoundError()
		} else {
			errResp = NewInternalServerError(err)
		}
		s.writeJson(w, errResp.StatusCode, errResp)
		return
	}

	dbMessages, err := s.db.ListRoomMessages(room.Id)
	if err != nil {
		s.log.Println("list room messages:", err)
		s.writeJson(w, http.StatusOK, failResult(err.Error()))
		return
	}

	messages := make([]types.Message, 0, len(dbMessages))
	for _, msg := range dbMessages {
		m := types.Message{
			Username:  msg.Username,
			Content:   msg.Content,
			Timestamp: msg.CreatedAt,
		}
		if msg.AccountId.Valid {
			senderId := int(msg.AccountId.Int64)
			m.UserId = &senderId
		}

		messages = append(messages, m)
	}

	s.writeJson(w, http.StatusOK, messagesResponse{Messages: messages})
}

func (s *NishaApp) createRoom(w http.ResponseWriter, r *http.Request) {
	userId, ok := UserId(r.Context())
	if !ok {
		s.writeJson(w, http.StatusOK, failResult("Authentication required"))
		return
	}

	if err := r.ParseForm(); err != nil {
		s.writeJson(w, http.StatusOK, failResult(err.Error()))
		return
	}

	name := strings.TrimSpace(r.PostFormValue("name"))
	if name == "" {
		s.writeJson(w, http.StatusOK, failResult("Chat name is required"))
		return
	}

	params := database.CreateRoomParams{
		Name:        name,
		Description: strings.TrimSpace(r.PostFormValue("description")),
		IsGroup:     r.PostFormValue("is_group") == "true",
		CreatedBy:   userId,
	}

	room, err := s.db.CreateRoom(params)
	if err != nil {
		s.log.Println("create room:", err)
		s.writeJson(w, http.StatusOK, failResult(err.Error()))
		return
	}

	s.stats.Incr(stats.RoomsCreated)
	s.writeJson(w, http.StatusOK, result{
		Success: true,
		RoomId:  room.Id,
		Message: "Chat room created successfully",
	})
}

func (s *NishaApp) joinRoom(w http.ResponseWriter, r *http.Request) {
	userId, ok := UserId(r.Context())
	if !ok {
		s.writeJson(w, http.StatusOK, failResult("Authentication required"))
		return
	}

	roomId, err := strconv.Atoi(r.PathValue("id"))
	if err != nil {
		errResp := NewNotFoundError()
		s.writeJson(w, errResp.StatusCode, errResp)
		return
	}

	room, err := s.db.GetRoomById(roomId)
	if err != nil {
		var errResp *ApiError
		if errors.Is(err, sql.ErrNoRows) {
			errResp = NewNotFoundError()
		} else {
			errResp = NewInternalServerError(err)
		}
		s.writeJson(w, errResp.StatusCode, errResp)
		return
	}

	if err := s.db.AddRoomMember(room.Id, userId); err != nil {
		s.log.Println("add room member:", err)
		s.writeJson(w, http.StatusOK, failResult(err.Error()))
		return
	}

	s.stats.Incr(stats.RoomsJoined)
	s.writeJson(w, http.StatusOK, okResult("Joined chat room successfully"))
}

// wireUsers maps directory rows to the wire shape, substituting profile
// defaults for accounts without a profile row.
func wireUsers(accounts []database.UserWithProfile) []types.User {
	users := make([]types.User, 0, len(accounts))
	for _, a := range accounts {
		u := types.User{
			Id:       a.Id,
			Username: a.Username,
			FullName: a.FullName(),
			Avatar:   database.DefaultAvatar,
		}
		if a.Avatar.Valid {
			u.Avatar = a.Avatar.String
		}
		if a.IsOnline.Valid {
			u.IsOnline = a.IsOnline.Bool
		}

		users = append(users, u)
	}

	return users
}

func (s *NishaApp) getUsers(w http.ResponseWriter, r *http.Request) {
	// Anonymous callers have no id to exclude, so they see everyone.
	callerId, _ := UserId(r.Context())

	accounts, err := s.db.ListAccountsExcept(callerId)
	if err != nil {
		s.log.Println("list accounts:", err)
		s.writeJson(w, http.StatusOK, failResult(err.Error()))
		return
	}

	s.writeJson(w, http.StatusOK, usersResponse{Users: wireUsers(accounts)})
}

func (s *NishaApp) getRoomMembers(w http.ResponseWriter, r *http.Request) {
	roomId, err := strconv.Atoi(r.PathValue("id"))
	if err != nil {
		errResp := NewNotFoundError()
		s.writeJson(w, errResp.StatusCode, errResp)
		return
	}

	room, err := s.db.GetRoomById(roomId)
	if err != nil {
		var errResp *ApiError
		if errors.Is(err, sql.ErrNoRows) {
			errResp = NewNotFoundError()
		} else {
			errResp = NewInternalServerError(err)
		}
		s.writeJson(w, errResp.StatusCode, errResp)
		return
	}

	members, err := s.db.ListRoomMembers(room.Id)
	if err != nil {
		s.log.Println("list room members:", err)
		s.writeJson(w, http.StatusOK, failResult(err.Error()))
		return
	}

	s.writeJson(w, http.StatusOK, usersResponse{Users: wireUsers(members)})
}

func (s *NishaApp) signup(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseForm(); err != nil {
		s.writeJson(w, http.StatusOK, failResult(err.Error()))
		return
	}

	username := strings.TrimSpace(r.PostFormValue("username"))
	password1 := r.PostFormValue("password1")
	password2 := r.PostFormValue("password2")

	fieldErrors := make(map[string][]string)
	if username == "" {
		fieldErrors["username"] = append(fieldErrors["username"], "This field is required.")
	}
	if password1 == "" {
		fieldErrors["password1"] = append(fieldErrors["password1"], "This field is required.")
	}
	if password2 == "" {
		fieldErrors["password2"] = append(fieldErrors["password2"], "This field is required.")
	} else if password1 != "" && password1 != password2 {
		fieldErrors["password2"] = append(fieldErrors["password2"], "The two password fields didn't match.")
	}

	if username != "" {
		if _, err := s.db.GetAccountByUsername(username); err == nil {
			fieldErrors["username"] = append(fieldErrors["username"], "A user with that username already exists.")
		} else if !errors.Is(err, sql.ErrNoRows) {
			s.log.Println("get account:", err)
			s.writeJson(w, http.StatusOK, failResult(err.Error()))
			return
		}
	}

	if len(fieldErrors) > 0 {
		s.writeJson(w, http.StatusOK, signupResult{Success: false, Errors: fieldErrors})
		return
	}

	pwdHash, err := hashPassword(password1)
	if err != nil {
		s.writeJson(w, http.StatusOK, failResult(err.Error()))
		return
	}

	account, err := s.db.CreateAccount(database.CreateAccountParams{
		Username:     username,
		PasswordHash: pwdHash,
	})
	if err != nil {
		s.log.Println("create account:", err)
		s.writeJson(w, http.StatusOK, failResult(err.Error()))
		return
	}

	if _, err := s.db.CreateProfile(account.Id); err != nil {
		s.log.Println("create profile:", err)
		s.writeJson(w, http.StatusOK, failResult(err.Error()))
		return
	}

	if err := s.beginSession(w, account.Id); err != nil {
		s.log.Println("begin session:", err)
		s.writeJson(w, http.StatusOK, failResult(err.Error()))
		return
	}

	s.stats.Incr(stats.AccountsCreated)
	s.writeJson(w, http.StatusOK, signupResult{Success: true, Redirect: "/chat/whatsapp/"})
}
