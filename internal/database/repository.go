package database

type NishaRepository interface {
	Ping() error
	CreateAccount(params CreateAccountParams) (User, error)
	GetAccountById(accountId int) (User, error)
	GetAccountByUsername(username string) (User, error)
	ListAccountsExcept(accountId int) ([]UserWithProfile, error)
	CreateProfile(accountId int) (Profile, error)
	GetOrCreateProfile(accountId int) (Profile, error)
	UpdatePresence(accountId int, online bool) error
	CreateRoom(params CreateRoomParams) (Room, error)
	GetRoomById(roomId int) (Room, error)
	AddRoomMember(roomId, accountId int) error
	ListRoomMembers(roomId int) ([]UserWithProfile, error)
	ListRoomsForAccount(accountId int) ([]Room, error)
	CreateMessage(params CreateMessageParams) (Message, error)
	ListLegacyMessages() ([]Message, error)
	ListRoomMessages(roomId int) ([]Message, error)
	ListAllMessages() ([]Message, error)
}
