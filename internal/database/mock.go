package database

import (
	"github.com/stretchr/testify/mock"
)

type MockNishaRepository struct {
	mock.Mock
}

func (m *MockNishaRepository) Ping() error {
	args := m.Called()
	return args.Error(0)
}
func (m *MockNishaRepository) CreateAccount(params CreateAccountParams) (User, error) {
	args := m.Called(params)
	return args.Get(0).(User), args.Error(1)
}
func (m *MockNishaRepository) GetAccountById(accountId int) (User, error) {
	args := m.Called(accountId)
	return args.Get(0).(User), args.Error(1)
}
func (m *MockNishaRepository) GetAccountByUsername(username string) (User, error) {
	args := m.Called(username)
	return args.Get(0).(User), args.Error(1)
}
func (m *MockNishaRepository) ListAccountsExcept(accountId int) ([]UserWithProfile, error) {
	args := m.Called(accountId)
	return args.Get(0).([]UserWithProfile), args.Error(1)
}
func (m *MockNishaRepository) CreateProfile(accountId int) (Profile, error) {
	args := m.Called(accountId)
	return args.Get(0).(Profile), args.Error(1)
}
func (m *MockNishaRepository) GetOrCreateProfile(accountId int) (Profile, error) {
	args := m.Called(accountId)
	return args.Get(0).(Profile), args.Error(1)
}
func (m *MockNishaRepository) UpdatePresence(accountId int, online bool) error {
	args := m.Called(accountId, online)
	return args.Error(0)
}
func (m *MockNishaRepository) CreateRoom(params CreateRoomParams) (Room, error) {
	args := m.Called(params)
	return args.Get(0).(Room), args.Error(1)
}
func (m *MockNishaRepository) GetRoomById(roomId int) (Room, error) {
	args := m.Called(roomId)
	return args.Get(0).(Room), args.Error(1)
}
func (m *MockNishaRepository) AddRoomMember(roomId, accountId int) error {
	args := m.Called(roomId, accountId)
	return args.Error(0)
}
func (m *MockNishaRepository) ListRoomMembers(roomId int) ([]UserWithProfile, error) {
	args := m.Called(roomId)
	return args.Get(0).([]UserWithProfile), args.Error(1)
}
func (m *MockNishaRepository) ListRoomsForAccount(accountId int) ([]Room, error) {
	args := m.Called(accountId)
	return args.Get(0).([]Room), args.Error(1)
}
func (m *MockNishaRepository) CreateMessage(params CreateMessageParams) (Message, error) {
	args := m.Called(params)
	return args.Get(0).(Message), args.Error(1)
}
func (m *MockNishaRepository) ListLegacyMessages() ([]Message, error) {
	args := m.Called()
	return args.Get(0).([]Message), args.Error(1)
}
func (m *MockNishaRepository) ListRoomMessages(roomId int) ([]Message, error) {
	args := m.Called(roomId)
	return args.Get(0).([]Message), args.Error(1)
}
func (m *MockNishaRepository) ListAllMessages() ([]Message, error) {
	args := m.Called()
	return args.Get(0).([]Message), args.Error(1)
}
