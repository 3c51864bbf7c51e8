package user

import (
	"context"
	"sort"
)

type StubUserRepository struct {
	nextId int
	data   map[int]User
}

func NewStubUserRepository() *StubUserRepository {
	return &StubUserRepository{nextId: 0, data: map[int]User{}}
}

func (s *StubUserRepository) CreateUser(ctx context.Context, user User) (int, error) {
	for _, existing := range s.data {
		if existing.Username == user.Username || existing.Email == user.Email {
			return 0, ErrUserAlreadyExists
		}
	}
	s.nextId++
	user.Id = s.nextId
	s.data[s.nextId] = user
	return s.nextId, nil
}

func (s *StubUserRepository) GetUser(ctx context.Context, id int) (User, error) {
	user, ok := s.data[id]
	if !ok {
		return User{}, ErrUserNotFound
	}
	return user, nil
}

func (s *StubUserRepository) GetUserByUid(ctx context.Context, uid string) (User, error) {
	for _, user := range s.data {
		if user.Uid == uid {
			return user, nil
		}
	}
	return User{}, ErrUserNotFound
}

func (s *StubUserRepository) GetAllUsers(ctx context.Context) ([]User, error) {
	users := make([]User, 0, len(s.data))
	for _, user := range s.data {
		users = append(users, user)
	}
	sort.Slice(users, func(i, j int) bool { return users[i].Id < users[j].Id })
	return users, nil
}

func (s *StubUserRepository) DeleteUser(ctx context.Context, id int) (bool, error) {
	if _, ok := s.data[id]; !ok {
		return false, nil
	}
	delete(s.data, id)
	return true, nil
}

func (s *StubUserRepository) DeleteAllUsers(ctx context.Context) (int, error) {
	count := len(s.data)
	s.data = map[int]User{}
	return count, nil
}

func (s *StubUserRepository) Cleanup() {
	s.nextId = 0
	s.data = map[int]User{}
}
