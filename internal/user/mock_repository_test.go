package user

import (
	"context"
	"errors"
	"time"
)

type mockRepository struct {
	users      map[int]*User
	nextID     int
	shouldFail bool
}

func newMockRepository() *mockRepository {
	return &mockRepository{users: map[int]*User{}, nextID: 1}
}

func (m *mockRepository) createUser(_ context.Context, user *User) error {
	if m.shouldFail {
		return errors.New("repository error")
	}
	for _, u := range m.users {
		if u.Email == user.Email {
			return ErrEmailAlreadyExists
		}
	}
	user.ID = m.nextID
	user.CreatedAt = time.Now()
	user.UpdatedAt = user.CreatedAt
	stored := *user
	m.users[user.ID] = &stored
	m.nextID++
	return nil
}

func (m *mockRepository) getUserByID(_ context.Context, id int) (*User, error) {
	if m.shouldFail {
		return nil, errors.New("repository error")
	}
	u, ok := m.users[id]
	if !ok {
		return nil, ErrUserNotFound
	}
	return u, nil
}

func (m *mockRepository) getUserByEmail(_ context.Context, email string) (*User, error) {
	if m.shouldFail {
		return nil, errors.New("repository error")
	}
	for _, u := range m.users {
		if u.Email == email {
			return u, nil
		}
	}
	return nil, ErrUserNotFound
}
