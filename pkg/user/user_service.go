package user

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/budgetbite/budgetbite/internal/event_bus"
	"github.com/google/uuid"
	log "github.com/sirupsen/logrus"
)

var ErrUserDataInvalid = errors.New("invalid user data")

type Service interface {
	CreateUser(ctx context.Context, user User) (User, error)
	GetUser(ctx context.Context, id int) (User, error)
	GetUserByUid(ctx context.Context, uid string) (User, error)
	GetAllUsers(ctx context.Context) ([]User, error)
	DeleteUser(ctx context.Context, id int) (bool, error)
	DeleteAllUsers(ctx context.Context) (int, error)
}

// Provider resolves users by id. Implemented by Service; narrower so other packages can stub it.
type Provider interface {
	GetUser(ctx context.Context, id int) (User, error)
}

type UserServiceImpl struct {
	repo     Repo
	eventBus *event_bus.EventBus
}

func NewUserService(repo Repo, eventBus *event_bus.EventBus) *UserServiceImpl {
	return &UserServiceImpl{repo: repo, eventBus: eventBus}
}

func (u *UserServiceImpl) CreateUser(ctx context.Context, user User) (User, error) {
	user.Username = strings.TrimSpace(user.Username)
	user.Email = strings.TrimSpace(user.Email)
	if user.Username == "" || user.Email == "" || user.PasswordHash == "" {
		return User{}, ErrUserDataInvalid
	}
	if !strings.Contains(user.Email, "@") {
		return User{}, fmt.Errorf("%w: email %q is not valid", ErrUserDataInvalid, user.Email)
	}
	user.Uid = uuid.NewString()

	id, err := u.repo.CreateUser(ctx, user)
	if err != nil {
		return User{}, err
	}
	user.Id = id
	return user, nil
}

func (u *UserServiceImpl) GetUser(ctx context.Context, id int) (User, error) {
	return u.repo.GetUser(ctx, id)
}

func (u *UserServiceImpl) GetUserByUid(ctx context.Context, uid string) (User, error) {
	return u.repo.GetUserByUid(ctx, uid)
}

func (u *UserServiceImpl) GetAllUsers(ctx context.Context) ([]User, error) {
	return u.repo.GetAllUsers(ctx)
}

// DeleteUser lets subscribers of event_bus.UserDeleting release their references first; the user
// is kept when any of them fails.
func (u *UserServiceImpl) DeleteUser(ctx context.Context, id int) (bool, error) {
	if _, err := u.repo.GetUser(ctx, id); err != nil {
		if errors.Is(err, ErrUserNotFound) {
			return false, nil
		}
		return false, err
	}
	if err := u.publishDeleting(ctx, id); err != nil {
		return false, err
	}
	return u.repo.DeleteUser(ctx, id)
}

func (u *UserServiceImpl) DeleteAllUsers(ctx context.Context) (int, error) {
	users, err := u.repo.GetAllUsers(ctx)
	if err != nil {
		return 0, err
	}
	for _, user := range users {
		if err := u.publishDeleting(ctx, user.Id); err != nil {
			return 0, err
		}
	}
	deleted, err := u.repo.DeleteAllUsers(ctx)
	if err != nil {
		return 0, err
	}
	log.Infof("deleted %d users", deleted)
	return deleted, nil
}

func (u *UserServiceImpl) publishDeleting(ctx context.Context, id int) error {
	err := u.eventBus.Publish(event_bus.NewEvent(ctx, event_bus.UserDeleting, event_bus.UserDeletingPayload{UserId: id}))
	if err != nil {
		return fmt.Errorf("failed to release references of user %d: %w", id, err)
	}
	return nil
}
