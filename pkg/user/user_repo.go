package user

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"
	log "github.com/sirupsen/logrus"
)

var ErrUserNotFound = errors.New("user not found")
var ErrUserAlreadyExists = errors.New("user with this username or email already exists")

const uniqueViolation = "23505"

type Repo interface {
	CreateUser(ctx context.Context, user User) (int, error)
	GetUser(ctx context.Context, id int) (User, error)
	GetUserByUid(ctx context.Context, uid string) (User, error)
	GetAllUsers(ctx context.Context) ([]User, error)
	DeleteUser(ctx context.Context, id int) (bool, error)
	DeleteAllUsers(ctx context.Context) (int, error)
}

type UserRepoImpl struct {
	db *pgxpool.Pool
}

func NewUserRepo(db *pgxpool.Pool) *UserRepoImpl {
	return &UserRepoImpl{db: db}
}

func (u *UserRepoImpl) CreateUser(ctx context.Context, user User) (int, error) {
	query := `INSERT INTO users (uid, username, email, password_hash) VALUES ($1, $2, $3, $4) RETURNING id`
	var id int
	err := u.db.QueryRow(ctx, query, user.Uid, user.Username, user.Email, user.PasswordHash).Scan(&id)
	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == uniqueViolation {
			return 0, ErrUserAlreadyExists
		}
		log.Errorf("failed to create user: %v", err)
		return 0, err
	}
	return id, nil
}

func (u *UserRepoImpl) GetUser(ctx context.Context, id int) (User, error) {
	query := `SELECT id, uid, username, email, password_hash FROM users WHERE id = $1`
	return u.getOne(ctx, query, id)
}

func (u *UserRepoImpl) GetUserByUid(ctx context.Context, uid string) (User, error) {
	query := `SELECT id, uid, username, email, password_hash FROM users WHERE uid = $1`
	return u.getOne(ctx, query, uid)
}

func (u *UserRepoImpl) getOne(ctx context.Context, query string, arg any) (User, error) {
	var user User
	err := u.db.QueryRow(ctx, query, arg).Scan(&user.Id, &user.Uid, &user.Username, &user.Email, &user.PasswordHash)
	if errors.Is(err, pgx.ErrNoRows) {
		log.Debugf("user %v not found", arg)
		return User{}, ErrUserNotFound
	} else if err != nil {
		log.Errorf("failed to get user: %v", err)
		return User{}, err
	}
	return user, nil
}

func (u *UserRepoImpl) GetAllUsers(ctx context.Context) ([]User, error) {
	query := `SELECT id, uid, username, email, password_hash FROM users ORDER BY id`
	rows, err := u.db.Query(ctx, query)
	if err != nil {
		err := fmt.Errorf("could not query users: %w", err)
		log.Error(err)
		return nil, err
	}
	defer rows.Close()

	users := make([]User, 0)
	for rows.Next() {
		var user User
		if err := rows.Scan(&user.Id, &user.Uid, &user.Username, &user.Email, &user.PasswordHash); err != nil {
			err := fmt.Errorf("error scanning row: %w", err)
			log.Error(err)
			return nil, err
		}
		users = append(users, user)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating over rows: %w", err)
	}
	return users, nil
}

func (u *UserRepoImpl) DeleteUser(ctx context.Context, id int) (bool, error) {
	result, err := u.db.Exec(ctx, `DELETE FROM users WHERE id = $1`, id)
	if err != nil {
		log.Errorf("failed to delete user %d: %v", id, err)
		return false, err
	}
	return result.RowsAffected() > 0, nil
}

func (u *UserRepoImpl) DeleteAllUsers(ctx context.Context) (int, error) {
	result, err := u.db.Exec(ctx, `DELETE FROM users`)
	if err != nil {
		log.Errorf("failed to delete users: %v", err)
		return 0, err
	}
	return int(result.RowsAffected()), nil
}
