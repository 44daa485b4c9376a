package service

import (
	"context"
	"errors"
	"time"

	"github.com/sirupsen/logrus"
	"gorm.io/gorm"

	"librarium/apperr"
	"librarium/internals/auth"
	"librarium/internals/models"
	"librarium/internals/repository"
)

const maxListLimit = 100

type RegisterInput struct {
	Login    string
	Password string
	Email    string
	IsAdmin  bool
}

type UpdateUserInput struct {
	Login    string
	Password string
	Email    string
	IsAdmin  *bool
}

type UserSearch struct {
	ID     uint
	Login  string
	Email  string
	Limit  int
	Offset int
}

// UserPage is the paginated envelope for the admin user listing.
type UserPage struct {
	Total int64
	Page  int
	Size  int
	Users []models.User
}

// AccountService manages user accounts. Credential hashing and token
// issuance are delegated to the access gateway.
type AccountService struct {
	db      *gorm.DB
	gateway *auth.Gateway
	log     *logrus.Logger
}

func NewAccountService(db *gorm.DB, gateway *auth.Gateway, log *logrus.Logger) *AccountService {
	return &AccountService{db: db, gateway: gateway, log: log}
}

// Register creates an account and issues its first bearer token. Logins are
// unique; a duplicate fails with Conflict.
func (s *AccountService) Register(ctx context.Context, in RegisterInput) (*models.User, string, error) {
	users := repository.NewUserRepository(s.db.WithContext(ctx))

	exists, err := users.ExistsByLogin(in.Login)
	if err != nil {
		return nil, "", asAppError("check login", err)
	}
	if exists {
		return nil, "", apperr.New(apperr.Conflict, "user already exists")
	}

	hash, err := auth.HashPassword(in.Password)
	if err != nil {
		return nil, "", asAppError("hash password", err)
	}

	user := &models.User{
		Login:        in.Login,
		PasswordHash: hash,
		Email:        in.Email,
		IsAdmin:      in.IsAdmin,
	}
	if err := users.Create(user); err != nil {
		return nil, "", asAppError("create user", err)
	}

	token, err := s.gateway.Issue(ctx, user.Login, user.IsAdmin)
	if err != nil {
		return nil, "", asAppError("issue token", err)
	}

	s.log.WithField("login", user.Login).Info("user registered")
	return user, token, nil
}

// Login checks the credentials and returns a fresh bearer token. Mismatches
// are reported as Validation so the endpoint answers 400, not 401.
func (s *AccountService) Login(ctx context.Context, login, password string) (string, error) {
	user, err := s.userByLogin(ctx, login)
	if err != nil {
		if apperr.IsKind(err, apperr.NotFound) {
			return "", apperr.New(apperr.Validation, "authentication error, incorrect credentials")
		}
		return "", err
	}

	if err := auth.CheckPassword(user.PasswordHash, password); err != nil {
		return "", apperr.New(apperr.Validation, "authentication error, incorrect credentials")
	}

	token, err := s.gateway.Issue(ctx, user.Login, user.IsAdmin)
	if err != nil {
		return "", asAppError("issue token", err)
	}

	s.log.WithField("login", login).Info("user logged in")
	return token, nil
}

// UserByLogin resolves the account behind a verified bearer credential.
func (s *AccountService) UserByLogin(ctx context.Context, login string) (*models.User, error) {
	return s.userByLogin(ctx, login)
}

func (s *AccountService) userByLogin(ctx context.Context, login string) (*models.User, error) {
	user, err := repository.NewUserRepository(s.db.WithContext(ctx)).FindByLogin(login)
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, apperr.New(apperr.NotFound, "user not found")
	}
	if err != nil {
		return nil, asAppError("find user", err)
	}
	return user, nil
}

// Update edits a user by id (admin operation). Taking over another user's
// login fails with Conflict; a set password is rehashed.
func (s *AccountService) Update(ctx context.Context, id uint, in UpdateUserInput) (*models.User, error) {
	users := repository.NewUserRepository(s.db.WithContext(ctx))

	user, err := users.FindByID(id)
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, apperr.New(apperr.NotFound, "user not found")
	}
	if err != nil {
		return nil, asAppError("find user", err)
	}

	inUse, err := users.LoginInUse(in.Login, user.ID)
	if err != nil {
		return nil, asAppError("check login", err)
	}
	if inUse {
		return nil, apperr.New(apperr.Conflict, "login already in use")
	}

	user.Login = in.Login
	user.Email = in.Email
	if in.Password != "" {
		hash, err := auth.HashPassword(in.Password)
		if err != nil {
			return nil, asAppError("hash password", err)
		}
		user.PasswordHash = hash
	}
	if in.IsAdmin != nil {
		user.IsAdmin = *in.IsAdmin
	}
	user.UpdatedAt = time.Now()

	if err := users.Save(user); err != nil {
		return nil, asAppError("update user", err)
	}
	return user, nil
}

// UpdateSelf lets an authenticated user edit their own account. The admin
// flag is not touchable here.
func (s *AccountService) UpdateSelf(ctx context.Context, userID uint, in UpdateUserInput) (*models.User, error) {
	in.IsAdmin = nil
	return s.Update(ctx, userID, in)
}

func (s *AccountService) Delete(ctx context.Context, id uint) error {
	users := repository.NewUserRepository(s.db.WithContext(ctx))

	user, err := users.FindByID(id)
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return apperr.New(apperr.NotFound, "user not found")
	}
	if err != nil {
		return asAppError("find user", err)
	}
	if err := users.Delete(user); err != nil {
		return asAppError("delete user", err)
	}

	s.log.WithField("user_id", id).Info("user deleted")
	return nil
}

// List searches accounts with pagination and returns them with their owned
// books (authors resolved) for the admin listing.
func (s *AccountService) List(ctx context.Context, q UserSearch) (*UserPage, error) {
	if q.Limit <= 0 {
		q.Limit = 10
	}
	if q.Limit > maxListLimit {
		return nil, apperr.Newf(apperr.Validation, "limit must be less than or equal to %d", maxListLimit)
	}
	if q.Offset < 0 {
		return nil, apperr.New(apperr.Validation, "offset must be non-negative")
	}

	users := repository.NewUserRepository(s.db.WithContext(ctx))

	total, err := users.Count()
	if err != nil {
		return nil, asAppError("count users", err)
	}

	found, err := users.Search(repository.UserFilter{
		ID:     q.ID,
		Login:  q.Login,
		Email:  q.Email,
		Limit:  q.Limit,
		Offset: q.Offset,
	})
	if err != nil {
		return nil, asAppError("search users", err)
	}

	return &UserPage{
		Total: total,
		Page:  q.Offset/q.Limit + 1,
		Size:  q.Limit,
		Users: found,
	}, nil
}
