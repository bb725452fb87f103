// Package repository provides typed CRUD over the generic store for user
// records, plus the lifecycle hooks and password scheme seams.
//
// The repository performs NO uniqueness checks — email/username uniqueness
// is enforced by the auth service before Create is called. Keeping the
// repository dumb means every caller sees the same simple contract: the
// operation either happens or returns not-found.
package repository

import (
	"time"

	"github.com/userverse/userverse/internal/model"
	"github.com/userverse/userverse/internal/store"
)

// UserRepository wraps one store of users with lifecycle hooks and the
// configured password scheme.
type UserRepository struct {
	store     *store.Store[*model.User]
	hooks     Hooks
	passwords PasswordScheme
	now       func() time.Time
}

// NewUserRepository creates a UserRepository over the given store.
// Passing nil hooks or a nil scheme selects NopHooks / PlainScheme.
func NewUserRepository(s *store.Store[*model.User], hooks Hooks, scheme PasswordScheme) *UserRepository {
	if hooks == nil {
		hooks = NopHooks{}
	}
	if scheme == nil {
		scheme = PlainScheme{}
	}
	return &UserRepository{
		store:     s,
		hooks:     hooks,
		passwords: scheme,
		now:       time.Now,
	}
}

// CreateInput carries the fields callers supply for a new user.
type CreateInput struct {
	Email    string
	UserName string
	Password string
}

// Create stores a new user, stamping createdAt = updatedAt = now.
// The password passes through the configured scheme before storage.
func (r *UserRepository) Create(in CreateInput) (*model.User, error) {
	stored, err := r.passwords.Store(in.Password)
	if err != nil {
		return nil, err
	}

	now := r.now()
	user := &model.User{
		Email:     in.Email,
		UserName:  in.UserName,
		Password:  stored,
		CreatedAt: now,
		UpdatedAt: now,
	}

	r.hooks.BeforeCreate(user)
	user = r.store.Insert(user)
	r.hooks.AfterCreate(user)
	return user, nil
}

// FindByID returns the user or false.
func (r *UserRepository) FindByID(id string) (*model.User, bool) {
	return r.store.FindByID(id)
}

// FindByEmail does an exact, case-sensitive match on email.
func (r *UserRepository) FindByEmail(email string) (*model.User, bool) {
	return r.store.FindOne(func(u *model.User) bool { return u.Email == email })
}

// FindByUsername does an exact, case-sensitive match on userName.
func (r *UserRepository) FindByUsername(userName string) (*model.User, bool) {
	return r.store.FindOne(func(u *model.User) bool { return u.UserName == userName })
}

// FindAll returns every user in insertion order.
func (r *UserRepository) FindAll() []*model.User {
	return r.store.All()
}

// Update applies mutate to the user and stamps updatedAt.
// Returns false if no user has the given id; hooks still run before the
// lookup (they are side-effect only and cannot change the outcome).
func (r *UserRepository) Update(id string, mutate func(*model.User)) (*model.User, bool) {
	r.hooks.BeforeUpdate(id)
	user, ok := r.store.Update(id, func(u *model.User) {
		mutate(u)
		u.UpdatedAt = r.now()
	})
	if !ok {
		return nil, false
	}
	r.hooks.AfterUpdate(user)
	return user, true
}

// Delete removes the user and reports whether it existed.
// No HTTP route calls this; it exists for completeness and for operators
// driving the repository directly.
func (r *UserRepository) Delete(id string) bool {
	r.hooks.BeforeDelete(id)
	ok := r.store.Delete(id)
	if ok {
		r.hooks.AfterDelete(id)
	}
	return ok
}

// VerifyCredentials returns the user whose email and password both match.
//
// An unknown email and a wrong password are deliberately indistinguishable
// to the caller — both return (nil, false) — so this path cannot be used
// to probe which emails are registered.
func (r *UserRepository) VerifyCredentials(email, password string) (*model.User, bool) {
	user, ok := r.FindByEmail(email)
	if !ok {
		return nil, false
	}
	if !r.passwords.Compare(user.Password, password) {
		return nil, false
	}
	return user, true
}

// SetClock overrides the timestamp source. Test helper.
func (r *UserRepository) SetClock(now func() time.Time) {
	r.now = now
}
