package repository

import (
	"log/slog"

	"github.com/userverse/userverse/internal/model"
)

// Hooks are lifecycle callbacks around user repository operations.
//
// Hooks are pure side-effect points (logging, auditing, notifications).
// They are NOT allowed to change the outcome of an operation: the
// repository ignores nothing they return and does not let them veto or
// fail a create/update/delete. If a hook needs to reject input, that logic
// belongs in the service layer, not here.
type Hooks interface {
	BeforeCreate(user *model.User)
	AfterCreate(user *model.User)
	BeforeUpdate(id string)
	AfterUpdate(user *model.User)
	BeforeDelete(id string)
	AfterDelete(id string)
}

// NopHooks is the default Hooks implementation: it does nothing.
type NopHooks struct{}

func (NopHooks) BeforeCreate(*model.User) {}
func (NopHooks) AfterCreate(*model.User)  {}
func (NopHooks) BeforeUpdate(string)      {}
func (NopHooks) AfterUpdate(*model.User)  {}
func (NopHooks) BeforeDelete(string)      {}
func (NopHooks) AfterDelete(string)       {}

// LogHooks logs each lifecycle event with slog. Wired in by default at the
// composition root so user mutations show up in the structured log stream.
type LogHooks struct {
	Logger *slog.Logger
}

func (h LogHooks) BeforeCreate(user *model.User) {
	h.Logger.Debug("before creating user", slog.String("email", user.Email))
}

func (h LogHooks) AfterCreate(user *model.User) {
	h.Logger.Info("user created",
		slog.String("id", user.ID),
		slog.String("email", user.Email),
	)
}

func (h LogHooks) BeforeUpdate(id string) {
	h.Logger.Debug("before updating user", slog.String("id", id))
}

func (h LogHooks) AfterUpdate(user *model.User) {
	h.Logger.Info("user updated", slog.String("id", user.ID))
}

func (h LogHooks) BeforeDelete(id string) {
	h.Logger.Debug("before deleting user", slog.String("id", id))
}

func (h LogHooks) AfterDelete(id string) {
	h.Logger.Info("user deleted", slog.String("id", id))
}
