package service

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/userverse/userverse/internal/apperror"
	"github.com/userverse/userverse/internal/model"
	"github.com/userverse/userverse/internal/repository"
)

// RepoFetcher pulls repository metadata for a code-hosting username.
// Implemented by github.Client; tests substitute a fake.
type RepoFetcher interface {
	FetchRepos(ctx context.Context, gitUserName string) ([]model.RepoInsight, error)
}

// PatchInput is the request payload for PATCH /users/{id}. Nil pointers
// mean "field not supplied" — distinct from supplied-but-empty.
type PatchInput struct {
	UserName    *string `json:"userName"`
	GitUserName *string `json:"gitUserName"`
}

// UserService implements the profile surface: listing, lookup, and the
// patch flow including the synchronous repository-insight refresh.
type UserService struct {
	users   *repository.UserRepository
	fetcher RepoFetcher
	logger  *slog.Logger
}

// NewUserService creates a UserService.
func NewUserService(users *repository.UserRepository, fetcher RepoFetcher, logger *slog.Logger) *UserService {
	return &UserService{
		users:   users,
		fetcher: fetcher,
		logger:  logger,
	}
}

// List returns the public view of every user.
func (s *UserService) List() []model.PublicUser {
	users := s.users.FindAll()
	public := make([]model.PublicUser, 0, len(users))
	for _, u := range users {
		public = append(public, u.Public())
	}
	return public
}

// Get returns the public view of one user.
func (s *UserService) Get(id string) (model.PublicUser, error) {
	user, ok := s.users.FindByID(id)
	if !ok {
		return model.PublicUser{}, apperror.NotFound("user", id)
	}
	return user.Public(), nil
}

// Patch updates userName and/or gitUserName on a user.
//
// ALL-OR-NOTHING:
// Every check runs before anything is written. If gitUserName is supplied,
// the external fetch happens up front too — on fetch failure the whole
// patch aborts and a userName supplied in the same call is NOT persisted.
// Only once validation, the uniqueness re-check, and the fetch have all
// succeeded is a single store update applied. A supplied gitUserName
// replaces repoInsights wholesale with the fetch result; there is no
// incremental sync.
func (s *UserService) Patch(ctx context.Context, id string, in PatchInput) (model.PublicUser, error) {
	if in.UserName == nil && in.GitUserName == nil {
		return model.PublicUser{}, apperror.ValidationFailed("body",
			"at least one of userName or gitUserName is required")
	}

	if _, ok := s.users.FindByID(id); !ok {
		return model.PublicUser{}, apperror.NotFound("user", id)
	}

	if in.UserName != nil {
		name := *in.UserName
		if len(name) < minUserNameLen || len(name) > maxUserNameLen {
			return model.PublicUser{}, apperror.ValidationFailed("userName",
				fmt.Sprintf("userName must be between %d and %d characters", minUserNameLen, maxUserNameLen))
		}
		// Unique among all OTHER users — patching your own name to its
		// current value is fine.
		if existing, ok := s.users.FindByUsername(name); ok && existing.ID != id {
			return model.PublicUser{}, apperror.Conflict("User with this username already exists")
		}
	}

	var insights []model.RepoInsight
	if in.GitUserName != nil {
		fetched, err := s.fetcher.FetchRepos(ctx, *in.GitUserName)
		if err != nil {
			s.logger.Warn("repository insight fetch failed",
				slog.String("userID", id),
				slog.String("gitUserName", *in.GitUserName),
				slog.String("error", err.Error()),
			)
			return model.PublicUser{}, apperror.Upstream(err.Error())
		}
		insights = fetched
	}

	user, ok := s.users.Update(id, func(u *model.User) {
		if in.UserName != nil {
			u.UserName = *in.UserName
		}
		if in.GitUserName != nil {
			u.GitUserName = *in.GitUserName
			u.RepoInsights = insights
		}
	})
	if !ok {
		return model.PublicUser{}, apperror.NotFound("user", id)
	}

	return user.Public(), nil
}
