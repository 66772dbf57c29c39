//go:generate mockgen -source=profile_service.go -destination=mock_profile_service.go -package=service

package service

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/shinyyama/auction-backend/internal/model"
	"github.com/shinyyama/auction-backend/internal/repository"
	"gorm.io/gorm"
)

// Identity is the verified caller as reported by the auth provider.
type Identity struct {
	UID      string
	Name     string
	Email    string
	PhotoURL string
}

type ProfileView struct {
	Profile       model.UserProfile
	LikedByViewer bool
}

type LikeResult struct {
	Liked      bool
	LikesCount int64
}

type ProfileService interface {
	Ensure(ctx context.Context, id Identity) (*model.UserProfile, error)
	Get(ctx context.Context, uid, viewerUID string) (*ProfileView, error)
	ToggleLike(ctx context.Context, profileUID, viewerUID string) (*LikeResult, error)
	SetBanned(ctx context.Context, adminUID, targetUID string, banned bool, reason string) error
	IsAdmin(ctx context.Context, uid string) (bool, error)
	IsBanned(ctx context.Context, uid string) (bool, error)
	DisplayName(ctx context.Context, uid, fallback string) string
	DisplayNames(ctx context.Context, uids []string) (map[string]string, error)
	Search(ctx context.Context, query string, limit int) ([]model.UserProfile, error)
}

type profileService struct {
	repo repository.ProfileRepository
	now  func() time.Time
}

func NewProfileService(repo repository.ProfileRepository) ProfileService {
	return &profileService{repo: repo, now: time.Now}
}

func (s *profileService) Ensure(ctx context.Context, id Identity) (*model.UserProfile, error) {
	if id.UID == "" {
		return nil, ErrForbidden
	}
	name := strings.TrimSpace(id.Name)
	if name == "" && id.Email != "" {
		name = strings.SplitN(id.Email, "@", 2)[0]
	}
	return s.repo.Ensure(ctx, &model.UserProfile{
		UID:         id.UID,
		DisplayName: name,
		Email:       id.Email,
		PhotoURL:    id.PhotoURL,
	})
}

func (s *profileService) Get(ctx context.Context, uid, viewerUID string) (*ProfileView, error) {
	p, err := s.repo.FindByUID(ctx, uid)
	if err != nil {
		return nil, notFound(err)
	}
	view := &ProfileView{Profile: *p}
	if viewerUID != "" && viewerUID != uid {
		liked, err := s.repo.IsLikedBy(ctx, uid, viewerUID)
		if err != nil {
			return nil, err
		}
		view.LikedByViewer = liked
	}
	return view, nil
}

func (s *profileService) ToggleLike(ctx context.Context, profileUID, viewerUID string) (*LikeResult, error) {
	if viewerUID == "" {
		return nil, ErrForbidden
	}
	if viewerUID == profileUID {
		return nil, ErrSelfLike
	}
	liked, count, err := s.repo.ToggleLike(ctx, profileUID, viewerUID)
	if err != nil {
		return nil, notFound(err)
	}
	return &LikeResult{Liked: liked, LikesCount: count}, nil
}

func (s *profileService) SetBanned(ctx context.Context, adminUID, targetUID string, banned bool, reason string) error {
	ok, err := s.IsAdmin(ctx, adminUID)
	if err != nil {
		return err
	}
	if !ok || adminUID == targetUID {
		return ErrForbidden
	}
	if err := s.repo.SetBanned(ctx, targetUID, banned, strings.TrimSpace(reason), adminUID, s.now().UTC()); err != nil {
		return notFound(err)
	}
	return nil
}

func (s *profileService) IsAdmin(ctx context.Context, uid string) (bool, error) {
	p, err := s.lookup(ctx, uid)
	if err != nil || p == nil {
		return false, err
	}
	return p.IsAdmin, nil
}

func (s *profileService) IsBanned(ctx context.Context, uid string) (bool, error) {
	p, err := s.lookup(ctx, uid)
	if err != nil || p == nil {
		return false, err
	}
	return p.Banned, nil
}

// DisplayName prefers the stored profile name over fallback.
func (s *profileService) DisplayName(ctx context.Context, uid, fallback string) string {
	if p, err := s.lookup(ctx, uid); err == nil && p != nil && p.DisplayName != "" {
		return p.DisplayName
	}
	return fallback
}

// DisplayNames maps each known uid with a non-empty name to that name.
func (s *profileService) DisplayNames(ctx context.Context, uids []string) (map[string]string, error) {
	list, err := s.repo.FindByUIDs(ctx, uids)
	if err != nil {
		return nil, err
	}
	names := make(map[string]string, len(list))
	for _, p := range list {
		if p.DisplayName != "" {
			names[p.UID] = p.DisplayName
		}
	}
	return names, nil
}

func (s *profileService) Search(ctx context.Context, query string, limit int) ([]model.UserProfile, error) {
	if strings.TrimSpace(query) == "" {
		return []model.UserProfile{}, nil
	}
	return s.repo.Search(ctx, query, limit)
}

// lookup returns nil without error for unknown users.
func (s *profileService) lookup(ctx context.Context, uid string) (*model.UserProfile, error) {
	if uid == "" {
		return nil, nil
	}
	p, err := s.repo.FindByUID(ctx, uid)
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	return p, err
}
