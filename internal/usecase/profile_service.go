package usecase

import (
	"context"
	"fmt"
	"strconv"
	"strings"

	"github.com/jonboulle/clockwork"

	"github.com/NachoSamo/SamoScore/internal/domain/profile"
	"github.com/NachoSamo/SamoScore/internal/domain/storage"
)

var avatarExtensions = map[string]string{
	"jpg":  "image/jpeg",
	"jpeg": "image/jpeg",
	"png":  "image/png",
	"webp": "image/webp",
	"gif":  "image/gif",
}

type ProfileServiceConfig struct {
	// PublicBaseURL prefixes public object paths, e.g. "https://api.samoscore.app".
	PublicBaseURL  string
	MaxAvatarBytes int
	Clock          clockwork.Clock
}

type UpdateProfileInput struct {
	UserID        string
	FullName      *string
	FavoriteSport *string
}

type UploadAvatarInput struct {
	UserID      string
	Extension   string
	ContentType string
	Data        []byte
}

type ProfileService struct {
	profileRepo profile.Repository
	objectRepo  storage.Repository
	cfg         ProfileServiceConfig
}

func NewProfileService(profileRepo profile.Repository, objectRepo storage.Repository, cfg ProfileServiceConfig) *ProfileService {
	if cfg.Clock == nil {
		cfg.Clock = clockwork.NewRealClock()
	}
	if cfg.MaxAvatarBytes <= 0 {
		cfg.MaxAvatarBytes = 5 << 20
	}
	cfg.PublicBaseURL = strings.TrimRight(strings.TrimSpace(cfg.PublicBaseURL), "/")

	return &ProfileService{
		profileRepo: profileRepo,
		objectRepo:  objectRepo,
		cfg:         cfg,
	}
}

func (s *ProfileService) MaxAvatarBytes() int {
	return s.cfg.MaxAvatarBytes
}

func (s *ProfileService) Get(ctx context.Context, userID string) (profile.Profile, error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.ProfileService.Get", principalAttrs(userID)...)
	defer span.End()

	userID = strings.TrimSpace(userID)
	if userID == "" {
		return profile.Profile{}, fmt.Errorf("%w: user id is required", ErrInvalidInput)
	}

	item, ok, err := s.profileRepo.GetByUserID(ctx, userID)
	if err != nil {
		return profile.Profile{}, fmt.Errorf("get profile: %w", err)
	}
	if !ok {
		return profile.Profile{}, fmt.Errorf("%w: profile for user %s", ErrNotFound, userID)
	}
	return item, nil
}

// EnsureExists creates the profile on first sign-in with the email's local
// part as name and onboarding pending. An existing profile is left as is.
func (s *ProfileService) EnsureExists(ctx context.Context, userID, email string) (profile.Profile, error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.ProfileService.EnsureExists", principalAttrs(userID)...)
	defer span.End()

	item, ok, err := s.profileRepo.GetByUserID(ctx, userID)
	if err != nil {
		return profile.Profile{}, fmt.Errorf("get profile: %w", err)
	}
	if ok {
		return item, nil
	}

	now := s.cfg.Clock.Now().UTC()
	item = profile.Profile{
		UserID:                 userID,
		FullName:               profile.DefaultFullName(email),
		HasCompletedOnboarding: false,
		CreatedAt:              now,
		UpdatedAt:              now,
	}
	if err := s.profileRepo.Upsert(ctx, item); err != nil {
		return profile.Profile{}, fmt.Errorf("create profile: %w", err)
	}
	return item, nil
}

func (s *ProfileService) Update(ctx context.Context, input UpdateProfileInput) (profile.Profile, error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.ProfileService.Update", principalAttrs(input.UserID)...)
	defer span.End()

	return s.merge(ctx, input.UserID, func(p *profile.Profile) error {
		if input.FullName != nil {
			name := strings.TrimSpace(*input.FullName)
			if name == "" {
				return fmt.Errorf("%w: full_name cannot be empty", ErrInvalidInput)
			}
			p.FullName = name
		}
		if input.FavoriteSport != nil {
			p.FavoriteSport = strings.TrimSpace(*input.FavoriteSport)
		}
		return nil
	})
}

func (s *ProfileService) CompleteOnboarding(ctx context.Context, userID string) (profile.Profile, error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.ProfileService.CompleteOnboarding", principalAttrs(userID)...)
	defer span.End()

	return s.merge(ctx, userID, func(p *profile.Profile) error {
		p.HasCompletedOnboarding = true
		return nil
	})
}

// UploadAvatar stores the image at {userID}/avatar.{ext}, replacing any
// previous one, and points the profile at a cache-busted public URL.
func (s *ProfileService) UploadAvatar(ctx context.Context, input UploadAvatarInput) (profile.Profile, error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.ProfileService.UploadAvatar", principalAttrs(input.UserID)...)
	defer span.End()

	ext := strings.ToLower(strings.TrimPrefix(strings.TrimSpace(input.Extension), "."))
	contentType, ok := avatarExtensions[ext]
	if !ok {
		return profile.Profile{}, fmt.Errorf("%w: avatar extension %q is not supported", ErrInvalidInput, input.Extension)
	}
	if ct := strings.TrimSpace(input.ContentType); ct != "" {
		if !strings.HasPrefix(ct, "image/") {
			return profile.Profile{}, fmt.Errorf("%w: avatar content type must be an image", ErrInvalidInput)
		}
		contentType = ct
	}
	if len(input.Data) == 0 {
		return profile.Profile{}, fmt.Errorf("%w: avatar is empty", ErrInvalidInput)
	}
	if len(input.Data) > s.cfg.MaxAvatarBytes {
		return profile.Profile{}, fmt.Errorf("%w: avatar exceeds %d bytes", ErrInvalidInput, s.cfg.MaxAvatarBytes)
	}

	userID := strings.TrimSpace(input.UserID)
	if userID == "" {
		return profile.Profile{}, fmt.Errorf("%w: user id is required", ErrInvalidInput)
	}

	now := s.cfg.Clock.Now().UTC()
	objectPath := userID + "/avatar." + ext
	if err := s.objectRepo.Put(ctx, storage.Object{
		Bucket:      storage.AvatarBucket,
		Path:        objectPath,
		ContentType: contentType,
		Data:        input.Data,
		CreatedAt:   now,
		UpdatedAt:   now,
	}); err != nil {
		return profile.Profile{}, fmt.Errorf("store avatar: %w", err)
	}

	url := s.publicURL(storage.AvatarBucket, objectPath) + "?t=" + strconv.FormatInt(now.UnixMilli(), 10)
	return s.merge(ctx, userID, func(p *profile.Profile) error {
		p.AvatarURL = url
		return nil
	})
}

// AvatarURL prefers the profile's stored URL, then the newest object under
// the user's folder, then "".
func (s *ProfileService) AvatarURL(ctx context.Context, userID string) (string, error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.ProfileService.AvatarURL", principalAttrs(userID)...)
	defer span.End()

	item, ok, err := s.profileRepo.GetByUserID(ctx, userID)
	if err != nil {
		return "", fmt.Errorf("get profile: %w", err)
	}
	if ok && strings.TrimSpace(item.AvatarURL) != "" {
		return item.AvatarURL, nil
	}

	obj, found, err := s.objectRepo.LatestByPrefix(ctx, storage.AvatarBucket, userID+"/")
	if err != nil {
		return "", fmt.Errorf("find avatar object: %w", err)
	}
	if !found {
		return "", nil
	}
	return s.publicURL(obj.Bucket, obj.Path), nil
}

func (s *ProfileService) Object(ctx context.Context, bucket, objectPath string) (storage.Object, error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.ProfileService.Object")
	defer span.End()

	cleaned, err := storage.CleanPath(objectPath)
	if err != nil {
		return storage.Object{}, fmt.Errorf("%w: %v", ErrInvalidInput, err)
	}
	obj, ok, err := s.objectRepo.Get(ctx, bucket, cleaned)
	if err != nil {
		return storage.Object{}, fmt.Errorf("get object: %w", err)
	}
	if !ok {
		return storage.Object{}, fmt.Errorf("%w: object %s/%s", ErrNotFound, bucket, cleaned)
	}
	return obj, nil
}

func (s *ProfileService) publicURL(bucket, objectPath string) string {
	return s.cfg.PublicBaseURL + storage.PublicPath(bucket, objectPath)
}

func (s *ProfileService) merge(ctx context.Context, userID string, apply func(*profile.Profile) error) (profile.Profile, error) {
	userID = strings.TrimSpace(userID)
	if userID == "" {
		return profile.Profile{}, fmt.Errorf("%w: user id is required", ErrInvalidInput)
	}

	existing, ok, err := s.profileRepo.GetByUserID(ctx, userID)
	if err != nil {
		return profile.Profile{}, fmt.Errorf("get profile: %w", err)
	}
	if !ok {
		return profile.Profile{}, fmt.Errorf("%w: profile for user %s", ErrNotFound, userID)
	}

	out := existing
	if err := apply(&out); err != nil {
		return profile.Profile{}, err
	}
	out.UpdatedAt = s.cfg.Clock.Now().UTC()
	if err := s.profileRepo.Upsert(ctx, out); err != nil {
		return profile.Profile{}, fmt.Errorf("upsert profile: %w", err)
	}

	saved, ok, err := s.profileRepo.GetByUserID(ctx, userID)
	if err != nil {
		return profile.Profile{}, fmt.Errorf("reload profile: %w", err)
	}
	if !ok {
		return out, nil
	}
	return saved, nil
}
