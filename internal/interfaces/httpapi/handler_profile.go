package httpapi

import (
	"errors"
	"fmt"
	"mime"
	"net/http"
	"strconv"
	"strings"

	"github.com/valyala/bytebufferpool"

	"github.com/NachoSamo/SamoScore/internal/usecase"
)

var contentTypeExtensions = map[string]string{
	"image/jpeg": "jpg",
	"image/png":  "png",
	"image/webp": "webp",
	"image/gif":  "gif",
}

func (h *Handler) GetProfile(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.GetProfile")
	defer span.End()

	principal, err := requirePrincipal(ctx)
	if err != nil {
		writeError(ctx, w, err)
		return
	}

	item, err := h.profiles.EnsureExists(ctx, principal.UserID, principal.Email)
	if err != nil {
		writeError(ctx, w, err)
		return
	}

	writeSuccess(ctx, w, http.StatusOK, profileToDTO(item))
}

func (h *Handler) UpdateProfile(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.UpdateProfile")
	defer span.End()

	principal, err := requirePrincipal(ctx)
	if err != nil {
		writeError(ctx, w, err)
		return
	}

	var req updateProfileRequest
	if err := h.decodeRequest(ctx, r, &req); err != nil {
		writeError(ctx, w, err)
		return
	}

	item, err := h.profiles.Update(ctx, usecase.UpdateProfileInput{
		UserID:        principal.UserID,
		FullName:      req.FullName,
		FavoriteSport: req.FavoriteSport,
	})
	if err != nil {
		h.logger.WarnContext(ctx, "update profile failed", "user_id", principal.UserID, "error", err)
		writeError(ctx, w, err)
		return
	}

	writeSuccess(ctx, w, http.StatusOK, profileToDTO(item))
}

func (h *Handler) CompleteOnboarding(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.CompleteOnboarding")
	defer span.End()

	principal, err := requirePrincipal(ctx)
	if err != nil {
		writeError(ctx, w, err)
		return
	}

	item, err := h.profiles.CompleteOnboarding(ctx, principal.UserID)
	if err != nil {
		h.logger.WarnContext(ctx, "complete onboarding failed", "user_id", principal.UserID, "error", err)
		writeError(ctx, w, err)
		return
	}

	writeSuccess(ctx, w, http.StatusOK, profileToDTO(item))
}

func (h *Handler) GetAvatar(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.GetAvatar")
	defer span.End()

	principal, err := requirePrincipal(ctx)
	if err != nil {
		writeError(ctx, w, err)
		return
	}

	url, err := h.profiles.AvatarURL(ctx, principal.UserID)
	if err != nil {
		writeError(ctx, w, err)
		return
	}

	writeSuccess(ctx, w, http.StatusOK, map[string]string{"avatar_url": url})
}

// UploadAvatar takes the raw image as the request body. The extension comes
// from ?ext or, failing that, from the Content-Type header.
func (h *Handler) UploadAvatar(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.UploadAvatar")
	defer span.End()

	principal, err := requirePrincipal(ctx)
	if err != nil {
		writeError(ctx, w, err)
		return
	}

	contentType := r.Header.Get("Content-Type")
	if parsed, _, err := mime.ParseMediaType(contentType); err == nil {
		contentType = parsed
	}
	ext := strings.TrimSpace(r.URL.Query().Get("ext"))
	if ext == "" {
		ext = contentTypeExtensions[contentType]
	}

	maxBytes := h.profiles.MaxAvatarBytes()
	buf := bytebufferpool.Get()
	defer bytebufferpool.Put(buf)
	if _, err := buf.ReadFrom(http.MaxBytesReader(w, r.Body, int64(maxBytes))); err != nil {
		var tooLarge *http.MaxBytesError
		if errors.As(err, &tooLarge) {
			writeError(ctx, w, fmt.Errorf("%w: avatar exceeds %d bytes", usecase.ErrInvalidInput, maxBytes))
			return
		}
		writeError(ctx, w, fmt.Errorf("%w: read avatar: %v", usecase.ErrInvalidInput, err))
		return
	}

	item, err := h.profiles.UploadAvatar(ctx, usecase.UploadAvatarInput{
		UserID:      principal.UserID,
		Extension:   ext,
		ContentType: contentType,
		Data:        append([]byte(nil), buf.B...),
	})
	if err != nil {
		h.logger.WarnContext(ctx, "upload avatar failed", "user_id", principal.UserID, "bytes", buf.Len(), "error", err)
		writeError(ctx, w, err)
		return
	}

	writeSuccess(ctx, w, http.StatusOK, profileToDTO(item))
}

func (h *Handler) GetPublicObject(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.GetPublicObject")
	defer span.End()

	obj, err := h.profiles.Object(ctx, r.PathValue("bucket"), r.PathValue("path"))
	if err != nil {
		writeError(ctx, w, err)
		return
	}

	w.Header().Set("Content-Type", obj.ContentType)
	w.Header().Set("Content-Length", strconv.Itoa(len(obj.Data)))
	w.Header().Set("Cache-Control", "public, max-age=3600")
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write(obj.Data)
}
