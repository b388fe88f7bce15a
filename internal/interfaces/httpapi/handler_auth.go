package httpapi

import (
	"net/http"
)

func (h *Handler) SignUp(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.SignUp")
	defer span.End()

	var req signUpRequest
	if err := h.decodeRequest(ctx, r, &req); err != nil {
		writeError(ctx, w, err)
		return
	}

	result, err := h.auth.SignUp(ctx, req.Email, req.Password)
	if err != nil {
		h.logger.WarnContext(ctx, "sign up failed", "error", err)
		writeError(ctx, w, err)
		return
	}

	writeSuccess(ctx, w, http.StatusCreated, authToDTO(result))
}

func (h *Handler) SignIn(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.SignIn")
	defer span.End()

	var req signInRequest
	if err := h.decodeRequest(ctx, r, &req); err != nil {
		writeError(ctx, w, err)
		return
	}

	result, err := h.auth.SignIn(ctx, req.Email, req.Password)
	if err != nil {
		h.logger.InfoContext(ctx, "sign in rejected", "client_ip", clientIP(r), "error", err)
		writeError(ctx, w, err)
		return
	}

	writeSuccess(ctx, w, http.StatusOK, authToDTO(result))
}

func (h *Handler) SignOut(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.SignOut")
	defer span.End()

	principal, err := requirePrincipal(ctx)
	if err != nil {
		writeError(ctx, w, err)
		return
	}

	if err := h.auth.SignOut(ctx, accessTokenFromContext(ctx)); err != nil {
		h.logger.WarnContext(ctx, "sign out failed", "user_id", principal.UserID, "error", err)
		writeError(ctx, w, err)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}

func (h *Handler) GetSession(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.GetSession")
	defer span.End()

	principal, err := requirePrincipal(ctx)
	if err != nil {
		writeError(ctx, w, err)
		return
	}

	item, err := h.profiles.EnsureExists(ctx, principal.UserID, principal.Email)
	if err != nil {
		h.logger.WarnContext(ctx, "load session profile failed", "user_id", principal.UserID, "error", err)
		writeError(ctx, w, err)
		return
	}

	writeSuccess(ctx, w, http.StatusOK, sessionDTO{
		User:    principalToDTO(principal),
		Profile: profileToDTO(item),
	})
}
