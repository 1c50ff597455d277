package httpapi

import (
	"encoding/json"
	"errors"
	"net/http"

	"go.uber.org/zap"

	"github.com/credgate/credgate"
	"github.com/credgate/credgate/middleware"
)

// Fixed response messages. These are part of the API contract.
const (
	msgUsernameRequired = "Username is required."
	msgDuplicateUser    = "Username already taken."
	msgWeakPassword     = "Password does not satisfy the password policy."
	msgUserNotFound     = "User not found."
	msgWrongPassword    = "Wrong password."
	msgAuthenticated    = "Authentication successful."
	msgBadRequest       = "Invalid request body."
	msgInternal         = "Something went wrong."

	// redactedException is the fixed exception value on 500 responses.
	// Underlying error text goes to the log, never to the caller.
	redactedException = "internal error"
)

// Handlers carries the pipeline and logger shared by every route.
type Handlers struct {
	pipe *credgate.Pipeline
	log  *zap.Logger
}

// NewHandlers builds the handler set. A nil logger is replaced with a no-op
// logger.
func NewHandlers(pipe *credgate.Pipeline, logger *zap.Logger) *Handlers {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Handlers{pipe: pipe, log: logger}
}

type createRequest struct {
	Username string `json:"username"`
	Password string `json:"password"`
	Email    string `json:"email"`
}

type authenticateRequest struct {
	Username string `json:"username"`
	Password string `json:"password"`
}

// Create handles POST /create.
func (h *Handlers) Create(w http.ResponseWriter, r *http.Request) {
	var req createRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeJSON(w, http.StatusBadRequest, map[string]any{
			"success": false,
			"message": msgBadRequest,
		})
		return
	}

	err := h.pipe.Register(r.Context(), credgate.RegisterInput{
		Username: req.Username,
		Password: req.Password,
		Email:    req.Email,
	})

	var policyErr *credgate.PolicyError
	switch {
	case err == nil:
		writeJSON(w, http.StatusOK, map[string]any{"success": true})
	case errors.Is(err, credgate.ErrUsernameRequired):
		writeJSON(w, http.StatusForbidden, map[string]any{
			"success": false,
			"message": msgUsernameRequired,
		})
	case errors.Is(err, credgate.ErrDuplicateUser):
		writeJSON(w, http.StatusForbidden, map[string]any{
			"success": false,
			"message": msgDuplicateUser,
		})
	case errors.As(err, &policyErr):
		writeJSON(w, http.StatusNotAcceptable, map[string]any{
			"success": false,
			"message": msgWeakPassword,
			"policy":  policyErr.Violations,
		})
	default:
		h.log.Error("create failed", zap.Error(err))
		writeInternal(w)
	}
}

// Authenticate handles POST /authenticate.
func (h *Handlers) Authenticate(w http.ResponseWriter, r *http.Request) {
	var req authenticateRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeJSON(w, http.StatusBadRequest, map[string]any{
			"success": false,
			"message": msgBadRequest,
		})
		return
	}

	result, err := h.pipe.Login(r.Context(), req.Username, req.Password)
	switch {
	case err == nil:
		writeJSON(w, http.StatusOK, map[string]any{
			"success": true,
			"message": msgAuthenticated,
			"token":   result.Token,
		})
	case errors.Is(err, credgate.ErrUserNotFound):
		writeJSON(w, http.StatusForbidden, map[string]any{
			"success": false,
			"message": msgUserNotFound,
		})
	case errors.Is(err, credgate.ErrWrongPassword):
		writeJSON(w, http.StatusForbidden, map[string]any{
			"success": false,
			"message": msgWrongPassword,
		})
	default:
		h.log.Error("authenticate failed", zap.Error(err), zap.String("username", req.Username))
		writeInternal(w)
	}
}

// Check handles GET /api/check: the decoded claims, verbatim.
func (h *Handlers) Check(w http.ResponseWriter, r *http.Request) {
	claims, ok := middleware.ClaimsFromContext(r.Context())
	if !ok {
		// Only reachable if the route was mounted without RequireToken.
		h.log.Error("check route reached without claims")
		writeInternal(w)
		return
	}
	writeJSON(w, http.StatusOK, claims)
}

// Users handles GET /api/users: usernames only, never digests.
func (h *Handlers) Users(w http.ResponseWriter, r *http.Request) {
	names, err := h.pipe.Usernames(r.Context())
	if err != nil {
		h.log.Error("user listing failed", zap.Error(err))
		writeInternal(w)
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{
		"success": true,
		"users":   names,
	})
}

func writeJSON(w http.ResponseWriter, status int, body any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(body)
}

func writeInternal(w http.ResponseWriter) {
	writeJSON(w, http.StatusInternalServerError, map[string]any{
		"success":   false,
		"message":   msgInternal,
		"exception": redactedException,
	})
}
