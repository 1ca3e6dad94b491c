package controllers

import (
	"net/http"

	"github.com/bfb-software/foodconnect-backend/api/responses"
	"github.com/bfb-software/foodconnect-backend/api/validators"
	"github.com/bfb-software/foodconnect-backend/internal/auth"
	"github.com/bfb-software/foodconnect-backend/pkg/enums"
	pkgerrors "github.com/bfb-software/foodconnect-backend/pkg/errors"
	"github.com/bfb-software/foodconnect-backend/pkg/logger"
)

// AuthSignup creates an account. No role is granted at signup; the first
// role-scoped login grants it.
func AuthSignup(reg auth.RegisterService, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if reg == nil {
			err := pkgerrors.New(pkgerrors.CodeInternal, "auth service unavailable")
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		var body auth.RegisterRequest
		if err := validators.DecodeJSONBody(r, &body); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		if err := reg.Register(r.Context(), body); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		responses.WriteSuccessStatus(w, http.StatusCreated, map[string]any{
			"success": true,
			"message": "Account created successfully!",
		})
	}
}

// AuthLogin wires a role-scoped login endpoint into the HTTP layer. Logging
// in through a role's door grants that role to any valid credential holder.
func AuthLogin(svc auth.Service, role enums.Role, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if svc == nil {
			err := pkgerrors.New(pkgerrors.CodeInternal, "auth service unavailable")
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		var body auth.LoginRequest
		if err := validators.DecodeJSONBody(r, &body); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		result, err := svc.Login(r.Context(), role, body)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		responses.WriteSuccess(w, result)
	}
}
