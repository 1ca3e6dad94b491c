package controllers

import (
	"net/http"
	"time"

	"github.com/bfb-software/foodconnect-backend/api/responses"
	"github.com/bfb-software/foodconnect-backend/internal/kpi"
	pkgerrors "github.com/bfb-software/foodconnect-backend/pkg/errors"
	"github.com/bfb-software/foodconnect-backend/pkg/logger"
)

// SupplierKPIs returns the supplier dashboard aggregates.
func SupplierKPIs(svc kpi.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if svc == nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeInternal, "kpi service unavailable"))
			return
		}

		supplierID, err := actorID(r)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		result, err := svc.SupplierKPIs(r.Context(), supplierID, time.Now().UTC())
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		responses.WriteSuccess(w, result)
	}
}

// RecipientKPIs returns the recipient dashboard aggregates.
func RecipientKPIs(svc kpi.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if svc == nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeInternal, "kpi service unavailable"))
			return
		}

		recipientID, err := actorID(r)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		result, err := svc.RecipientKPIs(r.Context(), recipientID)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		responses.WriteSuccess(w, result)
	}
}
