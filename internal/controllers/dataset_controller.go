package controllers

import (
	"fmt"
	"net/http"
	"time"

	"fishdata/internal/datasets"
	"fishdata/internal/models"
	"fishdata/internal/providers"
	"fishdata/internal/query"
	"fishdata/internal/services"
)

type DatasetController struct {
	logger  providers.Logger
	service services.DatasetServiceInterface
	audit   services.AuditServiceInterface
}

func NewDatasetController(logger providers.Logger, service services.DatasetServiceInterface, audit services.AuditServiceInterface) *DatasetController {
	return &DatasetController{
		logger:  logger,
		service: service,
		audit:   audit,
	}
}

// Handle builds the request handler for one dataset type. The same
// pipeline serves every registered dataset; only the descriptor
// differs.
func (dc *DatasetController) Handle(ds datasets.Type) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()

		auth, ok := providers.AuthFromContext(r.Context())
		if !ok {
			writeError(w, models.AuthMissing("Missing API key. Include X-API-Key header."))
			return
		}
		clientIP := providers.ClientIP(r)

		params, derr := models.ParseDatasetQuery(r)
		if derr != nil {
			writeError(w, derr)
			return
		}

		status := http.StatusOK
		stream, derr := dc.service.Query(r.Context(), ds, auth, params, r.URL.Path, clientIP)
		if derr != nil {
			status = derr.HTTPStatus()
			writeError(w, derr)
		} else {
			dc.writeResult(w, stream, ds, params)
			stream.Close()
		}

		durationMs := float64(time.Since(start).Microseconds()) / 1000.0
		dc.audit.DataAccess(auth.Name, auth.KeyID, r.URL.Path, r.Method, clientIP, params.QueryMap(), status, durationMs)
	}
}

func (dc *DatasetController) writeResult(w http.ResponseWriter, stream *query.RowStream, ds datasets.Type, params *models.DatasetQueryParams) {
	var err error
	if params.Format == models.FormatJSON {
		w.Header().Set("Content-Type", "application/json")
		err = query.WriteJSON(w, stream)
	} else {
		filename := fmt.Sprintf("%s_%s_%s.csv", ds.Name, params.Country, params.Status)
		w.Header().Set("Content-Type", "text/csv")
		w.Header().Set("Content-Disposition", "attachment; filename="+filename)
		err = query.WriteCSV(w, stream)
	}
	if err != nil {
		// Headers are gone by now, all we can do is log and cut the body short.
		dc.logger.Errorf(providers.TypeApp, "Failed to serialize %s response: %v", ds.Name, err)
	}
}
