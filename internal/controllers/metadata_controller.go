package controllers

import (
	"fmt"
	"net/http"
	"strings"

	json "github.com/goccy/go-json"

	"fishdata/internal/datasets"
	"fishdata/internal/models"
	"fishdata/internal/providers"
	"fishdata/internal/storage"
)

// MetadataController serves discovery endpoints: field-level metadata
// so callers can find columns, types, units and allowed values without
// pulling data, and the list of countries with published snapshots.
// Responses change rarely, so they cache aggressively.
type MetadataController struct {
	logger   providers.Logger
	cache    providers.CacheProviderInterface
	resolver storage.SnapshotResolverInterface
}

func NewMetadataController(logger providers.Logger, cache providers.CacheProviderInterface, resolver storage.SnapshotResolverInterface) *MetadataController {
	return &MetadataController{
		logger:   logger,
		cache:    cache,
		resolver: resolver,
	}
}

func (mc *MetadataController) serveFromCacheOrCompute(w http.ResponseWriter, cacheKey string, compute func() (any, *models.DomainError)) {
	if data, ok := mc.cache.Get(cacheKey); ok {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write(data)
		return
	}

	result, derr := compute()
	if derr != nil {
		writeError(w, derr)
		return
	}

	gson, err := json.Marshal(result)
	if err != nil {
		http.Error(w, "Internal Server Error", http.StatusInternalServerError)
		return
	}

	mc.cache.Set(cacheKey, gson)

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write(gson)
}

func (mc *MetadataController) ListDatasets(w http.ResponseWriter, r *http.Request) {
	mc.serveFromCacheOrCompute(w, "metadata:types", func() (any, *models.DomainError) {
		names := datasets.Names()
		mc.logger.Infof(providers.TypeApp, "Listed %d dataset types: %s", len(names), strings.Join(names, ", "))
		return map[string]any{"dataset_types": names}, nil
	})
}

// ListCountries reports which country folders hold snapshots.
// Publication lag is bounded by the cache TTL.
func (mc *MetadataController) ListCountries(w http.ResponseWriter, r *http.Request) {
	mc.serveFromCacheOrCompute(w, "metadata:countries", func() (any, *models.DomainError) {
		countries, err := mc.resolver.ListCountries(r.Context())
		if err != nil {
			return nil, models.QueryFailed("failed to list available countries", err)
		}
		if countries == nil {
			countries = []string{}
		}
		return map[string]any{"countries": countries}, nil
	})
}

func (mc *MetadataController) GetDataset(w http.ResponseWriter, r *http.Request) {
	datasetType := r.PathValue("dataset")
	scope := strings.TrimSpace(r.URL.Query().Get("scope"))

	mc.serveFromCacheOrCompute(w, "metadata:"+datasetType+":"+scope, func() (any, *models.DomainError) {
		if _, ok := datasets.Get(datasetType); !ok {
			return nil, models.NotFound(fmt.Sprintf(
				"Dataset type '%s' not found. Available types: %s",
				datasetType, strings.Join(datasets.Names(), ", ")))
		}

		var fields map[string]datasets.FieldMetadata
		if scope != "" {
			scoped, ok := datasets.FieldsForScope(scope, datasetType)
			if !ok {
				return nil, models.BadRequest(fmt.Sprintf(
					"Invalid scope '%s' for dataset type '%s'. Available scopes: %s",
					scope, datasetType, strings.Join(datasets.AvailableScopes(datasetType), ", ")))
			}
			fields = scoped
		} else {
			fields = datasets.Fields(datasetType)
		}

		return map[string]any{
			"dataset_type": datasetType,
			"fields":       fields,
		}, nil
	})
}

func (mc *MetadataController) GetField(w http.ResponseWriter, r *http.Request) {
	datasetType := r.PathValue("dataset")
	fieldName := r.PathValue("field")

	mc.serveFromCacheOrCompute(w, "metadata:"+datasetType+":field:"+fieldName, func() (any, *models.DomainError) {
		if _, ok := datasets.Get(datasetType); !ok {
			return nil, models.NotFound(fmt.Sprintf(
				"Dataset type '%s' not found. Available types: %s",
				datasetType, strings.Join(datasets.Names(), ", ")))
		}

		field, ok := datasets.Field(fieldName, datasetType)
		if !ok {
			return nil, models.NotFound(fmt.Sprintf(
				"Field '%s' not found in dataset type '%s'. Available fields: %s",
				fieldName, datasetType, strings.Join(datasets.FieldNames(datasetType), ", ")))
		}
		return field, nil
	})
}
