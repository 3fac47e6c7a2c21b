package services

import (
	"context"
	"fmt"
	"strings"

	"fishdata/internal/datasets"
	"fishdata/internal/models"
	"fishdata/internal/providers"
	"fishdata/internal/query"
	"fishdata/internal/storage"
)

type DatasetServiceInterface interface {
	Query(ctx context.Context, ds datasets.Type, auth *providers.AuthInfo, params *models.DatasetQueryParams, endpointPath, clientIP string) (*query.RowStream, *models.DomainError)
}

// DatasetService ties the request pipeline together: permission
// validation, snapshot resolution and query execution, with audit
// events emitted for every permission decision.
type DatasetService struct {
	validator *PermissionValidator
	resolver  storage.SnapshotResolverInterface
	engine    query.EngineInterface
	audit     AuditServiceInterface
	logger    providers.Logger
}

func NewDatasetService(validator *PermissionValidator, resolver storage.SnapshotResolverInterface, engine query.EngineInterface, audit AuditServiceInterface, logger providers.Logger) DatasetServiceInterface {
	return &DatasetService{
		validator: validator,
		resolver:  resolver,
		engine:    engine,
		audit:     audit,
		logger:    logger,
	}
}

func (s *DatasetService) Query(ctx context.Context, ds datasets.Type, auth *providers.AuthInfo, params *models.DatasetQueryParams, endpointPath, clientIP string) (*query.RowStream, *models.DomainError) {
	queryMap := params.QueryMap()

	if derr := s.validator.Validate(&auth.Config.Permissions, params, endpointPath); derr != nil {
		s.audit.PermissionCheck(auth.Name, auth.KeyID, endpointPath, clientIP, queryMap, false, derr.Message)
		s.logger.Warnf(providers.TypeApp, "Permission denied for %s: %s", auth.Name, derr.Message)
		return nil, derr
	}
	s.audit.PermissionCheck(auth.Name, auth.KeyID, endpointPath, clientIP, queryMap, true, "")

	projection, derr := resolveColumns(params, ds)
	if derr != nil {
		return nil, derr
	}

	localPath, derr := s.resolver.Resolve(ctx, params.Country, params.Status)
	if derr != nil {
		return nil, derr
	}

	filters := query.Filters{
		DateColumn: ds.DateColumn,
		DateFrom:   params.DateFrom,
		DateTo:     params.DateTo,
		Gaul1:      params.Gaul1,
		Gaul2:      params.Gaul2,
		CatchTaxon: params.CatchTaxon,
		SurveyID:   params.SurveyID,
	}

	limit := 0
	if params.Limit != nil {
		limit = *params.Limit
	}

	return s.engine.Execute(ctx, localPath, projection, filters, limit)
}

// resolveColumns turns the fields/scope parameters into an explicit
// projection. An explicit field list takes precedence over a scope
// name; neither present means the full row shape.
func resolveColumns(params *models.DatasetQueryParams, ds datasets.Type) ([]string, *models.DomainError) {
	if fields := params.FieldList(); fields != nil {
		return fields, nil
	}

	if params.Scope != "" {
		columns, ok := datasets.ScopeColumns(params.Scope, ds.Name)
		if !ok {
			available := datasets.AvailableScopes(ds.Name)
			return nil, models.BadRequest(fmt.Sprintf(
				"Invalid scope '%s' for dataset type '%s'. Available scopes: %s",
				params.Scope, ds.Name, strings.Join(available, ", ")))
		}
		return columns, nil
	}

	return nil, nil
}
