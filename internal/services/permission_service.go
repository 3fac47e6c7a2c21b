package services

import (
	"fmt"

	"fishdata/internal/models"
	"fishdata/internal/providers"
)

// PermissionValidator checks a parsed request against a key's
// permission grants. Checks short-circuit on the first violation, in a
// fixed order: allow_all, endpoints, countries, statuses, date window,
// gaul_1, gaul_2, catch_taxon, survey_id, max_limit.
type PermissionValidator struct {
	metrics providers.MetricsProviderInterface
}

func NewPermissionValidator(metrics providers.MetricsProviderInterface) *PermissionValidator {
	return &PermissionValidator{metrics: metrics}
}

func (pv *PermissionValidator) deny(dimension, message string) *models.DomainError {
	pv.metrics.IncPermissionDenied(dimension)
	return models.Forbidden(dimension, message)
}

func (pv *PermissionValidator) Validate(perms *models.Permissions, params *models.DatasetQueryParams, endpointPath string) *models.DomainError {
	if perms.AllowAll {
		return nil
	}

	if endpointPath != "" && perms.Endpoints != nil {
		if !perms.EndpointAllowed(endpointPath) {
			return pv.deny("endpoints", "Access denied: Your API key does not have access to this endpoint")
		}
	}

	if perms.Countries.Restricted() {
		if !perms.Countries.Contains(params.Country) {
			return pv.deny("countries", fmt.Sprintf(
				"Access denied: Your API key cannot access country '%s'. Allowed countries: %s",
				params.Country, perms.Countries.Join(", ")))
		}
	}

	if perms.Statuses.Restricted() {
		if !perms.Statuses.Contains(string(params.Status)) {
			return pv.deny("statuses", fmt.Sprintf(
				"Access denied: Your API key cannot access '%s' data. Allowed statuses: %s",
				params.Status, perms.Statuses.Join(", ")))
		}
	}

	if derr := pv.validateDateWindow(perms, params); derr != nil {
		return derr
	}

	if derr := pv.validateFilterValue("gaul_1", params.Gaul1, perms.Gaul1, "GAUL level 1 code"); derr != nil {
		return derr
	}
	if derr := pv.validateFilterValue("gaul_2", params.Gaul2, perms.Gaul2, "GAUL level 2 code"); derr != nil {
		return derr
	}
	if derr := pv.validateFilterValue("catch_taxon", params.CatchTaxon, perms.CatchTaxon, "species code"); derr != nil {
		return derr
	}
	if derr := pv.validateFilterValue("survey_id", params.SurveyID, perms.SurveyID, "survey ID"); derr != nil {
		return derr
	}

	if params.Limit != nil && perms.MaxLimit != nil {
		if *params.Limit > *perms.MaxLimit {
			return pv.deny("max_limit", fmt.Sprintf(
				"Access denied: Your API key's maximum limit is %d. Requested: %d",
				*perms.MaxLimit, *params.Limit))
		}
	}

	return nil
}

// validateDateWindow enforces the permitted date range. A key with a
// date floor rejects unbounded requests outright: omitting date_from
// would otherwise read past the floor.
func (pv *PermissionValidator) validateDateWindow(perms *models.Permissions, params *models.DatasetQueryParams) *models.DomainError {
	if perms.DateFrom != nil {
		if params.DateFrom == nil {
			return pv.deny("date_window", fmt.Sprintf(
				"Access denied: Your API key requires date_from >= %s", perms.DateFrom))
		}
		if params.DateFrom.Before(perms.DateFrom.Time) {
			return pv.deny("date_window", fmt.Sprintf(
				"Access denied: Your API key cannot query data before %s. Requested: %s",
				perms.DateFrom, params.DateFrom))
		}
	}

	if perms.DateTo != nil {
		if params.DateTo != nil && params.DateTo.After(perms.DateTo.Time) {
			return pv.deny("date_window", fmt.Sprintf(
				"Access denied: Your API key cannot query data after %s. Requested: %s",
				perms.DateTo, params.DateTo))
		}
	}

	return nil
}

func (pv *PermissionValidator) validateFilterValue(dimension string, requested *string, allowed models.StringSet, humanName string) *models.DomainError {
	if requested == nil || !allowed.Restricted() {
		return nil
	}
	if !allowed.Contains(*requested) {
		return pv.deny(dimension, fmt.Sprintf(
			"Access denied: Your API key cannot filter by %s '%s'. Allowed values: %s",
			humanName, *requested, allowed.Join(", ")))
	}
	return nil
}
