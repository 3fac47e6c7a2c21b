package internal

import (
	"net/http"

	"fishdata/internal/controllers"
	"fishdata/internal/datasets"
	"fishdata/internal/providers"
)

// InitRoutes registers the authenticated API surface. Data endpoints
// come from the compiled-in dataset registry, one route per dataset
// type.
func InitRoutes(datasetController *controllers.DatasetController, metadataController *controllers.MetadataController) providers.RouterProviderInterface {
	routers := providers.NewRouterProvider()

	for _, ds := range datasets.All() {
		routers.Get("/api/v1/data/"+ds.Endpoint, datasetController.Handle(ds))
	}

	routers.Get("/api/v1/metadata", http.HandlerFunc(metadataController.ListDatasets))
	routers.Get("/api/v1/metadata/countries", http.HandlerFunc(metadataController.ListCountries))
	routers.Get("/api/v1/metadata/{dataset}", http.HandlerFunc(metadataController.GetDataset))
	routers.Get("/api/v1/metadata/{dataset}/fields/{field}", http.HandlerFunc(metadataController.GetField))

	return routers
}
