package api

import (
	"github.com/accsetupsviewer/server/internal/search"
	"github.com/accsetupsviewer/server/internal/service"
)

// Services groups the business logic the API server calls into.
type Services struct {
	Auth      *service.AuthService
	Profile   *service.ProfileService
	Dashboard *service.DashboardService
	Catalog   *service.CatalogService
	Setups    *service.SetupService
	Search    *search.SetupIndex // read by the health check, may be nil
}
