package providers

import (
	"github.com/samber/do/v2"

	"github.com/accsetupsviewer/server/internal/auth"
	"github.com/accsetupsviewer/server/internal/config"
	"github.com/accsetupsviewer/server/internal/logger"
	"github.com/accsetupsviewer/server/internal/metadata/gosetups"
	"github.com/accsetupsviewer/server/internal/service"
	"github.com/accsetupsviewer/server/internal/validation"
)

// ProvideValidator provides the request validator.
func ProvideValidator(i do.Injector) (*validation.Validator, error) {
	return validation.New(), nil
}

// ProvideSessionService provides the session service.
func ProvideSessionService(i do.Injector) (*service.SessionService, error) {
	storeHandle := do.MustInvoke[*StoreHandle](i)
	tokens := do.MustInvoke[*auth.TokenService](i)
	log := do.MustInvoke[*logger.Logger](i)

	return service.NewSessionService(storeHandle.Store, tokens, log.Component("sessions")), nil
}

// ProvideAuthService provides the authentication service.
func ProvideAuthService(i do.Injector) (*service.AuthService, error) {
	storeHandle := do.MustInvoke[*StoreHandle](i)
	tokens := do.MustInvoke[*auth.TokenService](i)
	sessions := do.MustInvoke[*service.SessionService](i)
	v := do.MustInvoke[*validation.Validator](i)
	log := do.MustInvoke[*logger.Logger](i)

	return service.NewAuthService(storeHandle.Store, tokens, sessions, v, log.Component("auth")), nil
}

// ProvideProfileService provides the nickname service.
func ProvideProfileService(i do.Injector) (*service.ProfileService, error) {
	storeHandle := do.MustInvoke[*StoreHandle](i)
	v := do.MustInvoke[*validation.Validator](i)
	log := do.MustInvoke[*logger.Logger](i)

	return service.NewProfileService(storeHandle.Store, v, log.Component("profiles")), nil
}

// ProvideDashboardService provides the manual setup and lap time service.
func ProvideDashboardService(i do.Injector) (*service.DashboardService, error) {
	storeHandle := do.MustInvoke[*StoreHandle](i)
	profiles := do.MustInvoke[*service.ProfileService](i)
	log := do.MustInvoke[*logger.Logger](i)

	return service.NewDashboardService(storeHandle.Store, profiles, log.Component("dashboard")), nil
}

// ProvideCatalogService provides the cached catalog over the setups repository.
func ProvideCatalogService(i do.Injector) (*service.CatalogService, error) {
	cfg := do.MustInvoke[*config.Config](i)
	source := do.MustInvoke[*GitHubClientHandle](i)
	index := do.MustInvoke[*SearchIndexHandle](i)
	log := do.MustInvoke[*logger.Logger](i)

	return service.NewCatalogService(source.Client, index.SetupIndex, cfg.Catalog.TTL, log.Component("catalog")), nil
}

// ProvideSetupService provides the viewer pipeline.
func ProvideSetupService(i do.Injector) (*service.SetupService, error) {
	catalog := do.MustInvoke[*service.CatalogService](i)
	source := do.MustInvoke[*GitHubClientHandle](i)
	converter := do.MustInvoke[*gosetups.Client](i)
	log := do.MustInvoke[*logger.Logger](i)

	return service.NewSetupService(catalog, source.Client, converter, log.Component("setups")), nil
}
