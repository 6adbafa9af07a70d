package providers

import (
	"github.com/samber/do/v2"

	"github.com/listenupapp/bookwarm/internal/codec"
	"github.com/listenupapp/bookwarm/internal/config"
	"github.com/listenupapp/bookwarm/internal/logger"
	"github.com/listenupapp/bookwarm/internal/service"
)

// ProvideCatalog provides the collection catalog using the configured
// default format.
func ProvideCatalog(i do.Injector) (*service.Catalog, error) {
	cfg := do.MustInvoke[*config.Config](i)
	log := do.MustInvoke[*logger.Logger](i)
	codecs := do.MustInvoke[Codecs](i)

	return service.NewCatalog(codec.Format(cfg.Storage.Format), codecs, log)
}
