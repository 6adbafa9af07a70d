package providers

import (
	"github.com/samber/do/v2"

	"github.com/listenupapp/bookwarm/internal/codec"
	"github.com/listenupapp/bookwarm/internal/config"
	"github.com/listenupapp/bookwarm/internal/logger"
)

// Codecs is every registered collection codec, one per format.
type Codecs []codec.Codec

// ProvideCodecs provides a codec for each supported format, all storing
// files under the configured base path.
func ProvideCodecs(i do.Injector) (Codecs, error) {
	cfg := do.MustInvoke[*config.Config](i)
	log := do.MustInvoke[*logger.Logger](i)

	formats := codec.Formats()
	codecs := make(Codecs, 0, len(formats))
	for _, f := range formats {
		cd, err := codec.New(f, cfg.Storage.BasePath, log.With("codec", string(f)))
		if err != nil {
			return nil, err
		}
		codecs = append(codecs, cd)
	}
	return codecs, nil
}
