package providers

import (
	"github.com/samber/do/v2"

	"github.com/emilyynorton/NotreDameRMP/internal/cache"
	"github.com/emilyynorton/NotreDameRMP/internal/config"
	"github.com/emilyynorton/NotreDameRMP/internal/logger"
	"github.com/emilyynorton/NotreDameRMP/internal/rmp"
	"github.com/emilyynorton/NotreDameRMP/internal/service"
)

// ProvideRatingsClient provides the ratings service GraphQL client.
func ProvideRatingsClient(i do.Injector) (*rmp.Client, error) {
	cfg := do.MustInvoke[*config.Config](i)
	log := do.MustInvoke[*logger.Logger](i)

	var opts []rmp.Option
	if cfg.Ratings.Endpoint != "" {
		opts = append(opts, rmp.WithEndpoint(cfg.Ratings.Endpoint))
	}

	return rmp.New(log.Logger, cfg.Ratings.AuthToken, opts...), nil
}

// ProvideLookupService provides the instructor lookup service.
func ProvideLookupService(i do.Injector) (*service.LookupService, error) {
	cfg := do.MustInvoke[*config.Config](i)
	log := do.MustInvoke[*logger.Logger](i)
	client := do.MustInvoke[*rmp.Client](i)
	resultCache := do.MustInvoke[*cache.ResultCache](i)
	indexHandle := do.MustInvoke[*SearchIndexHandle](i)

	svc := service.NewLookupService(service.Config{
		Searcher:   client,
		Cache:      resultCache,
		Index:      indexHandle.Index,
		Logger:     log.Logger,
		SchoolID:   rmp.EncodeSchoolID(cfg.School.LegacyID),
		SchoolName: cfg.School.NameFragment,
	})

	log.Info("Lookup service ready",
		"school_id", cfg.School.LegacyID,
		"school_name", cfg.School.NameFragment,
	)

	return svc, nil
}
