package main

import (
	"context"

	"github.com/rotisserie/eris"
	"go.uber.org/zap"

	"github.com/sells-group/swissgeo/internal/config"
	"github.com/sells-group/swissgeo/internal/model"
	"github.com/sells-group/swissgeo/internal/raw"
)

// sourceFor converts a configured source to a reader source, preferring an
// explicit path from the command line.
func sourceFor(sc config.SourceConfig, override string) raw.Source {
	path := sc.Path
	if override != "" {
		path = override
	}
	return raw.Source{
		Path:      path,
		Delimiter: sc.DelimiterRune(),
		Charset:   sc.Charset,
		Sheet:     sc.Sheet,
	}
}

// loadModel reads both registers and builds the model.
func loadModel(ctx context.Context, mode string) (*model.Model, error) {
	c := *cfg
	if politicalPath != "" {
		c.Data.Political.Path = politicalPath
	}
	if postalPath != "" {
		c.Data.Postal.Path = postalPath
	}
	if err := c.Validate(mode); err != nil {
		return nil, err
	}

	political, postal, err := raw.LoadAll(ctx,
		sourceFor(c.Data.Political, ""),
		sourceFor(c.Data.Postal, ""),
	)
	if err != nil {
		return nil, eris.Wrap(err, "load registers")
	}

	m := model.Build(political, postal)
	st := m.Stats()
	zap.L().Info("model built",
		zap.Int("political_records", len(political)),
		zap.Int("postal_records", len(postal)),
		zap.Int("cantons", st.Cantons),
		zap.Int("districts", st.Districts),
		zap.Int("political_communities", st.PoliticalCommunities),
		zap.Int("postal_communities", st.PostalCommunities),
	)

	if st.Orphans > 0 {
		zap.L().Warn("postal communities without political community", zap.Int("count", st.Orphans))
		for _, p := range m.Orphans() {
			zap.L().Debug("orphan postal community", zap.String("postal_community", p.String()))
		}
	}

	return m, nil
}
