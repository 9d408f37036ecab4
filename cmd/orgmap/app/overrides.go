package app

import (
	"os"

	"github.com/goccy/go-yaml"

	"github.com/agentstation/orgmap/pkg/errors"
	"github.com/agentstation/orgmap/pkg/social"
	"github.com/agentstation/orgmap/pkg/tickers"
)

// Overrides is the shape of the optional taxonomy/ranking override file:
//
//	ranking:
//	  - NASDAQ
//	  - New York Stock Exchange
//	taxonomy:
//	  - platform: linkedin
//	    domains: [linkedin.com]
type Overrides struct {
	Ranking  tickers.Ranking `yaml:"ranking,omitempty"`
	Taxonomy social.Taxonomy `yaml:"taxonomy,omitempty"`
}

// LoadOverrides reads an override file. An empty file yields empty
// overrides; a missing or malformed file is a configuration error.
func LoadOverrides(path string) (*Overrides, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, errors.NewConfigError("overrides", "read "+path, err)
	}

	var overrides Overrides
	if err := yaml.Unmarshal(data, &overrides); err != nil {
		return nil, errors.NewConfigError("overrides", "parse "+path, err)
	}

	for _, entry := range overrides.Taxonomy {
		if entry.Platform == "" || len(entry.Domains) == 0 {
			return nil, errors.NewConfigError("overrides", "taxonomy entries need a platform and at least one domain", nil)
		}
	}

	return &overrides, nil
}
