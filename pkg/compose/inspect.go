package compose

import (
	"os"
	"sort"

	"gopkg.in/yaml.v3"

	"github.com/odoo-devkit/odev/pkg/errors"
)

// manifestDoc is the subset of a compose manifest odev reads. Everything
// else is the orchestration tool's business.
type manifestDoc struct {
	Services map[string]struct {
		Image string `yaml:"image"`
	} `yaml:"services"`
	Volumes map[string]yaml.Node `yaml:"volumes"`
}

// Info summarizes a manifest for status reporting
type Info struct {
	Services []string
	Volumes  []string
}

// Inspect parses a manifest and lists its services and named volumes
func Inspect(path string) (*Info, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, errors.Wrapf(err, errors.ErrConfigLoad, "reading manifest %s", path)
	}

	var doc manifestDoc
	if err := yaml.Unmarshal(data, &doc); err != nil {
		return nil, errors.Wrapf(err, errors.ErrConfigParse, "parsing manifest %s", path)
	}

	info := &Info{}
	for name := range doc.Services {
		info.Services = append(info.Services, name)
	}
	for name := range doc.Volumes {
		info.Volumes = append(info.Volumes, name)
	}
	sort.Strings(info.Services)
	sort.Strings(info.Volumes)
	return info, nil
}
