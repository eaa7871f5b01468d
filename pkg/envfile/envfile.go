// Package envfile persists the derived version triple as a flat
// KEY=value file consumed by docker compose. The file is overwritten on
// every write, never merged with prior state.
package envfile

import (
	"fmt"
	"os"
	"strconv"
	"strings"

	"github.com/odoo-devkit/odev/pkg/errors"
	"github.com/odoo-devkit/odev/pkg/versions"
)

// The three keys the orchestration manifest parameterizes on
const (
	KeyOldest = "ODOO_VERSION_OLDEST"
	KeyMiddle = "ODOO_VERSION_MIDDLE"
	KeyLatest = "ODOO_VERSION_LATEST"
)

// Write persists the triple, replacing any previous file
func Write(path string, t versions.Triple) error {
	if !t.Valid() {
		return errors.Newf(errors.ErrInvalidInput, "refusing to persist non-consecutive versions %s", t)
	}

	content := fmt.Sprintf("%s=%d\n%s=%d\n%s=%d\n",
		KeyOldest, t.Oldest,
		KeyMiddle, t.Middle,
		KeyLatest, t.Latest,
	)

	if err := os.WriteFile(path, []byte(content), 0644); err != nil {
		return errors.Wrapf(err, errors.ErrEnvFileWrite, "writing %s", path)
	}
	return nil
}

// Read loads a previously persisted triple. It requires all three keys
// to be present, numeric, and consecutive.
func Read(path string) (versions.Triple, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return versions.Triple{}, errors.Wrapf(err, errors.ErrEnvFileRead, "reading %s", path)
	}

	values := map[string]int{}
	for _, line := range strings.Split(string(data), "\n") {
		line = strings.TrimSpace(line)
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}
		key, value, found := strings.Cut(line, "=")
		if !found {
			continue
		}
		n, err := strconv.Atoi(strings.TrimSpace(value))
		if err != nil {
			return versions.Triple{}, errors.Wrapf(err, errors.ErrEnvFileRead, "%s: non-numeric value for %s", path, key)
		}
		values[strings.TrimSpace(key)] = n
	}

	for _, key := range []string{KeyOldest, KeyMiddle, KeyLatest} {
		if _, ok := values[key]; !ok {
			return versions.Triple{}, errors.Newf(errors.ErrEnvFileRead, "%s: missing key %s", path, key)
		}
	}

	t := versions.Triple{
		Oldest: values[KeyOldest],
		Middle: values[KeyMiddle],
		Latest: values[KeyLatest],
	}
	if !t.Valid() {
		return versions.Triple{}, errors.Newf(errors.ErrEnvFileRead, "%s: versions %s are not consecutive", path, t)
	}
	return t, nil
}
