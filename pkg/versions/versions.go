// Package versions derives the three consecutive Odoo major versions
// tracked by a development environment from the upstream repository's
// default branch name (e.g. "18.0" -> 16, 17, 18).
package versions

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"strconv"
	"time"

	"github.com/odoo-devkit/odev/pkg/errors"
	"github.com/odoo-devkit/odev/pkg/logging"
)

// Triple holds three consecutive major versions.
// Invariant: Latest == Middle+1 == Oldest+2, all non-negative.
type Triple struct {
	Oldest int
	Middle int
	Latest int
}

// Values returns the versions oldest-first
func (t Triple) Values() [3]int {
	return [3]int{t.Oldest, t.Middle, t.Latest}
}

// String renders the triple for logs and status output
func (t Triple) String() string {
	return fmt.Sprintf("%d/%d/%d", t.Oldest, t.Middle, t.Latest)
}

// Valid reports whether the triple satisfies the consecutive invariant
func (t Triple) Valid() bool {
	return t.Oldest >= 0 && t.Middle == t.Oldest+1 && t.Latest == t.Middle+1
}

// repoMetadata is the subset of the repository metadata endpoint we read
type repoMetadata struct {
	DefaultBranch string `json:"default_branch"`
}

// FetchDefaultBranch retrieves the upstream repository's default branch
// name. The request is attempted once, with the given timeout.
func FetchDefaultBranch(ctx context.Context, apiURL string, timeout time.Duration) (string, error) {
	logger := logging.GetLogger("versions")

	if timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, timeout)
		defer cancel()
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, apiURL, nil)
	if err != nil {
		return "", errors.Wrapf(err, errors.ErrMetadataFetch, "invalid metadata URL %s", apiURL)
	}
	req.Header.Set("Accept", "application/json")

	resp, err := http.DefaultClient.Do(req)
	if err != nil {
		return "", errors.Wrapf(err, errors.ErrMetadataFetch, "fetching repository metadata from %s", apiURL)
	}
	defer func() { _ = resp.Body.Close() }()

	if resp.StatusCode != http.StatusOK {
		return "", errors.Newf(errors.ErrMetadataFetch, "repository metadata endpoint returned %s", resp.Status)
	}

	var meta repoMetadata
	if err := json.NewDecoder(resp.Body).Decode(&meta); err != nil {
		return "", errors.Wrap(err, errors.ErrMetadataFetch, "decoding repository metadata")
	}
	if meta.DefaultBranch == "" {
		return "", errors.New(errors.ErrMetadataFetch, "repository metadata has no default branch")
	}

	logger.Debug().Str("branch", meta.DefaultBranch).Msg("Fetched upstream default branch")
	return meta.DefaultBranch, nil
}

// ParseMajor extracts the leading integer of a branch name ("18.0" -> 18).
// Branch names without a leading digit run fail with ErrVersionParse.
func ParseMajor(branch string) (int, error) {
	end := 0
	for end < len(branch) && branch[end] >= '0' && branch[end] <= '9' {
		end++
	}
	if end == 0 {
		return 0, errors.Newf(errors.ErrVersionParse, "branch %q has no leading version number", branch)
	}

	major, err := strconv.Atoi(branch[:end])
	if err != nil {
		return 0, errors.Wrapf(err, errors.ErrVersionParse, "branch %q", branch)
	}
	return major, nil
}

// FromBranch derives the consecutive triple for a default branch name
func FromBranch(branch string) (Triple, error) {
	latest, err := ParseMajor(branch)
	if err != nil {
		return Triple{}, err
	}
	if latest < 2 {
		return Triple{}, errors.Newf(errors.ErrVersionParse, "version %d leaves no room for two prior majors", latest)
	}
	return Triple{Oldest: latest - 2, Middle: latest - 1, Latest: latest}, nil
}

// Derive fetches the upstream default branch and derives the triple.
// Both failure modes carry codes the caller is expected to downgrade to
// warnings: versioning is enrichment, not a precondition.
func Derive(ctx context.Context, apiURL string, timeout time.Duration) (Triple, error) {
	branch, err := FetchDefaultBranch(ctx, apiURL, timeout)
	if err != nil {
		return Triple{}, err
	}
	return FromBranch(branch)
}
