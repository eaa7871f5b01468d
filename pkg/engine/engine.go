// Package engine detects and installs the container engine and its
// compose plugin. Installation is delegated to the upstream convenience
// script; this package only downloads and runs it.
package engine

import (
	"context"
	"io"
	"net/http"
	"os"
	"path/filepath"
	"time"

	"github.com/odoo-devkit/odev/pkg/errors"
	"github.com/odoo-devkit/odev/pkg/execx"
	"github.com/odoo-devkit/odev/pkg/logging"
)

// Binary is the engine CLI probed on PATH
const Binary = "docker"

// Group is the OS group granting access to the engine control socket
const Group = "docker"

// Status reports what bootstrap still has to provide
type Status struct {
	EngineInstalled  bool
	DaemonReachable  bool
	ComposeInstalled bool
}

// Ready reports whether service management can proceed as-is
func (s Status) Ready() bool {
	return s.EngineInstalled && s.DaemonReachable && s.ComposeInstalled
}

// Detect probes the engine binary, its daemon, and the compose plugin
func Detect(ctx context.Context) Status {
	s := Status{EngineInstalled: Installed()}
	if s.EngineInstalled {
		s.DaemonReachable = DaemonReachable(ctx)
		s.ComposeInstalled = ComposeInstalled(ctx)
	}
	return s
}

// Installed reports whether the engine binary is on PATH
func Installed() bool {
	return execx.LookPath(Binary)
}

// DaemonReachable reports whether the engine daemon answers. `docker
// version` talks to the daemon, so its exit code is the probe.
func DaemonReachable(ctx context.Context) bool {
	return execx.Quiet(ctx, Binary, "version").Ok()
}

// ComposeInstalled reports whether the compose plugin is available
func ComposeInstalled(ctx context.Context) bool {
	return execx.Quiet(ctx, Binary, "compose", "version").Ok()
}

// InstallEngine downloads the convenience script and runs it. Both the
// download and the script are fatal on failure: without the engine
// nothing downstream can run.
func InstallEngine(ctx context.Context, scriptURL string, timeout time.Duration) error {
	logger := logging.GetLogger("engine")

	if Installed() {
		logger.Debug().Msg("Engine already installed, skipping")
		return nil
	}

	logger.Info().Str("url", scriptURL).Msg("Downloading engine install script")

	scriptPath, cleanup, err := downloadScript(ctx, scriptURL, timeout)
	if err != nil {
		return err
	}
	defer cleanup()

	logger.Info().Msg("Running engine install script")
	if res := execx.Run(ctx, "sh", scriptPath); !res.Ok() {
		return errors.Wrapf(res.Err, errors.ErrEngineInstall, "install script exited with code %d", res.Code)
	}

	if !Installed() {
		return errors.New(errors.ErrEngineInstall, "install script finished but the engine binary is still missing")
	}
	return nil
}

// InstallComposePlugin installs the compose plugin through the distro
// package manager when the engine's bundled plugin is absent
func InstallComposePlugin(ctx context.Context) error {
	logger := logging.GetLogger("engine")

	if ComposeInstalled(ctx) {
		logger.Debug().Msg("Compose plugin already installed, skipping")
		return nil
	}

	installed := false
	if execx.LookPath("apt-get") {
		installed = execx.Run(ctx, "apt-get", "install", "-y", "docker-compose-plugin").Ok()
	} else if execx.LookPath("dnf") {
		installed = execx.Run(ctx, "dnf", "install", "-y", "docker-compose-plugin").Ok()
	}

	if !installed || !ComposeInstalled(ctx) {
		return errors.New(errors.ErrComposeMissing, "compose plugin could not be installed")
	}
	return nil
}

// EnableDaemon starts the engine service now and on boot. Failure is not
// fatal here: non-systemd hosts manage the daemon themselves, and the
// reachability gate decides later.
func EnableDaemon(ctx context.Context) {
	logger := logging.GetLogger("engine")

	if !execx.LookPath("systemctl") {
		logger.Debug().Msg("systemctl not found, skipping daemon enablement")
		return
	}
	if res := execx.Run(ctx, "systemctl", "enable", "--now", Binary); !res.Ok() {
		logger.Warn().Int("code", res.Code).Msg("Could not enable the engine service")
	}
}

// AddUserToGroup grants a user access to the engine control socket
func AddUserToGroup(ctx context.Context, user string) error {
	if res := execx.Run(ctx, "usermod", "-aG", Group, user); !res.Ok() {
		return errors.Wrapf(res.Err, errors.ErrGroupActivation, "adding %s to the %s group", user, Group)
	}
	return nil
}

// downloadScript fetches the install script to a temporary file
func downloadScript(ctx context.Context, url string, timeout time.Duration) (string, func(), error) {
	if timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, timeout)
		defer cancel()
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return "", nil, errors.Wrapf(err, errors.ErrDownloadFailed, "invalid install script URL %s", url)
	}

	resp, err := http.DefaultClient.Do(req)
	if err != nil {
		return "", nil, errors.Wrapf(err, errors.ErrDownloadFailed, "downloading install script from %s", url)
	}
	defer func() { _ = resp.Body.Close() }()

	if resp.StatusCode != http.StatusOK {
		return "", nil, errors.Newf(errors.ErrDownloadFailed, "install script endpoint returned %s", resp.Status)
	}

	tmpDir, err := os.MkdirTemp("", "odev-install-")
	if err != nil {
		return "", nil, errors.Wrap(err, errors.ErrDownloadFailed, "creating temporary directory")
	}
	cleanup := func() { _ = os.RemoveAll(tmpDir) }

	scriptPath := filepath.Join(tmpDir, "install-engine.sh")
	f, err := os.OpenFile(scriptPath, os.O_CREATE|os.O_WRONLY, 0700)
	if err != nil {
		cleanup()
		return "", nil, errors.Wrap(err, errors.ErrDownloadFailed, "creating script file")
	}
	_, copyErr := io.Copy(f, resp.Body)
	closeErr := f.Close()
	if copyErr != nil || closeErr != nil {
		cleanup()
		if copyErr == nil {
			copyErr = closeErr
		}
		return "", nil, errors.Wrap(copyErr, errors.ErrDownloadFailed, "writing script file")
	}

	return scriptPath, cleanup, nil
}
