// Package privilege models the escalation pipeline the bootstrap runs
// through: detect the current stage, elevate through sudo when tooling
// must be installed, and re-enter under fresh docker group membership.
//
// A process cannot acquire a new OS group without a new session, which
// is why re-entry spawns a child under `sg` instead of continuing
// in-process after installation.
package privilege

import (
	"context"
	"os"
	"strconv"
	"strings"

	"github.com/odoo-devkit/odev/pkg/errors"
	"github.com/odoo-devkit/odev/pkg/execx"
	"github.com/odoo-devkit/odev/pkg/logging"
)

// Stage identifies where in the escalation pipeline this process runs
type Stage int

const (
	// StageUser is a plain invocation by a regular user
	StageUser Stage = iota
	// StageRoot is the elevated hop that installs missing tooling
	StageRoot
	// StagePostInstall is the re-entry hop running under freshly
	// activated docker group membership
	StagePostInstall
)

// String implements fmt.Stringer for logging
func (s Stage) String() string {
	switch s {
	case StageRoot:
		return "root"
	case StagePostInstall:
		return "post-install"
	default:
		return "user"
	}
}

// Current determines the stage from the effective UID and the re-entry
// marker. The marker wins: the post-install hop may still carry root
// when sudo preserved it.
func Current(postInstall bool) Stage {
	if postInstall {
		return StagePostInstall
	}
	if IsRoot() {
		return StageRoot
	}
	return StageUser
}

// IsRoot reports whether the process runs with superuser rights
func IsRoot() bool {
	return os.Geteuid() == 0
}

// InvokingUser returns the non-privileged user behind a sudo invocation
func InvokingUser() (string, bool) {
	user := os.Getenv("SUDO_USER")
	return user, user != ""
}

// InvokingIDs returns the uid/gid of the user behind a sudo invocation,
// used to hand scaffolded directories back to them
func InvokingIDs() (uid, gid int, ok bool) {
	uidStr, gidStr := os.Getenv("SUDO_UID"), os.Getenv("SUDO_GID")
	if uidStr == "" || gidStr == "" {
		return 0, 0, false
	}
	uid, err := strconv.Atoi(uidStr)
	if err != nil {
		return 0, 0, false
	}
	gid, err = strconv.Atoi(gidStr)
	if err != nil {
		return 0, 0, false
	}
	return uid, gid, true
}

// Elevate re-invokes this executable under sudo with the given
// arguments and waits for it. The child observes StageRoot.
func Elevate(ctx context.Context, args []string) error {
	logger := logging.GetLogger("privilege")

	exe, err := os.Executable()
	if err != nil {
		return errors.Wrap(err, errors.ErrEscalation, "resolving own executable")
	}
	if !execx.LookPath("sudo") {
		return errors.New(errors.ErrEscalation, "sudo is required to install missing tooling")
	}

	logger.Info().Strs("args", args).Msg("Re-invoking with superuser rights")
	if res := execx.Run(ctx, "sudo", append([]string{exe}, args...)...); !res.Ok() {
		return errors.Wrapf(res.Err, errors.ErrEscalation, "elevated invocation exited with code %d", res.Code)
	}
	return nil
}

// ReenterWithGroup re-invokes this executable under `sg`, so the child
// picks up membership in group without a fresh login session. Callers
// pass the re-entry marker in args; the child observes StagePostInstall.
func ReenterWithGroup(ctx context.Context, group string, args []string) error {
	logger := logging.GetLogger("privilege")

	exe, err := os.Executable()
	if err != nil {
		return errors.Wrap(err, errors.ErrGroupActivation, "resolving own executable")
	}
	if !execx.LookPath("sg") {
		return errors.Newf(errors.ErrGroupActivation, "sg is required to activate the %s group; log out and back in instead", group)
	}

	command := sgCommand(exe, args)
	logger.Info().Str("group", group).Str("command", command).Msg("Re-entering under new group membership")
	if res := execx.Run(ctx, "sg", group, "-c", command); !res.Ok() {
		return errors.Wrapf(res.Err, errors.ErrGroupActivation, "group re-entry exited with code %d", res.Code)
	}
	return nil
}

// sgCommand builds the single command string sg -c expects. Tokens are
// single-quoted so an executable path with spaces survives.
func sgCommand(exe string, args []string) string {
	parts := make([]string, 0, len(args)+1)
	for _, tok := range append([]string{exe}, args...) {
		parts = append(parts, "'"+strings.ReplaceAll(tok, "'", `'\''`)+"'")
	}
	return strings.Join(parts, " ")
}
