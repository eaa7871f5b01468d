package main

// Short messages (one-liners)
const (
	// Command descriptions
	MsgRootShort      = "Bootstrap and drive a local Odoo development environment"
	MsgUpShort        = "Install tooling, pin versions and start the services"
	MsgDownShort      = "Tear the services down, volumes included"
	MsgRestartShort   = "Restart the services without touching data"
	MsgStatusShort    = "Show the state of the environment"
	MsgInitAddonShort = "Create a new addon skeleton"
	MsgGenconfigShort = "Print a commented configuration file"
	MsgTopicsShort    = "Display available documentation topics"
	MsgVersionShort   = "Print version information"

	// Flag descriptions
	MsgFlagVerbose     = "Increase verbosity (-v INFO, -vv DEBUG, -vvv TRACE)"
	MsgFlagFresh       = "Remove service volumes before starting, giving a clean database"
	MsgFlagKeepVolumes = "Keep the named volumes instead of removing them"
	MsgFlagAddonVer    = "Odoo major version the addon targets (defaults to the pinned latest)"
	MsgFlagPostInstall = "Internal marker for the re-entered post-install run"

	// Status messages
	MsgVersionsPinned    = "Pinned Odoo versions %s in %s\n"
	MsgVersionsUnknown   = "Versions could not be determined; directory scaffolding was skipped.\n"
	MsgScaffoldCreated   = "Created %d addon directories.\n"
	MsgServicesStarted   = "Services are up.\n"
	MsgServicesStopped   = "Services stopped.\n"
	MsgServicesRestarted = "Services restarted.\n"
	MsgNoManifest        = "No orchestration manifest found, services were not touched.\n"
	MsgAddonCreated      = "Created addon '%s' at %s with the following files:\n"
	MsgAddonFileItem     = "  %s\n"
)

// Longer command help
const (
	MsgRootLong = `odev bootstraps a local Odoo development environment: it installs the
container tooling when it is missing, derives the three supported Odoo
versions from upstream, scaffolds per-version addon directories and
drives the compose services.`

	MsgUpLong = `Up runs the full bootstrap pipeline.

When the container engine or its compose plugin is missing, odev
re-executes itself with sudo to install them, then re-enters through
the engine group so the fresh membership applies without logging out.
It then derives the supported Odoo versions from the upstream default
branch, writes them to the env file, creates the per-version addon
directories and (re)starts the services.`

	MsgDownLong = `Down tears the compose services down, removing the named volumes so
the next up starts from a clean database. Pass --keep-volumes to stop
the services but retain the data.`

	MsgRestartLong = `Restart stops and starts the services using the existing env file.
Volumes, version pins and scaffolding are left untouched.`

	MsgStatusLong = `Status reports the tooling probes, the pinned versions, missing
scaffold directories and the services the manifest defines. It never
mutates the environment.`

	MsgInitAddonLong = `Init-addon creates a minimal addon skeleton (manifest, model, view
and access rules) under <version>/custom/<name>.`

	MsgGenconfigLong = `Genconfig prints the default configuration as a fully commented TOML
file. Redirect it to odev.toml and uncomment the values to change.`

	MsgTopicsLong = "Display a list of all available help topics that provide additional documentation beyond command help."
)
