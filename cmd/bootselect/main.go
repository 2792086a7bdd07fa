package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"
	"regexp"
	"strings"

	"github.com/spf13/cobra"

	"github.com/Willfa-alt/Boot-Controller/internal/boot"
	"github.com/Willfa-alt/Boot-Controller/internal/config"
	"github.com/Willfa-alt/Boot-Controller/internal/credential"
	"github.com/Willfa-alt/Boot-Controller/internal/elevate"
	"github.com/Willfa-alt/Boot-Controller/internal/engine"
	"github.com/Willfa-alt/Boot-Controller/internal/grub"
	"github.com/Willfa-alt/Boot-Controller/internal/inventory"
	"github.com/Willfa-alt/Boot-Controller/internal/process"
	"github.com/Willfa-alt/Boot-Controller/internal/ui"
	"github.com/Willfa-alt/Boot-Controller/internal/version"
)

// app carries the collaborators shared by every subcommand, wired up once the
// persistent flags have been parsed.
type app struct {
	cfg        config.Config
	configPath string
	logger     *slog.Logger
	logFile    *os.File
	runner     process.Runner
	session    *credential.Session
	engine     *engine.Engine

	verbose bool
	pause   bool
}

// Loads the configuration and wires up the collaborators for the subcommands.
// A broken configuration file still yields a usable app running on the
// defaults, so that the doctor subcommand can report the problem; the load
// error is returned for the caller to decide.
func (a *app) setup(configPath string) error {
	if configPath == "" {
		resolved, err := config.DefaultPath()
		if err != nil {
			return err
		}
		configPath = resolved
	}
	a.configPath = configPath

	cfg, cfgErr := config.Load(configPath)
	if cfgErr != nil {
		cfg = config.Default()
	}
	a.cfg = cfg

	// Send log output to the configured file if one was specified, otherwise to stderr
	output := io.Writer(os.Stderr)
	if cfg.Log.File != "" {
		file, err := os.OpenFile(cfg.Log.File, os.O_CREATE|os.O_APPEND|os.O_WRONLY, 0o644)
		if err != nil {
			return fmt.Errorf("failed to open the log file %s: %w", cfg.Log.File, err)
		}
		a.logFile = file
		output = file
	}
	level := cfg.Log.SlogLevel()
	if a.verbose {
		level = slog.LevelDebug
	}
	a.logger = slog.New(slog.NewTextHandler(output, &slog.HandlerOptions{Level: level}))

	a.runner = process.Exec{}
	a.session = credential.NewSession()
	a.engine = engine.New(engine.Config{
		Runner:   a.runner,
		Executor: elevate.NewExecutor(a.runner, a.logger),
		Session:  a.session,
		Prompter: ui.NewPrompter(),
		Confirm:  ui.NewConfirmer(),
		Logger:   a.logger,
	})
	return cfgErr
}

// Releases the credential session and the log file before the process exits
func (a *app) close() {
	if a.session != nil {
		if err := a.session.Clear(); err != nil && a.logger != nil {
			a.logger.Error("failed to clear the cached credential", "error", err)
		}
	}
	if a.logFile != nil {
		a.logFile.Close()
	}
}

// Applies the configured timeout to the context for a single operation
func (a *app) operationContext(parent context.Context) (context.Context, context.CancelFunc) {
	if timeout := a.cfg.Timeout(); timeout > 0 {
		return context.WithTimeout(parent, timeout)
	}
	return context.WithCancel(parent)
}

// Resolves the GRUB configuration path, falling back to the standard location
func (a *app) grubConfigPath() string {
	if a.cfg.GRUB.ConfigPath != "" {
		return a.cfg.GRUB.ConfigPath
	}
	return grub.DefaultConfigPath
}

// Builds the inventory of boot entries from the platform's backing stores
func (a *app) inventory(ctx context.Context) []boot.Entry {
	sources := inventory.HostSources(a.runner, a.grubConfigPath(), a.logger)
	return inventory.NewBuilder(a.logger, sources...).Build(ctx)
}

// Resolves the target entry from the supplied pattern, or interactively when
// no pattern was given and we are attached to a terminal
func (a *app) selectEntry(ctx context.Context, pattern string, title string) (boot.Entry, error) {
	entries := a.inventory(ctx)
	if len(entries) == 0 {
		return boot.Entry{}, fmt.Errorf("no boot entries were discovered")
	}

	if pattern == "" {
		return ui.SelectEntry(title, entries)
	}

	// Compile the regular expression pattern supplied by the user, enabling case-insensitive matching
	regex, err := regexp.Compile(fmt.Sprintf("(?i)%s", pattern))
	if err != nil {
		return boot.Entry{}, fmt.Errorf("failed to compile regular expression \"%s\": %v", pattern, err)
	}

	// Identify the first boot entry that matches the pattern
	for _, entry := range entries {
		if regex.MatchString(entry.DisplayName) {
			return entry, nil
		}
	}
	return boot.Entry{}, fmt.Errorf("could not find any boot entries matching the pattern \"%s\"", pattern)
}

// Maps a user cancellation to a clean exit; every other failure propagates
func (a *app) finish(err error) error {
	if errors.Is(err, engine.ErrCancelled) {
		a.logger.Debug("the operation was cancelled by the user")
		return nil
	}
	return err
}

// Injects the usage information for the pattern positional argument
func injectPatternUsage(command *cobra.Command) {
	patternUsage := strings.Join([]string{
		"  pattern            A regular expression that will be used to select the target boot entry",
		"                     (case insensitive)",
	}, "\n")
	template := command.UsageTemplate()
	template = strings.Replace(template, "\nFlags:\n", fmt.Sprintf("\nPositional Arguments:\n%s\n\nFlags:\n", patternUsage), 1)
	command.SetUsageTemplate(template)
}

func newRootCmd(a *app) *cobra.Command {

	// Define our root Cobra command
	command := &cobra.Command{

		Long: strings.Join([]string{
			fmt.Sprintf("bootselect v%s", version.VERSION),
			"",
			"Inspects the boot entries available on this machine and switches between them,",
			"either for the next boot only or as the persistent default.",
		}, "\n"),

		Use: "bootselect",

		Version: version.VERSION,

		SilenceUsage: true,

		Example: strings.Join([]string{
			"  bootselect list                        Prints the discovered boot entries",
			"  bootselect boot windows                Selects the Windows Boot Manager and reboots into it",
			"  bootselect set-default ubuntu          Makes the Ubuntu entry the persistent default",
			"  bootselect order --set 0003,0001,0000  Rewrites the UEFI boot order",
		}, "\n"),
	}

	// Define the persistent command-line flags shared by all subcommands
	configPath := command.PersistentFlags().String("config", "", "Path to the configuration file (defaults to the per-user location)")
	command.PersistentFlags().BoolVar(&a.verbose, "verbose", false, "Enable debug logging")
	command.PersistentFlags().BoolVar(&a.pause, "pause", false, "Pause for input when the application is finished running")

	// Wire up the collaborators once flag parsing has completed. The doctor
	// subcommand tolerates a broken configuration so it can report it.
	command.PersistentPreRunE = func(cmd *cobra.Command, args []string) error {
		err := a.setup(*configPath)
		if err != nil && cmd.Name() == doctorCommandName {
			return nil
		}
		return err
	}

	// If no subcommand was specified then print the usage message
	command.RunE = func(cmd *cobra.Command, args []string) error {
		return cmd.Help()
	}

	command.AddCommand(
		newListCmd(a),
		newBootCmd(a),
		newSetDefaultCmd(a),
		newOrderCmd(a),
		newDoctorCmd(a),
	)

	return command
}

func main() {
	a := &app{}
	command := newRootCmd(a)

	// Execute the command, releasing the credential session before exiting
	err := command.Execute()
	a.close()
	if err != nil {
		process.ExitWithPause(1, a.pause)
	}
	process.ExitWithPause(0, a.pause)
}
