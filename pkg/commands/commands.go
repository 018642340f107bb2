package commands

import (
	"os"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"tableflip.dev/routines/pkg/app"
	"tableflip.dev/routines/pkg/commands/options"
	"tableflip.dev/routines/pkg/logging"
	"tableflip.dev/routines/pkg/printers"
	"tableflip.dev/routines/pkg/store"
)

var (
	oo = &options.OutputOptions{}
	lo = &options.LogOptions{}

	logger = zap.NewNop()
)

func New() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "routines",
		Short: options.Wrap80("Keep track of routines from the command line."),
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			l, err := logging.New(lo.Verbose)
			if err != nil {
				return err
			}
			logger = l
			printers.UseColorFor(os.Stdout)
			return nil
		},
		PersistentPostRun: func(cmd *cobra.Command, args []string) {
			_ = logger.Sync()
		},
		RunE: func(cmd *cobra.Command, args []string) error {
			return cmd.Help()
		},
	}

	options.AddLogArgs(cmd, lo)
	AddCommands(cmd)
	return cmd
}

func AddCommands(topLevel *cobra.Command) {
	addAdd(topLevel)
	addUpdate(topLevel)
	addDelete(topLevel)
	addList(topLevel)
	addChart(topLevel)
	addUI(topLevel)
	addMCP(topLevel)
	addVersion(topLevel)
	addCompletions(topLevel)
}

// openRoutines loads the configuration and opens the repository over the
// configured storage. The returned func closes the storage.
func openRoutines(l *zap.Logger) (*app.Service, *store.Settings, func(), error) {
	settings, err := store.LoadConfig()
	if err != nil {
		return nil, nil, nil, err
	}
	s, err := store.Open(settings, store.WithLogger(l))
	if err != nil {
		return nil, nil, nil, err
	}
	l.Debug("storage opened",
		zap.String("backend", settings.Backend()),
		zap.String("path", settings.BasePath()),
		zap.String("key", settings.Key()))

	closer := func() {
		if err := s.Close(); err != nil {
			l.Warn("closing storage", zap.Error(err))
		}
	}
	return &app.Service{Storage: s, Logger: l}, settings, closer, nil
}

func pretty(cmd *cobra.Command, showID bool, s *store.Settings) printers.PrettyPrint {
	return printers.PrettyPrint{ShowID: showID, TimeLayout: s.TimeLayout, Out: cmd.OutOrStdout()}
}
