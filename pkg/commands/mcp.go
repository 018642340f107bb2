package commands

import (
	"fmt"
	"net"
	"os"
	"strconv"
	"strings"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"tableflip.dev/routines/pkg/runner/mcp"
)

func addMCP(topLevel *cobra.Command) {
	transport := string(mcp.TransportStdio)
	host := "127.0.0.1"
	port := 8080
	path := "/mcp"

	cmd := &cobra.Command{
		Use:   "mcp",
		Short: "Serve routines over the Model Context Protocol",
		Example: `
routines mcp
routines mcp --transport http --http-port 8080
`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			cmd.SilenceUsage = true
			t := mcp.Transport(strings.ToLower(transport))
			switch t {
			case mcp.TransportStdio, mcp.TransportHTTP:
			default:
				return fmt.Errorf("unknown transport %q, expected stdio or http", transport)
			}

			svc, settings, done, err := openRoutines(logger)
			if err != nil {
				return err
			}
			defer done()

			r := mcp.Runner{
				Routines:         svc,
				StudentName:      settings.Student,
				TimeLayout:       settings.TimeLayout,
				Name:             "routines",
				Version:          version,
				Logger:           logger,
				Transport:        t,
				HTTPListenAddr:   net.JoinHostPort(host, strconv.Itoa(port)),
				HTTPEndpointPath: path,
				OnHTTPListening: func(addr net.Addr) {
					// stdout stays free for stdio clients, so announce on stderr.
					_, _ = fmt.Fprintf(os.Stderr, "MCP server listening on http://%s%s\n", addr, path)
					logger.Debug("mcp http listening", zap.Stringer("addr", addr))
				},
			}
			return r.Do(cmd.Context())
		},
	}

	cmd.Flags().StringVar(&transport, "transport", transport, "Transport to serve, stdio or http.")
	cmd.Flags().StringVar(&host, "http-host", host, "Host to listen on for the http transport.")
	cmd.Flags().IntVar(&port, "http-port", port, "Port to listen on for the http transport.")
	cmd.Flags().StringVar(&path, "http-path", path, "Endpoint path for the http transport.")
	topLevel.AddCommand(cmd)
}
