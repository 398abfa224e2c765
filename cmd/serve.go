package cmd

import (
	"context"
	"errors"
	"net/http"
	"os/signal"
	"syscall"
	"time"

	mcpsrv "github.com/mark3labs/mcp-go/server"
	"github.com/sjzsdu/speak/helper/logger"
	"github.com/sjzsdu/speak/lang"
	"github.com/sjzsdu/speak/listen"
	"github.com/sjzsdu/speak/mcpserver"
	"github.com/sjzsdu/speak/metrics"
	"github.com/sjzsdu/speak/server"
	"github.com/spf13/cobra"
	"golang.org/x/sync/errgroup"
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: lang.T("Serve the HTTP API"),
	Long: lang.T("Serve files, settings and voice commands over HTTP, with Prometheus metrics at /metrics. " +
		"Optionally tail a transcript file and expose MCP tools for the configured user."),
	RunE: runServe,
}

var (
	serveAddr       string
	serveMCPAddr    string
	serveTranscript string
	serveNoMetrics  bool
)

func init() {
	serveCmd.Flags().StringVar(&serveAddr, "addr", "", lang.T("HTTP listen address"))
	serveCmd.Flags().StringVar(&serveMCPAddr, "mcp-addr", "", lang.T("Also serve MCP over streamable HTTP on this address"))
	serveCmd.Flags().StringVar(&serveTranscript, "transcript", "", lang.T("Also listen to this transcript file for the configured user"))
	serveCmd.Flags().BoolVar(&serveNoMetrics, "no-metrics", false, lang.T("Disable the /metrics endpoint"))
	rootCmd.AddCommand(serveCmd)
}

func runServe(cmd *cobra.Command, args []string) error {
	rt := runtimeConfig()
	addr := serveAddr
	if addr == "" {
		addr = rt.HTTPAddr
	}

	st, err := openStore()
	if err != nil {
		return err
	}
	defer st.Close()

	var m *metrics.Metrics
	if !serveNoMetrics {
		m = metrics.New()
	}
	srv := server.New(st, m)
	defer srv.Close()

	ctx, stop := signal.NotifyContext(cmd.Context(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	g, ctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		return srv.Run(ctx, addr)
	})

	if serveTranscript != "" || serveMCPAddr != "" {
		sess, in, err := srv.Session(ctx, rt.User)
		if err != nil {
			stop()
			_ = g.Wait()
			return err
		}

		if serveTranscript != "" {
			l := listen.NewFileListener(serveTranscript, func(ctx context.Context, utterance string) {
				if _, err := in.Handle(ctx, utterance); err != nil {
					logger.Info("utterance dropped", logger.Utterance(utterance), logger.Err(err))
				}
			})
			if err := l.Start(ctx); err != nil {
				stop()
				_ = g.Wait()
				return err
			}
			g.Go(l.Wait)
		}

		if serveMCPAddr != "" {
			httpServer := mcpsrv.NewStreamableHTTPServer(mcpserver.NewSpeakMCPServer(sess, in))
			g.Go(func() error {
				logger.Info("mcp server listening", logger.Addr(serveMCPAddr))
				if err := httpServer.Start(serveMCPAddr); err != nil && !errors.Is(err, http.ErrServerClosed) {
					return err
				}
				return nil
			})
			g.Go(func() error {
				<-ctx.Done()
				shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
				defer cancel()
				return httpServer.Shutdown(shutdownCtx)
			})
		}
	}

	if err := g.Wait(); err != nil && !errors.Is(err, context.Canceled) {
		return err
	}
	return nil
}
