package main

import (
	"fmt"
	"time"

	"github.com/jonathan/resume-matcher/internal/web"
	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

func newServeCmd(opts *globalOptions) *cobra.Command {
	var port int

	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Start the web UI",
		Long:  `Start an HTTP server that renders the resume analyzer and job search page and exposes the JSON API.`,
		RunE: func(cmd *cobra.Command, _ []string) error {
			rt, err := loadRuntime(opts)
			if err != nil {
				return err
			}
			defer rt.close()

			if cmd.Flags().Changed("port") {
				rt.cfg.Port = port
			}

			srv, err := web.New(web.Config{
				Port:           rt.cfg.Port,
				Upstream:       rt.client,
				Logger:         rt.logger,
				MaxUploadBytes: rt.cfg.MaxUploadBytes,
				SessionTTL:     time.Duration(rt.cfg.SessionTTL),
				DefaultTheme:   rt.cfg.DefaultTheme,
				SecureCookies:  rt.cfg.SecureCookies,
			})
			if err != nil {
				return fmt.Errorf("failed to create server: %w", err)
			}

			rt.logger.Info("using upstream", zap.String("url", rt.cfg.UpstreamURL))
			return srv.Start()
		},
	}

	cmd.Flags().IntVar(&port, "port", 8080, "Port to listen on (overrides config)")
	return cmd
}
