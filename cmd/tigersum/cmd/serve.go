package cmd

import (
	"context"
	"os"
	"os/signal"
	"strconv"
	"syscall"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/direct-connect/go-tiger/server"
)

func init() {
	serveCmd := &cobra.Command{
		Use:   "serve",
		Short: "run the HTTP hashing service",
	}
	flags := serveCmd.Flags()
	flags.String("host", "127.0.0.1", "host or IP to listen on")
	mustBind("serve.host", flags.Lookup("host"))
	flags.Int("port", 8192, "port to listen on")
	mustBind("serve.port", flags.Lookup("port"))
	flags.Int64("max-body", server.DefaultMaxBody, "maximal size of the request body")
	mustBind("serve.max_body", flags.Lookup("max-body"))
	Root.AddCommand(serveCmd)

	serveCmd.RunE = func(cmd *cobra.Command, args []string) error {
		conf, err := readConfig(true)
		if err != nil {
			return err
		}
		ctx, cancel := context.WithCancel(context.Background())
		defer cancel()

		sig := make(chan os.Signal, 1)
		signal.Notify(sig, os.Interrupt, syscall.SIGTERM)
		defer signal.Stop(sig)
		go func() {
			select {
			case s := <-sig:
				log.Info("stopping", zap.Stringer("signal", s))
				cancel()
			case <-ctx.Done():
			}
		}()

		srv := server.New(server.Config{MaxBody: conf.Serve.MaxBody}, log)
		addr := conf.Serve.Host + ":" + strconv.Itoa(conf.Serve.Port)
		return srv.ListenAndServe(ctx, addr)
	}
}
