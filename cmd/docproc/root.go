package main

import (
	"github.com/spf13/cobra"
	"go.uber.org/zap"

	client "github.com/hsn0918/docproc-client"
	"github.com/hsn0918/docproc-client/internal/config"
	"github.com/hsn0918/docproc-client/internal/logger"
)

type cliOptions struct {
	configFile string
	headers    map[string]string

	cfg *config.Config
	log *zap.SugaredLogger
}

func newRootCmd() *cobra.Command {
	opts := &cliOptions{}

	cmd := &cobra.Command{
		Use:           "docproc",
		Short:         "Document Processing API CLI",
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	flags := cmd.PersistentFlags()
	flags.StringVar(&opts.configFile, "config", "", "Path to a YAML config file")
	flags.String("base-url", "", "Base URL of the API (or set "+config.EnvPrefix+"_BASE_URL)")
	flags.StringToStringVarP(&opts.headers, "header", "H", nil, "Static request header key=value (repeatable)")
	flags.Duration("timeout", 0, "Per-request timeout, 0 keeps the transport defaults")
	flags.String("log-level", "info", "Log level: debug|info|warn|error")
	flags.StringP("output", "o", "json", "Output format: json|yaml")
	flags.String("fail-log", "", "Append failed calls to this file")
	flags.Bool("trace", false, "Enable OpenTelemetry HTTP instrumentation")
	flags.Bool("request-ids", false, "Send a fresh "+client.RequestIDHeader+" with every call")

	cmd.AddCommand(newUploadCmd(opts))
	cmd.AddCommand(newProcessCmd(opts))
	cmd.AddCommand(newGetCmd(opts))
	cmd.AddCommand(newListCmd(opts))
	cmd.AddCommand(newUpdateCmd(opts))
	cmd.AddCommand(newCompareCmd(opts))
	cmd.AddCommand(newBatchCmd(opts))
	cmd.AddCommand(newVersionCmd(opts))
	cmd.AddCommand(newConvertCmd(opts))
	cmd.AddCommand(newOutputsCmd(opts))
	cmd.AddCommand(newPreviewCmd(opts))
	cmd.AddCommand(newMetricsCmd(opts))
	cmd.AddCommand(newTemplatesCmd(opts))
	cmd.AddCommand(newStylesCmd(opts))

	return cmd
}

// setup resolves configuration and returns a ready client.
func (o *cliOptions) setup(cmd *cobra.Command) (client.Client, error) {
	cfg, err := config.Load(cmd.Flags(), o.configFile, o.headers)
	if err != nil {
		return nil, err
	}
	o.cfg = cfg
	o.log = logger.New(cmd.ErrOrStderr(), cfg.LogLevel)

	return buildClient(cfg, o.log), nil
}
