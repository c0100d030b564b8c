package serve

import (
	"fmt"
	"os"
	"os/signal"
	"syscall"

	cmdUtil "github.com/ValentinKolb/sKV/cmd/util"
	"github.com/ValentinKolb/sKV/lib/store/lstore"
	"github.com/ValentinKolb/sKV/rpc/common"
	"github.com/ValentinKolb/sKV/rpc/server"
	"github.com/ValentinKolb/sKV/rpc/transport/base"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

var (
	serveCmdConfig = &common.ServerConfig{}
	ServeCmd       = &cobra.Command{
		Use:     "serve",
		Short:   "Start the sKV server",
		Long:    `Start the sKV server with the specified configuration. The configuration can be set via command line flags or environment variables. The format of the environment variables is SKV_<flag> (e.g. SKV_SHARDS=8, SKV_LOG_LEVEL=debug)`,
		PreRunE: processConfig,
		RunE:    run,
	}
)

func init() {
	// initialize viper
	cobra.OnInitialize(cmdUtil.InitEnv)

	// add flags
	key := "shards"
	ServeCmd.PersistentFlags().Int(key, lstore.DefaultShardCount, cmdUtil.WrapString("Number of independently locked shards of the store"))

	key = "timeout"
	ServeCmd.PersistentFlags().Int64(key, 0, cmdUtil.WrapString("Read/write deadline per operation in seconds (0 disables deadlines)"))

	key = "endpoint"
	ServeCmd.PersistentFlags().String(key, "127.0.0.1:6379", cmdUtil.WrapString("The address on which the server will listen (e.g. 0.0.0.0:6379, /tmp/skv.sock, ...). If unset, PORT overrides the default port"))

	key = "metrics-endpoint"
	ServeCmd.PersistentFlags().String(key, "", cmdUtil.WrapString("Address of the HTTP endpoint serving Prometheus metrics on /metrics (e.g. 127.0.0.1:9100, empty disables it)"))

	key = "log-level"
	ServeCmd.PersistentFlags().String(key, "info", cmdUtil.WrapString("LogLevel is the level at which logs will be output (debug, info, warn, error)"))

	key = "tcp-nodelay"
	ServeCmd.PersistentFlags().Bool(key, true, cmdUtil.WrapString("Whether to enable TCP_NODELAY on accepted connections (only for tcp)"))

	key = "tcp-keepalive"
	ServeCmd.PersistentFlags().Int(key, 0, cmdUtil.WrapString("The keepalive interval of accepted connections (in seconds, only for tcp)"))
}

// processConfig reads the configuration from the command line flags and environment variables and converts them to the server configuration
func processConfig(cmd *cobra.Command, _ []string) error {
	// bind the flags to viper
	if err := viper.BindPFlags(cmd.Flags()); err != nil {
		return err
	}

	// read the configuration from the command line flags and environment variables
	serveCmdConfig.ShardCount = viper.GetInt("shards")
	serveCmdConfig.TimeoutSecond = viper.GetInt64("timeout")
	serveCmdConfig.Transport.Endpoint = cmdUtil.ServerEndpoint()
	serveCmdConfig.Transport.TCPNoDelay = viper.GetBool("tcp-nodelay")
	serveCmdConfig.Transport.TCPKeepAliveSec = viper.GetInt("tcp-keepalive")
	serveCmdConfig.MetricsEndpoint = viper.GetString("metrics-endpoint")
	serveCmdConfig.LogLevel = viper.GetString("log-level")

	if err := serveCmdConfig.Validate(); err != nil {
		return fmt.Errorf("invalid configuration: %w", err)
	}

	return common.InitLoggers(serveCmdConfig.LogLevel)
}

// run starts the sKV server and blocks until SIGINT or SIGTERM
func run(_ *cobra.Command, _ []string) error {
	// Parse the transport
	t, err := cmdUtil.GetServerTransport()
	if err != nil {
		return err
	}

	serv := server.NewRPCServer(
		*serveCmdConfig,
		t,
		lstore.NewShardedStore(serveCmdConfig.ShardCount),
	)

	// A socket that cannot be bound ends the process with exit code 1
	listener, err := serv.Listen()
	if err != nil {
		server.Logger.Errorf("Failed to bind %s (%s): %v", serveCmdConfig.Transport.Endpoint, base.DescribeBindError(err), err)
		os.Exit(1)
	}

	// Serve in the background, shut down on signal
	serveErr := make(chan error, 1)
	go func() { serveErr <- serv.Serve(listener) }()

	signals := make(chan os.Signal, 1)
	signal.Notify(signals, syscall.SIGINT, syscall.SIGTERM)
	defer signal.Stop(signals)

	select {
	case sig := <-signals:
		server.Logger.Infof("Received %s, shutting down", sig)
		if err := serv.Shutdown(); err != nil {
			server.Logger.Warningf("Shutdown finished with error: %v", err)
		}
		return <-serveErr
	case err := <-serveErr:
		serv.Shutdown()
		return err
	}
}
