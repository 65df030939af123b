package cmd

import (
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/rs/zerolog"
	"github.com/spf13/cobra"

	"github.com/s0up4200/jenkins-mcp/config"
	"github.com/s0up4200/jenkins-mcp/jenkins"
	"github.com/s0up4200/jenkins-mcp/tools"
)

const appName = "jenkins-mcp"

var (
	cfgFile       string
	cfg           *config.Config
	logger        zerolog.Logger
	jenkinsClient *jenkins.Client
	toolServer    *tools.Server

	version   = "dev"
	buildTime = "unknown"
)

// rootCmd represents the base command
var rootCmd = &cobra.Command{
	Use:   appName,
	Short: "MCP server exposing Jenkins jobs and builds as tools",
	Long: `jenkins-mcp is a Model Context Protocol server that lets assistants search
Jenkins jobs, list builds, trigger parameterized builds, read console logs and
call arbitrary Jenkins API endpoints.

Connection details come from JENKINS_URL, JENKINS_USERNAME and JENKINS_PASSWORD
or from a config file. Without a subcommand the server is started.`,
	PersistentPreRunE: initializeApp,
	RunE:              runServe,
	SilenceUsage:      true,
}

// SetVersion records build metadata shown by the version command and
// reported to MCP clients.
func SetVersion(v, bt string) {
	version = v
	buildTime = bt
}

// Execute adds all child commands to the root command and sets flags appropriately.
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func init() {
	rootCmd.PersistentFlags().StringVar(&cfgFile, "config", "", "config file (default searches ./config.yaml, ~/.jenkins-mcp/, /etc/jenkins-mcp/)")

	rootCmd.AddCommand(serveCmd)
	rootCmd.AddCommand(checkCmd)
	rootCmd.AddCommand(toolsCmd)
	rootCmd.AddCommand(callCmd)
	rootCmd.AddCommand(versionCmd)
}

// initializeApp initializes the configuration, the Jenkins client and the
// tool server
func initializeApp(cmd *cobra.Command, args []string) error {
	if cmd == versionCmd {
		return nil
	}

	var err error

	// Listing tools needs no Jenkins connection
	if cmd == toolsCmd {
		cfg, err = config.Read(cfgFile)
		if err != nil {
			return fmt.Errorf("failed to load config: %w", err)
		}
		logger = setupLogger(cfg.Logging)
		return nil
	}

	cfg, err = config.Load(cfgFile)
	if err != nil {
		return fmt.Errorf("failed to load config: %w", err)
	}

	logger = setupLogger(cfg.Logging)

	if !cfg.Jenkins.HasCredentials() {
		logger.Warn().Msg("No Jenkins credentials configured, requests will be anonymous")
	}
	if cfg.Jenkins.InsecureSkipVerify {
		logger.Debug().Msg("TLS certificate verification is disabled")
	}

	jenkinsClient, err = jenkins.NewClient(
		cfg.Jenkins.URL,
		cfg.Jenkins.Username,
		cfg.Jenkins.Password,
		logger,
		jenkins.WithTimeout(cfg.Jenkins.Timeout),
		jenkins.WithUserAgent(cfg.Jenkins.UserAgent),
		jenkins.WithInsecureSkipVerify(cfg.Jenkins.InsecureSkipVerify),
	)
	if err != nil {
		return fmt.Errorf("failed to create Jenkins client: %w", err)
	}

	toolServer = tools.NewServer(appName, version, jenkinsClient, logger, tools.Options{
		ShowErrorDetails: cfg.Tools.ShowErrorDetails,
		Descriptions:     cfg.Tools.Descriptions,
		FilterCacheSize:  cfg.Tools.FilterCacheSize,
	})

	return nil
}

// setupLogger configures the zerolog logger. Output always goes to stderr
// since stdout carries the stdio transport.
func setupLogger(cfg config.LoggingConfig) zerolog.Logger {
	level := zerolog.InfoLevel
	switch strings.ToLower(cfg.Level) {
	case "debug":
		level = zerolog.DebugLevel
	case "warn":
		level = zerolog.WarnLevel
	case "error":
		level = zerolog.ErrorLevel
	}

	zerolog.SetGlobalLevel(level)

	if cfg.Format == "json" {
		return zerolog.New(os.Stderr).With().Timestamp().Logger()
	}

	output := zerolog.ConsoleWriter{
		Out:        os.Stderr,
		TimeFormat: time.RFC3339,
		NoColor:    !cfg.Color,
	}

	return zerolog.New(output).With().Timestamp().Logger()
}
