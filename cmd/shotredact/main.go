package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"

	"github.com/fatih/color"
	"github.com/joho/godotenv"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/ivlev/shotredact/internal/config"
	"github.com/ivlev/shotredact/internal/logging"
)

// BuildVersion is set at link time: -ldflags "-X main.BuildVersion=..."
var BuildVersion = "dev"

// cli carries state shared by all subcommands of one invocation
type cli struct {
	cfgFile string
	verbose bool

	v   *viper.Viper
	log *logging.Logger
}

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	if err := newRootCmd().ExecuteContext(ctx); err != nil {
		color.New(color.FgRed).Fprintf(os.Stderr, "[-] Error: %v\n", err)
		stop()
		os.Exit(1)
	}
}

func newRootCmd() *cobra.Command {
	c := &cli{}

	root := &cobra.Command{
		Use:   "shotredact",
		Short: "Blur passwords, API keys and other secrets in screenshots",
		Long: "shotredact finds secrets in a screenshot with OCR, field-label heuristics, " +
			"secret patterns and an optional zero-shot classifier, then blurs them.",
		Version:       BuildVersion,
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			return c.init(cmd)
		},
	}

	root.PersistentFlags().StringVar(&c.cfgFile, "config", "", "config file (default: ./shotredact.yaml or ~/.config/shotredact/shotredact.yaml)")
	root.PersistentFlags().BoolVarP(&c.verbose, "verbose", "v", false, "debug logging")

	root.AddCommand(newRedactCmd(c))
	root.AddCommand(newScanCmd(c))
	root.AddCommand(newPatternsCmd())
	return root
}

// init loads .env and the layered configuration before any subcommand runs.
func (c *cli) init(cmd *cobra.Command) error {
	if err := godotenv.Load(); err != nil && !os.IsNotExist(err) {
		fmt.Fprintf(os.Stderr, "[!] Warning: could not load .env: %v\n", err)
	}

	v, err := config.NewViper(c.cfgFile)
	if err != nil {
		return err
	}
	if err := v.BindPFlag("verbose", cmd.Flags().Lookup("verbose")); err != nil {
		return err
	}
	c.v = v

	c.log = logging.NewLogger("shotredact")
	c.log.SetVerbose(v.GetBool("verbose"))
	if used := v.ConfigFileUsed(); used != "" {
		c.log.Debug("config loaded", "file", used)
	}
	return nil
}

// load decodes the effective configuration once command flags are bound
func (c *cli) load() (*config.Config, error) {
	cfg, err := config.FromViper(c.v)
	if err != nil {
		return nil, err
	}
	cfg.BuildVersion = BuildVersion
	return cfg, nil
}
