package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"

	log "github.com/sirupsen/logrus"
	"github.com/spf13/cobra"

	"github.com/jiaming2012/deribit-trading/src/cmd/deribit/run"
)

var rootCmd = &cobra.Command{
	Use:   "go run src/cmd/deribit/main.go",
	Short: "Interactive trading client for the Deribit json-rpc api",
	Run: func(cmd *cobra.Command, args []string) {
		ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
		defer stop()

		session := setup(ctx, cmd)
		defer closeSession(session)

		if _, err := run.Run(ctx, session, os.Stdin, os.Stdout); err != nil {
			log.Errorf("Error: %v", err)
		}
	},
}

var exportCmd = &cobra.Command{
	Use:   "export-instruments",
	Short: "Export the supported instruments to a csv file",
	Run: func(cmd *cobra.Command, args []string) {
		ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
		defer stop()

		currency, err := cmd.Flags().GetString("currency")
		if err != nil {
			log.Fatalf("error getting currency: %v", err)
		}

		kind, err := cmd.Flags().GetString("kind")
		if err != nil {
			log.Fatalf("error getting kind: %v", err)
		}

		outDir, err := cmd.Flags().GetString("out")
		if err != nil {
			log.Fatalf("error getting out: %v", err)
		}

		session := setup(ctx, cmd)
		defer closeSession(session)

		outFile, err := run.ExportInstruments(ctx, session, run.ExportArgs{
			Currency: currency,
			Kind:     kind,
			OutDir:   outDir,
		})
		if err != nil {
			log.Errorf("Error: %v", err)
			return
		}

		log.Infof("Success: %s", outFile)
	},
}

func setup(ctx context.Context, cmd *cobra.Command) *run.Session {
	configPath, err := cmd.Flags().GetString("config")
	if err != nil {
		log.Fatalf("error getting config: %v", err)
	}

	envFile, err := cmd.Flags().GetString("env-file")
	if err != nil {
		log.Fatalf("error getting env-file: %v", err)
	}

	logLevel, err := cmd.Flags().GetString("log-level")
	if err != nil {
		log.Fatalf("error getting log-level: %v", err)
	}

	session, err := run.Setup(ctx, run.SetupArgs{
		ConfigPath: configPath,
		EnvFile:    envFile,
		LogLevel:   logLevel,
	})
	if err != nil {
		log.Fatalf("error setting up session: %v", err)
	}

	return session
}

func closeSession(session *run.Session) {
	if err := session.Close(context.Background()); err != nil {
		log.Warnf("error shutting down telemetry: %v", err)
	}
}

func main() {
	rootCmd.PersistentFlags().String("config", "", "Path to an optional yaml config file.")
	rootCmd.PersistentFlags().String("env-file", "", "Path to a dotenv file holding DERIBIT_CLIENT_ID and DERIBIT_CLIENT_SECRET.")
	rootCmd.PersistentFlags().String("log-level", "", "Overrides the configured log level.")

	exportCmd.Flags().String("currency", "", "Currency filter, defaults to the configured currency.")
	exportCmd.Flags().String("kind", "", "Instrument kind filter, defaults to the configured kind.")
	exportCmd.Flags().String("out", "instruments", "Directory the csv file is written to.")

	rootCmd.AddCommand(exportCmd)

	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}
