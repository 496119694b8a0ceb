package main

import (
	"log"
	"strings"

	appLogger "github.com/fadilmartias/resume-analyzer/internal/logger"
	"github.com/joho/godotenv"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
	"go.uber.org/zap"
)

const app = "resumectl"

var rootCmd = &cobra.Command{
	Use:          app,
	Short:        "resumectl analyses resumes and manages the resume analyzer database",
	SilenceUsage: true,
	PersistentPreRun: func(_ *cobra.Command, _ []string) {
		if err := godotenv.Load(); err != nil {
			log.Println("Could not load .env file")
		}
	},
}

// Execute executes the root command.
func Execute() error {
	return rootCmd.Execute()
}

func init() {
	viper.SetEnvPrefix("RESUMECTL")
	viper.SetEnvKeyReplacer(strings.NewReplacer("-", "_"))
	viper.AutomaticEnv()

	rootCmd.PersistentFlags().BoolP("debug", "d", false, "verbose/debug output")
	rootCmd.PersistentFlags().BoolP("json", "j", false, "json format for logging")

	viper.BindPFlag("debug", rootCmd.PersistentFlags().Lookup("debug"))
	viper.BindPFlag("json", rootCmd.PersistentFlags().Lookup("json"))

	rootCmd.AddCommand(analyzeCmd, exportCmd, migrateCmd)
}

func newLogger() *zap.Logger {
	l, err := appLogger.New(app, viper.GetBool("json"), viper.GetBool("debug"))
	if err != nil {
		log.Fatalf("cannot create logger: %v", err)
	}
	return l
}
