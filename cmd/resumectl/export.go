package main

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/fadilmartias/resume-analyzer/internal/config"
	"github.com/fadilmartias/resume-analyzer/internal/database"
	"github.com/fadilmartias/resume-analyzer/internal/repository"
	"github.com/fadilmartias/resume-analyzer/internal/usecase"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
	"go.uber.org/zap"
)

var exportCmd = &cobra.Command{
	Use:   "export",
	Short: "Write the admin report (.xlsx or .csv) from the database",
	RunE: func(cmd *cobra.Command, _ []string) error {
		log := newLogger()
		defer log.Sync()

		out := viper.GetString("out")
		db, err := database.Connect(config.LoadDBConfig(), config.LoadAppConfig(), log)
		if err != nil {
			return err
		}
		uc := usecase.NewAdminUsecase(repository.NewAnalysisRepository(db), config.LoadAdminConfig(), log)

		f, err := os.Create(out)
		if err != nil {
			return fmt.Errorf("create %s: %w", out, err)
		}
		defer f.Close()

		switch strings.ToLower(filepath.Ext(out)) {
		case ".csv":
			err = uc.ExportCSV(cmd.Context(), f)
		case ".xlsx":
			buf, xerr := uc.ExportXLSX(cmd.Context())
			if xerr != nil {
				return xerr
			}
			_, err = buf.WriteTo(f)
		default:
			return fmt.Errorf("unsupported report format %q (use .xlsx or .csv)", filepath.Ext(out))
		}
		if err != nil {
			return fmt.Errorf("write report: %w", err)
		}

		log.Info("report written", zap.String("path", out))
		return nil
	},
}

func init() {
	exportCmd.Flags().StringP("out", "o", "report.xlsx", "output file (.xlsx or .csv)")
	viper.BindPFlag("out", exportCmd.Flags().Lookup("out"))
}
