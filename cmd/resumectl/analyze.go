package main

import (
	"encoding/json"
	"fmt"
	"io"
	"os"

	"github.com/fadilmartias/resume-analyzer/internal/analyzer"
	"github.com/fadilmartias/resume-analyzer/internal/dto"
	"github.com/fadilmartias/resume-analyzer/internal/util"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

var analyzeCmd = &cobra.Command{
	Use:   "analyze <resume.pdf>",
	Short: "Analyse a PDF resume and print the result as JSON",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		log := newLogger()
		defer log.Sync()

		data, err := os.ReadFile(args[0])
		if err != nil {
			return fmt.Errorf("read %s: %w", args[0], err)
		}
		content, err := util.ExtractPDF(data, log)
		if err != nil {
			return err
		}

		result, err := analyzeText(content, viper.GetInt("courses"), viper.GetInt64("seed"))
		if err != nil {
			return err
		}
		return writeJSON(cmd.OutOrStdout(), result)
	},
}

func init() {
	analyzeCmd.Flags().Int("courses", analyzer.DefaultCourseCount, "number of courses to recommend (1-10)")
	analyzeCmd.Flags().Int64("seed", 0, "random seed for course order and score bonus (0 uses the clock)")

	viper.BindPFlag("courses", analyzeCmd.Flags().Lookup("courses"))
	viper.BindPFlag("seed", analyzeCmd.Flags().Lookup("seed"))
}

func analyzeText(content util.PDFContent, courses int, seed int64) (dto.AnalysisDTO, error) {
	resume := analyzer.ExtractedResume{
		RawText:   content.Text,
		Skills:    analyzer.ExtractSkills(content.Text),
		PageCount: content.Pages,
		Contact:   analyzer.ExtractContact(content.Text),
	}
	a, err := analyzer.New(analyzer.NewRandomSource(seed)).Analyze(resume, courses)
	if err != nil {
		return dto.AnalysisDTO{}, err
	}
	return dto.NewAnalysisDTO(resume, a), nil
}

func writeJSON(w io.Writer, v any) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}
