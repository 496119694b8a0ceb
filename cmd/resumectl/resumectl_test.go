package main

import (
	"bytes"
	"encoding/json"
	"testing"

	"github.com/fadilmartias/resume-analyzer/internal/analyzer"
	"github.com/fadilmartias/resume-analyzer/internal/dto"
	"github.com/fadilmartias/resume-analyzer/internal/util"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestAnalyzeText(t *testing.T) {
	content := util.PDFContent{
		Text:  "John Smith\njohn@example.com\nOBJECTIVE\nSKILLS\nKotlin, Flutter\nInternship at Gojek",
		Pages: 1,
	}

	result, err := analyzeText(content, 2, 42)
	require.NoError(t, err)
	assert.Equal(t, analyzer.FieldAndroid, result.Field)
	assert.Equal(t, analyzer.LevelIntermediate, result.Level)
	assert.Equal(t, "John Smith", result.Name)
	assert.Len(t, result.Courses, 2)
	assert.GreaterOrEqual(t, result.Score, 30)
	assert.LessOrEqual(t, result.Score, 30+analyzer.MaxRandomBonus)

	again, err := analyzeText(content, 2, 42)
	require.NoError(t, err)
	assert.Equal(t, result, again)
}

func TestWriteJSON(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, writeJSON(&buf, dto.AnalysisDTO{Score: 10}))

	var decoded map[string]any
	require.NoError(t, json.Unmarshal(buf.Bytes(), &decoded))
	assert.Equal(t, float64(10), decoded["score"])
}

func TestCommandsRegistered(t *testing.T) {
	names := map[string]bool{}
	for _, c := range rootCmd.Commands() {
		names[c.Name()] = true
	}
	assert.True(t, names["analyze"])
	assert.True(t, names["export"])
	assert.True(t, names["migrate"])
}

func TestAnalyzeRequiresFile(t *testing.T) {
	rootCmd.SetArgs([]string{"analyze"})
	rootCmd.SetOut(&bytes.Buffer{})
	rootCmd.SetErr(&bytes.Buffer{})
	assert.Error(t, rootCmd.Execute())
}
