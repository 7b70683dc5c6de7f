package linter

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/AbdulElahOthmanGwaith/auto-guardian-system/internal/types"
)

func TestParseFlake8(t *testing.T) {
	output := []byte(`[
  {"filename": "./app.py", "line_number": 10, "column_number": 80, "type": "E", "text": "line too long (88 > 79 characters)", "id": "E501"},
  {"filename": "./util.py", "line_number": 3, "column_number": 1, "type": "F", "text": "undefined name 'log'", "id": "F821"}
]`)

	issues, err := ParseFlake8(output)
	require.NoError(t, err)
	require.Len(t, issues, 2)

	first := issues[0]
	assert.Equal(t, "./app.py", first.File)
	assert.Equal(t, 10, first.Line)
	assert.Equal(t, 80, first.Column)
	assert.Equal(t, types.SeverityHigh, first.Severity)
	assert.Equal(t, types.TypeLintingError, first.Type)
	assert.Equal(t, "line too long (88 > 79 characters)", first.Message)
	assert.Equal(t, "E501", first.RuleID)
	assert.True(t, first.Fixable, "linter findings are always fixable")

	assert.Equal(t, types.SeverityCritical, issues[1].Severity)
}

func TestParseFlake8_Malformed(t *testing.T) {
	_, err := ParseFlake8([]byte("flake8: command error"))
	assert.Error(t, err)
}

func TestFlake8Severity(t *testing.T) {
	tests := []struct {
		code     string
		severity types.Severity
	}{
		{"E501", types.SeverityHigh},
		{"F821", types.SeverityCritical},
		{"W605", types.SeverityLow},
		{"C901", types.SeverityMedium},
		{"N801", types.SeverityMedium},
		{"", types.SeverityLow},
	}

	for _, tt := range tests {
		assert.Equal(t, tt.severity, flake8Severity(tt.code), "code %q", tt.code)
	}
}

func TestParseESLint(t *testing.T) {
	output := []byte(`[
  {
    "filePath": "/proj/app.js",
    "messages": [
      {"line": 3, "column": 5, "severity": 2, "message": "Unexpected console statement.", "ruleId": "no-console", "fix": null},
      {"line": 7, "column": 1, "severity": 1, "message": "Missing semicolon.", "ruleId": "semi", "fix": {"range": [120, 120], "text": ";"}}
    ]
  },
  {"filePath": "/proj/clean.js", "messages": []}
]`)

	issues, err := ParseESLint(output)
	require.NoError(t, err)
	require.Len(t, issues, 2)

	first := issues[0]
	assert.Equal(t, "/proj/app.js", first.File)
	assert.Equal(t, 3, first.Line)
	assert.Equal(t, 5, first.Column)
	assert.Equal(t, types.SeverityHigh, first.Severity)
	assert.Equal(t, types.TypeLintingError, first.Type)
	assert.Equal(t, "no-console", first.RuleID)
	assert.False(t, first.Fixable, "explicit null fix means not fixable")

	second := issues[1]
	assert.Equal(t, types.SeverityMedium, second.Severity)
	assert.True(t, second.Fixable)
}

func TestParseESLint_Malformed(t *testing.T) {
	_, err := ParseESLint([]byte("npm ERR! could not determine executable"))
	assert.Error(t, err)
}

func TestESLintSeverity(t *testing.T) {
	assert.Equal(t, types.SeverityHigh, eslintSeverity(2))
	assert.Equal(t, types.SeverityMedium, eslintSeverity(1))
	assert.Equal(t, types.SeverityLow, eslintSeverity(0))
	assert.Equal(t, types.SeverityLow, eslintSeverity(7))
}

func TestHasFix(t *testing.T) {
	assert.False(t, hasFix(nil))
	assert.False(t, hasFix([]byte("null")))
	assert.True(t, hasFix([]byte("{}")))
	assert.True(t, hasFix([]byte(`{"range":[0,1],"text":""}`)))
}

// A missing binary degrades to an empty finding list, never an error.
func TestRun_MissingBinaries(t *testing.T) {
	t.Setenv("PATH", t.TempDir())

	assert.Nil(t, NewFlake8(100).Run(context.Background(), t.TempDir()))
	assert.Nil(t, NewESLint().Run(context.Background(), t.TempDir()))
}

func TestNames(t *testing.T) {
	assert.Equal(t, "flake8", NewFlake8(100).Name())
	assert.Equal(t, "eslint", NewESLint().Name())
}
