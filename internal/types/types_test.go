package types

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gopkg.in/yaml.v3"
)

func TestParseSeverity(t *testing.T) {
	t.Parallel()
	tests := []struct {
		input    string
		expected Severity
		wantErr  bool
	}{
		{"error", SeverityError, false},
		{"WARNING", SeverityWarning, false},
		{"Info", SeverityInfo, false},
		{"off", SeverityOff, false},
		{"fatal", SeverityOff, true},
	}
	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			t.Parallel()
			got, err := ParseSeverity(tt.input)
			if tt.wantErr {
				assert.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.expected, got)
		})
	}
}

func TestConfigRuleYAML(t *testing.T) {
	t.Parallel()

	var rules map[string]ConfigRule
	err := yaml.Unmarshal([]byte("unterminated-span:\n  severity: error\nempty-match-skipped:\n  severity: off\n"), &rules)
	require.NoError(t, err)
	assert.Equal(t, SeverityError, rules["unterminated-span"].Severity)
	assert.Equal(t, SeverityOff, rules["empty-match-skipped"].Severity)

	out, err := yaml.Marshal(ConfigRule{Severity: SeverityWarning})
	require.NoError(t, err)
	assert.Equal(t, "severity: warning\n", string(out))

	err = yaml.Unmarshal([]byte("severity: loud\n"), &ConfigRule{})
	assert.Error(t, err)
}

func TestSeverityString(t *testing.T) {
	t.Parallel()
	assert.Equal(t, "WARNING", SeverityWarning.String())
	assert.Equal(t, "Severity(9)", Severity(9).String())
}
