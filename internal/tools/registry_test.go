// ABOUTME: Tests for the tool registry
// ABOUTME: Covers registration order, lookup, and schema resolution

package tools

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testConfig() Config {
	return Config{
		CommandTimeout:   30 * time.Second,
		MaxRandomNumbers: 100,
	}
}

func TestNew_RegistrationOrder(t *testing.T) {
	reg, err := New(testConfig())
	require.NoError(t, err)

	var names []string
	for _, d := range reg.List() {
		names = append(names, d.Name)
	}
	assert.Equal(t, []string{
		"get_current_time",
		"get_current_date",
		"calculate",
		"get_timezone_info",
		"format_number",
		"generate_random_number",
		"execute_command",
	}, names)
}

func TestNew_DescriptorsComplete(t *testing.T) {
	reg, err := New(testConfig())
	require.NoError(t, err)

	for _, d := range reg.List() {
		assert.NotEmpty(t, d.Description, "tool %s has no description", d.Name)
		assert.NotNil(t, d.InputSchema, "tool %s has no schema", d.Name)
		assert.NotNil(t, d.resolved, "tool %s schema not resolved", d.Name)
		assert.NotNil(t, d.handler, "tool %s has no handler", d.Name)
	}
}

func TestRegistry_Resolve(t *testing.T) {
	reg, err := New(testConfig())
	require.NoError(t, err)

	d, ok := reg.Resolve("calculate")
	require.True(t, ok)
	assert.Equal(t, "calculate", d.Name)

	_, ok = reg.Resolve("no_such_tool")
	assert.False(t, ok)
}
