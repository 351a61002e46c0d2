package main

import (
	"bytes"
	"context"
	"github.com/fatih/color"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gopkg.in/yaml.v3"
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func init() {
	color.NoColor = true
}

func writeConfig(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "orbitcron.yaml")
	require.NoError(t, os.WriteFile(path, []byte(content), 0o600))
	return path
}

func execute(t *testing.T, args ...string) (string, error) {
	t.Helper()
	cmd := NewRootCommand()
	var out bytes.Buffer
	cmd.SetOut(&out)
	cmd.SetErr(&out)
	cmd.SetArgs(args)
	err := cmd.Execute()
	return out.String(), err
}

const testConfig = `
timezone: UTC
log:
  level: error
metrics:
  enabled: false
jobs:
  - name: hello
    schedule: "0 3 * * *"
    command: ["sh", "-c", "echo hello"]
    attributes: [nightly]
  - name: broken
    schedule: "0 4 1 1 *"
    command: ["sh", "-c", "exit 2"]
`

func TestValidate(t *testing.T) {
	out, err := execute(t, "validate", "*/15 9-17 * * mon-fri", "--next", "3", "--timezone", "UTC")
	require.NoError(t, err)

	lines := strings.Split(strings.TrimSpace(out), "\n")
	require.Len(t, lines, 4)
	assert.Equal(t, "*/15 9-17 * * mon-fri: valid", lines[0])
}

func TestValidate_Invalid(t *testing.T) {
	_, err := execute(t, "validate", "* * * *")
	require.Error(t, err)
	assert.Equal(t, "Invalid cron expression: '* * * *'.", err.Error())
}

func TestList_Table(t *testing.T) {
	path := writeConfig(t, testConfig)

	out, err := execute(t, "list", "-c", path)
	require.NoError(t, err)
	assert.Contains(t, out, "NAME")
	assert.Contains(t, out, "hello")
	assert.Contains(t, out, "0 3 * * *")
	assert.Contains(t, out, "nightly")
	assert.Contains(t, out, "broken")
}

func TestList_YAML(t *testing.T) {
	path := writeConfig(t, testConfig)

	out, err := execute(t, "list", "-c", path, "-o", "yaml")
	require.NoError(t, err)

	var items []listItem
	require.NoError(t, yaml.Unmarshal([]byte(out), &items))
	require.Len(t, items, 2)
	assert.Equal(t, "hello", items[0].Name)
	assert.Equal(t, []string{"nightly"}, items[0].Attributes)
	assert.NotEmpty(t, items[0].NextRun)

	_, err = execute(t, "list", "-c", path, "-o", "json")
	assert.Error(t, err)
}

func TestTick_SingleJob(t *testing.T) {
	path := writeConfig(t, testConfig)

	out, err := execute(t, "tick", "-c", path, "--job", "hello", "--force")
	require.NoError(t, err)
	assert.Equal(t, "hello: succeeded\n", out)

	out, err = execute(t, "tick", "-c", path, "--job", "broken", "--force")
	assert.Error(t, err)
	assert.Contains(t, out, "broken: failed")

	_, err = execute(t, "tick", "-c", path, "--job", "missing", "--force")
	assert.Error(t, err)
}

func TestTick_ForcedPass(t *testing.T) {
	path := writeConfig(t, testConfig)

	out, err := execute(t, "tick", "-c", path, "--force")
	assert.Error(t, err, "broken fails")
	assert.Contains(t, out, "total_jobs=2 executed_jobs=2 failed=1")
	assert.Contains(t, out, "FAILED broken")
}

func TestNewApp_History(t *testing.T) {
	dir := t.TempDir()
	path := writeConfig(t, `
log:
  level: error
history:
  path: `+filepath.Join(dir, "history.db")+`
jobs:
  - name: hello
    schedule: "* * * * *"
    command: ["true"]
`)

	a, err := newApp(&rootOptions{configPath: path})
	require.NoError(t, err)
	defer a.close()

	require.NotNil(t, a.history)
	require.NotNil(t, a.registry)
	assert.Equal(t, 1, a.manager.Len())

	a.manager.RunDueJobs(context.Background(), true)
	runs, err := a.history.Recent(context.Background(), "hello", 10)
	require.NoError(t, err)
	assert.Len(t, runs, 1)
}

func TestNewApp_DuplicateJobs(t *testing.T) {
	path := writeConfig(t, `
log:
  level: error
jobs:
  - name: same
    schedule: "* * * * *"
    command: ["true"]
  - name: same
    schedule: "0 * * * *"
    command: ["true"]
`)
	_, err := newApp(&rootOptions{configPath: path})
	assert.Error(t, err)
}
