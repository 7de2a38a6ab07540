package provenance

import (
	"bytes"
	"encoding/csv"
	"encoding/json"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/getmockd/clix/pkg/format"
	"github.com/getmockd/clix/pkg/params"
	"github.com/getmockd/clix/pkg/resolve"
)

func testContext(t *testing.T) *resolve.Context {
	t.Helper()
	leaf := params.NewNode("sub").WithParams(
		&params.Spec{Name: "int_param", Type: params.Int, Default: 10},
		&params.Spec{Name: "timeout", Type: params.Duration, Default: "30s"},
	)
	root := params.NewNode("my-cli").WithParams(
		&params.Spec{Name: "config", Short: "C", Metavar: "CONFIG_PATH", NoConfig: true},
		&params.Spec{Name: "flag", Type: params.Bool, EnvVars: []string{"custom"}, ShowEnv: true},
		&params.Spec{Name: "secret", Hidden: true, NoAutoEnv: true},
	).WithChildren(leaf)
	require.NoError(t, root.Validate())

	doc := format.Document{"my-cli": map[string]any{"sub": map[string]any{"int_param": 3}}}
	r := resolve.Resolver{}
	ctx, err := r.Resolve(leaf.Lineage(), doc,
		map[string]any{"my-cli.config": "conf.toml"},
		params.EnvFromMap(map[string]string{"custom": "true"}))
	require.NoError(t, err)
	return ctx
}

func TestReport(t *testing.T) {
	rows := Report(testContext(t))
	require.Len(t, rows, 5)

	assert.Equal(t, Row{
		ID:            "my-cli.config",
		Spec:          "-C, --config CONFIG_PATH",
		Type:          "str",
		AllowedInConf: false,
		Exposed:       true,
		AcceptsEnv:    true,
		EnvVars:       []string{"MY_CLI_CONFIG"},
		Default:       "",
		Value:         "conf.toml",
		Source:        params.SourceCommandLine,
	}, rows[0])

	assert.Equal(t, "my-cli.flag", rows[1].ID)
	assert.Equal(t, true, rows[1].Value)
	assert.Equal(t, params.SourceEnvironment, rows[1].Source)
	assert.Equal(t, "custom", rows[1].EnvVar)
	assert.Equal(t, []string{"custom", "MY_CLI_FLAG"}, rows[1].EnvVars)
	assert.True(t, rows[1].ShowEnv)

	assert.False(t, rows[2].Exposed)
	assert.False(t, rows[2].AcceptsEnv)
	assert.Empty(t, rows[2].EnvVars)

	assert.Equal(t, 3, rows[3].Value)
	assert.Equal(t, 10, rows[3].Default)
	assert.Equal(t, params.SourceConfigFile, rows[3].Source)

	// Default-only parameters still get a complete record.
	assert.Equal(t, "my-cli.sub.timeout", rows[4].ID)
	assert.Equal(t, (30 * time.Second).String(), rows[4].Value)
	assert.Equal(t, params.SourceDefault, rows[4].Source)
}

func TestRender_Rounded(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, Render(&buf, Report(testContext(t)), FormatRounded))

	out := buf.String()
	assert.True(t, strings.HasPrefix(out, "╭"), out)
	assert.Contains(t, out, "Allowed in conf?")
	assert.Contains(t, out, "my-cli.sub.int_param")
	assert.Contains(t, out, "CONFIG_FILE")
	assert.Contains(t, out, "✓")
	assert.Contains(t, out, "✘")
}

func TestRender_Plain(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, Render(&buf, Report(testContext(t)), FormatPlain))

	lines := strings.Split(strings.TrimSpace(buf.String()), "\n")
	require.Len(t, lines, 6)
	assert.True(t, strings.HasPrefix(lines[0], "ID  "))
	assert.True(t, strings.HasPrefix(lines[1], "my-cli.config  "))
	assert.True(t, strings.HasSuffix(lines[1], "COMMANDLINE"))
}

func TestRender_JSON(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, Render(&buf, Report(testContext(t)), FormatJSON))

	var got []map[string]any
	require.NoError(t, json.Unmarshal(buf.Bytes(), &got))
	require.Len(t, got, 5)
	assert.Equal(t, "my-cli.flag", got[1]["id"])
	assert.Equal(t, "ENVIRONMENT", got[1]["source"])
	assert.Equal(t, true, got[1]["value"])
	assert.Equal(t, "30s", got[4]["default"])

	buf.Reset()
	require.NoError(t, Render(&buf, nil, FormatJSON))
	assert.Equal(t, "[]\n", buf.String())
}

func TestRender_CSV(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, Render(&buf, Report(testContext(t)), FormatCSV))

	records, err := csv.NewReader(&buf).ReadAll()
	require.NoError(t, err)
	require.Len(t, records, 6)
	assert.Equal(t, Headers, records[0])
	assert.Equal(t, "custom, MY_CLI_FLAG", records[2][7])
	assert.Equal(t, "DEFAULT", records[5][10])
}

func TestRender_Vertical(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, Render(&buf, Report(testContext(t)), FormatVertical))

	out := buf.String()
	assert.Contains(t, out, "1. row")
	assert.Contains(t, out, "5. row")
	assert.Contains(t, out, "Source:")
}

func TestRender_UnknownFormat(t *testing.T) {
	err := Render(&bytes.Buffer{}, nil, Format("html"))
	assert.EqualError(t, err, `unknown table format "html"`)
}

func TestFormatNames(t *testing.T) {
	assert.Equal(t, []string{"rounded", "plain", "json", "csv", "vertical"}, FormatNames())
}
