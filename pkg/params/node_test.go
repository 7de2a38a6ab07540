package params

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testTree() *Node {
	return NewNode("root").
		WithParams(&Spec{Name: "verbose", Type: Bool}).
		WithChildren(
			NewNode("sub").
				WithParams(&Spec{Name: "count", Type: Int, Default: "10"}).
				WithChildren(NewNode("leaf")),
			NewNode("other"),
		)
}

func TestNode_Identity(t *testing.T) {
	root := testTree()
	require.NoError(t, root.Validate())

	leaf, ok := root.Find("sub", "leaf")
	require.True(t, ok)
	assert.Equal(t, "root.sub.leaf", leaf.ID())
	assert.Equal(t, []string{"root", "sub", "leaf"}, leaf.Names())

	lineage := leaf.Lineage()
	require.Len(t, lineage, 3)
	assert.Same(t, root, lineage[0])
	assert.Same(t, leaf, lineage[2])

	_, ok = root.Find("sub", "missing")
	assert.False(t, ok)
}

func TestNode_ValidateNormalizesDefaults(t *testing.T) {
	root := testTree()
	require.NoError(t, root.Validate())

	sub, _ := root.Find("sub")
	spec, ok := sub.Param("count")
	require.True(t, ok)
	assert.Equal(t, 10, spec.Default)
}

func TestNode_ValidateErrors(t *testing.T) {
	tests := []struct {
		name string
		root *Node
		want string
	}{
		{
			name: "duplicate param on path",
			root: NewNode("root").
				WithParams(&Spec{Name: "x"}).
				WithChildren(NewNode("sub").WithParams(&Spec{Name: "x"})),
			want: `parameter "x" already declared on "root"`,
		},
		{
			name: "duplicate shorthand on path",
			root: NewNode("root").
				WithParams(&Spec{Name: "x", Short: "v"}).
				WithChildren(NewNode("sub").WithParams(&Spec{Name: "y", Short: "v"})),
			want: "shorthand -v already declared",
		},
		{
			name: "duplicate subcommand",
			root: NewNode("root").WithChildren(NewNode("a"), NewNode("a")),
			want: `duplicate subcommand "a"`,
		},
		{
			name: "dotted name",
			root: NewNode("root").WithChildren(NewNode("a.b")),
			want: "must not contain '.'",
		},
		{
			name: "bad default",
			root: NewNode("root").WithParams(&Spec{Name: "n", Type: Int, Default: "ten"}),
			want: "invalid default",
		},
		{
			name: "empty choices",
			root: NewNode("root").WithParams(&Spec{Name: "c", Type: Choice}),
			want: "needs at least one choice",
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.root.Validate()
			require.Error(t, err)
			assert.Contains(t, err.Error(), tt.want)
		})
	}
}

func TestNode_SiblingsMayReuseNames(t *testing.T) {
	root := NewNode("root").WithChildren(
		NewNode("a").WithParams(&Spec{Name: "x"}),
		NewNode("b").WithParams(&Spec{Name: "x"}),
	)
	assert.NoError(t, root.Validate())
}

func TestSpec_Usage(t *testing.T) {
	assert.Equal(t, "-C, --config CONFIG_PATH", (&Spec{Name: "config", Short: "C", Metavar: "CONFIG_PATH"}).Usage())
	assert.Equal(t, "--int-param INTEGER", (&Spec{Name: "int_param", Type: Int}).Usage())
	assert.Equal(t, "--show-params", (&Spec{Name: "show_params", Type: Bool}).Usage())
}

func TestSource_Order(t *testing.T) {
	assert.True(t, SourceCommandLine.Precedes(SourceEnvironment))
	assert.True(t, SourceEnvironment.Precedes(SourceConfigFile))
	assert.True(t, SourceConfigFile.Precedes(SourceDefault))
	assert.False(t, SourceDefault.Precedes(SourceCommandLine))
	assert.False(t, Source(0).Valid())
	assert.Equal(t, "CONFIG_FILE", SourceConfigFile.String())
}

func TestValues(t *testing.T) {
	spec := &Spec{Name: "n", Type: Int}
	v := NewValues([]*Resolved{{ID: "root.n", Spec: spec, Value: 3, Source: SourceConfigFile}})

	assert.Equal(t, 3, v.Int("n"))
	assert.Equal(t, SourceConfigFile, v.Source("n"))
	assert.Equal(t, []string{"n"}, v.Names())
	assert.Nil(t, v.Get("missing"))
	assert.Empty(t, v.String("n"), "typed getters return the zero value on mismatch")
}
