package source

import (
	"errors"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"runtime"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeFile(t *testing.T, dir, name, content string) string {
	t.Helper()
	p := filepath.Join(dir, name)
	require.NoError(t, os.MkdirAll(filepath.Dir(p), 0o755))
	require.NoError(t, os.WriteFile(p, []byte(content), 0o644))
	return p
}

func TestIsURL(t *testing.T) {
	tests := []struct {
		pattern string
		want    bool
	}{
		{"https://example.com/config.toml", true},
		{"http://localhost:8080/conf.yaml?x=1", true},
		{"ftp://example.com/config.toml", false},
		{"https:///config.toml", false},
		{"config.toml", false},
		{"/etc/app/*.toml", false},
		{`C:\Users\me\config.toml`, false},
		{"~/.config/app/*.{toml,yaml}", false},
	}
	for _, tt := range tests {
		t.Run(tt.pattern, func(t *testing.T) {
			assert.Equal(t, tt.want, IsURL(tt.pattern))
		})
	}
}

func TestLocate_SingleMatch(t *testing.T) {
	dir := t.TempDir()
	want := writeFile(t, dir, "app/config.toml", "")
	writeFile(t, dir, "app/notes.txt", "")

	var l Locator
	c, err := l.Locate(t.Context(), filepath.Join(dir, "app", "*.{toml,yaml,yml,json,ini,xml}"), false)
	require.NoError(t, err)
	require.NotNil(t, c)
	assert.Equal(t, want, c.Location)
	assert.False(t, c.Remote)
	assert.Equal(t, ".toml", c.Ext())
}

func TestLocate_RecursivePattern(t *testing.T) {
	dir := t.TempDir()
	want := writeFile(t, dir, "a/b/c/settings.YAML", "")

	var l Locator
	c, err := l.Locate(t.Context(), filepath.Join(dir, "**", "settings.*"), true)
	require.NoError(t, err)
	assert.Equal(t, want, c.Location)
	assert.Equal(t, ".yaml", c.Ext())
}

func TestLocate_RelativePatternIsMadeAbsolute(t *testing.T) {
	dir := t.TempDir()
	want := writeFile(t, dir, "conf.json", "{}")
	t.Chdir(dir)

	var l Locator
	c, err := l.Locate(t.Context(), "conf.json", true)
	require.NoError(t, err)

	// Compare through EvalSymlinks: temp dirs may live behind a symlink.
	got, err := filepath.EvalSymlinks(c.Location)
	require.NoError(t, err)
	wantReal, err := filepath.EvalSymlinks(want)
	require.NoError(t, err)
	assert.Equal(t, wantReal, got)
	assert.True(t, filepath.IsAbs(c.Location))
}

func TestLocate_NoMatch(t *testing.T) {
	dir := t.TempDir()
	pattern := filepath.Join(dir, "*.toml")

	var l Locator
	c, err := l.Locate(t.Context(), pattern, false)
	require.NoError(t, err)
	assert.Nil(t, c)

	_, err = l.Locate(t.Context(), pattern, true)
	var nf *ConfigNotFoundError
	require.ErrorAs(t, err, &nf)
	assert.Equal(t, pattern, nf.Path)
	assert.Equal(t, "ConfigNotFoundError", nf.Kind())
	assert.Equal(t, "configuration not found at "+pattern, err.Error())
}

func TestLocate_NotAFile(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, os.Mkdir(filepath.Join(dir, "conf.d"), 0o755))

	var l Locator
	_, err := l.Locate(t.Context(), filepath.Join(dir, "conf.d"), true)

	var naf *NotAFileError
	require.ErrorAs(t, err, &naf)
	assert.Equal(t, filepath.Join(dir, "conf.d"), naf.Path)
	assert.Equal(t, "NotAFileError", naf.Kind())
	assert.Contains(t, err.Error(), "is not a file")
}

func TestLocate_Ambiguous(t *testing.T) {
	dir := t.TempDir()
	b := writeFile(t, dir, "b.yaml", "")
	a := writeFile(t, dir, "a.toml", "")

	var l Locator
	_, err := l.Locate(t.Context(), filepath.Join(dir, "*.{toml,yaml}"), false)

	var amb *AmbiguousConfigError
	require.ErrorAs(t, err, &amb)
	assert.Equal(t, []string{a, b}, amb.Matches)
	assert.Equal(t, "AmbiguousConfigError", amb.Kind())
	assert.Contains(t, err.Error(), "matches 2 files")
}

func TestLocate_URL(t *testing.T) {
	var l Locator
	c, err := l.Locate(t.Context(), "https://example.com/conf/app.TOML?rev=3", true)
	require.NoError(t, err)
	assert.True(t, c.Remote)
	assert.Equal(t, ".toml", c.Ext())
}

func TestRead_Local(t *testing.T) {
	p := writeFile(t, t.TempDir(), "c.ini", "[app]\nk = v\n")

	var l Locator
	data, err := l.Read(t.Context(), &Candidate{Location: p})
	require.NoError(t, err)
	assert.Equal(t, "[app]\nk = v\n", string(data))
}

func TestRead_Remote(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		switch r.URL.Path {
		case "/ok.toml":
			_, _ = w.Write([]byte("[app]\nverbosity = \"DEBUG\"\n"))
		case "/slow.toml":
			select {
			case <-r.Context().Done():
			case <-time.After(2 * time.Second):
			}
		default:
			http.NotFound(w, r)
		}
	}))
	defer srv.Close()

	l := Locator{Client: srv.Client(), Timeout: 100 * time.Millisecond}

	t.Run("success", func(t *testing.T) {
		data, err := l.Read(t.Context(), &Candidate{Location: srv.URL + "/ok.toml", Remote: true})
		require.NoError(t, err)
		assert.Contains(t, string(data), "verbosity")
	})

	t.Run("not found", func(t *testing.T) {
		_, err := l.Read(t.Context(), &Candidate{Location: srv.URL + "/missing.toml", Remote: true})
		var rf *RemoteFetchError
		require.ErrorAs(t, err, &rf)
		assert.Equal(t, http.StatusNotFound, rf.Status)
		assert.Equal(t, "RemoteFetchError", rf.Kind())
	})

	t.Run("timeout", func(t *testing.T) {
		start := time.Now()
		_, err := l.Read(t.Context(), &Candidate{Location: srv.URL + "/slow.toml", Remote: true})
		var rf *RemoteFetchError
		require.ErrorAs(t, err, &rf)
		assert.Zero(t, rf.Status)
		assert.Less(t, time.Since(start), 2*time.Second)
	})

	t.Run("unreachable", func(t *testing.T) {
		_, err := l.Read(t.Context(), &Candidate{Location: "http://127.0.0.1:1/conf.toml", Remote: true})
		var rf *RemoteFetchError
		require.True(t, errors.As(err, &rf))
	})
}

func TestDefaultPattern(t *testing.T) {
	got := PatternIn("/home/me/.config", "my-cli", "*.{toml,yaml}")
	assert.Equal(t, filepath.Join("/home/me/.config", "my-cli", "*.{toml,yaml}"), got)

	dir, err := os.UserConfigDir()
	if err != nil {
		assert.Empty(t, DefaultPattern("my-cli", "*.toml"))
		return
	}
	assert.Equal(t, filepath.Join(escapeMeta(dir), "my-cli", "*.toml"), DefaultPattern("my-cli", "*.toml"))
}

func TestLocate_MetacharactersInDirectory(t *testing.T) {
	if runtime.GOOS == "windows" {
		t.Skip("brackets and escapes behave differently on Windows")
	}
	dir := filepath.Join(t.TempDir(), "proj[1]")
	want := writeFile(t, dir, "dummy.toml", "")
	writeFile(t, dir, "cfg{a,b}/app/settings.yaml", "")

	var l Locator

	t.Run("relative to working directory", func(t *testing.T) {
		t.Chdir(dir)
		c, err := l.Locate(t.Context(), "dummy.toml", true)
		require.NoError(t, err)
		got, err := filepath.EvalSymlinks(c.Location)
		require.NoError(t, err)
		wantReal, err := filepath.EvalSymlinks(want)
		require.NoError(t, err)
		assert.Equal(t, wantReal, got)
	})

	t.Run("escaped pattern", func(t *testing.T) {
		c, err := l.Locate(t.Context(), filepath.Join(escapeMeta(dir), "*.toml"), true)
		require.NoError(t, err)
		assert.Equal(t, want, c.Location)
	})

	t.Run("default pattern under such a directory", func(t *testing.T) {
		pattern := PatternIn(filepath.Join(dir, "cfg{a,b}"), "app", "*.{toml,yaml}")
		c, err := l.Locate(t.Context(), pattern, true)
		require.NoError(t, err)
		assert.Equal(t, filepath.Join(dir, "cfg{a,b}", "app", "settings.yaml"), c.Location)
	})

	t.Run("missing file keeps the literal path", func(t *testing.T) {
		t.Chdir(dir)
		_, err := l.Locate(t.Context(), "other.toml", true)
		var nf *ConfigNotFoundError
		require.ErrorAs(t, err, &nf)
		assert.True(t, strings.HasSuffix(nf.Path, filepath.Join("proj[1]", "other.toml")), nf.Path)
	})
}

func TestAbsPattern(t *testing.T) {
	home, err := os.UserHomeDir()
	require.NoError(t, err)
	wd, err := os.Getwd()
	require.NoError(t, err)

	tests := []struct {
		pattern string
		want    string
	}{
		{"/etc/app/*.toml", filepath.FromSlash("/etc/app/*.toml")},
		{"conf/*.toml", filepath.Join(wd, "conf", "*.toml")},
		{"~/app/*.toml", filepath.Join(home, "app", "*.toml")},
		{"./a/../b.toml", filepath.Join(wd, "b.toml")},
	}
	for _, tt := range tests {
		t.Run(tt.pattern, func(t *testing.T) {
			if runtime.GOOS == "windows" && filepath.IsAbs(tt.want) != filepath.IsAbs(tt.pattern) {
				t.Skip("no drive letter")
			}
			got, err := AbsPattern(tt.pattern)
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}
