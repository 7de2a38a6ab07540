//go:build !windows

package params

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestEnv_CaseSensitive(t *testing.T) {
	env := EnvFromMap(map[string]string{"Magic": "1", "yo_FLAG": "1"})

	_, ok := env.Lookup("Magic")
	assert.True(t, ok)
	_, ok = env.Lookup("MAGIC")
	assert.False(t, ok, "user-declared names match exactly")
	_, ok = env.Lookup("YO_FLAG")
	assert.False(t, ok, "auto-generated names match exactly")
}
