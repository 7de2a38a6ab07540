//go:build windows

package params

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestEnv_CaseInsensitive(t *testing.T) {
	env := EnvFromMap(map[string]string{"Magic": "1", "yo_FLAG": "1"})

	for _, name := range []string{"Magic", "MAGIC", "magic", "YO_FLAG", "yo_flag"} {
		_, ok := env.Lookup(name)
		assert.True(t, ok, name)
	}
}
