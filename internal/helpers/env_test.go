package helpers

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestEnvBool(t *testing.T) {
	assert.True(t, EnvBool("REPOSITORIO_MID_VAR_INEXISTENTE", true))
	assert.False(t, EnvBool("REPOSITORIO_MID_VAR_INEXISTENTE", false))

	t.Setenv("REPOSITORIO_MID_FLAG", "TRUE")
	assert.True(t, EnvBool("REPOSITORIO_MID_FLAG", false))

	t.Setenv("REPOSITORIO_MID_FLAG", "1")
	assert.True(t, EnvBool("REPOSITORIO_MID_FLAG", false))

	t.Setenv("REPOSITORIO_MID_FLAG", "no")
	assert.False(t, EnvBool("REPOSITORIO_MID_FLAG", true))
}
