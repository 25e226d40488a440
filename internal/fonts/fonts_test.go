package fonts

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/image/font"
)

func TestFace_Metrics(t *testing.T) {
	small, err := Face(Regular, 12)
	require.NoError(t, err)
	large, err := Face(Regular, 36)
	require.NoError(t, err)

	assert.Less(t, small.Metrics().Height, large.Metrics().Height)
}

func TestFace_MonoIsFixedWidth(t *testing.T) {
	face := MustFace(Mono, 16)
	assert.Equal(t, font.MeasureString(face, "iii"), font.MeasureString(face, "WWW"))
}

func TestLoad_Caches(t *testing.T) {
	a, err := load(Regular)
	require.NoError(t, err)
	b, err := load(Regular)
	require.NoError(t, err)
	assert.Same(t, a, b)
}
