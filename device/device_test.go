package device

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestResolve(t *testing.T) {
	for _, tc := range []struct {
		pref string
		cuda bool
		want Kind
	}{
		{"auto", true, CUDA},
		{"auto", false, CPU},
		{"", false, CPU},
		{"cpu", true, CPU},
		{"cuda", true, CUDA},
	} {
		got, err := resolve(tc.pref, tc.cuda)
		require.NoError(t, err, tc.pref)
		assert.Equal(t, tc.want, got, tc.pref)
	}

	_, err := resolve("cuda", false)
	assert.Error(t, err)
	_, err = resolve("tpu", true)
	assert.Error(t, err)
}

func TestSelectCPU(t *testing.T) {
	d, err := Select("cpu")
	require.NoError(t, err)
	assert.Equal(t, CPU, d.Kind)
	assert.False(t, d.IsCUDA())
	assert.NotEmpty(t, d.Description)
}
