package procattr

import (
	"os"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestEnvInherit(t *testing.T) {
	assert.Equal(t, os.Environ(), Env(nil))
}

func TestEnvReplace(t *testing.T) {
	env := Env(map[string]string{"B": "2", "A": "1"})
	assert.Equal(t, []string{"A=1", "B=2"}, env)
}

func TestCredentialNone(t *testing.T) {
	cred, err := Credential("", "")
	require.NoError(t, err)
	assert.Nil(t, cred)
}

func TestCredentialRoot(t *testing.T) {
	cred, err := Credential("root", "")
	require.NoError(t, err)
	require.NotNil(t, cred)
	assert.Equal(t, uint32(0), cred.Uid)
	assert.Equal(t, uint32(0), cred.Gid)
}

func TestCredentialUnknown(t *testing.T) {
	_, err := Credential("no-such-user-benchmon", "")
	assert.Error(t, err)

	_, err = Credential("", "no-such-group-benchmon")
	assert.Error(t, err)
}

func TestSysProcAttr(t *testing.T) {
	attr := SysProcAttr(nil)
	assert.True(t, attr.Setpgid)
	assert.Nil(t, attr.Credential)
}
