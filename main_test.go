package main

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gopkg.in/yaml.v3"
)

func execute(t *testing.T, args ...string) (string, error) {
	t.Helper()
	t.Setenv("PORT", "")

	cmd := newRootCmd()
	var out, errOut bytes.Buffer
	cmd.SetOut(&out)
	cmd.SetErr(&errOut)
	cmd.SetArgs(append([]string{"--config", t.TempDir()}, args...))

	err := cmd.Execute()
	return out.String(), err
}

func TestNewRootCmd_RegistersSubcommands(t *testing.T) {
	cmd := newRootCmd()

	for _, name := range []string{"serve", "encrypt", "decrypt", "square"} {
		found := false
		for _, c := range cmd.Commands() {
			if c.Name() == name {
				found = true
				break
			}
		}
		assert.True(t, found, "expected subcommand %s to be registered", name)
	}
}

func TestEncryptCmd(t *testing.T) {
	out, err := execute(t, "encrypt", "--key", "playfair", "hello", "world")
	require.NoError(t, err)
	assert.Equal(t, "KGYVRVVQGRCZ\n", out)
}

func TestDecryptCmd(t *testing.T) {
	out, err := execute(t, "decrypt", "-k", "PLAYFAIR", "KGYV RVVQ GRCZ")
	require.NoError(t, err)
	assert.Equal(t, "HELXLOWORLDX\n", out)
}

func TestEncryptCmd_Padding(t *testing.T) {
	out, err := execute(t, "encrypt", "--key", "monarchy", "--padding", "standard", "instruments")
	require.NoError(t, err)
	assert.Equal(t, "GATLMZCLRQXA\n", out)

	out, err = execute(t, "encrypt", "--key", "monarchy", "instruments")
	require.NoError(t, err)
	assert.Equal(t, "GATLMZCLRQXAXA\n", out)
}

func TestEncryptCmd_Errors(t *testing.T) {
	_, err := execute(t, "encrypt", "hello")
	assert.Error(t, err, "missing --key")

	_, err = execute(t, "encrypt", "--key", "123", "hello")
	assert.ErrorContains(t, err, "invalid key")

	_, err = execute(t, "encrypt", "--key", "key", "123")
	assert.ErrorContains(t, err, "invalid message")

	_, err = execute(t, "encrypt", "--key", "key", "--padding", "zeros", "hello")
	assert.ErrorContains(t, err, "unknown padding")
}

func TestSquareCmd(t *testing.T) {
	out, err := execute(t, "square", "--key", "PLAYFAIR")
	require.NoError(t, err)
	assert.Equal(t, "P L A Y F\nI R B C D\nE G H K M\nN O Q S T\nU V W X Z\n", out)
}

func TestSquareCmd_YAML(t *testing.T) {
	out, err := execute(t, "square", "--key", "PLAYFAIR", "-o", "yaml")
	require.NoError(t, err)

	var got squareOutput
	require.NoError(t, yaml.Unmarshal([]byte(out), &got))
	assert.Equal(t, "PLAYFAIR", got.Key)
	assert.Equal(t, []string{"PLAYF", "IRBCD", "EGHKM", "NOQST", "UVWXZ"}, got.Rows)

	_, err = execute(t, "square", "--key", "PLAYFAIR", "-o", "toml")
	assert.ErrorContains(t, err, "unknown output format")
}

func TestSquareCmd_AccentedKey(t *testing.T) {
	accented, err := execute(t, "square", "--key", "Zoë")
	require.NoError(t, err)
	plain, err := execute(t, "square", "--key", "ZOE")
	require.NoError(t, err)

	assert.Equal(t, plain, accented)
	assert.Equal(t, "Z O E A B\nC D F G H\nI K L M N\nP Q R S T\nU V W X Y\n", accented)

	_, err = execute(t, "square", "--key", "1234")
	assert.ErrorContains(t, err, "invalid key")
}

func TestEncryptCmd_AccentedKey(t *testing.T) {
	accented, err := execute(t, "encrypt", "--key", "Zoë", "attack at dawn")
	require.NoError(t, err)
	plain, err := execute(t, "encrypt", "--key", "ZOE", "attack at dawn")
	require.NoError(t, err)

	assert.Equal(t, plain, accented)
}

func TestVersionFlag(t *testing.T) {
	out, err := execute(t, "--version")
	require.NoError(t, err)
	assert.True(t, strings.Contains(out, version))
}

func TestLogFileWritten(t *testing.T) {
	t.Setenv("PORT", "")
	logPath := filepath.Join(t.TempDir(), "playfair.log")
	t.Setenv("PLAYFAIR_LOG_FILE_PATH", logPath)

	cmd := newRootCmd()
	var out bytes.Buffer
	cmd.SetOut(&out)
	cmd.SetArgs([]string{"--config", t.TempDir(), "--log-level", "debug", "encrypt", "-k", "PLAYFAIR", "hello"})
	require.NoError(t, cmd.Execute())

	contents, err := os.ReadFile(logPath)
	require.NoError(t, err)
	assert.Contains(t, string(contents), "encrypt done")
}
