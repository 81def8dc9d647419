package main

import (
	"bytes"
	"encoding/base64"
	"os"
	"path/filepath"
	"testing"

	"github.com/joho/godotenv"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/spec-kit/citizenloop/internal/config"
)

func TestKeygenWritesSecretAndKeepsOtherKeys(t *testing.T) {
	envFile := filepath.Join(t.TempDir(), ".env")
	require.NoError(t, os.WriteFile(envFile, []byte("APP_PORT=9090\n"), 0o600))

	var out bytes.Buffer
	require.NoError(t, run([]string{"-env", envFile}, &out))
	assert.Contains(t, out.String(), config.JWTSecretKey)

	env, err := godotenv.Read(envFile)
	require.NoError(t, err)
	assert.Equal(t, "9090", env["APP_PORT"])
	raw, err := base64.StdEncoding.DecodeString(env[config.JWTSecretKey])
	require.NoError(t, err)
	assert.Len(t, raw, 32)
}

func TestKeygenRefusesToOverwriteWithoutForce(t *testing.T) {
	envFile := filepath.Join(t.TempDir(), ".env")
	require.NoError(t, run([]string{"-env", envFile}, &bytes.Buffer{}))
	first, err := godotenv.Read(envFile)
	require.NoError(t, err)

	assert.Error(t, run([]string{"-env", envFile}, &bytes.Buffer{}))

	require.NoError(t, run([]string{"-env", envFile, "-force"}, &bytes.Buffer{}))
	second, err := godotenv.Read(envFile)
	require.NoError(t, err)
	assert.NotEqual(t, first[config.JWTSecretKey], second[config.JWTSecretKey])
}

func TestKeygenRejectsShortSecrets(t *testing.T) {
	envFile := filepath.Join(t.TempDir(), ".env")
	assert.Error(t, run([]string{"-env", envFile, "-bytes", "8"}, &bytes.Buffer{}))
}
