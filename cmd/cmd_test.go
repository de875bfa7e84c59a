package cmd

import (
	"bytes"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func run(t *testing.T, args ...string) (string, error) {
	t.Helper()
	var out bytes.Buffer
	rootCmd.SetOut(&out)
	rootCmd.SetErr(&out)
	rootCmd.SetArgs(append([]string{"--env-file", "", "--log-level", "error"}, args...))
	err := rootCmd.Execute()
	return out.String(), err
}

func TestSeedAndConcepts(t *testing.T) {
	db := filepath.Join(t.TempDir(), "cli.db")

	out, err := run(t, "seed", "--db", db)
	require.NoError(t, err)
	assert.Contains(t, out, "Seeded 5 concepts, 8 planets, 15 questions.")

	out, err = run(t, "seed", "--db", db)
	require.NoError(t, err)
	assert.Contains(t, out, "Seeded 0 concepts, 0 planets, 0 questions.")

	out, err = run(t, "concepts", "--db", db)
	require.NoError(t, err)
	assert.Contains(t, out, "DELETE")
	assert.Contains(t, out, "3 quiz questions")
}

func TestImportQuestions(t *testing.T) {
	dir := t.TempDir()
	db := filepath.Join(dir, "cli.db")
	_, err := run(t, "seed", "--db", db)
	require.NoError(t, err)

	bank := filepath.Join(dir, "bank.json")
	require.NoError(t, os.WriteFile(bank, []byte(`{"questions":[
		{"method":"PATCH","question":"PATCH sends what?","options":["Only changed fields","Everything"],"correctAnswer":0}
	]}`), 0o644))

	out, err := run(t, "questions", "import", bank, "--db", db)
	require.NoError(t, err)
	assert.Contains(t, out, "Imported 1 questions.")

	_, err = run(t, "questions", "import", filepath.Join(dir, "missing.json"), "--db", db)
	assert.Error(t, err)
}

func TestProgressUnknownUser(t *testing.T) {
	db := filepath.Join(t.TempDir(), "cli.db")
	_, err := run(t, "progress", "--user", "nobody", "--db", db)
	assert.ErrorContains(t, err, `user "nobody"`)
}

func TestVersion(t *testing.T) {
	out, err := run(t, "version")
	require.NoError(t, err)
	assert.Equal(t, "orbitrest (devel)\n", out)
}
