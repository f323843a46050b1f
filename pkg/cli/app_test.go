package cli

import (
	"context"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/s8ken/SYMBI-Resonate/pkg/store"
)

func writeTempContent(t *testing.T, text string) string {
	t.Helper()
	p := filepath.Join(t.TempDir(), "content.txt")
	require.NoError(t, os.WriteFile(p, []byte(text), 0600))
	return p
}

func runApp(t *testing.T, dbPath string, args ...string) error {
	t.Helper()
	app := newApp()
	return app.Run(append([]string{"symbi", "--db", dbPath}, args...))
}

func testDBPath(t *testing.T) string {
	t.Helper()
	return filepath.Join(t.TempDir(), "test.db")
}

func TestAssessCommand(t *testing.T) {
	db := testDBPath(t)
	f := writeTempContent(t, "The goal is to help you understand the method.")

	require.NoError(t, runApp(t, db, "assess", "--file", f))
	require.NoError(t, runApp(t, db, "assess", "--file", f, "--profile", "balanced", "--save"))

	assert.Error(t, runApp(t, db, "assess", "--file", filepath.Join(t.TempDir(), "missing.txt")))
	assert.Error(t, runApp(t, db, "assess", "--file", f, "--profile", "no-such-profile"))
}

func TestAssessListAndShow(t *testing.T) {
	db := testDBPath(t)
	f := writeTempContent(t, "The goal is to help you understand the method.")

	require.NoError(t, runApp(t, db, "assess", "--file", f, "--save"))
	require.NoError(t, runApp(t, db, "assess", "list"))
	require.NoError(t, runApp(t, db, "assess", "list", "--profile", "default", "--limit", "5"))

	s, err := store.Open(db)
	require.NoError(t, err)
	saved, err := s.ListAssessments(context.Background(), "", 1)
	require.NoError(t, err)
	require.Len(t, saved, 1)
	require.NoError(t, s.Close())

	require.NoError(t, runApp(t, db, "assess", "show", "--id", saved[0].ID))
	assert.Error(t, runApp(t, db, "assess", "show", "--id", "nope"))
}

func TestAssessURL(t *testing.T) {
	db := testDBPath(t)
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte("Verify the evidence and note the limitation."))
	}))
	defer srv.Close()

	require.NoError(t, runApp(t, db, "assess", "--url", srv.URL))
	assert.Error(t, runApp(t, db, "assess", "--url", srv.URL+"/../bad url"))
}

func TestBatchCommand(t *testing.T) {
	db := testDBPath(t)
	a := writeTempContent(t, "Verify the evidence and note the limitation.")
	b := writeTempContent(t, "Buy now!")

	require.NoError(t, runApp(t, db, "batch", a, b))
	assert.Error(t, runApp(t, db, "batch"))
}

func TestTicketAndValidateCommands(t *testing.T) {
	db := testDBPath(t)
	f := writeTempContent(t, "The goal is to help you understand the method.")

	// Ticket requires the assessment to exist in the database.
	assert.Error(t, runApp(t, db, "ticket", "--id", "nope", "--purpose", "audit"))

	require.NoError(t, runApp(t, db, "assess", "--file", f, "--save"))

	ctx := context.Background()
	s, err := store.Open(db)
	require.NoError(t, err)
	saved, err := s.ListAssessments(ctx, "", 1)
	require.NoError(t, err)
	require.Len(t, saved, 1)
	require.NoError(t, s.Close())

	id := saved[0].ID
	require.NoError(t, runApp(t, db, "ticket", "--id", id, "--purpose", "compliance-audit", "--save"))

	s, err = store.Open(db)
	require.NoError(t, err)
	tickets, err := s.ListTickets(ctx, 1)
	require.NoError(t, err)
	require.Len(t, tickets, 1)
	require.NoError(t, s.Close())

	require.NoError(t, runApp(t, db, "ticket", "list"))
	require.NoError(t, runApp(t, db, "validate", "--id", tickets[0].ID))
	assert.Error(t, runApp(t, db, "validate"))
	assert.Error(t, runApp(t, db, "ticket", "--purpose", "audit"))
}

func TestProfileCommands(t *testing.T) {
	db := testDBPath(t)
	require.NoError(t, runApp(t, db, "profile", "list"))
	require.NoError(t, runApp(t, db, "profile", "show", "--profile", "enhanced"))
	assert.Error(t, runApp(t, db, "profile", "show", "--profile", "bogus"))
}

func TestRulesCommands(t *testing.T) {
	db := testDBPath(t)
	require.NoError(t, runApp(t, db, "rules", "list"))
	require.NoError(t, runApp(t, db, "rules", "hash"))
}

func TestFormatFlag(t *testing.T) {
	db := testDBPath(t)
	defer func() { outputFormat = formatJSON }()
	require.NoError(t, runApp(t, db, "--format", "yaml", "profile", "list"))
}
