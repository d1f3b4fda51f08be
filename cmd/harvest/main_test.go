package main

import (
	"bytes"
	"fmt"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/urfave/cli/v2"
)

const listing = `{"kind": "Listing", "data": {"after": null, "children": [
  {"kind": "t3", "data": {"name": "t3_a", "title": "Bitcoin halving explained", "subreddit": "CryptoCurrency", "ups": 40, "num_comments": 7}},
  {"kind": "t3", "data": {"name": "t3_b", "title": "Ethereum gas fees", "subreddit": "CryptoCurrency", "ups": 3}}
]}}`

// testApp returns an app writing to buffers and a config file pointing at a
// fake listing server, an on-disk chromem store and the mock embedder.
func testApp(t *testing.T) (*cli.App, *bytes.Buffer, string) {
	t.Helper()
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(listing))
	}))
	t.Cleanup(srv.Close)

	dir := t.TempDir()
	cfgPath := filepath.Join(dir, "harvest.yaml")
	content := fmt.Sprintf(`reddit:
  endpoint: %s
cursor:
  path: %s
vector_store:
  chromem:
    path: %s
ai:
  provider: mock
`, srv.URL, filepath.Join(dir, "secret.json"), filepath.Join(dir, "data"))
	require.NoError(t, os.WriteFile(cfgPath, []byte(content), 0600))

	var out bytes.Buffer
	app := newApp()
	app.Writer = &out
	app.ErrWriter = &bytes.Buffer{}
	return app, &out, cfgPath
}

func TestApp_Flags(t *testing.T) {
	app := newApp()

	var logFlag, configFlag *cli.StringFlag
	for _, flag := range app.Flags {
		if f, ok := flag.(*cli.StringFlag); ok {
			switch f.Name {
			case "log-level":
				logFlag = f
			case "config":
				configFlag = f
			}
		}
	}
	require.NotNil(t, logFlag)
	require.NotNil(t, configFlag)
	assert.Equal(t, "info", logFlag.Value)
	assert.Empty(t, configFlag.Value)
	assert.Empty(t, configFlag.EnvVars)
	assert.NotNil(t, app.Action)
}

func TestApp_InvalidLogLevel(t *testing.T) {
	app, _, cfgPath := testApp(t)
	err := app.Run([]string{"harvest", "--config", cfgPath, "--log-level", "loud", "stats"})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "invalid log level")
}

func TestApp_MissingConfigFile(t *testing.T) {
	app, _, _ := testApp(t)
	err := app.Run([]string{"harvest", "--config", filepath.Join(t.TempDir(), "nope.yaml"), "stats"})
	assert.Error(t, err)
}

func TestApp_DefaultActionCrawls(t *testing.T) {
	app, out, cfgPath := testApp(t)

	require.NoError(t, app.Run([]string{"harvest", "--config", cfgPath}))
	assert.Contains(t, out.String(), "Stopped: no_cursor")
	assert.Contains(t, out.String(), "posts stored: 2")
	assert.Contains(t, out.String(), "Cursor: (none)")
}

func TestApp_CrawlThenStatsAndSearch(t *testing.T) {
	app, out, cfgPath := testApp(t)

	require.NoError(t, app.Run([]string{"harvest", "--config", cfgPath, "crawl"}))

	out.Reset()
	require.NoError(t, app.Run([]string{"harvest", "--config", cfgPath, "stats"}))
	assert.Contains(t, out.String(), "Collection: reddit_posts")
	assert.Contains(t, out.String(), "Records: 2")

	out.Reset()
	require.NoError(t, app.Run([]string{"harvest", "--config", cfgPath, "search", "--n", "1", "--upvotes-min", "10", "bitcoin", "halving"}))
	assert.Contains(t, out.String(), "1. [")
	assert.Contains(t, out.String(), "Bitcoin halving explained (r/CryptoCurrency, 40 upvotes, 7 comments)")
	assert.NotContains(t, out.String(), "Ethereum")
}

func TestApp_SearchRequiresText(t *testing.T) {
	app, _, cfgPath := testApp(t)
	err := app.Run([]string{"harvest", "--config", cfgPath, "search"})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "search text is required")
}

func TestApp_SearchEmptyStore(t *testing.T) {
	app, out, cfgPath := testApp(t)
	require.NoError(t, app.Run([]string{"harvest", "--config", cfgPath, "search", "anything"}))
	assert.Contains(t, out.String(), "No matching posts.")
}

func TestCursorText(t *testing.T) {
	assert.Equal(t, "(none)", cursorText(""))
	assert.Equal(t, "t3_x", cursorText("t3_x"))
}
