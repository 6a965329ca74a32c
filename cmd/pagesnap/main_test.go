package main_test

import (
	"bytes"
	"context"
	"encoding/json"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/fwojciec/pagesnap"
	main "github.com/fwojciec/pagesnap/cmd/pagesnap"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const storefront = `<!DOCTYPE html>
<html><head><title>Femi by Jojo</title></head>
<body>
<header id="SITE_HEADER"><nav><a href="/shop">Shop</a></nav></header>
<main id="PAGES_CONTAINER"><section id="intro"><h1>New in</h1><p>Hand-dyed adire pieces.</p></section></main>
<footer id="SITE_FOOTER">© Femi</footer>
</body></html>`

// writePage saves html into a temp dir and returns its path.
func writePage(t *testing.T, html string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "home.html")
	require.NoError(t, os.WriteFile(path, []byte(html), 0o644))
	return path
}

func TestMain_Run_Help(t *testing.T) {
	t.Parallel()

	m := main.NewMain()
	var stdout, stderr bytes.Buffer

	err := m.Run(context.Background(), []string{"--help"}, &stdout, &stderr)

	require.NoError(t, err)
	assert.Contains(t, stdout.String(), "pagesnap")
	assert.Contains(t, stdout.String(), "--wait")
	assert.Contains(t, stdout.String(), "--out-dir")
}

func TestMain_Run_NoArgs(t *testing.T) {
	t.Parallel()

	m := main.NewMain()
	var stdout, stderr bytes.Buffer

	err := m.Run(context.Background(), []string{}, &stdout, &stderr)

	assert.Error(t, err)
}

func TestMain_Run_RejectsUnknownWaitStrategy(t *testing.T) {
	t.Parallel()

	m := main.NewMain()
	var stdout, stderr bytes.Buffer

	err := m.Run(context.Background(), []string{"--wait=forever", "https://example.com"}, &stdout, &stderr)

	assert.Error(t, err)
}

func TestMain_Run_ElementWaitRequiresTarget(t *testing.T) {
	t.Parallel()

	m := main.NewMain()
	var stdout, stderr bytes.Buffer

	err := m.Run(context.Background(), []string{"--source=browser", "--wait=element", "https://example.com"}, &stdout, &stderr)

	require.Error(t, err)
	assert.Equal(t, pagesnap.EINVALID, pagesnap.ErrorCode(err))
}

func TestMain_Run_RejectsInvalidSelector(t *testing.T) {
	t.Parallel()

	m := main.NewMain()
	var stdout, stderr bytes.Buffer

	err := m.Run(context.Background(), []string{"--main-selector=[[", writePage(t, storefront)}, &stdout, &stderr)

	require.Error(t, err)
	assert.Equal(t, pagesnap.EINVALID, pagesnap.ErrorCode(err))
}

func TestMain_Run_LocalFile(t *testing.T) {
	t.Parallel()

	t.Run("saves artifact and mirrors it to stdout", func(t *testing.T) {
		t.Parallel()

		outDir := t.TempDir()
		m := main.NewMain()
		var stdout, stderr bytes.Buffer

		err := m.Run(context.Background(), []string{
			"--out-dir", outDir,
			"--base-url", "https://www.femibyjojo.com/",
			writePage(t, storefront),
		}, &stdout, &stderr)

		require.NoError(t, err)

		data, err := os.ReadFile(filepath.Join(outDir, pagesnap.DefaultArtifactName))
		require.NoError(t, err)

		var result pagesnap.ExtractionResult
		require.NoError(t, json.Unmarshal(data, &result))
		assert.Equal(t, `<main id="PAGES_CONTAINER"><section id="intro"><h1>New in</h1><p>Hand-dyed adire pieces.</p></section></main>`, result.MainContent)
		assert.Equal(t, []pagesnap.Link{{Text: "Shop", Href: "https://www.femibyjojo.com/shop"}}, result.Links)

		out := stdout.String()
		assert.True(t, strings.HasPrefix(out, pagesnap.ContentBanner+"\n"+string(data)+"\n"))
		assert.Contains(t, out, pagesnap.HTMLBanner)
		assert.Contains(t, stderr.String(), pagesnap.Acknowledgement(pagesnap.DefaultArtifactName))
	})

	t.Run("quiet omits the page HTML", func(t *testing.T) {
		t.Parallel()

		outDir := t.TempDir()
		m := main.NewMain()
		var stdout, stderr bytes.Buffer

		err := m.Run(context.Background(), []string{"--quiet", "-o", outDir, writePage(t, storefront)}, &stdout, &stderr)

		require.NoError(t, err)
		assert.Contains(t, stdout.String(), pagesnap.ContentBanner)
		assert.NotContains(t, stdout.String(), pagesnap.HTMLBanner)
	})

	t.Run("honors custom name and selectors", func(t *testing.T) {
		t.Parallel()

		outDir := t.TempDir()
		m := main.NewMain()
		var stdout, stderr bytes.Buffer

		err := m.Run(context.Background(), []string{
			"--quiet",
			"--out-dir", outDir,
			"--name", "home.json",
			"--header-selector", "header",
			writePage(t, `<html><body><header>Top</header></body></html>`),
		}, &stdout, &stderr)

		require.NoError(t, err)
		data, err := os.ReadFile(filepath.Join(outDir, "home.json"))
		require.NoError(t, err)
		assert.Contains(t, string(data), `"header": "<header>Top</header>"`)
		assert.Contains(t, stderr.String(), pagesnap.Acknowledgement("home.json"))
	})

	t.Run("writes markdown companion", func(t *testing.T) {
		t.Parallel()

		outDir := t.TempDir()
		m := main.NewMain()
		var stdout, stderr bytes.Buffer

		err := m.Run(context.Background(), []string{
			"--quiet",
			"--markdown",
			"--out-dir", outDir,
			writePage(t, storefront),
		}, &stdout, &stderr)

		require.NoError(t, err)
		md, err := os.ReadFile(filepath.Join(outDir, "femibyjojo-extracted-content.md"))
		require.NoError(t, err)
		assert.Contains(t, string(md), "# New in")
	})

	t.Run("verbose logs to stderr", func(t *testing.T) {
		t.Parallel()

		m := main.NewMain()
		var stdout, stderr bytes.Buffer

		err := m.Run(context.Background(), []string{"--quiet", "--verbose", "-o", t.TempDir(), writePage(t, storefront)}, &stdout, &stderr)

		require.NoError(t, err)
		assert.Contains(t, stderr.String(), "msg=fetch")
		assert.Contains(t, stderr.String(), "msg=\"snapshot saved\"")
		assert.NotContains(t, stdout.String(), "msg=")
	})

	t.Run("missing file is not found", func(t *testing.T) {
		t.Parallel()

		m := main.NewMain()
		var stdout, stderr bytes.Buffer

		err := m.Run(context.Background(), []string{"--source=file", "-o", t.TempDir(), filepath.Join(t.TempDir(), "missing.html")}, &stdout, &stderr)

		require.Error(t, err)
		assert.Equal(t, pagesnap.ENOTFOUND, pagesnap.ErrorCode(err))
	})
}

func TestMain_Run_OutDirFromEnvironment(t *testing.T) {
	outDir := t.TempDir()
	t.Setenv("PAGESNAP_OUT_DIR", outDir)

	m := main.NewMain()
	var stdout, stderr bytes.Buffer

	err := m.Run(context.Background(), []string{"--quiet", writePage(t, storefront)}, &stdout, &stderr)

	require.NoError(t, err)
	_, err = os.Stat(filepath.Join(outDir, pagesnap.DefaultArtifactName))
	assert.NoError(t, err)
}
