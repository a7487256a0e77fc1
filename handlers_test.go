package main

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"log"
	"testing"

	"github.com/mark3labs/mcp-go/mcp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testLogger() *log.Logger {
	return log.New(io.Discard, "", 0)
}

// fakeSuggester returns a canned suggestion or error.
type fakeSuggester struct {
	sug Suggestion
	err error
}

func (f *fakeSuggester) Suggest(_ context.Context, _ string) (Suggestion, error) {
	if f.err != nil {
		return Suggestion{}, f.err
	}
	return f.sug, nil
}

func newTestApp(t *testing.T) *App {
	t.Helper()
	store, _ := newTestStore(t)
	index, err := NewSearchIndex(fakeEmbedder(), nil)
	require.NoError(t, err)
	return &App{
		store:     store,
		index:     index,
		suggester: &fakeSuggester{},
		logger:    testLogger(),
	}
}

func callTool(t *testing.T, handler func(context.Context, mcp.CallToolRequest) (*mcp.CallToolResult, error), args map[string]any) *mcp.CallToolResult {
	t.Helper()
	req := mcp.CallToolRequest{}
	if args != nil {
		req.Params.Arguments = args
	}
	res, err := handler(context.Background(), req)
	require.NoError(t, err)
	require.NotNil(t, res)
	return res
}

func resultText(t *testing.T, res *mcp.CallToolResult) string {
	t.Helper()
	require.NotEmpty(t, res.Content)
	return res.Content[0].(mcp.TextContent).Text
}

func loginAsAdmin(t *testing.T, app *App) {
	t.Helper()
	res := callTool(t, app.adminLoginHandler, map[string]any{"password": "admin123"})
	require.False(t, res.IsError)
}

func TestMutatingToolsRequireAdminSession(t *testing.T) {
	app := newTestApp(t)

	for name, call := range map[string]func() *mcp.CallToolResult{
		"add":     func() *mcp.CallToolResult { return callTool(t, app.addVideoHandler, map[string]any{"title": "x"}) },
		"update":  func() *mcp.CallToolResult { return callTool(t, app.updateVideoHandler, map[string]any{"id": "1"}) },
		"delete":  func() *mcp.CallToolResult { return callTool(t, app.deleteVideoHandler, map[string]any{"id": "1"}) },
		"suggest": func() *mcp.CallToolResult { return callTool(t, app.suggestMetadataHandler, map[string]any{"prompt": "x"}) },
	} {
		res := call()
		assert.True(t, res.IsError, "%s must be rejected without a session", name)
		assert.Equal(t, AdminRequiredMsg, resultText(t, res))
	}
	assert.Equal(t, 2, app.store.Len(), "nothing may be mutated without a session")
}

func TestAdminLoginHandler(t *testing.T) {
	app := newTestApp(t)

	res := callTool(t, app.adminLoginHandler, map[string]any{"password": "nope"})
	assert.True(t, res.IsError)
	assert.Equal(t, LoginFailMsg, resultText(t, res))
	assert.False(t, app.store.IsAdmin())

	res = callTool(t, app.adminLoginHandler, map[string]any{"password": "admin123"})
	assert.False(t, res.IsError)
	assert.True(t, app.store.IsAdmin())

	res = callTool(t, app.adminLogoutHandler, nil)
	assert.False(t, res.IsError)
	assert.False(t, app.store.IsAdmin())
}

func TestAddVideoHandlerParsesArguments(t *testing.T) {
	app := newTestApp(t)
	loginAsAdmin(t, app)

	res := callTool(t, app.addVideoHandler, map[string]any{
		"title":           "Night Drive",
		"description":     "Neon streets after midnight.",
		"category":        "Automotive",
		"tags":            "cars, night , 4k",
		"quality_options": "720p,1080p",
		"is_downloadable": true,
		"duration":        "7:21",
	})
	require.False(t, res.IsError, resultText(t, res))

	videos := app.store.Videos()
	require.Len(t, videos, 3)
	v := videos[0]
	assert.Equal(t, "Night Drive", v.Title)
	assert.Equal(t, []string{"cars", "night", "4k"}, v.Tags)
	assert.Equal(t, []VideoQuality{Quality720p, Quality1080p}, v.QualityOptions)
	assert.True(t, v.IsDownloadable)
	assert.NotEmpty(t, v.ID)
	assert.Equal(t, 1, app.index.Count(), "new entry must be indexed")
}

func TestAddVideoHandlerRejectsDuplicateID(t *testing.T) {
	app := newTestApp(t)
	loginAsAdmin(t, app)

	res := callTool(t, app.addVideoHandler, map[string]any{"title": "Impostor", "id": "1"})
	assert.True(t, res.IsError)
	assert.Contains(t, resultText(t, res), "already exists")
	assert.Equal(t, 2, app.store.Len())
}

func TestAddVideoHandlerRequiresTitle(t *testing.T) {
	app := newTestApp(t)
	loginAsAdmin(t, app)

	res := callTool(t, app.addVideoHandler, map[string]any{"title": "   "})
	assert.True(t, res.IsError)
}

func TestUpdateVideoHandlerCarriesOverUnspecifiedFields(t *testing.T) {
	app := newTestApp(t)
	loginAsAdmin(t, app)

	before, ok := app.store.Get("1")
	require.True(t, ok)

	res := callTool(t, app.updateVideoHandler, map[string]any{"id": "1", "title": "Renamed"})
	require.False(t, res.IsError, resultText(t, res))

	after, ok := app.store.Get("1")
	require.True(t, ok)
	assert.Equal(t, "Renamed", after.Title)
	assert.Equal(t, before.UploadDate, after.UploadDate, "upload date is immutable through the edit form")
	assert.Equal(t, before.Views, after.Views)
	assert.Equal(t, before.Tags, after.Tags)
}

func TestUpdateVideoHandlerUnknownID(t *testing.T) {
	app := newTestApp(t)
	loginAsAdmin(t, app)

	res := callTool(t, app.updateVideoHandler, map[string]any{"id": "ghost", "title": "X"})
	assert.True(t, res.IsError)
	assert.Equal(t, 2, app.store.Len())
}

func TestDeleteVideoHandler(t *testing.T) {
	app := newTestApp(t)
	loginAsAdmin(t, app)

	res := callTool(t, app.deleteVideoHandler, map[string]any{"id": "1"})
	require.False(t, res.IsError)
	assert.Equal(t, []string{"2"}, ids(app.store.Videos()))

	// Deleting again is reported, not an error.
	res = callTool(t, app.deleteVideoHandler, map[string]any{"id": "1"})
	assert.False(t, res.IsError)
	assert.Contains(t, resultText(t, res), "was not in the catalog")
}

func TestSuggestMetadataHandlerReturnsDraft(t *testing.T) {
	app := newTestApp(t)
	app.suggester = &fakeSuggester{sug: Suggestion{
		Title:       "Alpine Dawn",
		Description: "Sunrise over the ridge.",
		Category:    "Nature",
		Tags:        []string{"alps", "sunrise"},
	}}
	loginAsAdmin(t, app)

	res := callTool(t, app.suggestMetadataHandler, map[string]any{"prompt": "alps sunrise drone footage"})
	require.False(t, res.IsError, resultText(t, res))

	var sug Suggestion
	require.NoError(t, json.Unmarshal([]byte(resultText(t, res)), &sug))
	assert.Equal(t, "Alpine Dawn", sug.Title)
	assert.Len(t, sug.Tags, 2)
}

func TestSuggestMetadataHandlerFailureLeavesCatalogUntouched(t *testing.T) {
	app := newTestApp(t)
	app.suggester = &fakeSuggester{err: errors.New("model unavailable")}
	loginAsAdmin(t, app)
	before := app.store.Videos()

	res := callTool(t, app.suggestMetadataHandler, map[string]any{"prompt": "anything"})
	assert.True(t, res.IsError)
	assert.Equal(t, before, app.store.Videos(), "a failed suggestion must not touch the catalog")
}

func TestGetVideoHandler(t *testing.T) {
	app := newTestApp(t)

	res := callTool(t, app.getVideoHandler, map[string]any{"id": "1"})
	require.False(t, res.IsError)

	var v Video
	require.NoError(t, json.Unmarshal([]byte(resultText(t, res)), &v))
	assert.Equal(t, "Cinematic Mountain Heights", v.Title)

	res = callTool(t, app.getVideoHandler, map[string]any{"id": "ghost"})
	assert.True(t, res.IsError)
}

func TestListVideosHandler(t *testing.T) {
	app := newTestApp(t)

	res := callTool(t, app.listVideosHandler, nil)
	require.False(t, res.IsError)
	text := resultText(t, res)
	assert.Contains(t, text, "2 videos")
	assert.Contains(t, text, "Cinematic Mountain Heights")
}

func TestRelatedVideosHandler(t *testing.T) {
	app := newTestApp(t)

	res := callTool(t, app.relatedVideosHandler, map[string]any{"id": "1"})
	require.False(t, res.IsError)
	text := resultText(t, res)
	assert.Contains(t, text, "The Future of Motion Design")
	assert.NotContains(t, text, "Cinematic Mountain Heights")
}

func TestFilterVideosHandler(t *testing.T) {
	app := newTestApp(t)

	res := callTool(t, app.filterVideosHandler, map[string]any{"category": "nature"})
	require.False(t, res.IsError)
	text := resultText(t, res)
	assert.Contains(t, text, "1 matching")
	assert.Contains(t, text, "Cinematic Mountain Heights")

	res = callTool(t, app.filterVideosHandler, map[string]any{"category": "Cooking"})
	assert.Contains(t, resultText(t, res), "No videos match")
}

func TestSearchVideosHandler(t *testing.T) {
	app := newTestApp(t)
	require.NoError(t, app.index.Rebuild(context.Background(), app.store.Videos()))

	res := callTool(t, app.searchVideosHandler, map[string]any{"query": "mountain sunrise"})
	require.False(t, res.IsError)
	assert.Contains(t, resultText(t, res), "[1] Cinematic Mountain Heights")
}
