package main

import (
	"context"
	"flag"
	"log"
	"os"

	"github.com/mark3labs/mcp-go/mcp"
	"github.com/mark3labs/mcp-go/server"
	"google.golang.org/genai"
)

// App bundles the catalog store, the semantic index and the suggestion
// provider behind the tool handlers.
type App struct {
	store     *CatalogStore
	index     *SearchIndex
	suggester SuggestionProvider
	logger    *log.Logger
	testMode  bool
}

func main() {
	testMode := flag.Bool("t", false, "Run in interactive CLI test mode")
	flag.Parse()

	ctx := context.Background()
	logger := log.New(os.Stderr, "", log.LstdFlags)

	cfg, err := LoadConfig(logger)
	if err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}

	var client *genai.Client
	if cfg.SuggestionProvider == "gemini" {
		if cfg.Gemini.APIKey == "" {
			log.Fatal("GEMINI_API_KEY environment variable is required")
		}
		client, err = genai.NewClient(ctx, &genai.ClientConfig{
			APIKey: cfg.Gemini.APIKey,
		})
		if err != nil {
			log.Fatalf("Failed to create GenAI client: %v", err)
		}
	}

	backend, err := NewCatalogBackend(cfg, logger)
	if err != nil {
		log.Fatalf("Failed to open catalog backend: %v", err)
	}

	store, outcome, err := NewCatalogStore(backend, NewStaticVerifier(cfg.AdminSecret), logger)
	if err != nil {
		log.Fatalf("Failed to initialize catalog store: %v", err)
	}
	defer store.Close()
	logger.Printf("Catalog initialized (%s, %d videos)", outcome, store.Len())

	suggester, err := NewSuggestionProvider(cfg, client, logger)
	if err != nil {
		log.Fatalf("Failed to create suggestion provider: %v", err)
	}

	app := &App{
		store:     store,
		suggester: suggester,
		logger:    logger,
		testMode:  *testMode,
	}

	embFunc, err := newEmbeddingFunc(cfg, client)
	if err != nil {
		log.Fatalf("Failed to create embedding function: %v", err)
	}
	index, err := NewSearchIndex(embFunc, logger)
	if err != nil {
		log.Fatalf("Failed to create search index: %v", err)
	}
	app.index = index

	// The index is derived state; a failed rebuild just degrades search.
	if err := index.Rebuild(ctx, store.Videos()); err != nil {
		logger.Printf("Warning: failed to build search index: %v", err)
	}

	if *testMode {
		app.runInteractiveCLI(ctx)
		return
	}

	s := server.NewMCPServer(ServerName, ServerVersion)

	// --- Tool Registration ---

	s.AddTool(mcp.NewTool("list_videos",
		mcp.WithDescription("Lists all catalog entries, most recent first."),
	), app.listVideosHandler)

	s.AddTool(mcp.NewTool("get_video",
		mcp.WithDescription("Returns the full metadata record of one video."),
		mcp.WithString("id", mcp.Required(), mcp.Description("Unique ID of the video")),
	), app.getVideoHandler)

	s.AddTool(mcp.NewTool("add_video",
		mcp.WithDescription("Adds a video to the catalog. Requires an admin session."),
		mcp.WithString("title", mcp.Required(), mcp.Description("Display title")),
		mcp.WithString("description", mcp.Description("Free-text description")),
		mcp.WithString("category", mcp.Description("Category label")),
		mcp.WithString("tags", mcp.Description("Comma-separated tags")),
		mcp.WithString("thumbnail_url", mcp.Description("Thumbnail locator")),
		mcp.WithString("video_url", mcp.Description("Media locator")),
		mcp.WithString("duration", mcp.Description("Display duration, e.g. 9:56")),
		mcp.WithString("quality_options", mcp.Description("Comma-separated quality labels (360p, 480p, 720p, 1080p)")),
		mcp.WithBoolean("is_downloadable", mcp.Description("Whether clients may offer a download")),
		mcp.WithString("id", mcp.Description("Optional explicit ID; generated when omitted")),
	), app.addVideoHandler)

	s.AddTool(mcp.NewTool("update_video",
		mcp.WithDescription("Replaces a video's metadata record by ID. Requires an admin session."),
		mcp.WithString("id", mcp.Required(), mcp.Description("Unique ID of the video to update")),
		mcp.WithString("title", mcp.Description("Display title")),
		mcp.WithString("description", mcp.Description("Free-text description")),
		mcp.WithString("category", mcp.Description("Category label")),
		mcp.WithString("tags", mcp.Description("Comma-separated tags")),
		mcp.WithString("thumbnail_url", mcp.Description("Thumbnail locator")),
		mcp.WithString("video_url", mcp.Description("Media locator")),
		mcp.WithString("duration", mcp.Description("Display duration")),
		mcp.WithString("quality_options", mcp.Description("Comma-separated quality labels")),
		mcp.WithBoolean("is_downloadable", mcp.Description("Whether clients may offer a download")),
	), app.updateVideoHandler)

	s.AddTool(mcp.NewTool("delete_video",
		mcp.WithDescription("Removes a video from the catalog by ID. Requires an admin session."),
		mcp.WithString("id", mcp.Required(), mcp.Description("Unique ID of the video to delete")),
	), app.deleteVideoHandler)

	s.AddTool(mcp.NewTool("admin_login",
		mcp.WithDescription("Starts an admin session."),
		mcp.WithString("password", mcp.Required(), mcp.Description("Admin password")),
	), app.adminLoginHandler)

	s.AddTool(mcp.NewTool("admin_logout",
		mcp.WithDescription("Ends the admin session."),
	), app.adminLogoutHandler)

	s.AddTool(mcp.NewTool("suggest_metadata",
		mcp.WithDescription("Asks the configured AI provider for a metadata draft (title, description, category, tags). Requires an admin session."),
		mcp.WithString("prompt", mcp.Required(), mcp.Description("Free-text description or keywords for the video")),
	), app.suggestMetadataHandler)

	s.AddTool(mcp.NewTool("search_videos",
		mcp.WithDescription("Searches the catalog by meaning using semantic similarity."),
		mcp.WithString("query", mcp.Required(), mcp.Description("Natural language search query")),
	), app.searchVideosHandler)

	s.AddTool(mcp.NewTool("related_videos",
		mcp.WithDescription("Lists every other catalog entry, for a watch-page style related list."),
		mcp.WithString("id", mcp.Required(), mcp.Description("Video the related list is built for")),
	), app.relatedVideosHandler)

	s.AddTool(mcp.NewTool("filter_videos",
		mcp.WithDescription("Filters the catalog by category, tags and downloadability."),
		mcp.WithString("category", mcp.Description("Category to match, case-insensitive")),
		mcp.WithString("tags", mcp.Description("Comma-separated tags to match")),
		mcp.WithString("tag_filter_mode", mcp.Description("'all' (AND) or 'any' (OR, default)")),
		mcp.WithBoolean("downloadable_only", mcp.Description("Keep only downloadable entries")),
		mcp.WithNumber("max_results", mcp.Description("Limit the number of results")),
	), app.filterVideosHandler)

	log.Println("ReelMCP Server starting on Stdio...")
	if err := server.ServeStdio(s); err != nil {
		log.Fatalf("Server error: %v", err)
	}
}
