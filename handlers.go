package main

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strings"

	"github.com/mark3labs/mcp-go/mcp"
)

// requireAdmin returns an error result when no admin session is active,
// nil otherwise. Mutating tools call it first.
func (a *App) requireAdmin() *mcp.CallToolResult {
	if !a.store.IsAdmin() {
		return mcp.NewToolResultError(AdminRequiredMsg)
	}
	return nil
}

// splitCSV turns a comma-separated argument into a trimmed slice,
// dropping empty elements.
func splitCSV(s string) []string {
	if strings.TrimSpace(s) == "" {
		return nil
	}
	parts := strings.Split(s, ",")
	out := make([]string, 0, len(parts))
	for _, p := range parts {
		if p = strings.TrimSpace(p); p != "" {
			out = append(out, p)
		}
	}
	return out
}

// videoFromArgs builds a Video from tool arguments, starting from base so
// an update submits the full entry with unspecified fields carried over.
func videoFromArgs(args map[string]any, base Video) Video {
	v := base
	if title, ok := args["title"].(string); ok && title != "" {
		v.Title = title
	}
	if description, ok := args["description"].(string); ok && description != "" {
		v.Description = description
	}
	if category, ok := args["category"].(string); ok && category != "" {
		v.Category = category
	}
	if tags, ok := args["tags"].(string); ok && tags != "" {
		v.Tags = splitCSV(tags)
	}
	if thumb, ok := args["thumbnail_url"].(string); ok && thumb != "" {
		v.ThumbnailURL = thumb
	}
	if videoURL, ok := args["video_url"].(string); ok && videoURL != "" {
		v.VideoURL = videoURL
	}
	if duration, ok := args["duration"].(string); ok && duration != "" {
		v.Duration = duration
	}
	if quality, ok := args["quality_options"].(string); ok && quality != "" {
		labels := splitCSV(quality)
		opts := make([]VideoQuality, 0, len(labels))
		for _, l := range labels {
			opts = append(opts, VideoQuality(l))
		}
		v.QualityOptions = opts
	}
	if downloadable, ok := args["is_downloadable"].(bool); ok {
		v.IsDownloadable = downloadable
	}
	return v
}

// formatVideoLine renders one catalog entry for list output.
func formatVideoLine(v Video) string {
	snippet := v.Description
	if len(snippet) > MaxSnippetLength {
		snippet = snippet[:MaxSnippetLength-3] + "..."
	}
	return fmt.Sprintf("- [%s] %s (%s, %s, %d views)\n  %s\n", v.ID, v.Title, v.Category, v.Duration, v.Views, snippet)
}

// listVideosHandler handles the list_videos tool - returns the catalog,
// most-recent-first.
func (a *App) listVideosHandler(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	videos := a.store.Videos()
	if len(videos) == 0 {
		return mcp.NewToolResultText(EmptyCatalogMsg), nil
	}

	var sb strings.Builder
	sb.WriteString(fmt.Sprintf("Catalog contains %d videos:\n", len(videos)))
	for _, v := range videos {
		sb.WriteString(formatVideoLine(v))
	}
	return mcp.NewToolResultText(sb.String()), nil
}

// getVideoHandler handles the get_video tool - returns one entry as JSON.
func (a *App) getVideoHandler(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	args, _ := request.Params.Arguments.(map[string]any)
	id, _ := args["id"].(string)

	if id = strings.TrimSpace(id); id == "" {
		return mcp.NewToolResultError("Video ID cannot be empty"), nil
	}

	v, ok := a.store.Get(id)
	if !ok {
		return mcp.NewToolResultError(fmt.Sprintf("Video %q not found", id)), nil
	}

	data, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return mcp.NewToolResultError(fmt.Sprintf("Failed to encode video: %v", err)), nil
	}
	return mcp.NewToolResultText(string(data)), nil
}

// addVideoHandler handles the add_video tool - creates a catalog entry.
func (a *App) addVideoHandler(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	if res := a.requireAdmin(); res != nil {
		return res, nil
	}

	args, ok := request.Params.Arguments.(map[string]any)
	if !ok {
		return mcp.NewToolResultError("Invalid arguments"), nil
	}

	title, _ := args["title"].(string)
	if strings.TrimSpace(title) == "" {
		return mcp.NewToolResultError("Video title cannot be empty"), nil
	}

	v := videoFromArgs(args, Video{})
	if id, ok := args["id"].(string); ok {
		v.ID = strings.TrimSpace(id)
	}

	added, err := a.store.Add(v)
	if err != nil {
		if errors.Is(err, ErrDuplicateID) {
			return mcp.NewToolResultError(fmt.Sprintf("Video id %q already exists", v.ID)), nil
		}
		return mcp.NewToolResultError(fmt.Sprintf("Failed to add video: %v", err)), nil
	}

	// Index updates are best effort; the catalog itself is already durable.
	if a.index != nil {
		if err := a.index.IndexVideo(ctx, added); err != nil {
			a.logger.Printf("Warning: failed to index video %q: %v", added.ID, err)
		}
	}

	return mcp.NewToolResultText(fmt.Sprintf("Video '%s' added with id %s.", added.Title, added.ID)), nil
}

// updateVideoHandler handles the update_video tool - whole-entry
// replacement by id. The current entry seeds the draft, so the submitted
// replacement carries every field, edited or not.
func (a *App) updateVideoHandler(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	if res := a.requireAdmin(); res != nil {
		return res, nil
	}

	args, ok := request.Params.Arguments.(map[string]any)
	if !ok {
		return mcp.NewToolResultError("Invalid arguments"), nil
	}

	id, _ := args["id"].(string)
	if id = strings.TrimSpace(id); id == "" {
		return mcp.NewToolResultError("Video ID cannot be empty"), nil
	}

	current, ok := a.store.Get(id)
	if !ok {
		return mcp.NewToolResultError(fmt.Sprintf("Video %q not found", id)), nil
	}

	replacement := videoFromArgs(args, current)
	replaced, err := a.store.Update(replacement)
	if err != nil {
		return mcp.NewToolResultError(fmt.Sprintf("Failed to update video: %v", err)), nil
	}
	if !replaced {
		return mcp.NewToolResultError(fmt.Sprintf("Video %q not found", id)), nil
	}

	if a.index != nil {
		if err := a.index.IndexVideo(ctx, replacement); err != nil {
			a.logger.Printf("Warning: failed to re-index video %q: %v", id, err)
		}
	}

	return mcp.NewToolResultText(fmt.Sprintf("Video '%s' updated.", id)), nil
}

// deleteVideoHandler handles the delete_video tool - removes an entry by id.
func (a *App) deleteVideoHandler(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	if res := a.requireAdmin(); res != nil {
		return res, nil
	}

	args, _ := request.Params.Arguments.(map[string]any)
	id, _ := args["id"].(string)
	if id = strings.TrimSpace(id); id == "" {
		return mcp.NewToolResultError("Video ID cannot be empty"), nil
	}

	removed, err := a.store.Delete(id)
	if err != nil {
		return mcp.NewToolResultError(fmt.Sprintf("Failed to delete video: %v", err)), nil
	}
	if removed == 0 {
		return mcp.NewToolResultText(fmt.Sprintf("Video '%s' was not in the catalog.", id)), nil
	}

	if a.index != nil {
		if err := a.index.RemoveVideo(ctx, id); err != nil {
			a.logger.Printf("Warning: failed to remove video %q from index: %v", id, err)
		}
	}

	return mcp.NewToolResultText(fmt.Sprintf("Video '%s' deleted.", id)), nil
}

// adminLoginHandler handles the admin_login tool.
func (a *App) adminLoginHandler(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	args, _ := request.Params.Arguments.(map[string]any)
	password, _ := args["password"].(string)

	ok, err := a.store.Login(password)
	if err != nil {
		return mcp.NewToolResultError(fmt.Sprintf("Login failed: %v", err)), nil
	}
	if !ok {
		return mcp.NewToolResultError(LoginFailMsg), nil
	}
	return mcp.NewToolResultText(LoginOkMsg), nil
}

// adminLogoutHandler handles the admin_logout tool.
func (a *App) adminLogoutHandler(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	if err := a.store.Logout(); err != nil {
		return mcp.NewToolResultError(fmt.Sprintf("Logout failed: %v", err)), nil
	}
	return mcp.NewToolResultText(LogoutMsg), nil
}

// suggestMetadataHandler handles the suggest_metadata tool - asks the
// configured provider for a structured draft. On failure nothing is
// touched; the suggestion only ever seeds a draft the admin submits
// through add_video.
func (a *App) suggestMetadataHandler(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	if res := a.requireAdmin(); res != nil {
		return res, nil
	}

	args, _ := request.Params.Arguments.(map[string]any)
	prompt, _ := args["prompt"].(string)
	if prompt = strings.TrimSpace(prompt); prompt == "" {
		return mcp.NewToolResultError("Prompt cannot be empty"), nil
	}

	suggestion, err := a.suggester.Suggest(ctx, prompt)
	if err != nil {
		return mcp.NewToolResultError(fmt.Sprintf("Suggestion failed: %v", err)), nil
	}

	data, err := json.MarshalIndent(suggestion, "", "  ")
	if err != nil {
		return mcp.NewToolResultError(fmt.Sprintf("Failed to encode suggestion: %v", err)), nil
	}
	return mcp.NewToolResultText(string(data)), nil
}

// searchVideosHandler handles the search_videos tool - semantic search
// over the catalog index.
func (a *App) searchVideosHandler(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	args, _ := request.Params.Arguments.(map[string]any)
	query, _ := args["query"].(string)
	if query = strings.TrimSpace(query); query == "" {
		return mcp.NewToolResultError("Search query cannot be empty"), nil
	}

	if a.index == nil || a.index.Count() == 0 {
		return mcp.NewToolResultText(EmptyCatalogMsg), nil
	}

	hits, err := a.index.Search(ctx, query, DefaultSearchResults)
	if err != nil {
		return mcp.NewToolResultError(fmt.Sprintf("Search failed: %v", err)), nil
	}

	var sb strings.Builder
	sb.WriteString("Matching videos:\n\n")
	for _, hit := range hits {
		sb.WriteString(fmt.Sprintf("[%s] %s (Sim: %.2f)\n", hit.ID, hit.Title, hit.Similarity))
	}
	return mcp.NewToolResultText(sb.String()), nil
}

// relatedVideosHandler handles the related_videos tool - everything in
// the catalog except the given entry, most-recent-first.
func (a *App) relatedVideosHandler(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	args, _ := request.Params.Arguments.(map[string]any)
	id, _ := args["id"].(string)
	if id = strings.TrimSpace(id); id == "" {
		return mcp.NewToolResultError("Video ID cannot be empty"), nil
	}

	if _, ok := a.store.Get(id); !ok {
		return mcp.NewToolResultError(fmt.Sprintf("Video %q not found", id)), nil
	}

	related := RelatedVideos(a.store.Videos(), id)
	if len(related) == 0 {
		return mcp.NewToolResultText("No related videos."), nil
	}

	var sb strings.Builder
	sb.WriteString(fmt.Sprintf("%d related videos:\n", len(related)))
	for _, v := range related {
		sb.WriteString(formatVideoLine(v))
	}
	return mcp.NewToolResultText(sb.String()), nil
}

// filterVideosHandler handles the filter_videos tool - non-semantic
// filtering by category, tags and downloadability.
func (a *App) filterVideosHandler(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	args, _ := request.Params.Arguments.(map[string]any)

	filter := VideoFilter{}
	if category, ok := args["category"].(string); ok {
		filter.Category = strings.TrimSpace(category)
	}
	if tags, ok := args["tags"].(string); ok {
		filter.Tags = splitCSV(tags)
	}
	if mode, ok := args["tag_filter_mode"].(string); ok {
		filter.TagFilterMode = strings.ToLower(strings.TrimSpace(mode))
	}
	if downloadable, ok := args["downloadable_only"].(bool); ok {
		filter.DownloadableOnly = downloadable
	}
	if maxResults, ok := args["max_results"].(float64); ok {
		filter.MaxResults = int(maxResults)
	}

	matches := FilterVideos(a.store.Videos(), filter)
	if len(matches) == 0 {
		return mcp.NewToolResultText("No videos match the filter."), nil
	}

	var sb strings.Builder
	sb.WriteString(fmt.Sprintf("%d matching videos:\n", len(matches)))
	for _, v := range matches {
		sb.WriteString(formatVideoLine(v))
	}
	return mcp.NewToolResultText(sb.String()), nil
}
