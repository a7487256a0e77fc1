package main

import (
	"bufio"
	"context"
	"fmt"
	"os"
	"strings"

	"github.com/mark3labs/mcp-go/mcp"
)

// runInteractiveCLI starts an interactive command-line interface for testing
// the catalog without an MCP client.
func (a *App) runInteractiveCLI(ctx context.Context) {
	fmt.Println(WelcomeMsg)
	fmt.Println(HelpMsg)

	scanner := bufio.NewScanner(os.Stdin)
	for {
		fmt.Print("\n" + PrompStr)
		if !scanner.Scan() {
			break
		}

		line := scanner.Text()
		parts := strings.Fields(line)
		if len(parts) == 0 {
			continue
		}

		cmd := strings.ToLower(parts[0])
		switch cmd {
		case "exit":
			return

		case "list":
			a.cliCall(ctx, a.listVideosHandler, nil)

		case "get":
			if len(parts) < 2 {
				fmt.Println("Usage: get <id>")
				continue
			}
			a.cliCall(ctx, a.getVideoHandler, map[string]any{"id": parts[1]})

		case "add":
			if len(parts) < 2 {
				fmt.Println("Usage: add <title>")
				continue
			}
			a.cliCall(ctx, a.addVideoHandler, map[string]any{"title": strings.Join(parts[1:], " ")})

		case "delete":
			if len(parts) < 2 {
				fmt.Println("Usage: delete <id>")
				continue
			}
			a.cliCall(ctx, a.deleteVideoHandler, map[string]any{"id": parts[1]})

		case "search":
			if len(parts) < 2 {
				fmt.Println("Usage: search <query>")
				continue
			}
			a.cliCall(ctx, a.searchVideosHandler, map[string]any{"query": strings.Join(parts[1:], " ")})

		case "suggest":
			if len(parts) < 2 {
				fmt.Println("Usage: suggest <prompt>")
				continue
			}
			a.cliCall(ctx, a.suggestMetadataHandler, map[string]any{"prompt": strings.Join(parts[1:], " ")})

		case "login":
			if len(parts) < 2 {
				fmt.Println("Usage: login <password>")
				continue
			}
			a.cliCall(ctx, a.adminLoginHandler, map[string]any{"password": parts[1]})

		case "logout":
			a.cliCall(ctx, a.adminLogoutHandler, nil)

		case "export":
			if len(parts) < 2 {
				fmt.Println("Usage: export <file>")
				continue
			}
			a.cliExport(parts[1])

		case "import":
			if len(parts) < 2 {
				fmt.Println("Usage: import <file>")
				continue
			}
			a.cliImport(ctx, parts[1])

		default:
			fmt.Println(UnknownCmdMsg)
		}
	}
}

// cliCall invokes a tool handler with the given arguments and prints the
// textual result.
func (a *App) cliCall(ctx context.Context, handler func(context.Context, mcp.CallToolRequest) (*mcp.CallToolResult, error), args map[string]any) {
	req := mcp.CallToolRequest{}
	if args != nil {
		req.Params.Arguments = args
	}
	res, err := handler(ctx, req)
	if err != nil {
		fmt.Printf("Error: %v\n", err)
		return
	}
	fmt.Println(res.Content[0].(mcp.TextContent).Text)
}

// cliExport writes the current catalog to a JSON export file.
func (a *App) cliExport(path string) {
	if err := WriteExportFile(path, a.store.Videos()); err != nil {
		fmt.Printf("Error: %v\n", err)
		return
	}
	fmt.Printf("Exported %d videos to %s\n", a.store.Len(), path)
}

// cliImport replaces the catalog with the contents of an export file.
// Admin-gated like every other mutation.
func (a *App) cliImport(ctx context.Context, path string) {
	if !a.store.IsAdmin() {
		fmt.Println(AdminRequiredMsg)
		return
	}

	export, err := ReadExportFile(path)
	if err != nil {
		fmt.Printf("Error: %v\n", err)
		return
	}
	if err := a.store.Replace(export.Videos); err != nil {
		fmt.Printf("Error: %v\n", err)
		return
	}
	if a.index != nil {
		if err := a.index.Rebuild(ctx, a.store.Videos()); err != nil {
			a.logger.Printf("Warning: failed to rebuild search index: %v", err)
		}
	}
	fmt.Printf("Imported %d videos from %s\n", len(export.Videos), path)
}
