// Package mcptools exposes the post catalog as MCP tools.
package mcptools

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"strings"

	"github.com/mark3labs/mcp-go/mcp"
	"github.com/mark3labs/mcp-go/server"

	"github.com/eringen/postshelf/catalog"
)

// Register adds the read-only catalog tools to s.
func Register(s *server.MCPServer, posts *catalog.Catalogue) {
	s.AddTool(listTool(), listHandler(posts))
	s.AddTool(getTool(), getHandler(posts))
	s.AddTool(readTool(), readHandler(posts))
}

// --- list_posts ---

func listTool() mcp.Tool {
	return mcp.NewTool("list_posts",
		mcp.WithDescription("List all blog posts in display order, one per line as `id: title (author)`."),
	)
}

func listHandler(posts *catalog.Catalogue) server.ToolHandlerFunc {
	return func(_ context.Context, _ mcp.CallToolRequest) (*mcp.CallToolResult, error) {
		all, err := posts.List()
		if err != nil {
			return toolError(err)
		}
		if len(all) == 0 {
			return mcp.NewToolResultText("No posts."), nil
		}
		var sb strings.Builder
		for _, r := range all.Sorted() {
			fmt.Fprintf(&sb, "%s: %s (%s)\n", r.Meta.ID, r.Meta.Title, r.Meta.Author)
		}
		return mcp.NewToolResultText(sb.String()), nil
	}
}

// --- get_post ---

func getTool() mcp.Tool {
	return mcp.NewTool("get_post",
		mcp.WithDescription("Get the metadata of a blog post as JSON."),
		mcp.WithString("id",
			mcp.Description("Post id"),
			mcp.Required(),
		),
	)
}

func getHandler(posts *catalog.Catalogue) server.ToolHandlerFunc {
	return func(_ context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
		id := req.GetString("id", "")
		if id == "" {
			return toolError(fmt.Errorf("id is required"))
		}
		meta, err := posts.Metadata(id)
		if err != nil {
			return toolError(describe(id, err))
		}
		data, err := json.MarshalIndent(meta, "", "  ")
		if err != nil {
			return toolError(err)
		}
		return mcp.NewToolResultText(string(data)), nil
	}
}

// --- read_post ---

func readTool() mcp.Tool {
	return mcp.NewTool("read_post",
		mcp.WithDescription("Read the Markdown content of a blog post."),
		mcp.WithString("id",
			mcp.Description("Post id"),
			mcp.Required(),
		),
	)
}

func readHandler(posts *catalog.Catalogue) server.ToolHandlerFunc {
	return func(_ context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
		id := req.GetString("id", "")
		if id == "" {
			return toolError(fmt.Errorf("id is required"))
		}
		path, err := posts.ContentPath(id)
		if err != nil {
			return toolError(describe(id, err))
		}
		content, err := os.ReadFile(path)
		if err != nil {
			if errors.Is(err, os.ErrNotExist) {
				return toolError(fmt.Errorf("post %q has no content file", id))
			}
			return toolError(fmt.Errorf("reading post %q: %w", id, err))
		}
		return mcp.NewToolResultText(string(content)), nil
	}
}

func describe(id string, err error) error {
	if errors.Is(err, catalog.ErrNotFound) {
		return fmt.Errorf("no post with id %q", id)
	}
	return err
}

func toolError(err error) (*mcp.CallToolResult, error) {
	return mcp.NewToolResultError(err.Error()), nil
}
