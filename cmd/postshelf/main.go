package main

import (
	"fmt"
	"os"
	"strconv"
	"time"

	"github.com/spf13/cobra"

	"github.com/eringen/postshelf"
)

// version is set at build time via ldflags.
var version = "dev"

var postsDir string

var rootCmd = &cobra.Command{
	Use:   "postshelf",
	Short: "Serve a directory of blog posts over HTTP",
	Long: `postshelf serves a directory of blog posts. Each subdirectory of the
posts directory holds a meta.json describing the post and a post.md with
its content. The catalog is rescanned at most once per cache TTL.`,
	SilenceUsage: true,
}

var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Print the postshelf version",
	Run: func(cmd *cobra.Command, args []string) {
		fmt.Printf("postshelf %s\n", version)
	},
}

func init() {
	rootCmd.PersistentFlags().StringVarP(&postsDir, "posts", "p", postshelf.EnvOr("POSTS_DIR", "static/blogs"), "directory containing post subdirectories")
	rootCmd.AddCommand(serveCmd, listCmd, mcpCmd, versionCmd)
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

func envDuration(key string, fallback time.Duration) time.Duration {
	if d, err := time.ParseDuration(os.Getenv(key)); err == nil {
		return d
	}
	return fallback
}

func envInt(key string, fallback int) int {
	if n, err := strconv.Atoi(os.Getenv(key)); err == nil {
		return n
	}
	return fallback
}
