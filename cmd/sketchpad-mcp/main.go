package main

import (
	"context"
	"fmt"
	"log"
	"os"
	"os/signal"
	"strings"
	"syscall"

	"github.com/ironsheep/sketchpad-mcp/internal/board"
	"github.com/ironsheep/sketchpad-mcp/internal/config"
	"github.com/ironsheep/sketchpad-mcp/internal/server"
	"github.com/ironsheep/sketchpad-mcp/internal/tracker"
)

// Version information - set by ldflags during build
var (
	Version   = "dev"
	BuildTime = "unknown"
	GitCommit = "unknown"
)

func usage() {
	fmt.Println("sketchpad-mcp - MCP server for a shape-recognizing sketchpad")
	fmt.Println()
	fmt.Println("Usage: sketchpad-mcp [options]")
	fmt.Println()
	fmt.Println("Options:")
	fmt.Println("  --config PATH    Read settings from a TOML file")
	fmt.Println("  --version, -v    Print version information")
	fmt.Println("  --help, -h       Print this help message")
	fmt.Println()
	fmt.Println("Environment variables:")
	fmt.Println("  SKETCHPAD_CONFIG=PATH         Same as --config")
	fmt.Println("  SKETCHPAD_WIDTH=N             Canvas width in pixels")
	fmt.Println("  SKETCHPAD_HEIGHT=N            Canvas height in pixels")
	fmt.Println("  SKETCHPAD_RECOGNITION=bool    Start with shape recognition on or off")
	fmt.Println("  SKETCHPAD_TRACKER_URL=URL     Hand-tracker websocket to follow")
	fmt.Println("  SKETCHPAD_LOG_LEVEL=debug     Enable debug logging")
	fmt.Println()
	fmt.Println("This server communicates via MCP protocol over stdin/stdout.")
	fmt.Println("Configure it in your MCP client (e.g., Claude Desktop).")
}

func main() {
	configPath := os.Getenv("SKETCHPAD_CONFIG")

	args := os.Args[1:]
	for i := 0; i < len(args); i++ {
		switch arg := args[i]; {
		case arg == "--version" || arg == "-v" || arg == "version":
			fmt.Printf("sketchpad-mcp %s\n", Version)
			fmt.Printf("  Build time: %s\n", BuildTime)
			fmt.Printf("  Git commit: %s\n", GitCommit)
			return
		case arg == "--help" || arg == "-h" || arg == "help":
			usage()
			return
		case arg == "--config":
			if i+1 >= len(args) {
				fmt.Fprintln(os.Stderr, "--config requires a path")
				os.Exit(2)
			}
			i++
			configPath = args[i]
		case strings.HasPrefix(arg, "--config="):
			configPath = strings.TrimPrefix(arg, "--config=")
		default:
			fmt.Fprintf(os.Stderr, "unknown option: %s\n", arg)
			os.Exit(2)
		}
	}

	// Configure logging to stderr (stdout is for MCP protocol)
	log.SetOutput(os.Stderr)
	log.SetFlags(log.Ldate | log.Ltime | log.Lshortfile)

	cfg, err := config.Load(configPath)
	if err != nil {
		log.Fatalf("Config error: %v", err)
	}
	if err := cfg.ApplyEnv(os.Getenv); err != nil {
		log.Fatalf("Config error: %v", err)
	}
	if err := cfg.Validate(); err != nil {
		log.Fatalf("Config error: %v", err)
	}

	if cfg.Debug() {
		log.Printf("Sketchpad MCP Server v%s (built %s, commit %s)", Version, BuildTime, GitCommit)
	}

	b, err := board.New(cfg, log.Default())
	if err != nil {
		log.Fatalf("Board error: %v", err)
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if cfg.Tracker.URL != "" {
		client := tracker.NewClient(cfg.Tracker.URL, log.Default())
		go client.Follow(ctx, func(ev tracker.Event) {
			if _, err := b.HandleEvent(ctx, ev); err != nil {
				log.Printf("Tracker event failed: %v", err)
			}
		})
	}

	server.Version = Version
	srv := server.New(b, log.Default(), cfg.Debug())
	if err := srv.Run(ctx); err != nil {
		log.Fatalf("Server error: %v", err)
	}
}
