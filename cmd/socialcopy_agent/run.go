package main

import (
	"context"
	"fmt"
	"os"
	"strings"

	"github.com/jonathan/socialcopy/internal/fetch"
	"github.com/jonathan/socialcopy/internal/gemini"
	"github.com/jonathan/socialcopy/internal/observability"
	"github.com/jonathan/socialcopy/internal/pipeline"
	"github.com/jonathan/socialcopy/internal/types"
	"github.com/spf13/cobra"
	"golang.org/x/sync/errgroup"
)

var runCommand = &cobra.Command{
	Use:   "run",
	Short: "Generate platform-tailored copy from source content",
	Long: `Runs the full generation flow from the command line: reads source content
from a file or URL, generates three copy variants for the chosen platform,
scores each one, and optionally renders a matching visual per variant.`,
	RunE: runGenerateCmd,
}

var (
	runContentPath string
	runSourceURL   string
	runPlatform    string
	runTone        string
	runLanguage    string
	runMode        string
	runAPIKey      string
	runImages      bool
	runAspectRatio string
	runUseBrowser  bool
	runVerbose     bool
)

func init() {
	runCommand.Flags().StringVarP(&runContentPath, "content", "f", "", "Path to source content text file (mutually exclusive with --source-url)")
	runCommand.Flags().StringVar(&runSourceURL, "source-url", "", "URL to fetch source content from (mutually exclusive with --content)")
	runCommand.Flags().StringVarP(&runPlatform, "platform", "p", "twitter", "Target platform: twitter, instagram, linkedin, xiaohongshu")
	runCommand.Flags().StringVarP(&runTone, "tone", "t", types.ToneProfessional, "Writing tone: professional, friendly, humorous, concise")
	runCommand.Flags().StringVarP(&runLanguage, "language", "l", "zh-CN", "Output language: zh-CN, en-US")
	runCommand.Flags().StringVarP(&runMode, "mode", "m", "social", "Content mode: social, summary, script")
	runCommand.Flags().BoolVar(&runImages, "images", false, "Render a visual for each variant")
	runCommand.Flags().StringVar(&runAspectRatio, "aspect-ratio", types.DefaultAspectRatio, "Image aspect ratio: 1:1, 16:9, 9:16")
	runCommand.Flags().BoolVar(&runUseBrowser, "use-browser", false, "Use headless browser for client-rendered pages (requires Chrome)")
	runCommand.Flags().BoolVarP(&runVerbose, "verbose", "v", false, "Print detailed debug information")

	// API key can be passed as a flag, or read from env var GEMINI_API_KEY
	runCommand.Flags().StringVar(&runAPIKey, "api-key", "", "Gemini API Key (optional, defaults to GEMINI_API_KEY env var)")

	rootCmd.AddCommand(runCommand)
}

func runGenerateCmd(_ *cobra.Command, _ []string) error {
	ctx := context.Background()

	if runContentPath == "" && runSourceURL == "" {
		return fmt.Errorf("either --content or --source-url must be provided")
	}
	if runContentPath != "" && runSourceURL != "" {
		return fmt.Errorf("--content and --source-url are mutually exclusive; provide only one")
	}

	apiKey := runAPIKey
	if apiKey == "" {
		apiKey = os.Getenv("GEMINI_API_KEY")
	}
	if apiKey == "" {
		return fmt.Errorf("GEMINI_API_KEY environment variable or --api-key flag is required")
	}

	content, err := loadSourceContent(ctx)
	if err != nil {
		return err
	}

	req, err := buildCopyRequest(content)
	if err != nil {
		return err
	}

	printer := observability.NewPrinter(os.Stdout)
	if runVerbose {
		printer.PrintSelection(req)
	}

	p := pipeline.New(pipeline.Options{
		Client: gemini.NewClient(&gemini.Config{}),
		APIKey: apiKey,
	})

	items, err := p.GenerateCopies(ctx, req)
	if err != nil {
		return fmt.Errorf("copy generation failed: %w", err)
	}

	if runImages {
		if err := renderImages(ctx, p, items); err != nil {
			return err
		}
	}

	printer.PrintCopyBatch(items)
	if runVerbose {
		printer.PrintImagePrompts(items)
	}
	return nil
}

// loadSourceContent reads the source text from the file or URL flag.
func loadSourceContent(ctx context.Context) (string, error) {
	if runContentPath != "" {
		data, err := os.ReadFile(runContentPath)
		if err != nil {
			return "", fmt.Errorf("failed to read content file: %w", err)
		}
		return string(data), nil
	}

	text, err := fetch.SourceText(ctx, runSourceURL, runUseBrowser)
	if err != nil {
		return "", fmt.Errorf("failed to fetch source content: %w", err)
	}
	return text, nil
}

// buildCopyRequest resolves the flag selections against the built-in
// catalogs.
func buildCopyRequest(content string) (*types.GenerateCopyRequest, error) {
	platform, ok := types.PlatformByID(runPlatform)
	if !ok {
		return nil, fmt.Errorf("unknown platform %q (expected one of: %s)", runPlatform, catalogIDs())
	}
	tone, ok := types.ToneByID(runTone)
	if !ok {
		return nil, fmt.Errorf("unknown tone %q", runTone)
	}
	language, ok := types.LanguageByID(runLanguage)
	if !ok {
		return nil, fmt.Errorf("unknown language %q", runLanguage)
	}
	mode, ok := types.ContentModeByID(runMode)
	if !ok {
		return nil, fmt.Errorf("unknown content mode %q", runMode)
	}

	return &types.GenerateCopyRequest{
		Content:     content,
		Platform:    platform,
		Tone:        tone,
		Language:    language,
		ContentMode: mode,
	}, nil
}

// renderImages renders a visual for every variant concurrently and attaches
// the resulting data URIs.
func renderImages(ctx context.Context, p *pipeline.Pipeline, items []types.GeneratedCopy) error {
	g, gctx := errgroup.WithContext(ctx)
	for i := range items {
		g.Go(func() error {
			url, err := p.GenerateImage(gctx, &types.GenerateImageRequest{
				Prompt:      items[i].ImagePrompt,
				AspectRatio: runAspectRatio,
			})
			if err != nil {
				return fmt.Errorf("image rendering failed for variant %d: %w", i+1, err)
			}
			items[i].ImageURL = url
			return nil
		})
	}
	return g.Wait()
}

func catalogIDs() string {
	ids := make([]string, 0, len(types.Platforms()))
	for _, p := range types.Platforms() {
		ids = append(ids, p.ID)
	}
	return strings.Join(ids, ", ")
}
