// Package main is the entry point for the folio admin tool. The serve
// command runs the HTTP API behind the admin UI; the rest of the
// commands operate on the content workspace directly, for editors who
// prefer the terminal.
package main

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"path/filepath"
	"strings"
	"syscall"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/cobra"

	"folio/internal/config"
	"folio/internal/handlers"
	"folio/internal/models"
	"folio/internal/router"
	"folio/internal/site"
	"folio/internal/storage"
	"folio/internal/store"
	"folio/internal/validate"
	"folio/internal/web"
)

func main() {
	// Credentials usually live in a .env next to the checkout; a missing
	// file is fine.
	godotenv.Load()

	rootCmd := &cobra.Command{
		Use:   "folio",
		Short: "Admin backend for a static portfolio site",
	}

	rootCmd.AddCommand(serveCmd())
	rootCmd.AddCommand(uploadCmd())
	rootCmd.AddCommand(addURLCmd())
	rootCmd.AddCommand(deleteCmd())
	rootCmd.AddCommand(publishCmd())
	rootCmd.AddCommand(validateCmd())

	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

// workspace loads the process configuration and the site configuration
// of the content checkout it points at.
func workspace() (*config.Config, *config.Site, error) {
	cfg, err := config.Load()
	if err != nil {
		return nil, nil, err
	}
	st, err := config.LoadSite(cfg.ConfigPath(), cfg.DataPath(), cfg.LangPath())
	if err != nil {
		return nil, nil, err
	}
	return cfg, st, nil
}

// mediaBackends constructs whichever storage tiers have credentials.
// Each constructor returns nil when its tier is not configured.
func mediaBackends(cfg *config.Config, st *config.Site) (*storage.Cloudinary, *storage.Releases, *storage.S3, error) {
	cdn, err := storage.NewCloudinary(cfg.CloudinaryCloudName, cfg.CloudinaryAPIKey, cfg.CloudinaryAPISecret)
	if err != nil {
		return nil, nil, nil, fmt.Errorf("cloudinary: %w", err)
	}

	owner, repo := st.GitHubRepo()
	releases := storage.NewReleases(cfg.GitHubToken, owner, repo, st.GitHubReleaseTag())

	objects, err := storage.NewS3(cfg.S3Endpoint, cfg.S3Region, cfg.S3AccessKey, cfg.S3SecretKey, cfg.S3Bucket, cfg.S3PublicURL)
	if err != nil {
		return nil, nil, nil, fmt.Errorf("s3: %w", err)
	}

	return cdn, releases, objects, nil
}

// requireCategory fails with the list of valid categories, so a typo on
// the command line is immediately actionable.
func requireCategory(st *config.Site, category string) error {
	if _, ok := st.CategoryDataFile(category); !ok {
		return fmt.Errorf("category %q is invalid (have: %s)", category, strings.Join(st.CategoryIDs(), ", "))
	}
	return nil
}

func serveCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "serve",
		Short: "Start the admin API server",
		RunE: func(cmd *cobra.Command, args []string) error {
			// Structured logger: JSON in production, text in development.
			logger := slog.New(slog.NewTextHandler(os.Stdout, &slog.HandlerOptions{
				Level: slog.LevelDebug,
			}))
			slog.SetDefault(logger)

			cfg, st, err := workspace()
			if err != nil {
				return err
			}
			if !cfg.IsDev() {
				slog.SetDefault(slog.New(slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{
					Level: slog.LevelInfo,
				})))
			}

			slog.Info("configuration loaded",
				"env", cfg.Env,
				"addr", cfg.Addr(),
				"content_root", cfg.ContentRoot,
			)

			// Staging area for multipart uploads.
			if err := os.MkdirAll(cfg.UploadDir, 0o755); err != nil {
				return fmt.Errorf("create upload dir: %w", err)
			}

			cdn, releases, objects, err := mediaBackends(cfg, st)
			if err != nil {
				return err
			}

			// The media coordinator is optional; without it the API answers
			// upload and remote-delete requests with 503.
			var uploader handlers.Uploader
			if cdn == nil && releases == nil && objects == nil {
				slog.Warn("no media backend configured, uploads disabled")
			} else {
				uploader = storage.NewCoordinator(st, cdn, releases, objects)
				slog.Info("media backends ready",
					"cloudinary", cdn != nil,
					"github_releases", releases != nil,
					"s3", objects != nil,
				)
			}

			api := handlers.NewAPI(cfg, st, store.NewContentStore(st), uploader, site.NewPusher(cfg.ContentRoot))
			r := router.New(api, web.NewSPA(cfg.AdminDir))

			// Read and write timeouts must accommodate multi-hundred-megabyte
			// uploads being relayed to the storage backends.
			srv := &http.Server{
				Addr:              cfg.Addr(),
				Handler:           r,
				ReadHeaderTimeout: 5 * time.Second,
				ReadTimeout:       15 * time.Minute,
				WriteTimeout:      15 * time.Minute,
				IdleTimeout:       120 * time.Second,
			}

			// Start the server in a goroutine so we can listen for shutdown
			// signals.
			go func() {
				slog.Info("server starting", "addr", cfg.Addr())
				if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
					slog.Error("server failed to start", "error", err)
					os.Exit(1)
				}
			}()

			// Graceful shutdown: wait for SIGINT or SIGTERM, then drain.
			quit := make(chan os.Signal, 1)
			signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
			sig := <-quit
			slog.Info("shutdown signal received", "signal", sig)

			ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
			defer cancel()
			if err := srv.Shutdown(ctx); err != nil {
				return fmt.Errorf("server forced to shutdown: %w", err)
			}

			slog.Info("server stopped gracefully")
			return nil
		},
	}
}

func uploadCmd() *cobra.Command {
	var (
		file        string
		title       string
		category    string
		medium      string
		genre       string
		description string
		created     string
		pile        bool
	)

	cmd := &cobra.Command{
		Use:   "upload",
		Short: "Upload a media file and record its entry",
		Long: `Pushes a file to the storage backend configured for the category and
appends an entry to the category's data file. With --pile, --file names a
directory instead: every image in it is uploaded, the first (sorted by
filename) becomes the cover and the rest the gallery.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, st, err := workspace()
			if err != nil {
				return err
			}
			if err := requireCategory(st, category); err != nil {
				return err
			}

			cdn, releases, objects, err := mediaBackends(cfg, st)
			if err != nil {
				return err
			}
			co := storage.NewCoordinator(st, cdn, releases, objects)

			ctx := cmd.Context()
			var coverURL string
			var gallery []string
			if pile {
				images, err := pileImages(file)
				if err != nil {
					return err
				}
				fmt.Printf("Pile mode: found %d images\n", len(images))
				urls := make([]string, 0, len(images))
				for _, img := range images {
					res, err := co.Upload(ctx, category, img, filepath.Base(img))
					if err != nil {
						return fmt.Errorf("upload %s: %w", img, err)
					}
					fmt.Printf("  %s -> %s\n", filepath.Base(img), res.URL)
					urls = append(urls, res.URL)
				}
				coverURL = urls[0]
				gallery = urls[1:]
			} else {
				res, err := co.Upload(ctx, category, file, filepath.Base(file))
				if err != nil {
					return err
				}
				coverURL = res.URL
			}

			entry := models.NewEntry(category, coverURL, gallery, models.EntryFields{
				Title:       title,
				Medium:      medium,
				Genre:       genre,
				Description: description,
				Created:     created,
			}, st.LanguageCodes())

			if err := store.NewContentStore(st).Append(category, entry); err != nil {
				return err
			}
			for _, stamped := range site.StampLastUpdated(cfg.ContentRoot, time.Now()) {
				fmt.Printf("Updated timestamp in %s\n", stamped)
			}

			fmt.Printf("Added %q to %s as %s\n", title, category, entry.ID())
			return nil
		},
	}

	cmd.Flags().StringVar(&file, "file", "", "path to the media file, or a directory with --pile")
	cmd.Flags().StringVar(&title, "title", "", "title of the work")
	cmd.Flags().StringVar(&category, "cat", "", "content category")
	cmd.Flags().StringVar(&medium, "medium", "", "medium (for visual work)")
	cmd.Flags().StringVar(&genre, "genre", "", "genre (for music and video)")
	cmd.Flags().StringVar(&description, "description", "", "description of the work")
	cmd.Flags().StringVar(&created, "created", "", "creation date (2006-01-02), defaults to today")
	cmd.Flags().BoolVar(&pile, "pile", false, "upload every image in a directory as one gallery item")
	cmd.MarkFlagRequired("file")
	cmd.MarkFlagRequired("title")
	cmd.MarkFlagRequired("cat")
	return cmd
}

// pileImages lists the image files directly inside dir. os.ReadDir
// returns entries sorted by filename, which fixes the cover choice.
func pileImages(dir string) ([]string, error) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return nil, err
	}

	exts := map[string]bool{
		".jpg": true, ".jpeg": true, ".png": true, ".webp": true,
		".gif": true, ".tiff": true, ".bmp": true,
	}

	var files []string
	for _, e := range entries {
		if e.IsDir() {
			continue
		}
		if exts[strings.ToLower(filepath.Ext(e.Name()))] {
			files = append(files, filepath.Join(dir, e.Name()))
		}
	}
	if len(files) == 0 {
		return nil, fmt.Errorf("no image files found in %q", dir)
	}
	return files, nil
}

func addURLCmd() *cobra.Command {
	var (
		rawURL      string
		title       string
		category    string
		medium      string
		genre       string
		description string
		created     string
	)

	cmd := &cobra.Command{
		Use:   "add-url",
		Short: "Record an entry for media that is already hosted",
		Long: `Appends a media entry pointing at an existing URL without uploading
anything. Useful for audio hosted on the Internet Archive or files already
attached to a release.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, st, err := workspace()
			if err != nil {
				return err
			}
			if err := requireCategory(st, category); err != nil {
				return err
			}

			entry := models.NewEntry(category, rawURL, nil, models.EntryFields{
				Title:       title,
				Medium:      medium,
				Genre:       genre,
				Description: description,
				Created:     created,
			}, st.LanguageCodes())

			if err := store.NewContentStore(st).Append(category, entry); err != nil {
				return err
			}
			site.StampLastUpdated(cfg.ContentRoot, time.Now())

			fmt.Printf("Added %q to %s as %s\n", title, category, entry.ID())
			return nil
		},
	}

	cmd.Flags().StringVar(&rawURL, "url", "", "URL of the hosted media")
	cmd.Flags().StringVar(&title, "title", "", "title of the work")
	cmd.Flags().StringVar(&category, "cat", "", "content category")
	cmd.Flags().StringVar(&medium, "medium", "", "medium (for visual work)")
	cmd.Flags().StringVar(&genre, "genre", "", "genre (for music and video)")
	cmd.Flags().StringVar(&description, "description", "", "description of the work")
	cmd.Flags().StringVar(&created, "created", "", "creation date (2006-01-02), defaults to today")
	cmd.MarkFlagRequired("url")
	cmd.MarkFlagRequired("title")
	cmd.MarkFlagRequired("cat")
	return cmd
}

func deleteCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "delete [category] [id-or-title]",
		Short: "Delete an item and its remote media",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			category, identifier := args[0], args[1]

			cfg, st, err := workspace()
			if err != nil {
				return err
			}

			removed, err := store.NewContentStore(st).Delete(category, identifier)
			if err != nil {
				return err
			}
			site.StampLastUpdated(cfg.ContentRoot, time.Now())

			cdn, releases, objects, err := mediaBackends(cfg, st)
			if err != nil {
				return err
			}
			co := storage.NewCoordinator(st, cdn, releases, objects)

			urls := append([]string{removed.URL()}, removed.Gallery()...)
			report := co.RemoveBatch(cmd.Context(), urls)

			fmt.Printf("Deleted %q from %s (%d remote files removed)\n", identifier, category, len(report.Deleted))
			if len(report.Failed) > 0 {
				fmt.Printf("Could not delete %d remote files:\n", len(report.Failed))
				for _, u := range report.Failed {
					fmt.Printf("  %s\n", u)
				}
			}
			return nil
		},
	}
}

func publishCmd() *cobra.Command {
	var message string

	cmd := &cobra.Command{
		Use:   "publish",
		Short: "Commit and push the content workspace",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := config.Load()
			if err != nil {
				return err
			}

			pushed, err := site.NewPusher(cfg.ContentRoot).Push(cmd.Context(), message)
			if err != nil {
				return err
			}
			if !pushed {
				fmt.Println("Nothing to publish.")
				return nil
			}
			fmt.Println("Published.")
			return nil
		},
	}

	cmd.Flags().StringVarP(&message, "message", "m", "Update portfolio content", "commit message")
	return cmd
}

func validateCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "validate",
		Short: "Check the content workspace for structural problems",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := config.Load()
			if err != nil {
				return err
			}

			sweep := validate.SweepJSON(cfg.DataPath(), cfg.ConfigPath(), cfg.LangPath())
			fmt.Printf("JSON syntax: %d files scanned\n", sweep.Total)
			for _, finding := range sweep.Invalid {
				fmt.Printf("  %s\n", finding)
			}

			report := validate.New(cfg.ConfigPath(), cfg.DataPath(), cfg.LangPath()).Run()
			printFindings("Errors", report.Errors)
			printFindings("Warnings", report.Warnings)
			printFindings("Info", report.Infos)

			fmt.Printf("\n%d errors, %d warnings, %d info\n",
				len(report.Errors), len(report.Warnings), len(report.Infos))

			if !sweep.OK() || !report.OK() {
				return fmt.Errorf("validation failed")
			}
			fmt.Println("Content workspace is valid.")
			return nil
		},
	}
}

func printFindings(label string, findings []string) {
	if len(findings) == 0 {
		return
	}
	fmt.Printf("\n%s:\n", label)
	for _, f := range findings {
		fmt.Printf("  - %s\n", f)
	}
}
