package main

import (
	"fmt"
	"os"
	"strconv"

	"cyberdl/internal/app"
	"cyberdl/internal/config"
	"cyberdl/internal/core"
	"cyberdl/internal/model"
	"cyberdl/internal/session"

	"github.com/google/uuid"
	"github.com/spf13/cobra"
	"golang.org/x/term"
)

func main() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

// newApp reads the config and creates an App. The caller must defer a.Close().
// operation identifies the CLI command being run (e.g. "Login", "Browse").
func newApp(operation string) (*app.App, error) {
	defaults, err := app.GetDefaults()
	if err != nil {
		return nil, fmt.Errorf("getting defaults: %w", err)
	}

	cfg, err := config.ReadFromFile(defaults["config_path"])
	if err != nil {
		return nil, fmt.Errorf("reading config: %w", err)
	}

	a, err := app.NewApp(cfg, operation)
	if err != nil {
		return nil, fmt.Errorf("initializing app: %w", err)
	}

	return a, nil
}

// readPassword prompts for a password without echoing it.
func readPassword(prompt string) (string, error) {
	fmt.Print(prompt)
	data, err := term.ReadPassword(int(os.Stdin.Fd()))
	fmt.Println()
	if err != nil {
		return "", fmt.Errorf("reading password: %w", err)
	}
	return string(data), nil
}

var rootCmd = &cobra.Command{
	Use:   "cyberdl",
	Short: "Game content catalog client",
}

// config command
var configCmd = &cobra.Command{
	Use:   "config",
	Short: "Manage configuration",
}

var configInitCmd = &cobra.Command{
	Use:   "init",
	Short: "Initialize configuration",
	RunE: func(cmd *cobra.Command, args []string) error {
		defaults, err := app.GetDefaults()
		if err != nil {
			return fmt.Errorf("failed to get defaults: %w", err)
		}

		clientID := uuid.New().String()
		cfg := config.NewConfig(clientID, defaults["base_dir"])

		if err := config.Init(defaults["config_path"], cfg); err != nil {
			return fmt.Errorf("failed to initialize config: %w", err)
		}

		// Generate the identity protecting the session files.
		repo := session.NewFileRepository(cfg.Session.TokenPath, cfg.Session.UserPath, cfg.Session.IdentityPath)
		if err := repo.Setup(); err != nil {
			return fmt.Errorf("failed to set up session store: %w", err)
		}

		fmt.Printf("Configuration initialized at %s\n", defaults["config_path"])
		fmt.Printf("Client ID: %s\n", clientID)
		fmt.Printf("Base Dir:  %s\n", defaults["base_dir"])
		return nil
	},
}

var configListCmd = &cobra.Command{
	Use:   "list",
	Short: "View configuration",
	RunE: func(cmd *cobra.Command, args []string) error {
		defaults, err := app.GetDefaults()
		if err != nil {
			return fmt.Errorf("failed to get defaults: %w", err)
		}

		cfg, err := config.ReadFromFile(defaults["config_path"])
		if err != nil {
			return fmt.Errorf("failed to read config: %w", err)
		}

		fmt.Printf("Configuration from %s:\n\n", defaults["config_path"])
		fmt.Printf("Client ID:    %s\n", cfg.ClientID)
		fmt.Printf("Base Dir:     %s\n", cfg.BaseDir)
		fmt.Printf("Log Dir:      %s\n", cfg.LogDir)
		fmt.Printf("Auth URL:     %s\n", cfg.Endpoints.AuthURL)
		fmt.Printf("Comments URL: %s\n", cfg.Endpoints.CommentsURL)
		fmt.Printf("Files URL:    %s\n", cfg.Endpoints.FilesURL)
		return nil
	},
}

// register command
var registerCmd = &cobra.Command{
	Use:   "register",
	Short: "Create an account and log in",
	RunE: func(cmd *cobra.Command, args []string) error {
		username, _ := cmd.Flags().GetString("username")
		email, _ := cmd.Flags().GetString("email")

		password, err := readPassword("Password: ")
		if err != nil {
			return err
		}

		a, err := newApp("Register")
		if err != nil {
			return err
		}
		defer a.Close()

		sess, err := a.Sessions.Register(cmd.Context(), username, email, password)
		if err != nil {
			return fmt.Errorf("registration failed: %w", err)
		}

		fmt.Printf("Welcome, %s!\n", sess.User.Username)
		return nil
	},
}

// login command
var loginCmd = &cobra.Command{
	Use:   "login",
	Short: "Log in",
	RunE: func(cmd *cobra.Command, args []string) error {
		email, _ := cmd.Flags().GetString("email")

		password, err := readPassword("Password: ")
		if err != nil {
			return err
		}

		a, err := newApp("Login")
		if err != nil {
			return err
		}
		defer a.Close()

		sess, err := a.Sessions.Login(cmd.Context(), email, password)
		if err != nil {
			return fmt.Errorf("login failed: %w", err)
		}

		fmt.Printf("Logged in as %s\n", sess.User.Username)
		return nil
	},
}

// logout command
var logoutCmd = &cobra.Command{
	Use:   "logout",
	Short: "Log out",
	RunE: func(cmd *cobra.Command, args []string) error {
		a, err := newApp("Logout")
		if err != nil {
			return err
		}
		defer a.Close()

		if err := a.Sessions.Logout(); err != nil {
			return err
		}
		fmt.Println("Logged out.")
		return nil
	},
}

// whoami command
var whoamiCmd = &cobra.Command{
	Use:   "whoami",
	Short: "Show the current user",
	RunE: func(cmd *cobra.Command, args []string) error {
		a, err := newApp("WhoAmI")
		if err != nil {
			return err
		}
		defer a.Close()

		user := a.Sessions.CurrentUser()
		if user == nil {
			fmt.Println("Not logged in.")
			return nil
		}
		fmt.Printf("%s <%s> (member since %s)\n", user.Username, user.Email, user.CreatedAt)
		return nil
	},
}

// browse command
var browseCmd = &cobra.Command{
	Use:   "browse",
	Short: "Browse the catalog with facet filters",
	RunE: func(cmd *cobra.Command, args []string) error {
		a, err := newApp("Browse")
		if err != nil {
			return err
		}
		defer a.Close()

		// A failed fetch degrades to the curated catalog only.
		_ = a.Registry.Refresh(cmd.Context())

		sel := selectionFromFlags(cmd)
		entries := core.Filter(a.Registry.Entries(), sel)

		if len(entries) == 0 {
			fmt.Println("Nothing found. Try different filters or search terms.")
			return nil
		}

		if subs := a.Taxonomy.Subcategories(sel); len(subs) > 0 {
			fmt.Printf("Sub-types: %v\n\n", subs)
		}

		for _, e := range entries {
			printEntry(e)
		}
		return nil
	},
}

// selectionFromFlags replays the facet flags through the selection state
// machine so the cascade rules apply in order.
func selectionFromFlags(cmd *cobra.Command) core.Selection {
	var sel core.Selection
	facets := []struct {
		flag  string
		facet core.Facet
	}{
		{"category", core.FacetCategory},
		{"game", core.FacetGame},
		{"type", core.FacetContentType},
		{"download-type", core.FacetDownloadType},
		{"mod-type", core.FacetModType},
		{"search", core.FacetSearch},
	}
	for _, f := range facets {
		if v, _ := cmd.Flags().GetString(f.flag); v != "" {
			sel.Select(f.facet, v)
		}
	}
	return sel
}

func printEntry(e model.CatalogEntry) {
	origin := "official"
	if !e.IsOfficial {
		origin = "user"
	}

	fmt.Printf("%-12s %-42s v%-8s %9s  %7d dl  %.1f★", e.ID, e.Name, e.Version, e.Size, e.Downloads, e.Rating)
	if e.Author != "" {
		fmt.Printf("  by %s", e.Author)
	}
	if !e.Downloadable() {
		fmt.Printf("  [unavailable]")
	}
	fmt.Printf("  (%s)\n", origin)
}

// refresh command
var refreshCmd = &cobra.Command{
	Use:   "refresh",
	Short: "Re-fetch user-submitted files",
	RunE: func(cmd *cobra.Command, args []string) error {
		a, err := newApp("Refresh")
		if err != nil {
			return err
		}
		defer a.Close()

		if err := a.Registry.Refresh(cmd.Context()); err != nil {
			return err
		}
		fmt.Printf("Catalog now has %d entries.\n", len(a.Registry.Entries()))
		return nil
	},
}

// comments command
var commentsCmd = &cobra.Command{
	Use:   "comments",
	Short: "Read and write file comments",
}

var commentsListCmd = &cobra.Command{
	Use:   "list FILE_ID",
	Short: "List comments for a file",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		fileID, err := strconv.ParseInt(args[0], 10, 64)
		if err != nil {
			return fmt.Errorf("invalid file id: %s", args[0])
		}

		a, err := newApp("ListComments")
		if err != nil {
			return err
		}
		defer a.Close()

		a.Comments.Open(fileID)
		comments, err := a.Comments.Load(cmd.Context(), fileID)
		if err != nil {
			return err
		}

		printComments(comments)
		return nil
	},
}

var commentsAddCmd = &cobra.Command{
	Use:   "add FILE_ID",
	Short: "Comment on a file",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		fileID, err := strconv.ParseInt(args[0], 10, 64)
		if err != nil {
			return fmt.Errorf("invalid file id: %s", args[0])
		}
		message, _ := cmd.Flags().GetString("message")
		rating, _ := cmd.Flags().GetInt("rating")

		a, err := newApp("AddComment")
		if err != nil {
			return err
		}
		defer a.Close()

		a.Comments.Open(fileID)
		comments, err := a.Comments.Submit(cmd.Context(), fileID, message, rating)
		if err != nil {
			return err
		}

		printComments(comments)
		return nil
	},
}

var commentsRmCmd = &cobra.Command{
	Use:   "rm COMMENT_ID",
	Short: "Delete one of your comments",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		commentID, err := strconv.ParseInt(args[0], 10, 64)
		if err != nil {
			return fmt.Errorf("invalid comment id: %s", args[0])
		}
		fileID, _ := cmd.Flags().GetInt64("file")

		a, err := newApp("RemoveComment")
		if err != nil {
			return err
		}
		defer a.Close()

		a.Comments.Open(fileID)
		comments, err := a.Comments.Remove(cmd.Context(), commentID, fileID)
		if err != nil {
			return err
		}

		printComments(comments)
		return nil
	},
}

func printComments(comments []model.Comment) {
	if len(comments) == 0 {
		fmt.Println("No comments yet. Be the first!")
		return
	}
	for _, c := range comments {
		stars := ""
		if c.Rating > 0 {
			for i := 0; i < c.Rating; i++ {
				stars += "★"
			}
			stars = "  " + stars
		}
		fmt.Printf("#%d  %s  %s%s\n    %s\n", c.ID, c.Username, c.CreatedAt, stars, c.Content)
	}
}

// upload command
var uploadCmd = &cobra.Command{
	Use:   "upload",
	Short: "Publish a file listing",
	RunE: func(cmd *cobra.Command, args []string) error {
		sub := model.FileSubmission{}
		sub.Name, _ = cmd.Flags().GetString("name")
		sub.Game, _ = cmd.Flags().GetString("game")
		sub.ContentType, _ = cmd.Flags().GetString("type")
		sub.DownloadType, _ = cmd.Flags().GetString("download-type")
		sub.ModType, _ = cmd.Flags().GetString("mod-type")
		sub.Size, _ = cmd.Flags().GetString("size")
		sub.Version, _ = cmd.Flags().GetString("version")
		sub.FileURL, _ = cmd.Flags().GetString("url")
		sub.FileType, _ = cmd.Flags().GetString("file-type")
		localPath, _ := cmd.Flags().GetString("file")

		a, err := newApp("Upload")
		if err != nil {
			return err
		}
		defer a.Close()

		var payload *core.Payload
		if localPath != "" {
			f, err := os.Open(localPath)
			if err != nil {
				return fmt.Errorf("opening payload: %w", err)
			}
			defer f.Close()

			info, err := f.Stat()
			if err != nil {
				return fmt.Errorf("stat payload: %w", err)
			}
			payload = &core.Payload{Name: info.Name(), Size: info.Size(), Reader: f}
		}

		return a.Uploads.Submit(cmd.Context(), sub, payload)
	},
}

func init() {
	// config subcommands
	configCmd.AddCommand(configInitCmd)
	configCmd.AddCommand(configListCmd)
	rootCmd.AddCommand(configCmd)

	// auth commands
	registerCmd.Flags().StringP("username", "u", "", "Username")
	registerCmd.Flags().StringP("email", "e", "", "Email address")
	registerCmd.MarkFlagRequired("username")
	registerCmd.MarkFlagRequired("email")
	rootCmd.AddCommand(registerCmd)

	loginCmd.Flags().StringP("email", "e", "", "Email address")
	loginCmd.MarkFlagRequired("email")
	rootCmd.AddCommand(loginCmd)

	rootCmd.AddCommand(logoutCmd)
	rootCmd.AddCommand(whoamiCmd)

	// catalog commands
	browseCmd.Flags().String("category", "", "Category (games, mods, scripts, ...)")
	browseCmd.Flags().String("game", "", "Game name")
	browseCmd.Flags().String("type", "", "Content type (download, mods)")
	browseCmd.Flags().String("download-type", "", "Version sub-type (with --type download)")
	browseCmd.Flags().String("mod-type", "", "Mod sub-type (with --type mods)")
	browseCmd.Flags().StringP("search", "s", "", "Name substring search")
	rootCmd.AddCommand(browseCmd)

	rootCmd.AddCommand(refreshCmd)

	// comments subcommands
	commentsAddCmd.Flags().StringP("message", "m", "", "Comment text")
	commentsAddCmd.Flags().IntP("rating", "r", 0, "Star rating 1-5 (0 = none)")
	commentsAddCmd.MarkFlagRequired("message")
	commentsRmCmd.Flags().Int64("file", 0, "File id whose comment list to reload")
	commentsRmCmd.MarkFlagRequired("file")
	commentsCmd.AddCommand(commentsListCmd)
	commentsCmd.AddCommand(commentsAddCmd)
	commentsCmd.AddCommand(commentsRmCmd)
	rootCmd.AddCommand(commentsCmd)

	// upload flags
	uploadCmd.Flags().String("name", "", "Listing name")
	uploadCmd.Flags().String("game", "", "Game name")
	uploadCmd.Flags().String("type", "", "Content type (download, mods)")
	uploadCmd.Flags().String("download-type", "", "Version sub-type")
	uploadCmd.Flags().String("mod-type", "", "Mod sub-type")
	uploadCmd.Flags().String("size", "", "Human-readable size, e.g. 250 MB")
	uploadCmd.Flags().String("version", "", "Version string")
	uploadCmd.Flags().String("url", "", "External file URL")
	uploadCmd.Flags().String("file-type", "", "direct or torrent (default direct)")
	uploadCmd.Flags().String("file", "", "Local payload to store through the vault")
	rootCmd.AddCommand(uploadCmd)
}
