// submodule cmd contains command definitions
package main

import "github.com/urfave/cli/v3"

// setupCommand handles database and configuration initialization.
func setupCommand(r *Runner) *cli.Command {
	return &cli.Command{
		Name:  "setup",
		Usage: "Initialize configuration and database",
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:    "config",
				Aliases: []string{"c"},
				Usage:   "Path to configuration file",
				Value:   "config.toml",
			},
		},
		Action: r.Setup,
	}
}

// serveCommand runs the local catalog REST server.
func serveCommand(r *Runner) *cli.Command {
	return &cli.Command{
		Name:  "serve",
		Usage: "Run the catalog REST API server",
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:    "config",
				Aliases: []string{"c"},
				Usage:   "Path to configuration file",
				Value:   "config.toml",
			},
			&cli.IntFlag{
				Name:    "port",
				Aliases: []string{"p"},
				Usage:   "Port to listen on (overrides config)",
			},
		},
		Action: r.Serve,
	}
}

// authCommand handles account and session operations.
func authCommand(r *Runner) *cli.Command {
	return &cli.Command{
		Name:  "auth",
		Usage: "Manage accounts and the signed-in session",
		Commands: []*cli.Command{
			{
				Name:  "login",
				Usage: "Sign in with email and password",
				Flags: []cli.Flag{
					&cli.StringFlag{
						Name:     "email",
						Aliases:  []string{"e"},
						Usage:    "Account email",
						Required: true,
					},
					&cli.StringFlag{
						Name:     "password",
						Aliases:  []string{"p"},
						Usage:    "Account password",
						Required: true,
					},
				},
				Action: r.AuthLogin,
			},
			{
				Name:  "signup",
				Usage: "Register a new account and sign in",
				Flags: []cli.Flag{
					&cli.StringFlag{
						Name:     "username",
						Aliases:  []string{"u"},
						Usage:    "Display name",
						Required: true,
					},
					&cli.StringFlag{
						Name:     "email",
						Aliases:  []string{"e"},
						Usage:    "Account email",
						Required: true,
					},
					&cli.StringFlag{
						Name:     "password",
						Aliases:  []string{"p"},
						Usage:    "Account password",
						Required: true,
					},
				},
				Action: r.AuthSignup,
			},
			{
				Name:   "logout",
				Usage:  "Clear the stored session",
				Action: r.AuthLogout,
			},
			{
				Name:   "whoami",
				Usage:  "Show the signed-in user",
				Action: r.AuthWhoami,
			},
		},
	}
}

// songsCommand handles catalog song operations.
func songsCommand(r *Runner) *cli.Command {
	return &cli.Command{
		Name:    "songs",
		Aliases: []string{"song"},
		Usage:   "Browse and manage catalog songs",
		Commands: []*cli.Command{
			{
				Name:  "list",
				Usage: "List all catalog songs",
				Flags: []cli.Flag{
					&cli.BoolFlag{
						Name:  "json",
						Usage: "Output raw JSON",
					},
					&cli.BoolFlag{
						Name:  "pretty",
						Usage: "Pretty-print output",
						Value: true,
					},
					&cli.BoolFlag{
						Name:  "cached",
						Usage: "Read from the local SQLite cache instead of the API",
					},
					&cli.StringFlag{
						Name:  "filter",
						Usage: "Show only songs whose fields contain this term",
					},
				},
				Action: r.SongsList,
			},
			{
				Name:  "get",
				Usage: "Show a single song by ID",
				Arguments: []cli.Argument{
					&cli.StringArg{Name: "id"},
				},
				Flags: []cli.Flag{
					&cli.BoolFlag{
						Name:  "json",
						Usage: "Output raw JSON",
					},
				},
				Action: r.SongsGet,
			},
			{
				Name:  "create",
				Usage: "Add a song to the catalog",
				Flags: []cli.Flag{
					&cli.StringFlag{Name: "title", Usage: "Song title", Required: true},
					&cli.StringFlag{Name: "artist", Usage: "Artist name", Required: true},
					&cli.StringFlag{Name: "album", Usage: "Album name"},
					&cli.StringFlag{Name: "genre", Usage: "Genre"},
					&cli.StringFlag{Name: "year", Usage: "Release year"},
					&cli.StringFlag{Name: "image", Usage: "Cover image URL"},
					&cli.StringFlag{Name: "audio-url", Usage: "Audio file URL"},
				},
				Action: r.SongsCreate,
			},
			{
				Name:  "edit",
				Usage: "Update fields on an existing song",
				Arguments: []cli.Argument{
					&cli.StringArg{Name: "id"},
				},
				Flags: []cli.Flag{
					&cli.StringFlag{Name: "title", Usage: "Song title"},
					&cli.StringFlag{Name: "artist", Usage: "Artist name"},
					&cli.StringFlag{Name: "album", Usage: "Album name"},
					&cli.StringFlag{Name: "genre", Usage: "Genre"},
					&cli.StringFlag{Name: "year", Usage: "Release year"},
					&cli.StringFlag{Name: "image", Usage: "Cover image URL"},
					&cli.StringFlag{Name: "audio-url", Usage: "Audio file URL"},
				},
				Action: r.SongsEdit,
			},
			{
				Name:  "delete",
				Usage: "Delete a song from the catalog",
				Arguments: []cli.Argument{
					&cli.StringArg{Name: "id"},
				},
				Action: r.SongsDelete,
			},
			{
				Name:  "search",
				Usage: "Search songs across every field",
				Arguments: []cli.Argument{
					&cli.StringArg{Name: "query"},
				},
				Flags: []cli.Flag{
					&cli.BoolFlag{
						Name:  "json",
						Usage: "Output raw JSON",
					},
				},
				Action: r.SongsSearch,
			},
			{
				Name:  "genre",
				Usage: "List songs matching a genre",
				Arguments: []cli.Argument{
					&cli.StringArg{Name: "genre"},
				},
				Flags: []cli.Flag{
					&cli.BoolFlag{
						Name:  "json",
						Usage: "Output raw JSON",
					},
				},
				Action: r.SongsGenre,
			},
			{
				Name:  "open",
				Usage: "Open a song's audio stream in the default browser",
				Arguments: []cli.Argument{
					&cli.StringArg{Name: "id"},
				},
				Action: r.SongsOpen,
			},
		},
	}
}

// playlistsCommand handles playlist operations.
func playlistsCommand(r *Runner) *cli.Command {
	return &cli.Command{
		Name:    "playlists",
		Aliases: []string{"pl"},
		Usage:   "Manage playlists",
		Commands: []*cli.Command{
			{
				Name:  "list",
				Usage: "List all playlists",
				Flags: []cli.Flag{
					&cli.BoolFlag{
						Name:  "json",
						Usage: "Output raw JSON",
					},
				},
				Action: r.PlaylistsList,
			},
			{
				Name:  "show",
				Usage: "Show a playlist and its songs",
				Arguments: []cli.Argument{
					&cli.StringArg{Name: "id"},
				},
				Flags: []cli.Flag{
					&cli.BoolFlag{
						Name:  "json",
						Usage: "Output raw JSON",
					},
				},
				Action: r.PlaylistsShow,
			},
			{
				Name:  "create",
				Usage: "Create a new playlist",
				Arguments: []cli.Argument{
					&cli.StringArg{Name: "name"},
				},
				Action: r.PlaylistsCreate,
			},
			{
				Name:  "add",
				Usage: "Add a catalog song to a playlist",
				Flags: []cli.Flag{
					&cli.StringFlag{
						Name:     "playlist",
						Usage:    "Playlist ID",
						Required: true,
					},
					&cli.StringFlag{
						Name:     "song",
						Usage:    "Catalog song ID",
						Required: true,
					},
				},
				Action: r.PlaylistsAdd,
			},
			{
				Name:  "remove",
				Usage: "Remove every copy of a song from a playlist",
				Flags: []cli.Flag{
					&cli.StringFlag{
						Name:     "playlist",
						Usage:    "Playlist ID",
						Required: true,
					},
					&cli.StringFlag{
						Name:     "song",
						Usage:    "Song ID",
						Required: true,
					},
				},
				Action: r.PlaylistsRemove,
			},
			{
				Name:  "delete",
				Usage: "Delete a playlist",
				Arguments: []cli.Argument{
					&cli.StringArg{Name: "id"},
				},
				Action: r.PlaylistsDelete,
			},
			{
				Name:  "export",
				Usage: "Export one playlist to a file",
				Arguments: []cli.Argument{
					&cli.StringArg{Name: "id"},
				},
				Flags: []cli.Flag{
					&cli.StringFlag{
						Name:    "format",
						Aliases: []string{"f"},
						Usage:   "Export format: json, csv, markdown or txt",
						Value:   "json",
					},
					&cli.StringFlag{
						Name:    "output",
						Aliases: []string{"o"},
						Usage:   "Output directory",
						Value:   ".",
					},
				},
				Action: r.PlaylistsExport,
			},
			{
				Name:  "export-all",
				Usage: "Export every playlist concurrently with a manifest",
				Flags: []cli.Flag{
					&cli.StringFlag{
						Name:    "format",
						Aliases: []string{"f"},
						Usage:   "Export format: json, csv, markdown or txt",
						Value:   "json",
					},
					&cli.StringFlag{
						Name:    "output",
						Aliases: []string{"o"},
						Usage:   "Output directory (default: library_export_<timestamp>)",
					},
					&cli.IntFlag{
						Name:  "workers",
						Usage: "Number of concurrent export workers",
						Value: 5,
					},
					&cli.FloatFlag{
						Name:  "rate",
						Usage: "Maximum playlist fetches per second",
						Value: 5.0,
					},
				},
				Action: r.PlaylistsExportAll,
			},
		},
	}
}

// likedCommand handles the signed-in user's liked songs.
func likedCommand(r *Runner) *cli.Command {
	return &cli.Command{
		Name:  "liked",
		Usage: "Manage liked songs (requires sign-in)",
		Commands: []*cli.Command{
			{
				Name:  "list",
				Usage: "List the signed-in user's liked songs",
				Flags: []cli.Flag{
					&cli.BoolFlag{
						Name:  "json",
						Usage: "Output raw JSON",
					},
				},
				Action: r.LikedList,
			},
			{
				Name:  "add",
				Usage: "Like a catalog song",
				Arguments: []cli.Argument{
					&cli.StringArg{Name: "id"},
				},
				Action: r.LikedAdd,
			},
			{
				Name:  "remove",
				Usage: "Unlike a song by liked-entry ID",
				Arguments: []cli.Argument{
					&cli.StringArg{Name: "id"},
				},
				Action: r.LikedRemove,
			},
		},
	}
}

// libraryCommand handles bulk library operations against the catalog API.
func libraryCommand(r *Runner) *cli.Command {
	return &cli.Command{
		Name:    "library",
		Aliases: []string{"lib"},
		Usage:   "Bulk library dump and seed operations",
		Commands: []*cli.Command{
			{
				Name:  "dump",
				Usage: "Fetch songs, playlists and liked songs in one pass",
				Flags: []cli.Flag{
					&cli.BoolFlag{
						Name:  "pretty",
						Usage: "Pretty-print output",
						Value: true,
					},
					&cli.StringFlag{
						Name:    "output",
						Aliases: []string{"o"},
						Usage:   "Write dump to a file instead of stdout",
					},
				},
				Action: r.LibraryDump,
			},
			{
				Name:  "seed",
				Usage: "Import songs into the catalog from a JSON file",
				Arguments: []cli.Argument{
					&cli.StringArg{Name: "path"},
				},
				Action: r.LibrarySeed,
			},
		},
	}
}

// moodCommand plays music matched to a detected facial expression.
func moodCommand(r *Runner) *cli.Command {
	return &cli.Command{
		Name:  "mood",
		Usage: "Detect your mood from a camera frame and queue matching songs",
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:  "frames",
				Usage: "Directory of image files to analyze instead of the camera",
			},
			&cli.BoolFlag{
				Name:  "json",
				Usage: "Output raw JSON",
			},
		},
		Action: r.MoodPlay,
	}
}

// tuiCommand returns the top-level TUI command for interactive library browsing.
func tuiCommand(r *Runner) *cli.Command {
	return &cli.Command{
		Name:    "tui",
		Aliases: []string{"interactive", "ui"},
		Usage:   "Launch the interactive library browser",
		Action:  r.TUI,
	}
}
