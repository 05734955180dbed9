// Package main is the daybook CLI: record time, browse recorded events, and
// view them as a calendar. All state lives in the client core packages; this
// file only parses commands and renders their output.
package main

import (
	"bufio"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"strconv"
	"time"

	"github.com/joho/godotenv"
	"github.com/urfave/cli/v2"

	"github.com/kwahlin/daybook/internal/apiclient"
	"github.com/kwahlin/daybook/internal/calendar"
	"github.com/kwahlin/daybook/internal/config"
	"github.com/kwahlin/daybook/internal/datekey"
	"github.com/kwahlin/daybook/internal/domain"
	"github.com/kwahlin/daybook/internal/recorder"
	"github.com/kwahlin/daybook/internal/store"
)

func main() {
	// Load .env file first, but don't error if it doesn't exist.
	_ = godotenv.Load()

	app := &cli.App{
		Name:  "daybook",
		Usage: "Record time and browse recorded events as a calendar.",
		Commands: []*cli.Command{
			recordCommand(),
			eventsCommand(),
			calendarCommand(),
		},
	}

	if err := app.Run(os.Args); err != nil {
		slog.Error("Command failed", "error", err)
		os.Exit(1)
	}
}

// newStore builds the event store against the configured Event API.
func newStore() (*store.Store, error) {
	cfg, err := config.LoadClient()
	if err != nil {
		return nil, err
	}
	setupLogger(cfg.LogLevel)

	client := apiclient.New(cfg.APIBaseURL,
		apiclient.WithHTTPClient(&http.Client{Timeout: cfg.HTTPTimeout}))
	return store.New(client), nil
}

func recordCommand() *cli.Command {
	return &cli.Command{
		Name:  "record",
		Usage: "Start a recording session; press Enter to stop and save it.",
		Action: func(c *cli.Context) error {
			st, err := newStore()
			if err != nil {
				return err
			}

			rec := recorder.New()
			start, err := rec.Start()
			if err != nil {
				return err
			}

			fmt.Println("Recording. Press Enter to stop and save.")

			// The counter ticker is presentation only; it must be stopped on
			// every exit path so an abandoned session does not leak it.
			ticker := time.NewTicker(time.Second)
			defer ticker.Stop()

			enter := make(chan struct{})
			go func() {
				_, _ = bufio.NewReader(os.Stdin).ReadString('\n')
				close(enter)
			}()

		tick:
			for {
				select {
				case <-ticker.C:
					fmt.Printf("\r%s", datekey.FormatClock(time.Since(start)))
				case <-enter:
					break tick
				case <-c.Context.Done():
					fmt.Println()
					_ = rec.Stop()
					return c.Context.Err()
				}
			}
			fmt.Println()

			// Save first, then close the session: a failed save keeps the
			// session open so nothing recorded is lost.
			ev, err := st.CreateFromSession(c.Context, rec.DateStart())
			if err != nil {
				return err
			}
			if err := rec.Stop(); err != nil {
				return err
			}

			fmt.Printf("Saved event %d (%s).\n", ev.ID, datekey.FromTime(ev.DateStart))
			return nil
		},
	}
}

func eventsCommand() *cli.Command {
	return &cli.Command{
		Name:  "events",
		Usage: "List or delete recorded events.",
		Subcommands: []*cli.Command{
			{
				Name:  "list",
				Usage: "List all recorded events.",
				Action: func(c *cli.Context) error {
					st, err := newStore()
					if err != nil {
						return err
					}
					if err := loadEvents(c, st); err != nil {
						return err
					}

					events := st.Events()
					if len(events) == 0 {
						fmt.Println("No events recorded yet.")
						return nil
					}
					for _, ev := range events {
						printEvent(ev)
					}
					return nil
				},
			},
			{
				Name:      "rm",
				Usage:     "Delete a recorded event by id.",
				ArgsUsage: "<id>",
				Action: func(c *cli.Context) error {
					id, err := strconv.ParseInt(c.Args().First(), 10, 64)
					if err != nil {
						return fmt.Errorf("expected a numeric event id, got %q", c.Args().First())
					}

					st, err := newStore()
					if err != nil {
						return err
					}
					if err := loadEvents(c, st); err != nil {
						return err
					}

					// Delete targets ids obtained from a load; reject unknown
					// ids locally instead of round-tripping a 404.
					if _, ok := st.Get(id); !ok {
						return fmt.Errorf("event %d not found", id)
					}
					if err := st.Delete(c.Context, id); err != nil {
						return err
					}

					fmt.Printf("Deleted event %d.\n", id)
					return nil
				},
			},
		},
	}
}

func calendarCommand() *cli.Command {
	return &cli.Command{
		Name:  "calendar",
		Usage: "Show recorded events grouped by day, most recent first.",
		Action: func(c *cli.Context) error {
			st, err := newStore()
			if err != nil {
				return err
			}
			if err := loadEvents(c, st); err != nil {
				return err
			}

			groups := calendar.GroupByDay(st.Events())
			if len(groups) == 0 {
				fmt.Println("No events recorded yet.")
				return nil
			}
			for _, group := range groups {
				fmt.Println(group.Day)
				for _, ev := range group.Events {
					fmt.Printf("  %s - %s  %s\n",
						ev.DateStart.UTC().Format("15.04"),
						ev.DateEnd.UTC().Format("15.04"),
						ev.Title)
				}
			}
			return nil
		},
	}
}

// loadEvents runs a store load and surfaces the store's user-facing failure
// message when it fails.
func loadEvents(c *cli.Context, st *store.Store) error {
	if err := st.Load(c.Context); err != nil {
		if msg := st.LoadState().Message; msg != "" {
			fmt.Fprintln(os.Stderr, msg)
		}
		return err
	}
	return nil
}

func printEvent(ev domain.Event) {
	fmt.Printf("%6d  %s  %s - %s  %s\n",
		ev.ID,
		datekey.FromTime(ev.DateStart),
		ev.DateStart.UTC().Format("15:04"),
		ev.DateEnd.UTC().Format("15:04"),
		ev.Title)
}

// setupLogger configures the default slog logger for CLI output.
func setupLogger(level string) {
	var logLevel slog.Level
	if err := logLevel.UnmarshalText([]byte(level)); err != nil {
		logLevel = slog.LevelInfo
	}
	logger := slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{
		Level: logLevel,
	}))
	slog.SetDefault(logger)
}
