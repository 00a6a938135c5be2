package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"strings"
	"unicode/utf8"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/huh"
	"github.com/joho/godotenv"
	"golang.org/x/sync/errgroup"
	"golang.org/x/term"

	"github.com/tickdesk-io/tickdesk/pkg/api"
	"github.com/tickdesk-io/tickdesk/pkg/config"
	"github.com/tickdesk-io/tickdesk/pkg/export"
	"github.com/tickdesk-io/tickdesk/pkg/model"
	"github.com/tickdesk-io/tickdesk/pkg/triage"
	"github.com/tickdesk-io/tickdesk/pkg/ui"
)

const appVersion = "0.1.0"

func main() {
	server := flag.String("server", "", "Ticket service base URL (overrides config)")
	configPath := flag.String("config", "", "Path to config file")
	submit := flag.Bool("submit", false, "Submit a single ticket via a quick form and exit")
	exportPath := flag.String("export", "", "Write the stats dashboard as SVG to the given file and exit")
	plain := flag.Bool("plain", false, "Print a plain-text summary instead of the TUI")
	debug := flag.Bool("debug", false, "Log debug output to tickdesk.log")
	version := flag.Bool("version", false, "Show version")
	flag.Parse()

	if *version {
		fmt.Println("tickdesk version " + appVersion)
		os.Exit(0)
	}

	// A .env in the working directory may provide TICKDESK_* variables.
	_ = godotenv.Load()

	path := *configPath
	if path == "" {
		if p, err := config.Path(); err == nil {
			path = p
		}
	}
	cfg, err := config.Load(path)
	if err != nil {
		fmt.Fprintf(os.Stderr, "tickdesk: %v\n", err)
		os.Exit(1)
	}
	if *server != "" {
		cfg.ServerURL = *server
	}

	client := api.New(cfg.ServerURL, cfg.Timeout())

	switch {
	case *submit:
		err = runSubmit(client)
	case *exportPath != "":
		err = runExport(client, *exportPath)
	case *plain || !term.IsTerminal(int(os.Stdout.Fd())):
		err = runPlain(client)
	default:
		err = runTUI(client, *debug)
	}
	if err != nil {
		fmt.Fprintf(os.Stderr, "tickdesk: %v\n", err)
		os.Exit(1)
	}
}

func runTUI(client *api.Client, debug bool) error {
	if debug {
		f, err := tea.LogToFile("tickdesk.log", "debug")
		if err != nil {
			return err
		}
		defer f.Close()
	}

	relay := ui.NewRelay()
	app := ui.NewApp(client, relay)
	p := tea.NewProgram(app, tea.WithAltScreen())
	relay.Attach(p)

	_, err := p.Run()
	return err
}

// runSubmit walks through a one-shot creation form. The classifier is
// consulted once, up front, to prefill category and priority; its
// failure is silent.
func runSubmit(client *api.Client) error {
	draft := model.NewDraft()

	intro := huh.NewForm(huh.NewGroup(
		huh.NewInput().
			Title("Title").
			CharLimit(model.MaxTitleLen).
			Value(&draft.Title),
		huh.NewText().
			Title("Description").
			Value(&draft.Description),
	))
	if err := intro.Run(); err != nil {
		return err
	}

	if strings.TrimSpace(draft.Title) == "" {
		return fmt.Errorf("%s", triage.MsgTitleRequired)
	}
	if strings.TrimSpace(draft.Description) == "" {
		return fmt.Errorf("%s", triage.MsgDescriptionRequired)
	}

	if utf8.RuneCountInString(strings.TrimSpace(draft.Description)) >= triage.MinClassifyLen {
		if s, err := client.Classify(context.Background(), draft.Description); err == nil {
			draft.Category = s.Category
			draft.Priority = s.Priority
			fmt.Printf("AI suggested: %s / %s priority. You can override below.\n",
				s.Category.Label(), s.Priority.Label())
		}
	}

	pick := huh.NewForm(huh.NewGroup(
		huh.NewSelect[model.Category]().
			Title("Category").
			Options(huh.NewOptions(model.Categories()...)...).
			Value(&draft.Category),
		huh.NewSelect[model.Priority]().
			Title("Priority").
			Options(huh.NewOptions(model.Priorities()...)...).
			Value(&draft.Priority),
	))
	if err := pick.Run(); err != nil {
		return err
	}

	ticket, err := client.Create(context.Background(), draft)
	if err != nil {
		return fmt.Errorf("%s", triage.SubmitErrorMessage(err))
	}
	fmt.Printf("Ticket %s created: [%s] %s\n", ticket.ID, ticket.Priority.Label(), ticket.Title)
	return nil
}

// runPlain prints a non-interactive summary, fetching the list and the
// stats concurrently.
func runPlain(client *api.Client) error {
	var (
		tickets []model.Ticket
		snap    model.StatsSnapshot
	)
	g, ctx := errgroup.WithContext(context.Background())
	g.Go(func() error {
		var err error
		tickets, err = client.List(ctx, model.FilterQuery{})
		return err
	})
	g.Go(func() error {
		var err error
		snap, err = client.Stats(ctx)
		return err
	})
	if err := g.Wait(); err != nil {
		return err
	}

	rate := "—"
	if r, ok := triage.ResolutionRate(snap); ok {
		rate = fmt.Sprintf("%d%%", r)
	}
	fmt.Printf("%d tickets (%d open, resolution rate %s, %.1f/day)\n\n",
		snap.TotalTickets, snap.OpenTickets, rate, snap.AvgTicketsPerDay)

	for _, t := range tickets {
		fmt.Printf("%-8s  %-12s  %-8s  %s\n", t.ID, t.Status, t.Priority, t.Title)
	}
	return nil
}

func runExport(client *api.Client, path string) error {
	snap, err := client.Stats(context.Background())
	if err != nil {
		return err
	}

	f, err := os.Create(path)
	if err != nil {
		return err
	}
	defer f.Close()

	export.WriteStats(f, snap)
	fmt.Printf("Stats dashboard written to %s\n", path)
	return nil
}
