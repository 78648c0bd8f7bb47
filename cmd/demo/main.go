// Command demo is an interactive walkthrough of ProximityFetch's geocell
// expansion loop against a small, known Manhattan dataset. It animates each
// round of the search with a spinner and a running log, then prints the
// final ranked results. When stdout isn't a terminal it falls back to a
// plain, synchronous run with log-style output instead of the bubbletea
// program.
package main

import (
	"fmt"
	"log"
	"math/rand"
	"os"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/spinner"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/mattn/go-isatty"

	"github.com/kass/geocell-index/pkg/geocell"
	"github.com/kass/geocell-index/pkg/store"
)

var (
	titleStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("#FF79C6")).
			Background(lipgloss.Color("#282A36")).
			Padding(0, 1).
			MarginBottom(1)

	subtitleStyle = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("#8BE9FD"))
	successStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("#50FA7B"))
	dimStyle      = lipgloss.NewStyle().Foreground(lipgloss.Color("#6272A4"))
	statStyle     = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("#FFB86C"))
	boxStyle      = lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(lipgloss.Color("#BD93F9")).
			Padding(1, 2).
			MarginTop(1)
)

// flatiron is the center point the demo searches outward from.
var flatiron = mustPoint(40.7410, -73.9896)

// seedPlaces is a small fixed Manhattan dataset around the Flatiron
// Building, used so the demo's expansion rounds and results are
// reproducible run to run.
var seedPlaces = []struct {
	id, name string
	lat, lon float64
}{
	{"flatiron", "Flatiron Building", 40.7410, -73.9896},
	{"outback", "Outback Steakhouse", 40.7424, -73.9905},
	{"sex-museum", "Museum of Sex", 40.7434, -73.9881},
	{"madison-sq", "Madison Square Park", 40.7424, -73.9878},
	{"chelsea", "Chelsea Market", 40.7424, -74.0061},
}

func mustPoint(lat, lon float64) geocell.Point {
	p, err := geocell.NewPoint(lat, lon)
	if err != nil {
		panic(err)
	}
	return p
}

func seedStore(cfg Config) *store.MemoryStore {
	mem := store.NewMemoryStore()
	for _, sp := range seedPlaces {
		mem.Insert(store.NewPlace(sp.id, sp.name, mustPoint(sp.lat, sp.lon)))
	}

	r := rand.New(rand.NewSource(1))
	for i := 0; i < cfg.Demo.RandomEntities; i++ {
		lat := flatiron.Lat() + (r.Float64()-0.5)*0.3
		lon := flatiron.Lon() + (r.Float64()-0.5)*0.3
		p, err := geocell.NewPoint(lat, lon)
		if err != nil {
			continue
		}
		mem.Insert(store.NewPlace(fmt.Sprintf("noise_%d", i), "", p))
	}
	return mem
}

func main() {
	cfg, err := loadConfig()
	if err != nil {
		log.Fatalf("failed to load configuration: %v", err)
	}

	mem := seedStore(cfg)

	if !isatty.IsTerminal(os.Stdout.Fd()) && !isatty.IsCygwinTerminal(os.Stdout.Fd()) {
		runPlain(mem, cfg)
		return
	}

	p := tea.NewProgram(initialModel())
	program = p
	go runSearch(mem, cfg)
	if _, err := p.Run(); err != nil {
		log.Fatal(err)
	}
}

// runPlain executes the same search synchronously and logs its progress,
// for output that isn't a terminal (piped, redirected, or CI).
func runPlain(mem *store.MemoryStore, cfg Config) {
	log.Printf("Searching for %d nearest neighbors of %s...", cfg.Demo.MaxResults, flatiron)

	rounds := 0
	runner := func(cells []string) ([]geocell.Entity, error) {
		rounds++
		if cfg.Store.SimulatedLatencyMs > 0 {
			time.Sleep(time.Duration(cfg.Store.SimulatedLatencyMs) * time.Millisecond)
		}
		log.Printf("round %d: querying %d fresh cells", rounds, len(cells))
		return mem.Query(cells)
	}

	opts := []geocell.Option{geocell.WithMaxResults(cfg.Demo.MaxResults)}
	if cfg.Demo.MaxDistanceM > 0 {
		opts = append(opts, geocell.WithMaxDistance(cfg.Demo.MaxDistanceM))
	}

	start := time.Now()
	results, err := geocell.ProximityFetch(flatiron, runner, opts...)
	if err != nil {
		log.Fatalf("proximity search failed: %v", err)
	}
	elapsed := time.Since(start)

	log.Printf("done in %v over %d rounds", elapsed, rounds)
	for i, r := range results {
		log.Printf("%d. %v at %.1fm", i+1, r.Entity.ID(), r.Distance)
	}
}

// --- bubbletea program ---

var program *tea.Program

type roundMsg struct {
	round, freshCells, searched int
}

type resultsMsg struct {
	results []geocell.Result
	rounds  int
	elapsed time.Duration
}

type model struct {
	spinner spinner.Model
	rounds  []string
	done    bool
	results resultsMsg
}

func initialModel() model {
	s := spinner.New()
	s.Spinner = spinner.Dot
	s.Style = lipgloss.NewStyle().Foreground(lipgloss.Color("#FF79C6"))
	return model{spinner: s}
}

func (m model) Init() tea.Cmd {
	return m.spinner.Tick
}

func (m model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		if msg.String() == "q" || msg.String() == "ctrl+c" {
			return m, tea.Quit
		}
	case spinner.TickMsg:
		var cmd tea.Cmd
		m.spinner, cmd = m.spinner.Update(msg)
		return m, cmd
	case roundMsg:
		line := fmt.Sprintf("round %d: %d fresh cells (%d searched total)", msg.round, msg.freshCells, msg.searched)
		m.rounds = append(m.rounds, line)
		if len(m.rounds) > 8 {
			m.rounds = m.rounds[1:]
		}
		return m, nil
	case resultsMsg:
		m.done = true
		m.results = msg
		return m, nil
	}
	return m, nil
}

func (m model) View() string {
	var b strings.Builder
	b.WriteString(titleStyle.Render("geocell proximity demo"))
	b.WriteString("\n")

	if !m.done {
		b.WriteString(m.spinner.View() + " expanding cells around the Flatiron Building...\n\n")
	} else {
		b.WriteString(successStyle.Render(fmt.Sprintf("found %d results in %v over %d rounds", len(m.results.results), m.results.elapsed, m.results.rounds)))
		b.WriteString("\n\n")

		var rows strings.Builder
		for i, r := range m.results.results {
			rows.WriteString(fmt.Sprintf("%d. %-14v %s\n", i+1, r.Entity.ID(), statStyle.Render(fmt.Sprintf("%.1fm", r.Distance))))
		}
		b.WriteString(boxStyle.Render(subtitleStyle.Render("Nearest entities") + "\n\n" + rows.String()))
	}

	if len(m.rounds) > 0 {
		b.WriteString("\n")
		b.WriteString(dimStyle.Render("expansion log:"))
		b.WriteString("\n")
		for _, line := range m.rounds {
			b.WriteString(dimStyle.Render("  " + line))
			b.WriteString("\n")
		}
	}

	b.WriteString("\n")
	b.WriteString(dimStyle.Render("press q to quit"))
	return b.String()
}

// runSearch drives ProximityFetch against mem, reporting each round to the
// running bubbletea program, then the final ranked results.
func runSearch(mem *store.MemoryStore, cfg Config) {
	round := 0
	searched := 0
	runner := func(cells []string) ([]geocell.Entity, error) {
		round++
		searched += len(cells)
		if cfg.Store.SimulatedLatencyMs > 0 {
			time.Sleep(time.Duration(cfg.Store.SimulatedLatencyMs) * time.Millisecond)
		}
		program.Send(roundMsg{round: round, freshCells: len(cells), searched: searched})
		return mem.Query(cells)
	}

	opts := []geocell.Option{geocell.WithMaxResults(cfg.Demo.MaxResults)}
	if cfg.Demo.MaxDistanceM > 0 {
		opts = append(opts, geocell.WithMaxDistance(cfg.Demo.MaxDistanceM))
	}

	start := time.Now()
	results, err := geocell.ProximityFetch(flatiron, runner, opts...)
	elapsed := time.Since(start)
	if err != nil {
		program.Send(roundMsg{round: round, freshCells: 0, searched: searched})
		return
	}

	program.Send(resultsMsg{results: results, rounds: round, elapsed: elapsed})
}
