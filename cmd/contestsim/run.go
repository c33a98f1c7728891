package main

import (
	"encoding/json"
	"fmt"
	"io"
	"sort"
	"strings"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/DoyleJ11/ball-contest-support/internal/role"
	"github.com/DoyleJ11/ball-contest-support/internal/scenario"
)

var listCmd = &cobra.Command{
	Use:   "list",
	Short: "List the available scenarios",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		w := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 4, 2, ' ', 0)
		for _, name := range scenario.Names() {
			s, _ := scenario.Get(name)
			fmt.Fprintf(w, "%s\t%s\n", s.Name, s.Description)
		}
		return w.Flush()
	},
}

var runJSON bool

var runCmd = &cobra.Command{
	Use:   "run [scenario...]",
	Short: "Run scenarios (all of them when none are named)",
	Long: `Runs each scenario on a fresh pipeline and prints one line per control
cycle: the provider state, its assigned supporter and the agents whose own
role decided to support.`,
	RunE: runScenarios,
}

func init() {
	runCmd.Flags().BoolVar(&runJSON, "json", false, "Print raw frames as JSON lines")
	rootCmd.AddCommand(listCmd, runCmd)
}

func runScenarios(cmd *cobra.Command, args []string) error {
	t, err := loadTuning()
	if err != nil {
		return err
	}
	names := args
	if len(names) == 0 {
		names = scenario.Names()
	}

	out := cmd.OutOrStdout()
	for _, name := range names {
		s, err := scenario.Get(name)
		if err != nil {
			return err
		}
		res := scenario.Run(s, t)
		if runJSON {
			if err := printJSON(out, s, res); err != nil {
				return err
			}
			continue
		}
		printTable(out, s, res)
	}
	return nil
}

func printTable(out io.Writer, s scenario.Scenario, res []scenario.Result) {
	fmt.Fprintf(out, "== %s: %s\n", s.Name, s.Description)
	w := tabwriter.NewWriter(out, 0, 4, 2, ' ', 0)
	fmt.Fprintln(w, "t(ms)\tstate\tsupporter\trisk\tself-selected\tevents\tnote")
	for _, r := range res {
		st := r.Frame.Status
		fmt.Fprintf(w, "%d\t%s\t%s\t%.3f\t%s\t%s\t%s\n",
			r.Step.Obs.Now.Milliseconds(),
			st.State,
			player(st.SupportPlayer),
			st.DefensiveRisk,
			ints(r.Frame.Supporters),
			events(r),
			r.Step.Note,
		)
	}
	w.Flush()
	fmt.Fprintln(out)
}

func printJSON(out io.Writer, s scenario.Scenario, res []scenario.Result) error {
	enc := json.NewEncoder(out)
	for i, r := range res {
		line := struct {
			Scenario string               `json:"scenario"`
			Step     int                  `json:"step"`
			Now      int64                `json:"now_ms"`
			State    string               `json:"state"`
			Support  int                  `json:"support_player"`
			Risk     float64              `json:"defensive_risk"`
			Events   []string             `json:"events,omitempty"`
			Requests map[int]role.Request `json:"requests,omitempty"`
		}{
			Scenario: s.Name,
			Step:     i,
			Now:      r.Step.Obs.Now.Milliseconds(),
			State:    string(r.Frame.Status.State),
			Support:  r.Frame.Status.SupportPlayer,
			Risk:     r.Frame.Status.DefensiveRisk,
			Requests: r.Frame.Requests,
		}
		for _, ev := range r.Frame.Events {
			line.Events = append(line.Events, string(ev.Type))
		}
		if err := enc.Encode(line); err != nil {
			return err
		}
	}
	return nil
}

func player(n int) string {
	if n < 0 {
		return "-"
	}
	return fmt.Sprintf("#%d", n)
}

func ints(ns []int) string {
	if len(ns) == 0 {
		return "-"
	}
	sorted := append([]int(nil), ns...)
	sort.Ints(sorted)
	parts := make([]string, len(sorted))
	for i, n := range sorted {
		parts[i] = player(n)
	}
	return strings.Join(parts, ",")
}

func events(r scenario.Result) string {
	if len(r.Frame.Events) == 0 {
		return "-"
	}
	parts := make([]string, len(r.Frame.Events))
	for i, ev := range r.Frame.Events {
		parts[i] = string(ev.Type)
	}
	return strings.Join(parts, ",")
}
