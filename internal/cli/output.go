package cli

import (
	"encoding/json"
	"fmt"
	"io"
	"text/tabwriter"

	"github.com/mcoot/gameroster/internal/model"
	"github.com/mcoot/gameroster/internal/selftest"
)

// Output handles formatting output based on the configured format
type Output struct {
	format string
	out    io.Writer
	errOut io.Writer
}

// NewOutput creates a new Output formatter
func NewOutput(format string, out, errOut io.Writer) *Output {
	return &Output{format: format, out: out, errOut: errOut}
}

// Print outputs data in the configured format
func (o *Output) Print(data any) {
	if o.format == "json" {
		o.printJSON(data)
	} else {
		o.printText(data)
	}
}

// PrintError outputs an error
func (o *Output) PrintError(err error) {
	if o.format == "json" {
		errData := map[string]any{
			"error": map[string]string{
				"message": err.Error(),
			},
		}
		data, _ := json.Marshal(errData)
		fmt.Fprintln(o.errOut, string(data))
	} else {
		fmt.Fprintf(o.errOut, "Error: %s\n", err)
	}
}

// PrintMessage outputs a simple message
func (o *Output) PrintMessage(msg string) {
	if o.format == "json" {
		data, _ := json.Marshal(map[string]string{"message": msg})
		fmt.Fprintln(o.out, string(data))
	} else {
		fmt.Fprintln(o.out, msg)
	}
}

func (o *Output) printJSON(data any) {
	enc := json.NewEncoder(o.out)
	enc.SetIndent("", "  ")
	_ = enc.Encode(data)
}

func (o *Output) printText(data any) {
	switch v := data.(type) {
	case model.Player:
		o.printPlayer(v)
	case []model.Player:
		o.printPlayers(v)
	case []selftest.Result:
		o.printSelftest(v)
	default:
		// Fallback to JSON for unknown types
		o.printJSON(data)
	}
}

func (o *Output) printPlayer(p model.Player) {
	fmt.Fprintf(o.out, "Player: %s (%d)\n", p.Username, p.ID)
	fmt.Fprintf(o.out, "Hours Played: %g\n", p.HoursPlayed)
	fmt.Fprintf(o.out, "High Score: %d\n", p.HighScore)
}

func (o *Output) printPlayers(players []model.Player) {
	if len(players) == 0 {
		fmt.Fprintln(o.out, "No players found")
		return
	}

	w := tabwriter.NewWriter(o.out, 0, 0, 2, ' ', 0)
	fmt.Fprintln(w, "ID\tUSERNAME\tHOURS\tHIGH SCORE")
	for _, p := range players {
		fmt.Fprintf(w, "%d\t%s\t%g\t%d\n", p.ID, p.Username, p.HoursPlayed, p.HighScore)
	}
	_ = w.Flush()
	fmt.Fprintf(o.out, "\nTotal: %d player(s)\n", len(players))
}

func (o *Output) printSelftest(results []selftest.Result) {
	passed := 0
	for _, r := range results {
		status := "FAIL"
		if r.Passed {
			status = "PASS"
			passed++
		}
		fmt.Fprintf(o.out, "%-20s %s  %s\n", r.Name, status, r.Message)
	}
	fmt.Fprintf(o.out, "\n%d/%d checks passed\n", passed, len(results))
}
