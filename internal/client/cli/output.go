package cli

import (
	"encoding/json"
	"fmt"
	"io"

	"github.com/dmitrijs2005/educloud/internal/client/models"
	"github.com/fatih/color"
)

var (
	successColor = color.New(color.FgGreen, color.Bold)
	errorColor   = color.New(color.FgRed, color.Bold)
	mutedColor   = color.New(color.FgHiBlack)
)

func printSuccess(w io.Writer, msg string) {
	successColor.Fprint(w, "✓ ")
	fmt.Fprintln(w, msg)
}

func printError(w io.Writer, msg string) {
	errorColor.Fprint(w, "✗ ")
	fmt.Fprintln(w, msg)
}

func (a *App) printResult(res models.AuthResult) {
	msg := res.Message
	if res.Success {
		if msg == "" {
			msg = "Success!"
		}
		printSuccess(a.out, msg)
		return
	}
	if msg == "" {
		msg = "Failed"
	}
	printError(a.out, msg)
}

func (a *App) printHealth(st models.HealthStatus) {
	if st.Up() {
		successColor.Fprint(a.out, string(st.Status))
	} else {
		errorColor.Fprint(a.out, string(st.Status))
	}
	mutedColor.Fprintf(a.out, " (%d ms)\n", st.ResponseTime.Milliseconds())

	if d := st.Details; d != nil {
		for _, kv := range [][2]string{
			{"database", d.Database},
			{"disk space", d.DiskSpace},
			{"uptime", d.Uptime},
			{"version", d.Version},
		} {
			if kv[1] != "" {
				fmt.Fprintf(a.out, "  %-10s %s\n", kv[0]+":", kv[1])
			}
		}
	}
}

func (a *App) printJSON(v any) error {
	b, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return err
	}
	_, err = fmt.Fprintln(a.out, string(b))
	return err
}
