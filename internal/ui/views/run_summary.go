package views

import (
	"fmt"
	"io"
	"strconv"

	"github.com/hance08/txengine/internal/model"
	"github.com/hance08/txengine/internal/service"
	"github.com/pterm/pterm"
)

// RenderRunSummary writes per-kind counts and snapshot totals as tables.
func RenderRunSummary(w io.Writer, s *service.Summary) error {
	eventsData := pterm.TableData{
		{"Kind", "Applied", "Rejected"},
	}
	for _, kind := range model.Kinds() {
		c := s.Events[kind]
		rejected := strconv.Itoa(c.Rejected)
		if c.Rejected > 0 {
			rejected = pterm.Red(rejected)
		}
		eventsData = append(eventsData, []string{kind.String(), strconv.Itoa(c.Applied), rejected})
	}
	eventsData = append(eventsData, []string{"malformed", "-", strconv.Itoa(s.Malformed)})

	events, err := pterm.DefaultTable.WithHasHeader().WithData(eventsData).Srender()
	if err != nil {
		return err
	}

	locked := strconv.Itoa(s.Locked)
	if s.Locked > 0 {
		locked = pterm.Yellow(locked)
	}
	totals, err := pterm.DefaultTable.WithData(pterm.TableData{
		{"Run", s.RunID},
		{"Accounts", strconv.Itoa(s.Accounts)},
		{"Locked Accounts", locked},
	}).Srender()
	if err != nil {
		return err
	}

	_, err = fmt.Fprintf(w, "%s\n%s\n", events, totals)
	return err
}
