// Package pipeline runs a step over a list of ids, one at a time, with a
// fixed pause between items and per-outcome counters.
package pipeline

import (
	"context"
	"fmt"
	"io"
	"time"

	"github.com/jedib0t/go-pretty/v6/table"
	"go.uber.org/zap"

	"github.com/BielosX/wombat/poke-data/src/outcome"
	"github.com/BielosX/wombat/poke-data/src/utils"
)

// Step processes a single id.
type Step func(ctx context.Context, id int) (outcome.Outcome, error)

type Counters struct {
	Total      int
	Successful int
	Skipped    int
	Failed     int
}

func (c *Counters) record(o outcome.Outcome) {
	switch o {
	case outcome.Applied:
		c.Successful++
	case outcome.Satisfied:
		c.Skipped++
	default:
		c.Failed++
	}
}

type Driver struct {
	name  string
	delay time.Duration
	sugar *zap.SugaredLogger
}

// NewDriver returns a driver that logs items as "<name> #id" and waits delay
// between consecutive items.
func NewDriver(sugar *zap.SugaredLogger, name string, delay time.Duration) *Driver {
	return &Driver{name: name, delay: delay, sugar: sugar}
}

// Run processes ids in order. A failed item is counted and logged; only a
// cancelled context stops the run early.
func (d *Driver) Run(ctx context.Context, ids []int, step Step) (Counters, error) {
	counters := Counters{Total: len(ids)}
	for i, id := range ids {
		if i > 0 {
			if err := d.wait(ctx); err != nil {
				return counters, err
			}
		}
		d.sugar.Infof("[%d/%d] %s #%d", i+1, len(ids), d.name, id)
		o, err := step(ctx, id)
		counters.record(o)
		switch {
		case o == outcome.Failed:
			d.sugar.Errorf("%s #%d failed: %v", d.name, id, err)
		case o == outcome.Satisfied:
			d.sugar.Infof("%s #%d: nothing to do", d.name, id)
		}
	}
	d.sugar.Infof("%s finished: %d successful, %d skipped, %d failed",
		d.name, counters.Successful, counters.Skipped, counters.Failed)
	return counters, nil
}

func (d *Driver) wait(ctx context.Context) error {
	if d.delay <= 0 {
		return ctx.Err()
	}
	timer := time.NewTimer(d.delay)
	defer timer.Stop()
	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-timer.C:
		return nil
	}
}

// WriteSummary renders the counters as a table titled with the run name.
func (c Counters) WriteSummary(w io.Writer, title string) {
	t := utils.NewTable(w)
	t.SetTitle(title)
	t.AppendHeader(table.Row{"Total", "Successful", "Skipped", "Failed"})
	t.AppendRow(table.Row{c.Total, c.Successful, c.Skipped, c.Failed})
	t.Render()
}

func (c Counters) String() string {
	return fmt.Sprintf("total=%d successful=%d skipped=%d failed=%d",
		c.Total, c.Successful, c.Skipped, c.Failed)
}
