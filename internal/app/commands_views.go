package app

import (
	"time"

	"github.com/spf13/cobra"

	"github.com/agis/scal/internal/contract"
	"github.com/agis/scal/internal/schedule"
	"github.com/agis/scal/internal/timeparse"
)

func newDayCmd(opts *globalOptions) *cobra.Command {
	var at string
	var next, prev int
	var strip bool
	cmd := &cobra.Command{
		Use:   "day",
		Short: "Render the single-day timeline",
		RunE: func(c *cobra.Command, _ []string) error {
			p, ro, err := buildContext(c, opts, "day")
			if err != nil {
				return err
			}
			loc := resolveLocation(ro.TZ)
			anchor, err := resolveAnchor(at, loc)
			if err != nil {
				return failWithHint(p, contract.ErrInvalidUsage, err, "Use --at as today, tomorrow, +Nd, or YYYY-MM-DD", exitInvalidUsage)
			}
			events, err := loadEvents(ro.Events, c.InOrStdin())
			if err != nil {
				return failWithHint(p, contract.ErrInvalidEvent, err, "Pass --events as a JSON array file, an .ics file, or - for stdin", exitInvalidEvent)
			}

			view := schedule.NewDailyView(nil)
			view.SetCursor(anchor)
			for i := 0; i < next; i++ {
				view.Next()
			}
			for i := 0; i < prev; i++ {
				view.Prev()
			}

			now := time.Now()
			meta := map[string]any{
				"view":  "day",
				"title": view.Title(),
				"date":  view.Cursor().Format("2006-01-02"),
			}
			if strip {
				rendered := view.AllDayStrip(events)
				rows := make([]contract.EventRow, 0, len(rendered))
				for _, r := range rendered {
					rows = append(rows, eventRow(r.Event, now))
				}
				meta["count"] = len(rows)
				p.Heading(view.Title())
				return p.Success(rows, meta, nil)
			}

			entries, layoutErr := view.Timeline(events)
			rows := timelineRows(entries, now)
			meta["count"] = len(rows)
			var warnings []string
			if layoutErr != nil {
				warnings = append(warnings, layoutErr.Error())
			}
			p.Heading(view.Title())
			return p.Success(rows, meta, warnings)
		},
	}
	cmd.Flags().StringVar(&at, "at", "today", "Anchor date selector")
	cmd.Flags().IntVar(&next, "next", 0, "Advance N days from the anchor")
	cmd.Flags().IntVar(&prev, "prev", 0, "Retreat N days from the anchor")
	cmd.Flags().BoolVar(&strip, "strip", false, "Render the all-day strip instead of the timeline")
	return cmd
}

func newWeekCmd(opts *globalOptions) *cobra.Command {
	var at string
	var next, prev int
	var dayIndex int
	cmd := &cobra.Command{
		Use:   "week",
		Short: "Render the seven-column week timeline",
		RunE: func(c *cobra.Command, _ []string) error {
			p, ro, err := buildContext(c, opts, "week")
			if err != nil {
				return err
			}
			loc := resolveLocation(ro.TZ)
			anchor, err := resolveAnchor(at, loc)
			if err != nil {
				return failWithHint(p, contract.ErrInvalidUsage, err, "Use --at as today, tomorrow, +Nd, or YYYY-MM-DD", exitInvalidUsage)
			}
			ws, err := resolveWeekStart(ro)
			if err != nil {
				return failWithHint(p, contract.ErrInvalidUsage, err, "Use --week-start monday|sunday", exitInvalidUsage)
			}
			events, err := loadEvents(ro.Events, c.InOrStdin())
			if err != nil {
				return failWithHint(p, contract.ErrInvalidEvent, err, "Pass --events as a JSON array file, an .ics file, or - for stdin", exitInvalidEvent)
			}

			view := schedule.NewWeeklyView(nil)
			view.WeekStart = ws
			view.SetCursor(anchor)
			for i := 0; i < next; i++ {
				view.Next()
			}
			for i := 0; i < prev; i++ {
				view.Prev()
			}

			days := view.Days()
			dayStrings := make([]string, len(days))
			for i, d := range days {
				dayStrings[i] = d.Format("2006-01-02")
			}

			now := time.Now()
			rows := make([]contract.TimelineRow, 0)
			var warnings []string
			columns := []int{0, 1, 2, 3, 4, 5, 6}
			if dayIndex >= 0 {
				columns = []int{dayIndex % 7}
			}
			for _, col := range columns {
				entries, layoutErr := view.Timeline(col, events)
				if layoutErr != nil {
					warnings = append(warnings, layoutErr.Error())
				}
				rows = append(rows, timelineRows(entries, now)...)
			}

			meta := map[string]any{
				"view":       "week",
				"title":      view.Title(),
				"week":       view.WeekNumber(),
				"week_start": ws.String(),
				"days":       dayStrings,
				"count":      len(rows),
			}
			p.Heading(view.Title())
			return p.Success(rows, meta, warnings)
		},
	}
	cmd.Flags().StringVar(&at, "at", "today", "Anchor date selector within the target week")
	cmd.Flags().IntVar(&next, "next", 0, "Advance N weeks from the anchor")
	cmd.Flags().IntVar(&prev, "prev", 0, "Retreat N weeks from the anchor")
	cmd.Flags().IntVar(&dayIndex, "day-index", -1, "Render a single weekday column, 0..6")
	return cmd
}

func newMonthCmd(opts *globalOptions) *cobra.Command {
	var at string
	var next, prev int
	cmd := &cobra.Command{
		Use:   "month",
		Short: "Render the month grid",
		RunE: func(c *cobra.Command, _ []string) error {
			p, ro, err := buildContext(c, opts, "month")
			if err != nil {
				return err
			}
			loc := resolveLocation(ro.TZ)
			anchor, err := timeparse.ParseMonth(at, time.Now(), loc)
			if err != nil {
				return failWithHint(p, contract.ErrInvalidUsage, err, "Use --at as YYYY-MM, YYYY-MM-DD, or relative day syntax", exitInvalidUsage)
			}
			events, err := loadEvents(ro.Events, c.InOrStdin())
			if err != nil {
				return failWithHint(p, contract.ErrInvalidEvent, err, "Pass --events as a JSON array file, an .ics file, or - for stdin", exitInvalidEvent)
			}

			view := schedule.NewMonthlyView()
			view.SetCursor(anchor)
			for i := 0; i < next; i++ {
				view.Next()
			}
			for i := 0; i < prev; i++ {
				view.Prev()
			}

			rows := monthCellRows(view, events)

			meta := map[string]any{
				"view":        "month",
				"title":       view.Title(),
				"month":       view.Cursor().Format("2006-01"),
				"lead_offset": len(view.LeadOffset()),
				"count":       len(rows),
			}
			p.Heading(view.Title())
			return p.Success(rows, meta, nil)
		},
	}
	cmd.Flags().StringVar(&at, "at", "", "Month selector: YYYY-MM, YYYY-MM-DD, today, +Nd")
	cmd.Flags().IntVar(&next, "next", 0, "Advance N months from the anchor")
	cmd.Flags().IntVar(&prev, "prev", 0, "Retreat N months from the anchor")
	return cmd
}

func monthCellRows(view *schedule.MonthlyView, events []schedule.Event) []contract.MonthCellRow {
	fillers := view.LeadOffset()
	cells := view.Days(events)

	rows := make([]contract.MonthCellRow, 0, len(fillers)+len(cells))
	for _, day := range fillers {
		rows = append(rows, contract.MonthCellRow{Day: day, Filler: true})
	}
	for _, cell := range cells {
		rendered := view.Cell(cell.Day, events)
		row := contract.MonthCellRow{Day: rendered.Day, MoreCount: rendered.MoreCount}
		if rendered.First != nil {
			row.Title = rendered.First.Title
			row.EventID = rendered.First.ID
		}
		rows = append(rows, row)
	}
	return rows
}
