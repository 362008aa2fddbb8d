package app

import (
	"errors"
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"github.com/agis/scal/internal/contract"
	"github.com/agis/scal/internal/editor"
	"github.com/agis/scal/internal/schedule"
	"github.com/agis/scal/internal/timeparse"
)

func newEventsCmd(opts *globalOptions) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "events",
		Short: "List and edit the event set",
	}
	cmd.AddCommand(newEventsListCmd(opts))
	cmd.AddCommand(newEventsAddCmd(opts))
	cmd.AddCommand(newEventsRemoveCmd(opts))
	cmd.AddCommand(newEventsUpdateCmd(opts))
	cmd.AddCommand(newEventsSetCmd(opts))
	cmd.AddCommand(newEventsLayoutCmd(opts))
	cmd.AddCommand(newEventsExportCmd(opts))
	cmd.AddCommand(newEventsImportCmd(opts))
	return cmd
}

func newEventsListCmd(opts *globalOptions) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "list",
		Short: "List all events in insertion order",
		RunE: func(c *cobra.Command, _ []string) error {
			p, ro, err := buildContext(c, opts, "events list")
			if err != nil {
				return err
			}
			events, err := loadEvents(ro.Events, c.InOrStdin())
			if err != nil {
				return failWithHint(p, contract.ErrInvalidEvent, err, "Pass --events as a JSON array file, an .ics file, or - for stdin", exitInvalidEvent)
			}
			rows := eventRows(events, time.Now())
			return p.Success(rows, map[string]any{"count": len(rows)}, nil)
		},
	}
	return cmd
}

// eventFormFlags are the editor fields shared by add and update.
type eventFormFlags struct {
	Title       string
	Description string
	Variant     string
	Color       string
	Start       string
	End         string
}

func (f *eventFormFlags) register(cmd *cobra.Command) {
	cmd.Flags().StringVar(&f.Title, "title", "", "Event title")
	cmd.Flags().StringVar(&f.Description, "description", "", "Event description")
	cmd.Flags().StringVar(&f.Variant, "variant", "", "Display variant: primary|danger|success|warning|default")
	cmd.Flags().StringVar(&f.Color, "color", "", "Display color")
	cmd.Flags().StringVar(&f.Start, "start", "", "Start time, e.g. 2024-07-25T10:00")
	cmd.Flags().StringVar(&f.End, "end", "", "End time, e.g. 2024-07-25T11:00")
}

func (f *eventFormFlags) times(loc *time.Location) (start, end time.Time, err error) {
	now := time.Now()
	if f.Start != "" {
		start, err = timeparse.ParseDateTime(f.Start, now, loc)
		if err != nil {
			return time.Time{}, time.Time{}, err
		}
	}
	if f.End != "" {
		end, err = timeparse.ParseDateTime(f.End, now, loc)
		if err != nil {
			return time.Time{}, time.Time{}, err
		}
	}
	return start, end, nil
}

func newEventsAddCmd(opts *globalOptions) *cobra.Command {
	var form eventFormFlags
	var out string
	cmd := &cobra.Command{
		Use:   "add",
		Short: "Validate a new event and append it to the set",
		RunE: func(c *cobra.Command, _ []string) error {
			p, ro, err := buildContext(c, opts, "events add")
			if err != nil {
				return err
			}
			loc := resolveLocation(ro.TZ)
			events, err := loadEvents(ro.Events, c.InOrStdin())
			if err != nil {
				return failWithHint(p, contract.ErrInvalidEvent, err, "Pass --events as a JSON array file, an .ics file, or - for stdin", exitInvalidEvent)
			}
			start, end, err := form.times(loc)
			if err != nil {
				return failWithHint(p, contract.ErrInvalidUsage, err, "Use --start/--end as YYYY-MM-DDTHH:MM", exitInvalidUsage)
			}
			variant := form.Variant
			if variant == "" {
				variant = "default"
			}
			ev, err := editor.New().Complete(schedule.EventSeed{}, editor.Form{
				Title:       form.Title,
				Description: form.Description,
				Variant:     variant,
				Color:       form.Color,
				Start:       start,
				End:         end,
			})
			if err != nil {
				return failWithHint(p, contract.ErrInvalidEvent, err, "Provide --title, --color, and a non-inverted --start/--end pair", exitInvalidEvent)
			}

			store := schedule.NewStore(events...)
			added := store.Add(ev)
			if out != "" {
				if err := writeEvents(out, store.Events(), c.OutOrStdout()); err != nil {
					return failWithHint(p, contract.ErrGeneric, err, "", exitGeneric)
				}
			}
			return p.Success(eventRow(added, time.Now()), map[string]any{"count": store.Len(), "id": added.ID}, nil)
		},
	}
	form.register(cmd)
	cmd.Flags().StringVar(&out, "out", "", "Write the updated event set to this JSON or .ics path")
	return cmd
}

func newEventsRemoveCmd(opts *globalOptions) *cobra.Command {
	var out string
	cmd := &cobra.Command{
		Use:   "remove <id>",
		Short: "Remove an event by id",
		Args:  cobra.ExactArgs(1),
		RunE: func(c *cobra.Command, args []string) error {
			p, ro, err := buildContext(c, opts, "events remove")
			if err != nil {
				return err
			}
			events, err := loadEvents(ro.Events, c.InOrStdin())
			if err != nil {
				return failWithHint(p, contract.ErrInvalidEvent, err, "Pass --events as a JSON array file, an .ics file, or - for stdin", exitInvalidEvent)
			}

			store := schedule.NewStore(events...)
			before := store.Len()
			store.Remove(args[0])
			if store.Len() == before {
				err := fmt.Errorf("event not found: %s", args[0])
				return failWithHint(p, contract.ErrNotFound, err, "Run `scal events list` to see known ids", exitNotFound)
			}
			if out != "" {
				if err := writeEvents(out, store.Events(), c.OutOrStdout()); err != nil {
					return failWithHint(p, contract.ErrGeneric, err, "", exitGeneric)
				}
			}
			return p.Success(map[string]any{"removed": args[0]}, map[string]any{"count": store.Len()}, nil)
		},
	}
	cmd.Flags().StringVar(&out, "out", "", "Write the updated event set to this JSON or .ics path")
	return cmd
}

func newEventsUpdateCmd(opts *globalOptions) *cobra.Command {
	var form eventFormFlags
	var out string
	cmd := &cobra.Command{
		Use:   "update <id>",
		Short: "Update an existing event in place",
		Args:  cobra.ExactArgs(1),
		RunE: func(c *cobra.Command, args []string) error {
			p, ro, err := buildContext(c, opts, "events update")
			if err != nil {
				return err
			}
			loc := resolveLocation(ro.TZ)
			events, err := loadEvents(ro.Events, c.InOrStdin())
			if err != nil {
				return failWithHint(p, contract.ErrInvalidEvent, err, "Pass --events as a JSON array file, an .ics file, or - for stdin", exitInvalidEvent)
			}

			existing, ok := findEvent(events, args[0])
			if !ok {
				err := fmt.Errorf("event not found: %s", args[0])
				return failWithHint(p, contract.ErrNotFound, err, "Run `scal events list` to see known ids", exitNotFound)
			}

			start, end, err := form.times(loc)
			if err != nil {
				return failWithHint(p, contract.ErrInvalidUsage, err, "Use --start/--end as YYYY-MM-DDTHH:MM", exitInvalidUsage)
			}
			merged := mergeForm(existing, form, start, end)

			ev, err := editor.New().Complete(schedule.EventSeed{Start: existing.Start, End: existing.End}, merged)
			if err != nil {
				return failWithHint(p, contract.ErrInvalidEvent, err, "Provide --title, --color, and a non-inverted --start/--end pair", exitInvalidEvent)
			}
			ev.ID = existing.ID

			store := schedule.NewStore(events...)
			store.Update(ev)
			if out != "" {
				if err := writeEvents(out, store.Events(), c.OutOrStdout()); err != nil {
					return failWithHint(p, contract.ErrGeneric, err, "", exitGeneric)
				}
			}
			return p.Success(eventRow(ev, time.Now()), map[string]any{"count": store.Len(), "id": ev.ID}, nil)
		},
	}
	form.register(cmd)
	cmd.Flags().StringVar(&out, "out", "", "Write the updated event set to this JSON or .ics path")
	return cmd
}

func newEventsSetCmd(opts *globalOptions) *cobra.Command {
	var from string
	var out string
	cmd := &cobra.Command{
		Use:   "set",
		Short: "Replace the whole event set",
		RunE: func(c *cobra.Command, _ []string) error {
			p, ro, err := buildContext(c, opts, "events set")
			if err != nil {
				return err
			}
			events, err := loadEvents(ro.Events, c.InOrStdin())
			if err != nil {
				return failWithHint(p, contract.ErrInvalidEvent, err, "Pass --events as a JSON array file, an .ics file, or - for stdin", exitInvalidEvent)
			}
			replacement, err := loadEvents(from, c.InOrStdin())
			if err != nil {
				return failWithHint(p, contract.ErrInvalidEvent, err, "Pass --from as a JSON array file, an .ics file, or - for stdin", exitInvalidEvent)
			}

			store := schedule.NewStore(events...)
			store.SetAll(replacement)
			if out != "" {
				if err := writeEvents(out, store.Events(), c.OutOrStdout()); err != nil {
					return failWithHint(p, contract.ErrGeneric, err, "", exitGeneric)
				}
			}
			return p.Success(eventRows(store.Events(), time.Now()), map[string]any{"count": store.Len()}, nil)
		},
	}
	cmd.Flags().StringVar(&from, "from", "", "Replacement event set: JSON or .ics path, or - for stdin")
	cmd.Flags().StringVar(&out, "out", "", "Write the updated event set to this JSON or .ics path")
	_ = cmd.MarkFlagRequired("from")
	return cmd
}

func newEventsLayoutCmd(opts *globalOptions) *cobra.Command {
	var at string
	cmd := &cobra.Command{
		Use:   "layout <id>",
		Short: "Compute one event's timeline geometry against its day cohort",
		Args:  cobra.ExactArgs(1),
		RunE: func(c *cobra.Command, args []string) error {
			p, ro, err := buildContext(c, opts, "events layout")
			if err != nil {
				return err
			}
			loc := resolveLocation(ro.TZ)
			events, err := loadEvents(ro.Events, c.InOrStdin())
			if err != nil {
				return failWithHint(p, contract.ErrInvalidEvent, err, "Pass --events as a JSON array file, an .ics file, or - for stdin", exitInvalidEvent)
			}
			target, ok := findEvent(events, args[0])
			if !ok {
				err := fmt.Errorf("event not found: %s", args[0])
				return failWithHint(p, contract.ErrNotFound, err, "Run `scal events list` to see known ids", exitNotFound)
			}

			anchor := target.Start
			if at != "" {
				anchor, err = resolveAnchor(at, loc)
				if err != nil {
					return failWithHint(p, contract.ErrInvalidUsage, err, "Use --at as today, tomorrow, +Nd, or YYYY-MM-DD", exitInvalidUsage)
				}
			}

			cohort := schedule.EventsForDay(anchor.Day(), anchor, events)
			box, err := schedule.Layout(target, cohort)
			if err != nil {
				var timeErr *schedule.InvalidEventTimeError
				if errors.As(err, &timeErr) {
					return failWithHint(p, contract.ErrInvalidEvent, err, "Fix the event's start/end times and retry", exitInvalidEvent)
				}
				return failWithHint(p, contract.ErrGeneric, err, "", exitGeneric)
			}

			now := time.Now()
			row := timelineRow(schedule.TimelineEntry{
				RenderedEvent: schedule.RenderedEvent{Event: target, Minimized: true},
				Box:           box,
			}, now)
			return p.Success(row, map[string]any{"id": target.ID, "date": anchor.Format("2006-01-02"), "cohort": len(cohort)}, nil)
		},
	}
	cmd.Flags().StringVar(&at, "at", "", "Day to lay the event out on; defaults to the event's start date")
	return cmd
}

func newEventsExportCmd(opts *globalOptions) *cobra.Command {
	var out string
	cmd := &cobra.Command{
		Use:   "export",
		Short: "Export the event set as an iCalendar file",
		RunE: func(c *cobra.Command, _ []string) error {
			p, ro, err := buildContext(c, opts, "events export")
			if err != nil {
				return err
			}
			events, err := loadEvents(ro.Events, c.InOrStdin())
			if err != nil {
				return failWithHint(p, contract.ErrInvalidEvent, err, "Pass --events as a JSON array file, an .ics file, or - for stdin", exitInvalidEvent)
			}
			payload, err := exportICS(events)
			if err != nil {
				return failWithHint(p, contract.ErrGeneric, err, "", exitGeneric)
			}
			if out == "" || out == "-" {
				_, werr := c.OutOrStdout().Write([]byte(payload))
				return werr
			}
			if err := writePayload(out, []byte(payload), c.OutOrStdout()); err != nil {
				return failWithHint(p, contract.ErrGeneric, err, "", exitGeneric)
			}
			return p.Success(map[string]any{"path": out}, map[string]any{"count": len(events)}, nil)
		},
	}
	cmd.Flags().StringVar(&out, "out", "", "Destination .ics path; stdout when omitted")
	return cmd
}

func newEventsImportCmd(opts *globalOptions) *cobra.Command {
	var from string
	var out string
	cmd := &cobra.Command{
		Use:   "import",
		Short: "Import iCalendar events into the set",
		RunE: func(c *cobra.Command, _ []string) error {
			p, ro, err := buildContext(c, opts, "events import")
			if err != nil {
				return err
			}
			events, err := loadEvents(ro.Events, c.InOrStdin())
			if err != nil {
				return failWithHint(p, contract.ErrInvalidEvent, err, "Pass --events as a JSON array file, an .ics file, or - for stdin", exitInvalidEvent)
			}
			imported, err := loadEvents(from, c.InOrStdin())
			if err != nil {
				return failWithHint(p, contract.ErrInvalidEvent, err, "Pass --from as an .ics or JSON path", exitInvalidEvent)
			}

			store := schedule.NewStore(events...)
			for _, e := range imported {
				store.Add(e)
			}
			if out != "" {
				if err := writeEvents(out, store.Events(), c.OutOrStdout()); err != nil {
					return failWithHint(p, contract.ErrGeneric, err, "", exitGeneric)
				}
			}
			return p.Success(eventRows(store.Events(), time.Now()), map[string]any{"count": store.Len(), "imported": len(imported)}, nil)
		},
	}
	cmd.Flags().StringVar(&from, "from", "", "Source .ics or JSON path")
	cmd.Flags().StringVar(&out, "out", "", "Write the merged event set to this JSON or .ics path")
	_ = cmd.MarkFlagRequired("from")
	return cmd
}

func findEvent(events []schedule.Event, id string) (schedule.Event, bool) {
	for _, e := range events {
		if e.ID == id {
			return e, true
		}
	}
	return schedule.Event{}, false
}

func mergeForm(existing schedule.Event, form eventFormFlags, start, end time.Time) editor.Form {
	merged := editor.Form{
		Title:       existing.Title,
		Description: existing.Description,
		Variant:     existing.Variant,
		Color:       existing.Color,
		Start:       existing.Start,
		End:         existing.End,
	}
	if form.Title != "" {
		merged.Title = form.Title
	}
	if form.Description != "" {
		merged.Description = form.Description
	}
	if form.Variant != "" {
		merged.Variant = form.Variant
	}
	if form.Color != "" {
		merged.Color = form.Color
	}
	if !start.IsZero() {
		merged.Start = start
	}
	if !end.IsZero() {
		merged.End = end
	}
	if merged.Variant == "" {
		merged.Variant = "default"
	}
	return merged
}
