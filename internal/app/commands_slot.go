package app

import (
	"errors"
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"github.com/agis/scal/internal/bus"
	"github.com/agis/scal/internal/contract"
	"github.com/agis/scal/internal/editor"
	"github.com/agis/scal/internal/log"
	"github.com/agis/scal/internal/schedule"
)

// slotClickTopic carries seeds from a view's slot click to whoever
// hosts the editor.
const slotClickTopic = "slot.click"

func newSlotCmd(opts *globalOptions) *cobra.Command {
	var viewName string
	var at string
	var offset float64
	var columnHeight float64
	var dayIndex int
	var form eventFormFlags
	var out string
	cmd := &cobra.Command{
		Use:   "slot",
		Short: "Probe a timeline offset and compose the event seed a click would emit",
		RunE: func(c *cobra.Command, _ []string) error {
			p, ro, err := buildContext(c, opts, "slot")
			if err != nil {
				return err
			}
			loc := resolveLocation(ro.TZ)
			anchor, err := resolveAnchor(at, loc)
			if err != nil {
				return failWithHint(p, contract.ErrInvalidUsage, err, "Use --at as today, tomorrow, +Nd, or YYYY-MM-DD", exitInvalidUsage)
			}

			seeds := bus.New[schedule.EventSeed]()
			var captured *schedule.EventSeed
			cancel := seeds.Subscribe(slotClickTopic, func(seed schedule.EventSeed) {
				captured = &seed
			})
			defer cancel()
			emit := func(seed schedule.EventSeed) {
				seeds.Publish(slotClickTopic, seed)
			}

			var probe schedule.Probe
			switch viewName {
			case "day":
				view := schedule.NewDailyView(emit)
				view.SetCursor(anchor)
				if err := view.PointerMove(offset, columnHeight); err != nil {
					return failWithHint(p, contract.ErrInvalidUsage, err, "Use a positive --column-height", exitInvalidUsage)
				}
				probe, _ = view.Probe()
				err = view.ClickSlot()
			case "week":
				ws, werr := resolveWeekStart(ro)
				if werr != nil {
					return failWithHint(p, contract.ErrInvalidUsage, werr, "Use --week-start monday|sunday", exitInvalidUsage)
				}
				view := schedule.NewWeeklyView(emit)
				view.WeekStart = ws
				view.SetCursor(anchor)
				if err := view.PointerMove(offset, columnHeight); err != nil {
					return failWithHint(p, contract.ErrInvalidUsage, err, "Use a positive --column-height", exitInvalidUsage)
				}
				probe, _ = view.Probe()
				err = view.ClickSlot(dayIndex)
			default:
				err := fmt.Errorf("unknown view: %s", viewName)
				return failWithHint(p, contract.ErrInvalidUsage, err, "Use --view day|week", exitInvalidUsage)
			}
			if err != nil {
				var dayErr *schedule.InvalidDayError
				if errors.As(err, &dayErr) {
					return failWithHint(p, contract.ErrInvalidEvent, err, "The clicked column resolves outside the month", exitInvalidEvent)
				}
				return failWithHint(p, contract.ErrGeneric, err, "", exitGeneric)
			}
			if captured == nil {
				err := errors.New("slot click emitted no seed")
				return failWithHint(p, contract.ErrGeneric, err, "", exitGeneric)
			}
			log.Debug("slot click seeded", "start", captured.Start.Format(time.RFC3339), "end", captured.End.Format(time.RFC3339))

			seedRow := contract.SeedRow{
				Probe: probe.Label(),
				Start: captured.Start,
				End:   captured.End,
			}
			if form.Title == "" {
				return p.Success(seedRow, map[string]any{"view": viewName, "probe": probe.Label()}, nil)
			}

			variant := form.Variant
			if variant == "" {
				variant = "default"
			}
			ev, err := editor.New().Complete(*captured, editor.Form{
				Title:       form.Title,
				Description: form.Description,
				Variant:     variant,
				Color:       form.Color,
			})
			if err != nil {
				return failWithHint(p, contract.ErrInvalidEvent, err, "Provide --title and --color to complete the seeded event", exitInvalidEvent)
			}

			events, err := loadEvents(ro.Events, c.InOrStdin())
			if err != nil {
				return failWithHint(p, contract.ErrInvalidEvent, err, "Pass --events as a JSON array file, an .ics file, or - for stdin", exitInvalidEvent)
			}
			store := schedule.NewStore(events...)
			added := store.Add(ev)
			if out != "" {
				if err := writeEvents(out, store.Events(), c.OutOrStdout()); err != nil {
					return failWithHint(p, contract.ErrGeneric, err, "", exitGeneric)
				}
			}
			return p.Success(eventRow(added, time.Now()), map[string]any{"view": viewName, "probe": probe.Label(), "count": store.Len()}, nil)
		},
	}
	cmd.Flags().StringVar(&viewName, "view", "day", "Timeline to probe: day|week")
	cmd.Flags().StringVar(&at, "at", "today", "Anchor date selector")
	cmd.Flags().Float64Var(&offset, "offset", 0, "Pointer offset in px from the top of the hour column")
	cmd.Flags().Float64Var(&columnHeight, "column-height", 24*schedule.HourHeight, "Hour column height in px")
	cmd.Flags().IntVar(&dayIndex, "day-index", 0, "Weekday column for --view week, 0..6")
	form.register(cmd)
	cmd.Flags().StringVar(&out, "out", "", "Write the updated event set to this JSON or .ics path")
	return cmd
}
