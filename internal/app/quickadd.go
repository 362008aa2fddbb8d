package app

import (
	"fmt"
	"regexp"
	"strings"
	"time"

	"github.com/spf13/cobra"

	"github.com/agis/scal/internal/contract"
	"github.com/agis/scal/internal/editor"
	"github.com/agis/scal/internal/schedule"
	"github.com/agis/scal/internal/timeparse"
)

var clockRe = regexp.MustCompile(`^\d{1,2}:\d{2}$`)

// quickAddInput is the parsed form of a quick-add line like
// "tomorrow 10:00 Standup @blue #primary 30m".
type quickAddInput struct {
	Title   string        `json:"title"`
	Color   string        `json:"color"`
	Variant string        `json:"variant"`
	Start   time.Time     `json:"start"`
	End     time.Time     `json:"end"`
	Dur     time.Duration `json:"-"`
}

func newQuickAddCmd(opts *globalOptions) *cobra.Command {
	var color string
	var variant string
	var duration string
	var dryRun bool
	var out string
	cmd := &cobra.Command{
		Use:   "quick-add <text>",
		Short: "Create an event from natural text",
		Args:  cobra.ExactArgs(1),
		RunE: func(c *cobra.Command, args []string) error {
			p, ro, err := buildContext(c, opts, "quick-add")
			if err != nil {
				return err
			}
			loc := resolveLocation(ro.TZ)
			defaultDuration := 60 * time.Minute
			if strings.TrimSpace(duration) != "" {
				parsed, err := time.ParseDuration(duration)
				if err != nil || parsed <= 0 {
					return failWithHint(p, contract.ErrInvalidUsage, fmt.Errorf("invalid --duration: %q", duration), "Use a positive Go duration like 30m or 1h", exitInvalidUsage)
				}
				defaultDuration = parsed
			}
			in, err := parseQuickAddInput(args[0], time.Now(), loc, color, variant, defaultDuration)
			if err != nil {
				return failWithHint(p, contract.ErrInvalidUsage, err, `Example: scal quick-add "tomorrow 10:00 Standup @blue #primary 30m"`, exitInvalidUsage)
			}
			if dryRun {
				return p.Success(in, map[string]any{"dry_run": true}, nil)
			}

			ev, err := editor.New().Complete(schedule.EventSeed{Start: in.Start, End: in.End}, editor.Form{
				Title:   in.Title,
				Variant: in.Variant,
				Color:   in.Color,
			})
			if err != nil {
				return failWithHint(p, contract.ErrInvalidEvent, err, "Include @color in the text or pass --color", exitInvalidEvent)
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
			return p.Success(eventRow(added, time.Now()), map[string]any{"count": store.Len(), "id": added.ID}, nil)
		},
	}
	cmd.Flags().StringVar(&color, "color", "", "Default color if @color is missing in text")
	cmd.Flags().StringVar(&variant, "variant", "default", "Default variant if #variant is missing in text")
	cmd.Flags().StringVar(&duration, "duration", "1h", "Default duration if missing in text")
	cmd.Flags().BoolVarP(&dryRun, "dry-run", "n", false, "Preview without writing")
	cmd.Flags().StringVar(&out, "out", "", "Write the updated event set to this JSON or .ics path")
	return cmd
}

func parseQuickAddInput(input string, now time.Time, loc *time.Location, defaultColor, defaultVariant string, defaultDuration time.Duration) (quickAddInput, error) {
	text := strings.TrimSpace(input)
	if text == "" {
		return quickAddInput{}, fmt.Errorf("input is required")
	}
	tokens := strings.Fields(text)
	start, consumed, err := parseQuickAddStart(tokens, now, loc)
	if err != nil {
		return quickAddInput{}, err
	}
	if consumed >= len(tokens) {
		return quickAddInput{}, fmt.Errorf("missing title")
	}

	duration := defaultDuration
	color := strings.TrimSpace(defaultColor)
	variant := strings.TrimSpace(defaultVariant)
	titleParts := make([]string, 0, len(tokens)-consumed)
	for _, tok := range tokens[consumed:] {
		if strings.HasPrefix(tok, "@") && len(tok) > 1 {
			color = strings.TrimSpace(tok[1:])
			continue
		}
		if strings.HasPrefix(tok, "#") && len(tok) > 1 {
			variant = strings.TrimSpace(tok[1:])
			continue
		}
		if d, ok := parseQuickAddDuration(tok); ok {
			duration = d
			continue
		}
		titleParts = append(titleParts, tok)
	}
	title := strings.TrimSpace(strings.Join(titleParts, " "))
	if title == "" {
		return quickAddInput{}, fmt.Errorf("missing title")
	}
	if color == "" {
		return quickAddInput{}, fmt.Errorf("missing color; include @color or --color")
	}
	if variant == "" {
		variant = "default"
	}
	if duration <= 0 {
		return quickAddInput{}, fmt.Errorf("duration must be positive")
	}
	return quickAddInput{
		Title:   title,
		Color:   color,
		Variant: variant,
		Start:   start,
		End:     start.Add(duration),
		Dur:     duration,
	}, nil
}

func parseQuickAddStart(tokens []string, now time.Time, loc *time.Location) (time.Time, int, error) {
	if len(tokens) == 0 {
		return time.Time{}, 0, fmt.Errorf("missing date/time")
	}
	if len(tokens) >= 2 && isDayToken(tokens[0]) && clockRe.MatchString(tokens[1]) {
		day, err := timeparse.ParseDateTime(tokens[0], now, loc)
		if err != nil {
			return time.Time{}, 0, fmt.Errorf("invalid day: %w", err)
		}
		hour, minute, err := timeparse.ParseClock(tokens[1])
		if err != nil {
			return time.Time{}, 0, err
		}
		start := time.Date(day.Year(), day.Month(), day.Day(), hour, minute, 0, 0, loc)
		return start, 2, nil
	}
	if len(tokens) >= 2 {
		joined := tokens[0] + " " + tokens[1]
		if ts, err := timeparse.ParseDateTime(joined, now, loc); err == nil {
			return ts, 2, nil
		}
	}
	ts, err := timeparse.ParseDateTime(tokens[0], now, loc)
	if err != nil {
		return time.Time{}, 0, fmt.Errorf("invalid date/time")
	}
	return ts, 1, nil
}

func parseQuickAddDuration(token string) (time.Duration, bool) {
	if token == "" {
		return 0, false
	}
	d, err := time.ParseDuration(token)
	if err != nil || d <= 0 {
		return 0, false
	}
	return d, true
}

func isDayToken(token string) bool {
	s := strings.ToLower(strings.TrimSpace(token))
	if s == "today" || s == "tomorrow" || s == "yesterday" {
		return true
	}
	if strings.HasSuffix(s, "d") && (strings.HasPrefix(s, "+") || strings.HasPrefix(s, "-")) {
		return true
	}
	if _, err := time.Parse("2006-01-02", token); err == nil {
		return true
	}
	return false
}
