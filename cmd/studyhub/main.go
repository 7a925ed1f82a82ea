package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"os/signal"
	"path/filepath"
	"strings"
	"syscall"
	"time"

	"github.com/spf13/cobra"

	"studyhub/internal/bootstrap"
	pomodorodto "studyhub/internal/modules/pomodoro/dto"
	reminderinadapter "studyhub/internal/modules/reminder/adapter/in"
	"studyhub/internal/platform/config"
	"studyhub/internal/platform/timefmt"
)

func main() {
	if err := newRootCmd().Execute(); err != nil {
		_, _ = fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func newRootCmd() *cobra.Command {
	var dataDir string

	root := &cobra.Command{
		Use:           "studyhub",
		Short:         "Study tracker: courses, sessions, focus timer and reminders",
		SilenceUsage:  true,
		SilenceErrors: true,
	}
	root.PersistentFlags().StringVar(&dataDir, "data", defaultDataDir(), "data directory (config.yaml, .env, studyhub.db)")

	root.AddCommand(newTUICmd(&dataDir))
	root.AddCommand(newCourseCmd(&dataDir))
	root.AddCommand(newSessionCmd(&dataDir))
	root.AddCommand(newTimerCmd(&dataDir))
	root.AddCommand(newRemindCmd(&dataDir))
	root.AddCommand(newXPCmd(&dataDir))
	root.AddCommand(newNotifyCmd(&dataDir))
	return root
}

func defaultDataDir() string {
	if v := os.Getenv("STUDYHUB_DATA"); v != "" {
		return v
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return ".studyhub"
	}
	return filepath.Join(home, ".studyhub")
}

func loadApp(ctx context.Context, dataDir string, mode bootstrap.Mode) (*bootstrap.App, error) {
	cfg, err := config.Load(dataDir)
	if err != nil {
		return nil, err
	}
	return bootstrap.New(ctx, cfg, mode)
}

// withApp runs fn against a one-shot app and closes it afterwards.
func withApp(dataDir string, fn func(ctx context.Context, app *bootstrap.App) error) error {
	ctx := context.Background()
	app, err := loadApp(ctx, dataDir, bootstrap.ModeOneShot)
	if err != nil {
		return err
	}
	return errors.Join(fn(ctx, app), app.Close())
}

func newTUICmd(dataDir *string) *cobra.Command {
	return &cobra.Command{
		Use:   "tui",
		Short: "Run the studyhub terminal UI",
		RunE: func(_ *cobra.Command, _ []string) error {
			ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
			defer stop()
			app, err := loadApp(ctx, *dataDir, bootstrap.ModeTUI)
			if err != nil {
				return err
			}
			return errors.Join(bootstrap.RunTUI(ctx, app), app.Close())
		},
	}
}

func newCourseCmd(dataDir *string) *cobra.Command {
	course := &cobra.Command{Use: "course", Short: "Manage courses"}

	var code, topic string
	addCmd := &cobra.Command{
		Use:   "add",
		Short: "Add a course",
		RunE: func(cmd *cobra.Command, _ []string) error {
			if strings.TrimSpace(code) == "" || strings.TrimSpace(topic) == "" {
				return fmt.Errorf("--code and --topic are required")
			}
			return withApp(*dataDir, func(ctx context.Context, app *bootstrap.App) error {
				out, ok, err := app.CourseCLI.Add(ctx, code, topic)
				if !ok {
					return fmt.Errorf("course not added")
				}
				_, _ = fmt.Fprintf(cmd.OutOrStdout(), "added %s (%s)\n", out.Label, out.ID)
				return err
			})
		},
	}
	addCmd.Flags().StringVar(&code, "code", "", "course code, e.g. CS101")
	addCmd.Flags().StringVar(&topic, "topic", "", "course topic")

	listCmd := &cobra.Command{
		Use:   "list",
		Short: "List courses with total study time",
		RunE: func(cmd *cobra.Command, _ []string) error {
			return withApp(*dataDir, func(ctx context.Context, app *bootstrap.App) error {
				courses, err := app.CourseCLI.List(ctx)
				if err != nil {
					return err
				}
				if len(courses) == 0 {
					_, _ = fmt.Fprintln(cmd.OutOrStdout(), "no courses")
					return nil
				}
				for _, c := range courses {
					_, _ = fmt.Fprintf(cmd.OutOrStdout(), "%s\t%s\t%s\n", c.ID, c.Label, c.TotalLabel)
				}
				return nil
			})
		},
	}

	var deleteID string
	deleteCmd := &cobra.Command{
		Use:   "delete",
		Short: "Delete a course and its sessions",
		RunE: func(cmd *cobra.Command, _ []string) error {
			if strings.TrimSpace(deleteID) == "" {
				return fmt.Errorf("--id is required")
			}
			return withApp(*dataDir, func(ctx context.Context, app *bootstrap.App) error {
				out, err := app.CourseCLI.Delete(ctx, deleteID)
				if err != nil {
					return err
				}
				if !out.Deleted {
					return fmt.Errorf("course %s not found", deleteID)
				}
				_, _ = fmt.Fprintf(cmd.OutOrStdout(), "deleted %s\n", deleteID)
				return nil
			})
		},
	}
	deleteCmd.Flags().StringVar(&deleteID, "id", "", "course id")

	shuffleCmd := &cobra.Command{
		Use:   "shuffle",
		Short: "Pick a random course to study next",
		RunE: func(cmd *cobra.Command, _ []string) error {
			return withApp(*dataDir, func(ctx context.Context, app *bootstrap.App) error {
				c, ok := app.CourseCLI.Shuffle(ctx)
				if !ok {
					_, _ = fmt.Fprintln(cmd.OutOrStdout(), "no courses")
					return nil
				}
				_, _ = fmt.Fprintf(cmd.OutOrStdout(), "study next: %s (%s)\n", c.Label, c.ID)
				return nil
			})
		},
	}

	course.AddCommand(addCmd, listCmd, deleteCmd, shuffleCmd)
	return course
}

func newSessionCmd(dataDir *string) *cobra.Command {
	session := &cobra.Command{Use: "session", Short: "Track study sessions"}

	var courseID string
	startCmd := &cobra.Command{
		Use:   "start",
		Short: "Start a study session, ending any active one",
		RunE: func(cmd *cobra.Command, _ []string) error {
			if strings.TrimSpace(courseID) == "" {
				return fmt.Errorf("--course-id is required")
			}
			return withApp(*dataDir, func(ctx context.Context, app *bootstrap.App) error {
				out, err := app.SessionCLI.Start(ctx, courseID)
				if !out.Started {
					if err != nil {
						return err
					}
					return fmt.Errorf("course %s not found", courseID)
				}
				w := cmd.OutOrStdout()
				if out.Ended != nil {
					_, _ = fmt.Fprintf(w, "ended %s after %s\n", out.Ended.CourseLabel, out.Ended.DurationLabel)
				}
				_, _ = fmt.Fprintf(w, "session %s started for %s\n", out.Session.ID, out.Session.CourseLabel)
				return err
			})
		},
	}
	startCmd.Flags().StringVar(&courseID, "course-id", "", "course id")

	endCmd := &cobra.Command{
		Use:   "end",
		Short: "End the active session",
		RunE: func(cmd *cobra.Command, _ []string) error {
			return withApp(*dataDir, func(ctx context.Context, app *bootstrap.App) error {
				out, err := app.SessionCLI.End(ctx)
				if !out.Ended {
					_, _ = fmt.Fprintln(cmd.OutOrStdout(), "no active session")
					return err
				}
				_, _ = fmt.Fprintf(cmd.OutOrStdout(), "ended %s after %s (+%d XP)\n",
					out.Session.CourseLabel, out.Session.DurationLabel, out.XPAwarded)
				return err
			})
		},
	}

	statusCmd := &cobra.Command{
		Use:   "status",
		Short: "Show the active session",
		RunE: func(cmd *cobra.Command, _ []string) error {
			return withApp(*dataDir, func(ctx context.Context, app *bootstrap.App) error {
				active, ok := app.SessionCLI.Active(ctx)
				if !ok {
					_, _ = fmt.Fprintln(cmd.OutOrStdout(), "no active session")
					return nil
				}
				_, _ = fmt.Fprintf(cmd.OutOrStdout(), "%s since %s (%s)\n",
					active.CourseLabel, active.StartTime.Local().Format(time.Kitchen), timefmt.Elapsed(time.Since(active.StartTime)))
				return nil
			})
		},
	}

	var limit int
	recentCmd := &cobra.Command{
		Use:   "recent",
		Short: "List the most recent completed sessions",
		RunE: func(cmd *cobra.Command, _ []string) error {
			return withApp(*dataDir, func(ctx context.Context, app *bootstrap.App) error {
				sessions := app.SessionCLI.Recent(ctx, limit)
				if len(sessions) == 0 {
					_, _ = fmt.Fprintln(cmd.OutOrStdout(), "no sessions")
					return nil
				}
				for _, s := range sessions {
					_, _ = fmt.Fprintf(cmd.OutOrStdout(), "%s\t%s\t%s\n",
						s.StartTime.Local().Format("2006-01-02 15:04"), s.CourseLabel, s.DurationLabel)
				}
				return nil
			})
		},
	}
	recentCmd.Flags().IntVar(&limit, "limit", 5, "number of sessions")

	var exportDir string
	exportCmd := &cobra.Command{
		Use:   "export",
		Short: "Write completed sessions as markdown notes",
		RunE: func(cmd *cobra.Command, _ []string) error {
			if strings.TrimSpace(exportDir) == "" {
				return fmt.Errorf("--dir is required")
			}
			return withApp(*dataDir, func(ctx context.Context, app *bootstrap.App) error {
				out, err := app.SessionCLI.Export(ctx, exportDir)
				if err != nil {
					return err
				}
				_, _ = fmt.Fprintf(cmd.OutOrStdout(), "exported %d notes, index %s\n", out.Notes, out.IndexPath)
				return nil
			})
		},
	}
	exportCmd.Flags().StringVar(&exportDir, "dir", "", "destination directory")

	session.AddCommand(startCmd, endCmd, statusCmd, recentCmd, exportCmd)
	return session
}

func newTimerCmd(dataDir *string) *cobra.Command {
	timer := &cobra.Command{Use: "timer", Short: "Pomodoro focus timer"}

	simple := func(use, short string, fn func(context.Context, *bootstrap.App) (pomodorodto.StatusOutput, error)) *cobra.Command {
		return &cobra.Command{
			Use:   use,
			Short: short,
			RunE: func(cmd *cobra.Command, _ []string) error {
				return withApp(*dataDir, func(ctx context.Context, app *bootstrap.App) error {
					out, err := fn(ctx, app)
					printStatus(cmd.OutOrStdout(), out)
					return err
				})
			},
		}
	}

	statusCmd := simple("status", "Show the timer", func(ctx context.Context, app *bootstrap.App) (pomodorodto.StatusOutput, error) {
		return app.TimerCLI.Status(ctx), nil
	})
	startCmd := simple("start", "Start the countdown", func(ctx context.Context, app *bootstrap.App) (pomodorodto.StatusOutput, error) {
		return app.TimerCLI.Start(ctx)
	})
	pauseCmd := simple("pause", "Pause the countdown", func(ctx context.Context, app *bootstrap.App) (pomodorodto.StatusOutput, error) {
		return app.TimerCLI.Pause(ctx)
	})
	resetCmd := simple("reset", "Reset to a paused work phase", func(ctx context.Context, app *bootstrap.App) (pomodorodto.StatusOutput, error) {
		return app.TimerCLI.Reset(ctx)
	})
	skipCmd := simple("skip", "Jump to the other phase without completing", func(ctx context.Context, app *bootstrap.App) (pomodorodto.StatusOutput, error) {
		return app.TimerCLI.Skip(ctx)
	})

	switchCmd := &cobra.Command{
		Use:       "switch <work|break>",
		Short:     "Switch to a phase",
		Args:      cobra.ExactArgs(1),
		ValidArgs: []string{"work", "break"},
		RunE: func(cmd *cobra.Command, args []string) error {
			return withApp(*dataDir, func(ctx context.Context, app *bootstrap.App) error {
				out, ok, err := app.TimerCLI.Switch(ctx, args[0])
				if !ok {
					return fmt.Errorf("unknown phase %q (use work or break)", args[0])
				}
				printStatus(cmd.OutOrStdout(), out)
				return err
			})
		},
	}

	var work, brk int
	setCmd := &cobra.Command{
		Use:   "set",
		Short: "Change work and break durations in minutes",
		RunE: func(cmd *cobra.Command, _ []string) error {
			var workPtr, breakPtr *int
			if cmd.Flags().Changed("work") {
				workPtr = &work
			}
			if cmd.Flags().Changed("break") {
				breakPtr = &brk
			}
			if workPtr == nil && breakPtr == nil {
				return fmt.Errorf("--work or --break is required")
			}
			return withApp(*dataDir, func(ctx context.Context, app *bootstrap.App) error {
				out, err := app.TimerCLI.Configure(ctx, workPtr, breakPtr)
				printStatus(cmd.OutOrStdout(), out)
				return err
			})
		},
	}
	setCmd.Flags().IntVar(&work, "work", 25, "work minutes (1-120)")
	setCmd.Flags().IntVar(&brk, "break", 5, "break minutes (1-60)")

	runCmd := &cobra.Command{
		Use:   "run",
		Short: "Run the timer in the foreground until interrupted",
		RunE: func(cmd *cobra.Command, _ []string) error {
			ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
			defer stop()
			app, err := loadApp(ctx, *dataDir, bootstrap.ModeHosted)
			if err != nil {
				return err
			}
			w := cmd.OutOrStdout()
			cancel := app.Timer.OnWorkComplete(func() {
				_, _ = fmt.Fprintln(w, "\nfocus block complete")
			})
			defer cancel()
			display := app.Scheduler.Every("timer-display", time.Second, func(ctx context.Context) {
				s := app.TimerCLI.Status(ctx)
				_, _ = fmt.Fprintf(w, "\r%-5s %s  ", s.Phase, s.Countdown)
			})
			defer display.Stop()

			if _, err := app.TimerCLI.Start(ctx); err != nil {
				app.Logger.Warn("timer start not persisted", "error", err)
			}
			runErr := app.Scheduler.Run(ctx)
			_, _ = fmt.Fprintln(w)
			return errors.Join(runErr, app.Close())
		},
	}

	timer.AddCommand(statusCmd, startCmd, pauseCmd, resetCmd, skipCmd, switchCmd, setCmd, runCmd)
	return timer
}

func printStatus(w io.Writer, s pomodorodto.StatusOutput) {
	state := "paused"
	if s.Running {
		state = "running"
	}
	_, _ = fmt.Fprintf(w, "%s %s (%s) work=%dm break=%dm\n", s.Phase, s.Countdown, state, s.WorkMinutes, s.BreakMinutes)
}

func newRemindCmd(dataDir *string) *cobra.Command {
	remind := &cobra.Command{Use: "remind", Short: "Due-dated reminders"}

	var title, due string
	addCmd := &cobra.Command{
		Use:   "add",
		Short: "Add a reminder",
		RunE: func(cmd *cobra.Command, _ []string) error {
			if strings.TrimSpace(title) == "" {
				return fmt.Errorf("--title is required")
			}
			dueAt, err := reminderinadapter.ParseDue(due, time.Now(), time.Local)
			if err != nil {
				return err
			}
			return withApp(*dataDir, func(ctx context.Context, app *bootstrap.App) error {
				out, ok, err := app.ReminderCLI.Add(ctx, title, dueAt)
				if !ok {
					return fmt.Errorf("reminder not added")
				}
				_, _ = fmt.Fprintf(cmd.OutOrStdout(), "reminder %s due %s\n", out.ID, out.DueAt.Local().Format("2006-01-02 15:04"))
				return err
			})
		},
	}
	addCmd.Flags().StringVar(&title, "title", "", "reminder title")
	addCmd.Flags().StringVar(&due, "due", "", `due time: RFC3339, "2006-01-02 15:04" or +duration`)

	listCmd := &cobra.Command{
		Use:   "list",
		Short: "List reminders by due time",
		RunE: func(cmd *cobra.Command, _ []string) error {
			return withApp(*dataDir, func(ctx context.Context, app *bootstrap.App) error {
				reminders := app.ReminderCLI.List(ctx)
				if len(reminders) == 0 {
					_, _ = fmt.Fprintln(cmd.OutOrStdout(), "no reminders")
					return nil
				}
				for _, r := range reminders {
					state := "pending"
					switch {
					case r.FiredAt != nil:
						state = "fired"
					case r.Overdue:
						state = "missed"
					}
					_, _ = fmt.Fprintf(cmd.OutOrStdout(), "%s\t%s\t%s\t%s\n",
						r.ID, r.DueAt.Local().Format("2006-01-02 15:04"), state, r.Title)
				}
				return nil
			})
		},
	}

	var deleteID string
	deleteCmd := &cobra.Command{
		Use:   "delete",
		Short: "Delete a reminder",
		RunE: func(cmd *cobra.Command, _ []string) error {
			if strings.TrimSpace(deleteID) == "" {
				return fmt.Errorf("--id is required")
			}
			return withApp(*dataDir, func(ctx context.Context, app *bootstrap.App) error {
				ok, err := app.ReminderCLI.Delete(ctx, deleteID)
				if !ok {
					return fmt.Errorf("reminder %s not found", deleteID)
				}
				_, _ = fmt.Fprintf(cmd.OutOrStdout(), "deleted %s\n", deleteID)
				return err
			})
		},
	}
	deleteCmd.Flags().StringVar(&deleteID, "id", "", "reminder id")

	watchCmd := &cobra.Command{
		Use:   "watch",
		Short: "Deliver reminders as they come due until interrupted",
		RunE: func(cmd *cobra.Command, _ []string) error {
			ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
			defer stop()
			app, err := loadApp(ctx, *dataDir, bootstrap.ModeHosted)
			if err != nil {
				return err
			}
			stopWatch := app.Reminders.Watch()
			defer stopWatch()
			_, _ = fmt.Fprintln(cmd.OutOrStdout(), "watching reminders, ctrl+c to stop")
			return errors.Join(app.Scheduler.Run(ctx), app.Close())
		},
	}

	remind.AddCommand(addCmd, listCmd, deleteCmd, watchCmd)
	return remind
}

func newXPCmd(dataDir *string) *cobra.Command {
	xp := &cobra.Command{Use: "xp", Short: "Experience points, levels and badges"}

	showCmd := &cobra.Command{
		Use:   "show",
		Short: "Show XP, level and badges",
		RunE: func(cmd *cobra.Command, _ []string) error {
			return withApp(*dataDir, func(ctx context.Context, app *bootstrap.App) error {
				snap, err := app.XPCLI.Snapshot(ctx)
				if err != nil {
					return err
				}
				w := cmd.OutOrStdout()
				_, _ = fmt.Fprintf(w, "level %d, %d XP (%d/100 to next), %d sessions\n", snap.Level, snap.TotalXP, snap.LevelXP, snap.SessionCount)
				for _, b := range snap.Badges {
					mark := " "
					if b.Earned {
						mark = "x"
					}
					_, _ = fmt.Fprintf(w, "[%s] %s: %s\n", mark, b.Name, b.Description)
				}
				return nil
			})
		},
	}

	var amount int
	awardCmd := &cobra.Command{
		Use:   "award",
		Short: "Award XP (notes 10, flashcards 5, flashcard sets 20, quiz answers 10)",
		RunE: func(cmd *cobra.Command, _ []string) error {
			if amount <= 0 {
				return fmt.Errorf("--amount must be positive")
			}
			return withApp(*dataDir, func(ctx context.Context, app *bootstrap.App) error {
				out, err := app.XPCLI.Award(ctx, amount)
				if err != nil {
					return err
				}
				_, _ = fmt.Fprintf(cmd.OutOrStdout(), "+%d XP, total %d, level %d\n", amount, out.TotalXP, out.Level)
				if out.LeveledUp {
					_, _ = fmt.Fprintln(cmd.OutOrStdout(), "level up!")
				}
				return nil
			})
		},
	}
	awardCmd.Flags().IntVar(&amount, "amount", 0, "XP to add")

	xp.AddCommand(showCmd, awardCmd)
	return xp
}

func newNotifyCmd(dataDir *string) *cobra.Command {
	notify := &cobra.Command{Use: "notify", Short: "Notification delivery"}
	notify.AddCommand(&cobra.Command{
		Use:   "test",
		Short: "Ask for permission and send a sample notification",
		RunE: func(cmd *cobra.Command, _ []string) error {
			return withApp(*dataDir, func(ctx context.Context, app *bootstrap.App) error {
				out := app.NotifyCLI.Test(ctx)
				if !out.Granted {
					_, _ = fmt.Fprintf(cmd.OutOrStdout(), "notifier %s: permission denied\n", out.Notifier)
					return nil
				}
				_, _ = fmt.Fprintf(cmd.OutOrStdout(), "notifier %s: sent\n", out.Notifier)
				return nil
			})
		},
	}
	return notify
}
