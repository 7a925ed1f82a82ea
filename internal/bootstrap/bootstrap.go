package bootstrap

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"

	tea "github.com/charmbracelet/bubbletea"
	hclog "github.com/hashicorp/go-hclog"
	"github.com/jonboulle/clockwork"

	courseinadapter "studyhub/internal/modules/course/adapter/in"
	courseoutadapter "studyhub/internal/modules/course/adapter/out"
	coursein "studyhub/internal/modules/course/port/in"
	courseservice "studyhub/internal/modules/course/service"
	courseusecase "studyhub/internal/modules/course/usecase"
	notifyinadapter "studyhub/internal/modules/notify/adapter/in"
	notifyoutadapter "studyhub/internal/modules/notify/adapter/out"
	notifydto "studyhub/internal/modules/notify/dto"
	notifyin "studyhub/internal/modules/notify/port/in"
	notifyout "studyhub/internal/modules/notify/port/out"
	notifyservice "studyhub/internal/modules/notify/service"
	notifyusecase "studyhub/internal/modules/notify/usecase"
	pomodoroinadapter "studyhub/internal/modules/pomodoro/adapter/in"
	pomodorooutadapter "studyhub/internal/modules/pomodoro/adapter/out"
	pomodoroin "studyhub/internal/modules/pomodoro/port/in"
	pomodoroservice "studyhub/internal/modules/pomodoro/service"
	pomodorousecase "studyhub/internal/modules/pomodoro/usecase"
	reminderinadapter "studyhub/internal/modules/reminder/adapter/in"
	reminderoutadapter "studyhub/internal/modules/reminder/adapter/out"
	reminderin "studyhub/internal/modules/reminder/port/in"
	reminderout "studyhub/internal/modules/reminder/port/out"
	reminderservice "studyhub/internal/modules/reminder/service"
	reminderusecase "studyhub/internal/modules/reminder/usecase"
	sessioninadapter "studyhub/internal/modules/session/adapter/in"
	sessionoutadapter "studyhub/internal/modules/session/adapter/out"
	sessionin "studyhub/internal/modules/session/port/in"
	sessionservice "studyhub/internal/modules/session/service"
	sessionusecase "studyhub/internal/modules/session/usecase"
	xpinadapter "studyhub/internal/modules/xp/adapter/in"
	xpoutadapter "studyhub/internal/modules/xp/adapter/out"
	xpin "studyhub/internal/modules/xp/port/in"
	xpservice "studyhub/internal/modules/xp/service"
	xpusecase "studyhub/internal/modules/xp/usecase"
	"studyhub/internal/platform/clock"
	"studyhub/internal/platform/config"
	"studyhub/internal/platform/id"
	"studyhub/internal/platform/kv"
	"studyhub/internal/platform/logging"
	"studyhub/internal/platform/scheduler"
	uiapp "studyhub/internal/ui/app"
	"studyhub/internal/ui/components"
)

// Mode selects how the process hosts the periodic jobs and notifications.
type Mode int

const (
	// ModeOneShot serves a single CLI command. Nothing ticks.
	ModeOneShot Mode = iota
	// ModeHosted runs the scheduler loop in the foreground (timer run, remind watch).
	ModeHosted
	// ModeTUI is hosted, logs to a file and routes notifications to the status line.
	ModeTUI
)

type App struct {
	Config    config.Config
	Logger    hclog.Logger
	Scheduler *scheduler.Scheduler

	CourseCLI   courseinadapter.CLIHandler
	SessionCLI  sessioninadapter.CLIHandler
	TimerCLI    pomodoroinadapter.CLIHandler
	ReminderCLI reminderinadapter.CLIHandler
	XPCLI       xpinadapter.CLIHandler
	NotifyCLI   notifyinadapter.CLIHandler

	Courses   coursein.Usecase
	Sessions  sessionin.Usecase
	Timer     pomodoroin.Usecase
	Reminders reminderin.Usecase
	XP        xpin.Usecase
	Notify    notifyin.Usecase

	notifications <-chan notifydto.Message
	dispatcher    *notifyservice.Dispatcher
	engine        *pomodoroservice.Engine
	closers       []io.Closer
}

func New(ctx context.Context, cfg config.Config, mode Mode) (*App, error) {
	app := &App{Config: cfg}
	ok := false
	defer func() {
		if !ok {
			_ = app.Close()
		}
	}()

	if err := os.MkdirAll(cfg.DataDir, 0o755); err != nil {
		return nil, fmt.Errorf("create data dir: %w", err)
	}
	if mode == ModeTUI {
		logger, closer, err := logging.NewFile(cfg.LogPath, cfg.LogLevel)
		if err != nil {
			return nil, err
		}
		app.Logger = logger
		app.closers = append(app.closers, closer)
	} else {
		app.Logger = logging.New(os.Stderr, cfg.LogLevel)
	}

	clk := clock.SystemClock{}
	ids := id.ULID{}
	store, err := kv.NewSQLiteStore(ctx, cfg.DBPath, clk)
	if err != nil {
		return nil, fmt.Errorf("open store: %w", err)
	}
	app.closers = append(app.closers, store)

	app.Scheduler = scheduler.New(clockwork.NewRealClock(), app.Logger)

	// Notifications.
	var notifier notifyout.Notifier
	kind := cfg.Notifier.Kind
	switch {
	case mode == ModeTUI:
		channel := notifyoutadapter.NewChannelNotifier(16)
		app.notifications = channel.C()
		notifier = channel
		kind = "tui"
	case kind == config.NotifierPlugin:
		notifier = notifyoutadapter.NewPluginNotifier(cfg.Notifier.PluginPath, app.Logger)
	case kind == config.NotifierNone:
		notifier = notifyoutadapter.NewNoopNotifier()
	default:
		notifier = notifyoutadapter.NewTerminalNotifier(os.Stdout, cfg.Notifier.ForceTerminal)
	}
	app.dispatcher = notifyservice.NewDispatcher(notifier, app.Logger, notifyservice.DefaultTimeout)
	app.Notify = notifyusecase.NewInteractor(app.dispatcher, kind)

	// Experience ledger. The session count is bound once sessions exist.
	xpSvc := xpservice.NewLedgerService(xpoutadapter.NewKVLedgerStore(store), app.Logger)
	if err := xpSvc.Load(ctx); err != nil {
		return nil, err
	}
	sessionCounter := xpoutadapter.NewSessionCounterAdapter()
	app.XP = xpusecase.NewInteractor(xpSvc, sessionCounter)

	// Courses and sessions reference each other through bound adapters.
	courseSvc := courseservice.NewCourseService(clk, ids, courseoutadapter.NewKVCourseStore(store), app.Logger)
	if err := courseSvc.Load(ctx); err != nil {
		return nil, err
	}
	sessionLedger := courseoutadapter.NewSessionLedgerAdapter()
	app.Courses = courseusecase.NewInteractor(courseSvc, sessionLedger)

	sessionSvc := sessionservice.NewSessionService(clk, ids,
		sessionoutadapter.NewKVSessionLog(store),
		sessionoutadapter.NewKVActiveSessionStore(store),
		app.Logger,
	)
	if err := sessionSvc.Load(ctx); err != nil {
		return nil, err
	}
	app.Sessions = sessionusecase.NewInteractor(sessionSvc,
		sessionoutadapter.NewCourseCatalogAdapter(app.Courses),
		sessionusecase.WithMinuteXP(sessionoutadapter.NewXPAwarderAdapter(app.XP), cfg.XP.SessionMinute),
		sessionusecase.WithExporter(sessionoutadapter.NewMarkdownExporter()),
		sessionusecase.WithLogger(app.Logger),
	)
	sessionLedger.Bind(app.Sessions)
	sessionCounter.Bind(app.Sessions)

	// Interval timer.
	engineOpts := []pomodoroservice.Option{
		pomodoroservice.WithNotifier(app.Notify),
		pomodoroservice.WithXP(pomodorooutadapter.NewXPAwarderAdapter(app.XP)),
		pomodoroservice.WithLogger(app.Logger),
	}
	if mode != ModeOneShot {
		engineOpts = append(engineOpts, pomodoroservice.WithTicker(pomodorooutadapter.NewSchedulerTicker(app.Scheduler)))
	}
	app.engine = pomodoroservice.NewEngine(clk, pomodorooutadapter.NewKVStateStore(store), pomodoroservice.Config{
		WorkMinutes:  cfg.Timer.WorkMinutes,
		BreakMinutes: cfg.Timer.BreakMinutes,
		Resume:       pomodoroservice.ResumeMode(cfg.Timer.Resume),
		FocusXP:      cfg.XP.FocusComplete,
	}, engineOpts...)
	if err := app.engine.Load(ctx); err != nil {
		return nil, err
	}
	app.Timer = pomodorousecase.NewInteractor(app.engine)

	// Reminders.
	reminderSvc := reminderservice.NewReminderService(clk, ids, reminderoutadapter.NewKVReminderStore(store), app.Notify, app.Logger)
	if err := reminderSvc.Load(ctx); err != nil {
		return nil, err
	}
	var ticker reminderout.Ticker
	if mode != ModeOneShot {
		ticker = reminderoutadapter.NewSchedulerTicker(app.Scheduler)
	}
	app.Reminders = reminderusecase.NewInteractor(reminderSvc, ticker)

	app.CourseCLI = courseinadapter.NewCLIHandler(app.Courses)
	app.SessionCLI = sessioninadapter.NewCLIHandler(app.Sessions)
	app.TimerCLI = pomodoroinadapter.NewCLIHandler(app.Timer)
	app.ReminderCLI = reminderinadapter.NewCLIHandler(app.Reminders)
	app.XPCLI = xpinadapter.NewCLIHandler(app.XP)
	app.NotifyCLI = notifyinadapter.NewCLIHandler(app.Notify)

	if mode != ModeOneShot {
		app.Notify.RequestPermission(ctx)
	}
	ok = true
	return app, nil
}

// Notifications is non-nil only in ModeTUI.
func (a *App) Notifications() <-chan notifydto.Message {
	return a.notifications
}

// Close stops ticking, drains in-flight notifications and releases the store.
func (a *App) Close() error {
	if a.engine != nil {
		a.engine.Close()
	}
	if a.dispatcher != nil {
		a.dispatcher.Wait()
	}
	var errs []error
	for i := len(a.closers) - 1; i >= 0; i-- {
		errs = append(errs, a.closers[i].Close())
	}
	a.closers = nil
	return errors.Join(errs...)
}

// RunTUI hosts the scheduler behind the Bubble Tea program until the user quits.
func RunTUI(ctx context.Context, app *App) error {
	ctx, cancel := context.WithCancel(ctx)
	defer cancel()

	model := uiapp.NewModel(uiapp.Ports{
		Courses:       app.CourseCLI,
		Sessions:      app.SessionCLI,
		Timer:         app.TimerCLI,
		Reminders:     app.ReminderCLI,
		XP:            app.XPCLI,
		Notify:        app.NotifyCLI,
		Notifications: app.Notifications(),
	})
	program := tea.NewProgram(model, tea.WithAltScreen(), tea.WithContext(ctx))

	quotes := app.Scheduler.Every("quote", components.QuotePeriod, func(context.Context) {
		go program.Send(uiapp.QuoteMsg{Quote: components.Quote(nil)})
	})
	defer quotes.Stop()
	stopReminders := app.Reminders.Watch()
	defer stopReminders()

	done := make(chan error, 1)
	go func() { done <- app.Scheduler.Run(ctx) }()

	_, err := program.Run()
	cancel()
	<-done
	if errors.Is(err, tea.ErrProgramKilled) {
		err = nil
	}
	return err
}
