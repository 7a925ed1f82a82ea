package usecase

import (
	"context"
	"errors"
	"fmt"
	"sort"
	"strings"

	hclog "github.com/hashicorp/go-hclog"

	"studyhub/internal/modules/session/domain"
	sessiondto "studyhub/internal/modules/session/dto"
	sessionin "studyhub/internal/modules/session/port/in"
	sessionout "studyhub/internal/modules/session/port/out"
	"studyhub/internal/modules/session/service"
	apperrors "studyhub/internal/platform/errors"
	"studyhub/internal/platform/logging"
	"studyhub/internal/platform/timefmt"
)

type Interactor struct {
	svc      *service.SessionService
	courses  sessionout.CourseCatalog
	xp       sessionout.XPAwarder
	minuteXP int
	exporter sessionout.NoteExporter
	logger   hclog.Logger
}

type Option func(*Interactor)

// WithMinuteXP awards amount XP per studied minute whenever a session ends.
func WithMinuteXP(xp sessionout.XPAwarder, amount int) Option {
	return func(i *Interactor) {
		i.xp = xp
		i.minuteXP = amount
	}
}

func WithExporter(exporter sessionout.NoteExporter) Option {
	return func(i *Interactor) { i.exporter = exporter }
}

func WithLogger(logger hclog.Logger) Option {
	return func(i *Interactor) { i.logger = logger }
}

func NewInteractor(svc *service.SessionService, courses sessionout.CourseCatalog, opts ...Option) sessionin.Usecase {
	i := &Interactor{svc: svc, courses: courses}
	for _, opt := range opts {
		opt(i)
	}
	i.logger = logging.OrDiscard(i.logger).Named("session")
	return i
}

// Start refuses an empty or unknown course without touching state.
func (i *Interactor) Start(ctx context.Context, input sessiondto.StartInput) (sessiondto.StartOutput, error) {
	courseID := strings.TrimSpace(input.CourseID)
	if courseID == "" {
		return sessiondto.StartOutput{}, nil
	}
	label, ok := i.lookup(ctx, courseID)
	if !ok {
		return sessiondto.StartOutput{}, nil
	}
	started, ended, ok, err := i.svc.Start(ctx, courseID)
	if !ok {
		return sessiondto.StartOutput{}, err
	}
	out := sessiondto.StartOutput{Started: true, Session: toOutput(started, label)}
	if ended != nil {
		endedLabel, _ := i.lookup(ctx, ended.CourseID)
		endedOut := toOutput(*ended, endedLabel)
		out.Ended = &endedOut
		_, awardErr := i.award(ctx, *ended)
		err = errors.Join(err, awardErr)
	}
	return out, err
}

func (i *Interactor) End(ctx context.Context) (sessiondto.EndOutput, error) {
	done, ok, err := i.svc.End(ctx)
	if !ok {
		return sessiondto.EndOutput{}, err
	}
	label, _ := i.lookup(ctx, done.CourseID)
	awarded, awardErr := i.award(ctx, done)
	return sessiondto.EndOutput{Ended: true, Session: toOutput(done, label), XPAwarded: awarded}, errors.Join(err, awardErr)
}

func (i *Interactor) Active(ctx context.Context) (sessiondto.SessionOutput, bool) {
	active, ok := i.svc.Active()
	if !ok {
		return sessiondto.SessionOutput{}, false
	}
	label, _ := i.lookup(ctx, active.CourseID)
	return toOutput(active, label), true
}

func (i *Interactor) Recent(ctx context.Context, input sessiondto.RecentInput) []sessiondto.SessionOutput {
	recent := i.svc.Recent(input.Limit)
	out := make([]sessiondto.SessionOutput, 0, len(recent))
	for _, session := range recent {
		label, _ := i.lookup(ctx, session.CourseID)
		out = append(out, toOutput(session, label))
	}
	return out
}

func (i *Interactor) TotalMinutes(_ context.Context, courseID string) int {
	return i.svc.TotalDuration(courseID)
}

func (i *Interactor) PurgeCourse(ctx context.Context, courseID string) error {
	return i.svc.PurgeCourse(ctx, courseID)
}

func (i *Interactor) Count(context.Context) int {
	return i.svc.Count()
}

// Export writes every completed session plus a per-course totals index.
func (i *Interactor) Export(ctx context.Context, input sessiondto.ExportInput) (sessiondto.ExportOutput, error) {
	if strings.TrimSpace(input.Dir) == "" {
		return sessiondto.ExportOutput{}, fmt.Errorf("%w: export dir is required", apperrors.ErrInvalidInput)
	}
	if i.exporter == nil {
		return sessiondto.ExportOutput{}, fmt.Errorf("session exporter is not configured")
	}
	completed := i.svc.Completed()
	notes := make([]domain.SessionNote, 0, len(completed))
	byCourse := map[string]*domain.CourseTotal{}
	for _, session := range completed {
		label, _ := i.lookup(ctx, session.CourseID)
		notes = append(notes, domain.SessionNote{Session: session, CourseLabel: label})
		total, ok := byCourse[session.CourseID]
		if !ok {
			total = &domain.CourseTotal{CourseID: session.CourseID, Label: label}
			byCourse[session.CourseID] = total
		}
		total.Minutes += session.DurationMinutes
		total.Sessions++
	}
	totals := make([]domain.CourseTotal, 0, len(byCourse))
	for _, total := range byCourse {
		totals = append(totals, *total)
	}
	sort.Slice(totals, func(a, b int) bool { return totals[a].Label < totals[b].Label })

	result, err := i.exporter.Export(ctx, input.Dir, notes, totals)
	if err != nil {
		return sessiondto.ExportOutput{Notes: len(result.Notes)}, fmt.Errorf("export sessions: %w", err)
	}
	return sessiondto.ExportOutput{Notes: len(result.Notes), IndexPath: result.IndexPath}, nil
}

func (i *Interactor) award(ctx context.Context, done domain.StudySession) (int, error) {
	amount := done.DurationMinutes * i.minuteXP
	if i.xp == nil || amount <= 0 {
		return 0, nil
	}
	if err := i.xp.Award(ctx, amount); err != nil {
		i.logger.Warn("session xp not awarded", "session", done.ID, "amount", amount, "error", err)
		return 0, fmt.Errorf("award session xp: %w", err)
	}
	return amount, nil
}

func (i *Interactor) lookup(ctx context.Context, courseID string) (string, bool) {
	if i.courses == nil {
		return domain.UnknownCourseLabel, false
	}
	label, ok := i.courses.Lookup(ctx, courseID)
	if !ok {
		return domain.UnknownCourseLabel, false
	}
	return label, true
}

func toOutput(session domain.StudySession, label string) sessiondto.SessionOutput {
	return sessiondto.SessionOutput{
		ID:              session.ID,
		CourseID:        session.CourseID,
		CourseLabel:     label,
		StartTime:       session.StartTime,
		EndTime:         session.EndTime,
		DurationMinutes: session.DurationMinutes,
		DurationLabel:   timefmt.Minutes(session.DurationMinutes),
	}
}
