// application/scheduler/scheduler.go
package scheduler

import (
	"context"
	"sync"
	"time"

	"crypto-market-reporter/pkg/logger"
)

// Schedule определяет расписание задачи
type Schedule struct {
	interval time.Duration
}

// Every создает расписание "каждые N времени"
func Every(d time.Duration) Schedule {
	return Schedule{interval: d}
}

// Interval возвращает интервал расписания
func (s Schedule) Interval() time.Duration {
	return s.interval
}

// next вычисляет следующий дедлайн как prev + interval.
// Пропущенные тики не догоняются: результат всегда позже now.
func (s Schedule) next(prev, now time.Time) time.Time {
	next := prev.Add(s.interval)
	if !next.After(now) {
		missed := now.Sub(prev) / s.interval
		next = prev.Add((missed + 1) * s.interval)
	}
	return next
}

// Job описывает одну планируемую задачу
type Job struct {
	Name        string
	Description string
	Schedule    Schedule
	Handler     func(ctx context.Context) error

	mu      sync.Mutex
	nextRun time.Time
	lastRun time.Time
	lastErr error
	runs    int
}

// Status возвращает текущее состояние задачи
func (j *Job) Status() JobStatus {
	j.mu.Lock()
	defer j.mu.Unlock()
	return JobStatus{
		Name:        j.Name,
		Description: j.Description,
		NextRun:     j.nextRun,
		LastRun:     j.lastRun,
		LastErr:     j.lastErr,
		Runs:        j.runs,
	}
}

// JobStatus снапшот состояния задачи
type JobStatus struct {
	Name        string
	Description string
	NextRun     time.Time
	LastRun     time.Time
	LastErr     error
	Runs        int
}

// Scheduler выполняет задачи последовательно в одной горутине,
// засыпая до ближайшего дедлайна
type Scheduler struct {
	jobs []*Job
	mu   sync.RWMutex
	now  func() time.Time
}

// New создает новый планировщик
func New() *Scheduler {
	return &Scheduler{now: time.Now}
}

// Register добавляет задачу в планировщик.
// Первый запуск через один интервал от момента регистрации.
func (s *Scheduler) Register(job *Job) {
	if job.Schedule.interval <= 0 {
		logger.Error("❌ [Scheduler] Job %q has non-positive interval %s, skipped", job.Name, job.Schedule.interval)
		return
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	job.mu.Lock()
	job.nextRun = s.now().Add(job.Schedule.interval)
	first := job.nextRun
	job.mu.Unlock()

	s.jobs = append(s.jobs, job)

	logger.Info("📋 [Scheduler] Registered job %q (every %s), first run at %s",
		job.Name, job.Schedule.interval, first.Format("2006-01-02 15:04:05"))
}

// Jobs возвращает статус всех задач
func (s *Scheduler) Jobs() []JobStatus {
	s.mu.RLock()
	jobs := make([]*Job, len(s.jobs))
	copy(jobs, s.jobs)
	s.mu.RUnlock()

	statuses := make([]JobStatus, len(jobs))
	for i, j := range jobs {
		statuses[i] = j.Status()
	}
	return statuses
}

// Run блокирует до отмены ctx. Отмена - штатное завершение, возвращается nil.
func (s *Scheduler) Run(ctx context.Context) error {
	logger.Info("✅ [Scheduler] Started (%d jobs)", len(s.Jobs()))

	timer := time.NewTimer(time.Hour)
	defer timer.Stop()

	for {
		wait, ok := s.untilNext()
		if !ok {
			<-ctx.Done()
			logger.Info("🛑 [Scheduler] Stopped")
			return nil
		}

		if !timer.Stop() {
			select {
			case <-timer.C:
			default:
			}
		}
		timer.Reset(wait)

		select {
		case <-ctx.Done():
			logger.Info("🛑 [Scheduler] Stopped")
			return nil
		case <-timer.C:
			s.runDue(ctx)
		}
	}
}

// untilNext возвращает время до ближайшего дедлайна
func (s *Scheduler) untilNext() (time.Duration, bool) {
	statuses := s.Jobs()
	if len(statuses) == 0 {
		return 0, false
	}

	earliest := statuses[0].NextRun
	for _, st := range statuses[1:] {
		if st.NextRun.Before(earliest) {
			earliest = st.NextRun
		}
	}

	wait := earliest.Sub(s.now())
	if wait < 0 {
		wait = 0
	}
	return wait, true
}

// runDue выполняет задачи, у которых наступил дедлайн
func (s *Scheduler) runDue(ctx context.Context) {
	s.mu.RLock()
	jobs := make([]*Job, len(s.jobs))
	copy(jobs, s.jobs)
	s.mu.RUnlock()

	for _, job := range jobs {
		if ctx.Err() != nil {
			return
		}

		job.mu.Lock()
		due := !s.now().Before(job.nextRun)
		job.mu.Unlock()

		if due {
			s.run(ctx, job)
		}
	}
}

// run выполняет одну задачу и обновляет её состояние
func (s *Scheduler) run(ctx context.Context, job *Job) {
	logger.Debug("▶️  [Scheduler] Running job %q", job.Name)
	start := s.now()

	err := job.Handler(ctx)

	elapsed := s.now().Sub(start)

	job.mu.Lock()
	job.lastRun = start
	job.lastErr = err
	job.runs++
	job.nextRun = job.Schedule.next(job.nextRun, s.now())
	nextRun := job.nextRun
	job.mu.Unlock()

	if err != nil {
		logger.Error("❌ [Scheduler] Job %q failed after %v: %v", job.Name, elapsed, err)
	} else {
		logger.Info("✅ [Scheduler] Job %q done in %v. Next run: %s",
			job.Name, elapsed, nextRun.Format("2006-01-02 15:04:05"))
	}
}
