package background

import (
	"context"
	"fmt"
	"runtime/debug"
	"sync"
	"time"

	"dorm-delivery/pkg/logger"
	"golang.org/x/sync/errgroup"
)

// Task - периодическая фоновая задача.
type Task interface {
	// TTL - интервал между запусками. Неположительный TTL отключает периодический запуск.
	TTL() time.Duration
	Do(context.Context) error
	Info() string
}

// Worker запускает задачи по таймеру до отмены контекста.
type Worker struct {
	log   logger.Logger
	tasks []Task
	wg    sync.WaitGroup
}

// New прогревает задачи синхронно и запускает их периодическое выполнение.
//
// Прогрев выполняет каждую задачу один раз параллельно. Ошибка или паника любой
// задачи на этом этапе возвращается вызывающему, и Worker не стартует.
func New(ctx context.Context, log logger.Logger, tasks ...Task) (*Worker, error) {
	w := &Worker{
		log:   log,
		tasks: tasks,
	}

	initGroup, initCtx := errgroup.WithContext(ctx)
	for _, task := range tasks {
		initGroup.Go(func() (err error) {
			defer func() {
				if r := recover(); r != nil {
					err = fmt.Errorf("task %s init panic: %v", task.Info(), r)
					log.Error("task panic during init",
						logger.NewField("task", task.Info()),
						logger.NewField("recover", r),
						logger.NewField("stack", string(debug.Stack())),
					)
				}
			}()

			log.Info("initializing task", logger.NewField("task", task.Info()))
			return task.Do(initCtx)
		})
	}

	if err := initGroup.Wait(); err != nil {
		return nil, fmt.Errorf("initialize tasks: %w", err)
	}

	for _, task := range tasks {
		w.wg.Add(1)
		go func() {
			defer w.wg.Done()
			w.run(ctx, task)
		}()
	}

	return w, nil
}

// Wait блокируется, пока все циклы задач не завершатся.
func (w *Worker) Wait() {
	w.wg.Wait()
}

func (w *Worker) run(ctx context.Context, task Task) {
	ttl := task.TTL()
	if ttl <= 0 {
		w.log.Warn("invalid TTL, periodic execution disabled",
			logger.NewField("task", task.Info()),
			logger.NewField("ttl", ttl.String()),
		)
		return
	}

	w.log.Info("starting periodic execution",
		logger.NewField("task", task.Info()),
		logger.NewField("ttl", ttl.String()),
	)

	ticker := time.NewTicker(ttl)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			w.log.Info("stopping task", logger.NewField("task", task.Info()))
			return
		case <-ticker.C:
			w.execute(ctx, task)
		}
	}
}

func (w *Worker) execute(ctx context.Context, task Task) {
	defer func() {
		if r := recover(); r != nil {
			w.log.Error("background task panic",
				logger.NewField("task", task.Info()),
				logger.NewField("recover", r),
				logger.NewField("stack", string(debug.Stack())),
			)
		}
	}()

	if err := task.Do(ctx); err != nil {
		w.log.Error("background task failed",
			logger.NewField("task", task.Info()),
			logger.NewField("error", err),
		)
	}
}
