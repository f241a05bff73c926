package shader

import (
	"sync"
	"time"

	"github.com/Carmen-Shannon/automation/tools/worker"
	"github.com/Carmen-Shannon/glix/engine/logging"
	"github.com/cockroachdb/errors"
	"github.com/sirupsen/logrus"
)

// Library caches loaded programs by name.
type Library interface {
	// Preload loads the named programs concurrently on the library's worker pool and caches them.
	// All names are attempted; the returned error combines every failure.
	//
	// Parameters:
	//   - names: the program names to load
	//
	// Returns:
	//   - error: nil if every program loaded
	Preload(names ...string) error

	// Get returns the cached program, loading it on first use.
	//
	// Parameters:
	//   - name: the program name
	//
	// Returns:
	//   - Program: the loaded program
	//   - error: the Load error on a cache miss that failed
	Get(name string) (Program, error)

	// Names returns the names of the cached programs.
	Names() []string
}

type library struct {
	mu       *sync.RWMutex
	programs map[string]Program
	opts     []LoaderOption
	workers  int
	pool     worker.DynamicWorkerPool
	log      *logrus.Entry
}

var _ Library = &library{}

// NewLibrary creates an empty program library. Loader options apply to every Load the library performs.
//
// Parameters:
//   - options: functional options
//
// Returns:
//   - Library: the library
func NewLibrary(options ...LibraryBuilderOption) Library {
	l := &library{
		mu:       &sync.RWMutex{},
		programs: make(map[string]Program),
		workers:  4,
		log:      logging.Component("shader"),
	}
	for _, opt := range options {
		opt(l)
	}
	l.pool = worker.NewDynamicWorkerPool(l.workers, 64, 1*time.Second)
	return l
}

func (l *library) Preload(names ...string) error {
	var (
		wg   sync.WaitGroup
		mu   sync.Mutex
		errs error
	)
	start := time.Now()
	for i, name := range names {
		wg.Add(1)
		n := name
		l.pool.SubmitTask(worker.Task{
			ID: i,
			Do: func() (any, error) {
				defer wg.Done()
				_, err := l.Get(n)
				if err != nil {
					mu.Lock()
					errs = errors.CombineErrors(errs, err)
					mu.Unlock()
				}
				return nil, err
			},
		})
	}
	wg.Wait()

	l.log.WithFields(logrus.Fields{
		"programs": len(names),
		"elapsed":  time.Since(start).String(),
	}).Debug("shader preload finished")
	return errs
}

func (l *library) Get(name string) (Program, error) {
	l.mu.RLock()
	p, ok := l.programs[name]
	l.mu.RUnlock()
	if ok {
		return p, nil
	}

	p, err := Load(name, l.opts...)
	if err != nil {
		return nil, err
	}

	l.mu.Lock()
	defer l.mu.Unlock()
	if existing, ok := l.programs[name]; ok {
		return existing, nil
	}
	l.programs[name] = p
	l.log.WithField("program", name).Debug("shader loaded")
	return p, nil
}

func (l *library) Names() []string {
	l.mu.RLock()
	defer l.mu.RUnlock()
	names := make([]string, 0, len(l.programs))
	for n := range l.programs {
		names = append(names, n)
	}
	return names
}

// LibraryBuilderOption is a functional option for configuring a Library.
type LibraryBuilderOption func(l *library)

// WithLoaderOptions sets the options passed to every Load.
//
// Parameters:
//   - opts: the loader options
//
// Returns:
//   - LibraryBuilderOption: option function to apply
func WithLoaderOptions(opts ...LoaderOption) LibraryBuilderOption {
	return func(l *library) {
		l.opts = append(l.opts, opts...)
	}
}

// WithWorkers sets the number of preload workers. Defaults to 4.
func WithWorkers(n int) LibraryBuilderOption {
	return func(l *library) {
		if n > 0 {
			l.workers = n
		}
	}
}
