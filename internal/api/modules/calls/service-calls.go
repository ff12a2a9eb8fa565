package calls_module

import (
	"context"
	"fmt"
	"log"
	"sync"

	"github.com/ethanbaker/calldash/internal/provider"
	calls_store "github.com/ethanbaker/calldash/internal/stores/calls"
	"github.com/ethanbaker/calldash/pkg/calls"
	"github.com/ethanbaker/calldash/pkg/utils"
	"github.com/go-sql-driver/mysql"
	"github.com/robfig/cron/v3"
)

// CallsService owns the call store and the components that operate on it
type CallsService struct {
	store       calls.StoreInterface
	dispatcher  *calls.Dispatcher
	statuses    *calls.StatusResolver
	transcripts *calls.TranscriptResolver

	cron   *cron.Cron
	closer func() error
	mutex  sync.Mutex
}

// Provider is everything the service needs from the calling provider
type Provider interface {
	calls.Transport
	calls.Oracle
	calls.TranscriptSource
}

/** ---- INIT ---- */

// Init builds the calls service from config: the store selected by CALLS_STORE, the demo
// provider configured by PROVIDER_CONFIG_PATH and the optional CALLS_REFRESH_SPEC job
func Init(cfg *utils.Config) (*CallsService, error) {
	opts, err := provider.LoadOptions(cfg.Get("PROVIDER_CONFIG_PATH"))
	if err != nil {
		return nil, err
	}

	store, closer, err := openStore(cfg)
	if err != nil {
		return nil, err
	}

	demo := provider.NewDemo(opts)
	service, err := NewService(store, demo)
	if err != nil {
		return nil, err
	}
	service.closer = closer

	if err := seedProvider(context.Background(), store, demo); err != nil {
		service.Stop()
		return nil, err
	}

	if spec := cfg.Get("CALLS_REFRESH_SPEC"); spec != "" {
		if err := service.StartRefresher(spec); err != nil {
			service.Stop()
			return nil, fmt.Errorf("failed to schedule status refresh: %w", err)
		}
		log.Printf("[CALLS]: Refreshing pending call statuses on '%s'", spec)
	}

	return service, nil
}

// NewService wires the dispatcher and resolvers around a store and provider
func NewService(store calls.StoreInterface, p Provider) (*CallsService, error) {
	dispatcher, err := calls.NewDispatcher(store, p, nil)
	if err != nil {
		return nil, err
	}

	statuses, err := calls.NewStatusResolver(store, p)
	if err != nil {
		return nil, err
	}

	transcripts, err := calls.NewTranscriptResolver(store, p)
	if err != nil {
		return nil, err
	}

	return &CallsService{
		store:       store,
		dispatcher:  dispatcher,
		statuses:    statuses,
		transcripts: transcripts,
	}, nil
}

// openStore selects the store backend named by CALLS_STORE
func openStore(cfg *utils.Config) (calls.StoreInterface, func() error, error) {
	switch backend := cfg.GetWithDefault("CALLS_STORE", "file"); backend {
	case "mysql":
		// Create MySQL config
		dbConfig := mysql.Config{
			User:      cfg.Get("MYSQL_USER"),
			Passwd:    cfg.Get("MYSQL_ROOT_PASSWORD"),
			Net:       "tcp",
			Addr:      fmt.Sprintf("%s:%s", cfg.Get("MYSQL_HOST"), cfg.GetWithDefault("MYSQL_PORT", "3306")),
			DBName:    cfg.Get("MYSQL_DATABASE"),
			ParseTime: true,
		}
		if dbConfig.DBName == "" {
			return nil, nil, fmt.Errorf("MYSQL_DATABASE must be set when CALLS_STORE is mysql")
		}

		store, err := calls_store.NewStore(dbConfig.FormatDSN())
		if err != nil {
			return nil, nil, err
		}
		return store, store.Close, nil

	case "memory":
		log.Println("[CALLS]: Warning, using in-memory store (data will not persist across restarts)")
		return calls_store.NewInMemoryStore(), nil, nil

	case "file":
		store, err := calls_store.NewFileStore(cfg.GetWithDefault("CALLS_FILE_PATH", "calls.json"))
		if err != nil {
			return nil, nil, err
		}
		log.Printf("[CALLS]: Using file store at %s", store.Path())
		return store, nil, nil

	default:
		return nil, nil, fmt.Errorf("unknown CALLS_STORE '%s'", backend)
	}
}

// seedProvider registers every stored call with the demo provider so calls placed before
// a restart can still settle and serve transcripts
func seedProvider(ctx context.Context, store calls.StoreInterface, demo *provider.Demo) error {
	history, err := store.ListAll(ctx)
	if err != nil {
		return fmt.Errorf("failed to load stored calls: %w", err)
	}

	for _, call := range history {
		demo.Register(call)
	}
	if len(history) > 0 {
		log.Printf("[CALLS]: Registered %d stored calls with the provider", len(history))
	}

	return nil
}

/** ---- SERVICE METHODS ---- */

// StartRefresher schedules RefreshPending on a cron spec
func (s *CallsService) StartRefresher(spec string) error {
	s.mutex.Lock()
	defer s.mutex.Unlock()

	if s.cron != nil {
		return fmt.Errorf("refresher already running")
	}

	c := cron.New()
	if _, err := c.AddFunc(spec, s.refreshJob); err != nil {
		return err
	}
	c.Start()

	s.cron = c
	return nil
}

// Stop halts the refresher and closes the store
func (s *CallsService) Stop() {
	s.mutex.Lock()
	defer s.mutex.Unlock()

	if s.cron != nil {
		<-s.cron.Stop().Done()
		s.cron = nil
	}

	if s.closer != nil {
		if err := s.closer(); err != nil {
			log.Printf("[CALLS]: Failed to close store: %v", err)
		}
		s.closer = nil
	}
}

// Initiate places a new call
func (s *CallsService) Initiate(ctx context.Context, req *calls.Request) (*calls.Response, error) {
	return s.dispatcher.Initiate(ctx, req)
}

// History returns every call, newest first
func (s *CallsService) History(ctx context.Context) ([]*calls.Call, error) {
	return s.store.ListAll(ctx)
}

// Find returns one call or a *calls.NotFoundError
func (s *CallsService) Find(ctx context.Context, id string) (*calls.Call, error) {
	call, err := s.store.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if call == nil {
		return nil, &calls.NotFoundError{ID: id}
	}
	return call, nil
}

// Status resolves the current status of a call
func (s *CallsService) Status(ctx context.Context, id string) (calls.Status, error) {
	return s.statuses.Resolve(ctx, id)
}

// Transcript resolves the transcript of a call
func (s *CallsService) Transcript(ctx context.Context, id string) (*calls.Transcript, error) {
	return s.transcripts.Resolve(ctx, id)
}

// Refresh resolves every pending call
func (s *CallsService) Refresh(ctx context.Context) (*calls.RefreshReport, error) {
	return s.statuses.RefreshPending(ctx)
}

/** ---- HELPERS ---- */

// refreshJob is the cron entry for background status refreshes
func (s *CallsService) refreshJob() {
	report, err := s.Refresh(context.Background())
	if err != nil {
		log.Printf("[CALLS]: Status refresh failed: %v", err)
		return
	}

	for id, failure := range report.Failed {
		log.Printf("[CALLS]: Could not resolve status of '%s': %v", id, failure)
	}
	if report.Updated > 0 {
		log.Printf("[CALLS]: Status refresh updated %d of %d pending calls", report.Updated, report.Checked)
	}
}
