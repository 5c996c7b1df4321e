// cmd/assistant-manager/main.go
package main

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	_ "net/http/pprof"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/prometheus/client_golang/prometheus/promhttp"
	"go.uber.org/zap"

	"assistant-engine/internal/classifier"
	"assistant-engine/internal/common/aws"
	"assistant-engine/internal/common/camunda"
	"assistant-engine/internal/common/config"
	"assistant-engine/internal/common/database"
	"assistant-engine/internal/common/logger"
	"assistant-engine/internal/common/observability"
	"assistant-engine/internal/contextmap"
	"assistant-engine/internal/pattern"
	"assistant-engine/internal/prompt"
	"assistant-engine/internal/resolver"
	"assistant-engine/internal/taxonomy"
	"assistant-engine/internal/toolexec"
	"assistant-engine/internal/workflow"
	"assistant-engine/pkg/registry"

	bp "assistant-engine/internal/workers/assistant/build-prompt"
	ci "assistant-engine/internal/workers/assistant/classify-intent"
	et "assistant-engine/internal/workers/assistant/execute-tool"
	mw "assistant-engine/internal/workers/assistant/match-workflow"
	rc "assistant-engine/internal/workers/assistant/resolve-context"
)

// retryWithBackoff attempts to execute a function with exponential backoff
func retryWithBackoff(operation func() error, maxRetries int, initialDelay time.Duration, log *zap.Logger, operationName string) error {
	var err error
	delay := initialDelay

	for i := 0; i < maxRetries; i++ {
		err = operation()
		if err == nil {
			return nil
		}

		if i < maxRetries-1 {
			log.Warn(fmt.Sprintf("%s failed, retrying...", operationName),
				zap.Error(err),
				zap.Int("attempt", i+1),
				zap.Int("maxRetries", maxRetries),
				zap.Duration("nextRetryIn", delay),
			)
			time.Sleep(delay)
			delay *= 2 // Exponential backoff
		}
	}

	return fmt.Errorf("%s failed after %d attempts: %w", operationName, maxRetries, err)
}

func main() {
	zapLog := logger.New("info", "console")
	defer zapLog.Sync()

	log := logger.NewZapAdapter(zapLog)

	zapLog.Info("Starting assistant manager...")

	cfg, err := config.Load()
	if err != nil {
		zapLog.Fatal("config load failed", zap.Error(err))
	}

	obs := observability.New("assistant-manager")
	defer obs.Shutdown()

	ctx := context.Background()

	// --- Build the classification engine registries (fail fast) ---
	intents, err := taxonomy.NewRegistry(taxonomy.DefaultIntents())
	if err != nil {
		zapLog.Fatal("intent taxonomy invalid", zap.Error(err))
	}

	patterns, err := pattern.NewRegistry(pattern.DefaultPatterns())
	if err != nil {
		zapLog.Fatal("pattern registry invalid", zap.Error(err))
	}

	if overlaps := patterns.FindOverlapping(pattern.PoolIntent); len(overlaps) > 0 {
		zapLog.Fatal("intent pattern pool has overlapping triggers", zap.Any("overlaps", overlaps))
	}
	if overlaps := patterns.FindOverlapping(pattern.PoolWorkflow); len(overlaps) > 0 {
		zapLog.Fatal("workflow pattern pool has overlapping triggers", zap.Any("overlaps", overlaps))
	}

	weights := classifier.Weights{
		Pattern:                cfg.Classifier.PatternWeight,
		Route:                  cfg.Classifier.RouteWeight,
		Entity:                 cfg.Classifier.EntityWeight,
		ClarificationThreshold: cfg.Classifier.ClarificationThreshold,
	}
	clf, err := classifier.New(intents, patterns, weights, log)
	if err != nil {
		zapLog.Fatal("classifier construction failed", zap.Error(err))
	}

	catalog, err := registry.Load(cfg.Registries.CapabilitiesPath)
	if err != nil {
		zapLog.Fatal("capability catalog invalid", zap.Error(err),
			zap.String("path", cfg.Registries.CapabilitiesPath))
	}

	workflows, err := workflow.NewRegistry(workflow.DefaultWorkflows(), catalog)
	if err != nil {
		zapLog.Fatal("workflow registry invalid", zap.Error(err))
	}

	matcher, err := workflow.NewMatcher(workflows, patterns)
	if err != nil {
		zapLog.Fatal("workflow matcher construction failed", zap.Error(err))
	}

	contexts, err := contextmap.NewMap(contextmap.DefaultEntries())
	if err != nil {
		zapLog.Fatal("context map invalid", zap.Error(err))
	}

	prompts, err := prompt.NewRegistry(prompt.DefaultTemplates(), intents, workflows)
	if err != nil {
		zapLog.Fatal("prompt registry invalid", zap.Error(err))
	}

	zapLog.Info("Engine registries loaded",
		zap.Int("intents", intents.Len()),
		zap.Int("workflows", workflows.Len()),
		zap.Int("capabilities", catalog.Len()),
		zap.Int("templates", prompts.Len()),
	)

	// --- Init Zeebe client with retry ---
	var zeebe *camunda.Client
	err = retryWithBackoff(func() error {
		var err error
		zeebe, err = camunda.NewClient(cfg.Camunda.BrokerAddress)
		return err
	}, 10, 2*time.Second, zapLog, "Zeebe client initialization")
	if err != nil {
		zapLog.Fatal("zeebe client failed after retries", zap.Error(err))
	}
	defer zeebe.Close()
	zapLog.Info("Zeebe client connected successfully")

	// --- Init PostgreSQL with retry ---
	var pg *database.PostgresClient
	err = retryWithBackoff(func() error {
		var err error
		pg, err = database.NewPostgres(cfg.Database.Postgres)
		if err != nil {
			return err
		}
		return pg.Ping(ctx)
	}, 15, 2*time.Second, zapLog, "PostgreSQL connection")
	if err != nil {
		zapLog.Fatal("postgres failed after retries", zap.Error(err))
	}
	defer pg.Close()
	zapLog.Info("PostgreSQL connected successfully")

	// --- Init Elasticsearch with retry ---
	var es *database.ElasticsearchClient
	err = retryWithBackoff(func() error {
		var err error
		es, err = database.NewElasticsearch(cfg.Database.Elasticsearch)
		if err != nil {
			return err
		}
		return es.Ping()
	}, 15, 2*time.Second, zapLog, "Elasticsearch connection")
	if err != nil {
		zapLog.Fatal("elasticsearch failed after retries", zap.Error(err))
	}
	zapLog.Info("Elasticsearch connected successfully")

	// --- Init Redis with retry ---
	var redis *database.RedisClient
	err = retryWithBackoff(func() error {
		var err error
		redis, err = database.NewRedis(cfg.Database.Redis)
		if err != nil {
			return err
		}
		return redis.Ping(ctx)
	}, 10, 2*time.Second, zapLog, "Redis connection")
	if err != nil {
		zapLog.Fatal("redis failed after retries", zap.Error(err))
	}
	defer redis.Close()
	zapLog.Info("Redis connected successfully")

	// --- Context resolvers ---
	pgResolver, err := resolver.NewPostgresResolver(pg, resolver.DefaultLookups())
	if err != nil {
		zapLog.Fatal("postgres resolver invalid", zap.Error(err))
	}
	esResolver, err := resolver.NewElasticsearchResolver(es, resolver.DefaultSearchLookups())
	if err != nil {
		zapLog.Fatal("elasticsearch resolver invalid", zap.Error(err))
	}

	multi, err := resolver.NewMultiResolver(
		time.Duration(cfg.Camunda.RequestTimeout)*time.Millisecond,
		log,
		resolver.NewConversationResolver(),
		resolver.NewStaticResolver(nil),
		resolver.NewCachedResolver(pgResolver, redis, 5*time.Minute, resolver.DefaultCacheHints()),
		esResolver,
	)
	if err != nil {
		zapLog.Fatal("resolver construction failed", zap.Error(err))
	}

	// --- Tool dispatcher ---
	dispatcher := toolexec.NewDispatcher(catalog, log)

	if cfg.Notifications.Email.Enabled || cfg.Notifications.SMS.Enabled {
		sesClient, err := aws.NewSESClient(ctx, cfg.Notifications.AWS.Region)
		if err != nil {
			zapLog.Fatal("ses client failed", zap.Error(err))
		}
		snsClient, err := aws.NewSNSClient(ctx, cfg.Notifications.AWS.Region)
		if err != nil {
			zapLog.Fatal("sns client failed", zap.Error(err))
		}

		if err := dispatcher.Register("send-message",
			toolexec.SendMessageTool(sesClient, snsClient, cfg.Notifications.Email.FromEmail)); err != nil {
			zapLog.Fatal("send-message registration failed", zap.Error(err))
		}
		if err := dispatcher.Register("send-confirmation",
			toolexec.EmailTool(sesClient, cfg.Notifications.Email.FromEmail)); err != nil {
			zapLog.Fatal("send-confirmation registration failed", zap.Error(err))
		}
		zapLog.Info("Notification tools registered")
	}

	// --- Start workers ---
	var workers []*camunda.CamundaWorker

	if wc := cfg.Workers[ci.TaskType]; wc.Enabled {
		handler := ci.NewHandler(ci.FromWorkerConfig(wc), clf, log)
		w := camunda.NewWorker(zeebe.GetClient(), ci.TaskType, ci.FromWorkerConfig(wc).MaxJobsActive, handler, zapLog)
		w.Start()
		workers = append(workers, w)
	}

	if wc := cfg.Workers[mw.TaskType]; wc.Enabled {
		handler := mw.NewHandler(mw.FromWorkerConfig(wc), matcher, log)
		w := camunda.NewWorker(zeebe.GetClient(), mw.TaskType, mw.FromWorkerConfig(wc).MaxJobsActive, handler, zapLog)
		w.Start()
		workers = append(workers, w)
	}

	if wc := cfg.Workers[rc.TaskType]; wc.Enabled {
		handler := rc.NewHandler(rc.FromWorkerConfig(wc), contexts, multi, log)
		w := camunda.NewWorker(zeebe.GetClient(), rc.TaskType, rc.FromWorkerConfig(wc).MaxJobsActive, handler, zapLog)
		w.Start()
		workers = append(workers, w)
	}

	if wc := cfg.Workers[bp.TaskType]; wc.Enabled {
		handler := bp.NewHandler(bp.FromWorkerConfig(wc), prompts, workflows, log)
		w := camunda.NewWorker(zeebe.GetClient(), bp.TaskType, bp.FromWorkerConfig(wc).MaxJobsActive, handler, zapLog)
		w.Start()
		workers = append(workers, w)
	}

	if wc := cfg.Workers[et.TaskType]; wc.Enabled {
		handler := et.NewHandler(et.FromWorkerConfig(wc), dispatcher, log)
		w := camunda.NewWorker(zeebe.GetClient(), et.TaskType, et.FromWorkerConfig(wc).MaxJobsActive, handler, zapLog)
		w.Start()
		workers = append(workers, w)
	}

	zapLog.Info("Workers registered", zap.Int("count", len(workers)))

	// --- Health & metrics server ---
	go func() {
		http.HandleFunc("/health", func(w http.ResponseWriter, r *http.Request) {
			w.Header().Set("Content-Type", "application/json")
			w.WriteHeader(http.StatusOK)
			json.NewEncoder(w).Encode(map[string]string{
				"status": "healthy",
				"time":   time.Now().Format(time.RFC3339),
			})
		})
		http.HandleFunc("/ready", func(w http.ResponseWriter, r *http.Request) {
			w.Header().Set("Content-Type", "application/json")
			if err := zeebe.HealthCheck(r.Context()); err != nil {
				w.WriteHeader(http.StatusServiceUnavailable)
				json.NewEncoder(w).Encode(map[string]string{"status": "not ready", "error": err.Error()})
				return
			}
			w.WriteHeader(http.StatusOK)
			json.NewEncoder(w).Encode(map[string]string{
				"status": "ready",
				"time":   time.Now().Format(time.RFC3339),
			})
		})
		http.Handle("/metrics", promhttp.Handler())
		zapLog.Info("Health/Metrics server listening on :8080")
		if err := http.ListenAndServe(":8080", nil); err != nil {
			zapLog.Error("Health/Metrics server failed", zap.Error(err))
		}
	}()

	// --- Graceful shutdown ---
	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, os.Interrupt, syscall.SIGTERM)
	<-sigCh

	zapLog.Info("Shutdown signal received, stopping workers...")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	for _, w := range workers {
		w.Stop(shutdownCtx)
	}

	zapLog.Info("Assistant manager stopped gracefully")
}
