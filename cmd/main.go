package main

import (
	"context"
	"flag"
	"os"
	"os/signal"
	"syscall"
	"time"

	"employee-registry/internal/api"
	"employee-registry/internal/config"
	"employee-registry/internal/exchange/consumer"
	"employee-registry/internal/exchange/producer"
	"employee-registry/internal/repository/employee"
	"employee-registry/internal/repository/events"
	"employee-registry/library/pg"
	"employee-registry/library/yamlreader"

	"github.com/IBM/sarama"
	"github.com/joho/godotenv"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
	"golang.org/x/sync/errgroup"
)

func main() {
	rootCtx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	ctx, cancel := context.WithCancel(rootCtx)
	defer cancel()

	cfg := MustNewConfig(parseFlags())

	zerolog.SetGlobalLevel(zerolog.InfoLevel)
	zerolog.TimeFieldFormat = time.RFC3339

	log.Info().Msgf("pg=%+v", cfg.Postgres.Conn.Value)
	log.Info().Msgf("kafka=%+v", cfg.Kafka.Bootstrap.Value)

	pgClient, err := pg.NewPG(rootCtx, cfg.Postgres.Conn.Value, log.Logger)
	if err != nil {
		log.Fatal().Err(err).Msg("postgres init failed")
	}
	defer pgClient.Close()

	employeeRepo := employee.NewRepository(pgClient.Pool())
	eventsRepo := events.NewRepository(pgClient.Pool())

	changeProducer, err := initChangeProducer(cfg.Kafka)
	if err != nil {
		log.Fatal().Err(err).Msg("kafka producer init failed")
	}
	defer func() { _ = changeProducer.Close() }()

	apiService := api.NewService(api.ServiceDeps{
		Port:         cfg.UserAPI.Port.Value,
		Producer:     changeProducer,
		EmployeeRepo: employeeRepo,
		EventsRepo:   eventsRepo,
	})

	consumerChanges := consumer.NewChangesRunner(
		cfg.Kafka.Bootstrap.Value,
		cfg.Kafka.Topics.Changes.Value,
		"consumer_changes",
		eventsRepo,
		log.Logger,
	)

	group, gctx := errgroup.WithContext(ctx)

	group.Go(func() error {
		log.Info().Msg("starting HTTP API")
		if err := apiService.Start(gctx); err != nil {
			log.Error().Err(err).Msg("HTTP API stopped with error")

			return err
		}

		log.Info().Msg("HTTP API stopped")

		return nil
	})

	group.Go(func() error {
		log.Info().Msg("starting consumer_changes")

		if err := consumerChanges.Start(gctx); err != nil {
			log.Error().Err(err).Msg("consumer_changes stopped with error")

			return err
		}

		log.Info().Msg("consumer_changes stopped")

		return nil
	})

	done := make(chan struct{})
	go func() {
		defer close(done)
		_ = group.Wait()
	}()

	select {
	case <-rootCtx.Done():
		log.Info().Msg("signal received, graceful shutdown...")
		<-done
		log.Info().Msg("all services stopped")
	case <-done:
		log.Info().Msg("all services stopped")
	}
}

func initChangeProducer(kafkaConfig config.KafkaConfig) (*producer.ChangeProducer, error) {
	sCfg := newSaramaProducerConfig(kafkaConfig.ProducerClientID.Value)

	sp, err := sarama.NewSyncProducer([]string{kafkaConfig.Bootstrap.Value}, sCfg)
	if err != nil {
		return nil, err
	}

	changeProd := producer.NewChangeProducer(
		sp,
		producer.Config{
			TopicChanges: kafkaConfig.Topics.Changes.Value,
			Source:       "employee-registry-api",
		},
		log.Logger,
	)

	return changeProd, nil
}

func newSaramaProducerConfig(clientID string) *sarama.Config {
	sCfg := sarama.NewConfig()
	sCfg.Version = sarama.V3_3_2_0
	if clientID != "" {
		sCfg.ClientID = clientID
	}
	sCfg.Producer.Return.Successes = true
	sCfg.Producer.RequiredAcks = sarama.WaitForAll
	sCfg.Producer.Idempotent = true
	sCfg.Net.MaxOpenRequests = 1
	sCfg.Producer.Retry.Max = 5
	sCfg.Producer.Retry.Backoff = 200 * time.Millisecond

	return sCfg
}

func MustNewConfig(path string) *config.Config {
	cfg, err := yamlreader.NewConfig[config.Config](path)

	if err != nil {
		log.Fatal().Str("path", path).Err(err).Msg("failed to read application config")
		return nil
	}

	return cfg
}

func parseFlags() string {
	var configPath string

	flag.StringVar(&configPath, "config", "", "path to config file")
	flag.Parse()

	if configPath == "" {
		configPath = os.Getenv("CONFIG_PATH")
	}

	godotenv.Load(".env")

	if configPath == "" {
		configPath = "config/application-local.yaml"
	}
	return configPath
}
