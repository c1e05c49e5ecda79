// Package bootstrap assembles the attendance API from configuration. The
// long-running server and the Lambda function share it, so both deployments
// run the same handler chain against the same stores.
package bootstrap

import (
	"context"
	"errors"
	"fmt"
	"net/http"

	"attendance.service/internal/api"
	"attendance.service/internal/api/handler"
	"attendance.service/internal/config"
	"attendance.service/internal/core"
	"attendance.service/internal/ports/media"
	"attendance.service/internal/ports/messaging"
	"attendance.service/internal/ports/repository"
	awsutil "attendance.service/pkg/aws"
	"attendance.service/pkg/database"
	"attendance.service/pkg/telemetry"
	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/service/s3"
	"github.com/aws/aws-sdk-go-v2/service/sqs"
	"github.com/rs/zerolog/log"
)

// Container owns the wired handler and every resource opened to build it.
type Container struct {
	Handler http.Handler

	closers []func(context.Context) error
}

type stores struct {
	attendance repository.AttendanceRepository
	directory  repository.DirectoryRepository
}

// New validates cfg, opens the configured store and media sink and returns
// the fully wrapped HTTP handler. On error everything opened so far is closed.
func New(ctx context.Context, cfg config.Config, serviceName string) (*Container, error) {
	projection, err := validate(cfg)
	if err != nil {
		return nil, err
	}

	c := &Container{}
	fail := func(err error) (*Container, error) {
		if closeErr := c.Close(ctx); closeErr != nil {
			log.Warn().Err(closeErr).Msg("Error releasing resources after failed start")
		}
		return nil, err
	}

	shutdownTracer, err := telemetry.InitTracer(ctx, serviceName, cfg.OTelExporter, cfg.OTelEndpoint)
	if err != nil {
		return nil, fmt.Errorf("failed to init tracer: %w", err)
	}
	c.closers = append(c.closers, shutdownTracer)

	st, err := c.openStores(ctx, cfg)
	if err != nil {
		return fail(err)
	}

	// AWS config is only loaded when S3 or SQS is in use.
	var awsCfg *aws.Config
	loadAWS := func() (aws.Config, error) {
		if awsCfg == nil {
			loaded, err := awsutil.NewAWSConfig(ctx, cfg)
			if err != nil {
				return aws.Config{}, fmt.Errorf("unable to load SDK config: %w", err)
			}
			awsCfg = &loaded
		}
		return *awsCfg, nil
	}

	sink, uploads, err := newSink(cfg, loadAWS)
	if err != nil {
		return fail(err)
	}

	var opts []core.Option
	if cfg.EventsQueueURL != "" {
		awsConf, err := loadAWS()
		if err != nil {
			return fail(err)
		}
		opts = append(opts, core.WithPublisher(messaging.NewSQSProducer(sqs.NewFromConfig(awsConf), cfg.EventsQueueURL)))
		log.Info().Str("queue", cfg.EventsQueueURL).Msg("Attendance events enabled")
	}

	router := api.NewRouter(
		&handler.AttendanceHandler{
			Service:      core.NewAttendanceService(st.attendance, sink, opts...),
			Projection:   projection,
			MaxBodyBytes: cfg.MaxUploadBytes,
		},
		&handler.DirectoryHandler{Service: core.NewDirectoryService(st.directory)},
		uploads,
	)
	c.Handler = api.Wrap(router, serviceName)

	return c, nil
}

// Close releases resources in reverse order of acquisition.
func (c *Container) Close(ctx context.Context) error {
	var errs []error
	for i := len(c.closers) - 1; i >= 0; i-- {
		if err := c.closers[i](ctx); err != nil {
			errs = append(errs, err)
		}
	}
	c.closers = nil
	return errors.Join(errs...)
}

func validate(cfg config.Config) (handler.Projection, error) {
	switch cfg.StoreDriver {
	case config.StoreMongo, config.StorePostgres:
	default:
		return "", fmt.Errorf("unknown STORE_DRIVER %q", cfg.StoreDriver)
	}
	switch cfg.MediaDriver {
	case config.MediaLocal, config.MediaS3:
	default:
		return "", fmt.Errorf("unknown MEDIA_DRIVER %q", cfg.MediaDriver)
	}
	return handler.ParseProjection(cfg.AttendanceProjection)
}

func (c *Container) openStores(ctx context.Context, cfg config.Config) (stores, error) {
	if cfg.StoreDriver == config.StorePostgres {
		db, err := database.NewPostgresConnection(ctx, cfg)
		if err != nil {
			return stores{}, err
		}
		c.closers = append(c.closers, func(context.Context) error { return db.Close() })
		log.Info().Msg("Successfully connected to PostgreSQL.")

		return stores{
			attendance: repository.NewPostgresAttendanceRepository(db),
			directory:  repository.NewPostgresDirectoryRepository(db),
		}, nil
	}

	client, err := database.NewMongoClient(ctx, cfg)
	if err != nil {
		return stores{}, err
	}
	c.closers = append(c.closers, client.Disconnect)
	log.Info().Str("database", cfg.MongoDatabase).Msg("Successfully connected to MongoDB.")

	db := client.Database(cfg.MongoDatabase)
	return stores{
		attendance: repository.NewMongoAttendanceRepository(db),
		directory:  repository.NewMongoDirectoryRepository(db),
	}, nil
}

// newSink returns the selfie sink and, for local storage, the file system
// served under /uploads/.
func newSink(cfg config.Config, loadAWS func() (aws.Config, error)) (media.Sink, http.FileSystem, error) {
	if cfg.MediaDriver == config.MediaLocal {
		local, err := media.NewLocalDiskSink(cfg.UploadDir, cfg.PublicBaseURL)
		if err != nil {
			return nil, nil, err
		}
		log.Info().Str("dir", cfg.UploadDir).Msg("Storing selfies on local disk")
		return local, local.FileSystem(), nil
	}

	awsConf, err := loadAWS()
	if err != nil {
		return nil, nil, err
	}
	client := s3.NewFromConfig(awsConf, func(o *s3.Options) {
		// LocalStack does not resolve virtual-hosted bucket names.
		o.UsePathStyle = cfg.IsLocalDev
	})

	publicURL := cfg.BlobPublicURL
	if publicURL == "" {
		endpoint := ""
		if cfg.IsLocalDev {
			endpoint = cfg.AWSEndpoint
		}
		publicURL = media.S3PublicURL(cfg.BlobBucket, cfg.AWSRegion, endpoint)
	}
	log.Info().Str("bucket", cfg.BlobBucket).Str("publicUrl", publicURL).Msg("Storing selfies in S3")

	var sink media.Sink = media.NewS3Sink(client, cfg.BlobBucket, publicURL)
	if cfg.BlobCircuitBreaker {
		sink = media.NewBreakerSink(sink, "selfie-upload")
	}
	return sink, nil, nil
}
