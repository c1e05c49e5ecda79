package config

import (
	"github.com/spf13/viper"
)

// Every value comes from the environment. The same variables are used by the
// long-running API and by the Lambda function, so both deployments are
// configured identically.

type Config struct {
	ServerPort string `mapstructure:"SERVER_PORT"`
	IsLocalDev bool   `mapstructure:"IS_LOCAL_DEV"`

	StoreDriver   string `mapstructure:"STORE_DRIVER"`
	MongoURL      string `mapstructure:"MONGODB_URL"`
	MongoDatabase string `mapstructure:"MONGODB_DATABASE"`
	DBHost        string `mapstructure:"DB_HOST"`
	DBPort        string `mapstructure:"DB_PORT"`
	DBUser        string `mapstructure:"DB_USER"`
	DBPassword    string `mapstructure:"DB_PASSWORD"`
	DBName        string `mapstructure:"DB_NAME"`

	MediaDriver        string `mapstructure:"MEDIA_DRIVER"`
	UploadDir          string `mapstructure:"UPLOAD_DIR"`
	PublicBaseURL      string `mapstructure:"PUBLIC_BASE_URL"`
	BlobBucket         string `mapstructure:"BLOB_BUCKET"`
	BlobPublicURL      string `mapstructure:"BLOB_PUBLIC_URL"`
	BlobCircuitBreaker bool   `mapstructure:"BLOB_CIRCUIT_BREAKER"`

	AWSRegion   string `mapstructure:"AWS_REGION"`
	AWSEndpoint string `mapstructure:"AWS_ENDPOINT"`

	EventsQueueURL string `mapstructure:"ATTENDANCE_EVENTS_QUEUE_URL"`

	AttendanceProjection string `mapstructure:"ATTENDANCE_PROJECTION"`
	MaxUploadBytes       int64  `mapstructure:"MAX_UPLOAD_BYTES"`

	OTelExporter string `mapstructure:"OTEL_EXPORTER"`
	OTelEndpoint string `mapstructure:"OTEL_ENDPOINT"`
}

const (
	StoreMongo    = "mongo"
	StorePostgres = "postgres"

	MediaLocal = "local"
	MediaS3    = "s3"
)

// LoadConfig reads configuration from environment variables.
func LoadConfig() (config Config, err error) {
	v := viper.New()

	v.SetDefault("SERVER_PORT", "3000")
	v.SetDefault("IS_LOCAL_DEV", false)

	v.SetDefault("STORE_DRIVER", StoreMongo)
	v.SetDefault("MONGODB_URL", "mongodb://127.0.0.1:27017")
	v.SetDefault("MONGODB_DATABASE", "EMS")
	v.SetDefault("DB_HOST", "db")
	v.SetDefault("DB_PORT", "5432")
	v.SetDefault("DB_USER", "user")
	v.SetDefault("DB_PASSWORD", "password")
	v.SetDefault("DB_NAME", "attendance_db")

	v.SetDefault("MEDIA_DRIVER", MediaLocal)
	v.SetDefault("UPLOAD_DIR", "uploads")
	v.SetDefault("PUBLIC_BASE_URL", "")
	v.SetDefault("BLOB_BUCKET", "attendance-selfies")
	v.SetDefault("BLOB_PUBLIC_URL", "")
	v.SetDefault("BLOB_CIRCUIT_BREAKER", false)

	v.SetDefault("AWS_REGION", "us-east-1")
	v.SetDefault("AWS_ENDPOINT", "http://localstack:4566")

	// Empty disables event publishing.
	v.SetDefault("ATTENDANCE_EVENTS_QUEUE_URL", "")

	v.SetDefault("ATTENDANCE_PROJECTION", "full")
	v.SetDefault("MAX_UPLOAD_BYTES", 10<<20)

	v.SetDefault("OTEL_EXPORTER", "otlp")
	v.SetDefault("OTEL_ENDPOINT", "jaeger:4317")

	v.AutomaticEnv()

	err = v.Unmarshal(&config)
	return
}
