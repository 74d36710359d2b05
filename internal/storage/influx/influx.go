// Package influx implements the storage.Backend interface on InfluxDB.
// Each finished mission becomes one "weather" point. While the server is
// unreachable, points are appended to a gzipped line protocol backup file.
package influx

import (
	"compress/gzip"
	"context"
	"errors"
	"fmt"
	"os"
	"sync"
	"time"

	"github.com/OCAP2/weather/internal/config"
	"github.com/OCAP2/weather/pkg/core"
	influxdb2 "github.com/influxdata/influxdb-client-go/v2"
	influxdb2_api "github.com/influxdata/influxdb-client-go/v2/api"
	influxdb2_write "github.com/influxdata/influxdb-client-go/v2/api/write"
	"github.com/influxdata/influxdb-client-go/v2/domain"
	"github.com/rs/zerolog"
)

// Measurement is the point name used for weather records.
const Measurement = "weather"

const (
	pingTimeout     = 5 * time.Second
	retentionPeriod = 60 * 60 * 24 * 90 // 90 days
)

// ErrNoBackup is returned by Init when the server is down and no backup path is set.
var ErrNoBackup = errors.New("influxdb unreachable and no backup path configured")

// Dependencies holds the backend's settings and logger.
type Dependencies struct {
	Config config.InfluxConfig
	Logger zerolog.Logger
}

// Backend writes weather records to InfluxDB.
type Backend struct {
	cfg config.InfluxConfig
	log zerolog.Logger

	mu         sync.Mutex
	client     influxdb2.Client
	writer     influxdb2_api.WriteAPI
	backupFile *os.File
	backup     *gzip.Writer
	idCounter  uint
}

// New creates an InfluxDB backend. Init connects.
func New(deps Dependencies) *Backend {
	return &Backend{cfg: deps.Config, log: deps.Logger}
}

// Init connects to the server and ensures the org and bucket exist.
// An unreachable server switches the backend to the backup file.
func (b *Backend) Init() error {
	b.client = influxdb2.NewClientWithOptions(
		b.cfg.URL(),
		b.cfg.Token,
		influxdb2.DefaultOptions().
			SetBatchSize(100).
			SetFlushInterval(1000),
	)

	ctx, cancel := context.WithTimeout(context.Background(), pingTimeout)
	defer cancel()

	running, err := b.client.Ping(ctx)
	if err != nil || !running {
		b.log.Warn().Err(err).Str("url", b.cfg.URL()).Str("backupPath", b.cfg.BackupPath).
			Msg("InfluxDB unreachable, writing to backup file")
		b.client.Close()
		b.client = nil
		return b.openBackup()
	}

	if err := b.ensureBucket(ctx); err != nil {
		b.client.Close()
		b.client = nil
		return err
	}

	b.writer = b.client.WriteAPI(b.cfg.Org, b.cfg.Bucket)
	go func(errorsCh <-chan error) {
		for writeErr := range errorsCh {
			b.log.Error().Err(writeErr).Str("bucket", b.cfg.Bucket).Msg("Error sending data to InfluxDB")
		}
	}(b.writer.Errors())

	b.log.Info().Str("url", b.cfg.URL()).Str("bucket", b.cfg.Bucket).Msg("InfluxDB client initialized")
	return nil
}

func (b *Backend) openBackup() error {
	if b.cfg.BackupPath == "" {
		return ErrNoBackup
	}
	file, err := os.OpenFile(b.cfg.BackupPath, os.O_APPEND|os.O_CREATE|os.O_WRONLY, 0644)
	if err != nil {
		return fmt.Errorf("error creating backup file: %w", err)
	}
	b.backupFile = file
	b.backup = gzip.NewWriter(file)
	return nil
}

func (b *Backend) ensureBucket(ctx context.Context) error {
	orgs := b.client.OrganizationsAPI()

	org, err := orgs.FindOrganizationByName(ctx, b.cfg.Org)
	if err != nil {
		b.log.Info().Str("org", b.cfg.Org).Msg("Organization not found, creating")
		org, err = orgs.CreateOrganizationWithName(ctx, b.cfg.Org)
		if err != nil {
			return fmt.Errorf("creating organization %s: %w", b.cfg.Org, err)
		}
	}

	buckets := b.client.BucketsAPI()
	if _, err := buckets.FindBucketByName(ctx, b.cfg.Bucket); err == nil {
		return nil
	}

	b.log.Info().Str("bucket", b.cfg.Bucket).Msg("Bucket not found, creating")
	rule := domain.RetentionRuleTypeExpire
	_, err = buckets.CreateBucketWithName(ctx, org, b.cfg.Bucket, domain.RetentionRule{
		Type:         &rule,
		EverySeconds: retentionPeriod,
	})
	if err != nil {
		return fmt.Errorf("creating bucket %s: %w", b.cfg.Bucket, err)
	}
	return nil
}

// RecordWeather writes the record as one point and assigns r.ID.
func (b *Backend) RecordWeather(r *core.WeatherRecord) error {
	b.mu.Lock()
	defer b.mu.Unlock()

	b.idCounter++
	r.ID = b.idCounter
	point := weatherPoint(r)

	switch {
	case b.writer != nil:
		b.writer.WritePoint(point)
	case b.backup != nil:
		line := influxdb2_write.PointToLineProtocol(point, time.Nanosecond)
		if _, err := b.backup.Write([]byte(line)); err != nil {
			return fmt.Errorf("error writing to InfluxDB backup file: %w", err)
		}
	default:
		return fmt.Errorf("influxdb backend not initialized")
	}
	return nil
}

// Close flushes pending points and releases the client or backup file.
func (b *Backend) Close() error {
	b.mu.Lock()
	defer b.mu.Unlock()

	if b.writer != nil {
		b.writer.Flush()
		b.writer = nil
	}
	if b.client != nil {
		b.client.Close()
		b.client = nil
	}

	var errs []error
	if b.backup != nil {
		errs = append(errs, b.backup.Close())
		b.backup = nil
	}
	if b.backupFile != nil {
		errs = append(errs, b.backupFile.Close())
		b.backupFile = nil
	}
	return errors.Join(errs...)
}

// weatherPoint converts a record into a point stamped with its start time.
// Empty tags are left out.
func weatherPoint(r *core.WeatherRecord) *influxdb2_write.Point {
	tags := make(map[string]string, 4)
	for k, v := range map[string]string{
		"mission": r.MissionName,
		"mode":    r.Mode,
		"season":  r.Season,
		"tier":    r.Tier,
	} {
		if v != "" {
			tags[k] = v
		}
	}

	return influxdb2.NewPoint(
		Measurement,
		tags,
		map[string]any{
			"id":             int64(r.ID),
			"time_of_day":    r.TimeOfDay,
			"rain_requested": r.Requested.RainDensity,
			"fog_requested":  r.Requested.FogDensity,
			"dust_requested": r.Requested.HasDust,
			"dust_rendered":  r.DustRendered,
			"rain_realized":  r.Realized,
			"sounds":         len(r.Sounds),
			"duration_s":     r.EndedAt.Sub(r.StartedAt).Seconds(),
		},
		r.StartedAt,
	)
}
