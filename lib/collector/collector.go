// Package collector queries the local Docker engine and writes the docker
// data file read by the dashboard.
package collector

import (
	"context"
	"fmt"
	"log/slog"
	"sort"
	"time"

	"github.com/docker/docker/api/types/image"
	"github.com/docker/docker/api/types/system"
	"github.com/docker/docker/client"
	"github.com/samber/lo"

	"github.com/submitty/dockerdash/lib/inventory"
	"github.com/submitty/dockerdash/lib/snapshot"
)

// untaggedRef is how the engine reports an image without a name.
const untaggedRef = "<none>:<none>"

// DockerClient is the subset of the engine API the collector uses.
type DockerClient interface {
	ImageList(ctx context.Context, options image.ListOptions) ([]image.Summary, error)
	Info(ctx context.Context) (system.Info, error)
}

// NewDockerClient connects to the engine configured by DOCKER_HOST and friends.
func NewDockerClient() (*client.Client, error) {
	return client.NewClientWithOpts(client.FromEnv, client.WithAPIVersionNegotiation())
}

// Collector periodically writes the docker data file.
type Collector struct {
	client   DockerClient
	dir      string
	file     string
	interval time.Duration
	logger   *slog.Logger
}

// New creates a collector writing to file under dir every interval.
func New(c DockerClient, dir, file string, interval time.Duration, logger *slog.Logger) *Collector {
	if logger == nil {
		logger = slog.Default()
	}
	return &Collector{
		client:   c,
		dir:      dir,
		file:     file,
		interval: interval,
		logger:   logger,
	}
}

// Run collects immediately and then on every tick until ctx is done.
// Failed collections are logged and retried on the next tick.
func (c *Collector) Run(ctx context.Context) error {
	if c.interval <= 0 {
		c.logger.Info("docker collector disabled")
		return nil
	}

	ticker := time.NewTicker(c.interval)
	defer ticker.Stop()

	for {
		if err := c.CollectOnce(ctx); err != nil {
			c.logger.ErrorContext(ctx, "collect docker data", "error", err)
		}

		select {
		case <-ctx.Done():
			c.logger.Info("docker collector stopped")
			return nil
		case <-ticker.C:
		}
	}
}

// CollectOnce lists images and engine info and writes the docker data file.
func (c *Collector) CollectOnce(ctx context.Context) error {
	summaries, err := c.client.ImageList(ctx, image.ListOptions{})
	if err != nil {
		return fmt.Errorf("list images: %w", err)
	}

	info, err := c.client.Info(ctx)
	if err != nil {
		return fmt.Errorf("docker info: %w", err)
	}

	data := &snapshot.DockerData{
		Images: toRawImages(summaries),
		Info:   infoMap(info),
	}
	if err := snapshot.WriteDockerData(c.dir, c.file, data); err != nil {
		return err
	}

	c.logger.InfoContext(ctx, "collected docker data",
		"images", len(data.Images),
		"skipped", len(summaries)-len(data.Images))
	return nil
}

// toRawImages converts engine summaries, dropping untagged images, ordered
// by primary tag.
func toRawImages(summaries []image.Summary) []inventory.RawImage {
	raw := make([]inventory.RawImage, 0, len(summaries))
	for _, s := range summaries {
		tags := lo.Without(s.RepoTags, untaggedRef)
		if len(tags) == 0 {
			continue
		}
		raw = append(raw, inventory.RawImage{
			Tags:        tags,
			Created:     time.Unix(s.Created, 0).UTC().Format(time.RFC3339),
			Size:        s.Size,
			VirtualSize: s.Size,
		})
	}
	sort.Slice(raw, func(i, j int) bool {
		return raw[i].Tags[0] < raw[j].Tags[0]
	})
	return raw
}

func infoMap(info system.Info) map[string]any {
	return map[string]any{
		"ServerVersion":   info.ServerVersion,
		"OperatingSystem": info.OperatingSystem,
		"KernelVersion":   info.KernelVersion,
		"Architecture":    info.Architecture,
		"NCPU":            info.NCPU,
		"MemTotal":        info.MemTotal,
		"Images":          info.Images,
		"Containers":      info.Containers,
		"DockerRootDir":   info.DockerRootDir,
	}
}
