package docker

import (
	"bytes"
	"context"
	"fmt"
	"time"

	"github.com/bnema/zerowrap"
	cerrdefs "github.com/containerd/errdefs"
	"github.com/docker/docker/api/types/container"
	"github.com/docker/docker/client"
	"github.com/docker/docker/pkg/stdcopy"

	"github.com/bnema/wharf/internal/domain"
)

// LogSource implements the ProxyLogSource interface by tailing the proxy
// container's output through the Docker Engine API.
type LogSource struct {
	client        *client.Client
	containerName string
}

// NewLogSource creates a log source for the named container.
func NewLogSource(cli *client.Client, containerName string) *LogSource {
	return &LogSource{client: cli, containerName: containerName}
}

// Tail returns up to lines of the proxy container's output no older than
// since, stdout and stderr demultiplexed into a single text blob.
func (l *LogSource) Tail(ctx context.Context, lines int, since time.Duration) (string, error) {
	ctx = zerowrap.CtxWithFields(ctx, map[string]any{
		zerowrap.FieldLayer:   "adapter",
		zerowrap.FieldAdapter: "docker",
		zerowrap.FieldAction:  "TailLogs",
		"container":           l.containerName,
	})
	log := zerowrap.FromCtx(ctx)

	logs, err := l.client.ContainerLogs(ctx, l.containerName, container.LogsOptions{
		ShowStdout: true,
		ShowStderr: true,
		Tail:       fmt.Sprintf("%d", lines),
		Since:      since.String(),
	})
	if err != nil {
		if cerrdefs.IsNotFound(err) {
			return "", fmt.Errorf("%w: container %q not found", domain.ErrLogSourceUnavailable, l.containerName)
		}
		return "", log.WrapErr(err, "failed to fetch container logs")
	}
	defer logs.Close()

	// Docker multiplexes stdout and stderr into one stream; demux both into
	// the same buffer since the scan does not care which stream a line used.
	var buf bytes.Buffer
	if _, err := stdcopy.StdCopy(&buf, &buf, logs); err != nil {
		return "", log.WrapErr(err, "failed to read container logs")
	}

	return buf.String(), nil
}
