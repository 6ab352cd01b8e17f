package sampler

import (
	"bufio"
	"fmt"
	"io"
	"os"
	"strings"

	"codeberg.org/mutker/sysmond/internal/errors"
	"github.com/shirou/gopsutil/v3/disk"
	"github.com/shirou/gopsutil/v3/host"
)

const (
	secondsPerDay    = 86400
	secondsPerHour   = 3600
	secondsPerMinute = 60

	rootMount    = "/"
	tcpTablePath = "/proc/net/tcp"

	// Connection state column value for ESTABLISHED in the kernel's
	// TCP table (two hex digits).
	establishedState = "01"
)

// Uptime reports how long the host has been up.
type Uptime struct {
	// Read returns the host uptime in seconds. Defaults to gopsutil.
	Read func() (float64, error)
}

func (u Uptime) Sample() (string, error) {
	read := u.Read
	if read == nil {
		read = hostUptime
	}

	seconds, err := read()
	if err != nil {
		return "", errors.New().Wrap(errors.ErrReadUptime, err)
	}

	days := int(seconds / secondsPerDay)
	hours := int((seconds - float64(days)*secondsPerDay) / secondsPerHour)
	minutes := int((seconds - float64(days)*secondsPerDay - float64(hours)*secondsPerHour) / secondsPerMinute)

	return fmt.Sprintf("Uptime: %d days, %d hours, %d minutes (%.0f seconds)",
		days, hours, minutes, seconds), nil
}

func hostUptime() (float64, error) {
	seconds, err := host.Uptime()
	if err != nil {
		return 0, err
	}
	return float64(seconds), nil
}

// Inodes reports available vs total inodes for a mount point.
type Inodes struct {
	// Mount is the mount point to query. Defaults to "/".
	Mount string
	// Usage returns filesystem statistics. Defaults to gopsutil.
	Usage func(path string) (*disk.UsageStat, error)
}

func (i Inodes) Sample() (string, error) {
	mount := i.Mount
	if mount == "" {
		mount = rootMount
	}
	usage := i.Usage
	if usage == nil {
		usage = disk.Usage
	}

	stat, err := usage(mount)
	if err != nil {
		return "", errors.New().Wrap(errors.ErrReadInodes, err)
	}

	return fmt.Sprintf("Free inodes: %d out of %d", stat.InodesFree, stat.InodesTotal), nil
}

// TCPConns counts entries in the kernel's TCP connection table,
// reporting the total alongside the established subset.
type TCPConns struct {
	// Open returns the connection table source. Defaults to /proc/net/tcp.
	Open func() (io.ReadCloser, error)
}

func (t TCPConns) Sample() (string, error) {
	open := t.Open
	if open == nil {
		open = func() (io.ReadCloser, error) { return os.Open(tcpTablePath) }
	}

	r, err := open()
	if err != nil {
		return "", errors.New().Wrap(errors.ErrReadTCPTable, err)
	}
	defer r.Close()

	total, established, err := countConnections(r)
	if err != nil {
		return "", errors.New().Wrap(errors.ErrReadTCPTable, err)
	}

	return fmt.Sprintf("TCP network connections: total %d, established %d",
		total, established), nil
}

// countConnections scans the line-oriented table, skipping the header.
// A table with a header and no data rows is a legitimate zero count.
func countConnections(r io.Reader) (total, established int, err error) {
	sc := bufio.NewScanner(r)

	header := true
	for sc.Scan() {
		if header {
			header = false
			continue
		}

		fields := strings.Fields(sc.Text())
		if len(fields) < 4 {
			continue
		}

		total++
		if fields[3] == establishedState {
			established++
		}
	}

	return total, established, sc.Err()
}

// HostLine summarizes the host identity for the startup banner.
func HostLine() (string, error) {
	info, err := host.Info()
	if err != nil {
		return "", errors.New().Wrap(errors.ErrInternal, err)
	}

	return fmt.Sprintf("Host: %s (%s %s, kernel %s)",
		info.Hostname, info.Platform, info.PlatformVersion, info.KernelVersion), nil
}
