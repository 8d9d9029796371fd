// Package ptypair allocates pseudo-terminals that stand in for a uart when
// no hardware is attached.
package ptypair

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"os"
	"os/exec"
	"regexp"
	"strconv"
	"time"

	"golang.org/x/sys/unix"
)

// ErrSocatNotAvailable is returned by Socat when socat is not in PATH
var ErrSocatNotAvailable = errors.New("socat utility not available")

// Pair is a pseudo-terminal: the master side as a file and the path of the
// slave device, which behaves like a uart device node.
type Pair struct {
	Master    *os.File
	SlavePath string
}

// Open allocates a new pseudo-terminal from /dev/ptmx
func Open() (*Pair, error) {
	fd, err := unix.Open("/dev/ptmx", unix.O_RDWR|unix.O_NOCTTY|unix.O_CLOEXEC, 0)
	if err != nil {
		return nil, fmt.Errorf("failed to open /dev/ptmx: %w", err)
	}

	// unlockpt
	if err := unix.IoctlSetPointerInt(fd, unix.TIOCSPTLCK, 0); err != nil {
		unix.Close(fd)
		return nil, fmt.Errorf("failed to unlock pty: %w", err)
	}

	// ptsname
	n, err := unix.IoctlGetInt(fd, unix.TIOCGPTN)
	if err != nil {
		unix.Close(fd)
		return nil, fmt.Errorf("failed to get pty number: %w", err)
	}

	return &Pair{
		Master:    os.NewFile(uintptr(fd), "/dev/ptmx"),
		SlavePath: "/dev/pts/" + strconv.Itoa(n),
	}, nil
}

// Close closes the master side, which hangs up the slave
func (p *Pair) Close() error {
	return p.Master.Close()
}

// Bridge is a socat process linking two pseudo-terminals back to back, so
// bytes written to one path are read from the other.
type Bridge struct {
	Paths [2]string
	cmd   *exec.Cmd
}

var ptyLine = regexp.MustCompile(`PTY is (\S+)`)

// SocatAvailable checks if socat is available in PATH
func SocatAvailable() bool {
	_, err := exec.LookPath("socat")
	return err == nil
}

// Socat starts socat with two raw, non-echoing pseudo-terminals and waits
// until both device paths have been announced on its log output.
func Socat(ctx context.Context) (*Bridge, error) {
	if !SocatAvailable() {
		return nil, ErrSocatNotAvailable
	}

	cmd := exec.Command("socat", "-d", "-d", "pty,raw,echo=0", "pty,raw,echo=0")
	stderr, err := cmd.StderrPipe()
	if err != nil {
		return nil, err
	}
	if err := cmd.Start(); err != nil {
		return nil, fmt.Errorf("failed to start socat: %w", err)
	}

	b := &Bridge{cmd: cmd}
	found := make(chan error, 1)
	go func() {
		scanner := bufio.NewScanner(stderr)
		n := 0
		for scanner.Scan() {
			if m := ptyLine.FindStringSubmatch(scanner.Text()); m != nil && n < 2 {
				b.Paths[n] = m[1]
				n++
				if n == 2 {
					found <- nil
				}
			}
		}
		if n < 2 {
			found <- fmt.Errorf("socat exited after announcing %d of 2 ptys", n)
		}
	}()

	select {
	case err := <-found:
		if err != nil {
			b.Close()
			return nil, err
		}
	case <-ctx.Done():
		b.Close()
		return nil, ctx.Err()
	}

	// socat announces the ptys before it starts relaying; give it a moment
	time.Sleep(50 * time.Millisecond)
	return b, nil
}

// Close stops the socat process
func (b *Bridge) Close() error {
	if b.cmd.Process == nil {
		return nil
	}
	if err := b.cmd.Process.Kill(); err != nil && !errors.Is(err, os.ErrProcessDone) {
		return err
	}
	b.cmd.Wait()
	return nil
}
