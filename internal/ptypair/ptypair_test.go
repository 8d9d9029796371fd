package ptypair

import (
	"context"
	"os"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/sys/unix"
)

func openPair(t *testing.T) *Pair {
	t.Helper()
	p, err := Open()
	if err != nil {
		t.Skipf("pseudo-terminals not available: %v", err)
	}
	t.Cleanup(func() { p.Close() })
	return p
}

func TestOpen(t *testing.T) {
	p := openPair(t)

	assert.True(t, strings.HasPrefix(p.SlavePath, "/dev/pts/"), "unexpected slave path %s", p.SlavePath)

	info, err := os.Stat(p.SlavePath)
	require.NoError(t, err)
	assert.NotZero(t, info.Mode()&os.ModeCharDevice, "slave is not a character device")
}

func TestMasterToSlave(t *testing.T) {
	p := openPair(t)

	fd, err := unix.Open(p.SlavePath, unix.O_RDWR|unix.O_NOCTTY, 0)
	require.NoError(t, err)
	defer unix.Close(fd)

	// Canonical mode delivers the line once the newline arrives
	_, err = p.Master.Write([]byte("ping\n"))
	require.NoError(t, err)

	buf := make([]byte, 16)
	n, err := unix.Read(fd, buf)
	require.NoError(t, err)
	assert.Equal(t, "ping\n", string(buf[:n]))
}

func TestSocat(t *testing.T) {
	if !SocatAvailable() {
		t.Skip("socat not installed")
	}

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	b, err := Socat(ctx)
	require.NoError(t, err)
	defer b.Close()

	for _, path := range b.Paths {
		assert.NotEmpty(t, path)
		_, err := os.Stat(path)
		assert.NoError(t, err)
	}
	assert.NotEqual(t, b.Paths[0], b.Paths[1])
}
