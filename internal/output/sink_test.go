package output

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/crunchworks/create2crunch/internal/crunch"
)

func TestFileSink_AppendsResultLines(t *testing.T) {
	t.Parallel()

	path := filepath.Join(t.TempDir(), "found.txt")
	sink, err := NewFileSink(path)
	require.NoError(t, err)
	defer sink.Close()

	res := crunch.Result{
		Salt:    "0x" + strings.Repeat("00", 32),
		Address: "0x" + strings.Repeat("ab", 20),
		Value:   "720",
	}
	require.NoError(t, sink.Record(context.Background(), res))
	require.NoError(t, sink.Record(context.Background(), res))

	data, err := os.ReadFile(path)
	require.NoError(t, err)

	lines := strings.Split(strings.TrimSpace(string(data)), "\n")
	require.Len(t, lines, 2)
	assert.Equal(t, res.Salt+" => "+res.Address+" => 720", lines[0])
}

func TestFileSink_AppendsToExistingFile(t *testing.T) {
	t.Parallel()

	path := filepath.Join(t.TempDir(), "found.txt")
	require.NoError(t, os.WriteFile(path, []byte("previous run\n"), 0o644))

	sink, err := NewFileSink(path)
	require.NoError(t, err)
	defer sink.Close()

	require.NoError(t, sink.Record(context.Background(), crunch.Result{Salt: "0x01", Address: "0x02", Value: "0"}))

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.True(t, strings.HasPrefix(string(data), "previous run\n"), "existing content must be preserved")
	assert.Contains(t, string(data), "0x01 => 0x02 => 0")
}

func TestFileSink_ConcurrentRecords(t *testing.T) {
	t.Parallel()

	path := filepath.Join(t.TempDir(), "found.txt")
	sink, err := NewFileSink(path)
	require.NoError(t, err)
	defer sink.Close()

	const writers = 8
	const perWriter = 25

	var wg sync.WaitGroup
	for i := 0; i < writers; i++ {
		wg.Add(1)
		go func(id int) {
			defer wg.Done()
			for j := 0; j < perWriter; j++ {
				res := crunch.Result{
					Salt:    fmt.Sprintf("0x%02d%02d", id, j),
					Address: "0xaddr",
					Value:   "1",
				}
				assert.NoError(t, sink.Record(context.Background(), res))
			}
		}(i)
	}
	wg.Wait()

	data, err := os.ReadFile(path)
	require.NoError(t, err)

	lines := strings.Split(strings.TrimSpace(string(data)), "\n")
	require.Len(t, lines, writers*perWriter)
	for _, line := range lines {
		// No interleaved or torn lines.
		assert.Regexp(t, `^0x\d{4} => 0xaddr => 1$`, line)
	}
}

func TestFileSink_DefaultPath(t *testing.T) {
	t.Parallel()

	// Run inside a temp dir so the default file does not pollute the repo.
	dir := t.TempDir()
	sink, err := NewFileSink(filepath.Join(dir, DefaultPath))
	require.NoError(t, err)
	defer sink.Close()

	assert.Equal(t, filepath.Join(dir, DefaultPath), sink.Path())
}
