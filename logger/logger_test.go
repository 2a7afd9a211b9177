package logger

import (
	"strings"
	"sync"
	"testing"
)

func TestConcurrentLoggingAndReads(t *testing.T) {
	// Pollers and request handlers log from their own goroutines while the
	// log viewer reads; the buffer must survive that interleaving intact.
	const writers = 8
	const perWriter = 50

	var wg sync.WaitGroup
	for i := 0; i < writers; i++ {
		wg.Add(1)
		go func(id int) {
			defer wg.Done()
			for j := 0; j < perWriter; j++ {
				Debugf("writer %d entry %d", id, j)
			}
		}(i)
	}
	wg.Add(1)
	go func() {
		defer wg.Done()
		for i := 0; i < writers*perWriter; i++ {
			GetLogs(10, "debug")
		}
	}()
	wg.Wait()

	logs := GetLogs(writers*perWriter+1, "debug")
	seen := 0
	for _, entry := range logs {
		if strings.Contains(entry, "writer ") {
			seen++
		}
	}
	if seen < writers*perWriter {
		t.Errorf("buffer lost entries under concurrent writes: got %d, expected at least %d", seen, writers*perWriter)
	}
}

func TestGetLogsFiltersByLevel(t *testing.T) {
	Debug("filter-check debug entry")
	Error("filter-check error entry")

	for _, entry := range GetLogs(maxLogBufferSize, "error") {
		if strings.Contains(entry, "filter-check debug entry") {
			t.Fatal("debug entry returned for error-level query")
		}
	}

	found := false
	for _, entry := range GetLogs(maxLogBufferSize, "debug") {
		if strings.Contains(entry, "filter-check error entry") {
			found = true
			break
		}
	}
	if !found {
		t.Error("error entry missing from debug-level query")
	}
}
