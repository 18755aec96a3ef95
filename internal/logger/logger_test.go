package logger

import (
	"bytes"
	"os"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
)

func resetLogger() {
	SetVerbose(false)
	SetOutput(os.Stderr)
	SetErrorOutput(os.Stderr)
}

func TestDebugGatedByVerbose(t *testing.T) {
	defer resetLogger()

	var buf bytes.Buffer
	SetOutput(&buf)

	Debug("hidden %d", 1)
	assert.Empty(t, buf.String())

	SetVerbose(true)
	Debug("shown %d", 2)
	assert.Contains(t, buf.String(), "[DEBUG] shown 2")
}

func TestInfoGatedByVerbose(t *testing.T) {
	defer resetLogger()

	var buf bytes.Buffer
	SetOutput(&buf)

	Info("hidden")
	assert.Empty(t, buf.String())

	SetVerbose(true)
	Info("crawl started")
	assert.Contains(t, buf.String(), "[INFO] crawl started")
}

func TestWarnAndErrorAlwaysEmitted(t *testing.T) {
	defer resetLogger()

	var out, errs bytes.Buffer
	SetOutput(&out)
	SetErrorOutput(&errs)
	SetVerbose(false)

	Warn("slow upstream")
	Error("upsert failed for task %s", "42")

	assert.Contains(t, out.String(), "[WARN] slow upstream")
	assert.Contains(t, errs.String(), "[ERROR] upsert failed for task 42")
}

func TestConcurrentWriters(t *testing.T) {
	defer resetLogger()

	var buf bytes.Buffer
	SetErrorOutput(&buf)

	var wg sync.WaitGroup
	for i := 0; i < 20; i++ {
		wg.Add(1)
		go func(n int) {
			defer wg.Done()
			Error("worker %d", n)
		}(i)
	}
	wg.Wait()

	assert.Equal(t, 20, bytes.Count(buf.Bytes(), []byte("[ERROR]")))
}
