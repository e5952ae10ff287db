package application

import (
	"bytes"
	"context"
	"errors"
	"io"
	"log/slog"
	"sync/atomic"
)

// --- Mock implementations ---

type mockKnowledgeBase struct {
	total      int
	countErr   error
	latest     string
	latestErr  error
	countCalls atomic.Int32
}

func (m *mockKnowledgeBase) CountRecords(_ context.Context) (int, error) {
	m.countCalls.Add(1)
	return m.total, m.countErr
}

func (m *mockKnowledgeBase) LatestModification(_ context.Context) (string, error) {
	return m.latest, m.latestErr
}

type mockSource struct {
	doc string
	err error
}

func (m *mockSource) Fetch(_ context.Context) (string, error) { return m.doc, m.err }

type mockRenderer struct {
	err error
}

func (m *mockRenderer) Render(src string) (string, error) {
	if m.err != nil {
		return "", m.err
	}
	return "<rendered>" + src + "</rendered>", nil
}

var errNetwork = errors.New("dial tcp: connection refused")

func discardLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func bufferLogger() (*slog.Logger, *bytes.Buffer) {
	var buf bytes.Buffer
	return slog.New(slog.NewTextHandler(&buf, nil)), &buf
}
