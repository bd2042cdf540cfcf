package main

import (
	"context"
	"io"
	"log/slog"
	"path/filepath"
	"strings"
	"testing"

	"github.com/example/room-booking/internal/booking"
	"github.com/example/room-booking/internal/config"
	"github.com/example/room-booking/internal/events"
	"github.com/example/room-booking/internal/persistence/memory"
	"github.com/example/room-booking/internal/persistence/sqlite"
	"github.com/example/room-booking/internal/persistence/writebehind"
)

func discardLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func TestOpenStoreMemory(t *testing.T) {
	s, err := openStore(context.Background(), config.Config{Store: config.StoreMemory}, discardLogger())
	if err != nil {
		t.Fatalf("openStore returned error: %v", err)
	}
	defer s.close()

	if _, ok := s.adapter.(*memory.Storage); !ok {
		t.Fatalf("expected memory storage, got %T", s.adapter)
	}
	if s.health != nil {
		t.Fatalf("memory store should not register a health check")
	}
}

func TestOpenStoreSQLitePersistsAcrossReopen(t *testing.T) {
	ctx := context.Background()
	cfg := config.Config{Store: config.StoreSQLite, SQLiteDSN: filepath.Join(t.TempDir(), "data", "roombook.db")}

	s, err := openStore(ctx, cfg, discardLogger())
	if err != nil {
		t.Fatalf("openStore returned error: %v", err)
	}
	if _, ok := s.adapter.(*sqlite.Store); !ok {
		t.Fatalf("expected sqlite store, got %T", s.adapter)
	}
	if err := s.health(ctx); err != nil {
		t.Fatalf("health check failed: %v", err)
	}
	rooms := []booking.Room{{ID: "r1", Block: "Block A", RoomID: "A101", Capacity: 30, RoomType: booking.RoomTypeClassroom}}
	if err := s.adapter.PersistRooms(ctx, rooms); err != nil {
		t.Fatalf("persist rooms: %v", err)
	}
	if err := s.close(); err != nil {
		t.Fatalf("close: %v", err)
	}

	reopened, err := openStore(ctx, cfg, discardLogger())
	if err != nil {
		t.Fatalf("reopen returned error: %v", err)
	}
	defer reopened.close()
	loaded, err := reopened.adapter.LoadRooms(ctx)
	if err != nil {
		t.Fatalf("load rooms: %v", err)
	}
	if len(loaded) != 1 || loaded[0].RoomID != "A101" {
		t.Fatalf("unexpected rooms after reopen: %+v", loaded)
	}
}

func TestOpenStoreAsyncFlushesOnClose(t *testing.T) {
	ctx := context.Background()
	cfg := config.Config{Store: config.StoreSQLite, SQLiteDSN: filepath.Join(t.TempDir(), "roombook.db"), AsyncPersist: true}

	s, err := openStore(ctx, cfg, discardLogger())
	if err != nil {
		t.Fatalf("openStore returned error: %v", err)
	}
	if _, ok := s.adapter.(*writebehind.Adapter); !ok {
		t.Fatalf("expected write-behind adapter, got %T", s.adapter)
	}
	if err := s.adapter.PersistRooms(ctx, []booking.Room{{ID: "r1", Block: "Block B", RoomID: "B201", Capacity: 25}}); err != nil {
		t.Fatalf("persist rooms: %v", err)
	}
	if err := s.close(); err != nil {
		t.Fatalf("close: %v", err)
	}

	cfg.AsyncPersist = false
	reopened, err := openStore(ctx, cfg, discardLogger())
	if err != nil {
		t.Fatalf("reopen returned error: %v", err)
	}
	defer reopened.close()
	loaded, err := reopened.adapter.LoadRooms(ctx)
	if err != nil {
		t.Fatalf("load rooms: %v", err)
	}
	if len(loaded) != 1 {
		t.Fatalf("expected the pending snapshot to be written on close, got %+v", loaded)
	}
}

func TestOpenStoreRejectsUnknownKind(t *testing.T) {
	_, err := openStore(context.Background(), config.Config{Store: "cassandra"}, discardLogger())
	if err == nil || !strings.Contains(err.Error(), "cassandra") {
		t.Fatalf("expected unsupported store error, got %v", err)
	}
}

func TestOpenPublisherDisabled(t *testing.T) {
	publisher, closeFn, err := openPublisher(config.Config{}, discardLogger())
	if err != nil {
		t.Fatalf("openPublisher returned error: %v", err)
	}
	defer closeFn()
	if _, ok := publisher.(events.Nop); !ok {
		t.Fatalf("expected no-op publisher, got %T", publisher)
	}
}
