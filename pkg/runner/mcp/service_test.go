package mcp

import (
	"context"
	"encoding/json"
	"errors"
	"testing"
	"time"

	"github.com/mark3labs/mcp-go/mcp"

	"tableflip.dev/routines/pkg/app"
	"tableflip.dev/routines/pkg/filter"
	"tableflip.dev/routines/pkg/routine"
	"tableflip.dev/routines/pkg/store"
)

func newRepo(t *testing.T) *app.Service {
	t.Helper()
	mem := store.NewMemory("", nil)
	seed := routine.Collection{
		{ID: "1", Name: "Run", Datetime: "2024-05-01T07:00"},
		{ID: "2", Name: "Read", Datetime: "2024-05-01T20:00", StudentName: "Ana"},
		{ID: "3", Name: "Piano", Datetime: "2024-05-02T09:00"},
	}
	if err := mem.Save(context.Background(), seed); err != nil {
		t.Fatalf("seed: %v", err)
	}
	return &app.Service{
		Storage: mem,
		Clock:   func() time.Time { return time.UnixMilli(1714546800000) },
	}
}

func TestServiceListRoutinesFiltered(t *testing.T) {
	svc := NewService(newRepo(t), true)

	got, err := svc.ListRoutines(context.Background(), filter.Criteria{DatePrefix: "2024-05-01", NameSubstring: "RE"})
	if err != nil {
		t.Fatalf("ListRoutines failed: %v", err)
	}
	if len(got) != 1 || got[0].Name != "Read" {
		t.Fatalf("expected only Read, got %#v", got)
	}
	if got[0].Day != "2024-05-01" || got[0].StudentName != "Ana" {
		t.Fatalf("unexpected dto %#v", got[0])
	}
}

func TestServiceAddRoutineRespectsStudentSetting(t *testing.T) {
	ctx := context.Background()
	svc := NewService(newRepo(t), false)

	dto, err := svc.AddRoutine(ctx, RoutineOptions{Name: "Swim", Datetime: "2024-05-03T08:00", Student: "Bo"})
	if err != nil {
		t.Fatalf("AddRoutine failed: %v", err)
	}
	if dto.ID == "" {
		t.Fatalf("expected generated id")
	}
	if dto.StudentName != "" {
		t.Fatalf("student should be ignored when disabled, got %q", dto.StudentName)
	}

	if _, err := svc.AddRoutine(ctx, RoutineOptions{Name: " ", Datetime: "2024-05-03T08:00"}); !errors.Is(err, app.ErrInvalid) {
		t.Fatalf("expected ErrInvalid, got %v", err)
	}
}

func TestServiceUpdateRoutineKeepsOmittedFields(t *testing.T) {
	ctx := context.Background()
	svc := NewService(newRepo(t), true)

	dto, err := svc.UpdateRoutine(ctx, "2", RoutineOptions{Name: "Write"})
	if err != nil {
		t.Fatalf("UpdateRoutine failed: %v", err)
	}
	if dto.Name != "Write" || dto.Datetime != "2024-05-01T20:00" || dto.StudentName != "Ana" {
		t.Fatalf("unexpected dto %#v", dto)
	}

	if _, err := svc.UpdateRoutine(ctx, "missing", RoutineOptions{Name: "x"}); !errors.Is(err, app.ErrNotFound) {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}
}

func TestServiceDeleteAndChart(t *testing.T) {
	ctx := context.Background()
	svc := NewService(newRepo(t), true)

	deleted, err := svc.DeleteRoutine(ctx, "3")
	if err != nil || !deleted {
		t.Fatalf("expected delete, got %v %v", deleted, err)
	}
	deleted, err = svc.DeleteRoutine(ctx, "3")
	if err != nil || deleted {
		t.Fatalf("second delete should be a no-op, got %v %v", deleted, err)
	}

	days, err := svc.Chart(ctx)
	if err != nil {
		t.Fatalf("Chart failed: %v", err)
	}
	if len(days) != 1 || days[0] != (DayCount{Day: "2024-05-01", Count: 2}) {
		t.Fatalf("unexpected chart %#v", days)
	}
}

func TestServiceWithoutRepository(t *testing.T) {
	var svc *Service
	if _, err := svc.ListRoutines(context.Background(), filter.Criteria{}); err == nil {
		t.Fatalf("expected error without repository")
	}
}

func TestServerAddRoutineTool(t *testing.T) {
	repo := newRepo(t)
	srv, err := Runner{Routines: repo, StudentName: true}.NewServer()
	if err != nil {
		t.Fatalf("NewServer failed: %v", err)
	}

	msg, _ := json.Marshal(map[string]any{
		"jsonrpc": "2.0",
		"id":      1,
		"method":  "tools/call",
		"params": map[string]any{
			"name": "add_routine",
			"arguments": map[string]any{
				"name":     "Swim",
				"datetime": "2024-05-03T08:00",
				"student":  "Bo",
			},
		},
	})
	resp := srv.HandleMessage(context.Background(), msg)
	if _, isErr := resp.(mcp.JSONRPCError); isErr {
		t.Fatalf("tool call failed: %#v", resp)
	}

	all, _ := repo.List(context.Background())
	if len(all) != 4 || all[3].Name != "Swim" || all[3].StudentName != "Bo" {
		t.Fatalf("expected routine to be added, got %#v", all)
	}
}

func TestRunnerRequiresRepository(t *testing.T) {
	if _, err := (Runner{}).NewServer(); err == nil {
		t.Fatalf("expected error without repository")
	}
}
