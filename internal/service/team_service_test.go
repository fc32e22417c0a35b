package service

import (
	"context"
	"errors"
	"testing"

	"go.uber.org/zap"

	"github.com/spec-kit/docubuddy/internal/domain"
	"github.com/spec-kit/docubuddy/internal/events"
	apperrors "github.com/spec-kit/docubuddy/pkg/util/errorutil"
)

func TestListTeamsBuildsScope(t *testing.T) {
	admin := adminActor()
	repo := newStubTeamRepo(
		&domain.Team{ID: "t1", Name: "Platform", CreatedBy: admin.ID},
		&domain.Team{ID: "t2", Name: "Docs", CreatedBy: admin.ID},
	)
	svc := NewTeamService(repo, events.NewInMemoryDispatcher(), zap.NewNop())

	directory := svc.ListTeams(context.Background(), admin)
	if len(directory.Teams) != 2 || len(directory.Scope) != 2 {
		t.Fatalf("got %d teams, %d scope entries, want 2/2", len(directory.Teams), len(directory.Scope))
	}
	if !directory.Contains("t1") || directory.Contains("t9") {
		t.Fatal("Contains should reflect the visible team set")
	}
}

func TestListTeamsDegradesToEmptyOnError(t *testing.T) {
	repo := newStubTeamRepo()
	repo.listErr = errors.New("connection reset")
	svc := NewTeamService(repo, events.NewInMemoryDispatcher(), zap.NewNop())

	directory := svc.ListTeams(context.Background(), adminActor())
	if len(directory.Teams) != 0 || len(directory.Scope) != 0 {
		t.Fatal("a data access failure should yield an empty directory, not an error")
	}
}

func TestCreateTeamRequiresAdmin(t *testing.T) {
	svc := NewTeamService(newStubTeamRepo(), events.NewInMemoryDispatcher(), zap.NewNop())

	_, err := svc.CreateTeam(context.Background(), memberActor(), "Docs")
	if !apperrors.IsCode(err, "FORBIDDEN") {
		t.Fatalf("err = %v, want FORBIDDEN", err)
	}
}

func TestCreateTeamPublishesEvent(t *testing.T) {
	repo := newStubTeamRepo()
	dispatcher := events.NewInMemoryDispatcher()
	rec := recordEvents(dispatcher, events.EventTeamCreated)
	svc := NewTeamService(repo, dispatcher, zap.NewNop())

	team, err := svc.CreateTeam(context.Background(), adminActor(), "  Docs  ")
	if err != nil {
		t.Fatalf("CreateTeam: %v", err)
	}
	if team.Name != "Docs" {
		t.Fatalf("name = %q, want trimmed %q", team.Name, "Docs")
	}
	if team.ID == "" {
		t.Fatal("created team should carry a server-assigned id")
	}
	if rec.count() != 1 {
		t.Fatalf("got %d team_created events, want 1", rec.count())
	}
}

func TestCreateTeamRejectsEmptyName(t *testing.T) {
	svc := NewTeamService(newStubTeamRepo(), events.NewInMemoryDispatcher(), zap.NewNop())

	_, err := svc.CreateTeam(context.Background(), adminActor(), "   ")
	if !apperrors.IsCode(err, "VALIDATION_FAILED") {
		t.Fatalf("err = %v, want VALIDATION_FAILED", err)
	}
}
