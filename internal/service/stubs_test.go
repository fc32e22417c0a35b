package service

import (
	"context"
	"fmt"
	"io"
	"sync"
	"time"

	"github.com/spec-kit/docubuddy/internal/domain"
	"github.com/spec-kit/docubuddy/internal/events"
	"github.com/spec-kit/docubuddy/internal/repository"
)

func adminActor() *domain.Actor {
	return &domain.Actor{ID: "admin-1", Email: "admin@example.com", Role: domain.RoleAdmin}
}

func memberActor() *domain.Actor {
	return &domain.Actor{ID: "member-1", Email: "member@example.com", Role: domain.RoleTeamMember}
}

func strptr(s string) *string { return &s }

type stubTeamRepo struct {
	teams   map[string]*domain.Team
	listErr error
	created []*domain.Team
}

func newStubTeamRepo(teams ...*domain.Team) *stubTeamRepo {
	repo := &stubTeamRepo{teams: map[string]*domain.Team{}}
	for _, team := range teams {
		repo.teams[team.ID] = team
	}
	return repo
}

func (r *stubTeamRepo) Create(ctx context.Context, team *domain.Team) error {
	team.ID = fmt.Sprintf("team-%d", len(r.teams)+1)
	team.CreatedAt = time.Now()
	r.teams[team.ID] = team
	r.created = append(r.created, team)
	return nil
}

func (r *stubTeamRepo) GetByID(ctx context.Context, id string) (*domain.Team, error) {
	team, ok := r.teams[id]
	if !ok {
		return nil, repository.ErrNoRows
	}
	return team, nil
}

func (r *stubTeamRepo) ListByCreator(ctx context.Context, creatorID string) ([]domain.Team, error) {
	if r.listErr != nil {
		return nil, r.listErr
	}
	var out []domain.Team
	for _, team := range r.teams {
		if team.CreatedBy == creatorID {
			out = append(out, *team)
		}
	}
	return out, nil
}

func (r *stubTeamRepo) ListByMember(ctx context.Context, userID string) ([]domain.Team, error) {
	if r.listErr != nil {
		return nil, r.listErr
	}
	var out []domain.Team
	for _, team := range r.teams {
		out = append(out, *team)
	}
	return out, nil
}

type stubMembershipRepo struct {
	memberships map[string]*domain.Membership
	nextID      int
}

func newStubMembershipRepo() *stubMembershipRepo {
	return &stubMembershipRepo{memberships: map[string]*domain.Membership{}}
}

func (r *stubMembershipRepo) Create(ctx context.Context, membership *domain.Membership) error {
	r.nextID++
	membership.ID = fmt.Sprintf("m-%d", r.nextID)
	membership.AddedAt = time.Now()
	r.memberships[membership.ID] = membership
	return nil
}

func (r *stubMembershipRepo) Delete(ctx context.Context, id string) error {
	if _, ok := r.memberships[id]; !ok {
		return repository.ErrNoRows
	}
	delete(r.memberships, id)
	return nil
}

func (r *stubMembershipRepo) Exists(ctx context.Context, teamID, userID string) (bool, error) {
	for _, m := range r.memberships {
		if m.TeamID == teamID && m.UserID == userID {
			return true, nil
		}
	}
	return false, nil
}

func (r *stubMembershipRepo) ListByTeam(ctx context.Context, teamID string) ([]domain.Membership, error) {
	var out []domain.Membership
	for _, m := range r.memberships {
		if m.TeamID == teamID {
			out = append(out, *m)
		}
	}
	return out, nil
}

type stubProfileRepo struct {
	byID    map[string]*domain.Actor
	byEmail map[string]*domain.Actor
	hashes  map[string]string
}

func newStubProfileRepo(actors ...*domain.Actor) *stubProfileRepo {
	repo := &stubProfileRepo{
		byID:    map[string]*domain.Actor{},
		byEmail: map[string]*domain.Actor{},
		hashes:  map[string]string{},
	}
	for _, actor := range actors {
		repo.byID[actor.ID] = actor
		repo.byEmail[actor.Email] = actor
	}
	return repo
}

func (r *stubProfileRepo) Create(ctx context.Context, actor *domain.Actor, hash string) error {
	actor.ID = fmt.Sprintf("u-%d", len(r.byID)+1)
	r.byID[actor.ID] = actor
	r.byEmail[actor.Email] = actor
	r.hashes[actor.Email] = hash
	return nil
}

func (r *stubProfileRepo) GetByID(ctx context.Context, id string) (*domain.Actor, error) {
	actor, ok := r.byID[id]
	if !ok {
		return nil, repository.ErrNoRows
	}
	return actor, nil
}

func (r *stubProfileRepo) GetByEmail(ctx context.Context, email string) (*domain.Actor, error) {
	actor, ok := r.byEmail[email]
	if !ok {
		return nil, repository.ErrNoRows
	}
	return actor, nil
}

func (r *stubProfileRepo) GetCredentialsByEmail(ctx context.Context, email string) (*domain.Actor, string, error) {
	actor, ok := r.byEmail[email]
	if !ok {
		return nil, "", repository.ErrNoRows
	}
	return actor, r.hashes[email], nil
}

func (r *stubProfileRepo) Search(ctx context.Context, query string, limit int) ([]domain.Actor, error) {
	var out []domain.Actor
	for _, actor := range r.byID {
		if len(out) == limit {
			break
		}
		out = append(out, *actor)
	}
	return out, nil
}

func (r *stubProfileRepo) ListByIDs(ctx context.Context, ids []string) ([]domain.Actor, error) {
	var out []domain.Actor
	for _, id := range ids {
		if actor, ok := r.byID[id]; ok {
			out = append(out, *actor)
		}
	}
	return out, nil
}

type stubDocumentRepo struct {
	docs      map[string]*domain.Document
	views     []domain.DocumentView
	nextID    int
	createErr error
	listCalls int
}

func newStubDocumentRepo() *stubDocumentRepo {
	return &stubDocumentRepo{docs: map[string]*domain.Document{}}
}

func (r *stubDocumentRepo) Create(ctx context.Context, doc *domain.Document) error {
	if r.createErr != nil {
		return r.createErr
	}
	r.nextID++
	doc.ID = fmt.Sprintf("doc-%d", r.nextID)
	doc.UploadDate = time.Now()
	copied := *doc
	r.docs[doc.ID] = &copied
	return nil
}

func (r *stubDocumentRepo) GetByID(ctx context.Context, id string) (*domain.Document, error) {
	doc, ok := r.docs[id]
	if !ok {
		return nil, repository.ErrNoRows
	}
	copied := *doc
	return &copied, nil
}

func (r *stubDocumentRepo) ListAll(ctx context.Context) ([]domain.DocumentView, error) {
	r.listCalls++
	return r.views, nil
}

func (r *stubDocumentRepo) ListByTeams(ctx context.Context, teamIDs []string) ([]domain.DocumentView, error) {
	r.listCalls++
	allowed := map[string]bool{}
	for _, id := range teamIDs {
		allowed[id] = true
	}
	var out []domain.DocumentView
	for _, view := range r.views {
		if view.TeamID != nil && allowed[*view.TeamID] {
			out = append(out, view)
		}
	}
	return out, nil
}

func (r *stubDocumentRepo) UpdateStatus(ctx context.Context, id string, status domain.DocumentStatus) error {
	doc, ok := r.docs[id]
	if !ok {
		return repository.ErrNoRows
	}
	doc.Status = status
	return nil
}

func (r *stubDocumentRepo) Delete(ctx context.Context, id string) error {
	if _, ok := r.docs[id]; !ok {
		return repository.ErrNoRows
	}
	delete(r.docs, id)
	return nil
}

type stubBlobStore struct {
	mu        sync.Mutex
	uploads   []string
	removed   []string
	uploadErr error
	removeErr error
}

func (s *stubBlobStore) Upload(ctx context.Context, key string, contents io.Reader) (string, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.uploadErr != nil {
		return "", s.uploadErr
	}
	s.uploads = append(s.uploads, key)
	return key, nil
}

func (s *stubBlobStore) Remove(ctx context.Context, keys []string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.removed = append(s.removed, keys...)
	return s.removeErr
}

func (s *stubBlobStore) EnsureBucket(ctx context.Context) error { return nil }

type stubWorkflowStore struct {
	selections map[string]string
	getErr     error
}

func newStubWorkflowStore() *stubWorkflowStore {
	return &stubWorkflowStore{selections: map[string]string{}}
}

func (s *stubWorkflowStore) GetSelectedTeam(ctx context.Context, actorID string) (string, error) {
	if s.getErr != nil {
		return "", s.getErr
	}
	return s.selections[actorID], nil
}

func (s *stubWorkflowStore) SaveSelectedTeam(ctx context.Context, actorID, teamID string) error {
	s.selections[actorID] = teamID
	return nil
}

func (s *stubWorkflowStore) ClearSelectedTeam(ctx context.Context, actorID string) error {
	delete(s.selections, actorID)
	return nil
}

type eventRecorder struct {
	mu     sync.Mutex
	events []events.Event
}

func recordEvents(dispatcher events.Dispatcher, types ...events.EventType) *eventRecorder {
	rec := &eventRecorder{}
	for _, eventType := range types {
		dispatcher.Subscribe(eventType, func(ctx context.Context, event events.Event) error {
			rec.mu.Lock()
			defer rec.mu.Unlock()
			rec.events = append(rec.events, event)
			return nil
		})
	}
	return rec
}

func (r *eventRecorder) count() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return len(r.events)
}
