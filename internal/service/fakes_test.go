package service

import (
	"context"
	"sync"

	"ai-roadmap-be/internal/entity"
	"ai-roadmap-be/internal/repository/contract"
	"ai-roadmap-be/internal/repository/specification"
	"ai-roadmap-be/internal/repository/unitofwork"
	"ai-roadmap-be/pkg/embedding"
	"ai-roadmap-be/pkg/vectorindex"

	"github.com/google/uuid"
)

// In-memory stand-ins for the repositories and backends. Each fake records
// calls so tests can assert on the interaction.

type fakeCourseRepo struct {
	findOneResult *entity.Course
	findAllResult []*entity.Course
	findAllSpecs  []specification.Specification
	created       []*entity.Course
	updated       []*entity.Course
	deleted       []uuid.UUID
}

func (f *fakeCourseRepo) Create(ctx context.Context, c *entity.Course) error {
	f.created = append(f.created, c)
	return nil
}

func (f *fakeCourseRepo) Update(ctx context.Context, c *entity.Course) error {
	f.updated = append(f.updated, c)
	return nil
}

func (f *fakeCourseRepo) Delete(ctx context.Context, id uuid.UUID) error {
	f.deleted = append(f.deleted, id)
	return nil
}

func (f *fakeCourseRepo) FindOne(ctx context.Context, specs ...specification.Specification) (*entity.Course, error) {
	return f.findOneResult, nil
}

func (f *fakeCourseRepo) FindAll(ctx context.Context, specs ...specification.Specification) ([]*entity.Course, error) {
	f.findAllSpecs = specs
	return f.findAllResult, nil
}

func (f *fakeCourseRepo) Count(ctx context.Context, specs ...specification.Specification) (int64, error) {
	return int64(len(f.findAllResult)), nil
}

type fakeVideoRepo struct {
	findOneResult *entity.Video
	findAllResult []*entity.Video
	created       []*entity.Video
	updated       []*entity.Video
	deleted       []uuid.UUID
}

func (f *fakeVideoRepo) Create(ctx context.Context, v *entity.Video) error {
	f.created = append(f.created, v)
	return nil
}

func (f *fakeVideoRepo) Update(ctx context.Context, v *entity.Video) error {
	f.updated = append(f.updated, v)
	return nil
}

func (f *fakeVideoRepo) Delete(ctx context.Context, id uuid.UUID) error {
	f.deleted = append(f.deleted, id)
	return nil
}

func (f *fakeVideoRepo) FindOne(ctx context.Context, specs ...specification.Specification) (*entity.Video, error) {
	return f.findOneResult, nil
}

func (f *fakeVideoRepo) FindAll(ctx context.Context, specs ...specification.Specification) ([]*entity.Video, error) {
	return f.findAllResult, nil
}

func (f *fakeVideoRepo) Count(ctx context.Context, specs ...specification.Specification) (int64, error) {
	return int64(len(f.findAllResult)), nil
}

type fakeRoadmapRepo struct {
	findOneResult *entity.Roadmap
	findAllResult []*entity.Roadmap
	created       []*entity.Roadmap
	updated       []*entity.Roadmap
	deleted       []uuid.UUID
	updateErr     error
}

func (f *fakeRoadmapRepo) Create(ctx context.Context, r *entity.Roadmap) error {
	f.created = append(f.created, r)
	return nil
}

func (f *fakeRoadmapRepo) Update(ctx context.Context, r *entity.Roadmap) error {
	if f.updateErr != nil {
		return f.updateErr
	}
	f.updated = append(f.updated, r)
	return nil
}

func (f *fakeRoadmapRepo) Delete(ctx context.Context, id uuid.UUID) error {
	f.deleted = append(f.deleted, id)
	return nil
}

func (f *fakeRoadmapRepo) FindOne(ctx context.Context, specs ...specification.Specification) (*entity.Roadmap, error) {
	return f.findOneResult, nil
}

func (f *fakeRoadmapRepo) FindAll(ctx context.Context, specs ...specification.Specification) ([]*entity.Roadmap, error) {
	return f.findAllResult, nil
}

type statusRecord struct {
	Kind           entity.EntityKind
	EmbeddingKey   string
	SourceSnapshot string
	Status         entity.EmbeddingState
	ErrorMessage   string
	Metrics        contract.CompletionMetrics
}

type fakeStatusRepo struct {
	mu      sync.Mutex
	records map[uuid.UUID]*statusRecord
	deleted []uuid.UUID

	// pre-seeded read result, returned by Find when set
	findResult *entity.EmbeddingStatus
}

func newFakeStatusRepo() *fakeStatusRepo {
	return &fakeStatusRepo{records: make(map[uuid.UUID]*statusRecord)}
}

func (f *fakeStatusRepo) UpsertProcessing(ctx context.Context, kind entity.EntityKind, entityId, ownerId uuid.UUID, embeddingKey string, sourceSnapshot string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.records[entityId] = &statusRecord{
		Kind:           kind,
		EmbeddingKey:   embeddingKey,
		SourceSnapshot: sourceSnapshot,
		Status:         entity.EmbeddingStateProcessing,
	}
	return nil
}

func (f *fakeStatusRepo) MarkCompleted(ctx context.Context, entityId, ownerId uuid.UUID, metrics contract.CompletionMetrics) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	rec := f.records[entityId]
	rec.Status = entity.EmbeddingStateCompleted
	rec.Metrics = metrics
	return nil
}

func (f *fakeStatusRepo) MarkFailed(ctx context.Context, entityId, ownerId uuid.UUID, errorMessage string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	rec := f.records[entityId]
	if rec == nil {
		rec = &statusRecord{}
		f.records[entityId] = rec
	}
	rec.Status = entity.EmbeddingStateFailed
	rec.ErrorMessage = errorMessage
	return nil
}

func (f *fakeStatusRepo) Find(ctx context.Context, entityId, ownerId uuid.UUID) (*entity.EmbeddingStatus, error) {
	if f.findResult != nil {
		return f.findResult, nil
	}
	return &entity.EmbeddingStatus{Status: entity.EmbeddingStateNotFound}, nil
}

func (f *fakeStatusRepo) DeleteByEntity(ctx context.Context, entityId uuid.UUID) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.deleted = append(f.deleted, entityId)
	delete(f.records, entityId)
	return nil
}

func (f *fakeStatusRepo) record(entityId uuid.UUID) *statusRecord {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.records[entityId]
}

type fakeUow struct {
	courses  *fakeCourseRepo
	videos   *fakeVideoRepo
	roadmaps *fakeRoadmapRepo
	statuses *fakeStatusRepo
}

func (f *fakeUow) Begin(ctx context.Context) error { return nil }
func (f *fakeUow) Commit() error                   { return nil }
func (f *fakeUow) Rollback() error                 { return nil }

func (f *fakeUow) CourseRepository() contract.CourseRepository   { return f.courses }
func (f *fakeUow) VideoRepository() contract.VideoRepository     { return f.videos }
func (f *fakeUow) RoadmapRepository() contract.RoadmapRepository { return f.roadmaps }
func (f *fakeUow) EmbeddingStatusRepository() contract.EmbeddingStatusRepository {
	return f.statuses
}

type fakeUowFactory struct {
	uow *fakeUow
}

func newFakeUowFactory() *fakeUowFactory {
	return &fakeUowFactory{uow: &fakeUow{
		courses:  &fakeCourseRepo{},
		videos:   &fakeVideoRepo{},
		roadmaps: &fakeRoadmapRepo{},
		statuses: newFakeStatusRepo(),
	}}
}

func (f *fakeUowFactory) NewUnitOfWork(ctx context.Context) unitofwork.UnitOfWork {
	return f.uow
}

type fakeEmbeddingProvider struct {
	result    *embedding.Result
	err       error
	calls     int
	lastText  string
	lastTask  string
	modelName string
}

func (f *fakeEmbeddingProvider) Generate(ctx context.Context, text string, taskType string) (*embedding.Result, error) {
	f.calls++
	f.lastText = text
	f.lastTask = taskType
	if f.err != nil {
		return nil, f.err
	}
	return f.result, nil
}

func (f *fakeEmbeddingProvider) ModelName() string {
	if f.modelName != "" {
		return f.modelName
	}
	return "fake-embedding-model"
}

func (f *fakeEmbeddingProvider) Healthy(ctx context.Context) bool { return f.err == nil }

type upsertCall struct {
	Namespace string
	Id        string
	Values    []float32
	Metadata  map[string]interface{}
}

type fakeIndexClient struct {
	upserts    []upsertCall
	upsertErr  error
	queryErr   error
	matches    map[string][]vectorindex.Match // keyed by namespace
	queriedKs  []int
	healthy    bool
	queryCount int
}

func (f *fakeIndexClient) Upsert(ctx context.Context, namespace string, id string, values []float32, metadata map[string]interface{}) error {
	if f.upsertErr != nil {
		return f.upsertErr
	}
	f.upserts = append(f.upserts, upsertCall{Namespace: namespace, Id: id, Values: values, Metadata: metadata})
	return nil
}

func (f *fakeIndexClient) Query(ctx context.Context, namespace string, values []float32, topK int) ([]vectorindex.Match, error) {
	f.queryCount++
	f.queriedKs = append(f.queriedKs, topK)
	if f.queryErr != nil {
		return nil, f.queryErr
	}
	return f.matches[namespace], nil
}

func (f *fakeIndexClient) HealthCheck(ctx context.Context) bool { return f.healthy }
