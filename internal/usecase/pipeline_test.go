package usecase

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"AuthorWatch/internal/domain"
)

type mockFetcher struct {
	mock.Mock
}

func (m *mockFetcher) Fetch(ctx context.Context, url string) (string, error) {
	args := m.Called(ctx, url)
	return args.String(0), args.Error(1)
}

type mockExtractor struct {
	mock.Mock
}

func (m *mockExtractor) Extract(body string) (domain.TitleSet, error) {
	args := m.Called(body)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(domain.TitleSet), args.Error(1)
}

type mockStore struct {
	mock.Mock
}

func (m *mockStore) Load(ctx context.Context, author string) (domain.TitleSet, error) {
	args := m.Called(ctx, author)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(domain.TitleSet), args.Error(1)
}

func (m *mockStore) Append(ctx context.Context, author string, titles []string) error {
	args := m.Called(ctx, author, titles)
	return args.Error(0)
}

type mockNotifier struct {
	mock.Mock
}

func (m *mockNotifier) Notify(ctx context.Context, author string, titles []string) error {
	args := m.Called(ctx, author, titles)
	return args.Error(0)
}

type staticSource struct {
	authors []domain.Author
	err     error
}

func (s staticSource) Authors(context.Context) ([]domain.Author, error) {
	return s.authors, s.err
}

type fixture struct {
	fetcher   *mockFetcher
	extractor *mockExtractor
	store     *mockStore
	notifier  *mockNotifier
	pipeline  *Pipeline
}

func newFixture() *fixture {
	f := &fixture{
		fetcher:   new(mockFetcher),
		extractor: new(mockExtractor),
		store:     new(mockStore),
		notifier:  new(mockNotifier),
	}
	f.pipeline = NewPipeline(PipelineDeps{
		Fetcher:   f.fetcher,
		Extractor: f.extractor,
		Store:     f.store,
		Notifier:  f.notifier,
	})
	return f
}

func (f *fixture) assertExpectations(t *testing.T) {
	f.fetcher.AssertExpectations(t)
	f.extractor.AssertExpectations(t)
	f.store.AssertExpectations(t)
	f.notifier.AssertExpectations(t)
}

var jane = domain.Author{Name: "Jane Doe", CatalogURL: "https://example.com/jane"}

func TestProcessAuthorNewTitle(t *testing.T) {
	f := newFixture()
	ctx := context.Background()

	f.store.On("Load", ctx, "Jane Doe").Return(domain.NewTitleSet("Book X", "Book Y"), nil)
	f.fetcher.On("Fetch", ctx, jane.CatalogURL).Return("<html/>", nil)
	f.extractor.On("Extract", "<html/>").Return(domain.NewTitleSet("Book X", "Book Y", "Book Z"), nil)
	f.store.On("Append", ctx, "Jane Doe", []string{"Book Z"}).Return(nil)
	f.notifier.On("Notify", ctx, "Jane Doe", []string{"Book Z"}).Return(nil)

	report, err := f.pipeline.ProcessAuthor(ctx, jane)
	require.NoError(t, err)
	assert.Equal(t, 3, report.Listed)
	assert.Equal(t, []string{"Book Z"}, report.NewTitles)
	assert.True(t, report.HasNew())
	f.assertExpectations(t)
}

func TestProcessAuthorFirstRunReportsEverything(t *testing.T) {
	f := newFixture()
	ctx := context.Background()

	f.store.On("Load", ctx, "Jane Doe").Return(domain.NewTitleSet(), nil)
	f.fetcher.On("Fetch", ctx, jane.CatalogURL).Return("page", nil)
	f.extractor.On("Extract", "page").Return(domain.NewTitleSet("Book B", "Book A"), nil)
	f.store.On("Append", ctx, "Jane Doe", []string{"Book A", "Book B"}).Return(nil)
	f.notifier.On("Notify", ctx, "Jane Doe", []string{"Book A", "Book B"}).Return(nil)

	report, err := f.pipeline.ProcessAuthor(ctx, jane)
	require.NoError(t, err)
	assert.Equal(t, []string{"Book A", "Book B"}, report.NewTitles)
	f.assertExpectations(t)
}

func TestProcessAuthorNothingNew(t *testing.T) {
	f := newFixture()
	ctx := context.Background()

	f.store.On("Load", ctx, "Jane Doe").Return(domain.NewTitleSet("Book A"), nil)
	f.fetcher.On("Fetch", ctx, jane.CatalogURL).Return("page", nil)
	f.extractor.On("Extract", "page").Return(domain.NewTitleSet("Book A"), nil)

	report, err := f.pipeline.ProcessAuthor(ctx, jane)
	require.NoError(t, err)
	assert.False(t, report.HasNew())
	f.store.AssertNotCalled(t, "Append", mock.Anything, mock.Anything, mock.Anything)
	f.notifier.AssertNotCalled(t, "Notify", mock.Anything, mock.Anything, mock.Anything)
	f.assertExpectations(t)
}

func TestProcessAuthorFetchFailureSkipsStoreWrites(t *testing.T) {
	f := newFixture()
	ctx := context.Background()
	boom := errors.New("connection reset")

	f.store.On("Load", ctx, "Jane Doe").Return(domain.NewTitleSet(), nil)
	f.fetcher.On("Fetch", ctx, jane.CatalogURL).Return("", boom)

	_, err := f.pipeline.ProcessAuthor(ctx, jane)
	require.ErrorIs(t, err, boom)
	assert.Contains(t, err.Error(), "Jane Doe")
	f.extractor.AssertNotCalled(t, "Extract", mock.Anything)
	f.store.AssertNotCalled(t, "Append", mock.Anything, mock.Anything, mock.Anything)
	f.assertExpectations(t)
}

func TestProcessAuthorAppendFailureSkipsNotification(t *testing.T) {
	f := newFixture()
	ctx := context.Background()
	diskFull := errors.New("no space left on device")

	f.store.On("Load", ctx, "Jane Doe").Return(domain.NewTitleSet(), nil)
	f.fetcher.On("Fetch", ctx, jane.CatalogURL).Return("page", nil)
	f.extractor.On("Extract", "page").Return(domain.NewTitleSet("Book A"), nil)
	f.store.On("Append", ctx, "Jane Doe", []string{"Book A"}).Return(diskFull)

	_, err := f.pipeline.ProcessAuthor(ctx, jane)
	require.ErrorIs(t, err, diskFull)
	f.notifier.AssertNotCalled(t, "Notify", mock.Anything, mock.Anything, mock.Anything)
	f.assertExpectations(t)
}

func TestProcessAuthorMisconfigured(t *testing.T) {
	_, err := NewPipeline(PipelineDeps{}).ProcessAuthor(context.Background(), jane)
	assert.Error(t, err)
}

func TestRunStopsAtFirstFailingAuthor(t *testing.T) {
	f := newFixture()
	ctx := context.Background()
	john := domain.Author{Name: "John Roe", CatalogURL: "https://example.com/john"}
	last := domain.Author{Name: "Last One", CatalogURL: "https://example.com/last"}
	boom := errors.New("timeout")

	f.store.On("Load", ctx, "Jane Doe").Return(domain.NewTitleSet("Book A"), nil)
	f.fetcher.On("Fetch", ctx, jane.CatalogURL).Return("jane", nil)
	f.extractor.On("Extract", "jane").Return(domain.NewTitleSet("Book A"), nil)
	f.store.On("Load", ctx, "John Roe").Return(nil, boom)

	err := f.pipeline.Run(ctx, staticSource{authors: []domain.Author{jane, john, last}})
	require.ErrorIs(t, err, boom)
	f.store.AssertNotCalled(t, "Load", ctx, "Last One")
	f.fetcher.AssertNotCalled(t, "Fetch", ctx, last.CatalogURL)
	f.assertExpectations(t)
}

func TestRunSourceFailure(t *testing.T) {
	f := newFixture()
	boom := errors.New("missing authors.csv")

	err := f.pipeline.Run(context.Background(), staticSource{err: boom})
	assert.ErrorIs(t, err, boom)
	assert.Error(t, f.pipeline.Run(context.Background(), nil))
}

type countingDriver struct {
	passes int
}

func (d *countingDriver) Run(ctx context.Context, job func(context.Context, time.Time) error) error {
	for i := 0; i < d.passes; i++ {
		if err := job(ctx, time.Now()); err != nil {
			return err
		}
	}
	return nil
}

func TestSchedulerRepeatsPasses(t *testing.T) {
	f := newFixture()
	ctx := context.Background()

	f.store.On("Load", ctx, "Jane Doe").Return(domain.NewTitleSet("Book A"), nil).Times(3)
	f.fetcher.On("Fetch", ctx, jane.CatalogURL).Return("page", nil).Times(3)
	f.extractor.On("Extract", "page").Return(domain.NewTitleSet("Book A"), nil).Times(3)

	sched := NewScheduler(&countingDriver{passes: 3}, f.pipeline, staticSource{authors: []domain.Author{jane}})
	require.NoError(t, sched.Run(ctx))
	f.assertExpectations(t)
}

func TestSchedulerWithoutDriverRunsOnce(t *testing.T) {
	f := newFixture()
	ctx := context.Background()

	f.store.On("Load", ctx, "Jane Doe").Return(domain.NewTitleSet("Book A"), nil).Once()
	f.fetcher.On("Fetch", ctx, jane.CatalogURL).Return("page", nil).Once()
	f.extractor.On("Extract", "page").Return(domain.NewTitleSet("Book A"), nil).Once()

	require.NoError(t, NewScheduler(nil, f.pipeline, staticSource{authors: []domain.Author{jane}}).Run(ctx))
	f.assertExpectations(t)
	assert.Error(t, NewScheduler(nil, nil, nil).Run(ctx))
}
