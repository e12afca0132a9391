package dashboard

import (
	"context"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/talentbridge/dashboard-gateway/config"
	apperrors "github.com/talentbridge/dashboard-gateway/internal/errors"
	gwtesting "github.com/talentbridge/dashboard-gateway/internal/testing"
	"github.com/talentbridge/dashboard-gateway/model"
	"github.com/talentbridge/dashboard-gateway/services"
)

// stubFetcher serves canned collections without network I/O.
type stubFetcher struct {
	collections map[string][]model.Record
	err         error
}

func (f *stubFetcher) FetchCollection(_ context.Context, token string, settings *config.CollectionSettings) ([]model.Record, error) {
	if token == "" {
		return nil, apperrors.ErrAuthRequired
	}
	if f.err != nil {
		return nil, f.err
	}
	return f.collections[settings.Name], nil
}

func (f *stubFetcher) FetchEnrollmentSources(ctx context.Context, token string) ([]model.Record, []model.Record, error) {
	sessions, err := f.FetchCollection(ctx, token, &config.CollectionSettings{Name: config.CollectionSessions})
	if err != nil {
		return nil, nil, err
	}
	classrooms, err := f.FetchCollection(ctx, token, &config.CollectionSettings{Name: config.CollectionClassrooms})
	if err != nil {
		return nil, nil, err
	}
	return sessions, classrooms, nil
}

func newTestService(fetcher services.Fetcher) *Service {
	return NewService(fetcher, config.DefaultCollections())
}

func refreshCompanies(t *testing.T, service *Service, records []model.Record) {
	t.Helper()
	fetcher := &stubFetcher{collections: map[string][]model.Record{
		config.CollectionCompanies: records,
	}}
	service.fetcher = fetcher
	_, err := service.Refresh(context.Background(), "tok", config.CollectionCompanies)
	require.NoError(t, err)
}

func TestRefresh_StoresNormalizedSnapshot(t *testing.T) {
	raw := gwtesting.Companies(5)
	raw = append(raw, model.Record{"name": "no id"}) // dropped by the normalizer

	fetcher := &stubFetcher{collections: map[string][]model.Record{
		config.CollectionCompanies: raw,
	}}
	service := newTestService(fetcher)

	count, err := service.Refresh(context.Background(), "tok", config.CollectionCompanies)
	require.NoError(t, err)
	assert.Equal(t, 5, count, "only usable records should be counted")

	result, err := service.List(config.CollectionCompanies, services.NewQueryState(gwtesting.CompanySettings()))
	require.NoError(t, err)
	assert.Equal(t, 5, result.Total)
}

func TestRefresh_UnknownCollection(t *testing.T) {
	service := newTestService(&stubFetcher{})

	_, err := service.Refresh(context.Background(), "tok", "nope")
	assert.ErrorIs(t, err, apperrors.ErrCollectionNotFound)
}

func TestRefresh_NothingUsableIsDistinctFromNoData(t *testing.T) {
	// Non-empty raw input where nothing survives normalization: the
	// friendlier empty-result condition, not the malformed-response one.
	fetcher := &stubFetcher{collections: map[string][]model.Record{
		config.CollectionCompanies: {{"name": "no id"}, {"id": "", "name": "blank"}},
	}}
	service := newTestService(fetcher)

	count, err := service.Refresh(context.Background(), "tok", config.CollectionCompanies)
	assert.Equal(t, 0, count)
	assert.ErrorIs(t, err, apperrors.ErrNoUsableRecords)
	assert.NotErrorIs(t, err, apperrors.ErrNoData)

	// The snapshot is still replaced, so listings degrade to empty.
	result, err := service.List(config.CollectionCompanies, services.NewQueryState(gwtesting.CompanySettings()))
	require.NoError(t, err)
	assert.Equal(t, 0, result.Total)
	assert.Equal(t, 0, result.TotalPages)
}

func TestRefresh_NoDataReplacesSnapshot(t *testing.T) {
	service := newTestService(&stubFetcher{})
	refreshCompanies(t, service, gwtesting.Companies(3))

	service.fetcher = &stubFetcher{err: apperrors.NewNoDataError(config.CollectionCompanies, "error envelope")}
	_, err := service.Refresh(context.Background(), "tok", config.CollectionCompanies)
	assert.ErrorIs(t, err, apperrors.ErrNoData)

	result, err := service.List(config.CollectionCompanies, services.NewQueryState(gwtesting.CompanySettings()))
	require.NoError(t, err)
	assert.Equal(t, 0, result.Total, "no-data refresh should clear the stale snapshot")
}

func TestRefresh_AuthMissingShortCircuits(t *testing.T) {
	service := newTestService(&stubFetcher{collections: map[string][]model.Record{
		config.CollectionCompanies: gwtesting.Companies(3),
	}})

	_, err := service.Refresh(context.Background(), "", config.CollectionCompanies)
	assert.ErrorIs(t, err, apperrors.ErrAuthRequired)

	_, err = service.List(config.CollectionCompanies, services.NewQueryState(gwtesting.CompanySettings()))
	assert.ErrorIs(t, err, apperrors.ErrSnapshotMissing, "failed auth should not have produced a snapshot")
}

func TestList_RequiresSnapshot(t *testing.T) {
	service := newTestService(&stubFetcher{})

	_, err := service.List(config.CollectionCompanies, services.NewQueryState(gwtesting.CompanySettings()))
	assert.ErrorIs(t, err, apperrors.ErrSnapshotMissing)
}

func TestList_CompaniesSearchScenario(t *testing.T) {
	// 25 companies; searching "tech" case-insensitively matches the
	// TechNova, CoreTech Labs, and TECHGRID name families.
	service := newTestService(&stubFetcher{})
	refreshCompanies(t, service, gwtesting.Companies(25))

	settings := gwtesting.CompanySettings()
	state := services.NewQueryState(settings).WithPage(3).WithSearch("tech")

	result, err := service.List(config.CollectionCompanies, state)
	require.NoError(t, err)

	assert.Equal(t, 15, result.Total, "three of every five generated names contain 'tech'")
	assert.Equal(t, 1, result.Page, "changing the search term must land the caller back on page 1")
	for _, record := range result.Records {
		name, _ := record.GetString("name")
		assert.Contains(t, strings.ToLower(name), "tech")
	}

	// Narrow further with a categorical filter.
	narrowed, err := service.List(config.CollectionCompanies, state.WithFilter("type", "team_tech_professional"))
	require.NoError(t, err)
	assert.Less(t, narrowed.Total, result.Total)
	for _, record := range narrowed.Records {
		companyType, _ := record.GetString("type")
		assert.Equal(t, "team_tech_professional", companyType)
	}
}

func TestList_ClampsStalePage(t *testing.T) {
	service := newTestService(&stubFetcher{})
	refreshCompanies(t, service, gwtesting.Companies(25))

	settings := gwtesting.CompanySettings()
	state := services.NewQueryState(settings)
	state.Page = 9 // stale page from before the set shrank

	result, err := service.List(config.CollectionCompanies, state)
	require.NoError(t, err)
	assert.Equal(t, 3, result.Page, "page should clamp to the last available page")
	assert.NotEmpty(t, result.Records)
}

func TestList_PagesPartitionTheSet(t *testing.T) {
	service := newTestService(&stubFetcher{})
	refreshCompanies(t, service, gwtesting.Companies(23))

	settings := gwtesting.CompanySettings()
	var pages [][]model.Record
	for page := 1; page <= 3; page++ {
		state := services.NewQueryState(settings).WithPage(page)
		result, err := service.List(config.CollectionCompanies, state)
		require.NoError(t, err)
		assert.Equal(t, 23, result.Total)
		assert.Equal(t, 3, result.TotalPages)
		pages = append(pages, result.Records)
	}

	gwtesting.AssertPageWindows(t, pages, 23)
}

func TestRefreshEnrollment_BuildsStudentAggregate(t *testing.T) {
	fetcher := &stubFetcher{collections: map[string][]model.Record{
		config.CollectionSessions: {
			gwtesting.Session("st1", "Ada Lovelace", "completed", "Algorithms", 0),
			gwtesting.Session("st1", "Ada Lovelace", "scheduled", "Databases", 0),
			gwtesting.Session("st2", "Grace Hopper", "completed", "Compilers", 0),
		},
		config.CollectionClassrooms: {
			gwtesting.Session("st1", "Ada Lovelace", "completed", "Mathematics", 0),
		},
	}}
	service := newTestService(fetcher)

	count, err := service.RefreshEnrollment(context.Background(), "tok")
	require.NoError(t, err)
	assert.Equal(t, 2, count)

	settings, err := service.Settings(config.CollectionStudents)
	require.NoError(t, err)

	result, err := service.EnrolledStudents(services.NewQueryState(settings))
	require.NoError(t, err)
	require.Equal(t, 2, result.Total)

	// Default sort is name ascending, so Ada comes first.
	ada := result.Records[0]
	total, _ := ada.GetFloat("totalSessions")
	completed, _ := ada.GetFloat("completedSessions")
	rate, _ := ada.GetFloat("attendanceRate")
	assert.Equal(t, 3.0, total)
	assert.Equal(t, 2.0, completed)
	assert.Equal(t, 67.0, rate)
}

func TestRefresh_StudentsCollectionDelegatesToEnrollment(t *testing.T) {
	fetcher := &stubFetcher{collections: map[string][]model.Record{
		config.CollectionSessions: {
			gwtesting.Session("st1", "Ada Lovelace", "completed", "Algorithms", 0),
		},
		config.CollectionClassrooms: {},
	}}
	service := newTestService(fetcher)

	count, err := service.Refresh(context.Background(), "tok", config.CollectionStudents)
	require.NoError(t, err)
	assert.Equal(t, 1, count)
}
