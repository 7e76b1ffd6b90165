package repository

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	internaldb "pinya-planner/internal/db"
	"pinya-planner/internal/domain"
)

func setupLayoutRepo(t *testing.T) *LayoutRepo {
	t.Helper()
	writeDB, _ := internaldb.OpenTestSQLite(t)
	return NewLayoutRepo(writeDB)
}

func layoutStrPtr(s string) *string { return &s }

func testLayout(name, folder string) *domain.Layout {
	return &domain.Layout{
		Name:        name,
		Folder:      folder,
		CastellType: "4d7",
		Positions: []domain.RoleInstance{
			{ID: "baix_1", Label: "Baix", X: 400, Y: 100},
			{ID: "crossa_1", Label: "Crossa", X: 380, Y: 160, Rotation: 45},
		},
	}
}

func TestLayoutRepo_SaveAndGet(t *testing.T) {
	repo := setupLayoutRepo(t)
	ctx := context.Background()

	report, err := repo.Save(ctx, testLayout("Diada", "plaça"))
	require.NoError(t, err)
	assert.False(t, report.Updated)
	require.NotNil(t, report.Layout)
	assert.NotEmpty(t, report.Layout.ID)
	assert.Empty(t, report.Layout.PublishedDates)

	got, err := repo.GetByID(ctx, report.Layout.ID)
	require.NoError(t, err)
	assert.Equal(t, "Diada", got.Name)
	assert.Equal(t, "plaça", got.Folder)
	require.Len(t, got.Positions, 2)
	assert.Equal(t, "Baix", got.Positions[0].Label)
	assert.Equal(t, 45, got.Positions[1].Rotation)
}

func TestLayoutRepo_SaveUpsertsByNameAndFolder(t *testing.T) {
	repo := setupLayoutRepo(t)
	ctx := context.Background()

	first, err := repo.Save(ctx, testLayout("Diada", ""))
	require.NoError(t, err)

	second := testLayout("Diada", "")
	second.Positions = second.Positions[:1]
	report, err := repo.Save(ctx, second)
	require.NoError(t, err)
	assert.True(t, report.Updated)
	assert.Equal(t, first.Layout.ID, report.Layout.ID, "same (name, folder) keeps one record")

	all, err := repo.List(ctx, nil)
	require.NoError(t, err)
	require.Len(t, all, 1)
	assert.Len(t, all[0].Positions, 1, "content matches the second save")
}

func TestLayoutRepo_SaveSameNameDifferentFolder(t *testing.T) {
	repo := setupLayoutRepo(t)
	ctx := context.Background()

	_, err := repo.Save(ctx, testLayout("Diada", "assaig"))
	require.NoError(t, err)
	report, err := repo.Save(ctx, testLayout("Diada", "plaça"))
	require.NoError(t, err)
	assert.False(t, report.Updated)

	all, err := repo.List(ctx, nil)
	require.NoError(t, err)
	assert.Len(t, all, 2)
}

func TestLayoutRepo_SavePreservesPublication(t *testing.T) {
	repo := setupLayoutRepo(t)
	ctx := context.Background()

	report, err := repo.Save(ctx, testLayout("Diada", ""))
	require.NoError(t, err)
	require.NoError(t, repo.SetPublishedDates(ctx, report.Layout.ID, []string{domain.GlobalSentinel}))

	_, err = repo.Save(ctx, testLayout("Diada", ""))
	require.NoError(t, err)

	got, err := repo.GetByID(ctx, report.Layout.ID)
	require.NoError(t, err)
	assert.Equal(t, []string{domain.GlobalSentinel}, got.PublishedDates)
}

func TestLayoutRepo_UpdateRequiresIdentifier(t *testing.T) {
	repo := setupLayoutRepo(t)
	ctx := context.Background()

	_, err := repo.Update(ctx, testLayout("Diada", ""))
	require.Error(t, err)
	var notFound *domain.NotFoundError
	assert.ErrorAs(t, err, &notFound)
}

func TestLayoutRepo_Update(t *testing.T) {
	repo := setupLayoutRepo(t)
	ctx := context.Background()

	report, err := repo.Save(ctx, testLayout("Diada", ""))
	require.NoError(t, err)

	l := report.Layout
	l.Positions[0].X = 123
	updated, err := repo.Update(ctx, l)
	require.NoError(t, err)
	assert.Equal(t, 123.0, updated.Positions[0].X)

	t.Run("unknown id", func(t *testing.T) {
		missing := testLayout("Altra", "")
		missing.ID = "no-such-id"
		_, err := repo.Update(ctx, missing)
		var notFound *domain.NotFoundError
		assert.ErrorAs(t, err, &notFound)
	})
}

func TestLayoutRepo_Delete(t *testing.T) {
	repo := setupLayoutRepo(t)
	ctx := context.Background()

	report, err := repo.Save(ctx, testLayout("Diada", ""))
	require.NoError(t, err)
	require.NoError(t, repo.SetPublishedDates(ctx, report.Layout.ID, []string{domain.GlobalSentinel}))

	require.NoError(t, repo.Delete(ctx, report.Layout.ID))

	_, err = repo.GetByID(ctx, report.Layout.ID)
	var notFound *domain.NotFoundError
	assert.ErrorAs(t, err, &notFound)

	// A deleted layout disappears from the overview by virtue of no
	// longer existing, not via a separate unpublish.
	visible, err := repo.VisibleOn(ctx, "2025-03-01")
	require.NoError(t, err)
	assert.Empty(t, visible)

	assert.ErrorAs(t, repo.Delete(ctx, "no-such-id"), &notFound)
}

func TestLayoutRepo_ListByFolderIsCaseSensitive(t *testing.T) {
	repo := setupLayoutRepo(t)
	ctx := context.Background()

	_, err := repo.Save(ctx, testLayout("A", "Tecnica"))
	require.NoError(t, err)
	_, err = repo.Save(ctx, testLayout("B", "tecnica"))
	require.NoError(t, err)

	upper, err := repo.List(ctx, layoutStrPtr("Tecnica"))
	require.NoError(t, err)
	require.Len(t, upper, 1)
	assert.Equal(t, "A", upper[0].Name)

	lower, err := repo.List(ctx, layoutStrPtr("tecnica"))
	require.NoError(t, err)
	require.Len(t, lower, 1)
	assert.Equal(t, "B", lower[0].Name)
}

func TestLayoutRepo_VisibleOn(t *testing.T) {
	repo := setupLayoutRepo(t)
	ctx := context.Background()

	dated, err := repo.Save(ctx, testLayout("Dated", ""))
	require.NoError(t, err)
	global, err := repo.Save(ctx, testLayout("Global", ""))
	require.NoError(t, err)
	_, err = repo.Save(ctx, testLayout("Hidden", ""))
	require.NoError(t, err)

	require.NoError(t, repo.SetPublishedDates(ctx, dated.Layout.ID, []string{"2025-03-01"}))
	require.NoError(t, repo.SetPublishedDates(ctx, global.Layout.ID, []string{domain.GlobalSentinel}))

	t.Run("dated visible on its date", func(t *testing.T) {
		visible, err := repo.VisibleOn(ctx, "2025-03-01")
		require.NoError(t, err)
		names := layoutNames(visible)
		assert.ElementsMatch(t, []string{"Dated", "Global"}, names)
	})

	t.Run("global dominates on any date", func(t *testing.T) {
		visible, err := repo.VisibleOn(ctx, "2025-01-01")
		require.NoError(t, err)
		assert.Equal(t, []string{"Global"}, layoutNames(visible))
	})

	t.Run("rejects non-ISO date", func(t *testing.T) {
		_, err := repo.VisibleOn(ctx, "01-03-2025")
		var validation *domain.ValidationError
		assert.ErrorAs(t, err, &validation)
	})
}

func TestLayoutRepo_LegacySingleMemberColumn(t *testing.T) {
	repo := setupLayoutRepo(t)
	ctx := context.Background()

	report, err := repo.Save(ctx, testLayout("Legacy", ""))
	require.NoError(t, err)

	// Simulate a row written before the members array existed.
	_, err = repo.db.ExecContext(ctx, `
		UPDATE layouts SET positions = ? WHERE id = ?
	`, `[{"id":"baix_1","label":"Baix","x":1,"y":2,"member":{"nickname":"ana"}}]`, report.Layout.ID)
	require.NoError(t, err)

	got, err := repo.GetByID(ctx, report.Layout.ID)
	require.NoError(t, err)
	require.Len(t, got.Positions, 1)
	require.Len(t, got.Positions[0].Members, 1)
	assert.Equal(t, "ana", got.Positions[0].Members[0].Nickname)
}

func TestLayoutRepo_MemberSnapshotSurvivesProfileEdit(t *testing.T) {
	writeDB, _ := internaldb.OpenTestSQLite(t)
	layouts := NewLayoutRepo(writeDB)
	members := NewMemberRepo(writeDB)
	ctx := context.Background()

	_, err := members.Create(ctx, &domain.Member{Nickname: "ana", Position: "Baix"})
	require.NoError(t, err)

	l := testLayout("Snapshot", "")
	l.Positions[0].Members = []domain.Member{{Nickname: "ana", Position: "Baix"}}
	report, err := layouts.Save(ctx, l)
	require.NoError(t, err)

	newPos := "Crossa"
	_, err = members.Update(ctx, "ana", domain.UpdateMemberRequest{Position: &newPos})
	require.NoError(t, err)

	got, err := layouts.GetByID(ctx, report.Layout.ID)
	require.NoError(t, err)
	assert.Equal(t, "Baix", got.Positions[0].Members[0].Position,
		"bound members are snapshots, not live references")
}

func layoutNames(layouts []domain.Layout) []string {
	names := make([]string, 0, len(layouts))
	for _, l := range layouts {
		names = append(names, l.Name)
	}
	return names
}
