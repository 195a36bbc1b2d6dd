package repository

import (
	"context"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"

	"github.com/techstock/inventory/internal/query"
	appErr "github.com/techstock/inventory/pkg/errors"
)

func newMockDB(t *testing.T) (*gorm.DB, sqlmock.Sqlmock) {
	t.Helper()
	sqlDB, mock, err := sqlmock.New()
	require.NoError(t, err)
	t.Cleanup(func() { _ = sqlDB.Close() })

	gdb, err := gorm.Open(postgres.New(postgres.Config{Conn: sqlDB}), &gorm.Config{
		Logger: gormlogger.Default.LogMode(gormlogger.Silent),
	})
	require.NoError(t, err)
	return gdb, mock
}

func TestListRunsCountAndBoundedFetch(t *testing.T) {
	gdb, mock := newMockDB(t)
	repo := NewResourceRepository(gdb)

	mock.ExpectQuery(`SELECT count\(\*\) FROM "resource"`).
		WillReturnRows(sqlmock.NewRows([]string{"count"}).AddRow(42))
	mock.ExpectQuery(`SELECT \* FROM "resource"`).
		WillReturnRows(sqlmock.NewRows([]string{"id", "name", "type", "location", "created_at", "updated_at"}).
			AddRow(1, "vm-a", "Microsoft.Compute/virtualMachines", "westeurope", time.Now(), time.Now()).
			AddRow(2, "vm-b", "Microsoft.Compute/virtualMachines", "westeurope", time.Now(), time.Now()))

	items, total, err := repo.List(context.Background(),
		query.Filters{Type: "Microsoft.Compute/virtualMachines"},
		query.DefaultSort,
		query.NormalizePage(1, 20))
	require.NoError(t, err)
	require.EqualValues(t, 42, total)
	require.Len(t, items, 2)
	require.Equal(t, "vm-a", items[0].Name)
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestListAppliesTagFilterToBothQueries(t *testing.T) {
	gdb, mock := newMockDB(t)
	repo := NewResourceRepository(gdb)

	mock.ExpectQuery(`SELECT count\(\*\) FROM "resource" WHERE EXISTS \(SELECT 1 FROM resource_tag`).
		WithArgs("Environment", "%Production%").
		WillReturnRows(sqlmock.NewRows([]string{"count"}).AddRow(2))
	mock.ExpectQuery(`SELECT \* FROM "resource" WHERE EXISTS \(SELECT 1 FROM resource_tag`).
		WithArgs("Environment", "%Production%", 20).
		WillReturnRows(sqlmock.NewRows([]string{"id", "name"}).
			AddRow(1, "vm-a").
			AddRow(3, "vm-c"))

	items, total, err := repo.List(context.Background(),
		query.Filters{Tags: "Environment:Production"},
		query.DefaultSort,
		query.NormalizePage(1, 20))
	require.NoError(t, err)
	require.EqualValues(t, 2, total)
	require.Len(t, items, 2)
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestListEmptyPageBeyondRange(t *testing.T) {
	gdb, mock := newMockDB(t)
	repo := NewResourceRepository(gdb)

	mock.ExpectQuery(`SELECT count\(\*\) FROM "resource"`).
		WillReturnRows(sqlmock.NewRows([]string{"count"}).AddRow(3))
	mock.ExpectQuery(`SELECT \* FROM "resource"`).
		WillReturnRows(sqlmock.NewRows([]string{"id", "name"}))

	items, total, err := repo.List(context.Background(), query.Filters{}, query.DefaultSort, query.NormalizePage(50, 20))
	require.NoError(t, err)
	require.EqualValues(t, 3, total)
	require.Empty(t, items)
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestCreateWithTagsIsTransactional(t *testing.T) {
	gdb, mock := newMockDB(t)
	repo := NewResourceRepository(gdb)

	mock.ExpectBegin()
	mock.ExpectQuery(`INSERT INTO "resource"`).
		WillReturnRows(sqlmock.NewRows([]string{"id"}).AddRow(11))
	mock.ExpectExec(`DELETE FROM "resource_tag"`).
		WillReturnResult(sqlmock.NewResult(0, 0))
	mock.ExpectExec(`INSERT INTO "resource_tag" .*ON CONFLICT`).
		WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectCommit()

	res := newTestResource("vm-a")
	err := repo.CreateWithTags(context.Background(), res, map[string]string{"Environment": "Production"})
	require.NoError(t, err)
	require.EqualValues(t, 11, res.ID)
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestCreateWithTagsRollsBackOnTagFailure(t *testing.T) {
	gdb, mock := newMockDB(t)
	repo := NewResourceRepository(gdb)

	mock.ExpectBegin()
	mock.ExpectQuery(`INSERT INTO "resource"`).
		WillReturnRows(sqlmock.NewRows([]string{"id"}).AddRow(11))
	mock.ExpectExec(`DELETE FROM "resource_tag"`).
		WillReturnError(errDriverBoom)
	mock.ExpectRollback()

	err := repo.CreateWithTags(context.Background(), newTestResource("vm-a"), map[string]string{"Environment": "Production"})
	require.Error(t, err)
	require.True(t, appErr.IsCode(err, appErr.CodeInternal))
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestUpdateWithTagsRemovesStaleKeys(t *testing.T) {
	gdb, mock := newMockDB(t)
	repo := NewResourceRepository(gdb)

	mock.ExpectBegin()
	mock.ExpectExec(`UPDATE "resource" SET`).
		WillReturnResult(sqlmock.NewResult(0, 1))
	// Keys still present are excluded from the delete; everything else goes.
	mock.ExpectExec(`DELETE FROM "resource_tag" WHERE resource_id = \$1 AND key NOT IN \(\$2\)`).
		WithArgs(int64(11), "A").
		WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectExec(`INSERT INTO "resource_tag" .*ON CONFLICT`).
		WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectCommit()

	res := newTestResource("vm-a")
	res.ID = 11
	err := repo.UpdateWithTags(context.Background(), res, map[string]string{"A": "1"})
	require.NoError(t, err)
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestUpdateWithTagsEmptyMapDeletesAllRows(t *testing.T) {
	gdb, mock := newMockDB(t)
	repo := NewResourceRepository(gdb)

	mock.ExpectBegin()
	mock.ExpectExec(`UPDATE "resource" SET`).
		WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectExec(`DELETE FROM "resource_tag" WHERE resource_id = \$1`).
		WithArgs(int64(11)).
		WillReturnResult(sqlmock.NewResult(0, 2))
	mock.ExpectCommit()

	res := newTestResource("vm-a")
	res.ID = 11
	err := repo.UpdateWithTags(context.Background(), res, map[string]string{})
	require.NoError(t, err)
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestDeleteMissingResourceIsNotFound(t *testing.T) {
	gdb, mock := newMockDB(t)
	repo := NewResourceRepository(gdb)

	mock.ExpectBegin()
	mock.ExpectExec(`DELETE FROM "resource"`).
		WillReturnResult(sqlmock.NewResult(0, 0))
	mock.ExpectCommit()

	err := repo.Delete(context.Background(), 999)
	require.Error(t, err)
	require.True(t, appErr.IsCode(err, appErr.CodeNotFound))
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestLinkApplicationDefaultsRelationType(t *testing.T) {
	gdb, mock := newMockDB(t)
	repo := NewResourceRepository(gdb)

	mock.ExpectBegin()
	mock.ExpectQuery(`INSERT INTO "resource_application_map" .*ON CONFLICT \("resource_id","application_id","relation_type"\) DO NOTHING`).
		WithArgs(int64(11), int64(7), "uses").
		WillReturnRows(sqlmock.NewRows([]string{"id"}).AddRow(1))
	mock.ExpectCommit()

	err := repo.LinkApplication(context.Background(), 11, 7, "")
	require.NoError(t, err)
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestLinkApplicationIsIdempotent(t *testing.T) {
	gdb, mock := newMockDB(t)
	repo := NewResourceRepository(gdb)

	// Conflicting pair: DO NOTHING returns no row, which is not an error.
	mock.ExpectBegin()
	mock.ExpectQuery(`INSERT INTO "resource_application_map" .*DO NOTHING`).
		WithArgs(int64(11), int64(7), "owns").
		WillReturnRows(sqlmock.NewRows([]string{"id"}))
	mock.ExpectCommit()

	err := repo.LinkApplication(context.Background(), 11, 7, "owns")
	require.NoError(t, err)
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestCountByRejectsUnknownColumn(t *testing.T) {
	gdb, _ := newMockDB(t)
	repo := NewResourceRepository(gdb)

	_, err := repo.CountBy(context.Background(), "tags_json")
	require.Error(t, err)
	require.True(t, appErr.IsCode(err, appErr.CodeInvalid))
}

func TestCountByGroupsWithUnknownLabel(t *testing.T) {
	gdb, mock := newMockDB(t)
	repo := NewResourceRepository(gdb)

	mock.ExpectQuery(`SELECT COALESCE\(environment, 'Unknown'\) AS label, COUNT\(\*\) AS count FROM "resource" GROUP BY`).
		WillReturnRows(sqlmock.NewRows([]string{"label", "count"}).
			AddRow("Production", 10).
			AddRow("Unknown", 3))

	buckets, err := repo.CountBy(context.Background(), "environment")
	require.NoError(t, err)
	require.Equal(t, []BucketCount{{"Production", 10}, {"Unknown", 3}}, buckets)
	require.NoError(t, mock.ExpectationsWereMet())
}
