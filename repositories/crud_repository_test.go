package repositories

import (
	"context"
	"regexp"
	"testing"

	"github.com/jackc/pgx/v5/pgconn"
	"github.com/pashagolub/pgxmock/v4"
	"github.com/stretchr/testify/assert"

	"github.com/ideahub/ideahub-backend/models"
)

// Repository tests use the flat entities (bus, plants) so no hydration
// queries get in the way of the statement under test.

func newMockPool(t *testing.T) pgxmock.PgxPoolIface {
	t.Helper()
	mock, err := pgxmock.NewPool()
	if err != nil {
		t.Fatal(err)
	}
	t.Cleanup(mock.Close)
	return mock
}

func TestCrudRepositoryInsert(t *testing.T) {
	t.Run("nominal", func(t *testing.T) {
		mock := newMockPool(t)
		mock.ExpectQuery(regexp.QuoteMeta(
			"INSERT INTO bus (name) VALUES ($1) RETURNING id, name")).
			WithArgs("Energy").
			WillReturnRows(pgxmock.NewRows([]string{"id", "name"}).AddRow(int64(1), "Energy"))

		repo := NewCrudRepository(models.NewIdeaHubRegistry(), models.BuDescriptor)
		record, err := repo.Insert(context.Background(), mock, map[string]any{
			"name":    "Energy",
			"unknown": "dropped",
		})
		assert.NoError(t, err)
		assert.Equal(t, models.Record{"id": int64(1), "name": "Energy"}, record)
		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("empty payload inserts defaults", func(t *testing.T) {
		mock := newMockPool(t)
		mock.ExpectQuery(regexp.QuoteMeta(
			"INSERT INTO teoa_reviews DEFAULT VALUES RETURNING id, idea_id")).
			WillReturnRows(pgxmock.NewRows([]string{"id", "idea_id"}).AddRow(int64(7), nil))
		// hydration of the declared relationships
		mock.ExpectQuery(regexp.QuoteMeta(
			"SELECT id, body, created_at, commenter_id, teoa_review_id FROM teoa_comments WHERE teoa_review_id = $1 ORDER BY id ASC")).
			WithArgs(int64(7)).
			WillReturnRows(pgxmock.NewRows([]string{"id", "body", "created_at", "commenter_id", "teoa_review_id"}))

		repo := NewCrudRepository(models.NewIdeaHubRegistry(), models.TeoaReviewDescriptor)
		record, err := repo.Insert(context.Background(), mock, map[string]any{})
		assert.NoError(t, err)
		assert.Equal(t, int64(7), record.Id("id"))
		assert.Nil(t, record["idea"])
		assert.Empty(t, record["comments"])
		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("unique violation becomes a conflict", func(t *testing.T) {
		mock := newMockPool(t)
		mock.ExpectQuery(regexp.QuoteMeta(
			"INSERT INTO bus (name) VALUES ($1) RETURNING id, name")).
			WithArgs("Energy").
			WillReturnError(&pgconn.PgError{Code: "23505"})

		repo := NewCrudRepository(models.NewIdeaHubRegistry(), models.BuDescriptor)
		_, err := repo.Insert(context.Background(), mock, map[string]any{"name": "Energy"})
		assert.ErrorIs(t, err, models.ConflictError)
		assert.NoError(t, mock.ExpectationsWereMet())
	})
}

func TestCrudRepositoryFindById(t *testing.T) {
	t.Run("nominal", func(t *testing.T) {
		mock := newMockPool(t)
		mock.ExpectQuery(regexp.QuoteMeta(
			"SELECT bus.id, bus.name FROM bus WHERE bus.id = $1")).
			WithArgs(int64(3)).
			WillReturnRows(pgxmock.NewRows([]string{"id", "name"}).AddRow(int64(3), "Energy"))

		repo := NewCrudRepository(models.NewIdeaHubRegistry(), models.BuDescriptor)
		record, err := repo.FindById(context.Background(), mock, 3)
		assert.NoError(t, err)
		assert.Equal(t, "Energy", record["name"])
		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("missing row is a not found error", func(t *testing.T) {
		mock := newMockPool(t)
		mock.ExpectQuery(regexp.QuoteMeta(
			"SELECT bus.id, bus.name FROM bus WHERE bus.id = $1")).
			WithArgs(int64(404)).
			WillReturnRows(pgxmock.NewRows([]string{"id", "name"}))

		repo := NewCrudRepository(models.NewIdeaHubRegistry(), models.BuDescriptor)
		_, err := repo.FindById(context.Background(), mock, 404)
		assert.ErrorIs(t, err, models.NotFoundError)
		assert.NoError(t, mock.ExpectationsWereMet())
	})
}

func TestCrudRepositoryFindPaginated(t *testing.T) {
	mock := newMockPool(t)
	mock.ExpectQuery(regexp.QuoteMeta(
		"SELECT bus.id, bus.name FROM bus ORDER BY bus.id ASC LIMIT 2 OFFSET 2")).
		WillReturnRows(pgxmock.NewRows([]string{"id", "name"}).
			AddRow(int64(3), "Energy").
			AddRow(int64(4), "Industrial"))

	repo := NewCrudRepository(models.NewIdeaHubRegistry(), models.BuDescriptor)
	records, err := repo.FindPaginated(context.Background(), mock, 2, 2)
	assert.NoError(t, err)
	assert.Equal(t, []models.Record{
		{"id": int64(3), "name": "Energy"},
		{"id": int64(4), "name": "Industrial"},
	}, records)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestCrudRepositoryFindPaginatedWithFilters(t *testing.T) {
	mock := newMockPool(t)
	mock.ExpectQuery(regexp.QuoteMeta(
		"SELECT DISTINCT ideas.id, ideas.title, ideas.actual_situation, ideas.description, "+
			"ideas.status, ideas.created_at, ideas.updated_at, ideas.submitter_id "+
			"FROM ideas JOIN comments AS comments ON comments.idea_id = ideas.id "+
			"WHERE (comments.likes >= $1) ORDER BY ideas.id ASC LIMIT 25 OFFSET 0")).
		WithArgs(int64(10)).
		WillReturnRows(pgxmock.NewRows([]string{
			"id", "title", "actual_situation", "description",
			"status", "created_at", "updated_at", "submitter_id",
		}))

	repo := NewCrudRepository(models.NewIdeaHubRegistry(), models.IdeaDescriptor)
	records, err := repo.FindPaginatedWithFilters(context.Background(), mock, 0, 25,
		models.ParseFilters(map[string]string{"comments__likes__gte": "10"}))
	assert.NoError(t, err)
	assert.Empty(t, records)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestCrudRepositoryCountWithFilters(t *testing.T) {
	t.Run("flat filter counts rows", func(t *testing.T) {
		mock := newMockPool(t)
		mock.ExpectQuery(regexp.QuoteMeta(
			"SELECT COUNT(*) FROM ideas WHERE (ideas.status = $1)")).
			WithArgs("created").
			WillReturnRows(pgxmock.NewRows([]string{"count"}).AddRow(5))

		repo := NewCrudRepository(models.NewIdeaHubRegistry(), models.IdeaDescriptor)
		count, err := repo.CountWithFilters(context.Background(), mock,
			models.ParseFilters(map[string]string{"status": "created"}))
		assert.NoError(t, err)
		assert.Equal(t, 5, count)
		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("to-many hop counts distinct owners", func(t *testing.T) {
		mock := newMockPool(t)
		mock.ExpectQuery(regexp.QuoteMeta(
			"SELECT COUNT(DISTINCT ideas.id) FROM ideas "+
				"JOIN comments AS comments ON comments.idea_id = ideas.id "+
				"WHERE (comments.likes >= $1)")).
			WithArgs(int64(10)).
			WillReturnRows(pgxmock.NewRows([]string{"count"}).AddRow(2))

		repo := NewCrudRepository(models.NewIdeaHubRegistry(), models.IdeaDescriptor)
		count, err := repo.CountWithFilters(context.Background(), mock,
			models.ParseFilters(map[string]string{"comments__likes__gte": "10"}))
		assert.NoError(t, err)
		assert.Equal(t, 2, count)
		assert.NoError(t, mock.ExpectationsWereMet())
	})
}

func TestCrudRepositoryUpdateById(t *testing.T) {
	t.Run("primary key is never merged", func(t *testing.T) {
		mock := newMockPool(t)
		mock.ExpectQuery(regexp.QuoteMeta(
			"UPDATE bus SET name = $1 WHERE id = $2 RETURNING id, name")).
			WithArgs("Renamed", int64(3)).
			WillReturnRows(pgxmock.NewRows([]string{"id", "name"}).AddRow(int64(3), "Renamed"))

		repo := NewCrudRepository(models.NewIdeaHubRegistry(), models.BuDescriptor)
		record, err := repo.UpdateById(context.Background(), mock, 3, map[string]any{
			"id":   int64(99),
			"name": "Renamed",
		})
		assert.NoError(t, err)
		assert.Equal(t, int64(3), record.Id("id"))
		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("unmergeable payload behaves as a read", func(t *testing.T) {
		mock := newMockPool(t)
		mock.ExpectQuery(regexp.QuoteMeta(
			"SELECT bus.id, bus.name FROM bus WHERE bus.id = $1")).
			WithArgs(int64(3)).
			WillReturnRows(pgxmock.NewRows([]string{"id", "name"}).AddRow(int64(3), "Energy"))

		repo := NewCrudRepository(models.NewIdeaHubRegistry(), models.BuDescriptor)
		record, err := repo.UpdateById(context.Background(), mock, 3, map[string]any{
			"unknown": "dropped",
		})
		assert.NoError(t, err)
		assert.Equal(t, "Energy", record["name"])
		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("missing row is a not found error", func(t *testing.T) {
		mock := newMockPool(t)
		mock.ExpectQuery(regexp.QuoteMeta(
			"UPDATE bus SET name = $1 WHERE id = $2 RETURNING id, name")).
			WithArgs("Renamed", int64(404)).
			WillReturnRows(pgxmock.NewRows([]string{"id", "name"}))

		repo := NewCrudRepository(models.NewIdeaHubRegistry(), models.BuDescriptor)
		_, err := repo.UpdateById(context.Background(), mock, 404, map[string]any{"name": "Renamed"})
		assert.ErrorIs(t, err, models.NotFoundError)
		assert.NoError(t, mock.ExpectationsWereMet())
	})
}

func TestCrudRepositoryDeleteByIds(t *testing.T) {
	t.Run("nominal", func(t *testing.T) {
		mock := newMockPool(t)
		mock.ExpectQuery(regexp.QuoteMeta(
			"SELECT plants.id, plants.name FROM plants WHERE plants.id IN ($1,$2) ORDER BY plants.id ASC")).
			WithArgs(int64(1), int64(2)).
			WillReturnRows(pgxmock.NewRows([]string{"id", "name"}).
				AddRow(int64(1), "Lyon").
				AddRow(int64(2), "Grenoble"))
		mock.ExpectExec(regexp.QuoteMeta(
			"DELETE FROM plants WHERE id IN ($1,$2)")).
			WithArgs(int64(1), int64(2)).
			WillReturnResult(pgxmock.NewResult("DELETE", 2))

		repo := NewCrudRepository(models.NewIdeaHubRegistry(), models.PlantDescriptor)
		records, err := repo.DeleteByIds(context.Background(), mock, []int64{1, 2})
		assert.NoError(t, err)
		assert.Len(t, records, 2)
		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("duplicate ids count once", func(t *testing.T) {
		mock := newMockPool(t)
		mock.ExpectQuery(regexp.QuoteMeta(
			"SELECT plants.id, plants.name FROM plants WHERE plants.id IN ($1,$2) ORDER BY plants.id ASC")).
			WithArgs(int64(1), int64(2)).
			WillReturnRows(pgxmock.NewRows([]string{"id", "name"}).
				AddRow(int64(1), "Lyon").
				AddRow(int64(2), "Grenoble"))
		mock.ExpectExec(regexp.QuoteMeta(
			"DELETE FROM plants WHERE id IN ($1,$2)")).
			WithArgs(int64(1), int64(2)).
			WillReturnResult(pgxmock.NewResult("DELETE", 2))

		repo := NewCrudRepository(models.NewIdeaHubRegistry(), models.PlantDescriptor)
		records, err := repo.DeleteByIds(context.Background(), mock, []int64{1, 1, 2})
		assert.NoError(t, err)
		assert.Len(t, records, 2)
		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("one missing id deletes nothing", func(t *testing.T) {
		mock := newMockPool(t)
		mock.ExpectQuery(regexp.QuoteMeta(
			"SELECT plants.id, plants.name FROM plants WHERE plants.id IN ($1,$2,$3) ORDER BY plants.id ASC")).
			WithArgs(int64(1), int64(2), int64(999)).
			WillReturnRows(pgxmock.NewRows([]string{"id", "name"}).
				AddRow(int64(1), "Lyon").
				AddRow(int64(2), "Grenoble"))

		repo := NewCrudRepository(models.NewIdeaHubRegistry(), models.PlantDescriptor)
		_, err := repo.DeleteByIds(context.Background(), mock, []int64{1, 2, 999})
		assert.ErrorIs(t, err, models.NotFoundError)
		assert.NoError(t, mock.ExpectationsWereMet())
	})
}

func TestCrudRepositoryDeleteByIdCascades(t *testing.T) {
	mock := newMockPool(t)
	// read back the row being deleted
	mock.ExpectQuery(regexp.QuoteMeta(
		"SELECT roles.id, roles.name FROM roles WHERE roles.id = $1")).
		WithArgs(int64(4)).
		WillReturnRows(pgxmock.NewRows([]string{"id", "name"}).AddRow(int64(4), "admin"))
	// hydration of the role's users
	mock.ExpectQuery(regexp.QuoteMeta(
		"SELECT users.id, users.username, users.email, users.account_status, users.created_at, users.bu_id "+
			"FROM users JOIN users_roles ON users_roles.user_id = users.id "+
			"WHERE users_roles.role_id = $1 ORDER BY users.id ASC")).
		WithArgs(int64(4)).
		WillReturnRows(pgxmock.NewRows([]string{"id", "username", "email", "account_status", "created_at", "bu_id"}))
	// cascade removes the link rows before the row itself
	mock.ExpectExec(regexp.QuoteMeta(
		"DELETE FROM users_roles WHERE role_id IN ($1)")).
		WithArgs(int64(4)).
		WillReturnResult(pgxmock.NewResult("DELETE", 0))
	mock.ExpectExec(regexp.QuoteMeta(
		"DELETE FROM roles WHERE id = $1")).
		WithArgs(int64(4)).
		WillReturnResult(pgxmock.NewResult("DELETE", 1))

	repo := NewCrudRepository(models.NewIdeaHubRegistry(), models.RoleDescriptor)
	record, err := repo.DeleteById(context.Background(), mock, 4)
	assert.NoError(t, err)
	assert.Equal(t, "admin", record["name"])
	assert.NoError(t, mock.ExpectationsWereMet())
}
