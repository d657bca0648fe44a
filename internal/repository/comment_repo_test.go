package repository

import (
	"context"
	"fmt"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/qs3c/swapi_films_server/internal/model"
	"github.com/qs3c/swapi_films_server/internal/pkg/pagination"
	"github.com/qs3c/swapi_films_server/internal/testutil"
)

func TestCommentRepository_Create(t *testing.T) {
	db := testutil.SetupTestDB(t)
	defer testutil.CleanupTestDB(t, db)

	repo := NewCommentRepository(db)
	film := testutil.TestFilm(t, db)

	comment := &model.Comment{
		FilmID:     film.ID,
		Text:       "This is a test comment",
		AuthorName: "Leia",
		AuthorIP:   "10.0.0.1",
	}

	err := repo.Create(context.Background(), comment)
	require.NoError(t, err)
	assert.NotZero(t, comment.ID)
	assert.False(t, comment.CreatedAt.IsZero())
}

func TestCommentRepository_GetByID(t *testing.T) {
	db := testutil.SetupTestDB(t)
	defer testutil.CleanupTestDB(t, db)

	repo := NewCommentRepository(db)
	film := testutil.TestFilm(t, db)
	created := testutil.TestComment(t, db, film.ID, "Test comment")

	found, err := repo.GetByID(context.Background(), created.ID)
	require.NoError(t, err)
	assert.Equal(t, created.ID, found.ID)
	assert.Equal(t, "Test comment", found.Text)
	assert.Equal(t, "127.0.0.1", found.AuthorIP)
}

func TestCommentRepository_GetByID_NotFound(t *testing.T) {
	db := testutil.SetupTestDB(t)
	defer testutil.CleanupTestDB(t, db)

	repo := NewCommentRepository(db)

	_, err := repo.GetByID(context.Background(), 99999)
	assert.Error(t, err)
}

func TestCommentRepository_List_FilterAndOrder(t *testing.T) {
	db := testutil.SetupTestDB(t)
	defer testutil.CleanupTestDB(t, db)

	repo := NewCommentRepository(db)
	film1 := testutil.TestFilm(t, db, testutil.WithSwapiID(1))
	film2 := testutil.TestFilm(t, db, testutil.WithSwapiID(2))

	base := time.Date(2024, 1, 1, 12, 0, 0, 0, time.UTC)
	testutil.TestComment(t, db, film1.ID, "third", testutil.WithCreatedAt(base.Add(2*time.Minute)))
	testutil.TestComment(t, db, film1.ID, "first", testutil.WithCreatedAt(base))
	testutil.TestComment(t, db, film2.ID, "other film", testutil.WithCreatedAt(base.Add(time.Minute)))
	testutil.TestComment(t, db, film1.ID, "second", testutil.WithCreatedAt(base.Add(time.Minute)))

	comments, total, err := repo.List(context.Background(), &film1.ID, pagination.Params{Page: 1, PageSize: 10})
	require.NoError(t, err)
	assert.Equal(t, int64(3), total)
	require.Len(t, comments, 3)
	assert.Equal(t, "first", comments[0].Text)
	assert.Equal(t, "second", comments[1].Text)
	assert.Equal(t, "third", comments[2].Text)

	all, total, err := repo.List(context.Background(), nil, pagination.Params{Page: 1, PageSize: 10})
	require.NoError(t, err)
	assert.Equal(t, int64(4), total)
	assert.Len(t, all, 4)
}

func TestCommentRepository_List_Pagination(t *testing.T) {
	db := testutil.SetupTestDB(t)
	defer testutil.CleanupTestDB(t, db)

	repo := NewCommentRepository(db)
	film := testutil.TestFilm(t, db)

	for i := 0; i < 15; i++ {
		testutil.TestComment(t, db, film.ID, fmt.Sprintf("Comment %d", i))
	}

	comments, total, err := repo.List(context.Background(), &film.ID, pagination.Params{Page: 1, PageSize: 10})
	require.NoError(t, err)
	assert.Equal(t, int64(15), total)
	assert.Len(t, comments, 10)

	comments, total, err = repo.List(context.Background(), &film.ID, pagination.Params{Page: 2, PageSize: 10})
	require.NoError(t, err)
	assert.Equal(t, int64(15), total)
	assert.Len(t, comments, 5)
}

func TestCommentRepository_ListByFilmID(t *testing.T) {
	db := testutil.SetupTestDB(t)
	defer testutil.CleanupTestDB(t, db)

	repo := NewCommentRepository(db)
	film := testutil.TestFilm(t, db)
	for i := 0; i < 12; i++ {
		testutil.TestComment(t, db, film.ID, fmt.Sprintf("Comment %d", i))
	}

	comments, err := repo.ListByFilmID(context.Background(), film.ID)
	require.NoError(t, err)
	assert.Len(t, comments, 12)
}

func TestCommentRepository_CountByFilmIDs(t *testing.T) {
	db := testutil.SetupTestDB(t)
	defer testutil.CleanupTestDB(t, db)

	repo := NewCommentRepository(db)
	film1 := testutil.TestFilm(t, db, testutil.WithSwapiID(1))
	film2 := testutil.TestFilm(t, db, testutil.WithSwapiID(2))
	film3 := testutil.TestFilm(t, db, testutil.WithSwapiID(3))

	testutil.TestComment(t, db, film1.ID, "a")
	testutil.TestComment(t, db, film1.ID, "b")
	testutil.TestComment(t, db, film2.ID, "c")

	counts, err := repo.CountByFilmIDs(context.Background(), []int64{film1.ID, film2.ID, film3.ID})
	require.NoError(t, err)
	assert.Equal(t, int64(2), counts[film1.ID])
	assert.Equal(t, int64(1), counts[film2.ID])
	assert.Equal(t, int64(0), counts[film3.ID])

	single, err := repo.CountByFilmID(context.Background(), film1.ID)
	require.NoError(t, err)
	assert.Equal(t, counts[film1.ID], single)

	empty, err := repo.CountByFilmIDs(context.Background(), nil)
	require.NoError(t, err)
	assert.Empty(t, empty)
}

func TestCommentRepository_CascadeOnFilmDelete(t *testing.T) {
	db := testutil.SetupTestDB(t)
	defer testutil.CleanupTestDB(t, db)

	repo := NewCommentRepository(db)
	film := testutil.TestFilm(t, db)
	testutil.TestComment(t, db, film.ID, "gone with the film")

	require.NoError(t, db.Delete(&model.Film{}, film.ID).Error)

	count, err := repo.CountByFilmID(context.Background(), film.ID)
	require.NoError(t, err)
	assert.Equal(t, int64(0), count)
}
