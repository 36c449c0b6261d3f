package repositories

import (
	"context"
	"fmt"
	"testing"

	"musicweb-api/models"
	"musicweb-api/testutil"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

func seedMusic(t *testing.T, db *gorm.DB, n int) {
	t.Helper()
	ctx := context.Background()
	genres := NewGenreRepository(db)
	music := NewMusicRepository(db)

	require.NoError(t, genres.Upsert(ctx, &models.Genre{Slug: "jazz", Name: "Jazz"}))
	require.NoError(t, genres.Upsert(ctx, &models.Genre{Slug: "rock", Name: "Rock"}))
	for i := 1; i <= n; i++ {
		genre := "jazz"
		if i%2 == 0 {
			genre = "rock"
		}
		year := 1950 + i
		require.NoError(t, music.Create(ctx, &models.Music{
			Title:     fmt.Sprintf("Track %02d", i),
			Artist:    fmt.Sprintf("Artist %02d", i),
			Year:      &year,
			GenreSlug: genre,
		}))
	}
}

func TestMusicRepository_Pagination(t *testing.T) {
	db := testutil.NewTestDB(t)
	seedMusic(t, db, 25)
	repo := NewMusicRepository(db)

	params := models.MusicListParams{ListParams: models.NewListParams("2", "10", "title", "asc", "", models.MusicSortFields)}
	rows, total, err := repo.GetList(context.Background(), params)
	require.NoError(t, err)

	assert.EqualValues(t, 25, total)
	require.Len(t, rows, 10)
	assert.Equal(t, "Track 11", rows[0].Title)
	assert.Equal(t, "Track 20", rows[9].Title)
	assert.Equal(t, 3, models.TotalPages(total, params.Limit))

	params.Page = 3
	rows, _, err = repo.GetList(context.Background(), params)
	require.NoError(t, err)
	assert.Len(t, rows, 5)
}

func TestMusicRepository_Filters(t *testing.T) {
	db := testutil.NewTestDB(t)
	seedMusic(t, db, 10)
	repo := NewMusicRepository(db)
	ctx := context.Background()

	params := models.MusicListParams{ListParams: models.NewListParams("", "", "", "", "", nil), Genre: "Rock"}
	rows, total, err := repo.GetList(ctx, params)
	require.NoError(t, err)
	assert.EqualValues(t, 5, total)
	for _, m := range rows {
		assert.Equal(t, "rock", m.GenreSlug)
	}

	year := 1953
	params = models.MusicListParams{ListParams: models.NewListParams("", "", "", "", "", nil), Year: &year}
	rows, total, err = repo.GetList(ctx, params)
	require.NoError(t, err)
	assert.EqualValues(t, 1, total)
	assert.Equal(t, "Track 03", rows[0].Title)

	params = models.MusicListParams{ListParams: models.NewListParams("", "", "", "", "ARTIST 07", nil)}
	rows, total, err = repo.GetList(ctx, params)
	require.NoError(t, err)
	assert.EqualValues(t, 1, total)
	assert.Equal(t, "Track 07", rows[0].Title)
}

func TestGenreRepository_UpsertKeepsFirstName(t *testing.T) {
	db := testutil.NewTestDB(t)
	repo := NewGenreRepository(db)
	ctx := context.Background()

	require.NoError(t, repo.Upsert(ctx, &models.Genre{Slug: "jazz", Name: "Jazz"}))
	require.NoError(t, repo.Upsert(ctx, &models.Genre{Slug: "jazz", Name: "jazz"}))

	genres, err := repo.GetAll(ctx)
	require.NoError(t, err)
	require.Len(t, genres, 1)
	assert.Equal(t, "Jazz", genres[0].Name)
}

func createUser(t *testing.T, repo UserRepository, email, username string, role models.UserRole) *models.User {
	t.Helper()
	user := &models.User{Email: email, Username: username, Role: role, IsActive: true, PasswordHash: "x"}
	require.NoError(t, repo.Create(context.Background(), user))
	return user
}

func TestUserRepository_Uniqueness(t *testing.T) {
	db := testutil.NewTestDB(t)
	repo := NewUserRepository(db)
	ctx := context.Background()

	alice := createUser(t, repo, "alice@example.com", "alice", models.RoleUser)

	err := repo.Create(ctx, &models.User{Email: "alice@example.com", Username: "other", Role: models.RoleUser, PasswordHash: "x"})
	assert.ErrorIs(t, err, gorm.ErrDuplicatedKey)

	taken, err := repo.EmailTaken(ctx, "ALICE@example.com", "")
	require.NoError(t, err)
	assert.True(t, taken)

	taken, err = repo.EmailTaken(ctx, "alice@example.com", alice.ID)
	require.NoError(t, err)
	assert.False(t, taken)

	taken, err = repo.UsernameTaken(ctx, "alice", "")
	require.NoError(t, err)
	assert.True(t, taken)
}

func TestUserRepository_ListFilters(t *testing.T) {
	db := testutil.NewTestDB(t)
	repo := NewUserRepository(db)
	ctx := context.Background()

	createUser(t, repo, "a@example.com", "anna", models.RoleUser)
	createUser(t, repo, "b@example.com", "ben", models.RoleEditor)
	inactive := createUser(t, repo, "c@example.com", "cleo", models.RoleUser)
	require.NoError(t, repo.Update(ctx, inactive.ID, map[string]interface{}{"is_active": false}))

	active := true
	rows, total, err := repo.GetList(ctx, models.UserListParams{
		ListParams: models.NewListParams("", "", "username", "asc", "", models.UserSortFields),
		Role:       string(models.RoleUser),
		IsActive:   &active,
	})
	require.NoError(t, err)
	assert.EqualValues(t, 1, total)
	assert.Equal(t, "anna", rows[0].Username)
}

func TestReviewRepository_ListIncludesAuthor(t *testing.T) {
	db := testutil.NewTestDB(t)
	seedMusic(t, db, 1)
	ctx := context.Background()
	users := NewUserRepository(db)
	reviews := NewReviewRepository(db)

	var music models.Music
	require.NoError(t, db.First(&music).Error)
	author := createUser(t, users, "r@example.com", "reviewer", models.RoleUser)

	for i := 1; i <= 5; i++ {
		require.NoError(t, reviews.Create(ctx, &models.Review{UserID: author.ID, MusicID: music.ID, Rating: i}))
	}

	lo, hi := 2, 4
	rows, total, err := reviews.GetList(ctx, models.ReviewListParams{
		ListParams: models.NewListParams("", "", "rating", "asc", "", models.ReviewSortFields),
		MusicID:    music.ID,
		MinRating:  &lo,
		MaxRating:  &hi,
	})
	require.NoError(t, err)
	assert.EqualValues(t, 3, total)
	require.Len(t, rows, 3)
	assert.Equal(t, 2, rows[0].Rating)
	assert.Equal(t, "reviewer", rows[0].Username)

	byMusic, err := reviews.ListByMusic(ctx, music.ID)
	require.NoError(t, err)
	assert.Len(t, byMusic, 5)
}

func TestDeleteCascades(t *testing.T) {
	db := testutil.NewTestDB(t)
	seedMusic(t, db, 1)
	ctx := context.Background()
	users := NewUserRepository(db)
	reviews := NewReviewRepository(db)
	perms := NewPermissionRepository(db)

	var music models.Music
	require.NoError(t, db.First(&music).Error)
	author := createUser(t, users, "d@example.com", "deleter", models.RoleUser)
	require.NoError(t, reviews.Create(ctx, &models.Review{UserID: author.ID, MusicID: music.ID, Rating: 3}))
	require.NoError(t, perms.ReplaceUserPermissions(ctx, author.ID, []string{models.PermMusicCreate}))

	require.NoError(t, users.Delete(ctx, author.ID))

	var count int64
	require.NoError(t, db.Model(&models.Review{}).Count(&count).Error)
	assert.Zero(t, count)
	direct, err := perms.UserPermissions(ctx, author.ID)
	require.NoError(t, err)
	assert.Empty(t, direct)
}

func TestPermissionRepository(t *testing.T) {
	db := testutil.NewTestDB(t)
	ctx := context.Background()
	repo := NewPermissionRepository(db)
	users := NewUserRepository(db)

	editor, err := repo.RolePermissions(ctx, models.RoleEditor)
	require.NoError(t, err)
	assert.ElementsMatch(t, models.DefaultRolePermissions[models.RoleEditor], editor)

	admin, err := repo.RolePermissions(ctx, models.RoleAdmin)
	require.NoError(t, err)
	assert.Empty(t, admin)

	user := createUser(t, users, "p@example.com", "perm", models.RoleUser)
	require.NoError(t, repo.ReplaceUserPermissions(ctx, user.ID, []string{models.PermMusicCreate, models.PermUsersRead}))
	require.NoError(t, repo.ReplaceUserPermissions(ctx, user.ID, []string{models.PermUsersRead}))

	direct, err := repo.UserPermissions(ctx, user.ID)
	require.NoError(t, err)
	assert.Equal(t, []string{models.PermUsersRead}, direct)
}
