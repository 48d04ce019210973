package database

import (
	"context"
	"testing"

	"newsboard/internal/config"
	"newsboard/internal/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestOpenSQLiteMigrates(t *testing.T) {
	db, err := Open(&config.Config{DatabaseDriver: "sqlite", DatabaseDSN: ":memory:"})
	require.NoError(t, err)
	defer Close(db)

	for _, model := range []interface{}{
		&models.User{}, &models.Post{}, &models.Comment{},
		&models.PostUpvote{}, &models.CommentUpvote{},
	} {
		assert.True(t, db.Migrator().HasTable(model), "%T table missing", model)
	}
	assert.True(t, db.Migrator().HasIndex(&models.PostUpvote{}, "idx_post_upvote"))
	assert.True(t, db.Migrator().HasIndex(&models.CommentUpvote{}, "idx_comment_upvote"))
	assert.NoError(t, Ping(context.Background(), db))
}

func TestOpenRejectsUnknownDriver(t *testing.T) {
	_, err := Open(&config.Config{DatabaseDriver: "oracle", DatabaseDSN: "x"})
	assert.ErrorContains(t, err, "unsupported database driver")
}
