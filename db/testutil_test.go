package db

import (
	"context"
	"testing"
	"time"

	"go_crm_backend/models"

	"github.com/glebarez/sqlite"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

func newTestRepo(t *testing.T) *Repo {
	t.Helper()

	conn, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	require.NoError(t, err)

	// One connection keeps every query on the same in-memory database.
	sqlDB, err := conn.DB()
	require.NoError(t, err)
	sqlDB.SetMaxOpenConns(1)

	require.NoError(t, Migrate(conn))
	return NewRepo(conn)
}

func seedTeam(t *testing.T, r *Repo, teamName, ownerEmail string) (*models.Team, *models.User) {
	t.Helper()
	owner, team, err := r.RegisterOwner(context.Background(), ownerEmail, "hash", "Owner "+teamName, teamName)
	require.NoError(t, err)
	return team, owner
}

func seedMember(t *testing.T, r *Repo, teamID, email, role string) *models.User {
	t.Helper()
	inv, err := r.InviteUser(context.Background(), teamID, email, role)
	require.NoError(t, err)
	u, err := r.AcceptInvite(context.Background(), inv.Token, "Member "+email, "hash")
	require.NoError(t, err)
	return u
}

// pinClock fixes the repo clock for a test and restores it afterwards.
func pinClock(t *testing.T, at time.Time) {
	t.Helper()
	prev := nowFunc
	nowFunc = func() time.Time { return at }
	t.Cleanup(func() { nowFunc = prev })
}
