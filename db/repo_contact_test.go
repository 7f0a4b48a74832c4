package db

import (
	"context"
	"testing"

	"go_crm_backend/listquery"
	"go_crm_backend/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func seedContact(t *testing.T, r *Repo, teamID, ownerID, name string, email, companyID *string) *models.Contact {
	t.Helper()
	c := &models.Contact{Name: name, Email: email, CompanyID: companyID, OwnerID: ownerID}
	require.NoError(t, r.CreateContact(context.Background(), teamID, c))
	return c
}

func TestContactSearchNameAndEmail(t *testing.T) {
	r := newTestRepo(t)
	ctx := context.Background()
	team, owner := seedTeam(t, r, "Acme", "owner@acme.test")

	seedContact(t, r, team.ID, owner.ID, "Alice Johnson", strPtr("alice@globex.example"), nil)
	seedContact(t, r, team.ID, owner.ID, "Bob Smith", strPtr("bob@initech.example"), nil)

	rows, _, err := r.ListContacts(ctx, team.ID, ContactFilter{Search: "alice"}, defaultParams(50))
	require.NoError(t, err)
	require.Len(t, rows, 1)
	assert.Equal(t, "Alice Johnson", rows[0].Name)

	rows, _, err = r.ListContacts(ctx, team.ID, ContactFilter{Search: "INITECH"}, defaultParams(50))
	require.NoError(t, err)
	require.Len(t, rows, 1)
	assert.Equal(t, "Bob Smith", rows[0].Name)
}

func TestContactCompanyAndOwnerFilters(t *testing.T) {
	r := newTestRepo(t)
	ctx := context.Background()
	team, owner := seedTeam(t, r, "Acme", "owner@acme.test")
	member := seedMember(t, r, team.ID, "m@acme.test", models.RoleMember)

	company := seedCompany(t, r, team.ID, "Globex", nil, nil)
	seedContact(t, r, team.ID, owner.ID, "At Globex", nil, &company.ID)
	seedContact(t, r, team.ID, member.ID, "Freelancer", nil, nil)

	rows, _, err := r.ListContacts(ctx, team.ID, ContactFilter{CompanyID: company.ID}, defaultParams(50))
	require.NoError(t, err)
	require.Len(t, rows, 1)
	assert.Equal(t, "At Globex", rows[0].Name)

	rows, _, err = r.ListContacts(ctx, team.ID, ContactFilter{OwnerID: member.ID}, defaultParams(50))
	require.NoError(t, err)
	require.Len(t, rows, 1)
	assert.Equal(t, "Freelancer", rows[0].Name)
}

func TestContactCompanyInclude(t *testing.T) {
	r := newTestRepo(t)
	ctx := context.Background()
	team, owner := seedTeam(t, r, "Acme", "owner@acme.test")

	company := seedCompany(t, r, team.ID, "Globex", nil, nil)
	c := seedContact(t, r, team.ID, owner.ID, "Hank", nil, &company.ID)

	got, err := r.GetContact(ctx, team.ID, c.ID, listquery.Params{})
	require.NoError(t, err)
	assert.Nil(t, got.Company)

	got, err = r.GetContact(ctx, team.ID, c.ID, listquery.Params{Includes: []string{"company"}})
	require.NoError(t, err)
	require.NotNil(t, got.Company)
	assert.Equal(t, "Globex", got.Company.Name)
}

func TestContactUpdateClearsNothingUnasked(t *testing.T) {
	r := newTestRepo(t)
	ctx := context.Background()
	team, owner := seedTeam(t, r, "Acme", "owner@acme.test")

	c := seedContact(t, r, team.ID, owner.ID, "Hank", strPtr("hank@globex.example"), nil)

	got, err := r.UpdateContact(ctx, team.ID, c.ID, map[string]any{"title": "VP Sales"})
	require.NoError(t, err)
	require.NotNil(t, got.Title)
	assert.Equal(t, "VP Sales", *got.Title)
	require.NotNil(t, got.Email)
	assert.Equal(t, "hank@globex.example", *got.Email)
}

func TestContactTenancyIsolation(t *testing.T) {
	r := newTestRepo(t)
	ctx := context.Background()
	team, owner := seedTeam(t, r, "Acme", "owner@acme.test")
	rival, _ := seedTeam(t, r, "Rival", "owner@rival.test")

	c := seedContact(t, r, team.ID, owner.ID, "Private", nil, nil)

	_, err := r.GetContact(ctx, rival.ID, c.ID, listquery.Params{})
	assert.Error(t, err)
	assert.Error(t, r.DeleteContact(ctx, rival.ID, c.ID))

	rows, page, err := r.ListContacts(ctx, rival.ID, ContactFilter{}, defaultParams(50))
	require.NoError(t, err)
	assert.Empty(t, rows)
	assert.Zero(t, page.Total)
}
