package authz

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"nexus/internal/models"
	"nexus/internal/repo"
)

func TestCheck_Owner(t *testing.T) {
	owner := &models.User{ID: 7}
	srv := models.Server{ID: 1, OwnerID: 7}

	assert.NoError(t, Check(owner, srv))
}

func TestCheck_ForeignLooksLikeMissing(t *testing.T) {
	intruder := &models.User{ID: 8}
	srv := models.Server{ID: 1, OwnerID: 7}

	// A foreign resource must be indistinguishable from an absent one.
	assert.ErrorIs(t, Check(intruder, srv), repo.ErrNotFound)
	assert.ErrorIs(t, Check(intruder, nil), repo.ErrNotFound)
	assert.ErrorIs(t, Check(nil, srv), repo.ErrNotFound)
}

func TestCheck_AllOwnedTypes(t *testing.T) {
	owner := &models.User{ID: 3}

	for _, res := range []Owned{
		models.Server{OwnerID: 3},
		models.CRMLead{OwnerID: 3},
		models.CloudFile{OwnerID: 3},
		models.HostingOrder{UserID: 3},
	} {
		assert.NoError(t, Check(owner, res))
	}
	for _, res := range []Owned{
		models.Server{OwnerID: 4},
		models.CRMLead{OwnerID: 4},
		models.CloudFile{OwnerID: 4},
		models.HostingOrder{UserID: 4},
	} {
		assert.ErrorIs(t, Check(owner, res), repo.ErrNotFound)
	}
}
