// Package authz enforces the ownership rule: an identity may only act
// on a resource whose owner reference points at it. Denial is reported
// as not-found so that foreign IDs are indistinguishable from absent
// ones. Global resources (alerts, plans, templates) never pass through
// this package.
package authz

import (
	"nexus/internal/models"
	"nexus/internal/repo"
)

// Owned is any entity carrying an owner reference.
type Owned interface {
	OwnedBy() uint
}

// Check returns nil when identity owns res, repo.ErrNotFound otherwise.
func Check(identity *models.User, res Owned) error {
	if identity == nil || res == nil || res.OwnedBy() != identity.ID {
		return repo.ErrNotFound
	}
	return nil
}
