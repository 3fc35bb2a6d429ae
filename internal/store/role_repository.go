package store

import (
	"time"

	"github.com/zhingPin/gsoe-contracts/internal/models"
)

// RoleRepository handles the capability store: which accounts hold which roles
type RoleRepository struct {
	db *Database
}

// NewRoleRepository creates a new RoleRepository
func NewRoleRepository(db *Database) *RoleRepository {
	return &RoleRepository{
		db: db,
	}
}

// HasRole reports whether the account holds the role
func (r *RoleRepository) HasRole(role models.Role, account string) (bool, error) {
	var exists bool
	query := `SELECT EXISTS (SELECT 1 FROM role_grants WHERE account = $1 AND role = $2)`
	err := r.db.GetDB().Get(&exists, query, account, string(role))
	return exists, err
}

// Grant grants a role to an account. Granting an already-held role is a no-op.
func (r *RoleRepository) Grant(role models.Role, account, grantedBy string) error {
	query := `INSERT INTO role_grants (account, role, granted_by, granted_at)
			  VALUES ($1, $2, $3, $4)
			  ON CONFLICT (account, role) DO NOTHING`
	_, err := r.db.GetDB().Exec(query, account, string(role), grantedBy, time.Now())
	return err
}

// Revoke removes a role from an account
func (r *RoleRepository) Revoke(role models.Role, account string) error {
	query := `DELETE FROM role_grants WHERE account = $1 AND role = $2`
	_, err := r.db.GetDB().Exec(query, account, string(role))
	return err
}

// GrantsByAccount retrieves all roles held by an account
func (r *RoleRepository) GrantsByAccount(account string) ([]models.RoleGrant, error) {
	grants := []models.RoleGrant{}
	query := `SELECT account, role, granted_by, granted_at FROM role_grants
			  WHERE account = $1 ORDER BY granted_at ASC`
	err := r.db.GetDB().Select(&grants, query, account)
	return grants, err
}
