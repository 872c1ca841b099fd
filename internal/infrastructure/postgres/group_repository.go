package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jhoicas/Mercadeo-api/internal/domain/entity"
	"github.com/jhoicas/Mercadeo-api/internal/domain/repository"
)

var _ repository.GroupRepository = (*GroupRepo)(nil)

// GroupRepo implementación de GroupRepository y su membresía (usable con pool o tx).
type GroupRepo struct {
	q Querier
}

// NewGroupRepository construye el adaptador. Pasar pool o tx (Querier).
func NewGroupRepository(q Querier) *GroupRepo {
	return &GroupRepo{q: q}
}

// Create persiste un nuevo grupo.
func (r *GroupRepo) Create(ctx context.Context, group *entity.Group) error {
	query := `
		INSERT INTO groups (id, tenant_id, name, deleted, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6)`
	_, err := r.q.Exec(ctx, query,
		group.ID, group.TenantID, group.Name, group.Deleted, group.CreatedAt, group.UpdatedAt,
	)
	if err != nil {
		return fmt.Errorf("insert group: %w", err)
	}
	return nil
}

// GetByID obtiene un grupo no borrado por ID.
func (r *GroupRepo) GetByID(ctx context.Context, id string) (*entity.Group, error) {
	query := `
		SELECT id, tenant_id, name, deleted, created_at, updated_at
		FROM groups WHERE id = $1 AND deleted = FALSE`
	var g entity.Group
	err := r.q.QueryRow(ctx, query, id).Scan(
		&g.ID, &g.TenantID, &g.Name, &g.Deleted, &g.CreatedAt, &g.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get group: %w", err)
	}
	return &g, nil
}

// Update actualiza un grupo.
func (r *GroupRepo) Update(ctx context.Context, group *entity.Group) error {
	query := `UPDATE groups SET name = $2, updated_at = $3 WHERE id = $1 AND deleted = FALSE`
	_, err := r.q.Exec(ctx, query, group.ID, group.Name, group.UpdatedAt)
	if err != nil {
		return fmt.Errorf("update group: %w", err)
	}
	return nil
}

// ListByTenant lista grupos no borrados del tenant con paginación.
func (r *GroupRepo) ListByTenant(ctx context.Context, tenantID string, limit, offset int) ([]*entity.Group, error) {
	query := `
		SELECT id, tenant_id, name, deleted, created_at, updated_at
		FROM groups WHERE tenant_id = $1 AND deleted = FALSE
		ORDER BY name LIMIT $2 OFFSET $3`
	rows, err := r.q.Query(ctx, query, tenantID, limit, offset)
	if err != nil {
		return nil, fmt.Errorf("list groups: %w", err)
	}
	defer rows.Close()
	var list []*entity.Group
	for rows.Next() {
		var g entity.Group
		if err := rows.Scan(&g.ID, &g.TenantID, &g.Name, &g.Deleted, &g.CreatedAt, &g.UpdatedAt); err != nil {
			return nil, fmt.Errorf("scan group: %w", err)
		}
		list = append(list, &g)
	}
	return list, rows.Err()
}

// SoftDelete marca el grupo como borrado.
func (r *GroupRepo) SoftDelete(ctx context.Context, id string) error {
	_, err := r.q.Exec(ctx,
		`UPDATE groups SET deleted = TRUE, updated_at = now() WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("soft delete group: %w", err)
	}
	return nil
}

// GetLiveMember devuelve la membresía no borrada del par (contacto, grupo).
func (r *GroupRepo) GetLiveMember(ctx context.Context, contactID, groupID string) (*entity.GroupMember, error) {
	query := `
		SELECT id, contact_id, group_id, deleted, created_at
		FROM group_members WHERE contact_id = $1 AND group_id = $2 AND deleted = FALSE
		LIMIT 1`
	var m entity.GroupMember
	err := r.q.QueryRow(ctx, query, contactID, groupID).Scan(
		&m.ID, &m.ContactID, &m.GroupID, &m.Deleted, &m.CreatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get group member: %w", err)
	}
	return &m, nil
}

// AddMember inserta una membresía.
func (r *GroupRepo) AddMember(ctx context.Context, member *entity.GroupMember) error {
	query := `
		INSERT INTO group_members (id, contact_id, group_id, deleted, created_at)
		VALUES ($1, $2, $3, $4, $5)`
	_, err := r.q.Exec(ctx, query,
		member.ID, member.ContactID, member.GroupID, member.Deleted, member.CreatedAt,
	)
	if err != nil {
		return fmt.Errorf("insert group member: %w", err)
	}
	return nil
}

// ListMembers lista las membresías vivas de un grupo con paginación.
func (r *GroupRepo) ListMembers(ctx context.Context, groupID string, limit, offset int) ([]*entity.GroupMember, error) {
	query := `
		SELECT id, contact_id, group_id, deleted, created_at
		FROM group_members WHERE group_id = $1 AND deleted = FALSE
		ORDER BY id LIMIT $2 OFFSET $3`
	rows, err := r.q.Query(ctx, query, groupID, limit, offset)
	if err != nil {
		return nil, fmt.Errorf("list group members: %w", err)
	}
	defer rows.Close()
	var list []*entity.GroupMember
	for rows.Next() {
		var m entity.GroupMember
		if err := rows.Scan(&m.ID, &m.ContactID, &m.GroupID, &m.Deleted, &m.CreatedAt); err != nil {
			return nil, fmt.Errorf("scan group member: %w", err)
		}
		list = append(list, &m)
	}
	return list, rows.Err()
}
