package repository

import (
	"context"
	"fmt"
	"strings"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/spec-kit/citizenloop/internal/domain"
)

// ComplaintFilter narrows complaint reads. Nil fields do not constrain.
type ComplaintFilter struct {
	OwnerID           *string
	Status            *domain.ComplaintStatus
	Category          *domain.ComplaintCategory
	SDGGoal           *string
	SDGGoalIgnoreCase bool
	Limit             int
	Offset            int
}

// ComplaintRepository encapsulates complaint persistence.
type ComplaintRepository interface {
	Create(ctx context.Context, complaint *domain.Complaint) error
	Update(ctx context.Context, complaint *domain.Complaint) error
	Delete(ctx context.Context, id string) error
	GetByID(ctx context.Context, id string) (*domain.Complaint, error)
	GetByPublicID(ctx context.Context, complaintID string) (*domain.Complaint, error)
	List(ctx context.Context, filter ComplaintFilter) ([]domain.Complaint, error)
	Count(ctx context.Context, filter ComplaintFilter) (int64, error)
}

type complaintRepository struct {
	pool *pgxpool.Pool
}

// NewComplaintRepository instantiates repository.
func NewComplaintRepository(pool *pgxpool.Pool) ComplaintRepository {
	return &complaintRepository{pool: pool}
}

const complaintColumns = `id, complaint_id, owner_user_id, title, description, category, latitude, longitude,
               image_url, status, sdg_goal, created_at, updated_at, resolved_at`

func (r *complaintRepository) Create(ctx context.Context, complaint *domain.Complaint) error {
	const query = `
        INSERT INTO complaints (complaint_id, owner_user_id, title, description, category, latitude, longitude, image_url, status, sdg_goal)
        VALUES ($1,$2,$3,$4,$5,$6,$7,$8,$9,$10)
        RETURNING id, created_at, updated_at`
	return r.pool.QueryRow(ctx, query,
		complaint.ComplaintID,
		complaint.OwnerID,
		complaint.Title,
		complaint.Description,
		complaint.Category,
		complaint.Latitude,
		complaint.Longitude,
		complaint.ImageURL,
		complaint.Status,
		complaint.SDGGoal,
	).Scan(&complaint.ID, &complaint.CreatedAt, &complaint.UpdatedAt)
}

// Update persists every mutable field. resolved_at is clamped to created_at
// so an app/database clock skew cannot place resolution before creation.
func (r *complaintRepository) Update(ctx context.Context, complaint *domain.Complaint) error {
	const query = `
        UPDATE complaints SET title=$1, description=$2, category=$3, latitude=$4, longitude=$5, image_url=$6,
            status=$7, sdg_goal=$8,
            resolved_at=CASE WHEN $9::timestamptz IS NULL THEN NULL ELSE GREATEST($9::timestamptz, created_at) END,
            updated_at=NOW()
        WHERE id=$10
        RETURNING updated_at, resolved_at`
	return r.pool.QueryRow(ctx, query,
		complaint.Title,
		complaint.Description,
		complaint.Category,
		complaint.Latitude,
		complaint.Longitude,
		complaint.ImageURL,
		complaint.Status,
		complaint.SDGGoal,
		complaint.ResolvedAt,
		complaint.ID,
	).Scan(&complaint.UpdatedAt, &complaint.ResolvedAt)
}

func (r *complaintRepository) Delete(ctx context.Context, id string) error {
	cmd, err := r.pool.Exec(ctx, `DELETE FROM complaints WHERE id=$1`, id)
	if err != nil {
		return err
	}
	if cmd.RowsAffected() == 0 {
		return pgx.ErrNoRows
	}
	return nil
}

func (r *complaintRepository) GetByID(ctx context.Context, id string) (*domain.Complaint, error) {
	query := `SELECT ` + complaintColumns + ` FROM complaints WHERE id=$1`
	return r.fetchSingle(ctx, query, id)
}

func (r *complaintRepository) GetByPublicID(ctx context.Context, complaintID string) (*domain.Complaint, error) {
	query := `SELECT ` + complaintColumns + ` FROM complaints WHERE complaint_id=$1`
	return r.fetchSingle(ctx, query, complaintID)
}

func (r *complaintRepository) fetchSingle(ctx context.Context, query string, arg any) (*domain.Complaint, error) {
	complaint, err := scanComplaint(r.pool.QueryRow(ctx, query, arg))
	if err != nil {
		return nil, err
	}
	return complaint, nil
}

func (r *complaintRepository) List(ctx context.Context, filter ComplaintFilter) ([]domain.Complaint, error) {
	where, args := complaintWhere(filter)
	query := fmt.Sprintf(`SELECT %s FROM complaints WHERE %s ORDER BY created_at DESC`, complaintColumns, where)
	if filter.Limit > 0 {
		offset := filter.Offset
		if offset < 0 {
			offset = 0
		}
		query += fmt.Sprintf(" LIMIT %d OFFSET %d", filter.Limit, offset)
	}

	rows, err := r.pool.Query(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	result := []domain.Complaint{}
	for rows.Next() {
		complaint, err := scanComplaint(rows)
		if err != nil {
			return nil, err
		}
		result = append(result, *complaint)
	}
	return result, rows.Err()
}

func (r *complaintRepository) Count(ctx context.Context, filter ComplaintFilter) (int64, error) {
	where, args := complaintWhere(filter)
	var count int64
	err := r.pool.QueryRow(ctx, `SELECT COUNT(*) FROM complaints WHERE `+where, args...).Scan(&count)
	return count, err
}

func complaintWhere(filter ComplaintFilter) (string, []any) {
	clauses := []string{"1=1"}
	args := []any{}

	if filter.OwnerID != nil {
		args = append(args, *filter.OwnerID)
		clauses = append(clauses, fmt.Sprintf("owner_user_id=$%d", len(args)))
	}
	if filter.Status != nil {
		args = append(args, *filter.Status)
		clauses = append(clauses, fmt.Sprintf("status=$%d", len(args)))
	}
	if filter.Category != nil {
		args = append(args, *filter.Category)
		clauses = append(clauses, fmt.Sprintf("category=$%d", len(args)))
	}
	if filter.SDGGoal != nil {
		args = append(args, *filter.SDGGoal)
		if filter.SDGGoalIgnoreCase {
			clauses = append(clauses, fmt.Sprintf("LOWER(sdg_goal)=LOWER($%d)", len(args)))
		} else {
			clauses = append(clauses, fmt.Sprintf("sdg_goal=$%d", len(args)))
		}
	}
	return strings.Join(clauses, " AND "), args
}

func scanComplaint(row pgx.Row) (*domain.Complaint, error) {
	var complaint domain.Complaint
	if err := row.Scan(
		&complaint.ID,
		&complaint.ComplaintID,
		&complaint.OwnerID,
		&complaint.Title,
		&complaint.Description,
		&complaint.Category,
		&complaint.Latitude,
		&complaint.Longitude,
		&complaint.ImageURL,
		&complaint.Status,
		&complaint.SDGGoal,
		&complaint.CreatedAt,
		&complaint.UpdatedAt,
		&complaint.ResolvedAt,
	); err != nil {
		return nil, err
	}
	return &complaint, nil
}
