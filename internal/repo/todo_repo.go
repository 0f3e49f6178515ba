package repo

import (
	"context"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	dom "github.com/hejeong/todolist-api/internal/domain"
)

// TodoRepo provides todo persistence. Every operation takes an explicit
// owner; there is no unscoped access path. A row owned by someone else is
// indistinguishable from an absent row (pgx.ErrNoRows either way).
type TodoRepo interface {
	Create(ctx context.Context, t dom.Todo) (dom.Todo, error)
	GetByID(ctx context.Context, ownerID, id int64) (dom.Todo, error)
	List(ctx context.Context, ownerID int64) ([]dom.Todo, error)
	Update(ctx context.Context, ownerID, id int64, patch dom.Todo) (dom.Todo, error)
	Delete(ctx context.Context, ownerID, id int64) error
}

type PGTodoRepo struct {
	db *pgxpool.Pool
}

func NewPGTodoRepo(db *pgxpool.Pool) *PGTodoRepo {
	return &PGTodoRepo{db: db}
}

func (r *PGTodoRepo) Create(ctx context.Context, t dom.Todo) (dom.Todo, error) {
	query := `
		INSERT INTO todos (title, memo, owner_id)
		VALUES ($1, $2, $3)
		RETURNING id, title, memo, created, date_completed, owner_id`
	var out dom.Todo
	err := r.db.QueryRow(ctx, query, t.Title, t.Memo, t.OwnerID).Scan(
		&out.ID, &out.Title, &out.Memo, &out.Created, &out.DateCompleted, &out.OwnerID,
	)
	return out, err
}

func (r *PGTodoRepo) GetByID(ctx context.Context, ownerID, id int64) (dom.Todo, error) {
	query := `
		SELECT id, title, memo, created, date_completed, owner_id
		FROM todos WHERE id = $1 AND owner_id = $2`
	var t dom.Todo
	err := r.db.QueryRow(ctx, query, id, ownerID).Scan(
		&t.ID, &t.Title, &t.Memo, &t.Created, &t.DateCompleted, &t.OwnerID,
	)
	return t, err
}

func (r *PGTodoRepo) List(ctx context.Context, ownerID int64) ([]dom.Todo, error) {
	// Creation order.
	query := `
		SELECT id, title, memo, created, date_completed, owner_id
		FROM todos WHERE owner_id = $1 ORDER BY id`
	rows, err := r.db.Query(ctx, query, ownerID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	var list []dom.Todo
	for rows.Next() {
		var t dom.Todo
		if err := rows.Scan(&t.ID, &t.Title, &t.Memo, &t.Created,
			&t.DateCompleted, &t.OwnerID); err != nil {
			return nil, err
		}
		list = append(list, t)
	}
	return list, rows.Err()
}

func (r *PGTodoRepo) Update(ctx context.Context, ownerID, id int64, patch dom.Todo) (dom.Todo, error) {
	// id, owner_id and created are never written after insert.
	query := `
		UPDATE todos SET title = $3, memo = $4, date_completed = $5
		WHERE id = $1 AND owner_id = $2
		RETURNING id, title, memo, created, date_completed, owner_id`
	var t dom.Todo
	err := r.db.QueryRow(ctx, query, id, ownerID, patch.Title, patch.Memo, patch.DateCompleted).Scan(
		&t.ID, &t.Title, &t.Memo, &t.Created, &t.DateCompleted, &t.OwnerID,
	)
	return t, err
}

func (r *PGTodoRepo) Delete(ctx context.Context, ownerID, id int64) error {
	tag, err := r.db.Exec(ctx, `DELETE FROM todos WHERE id = $1 AND owner_id = $2`, id, ownerID)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return pgx.ErrNoRows
	}
	return nil
}
