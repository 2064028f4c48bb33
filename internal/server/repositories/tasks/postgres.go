package tasks

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/dmitrijs2005/taskkeeper/internal/common"
	"github.com/dmitrijs2005/taskkeeper/internal/dbx"
	"github.com/dmitrijs2005/taskkeeper/internal/server/models"
)

type PostgresRepository struct {
	db dbx.DBTX
}

func NewPostgresRepository(db dbx.DBTX) *PostgresRepository {
	return &PostgresRepository{db: db}
}

func (r *PostgresRepository) Create(ctx context.Context, task *models.Task) (*models.Task, error) {

	query :=
		`INSERT INTO tasks (id, user_id, title, description)
		 VALUES ($1, $2, $3, $4)
		 RETURNING completed, created_at, updated_at
		 `

	err := r.db.QueryRowContext(ctx, query,
		task.ID, task.UserID, task.Title, task.Description).Scan(&task.Completed, &task.CreatedAt, &task.UpdatedAt)

	if err != nil {
		return nil, fmt.Errorf("db error: %w", err)
	}

	return task, nil
}

func (r *PostgresRepository) Get(ctx context.Context, ownerID, taskID string) (*models.Task, error) {
	query :=
		`SELECT id, user_id, title, description, completed, created_at, updated_at FROM tasks
		 WHERE id = $1 AND user_id = $2
		 `

	task := &models.Task{}
	err := r.db.QueryRowContext(ctx, query, taskID, ownerID).Scan(
		&task.ID, &task.UserID, &task.Title, &task.Description, &task.Completed, &task.CreatedAt, &task.UpdatedAt)

	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, common.ErrorNotFound
		}
		return nil, fmt.Errorf("db error: %w", err)
	}

	return task, nil
}

func (r *PostgresRepository) List(ctx context.Context, ownerID string) ([]*models.Task, error) {
	query :=
		`SELECT id, user_id, title, description, completed, created_at, updated_at FROM tasks
		 WHERE user_id = $1
		 ORDER BY created_at
		 `

	rows, err := r.db.QueryContext(ctx, query, ownerID)
	if err != nil {
		return nil, fmt.Errorf("db error: %w", err)
	}
	defer rows.Close()

	result := make([]*models.Task, 0)
	for rows.Next() {
		task := &models.Task{}
		if err := rows.Scan(
			&task.ID, &task.UserID, &task.Title, &task.Description, &task.Completed, &task.CreatedAt, &task.UpdatedAt,
		); err != nil {
			return nil, err
		}
		result = append(result, task)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return result, nil
}

func (r *PostgresRepository) Update(ctx context.Context, ownerID, taskID, title, description string, completed bool) (*models.Task, error) {
	query :=
		`UPDATE tasks SET title = $1, description = $2, completed = $3, updated_at = now()
		 WHERE id = $4 AND user_id = $5
		 RETURNING id, user_id, title, description, completed, created_at, updated_at
		 `

	task := &models.Task{}
	err := r.db.QueryRowContext(ctx, query, title, description, completed, taskID, ownerID).Scan(
		&task.ID, &task.UserID, &task.Title, &task.Description, &task.Completed, &task.CreatedAt, &task.UpdatedAt)

	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, common.ErrorNotFound
		}
		return nil, fmt.Errorf("db error: %w", err)
	}

	return task, nil
}

func (r *PostgresRepository) Toggle(ctx context.Context, ownerID, taskID string) (*models.Task, error) {
	query :=
		`UPDATE tasks SET completed = NOT completed, updated_at = now()
		 WHERE id = $1 AND user_id = $2
		 RETURNING id, user_id, title, description, completed, created_at, updated_at
		 `

	task := &models.Task{}
	err := r.db.QueryRowContext(ctx, query, taskID, ownerID).Scan(
		&task.ID, &task.UserID, &task.Title, &task.Description, &task.Completed, &task.CreatedAt, &task.UpdatedAt)

	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, common.ErrorNotFound
		}
		return nil, fmt.Errorf("db error: %w", err)
	}

	return task, nil
}

func (r *PostgresRepository) Delete(ctx context.Context, ownerID, taskID string) error {
	query := `DELETE FROM tasks WHERE id = $1 AND user_id = $2`

	res, err := r.db.ExecContext(ctx, query, taskID, ownerID)
	if err != nil {
		return fmt.Errorf("db error: %w", err)
	}

	n, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("rows affected error: %w", err)
	}
	if n == 0 {
		return common.ErrorNotFound
	}

	return nil
}
