package postgres

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/boardflow/backend/domain"
	"github.com/boardflow/backend/repository"
)

type taskRepository struct {
	pool *pgxpool.Pool
}

// NewTaskRepository returns a Postgres-backed implementation of TaskRepository.
func NewTaskRepository(pool *pgxpool.Pool) repository.TaskRepository {
	return &taskRepository{pool: pool}
}

const taskFields = `
	t.id, t.column_id, t.title, t.description, t.tag, t.tag_color,
	t.priority, t.position, t.due_date, t.start_date, t.end_date,
	t.checklist_count, t.comment_count, t.completed_at, t.is_archived,
	t.created_at, t.updated_at,
	COALESCE(ARRAY_AGG(a.member_id) FILTER (WHERE a.member_id IS NOT NULL), '{}')`

const taskJoin = `
	FROM tasks t
	LEFT JOIN task_assignees a ON a.task_id = t.id`

func (r *taskRepository) GetByID(ctx context.Context, id string) (*domain.Task, error) {
	const query = `SELECT ` + taskFields + taskJoin + `
	WHERE t.id = $1
	GROUP BY t.id`
	return scanTask(r.pool.QueryRow(ctx, query, id))
}

func (r *taskRepository) ListByColumn(ctx context.Context, columnID string) ([]domain.Task, error) {
	const query = `SELECT ` + taskFields + taskJoin + `
	WHERE t.column_id = $1
	GROUP BY t.id
	ORDER BY t.position ASC, t.created_at ASC`
	return r.queryTasks(ctx, query, columnID)
}

func (r *taskRepository) ListByBoard(ctx context.Context, boardID string) ([]domain.Task, error) {
	const query = `SELECT ` + taskFields + taskJoin + `
	JOIN columns c ON c.id = t.column_id
	WHERE c.board_id = $1
	GROUP BY t.id
	ORDER BY t.position ASC, t.created_at ASC`
	return r.queryTasks(ctx, query, boardID)
}

func (r *taskRepository) queryTasks(ctx context.Context, query string, arg interface{}) ([]domain.Task, error) {
	rows, err := r.pool.Query(ctx, query, arg)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var tasks []domain.Task
	for rows.Next() {
		task, err := scanTask(rows)
		if err != nil {
			return nil, err
		}
		tasks = append(tasks, *task)
	}
	return tasks, rows.Err()
}

func (r *taskRepository) Create(ctx context.Context, task *domain.Task) (*domain.Task, error) {
	if task == nil {
		return nil, domain.ErrInvalidPayload
	}
	if task.ID == "" {
		task.ID = uuid.NewString()
	}
	if task.Priority == "" {
		task.Priority = domain.PriorityMedium
	}

	const query = `
	INSERT INTO tasks (id, column_id, title, description, tag, tag_color,
		priority, position, due_date, start_date, end_date, completed_at)
	VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12)
	RETURNING created_at, updated_at
	`
	if err := r.pool.QueryRow(ctx, query,
		task.ID,
		task.ColumnID,
		task.Title,
		task.Description,
		task.Tag,
		task.TagColor,
		task.Priority,
		task.Order,
		task.DueDate,
		task.StartDate,
		task.EndDate,
		task.CompletedAt,
	).Scan(&task.CreatedAt, &task.UpdatedAt); err != nil {
		return nil, err
	}

	if task.AssigneeIDs == nil {
		task.AssigneeIDs = []string{}
	}
	return task, nil
}

func (r *taskRepository) Update(ctx context.Context, task *domain.Task) error {
	if task == nil {
		return domain.ErrInvalidPayload
	}

	const query = `
	UPDATE tasks
	SET title = $2,
		description = $3,
		tag = $4,
		tag_color = $5,
		priority = $6,
		position = $7,
		due_date = $8,
		start_date = $9,
		end_date = $10,
		is_archived = $11,
		updated_at = NOW()
	WHERE id = $1
	RETURNING updated_at
	`
	if err := r.pool.QueryRow(ctx, query,
		task.ID,
		task.Title,
		task.Description,
		task.Tag,
		task.TagColor,
		task.Priority,
		task.Order,
		task.DueDate,
		task.StartDate,
		task.EndDate,
		task.IsArchived,
	).Scan(&task.UpdatedAt); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return domain.ErrTaskNotFound
		}
		return err
	}
	return nil
}

func (r *taskRepository) Move(ctx context.Context, id, columnID string, order int, completedAt *time.Time) error {
	const query = `
	UPDATE tasks
	SET column_id = $2,
		position = $3,
		completed_at = $4,
		updated_at = NOW()
	WHERE id = $1
	`
	tag, err := r.pool.Exec(ctx, query, id, columnID, order, completedAt)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return domain.ErrTaskNotFound
	}
	return nil
}

func (r *taskRepository) RecomputeCompletion(ctx context.Context, columnID string, done bool) error {
	query := `UPDATE tasks SET completed_at = NOW(), updated_at = NOW() WHERE column_id = $1 AND completed_at IS NULL`
	if !done {
		query = `UPDATE tasks SET completed_at = NULL, updated_at = NOW() WHERE column_id = $1 AND completed_at IS NOT NULL`
	}
	_, err := r.pool.Exec(ctx, query, columnID)
	return err
}

func (r *taskRepository) UpdatePositions(ctx context.Context, updates []repository.PositionUpdate) error {
	const query = `UPDATE tasks SET position = $2, updated_at = NOW() WHERE id = $1`
	return applyPositions(ctx, r.pool, query, updates)
}

func (r *taskRepository) SetAssignees(ctx context.Context, id string, memberIDs []string) error {
	batch := &pgx.Batch{}
	batch.Queue(`DELETE FROM task_assignees WHERE task_id = $1`, id)
	for _, memberID := range memberIDs {
		batch.Queue(`INSERT INTO task_assignees (task_id, member_id) VALUES ($1, $2) ON CONFLICT DO NOTHING`, id, memberID)
	}

	results := r.pool.SendBatch(ctx, batch)
	defer results.Close()

	for i := 0; i < len(memberIDs)+1; i++ {
		if _, err := results.Exec(); err != nil {
			return err
		}
	}
	return nil
}

func (r *taskRepository) AdjustCommentCount(ctx context.Context, id string, delta int) error {
	const query = `
	UPDATE tasks
	SET comment_count = GREATEST(comment_count + $2, 0), updated_at = NOW()
	WHERE id = $1
	`
	tag, err := r.pool.Exec(ctx, query, id, delta)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return domain.ErrTaskNotFound
	}
	return nil
}

func (r *taskRepository) AdjustChecklistCount(ctx context.Context, id string, delta int) error {
	const query = `
	UPDATE tasks
	SET checklist_count = GREATEST(checklist_count + $2, 0), updated_at = NOW()
	WHERE id = $1
	`
	tag, err := r.pool.Exec(ctx, query, id, delta)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return domain.ErrTaskNotFound
	}
	return nil
}

func (r *taskRepository) Delete(ctx context.Context, id string) error {
	const query = `DELETE FROM tasks WHERE id = $1`
	tag, err := r.pool.Exec(ctx, query, id)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return domain.ErrTaskNotFound
	}
	return nil
}

func scanTask(row pgx.Row) (*domain.Task, error) {
	var task domain.Task
	if err := row.Scan(
		&task.ID,
		&task.ColumnID,
		&task.Title,
		&task.Description,
		&task.Tag,
		&task.TagColor,
		&task.Priority,
		&task.Order,
		&task.DueDate,
		&task.StartDate,
		&task.EndDate,
		&task.ChecklistCount,
		&task.CommentCount,
		&task.CompletedAt,
		&task.IsArchived,
		&task.CreatedAt,
		&task.UpdatedAt,
		&task.AssigneeIDs,
	); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, domain.ErrTaskNotFound
		}
		return nil, err
	}
	if task.AssigneeIDs == nil {
		task.AssigneeIDs = []string{}
	}
	return &task, nil
}
