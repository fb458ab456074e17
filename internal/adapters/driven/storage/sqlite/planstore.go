package sqlite

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/curio-labs/curio-cli/internal/core/domain"
	"github.com/curio-labs/curio-cli/internal/core/ports/driven"
)

// stepAttempts bounds how often an AppendModule loser retries after a
// step number collision before giving up.
const stepAttempts = 5

// planStore implements driven.PlanStore.
type planStore struct {
	store *Store
}

var _ driven.PlanStore = (*planStore)(nil)

// CreatePlan stores a new plan. The topic column is UNIQUE; a collision
// surfaces as domain.ErrAlreadyExists.
func (s *planStore) CreatePlan(ctx context.Context, plan *domain.Plan) error {
	_, err := s.store.db.ExecContext(ctx, `
		INSERT INTO plans (id, topic, embedding, created_at)
		VALUES (?, ?, ?, ?)
	`, plan.ID, plan.Topic, float32SliceToBytes(plan.Embedding), plan.CreatedAt)

	if isUniqueViolation(err) {
		return fmt.Errorf("topic %q: %w", plan.Topic, domain.ErrAlreadyExists)
	}
	if err != nil {
		return fmt.Errorf("saving plan: %w", err)
	}
	return nil
}

// GetPlan retrieves a plan by ID with its modules in step order.
func (s *planStore) GetPlan(ctx context.Context, id string) (*domain.Plan, error) {
	row := s.store.db.QueryRowContext(ctx, `
		SELECT id, topic, embedding, created_at
		FROM plans WHERE id = ?
	`, id)

	return s.scanPlanWithModules(ctx, row)
}

// GetPlanByTopic retrieves a plan by exact, case-sensitive topic.
func (s *planStore) GetPlanByTopic(ctx context.Context, topic string) (*domain.Plan, error) {
	row := s.store.db.QueryRowContext(ctx, `
		SELECT id, topic, embedding, created_at
		FROM plans WHERE topic = ?
	`, topic)

	return s.scanPlanWithModules(ctx, row)
}

// FindPlanByTopicFold retrieves a plan by case-insensitive topic match.
func (s *planStore) FindPlanByTopicFold(ctx context.Context, topic string) (*domain.Plan, error) {
	// NOCASE folds ASCII only, which matches how topics are typed in.
	row := s.store.db.QueryRowContext(ctx, `
		SELECT id, topic, embedding, created_at
		FROM plans WHERE topic = ? COLLATE NOCASE
	`, topic)

	return s.scanPlanWithModules(ctx, row)
}

// ListPlans returns all plans without modules, oldest first.
func (s *planStore) ListPlans(ctx context.Context) ([]domain.Plan, error) {
	rows, err := s.store.db.QueryContext(ctx, `
		SELECT id, topic, embedding, created_at
		FROM plans ORDER BY created_at, id
	`)
	if err != nil {
		return nil, fmt.Errorf("querying plans: %w", err)
	}
	defer rows.Close()

	var plans []domain.Plan //nolint:prealloc // size unknown from query
	for rows.Next() {
		var plan domain.Plan
		var embeddingBlob []byte
		var createdAt sql.NullTime
		if err := rows.Scan(&plan.ID, &plan.Topic, &embeddingBlob, &createdAt); err != nil {
			return nil, fmt.Errorf("scanning plan: %w", err)
		}
		plan.Embedding = bytesToFloat32Slice(embeddingBlob)
		if createdAt.Valid {
			plan.CreatedAt = createdAt.Time
		}
		plans = append(plans, plan)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterating plans: %w", err)
	}

	return plans, nil
}

// ListPlanEmbeddings returns every plan's ID, creation time and embedding.
func (s *planStore) ListPlanEmbeddings(ctx context.Context) ([]driven.PlanEmbedding, error) {
	rows, err := s.store.db.QueryContext(ctx, `
		SELECT id, embedding, created_at
		FROM plans ORDER BY created_at, id
	`)
	if err != nil {
		return nil, fmt.Errorf("querying plan embeddings: %w", err)
	}
	defer rows.Close()

	var entries []driven.PlanEmbedding //nolint:prealloc // size unknown from query
	for rows.Next() {
		var entry driven.PlanEmbedding
		var embeddingBlob []byte
		var createdAt sql.NullTime
		if err := rows.Scan(&entry.PlanID, &embeddingBlob, &createdAt); err != nil {
			return nil, fmt.Errorf("scanning plan embedding: %w", err)
		}
		entry.Embedding = bytesToFloat32Slice(embeddingBlob)
		if createdAt.Valid {
			entry.CreatedAt = createdAt.Time
		}
		entries = append(entries, entry)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterating plan embeddings: %w", err)
	}

	return entries, nil
}

// AppendModule assigns the plan's next step number and inserts the
// module in one transaction. Two writers racing on the same plan compute
// the same number; UNIQUE(plan_id, step_number) rejects the loser, who
// retries with a fresh count.
func (s *planStore) AppendModule(ctx context.Context, module *domain.Module) error {
	var err error
	for attempt := 0; attempt < stepAttempts; attempt++ {
		err = s.appendModuleOnce(ctx, module)
		if err == nil || !errors.Is(err, domain.ErrStepConflict) {
			return err
		}
	}
	return fmt.Errorf("appending module to plan %s: %w", module.PlanID, err)
}

func (s *planStore) appendModuleOnce(ctx context.Context, module *domain.Module) error {
	articleJSON, err := json.Marshal(module.Article)
	if err != nil {
		return fmt.Errorf("marshalling article: %w", err)
	}
	videosJSON, err := json.Marshal(module.Videos)
	if err != nil {
		return fmt.Errorf("marshalling videos: %w", err)
	}

	tx, err := s.store.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("beginning transaction: %w", err)
	}
	defer tx.Rollback() //nolint:errcheck

	var planCount int
	if err := tx.QueryRowContext(ctx,
		"SELECT COUNT(*) FROM plans WHERE id = ?", module.PlanID).Scan(&planCount); err != nil {
		return fmt.Errorf("checking plan: %w", err)
	}
	if planCount == 0 {
		return fmt.Errorf("plan %s: %w", module.PlanID, domain.ErrNotFound)
	}

	var moduleCount int
	if err := tx.QueryRowContext(ctx,
		"SELECT COUNT(*) FROM modules WHERE plan_id = ?", module.PlanID).Scan(&moduleCount); err != nil {
		return fmt.Errorf("counting modules: %w", err)
	}
	step := moduleCount + 1

	_, err = tx.ExecContext(ctx, `
		INSERT INTO modules (id, plan_id, step_number, title, is_complete, article, videos, created_at)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?)
	`, module.ID, module.PlanID, step, module.Title, module.IsComplete,
		string(articleJSON), string(videosJSON), module.CreatedAt)

	if isUniqueViolation(err) {
		return fmt.Errorf("step %d taken: %w", step, domain.ErrStepConflict)
	}
	if err != nil {
		return fmt.Errorf("saving module: %w", err)
	}

	if err := tx.Commit(); err != nil {
		if isUniqueViolation(err) {
			return fmt.Errorf("step %d taken: %w", step, domain.ErrStepConflict)
		}
		return fmt.Errorf("committing transaction: %w", err)
	}

	module.StepNumber = step
	return nil
}

// GetModule retrieves a module by ID.
func (s *planStore) GetModule(ctx context.Context, id string) (*domain.Module, error) {
	row := s.store.db.QueryRowContext(ctx, `
		SELECT id, plan_id, step_number, title, is_complete, article, videos, created_at
		FROM modules WHERE id = ?
	`, id)

	module, err := scanModuleRow(row)
	if err != nil {
		return nil, err
	}
	return module, nil
}

// CompleteModule marks a module as complete.
func (s *planStore) CompleteModule(ctx context.Context, id string) error {
	result, err := s.store.db.ExecContext(ctx,
		"UPDATE modules SET is_complete = 1 WHERE id = ?", id)
	if err != nil {
		return fmt.Errorf("completing module: %w", err)
	}

	affected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("checking update: %w", err)
	}
	if affected == 0 {
		return fmt.Errorf("module %s: %w", id, domain.ErrNotFound)
	}
	return nil
}

// scanPlanWithModules scans a plan row and attaches its modules.
func (s *planStore) scanPlanWithModules(ctx context.Context, row *sql.Row) (*domain.Plan, error) {
	var plan domain.Plan
	var embeddingBlob []byte
	var createdAt sql.NullTime
	if err := row.Scan(&plan.ID, &plan.Topic, &embeddingBlob, &createdAt); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, domain.ErrNotFound
		}
		return nil, fmt.Errorf("scanning plan: %w", err)
	}
	plan.Embedding = bytesToFloat32Slice(embeddingBlob)
	if createdAt.Valid {
		plan.CreatedAt = createdAt.Time
	}

	modules, err := s.listModules(ctx, plan.ID)
	if err != nil {
		return nil, err
	}
	plan.Modules = modules

	return &plan, nil
}

// listModules returns a plan's modules in step order.
func (s *planStore) listModules(ctx context.Context, planID string) ([]domain.Module, error) {
	rows, err := s.store.db.QueryContext(ctx, `
		SELECT id, plan_id, step_number, title, is_complete, article, videos, created_at
		FROM modules WHERE plan_id = ?
		ORDER BY step_number
	`, planID)
	if err != nil {
		return nil, fmt.Errorf("querying modules: %w", err)
	}
	defer rows.Close()

	var modules []domain.Module //nolint:prealloc // size unknown from query
	for rows.Next() {
		module, err := scanModuleRows(rows)
		if err != nil {
			return nil, err
		}
		modules = append(modules, *module)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterating modules: %w", err)
	}

	return modules, nil
}

// scanModuleRow scans a module from *sql.Row.
func scanModuleRow(row *sql.Row) (*domain.Module, error) {
	var module domain.Module
	var articleJSON, videosJSON string
	var createdAt sql.NullTime

	if err := row.Scan(&module.ID, &module.PlanID, &module.StepNumber, &module.Title,
		&module.IsComplete, &articleJSON, &videosJSON, &createdAt); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, domain.ErrNotFound
		}
		return nil, fmt.Errorf("scanning module: %w", err)
	}

	return hydrateModule(&module, articleJSON, videosJSON, createdAt)
}

// scanModuleRows scans a module from *sql.Rows.
func scanModuleRows(rows *sql.Rows) (*domain.Module, error) {
	var module domain.Module
	var articleJSON, videosJSON string
	var createdAt sql.NullTime

	if err := rows.Scan(&module.ID, &module.PlanID, &module.StepNumber, &module.Title,
		&module.IsComplete, &articleJSON, &videosJSON, &createdAt); err != nil {
		return nil, fmt.Errorf("scanning module: %w", err)
	}

	return hydrateModule(&module, articleJSON, videosJSON, createdAt)
}

// hydrateModule decodes the JSON resource columns into the module.
func hydrateModule(module *domain.Module, articleJSON, videosJSON string, createdAt sql.NullTime) (*domain.Module, error) {
	if err := json.Unmarshal([]byte(articleJSON), &module.Article); err != nil {
		return nil, fmt.Errorf("unmarshalling article: %w", err)
	}
	if err := json.Unmarshal([]byte(videosJSON), &module.Videos); err != nil {
		return nil, fmt.Errorf("unmarshalling videos: %w", err)
	}
	if createdAt.Valid {
		module.CreatedAt = createdAt.Time
	}
	return module, nil
}
