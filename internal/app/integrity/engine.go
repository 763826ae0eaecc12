package integrity

import (
	"context"
	"fmt"
	"sort"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/emirkay/schoolregistry/internal/app/models"
	"github.com/emirkay/schoolregistry/internal/db"
	"github.com/emirkay/schoolregistry/internal/pkg/apperrors"
)

// Store is the row access the planner and executor need. The production
// implementation runs on a pgx transaction; tests substitute a fake.
type Store interface {
	// DependentIDs returns the Key column of every row in table whose FK
	// column references one of parentIDs.
	DependentIDs(ctx context.Context, table, keyCol, fkCol string, parentIDs []int64) ([]int64, error)
	// DeleteWhere removes every row in table whose column matches one of ids
	// and reports how many rows went away.
	DeleteWhere(ctx context.Context, table, col string, ids []int64) (int64, error)
}

// Step is one deletion the closure requires: all rows of Table whose Col is
// in IDs. Steps execute dependents-first so no transient dangling reference
// is ever observable.
type Step struct {
	Table string
	Col   string
	IDs   []int64
	depth int
}

// PlanDelete computes the transitive closure of dependents of (root, id),
// breadth-first, per the cascade/restrict relation table. It returns the
// ordered deletion steps (deepest dependents first, the root row last) or a
// RestrictedError naming the first blocking dependent. Nothing is written.
func PlanDelete(ctx context.Context, store Store, root models.EntityType, id int64) ([]Step, error) {
	type frontier struct {
		entity models.EntityType
		ids    []int64
		depth  int
	}

	var steps []Step
	queue := []frontier{{entity: root, ids: []int64{id}, depth: 0}}

	for len(queue) > 0 {
		cur := queue[0]
		queue = queue[1:]

		for _, rel := range relationsOf(cur.entity) {
			depIDs, err := store.DependentIDs(ctx, rel.Table, rel.Key, rel.FK, cur.ids)
			if err != nil {
				return nil, fmt.Errorf("resolving %s dependents of %s: %w", rel.Table, cur.entity, err)
			}
			if len(depIDs) == 0 {
				continue
			}

			if rel.Policy == Restrict {
				return nil, &apperrors.RestrictedError{
					BlockingEntity: rel.Child,
					BlockingID:     depIDs[0],
				}
			}

			steps = append(steps, Step{Table: rel.Table, Col: rel.FK, IDs: cur.ids, depth: cur.depth + 1})

			if !rel.Pivot {
				queue = append(queue, frontier{entity: childEntity[rel.Table], ids: depIDs, depth: cur.depth + 1})
			}
		}
	}

	// Deepest dependents first, the root row last.
	sort.SliceStable(steps, func(i, j int) bool { return steps[i].depth > steps[j].depth })
	steps = append(steps, Step{Table: root.Table(), Col: "id", IDs: []int64{id}})

	return steps, nil
}

// Execute runs a deletion plan against a store. The final step removes the
// root row; if it affects nothing the target never existed.
func Execute(ctx context.Context, store Store, root models.EntityType, id int64, steps []Step) error {
	for i, step := range steps {
		affected, err := store.DeleteWhere(ctx, step.Table, step.Col, step.IDs)
		if err != nil {
			return fmt.Errorf("deleting from %s: %w", step.Table, err)
		}
		if i == len(steps)-1 && affected == 0 {
			return apperrors.NewNotFound(string(root), id)
		}
	}
	return nil
}

// Engine applies the deletion-propagation policy on the shared store. Every
// delete plans and executes inside a single transaction, so concurrent
// readers never observe a partially cascaded deletion.
type Engine struct {
	pool *pgxpool.Pool
}

// NewEngine creates an integrity engine bound to the connection pool.
func NewEngine(pool *pgxpool.Pool) *Engine {
	return &Engine{pool: pool}
}

// Delete removes (root, id) and its cascade closure atomically, or fails with
// RestrictedError / NotFoundError leaving every row untouched.
func (e *Engine) Delete(ctx context.Context, root models.EntityType, id int64) error {
	return db.WithTransaction(ctx, e.pool, func(ctx context.Context, tx pgx.Tx) error {
		store := &pgxStore{q: tx}
		steps, err := PlanDelete(ctx, store, root, id)
		if err != nil {
			return err
		}
		return Execute(ctx, store, root, id, steps)
	})
}

// pgxStore runs the closure statements on a pgx querier. Table and column
// names come from the static relation table, never from user input.
type pgxStore struct {
	q db.Querier
}

func (s *pgxStore) DependentIDs(ctx context.Context, table, keyCol, fkCol string, parentIDs []int64) ([]int64, error) {
	query := fmt.Sprintf(`SELECT %s FROM %s WHERE %s = ANY($1)`, keyCol, table, fkCol)

	rows, err := s.q.Query(ctx, query, parentIDs)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var ids []int64
	for rows.Next() {
		var id int64
		if err := rows.Scan(&id); err != nil {
			return nil, err
		}
		ids = append(ids, id)
	}
	return ids, rows.Err()
}

func (s *pgxStore) DeleteWhere(ctx context.Context, table, col string, ids []int64) (int64, error) {
	query := fmt.Sprintf(`DELETE FROM %s WHERE %s = ANY($1)`, table, col)

	tag, err := s.q.Exec(ctx, query, ids)
	if err != nil {
		return 0, err
	}
	return tag.RowsAffected(), nil
}
