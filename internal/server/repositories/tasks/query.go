package tasks

import (
	"fmt"
	"strings"

	"github.com/dmitrijs2005/tasktracker/internal/server/models"
)

const taskColumns = `id, owner_id, title, description, priority, status, due_date, category, created_at, updated_at`

// queryBuilder accumulates positional arguments while SQL fragments are
// assembled, so placeholders always match argument order.
type queryBuilder struct {
	d    dialect
	args []any
}

func newQueryBuilder(d dialect) *queryBuilder {
	return &queryBuilder{d: d}
}

func (b *queryBuilder) arg(v any) string {
	b.args = append(b.args, v)
	return b.d.placeholder(len(b.args))
}

// where compiles the owner scope and every criterion of f into one
// conjunctive WHERE clause.
func (b *queryBuilder) where(ownerID string, f models.TaskFilter) string {
	conds := []string{"owner_id = " + b.arg(ownerID)}

	if f.Status != nil {
		conds = append(conds, "status = "+b.arg(string(*f.Status)))
	}
	if f.StatusNot != nil {
		conds = append(conds, "status <> "+b.arg(string(*f.StatusNot)))
	}
	if f.Priority != nil {
		conds = append(conds, "priority = "+b.arg(string(*f.Priority)))
	}
	if f.Category != nil {
		conds = append(conds, "category = "+b.arg(*f.Category))
	}
	if f.Due != nil {
		conds = append(conds, "due_date IS NOT NULL")
		if from := f.Due.From; from != nil {
			op := ">="
			if from.Exclusive {
				op = ">"
			}
			conds = append(conds, "due_date "+op+" "+b.arg(b.d.toDB(from.At)))
		}
		if to := f.Due.To; to != nil {
			op := "<="
			if to.Exclusive {
				op = "<"
			}
			conds = append(conds, "due_date "+op+" "+b.arg(b.d.toDB(to.At)))
		}
	}
	if f.Search != "" {
		pattern := "%" + escapeLike(strings.ToLower(f.Search)) + "%"
		conds = append(conds, fmt.Sprintf(
			`(%[1]s(title) LIKE %[2]s ESCAPE '\' OR %[1]s(description) LIKE %[3]s ESCAPE '\')`,
			b.d.lower, b.arg(pattern), b.arg(pattern)))
	}

	return " WHERE " + strings.Join(conds, " AND ")
}

func (b *queryBuilder) limit(n int) string {
	if n <= 0 {
		return ""
	}
	return " LIMIT " + b.arg(n)
}

func orderBy(s models.SortOrder) string {
	switch s {
	case models.SortDueAsc:
		return " ORDER BY due_date ASC NULLS LAST, created_at DESC, id"
	case models.SortUpdatedDesc:
		return " ORDER BY updated_at DESC, id"
	default:
		return " ORDER BY created_at DESC, id"
	}
}

// groupColumn whitelists the columns CountGrouped may interpolate.
func groupColumn(f models.GroupField) (string, error) {
	switch f {
	case models.GroupByStatus:
		return "status", nil
	case models.GroupByPriority:
		return "priority", nil
	}
	return "", fmt.Errorf("cannot group tasks by %q", f)
}

// escapeLike makes %, _ and the escape character itself match literally.
func escapeLike(s string) string {
	r := strings.NewReplacer(`\`, `\\`, `%`, `\%`, `_`, `\_`)
	return r.Replace(s)
}

// set compiles the fields present in p into a SET list, always bumping
// updated_at.
func (b *queryBuilder) set(p models.TaskPatch, now any) string {
	var sets []string
	if p.Title.Set {
		sets = append(sets, "title = "+b.arg(p.Title.Value))
	}
	if p.Description.Set {
		sets = append(sets, "description = "+b.arg(p.Description.Value))
	}
	if p.Priority.Set {
		sets = append(sets, "priority = "+b.arg(string(p.Priority.Value)))
	}
	if p.Status.Set {
		sets = append(sets, "status = "+b.arg(string(p.Status.Value)))
	}
	if p.DueDate.Set {
		if p.DueDate.Value == nil {
			sets = append(sets, "due_date = NULL")
		} else {
			sets = append(sets, "due_date = "+b.arg(b.d.toDB(normalize(*p.DueDate.Value))))
		}
	}
	if p.Category.Set {
		sets = append(sets, "category = "+b.arg(p.Category.Value))
	}
	sets = append(sets, "updated_at = "+b.arg(now))
	return " SET " + strings.Join(sets, ", ")
}
