package gormparamfilter

import (
	"cmp"

	"github.com/pkg/errors"
	"github.com/theplant/paramfilter"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
	"gorm.io/gorm/schema"
)

// Queryable adapts a *gorm.DB statement to the paramfilter.Queryable
// contract. Accepted conditions and sort keys accumulate as gorm clauses and
// are applied when DB is called.
type Queryable struct {
	db      *gorm.DB
	schema  *schema.Schema
	exprs   []clause.Expression
	orderBy []clause.OrderByColumn
}

// New parses the schema of db's model (or destination) and wraps db. Fields
// are exposed under their database column names.
func New(db *gorm.DB) (*Queryable, error) {
	if db == nil {
		return nil, errors.New("db is nil")
	}
	model := cmp.Or(db.Statement.Model, db.Statement.Dest)
	if model == nil {
		return nil, errors.New("model is nil")
	}
	stmt := &gorm.Statement{DB: db}
	if err := stmt.Parse(model); err != nil {
		return nil, errors.Wrap(err, "parse schema with db")
	}
	return &Queryable{db: db, schema: stmt.Schema}, nil
}

func (q *Queryable) SelectedFields() []paramfilter.Field {
	fields := make([]paramfilter.Field, 0, len(q.schema.Fields))
	for _, field := range q.schema.Fields {
		if field.DBName == "" {
			continue
		}
		fields = append(fields, paramfilter.Field{Name: field.DBName, Kind: kindOf(field)})
	}
	return fields
}

func (q *Queryable) PrimaryField() (paramfilter.Field, bool) {
	field := q.schema.PrioritizedPrimaryField
	if field == nil {
		return paramfilter.Field{}, false
	}
	return paramfilter.Field{Name: field.DBName, Kind: kindOf(field)}, true
}

func (q *Queryable) Where(cond paramfilter.Condition) paramfilter.Queryable {
	expr, err := q.buildExpr(cond)
	if err != nil {
		q.db.AddError(err)
		return q
	}
	q.exprs = append(q.exprs, expr)
	return q
}

func (q *Queryable) OrderBy(field string, desc bool) paramfilter.Queryable {
	f, ok := q.schema.FieldsByDBName[field]
	if !ok {
		q.db.AddError(errors.Errorf("missing field %q in schema", field))
		return q
	}
	column := clause.OrderByColumn{
		Column: clause.Column{Table: clause.CurrentTable, Name: f.DBName},
		Desc:   desc,
	}
	// The most recently added sort key takes precedence.
	q.orderBy = append([]clause.OrderByColumn{column}, q.orderBy...)
	return q
}

// DB applies the accumulated conditions and sort keys and returns the
// resulting *gorm.DB.
func (q *Queryable) DB() *gorm.DB {
	db := q.db
	if len(q.exprs) > 0 {
		db = db.Where(clause.And(q.exprs...))
	}
	if len(q.orderBy) > 0 {
		db = db.Clauses(clause.OrderBy{Columns: q.orderBy})
	}
	return db
}

func (q *Queryable) buildExpr(cond paramfilter.Condition) (clause.Expression, error) {
	field, ok := q.schema.FieldsByDBName[cond.Field]
	if !ok {
		// The filters validate field names before adding conditions, so this
		// is a configuration error, not user input.
		return nil, errors.Errorf("missing field %q in schema", cond.Field)
	}
	column := clause.Column{Table: clause.CurrentTable, Name: field.DBName}

	switch cond.Operator {
	case paramfilter.OpEq:
		return clause.Eq{Column: column, Value: cond.Value}, nil
	case paramfilter.OpNeq:
		return clause.Neq{Column: column, Value: cond.Value}, nil
	case paramfilter.OpGte:
		return clause.Gte{Column: column, Value: cond.Value}, nil
	case paramfilter.OpLte:
		return clause.Lte{Column: column, Value: cond.Value}, nil
	case paramfilter.OpGt:
		return clause.Gt{Column: column, Value: cond.Value}, nil
	case paramfilter.OpLt:
		return clause.Lt{Column: column, Value: cond.Value}, nil
	case paramfilter.OpLike:
		return clause.Like{Column: column, Value: cond.Value}, nil
	case paramfilter.OpILike:
		return clause.Expr{SQL: "? ILIKE ?", Vars: []any{column, cond.Value}}, nil
	case paramfilter.OpIsNull:
		isNull, ok := cond.Value.(bool)
		if !ok {
			return nil, errors.Errorf("invalid is_null argument for field %q", cond.Field)
		}
		if isNull {
			return clause.Eq{Column: column, Value: nil}, nil
		}
		return clause.Neq{Column: column, Value: nil}, nil
	default:
		return nil, errors.Errorf("unknown operator %s for field %q", cond.Operator, cond.Field)
	}
}

func kindOf(field *schema.Field) paramfilter.Kind {
	switch field.DataType {
	case schema.String:
		return paramfilter.KindText
	case schema.Bool:
		return paramfilter.KindBoolean
	case schema.Int, schema.Uint:
		return paramfilter.KindInteger
	case schema.Time:
		return paramfilter.KindDateTime
	default:
		return paramfilter.KindOther
	}
}
