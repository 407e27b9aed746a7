package repositories

import (
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/Masterminds/squirrel"
	"github.com/cockroachdb/errors"

	"github.com/ideahub/ideahub-backend/models"
)

// predicate is the compiled form of a filter specification against one
// entity: the join clauses to reach related tables, the ANDed conditions,
// and whether a to-many hop was crossed (in which case the consuming select
// must deduplicate rows).
type predicate struct {
	joins         []string
	conditions    squirrel.And
	needsDistinct bool
}

// buildPredicate resolves every filter path against the descriptor registry.
// A path whose field or relationship hop is not declared drops that single
// filter and the rest still apply; a malformed value on a path that does
// resolve is a hard validation error. Joined tables are aliased by their
// path so two relationships targeting the same table never collide, and a
// repeated hop joins only once.
func buildPredicate(registry models.Registry, desc models.EntityDescriptor, filters []models.Filter) (predicate, error) {
	pred := predicate{}
	joined := make(map[string]bool)

	for _, filter := range filters {
		current := desc
		currentRef := desc.Table
		resolved := true

		var joins []string
		toMany := false
		var aliasParts []string

		for _, hop := range filter.Path[:len(filter.Path)-1] {
			rel, ok := current.Relationships[hop]
			if !ok {
				resolved = false
				break
			}
			target, ok := registry.Get(rel.Target)
			if !ok {
				resolved = false
				break
			}

			aliasParts = append(aliasParts, hop)
			alias := strings.Join(aliasParts, "_")

			switch rel.Kind {
			case models.ManyToOne:
				joins = append(joins, fmt.Sprintf("%s AS %s ON %s.%s = %s.%s",
					target.Table, alias, alias, target.PrimaryKey, currentRef, rel.ForeignKey))
			case models.OneToMany:
				joins = append(joins, fmt.Sprintf("%s AS %s ON %s.%s = %s.%s",
					target.Table, alias, alias, rel.ForeignKey, currentRef, current.PrimaryKey))
				toMany = true
			case models.ManyToMany:
				linkAlias := alias + "_link"
				joins = append(joins,
					fmt.Sprintf("%s AS %s ON %s.%s = %s.%s",
						rel.LinkTable, linkAlias, linkAlias, rel.LinkOwnerKey, currentRef, current.PrimaryKey),
					fmt.Sprintf("%s AS %s ON %s.%s = %s.%s",
						target.Table, alias, alias, target.PrimaryKey, linkAlias, rel.LinkTargetKey))
				toMany = true
			}

			current = target
			currentRef = alias
		}
		if !resolved {
			continue
		}

		fieldName := filter.Path[len(filter.Path)-1]
		field, ok := resolveField(current, fieldName)
		if !ok {
			continue
		}

		condition, err := buildCondition(currentRef+"."+field.Name, field.Type, filter.Op, filter.Value)
		if err != nil {
			return predicate{}, err
		}
		if condition == nil {
			continue
		}

		for _, join := range joins {
			alias := strings.SplitN(join, " ON ", 2)[0]
			if !joined[alias] {
				joined[alias] = true
				pred.joins = append(pred.joins, join)
			}
		}
		pred.needsDistinct = pred.needsDistinct || toMany
		pred.conditions = append(pred.conditions, condition)
	}

	return pred, nil
}

// resolveField resolves the terminal path segment. The primary key is
// filterable; sensitive fields are not, they behave as undeclared.
func resolveField(desc models.EntityDescriptor, name string) (models.Field, bool) {
	if name == desc.PrimaryKey {
		return models.Field{Name: desc.PrimaryKey, Type: models.FieldTypeInt}, true
	}
	field, ok := desc.FieldByName(name)
	if !ok || field.Sensitive {
		return models.Field{}, false
	}
	return field, true
}

// buildCondition compiles one (column, operator, value) triple. A nil, nil
// return means the combination is not expressible (text operator on a
// non-text column) and follows the drop policy.
func buildCondition(column string, fieldType models.FieldType, op models.FilterOperator, raw string) (squirrel.Sqlizer, error) {
	switch op {
	case models.FilterEq, models.FilterGt, models.FilterLt, models.FilterGte, models.FilterLte:
		value, err := coerceScalar(fieldType, raw)
		if err != nil {
			return nil, err
		}
		switch op {
		case models.FilterGt:
			return squirrel.Gt{column: value}, nil
		case models.FilterLt:
			return squirrel.Lt{column: value}, nil
		case models.FilterGte:
			return squirrel.GtOrEq{column: value}, nil
		case models.FilterLte:
			return squirrel.LtOrEq{column: value}, nil
		default:
			return squirrel.Eq{column: value}, nil
		}

	case models.FilterContains, models.FilterStartsWith, models.FilterEndsWith:
		// Case-sensitive LIKE, as the historical API behaves.
		if fieldType != models.FieldTypeString && fieldType != models.FieldTypeEnum {
			return nil, nil
		}
		switch op {
		case models.FilterStartsWith:
			return squirrel.Like{column: raw + "%"}, nil
		case models.FilterEndsWith:
			return squirrel.Like{column: "%" + raw}, nil
		default:
			return squirrel.Like{column: "%" + raw + "%"}, nil
		}

	case models.FilterIn:
		parts := strings.Split(raw, ",")
		values := make([]any, 0, len(parts))
		for _, part := range parts {
			value, err := coerceScalar(fieldType, part)
			if err != nil {
				return nil, err
			}
			values = append(values, value)
		}
		return squirrel.Eq{column: values}, nil

	default:
		return nil, nil
	}
}

// iso8601Layouts, most precise first. time.Parse tolerates a missing
// fractional part with RFC3339Nano, so date-time and date-only are enough.
var iso8601Layouts = []string{
	time.RFC3339Nano,
	"2006-01-02T15:04:05",
	"2006-01-02",
}

func coerceScalar(fieldType models.FieldType, raw string) (any, error) {
	switch fieldType {
	case models.FieldTypeInt:
		value, err := strconv.ParseInt(raw, 10, 64)
		if err != nil {
			return nil, errors.Wrapf(models.BadParameterError, "'%s' is not a valid integer", raw)
		}
		return value, nil
	case models.FieldTypeFloat:
		value, err := strconv.ParseFloat(raw, 64)
		if err != nil {
			return nil, errors.Wrapf(models.BadParameterError, "'%s' is not a valid number", raw)
		}
		return value, nil
	case models.FieldTypeBool:
		value, err := strconv.ParseBool(raw)
		if err != nil {
			return nil, errors.Wrapf(models.BadParameterError, "'%s' is not a valid boolean", raw)
		}
		return value, nil
	case models.FieldTypeDatetime:
		for _, layout := range iso8601Layouts {
			if value, err := time.Parse(layout, raw); err == nil {
				return value, nil
			}
		}
		return nil, errors.Wrapf(models.BadParameterError, "'%s' is not a valid ISO 8601 datetime", raw)
	default:
		return raw, nil
	}
}
