package repositories

import (
	"testing"
	"time"

	"github.com/Masterminds/squirrel"
	"github.com/stretchr/testify/assert"

	"github.com/ideahub/ideahub-backend/models"
)

func testRegistry() models.Registry {
	return models.NewIdeaHubRegistry()
}

func TestBuildPredicateOwnColumn(t *testing.T) {
	pred, err := buildPredicate(testRegistry(), models.IdeaDescriptor,
		models.ParseFilters(map[string]string{"status": "created"}))
	assert.NoError(t, err)
	assert.Empty(t, pred.joins)
	assert.False(t, pred.needsDistinct)
	assert.Equal(t, squirrel.And{squirrel.Eq{"ideas.status": any("created")}}, pred.conditions)
}

func TestBuildPredicatePrimaryKeyIsFilterable(t *testing.T) {
	pred, err := buildPredicate(testRegistry(), models.IdeaDescriptor,
		models.ParseFilters(map[string]string{"id__gt": "5"}))
	assert.NoError(t, err)
	assert.Equal(t, squirrel.And{squirrel.Gt{"ideas.id": any(int64(5))}}, pred.conditions)
}

func TestBuildPredicateManyToOneJoin(t *testing.T) {
	pred, err := buildPredicate(testRegistry(), models.IdeaDescriptor,
		models.ParseFilters(map[string]string{"submitter__username": "jdoe"}))
	assert.NoError(t, err)
	assert.Equal(t, []string{"users AS submitter ON submitter.id = ideas.submitter_id"}, pred.joins)
	assert.False(t, pred.needsDistinct)
	assert.Equal(t, squirrel.And{squirrel.Eq{"submitter.username": any("jdoe")}}, pred.conditions)
}

func TestBuildPredicateTwoHopJoinAliasedByPath(t *testing.T) {
	pred, err := buildPredicate(testRegistry(), models.IdeaDescriptor,
		models.ParseFilters(map[string]string{"submitter__bu__name": "ops"}))
	assert.NoError(t, err)
	assert.Equal(t, []string{
		"users AS submitter ON submitter.id = ideas.submitter_id",
		"bus AS submitter_bu ON submitter_bu.id = submitter.bu_id",
	}, pred.joins)
	assert.Equal(t, squirrel.And{squirrel.Eq{"submitter_bu.name": any("ops")}}, pred.conditions)
}

func TestBuildPredicateOneToManyNeedsDistinct(t *testing.T) {
	pred, err := buildPredicate(testRegistry(), models.IdeaDescriptor,
		models.ParseFilters(map[string]string{"comments__likes__gte": "10"}))
	assert.NoError(t, err)
	assert.Equal(t, []string{"comments AS comments ON comments.idea_id = ideas.id"}, pred.joins)
	assert.True(t, pred.needsDistinct)
	assert.Equal(t, squirrel.And{squirrel.GtOrEq{"comments.likes": any(int64(10))}}, pred.conditions)
}

func TestBuildPredicateManyToManyJoinsThroughLinkTable(t *testing.T) {
	pred, err := buildPredicate(testRegistry(), models.AssignmentDescriptor,
		models.ParseFilters(map[string]string{"assignees__username": "jdoe"}))
	assert.NoError(t, err)
	assert.Equal(t, []string{
		"users_assignments_link AS assignees_link ON assignees_link.assignment_id = assignments.id",
		"users AS assignees ON assignees.id = assignees_link.user_id",
	}, pred.joins)
	assert.True(t, pred.needsDistinct)
	assert.Equal(t, squirrel.And{squirrel.Eq{"assignees.username": any("jdoe")}}, pred.conditions)
}

func TestBuildPredicateSharedHopJoinsOnce(t *testing.T) {
	pred, err := buildPredicate(testRegistry(), models.IdeaDescriptor,
		models.ParseFilters(map[string]string{
			"submitter__username":        "jdoe",
			"submitter__email__contains": "@example.com",
		}))
	assert.NoError(t, err)
	assert.Equal(t, []string{"users AS submitter ON submitter.id = ideas.submitter_id"}, pred.joins)
	assert.Len(t, pred.conditions, 2)
}

func TestBuildPredicateDropsUnresolvableFilters(t *testing.T) {
	tests := []struct {
		name   string
		params map[string]string
	}{
		{"unknown field", map[string]string{"no_such_column": "x"}},
		{"unknown relationship hop", map[string]string{"owner__name": "x"}},
		{"sensitive field", map[string]string{"submitter__hashed_password": "x"}},
		{"text operator on a non text field", map[string]string{"comments__likes__contains": "1"}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			tt.params["status"] = "created"
			pred, err := buildPredicate(testRegistry(), models.IdeaDescriptor,
				models.ParseFilters(tt.params))
			assert.NoError(t, err)
			assert.Equal(t, squirrel.And{squirrel.Eq{"ideas.status": any("created")}}, pred.conditions)
		})
	}
}

func TestBuildPredicateDroppedToManyHopDoesNotForceDistinct(t *testing.T) {
	pred, err := buildPredicate(testRegistry(), models.IdeaDescriptor,
		models.ParseFilters(map[string]string{"comments__likes__contains": "1"}))
	assert.NoError(t, err)
	assert.Empty(t, pred.joins)
	assert.False(t, pred.needsDistinct)
	assert.Empty(t, pred.conditions)
}

func TestBuildPredicateTextOperators(t *testing.T) {
	pred, err := buildPredicate(testRegistry(), models.IdeaDescriptor,
		models.ParseFilters(map[string]string{
			"title__contains":            "pump",
			"title__startswith":          "New",
			"actual_situation__endswith": "leak",
		}))
	assert.NoError(t, err)
	assert.Equal(t, squirrel.And{
		squirrel.Like{"ideas.actual_situation": "%leak"},
		squirrel.Like{"ideas.title": "%pump%"},
		squirrel.Like{"ideas.title": "New%"},
	}, pred.conditions)
}

func TestBuildPredicateInOperator(t *testing.T) {
	pred, err := buildPredicate(testRegistry(), models.IdeaDescriptor,
		models.ParseFilters(map[string]string{"status__in": "created,approved"}))
	assert.NoError(t, err)
	assert.Equal(t, squirrel.And{
		squirrel.Eq{"ideas.status": []any{"created", "approved"}},
	}, pred.conditions)
}

func TestBuildPredicateCoercesDatetime(t *testing.T) {
	pred, err := buildPredicate(testRegistry(), models.IdeaDescriptor,
		models.ParseFilters(map[string]string{"created_at__gte": "2024-03-01T10:00:00Z"}))
	assert.NoError(t, err)
	want := time.Date(2024, 3, 1, 10, 0, 0, 0, time.UTC)
	assert.Equal(t, squirrel.And{squirrel.GtOrEq{"ideas.created_at": any(want)}}, pred.conditions)
}

func TestBuildPredicateValueCoercionFailures(t *testing.T) {
	tests := []struct {
		name   string
		params map[string]string
	}{
		{"bad integer", map[string]string{"comments__likes__gt": "many"}},
		{"bad datetime", map[string]string{"created_at__gt": "yesterday"}},
		{"bad boolean", map[string]string{"submitter__account_status": "maybe"}},
		{"bad element in list", map[string]string{"comments__likes__in": "1,two,3"}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := buildPredicate(testRegistry(), models.IdeaDescriptor,
				models.ParseFilters(tt.params))
			assert.ErrorIs(t, err, models.BadParameterError)
		})
	}
}
