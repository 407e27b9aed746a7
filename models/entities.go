package models

// Idea lifecycle statuses, stored as their lowercase labels.
const (
	IdeaStatusCreated     = "created"
	IdeaStatusRejected    = "rejected"
	IdeaStatusApproved    = "approved"
	IdeaStatusAssigned    = "assigned"
	IdeaStatusInProgress  = "in progress"
	IdeaStatusImplemented = "implemented"
	IdeaStatusClosed      = "closed"
)

const (
	TableUsers              = "users"
	TableRoles              = "roles"
	TableBus                = "bus"
	TablePlants             = "plants"
	TableIdeas              = "ideas"
	TableAttachments        = "attachments"
	TableComments           = "comments"
	TableRatingMatrices     = "rating_matrices"
	TableAssignments        = "assignments"
	TableAssignmentComments = "assignment_comments"
	TableTeoaReviews        = "teoa_reviews"
	TableTeoaComments       = "teoa_comments"

	TableUsersRoles           = "users_roles"
	TableUsersAssignmentsLink = "users_assignments_link"
)

var UserDescriptor = EntityDescriptor{
	Name:       "user",
	Table:      TableUsers,
	PrimaryKey: "id",
	Fields: []Field{
		{Name: "username", Type: FieldTypeString, Unique: true},
		{Name: "email", Type: FieldTypeString, Unique: true},
		{Name: "hashed_password", Type: FieldTypeString, Sensitive: true},
		{Name: "account_status", Type: FieldTypeBool},
		{Name: "created_at", Type: FieldTypeDatetime},
		{Name: "bu_id", Type: FieldTypeInt},
	},
	Relationships: map[string]Relationship{
		"bu": {Target: "bu", Kind: ManyToOne, ForeignKey: "bu_id"},
		"roles": {
			Target: "role", Kind: ManyToMany,
			LinkTable: TableUsersRoles, LinkOwnerKey: "user_id", LinkTargetKey: "role_id",
			Cascade: true,
		},
	},
}

var RoleDescriptor = EntityDescriptor{
	Name:       "role",
	Table:      TableRoles,
	PrimaryKey: "id",
	Fields: []Field{
		{Name: "name", Type: FieldTypeString, Unique: true},
	},
	Relationships: map[string]Relationship{
		"users": {
			Target: "user", Kind: ManyToMany,
			LinkTable: TableUsersRoles, LinkOwnerKey: "role_id", LinkTargetKey: "user_id",
			Cascade: true,
		},
	},
}

var BuDescriptor = EntityDescriptor{
	Name:       "bu",
	Table:      TableBus,
	PrimaryKey: "id",
	Fields: []Field{
		{Name: "name", Type: FieldTypeString, Unique: true},
	},
}

var PlantDescriptor = EntityDescriptor{
	Name:       "plant",
	Table:      TablePlants,
	PrimaryKey: "id",
	Fields: []Field{
		{Name: "name", Type: FieldTypeString, Unique: true},
	},
}

var IdeaDescriptor = EntityDescriptor{
	Name:       "idea",
	Table:      TableIdeas,
	PrimaryKey: "id",
	Fields: []Field{
		{Name: "title", Type: FieldTypeString},
		{Name: "actual_situation", Type: FieldTypeString},
		{Name: "description", Type: FieldTypeString},
		{Name: "status", Type: FieldTypeEnum},
		{Name: "created_at", Type: FieldTypeDatetime},
		{Name: "updated_at", Type: FieldTypeDatetime},
		{Name: "submitter_id", Type: FieldTypeInt},
	},
	Relationships: map[string]Relationship{
		"submitter":     {Target: "user", Kind: ManyToOne, ForeignKey: "submitter_id"},
		"attachments":   {Target: "attachment", Kind: OneToMany, ForeignKey: "idea_id", Cascade: true},
		"comments":      {Target: "comment", Kind: OneToMany, ForeignKey: "idea_id", Cascade: true},
		"rating_matrix": {Target: "rating_matrix", Kind: OneToMany, ForeignKey: "idea_id", Cascade: true},
		"assignment":    {Target: "assignment", Kind: OneToMany, ForeignKey: "idea_id", Cascade: true},
		"teoa_review":   {Target: "teoa_review", Kind: OneToMany, ForeignKey: "idea_id", Cascade: true},
	},
}

var AttachmentDescriptor = EntityDescriptor{
	Name:       "attachment",
	Table:      TableAttachments,
	PrimaryKey: "id",
	Fields: []Field{
		{Name: "name", Type: FieldTypeString, Unique: true},
		{Name: "size", Type: FieldTypeFloat},
		{Name: "file_path", Type: FieldTypeString},
		{Name: "idea_id", Type: FieldTypeInt},
		{Name: "uploaded_by", Type: FieldTypeInt},
	},
	Relationships: map[string]Relationship{
		"idea":     {Target: "idea", Kind: ManyToOne, ForeignKey: "idea_id"},
		"uploader": {Target: "user", Kind: ManyToOne, ForeignKey: "uploaded_by"},
	},
}

var CommentDescriptor = EntityDescriptor{
	Name:       "comment",
	Table:      TableComments,
	PrimaryKey: "id",
	Fields: []Field{
		{Name: "body", Type: FieldTypeString},
		{Name: "likes", Type: FieldTypeInt},
		{Name: "created_at", Type: FieldTypeDatetime},
		{Name: "commenter_id", Type: FieldTypeInt},
		{Name: "idea_id", Type: FieldTypeInt},
	},
	Relationships: map[string]Relationship{
		"commenter": {Target: "user", Kind: ManyToOne, ForeignKey: "commenter_id"},
		"idea":      {Target: "idea", Kind: ManyToOne, ForeignKey: "idea_id"},
	},
}

var RatingMatrixDescriptor = EntityDescriptor{
	Name:       "rating_matrix",
	Table:      TableRatingMatrices,
	PrimaryKey: "id",
	Fields: []Field{
		{Name: "comments", Type: FieldTypeString},
		{Name: "quality", Type: FieldTypeInt},
		{Name: "cost_reduction", Type: FieldTypeInt},
		{Name: "time_savings", Type: FieldTypeInt},
		{Name: "ehs", Type: FieldTypeInt},
		{Name: "initiative", Type: FieldTypeInt},
		{Name: "creativity", Type: FieldTypeInt},
		{Name: "transversalization", Type: FieldTypeInt},
		{Name: "effectiveness", Type: FieldTypeInt},
		{Name: "total_score", Type: FieldTypeFloat},
		{Name: "idea_id", Type: FieldTypeInt},
	},
	Relationships: map[string]Relationship{
		"idea": {Target: "idea", Kind: ManyToOne, ForeignKey: "idea_id"},
	},
}

var AssignmentDescriptor = EntityDescriptor{
	Name:       "assignment",
	Table:      TableAssignments,
	PrimaryKey: "id",
	Fields: []Field{
		{Name: "due_date", Type: FieldTypeDatetime},
		{Name: "idea_id", Type: FieldTypeInt},
	},
	Relationships: map[string]Relationship{
		"idea":     {Target: "idea", Kind: ManyToOne, ForeignKey: "idea_id"},
		"comments": {Target: "assignment_comment", Kind: OneToMany, ForeignKey: "assignment_id", Cascade: true},
		"assignees": {
			Target: "user", Kind: ManyToMany,
			LinkTable: TableUsersAssignmentsLink, LinkOwnerKey: "assignment_id", LinkTargetKey: "user_id",
			Cascade: true,
		},
	},
}

var AssignmentCommentDescriptor = EntityDescriptor{
	Name:       "assignment_comment",
	Table:      TableAssignmentComments,
	PrimaryKey: "id",
	Fields: []Field{
		{Name: "body", Type: FieldTypeString},
		{Name: "created_at", Type: FieldTypeDatetime},
		{Name: "commenter_id", Type: FieldTypeInt},
		{Name: "assignment_id", Type: FieldTypeInt},
	},
	Relationships: map[string]Relationship{
		"commenter":  {Target: "user", Kind: ManyToOne, ForeignKey: "commenter_id"},
		"assignment": {Target: "assignment", Kind: ManyToOne, ForeignKey: "assignment_id"},
	},
}

var TeoaReviewDescriptor = EntityDescriptor{
	Name:       "teoa_review",
	Table:      TableTeoaReviews,
	PrimaryKey: "id",
	Fields: []Field{
		{Name: "idea_id", Type: FieldTypeInt},
	},
	Relationships: map[string]Relationship{
		"idea":     {Target: "idea", Kind: ManyToOne, ForeignKey: "idea_id"},
		"comments": {Target: "teoa_comment", Kind: OneToMany, ForeignKey: "teoa_review_id", Cascade: true},
	},
}

var TeoaCommentDescriptor = EntityDescriptor{
	Name:       "teoa_comment",
	Table:      TableTeoaComments,
	PrimaryKey: "id",
	Fields: []Field{
		{Name: "body", Type: FieldTypeString},
		{Name: "created_at", Type: FieldTypeDatetime},
		{Name: "commenter_id", Type: FieldTypeInt},
		{Name: "teoa_review_id", Type: FieldTypeInt},
	},
	Relationships: map[string]Relationship{
		"commenter":   {Target: "user", Kind: ManyToOne, ForeignKey: "commenter_id"},
		"teoa_review": {Target: "teoa_review", Kind: ManyToOne, ForeignKey: "teoa_review_id"},
	},
}

// NewIdeaHubRegistry returns the registry of every persisted entity.
func NewIdeaHubRegistry() Registry {
	return NewRegistry(
		UserDescriptor,
		RoleDescriptor,
		BuDescriptor,
		PlantDescriptor,
		IdeaDescriptor,
		AttachmentDescriptor,
		CommentDescriptor,
		RatingMatrixDescriptor,
		AssignmentDescriptor,
		AssignmentCommentDescriptor,
		TeoaReviewDescriptor,
		TeoaCommentDescriptor,
	)
}
