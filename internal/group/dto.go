package group

// CreateGroupRequest represents the request to create a group
type CreateGroupRequest struct {
	Name        string  `json:"name" validate:"required,min=1,max=100"`
	Description *string `json:"description,omitempty"`
}

// AddMemberRequest represents the request to add a member to a group
type AddMemberRequest struct {
	UserID int64 `json:"user_id" validate:"required"`
}

// GroupWithMembersResponse bundles a group with its member list
type GroupWithMembersResponse struct {
	Group   *Group         `json:"group"`
	Members []*GroupMember `json:"members"`
}
