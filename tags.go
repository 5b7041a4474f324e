package breeze

import "context"

// Tag is one tag in the account.
type Tag struct {
	ID        string `json:"id"`
	Name      string `json:"name"`
	CreatedOn string `json:"created_on"`
	FolderID  string `json:"folder_id"`
}

// TagFolder groups tags. A ParentID of "0" marks a top-level folder.
type TagFolder struct {
	ID        string `json:"id"`
	ParentID  string `json:"parent_id"`
	Name      string `json:"name"`
	CreatedOn string `json:"created_on"`
}

// Tags lists tags, optionally limited to one folder.
func (c *Client) Tags(ctx context.Context, folderID string) ([]Tag, error) {
	var p params
	if folderID != "" {
		p = params{"folder_id": folderID}
	}
	var out []Tag
	if err := c.get(ctx, endpointTags, "list_tags", p, &out); err != nil {
		return nil, err
	}
	return out, nil
}

// TagFolders lists all tag folders.
func (c *Client) TagFolders(ctx context.Context) ([]TagFolder, error) {
	var out []TagFolder
	if err := c.get(ctx, endpointTags, "list_folders", nil, &out); err != nil {
		return nil, err
	}
	return out, nil
}

// AssignTag adds a tag to a person.
func (c *Client) AssignTag(ctx context.Context, personID, tagID string) error {
	if personID == "" || tagID == "" {
		return badRequest("tag assignment requires person_id and tag_id")
	}
	p := params{"person_id": personID, "tag_id": tagID}
	return c.get(ctx, endpointTags, "assign", p, nil)
}

// UnassignTag removes a tag from a person.
func (c *Client) UnassignTag(ctx context.Context, personID, tagID string) error {
	if personID == "" || tagID == "" {
		return badRequest("tag assignment requires person_id and tag_id")
	}
	p := params{"person_id": personID, "tag_id": tagID}
	return c.get(ctx, endpointTags, "unassign", p, nil)
}
