package asana

// User is an Asana user resource
type User struct {
	GID  string `json:"gid"`
	Name string `json:"name"`
}

// Project is an Asana project resource
type Project struct {
	GID  string `json:"gid"`
	Name string `json:"name"`
}

// EnumOption is the selected option of an enum custom field
type EnumOption struct {
	GID  string `json:"gid"`
	Name string `json:"name"`
}

// CustomField is a typed, named attribute attached to a task
type CustomField struct {
	GID          string      `json:"gid"`
	Name         string      `json:"name"`
	Type         string      `json:"type"`
	TextValue    string      `json:"text_value"`
	DisplayValue string      `json:"display_value"`
	EnumValue    *EnumOption `json:"enum_value"`
}

// Task is an Asana task resource
type Task struct {
	GID          string        `json:"gid"`
	Name         string        `json:"name"`
	PermalinkURL string        `json:"permalink_url"`
	CreatedAt    string        `json:"created_at"`
	DueOn        string        `json:"due_on"`
	Assignee     *User         `json:"assignee"`
	CustomFields []CustomField `json:"custom_fields"`
}

// Webhook is an Asana webhook registration
type Webhook struct {
	GID      string `json:"gid"`
	Active   bool   `json:"active"`
	Target   string `json:"target"`
	Resource struct {
		GID  string `json:"gid"`
		Name string `json:"name"`
	} `json:"resource"`
}
