package catalogue

// Component is a catalogue entry for a deployable unit
type Component struct {
	ID           int      `json:"id,omitempty"`
	Name         string   `json:"name"`
	Description  string   `json:"description,omitempty"`
	Product      string   `json:"product,omitempty"`
	GithubRepo   string   `json:"github_repo,omitempty"`
	Environments []string `json:"environments,omitempty"`
}
