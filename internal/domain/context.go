package domain

// ContextInfo captures the environment facts concatenated into the prompt:
// where the user is, what the project looks like, and what shell they run.
type ContextInfo struct {
	WorkingDir   string
	Files        []string
	ProjectType  string
	GitBranch    string
	GitDirty     bool
	HasGit       bool
	OS           string
	Shell        string
	ShellVersion string
}
