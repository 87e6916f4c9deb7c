package entities

// UpdateOptions holds runtime options passed to the interactive update loop.
type UpdateOptions struct {
	DryRun  bool
	Verbose bool
}
