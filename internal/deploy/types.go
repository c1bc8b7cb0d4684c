package deploy

const (
	// DefaultPattern is the catch-all cache-control rule.
	DefaultPattern = "*"
	// DefaultCacheControl applies when no default rule is configured.
	DefaultCacheControl = "public, no-cache"
	// DefaultGroupID identifies the group derived from DefaultPattern.
	DefaultGroupID = "default"
	// DefaultParallel is the number of concurrent uploads within a group.
	DefaultParallel = 4
)

// Rules maps a glob pattern to the Cache-Control value of the files it matches.
type Rules map[string]string

// Group is one upload pass over the source tree.
type Group struct {
	ID           string
	Include      []string
	Exclude      []string
	CacheControl string
	Prune        bool
}

// Target is where a deployment reads from and writes to.
type Target struct {
	Root   string
	Bucket string
	Prefix string
}

// ActionInputs represents the inputs for the action.
type ActionInputs struct {
	Bucket       string
	Prefix       string
	Root         string
	CacheControl Rules
	Prune        bool
	FailOnError  bool
	// DryRun logs the plan without touching the bucket.
	DryRun bool
}

// Validate checks that the inputs describe a deployable target.
func (in *ActionInputs) Validate() error {
	if in.Bucket == "" {
		return &ConfigurationError{Reason: "bucket is required"}
	}

	if in.Root == "" {
		return &ConfigurationError{Reason: "root is required"}
	}

	return nil
}
