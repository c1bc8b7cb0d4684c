package deploy

import (
	"context"
	"fmt"
	"path/filepath"

	"github.com/google/uuid"

	"github.com/yc-actions/bucket-deploy/pkg/sourcecraft"
)

// Deploy validates inputs, plans the groups and runs them with exec.
// Root is resolved against the workspace directory. Transfer failures are
// logged; they fail the deployment only when inputs.FailOnError is set.
func Deploy(ctx context.Context, exec *Executor, inputs *ActionInputs) (*Report, error) {
	if err := inputs.Validate(); err != nil {
		return nil, err
	}

	groups, err := Plan(inputs.CacheControl, inputs.Prune)
	if err != nil {
		return nil, err
	}

	id := uuid.NewString()

	sourcecraft.StartGroup("Deployment plan")
	sourcecraft.Info(fmt.Sprintf("Deployment %s to bucket %s", id, inputs.Bucket))

	for _, g := range groups {
		sourcecraft.Info(fmt.Sprintf(
			"group %s: include=%q exclude=%q cache-control=%q prune=%t",
			g.ID, g.Include, g.Exclude, g.CacheControl, g.Prune,
		))
	}

	sourcecraft.EndGroup()

	if inputs.DryRun {
		sourcecraft.Info("Dry run, nothing uploaded")

		return &Report{ID: id}, nil
	}

	target := Target{
		Root:   filepath.Join(sourcecraft.GetSourcecraftWorkspace(), inputs.Root),
		Bucket: inputs.Bucket,
		Prefix: inputs.Prefix,
	}

	report, err := exec.Execute(ctx, target, groups)
	report.ID = id

	failed := report.Failed()
	for _, f := range failed {
		sourcecraft.ErrorLog(f.Error())
	}

	sourcecraft.Info(fmt.Sprintf(
		"Deployment %s: %d uploaded, %d deleted, %d failed",
		id, report.Uploaded(), report.Deleted(), len(failed),
	))

	if err != nil {
		return report, err
	}

	if inputs.FailOnError && len(failed) > 0 {
		return report, fmt.Errorf("%d of %d transfers failed: %w", len(failed), len(report.Outcomes()), report.Err())
	}

	return report, nil
}
