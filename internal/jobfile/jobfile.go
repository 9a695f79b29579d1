// Package jobfile loads a search job from an HCL file, as an alternative to
// passing the parameters positionally on the command line.
package jobfile

import (
	"context"
	"fmt"
	"strings"

	"github.com/hashicorp/hcl/v2"
	"github.com/hashicorp/hcl/v2/gohcl"
	"github.com/hashicorp/hcl/v2/hclparse"
	"github.com/zclconf/go-cty/cty"
	"github.com/zclconf/go-cty/cty/convert"
	"github.com/zclconf/go-cty/cty/gocty"

	"github.com/crunchworks/create2crunch/internal/ctxlog"
)

// Job is the decoded job block. The optional numeric fields are pointers so
// the caller can tell "absent" from an explicit zero.
type Job struct {
	Factory      string
	Caller       string
	InitCodeHash string
	Device       *int
	Leading      *int
	Total        *int
	Workers      *int
	Output       string
}

// jobBlock is the HCL-facing schema. Optional attributes are captured as raw
// expressions and evaluated after decoding, so null and absent both fall
// back to the defaults.
type jobBlock struct {
	Factory      string         `hcl:"factory"`
	Caller       string         `hcl:"caller"`
	InitCodeHash string         `hcl:"init_code_hash"`
	Device       hcl.Expression `hcl:"device,optional"`
	Leading      hcl.Expression `hcl:"leading,optional"`
	Total        hcl.Expression `hcl:"total,optional"`
	Workers      hcl.Expression `hcl:"workers,optional"`
	Output       hcl.Expression `hcl:"output,optional"`
}

// fileRoot deliberately has no remain body: anything other than job blocks
// in a job file is a mistake worth surfacing.
type fileRoot struct {
	Jobs []*jobBlock `hcl:"job,block"`
}

// Load parses and decodes the job file at path. Exactly one job block must
// be present.
func Load(ctx context.Context, path string) (*Job, error) {
	logger := ctxlog.FromContext(ctx)
	logger.Debug("Job file loader started.", "path", path)

	if !strings.HasSuffix(path, ".hcl") {
		return nil, fmt.Errorf("job file %s is not an .hcl file", path)
	}

	parser := hclparse.NewParser()
	hclFile, diags := parser.ParseHCLFile(path)
	if diags.HasErrors() {
		return nil, fmt.Errorf("failed to parse job file %s: %w", path, diags)
	}

	var root fileRoot
	if diags := gohcl.DecodeBody(hclFile.Body, nil, &root); diags.HasErrors() {
		return nil, fmt.Errorf("failed to decode job file %s: %w", path, diags)
	}
	if len(root.Jobs) != 1 {
		return nil, fmt.Errorf("job file %s must contain exactly one job block, found %d", path, len(root.Jobs))
	}
	block := root.Jobs[0]

	job := &Job{
		Factory:      block.Factory,
		Caller:       block.Caller,
		InitCodeHash: block.InitCodeHash,
	}
	for _, attr := range []struct {
		name string
		expr hcl.Expression
		dst  **int
	}{
		{"device", block.Device, &job.Device},
		{"leading", block.Leading, &job.Leading},
		{"total", block.Total, &job.Total},
		{"workers", block.Workers, &job.Workers},
	} {
		if err := intAttr(attr.expr, attr.dst); err != nil {
			return nil, fmt.Errorf("invalid %s attribute in %s: %w", attr.name, path, err)
		}
	}
	if err := stringAttr(block.Output, &job.Output); err != nil {
		return nil, fmt.Errorf("invalid output attribute in %s: %w", path, err)
	}

	logger.Debug("Job file decoded.", "factory", job.Factory, "caller", job.Caller)
	return job, nil
}

// intAttr evaluates an optional numeric attribute. A nil expression or a
// null value leaves dst untouched.
func intAttr(expr hcl.Expression, dst **int) error {
	if expr == nil {
		return nil
	}
	val, diags := expr.Value(nil)
	if diags.HasErrors() {
		return diags
	}
	if val.IsNull() {
		return nil
	}
	val, err := convert.Convert(val, cty.Number)
	if err != nil {
		return err
	}
	var n int
	if err := gocty.FromCtyValue(val, &n); err != nil {
		return err
	}
	*dst = &n
	return nil
}

// stringAttr evaluates an optional string attribute in the same way.
func stringAttr(expr hcl.Expression, dst *string) error {
	if expr == nil {
		return nil
	}
	val, diags := expr.Value(nil)
	if diags.HasErrors() {
		return diags
	}
	if val.IsNull() {
		return nil
	}
	val, err := convert.Convert(val, cty.String)
	if err != nil {
		return err
	}
	return gocty.FromCtyValue(val, dst)
}

// Args renders the job back into the miner's positional argument order, so
// file-driven and CLI-driven runs share one validation path.
func (j *Job) Args() []string {
	args := []string{j.Factory, j.Caller, j.InitCodeHash}
	optional := []*int{j.Device, j.Leading, j.Total}
	// Trailing absent values are simply omitted; a gap is filled with the
	// positional default so later values keep their position.
	last := -1
	for i, v := range optional {
		if v != nil {
			last = i
		}
	}
	defaults := []string{"255", "3", "5"}
	for i := 0; i <= last; i++ {
		if optional[i] != nil {
			args = append(args, fmt.Sprintf("%d", *optional[i]))
		} else {
			args = append(args, defaults[i])
		}
	}
	return args
}
