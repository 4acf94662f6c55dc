package script

import (
	"context"
	"fmt"

	"github.com/hashicorp/hcl/v2"
	"github.com/hashicorp/hcl/v2/gohcl"
	"github.com/hashicorp/hcl/v2/hclparse"
	"github.com/hashicorp/hcl/v2/hclsyntax"
	"github.com/zclconf/go-cty/cty"
	"github.com/zclconf/go-cty/cty/convert"

	"github.com/vogtb/go-spreadsheet/internal/ctxlog"
)

// HCLLoader loads scripts written in HCL native syntax.
type HCLLoader struct {
	parser *hclparse.Parser
}

// NewHCLLoader creates an HCL loader.
func NewHCLLoader() *HCLLoader {
	return &HCLLoader{parser: hclparse.NewParser()}
}

// block bodies, decoded with gohcl
type hclSetBody struct {
	Content hcl.Expression `hcl:"content"`
	Error   hcl.Expression `hcl:"error,optional"`
}

type hclClearBody struct{}

type hclExpectBody struct {
	Value hcl.Expression `hcl:"value,optional"`
	Text  hcl.Expression `hcl:"text,optional"`
}

type hclPrintBody struct {
	Mode hcl.Expression `hcl:"mode,optional"`
}

// Load implements Loader.
func (l *HCLLoader) Load(ctx context.Context, path string) (*Model, error) {
	logger := ctxlog.FromContext(ctx)
	logger.Debug("Loading HCL script.", "path", path)

	file, diags := l.parser.ParseHCLFile(path)
	if diags.HasErrors() {
		return nil, fmt.Errorf("failed to parse HCL file %s: %w", path, diags)
	}

	model, diags := decodeHCLBody(file.Body)
	if diags.HasErrors() {
		return nil, fmt.Errorf("failed to decode HCL file %s: %w", path, diags)
	}
	if err := model.Validate(); err != nil {
		return nil, fmt.Errorf("failed to load script %s: %w", path, err)
	}
	model.Source = path

	logger.Debug("Loaded HCL script.", "path", path, "steps", len(model.Steps))
	return model, nil
}

// decodeHCLBody walks the blocks of the file in source order. gohcl decodes
// blocks grouped by type, which would lose the interleaving of steps.
func decodeHCLBody(body hcl.Body) (*Model, hcl.Diagnostics) {
	syntaxBody, ok := body.(*hclsyntax.Body)
	if !ok {
		return nil, hcl.Diagnostics{{
			Severity: hcl.DiagError,
			Summary:  "Unsupported HCL body",
			Detail:   "Scripts must use HCL native syntax.",
		}}
	}

	var diags hcl.Diagnostics
	for name, attr := range syntaxBody.Attributes {
		diags = append(diags, &hcl.Diagnostic{
			Severity: hcl.DiagError,
			Summary:  "Unexpected attribute",
			Detail:   fmt.Sprintf("Top-level attribute %q is not allowed; use set, clear, expect or print blocks.", name),
			Subject:  attr.SrcRange.Ptr(),
		})
	}

	model := &Model{Steps: make([]*Step, 0, len(syntaxBody.Blocks))}
	for _, block := range syntaxBody.Blocks {
		step, blockDiags := decodeHCLBlock(block)
		diags = append(diags, blockDiags...)
		if step != nil {
			model.Steps = append(model.Steps, step)
		}
	}
	return model, diags
}

func decodeHCLBlock(block *hclsyntax.Block) (*Step, hcl.Diagnostics) {
	step := &Step{Op: Op(block.Type), Line: block.TypeRange.Start.Line}

	wantLabels := 1
	if step.Op == OpPrint {
		wantLabels = 0
	}
	switch step.Op {
	case OpSet, OpClear, OpExpect, OpPrint:
	default:
		return nil, hcl.Diagnostics{{
			Severity: hcl.DiagError,
			Summary:  "Unsupported block type",
			Detail:   fmt.Sprintf("Blocks of type %q are not expected here.", block.Type),
			Subject:  block.TypeRange.Ptr(),
		}}
	}
	if len(block.Labels) != wantLabels {
		return nil, hcl.Diagnostics{{
			Severity: hcl.DiagError,
			Summary:  "Wrong number of labels",
			Detail:   fmt.Sprintf("A %s block takes %d label(s).", block.Type, wantLabels),
			Subject:  block.DefRange().Ptr(),
		}}
	}
	if wantLabels == 1 {
		step.Cell = block.Labels[0]
	}

	var diags hcl.Diagnostics
	switch step.Op {
	case OpSet:
		var body hclSetBody
		if diags = gohcl.DecodeBody(block.Body, nil, &body); diags.HasErrors() {
			return nil, diags
		}
		var content *string
		content, diags = exprString(body.Content)
		if content != nil {
			step.Content = *content
		}
		if kind, errDiags := exprString(body.Error); kind != nil {
			step.ExpectError = *kind
		} else {
			diags = append(diags, errDiags...)
		}
	case OpClear:
		var body hclClearBody
		diags = gohcl.DecodeBody(block.Body, nil, &body)
	case OpExpect:
		var body hclExpectBody
		if diags = gohcl.DecodeBody(block.Body, nil, &body); diags.HasErrors() {
			return nil, diags
		}
		var valueDiags, textDiags hcl.Diagnostics
		step.Value, valueDiags = exprString(body.Value)
		step.Text, textDiags = exprString(body.Text)
		diags = append(valueDiags, textDiags...)
	case OpPrint:
		var body hclPrintBody
		if diags = gohcl.DecodeBody(block.Body, nil, &body); diags.HasErrors() {
			return nil, diags
		}
		var mode *string
		mode, diags = exprString(body.Mode)
		if mode != nil {
			step.Mode = *mode
		}
	}

	if diags.HasErrors() {
		return nil, diags
	}
	return step, diags
}

// exprString evaluates a constant expression and converts it to a string,
// so `content = 5` and `content = "5"` mean the same thing. A missing
// optional attribute evaluates to null and yields nil.
func exprString(expr hcl.Expression) (*string, hcl.Diagnostics) {
	if expr == nil {
		return nil, nil
	}

	val, diags := expr.Value(nil)
	if diags.HasErrors() {
		return nil, diags
	}
	if val.IsNull() {
		return nil, nil
	}

	converted, err := convert.Convert(val, cty.String)
	if err != nil {
		return nil, hcl.Diagnostics{{
			Severity: hcl.DiagError,
			Summary:  "Incorrect attribute value type",
			Detail:   fmt.Sprintf("Cannot use a %s value here: %s.", val.Type().FriendlyName(), err),
			Subject:  expr.Range().Ptr(),
		}}
	}
	if !converted.IsKnown() {
		return nil, hcl.Diagnostics{{
			Severity: hcl.DiagError,
			Summary:  "Unknown attribute value",
			Subject:  expr.Range().Ptr(),
		}}
	}

	s := converted.AsString()
	return &s, nil
}
