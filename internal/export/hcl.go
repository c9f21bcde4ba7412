// Package export maps a composed document to an azurerm Terraform skeleton:
// one resource block per exportable node, plus versions and variables files.
package export

import (
	"strings"

	"github.com/hashicorp/hcl/v2"
	"github.com/hashicorp/hcl/v2/hclwrite"
	"github.com/zclconf/go-cty/cty"
)

// SanitizeName converts a node id to a Terraform-safe resource name.
func SanitizeName(id string) string {
	return strings.ReplaceAll(id, "-", "_")
}

// ResourceBlock creates a resource "type" "name" { } block.
func ResourceBlock(resourceType, name string) *hclwrite.Block {
	return hclwrite.NewBlock("resource", []string{resourceType, name})
}

// SetAttributeStr sets a string attribute, skipping empty values.
func SetAttributeStr(body *hclwrite.Body, name, value string) {
	if value != "" {
		body.SetAttributeValue(name, cty.StringVal(value))
	}
}

// SetAttributeMap sets a map(string) attribute (tags).
func SetAttributeMap(body *hclwrite.Body, name string, m map[string]string) {
	if len(m) == 0 {
		return
	}
	ctyMap := make(map[string]cty.Value)
	for k, v := range m {
		ctyMap[k] = cty.StringVal(v)
	}
	body.SetAttributeValue(name, cty.MapVal(ctyMap))
}

// BlockToBytes formats a block into file bytes.
func BlockToBytes(block *hclwrite.Block) []byte {
	f := hclwrite.NewEmptyFile()
	f.Body().AppendBlock(block)
	return f.Bytes()
}

// varTraversal builds hcl.Traversal for var.name.
func varTraversal(name string) hcl.Traversal {
	return hcl.Traversal{
		hcl.TraverseRoot{Name: "var"},
		hcl.TraverseAttr{Name: name},
	}
}

// bareTraversal builds hcl.Traversal for a bare identifier, such as the
// string type keyword in a variable block.
func bareTraversal(name string) hcl.Traversal {
	return hcl.Traversal{
		hcl.TraverseRoot{Name: name},
	}
}
