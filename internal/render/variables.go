package render

import (
	"fmt"
	"strings"

	"github.com/alexisbeaulieu97/gridtheme/internal/view"
)

// attributeVars are merged key by key instead of being replaced.
var attributeVars = [...]string{"attr", "label_attr", "header_attr", "cell_attr"}

// MergeVariables returns scope overridden by vars. Values replace scope
// entries wholesale, so a list can be cleared by passing an empty one. The
// attribute variables are the exception: when both sides hold attributes the
// entries are merged and vars wins per attribute.
func MergeVariables(scope, vars map[string]any) map[string]any {
	merged := make(map[string]any, len(scope)+len(vars))
	for key, value := range scope {
		merged[key] = value
	}
	for key, value := range vars {
		merged[key] = value
	}

	for _, key := range attributeVars {
		over, ok := vars[key]
		if !ok || over == nil {
			continue
		}
		under, ok := scope[key]
		if !ok || under == nil {
			continue
		}
		base, ok := view.AttributesFrom(under)
		if !ok {
			continue
		}
		extra, ok := view.AttributesFrom(over)
		if !ok {
			continue
		}
		merged[key] = base.Merge(extra)
	}

	return merged
}

// RenderAttributes renders attributes as ` key="value"` pairs in order. Values
// are written as given; escaping is the caller's concern.
func RenderAttributes(attrs any) string {
	set, ok := view.AttributesFrom(attrs)
	if !ok || set.Len() == 0 {
		return ""
	}

	var b strings.Builder
	for _, key := range set.Keys() {
		b.WriteByte(' ')
		b.WriteString(key)
		b.WriteString(`="`)
		b.WriteString(fmt.Sprint(set.Value(key)))
		b.WriteByte('"')
	}
	return b.String()
}
