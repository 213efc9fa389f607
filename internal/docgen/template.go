package docgen

import "strings"

// Render substitutes {{name}} tokens in a template. Unknown tokens are left
// in place so a half-filled document is visible instead of silently blank.
func Render(template string, values map[string]string) string {
	if len(values) == 0 {
		return template
	}
	pairs := make([]string, 0, len(values)*2)
	for k, v := range values {
		pairs = append(pairs, "{{"+k+"}}", v)
	}
	return strings.NewReplacer(pairs...).Replace(template)
}
