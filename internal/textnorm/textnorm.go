// Package textnorm holds the key normalization shared by the template
// cache, the gabarit index and chapter routing.
package textnorm

import "strings"

var replacer = strings.NewReplacer(
	" ", "_",
	"é", "e",
	"è", "e",
)

// Key lower-cases s, replaces spaces with underscores and folds é/è to e.
// Equal inputs always give equal keys.
func Key(s string) string {
	return replacer.Replace(strings.ToLower(strings.TrimSpace(s)))
}
