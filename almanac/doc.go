// Package almanac reads and writes stage definitions.
//
// Three formats carry the same model:
//
//   - FormatAlmanac: the plain-text seed almanac, a "seeds:" header followed
//     by "<source>-to-<destination> map:" sections of "dest source length"
//     rows.
//   - FormatYAML and FormatJSON: structured definitions with a "seeds" list
//     and a "stages" list.
//
// An Almanac builds a remap.Pipeline through Builder or Pipeline:
//
//	a, err := almanac.Parse(f)
//	p, err := a.Pipeline()
//	lowest, err := p.ApplyMany(a.Seeds)
package almanac
