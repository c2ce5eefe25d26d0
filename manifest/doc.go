// Package manifest builds and queries the model of a manifest file.
//
// [Parse] matches text against [grammar.RuleManifest] and folds the
// resulting nodes into a [Manifest] with [Build]. The model maps section
// names to sections, and each section maps keys to string values. Values
// are stored as written, minus surrounding whitespace and one layer of
// double quotes; inline tables and arrays are kept as raw text.
//
// # Reserved sections
//
// The "[package]" construct always produces the "package" section, holding
// its mandatory name and version along with any other entries. The first
// "[dependencies]" construct produces "dependencies"; every later one
// replaces "dev-dependencies".
//
// # Lookups
//
// [Manifest.GetByKey] and [Manifest.GetBySection] report absent sections
// with [ErrMissingSection] and absent keys with [ErrMissingKey]:
//
//	v, err := m.GetByKey("package", "name")
//	if errors.Is(err, manifest.ErrMissingKey) {
//		var ke *manifest.KeyError
//		errors.As(err, &ke)
//		...
//	}
//
// # Queries
//
// [Manifest.Evaluate] runs an expr-lang expression with one variable per
// section, for example:
//
//	package.name + "@" + package.version
//	semver(dependencies.serde, "1.0.100") < 0
//	len($env["dev-dependencies"])
package manifest
